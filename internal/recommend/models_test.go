package recommend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/healthguardian/healthguardian/internal/recommend"
)

func TestParseRiskLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected recommend.RiskLevel
	}{
		{"low", recommend.RiskLow},
		{"LOW", recommend.RiskLow},
		{"  moderate ", recommend.RiskModerate},
		{"medium", recommend.RiskModerate},
		{"high", recommend.RiskHigh},
		{"very_high", recommend.RiskVeryHigh},
		{"very high", recommend.RiskVeryHigh},
		{"", recommend.RiskUndefined},
		{"severe", recommend.RiskUndefined},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, recommend.ParseRiskLevel(tt.input))
		})
	}
}
