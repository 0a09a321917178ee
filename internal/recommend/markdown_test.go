package recommend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/healthguardian/healthguardian/internal/recommend"
)

func TestRenderMarkdown(t *testing.T) {
	result := &recommend.Result{
		Summary:   "Conditions are mild with moderate grass pollen.",
		RiskLevel: recommend.RiskModerate,
		Categories: []recommend.Category{
			{Name: "UV Protection", Items: []string{"Wear sunscreen outdoors."}},
		},
		AllergyRecommendations: []recommend.AllergyAdvice{
			{
				Allergy:         "Pollen",
				Recommendations: []string{"Keep windows closed during peak hours."},
				RiskLevel:       recommend.RiskHigh,
			},
		},
		ConditionRecommendations: []recommend.ConditionAdvice{
			{
				Condition:       "Asthma",
				Recommendations: []string{"Carry your rescue inhaler."},
				RiskLevel:       recommend.RiskModerate,
			},
		},
	}

	md := recommend.RenderMarkdown(result)

	assert.Contains(t, md, "# Environmental Health Assessment")
	assert.Contains(t, md, "## Summary\n\nConditions are mild with moderate grass pollen.")
	assert.Contains(t, md, "## Risk Level: MODERATE")
	assert.Contains(t, md, "## Environmental Recommendations")
	assert.Contains(t, md, "### UV Protection\n\n- Wear sunscreen outdoors.")
	assert.Contains(t, md, "## Allergy-Specific Recommendations")
	assert.Contains(t, md, "### Pollen (Risk: HIGH)")
	assert.Contains(t, md, "## Medical Condition Management")
	assert.Contains(t, md, "### Asthma (Risk: MODERATE)")
}

func TestRenderMarkdown_Minimal(t *testing.T) {
	md := recommend.RenderMarkdown(&recommend.Result{})

	assert.Contains(t, md, "# Environmental Health Assessment")
	assert.NotContains(t, md, "## Summary")
	assert.NotContains(t, md, "## Environmental Recommendations")
	assert.NotContains(t, md, "## Allergy-Specific Recommendations")
}
