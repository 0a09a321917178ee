package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthguardian/healthguardian/internal/telemetry"
)

// systemMessage frames every generation request.
const systemMessage = "You are an environmental health assistant that provides structured recommendations."

// Completer defines the interface for chat completion backends.
type Completer interface {
	// Complete sends a system and user message and returns the
	// assistant's reply text.
	Complete(ctx context.Context, system, user string) (string, error)

	// Name returns the backend name for logging.
	Name() string
}

// ServiceConfig holds configuration for the recommendation service.
type ServiceConfig struct {
	// Completer is the chat completion backend.
	Completer Completer

	// Logger for service operations.
	Logger zerolog.Logger

	// Metrics records backend call metrics (optional).
	Metrics *telemetry.ProviderMetrics
}

// Service generates recommendation reports.
type Service struct {
	completer Completer
	logger    zerolog.Logger
	metrics   *telemetry.ProviderMetrics
}

// NewService creates a new recommendation service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		completer: cfg.Completer,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
	}
}

// Generate produces a recommendation report for the given prompt data.
//
// The completion is expected to be JSON; when it is not, the raw text
// is kept as the narrative with a default moderate risk so the caller
// still gets a usable report.
func (s *Service) Generate(ctx context.Context, data PromptData) (*Result, error) {
	prompt := BuildPrompt(data) + structuredInstructions

	start := time.Now()
	content, err := s.completer.Complete(ctx, systemMessage, prompt)
	s.metrics.RecordRequest(s.completer.Name(), "complete", time.Since(start), err)
	if err != nil {
		s.logger.Error().Err(err).Msg("completion request failed")
		return nil, fmt.Errorf("%w: %v", ErrGeneratorUnavailable, err)
	}

	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyCompletion
	}

	return s.parseResult(content), nil
}

// parseResult decodes the completion into a Result, falling back to a
// raw-text report when the content is not valid JSON.
func (s *Service) parseResult(content string) *Result {
	var payload struct {
		Summary                  string            `json:"summary"`
		RiskLevel                string            `json:"riskLevel"`
		Categories               []Category        `json:"categories"`
		AllergyRecommendations   []AllergyAdvice   `json:"allergyRecommendations"`
		ConditionRecommendations []ConditionAdvice `json:"conditionRecommendations"`
	}

	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		s.logger.Warn().Err(err).Msg("completion was not valid JSON, keeping raw text")
		return &Result{
			Narrative:  content,
			Summary:    "Environmental health assessment",
			RiskLevel:  RiskModerate,
			Structured: false,
		}
	}

	result := &Result{
		Summary:                  payload.Summary,
		RiskLevel:                ParseRiskLevel(payload.RiskLevel),
		Categories:               payload.Categories,
		AllergyRecommendations:   payload.AllergyRecommendations,
		ConditionRecommendations: payload.ConditionRecommendations,
		Structured:               true,
	}

	for i := range result.AllergyRecommendations {
		result.AllergyRecommendations[i].RiskLevel = ParseRiskLevel(string(result.AllergyRecommendations[i].RiskLevel))
	}
	for i := range result.ConditionRecommendations {
		result.ConditionRecommendations[i].RiskLevel = ParseRiskLevel(string(result.ConditionRecommendations[i].RiskLevel))
	}

	result.Narrative = RenderMarkdown(result)

	return result
}
