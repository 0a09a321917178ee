package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/healthguardian/healthguardian/internal/api/models"
	"github.com/healthguardian/healthguardian/internal/api/response"
	"github.com/healthguardian/healthguardian/internal/assessment"
	"github.com/healthguardian/healthguardian/internal/location"
	"github.com/healthguardian/healthguardian/internal/pollen"
	"github.com/healthguardian/healthguardian/internal/profile"
	"github.com/healthguardian/healthguardian/internal/recommend"
	"github.com/healthguardian/healthguardian/internal/weather"
)

// AssessmentRunner runs the assessment pipeline.
type AssessmentRunner interface {
	Run(ctx context.Context, prof profile.UserProfile, onStage func(assessment.Stage)) (*assessment.Assessment, error)
}

// AssessmentHandler handles assessment submission and retrieval.
type AssessmentHandler struct {
	runner  AssessmentRunner
	tracker *assessment.Tracker
	logger  zerolog.Logger
}

// NewAssessmentHandler creates a new AssessmentHandler.
func NewAssessmentHandler(runner AssessmentRunner, tracker *assessment.Tracker, logger zerolog.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		runner:  runner,
		tracker: tracker,
		logger:  logger,
	}
}

// Create handles POST /v1/assessments - submit a profile and run the
// pipeline. The run is synchronous; concurrent clients can poll
// GET /v1/assessments/latest for the stage of the newest submission.
func (h *AssessmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.AssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body", nil)
		return
	}

	prof := req.ToProfile().Sanitized()
	if err := prof.Validate(); err != nil {
		response.BadRequest(w, r, "invalid profile", validationErrors(err))
		return
	}

	rec := h.tracker.Begin()

	result, err := h.runner.Run(r.Context(), prof, func(stage assessment.Stage) {
		h.tracker.SetStage(rec, stage)
	})
	if err != nil {
		detail := friendlyMessage(err)
		h.tracker.Fail(rec, detail)
		h.logger.Error().Err(err).Str("assessment_id", rec.ID).Msg("assessment failed")
		writeAssessmentError(w, r, err, detail)
		return
	}

	result.ID = rec.ID
	done := h.tracker.Complete(rec, result)

	response.Created(w, r, "/v1/assessments/latest", models.NewAssessment(done))
}

// Latest handles GET /v1/assessments/latest - the newest submission's
// stage and, when complete, its report.
func (h *AssessmentHandler) Latest(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.tracker.Latest()
	if !ok {
		response.NotFound(w, r, "no assessments submitted yet")
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewAssessment(rec))
}

// validationErrors maps profile validation errors to field errors.
func validationErrors(err error) []models.FieldError {
	switch {
	case errors.Is(err, profile.ErrMissingCity):
		return []models.FieldError{{Field: "customLocation.city", Message: "city is required", Code: "required"}}
	case errors.Is(err, profile.ErrMissingCountry):
		return []models.FieldError{{Field: "customLocation.country", Message: "country is required", Code: "required"}}
	default:
		return nil
	}
}

// friendlyMessage translates pipeline errors to user-facing text.
func friendlyMessage(err error) string {
	var stageErr *assessment.StageError
	if !errors.As(err, &stageErr) {
		return "assessment failed"
	}

	switch stageErr.Stage {
	case assessment.StageResolvingLocation:
		if errors.Is(err, location.ErrLocationNotFound) {
			return "could not find the specified location"
		}
		return "location service is unavailable"
	case assessment.StageFetchingWeather:
		return "weather service is unavailable"
	case assessment.StageFetchingAirQuality:
		return "air quality service is unavailable"
	case assessment.StageFetchingPollen:
		return "pollen service is unavailable"
	case assessment.StageGeneratingRecommendation:
		if errors.Is(err, recommend.ErrEmptyCompletion) {
			return "recommendation generator returned an empty report"
		}
		return "recommendation generator is unavailable"
	default:
		return "assessment failed"
	}
}

// writeAssessmentError maps pipeline errors to HTTP problems.
func writeAssessmentError(w http.ResponseWriter, r *http.Request, err error, detail string) {
	switch {
	case errors.Is(err, location.ErrLocationNotFound):
		response.UnprocessableEntity(w, r, detail)
	case errors.Is(err, weather.ErrInvalidCoordinates),
		errors.Is(err, pollen.ErrInvalidCoordinates):
		response.UnprocessableEntity(w, r, detail)
	default:
		response.BadGateway(w, r, detail)
	}
}
