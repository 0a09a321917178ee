package models_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthguardian/healthguardian/internal/api/models"
)

func TestProblem_NewProblem(t *testing.T) {
	p := models.NewProblem(
		models.ProblemTypeValidation,
		"Validation error",
		http.StatusBadRequest,
		"req_test123",
	)

	assert.Equal(t, models.ProblemTypeValidation, p.Type)
	assert.Equal(t, "Validation error", p.Title)
	assert.Equal(t, http.StatusBadRequest, p.Status)
	assert.Equal(t, "req_test123", p.TraceID)
	assert.Empty(t, p.Detail)
	assert.Empty(t, p.Instance)
	assert.Nil(t, p.Errors)
}

func TestProblem_WithDetail(t *testing.T) {
	p := models.NewProblem(
		models.ProblemTypeValidation,
		"Validation error",
		http.StatusBadRequest,
		"req_test123",
	).WithDetail("age must be between 0 and 120")

	assert.Equal(t, "age must be between 0 and 120", p.Detail)
}

func TestProblem_WithInstance(t *testing.T) {
	p := models.NewProblem(
		models.ProblemTypeValidation,
		"Validation error",
		http.StatusBadRequest,
		"req_test123",
	).WithInstance("/v1/assessments")

	assert.Equal(t, "/v1/assessments", p.Instance)
}

func TestProblem_WithErrors(t *testing.T) {
	fieldErrors := []models.FieldError{
		{Field: "customLocation.city", Message: "city is required", Code: "required"},
		{Field: "customLocation.country", Message: "country is required", Code: "required"},
	}

	p := models.NewProblem(
		models.ProblemTypeValidation,
		"Validation error",
		http.StatusBadRequest,
		"req_test123",
	).WithErrors(fieldErrors)

	require.Len(t, p.Errors, 2)
	assert.Equal(t, "customLocation.city", p.Errors[0].Field)
	assert.Equal(t, "city is required", p.Errors[0].Message)
	assert.Equal(t, "required", p.Errors[0].Code)
}

func TestProblem_Write(t *testing.T) {
	p := models.NewBadRequest("req_test123", "invalid input", []models.FieldError{
		{Field: "customLocation.city", Message: "city is required"},
	})
	p.Instance = "/v1/assessments"

	w := httptest.NewRecorder()
	p.Write(w)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
	assert.Equal(t, "req_test123", w.Header().Get("X-Request-Id"))

	var result models.Problem
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err)

	assert.Equal(t, models.ProblemTypeValidation, result.Type)
	assert.Equal(t, "Validation error", result.Title)
	assert.Equal(t, http.StatusBadRequest, result.Status)
	assert.Equal(t, "invalid input", result.Detail)
	assert.Equal(t, "/v1/assessments", result.Instance)
	assert.Equal(t, "req_test123", result.TraceID)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "customLocation.city", result.Errors[0].Field)
}

func TestNewBadRequest(t *testing.T) {
	p := models.NewBadRequest("req_123", "invalid data", nil)

	assert.Equal(t, models.ProblemTypeValidation, p.Type)
	assert.Equal(t, "Validation error", p.Title)
	assert.Equal(t, http.StatusBadRequest, p.Status)
	assert.Equal(t, "invalid data", p.Detail)
	assert.Equal(t, "req_123", p.TraceID)
}

func TestNewNotFound(t *testing.T) {
	p := models.NewNotFound("req_123", "no assessments submitted yet")

	assert.Equal(t, models.ProblemTypeNotFound, p.Type)
	assert.Equal(t, "Not found", p.Title)
	assert.Equal(t, http.StatusNotFound, p.Status)
	assert.Equal(t, "no assessments submitted yet", p.Detail)
}

func TestNewUnprocessable(t *testing.T) {
	p := models.NewUnprocessable("req_123", "could not find the specified location")

	assert.Equal(t, models.ProblemTypeUnprocessable, p.Type)
	assert.Equal(t, "Unprocessable entity", p.Title)
	assert.Equal(t, http.StatusUnprocessableEntity, p.Status)
	assert.Equal(t, "could not find the specified location", p.Detail)
}

func TestNewBadGateway(t *testing.T) {
	p := models.NewBadGateway("req_123", "weather service is unavailable")

	assert.Equal(t, models.ProblemTypeBadGateway, p.Type)
	assert.Equal(t, "Upstream provider error", p.Title)
	assert.Equal(t, http.StatusBadGateway, p.Status)
	assert.Equal(t, "weather service is unavailable", p.Detail)
}

func TestNewInternalError(t *testing.T) {
	p := models.NewInternalError("req_123", "unexpected failure")

	assert.Equal(t, models.ProblemTypeInternal, p.Type)
	assert.Equal(t, "Internal server error", p.Title)
	assert.Equal(t, http.StatusInternalServerError, p.Status)
	assert.Equal(t, "unexpected failure", p.Detail)
}

func TestNewServiceUnavailable(t *testing.T) {
	p := models.NewServiceUnavailable("req_123", "upstream unavailable")

	assert.Equal(t, models.ProblemTypeUnavailable, p.Type)
	assert.Equal(t, "Service unavailable", p.Title)
	assert.Equal(t, http.StatusServiceUnavailable, p.Status)
	assert.Equal(t, "upstream unavailable", p.Detail)
}
