// Package handler provides HTTP handlers for the HealthGuardian API.
package handler

import (
	"net/http"
	"time"

	"github.com/healthguardian/healthguardian/internal/api/models"
	"github.com/healthguardian/healthguardian/internal/api/response"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	providers []string
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
	}
}

// WithProviders sets the upstream provider names reported by the status
// endpoint.
func (h *OpsHandler) WithProviders(providers ...string) *OpsHandler {
	h.providers = providers
	return h
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
// The service holds no local state; readiness equals liveness.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - upstream provider status.
// Providers are not probed on request; a provider is listed OK when the
// service holds credentials for it.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	status := models.SystemStatus{
		Status:    models.HealthStatusOK,
		Time:      models.Timestamp(time.Now()),
		Providers: make([]models.ProviderStatus, 0, len(h.providers)),
	}
	for _, provider := range h.providers {
		status.Providers = append(status.Providers, models.ProviderStatus{
			Provider: provider,
			Status:   models.HealthStatusOK,
		})
	}
	response.JSON(w, r, http.StatusOK, status)
}
