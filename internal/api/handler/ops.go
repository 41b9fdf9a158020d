// Package handler provides HTTP handlers for the Navigator link API.
package handler

import (
	"net/http"
	"time"

	"github.com/navigatorlink/navigatorlink/internal/api/models"
	"github.com/navigatorlink/navigatorlink/internal/api/response"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	encoding  string
}

// NewOpsHandler creates a new OpsHandler. encoding is the link service's default encoding,
// reported on readiness.
func NewOpsHandler(version, buildTime, encoding string) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		encoding:  encoding,
	}
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
// The service has no external dependencies, so it is ready once a default encoding is configured.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if h.encoding == "" {
		response.JSON(w, r, http.StatusServiceUnavailable, models.Health{
			Status: models.HealthStatusFail,
			Time:   models.Timestamp(time.Now()),
		})
		return
	}

	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"defaultEncoding": h.encoding,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}
