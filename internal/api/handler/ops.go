// Package handler provides HTTP handlers for the RouteCraft API.
package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/routecraft/routecraft/internal/api/models"
	"github.com/routecraft/routecraft/internal/api/response"
	"github.com/routecraft/routecraft/internal/directions"
	"github.com/routecraft/routecraft/internal/provider/resilience"
)

// Pinger checks connectivity to a backing store. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version    string
	buildTime  string
	db         Pinger
	registry   *resilience.Registry
	directions *directions.Service
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, db Pinger, registry *resilience.Registry, svc *directions.Service) *OpsHandler {
	return &OpsHandler{
		version:    version,
		buildTime:  buildTime,
		db:         db,
		registry:   registry,
		directions: svc,
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

// ReadinessCheck handles GET /v1/ops/ready - readiness check. The service is
// ready once its backing store answers a ping.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			health.Status = models.HealthStatusFail
			health.Details = map[string]interface{}{"postgres": err.Error()}
			response.JSON(w, r, http.StatusServiceUnavailable, health)
			return
		}
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - subsystem and engine status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := models.SystemStatus{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}

	if h.db != nil {
		pg := models.SubsystemStatus{Name: "postgres", Status: models.HealthStatusOK}
		if err := h.db.Ping(ctx); err != nil {
			pg.Status = models.HealthStatusFail
			detail := err.Error()
			pg.Detail = &detail
			status.Status = models.HealthStatusDegraded
		}
		status.Subsystems = append(status.Subsystems, pg)
	}

	if h.directions != nil {
		stats := h.directions.Stats()
		detail := fmt.Sprintf("%d entries (%d fresh, %d stale)", stats.TotalEntries, stats.FreshEntries, stats.StaleEntries)
		status.Subsystems = append(status.Subsystems, models.SubsystemStatus{
			Name:   "directions-cache",
			Status: models.HealthStatusOK,
			Detail: &detail,
		})
	}

	if h.registry != nil {
		for _, upstream := range h.registry.GetAllHealth() {
			engine := models.EngineStatus{
				Engine: upstream.Name,
				Status: engineStatus(upstream),
			}
			if upstream.LastSuccessAt != nil {
				ts := models.Timestamp(*upstream.LastSuccessAt)
				engine.LastSuccessAt = &ts
			}
			if upstream.LastFailureAt != nil {
				ts := models.Timestamp(*upstream.LastFailureAt)
				engine.LastFailureAt = &ts
			}
			if upstream.LastError != "" {
				msg := upstream.LastError
				engine.Message = &msg
			}
			if engine.Status != models.HealthStatusOK && status.Status == models.HealthStatusOK {
				status.Status = models.HealthStatusDegraded
			}
			status.Engines = append(status.Engines, engine)
		}
	}

	response.JSON(w, r, http.StatusOK, status)
}

func engineStatus(h *resilience.UpstreamHealth) models.HealthStatus {
	switch {
	case h.IsUnhealthy():
		return models.HealthStatusFail
	case h.IsDegraded():
		return models.HealthStatusDegraded
	default:
		return models.HealthStatusOK
	}
}
