package handler

import (
	"net/http"
	"time"

	"bookings-rest-api/internal/service"
	"bookings-rest-api/pkg/response"
)

// HealthHandler reports service liveness.
type HealthHandler struct {
	items   *service.ItemService
	version string
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(items *service.ItemService, version string) *HealthHandler {
	return &HealthHandler{items: items, version: version}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// Health handles GET /api/v1/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "healthy",
		Database:  "connected",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	}

	if err := h.items.Ping(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
	}

	response.OK(w, resp)
}
