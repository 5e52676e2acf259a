package handler

import (
	"net/http"

	"bookings-rest-api/pkg/response"
)

// IndexHandler serves the API root.
type IndexHandler struct {
	name    string
	version string
}

// NewIndexHandler creates a new index handler.
func NewIndexHandler(name, version string) *IndexHandler {
	return &IndexHandler{name: name, version: version}
}

// Index handles GET / with a catalog of the available endpoints.
func (h *IndexHandler) Index(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]any{
		"service": h.name,
		"version": h.version,
		"endpoints": []string{
			"GET /api/v1/items - list items (page, per_page, search)",
			"GET /api/v1/items/{id} - fetch one item",
			"POST /api/v1/items - create an item",
			"PUT /api/v1/items/{id} - update an item",
			"DELETE /api/v1/items/{id} - delete an item",
			"POST /api/v1/items/bulk - create up to 100 items",
			"GET /api/v1/items/country/{code} - items for a country",
			"GET /api/v1/items/stats/top-countries - most booked countries",
			"GET /api/v1/items/stats/top-hotels - most booked hotels",
			"GET /api/v1/items/stats/cancellations - cancellation counts",
			"GET /api/v1/items/stats/average-adr - average rate per hotel",
			"GET /api/v1/health - health check",
		},
	})
}
