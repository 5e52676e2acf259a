package handler

import (
	"net/http"
	"strconv"

	"bookings-rest-api/internal/model"
	"bookings-rest-api/pkg/response"
)

// DefaultStatsLimit bounds top-N rollups when the caller gives no limit.
const DefaultStatsLimit = 5

// TopCountries handles GET /api/v1/items/stats/top-countries
func (h *ItemHandler) TopCountries(w http.ResponseWriter, r *http.Request) {
	rows, err := h.items.TopCountries(r.Context(), parseLimit(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.OK(w, shapeCounts(rows))
}

// TopHotels handles GET /api/v1/items/stats/top-hotels
func (h *ItemHandler) TopHotels(w http.ResponseWriter, r *http.Request) {
	rows, err := h.items.TopHotels(r.Context(), parseLimit(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.OK(w, shapeCounts(rows))
}

// CancellationStats handles GET /api/v1/items/stats/cancellations
func (h *ItemHandler) CancellationStats(w http.ResponseWriter, r *http.Request) {
	rows, err := h.items.CancellationStats(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.OK(w, shapeCounts(rows))
}

// AverageADR handles GET /api/v1/items/stats/average-adr
func (h *ItemHandler) AverageADR(w http.ResponseWriter, r *http.Request) {
	rows, err := h.items.AverageADRByHotel(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	shaped := make([]map[string]any, len(rows))
	for i, row := range rows {
		shaped[i] = map[string]any{
			"value":       model.Portable(row.Value),
			"average_adr": row.AverageADR,
		}
	}
	response.OK(w, shaped)
}

// parseLimit reads the limit query value; out-of-range or unparsable values
// fall back to the default.
func parseLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return DefaultStatsLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > 100 {
		return DefaultStatsLimit
	}
	return n
}

func shapeCounts(rows []model.GroupCount) []map[string]any {
	shaped := make([]map[string]any, len(rows))
	for i, row := range rows {
		shaped[i] = map[string]any{
			"value": model.Portable(row.Value),
			"count": row.Count,
		}
	}
	return shaped
}
