package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bookings-rest-api/internal/logging"
	"bookings-rest-api/internal/model"
	"bookings-rest-api/internal/service"
	"bookings-rest-api/internal/validator"
	"bookings-rest-api/pkg/apierror"
	"bookings-rest-api/pkg/response"
)

// MaxBulkItems caps how many items a single bulk request may create.
const MaxBulkItems = 100

// ItemHandler handles item CRUD HTTP requests.
type ItemHandler struct {
	items *service.ItemService
}

// NewItemHandler creates a new item handler.
func NewItemHandler(items *service.ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

// List handles GET /api/v1/items
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, perPage := validator.Pagination(q.Get("page"), q.Get("per_page"))

	result, err := h.items.List(r.Context(), page, perPage, q.Get("search"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	response.OK(w, map[string]any{
		"items":      shapeItems(result.Items),
		"pagination": result.Pagination,
	})
}

// Get handles GET /api/v1/items/{id}
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.items.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	response.OK(w, item.AsMap())
}

// Create handles POST /api/v1/items
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	data, ok := decodeObject(w, r)
	if !ok {
		return
	}

	item, err := h.items.Create(r.Context(), data)
	if err != nil {
		respondError(w, r, err)
		return
	}

	response.Created(w, item.AsMap(), "item created")
}

// Update handles PUT /api/v1/items/{id}
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	data, ok := decodeObject(w, r)
	if !ok {
		return
	}

	item, changed, err := h.items.Update(r.Context(), chi.URLParam(r, "id"), data)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if !changed {
		response.Message(w, http.StatusNotModified, "no changes made")
		return
	}

	response.JSONMessage(w, http.StatusOK, item.AsMap(), "item updated")
}

// Delete handles DELETE /api/v1/items/{id}
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.items.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}

	response.Message(w, http.StatusOK, "item deleted")
}

// Bulk handles POST /api/v1/items/bulk
func (h *ItemHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	var elements []any
	if err := json.NewDecoder(r.Body).Decode(&elements); err != nil {
		response.Error(w, apierror.BadRequest("a list of items is required"))
		return
	}
	if len(elements) == 0 {
		response.Error(w, apierror.BadRequest("a list of items is required"))
		return
	}
	if len(elements) > MaxBulkItems {
		response.Error(w, apierror.BadRequest("a maximum of 100 items per request is allowed"))
		return
	}

	result := h.items.BulkCreate(r.Context(), elements)

	errs := result.Errors
	if errs == nil {
		errs = []string{}
	}
	response.Created(w, map[string]any{
		"created_items": shapeItems(result.CreatedItems),
		"created_count": result.CreatedCount(),
		"errors":        errs,
	}, fmt.Sprintf("%d items created", result.CreatedCount()))
}

// ByCountry handles GET /api/v1/items/country/{code}
func (h *ItemHandler) ByCountry(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		response.Error(w, apierror.BadRequest("country code is required"))
		return
	}

	items, err := h.items.FindByCountry(r.Context(), code)
	if err != nil {
		respondError(w, r, err)
		return
	}

	response.OK(w, map[string]any{
		"items": shapeItems(items),
		"count": len(items),
	})
}

// decodeObject reads the request body as a single JSON object with at least
// one key, writing the 400 envelope itself when the payload is unusable.
func decodeObject(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		response.Error(w, apierror.BadRequest("a JSON body is required"))
		return nil, false
	}
	if len(data) == 0 {
		response.Error(w, apierror.BadRequest("a JSON body is required"))
		return nil, false
	}
	return data, true
}

// shapeItems converts items to their wire form, never nil.
func shapeItems(items []model.Item) []map[string]any {
	shaped := make([]map[string]any, len(items))
	for i := range items {
		shaped[i] = items[i].AsMap()
	}
	return shaped
}

// respondError translates domain errors into the error envelope. Validation
// problems and missing records are client errors; everything else is logged
// and reported generically.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error(w, apierror.BadRequest(verr.Message))
	case errors.Is(err, model.ErrNotFound):
		response.Error(w, apierror.NotFound("item not found"))
	default:
		logging.FromContext(r.Context()).Error("request failed", "error", err)
		response.Error(w, apierror.InternalError(""))
	}
}
