package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookings-rest-api/internal/handler"
	"bookings-rest-api/internal/repository"
	"bookings-rest-api/internal/router"
	"bookings-rest-api/internal/service"
)

// envelope mirrors the wire shape of every response.
type envelope struct {
	Status  string         `json:"status"`
	Data    map[string]any `json:"data"`
	Message string         `json:"message"`
	Error   string         `json:"error"`
}

func newServer(repo repository.ItemRepository) http.Handler {
	items := service.NewItemService(repo)
	return router.New(router.Config{
		IndexHandler:  handler.NewIndexHandler("bookings-api", "test"),
		ItemHandler:   handler.NewItemHandler(items),
		HealthHandler: handler.NewHealthHandler(items, "test"),
	})
}

func doJSON(t *testing.T, srv http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("response is not an envelope: %v\n%s", err, rec.Body.String())
		}
	}
	return rec, env
}

func seedItems(t *testing.T, repo *fakeRepo, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		hotel := "Resort Hotel"
		if i%2 == 1 {
			hotel = "City Hotel"
		}
		_, err := repo.Create(context.Background(), map[string]any{
			"name":    fmt.Sprintf("booking %d", i),
			"hotel":   hotel,
			"country": "PRT",
		})
		if err != nil {
			t.Fatal(err)
		}
	}
}

func TestListPagination(t *testing.T) {
	repo := &fakeRepo{}
	seedItems(t, repo, 12)
	srv := newServer(repo)

	rec, env := doJSON(t, srv, http.MethodGet, "/api/v1/items?page=2&per_page=5", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if env.Status != "success" {
		t.Errorf("envelope status = %q", env.Status)
	}

	items := env.Data["items"].([]any)
	if len(items) != 5 {
		t.Errorf("len(items) = %d, want 5", len(items))
	}

	p := env.Data["pagination"].(map[string]any)
	if p["total"] != float64(12) || p["total_pages"] != float64(3) {
		t.Errorf("pagination = %v", p)
	}
	if p["has_next"] != true || p["has_prev"] != true {
		t.Errorf("page 2 of 3 must have both neighbours: %v", p)
	}
}

func TestListBadParamsFallBackToDefaults(t *testing.T) {
	repo := &fakeRepo{}
	seedItems(t, repo, 3)
	srv := newServer(repo)

	rec, env := doJSON(t, srv, http.MethodGet, "/api/v1/items?page=abc&per_page=500", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	p := env.Data["pagination"].(map[string]any)
	if p["page"] != float64(1) || p["per_page"] != float64(10) {
		t.Errorf("pagination = %v, want defaults", p)
	}
}

func TestListSearch(t *testing.T) {
	repo := &fakeRepo{}
	for _, name := range []string{"beach resort", "city break", "beachfront suite"} {
		if _, err := repo.Create(context.Background(), map[string]any{"name": name}); err != nil {
			t.Fatal(err)
		}
	}
	srv := newServer(repo)

	_, env := doJSON(t, srv, http.MethodGet, "/api/v1/items?search=beach", nil)
	items := env.Data["items"].([]any)
	if len(items) != 2 {
		t.Errorf("search returned %d items, want 2", len(items))
	}
}

func TestGetItem(t *testing.T) {
	repo := &fakeRepo{}
	created, err := repo.Create(context.Background(), map[string]any{"hotel": " Resort Hotel ", "skip": nil})
	if err != nil {
		t.Fatal(err)
	}
	srv := newServer(repo)

	rec, env := doJSON(t, srv, http.MethodGet, "/api/v1/items/"+created.ID.Hex(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if env.Data["id"] != created.ID.Hex() {
		t.Errorf("id = %v", env.Data["id"])
	}
	if env.Data["hotel"] != "Resort Hotel" {
		t.Errorf("stored field must be sanitized, got %v", env.Data["hotel"])
	}
	if _, ok := env.Data["skip"]; ok {
		t.Error("null fields must be stripped")
	}
	if env.Data["created_at"] == nil || env.Data["updated_at"] == nil {
		t.Error("timestamps must be present on the wire")
	}
}

func TestGetItemInvalidID(t *testing.T) {
	srv := newServer(&fakeRepo{})

	rec, env := doJSON(t, srv, http.MethodGet, "/api/v1/items/not-an-id", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env.Status != "error" || env.Error != "Bad Request" {
		t.Errorf("envelope = %+v", env)
	}
}

func TestGetItemNotFound(t *testing.T) {
	srv := newServer(&fakeRepo{})

	rec, env := doJSON(t, srv, http.MethodGet, "/api/v1/items/507f1f77bcf86cd799439011", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if env.Error != "Not Found" {
		t.Errorf("envelope = %+v", env)
	}
}

func TestCreateItem(t *testing.T) {
	repo := &fakeRepo{}
	srv := newServer(repo)

	rec, env := doJSON(t, srv, http.MethodPost, "/api/v1/items", map[string]any{
		"hotel": "Resort Hotel",
		"adr":   88.5,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if env.Message != "item created" {
		t.Errorf("message = %q", env.Message)
	}
	id, _ := env.Data["id"].(string)
	if id == "" {
		t.Fatal("created item must carry its assigned id")
	}

	// Round trip through the read endpoint.
	rec, env = doJSON(t, srv, http.MethodGet, "/api/v1/items/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("round trip status = %d", rec.Code)
	}
	if env.Data["hotel"] != "Resort Hotel" || env.Data["adr"] != 88.5 {
		t.Errorf("round trip fields = %v", env.Data)
	}
	if env.Data["created_at"] != env.Data["updated_at"] {
		t.Errorf("created_at and updated_at must match at creation: %v vs %v",
			env.Data["created_at"], env.Data["updated_at"])
	}
}

func TestCreateItemEmptyBody(t *testing.T) {
	srv := newServer(&fakeRepo{})

	for _, body := range []any{nil, map[string]any{}} {
		rec, _ := doJSON(t, srv, http.MethodPost, "/api/v1/items", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %v: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestUpdateItem(t *testing.T) {
	repo := &fakeRepo{}
	created, err := repo.Create(context.Background(), map[string]any{"hotel": "Resort Hotel"})
	if err != nil {
		t.Fatal(err)
	}
	srv := newServer(repo)

	rec, env := doJSON(t, srv, http.MethodPut, "/api/v1/items/"+created.ID.Hex(), map[string]any{
		"hotel": "City Hotel",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if env.Data["hotel"] != "City Hotel" {
		t.Errorf("updated field = %v", env.Data["hotel"])
	}
	if env.Message != "item updated" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestUpdateItemNoChange(t *testing.T) {
	repo := &fakeRepo{}
	created, err := repo.Create(context.Background(), map[string]any{"hotel": "Resort Hotel"})
	if err != nil {
		t.Fatal(err)
	}
	srv := newServer(repo)

	rec, _ := doJSON(t, srv, http.MethodPut, "/api/v1/items/"+created.ID.Hex(), map[string]any{
		"hotel": "Resort Hotel",
	})
	if rec.Code != http.StatusNotModified {
		t.Errorf("status = %d, want 304 for identical data", rec.Code)
	}
}

func TestUpdateItemNotFound(t *testing.T) {
	srv := newServer(&fakeRepo{})

	rec, _ := doJSON(t, srv, http.MethodPut, "/api/v1/items/507f1f77bcf86cd799439011", map[string]any{
		"hotel": "City Hotel",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDeleteItemTwice(t *testing.T) {
	repo := &fakeRepo{}
	created, err := repo.Create(context.Background(), map[string]any{"hotel": "Resort Hotel"})
	if err != nil {
		t.Fatal(err)
	}
	srv := newServer(repo)
	path := "/api/v1/items/" + created.ID.Hex()

	rec, env := doJSON(t, srv, http.MethodDelete, path, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("first delete status = %d, want 200", rec.Code)
	}
	if env.Message != "item deleted" {
		t.Errorf("message = %q", env.Message)
	}

	rec, _ = doJSON(t, srv, http.MethodDelete, path, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestBulkCreate(t *testing.T) {
	repo := &fakeRepo{}
	srv := newServer(repo)

	rec, env := doJSON(t, srv, http.MethodPost, "/api/v1/items/bulk", []any{
		map[string]any{"hotel": "Resort Hotel"},
		map[string]any{"hotel": "City Hotel"},
		map[string]any{"hotel": "Resort Hotel"},
		"not an object",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if env.Data["created_count"] != float64(3) {
		t.Errorf("created_count = %v, want 3", env.Data["created_count"])
	}
	errs := env.Data["errors"].([]any)
	if len(errs) != 1 {
		t.Fatalf("errors = %v, want one entry", errs)
	}
	if !strings.HasPrefix(errs[0].(string), "item 3:") {
		t.Errorf("error must be tagged with its index, got %q", errs[0])
	}
	if len(env.Data["created_items"].([]any)) != 3 {
		t.Errorf("created_items = %v", env.Data["created_items"])
	}
}

func TestBulkCreateRejectsNonList(t *testing.T) {
	srv := newServer(&fakeRepo{})

	rec, _ := doJSON(t, srv, http.MethodPost, "/api/v1/items/bulk", map[string]any{"hotel": "x"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for non-list payload", rec.Code)
	}
}

func TestBulkCreateRejectsOversizedList(t *testing.T) {
	srv := newServer(&fakeRepo{})

	payload := make([]any, handler.MaxBulkItems+1)
	for i := range payload {
		payload[i] = map[string]any{"hotel": "x"}
	}
	rec, _ := doJSON(t, srv, http.MethodPost, "/api/v1/items/bulk", payload)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for oversized payload", rec.Code)
	}
}

func TestByCountry(t *testing.T) {
	repo := &fakeRepo{}
	for _, country := range []string{"PRT", "GBR", "PRT"} {
		if _, err := repo.Create(context.Background(), map[string]any{"country": country}); err != nil {
			t.Fatal(err)
		}
	}
	srv := newServer(repo)

	// Lower-case code must match upper-cased data.
	_, env := doJSON(t, srv, http.MethodGet, "/api/v1/items/country/prt", nil)
	if env.Data["count"] != float64(2) {
		t.Errorf("count = %v, want 2", env.Data["count"])
	}
}

func TestUnknownEndpoint(t *testing.T) {
	srv := newServer(&fakeRepo{})

	rec, env := doJSON(t, srv, http.MethodGet, "/api/v1/nothing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if env.Status != "error" {
		t.Errorf("envelope = %+v", env)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newServer(&fakeRepo{})

	rec, env := doJSON(t, srv, http.MethodPatch, "/api/v1/items", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if env.Error != "Method Not Allowed" {
		t.Errorf("envelope = %+v", env)
	}
}

func TestIndex(t *testing.T) {
	srv := newServer(&fakeRepo{})

	rec, env := doJSON(t, srv, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if env.Data["service"] != "bookings-api" {
		t.Errorf("service = %v", env.Data["service"])
	}
	if len(env.Data["endpoints"].([]any)) == 0 {
		t.Error("index must list endpoints")
	}
}

func TestHealth(t *testing.T) {
	srv := newServer(&fakeRepo{})

	rec, env := doJSON(t, srv, http.MethodGet, "/api/v1/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if env.Data["status"] != "healthy" || env.Data["database"] != "connected" {
		t.Errorf("health = %v", env.Data)
	}
}

func TestHealthDegraded(t *testing.T) {
	srv := newServer(&fakeRepo{pingErr: errUnavailable})

	_, env := doJSON(t, srv, http.MethodGet, "/api/v1/health", nil)
	if env.Data["status"] != "degraded" || env.Data["database"] != "unreachable" {
		t.Errorf("health = %v", env.Data)
	}
}

func TestServerErrorHidesDetail(t *testing.T) {
	repo := &fakeRepo{createErr: errUnavailable}
	srv := newServer(repo)

	rec, env := doJSON(t, srv, http.MethodPost, "/api/v1/items", map[string]any{"hotel": "x"})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(env.Message, "connection string") {
		t.Errorf("internal detail leaked: %q", env.Message)
	}
	if env.Error != "Internal Server Error" {
		t.Errorf("envelope = %+v", env)
	}
}
