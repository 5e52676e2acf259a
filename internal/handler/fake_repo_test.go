package handler_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookings-rest-api/internal/model"
	"bookings-rest-api/internal/validator"
)

// errUnavailable stands in for a store failure whose text must never reach
// the client.
var errUnavailable = errors.New("store unavailable: connection string mongodb://user:pass@db refused")

// fakeRepo is an in-memory ItemRepository for handler tests. Items keep
// insertion order so pagination is deterministic.
type fakeRepo struct {
	items     []model.Item
	createErr error
	pingErr   error
}

func (f *fakeRepo) paginate(items []model.Item, page, perPage int) *model.PaginatedResult {
	total := int64(len(items))
	startIdx := (page - 1) * perPage
	endIdx := startIdx + perPage
	if startIdx > len(items) {
		startIdx = len(items)
	}
	if endIdx > len(items) {
		endIdx = len(items)
	}
	return &model.PaginatedResult{
		Items:      items[startIdx:endIdx],
		Pagination: model.NewPagination(page, perPage, total),
	}
}

func (f *fakeRepo) FindAll(ctx context.Context, page, perPage int, filter bson.M) (*model.PaginatedResult, error) {
	return f.paginate(f.items, page, perPage), nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*model.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.NewValidationError("invalid item id")
	}
	for i := range f.items {
		if f.items[i].ID == oid {
			item := f.items[i]
			return &item, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f *fakeRepo) Create(ctx context.Context, data map[string]any) (*model.Item, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	now := time.Now().UTC()
	item := model.Item{
		ID:        primitive.NewObjectID(),
		Fields:    bson.M(validator.Sanitize(data)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.items = append(f.items, item)
	return &item, nil
}

func (f *fakeRepo) Update(ctx context.Context, item *model.Item, data map[string]any) (bool, error) {
	if !item.HasID() {
		return false, model.NewValidationError("cannot update an item without an id")
	}
	set := validator.Sanitize(data)
	changed := false
	for k, v := range set {
		if !reflect.DeepEqual(item.Fields[k], v) {
			changed = true
		}
	}
	if !changed {
		return false, nil
	}
	for i := range f.items {
		if f.items[i].ID == item.ID {
			for k, v := range set {
				f.items[i].Fields[k] = v
			}
			f.items[i].UpdatedAt = time.Now().UTC()
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) Delete(ctx context.Context, item *model.Item) (bool, error) {
	if !item.HasID() {
		return false, model.NewValidationError("cannot delete an item without an id")
	}
	for i := range f.items {
		if f.items[i].ID == item.ID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) Search(ctx context.Context, query string, page, perPage int) (*model.PaginatedResult, error) {
	q := strings.ToLower(query)
	var matched []model.Item
	for _, item := range f.items {
		name, _ := item.Fields["name"].(string)
		desc, _ := item.Fields["description"].(string)
		if strings.Contains(strings.ToLower(name), q) || strings.Contains(strings.ToLower(desc), q) {
			matched = append(matched, item)
		}
	}
	return f.paginate(matched, page, perPage), nil
}

func (f *fakeRepo) FindByCountry(ctx context.Context, code string) ([]model.Item, error) {
	code = strings.ToUpper(code)
	var matched []model.Item
	for _, item := range f.items {
		if c, _ := item.Fields["country"].(string); c == code {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func (f *fakeRepo) counts(field string, limit int) []model.GroupCount {
	tally := make(map[any]int64)
	var order []any
	for _, item := range f.items {
		v := item.Fields[field]
		if _, seen := tally[v]; !seen {
			order = append(order, v)
		}
		tally[v]++
	}
	var rows []model.GroupCount
	for _, v := range order {
		rows = append(rows, model.GroupCount{Value: v, Count: tally[v]})
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

func (f *fakeRepo) TopCountries(ctx context.Context, limit int) ([]model.GroupCount, error) {
	return f.counts("country", limit), nil
}

func (f *fakeRepo) TopHotels(ctx context.Context, limit int) ([]model.GroupCount, error) {
	return f.counts("hotel", limit), nil
}

func (f *fakeRepo) CancellationStats(ctx context.Context) ([]model.GroupCount, error) {
	return f.counts("is_canceled", 0), nil
}

func (f *fakeRepo) AverageADRByHotel(ctx context.Context) ([]model.GroupAverage, error) {
	sums := make(map[any]float64)
	ns := make(map[any]float64)
	var order []any
	for _, item := range f.items {
		hotel := item.Fields["hotel"]
		adr, _ := item.Fields["adr"].(float64)
		if _, seen := sums[hotel]; !seen {
			order = append(order, hotel)
		}
		sums[hotel] += adr
		ns[hotel]++
	}
	var rows []model.GroupAverage
	for _, hotel := range order {
		rows = append(rows, model.GroupAverage{Value: hotel, AverageADR: sums[hotel] / ns[hotel]})
	}
	return rows, nil
}

func (f *fakeRepo) InsertBatch(ctx context.Context, docs []any) (int, error) {
	return 0, errors.New("not used by handlers")
}

func (f *fakeRepo) DeleteAll(ctx context.Context) (int64, error) {
	n := int64(len(f.items))
	f.items = nil
	return n, nil
}

func (f *fakeRepo) Ping(ctx context.Context) error {
	return f.pingErr
}

func (f *fakeRepo) Close() error {
	return nil
}
