// Package service holds the business layer between the HTTP handlers and the
// repository: list/search dispatch, the update flow and bulk creation.
package service

import (
	"context"
	"fmt"
	"strings"

	"bookings-rest-api/internal/model"
	"bookings-rest-api/internal/repository"
)

// ItemService handles item business logic.
type ItemService struct {
	repo repository.ItemRepository
}

// NewItemService creates a new item service.
func NewItemService(repo repository.ItemRepository) *ItemService {
	return &ItemService{repo: repo}
}

// List returns one page of items. A non-empty search term switches the read
// to a case-insensitive substring match on name and description.
func (s *ItemService) List(ctx context.Context, page, perPage int, search string) (*model.PaginatedResult, error) {
	if search = strings.TrimSpace(search); search != "" {
		return s.repo.Search(ctx, search, page, perPage)
	}
	return s.repo.FindAll(ctx, page, perPage, nil)
}

// Get returns the item with the given identifier.
func (s *ItemService) Get(ctx context.Context, id string) (*model.Item, error) {
	return s.repo.FindByID(ctx, id)
}

// Create inserts a new item from the given fields.
func (s *ItemService) Create(ctx context.Context, data map[string]any) (*model.Item, error) {
	return s.repo.Create(ctx, data)
}

// Update merges data into the identified item. The explicit read up front
// separates "not found" from "nothing changed": a missing item surfaces as
// model.ErrNotFound, a no-op write returns changed == false.
func (s *ItemService) Update(ctx context.Context, id string, data map[string]any) (*model.Item, bool, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}

	changed, err := s.repo.Update(ctx, item, data)
	if err != nil {
		return nil, false, err
	}
	if changed {
		// Mirror the write locally so the response reflects the new state.
		refreshed, err := s.repo.FindByID(ctx, id)
		if err == nil {
			item = refreshed
		}
	}
	return item, changed, nil
}

// Delete removes the identified item. A second delete of the same id reports
// model.ErrNotFound rather than failing.
func (s *ItemService) Delete(ctx context.Context, id string) error {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, item)
	if err != nil {
		return err
	}
	if !deleted {
		return model.ErrNotFound
	}
	return nil
}

// BulkCreate creates up to the caller-enforced limit of items. Elements are
// processed independently; each failure contributes one indexed entry to the
// result's Errors and never aborts the rest.
func (s *ItemService) BulkCreate(ctx context.Context, elements []any) *model.BulkResult {
	result := &model.BulkResult{}

	for i, element := range elements {
		data, ok := element.(map[string]any)
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("item %d: not a JSON object", i))
			continue
		}

		item, err := s.repo.Create(ctx, data)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("item %d: %v", i, err))
			continue
		}
		result.CreatedItems = append(result.CreatedItems, *item)
	}

	return result
}

// FindByCountry returns all items for a country code.
func (s *ItemService) FindByCountry(ctx context.Context, code string) ([]model.Item, error) {
	return s.repo.FindByCountry(ctx, code)
}

// TopCountries returns the countries with the most bookings.
func (s *ItemService) TopCountries(ctx context.Context, limit int) ([]model.GroupCount, error) {
	return s.repo.TopCountries(ctx, limit)
}

// TopHotels returns the hotels with the most bookings.
func (s *ItemService) TopHotels(ctx context.Context, limit int) ([]model.GroupCount, error) {
	return s.repo.TopHotels(ctx, limit)
}

// CancellationStats returns booking counts grouped by cancellation flag.
func (s *ItemService) CancellationStats(ctx context.Context) ([]model.GroupCount, error) {
	return s.repo.CancellationStats(ctx)
}

// AverageADRByHotel returns the average daily rate per hotel.
func (s *ItemService) AverageADRByHotel(ctx context.Context) ([]model.GroupAverage, error) {
	return s.repo.AverageADRByHotel(ctx)
}

// Ping verifies the store connection.
func (s *ItemService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
