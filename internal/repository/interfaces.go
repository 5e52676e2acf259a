package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"bookings-rest-api/internal/model"
)

// ItemRepository defines document access for booking items.
type ItemRepository interface {
	// FindAll returns one page of items matching filter (nil matches all).
	FindAll(ctx context.Context, page, perPage int, filter bson.M) (*model.PaginatedResult, error)

	// FindByID returns the item with the given hex identifier.
	// It returns a ValidationError for a malformed identifier and
	// model.ErrNotFound when no document matches.
	FindByID(ctx context.Context, id string) (*model.Item, error)

	// Create sanitizes data, stamps timestamps and inserts a new document.
	Create(ctx context.Context, data map[string]any) (*model.Item, error)

	// Update merges sanitized data into the stored document and refreshes
	// updated_at. It reports whether at least one field changed; false also
	// covers a write that matched nothing, which the caller disambiguates.
	Update(ctx context.Context, item *model.Item, data map[string]any) (bool, error)

	// Delete removes the item and reports whether a document was deleted.
	Delete(ctx context.Context, item *model.Item) (bool, error)

	// Search pages through items whose name or description contains the
	// query, case-insensitively.
	Search(ctx context.Context, query string, page, perPage int) (*model.PaginatedResult, error)

	// FindByCountry returns all items whose country equals code (upper-cased).
	FindByCountry(ctx context.Context, code string) ([]model.Item, error)

	// TopCountries returns the countries with the most bookings.
	TopCountries(ctx context.Context, limit int) ([]model.GroupCount, error)

	// TopHotels returns the hotels with the most bookings.
	TopHotels(ctx context.Context, limit int) ([]model.GroupCount, error)

	// CancellationStats returns booking counts grouped by is_canceled.
	CancellationStats(ctx context.Context) ([]model.GroupCount, error)

	// AverageADRByHotel returns the average daily rate per hotel.
	AverageADRByHotel(ctx context.Context) ([]model.GroupAverage, error)

	// InsertBatch inserts prepared documents in one unordered store call and
	// returns how many made it in; documents rejected by the store do not
	// block the rest of the batch.
	InsertBatch(ctx context.Context, docs []any) (int, error)

	// DeleteAll wipes the collection and returns the number of removed documents.
	DeleteAll(ctx context.Context) (int64, error)

	// Ping verifies the store connection.
	Ping(ctx context.Context) error

	// Close closes the repository connection.
	Close() error
}

// BatchInserter is the slice of the repository the CSV importer needs.
type BatchInserter interface {
	InsertBatch(ctx context.Context, docs []any) (int, error)
	DeleteAll(ctx context.Context) (int64, error)
}
