package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookings-rest-api/internal/config"
	"bookings-rest-api/internal/model"
	"bookings-rest-api/internal/validator"
)

// MongoItemRepository implements ItemRepository using MongoDB.
type MongoItemRepository struct {
	client     *mongo.Client
	db         *mongo.Database
	collection *mongo.Collection
}

// NewMongoItemRepository connects to MongoDB and returns an item repository
// bound to the configured database and collection.
func NewMongoItemRepository(cfg config.MongoConfig) (*MongoItemRepository, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetSocketTimeout(cfg.SocketTimeout).
		SetServerSelectionTimeout(cfg.SelectTimeout).
		SetMaxPoolSize(50).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(5 * time.Minute).
		SetRetryWrites(true)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(cfg.Database)
	coll := db.Collection(cfg.Collection)

	slog.Info("connected to MongoDB", "database", cfg.Database, "collection", cfg.Collection)
	return &MongoItemRepository{
		client:     client,
		db:         db,
		collection: coll,
	}, nil
}

// FindAll returns one page of items matching filter plus pagination metadata.
// The count runs as a second call on the same filter, so a page read and its
// total are only eventually consistent with each other.
func (r *MongoItemRepository) FindAll(ctx context.Context, page, perPage int, filter bson.M) (*model.PaginatedResult, error) {
	if filter == nil {
		filter = bson.M{}
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find items: %w", err)
	}

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count items: %w", err)
	}

	items := make([]model.Item, len(docs))
	for i, doc := range docs {
		items[i] = model.ItemFromDocument(doc)
	}

	return &model.PaginatedResult{
		Items:      items,
		Pagination: model.NewPagination(page, perPage, total),
	}, nil
}

// FindByID returns the item with the given hex identifier.
func (r *MongoItemRepository) FindByID(ctx context.Context, id string) (*model.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.NewValidationError("invalid item id")
	}

	var doc bson.M
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find item %s: %w", id, err)
	}

	item := model.ItemFromDocument(doc)
	return &item, nil
}

// Create sanitizes data, stamps both timestamps with the current time and
// inserts the document. The returned item carries the assigned identifier.
func (r *MongoItemRepository) Create(ctx context.Context, data map[string]any) (*model.Item, error) {
	now := time.Now().UTC()
	item := model.Item{
		Fields:    bson.M(validator.Sanitize(data)),
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := r.collection.InsertOne(ctx, item.Document())
	if err != nil {
		return nil, fmt.Errorf("failed to insert item: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		item.ID = oid
	}
	return &item, nil
}

// Update merges sanitized data into the stored document and refreshes
// updated_at. Data identical to the caller's read skips the write entirely,
// so false means "nothing changed". A write that matches zero documents (a
// delete racing in between) also returns false; the caller tells those apart
// with its preceding read.
func (r *MongoItemRepository) Update(ctx context.Context, item *model.Item, data map[string]any) (bool, error) {
	if !item.HasID() {
		return false, model.NewValidationError("cannot update an item without an id")
	}

	set := bson.M(validator.Sanitize(data))
	changed := false
	for k, v := range set {
		if !reflect.DeepEqual(item.Fields[k], v) {
			changed = true
			break
		}
	}
	if !changed {
		return false, nil
	}
	set["updated_at"] = time.Now().UTC()

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": item.ID}, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to update item %s: %w", item.ID.Hex(), err)
	}

	return res.ModifiedCount > 0, nil
}

// Delete removes the item's document. Hard delete, no tombstone.
func (r *MongoItemRepository) Delete(ctx context.Context, item *model.Item) (bool, error) {
	if !item.HasID() {
		return false, model.NewValidationError("cannot delete an item without an id")
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": item.ID})
	if err != nil {
		return false, fmt.Errorf("failed to delete item %s: %w", item.ID.Hex(), err)
	}

	return res.DeletedCount == 1, nil
}

// Search pages through items whose name or description contains query.
func (r *MongoItemRepository) Search(ctx context.Context, query string, page, perPage int) (*model.PaginatedResult, error) {
	return r.FindAll(ctx, page, perPage, SearchFilter(query))
}

// FindByCountry returns all items for a country code.
func (r *MongoItemRepository) FindByCountry(ctx context.Context, code string) ([]model.Item, error) {
	cursor, err := r.collection.Find(ctx, CountryFilter(code))
	if err != nil {
		return nil, fmt.Errorf("failed to find items for country %s: %w", code, err)
	}

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}

	items := make([]model.Item, len(docs))
	for i, doc := range docs {
		items[i] = model.ItemFromDocument(doc)
	}
	return items, nil
}

// TopCountries returns the countries with the most bookings.
func (r *MongoItemRepository) TopCountries(ctx context.Context, limit int) ([]model.GroupCount, error) {
	return r.groupCounts(ctx, GroupCountPipeline("country", limit))
}

// TopHotels returns the hotels with the most bookings.
func (r *MongoItemRepository) TopHotels(ctx context.Context, limit int) ([]model.GroupCount, error) {
	return r.groupCounts(ctx, GroupCountPipeline("hotel", limit))
}

// CancellationStats returns booking counts grouped by is_canceled.
func (r *MongoItemRepository) CancellationStats(ctx context.Context) ([]model.GroupCount, error) {
	return r.groupCounts(ctx, CancellationPipeline())
}

func (r *MongoItemRepository) groupCounts(ctx context.Context, pipeline mongo.Pipeline) ([]model.GroupCount, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate: %w", err)
	}

	var rows []model.GroupCount
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode aggregation: %w", err)
	}
	return rows, nil
}

// AverageADRByHotel returns the average daily rate per hotel.
func (r *MongoItemRepository) AverageADRByHotel(ctx context.Context) ([]model.GroupAverage, error) {
	cursor, err := r.collection.Aggregate(ctx, AverageADRPipeline())
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate: %w", err)
	}

	var rows []model.GroupAverage
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode aggregation: %w", err)
	}
	return rows, nil
}

// InsertBatch inserts prepared documents in one unordered call. On a partial
// failure the store keeps the documents it accepted; only a wholesale error
// (connectivity, bad batch) is returned to the caller.
func (r *MongoItemRepository) InsertBatch(ctx context.Context, docs []any) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	res, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		var bwe mongo.BulkWriteException
		if errors.As(err, &bwe) && res != nil {
			slog.Warn("batch insert partially failed",
				"inserted", len(res.InsertedIDs),
				"failed", len(bwe.WriteErrors),
			)
			return len(res.InsertedIDs), nil
		}
		return 0, fmt.Errorf("failed to insert batch: %w", err)
	}

	return len(res.InsertedIDs), nil
}

// DeleteAll wipes the collection.
func (r *MongoItemRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to delete items: %w", err)
	}
	return res.DeletedCount, nil
}

// Ping verifies the store connection.
func (r *MongoItemRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

// Close closes the MongoDB connection.
func (r *MongoItemRepository) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}
