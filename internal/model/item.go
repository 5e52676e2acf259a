package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item is one schema-less booking document. Fields holds every key the client
// supplied; the identifier and timestamps are owned by the repository and kept
// separate so they can never be overwritten by request data.
type Item struct {
	ID        primitive.ObjectID
	Fields    bson.M
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasID reports whether the item has been persisted.
func (it *Item) HasID() bool {
	return !it.ID.IsZero()
}

// Document returns the full BSON document for the item, timestamps included.
func (it *Item) Document() bson.M {
	doc := make(bson.M, len(it.Fields)+3)
	for k, v := range it.Fields {
		doc[k] = v
	}
	if it.HasID() {
		doc["_id"] = it.ID
	}
	doc["created_at"] = it.CreatedAt
	doc["updated_at"] = it.UpdatedAt
	return doc
}

// ItemFromDocument splits a raw store document into an Item, pulling the
// identifier and timestamps out of the open field map.
func ItemFromDocument(doc bson.M) Item {
	it := Item{Fields: make(bson.M, len(doc))}
	for k, v := range doc {
		switch k {
		case "_id":
			if id, ok := v.(primitive.ObjectID); ok {
				it.ID = id
			}
		case "created_at":
			it.CreatedAt = asTime(v)
		case "updated_at":
			it.UpdatedAt = asTime(v)
		default:
			it.Fields[k] = v
		}
	}
	return it
}

func asTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case primitive.DateTime:
		return t.Time()
	}
	return time.Time{}
}

// GroupCount is one row of a grouped count rollup.
type GroupCount struct {
	Value any   `bson:"_id"`
	Count int64 `bson:"count"`
}

// GroupAverage is one row of a grouped average rollup.
type GroupAverage struct {
	Value      any     `bson:"_id"`
	AverageADR float64 `bson:"average_adr"`
}

// BulkResult reports the outcome of a bulk create request. Each failed
// element contributes exactly one entry to Errors, tagged with its index.
type BulkResult struct {
	CreatedItems []Item
	Errors       []string
}

// CreatedCount is the number of items the bulk request created.
func (b *BulkResult) CreatedCount() int {
	return len(b.CreatedItems)
}
