package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AsMap returns the wire form of the item: hex id, RFC3339 UTC timestamps and
// the open fields at top level, all converted to portable JSON values. This is
// the only place store-native representations cross into the response.
func (it *Item) AsMap() map[string]any {
	out := make(map[string]any, len(it.Fields)+3)
	for k, v := range it.Fields {
		out[k] = Portable(v)
	}
	if it.HasID() {
		out["id"] = it.ID.Hex()
	}
	if !it.CreatedAt.IsZero() {
		out["created_at"] = it.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !it.UpdatedAt.IsZero() {
		out["updated_at"] = it.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return out
}

// Portable converts a decoded BSON value into plain JSON-safe types.
// Identifiers become hex strings, dates become RFC3339 strings, and
// containers are converted recursively.
func Portable(v any) any {
	switch t := v.(type) {
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return t.Time().UTC().Format(time.RFC3339)
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case primitive.Decimal128:
		return t.String()
	case bson.M:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = Portable(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = Portable(e)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = Portable(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Portable(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Portable(e)
		}
		return out
	default:
		return v
	}
}
