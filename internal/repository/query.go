package repository

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SearchFilter matches query case-insensitively as a substring of the name or
// description fields. The query is quoted so regex metacharacters in user
// input stay literal.
func SearchFilter(query string) bson.M {
	pattern := regexp.QuoteMeta(query)
	return bson.M{"$or": bson.A{
		bson.M{"name": bson.M{"$regex": pattern, "$options": "i"}},
		bson.M{"description": bson.M{"$regex": pattern, "$options": "i"}},
	}}
}

// CountryFilter matches items whose country field equals code, upper-cased.
func CountryFilter(code string) bson.M {
	return bson.M{"country": strings.ToUpper(code)}
}

// GroupCountPipeline groups documents by field, counts each group and returns
// the limit largest groups. Order among groups with equal counts is whatever
// the server produces.
func GroupCountPipeline(field string, limit int) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
	}
}

// CancellationPipeline groups documents by is_canceled and counts each group,
// sorted ascending by the group key.
func CancellationPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$is_canceled"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}

// AverageADRPipeline computes the average adr per hotel, sorted by the
// average descending.
func AverageADRPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$hotel"},
			{Key: "average_adr", Value: bson.D{{Key: "$avg", Value: "$adr"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "average_adr", Value: -1}}}},
	}
}
