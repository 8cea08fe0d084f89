package utils

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ParsePagination reads page/limit query params and returns mongo skip/limit values.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int) (skip int64, limit int64) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}

	l, _ := strconv.Atoi(q.Get("limit"))
	if l < 1 {
		l = defaultLimit
	}
	if l > maxLimit {
		l = maxLimit
	}

	return int64((page - 1) * l), int64(l)
}

// ParseSort maps a sort query value to a mongo sort document. Unknown values
// fall back to the given default.
func ParseSort(value string, fallback bson.D, allowed map[string]bson.D) bson.D {
	if allowed != nil {
		if sort, ok := allowed[strings.ToLower(value)]; ok {
			return sort
		}
	}
	return fallback
}

// ParseFloat parses a trimmed query or form value. Callers decide whether a
// malformed value is a 400 or falls back to a default.
func ParseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// FindAndDecode runs a Find and decodes all documents into a slice of T.
func FindAndDecode[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// AggregateAndDecode runs an aggregation pipeline and decodes all documents into a slice of T.
func AggregateAndDecode[T any](ctx context.Context, coll *mongo.Collection, pipeline any) ([]T, error) {
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
