package spots

import (
	"context"
	"net/http"
	"time"

	"waydown/db"
	"waydown/models"
	"waydown/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetNearbySpots runs a $geoNear pipeline around the given coordinates.
// Radius is meters, default 5km, capped at 50km.
func GetNearbySpots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := r.URL.Query()
	latStr, lngStr := q.Get("lat"), q.Get("lng")
	if latStr == "" || lngStr == "" {
		http.Error(w, "lat and lng are required", http.StatusBadRequest)
		return
	}
	lat, latErr := utils.ParseFloat(latStr)
	lng, lngErr := utils.ParseFloat(lngStr)
	if latErr != nil || lngErr != nil {
		http.Error(w, "lat and lng must be numeric", http.StatusBadRequest)
		return
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		http.Error(w, "Coordinates out of range", http.StatusBadRequest)
		return
	}

	radius, radiusErr := utils.ParseFloat(q.Get("radius"))
	if radiusErr != nil || radius <= 0 {
		radius = 5000
	}
	if radius > 50000 {
		radius = 50000
	}

	skip, limit := utils.ParsePagination(r, 20, 100)

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$geoNear", Value: bson.D{
			{Key: "near", Value: bson.D{
				{Key: "type", Value: "Point"},
				{Key: "coordinates", Value: bson.A{lng, lat}},
			}},
			{Key: "distanceField", Value: "distance"},
			{Key: "maxDistance", Value: radius},
			{Key: "query", Value: bson.D{{Key: "status", Value: models.SpotApproved}}},
			{Key: "spherical", Value: true},
		}}},
		bson.D{{Key: "$skip", Value: skip}},
		bson.D{{Key: "$limit", Value: limit}},
	}

	spots, err := utils.AggregateAndDecode[models.Spot](ctx, db.SpotsCollection, pipeline)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch nearby spots")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": http.StatusOK, "ok": true, "spots": spots})
}

// GetTrendingTags aggregates tag usage over the last 7 days of approved spots.
func GetTrendingTags(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, limit := utils.ParsePagination(r, 10, 50)
	since := time.Now().AddDate(0, 0, -7)

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "status", Value: models.SpotApproved},
			{Key: "created_at", Value: bson.D{{Key: "$gte", Value: since}}},
		}}},
		bson.D{{Key: "$unwind", Value: "$tags"}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$tags"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
	}

	tags, err := utils.AggregateAndDecode[models.TrendingTag](ctx, db.SpotsCollection, pipeline)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch trending tags")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": http.StatusOK, "ok": true, "tags": tags})
}
