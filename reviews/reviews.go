package reviews

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"waydown/db"
	"waydown/globals"
	"waydown/models"
	"waydown/mq"
	"waydown/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func GetReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	spotID := ps.ByName("spotid")
	skip, limit := utils.ParsePagination(r, 10, 100)
	sort := utils.ParseSort(r.URL.Query().Get("sort"),
		bson.D{{Key: "created_at", Value: -1}},
		map[string]bson.D{
			"rating": {{Key: "rating", Value: -1}},
			"oldest": {{Key: "created_at", Value: 1}},
		})

	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(sort)
	reviews, err := utils.FindAndDecode[models.Review](ctx, db.ReviewsCollection,
		bson.M{"spotid": spotID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": http.StatusOK, "ok": true, "reviews": reviews})
}

func AddReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	spotID := ps.ByName("spotid")

	var spot models.Spot
	if err := db.SpotsCollection.FindOne(context.TODO(), bson.M{"spotid": spotID, "status": models.SpotApproved}).Decode(&spot); err != nil {
		http.Error(w, "Spot not found", http.StatusNotFound)
		return
	}

	// One review per user per spot.
	count, err := db.ReviewsCollection.CountDocuments(context.TODO(), bson.M{
		"userid": userID,
		"spotid": spotID,
	})
	if err != nil {
		log.Printf("Error checking for existing review: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if count > 0 {
		http.Error(w, "You have already reviewed this spot", http.StatusConflict)
		return
	}

	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil || review.Rating < 1 || review.Rating > 5 || review.Comment == "" {
		http.Error(w, "Invalid review data", http.StatusBadRequest)
		return
	}

	review.ReviewID = utils.GenerateRandomString(16)
	review.UserID = userID
	review.SpotID = spotID
	review.CreatedAt = time.Now()

	if _, err := db.ReviewsCollection.InsertOne(context.TODO(), review); err != nil {
		http.Error(w, "Failed to save review", http.StatusInternalServerError)
		return
	}

	if err := recomputeSpotRating(context.TODO(), spotID); err != nil {
		log.Printf("Failed to recompute rating for %s: %v", spotID, err)
	}

	if spot.CreatedBy != userID {
		mq.EmitEvent(r.Context(), models.Event{
			Type:       "review",
			Room:       "spot:" + spotID,
			ActorID:    userID,
			TargetID:   spot.CreatedBy,
			EntityType: "spot",
			EntityID:   spotID,
		})
	}

	utils.SendResponse(w, http.StatusCreated, review, "Review added", nil)
}

func DeleteReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	spotID := ps.ByName("spotid")
	reviewID := ps.ByName("reviewid")

	result, err := db.ReviewsCollection.DeleteOne(context.TODO(),
		bson.M{"reviewid": reviewID, "spotid": spotID, "userid": userID})
	if err != nil {
		http.Error(w, "Failed to delete review", http.StatusInternalServerError)
		return
	}
	if result.DeletedCount == 0 {
		http.Error(w, "Review not found", http.StatusNotFound)
		return
	}

	if err := recomputeSpotRating(context.TODO(), spotID); err != nil {
		log.Printf("Failed to recompute rating for %s: %v", spotID, err)
	}

	utils.SendResponse(w, http.StatusOK, nil, "Review deleted", nil)
}

// recomputeSpotRating refreshes the denormalized rating aggregate on the spot.
func recomputeSpotRating(ctx context.Context, spotID string) error {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "spotid", Value: spotID}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$spotid"},
			{Key: "avg", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := db.ReviewsCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	rating := 0.0
	reviewCount := 0
	if cursor.Next(ctx) {
		var agg struct {
			Avg   float64 `bson:"avg"`
			Count int     `bson:"count"`
		}
		if err := cursor.Decode(&agg); err != nil {
			return err
		}
		rating = agg.Avg
		reviewCount = agg.Count
	}

	_, err = db.SpotsCollection.UpdateOne(ctx,
		bson.M{"spotid": spotID},
		bson.M{"$set": bson.M{"rating": rating, "reviewcount": reviewCount}},
	)
	return err
}
