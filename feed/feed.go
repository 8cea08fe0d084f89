package feed

import (
	"context"
	"net/http"
	"time"

	"waydown/db"
	"waydown/globals"
	"waydown/models"
	"waydown/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// followedIDs returns the set of user IDs the caller follows.
func followedIDs(ctx context.Context, userID string) ([]string, error) {
	var rel models.UserFollow
	err := db.FollowingsCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&rel)
	if err != nil {
		return []string{}, nil
	}
	return rel.Follows, nil
}

// GetFeed assembles the home feed: spots and posts from followed users plus
// interest-matched approved spots, scored by interest overlap and recency.
func GetFeed(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	follows, err := followedIDs(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load follow graph")
		return
	}

	skip, limit := utils.ParsePagination(r, 20, 50)

	spots, err := feedSpots(ctx, user, follows, skip, limit)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build feed")
		return
	}

	posts, err := feedPosts(ctx, follows, skip, limit)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build feed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"status": http.StatusOK,
		"ok":     true,
		"spots":  spots,
		"posts":  posts,
	})
}

// feedSpots scores approved spots by how many of the user's interests their
// tags share, boosting spots from followed users, newest first within a score.
func feedSpots(ctx context.Context, user models.User, follows []string, skip, limit int64) ([]models.Spot, error) {
	interests := user.Interests
	if interests == nil {
		interests = []string{}
	}
	if follows == nil {
		follows = []string{}
	}

	match := bson.M{"status": models.SpotApproved}
	if len(follows) > 0 || len(interests) > 0 {
		match["$or"] = []bson.M{
			{"createdBy": bson.M{"$in": follows}},
			{"tags": bson.M{"$in": interests}},
		}
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$addFields": bson.M{
			"score": bson.M{"$add": []any{
				bson.M{"$size": bson.M{"$setIntersection": []any{
					bson.M{"$ifNull": []any{"$tags", []string{}}},
					interests,
				}}},
				bson.M{"$cond": []any{
					bson.M{"$in": []any{"$createdBy", follows}},
					2,
					0,
				}},
			}},
		}},
		{"$sort": bson.M{"score": -1, "created_at": -1}},
		{"$skip": skip},
		{"$limit": limit},
	}

	return utils.AggregateAndDecode[models.Spot](ctx, db.SpotsCollection, pipeline)
}

// feedPosts returns recent posts from followed users.
func feedPosts(ctx context.Context, follows []string, skip, limit int64) ([]models.Post, error) {
	if len(follows) == 0 {
		return []models.Post{}, nil
	}

	pipeline := []bson.M{
		{"$match": bson.M{"createdBy": bson.M{"$in": follows}}},
		{"$sort": bson.M{"created_at": -1}},
		{"$skip": skip},
		{"$limit": limit},
	}

	return utils.AggregateAndDecode[models.Post](ctx, db.PostsCollection, pipeline)
}
