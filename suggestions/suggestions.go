package suggestions

import (
	"context"
	"encoding/json"
	"net/http"

	"waydown/db"
	"waydown/globals"
	"waydown/models"
	"waydown/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SuggestFollowers proposes users to follow: not already followed, sharing at
// least one interest with the caller when possible.
func SuggestFollowers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	skip, limit := utils.ParsePagination(r, 10, 50)

	var followData models.UserFollow
	err := db.FollowingsCollection.FindOne(context.TODO(), bson.M{"userid": userID}).Decode(&followData)
	if err != nil && err != mongo.ErrNoDocuments {
		http.Error(w, "Failed to fetch follow data", http.StatusInternalServerError)
		return
	}

	excluded := append(followData.Follows, userID)

	var user models.User
	interestFilter := bson.M{}
	if err := db.UserCollection.FindOne(context.TODO(), bson.M{"userid": userID}).Decode(&user); err == nil && len(user.Interests) > 0 {
		interestFilter["interests"] = bson.M{"$in": user.Interests}
	}

	filter := bson.M{"userid": bson.M{"$nin": excluded}}
	for k, v := range interestFilter {
		filter[k] = v
	}

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "followerscount", Value: -1}}).
		SetProjection(bson.M{"userid": 1, "username": 1, "bio": 1, "avatar": 1})

	suggested, err := utils.FindAndDecode[models.UserSuggest](context.TODO(), db.UserCollection, filter, opts)
	if err != nil {
		http.Error(w, "Failed to fetch suggestions", http.StatusInternalServerError)
		return
	}

	// Interest matching can come up empty for niche profiles, widen to anyone.
	if len(suggested) == 0 && len(interestFilter) > 0 {
		suggested, err = utils.FindAndDecode[models.UserSuggest](context.TODO(), db.UserCollection,
			bson.M{"userid": bson.M{"$nin": excluded}}, opts)
		if err != nil {
			http.Error(w, "Failed to fetch suggestions", http.StatusInternalServerError)
			return
		}
	}

	for i := range suggested {
		suggested[i].IsFollowing = false
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(suggested); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
