package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"waydown/db"
	"waydown/globals"
	"waydown/models"
	"waydown/mq"
	"waydown/userdata"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func handleFollowAction(w http.ResponseWriter, r *http.Request, ps httprouter.Params, action string) {
	currentUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || currentUserID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	targetUserID := ps.ByName("userid")
	if targetUserID == "" || targetUserID == currentUserID {
		http.Error(w, "Invalid target user", http.StatusBadRequest)
		return
	}

	changed, err := UpdateFollowRelationship(currentUserID, targetUserID, action)
	if err != nil {
		log.Printf("Error updating follow relationship: %v", err)
		http.Error(w, "Failed to update follow relationship", http.StatusInternalServerError)
		return
	}

	if _, err := userdata.Toggle(action, targetUserID, currentUserID, "profile"); err != nil {
		log.Printf("Error recording follow activity: %v", err)
	}

	if changed && action == "follow" {
		mq.EmitEvent(r.Context(), models.Event{
			Type:       "follow",
			Room:       "user:" + targetUserID,
			ActorID:    currentUserID,
			TargetID:   targetUserID,
			EntityType: "user",
			EntityID:   targetUserID,
		})
	}

	response := map[string]any{
		"isFollowing": action == "follow",
		"ok":          true,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func Follow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	handleFollowAction(w, r, ps, "follow")
}

func Unfollow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	handleFollowAction(w, r, ps, "unfollow")
}

// UpdateFollowRelationship applies a follow or unfollow and reports whether
// the relationship actually changed. $addToSet and $pull are idempotent, so a
// repeated follow leaves the sets alone and the counters must not move either.
func UpdateFollowRelationship(currentUserID, targetUserID, action string) (bool, error) {
	if action != "follow" && action != "unfollow" {
		return false, fmt.Errorf("invalid action: %s", action)
	}

	op := "$addToSet"
	inc := 1
	if action == "unfollow" {
		op = "$pull"
		inc = -1
	}

	upsert := options.Update().SetUpsert(true)

	res, err := db.FollowingsCollection.UpdateOne(context.TODO(),
		bson.M{"userid": currentUserID},
		bson.M{op: bson.M{"follows": targetUserID}},
		upsert,
	)
	if err != nil {
		return false, err
	}
	changed := setChanged(res)

	_, err = db.FollowingsCollection.UpdateOne(context.TODO(),
		bson.M{"userid": targetUserID},
		bson.M{op: bson.M{"followers": currentUserID}},
		upsert,
	)
	if err != nil {
		return changed, err
	}

	if changed {
		// Denormalized counters on the user docs; feed queries read these.
		db.UserCollection.UpdateOne(context.TODO(),
			bson.M{"userid": currentUserID}, bson.M{"$inc": bson.M{"followscount": inc}})
		db.UserCollection.UpdateOne(context.TODO(),
			bson.M{"userid": targetUserID}, bson.M{"$inc": bson.M{"followerscount": inc}})
	}

	return changed, nil
}

// setChanged reports whether an $addToSet or $pull update touched the set.
// A fresh upsert counts: the first follow creates the doc without modifying one.
func setChanged(res *mongo.UpdateResult) bool {
	return res.ModifiedCount > 0 || res.UpsertedCount > 0
}

func listFollowUsers(w http.ResponseWriter, ids []string) {
	if len(ids) == 0 {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]models.UserSuggest{})
		return
	}

	opts := options.Find().SetProjection(bson.M{"userid": 1, "username": 1, "bio": 1, "avatar": 1})
	cursor, err := db.UserCollection.Find(context.TODO(), bson.M{"userid": bson.M{"$in": ids}}, opts)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(context.TODO())

	users := []models.UserSuggest{}
	if err = cursor.All(context.TODO(), &users); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}

func GetFollowers(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var userFollow models.UserFollow
	err := db.FollowingsCollection.FindOne(context.TODO(), bson.M{"userid": ps.ByName("userid")}).Decode(&userFollow)
	if err != nil && err != mongo.ErrNoDocuments {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	listFollowUsers(w, userFollow.Followers)
}

func GetFollowing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var userFollow models.UserFollow
	err := db.FollowingsCollection.FindOne(context.TODO(), bson.M{"userid": ps.ByName("userid")}).Decode(&userFollow)
	if err != nil && err != mongo.ErrNoDocuments {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	listFollowUsers(w, userFollow.Follows)
}

func DoesFollow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	followedUserID := ps.ByName("userid")
	if followedUserID == "" {
		http.Error(w, "User ID is required", http.StatusBadRequest)
		return
	}

	count, err := db.FollowingsCollection.CountDocuments(context.TODO(), bson.M{
		"userid":  userID,
		"follows": bson.M{"$in": []string{followedUserID}},
	})
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := map[string]bool{"isFollowing": count > 0}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
