package userdata

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"waydown/db"
	"waydown/globals"
	"waydown/models"
	"waydown/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Toggle records an activity row, or removes it for "un" actions, and reports
// whether the state actually changed. Positive actions upsert on the full
// (user, action, entity) key so repeating one is a no-op; callers use the
// returned flag to keep denormalized counters in step.
func Toggle(action, entityID, userID, entityType string) (bool, error) {
	if base, isUndo := undoes(action); isUndo {
		res, err := db.UserDataCollection.DeleteOne(context.TODO(), bson.M{
			"userid":      userID,
			"action":      base,
			"entity_type": entityType,
			"entity_id":   entityID,
		})
		if err != nil {
			return false, err
		}
		return res.DeletedCount > 0, nil
	}

	res, err := db.UserDataCollection.UpdateOne(context.TODO(),
		bson.M{
			"userid":      userID,
			"action":      action,
			"entity_type": entityType,
			"entity_id":   entityID,
		},
		bson.M{"$setOnInsert": bson.M{"created_at": time.Now()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

// undoes maps an "un" action to the positive action it reverses.
func undoes(action string) (string, bool) {
	switch action {
	case "unfollow", "unlike", "unsave":
		return action[2:], true
	}
	return "", false
}

// GetUserData lists a user's activity of one kind, newest first.
func GetUserData(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	action := ps.ByName("action")
	skip, limit := utils.ParsePagination(r, 20, 100)

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	records, err := utils.FindAndDecode[models.UserData](r.Context(), db.UserDataCollection,
		bson.M{"userid": userID, "action": action}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch activity")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}
