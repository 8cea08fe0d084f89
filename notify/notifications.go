package notify

import (
	"context"
	"net/http"

	"waydown/db"
	"waydown/globals"
	"waydown/models"
	"waydown/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetNotifications lists the caller's notifications, newest first.
func GetNotifications(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	skip, limit := utils.ParsePagination(r, 20, 100)

	filter := bson.M{"userid": userID}
	if r.URL.Query().Get("unread") == "true" {
		filter["read"] = false
	}

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	notifs, err := utils.FindAndDecode[models.Notification](r.Context(), db.NotificationsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}

	unread, err := db.NotificationsCollection.CountDocuments(r.Context(),
		bson.M{"userid": userID, "read": false})
	if err != nil {
		unread = 0
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"status":        http.StatusOK,
		"ok":            true,
		"notifications": notifs,
		"unread":        unread,
	})
}

// MarkRead flags a single notification as read.
func MarkRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	result, err := db.NotificationsCollection.UpdateOne(context.TODO(),
		bson.M{"notifid": ps.ByName("notifid"), "userid": userID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		http.Error(w, "Failed to update notification", http.StatusInternalServerError)
		return
	}
	if result.MatchedCount == 0 {
		http.Error(w, "Notification not found", http.StatusNotFound)
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Notification marked read", nil)
}

// MarkAllRead flags every unread notification for the caller.
func MarkAllRead(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	result, err := db.NotificationsCollection.UpdateMany(context.TODO(),
		bson.M{"userid": userID, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		http.Error(w, "Failed to update notifications", http.StatusInternalServerError)
		return
	}

	utils.SendResponse(w, http.StatusOK, map[string]int64{"updated": result.ModifiedCount}, "Notifications marked read", nil)
}
