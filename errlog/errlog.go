package errlog

import (
	"context"
	"encoding/json"
	"log"
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

// ReportError ingests a client-side error. Auth is optional, the user ID is
// attached when present.
func ReportError(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var entry models.ErrLog
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil || entry.Message == "" {
		http.Error(w, "An error message is required", http.StatusBadRequest)
		return
	}

	if userID, ok := r.Context().Value(globals.UserIDKey).(string); ok {
		entry.UserID = userID
	}
	entry.LogID = "e" + utils.GenerateRandomString(12)
	entry.CreatedAt = time.Now()

	if _, err := db.ErrLogsCollection.InsertOne(context.TODO(), entry); err != nil {
		log.Printf("Failed to store client error: %v", err)
		http.Error(w, "Failed to store error", http.StatusInternalServerError)
		return
	}

	utils.SendResponse(w, http.StatusCreated, map[string]string{"logid": entry.LogID}, "Error recorded", nil)
}

// GetErrors lists recorded client errors for admins, newest first.
func GetErrors(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	skip, limit := utils.ParsePagination(r, 50, 200)

	filter := bson.M{}
	if platform := r.URL.Query().Get("platform"); platform != "" {
		filter["platform"] = platform
	}

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	entries, err := utils.FindAndDecode[models.ErrLog](r.Context(), db.ErrLogsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch error logs")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": http.StatusOK, "ok": true, "errors": entries})
}
