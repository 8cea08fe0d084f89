package reports

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

var validReasons = map[string]bool{
	"spam":          true,
	"inappropriate": true,
	"wrong-info":    true,
	"duplicate":     true,
	"other":         true,
}

func CreateReport(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		EntityType string `json:"entity_type"`
		EntityID   string `json:"entity_id"`
		Reason     string `json:"reason"`
		Notes      string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if input.EntityID == "" || !validReasons[input.Reason] {
		http.Error(w, "entity_id and a valid reason are required", http.StatusBadRequest)
		return
	}
	if input.EntityType != "spot" && input.EntityType != "post" && input.EntityType != "comment" && input.EntityType != "user" {
		http.Error(w, "Unsupported entity type", http.StatusBadRequest)
		return
	}

	report := models.Report{
		ReportID:   "r" + utils.GenerateRandomString(12),
		EntityType: input.EntityType,
		EntityID:   input.EntityID,
		ReportedBy: userID,
		Reason:     input.Reason,
		Notes:      input.Notes,
		Status:     models.ReportOpen,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if _, err := db.ReportsCollection.InsertOne(context.TODO(), report); err != nil {
		http.Error(w, "Failed to submit report", http.StatusInternalServerError)
		return
	}

	utils.SendResponse(w, http.StatusCreated, map[string]string{"reportid": report.ReportID}, "Report submitted", nil)
}

// GetReports lists reports for moderators, open ones first.
func GetReports(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	skip, limit := utils.ParsePagination(r, 20, 100)

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}})

	reports, err := utils.FindAndDecode[models.Report](r.Context(), db.ReportsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch reports")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": http.StatusOK, "ok": true, "reports": reports})
}

// ResolveReport marks a report reviewed or dismissed.
func ResolveReport(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	modID, _ := r.Context().Value(globals.UserIDKey).(string)
	reportID := ps.ByName("reportid")

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if input.Status != string(models.ReportReviewed) && input.Status != string(models.ReportDismissed) {
		http.Error(w, "Status must be reviewed or dismissed", http.StatusBadRequest)
		return
	}

	result, err := db.ReportsCollection.UpdateOne(context.TODO(),
		bson.M{"reportid": reportID, "status": models.ReportOpen},
		bson.M{"$set": bson.M{
			"status":     input.Status,
			"reviewedBy": modID,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		http.Error(w, "Failed to update report", http.StatusInternalServerError)
		return
	}
	if result.MatchedCount == 0 {
		http.Error(w, "Report not found or already resolved", http.StatusNotFound)
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Report resolved", nil)
}
