package spots

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"waydown/db"
	"waydown/globals"
	"waydown/models"
	"waydown/mq"
	"waydown/rdx"
	"waydown/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetPendingSpots lists the moderation queue, oldest first.
func GetPendingSpots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	skip, limit := utils.ParsePagination(r, 20, 100)

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: 1}})

	spots, err := utils.FindAndDecode[models.Spot](r.Context(), db.SpotsCollection,
		bson.M{"status": models.SpotPending}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch pending spots")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": http.StatusOK, "ok": true, "spots": spots})
}

func moderateSpot(w http.ResponseWriter, r *http.Request, ps httprouter.Params, status models.SpotStatus) {
	modID, _ := r.Context().Value(globals.UserIDKey).(string)
	spotID := ps.ByName("spotid")

	var input struct {
		Note string `json:"note"`
	}
	// Body is optional for approvals.
	json.NewDecoder(r.Body).Decode(&input)

	if status == models.SpotRejected && input.Note == "" {
		http.Error(w, "A note is required when rejecting", http.StatusBadRequest)
		return
	}

	var spot models.Spot
	if err := db.SpotsCollection.FindOne(context.TODO(), bson.M{"spotid": spotID}).Decode(&spot); err != nil {
		http.Error(w, "Spot not found", http.StatusNotFound)
		return
	}
	if spot.Status != models.SpotPending {
		http.Error(w, "Spot is not pending review", http.StatusConflict)
		return
	}

	_, err := db.SpotsCollection.UpdateOne(context.TODO(),
		bson.M{"spotid": spotID},
		bson.M{"$set": bson.M{
			"status":     status,
			"mod_note":   input.Note,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		http.Error(w, "Failed to update spot status", http.StatusInternalServerError)
		return
	}

	rdx.RdxDel("spots:list")
	mq.Emit(r.Context(), "spot-moderated", models.Index{EntityType: "spot", EntityId: spotID, Method: "PATCH"})
	mq.EmitEvent(r.Context(), models.Event{
		Type:       "status-change",
		Room:       "user:" + spot.CreatedBy,
		ActorID:    modID,
		TargetID:   spot.CreatedBy,
		EntityType: "spot",
		EntityID:   spotID,
		Message:    string(status),
	})

	utils.SendResponse(w, http.StatusOK, map[string]any{"spotid": spotID, "status": status}, "Spot moderated", nil)
}

func ApproveSpot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	moderateSpot(w, r, ps, models.SpotApproved)
}

func RejectSpot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	moderateSpot(w, r, ps, models.SpotRejected)
}
