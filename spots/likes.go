package spots

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"waydown/db"
	"waydown/globals"
	"waydown/models"
	"waydown/mq"
	"waydown/rdx"
	"waydown/userdata"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

func toggleLike(w http.ResponseWriter, r *http.Request, ps httprouter.Params, like bool) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	spotID := ps.ByName("spotid")

	var spot models.Spot
	if err := db.SpotsCollection.FindOne(context.TODO(), bson.M{"spotid": spotID}).Decode(&spot); err != nil {
		http.Error(w, "Spot not found", http.StatusNotFound)
		return
	}

	delta := int64(1)
	action := "like"
	if !like {
		delta = -1
		action = "unlike"
	}

	changed, err := userdata.Toggle(action, spotID, userID, "spot")
	if err != nil {
		log.Printf("like toggle failed for spot %s: %v", spotID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !changed {
		// Repeated like or unmatched unlike; the counter stays put.
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true, "liked": like})
		return
	}

	// Write-behind: counter lives in redis, the flush worker folds it into mongo.
	if _, err := rdx.IncrLikeCount("spot", spotID, delta); err != nil {
		log.Printf("like counter failed, falling back to direct update: %v", err)
		db.SpotsCollection.UpdateOne(context.TODO(),
			bson.M{"spotid": spotID}, bson.M{"$inc": bson.M{"likes": delta}})
	}

	if like && spot.CreatedBy != userID {
		mq.EmitEvent(r.Context(), models.Event{
			Type:       "like",
			Room:       "spot:" + spotID,
			ActorID:    userID,
			TargetID:   spot.CreatedBy,
			EntityType: "spot",
			EntityID:   spotID,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"ok": true, "liked": like})
}

func LikeSpot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	toggleLike(w, r, ps, true)
}

func UnlikeSpot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	toggleLike(w, r, ps, false)
}

func toggleSave(w http.ResponseWriter, r *http.Request, ps httprouter.Params, save bool) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	spotID := ps.ByName("spotid")

	delta := 1
	action := "save"
	if !save {
		delta = -1
		action = "unsave"
	}

	count, err := db.SpotsCollection.CountDocuments(context.TODO(), bson.M{"spotid": spotID})
	if err != nil || count == 0 {
		http.Error(w, "Spot not found", http.StatusNotFound)
		return
	}

	changed, err := userdata.Toggle(action, spotID, userID, "spot")
	if err != nil {
		log.Printf("save toggle failed for spot %s: %v", spotID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if changed {
		db.SpotsCollection.UpdateOne(context.TODO(),
			bson.M{"spotid": spotID}, bson.M{"$inc": bson.M{"saves": delta}})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"ok": true, "saved": save})
}

func SaveSpot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	toggleSave(w, r, ps, true)
}

func UnsaveSpot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	toggleSave(w, r, ps, false)
}

// GetSavedSpots lists the caller's saved spots from the userdata records.
func GetSavedSpots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	spots, err := savedSpotsFor(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to fetch saved spots", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(spots)
}

func savedSpotsFor(ctx context.Context, userID string) ([]models.Spot, error) {
	cursor, err := db.UserDataCollection.Find(ctx,
		bson.M{"userid": userID, "action": "save", "entity_type": "spot"})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.UserData
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.EntityID)
	}
	if len(ids) == 0 {
		return []models.Spot{}, nil
	}

	spotCursor, err := db.SpotsCollection.Find(ctx, bson.M{"spotid": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer spotCursor.Close(ctx)

	spots := []models.Spot{}
	if err := spotCursor.All(ctx, &spots); err != nil {
		return nil, err
	}
	return spots, nil
}
