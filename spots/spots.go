package spots

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"waydown/db"
	"waydown/filemgr"
	"waydown/globals"
	"waydown/models"
	"waydown/mq"
	"waydown/rdx"
	"waydown/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func parseSpotFormData(r *http.Request) (models.Spot, error) {
	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB limit
		return models.Spot{}, fmt.Errorf("unable to parse form")
	}

	name := strings.TrimSpace(r.FormValue("name"))
	description := strings.TrimSpace(r.FormValue("description"))
	category := strings.TrimSpace(r.FormValue("category"))
	latStr := strings.TrimSpace(r.FormValue("lat"))
	lngStr := strings.TrimSpace(r.FormValue("lng"))

	if name == "" || description == "" || category == "" || latStr == "" || lngStr == "" {
		return models.Spot{}, fmt.Errorf("all required fields must be filled")
	}

	lat, latErr := utils.ParseFloat(latStr)
	lng, lngErr := utils.ParseFloat(lngStr)
	if latErr != nil || lngErr != nil {
		return models.Spot{}, fmt.Errorf("coordinates must be numeric")
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return models.Spot{}, fmt.Errorf("coordinates out of range")
	}

	spot := models.Spot{
		Name:        name,
		Description: description,
		Category:    category,
		Tags:        utils.SplitTags(r.FormValue("tags")),
		Location:    models.NewGeoPoint(lng, lat),
		Address:     strings.TrimSpace(r.FormValue("address")),
		City:        strings.TrimSpace(r.FormValue("city")),
		Country:     strings.TrimSpace(r.FormValue("country")),
	}
	return spot, nil
}

func CreateSpot(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	spot, err := parseSpotFormData(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	urls, thumbs, err := filemgr.SaveFormImages(r, "photos", filemgr.EntitySpot)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for i := range urls {
		spot.Photos = append(spot.Photos, models.SpotPhoto{URL: urls[i], Thumb: thumbs[i]})
	}
	if spot.Photos == nil {
		spot.Photos = []models.SpotPhoto{}
	}

	spot.SpotID = "s" + utils.GenerateRandomString(10)
	spot.CreatedBy = userID
	spot.Status = models.SpotPending
	spot.CreatedAt = time.Now()
	spot.UpdatedAt = time.Now()

	if _, err := db.SpotsCollection.InsertOne(context.TODO(), spot); err != nil {
		log.Printf("Failed to insert spot: %v", err)
		http.Error(w, "Failed to create spot", http.StatusInternalServerError)
		return
	}

	rdx.RdxDel("spots:list")
	mq.Emit(r.Context(), "spot-created", models.Index{EntityType: "spot", EntityId: spot.SpotID, Method: "POST"})

	utils.SendResponse(w, http.StatusCreated, spot, "Spot submitted for review", nil)
}

// GetSpots lists approved spots, paginated, optionally filtered by category or tag.
func GetSpots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 20, 100)
	sort := utils.ParseSort(r.URL.Query().Get("sort"),
		bson.D{{Key: "created_at", Value: -1}},
		map[string]bson.D{
			"popular": {{Key: "likes", Value: -1}, {Key: "views", Value: -1}},
			"rating":  {{Key: "rating", Value: -1}, {Key: "reviewcount", Value: -1}},
			"newest":  {{Key: "created_at", Value: -1}},
		})

	filter := bson.M{"status": models.SpotApproved}
	if category := r.URL.Query().Get("category"); category != "" {
		filter["category"] = category
	}
	if tag := r.URL.Query().Get("tag"); tag != "" {
		filter["tags"] = strings.ToLower(tag)
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(sort)
	spots, err := utils.FindAndDecode[models.Spot](ctx, db.SpotsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch spots")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": http.StatusOK, "ok": true, "spots": spots})
}

func GetSpot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("spotid")

	var spot models.Spot
	err := db.SpotsCollection.FindOne(context.TODO(), bson.M{"spotid": id}).Decode(&spot)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			http.Error(w, "Spot not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// Pending and rejected spots stay private to their owner and moderators.
	if spot.Status != models.SpotApproved {
		callerID, _ := r.Context().Value(globals.UserIDKey).(string)
		if callerID != spot.CreatedBy && !isModerator(r) {
			http.Error(w, "Spot not found", http.StatusNotFound)
			return
		}
	}

	db.SpotsCollection.UpdateOne(context.TODO(), bson.M{"spotid": id}, bson.M{"$inc": bson.M{"views": 1}})

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(spot); err != nil {
		http.Error(w, "Failed to encode spot data", http.StatusInternalServerError)
	}
}

func EditSpot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := ps.ByName("spotid")

	var existing models.Spot
	if err := db.SpotsCollection.FindOne(context.TODO(), bson.M{"spotid": id}).Decode(&existing); err != nil {
		http.Error(w, "Spot not found", http.StatusNotFound)
		return
	}
	if existing.CreatedBy != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	spot, err := parseSpotFormData(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	update := bson.M{
		"name":        spot.Name,
		"description": spot.Description,
		"category":    spot.Category,
		"tags":        spot.Tags,
		"location":    spot.Location,
		"address":     spot.Address,
		"city":        spot.City,
		"country":     spot.Country,
		"updated_at":  time.Now(),
		// Edits go back through review.
		"status": models.SpotPending,
	}

	urls, thumbs, err := filemgr.SaveFormImages(r, "photos", filemgr.EntitySpot)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(urls) > 0 {
		photos := []models.SpotPhoto{}
		for i := range urls {
			photos = append(photos, models.SpotPhoto{URL: urls[i], Thumb: thumbs[i]})
		}
		update["photos"] = photos
	}

	if _, err := db.SpotsCollection.UpdateOne(context.TODO(), bson.M{"spotid": id}, bson.M{"$set": update}); err != nil {
		http.Error(w, "Failed to update spot", http.StatusInternalServerError)
		return
	}

	rdx.RdxDel("spots:list")
	mq.Emit(r.Context(), "spot-updated", models.Index{EntityType: "spot", EntityId: id, Method: "PUT"})

	utils.SendResponse(w, http.StatusOK, nil, "Spot updated and resubmitted for review", nil)
}

func DeleteSpot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := ps.ByName("spotid")

	var existing models.Spot
	if err := db.SpotsCollection.FindOne(context.TODO(), bson.M{"spotid": id}).Decode(&existing); err != nil {
		http.Error(w, "Spot not found", http.StatusNotFound)
		return
	}
	if existing.CreatedBy != userID && !isModerator(r) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if _, err := db.SpotsCollection.DeleteOne(context.TODO(), bson.M{"spotid": id}); err != nil {
		http.Error(w, "Failed to delete spot", http.StatusInternalServerError)
		return
	}

	// Dangling comments and reviews are cleaned up lazily, references only.
	db.CommentsCollection.DeleteMany(context.TODO(), bson.M{"entity_type": "spot", "entity_id": id})
	db.ReviewsCollection.DeleteMany(context.TODO(), bson.M{"spotid": id})

	rdx.RdxDel("spots:list")
	mq.Emit(r.Context(), "spot-deleted", models.Index{EntityType: "spot", EntityId: id, Method: "DELETE"})

	utils.SendResponse(w, http.StatusOK, nil, "Spot deleted", nil)
}

func isModerator(r *http.Request) bool {
	roles, _ := r.Context().Value(globals.RoleKey).([]string)
	return utils.Contains(roles, "moderator") || utils.Contains(roles, "admin")
}
