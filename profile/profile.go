package profile

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"waydown/db"
	"waydown/filemgr"
	"waydown/globals"
	"waydown/models"
	"waydown/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetProfile returns the public profile for a user, with is_following resolved
// against the caller when a token was supplied.
func GetProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	targetID := ps.ByName("userid")

	var user models.User
	err := db.UserCollection.FindOne(context.TODO(), bson.M{"userid": targetID}).Decode(&user)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	resp := models.UserProfileResponse{
		UserID:         user.UserID,
		Username:       user.Username,
		Name:           user.Name,
		Bio:            user.Bio,
		Avatar:         user.Avatar,
		Interests:      user.Interests,
		FollowersCount: user.FollowersCount,
		FollowingCount: user.FollowingCount,
		LastLogin:      user.LastLogin,
	}
	if resp.Interests == nil {
		resp.Interests = []string{}
	}

	if callerID, ok := r.Context().Value(globals.UserIDKey).(string); ok && callerID != "" {
		count, err := db.FollowingsCollection.CountDocuments(context.TODO(), bson.M{
			"userid":  callerID,
			"follows": bson.M{"$in": []string{targetID}},
		})
		if err == nil {
			resp.IsFollowing = count > 0
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func EditProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Name *string `json:"name"`
		Bio  *string `json:"bio"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	update := bson.M{"updated_at": time.Now()}
	if input.Name != nil {
		update["name"] = *input.Name
	}
	if input.Bio != nil {
		update["bio"] = *input.Bio
	}

	result := db.UserCollection.FindOneAndUpdate(context.TODO(),
		bson.M{"userid": userID},
		bson.M{"$set": update},
	)
	if result.Err() != nil {
		if result.Err() == mongo.ErrNoDocuments {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Profile updated", nil)
}

func UploadAvatar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Unable to parse form", http.StatusBadRequest)
		return
	}

	_, header, err := r.FormFile("avatar")
	if err != nil {
		http.Error(w, "Avatar file is required", http.StatusBadRequest)
		return
	}
	if !utils.ValidateImageFileType(w, header) {
		return
	}

	url, _, err := filemgr.SaveImage(header, filemgr.EntityUser)
	if err != nil {
		log.Printf("avatar upload failed for %s: %v", userID, err)
		http.Error(w, "Failed to save avatar", http.StatusInternalServerError)
		return
	}

	_, err = db.UserCollection.UpdateOne(context.TODO(),
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"avatar": url, "updated_at": time.Now()}},
	)
	if err != nil {
		http.Error(w, "Failed to update avatar", http.StatusInternalServerError)
		return
	}

	utils.SendResponse(w, http.StatusOK, map[string]string{"avatar": url}, "Avatar updated", nil)
}

// SetInterests replaces the caller's interest list; values must exist in the
// interests catalog.
func SetInterests(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Interests []string `json:"interests"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Interests == nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	count, err := db.InterestsCollection.CountDocuments(context.TODO(),
		bson.M{"name": bson.M{"$in": input.Interests}})
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if int(count) != len(input.Interests) {
		http.Error(w, "Unknown interest in list", http.StatusBadRequest)
		return
	}

	_, err = db.UserCollection.UpdateOne(context.TODO(),
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"interests": input.Interests, "updated_at": time.Now()}},
	)
	if err != nil {
		http.Error(w, "Failed to update interests", http.StatusInternalServerError)
		return
	}

	utils.SendResponse(w, http.StatusOK, map[string]any{"interests": input.Interests}, "Interests updated", nil)
}

// SetLocation stores the caller's last known location for geo-ranked feeds.
func SetLocation(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if input.Lat < -90 || input.Lat > 90 || input.Lng < -180 || input.Lng > 180 {
		http.Error(w, "Coordinates out of range", http.StatusBadRequest)
		return
	}

	_, err := db.UserCollection.UpdateOne(context.TODO(),
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"location": models.NewGeoPoint(input.Lng, input.Lat), "updated_at": time.Now()}},
	)
	if err != nil {
		http.Error(w, "Failed to update location", http.StatusInternalServerError)
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Location updated", nil)
}
