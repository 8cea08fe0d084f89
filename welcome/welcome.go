package welcome

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"waydown/db"
	"waydown/models"
	"waydown/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetSlides returns the onboarding slides in display order.
func GetSlides(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	slides, err := utils.FindAndDecode[models.WelcomeSlide](r.Context(), db.WelcomeCollection,
		bson.M{}, options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch slides")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, slides)
}

// CreateSlide adds an onboarding slide, admin only.
func CreateSlide(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var slide models.WelcomeSlide
	if err := json.NewDecoder(r.Body).Decode(&slide); err != nil || slide.Title == "" {
		http.Error(w, "Slide title is required", http.StatusBadRequest)
		return
	}

	slide.SlideID = "w" + utils.GenerateRandomString(8)
	slide.CreatedAt = time.Now()

	if _, err := db.WelcomeCollection.InsertOne(context.TODO(), slide); err != nil {
		http.Error(w, "Failed to create slide", http.StatusInternalServerError)
		return
	}

	utils.SendResponse(w, http.StatusCreated, slide, "Slide created", nil)
}

// DeleteSlide removes an onboarding slide, admin only.
func DeleteSlide(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	result, err := db.WelcomeCollection.DeleteOne(context.TODO(),
		bson.M{"slideid": ps.ByName("slideid")})
	if err != nil {
		http.Error(w, "Failed to delete slide", http.StatusInternalServerError)
		return
	}
	if result.DeletedCount == 0 {
		http.Error(w, "Slide not found", http.StatusNotFound)
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Slide deleted", nil)
}
