package interests

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"waydown/db"
	"waydown/models"
	"waydown/rdx"
	"waydown/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const cacheKey = "interests:catalog"

// GetInterests returns the interest catalog, cached in redis.
func GetInterests(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cached, err := rdx.RdxGet(cacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	interests, err := utils.FindAndDecode[models.Interest](r.Context(), db.InterestsCollection,
		bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch interests")
		return
	}

	if body, err := json.Marshal(interests); err == nil {
		rdx.SetWithExpiry(cacheKey, string(body), time.Hour)
	}

	utils.RespondWithJSON(w, http.StatusOK, interests)
}

// SeedInterests upserts catalog entries, admin only.
func SeedInterests(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input []models.Interest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || len(input) == 0 {
		http.Error(w, "A non-empty list of interests is required", http.StatusBadRequest)
		return
	}

	for i := range input {
		name := strings.TrimSpace(input[i].Name)
		if name == "" {
			http.Error(w, "Interest name is required", http.StatusBadRequest)
			return
		}
		if input[i].InterestID == "" {
			input[i].InterestID = "i" + utils.GenerateRandomString(8)
		}

		opts := options.Update().SetUpsert(true)
		_, err := db.InterestsCollection.UpdateOne(context.TODO(),
			bson.M{"name": name},
			bson.M{"$set": bson.M{"name": name, "icon": input[i].Icon},
				"$setOnInsert": bson.M{"interestid": input[i].InterestID}},
			opts,
		)
		if err != nil {
			http.Error(w, "Failed to seed interests", http.StatusInternalServerError)
			return
		}
	}

	rdx.RdxDel(cacheKey)
	utils.SendResponse(w, http.StatusOK, map[string]int{"count": len(input)}, "Interests seeded", nil)
}
