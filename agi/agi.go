package agi

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"strings"

	"waydown/db"
	"waydown/globals"
	"waydown/models"
	"waydown/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var sampleData = map[string][]map[string]string{
	"recommended_spots": {
		{"name": "🏞️ Hidden Valley Lookout", "location": "Mountain Pass"},
		{"name": "🏖️ Driftwood Cove", "location": "North Shore"},
		{"name": "⛩️ Lantern Temple Garden", "location": "Old Quarter"},
		{"name": "🌮 Night Food Alley", "location": "Market District"},
		{"name": "🚴 Riverside Cycling Trail", "location": "Greenbelt"},
		{"name": "📚 Clocktower Bookshop Cafe", "location": "Old Town"},
		{"name": "🌅 Sunrise Dunes", "location": "Coastal Reserve"},
		{"name": "🧗 Basalt Climbing Wall", "location": "Canyon Edge"},
		{"name": "🎶 Courtyard Jazz Corner", "location": "Arts Quarter"},
		{"name": "🛶 Mirror Lake Kayak Launch", "location": "Lake District"},
	},
	"trending_tags": {
		{"tag": "hiking"}, {"tag": "streetfood"}, {"tag": "sunset"},
		{"tag": "hidden-gem"}, {"tag": "coffee"}, {"tag": "viewpoint"},
		{"tag": "camping"}, {"tag": "nightlife"}, {"tag": "waterfall"},
	},
	"travel_tips": {
		{"tip": "Pin spots offline before heading into low-signal areas."},
		{"tip": "Morning light beats the crowds at popular viewpoints."},
		{"tip": "Check recent reviews for seasonal closures."},
		{"tip": "Save a trip sheet before you go, paper never runs out of battery."},
		{"tip": "Follow local explorers to surface spots the maps miss."},
	},
}

func shuffleList(data []map[string]string) {
	rand.Shuffle(len(data), func(i, j int) { data[i], data[j] = data[j], data[i] })
}

// paginateList shuffles then slices a section, returning empty past the end.
func paginateList(data []map[string]string, page, itemsPerPage int) []map[string]string {
	shuffleList(data)

	start := (page - 1) * itemsPerPage
	end := start + itemsPerPage

	if start >= len(data) {
		return []map[string]string{}
	}
	if end > len(data) {
		end = len(data)
	}
	return data[start:end]
}

// GetRecommendations serves a personalized section. Spot recommendations come
// from an interest-matched aggregation when the user has interests on file,
// everything else falls back to the canned sections.
func GetRecommendations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "application/json")

	var requestData map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		http.Error(w, `{"error": "Invalid JSON"}`, http.StatusBadRequest)
		return
	}

	section, ok := requestData["section"].(string)
	if !ok || strings.TrimSpace(section) == "" {
		http.Error(w, `{"error": "Invalid section"}`, http.StatusBadRequest)
		return
	}

	page := 1
	if p, ok := requestData["page"].(float64); ok && p >= 1 {
		page = int(p)
	}

	if section == "recommended_spots" {
		if userID, ok := r.Context().Value(globals.UserIDKey).(string); ok && userID != "" {
			if spots := personalizedSpots(r, userID, page); spots != nil {
				json.NewEncoder(w).Encode(spots)
				return
			}
		}
	}

	data, exists := sampleData[section]
	if !exists {
		http.Error(w, `{"error": "Invalid section"}`, http.StatusBadRequest)
		return
	}

	json.NewEncoder(w).Encode(paginateList(data, page, 6))
}

// personalizedSpots returns interest-matched approved spots, or nil when the
// user has no interests or the lookup fails so the caller can fall back.
func personalizedSpots(r *http.Request, userID string, page int) []models.Spot {
	var user models.User
	if err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&user); err != nil {
		return nil
	}
	if len(user.Interests) == 0 {
		return nil
	}

	itemsPerPage := int64(6)
	pipeline := []bson.M{
		{"$match": bson.M{"status": models.SpotApproved, "tags": bson.M{"$in": user.Interests}}},
		{"$sort": bson.M{"rating": -1, "likes": -1}},
		{"$skip": int64(page-1) * itemsPerPage},
		{"$limit": itemsPerPage},
	}

	spots, err := utils.AggregateAndDecode[models.Spot](r.Context(), db.SpotsCollection, pipeline)
	if err != nil || len(spots) == 0 {
		return nil
	}
	return spots
}
