package search

import (
	"context"
	"net/http"
	"time"

	"waydown/db"
	"waydown/models"
	"waydown/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SearchHandler searches spots and users by name. type=spots|users|all.
func SearchHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "A query is required", http.StatusBadRequest)
		return
	}
	entityType := r.URL.Query().Get("type")
	if entityType == "" {
		entityType = "all"
	}

	skip, limit := utils.ParsePagination(r, 20, 50)
	result := map[string]any{"status": http.StatusOK, "ok": true}

	if entityType == "spots" || entityType == "all" {
		spots, err := searchSpots(ctx, query, skip, limit)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Search failed")
			return
		}
		result["spots"] = spots
	}

	if entityType == "users" || entityType == "all" {
		users, err := searchUsers(ctx, query, skip, limit)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Search failed")
			return
		}
		result["users"] = users
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

func searchSpots(ctx context.Context, query string, skip, limit int64) ([]models.Spot, error) {
	regex := primitive.Regex{Pattern: query, Options: "i"}
	filter := bson.M{
		"status": models.SpotApproved,
		"$or": []bson.M{
			{"name": regex},
			{"tags": regex},
			{"city": regex},
		},
	}

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "rating", Value: -1}, {Key: "likes", Value: -1}})

	return utils.FindAndDecode[models.Spot](ctx, db.SpotsCollection, filter, opts)
}

func searchUsers(ctx context.Context, query string, skip, limit int64) ([]models.UserSuggest, error) {
	regex := primitive.Regex{Pattern: query, Options: "i"}
	filter := bson.M{"$or": []bson.M{
		{"username": regex},
		{"name": regex},
	}}

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetProjection(bson.M{"userid": 1, "username": 1, "name": 1, "avatar": 1})

	return utils.FindAndDecode[models.UserSuggest](ctx, db.UserCollection, filter, opts)
}

// AutocompleteHandler serves typeahead suggestions from the redis index.
func AutocompleteHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query().Get("q")
	entityType := r.URL.Query().Get("type")
	if entityType != "users" {
		entityType = "spots"
	}

	suggestions, err := Suggest(r.Context(), entityType, query, 10)
	if err != nil {
		// Autocomplete is best-effort; an empty list beats a 500.
		suggestions = []map[string]string{}
	}

	utils.RespondWithJSON(w, http.StatusOK, suggestions)
}
