package comments

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"waydown/db"
	"waydown/globals"
	"waydown/models"
	"waydown/mq"
	"waydown/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func entityOwner(ctx context.Context, entityType, entityID string) (string, error) {
	var result struct {
		CreatedBy string `bson:"createdBy"`
	}
	var err error
	switch entityType {
	case "spot":
		err = db.SpotsCollection.FindOne(ctx, bson.M{"spotid": entityID},
			options.FindOne().SetProjection(bson.M{"createdBy": 1})).Decode(&result)
	case "post":
		err = db.PostsCollection.FindOne(ctx, bson.M{"postid": entityID},
			options.FindOne().SetProjection(bson.M{"createdBy": 1})).Decode(&result)
	default:
		return "", mongo.ErrNoDocuments
	}
	return result.CreatedBy, err
}

func CreateComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	entityType := ps.ByName("entitytype")
	entityID := ps.ByName("entityid")

	owner, err := entityOwner(r.Context(), entityType, entityID)
	if err != nil {
		http.Error(w, "Entity not found", http.StatusNotFound)
		return
	}

	var input struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Content == "" {
		http.Error(w, "Comment content is required", http.StatusBadRequest)
		return
	}

	comment := models.Comment{
		CommentID:  "c" + utils.GenerateRandomString(12),
		EntityType: entityType,
		EntityID:   entityID,
		UserID:     userID,
		Content:    input.Content,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if _, err := db.CommentsCollection.InsertOne(context.TODO(), comment); err != nil {
		http.Error(w, "Failed to create comment", http.StatusInternalServerError)
		return
	}

	if entityType == "post" {
		db.PostsCollection.UpdateOne(context.TODO(),
			bson.M{"postid": entityID}, bson.M{"$inc": bson.M{"comment_count": 1}})
	}

	if owner != userID {
		mq.EmitEvent(r.Context(), models.Event{
			Type:       "comment",
			Room:       entityType + ":" + entityID,
			ActorID:    userID,
			TargetID:   owner,
			EntityType: entityType,
			EntityID:   entityID,
			Message:    input.Content,
		})
	}

	utils.SendResponse(w, http.StatusCreated, comment, "Comment created", nil)
}

func GetComments(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	entityType := ps.ByName("entitytype")
	entityID := ps.ByName("entityid")

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	comments, err := utils.FindAndDecode[models.Comment](ctx, db.CommentsCollection,
		bson.M{"entity_type": entityType, "entity_id": entityID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve comments")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": http.StatusOK, "ok": true, "comments": comments})
}

// commentFilter scopes a comment lookup to the entity path it was addressed
// under, so a comment cannot be reached through another entity's URL.
func commentFilter(entityType, entityID, commentID string) bson.M {
	return bson.M{
		"commentid":   commentID,
		"entity_type": entityType,
		"entity_id":   entityID,
	}
}

func UpdateComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Content == "" {
		http.Error(w, "Comment content is required", http.StatusBadRequest)
		return
	}

	filter := commentFilter(ps.ByName("entitytype"), ps.ByName("entityid"), ps.ByName("commentid"))
	filter["userid"] = userID

	result, err := db.CommentsCollection.UpdateOne(context.TODO(),
		filter,
		bson.M{"$set": bson.M{"content": input.Content, "updated_at": time.Now()}},
	)
	if err != nil {
		http.Error(w, "Failed to update comment", http.StatusInternalServerError)
		return
	}
	if result.MatchedCount == 0 {
		http.Error(w, "Comment not found", http.StatusNotFound)
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Comment updated", nil)
}

func DeleteComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	filter := commentFilter(ps.ByName("entitytype"), ps.ByName("entityid"), ps.ByName("commentid"))

	var comment models.Comment
	if err := db.CommentsCollection.FindOne(context.TODO(), filter).Decode(&comment); err != nil {
		http.Error(w, "Comment not found", http.StatusNotFound)
		return
	}

	roles, _ := r.Context().Value(globals.RoleKey).([]string)
	if comment.UserID != userID && !utils.Contains(roles, "moderator") && !utils.Contains(roles, "admin") {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if _, err := db.CommentsCollection.DeleteOne(context.TODO(), filter); err != nil {
		http.Error(w, "Failed to delete comment", http.StatusInternalServerError)
		return
	}

	if comment.EntityType == "post" {
		db.PostsCollection.UpdateOne(context.TODO(),
			bson.M{"postid": comment.EntityID}, bson.M{"$inc": bson.M{"comment_count": -1}})
	}

	utils.SendResponse(w, http.StatusOK, nil, "Comment deleted", nil)
}
