package posts

import (
	"context"
	"net/http"
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
	"go.mongodb.org/mongo-driver/mongo/options"
)

func CreatePost(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Unable to parse form", http.StatusBadRequest)
		return
	}

	content := r.FormValue("content")
	if content == "" {
		http.Error(w, "Post content is required", http.StatusBadRequest)
		return
	}

	spotID := r.FormValue("spotid")
	if spotID != "" {
		count, err := db.SpotsCollection.CountDocuments(r.Context(),
			bson.M{"spotid": spotID, "status": models.SpotApproved})
		if err != nil || count == 0 {
			http.Error(w, "Referenced spot not found", http.StatusBadRequest)
			return
		}
	}

	media, _, err := filemgr.SaveFormImages(r, "media", filemgr.EntityPost)
	if err != nil {
		http.Error(w, "Failed to save media", http.StatusBadRequest)
		return
	}

	post := models.Post{
		PostID:    "p" + utils.GenerateRandomString(10),
		Content:   content,
		Media:     media,
		Tags:      utils.SplitTags(r.FormValue("tags")),
		SpotID:    spotID,
		CreatedBy: userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := db.PostsCollection.InsertOne(context.TODO(), post); err != nil {
		http.Error(w, "Failed to create post", http.StatusInternalServerError)
		return
	}

	mq.Emit(r.Context(), "post-created", models.Index{EntityType: "post", EntityId: post.PostID, Method: "POST"})

	utils.SendResponse(w, http.StatusCreated, post, "Post created", nil)
}

func GetPosts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 20, 100)

	filter := bson.M{}
	if spotID := r.URL.Query().Get("spotid"); spotID != "" {
		filter["spotid"] = spotID
	}
	if userID := r.URL.Query().Get("userid"); userID != "" {
		filter["createdBy"] = userID
	}
	if tag := r.URL.Query().Get("tag"); tag != "" {
		filter["tags"] = tag
	}

	sort := utils.ParseSort(r.URL.Query().Get("sort"),
		bson.D{{Key: "created_at", Value: -1}},
		map[string]bson.D{
			"popular": {{Key: "likes", Value: -1}, {Key: "created_at", Value: -1}},
		})

	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(sort)
	posts, err := utils.FindAndDecode[models.Post](ctx, db.PostsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve posts")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": http.StatusOK, "ok": true, "posts": posts})
}

func GetPost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var post models.Post
	if err := db.PostsCollection.FindOne(r.Context(), bson.M{"postid": ps.ByName("postid")}).Decode(&post); err != nil {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, post)
}

func DeletePost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	postID := ps.ByName("postid")

	var post models.Post
	if err := db.PostsCollection.FindOne(context.TODO(), bson.M{"postid": postID}).Decode(&post); err != nil {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}

	roles, _ := r.Context().Value(globals.RoleKey).([]string)
	if post.CreatedBy != userID && !utils.Contains(roles, "moderator") && !utils.Contains(roles, "admin") {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if _, err := db.PostsCollection.DeleteOne(context.TODO(), bson.M{"postid": postID}); err != nil {
		http.Error(w, "Failed to delete post", http.StatusInternalServerError)
		return
	}

	db.CommentsCollection.DeleteMany(context.TODO(), bson.M{"entity_type": "post", "entity_id": postID})
	rdx.RdxDel("like:count:post:" + postID)
	mq.Emit(r.Context(), "post-deleted", models.Index{EntityType: "post", EntityId: postID, Method: "DELETE"})

	utils.SendResponse(w, http.StatusOK, nil, "Post deleted", nil)
}
