package posts

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
	postID := ps.ByName("postid")

	var post models.Post
	if err := db.PostsCollection.FindOne(context.TODO(), bson.M{"postid": postID}).Decode(&post); err != nil {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}

	delta := int64(1)
	action := "like"
	if !like {
		delta = -1
		action = "unlike"
	}

	changed, err := userdata.Toggle(action, postID, userID, "post")
	if err != nil {
		log.Printf("like toggle failed for post %s: %v", postID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !changed {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true, "liked": like})
		return
	}

	if _, err := rdx.IncrLikeCount("post", postID, delta); err != nil {
		log.Printf("like counter failed, falling back to direct update: %v", err)
		db.PostsCollection.UpdateOne(context.TODO(),
			bson.M{"postid": postID}, bson.M{"$inc": bson.M{"likes": delta}})
	}

	if like && post.CreatedBy != userID {
		mq.EmitEvent(r.Context(), models.Event{
			Type:       "like",
			Room:       "post:" + postID,
			ActorID:    userID,
			TargetID:   post.CreatedBy,
			EntityType: "post",
			EntityID:   postID,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"ok": true, "liked": like})
}

func LikePost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	toggleLike(w, r, ps, true)
}

func UnlikePost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	toggleLike(w, r, ps, false)
}
