package handlers

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"postboard-server/db"
	"postboard-server/shared"
	"postboard-server/types"
)

func AddCommentHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for AddCommentHandler")

	postId, ok := pathId(r, "id")
	if !ok {
		writeNotFound(w, "post not found")
		return
	}

	// Anonymous commenters come back to the post itself after logging in,
	// not to the comment endpoint.
	auth := requireAuth(w, r, postDetailPath(postId))
	if auth == nil {
		return
	}

	post, err := db.GetFeedPost(postId)

	if err != nil {
		log.Printf("Error getting post: %v\n", err)
		http.Error(w, "Error getting post", http.StatusInternalServerError)
		return
	}

	if post == nil {
		writeNotFound(w, "post not found")
		return
	}

	if err := parseForm(r); err != nil {
		log.Printf("Error parsing form: %v\n", err)
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	form := types.CommentForm{Text: r.FormValue("text")}

	errs := types.ValidateForm(form)

	if len(errs) > 0 {
		writeJson(w, &shared.FormView{
			Values: map[string]string{"text": form.Text},
			Errors: errs,
		})
		return
	}

	// post and author come from the request context, never from the client
	_, err = db.CreateComment(post.Id, auth.User.Id, form.Text)

	if err != nil {
		log.Printf("Error creating comment: %v\n", err)
		http.Error(w, "Error creating comment", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, postDetailPath(post.Id), http.StatusFound)
}
