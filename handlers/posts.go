package handlers

import (
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"postboard-server/db"
	"postboard-server/shared"
	"postboard-server/types"
)

func postDetailPath(postId int64) string {
	return fmt.Sprintf("/posts/%d/", postId)
}

func profilePath(username string) string {
	return "/profile/" + username + "/"
}

func PostDetailHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for PostDetailHandler")

	postId, ok := pathId(r, "id")
	if !ok {
		writeNotFound(w, "post not found")
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

	comments, err := db.ListCommentsForPost(post.Id)

	if err != nil {
		log.Printf("Error listing comments: %v\n", err)
		http.Error(w, "Error listing comments", http.StatusInternalServerError)
		return
	}

	authorPostCount, err := db.CountPostsByAuthor(post.AuthorId)

	if err != nil {
		log.Printf("Error counting posts: %v\n", err)
		http.Error(w, "Error counting posts", http.StatusInternalServerError)
		return
	}

	apiComments := make([]*shared.Comment, 0, len(comments))
	for _, comment := range comments {
		apiComments = append(apiComments, comment.ToApi())
	}

	writeJson(w, shared.PostDetailResponse{
		Post:            post.ToApi(),
		AuthorPostCount: authorPostCount,
		Comments:        apiComments,
		CommentForm: &shared.FormView{
			Values: map[string]string{"text": ""},
			Errors: map[string]string{},
		},
	})
}

func CreatePostFormHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for CreatePostFormHandler")

	auth := requireAuth(w, r, r.URL.Path)
	if auth == nil {
		return
	}

	writeJson(w, &shared.FormView{
		Values: map[string]string{"text": "", "group": ""},
		Errors: map[string]string{},
	})
}

func CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for CreatePostHandler")

	auth := requireAuth(w, r, r.URL.Path)
	if auth == nil {
		return
	}

	if err := parseForm(r); err != nil {
		log.Printf("Error parsing form: %v\n", err)
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	form := types.PostForm{
		Text:  r.FormValue("text"),
		Group: r.FormValue("group"),
	}

	errs := types.ValidateForm(form)

	groupId, groupErr := resolveGroup(form.Group)
	if groupErr != "" {
		errs["group"] = groupErr
	}

	if len(errs) > 0 {
		writeJson(w, &shared.FormView{
			Values: map[string]string{"text": form.Text, "group": form.Group},
			Errors: errs,
		})
		return
	}

	image, err := saveUploadedImage(r)

	if err != nil {
		log.Printf("Error saving image: %v\n", err)
		http.Error(w, "Error saving image", http.StatusInternalServerError)
		return
	}

	// The author is always the requester; clients cannot supply it.
	post, err := db.CreatePost(auth.User.Id, form.Text, groupId, image)

	if err != nil {
		log.Printf("Error creating post: %v\n", err)
		http.Error(w, "Error creating post", http.StatusInternalServerError)
		return
	}

	log.Println("Successfully created post", post.Id)

	http.Redirect(w, r, profilePath(auth.User.Username), http.StatusFound)
}

func EditPostFormHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for EditPostFormHandler")

	auth := requireAuth(w, r, r.URL.Path)
	if auth == nil {
		return
	}

	post, ok := getOwnedPost(w, r, auth)
	if !ok {
		return
	}

	groupSlug := ""
	if post.GroupSlug != nil {
		groupSlug = *post.GroupSlug
	}

	writeJson(w, &shared.FormView{
		Values: map[string]string{"text": post.Text, "group": groupSlug},
		Errors: map[string]string{},
	})
}

func EditPostHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for EditPostHandler")

	auth := requireAuth(w, r, r.URL.Path)
	if auth == nil {
		return
	}

	post, ok := getOwnedPost(w, r, auth)
	if !ok {
		return
	}

	if err := parseForm(r); err != nil {
		log.Printf("Error parsing form: %v\n", err)
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	form := types.PostForm{
		Text:  r.FormValue("text"),
		Group: r.FormValue("group"),
	}

	errs := types.ValidateForm(form)

	groupId, groupErr := resolveGroup(form.Group)
	if groupErr != "" {
		errs["group"] = groupErr
	}

	if len(errs) > 0 {
		writeJson(w, &shared.FormView{
			Values: map[string]string{"text": form.Text, "group": form.Group},
			Errors: errs,
		})
		return
	}

	image, err := saveUploadedImage(r)

	if err != nil {
		log.Printf("Error saving image: %v\n", err)
		http.Error(w, "Error saving image", http.StatusInternalServerError)
		return
	}

	err = db.UpdatePost(post.Id, form.Text, groupId, image)

	if err != nil {
		log.Printf("Error updating post: %v\n", err)
		http.Error(w, "Error updating post", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, postDetailPath(post.Id), http.StatusFound)
}

// getOwnedPost loads the post from the path and checks that the requester is
// its author. Any other authenticated user is silently redirected to the
// post's detail view. ok is false when a response has already been written.
func getOwnedPost(w http.ResponseWriter, r *http.Request, auth *types.ServerAuth) (*db.FeedPost, bool) {
	postId, ok := pathId(r, "id")
	if !ok {
		writeNotFound(w, "post not found")
		return nil, false
	}

	post, err := db.GetFeedPost(postId)

	if err != nil {
		log.Printf("Error getting post: %v\n", err)
		http.Error(w, "Error getting post", http.StatusInternalServerError)
		return nil, false
	}

	if post == nil {
		writeNotFound(w, "post not found")
		return nil, false
	}

	if post.AuthorId != auth.User.Id {
		http.Redirect(w, r, postDetailPath(post.Id), http.StatusFound)
		return nil, false
	}

	return post, true
}

// resolveGroup maps a submitted group slug to its id. An empty slug means no
// group. A non-empty message is a field error for the form.
func resolveGroup(slug string) (*int64, string) {
	if slug == "" {
		return nil, ""
	}

	group, err := db.GetGroupBySlug(slug)

	if err != nil {
		log.Printf("Error getting group: %v\n", err)
		return nil, "This value is invalid."
	}

	if group == nil {
		return nil, "Choose a valid group."
	}

	return &group.Id, ""
}
