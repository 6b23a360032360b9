package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"postboard-server/cache"
	"postboard-server/db"
	"postboard-server/monitoring"
	"postboard-server/shared"
)

// Pages is the TTL page cache for the home feed. A nil cache disables
// caching; handlers must work without it.
var Pages *cache.PagesCache

func toApiPosts(posts []*db.FeedPost) []*shared.Post {
	apiPosts := make([]*shared.Post, 0, len(posts))
	for _, post := range posts {
		apiPosts = append(apiPosts, post.ToApi())
	}
	return apiPosts
}

func HomeFeedHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for HomeFeedHandler")

	pageNumber := shared.ParsePageNumber(r.URL.Query().Get("page"))

	if Pages != nil {
		if body := Pages.Get(r.URL.Path, pageNumber); body != nil {
			monitoring.PageCacheHits.WithLabelValues("hit").Inc()
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
			return
		}
		monitoring.PageCacheHits.WithLabelValues("miss").Inc()
	}

	count, err := db.CountPosts()

	if err != nil {
		log.Printf("Error counting posts: %v\n", err)
		http.Error(w, "Error counting posts", http.StatusInternalServerError)
		return
	}

	page := shared.Paginate(count, postsPerPage(), pageNumber)

	posts, err := db.ListPosts(page.PageSize, page.Offset())

	if err != nil {
		log.Printf("Error listing posts: %v\n", err)
		http.Error(w, "Error listing posts", http.StatusInternalServerError)
		return
	}

	resp := shared.FeedResponse{
		Posts: toApiPosts(posts),
		Page:  page,
	}

	bytes, err := json.Marshal(resp)

	if err != nil {
		log.Printf("Error marshalling response: %v\n", err)
		http.Error(w, "Error marshalling response", http.StatusInternalServerError)
		return
	}

	if Pages != nil {
		Pages.Set(r.URL.Path, pageNumber, bytes)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(bytes)
}

func GroupFeedHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for GroupFeedHandler")

	slug := mux.Vars(r)["slug"]

	group, err := db.GetGroupBySlug(slug)

	if err != nil {
		log.Printf("Error getting group: %v\n", err)
		http.Error(w, "Error getting group", http.StatusInternalServerError)
		return
	}

	if group == nil {
		writeNotFound(w, "group not found")
		return
	}

	count, err := db.CountPostsByGroup(group.Id)

	if err != nil {
		log.Printf("Error counting group posts: %v\n", err)
		http.Error(w, "Error counting group posts", http.StatusInternalServerError)
		return
	}

	page := shared.Paginate(count, postsPerPage(), shared.ParsePageNumber(r.URL.Query().Get("page")))

	posts, err := db.ListPostsByGroup(group.Id, page.PageSize, page.Offset())

	if err != nil {
		log.Printf("Error listing group posts: %v\n", err)
		http.Error(w, "Error listing group posts", http.StatusInternalServerError)
		return
	}

	writeJson(w, shared.GroupFeedResponse{
		Group: group.ToApi(),
		Posts: toApiPosts(posts),
		Page:  page,
	})
}

func ProfileHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ProfileHandler")

	username := mux.Vars(r)["username"]

	user, err := db.GetUserByUsername(username)

	if err != nil {
		log.Printf("Error getting user: %v\n", err)
		http.Error(w, "Error getting user", http.StatusInternalServerError)
		return
	}

	if user == nil {
		writeNotFound(w, "user not found")
		return
	}

	postCount, err := db.CountPostsByAuthor(user.Id)

	if err != nil {
		log.Printf("Error counting posts: %v\n", err)
		http.Error(w, "Error counting posts", http.StatusInternalServerError)
		return
	}

	page := shared.Paginate(postCount, postsPerPage(), shared.ParsePageNumber(r.URL.Query().Get("page")))

	posts, err := db.ListPostsByAuthor(user.Id, page.PageSize, page.Offset())

	if err != nil {
		log.Printf("Error listing author posts: %v\n", err)
		http.Error(w, "Error listing author posts", http.StatusInternalServerError)
		return
	}

	// Whether the authenticated viewer, if any, already follows this author.
	following := false
	auth, err := authenticate(r)

	if err != nil {
		log.Printf("Error authenticating request: %v\n", err)
		http.Error(w, "Error authenticating request", http.StatusInternalServerError)
		return
	}

	if auth != nil && auth.User.Id != user.Id {
		following, err = db.IsFollowing(auth.User.Id, user.Id)

		if err != nil {
			log.Printf("Error checking follow: %v\n", err)
			http.Error(w, "Error checking follow", http.StatusInternalServerError)
			return
		}
	}

	writeJson(w, shared.ProfileResponse{
		User:      user.ToApi(),
		PostCount: postCount,
		Following: following,
		Posts:     toApiPosts(posts),
		Page:      page,
	})
}

func FollowFeedHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for FollowFeedHandler")

	auth := requireAuth(w, r, r.URL.Path)
	if auth == nil {
		return
	}

	count, err := db.CountFollowedPosts(auth.User.Id)

	if err != nil {
		log.Printf("Error counting followed posts: %v\n", err)
		http.Error(w, "Error counting followed posts", http.StatusInternalServerError)
		return
	}

	page := shared.Paginate(count, postsPerPage(), shared.ParsePageNumber(r.URL.Query().Get("page")))

	posts, err := db.ListFollowedPosts(auth.User.Id, page.PageSize, page.Offset())

	if err != nil {
		log.Printf("Error listing followed posts: %v\n", err)
		http.Error(w, "Error listing followed posts", http.StatusInternalServerError)
		return
	}

	writeJson(w, shared.FeedResponse{
		Posts: toApiPosts(posts),
		Page:  page,
	})
}
