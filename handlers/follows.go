package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"postboard-server/db"
)

func FollowUserHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for FollowUserHandler")

	auth := requireAuth(w, r, r.URL.Path)
	if auth == nil {
		return
	}

	username := mux.Vars(r)["username"]

	author, err := db.GetUserByUsername(username)

	if err != nil {
		log.Printf("Error getting user: %v\n", err)
		http.Error(w, "Error getting user", http.StatusInternalServerError)
		return
	}

	if author == nil {
		writeNotFound(w, "user not found")
		return
	}

	// Following yourself is a no-op, not an error. CreateFollow is
	// idempotent, so repeat follows fall through to the redirect too.
	if auth.User.Id != author.Id {
		err = db.CreateFollow(auth.User.Id, author.Id)

		if err != nil {
			log.Printf("Error creating follow: %v\n", err)
			http.Error(w, "Error creating follow", http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, profilePath(author.Username), http.StatusFound)
}

func UnfollowUserHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for UnfollowUserHandler")

	auth := requireAuth(w, r, r.URL.Path)
	if auth == nil {
		return
	}

	username := mux.Vars(r)["username"]

	author, err := db.GetUserByUsername(username)

	if err != nil {
		log.Printf("Error getting user: %v\n", err)
		http.Error(w, "Error getting user", http.StatusInternalServerError)
		return
	}

	if author == nil {
		writeNotFound(w, "user not found")
		return
	}

	deleted, err := db.DeleteFollow(auth.User.Id, author.Id)

	if err != nil {
		log.Printf("Error deleting follow: %v\n", err)
		http.Error(w, "Error deleting follow", http.StatusInternalServerError)
		return
	}

	if !deleted {
		log.Printf("No follow edge from %s to %s\n", auth.User.Username, author.Username)
	}

	http.Redirect(w, r, profilePath(author.Username), http.StatusFound)
}
