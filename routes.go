package main

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"postboard-server/handlers"
	"postboard-server/monitoring"
)

func routes() *mux.Router {
	r := mux.NewRouter()

	r.Use(func(next http.Handler) http.Handler {
		return monitoring.NewServerMiddleware(next)
	})

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "OK")
	})

	r.Handle("/metrics", promhttp.Handler())

	r.HandleFunc("/auth/signup/", handlers.SignupHandler).Methods("POST")
	r.HandleFunc("/auth/login/", handlers.LoginFormHandler).Methods("GET")
	r.HandleFunc("/auth/login/", handlers.SignInHandler).Methods("POST")
	r.HandleFunc("/auth/logout/", handlers.SignOutHandler).Methods("POST")

	r.HandleFunc("/", handlers.HomeFeedHandler).Methods("GET")
	r.HandleFunc("/group/{slug}/", handlers.GroupFeedHandler).Methods("GET")
	r.HandleFunc("/follow/", handlers.FollowFeedHandler).Methods("GET")

	r.HandleFunc("/profile/{username}/", handlers.ProfileHandler).Methods("GET")
	r.HandleFunc("/profile/{username}/follow/", handlers.FollowUserHandler).Methods("GET")
	r.HandleFunc("/profile/{username}/unfollow/", handlers.UnfollowUserHandler).Methods("GET")

	r.HandleFunc("/create/", handlers.CreatePostFormHandler).Methods("GET")
	r.HandleFunc("/create/", handlers.CreatePostHandler).Methods("POST")

	r.HandleFunc("/posts/{id}/", handlers.PostDetailHandler).Methods("GET")
	r.HandleFunc("/posts/{id}/comment/", handlers.AddCommentHandler).Methods("GET", "POST")
	r.HandleFunc("/posts/{id}/edit/", handlers.EditPostFormHandler).Methods("GET")
	r.HandleFunc("/posts/{id}/edit/", handlers.EditPostHandler).Methods("POST")

	r.HandleFunc("/admin/groups/", handlers.CreateGroupHandler).Methods("POST")
	r.HandleFunc("/admin/groups/{slug}/", handlers.DeleteGroupHandler).Methods("DELETE")
	r.HandleFunc("/admin/users/{username}/", handlers.DeleteUserHandler).Methods("DELETE")

	return r
}
