package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"postboard-server/db"
	"postboard-server/shared"
	"postboard-server/types"
)

// requireStaff is requireAuth plus a staff check. Non-staff users get a 403;
// there is nothing to silently redirect them to on the admin surface.
func requireStaff(w http.ResponseWriter, r *http.Request) *types.ServerAuth {
	auth := requireAuth(w, r, r.URL.Path)
	if auth == nil {
		return nil
	}

	if !auth.User.IsStaff {
		writeApiError(w, shared.ApiError{
			Status: http.StatusForbidden,
			Msg:    "staff access required",
		})
		return nil
	}

	return auth
}

func CreateGroupHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for CreateGroupHandler")

	auth := requireStaff(w, r)
	if auth == nil {
		return
	}

	if err := parseForm(r); err != nil {
		log.Printf("Error parsing form: %v\n", err)
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	form := types.GroupForm{
		Title:       r.FormValue("title"),
		Slug:        r.FormValue("slug"),
		Description: r.FormValue("description"),
	}

	errs := types.ValidateForm(form)

	if len(errs) == 0 {
		existing, err := db.GetGroupBySlug(form.Slug)

		if err != nil {
			log.Printf("Error getting group: %v\n", err)
			http.Error(w, "Error getting group", http.StatusInternalServerError)
			return
		}

		if existing != nil {
			errs["slug"] = "A group with that slug already exists."
		}
	}

	if len(errs) > 0 {
		writeJson(w, &shared.FormView{
			Values: map[string]string{
				"title":       form.Title,
				"slug":        form.Slug,
				"description": form.Description,
			},
			Errors: errs,
		})
		return
	}

	group, err := db.CreateGroup(form.Title, form.Slug, form.Description)

	if err != nil {
		log.Printf("Error creating group: %v\n", err)
		http.Error(w, "Error creating group", http.StatusInternalServerError)
		return
	}

	log.Println("Successfully created group", group.Slug)

	writeJson(w, group.ToApi())
}

// DeleteGroupHandler removes a group. Its posts stay and lose their group
// reference.
func DeleteGroupHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for DeleteGroupHandler")

	auth := requireStaff(w, r)
	if auth == nil {
		return
	}

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

	if err := db.DeleteGroup(group.Id); err != nil {
		log.Printf("Error deleting group: %v\n", err)
		http.Error(w, "Error deleting group", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteUserHandler removes a user along with their posts, comments, and
// follow edges in both directions.
func DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for DeleteUserHandler")

	auth := requireStaff(w, r)
	if auth == nil {
		return
	}

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

	if err := db.DeleteUser(user.Id); err != nil {
		log.Printf("Error deleting user: %v\n", err)
		http.Error(w, "Error deleting user", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
