package handlers

import (
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"postboard-server/db"
	"postboard-server/shared"
	"postboard-server/types"
)

func SignupHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for SignupHandler")

	if err := parseForm(r); err != nil {
		log.Printf("Error parsing form: %v\n", err)
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	form := types.SignupForm{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}

	errs := types.ValidateForm(form)

	if len(errs) > 0 {
		writeJson(w, &shared.FormView{
			Values: map[string]string{"username": form.Username},
			Errors: errs,
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Error hashing password: %v\n", err)
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	user, token, err := db.CreateUserWithSession(form.Username, string(hash))

	if err != nil {
		if errors.Is(err, db.ErrUsernameTaken) {
			writeJson(w, &shared.FormView{
				Values: map[string]string{"username": form.Username},
				Errors: map[string]string{"username": "A user with that username already exists."},
			})
			return
		}

		log.Printf("Error creating user: %v\n", err)
		http.Error(w, "Error creating user", http.StatusInternalServerError)
		return
	}

	setSessionCookie(w, token)

	log.Println("Successfully created user", user.Username)

	http.Redirect(w, r, "/", http.StatusFound)
}

func LoginFormHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for LoginFormHandler")

	writeJson(w, &shared.FormView{
		Values: map[string]string{
			"username": "",
			"next":     safeNext(r.URL.Query().Get("next"), "/"),
		},
		Errors: map[string]string{},
	})
}

func SignInHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for SignInHandler")

	if err := parseForm(r); err != nil {
		log.Printf("Error parsing form: %v\n", err)
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	form := types.LoginForm{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}

	errs := types.ValidateForm(form)

	if len(errs) == 0 {
		user, err := db.GetUserByUsername(form.Username)

		if err != nil {
			log.Printf("Error getting user: %v\n", err)
			http.Error(w, "Error getting user", http.StatusInternalServerError)
			return
		}

		if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)) != nil {
			errs["__all__"] = "Please enter a correct username and password."
		} else {
			token, err := db.CreateSession(user.Id)

			if err != nil {
				log.Printf("Error creating session: %v\n", err)
				http.Error(w, "Error creating session", http.StatusInternalServerError)
				return
			}

			setSessionCookie(w, token)

			http.Redirect(w, r, safeNext(r.FormValue("next"), "/"), http.StatusFound)
			return
		}
	}

	writeJson(w, &shared.FormView{
		Values: map[string]string{"username": form.Username},
		Errors: errs,
	})
}

func SignOutHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for SignOutHandler")

	auth := requireAuth(w, r, "/")
	if auth == nil {
		return
	}

	cookie, err := r.Cookie(sessionCookieName)

	if err == nil {
		if err := db.DeleteSession(cookie.Value); err != nil {
			log.Printf("Error deleting session: %v\n", err)
		}
	}

	clearSessionCookie(w)

	http.Redirect(w, r, "/", http.StatusFound)
}
