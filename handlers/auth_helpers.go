package handlers

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"postboard-server/db"
	"postboard-server/types"
)

const sessionCookieName = "session"

const loginPath = "/auth/login/"

// authenticate resolves the session cookie to a user. An absent or invalid
// cookie is not an error; it just means the request is anonymous and nil
// auth is returned.
func authenticate(r *http.Request) (*types.ServerAuth, error) {
	cookie, err := r.Cookie(sessionCookieName)

	if err != nil {
		return nil, nil
	}

	session, err := db.ValidateSession(cookie.Value)

	if err != nil {
		return nil, err
	}

	if session == nil {
		return nil, nil
	}

	user, err := db.GetUser(session.UserId)

	if err != nil {
		return nil, err
	}

	return &types.ServerAuth{User: user}, nil
}

// requireAuth authenticates the request. Anonymous requests are redirected
// to the login page carrying next as the return target, and nil is returned
// after the response has been written.
func requireAuth(w http.ResponseWriter, r *http.Request, next string) *types.ServerAuth {
	auth, err := authenticate(r)

	if err != nil {
		log.Printf("error authenticating request: %v\n", err)
		http.Error(w, "error authenticating request", http.StatusInternalServerError)
		return nil
	}

	if auth == nil {
		http.Redirect(w, r, loginRedirect(next), http.StatusFound)
		return nil
	}

	return auth
}

// loginRedirect builds the login URL carrying the return target. next is
// always a server-built local path, so it is safe to embed as is.
func loginRedirect(next string) string {
	return loginPath + "?next=" + next
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
