package handlers

import (
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

const defaultPostsPerPage = 10

func postsPerPage() int {
	size, err := strconv.Atoi(os.Getenv("POSTS_PER_PAGE"))
	if err != nil || size < 1 {
		return defaultPostsPerPage
	}
	return size
}

// parseForm reads url-encoded or multipart bodies; image uploads arrive as
// multipart.
func parseForm(r *http.Request) error {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		return r.ParseMultipartForm(32 << 20)
	}
	return r.ParseForm()
}

// pathId extracts a numeric path variable. ok is false when the segment is
// not a valid id, which callers treat as not found.
func pathId(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// safeNext keeps login return targets local to this host.
func safeNext(next, fallback string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return fallback
}
