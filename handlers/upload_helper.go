package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

func mediaRoot() string {
	root := os.Getenv("MEDIA_ROOT")
	if root == "" {
		root = "media"
	}
	return root
}

// saveUploadedImage stores the request's image file, if any, under
// <MEDIA_ROOT>/posts/ and returns the stored path relative to the media
// root. Returns nil, nil when no image was uploaded.
func saveUploadedImage(r *http.Request) (*string, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	file, header, err := r.FormFile("image")

	if err == http.ErrMissingFile {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("error reading uploaded image: %v", err)
	}

	defer file.Close()

	dir := filepath.Join(mediaRoot(), "posts")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating media directory: %v", err)
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(header.Filename))

	dst, err := os.Create(filepath.Join(dir, name))

	if err != nil {
		return nil, fmt.Errorf("error creating media file: %v", err)
	}

	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return nil, fmt.Errorf("error writing media file: %v", err)
	}

	stored := "posts/" + name
	return &stored, nil
}
