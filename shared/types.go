package shared

import "time"

type User struct {
	Id       int64  `json:"id"`
	Username string `json:"username"`
}

type Group struct {
	Id          int64  `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// PostGroup is the slice of a group shown inline on a post.
type PostGroup struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

type Post struct {
	Id      int64      `json:"id"`
	Text    string     `json:"text"`
	PubDate time.Time  `json:"pubDate"`
	Author  string     `json:"author"`
	Group   *PostGroup `json:"group,omitempty"`
	Image   string     `json:"image,omitempty"`
}

type Comment struct {
	Id      int64     `json:"id"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
	Author  string    `json:"author"`
}

type ApiError struct {
	Status int    `json:"status"`
	Msg    string `json:"msg"`
}
