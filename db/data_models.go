package db

import (
	"time"

	"postboard-server/shared"
)

// The models below should only be used server-side.
// Models that reach the client have a ToApi() method converting them to the
// corresponding shared model, so that server-only data (password hashes,
// session tokens) doesn't leak out.

type User struct {
	Id           int64     `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	IsStaff      bool      `db:"is_staff"`
	CreatedAt    time.Time `db:"created_at"`
}

func (user *User) ToApi() *shared.User {
	return &shared.User{
		Id:       user.Id,
		Username: user.Username,
	}
}

type Session struct {
	Id        int64     `db:"id"`
	TokenHash string    `db:"token_hash"`
	UserId    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

type Group struct {
	Id          int64  `db:"id"`
	Title       string `db:"title"`
	Slug        string `db:"slug"`
	Description string `db:"description"`
}

func (group *Group) ToApi() *shared.Group {
	return &shared.Group{
		Id:          group.Id,
		Title:       group.Title,
		Slug:        group.Slug,
		Description: group.Description,
	}
}

type Post struct {
	Id       int64     `db:"id"`
	Text     string    `db:"text"`
	PubDate  time.Time `db:"pub_date"`
	AuthorId int64     `db:"author_id"`
	GroupId  *int64    `db:"group_id"`
	Image    *string   `db:"image"`
}

// FeedPost is a post row joined with its author and optional group,
// as selected by the feed queries.
type FeedPost struct {
	Post
	AuthorUsername string  `db:"author_username"`
	GroupTitle     *string `db:"group_title"`
	GroupSlug      *string `db:"group_slug"`
}

func (post *FeedPost) ToApi() *shared.Post {
	apiPost := &shared.Post{
		Id:      post.Id,
		Text:    post.Text,
		PubDate: post.PubDate,
		Author:  post.AuthorUsername,
	}
	if post.Image != nil {
		apiPost.Image = *post.Image
	}
	if post.GroupSlug != nil && post.GroupTitle != nil {
		apiPost.Group = &shared.PostGroup{
			Slug:  *post.GroupSlug,
			Title: *post.GroupTitle,
		}
	}
	return apiPost
}

type Comment struct {
	Id       int64     `db:"id"`
	Text     string    `db:"text"`
	Created  time.Time `db:"created"`
	PostId   int64     `db:"post_id"`
	AuthorId int64     `db:"author_id"`
}

// CommentWithAuthor is a comment row joined with its author's username.
type CommentWithAuthor struct {
	Comment
	AuthorUsername string `db:"author_username"`
}

func (comment *CommentWithAuthor) ToApi() *shared.Comment {
	return &shared.Comment{
		Id:      comment.Id,
		Text:    comment.Text,
		Created: comment.Created,
		Author:  comment.AuthorUsername,
	}
}

type Follow struct {
	Id        int64     `db:"id"`
	UserId    int64     `db:"user_id"`
	AuthorId  int64     `db:"author_id"`
	CreatedAt time.Time `db:"created_at"`
}
