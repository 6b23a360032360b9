package db

import (
	"database/sql"
	"fmt"
)

const feedPostColumns = `
	p.id, p.text, p.pub_date, p.author_id, p.group_id, p.image,
	u.username AS author_username,
	g.title AS group_title,
	g.slug AS group_slug
`

const feedPostJoins = `
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN groups g ON g.id = p.group_id
`

// Feeds are ordered newest first. The id tiebreaker keeps the order total
// when two posts share a pub_date.
const feedPostOrder = " ORDER BY p.pub_date DESC, p.id DESC"

// GetFeedPost returns nil, nil when no such post exists.
func GetFeedPost(postId int64) (*FeedPost, error) {
	var post FeedPost
	err := Conn.Get(
		&post,
		"SELECT "+feedPostColumns+feedPostJoins+" WHERE p.id = $1",
		postId,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting post: %v", err)
	}

	return &post, nil
}

func ListPosts(limit, offset int) ([]*FeedPost, error) {
	var posts []*FeedPost
	err := Conn.Select(
		&posts,
		"SELECT "+feedPostColumns+feedPostJoins+feedPostOrder+" LIMIT $1 OFFSET $2",
		limit, offset,
	)

	if err != nil {
		return nil, fmt.Errorf("error listing posts: %v", err)
	}

	return posts, nil
}

func CountPosts() (int, error) {
	var count int
	err := Conn.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting posts: %v", err)
	}

	return count, nil
}

func ListPostsByGroup(groupId int64, limit, offset int) ([]*FeedPost, error) {
	var posts []*FeedPost
	err := Conn.Select(
		&posts,
		"SELECT "+feedPostColumns+feedPostJoins+" WHERE p.group_id = $1"+feedPostOrder+" LIMIT $2 OFFSET $3",
		groupId, limit, offset,
	)

	if err != nil {
		return nil, fmt.Errorf("error listing group posts: %v", err)
	}

	return posts, nil
}

func CountPostsByGroup(groupId int64) (int, error) {
	var count int
	err := Conn.QueryRow("SELECT COUNT(*) FROM posts WHERE group_id = $1", groupId).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting group posts: %v", err)
	}

	return count, nil
}

func ListPostsByAuthor(authorId int64, limit, offset int) ([]*FeedPost, error) {
	var posts []*FeedPost
	err := Conn.Select(
		&posts,
		"SELECT "+feedPostColumns+feedPostJoins+" WHERE p.author_id = $1"+feedPostOrder+" LIMIT $2 OFFSET $3",
		authorId, limit, offset,
	)

	if err != nil {
		return nil, fmt.Errorf("error listing author posts: %v", err)
	}

	return posts, nil
}

// ListFollowedPosts selects posts whose author is followed by the given user.
func ListFollowedPosts(userId int64, limit, offset int) ([]*FeedPost, error) {
	var posts []*FeedPost
	err := Conn.Select(
		&posts,
		"SELECT "+feedPostColumns+feedPostJoins+
			" JOIN follows f ON f.author_id = p.author_id WHERE f.user_id = $1"+
			feedPostOrder+" LIMIT $2 OFFSET $3",
		userId, limit, offset,
	)

	if err != nil {
		return nil, fmt.Errorf("error listing followed posts: %v", err)
	}

	return posts, nil
}

func CountFollowedPosts(userId int64) (int, error) {
	var count int
	err := Conn.QueryRow(
		"SELECT COUNT(*) FROM posts p JOIN follows f ON f.author_id = p.author_id WHERE f.user_id = $1",
		userId,
	).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting followed posts: %v", err)
	}

	return count, nil
}

func CreatePost(authorId int64, text string, groupId *int64, image *string) (*Post, error) {
	post := &Post{
		Text:     text,
		AuthorId: authorId,
		GroupId:  groupId,
		Image:    image,
	}

	err := Conn.QueryRow(
		"INSERT INTO posts (text, author_id, group_id, image) VALUES ($1, $2, $3, $4) RETURNING id, pub_date",
		text, authorId, groupId, image,
	).Scan(&post.Id, &post.PubDate)

	if err != nil {
		return nil, fmt.Errorf("error creating post: %v", err)
	}

	return post, nil
}

// UpdatePost rewrites the mutable fields of a post. pub_date and author_id
// are never touched. A nil image leaves the stored image as is.
func UpdatePost(postId int64, text string, groupId *int64, image *string) error {
	var err error
	if image != nil {
		_, err = Conn.Exec(
			"UPDATE posts SET text = $1, group_id = $2, image = $3 WHERE id = $4",
			text, groupId, image, postId,
		)
	} else {
		_, err = Conn.Exec(
			"UPDATE posts SET text = $1, group_id = $2 WHERE id = $3",
			text, groupId, postId,
		)
	}

	if err != nil {
		return fmt.Errorf("error updating post: %v", err)
	}

	return nil
}

// DeletePost removes the post and, via ON DELETE CASCADE, its comments.
func DeletePost(postId int64) error {
	_, err := Conn.Exec("DELETE FROM posts WHERE id = $1", postId)

	if err != nil {
		return fmt.Errorf("error deleting post: %v", err)
	}

	return nil
}
