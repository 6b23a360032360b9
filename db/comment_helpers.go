package db

import "fmt"

func CreateComment(postId, authorId int64, text string) (*Comment, error) {
	comment := &Comment{
		Text:     text,
		PostId:   postId,
		AuthorId: authorId,
	}

	err := Conn.QueryRow(
		"INSERT INTO comments (text, post_id, author_id) VALUES ($1, $2, $3) RETURNING id, created",
		text, postId, authorId,
	).Scan(&comment.Id, &comment.Created)

	if err != nil {
		return nil, fmt.Errorf("error creating comment: %v", err)
	}

	return comment, nil
}

// ListCommentsForPost returns the post's comments, newest first.
func ListCommentsForPost(postId int64) ([]*CommentWithAuthor, error) {
	var comments []*CommentWithAuthor
	err := Conn.Select(
		&comments,
		`SELECT c.id, c.text, c.created, c.post_id, c.author_id, u.username AS author_username
		 FROM comments c
		 JOIN users u ON u.id = c.author_id
		 WHERE c.post_id = $1
		 ORDER BY c.created DESC, c.id DESC`,
		postId,
	)

	if err != nil {
		return nil, fmt.Errorf("error listing comments: %v", err)
	}

	return comments, nil
}
