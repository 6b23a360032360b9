package db

import (
	"errors"
	"fmt"
)

var ErrSelfFollow = errors.New("users cannot follow themselves")

// CreateFollow records that user follows author. It is idempotent: following
// an already-followed author is a no-op. Self-follows are rejected here and,
// as a backstop, by the follows_no_self_follow CHECK constraint.
func CreateFollow(userId, authorId int64) error {
	if userId == authorId {
		return ErrSelfFollow
	}

	_, err := Conn.Exec(
		"INSERT INTO follows (user_id, author_id) VALUES ($1, $2) ON CONFLICT (user_id, author_id) DO NOTHING",
		userId, authorId,
	)

	if err != nil {
		if IsCheckViolationErr(err) {
			return ErrSelfFollow
		}

		return fmt.Errorf("error creating follow: %v", err)
	}

	return nil
}

// DeleteFollow removes the edge if present and reports whether it existed.
func DeleteFollow(userId, authorId int64) (bool, error) {
	res, err := Conn.Exec(
		"DELETE FROM follows WHERE user_id = $1 AND author_id = $2",
		userId, authorId,
	)

	if err != nil {
		return false, fmt.Errorf("error deleting follow: %v", err)
	}

	rows, err := res.RowsAffected()

	if err != nil {
		return false, fmt.Errorf("error deleting follow: %v", err)
	}

	return rows > 0, nil
}

func IsFollowing(userId, authorId int64) (bool, error) {
	var count int
	err := Conn.QueryRow(
		"SELECT COUNT(*) FROM follows WHERE user_id = $1 AND author_id = $2",
		userId, authorId,
	).Scan(&count)

	if err != nil {
		return false, fmt.Errorf("error checking follow: %v", err)
	}

	return count > 0, nil
}
