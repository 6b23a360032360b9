package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrUsernameTaken = errors.New("username already taken")

func GetUser(userId int64) (*User, error) {
	var user User
	err := Conn.Get(&user, "SELECT * FROM users WHERE id = $1", userId)

	if err != nil {
		return nil, fmt.Errorf("error getting user: %v", err)
	}

	return &user, nil
}

// GetUserByUsername returns nil, nil when no such user exists.
func GetUserByUsername(username string) (*User, error) {
	var user User
	err := Conn.Get(&user, "SELECT * FROM users WHERE username = $1", username)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting user: %v", err)
	}

	return &user, nil
}

func CreateUser(username, passwordHash string) (*User, error) {
	user := &User{
		Username:     username,
		PasswordHash: passwordHash,
	}

	err := Conn.QueryRow(
		"INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id, created_at",
		username, passwordHash,
	).Scan(&user.Id, &user.CreatedAt)

	if err != nil {
		if IsNonUniqueErr(err) {
			return nil, ErrUsernameTaken
		}

		return nil, fmt.Errorf("error creating user: %v", err)
	}

	return user, nil
}

// CreateUserWithSession creates the user and their first session in one
// transaction, so a failure can't leave a user without a session. A duplicate
// username surfaces as ErrUsernameTaken, including when a concurrent signup
// wins the race.
func CreateUserWithSession(username, passwordHash string) (*User, string, error) {
	user := &User{
		Username:     username,
		PasswordHash: passwordHash,
	}
	var token string

	err := WithTx(context.Background(), "create user with session", func(tx *sqlx.Tx) error {
		err := tx.QueryRow(
			"INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id, created_at",
			username, passwordHash,
		).Scan(&user.Id, &user.CreatedAt)

		if err != nil {
			if IsNonUniqueErr(err) {
				return ErrUsernameTaken
			}

			return fmt.Errorf("error creating user: %v", err)
		}

		token, err = createSession(tx, user.Id)
		return err
	})

	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// DeleteUser removes the user. Their posts, comments, sessions, and follow
// edges in both directions go with them via ON DELETE CASCADE.
func DeleteUser(userId int64) error {
	_, err := Conn.Exec("DELETE FROM users WHERE id = $1", userId)

	if err != nil {
		return fmt.Errorf("error deleting user: %v", err)
	}

	return nil
}

func CountPostsByAuthor(authorId int64) (int, error) {
	var count int
	err := Conn.QueryRow("SELECT COUNT(*) FROM posts WHERE author_id = $1", authorId).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting posts: %v", err)
	}

	return count, nil
}
