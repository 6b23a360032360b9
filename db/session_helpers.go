package db

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const sessionDuration = 30 * 24 * time.Hour

func hashSessionToken(token uuid.UUID) string {
	hashBytes := sha256.Sum256(token[:])
	return hex.EncodeToString(hashBytes[:])
}

// CreateSession stores a new session row and returns the raw token to be set
// as the client's cookie. Only the token's hash is persisted.
func CreateSession(userId int64) (string, error) {
	return createSession(Conn, userId)
}

func createSession(q sqlx.Ext, userId int64) (string, error) {
	uid := uuid.New()
	hash := hashSessionToken(uid)

	_, err := q.Exec(
		"INSERT INTO sessions (token_hash, user_id, expires_at) VALUES ($1, $2, $3)",
		hash, userId, time.Now().Add(sessionDuration),
	)

	if err != nil {
		return "", fmt.Errorf("error creating session: %v", err)
	}

	return uid.String(), nil
}

// ValidateSession resolves a raw session token to its session row; callers
// look the user up from it. Returns nil, nil for unknown or expired tokens.
func ValidateSession(token string) (*Session, error) {
	uid, err := uuid.Parse(token)

	if err != nil {
		return nil, nil
	}

	hash := hashSessionToken(uid)

	var session Session
	err = Conn.Get(
		&session,
		"SELECT * FROM sessions WHERE token_hash = $1 AND expires_at > NOW()",
		hash,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error validating session: %v", err)
	}

	return &session, nil
}

func DeleteSession(token string) error {
	uid, err := uuid.Parse(token)

	if err != nil {
		return nil
	}

	_, err = Conn.Exec("DELETE FROM sessions WHERE token_hash = $1", hashSessionToken(uid))

	if err != nil {
		return fmt.Errorf("error deleting session: %v", err)
	}

	return nil
}
