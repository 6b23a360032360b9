package db

import (
	"context"
	"database/sql"
	"fmt"
	"runtime/debug"

	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
)

func WithTx(ctx context.Context, reason string, fn func(tx *sqlx.Tx) error) error {
	tx, err := Conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %v", err)
	}

	var committed bool

	// Ensure that rollback is attempted in case of failure
	defer func() {
		panicErr := recover()
		if panicErr != nil {
			log.Printf("panic in WithTx (%s): %v\n%s", reason, panicErr, debug.Stack())
		}

		if committed {
			return
		}

		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			log.Printf("transaction rollback error: (%s) %v", reason, rbErr)
		}
	}()

	err = fn(tx)

	if err != nil {
		log.Printf("error in WithTx (%s): %v", reason, err)
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction (%s): %v", reason, err)
	}
	committed = true

	return nil
}
