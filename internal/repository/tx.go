package repository

import (
	"context"
	"database/sql"
)

type txKey struct{}

// dbtx is the subset of *sql.DB and *sql.Tx the repositories issue
// statements through. Methods that must run inside the booking transaction
// resolve the transaction from the context; everything else falls back to
// the pool.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxManager begins and finishes units of work against the shared pool.
// One TxManager is shared by all repositories so a single transaction can
// span the inventory decrement and the booking insert.
type TxManager struct {
	db *sql.DB
}

// NewTxManager returns a TxManager bound to the given database.
func NewTxManager(db *sql.DB) *TxManager { return &TxManager{db: db} }

// WithTx runs fn inside a transaction carried in the context. A nil return
// from fn commits; any error (or a panic unwinding through) rolls back.
// Nested calls join the already-open transaction.
//
// Read Committed is sufficient here: the inventory decrement is a single
// conditional UPDATE, so two transactions racing on the same ticket
// serialize on the row lock regardless of isolation level, and the weaker
// level avoids blocking on unrelated rows.
func (m *TxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func txFromContext(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}

func conn(ctx context.Context, db *sql.DB) dbtx {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return db
}
