package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"habitserver/internal/utils/utils_db"
)

var (
	ErrNotFound = utils_db.ErrNotFound
	ErrConflict = utils_db.ErrConflict
)

// Store is the Postgres data access layer. A Store returned by WithTx runs
// every query inside that transaction.
type Store struct {
	db *sqlx.DB
	q  sqlx.ExtContext
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db, q: db}
}

func (s *Store) DB() *sqlx.DB {
	return s.db
}

func (s *Store) inTx() bool {
	_, ok := s.q.(*sqlx.Tx)
	return ok
}

// WithTx runs fn in a transaction and commits when it returns nil. Nested
// calls reuse the outer transaction.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) (err error) {
	if s.inTx() {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "store.WithTx.Begin")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&Store{db: s.db, q: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "store.WithTx.Commit")
	}
	return nil
}

// LockPair takes a transaction-scoped advisory lock on an unordered pair of
// ids. It must be called inside WithTx.
func (s *Store) LockPair(ctx context.Context, scope string, a, b uuid.UUID) error {
	if !s.inTx() {
		return errors.New("store.LockPair: not in a transaction")
	}
	lo, hi := a.String(), b.String()
	if hi < lo {
		lo, hi = hi, lo
	}
	key := fmt.Sprintf("%s:%s:%s", scope, lo, hi)
	_, err := s.q.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", key)
	return errors.Wrap(err, "store.LockPair")
}

var summaryCols = []string{"id", "name", "username", "avatar_url"}

func wrap(err error, op string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, op)
}
