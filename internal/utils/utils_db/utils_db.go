package utils_db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

const uniqueViolation = "23505"

// FetchOne scans a single row into T. sql.ErrNoRows becomes ErrNotFound.
func FetchOne[T any](ctx context.Context, q sqlx.QueryerContext, query string, args ...interface{}) (T, error) {
	var obj T
	err := sqlx.GetContext(ctx, q, &obj, query, args...)
	return obj, MapErr(err)
}

// FetchAll scans every row into a slice of T. An empty result is an empty,
// non-nil slice so it renders as [] in JSON.
func FetchAll[T any](ctx context.Context, q sqlx.QueryerContext, query string, args ...interface{}) ([]T, error) {
	objs := make([]T, 0)
	err := sqlx.SelectContext(ctx, q, &objs, query, args...)
	return objs, MapErr(err)
}

func GetTotalRecordNo(ctx context.Context, q sqlx.QueryerContext, query string, args ...interface{}) (int, error) {
	return FetchOne[int](ctx, q, query, args...)
}

// Exec runs a statement and returns the number of affected rows.
func Exec(ctx context.Context, q sqlx.ExecerContext, query string, args ...interface{}) (int64, error) {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, MapErr(err)
	}
	return res.RowsAffected()
}

// MapErr translates driver errors into the package sentinels.
func MapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	case IsUniqueViolation(err):
		if constraint := ConstraintOf(err); constraint != "" {
			return errors.WithMessage(ErrConflict, constraint)
		}
		return ErrConflict
	}
	return err
}

func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}

func ConstraintOf(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

// Columns renders "alias.col AS "prefix.col"" for each column, which sqlx maps
// onto a nested struct tagged db:"prefix".
func Columns(alias, prefix string, cols ...string) string {
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = fmt.Sprintf(`%s.%s AS "%s.%s"`, alias, col, prefix, col)
	}
	return strings.Join(parts, ", ")
}
