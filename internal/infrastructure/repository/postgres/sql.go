package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/mzhadan/matchwatch/internal/platform/logging"
	qb "github.com/mzhadan/matchwatch/internal/platform/querybuilder"
)

const uniqueViolationCode = "23505"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode
}

// insertModels inserts rows one by one so a duplicate key never aborts the
// batch: conflicts downgrade to a warning and the loop continues.
func insertModels(ctx context.Context, db *sqlx.DB, table string, models []any) error {
	for _, model := range models {
		query, args, err := qb.InsertModel(table, model, "ON CONFLICT DO NOTHING")
		if err != nil {
			return fmt.Errorf("build insert %s query: %w", table, err)
		}

		res, err := db.ExecContext(ctx, query, args...)
		if err != nil {
			if isUniqueViolation(err) {
				logging.Default().WarnContext(ctx, "duplicate row skipped", "table", table, "error", err)
				continue
			}
			return fmt.Errorf("insert %s: %w", table, err)
		}
		if affected, affErr := res.RowsAffected(); affErr == nil && affected == 0 {
			logging.Default().WarnContext(ctx, "duplicate row skipped", "table", table)
		}
	}
	return nil
}

func nullTimeToTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func timePtrToNullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}

func nullInt64ToIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func intPtrToNullInt64(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullInt64ToInt64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func int64PtrToNullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullFloat64ToFloat64Ptr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func int64sToAny(ids []int64) []any {
	out := make([]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, id)
	}
	return out
}

func stringsToAny(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}
