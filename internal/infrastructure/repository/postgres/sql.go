package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/futball/internal/domain/errs"
)

// PostgreSQL error classes the record store translates into the domain
// taxonomy.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

// insertChunkSize bounds the bind parameters of one multi-row insert well
// below the protocol limit of 65535.
const insertChunkSize = 500

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// classify maps constraint failures to errs sentinels and wraps anything else
// with the operation name.
func classify(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqUniqueViolation:
			return errs.DuplicateKey("%s: %s", op, constraintDetail(pqErr))
		case pqForeignKeyViolation, pqCheckViolation:
			return errs.Referential("%s: %s", op, constraintDetail(pqErr))
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func constraintDetail(err *pq.Error) string {
	if err.Detail != "" {
		return err.Detail
	}
	if err.Constraint != "" {
		return "constraint " + err.Constraint
	}
	return err.Message
}

// inTx runs fn in one transaction. Any error from fn rolls the whole unit
// back and is reported as errs.ErrTransaction with the cause attached.
func inTx(ctx context.Context, db *sqlx.DB, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s tx: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return err
		}
		return errs.Transaction(err, "%s", op)
	}
	if err := tx.Commit(); err != nil {
		return errs.Transaction(err, "commit %s", op)
	}
	return nil
}

// checkTx runs fn like inTx and always rolls back, so a merge can be
// rehearsed against the same locks and checks as the real run.
func checkTx(ctx context.Context, db *sqlx.DB, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s tx: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return err
		}
		return errs.Transaction(err, "%s", op)
	}
	return nil
}

func exec(ctx context.Context, q sqlx.ExecerContext, op, query string, args ...any) (int64, error) {
	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, classify(err, op)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s rows affected: %w", op, err)
	}
	return affected, nil
}

func intPtrToNull(v *int) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*v), Valid: true}
}

func nullToIntPtr(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int32)
	return &out
}

func int64PtrToNull(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullToInt64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	out := v.Int64
	return &out
}

func zeroToNull(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: v > 0}
}
