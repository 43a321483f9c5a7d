package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/riskibarqy/futball/internal/domain/errs"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	t.Run("unique violation becomes duplicate key", func(t *testing.T) {
		err := classify(&pq.Error{Code: pqUniqueViolation, Detail: "Key (name)=(Arsenal) already exists."}, "insert team")
		assert.ErrorIs(t, err, errs.ErrDuplicateKey)
		assert.Contains(t, err.Error(), "Arsenal")
	})

	t.Run("check violation becomes referential", func(t *testing.T) {
		err := classify(&pq.Error{Code: pqCheckViolation, Constraint: "matches_distinct_teams"}, "insert match")
		assert.ErrorIs(t, err, errs.ErrReferential)
		assert.Contains(t, err.Error(), "matches_distinct_teams")
	})

	t.Run("foreign key violation becomes referential", func(t *testing.T) {
		err := classify(fmt.Errorf("wrapped: %w", &pq.Error{Code: pqForeignKeyViolation, Message: "fk"}), "insert shot")
		assert.ErrorIs(t, err, errs.ErrReferential)
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := classify(cause, "select teams")
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "internal", errs.Kind(err))
	})
}

func TestNullableConversions(t *testing.T) {
	t.Parallel()

	three := 3
	assert.Equal(t, sql.NullInt32{Int32: 3, Valid: true}, intPtrToNull(&three))
	assert.False(t, intPtrToNull(nil).Valid)
	assert.Nil(t, nullToIntPtr(sql.NullInt32{}))
	assert.Equal(t, 3, *nullToIntPtr(sql.NullInt32{Int32: 3, Valid: true}))

	assert.False(t, zeroToNull(0).Valid)
	assert.True(t, zeroToNull(7).Valid)

	id := int64(9)
	assert.Equal(t, int64(9), *nullToInt64Ptr(int64PtrToNull(&id)))
	assert.True(t, isNotFound(fmt.Errorf("get: %w", sql.ErrNoRows)))
}
