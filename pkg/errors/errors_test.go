package custom_error

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestWrapDBError(t *testing.T) {
	var unique *UniqueViolationError
	assert.True(t, errors.As(WrapDBError("dup", "23505"), &unique))

	var fk *ForeignKeyViolationError
	assert.True(t, errors.As(WrapDBError("sector", "23503"), &fk))
	assert.Contains(t, fk.Error(), "23503")

	other := WrapDBError("boom", "42P01")
	assert.Contains(t, other.Error(), "42P01")
}

func TestFromPQ(t *testing.T) {
	err := FromPQ(&pq.Error{Code: "23505"}, "Stock item already exists for this sector")
	var unique *UniqueViolationError
	assert.True(t, errors.As(err, &unique))

	plain := errors.New("connection refused")
	wrapped := FromPQ(plain, "failed to insert stock item")
	assert.ErrorIs(t, wrapped, plain)
	assert.Contains(t, wrapped.Error(), "failed to insert stock item")
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("updates", "must be an array")
	assert.Equal(t, "updates: must be an array", err.Error())

	assert.Equal(t, "stock item 7 not found", (&NotFoundError{Resource: "stock item", ID: 7}).Error())
}
