package sqldb

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jinzhu/gorm"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"

	"github.com/VitaminP8/blogery/models"
)

var pqUniqueErr = pq.Error{Code: pqUniqueViolation, Message: "duplicate key value violates unique constraint"}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pqUniqueErr))
	assert.True(t, isUniqueViolation(fmt.Errorf("wrapped: %w", &pqUniqueErr)))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.True(t, isUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}))
	assert.False(t, isUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}

func TestStoreErr(t *testing.T) {
	assert.ErrorIs(t, storeErr("op", gorm.ErrRecordNotFound), models.ErrNotFound)

	err := storeErr("op", errors.New("boom"))
	assert.ErrorIs(t, err, models.ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "boom")

	dup := fmt.Errorf("x: %w", models.ErrDuplicateTitle)
	assert.Equal(t, dup, passThrough("op", dup))
}
