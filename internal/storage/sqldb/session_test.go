package sqldb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminP8/blogery/models"
)

func TestSessionSQLStorage(t *testing.T) {
	db := setupTestDB(t)
	storage := NewSessionSQLStorage(db)
	user := createTestUser(t, db, "user@example.com")

	now := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)
	storage.now = func() time.Time { return now }

	t.Run("Create and get", func(t *testing.T) {
		sess, err := storage.CreateSession(user.ID, time.Hour)
		require.NoError(t, err)
		assert.Len(t, sess.ID, 36)

		got, err := storage.GetSession(sess.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.UserID)
	})

	t.Run("Unknown user", func(t *testing.T) {
		_, err := storage.CreateSession(999, time.Hour)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("Expired session", func(t *testing.T) {
		sess, err := storage.CreateSession(user.ID, time.Minute)
		require.NoError(t, err)

		now = now.Add(time.Hour)
		_, err = storage.GetSession(sess.ID)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("Delete is idempotent", func(t *testing.T) {
		sess, err := storage.CreateSession(user.ID, time.Hour)
		require.NoError(t, err)

		require.NoError(t, storage.DeleteSession(sess.ID))
		require.NoError(t, storage.DeleteSession(sess.ID))

		_, err = storage.GetSession(sess.ID)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}
