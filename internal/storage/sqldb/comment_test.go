package sqldb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminP8/blogery/models"
)

func TestCommentSQLStorage(t *testing.T) {
	db := setupTestDB(t)
	posts := NewPostSQLStorage(db)
	storage := NewCommentSQLStorage(db)
	author := createTestUser(t, db, "admin@example.com")
	reader := createTestUser(t, db, "reader@example.com")

	post, err := posts.CreatePost(testPost("Commented", author.ID))
	require.NoError(t, err)

	t.Run("Create comment", func(t *testing.T) {
		comment, err := storage.CreateComment(post.ID, reader.ID, "hello")
		require.NoError(t, err)
		assert.NotZero(t, comment.ID)
		assert.Equal(t, post.ID, comment.PostID)
		assert.Equal(t, reader.ID, comment.UserID)

		var text string
		require.NoError(t, db.Table("comments").Where("id = ?", comment.ID).Select("comment").Row().Scan(&text))
		assert.Equal(t, "hello", text)
	})

	t.Run("Missing post", func(t *testing.T) {
		_, err := storage.CreateComment(999, reader.ID, "hello")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("Missing user", func(t *testing.T) {
		_, err := storage.CreateComment(post.ID, 999, "hello")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("Comments by post in order", func(t *testing.T) {
		_, err := storage.CreateComment(post.ID, author.ID, "reply")
		require.NoError(t, err)

		comments, err := storage.GetCommentsByPost(post.ID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "hello", comments[0].Text)
		assert.Equal(t, "reply", comments[1].Text)
	})

	t.Run("Post without comments", func(t *testing.T) {
		comments, err := storage.GetCommentsByPost(999)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})
}
