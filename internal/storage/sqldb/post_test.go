package sqldb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminP8/blogery/models"
)

func testPost(title string, authorID uint) *models.Post {
	return &models.Post{
		Title:    title,
		Subtitle: "subtitle",
		Date:     "October 17, 2026",
		Body:     "<p>body</p>",
		ImgURL:   "https://example.com/img.png",
		AuthorID: authorID,
	}
}

func TestPostSQLStorage_CreatePost(t *testing.T) {
	db := setupTestDB(t)
	storage := NewPostSQLStorage(db)
	author := createTestUser(t, db, "admin@example.com")

	t.Run("Success post creation", func(t *testing.T) {
		post, err := storage.CreatePost(testPost("Hello", author.ID))
		require.NoError(t, err)
		assert.NotZero(t, post.ID)

		var dbPost models.Post
		require.NoError(t, db.First(&dbPost, post.ID).Error)
		assert.Equal(t, "Hello", dbPost.Title)
		assert.Equal(t, "https://example.com/img.png", dbPost.ImgURL)
		assert.Equal(t, author.ID, dbPost.AuthorID)
	})

	t.Run("Duplicate title does not create a row", func(t *testing.T) {
		_, err := storage.CreatePost(testPost("Hello", author.ID))
		assert.ErrorIs(t, err, models.ErrDuplicateTitle)

		var count int
		require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
		assert.Equal(t, 1, count)
	})

	t.Run("Unknown author", func(t *testing.T) {
		_, err := storage.CreatePost(testPost("Nobody's", 999))
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("Input is not mutated", func(t *testing.T) {
		in := testPost("Fresh", author.ID)
		out, err := storage.CreatePost(in)
		require.NoError(t, err)
		assert.Zero(t, in.ID)
		assert.NotZero(t, out.ID)
	})
}

func TestPostSQLStorage_Reads(t *testing.T) {
	db := setupTestDB(t)
	storage := NewPostSQLStorage(db)
	first := createTestUser(t, db, "first@example.com")
	second := createTestUser(t, db, "second@example.com")

	t.Run("Empty table", func(t *testing.T) {
		posts, err := storage.GetAllPosts()
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	for _, p := range []*models.Post{testPost("a", first.ID), testPost("b", second.ID), testPost("c", first.ID)} {
		_, err := storage.CreatePost(p)
		require.NoError(t, err)
	}

	t.Run("All posts ordered by id", func(t *testing.T) {
		posts, err := storage.GetAllPosts()
		require.NoError(t, err)
		require.Len(t, posts, 3)
		assert.True(t, posts[0].ID < posts[1].ID && posts[1].ID < posts[2].ID)
		assert.Equal(t, "a", posts[0].Title)
	})

	t.Run("By author", func(t *testing.T) {
		posts, err := storage.GetPostsByAuthor(first.ID)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "a", posts[0].Title)
		assert.Equal(t, "c", posts[1].Title)
	})

	t.Run("Missing post", func(t *testing.T) {
		_, err := storage.GetPostById(999)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestPostSQLStorage_UpdatePost(t *testing.T) {
	db := setupTestDB(t)
	storage := NewPostSQLStorage(db)
	author := createTestUser(t, db, "admin@example.com")
	other := createTestUser(t, db, "other@example.com")

	post, err := storage.CreatePost(testPost("Original", author.ID))
	require.NoError(t, err)
	_, err = storage.CreatePost(testPost("Taken", author.ID))
	require.NoError(t, err)

	t.Run("Overwrites fields, keeps date", func(t *testing.T) {
		update := testPost("Renamed", other.ID)
		update.ID = post.ID
		update.Body = "<p>new</p>"
		update.Date = "January 01, 2000"

		updated, err := storage.UpdatePost(update)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, "<p>new</p>", updated.Body)
		assert.Equal(t, other.ID, updated.AuthorID)
		assert.Equal(t, post.Date, updated.Date)

		var dbPost models.Post
		require.NoError(t, db.First(&dbPost, post.ID).Error)
		assert.Equal(t, "Renamed", dbPost.Title)
		assert.Equal(t, post.Date, dbPost.Date)
	})

	t.Run("Title collision", func(t *testing.T) {
		update := testPost("Taken", author.ID)
		update.ID = post.ID
		_, err := storage.UpdatePost(update)
		assert.ErrorIs(t, err, models.ErrDuplicateTitle)
	})

	t.Run("Missing post", func(t *testing.T) {
		update := testPost("Anything", author.ID)
		update.ID = 999
		_, err := storage.UpdatePost(update)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("Unknown author", func(t *testing.T) {
		update := testPost("Renamed", 999)
		update.ID = post.ID
		_, err := storage.UpdatePost(update)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestPostSQLStorage_DeletePostById(t *testing.T) {
	db := setupTestDB(t)
	storage := NewPostSQLStorage(db)
	comments := NewCommentSQLStorage(db)
	author := createTestUser(t, db, "admin@example.com")

	doomed, err := storage.CreatePost(testPost("Doomed", author.ID))
	require.NoError(t, err)
	kept, err := storage.CreatePost(testPost("Kept", author.ID))
	require.NoError(t, err)

	_, err = comments.CreateComment(doomed.ID, author.ID, "one")
	require.NoError(t, err)
	_, err = comments.CreateComment(doomed.ID, author.ID, "two")
	require.NoError(t, err)
	_, err = comments.CreateComment(kept.ID, author.ID, "three")
	require.NoError(t, err)

	t.Run("Cascade removes comments", func(t *testing.T) {
		require.NoError(t, storage.DeletePostById(doomed.ID))

		var orphans int
		require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", doomed.ID).Count(&orphans).Error)
		assert.Zero(t, orphans)

		var remaining int
		require.NoError(t, db.Model(&models.Comment{}).Count(&remaining).Error)
		assert.Equal(t, 1, remaining)

		_, err := storage.GetPostById(doomed.ID)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("Missing post", func(t *testing.T) {
		err := storage.DeletePostById(doomed.ID)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}
