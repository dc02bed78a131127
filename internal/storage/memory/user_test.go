package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminP8/blogery/models"
)

func TestUserMemoryStorage_CreateUser(t *testing.T) {
	storage := NewUserMemoryStorage(NewDatabase())

	t.Run("Successful user creation", func(t *testing.T) {
		user, err := storage.CreateUser("Test User", "test@example.com", "hash")
		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
		assert.Equal(t, "Test User", user.Name)
		assert.Equal(t, "test@example.com", user.Email)
		assert.Equal(t, "hash", user.Password)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("Duplicate email is rejected", func(t *testing.T) {
		_, err := storage.CreateUser("Another", "test@example.com", "hash2")
		assert.ErrorIs(t, err, models.ErrDuplicateEmail)

		// первый аккаунт не изменился
		first, err := storage.GetUserByEmail("test@example.com")
		require.NoError(t, err)
		assert.Equal(t, "Test User", first.Name)
		assert.Equal(t, "hash", first.Password)
	})

	t.Run("Email comparison is case-sensitive", func(t *testing.T) {
		user, err := storage.CreateUser("Upper", "TEST@example.com", "hash")
		require.NoError(t, err)
		assert.Equal(t, uint(2), user.ID)
	})
}

func TestUserMemoryStorage_Getters(t *testing.T) {
	storage := NewUserMemoryStorage(NewDatabase())

	created, err := storage.CreateUser("Reader", "reader@example.com", "hash")
	require.NoError(t, err)

	t.Run("Get by email", func(t *testing.T) {
		user, err := storage.GetUserByEmail("reader@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
	})

	t.Run("Get by id", func(t *testing.T) {
		user, err := storage.GetUserById(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Reader", user.Name)
	})

	t.Run("Unknown email", func(t *testing.T) {
		_, err := storage.GetUserByEmail("nobody@example.com")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("Unknown id", func(t *testing.T) {
		_, err := storage.GetUserById(42)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("Returned user is a copy", func(t *testing.T) {
		user, err := storage.GetUserById(created.ID)
		require.NoError(t, err)
		user.Name = "changed"

		again, err := storage.GetUserById(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Reader", again.Name)
	})
}

func TestUserMemoryStorage_ConcurrentRegistration(t *testing.T) {
	storage := NewUserMemoryStorage(NewDatabase())

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := storage.CreateUser("Racer", "race@example.com", "hash")
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
}
