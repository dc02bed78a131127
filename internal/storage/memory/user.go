package memory

import (
	"fmt"

	"github.com/VitaminP8/blogery/models"
)

type UserMemoryStorage struct {
	db *Database
}

func NewUserMemoryStorage(db *Database) *UserMemoryStorage {
	return &UserMemoryStorage{db: db}
}

func (s *UserMemoryStorage) CreateUser(name, email, passwordHash string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, u := range s.db.users {
		if u.Email == email {
			return nil, fmt.Errorf("user %s: %w", email, models.ErrDuplicateEmail)
		}
	}

	user := &models.User{
		ID:        s.db.nextUserID,
		Name:      name,
		Email:     email,
		Password:  passwordHash,
		CreatedAt: s.db.now(),
	}
	s.db.nextUserID++
	s.db.users[user.ID] = user

	copied := *user
	return &copied, nil
}

func (s *UserMemoryStorage) GetUserByEmail(email string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	// email сравнивается с учетом регистра, как хранится
	for _, u := range s.db.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}

	return nil, fmt.Errorf("user %s: %w", email, models.ErrNotFound)
}

func (s *UserMemoryStorage) GetUserById(id uint) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	u, ok := s.db.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, models.ErrNotFound)
	}

	copied := *u
	return &copied, nil
}
