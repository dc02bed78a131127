package memory

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/VitaminP8/blogery/models"
)

type SessionMemoryStorage struct {
	db *Database
}

func NewSessionMemoryStorage(db *Database) *SessionMemoryStorage {
	return &SessionMemoryStorage{db: db}
}

func (s *SessionMemoryStorage) CreateSession(userID uint, ttl time.Duration) (*models.Session, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.users[userID]; !ok {
		return nil, fmt.Errorf("user %d: %w", userID, models.ErrNotFound)
	}

	// просроченные сессии пользователя чистим заодно
	now := s.db.now()
	for id, existing := range s.db.sessions {
		if existing.UserID == userID && existing.Expired(now) {
			delete(s.db.sessions, id)
		}
	}

	sess := &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
	}
	s.db.sessions[sess.ID] = sess

	copied := *sess
	return &copied, nil
}

func (s *SessionMemoryStorage) GetSession(id string) (*models.Session, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	sess, ok := s.db.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session: %w", models.ErrNotFound)
	}
	if sess.Expired(s.db.now()) {
		delete(s.db.sessions, id)
		return nil, fmt.Errorf("session expired: %w", models.ErrNotFound)
	}

	copied := *sess
	return &copied, nil
}

func (s *SessionMemoryStorage) DeleteSession(id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	delete(s.db.sessions, id)
	return nil
}
