package sqldb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"

	"github.com/VitaminP8/blogery/models"
)

type SessionSQLStorage struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSessionSQLStorage(db *gorm.DB) *SessionSQLStorage {
	return &SessionSQLStorage{db: db, now: time.Now}
}

func (s *SessionSQLStorage) CreateSession(userID uint, ttl time.Duration) (*models.Session, error) {
	sess := &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: s.now().Add(ttl).UTC(),
	}

	err := withTx(s.db, "could not create session", func(tx *gorm.DB) error {
		if err := checkUserExists(tx, userID); err != nil {
			return err
		}
		// просроченные сессии пользователя чистим заодно
		if err := tx.Where("user_id = ? AND expires_at <= ?", userID, s.now().UTC()).Delete(&models.Session{}).Error; err != nil {
			return storeErr("could not prune sessions", err)
		}
		if err := tx.Create(sess).Error; err != nil {
			return storeErr("could not create session", err)
		}
		return nil
	})
	if err != nil {
		return nil, passThrough("could not create session", err)
	}

	return sess, nil
}

func (s *SessionSQLStorage) GetSession(id string) (*models.Session, error) {
	var sess models.Session
	err := s.db.Where("id = ?", id).First(&sess).Error
	if err != nil {
		return nil, storeErr("could not get session", err)
	}
	if sess.Expired(s.now()) {
		return nil, fmt.Errorf("session expired: %w", models.ErrNotFound)
	}
	return &sess, nil
}

func (s *SessionSQLStorage) DeleteSession(id string) error {
	err := s.db.Where("id = ?", id).Delete(&models.Session{}).Error
	if err != nil {
		return storeErr("could not delete session", err)
	}
	return nil
}
