package session

import (
	"time"

	"github.com/VitaminP8/blogery/models"
)

type SessionStorage interface {
	CreateSession(userID uint, ttl time.Duration) (*models.Session, error)
	// GetSession возвращает models.ErrNotFound для отсутствующей или просроченной сессии
	GetSession(id string) (*models.Session, error)
	// DeleteSession идемпотентна: удаление несуществующей сессии не ошибка
	DeleteSession(id string) error
}
