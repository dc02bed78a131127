package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/VitaminP8/blogery/models"
)

// MockSessionStorage реализует интерфейс session.SessionStorage для тестирования
type MockSessionStorage struct {
	mock.Mock
}

func (m *MockSessionStorage) CreateSession(userID uint, ttl time.Duration) (*models.Session, error) {
	args := m.Called(userID, ttl)
	s, _ := args.Get(0).(*models.Session)
	return s, args.Error(1)
}

func (m *MockSessionStorage) GetSession(id string) (*models.Session, error) {
	args := m.Called(id)
	s, _ := args.Get(0).(*models.Session)
	return s, args.Error(1)
}

func (m *MockSessionStorage) DeleteSession(id string) error {
	args := m.Called(id)
	return args.Error(0)
}
