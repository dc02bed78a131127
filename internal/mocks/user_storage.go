package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/VitaminP8/blogery/models"
)

// MockUserStorage реализует интерфейс user.UserStorage для тестирования
type MockUserStorage struct {
	mock.Mock
}

func (m *MockUserStorage) CreateUser(name, email, passwordHash string) (*models.User, error) {
	args := m.Called(name, email, passwordHash)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *MockUserStorage) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *MockUserStorage) GetUserById(id uint) (*models.User, error) {
	args := m.Called(id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}
