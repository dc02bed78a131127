package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/VitaminP8/blogery/models"
)

// MockPostStorage реализует интерфейс post.PostStorage для тестирования
type MockPostStorage struct {
	mock.Mock
}

func (m *MockPostStorage) CreatePost(post *models.Post) (*models.Post, error) {
	args := m.Called(post)
	p, _ := args.Get(0).(*models.Post)
	return p, args.Error(1)
}

func (m *MockPostStorage) GetPostById(id uint) (*models.Post, error) {
	args := m.Called(id)
	p, _ := args.Get(0).(*models.Post)
	return p, args.Error(1)
}

func (m *MockPostStorage) GetAllPosts() ([]*models.Post, error) {
	args := m.Called()
	posts, _ := args.Get(0).([]*models.Post)
	return posts, args.Error(1)
}

func (m *MockPostStorage) GetPostsByAuthor(authorID uint) ([]*models.Post, error) {
	args := m.Called(authorID)
	posts, _ := args.Get(0).([]*models.Post)
	return posts, args.Error(1)
}

func (m *MockPostStorage) UpdatePost(post *models.Post) (*models.Post, error) {
	args := m.Called(post)
	p, _ := args.Get(0).(*models.Post)
	return p, args.Error(1)
}

func (m *MockPostStorage) DeletePostById(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}
