package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/VitaminP8/blogery/models"
)

// MockCommentStorage реализует интерфейс comment.CommentStorage для тестирования
type MockCommentStorage struct {
	mock.Mock
}

func (m *MockCommentStorage) CreateComment(postID, userID uint, text string) (*models.Comment, error) {
	args := m.Called(postID, userID, text)
	c, _ := args.Get(0).(*models.Comment)
	return c, args.Error(1)
}

func (m *MockCommentStorage) GetCommentsByPost(postID uint) ([]*models.Comment, error) {
	args := m.Called(postID)
	comments, _ := args.Get(0).([]*models.Comment)
	return comments, args.Error(1)
}
