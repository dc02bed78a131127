package post

import (
	"github.com/VitaminP8/blogery/models"
)

type PostStorage interface {
	// CreatePost атомарно проверяет уникальность заголовка и сохраняет пост
	CreatePost(post *models.Post) (*models.Post, error)
	GetPostById(id uint) (*models.Post, error)
	// GetAllPosts возвращает посты по возрастанию ID
	GetAllPosts() ([]*models.Post, error)
	GetPostsByAuthor(authorID uint) ([]*models.Post, error)
	UpdatePost(post *models.Post) (*models.Post, error)
	// DeletePostById удаляет пост вместе со всеми его комментариями
	DeletePostById(id uint) error
}
