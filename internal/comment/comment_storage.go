package comment

import (
	"github.com/VitaminP8/blogery/models"
)

type CommentStorage interface {
	// CreateComment проверяет, что пост и автор существуют
	CreateComment(postID, userID uint, text string) (*models.Comment, error)
	GetCommentsByPost(postID uint) ([]*models.Comment, error)
}
