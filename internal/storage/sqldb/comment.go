package sqldb

import (
	"github.com/jinzhu/gorm"

	"github.com/VitaminP8/blogery/models"
)

type CommentSQLStorage struct {
	db *gorm.DB
}

func NewCommentSQLStorage(db *gorm.DB) *CommentSQLStorage {
	return &CommentSQLStorage{db: db}
}

func (s *CommentSQLStorage) CreateComment(postID, userID uint, text string) (*models.Comment, error) {
	comment := &models.Comment{
		PostID: postID,
		UserID: userID,
		Text:   text,
	}

	err := withTx(s.db, "could not create comment", func(tx *gorm.DB) error {
		if err := checkPostExists(tx, postID); err != nil {
			return err
		}
		if err := checkUserExists(tx, userID); err != nil {
			return err
		}
		if err := tx.Create(comment).Error; err != nil {
			return storeErr("could not create comment", err)
		}
		return nil
	})
	if err != nil {
		return nil, passThrough("could not create comment", err)
	}

	return comment, nil
}

func (s *CommentSQLStorage) GetCommentsByPost(postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := s.db.Where("post_id = ?", postID).Order("id asc").Find(&comments).Error
	if err != nil {
		return nil, storeErr("could not get comments", err)
	}
	return comments, nil
}
