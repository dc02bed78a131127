package sqldb

import (
	"fmt"

	"github.com/jinzhu/gorm"

	"github.com/VitaminP8/blogery/models"
)

type PostSQLStorage struct {
	db *gorm.DB
}

func NewPostSQLStorage(db *gorm.DB) *PostSQLStorage {
	return &PostSQLStorage{db: db}
}

func (s *PostSQLStorage) CreatePost(post *models.Post) (*models.Post, error) {
	created := *post
	created.ID = 0

	err := withTx(s.db, "could not create post", func(tx *gorm.DB) error {
		if err := checkTitleFree(tx, created.Title, 0); err != nil {
			return err
		}
		if err := checkUserExists(tx, created.AuthorID); err != nil {
			return err
		}

		if err := tx.Create(&created).Error; err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("post %q: %w", created.Title, models.ErrDuplicateTitle)
			}
			return storeErr("could not create post", err)
		}
		return nil
	})
	if err != nil {
		return nil, passThrough("could not create post", err)
	}

	return &created, nil
}

func (s *PostSQLStorage) GetPostById(id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.First(&post, id).Error
	if err != nil {
		return nil, storeErr(fmt.Sprintf("could not get post %d", id), err)
	}
	return &post, nil
}

func (s *PostSQLStorage) GetAllPosts() ([]*models.Post, error) {
	var posts []*models.Post
	err := s.db.Order("id asc").Find(&posts).Error
	if err != nil {
		return nil, storeErr("could not get posts", err)
	}
	return posts, nil
}

func (s *PostSQLStorage) GetPostsByAuthor(authorID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := s.db.Where("author_id = ?", authorID).Order("id asc").Find(&posts).Error
	if err != nil {
		return nil, storeErr("could not get posts by author", err)
	}
	return posts, nil
}

func (s *PostSQLStorage) UpdatePost(post *models.Post) (*models.Post, error) {
	var existing models.Post

	err := withTx(s.db, "could not update post", func(tx *gorm.DB) error {
		if err := tx.First(&existing, post.ID).Error; err != nil {
			return storeErr(fmt.Sprintf("could not get post %d", post.ID), err)
		}
		if err := checkTitleFree(tx, post.Title, post.ID); err != nil {
			return err
		}
		if err := checkUserExists(tx, post.AuthorID); err != nil {
			return err
		}

		// дата создания не меняется
		existing.Title = post.Title
		existing.Subtitle = post.Subtitle
		existing.Body = post.Body
		existing.ImgURL = post.ImgURL
		existing.AuthorID = post.AuthorID

		if err := tx.Save(&existing).Error; err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("post %q: %w", post.Title, models.ErrDuplicateTitle)
			}
			return storeErr("could not update post", err)
		}
		return nil
	})
	if err != nil {
		return nil, passThrough("could not update post", err)
	}

	return &existing, nil
}

func (s *PostSQLStorage) DeletePostById(id uint) error {
	err := withTx(s.db, "could not delete post", func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, id).Error; err != nil {
			return storeErr(fmt.Sprintf("could not get post %d", id), err)
		}

		// комментарии удаляются явно: в SQLite нет внешнего ключа с ON DELETE CASCADE
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return storeErr("could not delete comments", err)
		}
		if err := tx.Delete(&post).Error; err != nil {
			return storeErr("could not delete post", err)
		}
		return nil
	})
	if err != nil {
		return passThrough("could not delete post", err)
	}

	return nil
}

func checkTitleFree(tx *gorm.DB, title string, exceptID uint) error {
	var count int
	err := tx.Model(&models.Post{}).Where("title = ? AND id <> ?", title, exceptID).Count(&count).Error
	if err != nil {
		return storeErr("could not check title", err)
	}
	if count > 0 {
		return fmt.Errorf("post %q: %w", title, models.ErrDuplicateTitle)
	}
	return nil
}

func checkUserExists(tx *gorm.DB, userID uint) error {
	var count int
	err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error
	if err != nil {
		return storeErr("could not check user", err)
	}
	if count == 0 {
		return fmt.Errorf("user %d: %w", userID, models.ErrNotFound)
	}
	return nil
}

func checkPostExists(tx *gorm.DB, postID uint) error {
	var count int
	err := tx.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error
	if err != nil {
		return storeErr("could not check post", err)
	}
	if count == 0 {
		return fmt.Errorf("post %d: %w", postID, models.ErrNotFound)
	}
	return nil
}
