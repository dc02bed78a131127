package memory

import (
	"fmt"
	"sort"

	"github.com/VitaminP8/blogery/models"
)

type CommentMemoryStorage struct {
	db *Database
}

func NewCommentMemoryStorage(db *Database) *CommentMemoryStorage {
	return &CommentMemoryStorage{db: db}
}

func (s *CommentMemoryStorage) CreateComment(postID, userID uint, text string) (*models.Comment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.posts[postID]; !ok {
		return nil, fmt.Errorf("post %d: %w", postID, models.ErrNotFound)
	}
	if _, ok := s.db.users[userID]; !ok {
		return nil, fmt.Errorf("user %d: %w", userID, models.ErrNotFound)
	}

	comment := &models.Comment{
		ID:     s.db.nextCommentID,
		Text:   text,
		UserID: userID,
		PostID: postID,
	}
	s.db.nextCommentID++
	s.db.comments[comment.ID] = comment

	copied := *comment
	return &copied, nil
}

func (s *CommentMemoryStorage) GetCommentsByPost(postID uint) ([]*models.Comment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var comments []*models.Comment
	for _, c := range s.db.comments {
		if c.PostID == postID {
			copied := *c
			comments = append(comments, &copied)
		}
	}

	sort.Slice(comments, func(i, j int) bool {
		return comments[i].ID < comments[j].ID
	})

	return comments, nil
}
