package memory

import (
	"fmt"
	"sort"

	"github.com/VitaminP8/blogery/models"
)

type PostMemoryStorage struct {
	db *Database
}

func NewPostMemoryStorage(db *Database) *PostMemoryStorage {
	return &PostMemoryStorage{db: db}
}

func (s *PostMemoryStorage) CreatePost(post *models.Post) (*models.Post, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if s.titleTaken(post.Title, 0) {
		return nil, fmt.Errorf("post %q: %w", post.Title, models.ErrDuplicateTitle)
	}
	if _, ok := s.db.users[post.AuthorID]; !ok {
		return nil, fmt.Errorf("author %d: %w", post.AuthorID, models.ErrNotFound)
	}

	stored := *post
	stored.ID = s.db.nextPostID
	s.db.nextPostID++
	s.db.posts[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (s *PostMemoryStorage) GetPostById(id uint) (*models.Post, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, ok := s.db.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %d: %w", id, models.ErrNotFound)
	}

	copied := *p
	return &copied, nil
}

func (s *PostMemoryStorage) GetAllPosts() ([]*models.Post, error) {
	return s.filter(func(*models.Post) bool { return true }), nil
}

func (s *PostMemoryStorage) GetPostsByAuthor(authorID uint) ([]*models.Post, error) {
	return s.filter(func(p *models.Post) bool { return p.AuthorID == authorID }), nil
}

func (s *PostMemoryStorage) UpdatePost(post *models.Post) (*models.Post, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	existing, ok := s.db.posts[post.ID]
	if !ok {
		return nil, fmt.Errorf("post %d: %w", post.ID, models.ErrNotFound)
	}
	if s.titleTaken(post.Title, post.ID) {
		return nil, fmt.Errorf("post %q: %w", post.Title, models.ErrDuplicateTitle)
	}
	if _, ok := s.db.users[post.AuthorID]; !ok {
		return nil, fmt.Errorf("author %d: %w", post.AuthorID, models.ErrNotFound)
	}

	existing.Title = post.Title
	existing.Subtitle = post.Subtitle
	existing.Body = post.Body
	existing.ImgURL = post.ImgURL
	existing.AuthorID = post.AuthorID

	copied := *existing
	return &copied, nil
}

func (s *PostMemoryStorage) DeletePostById(id uint) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.posts[id]; !ok {
		return fmt.Errorf("post %d: %w", id, models.ErrNotFound)
	}

	for commentID, c := range s.db.comments {
		if c.PostID == id {
			delete(s.db.comments, commentID)
		}
	}
	delete(s.db.posts, id)

	return nil
}

// titleTaken вызывается под мьютексом; exceptID исключает сам редактируемый пост
func (s *PostMemoryStorage) titleTaken(title string, exceptID uint) bool {
	for _, p := range s.db.posts {
		if p.Title == title && p.ID != exceptID {
			return true
		}
	}
	return false
}

func (s *PostMemoryStorage) filter(keep func(*models.Post) bool) []*models.Post {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	posts := make([]*models.Post, 0, len(s.db.posts))
	for _, p := range s.db.posts {
		if keep(p) {
			copied := *p
			posts = append(posts, &copied)
		}
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].ID < posts[j].ID
	})

	return posts
}
