package blog

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/VitaminP8/blogery/internal/auth"
	"github.com/VitaminP8/blogery/internal/comment"
	"github.com/VitaminP8/blogery/internal/metrics"
	"github.com/VitaminP8/blogery/internal/post"
	"github.com/VitaminP8/blogery/internal/user"
	"github.com/VitaminP8/blogery/models"
)

const MaxCommentLength = 2000

// PostFields - редактируемые поля поста. AuthorID == 0 означает "автор не меняется"
// (при создании - автором становится администратор).
type PostFields struct {
	Title    string
	Subtitle string
	Body     string
	ImgURL   string
	AuthorID uint
}

// CommentView - комментарий вместе с именем автора для отображения
type CommentView struct {
	*models.Comment
	Author *models.User
}

type PostDetails struct {
	Post     *models.Post
	Author   *models.User
	Comments []CommentView
}

type Service struct {
	posts    post.PostStorage
	comments comment.CommentStorage
	users    user.UserStorage
	now      func() time.Time
}

type Option func(*Service)

// WithClock подменяет источник текущей даты (для тестов)
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(posts post.PostStorage, comments comment.CommentStorage, users user.UserStorage, opts ...Option) *Service {
	s := &Service{
		posts:    posts,
		comments: comments,
		users:    users,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListPosts возвращает посты по возрастанию ID. Пустой блог - пустой список без ошибки,
// недоступное хранилище - ошибка models.ErrStoreUnavailable.
func (s *Service) ListPosts() ([]*models.Post, error) {
	posts, err := s.posts.GetAllPosts()
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return posts, nil
}

func (s *Service) GetPost(id uint) (*models.Post, error) {
	return s.posts.GetPostById(id)
}

// PostDetails собирает пост, его автора и комментарии явными запросами
func (s *Service) PostDetails(id uint) (*PostDetails, error) {
	p, err := s.posts.GetPostById(id)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.GetCommentsByPost(id)
	if err != nil {
		return nil, fmt.Errorf("comments for post %d: %w", id, err)
	}

	authors := make(map[uint]*models.User)
	lookup := func(userID uint) (*models.User, error) {
		if u, ok := authors[userID]; ok {
			return u, nil
		}
		u, err := s.users.GetUserById(userID)
		if err != nil {
			return nil, err
		}
		authors[userID] = u
		return u, nil
	}

	author, err := lookup(p.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("author of post %d: %w", id, err)
	}

	details := &PostDetails{Post: p, Author: author, Comments: make([]CommentView, 0, len(comments))}
	for _, c := range comments {
		u, err := lookup(c.UserID)
		if err != nil {
			return nil, fmt.Errorf("author of comment %d: %w", c.ID, err)
		}
		details.Comments = append(details.Comments, CommentView{Comment: c, Author: u})
	}

	return details, nil
}

func (s *Service) CommentsForPost(postID uint) ([]*models.Comment, error) {
	if _, err := s.posts.GetPostById(postID); err != nil {
		return nil, err
	}
	return s.comments.GetCommentsByPost(postID)
}

func (s *Service) PostsByAuthor(authorID uint) ([]*models.Post, error) {
	if _, err := s.users.GetUserById(authorID); err != nil {
		return nil, err
	}
	return s.posts.GetPostsByAuthor(authorID)
}

func (s *Service) CreatePost(actor *auth.Actor, fields PostFields) (created *models.Post, err error) {
	defer func() { metrics.Observe(metrics.ContentOperations, "create_post", err) }()

	return auth.RequireAdmin(actor, func() (*models.Post, error) {
		authorID := fields.AuthorID
		if authorID == 0 {
			authorID = actor.ID
		}

		return s.posts.CreatePost(&models.Post{
			Title:    fields.Title,
			Subtitle: fields.Subtitle,
			Body:     fields.Body,
			ImgURL:   fields.ImgURL,
			AuthorID: authorID,
			Date:     s.now().Format(models.PostDateLayout),
		})
	})
}

func (s *Service) EditPost(actor *auth.Actor, id uint, fields PostFields) (updated *models.Post, err error) {
	defer func() { metrics.Observe(metrics.ContentOperations, "edit_post", err) }()

	return auth.RequireAdmin(actor, func() (*models.Post, error) {
		existing, err := s.posts.GetPostById(id)
		if err != nil {
			return nil, err
		}

		authorID := fields.AuthorID
		if authorID == 0 {
			authorID = existing.AuthorID
		}

		return s.posts.UpdatePost(&models.Post{
			ID:       id,
			Title:    fields.Title,
			Subtitle: fields.Subtitle,
			Body:     fields.Body,
			ImgURL:   fields.ImgURL,
			AuthorID: authorID,
			Date:     existing.Date,
		})
	})
}

// DeletePost удаляет пост вместе с его комментариями
func (s *Service) DeletePost(actor *auth.Actor, id uint) (err error) {
	defer func() { metrics.Observe(metrics.ContentOperations, "delete_post", err) }()

	_, err = auth.RequireAdmin(actor, func() (struct{}, error) {
		return struct{}{}, s.posts.DeletePostById(id)
	})
	return err
}

func (s *Service) AddComment(actor *auth.Actor, postID uint, text string) (created *models.Comment, err error) {
	defer func() { metrics.Observe(metrics.ContentOperations, "add_comment", err) }()

	if actor == nil {
		return nil, models.ErrUnauthenticated
	}

	text = strings.TrimSpace(text)
	if text == "" || utf8.RuneCountInString(text) > MaxCommentLength {
		return nil, models.ErrInvalidComment
	}

	c, err := s.comments.CreateComment(postID, actor.ID, text)
	if err != nil {
		return nil, err
	}
	return c, nil
}
