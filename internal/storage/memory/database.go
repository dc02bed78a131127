package memory

import (
	"context"
	"sync"
	"time"

	"github.com/VitaminP8/blogery/models"
)

// Database - общее in-memory хранилище для всех сущностей.
// Один мьютекс на все таблицы: так проверка "пост существует" и вставка комментария
// (или каскадное удаление) выполняются атомарно.
type Database struct {
	mu       sync.Mutex
	users    map[uint]*models.User
	posts    map[uint]*models.Post
	comments map[uint]*models.Comment
	sessions map[string]*models.Session

	nextUserID    uint
	nextPostID    uint
	nextCommentID uint

	now func() time.Time
}

func NewDatabase() *Database {
	return &Database{
		users:         make(map[uint]*models.User),
		posts:         make(map[uint]*models.Post),
		comments:      make(map[uint]*models.Comment),
		sessions:      make(map[string]*models.Session),
		nextUserID:    1,
		nextPostID:    1,
		nextCommentID: 1,
		now:           time.Now,
	}
}

// Ping всегда успешен: хранилище живет в памяти процесса
func (d *Database) Ping(ctx context.Context) error {
	return ctx.Err()
}
