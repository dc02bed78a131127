package sqldb

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"

	"github.com/VitaminP8/blogery/models"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

var DB *gorm.DB

// GetDB возвращает глобальную переменную DB (для тестирования)
func GetDB() *gorm.DB {
	return DB
}

// ParseDSN определяет диалект по строке подключения и добавляет таймаут запросов.
// postgres://..., postgresql://... и "host=..." - PostgreSQL; sqlite://<путь> или просто путь - SQLite.
func ParseDSN(raw string, timeout time.Duration) (dialect, source string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", fmt.Errorf("empty database url")
	}

	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		u, err := url.Parse(raw)
		if err != nil {
			return "", "", fmt.Errorf("invalid database url: %w", err)
		}
		q := u.Query()
		if timeout > 0 && q.Get("statement_timeout") == "" {
			q.Set("statement_timeout", fmt.Sprint(timeout.Milliseconds()))
		}
		u.RawQuery = q.Encode()
		return DialectPostgres, u.String(), nil

	case strings.HasPrefix(raw, "host="):
		if timeout > 0 && !strings.Contains(raw, "statement_timeout") {
			raw = fmt.Sprintf("%s statement_timeout=%d", raw, timeout.Milliseconds())
		}
		return DialectPostgres, raw, nil
	}

	path := raw
	for _, prefix := range []string{"sqlite:///", "sqlite://", "sqlite3://", "sqlite:"} {
		if strings.HasPrefix(path, prefix) {
			path = strings.TrimPrefix(path, prefix)
			break
		}
	}
	if path == "" {
		return "", "", fmt.Errorf("invalid sqlite url %q", raw)
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	path = fmt.Sprintf("%s%s_foreign_keys=on", path, sep)
	if timeout > 0 {
		path = fmt.Sprintf("%s&_busy_timeout=%d", path, timeout.Milliseconds())
	}

	return DialectSQLite, path, nil
}

// InitDB подключается к базе данных и устанавливает глобальную переменную DB
func InitDB(databaseURL string, timeout time.Duration, debug bool) error {
	dialect, source, err := ParseDSN(databaseURL, timeout)
	if err != nil {
		return err
	}

	db, err := gorm.Open(dialect, source)
	if err != nil {
		return fmt.Errorf("failed to connect to the database: %w: %w", models.ErrStoreUnavailable, err)
	}
	db.LogMode(debug)

	if dialect == DialectSQLite {
		// SQLite не умеет параллельную запись, одно соединение исключает "database is locked"
		db.DB().SetMaxOpenConns(1)
	} else {
		db.DB().SetMaxOpenConns(25)
		db.DB().SetMaxIdleConns(25)
		db.DB().SetConnMaxLifetime(time.Hour)
	}

	DB = db
	log.Printf("Successfully connected to the %s database.", dialect)
	return nil
}

// Migrate создает таблицы users, blog_posts, comments, sessions и внешние ключи
func Migrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database not connected")
	}

	err := db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}, &models.Session{}).Error
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// SQLite не поддерживает ALTER TABLE ... ADD CONSTRAINT; целостность там держат транзакции хранилищ
	if db.Dialect().GetName() == DialectPostgres {
		foreignKeys := []struct {
			model      interface{}
			field      string
			dest       string
			onDelete   string
			constraint string
		}{
			{&models.Post{}, "author_id", "users(id)", "RESTRICT", "blog_posts_author_id_users_id_foreign"},
			{&models.Comment{}, "user_id", "users(id)", "RESTRICT", "comments_user_id_users_id_foreign"},
			{&models.Comment{}, "post_id", "blog_posts(id)", "CASCADE", "comments_post_id_blog_posts_id_foreign"},
			{&models.Session{}, "user_id", "users(id)", "CASCADE", "sessions_user_id_users_id_foreign"},
		}

		for _, fk := range foreignKeys {
			var count int
			err := db.Raw("SELECT count(*) FROM information_schema.table_constraints WHERE constraint_name = ?", fk.constraint).Row().Scan(&count)
			if err != nil {
				return fmt.Errorf("failed to inspect constraints: %w", err)
			}
			if count > 0 {
				continue
			}

			err = db.Model(fk.model).AddForeignKey(fk.field, fk.dest, fk.onDelete, "CASCADE").Error
			if err != nil {
				return fmt.Errorf("failed to add foreign key %s: %w", fk.constraint, err)
			}
		}
	}

	log.Println("Migrations complete.")
	return nil
}

// Ping проверяет доступность базы
func Ping(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database not connected: %w", models.ErrStoreUnavailable)
	}
	if err := db.DB().PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w: %w", models.ErrStoreUnavailable, err)
	}
	return nil
}

// CloseDB закрывает соединение с базой данных
func CloseDB() error {
	if DB == nil {
		return nil
	}

	err := DB.Close()
	if err != nil {
		return fmt.Errorf("failed to close the database connection: %v", err)
	}

	log.Println("Database connection closed.")
	return nil
}

// InitDBWithConnection для тестирования (позволяет инъекцию соединения БД)
func InitDBWithConnection(db *gorm.DB) {
	DB = db
}
