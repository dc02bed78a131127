package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/VitaminP8/blogery/internal/blog"
	"github.com/VitaminP8/blogery/internal/comment"
	"github.com/VitaminP8/blogery/internal/config"
	"github.com/VitaminP8/blogery/internal/identity"
	"github.com/VitaminP8/blogery/internal/post"
	"github.com/VitaminP8/blogery/internal/session"
	"github.com/VitaminP8/blogery/internal/storage/memory"
	"github.com/VitaminP8/blogery/internal/storage/sqldb"
	"github.com/VitaminP8/blogery/internal/user"
	"github.com/VitaminP8/blogery/internal/web"
)

func main() {
	app := &cli.App{
		Name:  "blog",
		Usage: "server-rendered blog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "storage",
				Value: "sql",
				Usage: "тип хранилища: memory или sql (postgres/sqlite по DATABASE_URL)",
			},
		},
		Before: func(*cli.Context) error {
			// загружаем .env до чтения конфигурации
			config.LoadEnv()
			return nil
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "запустить HTTP сервер",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "создать или обновить схему базы данных и выйти",
				Action: migrate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

type stores struct {
	users    user.UserStorage
	posts    post.PostStorage
	comments comment.CommentStorage
	sessions session.SessionStorage
	health   func(ctx context.Context) error
	close    func()
}

func openStores(kind string, cfg *config.Config) (*stores, error) {
	switch kind {
	case "sql":
		if err := sqldb.InitDB(cfg.DatabaseURL, cfg.DBStatementTimeout, cfg.DBDebug); err != nil {
			return nil, err
		}
		db := sqldb.GetDB()
		if err := sqldb.Migrate(db); err != nil {
			sqldb.CloseDB()
			return nil, err
		}

		log.Println("Используется SQL хранилище")
		return &stores{
			users:    sqldb.NewUserSQLStorage(db),
			posts:    sqldb.NewPostSQLStorage(db),
			comments: sqldb.NewCommentSQLStorage(db),
			sessions: sqldb.NewSessionSQLStorage(db),
			health:   func(ctx context.Context) error { return sqldb.Ping(ctx, db) },
			close: func() {
				if err := sqldb.CloseDB(); err != nil {
					log.Println(err)
				}
			},
		}, nil

	case "memory":
		log.Println("Используется in-memory хранилище")
		db := memory.NewDatabase()
		return &stores{
			users:    memory.NewUserMemoryStorage(db),
			posts:    memory.NewPostMemoryStorage(db),
			comments: memory.NewCommentMemoryStorage(db),
			sessions: memory.NewSessionMemoryStorage(db),
			health:   db.Ping,
			close:    func() {},
		}, nil
	}

	return nil, fmt.Errorf("неизвестный тип хранилища: %s", kind)
}

func migrate(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := sqldb.InitDB(cfg.DatabaseURL, cfg.DBStatementTimeout, cfg.DBDebug); err != nil {
		return err
	}
	defer sqldb.CloseDB()

	return sqldb.Migrate(sqldb.GetDB())
}

func serve(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	st, err := openStores(c.String("storage"), cfg)
	if err != nil {
		return err
	}
	defer st.close()

	ident := identity.NewService(st.users, st.sessions, identity.NewBcryptHasher(), []byte(cfg.SecretKey), cfg.SessionTTL)
	content := blog.NewService(st.posts, st.comments, st.users)

	server := &http.Server{
		Addr: cfg.Addr,
		Handler: web.NewRouter(web.Options{
			Identity:           ident,
			Content:            content,
			Health:             st.health,
			RateLimitPerMinute: cfg.RateLimitPerMinute,
			SecureCookies:      cfg.SecureCookies,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Сервер запущен на %s", cfg.Addr)
		// блокирует, пока не вызван Shutdown или не случилась ошибка
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Ожидание SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("ошибка сервера: %w", err)
		}
	case <-ctx.Done():
	}

	log.Println("Завершение...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка при завершении сервера: %w", err)
	}

	log.Println("Сервер остановлен корректно")
	return nil
}
