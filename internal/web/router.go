package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/VitaminP8/blogery/internal/auth"
	"github.com/VitaminP8/blogery/internal/blog"
	"github.com/VitaminP8/blogery/internal/metrics"
)

type Options struct {
	Identity Identity
	Content  *blog.Service
	// Health проверяет доступность хранилища для /healthz
	Health             func(ctx context.Context) error
	RateLimitPerMinute int
	SecureCookies      bool
}

func NewRouter(opts Options) http.Handler {
	h := NewHandler(opts.Identity, opts.Content, opts.SecureCookies)

	limit := opts.RateLimitPerMinute
	if limit <= 0 {
		limit = 20
	}
	// один лимит на вход и регистрацию
	authLimiter := httprate.LimitByIP(limit, time.Minute)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(auth.SessionMiddleware(opts.Identity))

	r.NotFound(h.notFound)

	r.Get("/", h.home)
	r.Get("/about", h.about)
	r.Get("/contact", h.contact)

	r.Get("/register", h.registerForm)
	r.With(authLimiter).Post("/register", h.register)
	r.Get("/login", h.loginForm)
	r.With(authLimiter).Post("/login", h.login)
	r.Get("/logout", h.logout)

	r.Get("/post/{postID}", h.showPost)
	r.Post("/post/{postID}", h.addComment)

	r.Group(func(r chi.Router) {
		r.Use(auth.AdminOnly)

		r.Get("/new-post", h.newPostForm)
		r.Post("/new-post", h.createPost)
		r.Get("/edit-post/{postID}", h.editPostForm)
		r.Post("/edit-post/{postID}", h.editPost)
		r.Get("/delete/{postID}", h.deletePost)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         300,
		}))

		r.Get("/posts", h.apiListPosts)
		r.Get("/posts/{postID}", h.apiGetPost)
	})

	r.Get("/healthz", healthHandler(opts.Health))
	r.Handle("/metrics", promhttp.Handler())

	return r
}
