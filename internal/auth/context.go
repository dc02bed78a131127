// internal/auth/context.go
package auth

import (
	"context"
	"log"
	"net/http"
	"strings"
)

// SessionCookieName - cookie, в которой браузер хранит токен сессии
const SessionCookieName = "session"

// Actor - тот, кто выполняет запрос. nil означает анонимного посетителя.
type Actor struct {
	ID    uint
	Name  string
	Email string
}

type contextKey string

const actorKey = contextKey("actor")

// Сохраняет актора в контексте запроса
func WithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// Достает актора из контекста; nil для анонимного запроса
func ActorFromContext(ctx context.Context) *Actor {
	actor, _ := ctx.Value(actorKey).(*Actor)
	return actor
}

// ActorResolver превращает токен сессии в актора.
// Неизвестный или просроченный токен - (nil, nil); ошибка только при недоступном хранилище.
type ActorResolver interface {
	CurrentActor(token string) (*Actor, error)
}

// SessionMiddleware достает токен из cookie или заголовка Authorization и кладет актора в context
func SessionMiddleware(resolver ActorResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r) // анонимный доступ - пропускаем
				return
			}

			actor, err := resolver.CurrentActor(token)
			if err != nil {
				log.Printf("session lookup failed: %v", err)
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
				return
			}
			if actor == nil {
				// невалидный токен - чистим cookie и продолжаем анонимно
				ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// TokenFromRequest: сначала cookie сессии, затем "Authorization: Bearer <token>"
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return extractTokenFromHeader(r.Header.Get("Authorization"))
}

func SetSessionCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func extractTokenFromHeader(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
