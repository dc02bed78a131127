package auth

import (
	"net/http"

	"github.com/VitaminP8/blogery/models"
)

// AdministratorID - единственный пользователь с правами администратора
const AdministratorID uint = 1

// IsAdministrator проверяется на каждый запрос и никогда не кешируется в сессии
func IsAdministrator(actor *Actor) bool {
	return actor != nil && actor.ID == AdministratorID
}

// RequireAdmin либо возвращает результат op, либо models.ErrForbidden, не вызывая op
func RequireAdmin[T any](actor *Actor, op func() (T, error)) (T, error) {
	if !IsAdministrator(actor) {
		var zero T
		return zero, models.ErrForbidden
	}
	return op()
}

// AdminOnly отвечает 403 всем, кроме администратора, и не вызывает next
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdministrator(ActorFromContext(r.Context())) {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
