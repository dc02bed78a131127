package web

import (
	"errors"
	"log"
	"net/http"

	"github.com/VitaminP8/blogery/models"
)

// IsValidationError - ошибки, которые показываются пользователю flash-сообщением у формы
func IsValidationError(err error) bool {
	return errors.Is(err, models.ErrDuplicateEmail) ||
		errors.Is(err, models.ErrNoSuchAccount) ||
		errors.Is(err, models.ErrInvalidCredential) ||
		errors.Is(err, models.ErrDuplicateTitle) ||
		errors.Is(err, models.ErrInvalidComment)
}

// flashMessage - текст для пользователя; внутренние подробности ошибки наружу не выходят
func flashMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrDuplicateEmail):
		return "Account associated with this email already exists, log in to your account"
	case errors.Is(err, models.ErrNoSuchAccount):
		return "No account associated with this email, try again or register"
	case errors.Is(err, models.ErrInvalidCredential):
		return "Incorrect password"
	case errors.Is(err, models.ErrDuplicateTitle):
		return "A post with this title already exists"
	case errors.Is(err, models.ErrInvalidComment):
		return "Comment must not be empty or longer than 2000 characters"
	case errors.Is(err, models.ErrUnauthenticated):
		return "Please log in to comment on posts"
	}
	return "Something went wrong"
}

// statusFor переводит ошибку из таксономии в HTTP статус для не-валидационных случаев
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// fail отвечает страницей ошибки; сбои хранилища и неожиданные ошибки логируются
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	}
	h.renderStatus(w, r, status, http.StatusText(status))
}
