package web

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VitaminP8/blogery/models"
)

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		validation bool
		status     int
	}{
		{models.ErrDuplicateEmail, true, http.StatusInternalServerError},
		{models.ErrNoSuchAccount, true, http.StatusInternalServerError},
		{models.ErrInvalidCredential, true, http.StatusInternalServerError},
		{models.ErrDuplicateTitle, true, http.StatusInternalServerError},
		{models.ErrInvalidComment, true, http.StatusInternalServerError},
		{models.ErrForbidden, false, http.StatusForbidden},
		{models.ErrNotFound, false, http.StatusNotFound},
		{fmt.Errorf("post 7: %w", models.ErrNotFound), false, http.StatusNotFound},
		{fmt.Errorf("get posts: %w: %w", models.ErrStoreUnavailable, fmt.Errorf("dial tcp")), false, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.validation, IsValidationError(tt.err))
			if !tt.validation {
				assert.Equal(t, tt.status, statusFor(tt.err))
			}
		})
	}
}

func TestFlashMessageHidesDetails(t *testing.T) {
	err := fmt.Errorf("register alice@example.com: %w", models.ErrDuplicateEmail)
	assert.NotContains(t, flashMessage(err), "alice@example.com")
	assert.Equal(t, "Something went wrong", flashMessage(fmt.Errorf("boom")))
}
