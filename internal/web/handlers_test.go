package web

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldChecks(t *testing.T) {
	t.Run("Email", func(t *testing.T) {
		assert.True(t, validEmail("alice@example.com"))
		for _, bad := range []string{"alice", "alice@", "Alice <alice@example.com>"} {
			assert.False(t, validEmail(bad), bad)
		}
	})

	t.Run("Image URL", func(t *testing.T) {
		assert.True(t, validImageURL("https://example.com/a.png"))
		assert.True(t, validImageURL("http://example.com/a.png"))
		for _, bad := range []string{"example.com/a.png", "/a.png", "javascript:alert(1)", "ftp://example.com/a.png", "https://"} {
			assert.False(t, validImageURL(bad), bad)
		}
	})

	t.Run("Length", func(t *testing.T) {
		assert.False(t, tooLong("ok", strings.Repeat("я", MaxFieldLength)))
		assert.True(t, tooLong("ok", strings.Repeat("я", MaxFieldLength+1)))
	})
}
