package apiclient

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPErrorMessage(t *testing.T) {
	t.Run("message wins over error", func(t *testing.T) {
		e := &HTTPError{Status: 400, Body: []byte(`{"message":"room exists","error":"dup"}`)}
		assert.Equal(t, "room exists", e.Message())
	})

	t.Run("error field", func(t *testing.T) {
		e := &HTTPError{Status: 400, Body: []byte(`{"error":"dup"}`)}
		assert.Equal(t, "dup", e.Message())
	})

	t.Run("msg field", func(t *testing.T) {
		e := &HTTPError{Status: 400, Body: []byte(`{"msg":"nope"}`)}
		assert.Equal(t, "nope", e.Message())
	})

	t.Run("unstructured body", func(t *testing.T) {
		e := &HTTPError{Status: 502, Body: []byte("<html>bad gateway</html>")}
		assert.Equal(t, "", e.Message())
	})
}

func TestErrorMessage(t *testing.T) {
	t.Run("structured http error", func(t *testing.T) {
		err := error(&HTTPError{Status: 400, Body: []byte(`{"message":"taken"}`)})
		assert.Equal(t, "taken", ErrorMessage(err, "failed to save room"))
	})

	t.Run("http error without body falls back", func(t *testing.T) {
		err := error(&HTTPError{Status: 500, Body: nil})
		assert.Equal(t, "failed to save room", ErrorMessage(err, "failed to save room"))
	})

	t.Run("network error falls back", func(t *testing.T) {
		err := error(&NetworkError{URL: "http://x", Err: errors.New("refused")})
		assert.Equal(t, "failed to load rooms", ErrorMessage(err, "failed to load rooms"))
	})
}
