package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/eliteresort/resortadmin/internal/convert"
)

// NetworkError means the request never produced a response: DNS failure,
// refused connection, timeout. It is never retried.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError carries a non-2xx status and the raw response body.
type HTTPError struct {
	Status int
	Body   []byte
}

func (e *HTTPError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("backend returned HTTP %d: %s", e.Status, msg)
	}
	return fmt.Sprintf("backend returned HTTP %d", e.Status)
}

// Message extracts a human-readable message from a structured error body,
// trying message, then error, then msg. Returns "" for unstructured bodies.
func (e *HTTPError) Message() string {
	var body map[string]interface{}
	if err := json.Unmarshal(e.Body, &body); err != nil {
		return ""
	}
	for _, key := range []string{"message", "error", "msg"} {
		if v, ok := body[key]; ok {
			if s := convert.ToString(v, ""); s != "" {
				return s
			}
		}
	}
	return ""
}

// ErrorMessage converts any client error into a single message for display,
// preferring the backend's structured message and falling back to the
// screen-specific text otherwise.
func ErrorMessage(err error, fallback string) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		if msg := httpErr.Message(); msg != "" {
			return msg
		}
	}
	return fallback
}
