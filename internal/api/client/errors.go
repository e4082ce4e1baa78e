package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for status codes callers branch on.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx response from the bookswap API, carrying the
// server's detail message.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (HTTP %d): %s", e.StatusCode, e.Detail)
}

// Is maps well-known status codes onto the package sentinels so callers
// can use errors.Is without inspecting the status themselves.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	}
	return false
}

// newAPIError builds an APIError from a response body. The API reports
// failures as {"detail": "..."}; anything else falls back to the raw
// body or the standard status text.
func newAPIError(statusCode int, body []byte) *APIError {
	e := &APIError{StatusCode: statusCode}

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		e.Detail = payload.Detail
	} else {
		e.Detail = strings.TrimSpace(string(body))
	}

	if e.Detail == "" {
		e.Detail = http.StatusText(statusCode)
	}

	return e
}
