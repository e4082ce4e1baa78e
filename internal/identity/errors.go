package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors distinguish provider failures that the API maps to
// specific user-facing responses.
var (
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
	ErrAlreadyRegistered  = errors.New("email already registered")
	ErrUserMissing        = errors.New("identity provider returned no user")
	ErrSessionMissing     = errors.New("identity provider returned no session")
)

// ProviderError is an error response from the identity provider.
type ProviderError struct {
	StatusCode int
	Message    string
	sentinel   error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("identity provider error (status %d): %s", e.StatusCode, e.Message)
}

// Unwrap exposes the matched sentinel, if any, for errors.Is checks.
func (e *ProviderError) Unwrap() error { return e.sentinel }

// classify builds a ProviderError from a non-2xx response. GoTrue has
// shipped two error shapes ({code, error_code, msg} and {error,
// error_description}), so the message is sniffed from whichever fields
// are present and matched against known phrasings.
func classify(statusCode int, body []byte) error {
	msg := providerMessage(body)
	if msg == "" {
		msg = http.StatusText(statusCode)
	}

	e := &ProviderError{StatusCode: statusCode, Message: msg}

	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "already registered"):
		e.sentinel = ErrAlreadyRegistered
	case strings.Contains(lower, "not confirmed"):
		e.sentinel = ErrEmailNotConfirmed
	case strings.Contains(lower, "invalid"), strings.Contains(lower, "credentials"):
		e.sentinel = ErrInvalidCredentials
	}
	return e
}

func providerMessage(body []byte) string {
	var p struct {
		Msg              string `json:"msg"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		Message          string `json:"message"`
	}
	if err := json.Unmarshal(body, &p); err == nil {
		switch {
		case p.Msg != "":
			return p.Msg
		case p.ErrorDescription != "":
			return p.ErrorDescription
		case p.Message != "":
			return p.Message
		case p.Error != "":
			return p.Error
		}
	}
	return strings.TrimSpace(string(body))
}

// Detail extracts the provider's own message from err for inclusion in
// user-facing responses, falling back to the full error text.
func Detail(err error) string {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Message
	}
	return err.Error()
}
