package analysis

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// User-facing messages shown in the single top-level error line.
const (
	MessageUnreachable = "Unable to connect to the server. The backend might be waking up (cold start), please try again in a moment."
	MessageFailed      = "Failed to fetch analysis."
	MessageUnexpected  = "An unexpected error occurred."
)

var (
	// ErrUnreachable means the request never reached the backend.
	ErrUnreachable = errors.New("analysis backend unreachable")

	// ErrRequestInFlight is returned by Begin while a request is loading.
	ErrRequestInFlight = errors.New("an analysis request is already in flight")

	// ErrEmptyURL is returned when either video URL is blank.
	ErrEmptyURL = errors.New("both video URLs are required")
)

// StatusError is a non-2xx response. The body is never consulted.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("analysis request failed with status %d", e.Code)
}

// transportError wraps a client-side failure so it matches ErrUnreachable.
type transportError struct {
	err error
}

func (e *transportError) Error() string { return fmt.Sprintf("%v: %v", ErrUnreachable, e.err) }
func (e *transportError) Unwrap() []error {
	return []error{ErrUnreachable, e.err}
}

// classifyTransport maps an error from http.Client.Do. Cancellation is kept
// as-is so callers see the raw text.
func classifyTransport(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return &transportError{err: err}
	}
	return err
}

// UserMessage maps a request failure to the text shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrUnreachable) {
		return MessageUnreachable
	}
	var se *StatusError
	if errors.As(err, &se) {
		return MessageFailed
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return MessageUnexpected
}

// FieldError is one failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Rule    string `json:"rule,omitempty"`
}

func (fe FieldError) Error() string {
	return fmt.Sprintf("%s %s", fe.Field, fe.Message)
}

// ValidationErrors collects field errors for a request.
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	switch len(ve) {
	case 0:
		return "validation failed"
	case 1:
		return fmt.Sprintf("validation failed: %s", ve[0].Error())
	default:
		parts := make([]string, 0, len(ve))
		for _, fe := range ve {
			parts = append(parts, fe.Error())
		}
		return fmt.Sprintf("validation failed: %s", strings.Join(parts, "; "))
	}
}

// Is lets errors.Is(err, ErrEmptyURL) match a failed required rule.
func (ve ValidationErrors) Is(target error) bool {
	if target != ErrEmptyURL {
		return false
	}
	for _, fe := range ve {
		if fe.Rule == "required" {
			return true
		}
	}
	return false
}

// toValidationErrors converts validator output into ValidationErrors.
func toValidationErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: fieldMessage(fe),
			Rule:    fe.Tag(),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed rule %q", fe.Tag())
	}
}
