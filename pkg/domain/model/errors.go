package model

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
)

// Sentinel errors shared by gateway, usecase and controller layers
var (
	// ErrValidation is returned when user input is rejected before any network call
	ErrValidation = goerr.New("validation error")
	// ErrUpstream is returned when Notion answers with a non-success response
	ErrUpstream = goerr.New("upstream error")
	// ErrNetwork is returned when Notion could not be reached
	ErrNetwork = goerr.New("network error")
	// ErrNotLoggedIn is returned when no bearer token is stored
	ErrNotLoggedIn = goerr.New("not logged in")
	// ErrFetchInProgress is returned when a page navigation overlaps another one
	ErrFetchInProgress = goerr.New("fetch already in progress")
)

// Keys for goerr values
const (
	MessageKey = "message"
	StatusKey  = "status"
)

// NewValidationError wraps ErrValidation with a message meant for the user
func NewValidationError(msg string, options ...goerr.Option) error {
	options = append(options, goerr.V(MessageKey, msg))
	return goerr.Wrap(ErrValidation, msg, options...)
}

// ErrorMessage flattens err into the single message string shown to a user.
// The outermost message value set in the chain wins; otherwise err.Error().
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		var ge *goerr.Error
		if !errors.As(e, &ge) {
			break
		}
		if msg, ok := ge.Values()[MessageKey].(string); ok && msg != "" {
			return msg
		}
		e = ge
	}

	return err.Error()
}

// IsClientError reports whether err was caused by the caller's input
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidNotionID) || errors.Is(err, ErrNotLoggedIn) || errors.Is(err, ErrFetchInProgress)
}
