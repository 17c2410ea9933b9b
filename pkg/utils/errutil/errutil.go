package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
	"github.com/secmon-lab/riskreg/pkg/utils/logging"
	"github.com/secmon-lab/riskreg/pkg/utils/safe"
)

// Handle logs the error with a message. Errors caused by the caller's input
// are logged as warnings; anything else is logged with its stack and sent to
// Sentry when a Sentry client is configured.
func Handle(ctx context.Context, err error, msg string) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)

	if model.IsClientError(err) {
		logger.Warn(msg, "error", err.Error(), "message", model.ErrorMessage(err))
		return
	}

	// Extract goerr values for structured logging
	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	report(ctx, err)
}

// report sends err to Sentry if a client is bound to the current hub
func report(ctx context.Context, err error) {
	hub := sentry.CurrentHub()
	if h := sentry.GetHubFromContext(ctx); h != nil {
		hub = h
	}
	if hub.Client() == nil {
		return
	}

	if id := hub.CaptureException(err); id != nil {
		logging.From(ctx).Info("error reported to sentry", "event_id", *id)
	}
}

// StatusOf maps an error onto the HTTP status returned by the gateway
func StatusOf(err error) int {
	switch {
	case model.IsClientError(err):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrUpstream), errors.Is(err, model.ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse is the JSON body of every gateway error
type ErrorResponse struct {
	Message string `json:"message"`
}

// HandleHTTP logs the error and writes {"message": ...} with the status StatusOf picks.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	status := StatusOf(err)
	Handle(ctx, err, "HTTP error")

	body, mErr := json.Marshal(ErrorResponse{Message: model.ErrorMessage(err)})
	if mErr != nil {
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(ctx, w, body)
}
