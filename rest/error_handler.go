// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/foodpoint/foodpoint/mason"
)

// ErrorHandler handles errors that occur during request processing.
//
// Custom error handlers can be configured per-operation using [OnError].
type ErrorHandler interface {
	OnError(context.Context, http.ResponseWriter, error)
}

// ErrorHandlerFunc is a function adapter that implements [ErrorHandler].
type ErrorHandlerFunc func(context.Context, http.ResponseWriter, error)

func (f ErrorHandlerFunc) OnError(ctx context.Context, w http.ResponseWriter, err error) {
	f(ctx, w, err)
}

// MasonErrorHandler is an [ErrorHandler] which renders errors as Mason
// error documents. Known error types map to their status codes, any
// other error becomes a 500 without leaking its message to the client.
type MasonErrorHandler struct {
	log          *slog.Logger
	errorProfile string
}

// NewMasonErrorHandler initializes a [MasonErrorHandler]. The error
// profile href is attached to every error document as its "profile"
// control.
func NewMasonErrorHandler(h slog.Handler, errorProfile string) *MasonErrorHandler {
	return &MasonErrorHandler{
		log:          slog.New(h),
		errorProfile: errorProfile,
	}
}

// OnError implements the [ErrorHandler] interface.
func (h *MasonErrorHandler) OnError(ctx context.Context, w http.ResponseWriter, err error) {
	status, title, details := classify(err)
	if status == http.StatusInternalServerError {
		h.log.ErrorContext(ctx, "request failed", slog.Any("error", err))
	} else {
		h.log.DebugContext(ctx, "sending error response", slog.Any("error", err))
	}

	doc := mason.Error(ResourceURL(ctx), title, details...)
	doc.AddControl("profile", h.errorProfile)

	werr := doc.WriteStatus(ctx, w, status)
	if werr != nil {
		h.log.ErrorContext(ctx, "failed to write error response", slog.Any("error", werr))
	}
}

func classify(err error) (status int, title string, details []string) {
	var notFound NotFoundError
	if errors.As(err, &notFound) {
		title := notFound.Title
		if title == "" {
			title = "Not found"
		}
		return http.StatusNotFound, title, nil
	}

	var exists AlreadyExistsError
	if errors.As(err, &exists) {
		return http.StatusConflict, "Already exists", []string{exists.Detail}
	}

	var conflict ConflictError
	if errors.As(err, &conflict) {
		return http.StatusConflict, conflict.Title, []string{conflict.Detail}
	}

	var invalid InvalidDocumentError
	if errors.As(err, &invalid) {
		return http.StatusBadRequest, "Invalid JSON document", []string{invalid.Cause.Error()}
	}

	var unsupported UnsupportedMediaTypeError
	if errors.As(err, &unsupported) {
		return http.StatusUnsupportedMediaType, "Unsupported media type", []string{unsupported.Detail}
	}

	return http.StatusInternalServerError, "Internal server error", nil
}
