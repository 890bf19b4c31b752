package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/example/staybook/internal/booking"
	"github.com/example/staybook/internal/listing"
	"github.com/example/staybook/internal/pricing"
	"github.com/example/staybook/internal/search"
	"github.com/example/staybook/internal/validator"
)

type ErrorResponse struct {
	Error   string                 `json:"error"`
	Meta    map[string]string      `json:"meta,omitempty"`
	Details []validator.FieldError `json:"details,omitempty"`
}

func WriteError(w http.ResponseWriter, status int, msg string, meta map[string]string) {
	WriteJSON(w, status, ErrorResponse{Error: msg, Meta: meta})
}

func BadRequest(w http.ResponseWriter, msg string, meta map[string]string) {
	WriteError(w, http.StatusBadRequest, msg, meta)
}

func NotFound(w http.ResponseWriter, msg string, meta map[string]string) {
	WriteError(w, http.StatusNotFound, msg, meta)
}

func InternalError(w http.ResponseWriter, msg string, meta map[string]string) {
	WriteError(w, http.StatusInternalServerError, msg, meta)
}

func TooManyRequests(w http.ResponseWriter, msg string, meta map[string]string) {
	WriteError(w, http.StatusTooManyRequests, msg, meta)
}

// ValidationFailed reports per-field problems with the request.
func ValidationFailed(w http.ResponseWriter, errs validator.ValidationErrors, meta map[string]string) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request", Meta: meta, Details: errs})
}

// StatusFor maps domain errors to HTTP status codes.
func StatusFor(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs),
		errors.Is(err, pricing.ErrInvalidDateRange),
		errors.Is(err, pricing.ErrInvalidRate),
		errors.Is(err, booking.ErrInvalidGuests),
		errors.Is(err, booking.ErrTooManyGuests):
		return http.StatusBadRequest
	case errors.Is(err, listing.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrUnavailable):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError writes err with the status StatusFor picks. Messages of
// unexpected errors are not echoed to the client.
func writeServiceError(w http.ResponseWriter, err error, meta map[string]string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		ValidationFailed(w, verrs, meta)
		return
	}

	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError && !errors.Is(err, search.ErrNoSources) {
		msg = "internal error"
	}
	WriteError(w, status, msg, meta)
}
