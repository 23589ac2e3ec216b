package web

// errors.go maps errors to HTTP responses. Every error is logged with its
// technical detail and the request id; the client gets the user message and
// code from core.MapError.

import (
	"context"
	"errors"
	"net/http"

	"github.com/JonMunkholm/mrv/internal/core"
	"github.com/JonMunkholm/mrv/internal/csv"
	"github.com/JonMunkholm/mrv/internal/logging"
)

var (
	errInvalidBody  = errors.New("invalid request body")
	errInvalidQuery = errors.New("invalid query")
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

func errorResponse(err error) ErrorResponse {
	msg := core.MapError(err)
	return ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	}
}

// respondError logs err and writes its user message with status.
func respondError(w http.ResponseWriter, r *http.Request, err error, status int) {
	resp := errorResponse(err)
	logging.FromContext(r.Context()).Error("request error",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"code", resp.Code,
		"error", err,
	)
	writeJSON(w, r, status, resp)
}

// statusFor picks the HTTP status for a service error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errInvalidBody), errors.Is(err, errInvalidQuery):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrNotFound), errors.Is(err, core.ErrBlobNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrBlobTooLarge), errors.Is(err, csv.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrEmptyFile),
		errors.Is(err, csv.ErrInvalidCSV),
		errors.Is(err, csv.ErrInvalidWorkbook),
		errors.Is(err, csv.ErrDecompress):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrTooManyIngests):
		return http.StatusTooManyRequests
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
