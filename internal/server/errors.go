package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	tcerrors "github.com/matzehuels/tagcloud/pkg/errors"
)

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	switch tcerrors.GetCode(err) {
	case tcerrors.ErrCodeInvalidInput,
		tcerrors.ErrCodeInvalidSize,
		tcerrors.ErrCodeInvalidFormat,
		tcerrors.ErrCodeInvalidColor,
		tcerrors.ErrCodeInvalidWord:
		return http.StatusBadRequest
	case tcerrors.ErrCodeEmptyCloud, tcerrors.ErrCodeOutOfBounds:
		return http.StatusUnprocessableEntity
	case tcerrors.ErrCodeNotFound:
		return http.StatusNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeError logs err and writes it as a JSON error body. Server errors hide
// their message from the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	logger := loggerFrom(r.Context(), s.logger)

	code := tcerrors.GetCode(err)
	if code == "" {
		code = tcerrors.ErrCodeInternal
	}
	msg := tcerrors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "err", err)
		msg = http.StatusText(status)
	} else {
		logger.Debug("request rejected", "status", status, "err", err)
	}

	writeJSON(w, status, errorResponse{
		Error:     errorBody{Code: string(code), Message: msg},
		RequestID: w.Header().Get(RequestIDHeader),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
