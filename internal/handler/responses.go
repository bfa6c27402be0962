package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/BrandishReveal_Go/internal/domain"
	"github.com/osse101/BrandishReveal_Go/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 1024))
	},
}

// respondJSON sends a JSON response with the given status code and payload.
// The payload is encoded before the header is written so an encoding failure
// still produces a 500.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and answers with the status and message mapped
// from its domain sentinel
func respondServiceError(w http.ResponseWriter, r *http.Request, action string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceError, "action", action, "error", err)
	} else {
		log.Warn(LogMsgServiceError, "action", action, "error", err)
	}
	respondError(w, status, msg)
}

// User-facing error messages derived from domain errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgInvalidInputError  = "Invalid request. Please check your inputs."
	ErrMsgUnavailableError   = "Server is temporarily unavailable. Please try again later."

	ErrMsgBattleNotFoundError  = "Battle not found"
	ErrMsgSpinNotFoundError    = "Spin not found"
	ErrMsgBoxNotFoundError     = "Box not found"
	ErrMsgSessionNotFoundError = "Playback not found"
	ErrMsgMissingDataError     = "Outcome has no rounds or players"
	ErrMsgQueueFullError       = "Too many playbacks running. Please try again later."
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages users can act upon
func mapServiceErrorToUserMessage(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrMsgUnknownError
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, ErrMsgSessionNotFoundError
	case errors.Is(err, domain.ErrBattleNotFound):
		return http.StatusNotFound, ErrMsgBattleNotFoundError
	case errors.Is(err, domain.ErrSpinNotFound):
		return http.StatusNotFound, ErrMsgSpinNotFoundError
	case errors.Is(err, domain.ErrBoxNotFound):
		return http.StatusNotFound, ErrMsgBoxNotFoundError
	case errors.Is(err, domain.ErrMissingData):
		return http.StatusUnprocessableEntity, ErrMsgMissingDataError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrQueueFull):
		return http.StatusServiceUnavailable, ErrMsgQueueFullError
	case errors.Is(err, domain.ErrDatabaseError):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
