package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/neo84716/ro-data/internal/domain"
	"github.com/neo84716/ro-data/internal/logger"
)

// Standard response types for consistent API responses

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

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped error
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName, "error", err)
	} else {
		log.Warn(opName, "error", err)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	// Generic messages
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	// Draw messages
	ErrMsgEmptySetError        = "The table has no outcomes"
	ErrMsgZeroWeightError      = "The table has no drawable outcomes"
	ErrMsgNegativeWeightError  = "Rates must not be negative"
	ErrMsgDuplicateOutcomeErr  = "Outcome ids must be unique"
	ErrMsgAllWildcardError     = "Pick at least one target"
	ErrMsgTargetMismatchError  = "Targets do not match the slots"
	ErrMsgUnknownTargetError   = "Target is not part of the table"
	ErrMsgMissingTargetError   = "A target is required"
	ErrMsgSeekInProgressError  = "A seek is already running for this session"
	ErrMsgUnknownCategoryError = "Unknown character category"

	// Lookup messages
	ErrMsgPoolNotFoundError    = "Pool not found"
	ErrMsgSessionNotFoundError = "Session not found or expired"
	ErrMsgProfileNotFoundError = "Enchant profile not found"
	ErrMsgSlotNotFoundError    = "Slot not found"
	ErrMsgRecordNotFoundError  = "Record not found"
	ErrMsgInvalidInputError    = "Invalid request. Please check your inputs."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrEmptySet):
		return http.StatusBadRequest, ErrMsgEmptySetError
	case errors.Is(err, domain.ErrZeroWeight):
		return http.StatusBadRequest, ErrMsgZeroWeightError
	case errors.Is(err, domain.ErrNegativeWeight):
		return http.StatusBadRequest, ErrMsgNegativeWeightError
	case errors.Is(err, domain.ErrDuplicateOutcome):
		return http.StatusBadRequest, ErrMsgDuplicateOutcomeErr
	case errors.Is(err, domain.ErrAllWildcard):
		return http.StatusBadRequest, ErrMsgAllWildcardError
	case errors.Is(err, domain.ErrTargetMismatch):
		return http.StatusBadRequest, ErrMsgTargetMismatchError
	case errors.Is(err, domain.ErrUnknownTarget):
		return http.StatusBadRequest, ErrMsgUnknownTargetError
	case errors.Is(err, domain.ErrMissingTarget):
		return http.StatusBadRequest, ErrMsgMissingTargetError
	case errors.Is(err, domain.ErrUnknownCategory):
		return http.StatusBadRequest, ErrMsgUnknownCategoryError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrSeekInProgress):
		return http.StatusConflict, ErrMsgSeekInProgressError
	case errors.Is(err, domain.ErrPoolNotFound):
		return http.StatusNotFound, ErrMsgPoolNotFoundError
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, ErrMsgSessionNotFoundError
	case errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound, ErrMsgProfileNotFoundError
	case errors.Is(err, domain.ErrSlotNotFound):
		return http.StatusNotFound, ErrMsgSlotNotFoundError
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound, ErrMsgRecordNotFoundError
	case errors.Is(err, domain.ErrDatabaseError):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
