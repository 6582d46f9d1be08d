// Package response writes JSON API responses in the standard envelope
// and maps domain errors to HTTP status codes.
package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rezkam/calendar/internal/domain"
	"github.com/rezkam/calendar/internal/recurrence"
)

// Error codes returned in ErrorDetail.Code.
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeValidationError  = "VALIDATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeNotRecurring     = "NOT_RECURRING"
	CodeInternalError    = "INTERNAL_ERROR"
	CodePayloadTooLarge  = "PAYLOAD_TOO_LARGE"
	validationFailedText = "validation failed"
)

// encodeFailureJSON is written when the real body cannot be marshaled.
const encodeFailureJSON = `{"error":{"code":"INTERNAL_ERROR","message":"failed to encode response","details":[]}}`

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failure. Details is always an array, never null.
type ErrorDetail struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []ErrorField `json:"details"`
}

// ErrorField points at one offending request field.
type ErrorField struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// OK writes data with 200.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created writes data with 201.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// JSON marshals data before touching the response so an encoding failure
// still produces a 500 instead of a half-written success.
func JSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
		writeRaw(w, http.StatusInternalServerError, []byte(encodeFailureJSON))
		return
	}
	writeRaw(w, status, body)
}

// Error writes an error envelope without field details.
func Error(w http.ResponseWriter, code, message string, status int) {
	JSON(w, status, ErrorResponse{Error: ErrorDetail{
		Code:    code,
		Message: message,
		Details: []ErrorField{},
	}})
}

// ValidationError writes a 400 with a single field detail.
func ValidationError(w http.ResponseWriter, field, issue string) {
	JSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrorDetail{
		Code:    CodeValidationError,
		Message: validationFailedText,
		Details: []ErrorField{{Field: field, Issue: issue}},
	}})
}

// BadRequest writes a 400 INVALID_REQUEST.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, CodeInvalidRequest, message, http.StatusBadRequest)
}

// NotFound writes a 404.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, CodeNotFound, message, http.StatusNotFound)
}

// InternalError writes a 500 with a generic message.
func InternalError(w http.ResponseWriter) {
	Error(w, CodeInternalError, "internal server error", http.StatusInternalServerError)
}

// fieldErrors maps sentinel validation errors to the request field they describe.
var fieldErrors = []struct {
	err   error
	field string
}{
	{domain.ErrTitleRequired, "title"},
	{domain.ErrTitleTooLong, "title"},
	{domain.ErrInvalidDate, "date"},
	{domain.ErrInvalidTime, "startTime"},
	{domain.ErrInvalidTimeRange, "endTime"},
	{domain.ErrInvalidRepeatType, "repeat.type"},
	{domain.ErrInvalidScope, "scope"},
	{domain.ErrInvalidNotice, "notificationTime"},
	{domain.ErrEmptyBatch, "events"},
	{domain.ErrInvalidID, "id"},
}

// FromDomainError maps an error returned by the application layer to a response.
// Unknown errors are logged and reported as 500 without leaking internals.
func FromDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var ruleErr *recurrence.ValidationError
	if errors.As(err, &ruleErr) {
		ValidationError(w, ruleErr.Field, ruleErr.Message)
		return
	}

	for _, fe := range fieldErrors {
		if errors.Is(err, fe.err) {
			ValidationError(w, fe.field, fe.err.Error())
			return
		}
	}

	switch {
	case errors.Is(err, domain.ErrEventNotFound):
		NotFound(w, "event not found")
	case errors.Is(err, domain.ErrRecurringGroupNotFound):
		NotFound(w, "recurring group not found")
	case errors.Is(err, domain.ErrNotRecurring):
		Error(w, CodeNotRecurring, err.Error(), http.StatusBadRequest)
	default:
		slog.ErrorContext(r.Context(), "unhandled error",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		InternalError(w)
	}
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}
