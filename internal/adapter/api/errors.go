package api

import (
	"encoding/json"
	"net/http"

	"github.com/portfolio-tracker/internal/domain"
)

// ErrorBody represents the error payload of an API response
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Common error codes
const (
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeConflict      = "CONFLICT"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// respondError sends an error response
func respondError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: ErrorBody{Code: code, Message: message},
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// parseJSONBody parses a JSON request body
func parseJSONBody(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// respondDomainError maps domain errors to HTTP status codes.
// ArithmeticMismatch is a caller input problem, so it maps to 400 alongside
// validation failures.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err), domain.IsArithmeticMismatch(err):
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, err.Error())
	case domain.IsNotFound(err):
		respondError(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case domain.IsConflict(err):
		respondError(w, http.StatusConflict, ErrCodeConflict, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "an internal error occurred")
	}
}
