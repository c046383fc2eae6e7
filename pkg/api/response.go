package api

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "voicenotes-backend/pkg/errors"
)

// ErrorResponse is the failure envelope shared by every route:
// {"success": false, "error": "..."}.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Error writes a {success:false, error} body with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Success: false, Error: message})
}

// ErrorFrom maps a typed application error onto the wire: its HTTP
// status and message for AppErrors, a generic 500 otherwise. Routes
// never leak internal error text for unclassified failures.
func ErrorFrom(w http.ResponseWriter, err error, generic string) {
	status := apperrors.HTTPStatus(err)
	message := generic
	if apperrors.TypeOf(err) != apperrors.ErrorTypeInternal {
		message = userMessage(err, generic)
	}
	Error(w, status, message)
}

func userMessage(err error, generic string) string {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeNotConfigured, apperrors.ErrorTypeUnavailable,
		apperrors.ErrorTypeValidation, apperrors.ErrorTypeNotFound,
		apperrors.ErrorTypeUnauthorized, apperrors.ErrorTypeRateLimit,
		apperrors.ErrorTypeTimeout:
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return appErr.Message
		}
	}
	return generic
}

// ParseJSONBody parses a JSON request body with a size limit and
// rejects unknown fields.
func ParseJSONBody(r *http.Request, v interface{}, maxBytes int64) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	return decoder.Decode(v)
}
