package common

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrorBody represents a consistent error payload returned by the API.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// JSON writes the provided value to the response writer as JSON.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError renders an error response using the canonical error shape.
func JSONError(w http.ResponseWriter, status int, code, message string, details any) {
	JSON(w, status, map[string]any{
		"error": ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// ErrorRecorder is implemented by response writers that keep the cause of a
// server error so the request logger can report it.
type ErrorRecorder interface {
	RecordError(err error)
}

func recordError(w http.ResponseWriter, err error) {
	if er, ok := w.(ErrorRecorder); ok {
		er.RecordError(err)
	}
}

// WriteError renders err. AppErrors keep their status and code; anything else is an opaque 500.
// The cause of every 5xx is handed to the writer when it is an ErrorRecorder.
func WriteError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		if status >= http.StatusInternalServerError {
			recordError(w, err)
		}
		JSONError(w, status, appErr.Code, appErr.Message, appErr.Details)
		return
	}
	recordError(w, err)
	JSONError(w, http.StatusInternalServerError, CodeInternal, "internal error", nil)
}

// DecodeJSON decodes the request body into dst. Unknown fields are ignored.
func DecodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return Validation("invalid payload", map[string]string{"body": err.Error()})
	}
	return nil
}
