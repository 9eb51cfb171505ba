// Package response writes the JSON envelopes every endpoint returns.
package response

import (
	"encoding/json"
	"net/http"

	"storefront/apperrors"
)

// M is a JSON object body.
type M map[string]interface{}

// JSON writes payload with status. A success flag is added to M bodies
// that don't carry one.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	if body, ok := payload.(M); ok {
		if _, set := body["success"]; !set {
			body["success"] = status < http.StatusBadRequest
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload) //nolint:errcheck
}

// OK sends a 200 success body.
func OK(w http.ResponseWriter, body M) {
	JSON(w, http.StatusOK, body)
}

// Created sends a 201 success body.
func Created(w http.ResponseWriter, body M) {
	JSON(w, http.StatusCreated, body)
}

// Error sends {success:false, error:message}.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, M{"success": false, "error": message})
}

// FromError renders err with the status of its kind. Backend errors also
// carry the underlying cause as message.
func FromError(w http.ResponseWriter, err error) {
	appErr := apperrors.From(err)
	body := M{"success": false, "error": appErr.Message}
	if appErr.Kind == apperrors.KindBackend && appErr.Err != nil {
		body["message"] = appErr.Err.Error()
	}
	JSON(w, appErr.Code, body)
}

// MethodNotAllowed sends the 405 envelope.
func MethodNotAllowed(w http.ResponseWriter) {
	Error(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// NotFound sends the 404 envelope.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "Not found")
}
