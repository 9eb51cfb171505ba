package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"storefront/apperrors"
)

// requestTimeout bounds every store call made while serving a request.
const requestTimeout = 5 * time.Second

func withTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), requestTimeout)
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	return nil
}

func parseID(raw, name string) (int, error) {
	if raw == "" {
		return 0, apperrors.Validationf("%s is required", name)
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, apperrors.Validationf("Invalid %s", name)
	}
	return id, nil
}
