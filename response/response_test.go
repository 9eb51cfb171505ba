package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestOKAddsSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, M{"products": []int{}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, true, decode(t, rec)["success"])
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantError   string
		wantMessage interface{}
	}{
		{"validation", apperrors.Validation("Order ID is required"), http.StatusBadRequest, "Order ID is required", nil},
		{"not found", apperrors.NotFound("Order not found"), http.StatusNotFound, "Order not found", nil},
		{"backend", apperrors.Backend("Database error", errors.New("connection refused")), http.StatusInternalServerError, "Database error", "connection refused"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "Internal server error", "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			FromError(rec, tt.err)

			body := decode(t, rec)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantError, body["error"])
			assert.Equal(t, tt.wantMessage, body["message"])
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	MethodNotAllowed(rec)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method not allowed", decode(t, rec)["error"])
}
