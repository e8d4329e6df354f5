package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestResponseCreatedCarriesData(t *testing.T) {
	w := httptest.NewRecorder()
	ResponseCreated(w, "Dancer checked in", map[string]string{"stageName": "Crystal"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	body := decodeEnvelope(t, w)
	assert.Equal(t, true, body["status"])
	assert.Equal(t, "Crystal", body["data"].(map[string]any)["stageName"])
	assert.NotContains(t, body, "errors")
}

func TestResponseBadRequestCarriesFields(t *testing.T) {
	w := httptest.NewRecorder()
	ResponseBadRequest(w, "Validation failed", map[string]string{"durationHours": "Must be greater than 0"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, false, body["status"])
	assert.Equal(t, "Must be greater than 0", body["errors"].(map[string]any)["durationHours"])
	assert.NotContains(t, body, "data")
}

func TestResponseConflictOmitsPayload(t *testing.T) {
	w := httptest.NewRecorder()
	ResponseConflict(w, "VIP room is not available")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"status":false,"message":"VIP room is not available"}`, w.Body.String())
}
