package utils

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON_Success(t *testing.T) {
	recorder := httptest.NewRecorder()

	payload := map[string]string{"status": "success"}

	n, err := WriteJSON(recorder, payload, http.StatusOK)

	require.NoError(t, err)
	assert.Greater(t, n, 0)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	assert.Equal(t, payload, decoded)
}

func TestWriteJSON_CustomStatusCode(t *testing.T) {
	recorder := httptest.NewRecorder()

	_, err := WriteJSON(recorder, map[string]string{"error": "not found"}, http.StatusNotFound)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestWriteJSON_NilPayload(t *testing.T) {
	recorder := httptest.NewRecorder()

	_, err := WriteJSON(recorder, nil, http.StatusOK)

	require.NoError(t, err)
	assert.Equal(t, "null", recorder.Body.String())
}

func TestWriteJSON_UnmarshalableValue_Returns500(t *testing.T) {
	recorder := httptest.NewRecorder()

	// NaN does not marshal to JSON.
	n, err := WriteJSON(recorder, math.NaN(), http.StatusOK)

	require.Error(t, err)
	assert.Zero(t, n)
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}
