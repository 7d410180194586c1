package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTraceID_GeneratesIDWhenAbsent(t *testing.T) {
	router := newTestHandler(testServices{}).Init()

	request := httptest.NewRequest(http.MethodGet, "/status", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	traceID := recorder.Header().Get(traceIDHeader)
	require.NotEmpty(t, traceID)

	_, err := uuid.Parse(traceID)
	assert.NoError(t, err, "generated trace ID must be a UUID")
}

func TestWithTraceID_EchoesClientProvidedID(t *testing.T) {
	router := newTestHandler(testServices{}).Init()

	request := httptest.NewRequest(http.MethodGet, "/status", nil)
	request.Header.Set(traceIDHeader, "client-trace-42")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, "client-trace-42", recorder.Header().Get(traceIDHeader))
}
