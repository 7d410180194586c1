package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"licensegate/internal/logger"
	"licensegate/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) AdminClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewHTTPAdminClient(srv.URL, "test-admin-secret", 5*time.Second, logger.Nop())
	require.NoError(t, err)

	return client
}

// ─────────────────────────────────────────────
// NewHTTPAdminClient
// ─────────────────────────────────────────────

func TestNewHTTPAdminClient_EmptyAddress(t *testing.T) {
	_, err := NewHTTPAdminClient("", "secret", time.Second, logger.Nop())

	assert.Error(t, err)
}

func TestNewHTTPAdminClient_SchemelessAddressAccepted(t *testing.T) {
	client, err := NewHTTPAdminClient("localhost:5000", "secret", time.Second, logger.Nop())

	require.NoError(t, err)
	assert.NotNil(t, client)
}

// ─────────────────────────────────────────────
// Requests
// ─────────────────────────────────────────────

func TestAddUser_SendsAdminKeyAndBody(t *testing.T) {
	var gotKey string
	var gotBody models.AddLicenseRequest

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/admin/add_user", r.URL.Path)

		gotKey = r.Header.Get(adminKeyHeader)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.StatusResponse{Status: models.StatusSuccess, Message: "user added"})
	})

	err := client.AddUser(context.Background(), models.AddLicenseRequest{Username: "alice", LicenseKey: "KEY-ALICE"})

	require.NoError(t, err)
	assert.Equal(t, "test-admin-secret", gotKey)
	assert.Equal(t, "alice", gotBody.Username)
}

func TestAddUser_Duplicate_MappedToSentinel(t *testing.T) {
	// The server answers duplicates with 400 and a specific message.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.StatusResponse{Status: models.StatusError, Message: "Username already exists"})
	})

	err := client.AddUser(context.Background(), models.AddLicenseRequest{Username: "alice", LicenseKey: "KEY"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Contains(t, err.Error(), "Username already exists")
}

func TestListUsers_DecodesResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/list_users", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.ListLicensesResponse{
			Status: models.StatusSuccess,
			Users: []models.License{
				{ID: 1, Username: "alice", LicenseKey: "KEY-ALICE", Active: true},
			},
		})
	})

	users, err := client.ListUsers(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
}

func TestListUsers_WrongAdminKey_MappedToSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(models.StatusResponse{Status: models.StatusError, Message: "Unauthorized. Invalid or missing admin key."})
	})

	_, err := client.ListUsers(context.Background())

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUserStats_PathParameterEscaped(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(models.LicenseStatsResponse{Status: models.StatusSuccess})
	})

	_, err := client.UserStats(context.Background(), "KEY-ALICE")

	require.NoError(t, err)
	assert.Equal(t, "/admin/user_stats/KEY-ALICE", gotPath)
}

func TestDeleteUser_NotFound_MappedToSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.StatusResponse{Status: models.StatusError, Message: "user not found"})
	})

	err := client.DeleteUser(context.Background(), "KEY-GHOST")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatus_DecodesHealthResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/status", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.HealthResponse{Status: "online", Timestamp: "2026-01-15T12:00:00Z"})
	})

	health, err := client.Status(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "online", health.Status)
}
