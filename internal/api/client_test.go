package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taleemtrack/taleemtrack-cli/internal/models"
	appErrors "github.com/taleemtrack/taleemtrack-cli/pkg/errors"
)

func TestListSessionsDecodesCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/setup/academic-sessions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":1,"name":"2023-2024","startDate":"2023-04-01","endDate":"2024-03-31","isCurrent":true},
			{"id":2,"name":"2024-2025","startDate":"2024-04-01","endDate":"2025-03-31","isCurrent":false}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL + "/api")
	sessions, err := client.ListSessions(context.Background())
	require.NoError(t, err)

	require.Len(t, sessions, 2)
	assert.Equal(t, "2023-2024", sessions[0].Name)
	assert.True(t, sessions[0].IsCurrent)
	assert.Equal(t, "2024-04-01", sessions[1].StartDate.String())
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithTokenSource(TokenFunc(func() string { return "my-token" })))
	_, err := client.ListSessions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer my-token", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))
}

func TestEmptyTokenSendsNoAuthorizationHeader(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithTokenSource(TokenFunc(func() string { return "" })))
	_, err := client.ListSessions(context.Background())
	require.NoError(t, err)

	assert.Empty(t, got.Get("Authorization"))
}

func TestCreateSessionSendsBareBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req models.SessionRequest
		require.NoError(t, jsonDecode(r, &req))
		assert.Equal(t, "2024-2025", req.Name)
		assert.Equal(t, "2024-04-01", req.StartDate.String())

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":7,"name":"2024-2025","startDate":"2024-04-01","endDate":"2025-03-31","isCurrent":false}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	created, err := client.CreateSession(context.Background(), models.SessionRequest{
		Name:      "2024-2025",
		StartDate: models.NewDate(2024, 4, 1),
		EndDate:   models.NewDate(2025, 3, 31),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
}

func TestSetCurrentSessionUsesPatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/setup/academic-sessions/3/set-current", r.URL.Path)
		w.Write([]byte(`{"id":3,"name":"2025-2026","startDate":"2025-04-01","endDate":"2026-03-31","isCurrent":true}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	session, err := client.SetCurrentSession(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, session.IsCurrent)
}

func TestDeleteSessionAcceptsNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	assert.NoError(t, client.DeleteSession(context.Background(), 1))
}

func TestErrorBodyIsMappedToTypedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"code":"CONFLICT","message":"academic session with this name already exists"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.CreateSession(context.Background(), models.SessionRequest{Name: "2024-2025"})
	require.Error(t, err)

	assert.True(t, appErrors.IsCode(err, appErrors.ErrConflict.Code))
	assert.Equal(t, "academic session with this name already exists", err.Error())
}

func TestEmptyErrorBodyFallsBackToStatusCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.GetCurrentSession(context.Background())
	require.Error(t, err)

	assert.True(t, appErrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "404")
}

func TestUnreachableServerIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL)
	_, err := client.ListSessions(context.Background())
	require.Error(t, err)

	assert.True(t, appErrors.IsCode(err, appErrors.ErrUnavailable.Code))
	assert.Contains(t, err.Error(), "cannot reach the TaleemTrack server")
}

func TestLoginDecodesAuthResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		w.Write([]byte(`{"token":"jwt-token","username":"admin","role":"SUPER_ADMIN","userId":1}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	res, err := client.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	assert.Equal(t, "jwt-token", res.Token)
	assert.Equal(t, models.RoleSuperAdmin, res.Role)
	assert.Equal(t, int64(1), res.UserID)
}

func jsonDecode(r *http.Request, out interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(out)
}
