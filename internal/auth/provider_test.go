package auth

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"productmanager/internal/apiclient"
	"productmanager/internal/models"
	"productmanager/internal/session"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			http.NotFound(w, r)
			return
		}
		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds["password"] != "correct" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"token": "issued-token",
			"email": creds["email"],
			"role":  models.RoleAdmin,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestProvider(t *testing.T, baseURL string) (*Provider, *session.Store) {
	t.Helper()
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	api := apiclient.New(baseURL, store)
	return NewProvider(store, api, testLogger()), store
}

func TestRestoreWithoutPersistedSession(t *testing.T) {
	provider, _ := newTestProvider(t, "http://unused")

	require.True(t, provider.Loading())
	provider.Restore()
	require.False(t, provider.Loading())
	require.Nil(t, provider.Current())
}

func TestRestoreLoadsPersistedSession(t *testing.T) {
	srv := fakeBackend(t)
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	sess := &models.Session{Email: "admin@example.com", Role: models.RoleAdmin, Token: "old-token"}
	require.NoError(t, store.Save(sess))

	provider := NewProvider(store, apiclient.New(srv.URL, store), testLogger())
	provider.Restore()

	require.Equal(t, sess, provider.Current())
	require.False(t, provider.Loading())
}

func TestLoginPersistsSessionAndNotifies(t *testing.T) {
	srv := fakeBackend(t)
	provider, store := newTestProvider(t, srv.URL)
	provider.Restore()

	var seen []*models.Session
	provider.Subscribe(func(s *models.Session) { seen = append(seen, s) })

	require.NoError(t, provider.Login(context.Background(), "admin@example.com", "correct"))

	sess := provider.Current()
	require.NotNil(t, sess)
	require.Equal(t, "issued-token", sess.Token)
	require.Equal(t, "issued-token", store.Token())
	require.Len(t, seen, 1)
	require.Equal(t, sess, seen[0])
}

func TestLoginFailureLeavesStateUntouched(t *testing.T) {
	srv := fakeBackend(t)
	provider, store := newTestProvider(t, srv.URL)
	provider.Restore()

	err := provider.Login(context.Background(), "admin@example.com", "wrong")
	require.Error(t, err)
	require.Equal(t, "Invalid credentials", err.Error())
	require.Nil(t, provider.Current())
	require.Empty(t, store.Token())
}

func TestLogoutClearsEverything(t *testing.T) {
	srv := fakeBackend(t)
	provider, store := newTestProvider(t, srv.URL)
	provider.Restore()
	require.NoError(t, provider.Login(context.Background(), "admin@example.com", "correct"))

	last := &models.Session{}
	provider.Subscribe(func(s *models.Session) { last = s })

	require.NoError(t, provider.Logout())
	require.Nil(t, provider.Current())
	require.Empty(t, store.Token())
	require.Nil(t, last)
}
