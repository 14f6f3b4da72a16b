package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"productmanager/internal/models"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "state", "session.json"))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := tempStore(t)

	sess := &models.Session{Email: "admin@example.com", Role: models.RoleAdmin, Token: "jwt-token"}
	require.NoError(t, store.Save(sess))

	reloaded := NewStore(store.path)
	got, err := reloaded.Load()
	require.NoError(t, err)
	require.Equal(t, sess, got)
	require.Equal(t, "jwt-token", reloaded.Token())
}

func TestLoadMissingFileMeansLoggedOut(t *testing.T) {
	store := tempStore(t)

	got, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, got)
	require.Nil(t, store.Current())
	require.Empty(t, store.Token())
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewStore(path)
	_, err := store.Load()
	require.Error(t, err)
}

func TestClearRemovesFileAndState(t *testing.T) {
	store := tempStore(t)
	require.NoError(t, store.Save(&models.Session{Email: "u@example.com", Role: models.RoleUser, Token: "tok"}))

	require.NoError(t, store.Clear())
	require.Nil(t, store.Current())
	require.Empty(t, store.Token())

	_, err := os.Stat(store.path)
	require.True(t, os.IsNotExist(err))

	// clearing twice is fine
	require.NoError(t, store.Clear())
}

func TestSessionFileIsPrivate(t *testing.T) {
	store := tempStore(t)
	require.NoError(t, store.Save(&models.Session{Email: "u@example.com", Token: "tok"}))

	info, err := os.Stat(store.path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
