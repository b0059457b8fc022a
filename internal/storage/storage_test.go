package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestCookieRoundTrip(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SetCookie("auth_token", "tok-1", 7*24*time.Hour))

	value, err := store.Cookie("auth_token")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", value)
}

func TestExpiredCookieReadsEmpty(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SetCookie("auth_token", "tok-1", -time.Minute))

	value, err := store.Cookie("auth_token")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestMissingCookieReadsEmpty(t *testing.T) {
	store := newTestStore(t)

	value, err := store.Cookie("auth_token")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestDeleteCookie(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SetCookie("auth_token", "tok-1", time.Hour))
	require.NoError(t, store.DeleteCookie("auth_token"))

	value, err := store.Cookie("auth_token")
	require.NoError(t, err)
	assert.Empty(t, value)

	// Deleting again is a no-op.
	assert.NoError(t, store.DeleteCookie("auth_token"))
}

func TestJSONRoundTrip(t *testing.T) {
	store := newTestStore(t)

	type record struct {
		Name   string   `json:"name"`
		Skills []string `json:"skills"`
	}

	require.NoError(t, store.SaveJSON("profile", record{Name: "Ada", Skills: []string{"Figma"}}))

	var got record
	found, err := store.LoadJSON("profile", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, []string{"Figma"}, got.Skills)
}

func TestLoadJSONMissingKey(t *testing.T) {
	store := newTestStore(t)

	var got map[string]string
	found, err := store.LoadJSON("absent", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNewRejectsEmptyDir(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}
