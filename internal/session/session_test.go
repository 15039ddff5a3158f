package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetThenOpenRoundTrip(t *testing.T) {
	t.Setenv(EnvToken, "")
	dir := t.TempDir()

	s, err := OpenDir(dir)
	require.NoError(t, err)
	assert.False(t, s.LoggedIn())

	require.NoError(t, s.Set("tok-123"))
	assert.Equal(t, "tok-123", s.Token())

	// fresh "process"
	s2, err := OpenDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", s2.Token())
	assert.True(t, s2.LoggedIn())
}

func TestSetEmptyRemovesCredentials(t *testing.T) {
	t.Setenv(EnvToken, "")
	dir := t.TempDir()

	s, err := OpenDir(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set("tok-123"))
	require.NoError(t, s.Set(""))

	assert.False(t, s.LoggedIn())
	_, statErr := os.Stat(filepath.Join(dir, credFileName))
	assert.True(t, os.IsNotExist(statErr), "credentials file should be gone")

	s2, err := OpenDir(dir)
	require.NoError(t, err)
	assert.False(t, s2.LoggedIn())
}

func TestSetEmptyWithoutPriorLogin(t *testing.T) {
	t.Setenv(EnvToken, "")
	s, err := OpenDir(t.TempDir())
	require.NoError(t, err)
	// logout is unconditional and always succeeds
	assert.NoError(t, s.Set(""))
}

func TestEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvToken, "Bearer env-tok")

	s, err := OpenDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "env-tok", s.Token())
	assert.Equal(t, "env-tok", s.PersistedToken())

	ti, err := s.Info()
	require.NoError(t, err)
	require.NotNil(t, ti)
	assert.Equal(t, "env", ti.Source)
	assert.True(t, s.EnvSourced())
}

func TestEnvSourcedFalseForFileToken(t *testing.T) {
	t.Setenv(EnvToken, "")
	s, err := OpenDir(t.TempDir())
	require.NoError(t, err)

	assert.False(t, s.EnvSourced())
	require.NoError(t, s.Set("tok"))
	assert.False(t, s.EnvSourced())
}

func TestStripBearerOnSet(t *testing.T) {
	t.Setenv(EnvToken, "")
	s, err := OpenDir(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Set("Bearer abc"))
	assert.Equal(t, "abc", s.Token())
	assert.Equal(t, "abc", s.PersistedToken())
}

func TestPersistedTokenTracksTransitions(t *testing.T) {
	t.Setenv(EnvToken, "")
	s, err := OpenDir(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, s.PersistedToken())
	require.NoError(t, s.Set("first"))
	assert.Equal(t, "first", s.PersistedToken())
	require.NoError(t, s.Set("second"))
	assert.Equal(t, "second", s.PersistedToken())
	require.NoError(t, s.Set(""))
	assert.Empty(t, s.PersistedToken())
}

func TestSubscribeNotifiedOnEveryTransition(t *testing.T) {
	t.Setenv(EnvToken, "")
	s, err := OpenDir(t.TempDir())
	require.NoError(t, err)

	var seen []string
	s.Subscribe(func(tok string) { seen = append(seen, tok) })

	require.NoError(t, s.Set("a"))
	require.NoError(t, s.Set(""))
	assert.Equal(t, []string{"a", ""}, seen)
}
