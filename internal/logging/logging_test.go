package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gqtodo/gqtodo/internal/config"
)

func TestNewNopWhenNoFile(t *testing.T) {
	log, err := New(config.LogConfig{Level: "info"})
	require.NoError(t, err)
	require.NotNil(t, log)
	log.Info("dropped")
}

func TestNewWritesToFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "gqtodo.log")
	log, err := New(config.LogConfig{Level: "debug", File: p})
	require.NoError(t, err)

	log.Info("hello")
	require.NoError(t, log.Sync())

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), "hello")
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "shouty", File: "x.log"})
	assert.Error(t, err)
}
