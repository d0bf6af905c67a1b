package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	m := NewManagerAt(filepath.Join(t.TempDir(), "config.json"))

	require.NoError(t, m.Load())
	assert.Equal(t, *DefaultConfig(), m.Get())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	m := NewManagerAt(path)

	cfg := m.Get()
	cfg.LogEvents = true
	cfg.Relay.Enabled = true
	cfg.Relay.Port = 19000
	require.NoError(t, m.Set(cfg))
	require.NoError(t, m.Save())

	loaded := NewManagerAt(path)
	require.NoError(t, loaded.Load())
	assert.Equal(t, cfg, loaded.Get())
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"log_events": true}`), 0644))

	m := NewManagerAt(path)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.True(t, cfg.LogEvents)
	assert.True(t, cfg.TrayEnabled)
	assert.Equal(t, 18090, cfg.Relay.Port)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"relay": {"enabled": true, "port": 70000}}`), 0644))

	m := NewManagerAt(path)
	assert.Error(t, m.Load())
	assert.Equal(t, *DefaultConfig(), m.Get())
}

func TestLoadRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0644))

	assert.Error(t, NewManagerAt(path).Load())
}

func TestSetValidates(t *testing.T) {
	m := NewManagerAt(filepath.Join(t.TempDir(), "config.json"))

	cfg := m.Get()
	cfg.Relay.Enabled = true
	cfg.Relay.Port = 0
	assert.Error(t, m.Set(cfg))
	assert.False(t, m.Get().Relay.Enabled)
}
