//go:build !windows

package hook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewManagerUnsupported(t *testing.T) {
	m := NewManager()

	assert.ErrorIs(t, m.Initialize(), ErrUnsupportedPlatform)
	assert.Equal(t, Uninstalled, m.State())
	assert.NoError(t, m.Stop())
}
