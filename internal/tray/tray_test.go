//go:build windows

package tray

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeHook struct {
	installed bool
	initErr   error
	inits     int
	stops     int
}

func (f *fakeHook) Initialize() error {
	f.inits++
	if f.initErr != nil {
		return f.initErr
	}
	f.installed = true
	return nil
}

func (f *fakeHook) Stop() error {
	f.stops++
	f.installed = false
	return nil
}

func (f *fakeHook) Installed() bool {
	return f.installed
}

func TestTogglePausesAndResumes(t *testing.T) {
	h := &fakeHook{installed: true}
	tr := New("test", h, nil)

	tr.Toggle()
	assert.False(t, h.installed)
	assert.Equal(t, 1, h.stops)

	tr.Toggle()
	assert.True(t, h.installed)
	assert.Equal(t, 1, h.inits)
}

func TestToggleResumeFailureStaysPaused(t *testing.T) {
	h := &fakeHook{initErr: errors.New("denied")}
	tr := New("test", h, nil)

	tr.Toggle()
	assert.False(t, h.installed)
	assert.Equal(t, 1, h.inits)
}

func TestLabels(t *testing.T) {
	status, action := labels(true)
	assert.Equal(t, "Hook: active", status)
	assert.Equal(t, "Pause hook", action)

	status, action = labels(false)
	assert.Equal(t, "Hook: paused", status)
	assert.Equal(t, "Resume hook", action)
}

func TestIconHeader(t *testing.T) {
	icon := getIcon()
	assert.Len(t, icon, 1150)
	assert.Equal(t, []byte{0x00, 0x00, 0x01, 0x00, 0x01, 0x00}, icon[:6])
}

func TestIconShape(t *testing.T) {
	icon := getIcon()
	assert.Equal(t, []byte{0x10, 0x10, 0x00, 0x00, 0x01, 0x00, 0x20, 0x00}, icon[6:14])

	assert.Equal(t, byte(0), mousePixel(0, 0)[3], "corner is transparent")
	assert.Equal(t, byte(0xFF), mousePixel(7, 10)[3], "body is opaque")
	assert.Equal(t, mousePixel(7, 3), mousePixel(7, 6), "button split and button line share the outline colour")
	assert.NotEqual(t, mousePixel(5, 10), mousePixel(7, 6))
}
