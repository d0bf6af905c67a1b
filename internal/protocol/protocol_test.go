package protocol

import (
	"encoding/json"
	"testing"

	"mousehook/internal/hook"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEventWheel(t *testing.T) {
	p := FromEvent(hook.MouseEvent{
		WParam:    hook.WM_MOUSEWHEEL,
		X:         10,
		Y:         20,
		MouseData: uint32(0xFF88) << 16,
		Flags:     hook.LLMHF_INJECTED,
		Time:      500,
	})

	assert.Equal(t, hook.KindWheel, p.Kind)
	assert.Equal(t, -120, p.WheelDelta)
	assert.True(t, p.Injected)
	assert.Equal(t, uint32(hook.WM_MOUSEWHEEL), p.Message)
	assert.Zero(t, p.Button)
}

func TestMouseMessageJSON(t *testing.T) {
	msg := Message{
		Type:    TypeMouse,
		Payload: FromEvent(hook.MouseEvent{WParam: hook.WM_LBUTTONDOWN, X: 123, Y: 456}),
	}

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"type":"mouse","payload":{"kind":"button_down","x":123,"y":456,"btn":1,"code":0,"msg":513,"time":0}}`,
		string(data))
}
