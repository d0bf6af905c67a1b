package hook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMouseEventClassification(t *testing.T) {
	tests := []struct {
		name   string
		ev     MouseEvent
		kind   Kind
		button int
		wheel  int
	}{
		{"move", MouseEvent{WParam: WM_MOUSEMOVE}, KindMove, 0, 0},
		{"left down", MouseEvent{WParam: WM_LBUTTONDOWN}, KindButtonDown, 1, 0},
		{"right up", MouseEvent{WParam: WM_RBUTTONUP}, KindButtonUp, 2, 0},
		{"middle down", MouseEvent{WParam: WM_MBUTTONDOWN}, KindButtonDown, 3, 0},
		{"xbutton1 down", MouseEvent{WParam: WM_XBUTTONDOWN, MouseData: 1 << 16}, KindButtonDown, 4, 0},
		{"xbutton2 up", MouseEvent{WParam: WM_XBUTTONUP, MouseData: 2 << 16}, KindButtonUp, 5, 0},
		{"wheel forward", MouseEvent{WParam: WM_MOUSEWHEEL, MouseData: 120 << 16}, KindWheel, 0, 120},
		{"wheel backward", MouseEvent{WParam: WM_MOUSEWHEEL, MouseData: uint32(0xFF88) << 16}, KindWheel, 0, -120},
		{"hwheel", MouseEvent{WParam: WM_MOUSEHWHEEL, MouseData: 240 << 16}, KindHWheel, 0, 240},
		{"unknown", MouseEvent{WParam: 0x1234}, KindUnknown, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.ev.Kind())
			assert.Equal(t, tt.button, tt.ev.Button())
			assert.Equal(t, tt.wheel, tt.ev.WheelDelta())
		})
	}
}

func TestMouseEventInjected(t *testing.T) {
	assert.True(t, MouseEvent{Flags: LLMHF_INJECTED}.Injected())
	assert.False(t, MouseEvent{Flags: 0x2}.Injected())
}

func TestDecodeEvent(t *testing.T) {
	hs := &MSLLHOOKSTRUCT{Pt: POINT{X: -5, Y: 1080}, MouseData: 7, Flags: 1, Time: 1234}
	ev := decodeEvent(0, WM_RBUTTONDOWN, 0xABC, hs)

	assert.Equal(t, MouseEvent{
		Code:      0,
		WParam:    WM_RBUTTONDOWN,
		LParam:    0xABC,
		X:         -5,
		Y:         1080,
		MouseData: 7,
		Flags:     1,
		Time:      1234,
	}, ev)
}
