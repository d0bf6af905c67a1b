// Package hook installs a process-wide low-level mouse hook and republishes
// the events it receives to in-process listeners.
package hook

// Low-level mouse hook constants
const (
	WH_MOUSE_LL = 14

	WM_MOUSEMOVE   = 0x0200
	WM_LBUTTONDOWN = 0x0201
	WM_LBUTTONUP   = 0x0202
	WM_RBUTTONDOWN = 0x0204
	WM_RBUTTONUP   = 0x0205
	WM_MBUTTONDOWN = 0x0207
	WM_MBUTTONUP   = 0x0208
	WM_MOUSEWHEEL  = 0x020A
	WM_XBUTTONDOWN = 0x020B
	WM_XBUTTONUP   = 0x020C
	WM_MOUSEHWHEEL = 0x020E

	LLMHF_INJECTED = 0x00000001

	XBUTTON1 = 0x0001
)

// POINT mirrors the Win32 POINT struct.
type POINT struct {
	X, Y int32
}

// MSLLHOOKSTRUCT is the payload the OS passes through lParam.
type MSLLHOOKSTRUCT struct {
	Pt          POINT
	MouseData   uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

// Kind classifies a mouse message
type Kind string

const (
	KindMove       Kind = "move"
	KindButtonDown Kind = "button_down"
	KindButtonUp   Kind = "button_up"
	KindWheel      Kind = "wheel"
	KindHWheel     Kind = "hwheel"
	KindUnknown    Kind = "unknown"
)

// MouseEvent is a single decoded hook invocation. Code, WParam and LParam are
// the raw values handed to the hook procedure; LParam is only meaningful for
// the duration of the callback.
type MouseEvent struct {
	Code      int32
	WParam    uintptr
	LParam    uintptr
	X         int32
	Y         int32
	MouseData uint32
	Flags     uint32
	Time      uint32
}

// Listener receives mouse events on the hook thread. It must return quickly;
// the OS removes hooks that stall the input pipeline.
type Listener func(ev MouseEvent)

func decodeEvent(code int32, wParam, lParam uintptr, hs *MSLLHOOKSTRUCT) MouseEvent {
	return MouseEvent{
		Code:      code,
		WParam:    wParam,
		LParam:    lParam,
		X:         hs.Pt.X,
		Y:         hs.Pt.Y,
		MouseData: hs.MouseData,
		Flags:     hs.Flags,
		Time:      hs.Time,
	}
}

// Message returns the window message identifier carried in WParam.
func (e MouseEvent) Message() uint32 {
	return uint32(e.WParam)
}

// Kind returns the event class of the message.
func (e MouseEvent) Kind() Kind {
	switch e.Message() {
	case WM_MOUSEMOVE:
		return KindMove
	case WM_LBUTTONDOWN, WM_RBUTTONDOWN, WM_MBUTTONDOWN, WM_XBUTTONDOWN:
		return KindButtonDown
	case WM_LBUTTONUP, WM_RBUTTONUP, WM_MBUTTONUP, WM_XBUTTONUP:
		return KindButtonUp
	case WM_MOUSEWHEEL:
		return KindWheel
	case WM_MOUSEHWHEEL:
		return KindHWheel
	}
	return KindUnknown
}

// Button returns 1=left, 2=right, 3=middle, 4/5 for the X buttons, or 0 when
// the message is not a button message.
func (e MouseEvent) Button() int {
	switch e.Message() {
	case WM_LBUTTONDOWN, WM_LBUTTONUP:
		return 1
	case WM_RBUTTONDOWN, WM_RBUTTONUP:
		return 2
	case WM_MBUTTONDOWN, WM_MBUTTONUP:
		return 3
	case WM_XBUTTONDOWN, WM_XBUTTONUP:
		if e.MouseData>>16 == XBUTTON1 {
			return 4
		}
		return 5
	}
	return 0
}

// WheelDelta returns the signed wheel rotation for wheel messages, in
// multiples of WHEEL_DELTA (120).
func (e MouseEvent) WheelDelta() int {
	switch e.Message() {
	case WM_MOUSEWHEEL, WM_MOUSEHWHEEL:
		return int(int16(e.MouseData >> 16))
	}
	return 0
}

// Injected reports whether the event was synthesized (e.g. by SendInput).
func (e MouseEvent) Injected() bool {
	return e.Flags&LLMHF_INJECTED != 0
}
