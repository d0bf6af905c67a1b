// Package protocol defines the JSON messages relayed to hook observers.
package protocol

import "mousehook/internal/hook"

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// TypeHello is sent by the server right after a client connects
	TypeHello MessageType = "hello"

	// TypeMouse carries a single mouse hook event
	TypeMouse MessageType = "mouse"
)

// Message is the generic container for all WebSocket messages
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// HelloPayload is the payload for TypeHello
type HelloPayload struct {
	ClientID string `json:"client_id"`
	Version  string `json:"version"`
}

// MousePayload is the payload for TypeMouse
type MousePayload struct {
	Kind       hook.Kind `json:"kind"`
	X          int32     `json:"x"`
	Y          int32     `json:"y"`
	Button     int       `json:"btn,omitempty"` // 1=left, 2=right, 3=middle, 4/5=X buttons
	WheelDelta int       `json:"wheel,omitempty"`
	Injected   bool      `json:"injected,omitempty"`
	Code       int32     `json:"code"`
	Message    uint32    `json:"msg"`
	Time       uint32    `json:"time"` // OS tick count in ms
}

// FromEvent converts a hook event into its wire form
func FromEvent(ev hook.MouseEvent) MousePayload {
	return MousePayload{
		Kind:       ev.Kind(),
		X:          ev.X,
		Y:          ev.Y,
		Button:     ev.Button(),
		WheelDelta: ev.WheelDelta(),
		Injected:   ev.Injected(),
		Code:       ev.Code,
		Message:    ev.Message(),
		Time:       ev.Time,
	}
}
