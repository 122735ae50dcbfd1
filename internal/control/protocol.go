// Package control turns browser input messages into control events.
package control

// Message is a control websocket payload.
type Message struct {
	T       string  `json:"t"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Buttons uint32  `json:"buttons,omitempty"`
	WheelX  int32   `json:"wheelX,omitempty"`
	WheelY  int32   `json:"wheelY,omitempty"`
	Action  string  `json:"action,omitempty"`
	Keycode uint32  `json:"keycode,omitempty"`
	Meta    uint32  `json:"meta,omitempty"`
	Text    string  `json:"text,omitempty"`
	Name    string  `json:"name,omitempty"`
	Enabled *bool   `json:"enabled,omitempty"`
}
