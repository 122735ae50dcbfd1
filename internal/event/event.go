// Package event defines the control events forwarded to the remote peer.
package event

// Kind identifies the wire tag of a control event.
type Kind uint8

const (
	// KindKeycode injects a key press or release.
	KindKeycode Kind = iota
	// KindText injects a block of text.
	KindText
	// KindMouse injects a pointer button or motion.
	KindMouse
	// KindScroll injects a wheel movement.
	KindScroll
	// KindCommand triggers a device-level command.
	KindCommand
)

// String returns a short name used in logs.
func (k Kind) String() string {
	switch k {
	case KindKeycode:
		return "keycode"
	case KindText:
		return "text"
	case KindMouse:
		return "mouse"
	case KindScroll:
		return "scroll"
	case KindCommand:
		return "command"
	default:
		return "unknown"
	}
}

// Event is one control action. Implementations are value types and are never
// mutated once handed to a controller.
type Event interface {
	Kind() Kind
	sealed()
}

// KeyAction is the key transition carried by a Keycode event.
type KeyAction uint8

const (
	// KeyDown presses the key.
	KeyDown KeyAction = 0
	// KeyUp releases the key.
	KeyUp KeyAction = 1
)

// MouseAction is the pointer transition carried by a Mouse event.
type MouseAction uint8

const (
	// MouseDown presses the given buttons.
	MouseDown MouseAction = 0
	// MouseUp releases the given buttons.
	MouseUp MouseAction = 1
	// MouseMove moves the pointer with the given buttons held.
	MouseMove MouseAction = 2
)

// Mouse button bits.
const (
	ButtonPrimary   uint32 = 1 << 0
	ButtonSecondary uint32 = 1 << 1
	ButtonTertiary  uint32 = 1 << 2
)

// CommandAction selects the device command.
type CommandAction uint8

const (
	// CommandBackOrScreenOn presses back, or turns the screen on when it is off.
	CommandBackOrScreenOn CommandAction = iota
	// CommandExpandNotificationPanel opens the notification shade.
	CommandExpandNotificationPanel
	// CommandCollapseNotificationPanel closes the notification shade.
	CommandCollapseNotificationPanel
)

// Size is a screen size in pixels.
type Size struct {
	Width  uint16
	Height uint16
}

// Point is a pixel coordinate.
type Point struct {
	X int32
	Y int32
}

// Position is a point together with the screen size it refers to, so the peer
// can rescale when its own resolution differs.
type Position struct {
	Point      Point
	ScreenSize Size
}

// Keycode is a key press or release.
type Keycode struct {
	Action    KeyAction
	Keycode   uint32
	MetaState uint32
}

// Text is a block of UTF-8 text to inject.
type Text struct {
	Text string
}

// Mouse is a pointer button transition or motion.
type Mouse struct {
	Action   MouseAction
	Buttons  uint32
	Position Position
}

// Scroll is a wheel movement at a position.
type Scroll struct {
	Position Position
	HScroll  int32
	VScroll  int32
}

// Command is a device-level command.
type Command struct {
	Action CommandAction
}

// Kind implements Event.
func (Keycode) Kind() Kind { return KindKeycode }

// Kind implements Event.
func (Text) Kind() Kind { return KindText }

// Kind implements Event.
func (Mouse) Kind() Kind { return KindMouse }

// Kind implements Event.
func (Scroll) Kind() Kind { return KindScroll }

// Kind implements Event.
func (Command) Kind() Kind { return KindCommand }

func (Keycode) sealed() {}
func (Text) sealed()    {}
func (Mouse) sealed()   {}
func (Scroll) sealed()  {}
func (Command) sealed() {}
