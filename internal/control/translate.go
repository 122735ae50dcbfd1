package control

import (
	"errors"
	"fmt"

	"github.com/frudas24/deskcontrol/internal/event"
)

// ErrBadMessage reports a message whose fields cannot be mapped to an event.
var ErrBadMessage = errors.New("control: bad message")

var commandNames = map[string]event.CommandAction{
	"back":                  event.CommandBackOrScreenOn,
	"expandNotifications":   event.CommandExpandNotificationPanel,
	"collapseNotifications": event.CommandCollapseNotificationPanel,
}

// Translate maps one input message to the control events it produces. Messages
// that carry no input (unknown types, toggles) yield no events.
func Translate(msg Message, screen event.Size) ([]event.Event, error) {
	switch msg.T {
	case "down":
		return []event.Event{mouseEvent(event.MouseDown, msg, screen)}, nil
	case "move":
		return []event.Event{mouseEvent(event.MouseMove, msg, screen)}, nil
	case "up":
		return []event.Event{mouseEvent(event.MouseUp, msg, screen)}, nil
	case "wheel":
		return []event.Event{event.Scroll{
			Position: NormToPosition(msg.X, msg.Y, screen),
			HScroll:  msg.WheelX,
			VScroll:  msg.WheelY,
		}}, nil
	case "key":
		return keyEvent(msg)
	case "type":
		parts := event.SplitText(msg.Text)
		out := make([]event.Event, 0, len(parts))
		for _, p := range parts {
			out = append(out, p)
		}
		return out, nil
	case "command":
		action, ok := commandNames[msg.Name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown command %q", ErrBadMessage, msg.Name)
		}
		return []event.Event{event.Command{Action: action}}, nil
	default:
		return nil, nil
	}
}

// mouseEvent builds a pointer event; button transitions default to the primary button.
func mouseEvent(action event.MouseAction, msg Message, screen event.Size) event.Event {
	buttons := msg.Buttons
	if buttons == 0 && action != event.MouseMove {
		buttons = event.ButtonPrimary
	}
	return event.Mouse{
		Action:   action,
		Buttons:  buttons,
		Position: NormToPosition(msg.X, msg.Y, screen),
	}
}

// keyEvent builds a keycode event from a key message.
func keyEvent(msg Message) ([]event.Event, error) {
	var action event.KeyAction
	switch msg.Action {
	case "down":
		action = event.KeyDown
	case "up":
		action = event.KeyUp
	default:
		return nil, fmt.Errorf("%w: unknown key action %q", ErrBadMessage, msg.Action)
	}
	return []event.Event{event.Keycode{Action: action, Keycode: msg.Keycode, MetaState: msg.Meta}}, nil
}
