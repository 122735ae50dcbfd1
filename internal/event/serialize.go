package event

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const (
	// TextMaxLength is the largest text payload, in bytes, a single event may carry.
	TextMaxLength = 300
	// SerializedMaxSize bounds the encoded size of any event.
	SerializedMaxSize = 3 + TextMaxLength

	positionSize = 8
)

var (
	// ErrTextTooLong reports a text payload above TextMaxLength.
	ErrTextTooLong = errors.New("event: text too long")
	// ErrOutOfRange reports a coordinate that does not fit the wire form.
	ErrOutOfRange = errors.New("event: position out of range")
	// ErrUnsupported reports an event kind the serializer does not know.
	ErrUnsupported = errors.New("event: unsupported kind")
)

// Serialize encodes ev into its wire form. The returned slice is owned by the caller.
func Serialize(ev Event) ([]byte, error) {
	switch e := ev.(type) {
	case Keycode:
		buf := make([]byte, 10)
		buf[0] = byte(KindKeycode)
		buf[1] = byte(e.Action)
		binary.BigEndian.PutUint32(buf[2:], e.Keycode)
		binary.BigEndian.PutUint32(buf[6:], e.MetaState)
		return buf, nil
	case Text:
		if len(e.Text) > TextMaxLength {
			return nil, fmt.Errorf("%w: %d bytes", ErrTextTooLong, len(e.Text))
		}
		buf := make([]byte, 3+len(e.Text))
		buf[0] = byte(KindText)
		binary.BigEndian.PutUint16(buf[1:], uint16(len(e.Text)))
		copy(buf[3:], e.Text)
		return buf, nil
	case Mouse:
		buf := make([]byte, 6+positionSize)
		buf[0] = byte(KindMouse)
		buf[1] = byte(e.Action)
		binary.BigEndian.PutUint32(buf[2:], e.Buttons)
		if err := putPosition(buf[6:], e.Position); err != nil {
			return nil, err
		}
		return buf, nil
	case Scroll:
		buf := make([]byte, 1+positionSize+8)
		buf[0] = byte(KindScroll)
		if err := putPosition(buf[1:], e.Position); err != nil {
			return nil, err
		}
		binary.BigEndian.PutUint32(buf[9:], uint32(e.HScroll))
		binary.BigEndian.PutUint32(buf[13:], uint32(e.VScroll))
		return buf, nil
	case Command:
		return []byte{byte(KindCommand), byte(e.Action)}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupported, ev)
	}
}

// putPosition writes x, y, width and height as four big-endian uint16 values.
func putPosition(buf []byte, p Position) error {
	if p.Point.X < 0 || p.Point.Y < 0 || p.Point.X > math.MaxUint16 || p.Point.Y > math.MaxUint16 {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfRange, p.Point.X, p.Point.Y)
	}
	binary.BigEndian.PutUint16(buf[0:], uint16(p.Point.X))
	binary.BigEndian.PutUint16(buf[2:], uint16(p.Point.Y))
	binary.BigEndian.PutUint16(buf[4:], p.ScreenSize.Width)
	binary.BigEndian.PutUint16(buf[6:], p.ScreenSize.Height)
	return nil
}
