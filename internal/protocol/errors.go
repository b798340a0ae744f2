package protocol

import "fmt"

// FramingError reports wire bytes that cannot be decoded: missing SLIP
// delimiters, a malformed escape sequence, a length byte that disagrees
// with the actual frame size, or a checksum mismatch.
type FramingError struct {
	Reason string
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("framing error: %s", e.Reason)
}

func framingErrorf(format string, args ...interface{}) error {
	return &FramingError{Reason: fmt.Sprintf(format, args...)}
}

// PacketError reports an access beyond the bounds of a packet buffer.
type PacketError struct {
	Offset int
	Width  int
	Length int
}

func (e *PacketError) Error() string {
	return fmt.Sprintf("packet access out of bounds: offset %d width %d exceeds length %d",
		e.Offset, e.Width, e.Length)
}
