package protocol

// SLIP special bytes per RFC 1055.
const (
	SlipEnd    = 0xC0
	SlipEsc    = 0xDB
	SlipEscEnd = 0xDC
	SlipEscEsc = 0xDD
)

// SlipEncode wraps data in SLIP framing: an END delimiter on each side,
// with END and ESC bytes in the payload escaped.
func SlipEncode(data []byte) []byte {
	// Pre-allocate with headroom for escapes
	result := make([]byte, 0, len(data)+8)
	result = append(result, SlipEnd)

	for _, b := range data {
		switch b {
		case SlipEnd:
			result = append(result, SlipEsc, SlipEscEnd)
		case SlipEsc:
			result = append(result, SlipEsc, SlipEscEsc)
		default:
			result = append(result, b)
		}
	}

	return append(result, SlipEnd)
}

// SlipDecode extracts the payload from one SLIP frame. The frame must begin
// and end with an END delimiter and contain only well-formed escape
// sequences; anything else is a *FramingError.
func SlipDecode(frame []byte) ([]byte, error) {
	if len(frame) < 3 {
		return nil, framingErrorf("frame too short: %d bytes", len(frame))
	}
	if frame[0] != SlipEnd || frame[len(frame)-1] != SlipEnd {
		return nil, framingErrorf("missing END delimiter (first=0x%02X, last=0x%02X)",
			frame[0], frame[len(frame)-1])
	}

	body := frame[1 : len(frame)-1]
	result := make([]byte, 0, len(body))

	for i := 0; i < len(body); i++ {
		switch body[i] {
		case SlipEnd:
			return nil, framingErrorf("unescaped END byte inside frame at offset %d", i+1)
		case SlipEsc:
			if i+1 >= len(body) {
				return nil, framingErrorf("truncated escape sequence at end of frame")
			}
			i++
			switch body[i] {
			case SlipEscEnd:
				result = append(result, SlipEnd)
			case SlipEscEsc:
				result = append(result, SlipEsc)
			default:
				return nil, framingErrorf("invalid escape sequence 0xDB 0x%02X at offset %d",
					body[i], i)
			}
		default:
			result = append(result, body[i])
		}
	}

	return result, nil
}
