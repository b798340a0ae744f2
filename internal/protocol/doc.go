// Package protocol implements the KLF200 gateway binary wire format.
//
// The gateway speaks a SLIP-framed binary protocol over a TLS socket. Every
// message travels through two encoding layers:
//
// # Transfer encoding
//
// The inner layer wraps a command code and its data bytes:
//   - Protocol ID: 0x00
//   - Length: 1 byte, length of command + data + 1
//   - Command: 2 bytes (big-endian)
//   - Data: Variable length
//   - Checksum: 1 byte, XOR of all preceding bytes
//
// # SLIP framing
//
// The outer layer is RFC 1055 byte stuffing:
//   - Frames are delimited by END (0xC0) on both sides
//   - END inside the payload becomes ESC ESC_END (0xDB 0xDC)
//   - ESC inside the payload becomes ESC ESC_ESC (0xDB 0xDD)
//
// Decoding is all-or-nothing: a missing delimiter, malformed escape
// sequence, length mismatch or checksum mismatch yields a *FramingError and
// no partial payload.
//
// # Packet access
//
// Packet provides bounds-checked positional access to the data part of a
// decoded frame: unsigned big-endian fields of one, two or four bytes,
// NUL-terminated fixed-width strings, and dotted-quad rendering of IPv4
// fields. Out-of-range access returns a *PacketError instead of panicking.
//
// # Usage Example
//
//	wire := protocol.SlipEncode(protocol.EncodeFrame(0x0008, nil))
//	// ... send wire, receive reply ...
//	cmd, data, err := protocol.DecodeFrame(mustSlipDecode(reply))
package protocol
