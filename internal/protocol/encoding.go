package protocol

import "encoding/binary"

// transferProtocolID is the fixed first byte of every transfer-encoded frame.
const transferProtocolID = 0x00

// transferOverhead is the number of bytes the transfer encoding adds around
// the data part: protocol id, length, two command bytes and the checksum.
const transferOverhead = 5

// EncodeFrame builds the transfer-encoded form of a command and its data:
// protocol id, length byte, big-endian command, data, XOR checksum.
func EncodeFrame(command int16, data []byte) []byte {
	frame := make([]byte, len(data)+transferOverhead)
	frame[0] = transferProtocolID
	frame[1] = byte(3 + len(data))
	binary.BigEndian.PutUint16(frame[2:4], uint16(command))
	copy(frame[4:], data)
	frame[len(frame)-1] = xorChecksum(frame[:len(frame)-1])
	return frame
}

// DecodeFrame validates and splits a transfer-encoded frame into its
// command code and data bytes. Decoding is all-or-nothing: any protocol id,
// length or checksum violation yields a *FramingError.
func DecodeFrame(frame []byte) (command int16, data []byte, err error) {
	if len(frame) < transferOverhead {
		return 0, nil, framingErrorf("frame too short for transfer encoding: %d bytes", len(frame))
	}
	if frame[0] != transferProtocolID {
		return 0, nil, framingErrorf("unexpected protocol id 0x%02X", frame[0])
	}
	if int(frame[1]) != len(frame)-2 {
		return 0, nil, framingErrorf("length mismatch: declared %d, actual %d",
			frame[1], len(frame)-2)
	}
	want := frame[len(frame)-1]
	got := xorChecksum(frame[:len(frame)-1])
	if want != got {
		return 0, nil, framingErrorf("checksum mismatch: frame carries 0x%02X, computed 0x%02X",
			want, got)
	}

	command = int16(binary.BigEndian.Uint16(frame[2:4]))
	data = make([]byte, len(frame)-transferOverhead)
	copy(data, frame[4:len(frame)-1])
	return command, data, nil
}

func xorChecksum(bytes []byte) byte {
	var checksum byte
	for _, b := range bytes {
		checksum ^= b
	}
	return checksum
}
