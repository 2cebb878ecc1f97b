package vpx

import "encoding/binary"

// ReadVersion decodes the GameStg/Version stream: a single little-endian u32
// (e.g. 1072 for table format 10.7.2).
func ReadVersion(data []byte) (uint32, error) {
	if len(data) < 4 {
		return 0, &FormatError{Path: "GameStg/Version", Err: ErrShortStream}
	}
	return binary.LittleEndian.Uint32(data[:4]), nil
}

// WriteVersion encodes a version integer into the raw 4-byte stream form.
func WriteVersion(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}
