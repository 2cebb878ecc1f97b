// Package biff implements the tagged record framing used inside nearly
// every stream of a .vpx table: [length:u32][tag:4 ASCII][payload:length-4],
// terminated by the ENDB sentinel. See the CODE/FONT/BITS/JPEG special
// framing notes on Reader/Writer for the handful of tags that deviate from
// the generic shape.
package biff

import (
	"encoding/binary"
	"errors"
	"math"

	"golang.org/x/text/encoding/unicode"
)

// EndTag is the 4-byte sentinel tag that terminates a record stream.
const EndTag = "ENDB"

var (
	// ErrMalformedRecord is returned when a declared record length would
	// overrun the buffer.
	ErrMalformedRecord = errors.New("biff: malformed record")

	// ErrShortRead is returned when a fixed-width field can't be read because
	// fewer bytes remain than the field requires.
	ErrShortRead = errors.New("biff: short read")

	// ErrStopTagNotFound is returned by DataUntil when the requested stop tag
	// never appears in the remaining buffer.
	ErrStopTagNotFound = errors.New("biff: stop tag not found")
)

// Reader iterates tag/payload records inside a byte buffer.
type Reader struct {
	buf       []byte
	pos       int
	end       int // exclusive upper bound this reader may read from
	remaining int // bytes left in the current record's payload
	tag       string
	eof       bool
}

// NewReader returns a Reader over the whole of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf, pos: 0, end: len(buf)}
}

// Pos returns the reader's current cursor position within its buffer.
func (r *Reader) Pos() int { return r.pos }

// Tag returns the tag of the current record, after a call to Next.
func (r *Reader) Tag() string { return r.tag }

// IsEOF reports whether the reader has reached ENDB or the end of its range.
func (r *Reader) IsEOF() bool { return r.eof }

// Remaining returns the number of unread payload bytes in the current record.
func (r *Reader) Remaining() int { return r.remaining }

// Next reads the next record's [length][tag] header. After Next, the
// payload is consumed with the Get*/GetRecordData/DataUntil/ChildReader
// methods. Next sets IsEOF when the sentinel ENDB tag is seen or the
// reader's range is exhausted.
func (r *Reader) Next() error {
	if r.pos >= r.end {
		r.eof = true
		r.tag = ""
		r.remaining = 0
		return nil
	}
	if r.pos+8 > r.end {
		return ErrMalformedRecord
	}
	length := binary.LittleEndian.Uint32(r.buf[r.pos : r.pos+4])
	if length < 4 {
		return ErrMalformedRecord
	}
	tag := string(r.buf[r.pos+4 : r.pos+8])
	if r.pos+4+int(length) > r.end {
		return ErrMalformedRecord
	}
	r.pos += 8
	r.remaining = int(length) - 4
	r.tag = tag
	if tag == EndTag {
		r.eof = true
	}
	if tag == "CODE" {
		// CODE's outer length covers only the tag (length == 4, so remaining
		// would otherwise be 0); the real code length+bytes live outside the
		// length-counted region. Widen remaining to the rest of the reader's
		// range so the immediately-following GetU32/GetBytes calls (the code
		// length, then the code bytes) aren't rejected by need() — this is an
		// upper bound, not an exact payload size, mirroring NextNoLength.
		r.remaining = r.end - r.pos
	}
	return nil
}

// PeekTag reports whether the next len(tag) bytes at the cursor equal tag,
// without consuming anything. Used to detect FONT records, which (per the
// format's special framing) carry no length prefix and so can't be detected
// via the ordinary Next() header read.
func (r *Reader) PeekTag(tag string) bool {
	n := len(tag)
	if r.pos+n > r.end {
		return false
	}
	return string(r.buf[r.pos:r.pos+n]) == tag
}

// NextNoLength consumes a literal tag with no preceding length field (the
// FONT special case: "written without the u32 length prefix; the descriptor
// itself is self-delimiting"). remaining is set to the rest of the reader's
// range as an upper bound for the self-delimiting getters that follow; it is
// not an exact payload length.
func (r *Reader) NextNoLength(tag string) error {
	if !r.PeekTag(tag) {
		return ErrMalformedRecord
	}
	r.pos += len(tag)
	r.tag = tag
	r.remaining = r.end - r.pos
	return nil
}

func (r *Reader) need(n int) error {
	if n > r.remaining || r.pos+n > r.end {
		return ErrShortRead
	}
	return nil
}

// GetU8 reads an unsigned 8-bit integer.
func (r *Reader) GetU8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.buf[r.pos]
	r.pos++
	r.remaining--
	return v, nil
}

// GetU16 reads a little-endian unsigned 16-bit integer.
func (r *Reader) GetU16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.buf[r.pos : r.pos+2])
	r.pos += 2
	r.remaining -= 2
	return v, nil
}

// GetU32 reads a little-endian unsigned 32-bit integer.
func (r *Reader) GetU32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos : r.pos+4])
	r.pos += 4
	r.remaining -= 4
	return v, nil
}

// GetI32 reads a little-endian signed 32-bit integer.
func (r *Reader) GetI32() (int32, error) {
	v, err := r.GetU32()
	return int32(v), err
}

// GetF32 reads a little-endian IEEE-754 32-bit float.
func (r *Reader) GetF32() (float32, error) {
	v, err := r.GetU32()
	return math.Float32frombits(v), err
}

// GetBool reads a 4-byte little-endian integer and reports it as a bool
// (nonzero is true), matching the on-disk representation VPX uses for
// every BOOL-tagged field.
func (r *Reader) GetBool() (bool, error) {
	v, err := r.GetU32()
	return v != 0, err
}

// GetBytes reads n raw bytes from the current record's payload.
func (r *Reader) GetBytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, r.buf[r.pos:r.pos+n])
	r.pos += n
	r.remaining -= n
	return out, nil
}

// GetString reads a u32-prefixed-length ASCII/Latin-1 string.
func (r *Reader) GetString() (string, error) {
	n, err := r.GetU32()
	if err != nil {
		return "", err
	}
	b, err := r.GetBytes(int(n))
	if err != nil {
		return "", err
	}
	return latin1ToString(b), nil
}

// GetShortString reads a single-byte-length-prefixed string, as used inside
// the embedded font descriptor.
func (r *Reader) GetShortString() (string, error) {
	n, err := r.GetU8()
	if err != nil {
		return "", err
	}
	b, err := r.GetBytes(int(n))
	if err != nil {
		return "", err
	}
	return latin1ToString(b), nil
}

var utf16Decoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()

// GetWideString reads a u32-prefixed-length-in-bytes UTF-16LE string.
func (r *Reader) GetWideString() (string, error) {
	n, err := r.GetU32()
	if err != nil {
		return "", err
	}
	b, err := r.GetBytes(int(n))
	if err != nil {
		return "", err
	}
	out, err := utf16Decoder.Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// GetRecordData returns the remaining payload of the current record as raw
// bytes, optionally prefixed with the 4-byte tag. This is the canonical unit
// fed to the MAC digest and the shape used by the generic game-item codec
// to preserve unknown tags verbatim.
func (r *Reader) GetRecordData(includeTag bool) ([]byte, error) {
	payload, err := r.GetBytes(r.remaining)
	if err != nil {
		return nil, err
	}
	if !includeTag {
		return payload, nil
	}
	out := make([]byte, 0, 4+len(payload))
	out = append(out, []byte(r.tag)...)
	out = append(out, payload...)
	return out, nil
}

// DataUntil scans forward from the current position and returns all bytes up
// to (exclusive of) the next occurrence of stopTag, without consuming it.
// Used by the image BITS case, which carries no self-contained length.
//
// A well-formed stop-tag record is itself framed as
// [4-byte length][4-byte tag][payload]; the tag bytes are preceded by their
// own length field, which belongs to that record, not to the data being
// scanned. So the match must back up 4 bytes from the tag occurrence: the
// returned slice excludes those 4 length bytes, and r.pos is left pointing
// at the start of the length field, ready for the next Next().
func (r *Reader) DataUntil(stopTag string) ([]byte, error) {
	needle := []byte(stopTag)
	for i := r.pos + 4; i+len(needle) <= r.end; i++ {
		if string(r.buf[i:i+len(needle)]) == stopTag {
			recStart := i - 4
			out := make([]byte, recStart-r.pos)
			copy(out, r.buf[r.pos:recStart])
			r.remaining -= recStart - r.pos
			r.pos = recStart
			return out, nil
		}
	}
	return nil, ErrStopTagNotFound
}

// ChildReader returns a nested Reader bounded by the rest of the current
// record's payload. The child's own records are read with Next/IsEOF until
// it reaches its own ENDB. The parent must call SkipEndTag(child.Pos()) once
// done to resynchronize its cursor and remaining-byte count.
func (r *Reader) ChildReader() *Reader {
	return &Reader{buf: r.buf, pos: r.pos, end: r.pos + r.remaining}
}

// SkipEndTag resynchronizes the parent reader's cursor to pos (the position
// a child reader finished at, i.e. just after its own ENDB).
func (r *Reader) SkipEndTag(pos int) {
	r.remaining -= pos - r.pos
	if r.remaining < 0 {
		r.remaining = 0
	}
	r.pos = pos
}

// SkipRemaining discards whatever is left of the current record's payload,
// used when an unknown tag is encountered in a known entity type.
func (r *Reader) SkipRemaining() {
	r.pos += r.remaining
	r.remaining = 0
}

func latin1ToString(b []byte) string {
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}
