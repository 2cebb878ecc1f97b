package biff

import (
	"encoding/binary"
	"math"

	"golang.org/x/text/encoding/unicode"
)

// Writer emits tagged records into a growing byte buffer. Every WriteTagged*
// call writes a fixed-up 4-byte length prefix covering the tag plus payload;
// the CODE special case is handled by WriteCodeTag, which writes an outer
// length of 4 covering only the tag, per the format's single most
// error-prone framing rule.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated record stream.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// WriteTagged writes a standard [length][tag][payload] record, with length
// covering tag+payload (4 + len(payload)).
func (w *Writer) WriteTagged(tag string, payload []byte) {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(4+len(payload)))
	w.buf = append(w.buf, lenBuf[:]...)
	w.buf = append(w.buf, []byte(tag)...)
	w.buf = append(w.buf, payload...)
}

// WriteTaggedWithoutSize appends a tag and payload with no length prefix at
// all, for consumers (FONT) whose framing is supplied externally by the
// payload's own self-delimiting shape rather than an outer length field.
func (w *Writer) WriteTaggedWithoutSize(tag string, payload []byte) {
	w.buf = append(w.buf, []byte(tag)...)
	w.buf = append(w.buf, payload...)
}

// WriteMarkerTag writes a zero-payload record such as ENDB.
func (w *Writer) WriteMarkerTag(tag string) {
	w.WriteTagged(tag, nil)
}

// WriteU8 appends a tagged 1-byte record.
func (w *Writer) WriteU8(tag string, v uint8) {
	w.WriteTagged(tag, []byte{v})
}

// WriteU16 appends a tagged little-endian 2-byte record.
func (w *Writer) WriteU16(tag string, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.WriteTagged(tag, b[:])
}

// WriteU32 appends a tagged little-endian 4-byte record.
func (w *Writer) WriteU32(tag string, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.WriteTagged(tag, b[:])
}

// WriteI32 appends a tagged little-endian signed 4-byte record.
func (w *Writer) WriteI32(tag string, v int32) {
	w.WriteU32(tag, uint32(v))
}

// WriteF32 appends a tagged little-endian IEEE-754 4-byte record.
func (w *Writer) WriteF32(tag string, v float32) {
	w.WriteU32(tag, math.Float32bits(v))
}

// WriteBool appends a tagged 4-byte record encoding a bool as 0/1, matching
// the on-disk BOOL convention every other reader/writer in this package
// assumes.
func (w *Writer) WriteBool(tag string, v bool) {
	if v {
		w.WriteU32(tag, 1)
	} else {
		w.WriteU32(tag, 0)
	}
}

// WriteString appends a tagged u32-length-prefixed ASCII/Latin-1 string.
func (w *Writer) WriteString(tag, s string) {
	w.WriteTagged(tag, encodeLatin1WithLen(s))
}

// WriteShortString appends a tagged single-byte-length-prefixed string, used
// by the embedded font descriptor.
func (w *Writer) WriteShortString(tag, s string) {
	b := []byte(s)
	if len(b) > 255 {
		b = b[:255]
	}
	payload := make([]byte, 0, 1+len(b))
	payload = append(payload, byte(len(b)))
	payload = append(payload, b...)
	w.WriteTagged(tag, payload)
}

var utf16Encoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()

// WriteWideString appends a tagged u32-length-in-bytes-prefixed UTF-16LE
// string.
func (w *Writer) WriteWideString(tag, s string) {
	encoded, err := utf16Encoder.Bytes([]byte(s))
	if err != nil {
		// Every input here is produced internally from decoded VPX strings;
		// the encoder only fails on malformed UTF-8, which never occurs.
		encoded = nil
	}
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(encoded)))
	payload := append(lenBuf[:], encoded...)
	w.WriteTagged(tag, payload)
}

// WriteCodeTag writes a CODE record using the format's special framing: the
// outer record's declared length covers only the 4-byte tag (always 4), and
// the actual script length+bytes are appended immediately after, outside the
// length-counted region.
func (w *Writer) WriteCodeTag(code string) {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], 4)
	w.buf = append(w.buf, lenBuf[:]...)
	w.buf = append(w.buf, []byte("CODE")...)
	w.buf = append(w.buf, encodeLatin1WithLen(code)...)
}

// WriteRaw appends bytes verbatim, with no framing. Used by the generic
// game-item codec to replay an unknown tag's captured raw record bytes, and
// by embedded sub-streams (e.g. FONT descriptors) that carry their own
// self-delimiting shape.
func (w *Writer) WriteRaw(b []byte) {
	w.buf = append(w.buf, b...)
}

func encodeLatin1WithLen(s string) []byte {
	runes := []rune(s)
	b := make([]byte, len(runes))
	for i, r := range runes {
		if r > 0xFF {
			r = '?'
		}
		b[i] = byte(r)
	}
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(b)))
	return append(lenBuf[:], b...)
}
