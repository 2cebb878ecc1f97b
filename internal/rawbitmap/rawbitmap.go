// Package rawbitmap implements the blockified LZW codec used to compress the
// raw (non-JPEG) pixel payload carried by an ImageData's BITS record.
//
// The wire shape is the GIF convention: LZW codes (LSB-first bit packing,
// variable 9-12 bit code width, CLEAR=256/EOI=257, literal width 8) are
// packed into sub-blocks of at most 254 data bytes, each sub-block prefixed
// by its own 1-byte length. Unlike plain GIF, there is no terminating
// zero-length block: the BITS record carries no self-contained length, so
// the real end-of-data boundary is wherever the surrounding BIFF stream's
// scan-to-next-tag framing says it is (biff.Reader.DataUntil), not a
// sentinel byte inside the blockified payload itself. Stdlib compress/lzw
// implements the code stream itself; the sub-block framing around it is
// hand-rolled, as spec §9 explicitly allows a conformant substitute for the
// reference codec and no pack library exposes LZW with this exact GIF-style
// block framing.
package rawbitmap

import (
	"bytes"
	"compress/lzw"
	"errors"
	"io"
)

// maxBlockSize is the largest sub-block payload the format allows.
const maxBlockSize = 254

// ErrTruncated is returned when a sub-block's length byte declares more data
// than remains in the blockified stream.
var ErrTruncated = errors.New("rawbitmap: truncated block stream")

// Compress LZW-compresses raw into the GIF-style blockified wire format.
func Compress(raw []byte) ([]byte, error) {
	var coded bytes.Buffer
	wr := lzw.NewWriter(&coded, lzw.LSB, 8)
	if _, err := wr.Write(raw); err != nil {
		wr.Close()
		return nil, err
	}
	if err := wr.Close(); err != nil {
		return nil, err
	}
	return blockify(coded.Bytes()), nil
}

// Decompress reverses Compress: deblockifies the sub-block stream and runs
// it through the LZW decoder to recover the raw pixel bytes.
func Decompress(blocked []byte) ([]byte, error) {
	coded, err := deblockify(blocked)
	if err != nil {
		return nil, err
	}
	rd := lzw.NewReader(bytes.NewReader(coded), lzw.LSB, 8)
	defer rd.Close()
	out, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// blockify splits coded into <=254-byte chunks, each prefixed by a 1-byte
// length. No terminating zero-length block is emitted (spec §4.5): the
// record's own BITS-to-next-tag framing marks the end of the data.
func blockify(coded []byte) []byte {
	out := make([]byte, 0, len(coded)+len(coded)/maxBlockSize+1)
	for len(coded) > 0 {
		n := len(coded)
		if n > maxBlockSize {
			n = maxBlockSize
		}
		out = append(out, byte(n))
		out = append(out, coded[:n]...)
		coded = coded[n:]
	}
	return out
}

// deblockify reverses blockify, consuming the whole span it's given. There is
// no terminator byte to stop at; a length byte of 0 mid-stream would be a
// legitimate (if useless) empty block, not end-of-data.
func deblockify(blocked []byte) ([]byte, error) {
	var out []byte
	pos := 0
	for pos < len(blocked) {
		n := int(blocked[pos])
		pos++
		if pos+n > len(blocked) {
			return nil, ErrTruncated
		}
		out = append(out, blocked[pos:pos+n]...)
		pos += n
	}
	return out, nil
}
