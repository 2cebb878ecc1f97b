package biff

import (
	"bytes"
	"testing"
)

func TestWriteReadRoundTripPrimitives(t *testing.T) {
	w := NewWriter()
	w.WriteBool("HTEV", true)
	w.WriteF32("THRS", 1.5)
	w.WriteI32("TMIN", -7)
	w.WriteString("IMGF", "brick")
	w.WriteWideString("NAME", "Wall #1")
	w.WriteMarkerTag(EndTag)

	r := NewReader(w.Bytes())

	if err := r.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if r.Tag() != "HTEV" {
		t.Fatalf("tag = %q, want HTEV", r.Tag())
	}
	b, err := r.GetBool()
	if err != nil || !b {
		t.Fatalf("GetBool = %v, %v", b, err)
	}

	if err := r.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	f, err := r.GetF32()
	if err != nil || f != 1.5 {
		t.Fatalf("GetF32 = %v, %v", f, err)
	}

	if err := r.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	i, err := r.GetI32()
	if err != nil || i != -7 {
		t.Fatalf("GetI32 = %v, %v", i, err)
	}

	if err := r.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	s, err := r.GetString()
	if err != nil || s != "brick" {
		t.Fatalf("GetString = %q, %v", s, err)
	}

	if err := r.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	ws, err := r.GetWideString()
	if err != nil || ws != "Wall #1" {
		t.Fatalf("GetWideString = %q, %v", ws, err)
	}

	if err := r.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if !r.IsEOF() {
		t.Fatalf("expected EOF at ENDB")
	}
}

func TestCodeTagSpecialFraming(t *testing.T) {
	w := NewWriter()
	w.WriteCodeTag("Sub Foo()\r\nEnd Sub")
	w.WriteMarkerTag(EndTag)

	r := NewReader(w.Bytes())
	if err := r.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if r.Tag() != "CODE" {
		t.Fatalf("tag = %q, want CODE", r.Tag())
	}
	// The outer length covers only the tag (4 bytes), so it can't bound the
	// code length+bytes that follow; Next widens remaining to the rest of the
	// reader's range for CODE so the reads below aren't rejected by need().
	if r.Remaining() != r.end-r.pos {
		t.Fatalf("Remaining() = %d, want %d (CODE widens to the rest of the buffer)", r.Remaining(), r.end-r.pos)
	}
	n, err := r.GetU32()
	if err != nil {
		t.Fatalf("GetU32 (code length): %v", err)
	}
	codeBytes, err := r.GetBytes(int(n))
	if err != nil {
		t.Fatalf("GetBytes: %v", err)
	}
	if string(codeBytes) != "Sub Foo()\r\nEnd Sub" {
		t.Fatalf("code = %q", codeBytes)
	}

	if err := r.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if !r.IsEOF() {
		t.Fatalf("expected EOF after CODE")
	}
}

func TestGetRecordDataIncludeTag(t *testing.T) {
	w := NewWriter()
	w.WriteString("XYZZ", "unknown")
	r := NewReader(w.Bytes())
	if err := r.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	data, err := r.GetRecordData(true)
	if err != nil {
		t.Fatalf("GetRecordData: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("XYZZ")) {
		t.Fatalf("GetRecordData should prefix the tag, got %v", data)
	}
}

func TestDataUntilStopTag(t *testing.T) {
	raw := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	w := NewWriter()
	w.WriteRaw(raw)
	w.WriteMarkerTag("ALTV")

	r := NewReader(w.Bytes())
	got, err := r.DataUntil("ALTV")
	if err != nil {
		t.Fatalf("DataUntil: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Fatalf("DataUntil = %v, want %v", got, raw)
	}
	if err := r.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if r.Tag() != "ALTV" {
		t.Fatalf("tag after DataUntil = %q, want ALTV", r.Tag())
	}
}

func TestChildReaderAndSkipEndTag(t *testing.T) {
	inner := NewWriter()
	inner.WriteF32("POSX", 1.0)
	inner.WriteF32("POSY", 2.0)
	inner.WriteMarkerTag(EndTag)

	outer := NewWriter()
	outer.WriteTagged("DPNT", inner.Bytes())
	outer.WriteMarkerTag(EndTag)

	r := NewReader(outer.Bytes())
	if err := r.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if r.Tag() != "DPNT" {
		t.Fatalf("tag = %q, want DPNT", r.Tag())
	}

	child := r.ChildReader()
	var x, y float32
	for {
		if err := child.Next(); err != nil {
			t.Fatalf("child Next: %v", err)
		}
		if child.IsEOF() {
			break
		}
		switch child.Tag() {
		case "POSX":
			x, _ = child.GetF32()
		case "POSY":
			y, _ = child.GetF32()
		}
	}
	r.SkipEndTag(child.Pos())
	if x != 1.0 || y != 2.0 {
		t.Fatalf("x=%v y=%v, want 1,2", x, y)
	}

	if err := r.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if !r.IsEOF() {
		t.Fatalf("expected EOF after DPNT, tag=%q", r.Tag())
	}
}

func TestShortStringRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteShortString("NAME", "Tahoma")
	r := NewReader(w.Bytes())
	if err := r.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	s, err := r.GetShortString()
	if err != nil || s != "Tahoma" {
		t.Fatalf("GetShortString = %q, %v", s, err)
	}
}

func TestMalformedRecordRejected(t *testing.T) {
	r := NewReader([]byte{0xFF, 0xFF, 0xFF, 0x7F, 'A', 'B', 'C', 'D'})
	if err := r.Next(); err != ErrMalformedRecord {
		t.Fatalf("Next() = %v, want ErrMalformedRecord", err)
	}
}
