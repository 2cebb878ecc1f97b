package cfb

import (
	"bytes"
	"fmt"
	"testing"
)

func TestRoundTripSmallStreams(t *testing.T) {
	c := New()
	if err := c.CreateStream("GameStg/Version", []byte{0x30, 0x04, 0x00, 0x00}, false); err != nil {
		t.Fatalf("CreateStream: %v", err)
	}
	if err := c.CreateStream("GameStg/MAC", bytes.Repeat([]byte{0xAB}, 16), false); err != nil {
		t.Fatalf("CreateStream: %v", err)
	}
	if err := c.CreateStream("TableInfo/TableName", []byte("hello"), false); err != nil {
		t.Fatalf("CreateStream: %v", err)
	}

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	c2, err := Open(buf.Bytes())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	for _, path := range []string{"GameStg/Version", "GameStg/MAC", "TableInfo/TableName"} {
		if !c2.Exists(path) {
			t.Fatalf("missing %s after round trip", path)
		}
		if !c2.IsStream(path) {
			t.Fatalf("%s should be a stream", path)
		}
	}

	got, err := c2.ReadStream("GameStg/Version")
	if err != nil {
		t.Fatalf("ReadStream: %v", err)
	}
	want := []byte{0x30, 0x04, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Fatalf("Version = %v, want %v", got, want)
	}

	got, err = c2.ReadStream("TableInfo/TableName")
	if err != nil {
		t.Fatalf("ReadStream: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("TableName = %q, want %q", got, "hello")
	}

	if c2.IsStream("GameStg") {
		t.Fatalf("GameStg should be a storage, not a stream")
	}
	if !c2.IsStorage("GameStg") {
		t.Fatalf("GameStg should be a storage")
	}
}

func TestRoundTripBigStream(t *testing.T) {
	c := New()
	big := make([]byte, 3*1024*1024+17) // exceeds mini-stream cutoff and spans many sectors
	for i := range big {
		big[i] = byte(i * 7)
	}
	if err := c.CreateStream("GameStg/Image0", big, false); err != nil {
		t.Fatalf("CreateStream: %v", err)
	}

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	c2, err := Open(buf.Bytes())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	got, err := c2.ReadStream("GameStg/Image0")
	if err != nil {
		t.Fatalf("ReadStream: %v", err)
	}
	if !bytes.Equal(got, big) {
		t.Fatalf("big stream round trip mismatch (len got=%d want=%d)", len(got), len(big))
	}
}

func TestManyStreamsForceDIFATOverflow(t *testing.T) {
	c := New()
	// Force more than 109 FAT sectors' worth of content (109*128 = 13952
	// sectors) so the writer must allocate DIFAT overflow sectors, and the
	// reader must follow them.
	const n = 500
	payload := make([]byte, 16384)
	for i := range payload {
		payload[i] = byte(i)
	}
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("GameStg/Image%d", i)
		if err := c.CreateStream(name, payload, false); err != nil {
			t.Fatalf("CreateStream(%s): %v", name, err)
		}
	}

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	c2, err := Open(buf.Bytes())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("GameStg/Image%d", i)
		got, err := c2.ReadStream(name)
		if err != nil {
			t.Fatalf("ReadStream(%s): %v", name, err)
		}
		if !bytes.Equal(got, payload) {
			t.Fatalf("%s mismatch", name)
		}
	}
}

func TestOverwriteRequiresFlag(t *testing.T) {
	c := New()
	if err := c.CreateStream("GameStg/Version", []byte{1, 2, 3, 4}, false); err != nil {
		t.Fatalf("CreateStream: %v", err)
	}
	if err := c.CreateStream("GameStg/Version", []byte{5, 6, 7, 8}, false); err != ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if err := c.CreateStream("GameStg/Version", []byte{5, 6, 7, 8}, true); err != nil {
		t.Fatalf("overwrite CreateStream: %v", err)
	}
	got, _ := c.ReadStream("GameStg/Version")
	if !bytes.Equal(got, []byte{5, 6, 7, 8}) {
		t.Fatalf("overwrite did not take effect: %v", got)
	}
}

func TestWalkOrderIsDeterministic(t *testing.T) {
	c := New()
	_ = c.CreateStream("TableInfo/Bravo", []byte("b"), false)
	_ = c.CreateStream("TableInfo/Alpha", []byte("a"), false)
	_ = c.CreateStream("TableInfo/Z", []byte("z"), false)

	entries := c.Walk()
	var names []string
	for _, e := range entries {
		names = append(names, e.Path)
	}
	// "Z" (shorter name) must sort before the 5-letter names, which then sort
	// alphabetically, per the CFB sibling-ordering rule.
	want := []string{"TableInfo", "TableInfo/Z", "TableInfo/Alpha", "TableInfo/Bravo"}
	if len(names) != len(want) {
		t.Fatalf("Walk() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Walk()[%d] = %q, want %q (full: %v)", i, names[i], want[i], names)
		}
	}
}

func TestCompactPreservesVersion4(t *testing.T) {
	c := New()
	c.Version = 4
	if err := c.CreateStream("GameStg/Version", []byte{0x30, 0x04, 0x00, 0x00}, false); err != nil {
		t.Fatalf("CreateStream: %v", err)
	}

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	c2, err := Open(buf.Bytes())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if c2.Version != 4 {
		t.Fatalf("Version = %d, want 4 (compact must not downgrade the source container's version)", c2.Version)
	}

	got, err := c2.ReadStream("GameStg/Version")
	if err != nil {
		t.Fatalf("ReadStream: %v", err)
	}
	if !bytes.Equal(got, []byte{0x30, 0x04, 0x00, 0x00}) {
		t.Fatalf("Version stream = %v, want round-tripped bytes", got)
	}
}

func TestOpenRejectsGarbage(t *testing.T) {
	if _, err := Open([]byte("not a compound file")); err != ErrInvalidContainer {
		t.Fatalf("expected ErrInvalidContainer, got %v", err)
	}
	if _, err := Open(nil); err != ErrInvalidContainer {
		t.Fatalf("expected ErrInvalidContainer, got %v", err)
	}
}
