package rawbitmap

import (
	"bytes"
	"math/rand"
	"testing"
)

func roundTrip(t *testing.T, raw []byte) {
	t.Helper()
	blocked, err := Compress(raw)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	got, err := Decompress(blocked)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Fatalf("round trip mismatch: len got=%d want=%d", len(got), len(raw))
	}
}

func TestAllZeros(t *testing.T) {
	roundTrip(t, make([]byte, 64*64*4))
}

func TestAllOnes(t *testing.T) {
	raw := make([]byte, 32*32*4)
	for i := range raw {
		raw[i] = 0xFF
	}
	roundTrip(t, raw)
}

func TestAlternating(t *testing.T) {
	raw := make([]byte, 10000)
	for i := range raw {
		if i%2 == 0 {
			raw[i] = 0x00
		} else {
			raw[i] = 0xFF
		}
	}
	roundTrip(t, raw)
}

func TestRandomUnderOneMiB(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	raw := make([]byte, 900*1024)
	rng.Read(raw)
	roundTrip(t, raw)
}

func TestLargePayloadTriggersWideCodes(t *testing.T) {
	// >200,000 bytes of varied content forces the LZW code width past 9 bits,
	// exercising the 10/11/12-bit code-width transitions.
	raw := make([]byte, 250000)
	rng := rand.New(rand.NewSource(2))
	for i := range raw {
		raw[i] = byte(rng.Intn(256))
	}
	roundTrip(t, raw)
}

func TestDeblockifyRejectsTruncatedStream(t *testing.T) {
	if _, err := Decompress([]byte{5, 1, 2, 3}); err != ErrTruncated {
		t.Fatalf("Decompress = %v, want ErrTruncated", err)
	}
}

func TestBlockifySplitsAtMaxBlockSize(t *testing.T) {
	coded := make([]byte, maxBlockSize*2+10)
	for i := range coded {
		coded[i] = byte(i)
	}
	blocked := blockify(coded)
	back, err := deblockify(blocked)
	if err != nil {
		t.Fatalf("deblockify: %v", err)
	}
	if !bytes.Equal(back, coded) {
		t.Fatalf("deblockify mismatch")
	}
	if blocked[0] != maxBlockSize {
		t.Fatalf("first block length = %d, want %d", blocked[0], maxBlockSize)
	}
}
