package vpx

import "testing"

func TestVersionRoundTrip(t *testing.T) {
	v, err := ReadVersion(WriteVersion(1072))
	if err != nil {
		t.Fatalf("ReadVersion: %v", err)
	}
	if v != 1072 {
		t.Fatalf("version = %d, want 1072", v)
	}
}

func TestVersionShortStream(t *testing.T) {
	if _, err := ReadVersion([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for short stream")
	}
}
