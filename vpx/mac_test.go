package vpx

import "testing"

func TestMACRoundTrip(t *testing.T) {
	var want [MACSize]byte
	for i := range want {
		want[i] = byte(i * 7)
	}
	got, err := ReadMAC(WriteMAC(want))
	if err != nil {
		t.Fatalf("ReadMAC: %v", err)
	}
	if got != want {
		t.Fatalf("mac = %x, want %x", got, want)
	}
}

func TestMACWrongLength(t *testing.T) {
	if _, err := ReadMAC(make([]byte, 10)); err == nil {
		t.Fatal("expected error for wrong-length MAC stream")
	}
}
