package vpx

import (
	"testing"

	"github.com/vpinball/vpxcore/biff"
)

func TestGameDataRoundTrip(t *testing.T) {
	g := newGameData()
	g.Left = 10
	g.Top = 20
	g.Code = "Sub Foo()\r\nMsgBox \"hi\"\r\nEnd Sub"
	g.GameItemsSize = 3
	g.SoundsSize = 1
	g.ImagesSize = 2
	g.FontsSize = 0
	g.CollectionsSize = 1

	data := WriteGameData(g)
	got, err := ReadGameData(data, nil)
	if err != nil {
		t.Fatalf("ReadGameData: %v", err)
	}
	if got.Left != 10 || got.Top != 20 {
		t.Fatalf("bounds = %v/%v, want 10/20", got.Left, got.Top)
	}
	if got.Code != g.Code {
		t.Fatalf("code = %q, want %q", got.Code, g.Code)
	}
	if got.GameItemsSize != 3 || got.SoundsSize != 1 || got.ImagesSize != 2 || got.CollectionsSize != 1 {
		t.Fatalf("counts = %+v", got)
	}
	// Defaults carried from newGameData for untouched fields.
	if got.Gravity != g.Gravity {
		t.Fatalf("gravity = %v, want %v", got.Gravity, g.Gravity)
	}
}

func TestGameDataUnknownTagSkipped(t *testing.T) {
	g := newGameData()
	g.Left = 10
	g.CollectionsSize = 4
	data := WriteGameData(g)
	// Splice an unknown record in front of the terminal 8-byte ENDB record.
	unknown := biff.NewWriter()
	unknown.WriteU32("ZZZZ", 7)
	end := len(data) - 8
	spliced := append(append(append([]byte{}, data[:end]...), unknown.Bytes()...), data[end:]...)
	got, err := ReadGameData(spliced, nil)
	if err != nil {
		t.Fatalf("ReadGameData: %v", err)
	}
	if got.Left != 10 || got.CollectionsSize != 4 {
		t.Fatalf("left/collections = %v/%d, want 10/4", got.Left, got.CollectionsSize)
	}
}
