package vpx

import (
	"bytes"
	"testing"

	"github.com/vpinball/vpxcore/cfb"
)

func buildMinimalContainer(t *testing.T) *cfb.Container {
	t.Helper()
	c := cfb.New()
	if err := c.CreateStorage("GameStg"); err != nil {
		t.Fatalf("CreateStorage GameStg: %v", err)
	}
	if err := c.CreateStorage("TableInfo"); err != nil {
		t.Fatalf("CreateStorage TableInfo: %v", err)
	}
	if err := c.CreateStream("GameStg/Version", WriteVersion(1072), true); err != nil {
		t.Fatalf("CreateStream Version: %v", err)
	}
	if err := c.CreateStream("GameStg/CustomInfoTags", WriteCustomInfoTags(&CustomInfoTags{}), true); err != nil {
		t.Fatalf("CreateStream CustomInfoTags: %v", err)
	}
	gd := newGameData()
	if err := c.CreateStream("GameStg/GameData", WriteGameData(gd), true); err != nil {
		t.Fatalf("CreateStream GameData: %v", err)
	}
	return c
}

// reopen serializes c and reparses it, so ComputeMAC runs over a container
// that has been through WriteTo and Open, as one read from disk would be.
func reopen(t *testing.T, c *cfb.Container) *cfb.Container {
	t.Helper()
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	reopened, err := cfb.Open(buf.Bytes())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return reopened
}

func TestComputeMACIsDeterministic(t *testing.T) {
	c := reopen(t, buildMinimalContainer(t))
	mac1, err := ComputeMAC(c, nil, nil)
	if err != nil {
		t.Fatalf("ComputeMAC: %v", err)
	}
	mac2, err := ComputeMAC(c, nil, nil)
	if err != nil {
		t.Fatalf("ComputeMAC: %v", err)
	}
	if mac1 != mac2 {
		t.Fatalf("MAC not deterministic: %x vs %x", mac1, mac2)
	}
}

func TestComputeMACIgnoresSaveDateAndRev(t *testing.T) {
	base := buildMinimalContainer(t)
	macBefore, err := ComputeMAC(reopen(t, base), nil, nil)
	if err != nil {
		t.Fatalf("ComputeMAC: %v", err)
	}

	withSaveInfo := buildMinimalContainer(t)
	saveDate := encodeTableInfoString("2026-07-31")
	if err := withSaveInfo.CreateStream("TableInfo/TableSaveDate", saveDate, true); err != nil {
		t.Fatalf("CreateStream TableSaveDate: %v", err)
	}
	saveRev := encodeTableInfoString("3")
	if err := withSaveInfo.CreateStream("TableInfo/TableSaveRev", saveRev, true); err != nil {
		t.Fatalf("CreateStream TableSaveRev: %v", err)
	}
	macAfter, err := ComputeMAC(reopen(t, withSaveInfo), nil, nil)
	if err != nil {
		t.Fatalf("ComputeMAC: %v", err)
	}
	if macBefore != macAfter {
		t.Fatalf("MAC changed when only TableSaveDate/TableSaveRev were added: %x vs %x", macBefore, macAfter)
	}
}

func TestComputeMACChangesWithGameData(t *testing.T) {
	c1 := buildMinimalContainer(t)
	mac1, err := ComputeMAC(reopen(t, c1), nil, nil)
	if err != nil {
		t.Fatalf("ComputeMAC: %v", err)
	}

	c2 := cfb.New()
	if err := c2.CreateStorage("GameStg"); err != nil {
		t.Fatalf("CreateStorage: %v", err)
	}
	if err := c2.CreateStorage("TableInfo"); err != nil {
		t.Fatalf("CreateStorage: %v", err)
	}
	if err := c2.CreateStream("GameStg/Version", WriteVersion(1072), true); err != nil {
		t.Fatalf("CreateStream: %v", err)
	}
	if err := c2.CreateStream("GameStg/CustomInfoTags", WriteCustomInfoTags(&CustomInfoTags{}), true); err != nil {
		t.Fatalf("CreateStream: %v", err)
	}
	gd := newGameData()
	gd.Code = "Sub Foo()\r\nEnd Sub"
	if err := c2.CreateStream("GameStg/GameData", WriteGameData(gd), true); err != nil {
		t.Fatalf("CreateStream: %v", err)
	}
	mac2, err := ComputeMAC(reopen(t, c2), nil, nil)
	if err != nil {
		t.Fatalf("ComputeMAC: %v", err)
	}
	if mac1 == mac2 {
		t.Fatal("expected MAC to change when GameData's script changes")
	}
}
