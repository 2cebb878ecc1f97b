package vpx

import (
	"bytes"
	"testing"

	"github.com/vpinball/vpxcore/cfb"
)

func TestWriteReadVerifyRoundTrip(t *testing.T) {
	tableName := "Test Table"
	authorName := "Somebody"

	table := &Table{
		CustomInfoTags: []string{"Notes"},
		Info: &TableInfo{
			TableName:  &tableName,
			AuthorName: &authorName,
			Properties: map[string]string{"Notes": "a note"},
		},
		Version:  1072,
		GameData: newGameData(),
		GameItems: []*GameItem{
			{TypeID: ItemTypeTimer, Data: &Timer{X: 100, Y: 200}},
		},
		Collections: []*Collection{newCollection()},
	}
	table.Collections[0].Name = "All Timers"

	c, err := Write(table, nil)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	reopened, err := cfb.Open(buf.Bytes())
	if err != nil {
		t.Fatalf("cfb.Open: %v", err)
	}

	got, err := Read(reopened, nil)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Version != 1072 {
		t.Fatalf("version = %d, want 1072", got.Version)
	}
	if got.Info.TableName == nil || *got.Info.TableName != tableName {
		t.Fatalf("table name = %v, want %q", got.Info.TableName, tableName)
	}
	if len(got.GameItems) != 1 {
		t.Fatalf("game items = %d, want 1", len(got.GameItems))
	}
	if len(got.Collections) != 1 || got.Collections[0].Name != "All Timers" {
		t.Fatalf("collections = %+v", got.Collections)
	}

	result, err := Verify(reopened, nil)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !result.OK {
		t.Fatalf("expected Verify to pass, got %+v (cause %v)", result, result.Cause)
	}
}

func TestStreamingAccessorsMatchFullRead(t *testing.T) {
	tableName := "Streamed Table"
	table := &Table{
		CustomInfoTags: []string{"Notes"},
		Info: &TableInfo{
			TableName:  &tableName,
			Properties: map[string]string{"Notes": "a note"},
		},
		Version:  1072,
		GameData: newGameData(),
		Images:   []*ImageData{{Name: "tex1", Path: "tex1.png", Width: 4, Height: 4}},
		Sounds:   []*SoundData{{Name: "snd1", Path: "snd1.wav", Data: []byte{1, 2, 3, 4}}},
	}

	c, err := Write(table, nil)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	reopened, err := cfb.Open(buf.Bytes())
	if err != nil {
		t.Fatalf("cfb.Open: %v", err)
	}

	version, err := ReadVersionFrom(reopened)
	if err != nil {
		t.Fatalf("ReadVersionFrom: %v", err)
	}
	if version != 1072 {
		t.Fatalf("version = %d, want 1072", version)
	}

	info, err := ReadTableInfoFrom(reopened)
	if err != nil {
		t.Fatalf("ReadTableInfoFrom: %v", err)
	}
	if info.TableName == nil || *info.TableName != tableName {
		t.Fatalf("table name = %v, want %q", info.TableName, tableName)
	}
	if info.Properties["Notes"] != "a note" {
		t.Fatalf("properties = %+v", info.Properties)
	}

	images, err := ReadImagesFrom(reopened, nil)
	if err != nil {
		t.Fatalf("ReadImagesFrom: %v", err)
	}
	if len(images) != 1 || images[0].Name != "tex1" {
		t.Fatalf("images = %+v", images)
	}

	sounds, err := ReadSoundsFrom(reopened, nil)
	if err != nil {
		t.Fatalf("ReadSoundsFrom: %v", err)
	}
	if len(sounds) != 1 || sounds[0].Name != "snd1" {
		t.Fatalf("sounds = %+v", sounds)
	}
}

func TestVerifyDetectsTamperedGameData(t *testing.T) {
	table := &Table{
		Info:     &TableInfo{},
		Version:  1072,
		GameData: newGameData(),
	}
	c, err := Write(table, nil)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	tampered := newGameData()
	tampered.Code = "Sub Evil()\r\nEnd Sub"
	if err := c.CreateStream("GameStg/GameData", WriteGameData(tampered), true); err != nil {
		t.Fatalf("CreateStream: %v", err)
	}

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	reopened, err := cfb.Open(buf.Bytes())
	if err != nil {
		t.Fatalf("cfb.Open: %v", err)
	}

	result, err := Verify(reopened, nil)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if result.OK {
		t.Fatal("expected Verify to fail after GameData was tampered with post-MAC")
	}
}
