package vpx

import "testing"

func strp(s string) *string { return &s }

func TestTableInfoRoundTrip(t *testing.T) {
	ti := &TableInfo{
		TableName:  strp("Test Table"),
		AuthorName: strp("Somebody"),
		Screenshot: []byte{0xDE, 0xAD, 0xBE, 0xEF},
		Properties: map[string]string{"Notes": "a custom note"},
	}
	customNames := []string{"Notes"}

	streams := WriteTableInfo(ti, customNames)
	got, err := ReadTableInfo(streams, customNames)
	if err != nil {
		t.Fatalf("ReadTableInfo: %v", err)
	}
	if got.TableName == nil || *got.TableName != "Test Table" {
		t.Fatalf("TableName = %v, want Test Table", got.TableName)
	}
	if got.AuthorName == nil || *got.AuthorName != "Somebody" {
		t.Fatalf("AuthorName = %v, want Somebody", got.AuthorName)
	}
	if got.ReleaseDate != nil {
		t.Fatalf("ReleaseDate = %v, want nil (absent field)", got.ReleaseDate)
	}
	if string(got.Screenshot) != string(ti.Screenshot) {
		t.Fatalf("Screenshot = %v, want %v", got.Screenshot, ti.Screenshot)
	}
	if got.Properties["Notes"] != "a custom note" {
		t.Fatalf("Properties[Notes] = %q, want %q", got.Properties["Notes"], "a custom note")
	}
}

func TestTableInfoAbsentFieldsProduceNoStream(t *testing.T) {
	ti := &TableInfo{TableName: strp("Only Name")}
	streams := WriteTableInfo(ti, nil)
	if _, ok := streams["AuthorName"]; ok {
		t.Fatal("unexpected AuthorName stream for nil field")
	}
	if _, ok := streams["TableName"]; !ok {
		t.Fatal("expected TableName stream")
	}
}
