package vpx

import "testing"

func TestCollectionRoundTrip(t *testing.T) {
	c := newCollection()
	c.Name = "Drains"
	c.Members = []string{"Kicker1", "Kicker2"}
	c.FireEvents = true
	c.GroupElements = true
	c.IsLocked = true
	c.EditorLayer = 2
	c.EditorLayerName = "Layer 2"

	data := WriteCollection(c)
	got, err := ReadCollection(data, nil)
	if err != nil {
		t.Fatalf("ReadCollection: %v", err)
	}
	if got.Name != c.Name {
		t.Fatalf("name = %q, want %q", got.Name, c.Name)
	}
	if len(got.Members) != 2 || got.Members[0] != "Kicker1" || got.Members[1] != "Kicker2" {
		t.Fatalf("members = %v", got.Members)
	}
	if !got.FireEvents || got.StopSingleEvents || !got.GroupElements {
		t.Fatalf("flags = %+v", got)
	}
	if !got.IsLocked || got.EditorLayer != 2 || got.EditorLayerName != "Layer 2" {
		t.Fatalf("editor fields = %+v", got)
	}
	// Default survives when the write path never touched it.
	if !got.EditorLayerVisibility {
		t.Fatal("expected EditorLayerVisibility default true to survive")
	}
}
