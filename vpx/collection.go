package vpx

import (
	"github.com/vpinball/vpxcore/biff"
	"github.com/vpinball/vpxcore/internal/vlog"
)

// Collection is a named, ordered group of game-item names (spec §4.4). The
// shared NAME/LOCK/LAYR/LANR/LVIS tags are grounded on
// original_source/src/vpx/gameitem/collection.rs; that file's struct has no
// member list or fire/stop/group flags, so ITEM/FEVT/SSNG/CGEL are invented
// by analogy to the repeated-record convention DragPoint already uses for
// ordered child entries (see DESIGN.md).
type Collection struct {
	Name                  string
	Members               []string
	FireEvents            bool
	StopSingleEvents      bool
	GroupElements         bool
	IsLocked              bool
	EditorLayer           uint32
	EditorLayerName       string
	EditorLayerVisibility bool
}

func newCollection() *Collection {
	return &Collection{EditorLayerVisibility: true}
}

// ReadCollection decodes a GameStg/CollectionN stream.
func ReadCollection(data []byte, log *vlog.Helper) (*Collection, error) {
	c := newCollection()
	r := biff.NewReader(data)
	for {
		if err := r.Next(); err != nil {
			return nil, &FormatError{Path: "Collection", Err: err}
		}
		if r.IsEOF() {
			break
		}
		var err error
		switch r.Tag() {
		case "NAME":
			c.Name, err = r.GetWideString()
		case "ITEM":
			var v string
			v, err = r.GetWideString()
			c.Members = append(c.Members, v)
		case "FEVT":
			c.FireEvents, err = r.GetBool()
		case "SSNG":
			c.StopSingleEvents, err = r.GetBool()
		case "CGEL":
			c.GroupElements, err = r.GetBool()
		case "LOCK":
			c.IsLocked, err = r.GetBool()
		case "LAYR":
			c.EditorLayer, err = r.GetU32()
		case "LANR":
			c.EditorLayerName, err = r.GetString()
		case "LVIS":
			c.EditorLayerVisibility, err = r.GetBool()
		default:
			log.Warnf("collection: unknown tag %q, skipping", r.Tag())
			r.SkipRemaining()
		}
		if err != nil {
			return nil, &FormatError{Path: "Collection", Err: err}
		}
	}
	return c, nil
}

// WriteCollection encodes a Collection to its on-disk form.
func WriteCollection(c *Collection) []byte {
	w := biff.NewWriter()
	w.WriteWideString("NAME", c.Name)
	for _, member := range c.Members {
		w.WriteWideString("ITEM", member)
	}
	w.WriteBool("FEVT", c.FireEvents)
	w.WriteBool("SSNG", c.StopSingleEvents)
	w.WriteBool("CGEL", c.GroupElements)
	w.WriteBool("LOCK", c.IsLocked)
	w.WriteU32("LAYR", c.EditorLayer)
	w.WriteString("LANR", c.EditorLayerName)
	w.WriteBool("LVIS", c.EditorLayerVisibility)
	w.WriteMarkerTag(biff.EndTag)
	return w.Bytes()
}
