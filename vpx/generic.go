package vpx

import (
	"github.com/vpinball/vpxcore/biff"
	"github.com/vpinball/vpxcore/internal/vlog"
)

// Generic preserves any item whose type id isn't one of the 19 known
// variants: every tag's raw payload bytes other than NAME's are retained
// verbatim and replayed in their original relative order on write. NAME is
// decoded into Name and always written first, so a NAME record that did not
// lead the original stream moves to the front. Grounded directly on
// original_source/src/vpx/gameitem/generic.rs.
type Generic struct {
	Name   string
	Fields []GenericField
}

// GenericField is one raw (tag, payload) pair, payload excluding the tag.
type GenericField struct {
	Tag     string
	Payload []byte
}

func readGeneric(r *biff.Reader, log *vlog.Helper) (*Generic, error) {
	g := &Generic{}
	for {
		if err := r.Next(); err != nil {
			return nil, err
		}
		if r.IsEOF() {
			break
		}
		switch r.Tag() {
		case "NAME":
			v, err := r.GetWideString()
			if err != nil {
				return nil, err
			}
			g.Name = v
		default:
			data, err := r.GetRecordData(false)
			if err != nil {
				return nil, err
			}
			g.Fields = append(g.Fields, GenericField{Tag: r.Tag(), Payload: data})
		}
	}
	return g, nil
}

func writeGeneric(w *biff.Writer, g *Generic) {
	w.WriteWideString("NAME", g.Name)
	for _, f := range g.Fields {
		w.WriteTagged(f.Tag, f.Payload)
	}
}
