package vpx

import (
	"github.com/vpinball/vpxcore/biff"
	"github.com/vpinball/vpxcore/internal/vlog"
)

// TextBox. Grounded on original_source/src/vpx/gameitem/textbox.rs.
type TextBox struct {
	Shared
	Timing

	Text            string
	BackColor       uint32 // CLRB, packed 0xBBGGRR per VPX convention
	TextColor       uint32 // CLRF
	Font            FontDescriptor
	Alignment       int32 // ALGN
	IsTransparent   bool  // TRNS
	IsDMD           bool  // IDMD
	InternalScript  *string
}

func readTextBox(r *biff.Reader, log *vlog.Helper) (*TextBox, error) {
	t := &TextBox{}
	for {
		if r.PeekTag("FONT") {
			if err := r.NextNoLength("FONT"); err != nil {
				return nil, err
			}
			var err error
			t.Font, err = readFontDescriptor(r)
			if err != nil {
				return nil, err
			}
			continue
		}
		if err := r.Next(); err != nil {
			return nil, err
		}
		if r.IsEOF() {
			break
		}
		tag := r.Tag()
		if ok, err := t.Shared.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		if ok, err := t.Timing.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		var err error
		switch tag {
		case "NAME":
			t.Name, err = r.GetWideString()
		case "TEXT":
			t.Text, err = r.GetString()
		case "CLRB":
			t.BackColor, err = r.GetU32()
		case "CLRF":
			t.TextColor, err = r.GetU32()
		case "ALGN":
			t.Alignment, err = r.GetI32()
		case "TRNS":
			t.IsTransparent, err = r.GetBool()
		case "IDMD":
			t.IsDMD, err = r.GetBool()
		case "INSC":
			var v string
			v, err = r.GetString()
			t.InternalScript = &v
		case "VER1", "VER2":
			r.SkipRemaining()
		default:
			log.Warnf("textbox: unknown tag %q, skipping", tag)
			r.SkipRemaining()
		}
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

func writeTextBox(w *biff.Writer, t *TextBox) {
	w.WriteString("TEXT", t.Text)
	w.WriteU32("CLRB", t.BackColor)
	w.WriteU32("CLRF", t.TextColor)
	writeFontDescriptor(w, "FONT", t.Font)
	w.WriteI32("ALGN", t.Alignment)
	w.WriteBool("TRNS", t.IsTransparent)
	w.WriteBool("IDMD", t.IsDMD)
	if t.InternalScript != nil {
		w.WriteString("INSC", *t.InternalScript)
	}
	t.Timing.Write(w)
	t.Shared.Write(w)
	w.WriteWideString("NAME", t.Name)
}
