package vpx

import (
	"github.com/vpinball/vpxcore/biff"
	"github.com/vpinball/vpxcore/internal/vlog"
)

// Decal. Grounded on original_source/src/vpx/gameitem/decal.rs.
type Decal struct {
	Shared

	X, Y        float32
	Width       float32
	Height      float32
	Rotation    float32
	Material    string
	Image       string
	Text        string
	Font        FontDescriptor
	Color       uint32
	DecalType   int32
	IsVisible   bool
	SurfaceMode int32
}

func newDecal() *Decal {
	return &Decal{Width: 100.0, Height: 100.0, IsVisible: true}
}

func readDecal(r *biff.Reader, log *vlog.Helper) (*Decal, error) {
	d := newDecal()
	for {
		if r.PeekTag("FONT") {
			if err := r.NextNoLength("FONT"); err != nil {
				return nil, err
			}
			var err error
			d.Font, err = readFontDescriptor(r)
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
		if ok, err := d.Shared.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		var err error
		switch tag {
		case "NAME":
			d.Name, err = r.GetWideString()
		case "VCEN":
			d.X, d.Y, err = readCenterPoint(r)
		case "WDTH":
			d.Width, err = r.GetF32()
		case "HIGH":
			d.Height, err = r.GetF32()
		case "ROTA":
			d.Rotation, err = r.GetF32()
		case "MATR":
			d.Material, err = r.GetString()
		case "IMAG":
			d.Image, err = r.GetString()
		case "TEXT":
			d.Text, err = r.GetString()
		case "COLR":
			d.Color, err = r.GetU32()
		case "TYPE":
			d.DecalType, err = r.GetI32()
		case "VSBL":
			d.IsVisible, err = r.GetBool()
		case "SURM":
			d.SurfaceMode, err = r.GetI32()
		default:
			log.Warnf("decal: unknown tag %q, skipping", tag)
			r.SkipRemaining()
		}
		if err != nil {
			return nil, err
		}
	}
	return d, nil
}

func writeDecal(w *biff.Writer, d *Decal) {
	writeCenterPoint(w, d.X, d.Y)
	w.WriteF32("WDTH", d.Width)
	w.WriteF32("HIGH", d.Height)
	w.WriteF32("ROTA", d.Rotation)
	w.WriteString("MATR", d.Material)
	w.WriteString("IMAG", d.Image)
	w.WriteString("TEXT", d.Text)
	writeFontDescriptor(w, "FONT", d.Font)
	w.WriteU32("COLR", d.Color)
	w.WriteI32("TYPE", d.DecalType)
	w.WriteBool("VSBL", d.IsVisible)
	w.WriteI32("SURM", d.SurfaceMode)
	d.Shared.Write(w)
	w.WriteWideString("NAME", d.Name)
}
