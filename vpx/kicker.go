package vpx

import (
	"github.com/vpinball/vpxcore/biff"
	"github.com/vpinball/vpxcore/internal/vlog"
)

// Kicker. Grounded on original_source/src/vpx/gameitem/kicker.rs.
type Kicker struct {
	Shared
	Timing

	X, Y       float32
	Radius     float32
	Material   string
	Surface    string
	IsEnabled  bool
	KickerType int32
	Scatter    float32
	HitHeight  float32
	Orientation float32
	FallThrough bool
	LegacyMode  bool
}

func newKicker() *Kicker {
	return &Kicker{Radius: 25.0, IsEnabled: true, HitHeight: 40.0}
}

func readKicker(r *biff.Reader, log *vlog.Helper) (*Kicker, error) {
	k := newKicker()
	for {
		if err := r.Next(); err != nil {
			return nil, err
		}
		if r.IsEOF() {
			break
		}
		tag := r.Tag()
		if ok, err := k.Shared.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		if ok, err := k.Timing.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		var err error
		switch tag {
		case "NAME":
			k.Name, err = r.GetWideString()
		case "VCEN":
			k.X, k.Y, err = readCenterPoint(r)
		case "RADI":
			k.Radius, err = r.GetF32()
		case "MATR":
			k.Material, err = r.GetString()
		case "SURF":
			k.Surface, err = r.GetString()
		case "EBLD":
			k.IsEnabled, err = r.GetBool()
		case "TYPE":
			k.KickerType, err = r.GetI32()
		case "KSCT":
			k.Scatter, err = r.GetF32()
		case "HHIT":
			k.HitHeight, err = r.GetF32()
		case "KORI":
			k.Orientation, err = r.GetF32()
		case "FATH":
			k.FallThrough, err = r.GetBool()
		case "LEMO":
			k.LegacyMode, err = r.GetBool()
		default:
			log.Warnf("kicker: unknown tag %q, skipping", tag)
			r.SkipRemaining()
		}
		if err != nil {
			return nil, err
		}
	}
	return k, nil
}

func writeKicker(w *biff.Writer, k *Kicker) {
	writeCenterPoint(w, k.X, k.Y)
	w.WriteF32("RADI", k.Radius)
	w.WriteString("MATR", k.Material)
	w.WriteString("SURF", k.Surface)
	w.WriteBool("EBLD", k.IsEnabled)
	w.WriteI32("TYPE", k.KickerType)
	w.WriteF32("KSCT", k.Scatter)
	w.WriteF32("HHIT", k.HitHeight)
	w.WriteF32("KORI", k.Orientation)
	w.WriteBool("FATH", k.FallThrough)
	w.WriteBool("LEMO", k.LegacyMode)
	k.Timing.Write(w)
	k.Shared.Write(w)
	w.WriteWideString("NAME", k.Name)
}
