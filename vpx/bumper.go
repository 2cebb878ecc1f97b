package vpx

import (
	"github.com/vpinball/vpxcore/biff"
	"github.com/vpinball/vpxcore/internal/vlog"
)

// Bumper. Grounded on original_source/src/vpx/gameitem/bumper.rs.
type Bumper struct {
	Shared
	Timing

	Radius         float32
	Force          float32
	Threshold      float32
	Scatter        float32
	HeightScale    float32
	Orientation    float32
	X, Y           float32
	Surface        string
	CapMaterial    string
	RingMaterial   string
	SkirtMaterial  string
	BaseMaterial   string
	HasHitEvent    bool
	IsCapVisible   bool
	IsRingVisible  bool
	IsSkirtVisible bool
	IsBaseVisible  bool
	IsCollidable   bool
	RingSpeed      float32
	RingDropOffset float32
	IsReflectionEnabled *bool
}

func newBumper() *Bumper {
	return &Bumper{Radius: 45.0, Force: 15.0, Threshold: 1.0, HeightScale: 90.0, IsCollidable: true,
		IsCapVisible: true, IsRingVisible: true, IsSkirtVisible: true, IsBaseVisible: true}
}

func readBumper(r *biff.Reader, log *vlog.Helper) (*Bumper, error) {
	b := newBumper()
	for {
		if err := r.Next(); err != nil {
			return nil, err
		}
		if r.IsEOF() {
			break
		}
		tag := r.Tag()
		if ok, err := b.Shared.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		if ok, err := b.Timing.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		var err error
		switch tag {
		case "NAME":
			b.Name, err = r.GetWideString()
		case "RADI":
			b.Radius, err = r.GetF32()
		case "FORC":
			b.Force, err = r.GetF32()
		case "THRS":
			b.Threshold, err = r.GetF32()
		case "BSCT":
			b.Scatter, err = r.GetF32()
		case "HISC":
			b.HeightScale, err = r.GetF32()
		case "ORIN":
			b.Orientation, err = r.GetF32()
		case "VCEN":
			b.X, b.Y, err = readCenterPoint(r)
		case "SURF":
			b.Surface, err = r.GetString()
		case "MATR":
			b.CapMaterial, err = r.GetString()
		case "RIMA":
			b.RingMaterial, err = r.GetString()
		case "SKMA":
			b.SkirtMaterial, err = r.GetString()
		case "BAMA":
			b.BaseMaterial, err = r.GetString()
		case "HAHE":
			b.HasHitEvent, err = r.GetBool()
		case "CAVI":
			b.IsCapVisible, err = r.GetBool()
		case "RIVS":
			b.IsRingVisible, err = r.GetBool()
		case "SKVS":
			b.IsSkirtVisible, err = r.GetBool()
		case "BSVS":
			b.IsBaseVisible, err = r.GetBool()
		case "COLI":
			b.IsCollidable, err = r.GetBool()
		case "RISP":
			b.RingSpeed, err = r.GetF32()
		case "RDLI":
			b.RingDropOffset, err = r.GetF32()
		case "REEN":
			var v bool
			v, err = r.GetBool()
			b.IsReflectionEnabled = &v
		default:
			log.Warnf("bumper: unknown tag %q, skipping", tag)
			r.SkipRemaining()
		}
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}

func writeBumper(w *biff.Writer, b *Bumper) {
	w.WriteF32("RADI", b.Radius)
	w.WriteF32("FORC", b.Force)
	w.WriteF32("THRS", b.Threshold)
	w.WriteF32("BSCT", b.Scatter)
	w.WriteF32("HISC", b.HeightScale)
	w.WriteF32("ORIN", b.Orientation)
	writeCenterPoint(w, b.X, b.Y)
	w.WriteString("SURF", b.Surface)
	w.WriteString("MATR", b.CapMaterial)
	w.WriteString("RIMA", b.RingMaterial)
	w.WriteString("SKMA", b.SkirtMaterial)
	w.WriteString("BAMA", b.BaseMaterial)
	w.WriteBool("HAHE", b.HasHitEvent)
	w.WriteBool("CAVI", b.IsCapVisible)
	w.WriteBool("RIVS", b.IsRingVisible)
	w.WriteBool("SKVS", b.IsSkirtVisible)
	w.WriteBool("BSVS", b.IsBaseVisible)
	w.WriteBool("COLI", b.IsCollidable)
	w.WriteF32("RISP", b.RingSpeed)
	w.WriteF32("RDLI", b.RingDropOffset)
	if b.IsReflectionEnabled != nil {
		w.WriteBool("REEN", *b.IsReflectionEnabled)
	}
	b.Timing.Write(w)
	b.Shared.Write(w)
	w.WriteWideString("NAME", b.Name)
}
