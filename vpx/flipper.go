package vpx

import (
	"github.com/vpinball/vpxcore/biff"
	"github.com/vpinball/vpxcore/internal/vlog"
)

// Flipper. Grounded on original_source/src/vpx/gameitem/flipper.rs.
type Flipper struct {
	Shared
	Timing

	BaseRadius    float32
	EndRadius     float32
	FlipperRadius float32
	Height        float32
	StartAngle    float32
	EndAngle      float32
	Mass          float32
	StrengthGain  float32
	Elasticity    float32
	ElasticityFalloff *float32
	Friction      float32
	Scatter       float32
	Surface       string
	RubberMaterial string
	RubberThickness float32
	RubberHeight  float32
	RubberWidth   float32
	Image         string
	Material      string
	IsEnabled     bool
	IsVisible     bool
	OverridePhysics *bool
	IsReflectionEnabled *bool
}

func newFlipper() *Flipper {
	return &Flipper{
		BaseRadius: 21.5, EndRadius: 13.0, FlipperRadius: 130.0,
		StartAngle: 121.0, EndAngle: 200.0, Mass: 1.0,
		Elasticity: 0.8, Friction: 0.6, IsEnabled: true, IsVisible: true,
	}
}

func readFlipper(r *biff.Reader, log *vlog.Helper) (*Flipper, error) {
	f := newFlipper()
	for {
		if err := r.Next(); err != nil {
			return nil, err
		}
		if r.IsEOF() {
			break
		}
		tag := r.Tag()
		if ok, err := f.Shared.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		if ok, err := f.Timing.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		var err error
		switch tag {
		case "NAME":
			f.Name, err = r.GetWideString()
		case "BASR":
			f.BaseRadius, err = r.GetF32()
		case "ENDR":
			f.EndRadius, err = r.GetF32()
		case "FLPR":
			f.FlipperRadius, err = r.GetF32()
		case "FHGT":
			f.Height, err = r.GetF32()
		case "ANGS":
			f.StartAngle, err = r.GetF32()
		case "ANGE":
			f.EndAngle, err = r.GetF32()
		case "FRMN":
			f.Mass, err = r.GetF32()
		case "STRG":
			f.StrengthGain, err = r.GetF32()
		case "ELAS":
			f.Elasticity, err = r.GetF32()
		case "ELFO":
			var v float32
			v, err = r.GetF32()
			f.ElasticityFalloff = &v
		case "FRIC":
			f.Friction, err = r.GetF32()
		case "SCTR":
			f.Scatter, err = r.GetF32()
		case "SURF":
			f.Surface, err = r.GetString()
		case "RUMA":
			f.RubberMaterial, err = r.GetString()
		case "RTHK":
			f.RubberThickness, err = r.GetF32()
		case "RHGT":
			f.RubberHeight, err = r.GetF32()
		case "RWDT":
			f.RubberWidth, err = r.GetF32()
		case "IMAG":
			f.Image, err = r.GetString()
		case "MATR":
			f.Material, err = r.GetString()
		case "ENBL":
			f.IsEnabled, err = r.GetBool()
		case "VSBL":
			f.IsVisible, err = r.GetBool()
		case "OVRP":
			var v bool
			v, err = r.GetBool()
			f.OverridePhysics = &v
		case "REEN":
			var v bool
			v, err = r.GetBool()
			f.IsReflectionEnabled = &v
		case "VCEN", "RPUP", "RHGF", "RTHF", "RWDF", "RDLI", "FORC", "TDAA", "TODA", "FRTN":
			r.SkipRemaining()
		default:
			log.Warnf("flipper: unknown tag %q, skipping", tag)
			r.SkipRemaining()
		}
		if err != nil {
			return nil, err
		}
	}
	return f, nil
}

func writeFlipper(w *biff.Writer, f *Flipper) {
	w.WriteF32("BASR", f.BaseRadius)
	w.WriteF32("ENDR", f.EndRadius)
	w.WriteF32("FLPR", f.FlipperRadius)
	w.WriteF32("FHGT", f.Height)
	w.WriteF32("ANGS", f.StartAngle)
	w.WriteF32("ANGE", f.EndAngle)
	w.WriteF32("FRMN", f.Mass)
	w.WriteF32("STRG", f.StrengthGain)
	w.WriteF32("ELAS", f.Elasticity)
	if f.ElasticityFalloff != nil {
		w.WriteF32("ELFO", *f.ElasticityFalloff)
	}
	w.WriteF32("FRIC", f.Friction)
	w.WriteF32("SCTR", f.Scatter)
	w.WriteString("SURF", f.Surface)
	w.WriteString("RUMA", f.RubberMaterial)
	w.WriteF32("RTHK", f.RubberThickness)
	w.WriteF32("RHGT", f.RubberHeight)
	w.WriteF32("RWDT", f.RubberWidth)
	w.WriteString("IMAG", f.Image)
	w.WriteString("MATR", f.Material)
	w.WriteBool("ENBL", f.IsEnabled)
	w.WriteBool("VSBL", f.IsVisible)
	if f.OverridePhysics != nil {
		w.WriteBool("OVRP", *f.OverridePhysics)
	}
	if f.IsReflectionEnabled != nil {
		w.WriteBool("REEN", *f.IsReflectionEnabled)
	}
	f.Timing.Write(w)
	f.Shared.Write(w)
	w.WriteWideString("NAME", f.Name)
}
