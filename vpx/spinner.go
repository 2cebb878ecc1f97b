package vpx

import (
	"github.com/vpinball/vpxcore/biff"
	"github.com/vpinball/vpxcore/internal/vlog"
)

// Spinner. Grounded on original_source/src/vpx/gameitem/spinner.rs.
type Spinner struct {
	Shared
	Timing

	X, Y       float32
	Height     float32
	Rotation   float32
	Length     float32
	Damping    float32
	AngleMax   float32
	AngleMin   float32
	Elasticity float32
	Material   string
	Image      string
	Surface    string
	IsVisible  bool
	ShowBracket bool
	IsReflectionEnabled *bool
}

func newSpinner() *Spinner {
	return &Spinner{Length: 80.0, Damping: 0.9879, AngleMax: 0.0, AngleMin: -0.8, IsVisible: true, ShowBracket: true}
}

func readSpinner(r *biff.Reader, log *vlog.Helper) (*Spinner, error) {
	s := newSpinner()
	for {
		if err := r.Next(); err != nil {
			return nil, err
		}
		if r.IsEOF() {
			break
		}
		tag := r.Tag()
		if ok, err := s.Shared.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		if ok, err := s.Timing.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		var err error
		switch tag {
		case "NAME":
			s.Name, err = r.GetWideString()
		case "VCEN":
			s.X, s.Y, err = readCenterPoint(r)
		case "HEIG":
			s.Height, err = r.GetF32()
		case "ROTA":
			s.Rotation, err = r.GetF32()
		case "LGTH":
			s.Length, err = r.GetF32()
		case "AFRC":
			s.Damping, err = r.GetF32()
		case "SMAX":
			s.AngleMax, err = r.GetF32()
		case "SMIN":
			s.AngleMin, err = r.GetF32()
		case "SELA":
			s.Elasticity, err = r.GetF32()
		case "MATR":
			s.Material, err = r.GetString()
		case "IMAG":
			s.Image, err = r.GetString()
		case "SURF":
			s.Surface, err = r.GetString()
		case "SVIS":
			s.IsVisible, err = r.GetBool()
		case "SSUP":
			s.ShowBracket, err = r.GetBool()
		case "REEN":
			var v bool
			v, err = r.GetBool()
			s.IsReflectionEnabled = &v
		default:
			log.Warnf("spinner: unknown tag %q, skipping", tag)
			r.SkipRemaining()
		}
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

func writeSpinner(w *biff.Writer, s *Spinner) {
	writeCenterPoint(w, s.X, s.Y)
	w.WriteF32("HEIG", s.Height)
	w.WriteF32("ROTA", s.Rotation)
	w.WriteF32("LGTH", s.Length)
	w.WriteF32("AFRC", s.Damping)
	w.WriteF32("SMAX", s.AngleMax)
	w.WriteF32("SMIN", s.AngleMin)
	w.WriteF32("SELA", s.Elasticity)
	w.WriteString("MATR", s.Material)
	w.WriteString("IMAG", s.Image)
	w.WriteString("SURF", s.Surface)
	w.WriteBool("SVIS", s.IsVisible)
	w.WriteBool("SSUP", s.ShowBracket)
	if s.IsReflectionEnabled != nil {
		w.WriteBool("REEN", *s.IsReflectionEnabled)
	}
	s.Timing.Write(w)
	s.Shared.Write(w)
	w.WriteWideString("NAME", s.Name)
}
