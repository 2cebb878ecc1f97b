package vpx

import (
	"github.com/vpinball/vpxcore/biff"
	"github.com/vpinball/vpxcore/internal/vlog"
)

// Plunger. Grounded on original_source/src/vpx/gameitem/plunger.rs.
type Plunger struct {
	Shared
	Timing

	Type            int32 // TYPE
	Width           float32
	Height          float32
	ZAdjust         float32
	StrokeLength    float32
	SpeedPull       float32
	SpeedFire       float32
	MeshStiff       *float32
	MeshDamp        *float32
	MechStrength    *float32
	Surface         string
	Material        string
	Image           string
	IsVisible       bool
	TipShape        string
	RingGap         float32
	RingDiameter    float32
	RingWidth       float32
	RodDiameter     float32
	SpringDiameter  float32
	SpringGauge     float32
	SpringLoops     float32
	SpringEndLoops  float32
	X, Y            float32
	IsAutoPlunger   bool
	ParkPosition    float32
	IsReflectionEnabled *bool
}

func newPlunger() *Plunger {
	return &Plunger{Width: 25.0, Height: 20.0, StrokeLength: 80.0, IsVisible: true}
}

func readPlunger(r *biff.Reader, log *vlog.Helper) (*Plunger, error) {
	p := newPlunger()
	for {
		if err := r.Next(); err != nil {
			return nil, err
		}
		if r.IsEOF() {
			break
		}
		tag := r.Tag()
		if ok, err := p.Shared.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		if ok, err := p.Timing.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		var err error
		switch tag {
		case "NAME":
			p.Name, err = r.GetWideString()
		case "TYPE":
			p.Type, err = r.GetI32()
		case "WDTH":
			p.Width, err = r.GetF32()
		case "HIGH":
			p.Height, err = r.GetF32()
		case "ZADJ":
			p.ZAdjust, err = r.GetF32()
		case "HPSL":
			p.StrokeLength, err = r.GetF32()
		case "SPDP":
			p.SpeedPull, err = r.GetF32()
		case "SPDF":
			p.SpeedFire, err = r.GetF32()
		case "MEST":
			var v float32
			v, err = r.GetF32()
			p.MeshStiff = &v
		case "MOMX":
			var v float32
			v, err = r.GetF32()
			p.MeshDamp = &v
		case "MPRK":
			p.ParkPosition, err = r.GetF32()
		case "MECH":
			var v float32
			v, err = r.GetF32()
			p.MechStrength = &v
		case "SURF":
			p.Surface, err = r.GetString()
		case "MATR":
			p.Material, err = r.GetString()
		case "IMAG":
			p.Image, err = r.GetString()
		case "VSBL":
			p.IsVisible, err = r.GetBool()
		case "TIPS":
			p.TipShape, err = r.GetString()
		case "RNGG":
			p.RingGap, err = r.GetF32()
		case "RNGD":
			p.RingDiameter, err = r.GetF32()
		case "RNGW":
			p.RingWidth, err = r.GetF32()
		case "RODD":
			p.RodDiameter, err = r.GetF32()
		case "SPRD":
			p.SpringDiameter, err = r.GetF32()
		case "SPRG":
			p.SpringGauge, err = r.GetF32()
		case "SPRL":
			p.SpringLoops, err = r.GetF32()
		case "SPRE":
			p.SpringEndLoops, err = r.GetF32()
		case "VCEN":
			p.X, p.Y, err = readCenterPoint(r)
		case "APLG":
			p.IsAutoPlunger, err = r.GetBool()
		case "REEN":
			var v bool
			v, err = r.GetBool()
			p.IsReflectionEnabled = &v
		case "ANFR", "PSCV":
			r.SkipRemaining()
		default:
			log.Warnf("plunger: unknown tag %q, skipping", tag)
			r.SkipRemaining()
		}
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

func writePlunger(w *biff.Writer, p *Plunger) {
	w.WriteI32("TYPE", p.Type)
	w.WriteF32("WDTH", p.Width)
	w.WriteF32("HIGH", p.Height)
	w.WriteF32("ZADJ", p.ZAdjust)
	w.WriteF32("HPSL", p.StrokeLength)
	w.WriteF32("SPDP", p.SpeedPull)
	w.WriteF32("SPDF", p.SpeedFire)
	if p.MeshStiff != nil {
		w.WriteF32("MEST", *p.MeshStiff)
	}
	if p.MeshDamp != nil {
		w.WriteF32("MOMX", *p.MeshDamp)
	}
	w.WriteF32("MPRK", p.ParkPosition)
	if p.MechStrength != nil {
		w.WriteF32("MECH", *p.MechStrength)
	}
	w.WriteString("SURF", p.Surface)
	w.WriteString("MATR", p.Material)
	w.WriteString("IMAG", p.Image)
	w.WriteBool("VSBL", p.IsVisible)
	w.WriteString("TIPS", p.TipShape)
	w.WriteF32("RNGG", p.RingGap)
	w.WriteF32("RNGD", p.RingDiameter)
	w.WriteF32("RNGW", p.RingWidth)
	w.WriteF32("RODD", p.RodDiameter)
	w.WriteF32("SPRD", p.SpringDiameter)
	w.WriteF32("SPRG", p.SpringGauge)
	w.WriteF32("SPRL", p.SpringLoops)
	w.WriteF32("SPRE", p.SpringEndLoops)
	writeCenterPoint(w, p.X, p.Y)
	w.WriteBool("APLG", p.IsAutoPlunger)
	if p.IsReflectionEnabled != nil {
		w.WriteBool("REEN", *p.IsReflectionEnabled)
	}
	p.Timing.Write(w)
	p.Shared.Write(w)
	w.WriteWideString("NAME", p.Name)
}
