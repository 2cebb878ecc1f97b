package vpx

import (
	"github.com/vpinball/vpxcore/biff"
	"github.com/vpinball/vpxcore/internal/vlog"
)

// Gate. Grounded on original_source/src/vpx/gameitem/gate.rs.
type Gate struct {
	Shared
	Timing

	X, Y         float32
	Length       float32
	Height       float32
	Rotation     float32
	Material     string
	Surface      string
	IsCollidable bool
	IsVisible    bool
	ShowBracket  bool
	TwoWay       bool
	GateType     int32
	Elasticity   float32
	Friction     float32
	Damping      float32
	GravityFactor float32
}

func newGate() *Gate {
	return &Gate{Length: 100.0, Height: 50.0, IsCollidable: true, IsVisible: true,
		ShowBracket: true, Elasticity: 0.3, Friction: 0.2, Damping: 0.985, GravityFactor: 0.25}
}

func readGate(r *biff.Reader, log *vlog.Helper) (*Gate, error) {
	g := newGate()
	for {
		if err := r.Next(); err != nil {
			return nil, err
		}
		if r.IsEOF() {
			break
		}
		tag := r.Tag()
		if ok, err := g.Shared.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		if ok, err := g.Timing.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		var err error
		switch tag {
		case "NAME":
			g.Name, err = r.GetWideString()
		case "VCEN":
			g.X, g.Y, err = readCenterPoint(r)
		case "LGTH":
			g.Length, err = r.GetF32()
		case "HGTH":
			g.Height, err = r.GetF32()
		case "ROTA":
			g.Rotation, err = r.GetF32()
		case "MATR":
			g.Material, err = r.GetString()
		case "SURF":
			g.Surface, err = r.GetString()
		case "GCOL":
			g.IsCollidable, err = r.GetBool()
		case "GVSB":
			g.IsVisible, err = r.GetBool()
		case "GSUP":
			g.ShowBracket, err = r.GetBool()
		case "TWWA":
			g.TwoWay, err = r.GetBool()
		case "GATY":
			g.GateType, err = r.GetI32()
		case "GEFF":
			g.Elasticity, err = r.GetF32()
		case "GFRC":
			g.Friction, err = r.GetF32()
		case "AFRC":
			g.Damping, err = r.GetF32()
		case "GGFC":
			g.GravityFactor, err = r.GetF32()
		default:
			log.Warnf("gate: unknown tag %q, skipping", tag)
			r.SkipRemaining()
		}
		if err != nil {
			return nil, err
		}
	}
	return g, nil
}

func writeGate(w *biff.Writer, g *Gate) {
	writeCenterPoint(w, g.X, g.Y)
	w.WriteF32("LGTH", g.Length)
	w.WriteF32("HGTH", g.Height)
	w.WriteF32("ROTA", g.Rotation)
	w.WriteString("MATR", g.Material)
	w.WriteString("SURF", g.Surface)
	w.WriteBool("GCOL", g.IsCollidable)
	w.WriteBool("GVSB", g.IsVisible)
	w.WriteBool("GSUP", g.ShowBracket)
	w.WriteBool("TWWA", g.TwoWay)
	w.WriteI32("GATY", g.GateType)
	w.WriteF32("GEFF", g.Elasticity)
	w.WriteF32("GFRC", g.Friction)
	w.WriteF32("AFRC", g.Damping)
	w.WriteF32("GGFC", g.GravityFactor)
	g.Timing.Write(w)
	g.Shared.Write(w)
	w.WriteWideString("NAME", g.Name)
}
