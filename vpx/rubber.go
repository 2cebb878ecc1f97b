package vpx

import (
	"github.com/vpinball/vpxcore/biff"
	"github.com/vpinball/vpxcore/internal/vlog"
)

// Rubber. Grounded on original_source/src/vpx/gameitem/rubber.rs.
type Rubber struct {
	Shared
	Timing

	Height       float32
	HitHeight    float32
	Thickness    int32
	Image        string
	Material     string
	Surface      string
	IsCollidable bool
	IsVisible    bool
	Elasticity   float32
	ElasticityFalloff float32
	Friction     float32
	Scatter      float32
	RotX, RotY, RotZ float32
	DragPoints   []DragPoint
	IsReflectionEnabled *bool
}

func newRubber() *Rubber {
	return &Rubber{Height: 25.0, HitHeight: -1.0, Thickness: 8, IsCollidable: true, IsVisible: true,
		Elasticity: 0.3, Friction: 0.3}
}

func readRubber(r *biff.Reader, log *vlog.Helper) (*Rubber, error) {
	rb := newRubber()
	for {
		if err := r.Next(); err != nil {
			return nil, err
		}
		if r.IsEOF() {
			break
		}
		tag := r.Tag()
		if ok, err := rb.Shared.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		if ok, err := rb.Timing.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		var err error
		switch tag {
		case "NAME":
			rb.Name, err = r.GetWideString()
		case "HTTP":
			rb.Height, err = r.GetF32()
		case "HTHI":
			rb.HitHeight, err = r.GetF32()
		case "THCK":
			rb.Thickness, err = r.GetI32()
		case "IMAG":
			rb.Image, err = r.GetString()
		case "MATR":
			rb.Material, err = r.GetString()
		case "SURF":
			rb.Surface, err = r.GetString()
		case "COLL":
			rb.IsCollidable, err = r.GetBool()
		case "RVIS":
			rb.IsVisible, err = r.GetBool()
		case "ELAS":
			rb.Elasticity, err = r.GetF32()
		case "ELFO":
			rb.ElasticityFalloff, err = r.GetF32()
		case "RFCT":
			rb.Friction, err = r.GetF32()
		case "RSCT":
			rb.Scatter, err = r.GetF32()
		case "ROTX":
			rb.RotX, err = r.GetF32()
		case "ROTY":
			rb.RotY, err = r.GetF32()
		case "ROTZ":
			rb.RotZ, err = r.GetF32()
		case "REEN":
			var v bool
			v, err = r.GetBool()
			rb.IsReflectionEnabled = &v
		case "PNTS":
			// marker, no payload
		case "DPNT":
			var dp DragPoint
			dp, err = ReadDragPoint(r, log)
			if err == nil {
				rb.DragPoints = append(rb.DragPoints, dp)
			}
		default:
			log.Warnf("rubber: unknown tag %q, skipping", tag)
			r.SkipRemaining()
		}
		if err != nil {
			return nil, err
		}
	}
	return rb, nil
}

func writeRubber(w *biff.Writer, rb *Rubber) {
	w.WriteF32("HTTP", rb.Height)
	w.WriteF32("HTHI", rb.HitHeight)
	w.WriteI32("THCK", rb.Thickness)
	w.WriteString("IMAG", rb.Image)
	w.WriteString("MATR", rb.Material)
	w.WriteString("SURF", rb.Surface)
	w.WriteBool("COLL", rb.IsCollidable)
	w.WriteBool("RVIS", rb.IsVisible)
	w.WriteF32("ELAS", rb.Elasticity)
	w.WriteF32("ELFO", rb.ElasticityFalloff)
	w.WriteF32("RFCT", rb.Friction)
	w.WriteF32("RSCT", rb.Scatter)
	w.WriteF32("ROTX", rb.RotX)
	w.WriteF32("ROTY", rb.RotY)
	w.WriteF32("ROTZ", rb.RotZ)
	if rb.IsReflectionEnabled != nil {
		w.WriteBool("REEN", *rb.IsReflectionEnabled)
	}
	rb.Timing.Write(w)
	rb.Shared.Write(w)
	w.WriteWideString("NAME", rb.Name)
	w.WriteMarkerTag("PNTS")
	WriteDragPoints(w, rb.DragPoints)
}
