package vpx

import (
	"github.com/vpinball/vpxcore/biff"
	"github.com/vpinball/vpxcore/internal/vlog"
)

// Trigger. Grounded on original_source/src/vpx/gameitem/trigger.rs.
type Trigger struct {
	Shared
	Timing

	X, Y           float32
	Radius         float32
	Rotation       float32
	WireThickness  float32
	Scale          float32
	Surface        string
	Material       string
	Shape          int32
	HitHeight      float32
	IsEnabled      bool
	IsVisible      bool
	DragPoints     []DragPoint
}

func newTrigger() *Trigger {
	return &Trigger{Radius: 25.0, Scale: 1.0, HitHeight: 50.0, IsEnabled: true, IsVisible: true}
}

func readTrigger(r *biff.Reader, log *vlog.Helper) (*Trigger, error) {
	t := newTrigger()
	for {
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
		case "VCEN":
			t.X, t.Y, err = readCenterPoint(r)
		case "RADI":
			t.Radius, err = r.GetF32()
		case "ROTA":
			t.Rotation, err = r.GetF32()
		case "WITI":
			t.WireThickness, err = r.GetF32()
		case "SCAL":
			t.Scale, err = r.GetF32()
		case "SURF":
			t.Surface, err = r.GetString()
		case "MATR":
			t.Material, err = r.GetString()
		case "SHAP":
			t.Shape, err = r.GetI32()
		case "HTHI":
			t.HitHeight, err = r.GetF32()
		case "EBLD":
			t.IsEnabled, err = r.GetBool()
		case "VSBL":
			t.IsVisible, err = r.GetBool()
		case "PNTS":
			// marker, no payload
		case "DPNT":
			var dp DragPoint
			dp, err = ReadDragPoint(r, log)
			if err == nil {
				t.DragPoints = append(t.DragPoints, dp)
			}
		default:
			log.Warnf("trigger: unknown tag %q, skipping", tag)
			r.SkipRemaining()
		}
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

func writeTrigger(w *biff.Writer, t *Trigger) {
	writeCenterPoint(w, t.X, t.Y)
	w.WriteF32("RADI", t.Radius)
	w.WriteF32("ROTA", t.Rotation)
	w.WriteF32("WITI", t.WireThickness)
	w.WriteF32("SCAL", t.Scale)
	w.WriteString("SURF", t.Surface)
	w.WriteString("MATR", t.Material)
	w.WriteI32("SHAP", t.Shape)
	w.WriteF32("HTHI", t.HitHeight)
	w.WriteBool("EBLD", t.IsEnabled)
	w.WriteBool("VSBL", t.IsVisible)
	t.Timing.Write(w)
	t.Shared.Write(w)
	w.WriteWideString("NAME", t.Name)
	w.WriteMarkerTag("PNTS")
	WriteDragPoints(w, t.DragPoints)
}
