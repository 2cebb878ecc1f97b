package vpx

import (
	"github.com/vpinball/vpxcore/biff"
	"github.com/vpinball/vpxcore/internal/vlog"
)

// Light. original_source/src/vpx/gameitem/light.rs was filtered out of the
// retrieval pack, so this tag set is modeled by analogy to the sibling
// bulb-like items (Kicker's EBLD/TYPE, Flasher's COLR/FLAI/ADDB) rather than
// grounded on a verified source file — see DESIGN.md.
type Light struct {
	Shared
	Timing

	X, Y         float32
	Radius       float32
	Color        uint32
	ColorFull    uint32
	IsBackglass  bool
	IsVisible    bool
	BlinkPattern string
	BlinkInterval int32
	Intensity    float32
	Falloff      float32
	FalloffPower float32
	Image        string
	Surface      string
	IsBulbLight  bool
	ShowReflectionOnBall bool
	MeshRadius   float32
	ModulateVsAdd float32
	DragPoints   []DragPoint
}

func newLight() *Light {
	return &Light{Radius: 25.0, IsVisible: true, Intensity: 1.0, Falloff: 50.0, FalloffPower: 2.0,
		IsBulbLight: true, MeshRadius: 20.0, ModulateVsAdd: 0.9}
}

func readLight(r *biff.Reader, log *vlog.Helper) (*Light, error) {
	l := newLight()
	for {
		if err := r.Next(); err != nil {
			return nil, err
		}
		if r.IsEOF() {
			break
		}
		tag := r.Tag()
		if ok, err := l.Shared.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		if ok, err := l.Timing.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		var err error
		switch tag {
		case "NAME":
			l.Name, err = r.GetWideString()
		case "VCEN":
			l.X, l.Y, err = readCenterPoint(r)
		case "RADI":
			l.Radius, err = r.GetF32()
		case "COLR":
			l.Color, err = r.GetU32()
		case "COF2":
			l.ColorFull, err = r.GetU32()
		case "BGLS":
			l.IsBackglass, err = r.GetBool()
		case "SHRB":
			l.IsVisible, err = r.GetBool()
		case "BPAT":
			l.BlinkPattern, err = r.GetString()
		case "BINT":
			l.BlinkInterval, err = r.GetI32()
		case "BWTH":
			l.Intensity, err = r.GetF32()
		case "FALF":
			l.Falloff, err = r.GetF32()
		case "FALP":
			l.FalloffPower, err = r.GetF32()
		case "IMAG":
			l.Image, err = r.GetString()
		case "SURF":
			l.Surface, err = r.GetString()
		case "BULT":
			l.IsBulbLight, err = r.GetBool()
		case "RFCT":
			l.ShowReflectionOnBall, err = r.GetBool()
		case "BWMM":
			l.MeshRadius, err = r.GetF32()
		case "BMSC":
			l.ModulateVsAdd, err = r.GetF32()
		case "PNTS":
			// marker, no payload
		case "DPNT":
			var dp DragPoint
			dp, err = ReadDragPoint(r, log)
			if err == nil {
				l.DragPoints = append(l.DragPoints, dp)
			}
		default:
			log.Warnf("light: unknown tag %q, skipping", tag)
			r.SkipRemaining()
		}
		if err != nil {
			return nil, err
		}
	}
	return l, nil
}

func writeLight(w *biff.Writer, l *Light) {
	writeCenterPoint(w, l.X, l.Y)
	w.WriteF32("RADI", l.Radius)
	w.WriteU32("COLR", l.Color)
	w.WriteU32("COF2", l.ColorFull)
	w.WriteBool("BGLS", l.IsBackglass)
	w.WriteBool("SHRB", l.IsVisible)
	w.WriteString("BPAT", l.BlinkPattern)
	w.WriteI32("BINT", l.BlinkInterval)
	w.WriteF32("BWTH", l.Intensity)
	w.WriteF32("FALF", l.Falloff)
	w.WriteF32("FALP", l.FalloffPower)
	w.WriteString("IMAG", l.Image)
	w.WriteString("SURF", l.Surface)
	w.WriteBool("BULT", l.IsBulbLight)
	w.WriteBool("RFCT", l.ShowReflectionOnBall)
	w.WriteF32("BWMM", l.MeshRadius)
	w.WriteF32("BMSC", l.ModulateVsAdd)
	l.Timing.Write(w)
	l.Shared.Write(w)
	w.WriteWideString("NAME", l.Name)
	w.WriteMarkerTag("PNTS")
	WriteDragPoints(w, l.DragPoints)
}
