package vpx

import (
	"github.com/vpinball/vpxcore/biff"
	"github.com/vpinball/vpxcore/internal/vlog"
)

// Flasher. Grounded on original_source/src/vpx/gameitem/flasher.rs.
type Flasher struct {
	Shared
	Timing

	X, Y, Height   float32
	RotX, RotY, RotZ float32
	ImageA, ImageB string
	Color          uint32
	IsVisible      bool
	Intensity      float32
	ModulateVsAdd  float32
	IsAdditiveBlend bool
	DepthBias      float32
	DragPoints     []DragPoint
}

func newFlasher() *Flasher {
	return &Flasher{Height: 50.0, IsVisible: true, Intensity: 1.0, ModulateVsAdd: 0.9}
}

func readFlasher(r *biff.Reader, log *vlog.Helper) (*Flasher, error) {
	f := newFlasher()
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
		case "VCEN":
			f.X, f.Y, err = readCenterPoint(r)
		case "FHEI":
			f.Height, err = r.GetF32()
		case "FROX":
			f.RotX, err = r.GetF32()
		case "FROY":
			f.RotY, err = r.GetF32()
		case "FROZ":
			f.RotZ, err = r.GetF32()
		case "IMAG":
			f.ImageA, err = r.GetString()
		case "IMAB":
			f.ImageB, err = r.GetString()
		case "COLR":
			f.Color, err = r.GetU32()
		case "FVIS":
			f.IsVisible, err = r.GetBool()
		case "FLAI":
			f.Intensity, err = r.GetF32()
		case "MOVA":
			f.ModulateVsAdd, err = r.GetF32()
		case "ADDB":
			f.IsAdditiveBlend, err = r.GetBool()
		case "FLDB":
			f.DepthBias, err = r.GetF32()
		case "PNTS":
			// marker, no payload
		case "DPNT":
			var dp DragPoint
			dp, err = ReadDragPoint(r, log)
			if err == nil {
				f.DragPoints = append(f.DragPoints, dp)
			}
		default:
			log.Warnf("flasher: unknown tag %q, skipping", tag)
			r.SkipRemaining()
		}
		if err != nil {
			return nil, err
		}
	}
	return f, nil
}

func writeFlasher(w *biff.Writer, f *Flasher) {
	writeCenterPoint(w, f.X, f.Y)
	w.WriteF32("FHEI", f.Height)
	w.WriteF32("FROX", f.RotX)
	w.WriteF32("FROY", f.RotY)
	w.WriteF32("FROZ", f.RotZ)
	w.WriteString("IMAG", f.ImageA)
	w.WriteString("IMAB", f.ImageB)
	w.WriteU32("COLR", f.Color)
	w.WriteBool("FVIS", f.IsVisible)
	w.WriteF32("FLAI", f.Intensity)
	w.WriteF32("MOVA", f.ModulateVsAdd)
	w.WriteBool("ADDB", f.IsAdditiveBlend)
	w.WriteF32("FLDB", f.DepthBias)
	f.Timing.Write(w)
	f.Shared.Write(w)
	w.WriteWideString("NAME", f.Name)
	w.WriteMarkerTag("PNTS")
	WriteDragPoints(w, f.DragPoints)
}
