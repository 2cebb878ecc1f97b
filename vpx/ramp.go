package vpx

import (
	"github.com/vpinball/vpxcore/biff"
	"github.com/vpinball/vpxcore/internal/vlog"
)

// Ramp. original_source/src/vpx/gameitem/ramp.rs was filtered out of the
// retrieval pack; this tag set is modeled by analogy to Wall's height/visual
// fields and DragPoints shape — see DESIGN.md.
type Ramp struct {
	Shared
	Timing

	RampType        int32
	HeightBottom    float32
	HeightTop       float32
	WidthBottom     float32
	WidthTop        float32
	Material        string
	Image           string
	Elasticity      float32
	Friction        float32
	Scatter         float32
	IsCollidable    bool
	IsVisible       bool
	IsTopVisible    bool
	IsBottomVisible bool
	LeftWallHeight  float32
	RightWallHeight float32
	WireDiameter    float32
	WireDistanceX   float32
	WireDistanceY   float32
	DragPoints      []DragPoint
}

func newRamp() *Ramp {
	return &Ramp{HeightBottom: 0, HeightTop: 50.0, WidthBottom: 55.0, WidthTop: 20.0,
		Elasticity: 0.3, Friction: 0.3, IsCollidable: true, IsVisible: true, IsTopVisible: true,
		IsBottomVisible: true, LeftWallHeight: 62.0, RightWallHeight: 62.0, WireDiameter: 8.0,
		WireDistanceX: 38.0, WireDistanceY: 88.0}
}

func readRamp(r *biff.Reader, log *vlog.Helper) (*Ramp, error) {
	rp := newRamp()
	for {
		if err := r.Next(); err != nil {
			return nil, err
		}
		if r.IsEOF() {
			break
		}
		tag := r.Tag()
		if ok, err := rp.Shared.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		if ok, err := rp.Timing.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		var err error
		switch tag {
		case "NAME":
			rp.Name, err = r.GetWideString()
		case "TYPE":
			rp.RampType, err = r.GetI32()
		case "WVHO":
			rp.HeightBottom, err = r.GetF32()
		case "WVHT":
			rp.HeightTop, err = r.GetF32()
		case "WDBO":
			rp.WidthBottom, err = r.GetF32()
		case "WDTO":
			rp.WidthTop, err = r.GetF32()
		case "MATR":
			rp.Material, err = r.GetString()
		case "IMAG":
			rp.Image, err = r.GetString()
		case "ELAS":
			rp.Elasticity, err = r.GetF32()
		case "RFCT":
			rp.Friction, err = r.GetF32()
		case "RSCT":
			rp.Scatter, err = r.GetF32()
		case "CLDR":
			rp.IsCollidable, err = r.GetBool()
		case "RVIS":
			rp.IsVisible, err = r.GetBool()
		case "TVIS":
			rp.IsTopVisible, err = r.GetBool()
		case "BVIS":
			rp.IsBottomVisible, err = r.GetBool()
		case "RAWH":
			rp.LeftWallHeight, err = r.GetF32()
		case "RWWH":
			rp.RightWallHeight, err = r.GetF32()
		case "WDIA":
			rp.WireDiameter, err = r.GetF32()
		case "WDST":
			rp.WireDistanceX, err = r.GetF32()
		case "WDSY":
			rp.WireDistanceY, err = r.GetF32()
		case "PNTS":
			// marker, no payload
		case "DPNT":
			var dp DragPoint
			dp, err = ReadDragPoint(r, log)
			if err == nil {
				rp.DragPoints = append(rp.DragPoints, dp)
			}
		default:
			log.Warnf("ramp: unknown tag %q, skipping", tag)
			r.SkipRemaining()
		}
		if err != nil {
			return nil, err
		}
	}
	return rp, nil
}

func writeRamp(w *biff.Writer, rp *Ramp) {
	w.WriteI32("TYPE", rp.RampType)
	w.WriteF32("WVHO", rp.HeightBottom)
	w.WriteF32("WVHT", rp.HeightTop)
	w.WriteF32("WDBO", rp.WidthBottom)
	w.WriteF32("WDTO", rp.WidthTop)
	w.WriteString("MATR", rp.Material)
	w.WriteString("IMAG", rp.Image)
	w.WriteF32("ELAS", rp.Elasticity)
	w.WriteF32("RFCT", rp.Friction)
	w.WriteF32("RSCT", rp.Scatter)
	w.WriteBool("CLDR", rp.IsCollidable)
	w.WriteBool("RVIS", rp.IsVisible)
	w.WriteBool("TVIS", rp.IsTopVisible)
	w.WriteBool("BVIS", rp.IsBottomVisible)
	w.WriteF32("RAWH", rp.LeftWallHeight)
	w.WriteF32("RWWH", rp.RightWallHeight)
	w.WriteF32("WDIA", rp.WireDiameter)
	w.WriteF32("WDST", rp.WireDistanceX)
	w.WriteF32("WDSY", rp.WireDistanceY)
	rp.Timing.Write(w)
	rp.Shared.Write(w)
	w.WriteWideString("NAME", rp.Name)
	w.WriteMarkerTag("PNTS")
	WriteDragPoints(w, rp.DragPoints)
}
