package vpx

import (
	"github.com/vpinball/vpxcore/biff"
	"github.com/vpinball/vpxcore/internal/vlog"
)

// Reel is a mechanical/score-reel digit display. Grounded on
// original_source/src/vpx/gameitem/reel.rs.
type Reel struct {
	Shared
	Timing

	X, Y, Width, Height float32
	ReelCount           int32
	DigitRange          int32
	Sound               string
	Image               string
	IsTransparent       bool
	IsVisible           bool
	UseImageGrid        bool
	SpacingY            float32
	UpdateInterval      int32
}

func newReel() *Reel {
	return &Reel{ReelCount: 6, DigitRange: 10, Width: 30.0, Height: 40.0, IsVisible: true, UpdateInterval: 50}
}

func readReel(r *biff.Reader, log *vlog.Helper) (*Reel, error) {
	rl := newReel()
	for {
		if err := r.Next(); err != nil {
			return nil, err
		}
		if r.IsEOF() {
			break
		}
		tag := r.Tag()
		if ok, err := rl.Shared.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		if ok, err := rl.Timing.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		var err error
		switch tag {
		case "NAME":
			rl.Name, err = r.GetWideString()
		case "VCEN":
			rl.X, rl.Y, err = readCenterPoint(r)
		case "WDTH":
			rl.Width, err = r.GetF32()
		case "HIGH":
			rl.Height, err = r.GetF32()
		case "RCNT":
			rl.ReelCount, err = r.GetI32()
		case "DRNG":
			rl.DigitRange, err = r.GetI32()
		case "SOUN":
			rl.Sound, err = r.GetString()
		case "IMAG":
			rl.Image, err = r.GetString()
		case "TRNS":
			rl.IsTransparent, err = r.GetBool()
		case "RVIS":
			rl.IsVisible, err = r.GetBool()
		case "GRID":
			rl.UseImageGrid, err = r.GetBool()
		case "SPAC":
			rl.SpacingY, err = r.GetF32()
		case "UPTM":
			rl.UpdateInterval, err = r.GetI32()
		default:
			log.Warnf("reel: unknown tag %q, skipping", tag)
			r.SkipRemaining()
		}
		if err != nil {
			return nil, err
		}
	}
	return rl, nil
}

func writeReel(w *biff.Writer, rl *Reel) {
	writeCenterPoint(w, rl.X, rl.Y)
	w.WriteF32("WDTH", rl.Width)
	w.WriteF32("HIGH", rl.Height)
	w.WriteI32("RCNT", rl.ReelCount)
	w.WriteI32("DRNG", rl.DigitRange)
	w.WriteString("SOUN", rl.Sound)
	w.WriteString("IMAG", rl.Image)
	w.WriteBool("TRNS", rl.IsTransparent)
	w.WriteBool("RVIS", rl.IsVisible)
	w.WriteBool("GRID", rl.UseImageGrid)
	w.WriteF32("SPAC", rl.SpacingY)
	w.WriteI32("UPTM", rl.UpdateInterval)
	rl.Timing.Write(w)
	rl.Shared.Write(w)
	w.WriteWideString("NAME", rl.Name)
}
