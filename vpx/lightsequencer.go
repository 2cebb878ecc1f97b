package vpx

import (
	"github.com/vpinball/vpxcore/biff"
	"github.com/vpinball/vpxcore/internal/vlog"
)

// LightSequencer drives a collection of lights through timed patterns.
// Grounded on original_source/src/vpx/gameitem/lightsequencer.rs.
type LightSequencer struct {
	Shared
	Timing

	X, Y         float32
	Collection   string
	UpdateInterval int32
	Center       bool
}

func newLightSequencer() *LightSequencer {
	return &LightSequencer{UpdateInterval: 25}
}

func readLightSequencer(r *biff.Reader, log *vlog.Helper) (*LightSequencer, error) {
	ls := newLightSequencer()
	for {
		if err := r.Next(); err != nil {
			return nil, err
		}
		if r.IsEOF() {
			break
		}
		tag := r.Tag()
		if ok, err := ls.Shared.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		if ok, err := ls.Timing.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		var err error
		switch tag {
		case "NAME":
			ls.Name, err = r.GetWideString()
		case "VCEN":
			ls.X, ls.Y, err = readCenterPoint(r)
		case "COLC":
			ls.Collection, err = r.GetString()
		case "UPTM":
			ls.UpdateInterval, err = r.GetI32()
		case "CTRX":
			ls.Center, err = r.GetBool()
		default:
			log.Warnf("lightsequencer: unknown tag %q, skipping", tag)
			r.SkipRemaining()
		}
		if err != nil {
			return nil, err
		}
	}
	return ls, nil
}

func writeLightSequencer(w *biff.Writer, ls *LightSequencer) {
	writeCenterPoint(w, ls.X, ls.Y)
	w.WriteString("COLC", ls.Collection)
	w.WriteI32("UPTM", ls.UpdateInterval)
	w.WriteBool("CTRX", ls.Center)
	ls.Timing.Write(w)
	ls.Shared.Write(w)
	w.WriteWideString("NAME", ls.Name)
}
