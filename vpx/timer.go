package vpx

import (
	"github.com/vpinball/vpxcore/biff"
	"github.com/vpinball/vpxcore/internal/vlog"
)

// Timer is a scripting-only game item (no geometry, no drag points).
// Grounded on original_source/src/vpx/gameitem/timer.rs.
type Timer struct {
	Shared
	Timing

	BackglassLightPos *bool // BGLS on some older items, recorded for round-trip only
	X, Y              float32
}

func readTimer(r *biff.Reader, log *vlog.Helper) (*Timer, error) {
	t := &Timer{}
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
		case "BGLS":
			var v bool
			v, err = r.GetBool()
			t.BackglassLightPos = &v
		case "VCEN":
			t.X, t.Y, err = readCenterPoint(r)
		default:
			log.Warnf("timer: unknown tag %q, skipping", tag)
			r.SkipRemaining()
		}
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

func writeTimer(w *biff.Writer, t *Timer) {
	t.Timing.Write(w)
	if t.BackglassLightPos != nil {
		w.WriteBool("BGLS", *t.BackglassLightPos)
	}
	writeCenterPoint(w, t.X, t.Y)
	t.Shared.Write(w)
	w.WriteWideString("NAME", t.Name)
}
