package vpx

import (
	"github.com/vpinball/vpxcore/biff"
	"github.com/vpinball/vpxcore/internal/vlog"
)

// HitTarget. Grounded on original_source/src/vpx/gameitem/hittarget.rs.
type HitTarget struct {
	Shared
	Timing

	X, Y, Z          float32
	ScaleX, ScaleY, ScaleZ float32
	RotZ             float32
	Image            string
	Material         string
	TargetType       int32
	IsVisible        bool
	IsLegacy         bool
	IsDropped        bool
	IsCollidable     bool
	DisableLightingTop *float32
	DisableLightingBelow *float32
	Elasticity       float32
	ElasticityFalloff float32
	Friction         float32
	Scatter          float32
	Threshold        float32
	HitEvent         bool
	DepthBias        float32
	RaiseDelay       int32
	OverwritePhysics *bool
	PhysicsMaterial  *string
	IsReflectionEnabled *bool
}

func newHitTarget() *HitTarget {
	return &HitTarget{ScaleX: 1.0, ScaleY: 1.0, ScaleZ: 1.0, IsVisible: true, IsCollidable: true,
		Elasticity: 0.3, Friction: 0.3, Threshold: 2.0, DepthBias: 0, RaiseDelay: 100}
}

func readHitTarget(r *biff.Reader, log *vlog.Helper) (*HitTarget, error) {
	h := newHitTarget()
	for {
		if err := r.Next(); err != nil {
			return nil, err
		}
		if r.IsEOF() {
			break
		}
		tag := r.Tag()
		if ok, err := h.Shared.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		if ok, err := h.Timing.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		var err error
		switch tag {
		case "NAME":
			h.Name, err = r.GetWideString()
		case "VCEN":
			h.X, h.Y, err = readCenterPoint(r)
		case "PIDB":
			h.Z, err = r.GetF32()
		case "SCAX":
			h.ScaleX, err = r.GetF32()
		case "SCAY":
			h.ScaleY, err = r.GetF32()
		case "SCAZ":
			h.ScaleZ, err = r.GetF32()
		case "ROTZ":
			h.RotZ, err = r.GetF32()
		case "IMAG":
			h.Image, err = r.GetString()
		case "MATR":
			h.Material, err = r.GetString()
		case "TRTY":
			h.TargetType, err = r.GetI32()
		case "TVIS":
			h.IsVisible, err = r.GetBool()
		case "LEMO":
			h.IsLegacy, err = r.GetBool()
		case "ISDR":
			h.IsDropped, err = r.GetBool()
		case "TCOL":
			h.IsCollidable, err = r.GetBool()
		case "DILT":
			var v float32
			v, err = r.GetF32()
			h.DisableLightingTop = &v
		case "DILB":
			var v float32
			v, err = r.GetF32()
			h.DisableLightingBelow = &v
		case "THRS":
			h.Threshold, err = r.GetF32()
		case "ELAS":
			h.Elasticity, err = r.GetF32()
		case "ELFO":
			h.ElasticityFalloff, err = r.GetF32()
		case "RFCT":
			h.Friction, err = r.GetF32()
		case "RSCT":
			h.Scatter, err = r.GetF32()
		case "HTEV":
			h.HitEvent, err = r.GetBool()
		case "PIDP":
			h.DepthBias, err = r.GetF32()
		case "RADE":
			h.RaiseDelay, err = r.GetI32()
		case "OVPH":
			var v bool
			v, err = r.GetBool()
			h.OverwritePhysics = &v
		case "MAPH":
			var v string
			v, err = r.GetString()
			h.PhysicsMaterial = &v
		case "REEN":
			var v bool
			v, err = r.GetBool()
			h.IsReflectionEnabled = &v
		default:
			log.Warnf("hittarget: unknown tag %q, skipping", tag)
			r.SkipRemaining()
		}
		if err != nil {
			return nil, err
		}
	}
	return h, nil
}

func writeHitTarget(w *biff.Writer, h *HitTarget) {
	writeCenterPoint(w, h.X, h.Y)
	w.WriteF32("PIDB", h.Z)
	w.WriteF32("SCAX", h.ScaleX)
	w.WriteF32("SCAY", h.ScaleY)
	w.WriteF32("SCAZ", h.ScaleZ)
	w.WriteF32("ROTZ", h.RotZ)
	w.WriteString("IMAG", h.Image)
	w.WriteString("MATR", h.Material)
	w.WriteI32("TRTY", h.TargetType)
	w.WriteBool("TVIS", h.IsVisible)
	w.WriteBool("LEMO", h.IsLegacy)
	w.WriteBool("ISDR", h.IsDropped)
	w.WriteBool("TCOL", h.IsCollidable)
	if h.DisableLightingTop != nil {
		w.WriteF32("DILT", *h.DisableLightingTop)
	}
	if h.DisableLightingBelow != nil {
		w.WriteF32("DILB", *h.DisableLightingBelow)
	}
	w.WriteF32("THRS", h.Threshold)
	w.WriteF32("ELAS", h.Elasticity)
	w.WriteF32("ELFO", h.ElasticityFalloff)
	w.WriteF32("RFCT", h.Friction)
	w.WriteF32("RSCT", h.Scatter)
	w.WriteBool("HTEV", h.HitEvent)
	w.WriteF32("PIDP", h.DepthBias)
	w.WriteI32("RADE", h.RaiseDelay)
	if h.OverwritePhysics != nil {
		w.WriteBool("OVPH", *h.OverwritePhysics)
	}
	if h.PhysicsMaterial != nil {
		w.WriteString("MAPH", *h.PhysicsMaterial)
	}
	if h.IsReflectionEnabled != nil {
		w.WriteBool("REEN", *h.IsReflectionEnabled)
	}
	h.Timing.Write(w)
	h.Shared.Write(w)
	w.WriteWideString("NAME", h.Name)
}
