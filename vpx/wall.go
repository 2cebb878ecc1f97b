package vpx

import (
	"github.com/vpinball/vpxcore/biff"
	"github.com/vpinball/vpxcore/internal/vlog"
)

// Wall (VPinball calls it a Surface) is a drag-point-bounded vertical wall
// with optional top/side textures. Grounded verbatim on
// original_source/src/vpx/gameitem/wall.rs, including its legacy tag
// aliases (ISBS/CLDW/TMRN/SIMG/SIMA/TOMA/SLMA/DSPT/SLGF/SLGA/WFCT/WSCT/
// SVBL/IMAG/MAPH/REEN) which this reader accepts but never writes, and its
// DILI/DILT coexistence (see the Open Question decision in DESIGN.md: both
// are preserved, never collapsed into one field).
type Wall struct {
	Shared
	Timing

	HitEvent            bool
	IsDroppable         bool
	IsFlipbook          bool
	IsBottomSolid       bool
	IsCollidable        bool
	Threshold           float32
	Image               string
	SideImage           string
	SideMaterial        string
	TopMaterial         string
	SlingshotMaterial   string
	HeightBottom        float32
	HeightTop           float32
	DisplayTexture      bool
	SlingshotForce      float32
	SlingshotThreshold  float32
	SlingshotAnimation  bool
	Elasticity          float32
	ElasticityFalloff   *float32
	Friction            float32
	Scatter             float32
	IsTopBottomVisible  bool
	IsSideVisible       bool
	DisableLightingTopOld *float32 // DILI, pre-10.8
	DisableLightingTop    *float32 // DILT, 10.8+
	DisableLightingBelow  *float32
	IsReflectionEnabled *bool
	PhysicsMaterial     *string
	OverwritePhysics    *bool

	DragPoints []DragPoint
}

func newWall() *Wall {
	return &Wall{
		IsCollidable:       true,
		Threshold:          2.0,
		HeightTop:          50.0,
		SlingshotForce:     80.0,
		Elasticity:         0.3,
		Friction:           0.3,
		IsTopBottomVisible: true,
		SlingshotAnimation: true,
		IsSideVisible:      true,
	}
}

func readWall(r *biff.Reader, log *vlog.Helper) (*Wall, error) {
	w := newWall()
	for {
		if err := r.Next(); err != nil {
			return nil, err
		}
		if r.IsEOF() {
			break
		}
		tag := r.Tag()
		if ok, err := w.Shared.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		if ok, err := w.Timing.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		var err error
		switch tag {
		case "NAME":
			w.Name, err = r.GetWideString()
		case "HTEV":
			w.HitEvent, err = r.GetBool()
		case "DROP":
			w.IsDroppable, err = r.GetBool()
		case "FLIP":
			w.IsFlipbook, err = r.GetBool()
		case "BOTS", "ISBS":
			w.IsBottomSolid, err = r.GetBool()
		case "COLL", "CLDW":
			w.IsCollidable, err = r.GetBool()
		case "THRS":
			w.Threshold, err = r.GetF32()
		case "IMGF", "IMAG":
			w.Image, err = r.GetString()
		case "IMGS", "SIMG":
			w.SideImage, err = r.GetString()
		case "MATR", "SIMA":
			w.SideMaterial, err = r.GetString()
		case "MATP", "TOMA":
			w.TopMaterial, err = r.GetString()
		case "MATL", "SLMA":
			w.SlingshotMaterial, err = r.GetString()
		case "HTBT":
			w.HeightBottom, err = r.GetF32()
		case "HTTP":
			w.HeightTop, err = r.GetF32()
		case "DTEX", "DSPT":
			w.DisplayTexture, err = r.GetBool()
		case "SLFO", "SLGF":
			w.SlingshotForce, err = r.GetF32()
		case "SLTH":
			w.SlingshotThreshold, err = r.GetF32()
		case "SLAN", "SLGA":
			w.SlingshotAnimation, err = r.GetBool()
		case "ELAS":
			w.Elasticity, err = r.GetF32()
		case "ELFO":
			var v float32
			v, err = r.GetF32()
			w.ElasticityFalloff = &v
		case "FRIC", "WFCT":
			w.Friction, err = r.GetF32()
		case "SCAT", "WSCT":
			w.Scatter, err = r.GetF32()
		case "TBVI":
			w.IsTopBottomVisible, err = r.GetBool()
		case "SIVI", "SVBL":
			w.IsSideVisible, err = r.GetBool()
		case "DILI":
			var v float32
			v, err = r.GetF32()
			w.DisableLightingTopOld = &v
		case "DILT":
			var v float32
			v, err = r.GetF32()
			w.DisableLightingTop = &v
		case "DILB":
			var v float32
			v, err = r.GetF32()
			w.DisableLightingBelow = &v
		case "REFL", "REEN":
			var v bool
			v, err = r.GetBool()
			w.IsReflectionEnabled = &v
		case "PMAT", "MAPH":
			var v string
			v, err = r.GetString()
			w.PhysicsMaterial = &v
		case "OVPH":
			var v bool
			v, err = r.GetBool()
			w.OverwritePhysics = &v
		case "PNTS":
			// marker tag, no payload
		case "DPNT":
			var dp DragPoint
			dp, err = ReadDragPoint(r, log)
			if err == nil {
				w.DragPoints = append(w.DragPoints, dp)
			}
		default:
			log.Warnf("wall: unknown tag %q, skipping", tag)
			r.SkipRemaining()
		}
		if err != nil {
			return nil, err
		}
	}
	return w, nil
}

func writeWall(wtr *biff.Writer, w *Wall) {
	wtr.WriteBool("HTEV", w.HitEvent)
	wtr.WriteBool("DROP", w.IsDroppable)
	wtr.WriteBool("FLIP", w.IsFlipbook)
	wtr.WriteBool("BOTS", w.IsBottomSolid)
	wtr.WriteBool("COLL", w.IsCollidable)
	w.Timing.Write(wtr)
	wtr.WriteF32("THRS", w.Threshold)
	wtr.WriteString("IMGF", w.Image)
	wtr.WriteString("IMGS", w.SideImage)
	wtr.WriteString("MATR", w.SideMaterial)
	wtr.WriteString("MATP", w.TopMaterial)
	wtr.WriteString("MATL", w.SlingshotMaterial)
	wtr.WriteF32("HTBT", w.HeightBottom)
	wtr.WriteF32("HTTP", w.HeightTop)
	wtr.WriteWideString("NAME", w.Name)
	wtr.WriteBool("DTEX", w.DisplayTexture)
	wtr.WriteF32("SLFO", w.SlingshotForce)
	wtr.WriteF32("SLTH", w.SlingshotThreshold)
	wtr.WriteBool("SLAN", w.SlingshotAnimation)
	wtr.WriteF32("ELAS", w.Elasticity)
	if w.ElasticityFalloff != nil {
		wtr.WriteF32("ELFO", *w.ElasticityFalloff)
	}
	wtr.WriteF32("FRIC", w.Friction)
	wtr.WriteF32("SCAT", w.Scatter)
	wtr.WriteBool("TBVI", w.IsTopBottomVisible)
	if w.OverwritePhysics != nil {
		wtr.WriteBool("OVPH", *w.OverwritePhysics)
	}
	if w.DisableLightingTopOld != nil {
		wtr.WriteF32("DILI", *w.DisableLightingTopOld)
	}
	if w.DisableLightingTop != nil {
		wtr.WriteF32("DILT", *w.DisableLightingTop)
	}
	if w.DisableLightingBelow != nil {
		wtr.WriteF32("DILB", *w.DisableLightingBelow)
	}
	wtr.WriteBool("SIVI", w.IsSideVisible)
	if w.IsReflectionEnabled != nil {
		wtr.WriteBool("REFL", *w.IsReflectionEnabled)
	}
	if w.PhysicsMaterial != nil {
		wtr.WriteString("PMAT", *w.PhysicsMaterial)
	}
	w.Shared.Write(wtr)
	wtr.WriteMarkerTag("PNTS")
	WriteDragPoints(wtr, w.DragPoints)
}
