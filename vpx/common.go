package vpx

import (
	"encoding/binary"
	"math"

	"github.com/vpinball/vpxcore/biff"
	"github.com/vpinball/vpxcore/internal/vlog"
)

func putF32(b []byte, v float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}

// Shared holds the attributes common to every game item, introduced across
// several file-format versions. All fields except Name and IsLocked are
// optional so that round-tripping an older file never synthesizes a tag that
// was not present on read.
//
// Grounded on original_source/src/vpx/gameitem/select.rs's
// HasSharedAttributes/WriteSharedAttributes trait: LOCK/LAYR/LANR/LVIS/GRUP.
type Shared struct {
	Name                  string
	IsLocked              bool
	EditorLayer           *uint32
	EditorLayerName       *string
	EditorLayerVisibility *bool
	PartGroupName         *string
}

// ReadTag consumes the current record if its tag is one of the shared
// attribute tags, returning whether it did.
func (s *Shared) ReadTag(tag string, r *biff.Reader) (bool, error) {
	switch tag {
	case "LOCK":
		v, err := r.GetBool()
		if err != nil {
			return true, err
		}
		s.IsLocked = v
	case "LAYR":
		v, err := r.GetU32()
		if err != nil {
			return true, err
		}
		s.EditorLayer = &v
	case "LANR":
		v, err := r.GetString()
		if err != nil {
			return true, err
		}
		s.EditorLayerName = &v
	case "LVIS":
		v, err := r.GetBool()
		if err != nil {
			return true, err
		}
		s.EditorLayerVisibility = &v
	case "GRUP":
		v, err := r.GetString()
		if err != nil {
			return true, err
		}
		s.PartGroupName = &v
	default:
		return false, nil
	}
	return true, nil
}

// Write emits the shared attribute tags in the canonical order. Optional
// fields that are nil are simply omitted, matching the reference writer's
// behavior for older files.
func (s *Shared) Write(w *biff.Writer) {
	w.WriteBool("LOCK", s.IsLocked)
	if s.EditorLayer != nil {
		w.WriteU32("LAYR", *s.EditorLayer)
	}
	if s.EditorLayerName != nil {
		w.WriteString("LANR", *s.EditorLayerName)
	}
	if s.PartGroupName != nil {
		w.WriteString("GRUP", *s.PartGroupName)
	}
	if s.EditorLayerVisibility != nil {
		w.WriteBool("LVIS", *s.EditorLayerVisibility)
	}
}

// Timing holds the scripting-timer attributes shared by most game items
// (VPinball's TimerDataRoot / m_tdr). Grounded on select.rs's TimerData:
// TMON = is_enabled, TMIN = interval. TMRN is a legacy alias for TMON found
// in some older wall streams (wall.rs's biff_read also matches it).
type Timing struct {
	IsEnabled bool
	Interval  int32
}

// ReadTag consumes TMON/TMIN/TMRN if tag matches one of them.
func (t *Timing) ReadTag(tag string, r *biff.Reader) (bool, error) {
	switch tag {
	case "TMON", "TMRN":
		v, err := r.GetBool()
		if err != nil {
			return true, err
		}
		t.IsEnabled = v
	case "TMIN":
		v, err := r.GetI32()
		if err != nil {
			return true, err
		}
		t.Interval = v
	default:
		return false, nil
	}
	return true, nil
}

// Write emits TMON then TMIN.
func (t *Timing) Write(w *biff.Writer) {
	w.WriteBool("TMON", t.IsEnabled)
	w.WriteI32("TMIN", t.Interval)
}

// DragPoint is one control point of a drawn polyline/polygon, carried inside
// a DPNT tagged record group (see biff.Reader.ChildReader). The retrieved
// corpus did not include original_source/src/vpx/gameitem/dragpoint.rs
// (filtered out of the retrieval pack), so the field set here follows the
// shape described by spec §4.4/glossary (a small per-point tagged group)
// with tag names chosen to match the station this package already uses
// elsewhere (a VCEN x/y pair, a POSZ float, SMTH/SLNG/ATEX/TEXC flags) rather than a verified
// byte-exact reference; see DESIGN.md.
type DragPoint struct {
	X, Y, Z        float32
	Smooth         bool
	IsSlingshot    bool
	HasAutoTexture bool
	TextureCoord   float32
}

// ReadDragPoint reads one DPNT record's nested field group via a child
// reader, matching wall.rs's per-record "DPNT" => DragPoint::biff_read(...)
// dispatch: the main item loop calls this once per DPNT tag it sees and
// appends the result, rather than looping here.
func ReadDragPoint(r *biff.Reader, log *vlog.Helper) (DragPoint, error) {
	child := r.ChildReader()
	var dp DragPoint
	for {
		if err := child.Next(); err != nil {
			return dp, err
		}
		if child.IsEOF() {
			break
		}
		switch child.Tag() {
		case "VCEN":
			x, y, err := readCenterPoint(child)
			if err != nil {
				return dp, err
			}
			dp.X, dp.Y = x, y
		case "POSZ":
			v, err := child.GetF32()
			if err != nil {
				return dp, err
			}
			dp.Z = v
		case "SMTH":
			v, err := child.GetBool()
			if err != nil {
				return dp, err
			}
			dp.Smooth = v
		case "SLNG":
			v, err := child.GetBool()
			if err != nil {
				return dp, err
			}
			dp.IsSlingshot = v
		case "ATEX":
			v, err := child.GetBool()
			if err != nil {
				return dp, err
			}
			dp.HasAutoTexture = v
		case "TEXC":
			v, err := child.GetF32()
			if err != nil {
				return dp, err
			}
			dp.TextureCoord = v
		default:
			log.Warnf("dragpoint: unknown tag %q, skipping", child.Tag())
			child.SkipRemaining()
		}
	}
	r.SkipEndTag(child.Pos())
	return dp, nil
}

// readCenterPoint reads a VCEN record's payload: a flat pair of raw f32
// values (x, y), with no inner tagging — grounded on
// original_source/src/vpx/gameitem/vertex2d.rs's BiffRead impl, which reads
// x and y directly off the reader with no nested tag/ENDB group.
func readCenterPoint(r *biff.Reader) (x, y float32, err error) {
	x, err = r.GetF32()
	if err != nil {
		return 0, 0, err
	}
	y, err = r.GetF32()
	return x, y, err
}

// writeCenterPoint emits a VCEN record holding a flat (x, y) pair.
func writeCenterPoint(w *biff.Writer, x, y float32) {
	inner := make([]byte, 8)
	putF32(inner[0:4], x)
	putF32(inner[4:8], y)
	w.WriteTagged("VCEN", inner)
}

// WriteDragPoints emits one DPNT record per point.
func WriteDragPoints(w *biff.Writer, points []DragPoint) {
	for _, dp := range points {
		inner := biff.NewWriter()
		writeCenterPoint(inner, dp.X, dp.Y)
		inner.WriteF32("POSZ", dp.Z)
		inner.WriteBool("SMTH", dp.Smooth)
		inner.WriteBool("SLNG", dp.IsSlingshot)
		inner.WriteBool("ATEX", dp.HasAutoTexture)
		inner.WriteF32("TEXC", dp.TextureCoord)
		inner.WriteMarkerTag(biff.EndTag)
		w.WriteTagged("DPNT", inner.Bytes())
	}
}
