package vpx

import (
	"github.com/vpinball/vpxcore/biff"
	"github.com/vpinball/vpxcore/internal/vlog"
)

// Primitive is an arbitrary 3D mesh item. original_source/src/vpx/gameitem/
// primitive.rs was filtered out of the retrieval pack; the scalar transform
// fields are modeled by analogy to Flasher's position/rotation fields, and
// the mesh payload is kept as an opaque compressed blob (replayed verbatim
// on write, like Generic's unknown-tag fields) rather than decoded, since no
// verified source describes its internal vertex/index layout — see
// DESIGN.md.
type Primitive struct {
	Shared
	Timing

	X, Y, Z          float32
	RotX, RotY, RotZ float32
	TransX, TransY, TransZ float32
	ScaleX, ScaleY, ScaleZ float32
	Material         string
	Image            string
	NormalMap        string
	Sides            int32
	VertexCount      uint32
	IndexCount       uint32
	CompressedVertices []byte
	CompressedIndices  []byte
	IsVisible        bool
	IsCollidable     bool
	DrawTexturesInside bool
	DisplayTexture   bool
	MeshFileName     string
	IsReflectionEnabled *bool
	OverwritePhysics *bool
	PhysicsMaterial  *string
}

func newPrimitive() *Primitive {
	return &Primitive{ScaleX: 1.0, ScaleY: 1.0, ScaleZ: 1.0, Sides: 4, IsVisible: true, IsCollidable: true}
}

func readPrimitive(r *biff.Reader, log *vlog.Helper) (*Primitive, error) {
	p := newPrimitive()
	for {
		if err := r.Next(); err != nil {
			return nil, err
		}
		if r.IsEOF() {
			break
		}
		tag := r.Tag()
		if ok, err := p.Shared.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		if ok, err := p.Timing.ReadTag(tag, r); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		var err error
		switch tag {
		case "NAME":
			p.Name, err = r.GetWideString()
		case "VPOS":
			p.X, err = r.GetF32()
			if err == nil {
				p.Y, err = r.GetF32()
			}
			if err == nil {
				p.Z, err = r.GetF32()
			}
		case "VROT":
			p.RotX, err = r.GetF32()
			if err == nil {
				p.RotY, err = r.GetF32()
			}
			if err == nil {
				p.RotZ, err = r.GetF32()
			}
		case "VTRA":
			p.TransX, err = r.GetF32()
			if err == nil {
				p.TransY, err = r.GetF32()
			}
			if err == nil {
				p.TransZ, err = r.GetF32()
			}
		case "VSCA":
			p.ScaleX, err = r.GetF32()
			if err == nil {
				p.ScaleY, err = r.GetF32()
			}
			if err == nil {
				p.ScaleZ, err = r.GetF32()
			}
		case "MATR":
			p.Material, err = r.GetString()
		case "IMAG":
			p.Image, err = r.GetString()
		case "NRMA":
			p.NormalMap, err = r.GetString()
		case "SIDS":
			p.Sides, err = r.GetI32()
		case "M3VN":
			p.VertexCount, err = r.GetU32()
		case "M3IN":
			p.IndexCount, err = r.GetU32()
		case "M3CX":
			p.CompressedVertices, err = r.GetRecordData(false)
		case "M3CY":
			p.CompressedIndices, err = r.GetRecordData(false)
		case "PVIS":
			p.IsVisible, err = r.GetBool()
		case "PCOL":
			p.IsCollidable, err = r.GetBool()
		case "DRTI":
			p.DrawTexturesInside, err = r.GetBool()
		case "DSPT":
			p.DisplayTexture, err = r.GetBool()
		case "M3DN":
			p.MeshFileName, err = r.GetString()
		case "REEN":
			var v bool
			v, err = r.GetBool()
			p.IsReflectionEnabled = &v
		case "OVPH":
			var v bool
			v, err = r.GetBool()
			p.OverwritePhysics = &v
		case "MAPH":
			var v string
			v, err = r.GetString()
			p.PhysicsMaterial = &v
		default:
			log.Warnf("primitive: unknown tag %q, skipping", tag)
			r.SkipRemaining()
		}
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

func writePrimitive(w *biff.Writer, p *Primitive) {
	pos := make([]byte, 12)
	putF32(pos[0:4], p.X)
	putF32(pos[4:8], p.Y)
	putF32(pos[8:12], p.Z)
	w.WriteTagged("VPOS", pos)

	rot := make([]byte, 12)
	putF32(rot[0:4], p.RotX)
	putF32(rot[4:8], p.RotY)
	putF32(rot[8:12], p.RotZ)
	w.WriteTagged("VROT", rot)

	tra := make([]byte, 12)
	putF32(tra[0:4], p.TransX)
	putF32(tra[4:8], p.TransY)
	putF32(tra[8:12], p.TransZ)
	w.WriteTagged("VTRA", tra)

	sca := make([]byte, 12)
	putF32(sca[0:4], p.ScaleX)
	putF32(sca[4:8], p.ScaleY)
	putF32(sca[8:12], p.ScaleZ)
	w.WriteTagged("VSCA", sca)

	w.WriteString("MATR", p.Material)
	w.WriteString("IMAG", p.Image)
	w.WriteString("NRMA", p.NormalMap)
	w.WriteI32("SIDS", p.Sides)
	w.WriteU32("M3VN", p.VertexCount)
	w.WriteU32("M3IN", p.IndexCount)
	if p.CompressedVertices != nil {
		w.WriteTagged("M3CX", p.CompressedVertices)
	}
	if p.CompressedIndices != nil {
		w.WriteTagged("M3CY", p.CompressedIndices)
	}
	w.WriteBool("PVIS", p.IsVisible)
	w.WriteBool("PCOL", p.IsCollidable)
	w.WriteBool("DRTI", p.DrawTexturesInside)
	w.WriteBool("DSPT", p.DisplayTexture)
	if p.MeshFileName != "" {
		w.WriteString("M3DN", p.MeshFileName)
	}
	if p.IsReflectionEnabled != nil {
		w.WriteBool("REEN", *p.IsReflectionEnabled)
	}
	if p.OverwritePhysics != nil {
		w.WriteBool("OVPH", *p.OverwritePhysics)
	}
	if p.PhysicsMaterial != nil {
		w.WriteString("MAPH", *p.PhysicsMaterial)
	}
	p.Timing.Write(w)
	p.Shared.Write(w)
	w.WriteWideString("NAME", p.Name)
}
