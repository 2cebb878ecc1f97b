package vpx

import (
	"github.com/vpinball/vpxcore/biff"
	"github.com/vpinball/vpxcore/internal/rawbitmap"
	"github.com/vpinball/vpxcore/internal/vlog"
)

// ImageData is one GameStg/ImageN stream. original_source/src/vpx/image.rs
// was filtered out of the retrieval pack; the field set and BITS/JPEG
// dispatch follow spec §4.4/§4.5 directly, which explicitly names ALTV as
// the tag a BITS scan must stop at.
type ImageData struct {
	Name           string
	Path           string
	InternalName   string
	Width          uint32
	Height         uint32
	AlphaTestValue float32

	// RawPixels holds decompressed RGBA bytes when the image carries a BITS
	// payload (nil if absent).
	RawPixels []byte
	// HasRawPixels distinguishes "BITS present with zero-length payload" from
	// "no BITS record at all", since RawPixels alone can't tell the two apart.
	HasRawPixels bool

	// CompressedImage holds the JPEG/PNG/WebP blob from a nested JPEG→DATA
	// record (nil if absent).
	CompressedImage []byte
	HasCompressedImage bool
}

// ReadImage decodes a GameStg/ImageN stream.
func ReadImage(data []byte, log *vlog.Helper) (*ImageData, error) {
	img := &ImageData{}
	r := biff.NewReader(data)
	for {
		if r.PeekTag("BITS") {
			if err := r.NextNoLength("BITS"); err != nil {
				return nil, &FormatError{Path: "Image", Err: err}
			}
			blocked, err := r.DataUntil("ALTV")
			if err != nil {
				return nil, &FormatError{Path: "Image", Err: err}
			}
			raw, err := rawbitmap.Decompress(blocked)
			if err != nil {
				return nil, &CompressionError{Path: "Image", Err: err}
			}
			img.RawPixels = raw
			img.HasRawPixels = true
			continue
		}
		if err := r.Next(); err != nil {
			return nil, &FormatError{Path: "Image", Err: err}
		}
		if r.IsEOF() {
			break
		}
		var err error
		switch r.Tag() {
		case "NAME":
			img.Name, err = r.GetWideString()
		case "PATH":
			img.Path, err = r.GetString()
		case "INME":
			img.InternalName, err = r.GetString()
		case "WDTH":
			img.Width, err = r.GetU32()
		case "HGHT":
			img.Height, err = r.GetU32()
		case "ALTV":
			img.AlphaTestValue, err = r.GetF32()
		case "JPEG":
			child := r.ChildReader()
			for {
				if err = child.Next(); err != nil {
					break
				}
				if child.IsEOF() {
					break
				}
				if child.Tag() == "DATA" {
					var b []byte
					b, err = child.GetRecordData(false)
					if err != nil {
						break
					}
					img.CompressedImage = b
					img.HasCompressedImage = true
				} else {
					child.SkipRemaining()
				}
			}
			if err == nil {
				r.SkipEndTag(child.Pos())
			}
		default:
			log.Warnf("image: unknown tag %q, skipping", r.Tag())
			r.SkipRemaining()
		}
		if err != nil {
			return nil, &FormatError{Path: "Image", Err: err}
		}
	}
	return img, nil
}

// WriteImage encodes an ImageData to its on-disk form. If both a raw-pixel
// and a compressed payload are present, both are emitted (spec §4.4: "some
// images carry both shapes ... on write, whichever is present is emitted").
func WriteImage(img *ImageData) ([]byte, error) {
	w := biff.NewWriter()
	w.WriteWideString("NAME", img.Name)
	w.WriteString("PATH", img.Path)
	w.WriteString("INME", img.InternalName)
	w.WriteU32("WDTH", img.Width)
	w.WriteU32("HGHT", img.Height)
	if img.HasRawPixels {
		blocked, err := rawbitmap.Compress(img.RawPixels)
		if err != nil {
			return nil, &CompressionError{Path: "Image", Err: err}
		}
		w.WriteTaggedWithoutSize("BITS", blocked)
	}
	w.WriteF32("ALTV", img.AlphaTestValue)
	if img.HasCompressedImage {
		inner := biff.NewWriter()
		inner.WriteTagged("DATA", img.CompressedImage)
		inner.WriteMarkerTag(biff.EndTag)
		w.WriteTagged("JPEG", inner.Bytes())
	}
	w.WriteMarkerTag(biff.EndTag)
	return w.Bytes(), nil
}
