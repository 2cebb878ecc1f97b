package vpx

import "github.com/vpinball/vpxcore/biff"

// FontStyle is one of the five style bits a font descriptor can carry.
type FontStyle int

const (
	FontStyleNormal FontStyle = iota
	FontStyleBold
	FontStyleItalic
	FontStyleUnderline
	FontStyleStrikethrough
)

// FontDescriptor is the embedded (not a stream) font record used by TextBox
// and Decal. Fixed shape per spec §4.4: ver:u8=1, charset:u16,
// style_bitflags:u8, weight:u16, size:u32, name_len:u8, name:ASCII.
type FontDescriptor struct {
	Version  uint8
	Charset  uint16
	Styles   map[FontStyle]bool
	Weight   uint16
	Size     uint32
	Name     string
}

func newFontDescriptor() FontDescriptor {
	return FontDescriptor{Version: 1, Styles: map[FontStyle]bool{}}
}

// stylesToFlags packs the style set into the single bitflags byte: bit 0
// normal, bit 1 bold, bit 2 italic, bit 3 underline, bit 4 strikethrough.
func stylesToFlags(styles map[FontStyle]bool) uint8 {
	var flags uint8
	if styles[FontStyleNormal] {
		flags |= 1 << 0
	}
	if styles[FontStyleBold] {
		flags |= 1 << 1
	}
	if styles[FontStyleItalic] {
		flags |= 1 << 2
	}
	if styles[FontStyleUnderline] {
		flags |= 1 << 3
	}
	if styles[FontStyleStrikethrough] {
		flags |= 1 << 4
	}
	return flags
}

// flagsToStyles unpacks the bitflags byte back into a style set. Round-trips
// stylesToFlags for every subset of the five styles (spec §8 property 6).
func flagsToStyles(flags uint8) map[FontStyle]bool {
	styles := map[FontStyle]bool{}
	if flags&(1<<0) != 0 {
		styles[FontStyleNormal] = true
	}
	if flags&(1<<1) != 0 {
		styles[FontStyleBold] = true
	}
	if flags&(1<<2) != 0 {
		styles[FontStyleItalic] = true
	}
	if flags&(1<<3) != 0 {
		styles[FontStyleUnderline] = true
	}
	if flags&(1<<4) != 0 {
		styles[FontStyleStrikethrough] = true
	}
	return styles
}

// readFontDescriptor reads a FONT record's self-delimiting body. The caller
// must have already consumed the literal "FONT" tag via
// biff.Reader.NextNoLength, per the format's no-length-prefix special case.
func readFontDescriptor(r *biff.Reader) (FontDescriptor, error) {
	fd := newFontDescriptor()
	var err error
	fd.Version, err = r.GetU8()
	if err != nil {
		return fd, err
	}
	fd.Charset, err = r.GetU16()
	if err != nil {
		return fd, err
	}
	flags, err := r.GetU8()
	if err != nil {
		return fd, err
	}
	fd.Styles = flagsToStyles(flags)
	fd.Weight, err = r.GetU16()
	if err != nil {
		return fd, err
	}
	fd.Size, err = r.GetU32()
	if err != nil {
		return fd, err
	}
	fd.Name, err = r.GetShortString()
	return fd, err
}

// writeFontDescriptor emits a FONT record with no outer length prefix; the
// fixed-shape body is itself self-delimiting.
func writeFontDescriptor(w *biff.Writer, tag string, fd FontDescriptor) {
	inner := biff.NewWriter()
	inner.WriteRaw([]byte{fd.Version})
	inner.WriteRaw(u16le(fd.Charset))
	inner.WriteRaw([]byte{stylesToFlags(fd.Styles)})
	inner.WriteRaw(u16le(fd.Weight))
	inner.WriteRaw(u32le(fd.Size))
	name := fd.Name
	if len(name) > 255 {
		name = name[:255]
	}
	inner.WriteRaw([]byte{byte(len(name))})
	inner.WriteRaw([]byte(name))
	w.WriteTaggedWithoutSize(tag, inner.Bytes())
}

func u16le(v uint16) []byte {
	return []byte{byte(v), byte(v >> 8)}
}

func u32le(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

// ReadFontStream decodes a GameStg/FontN stream: per spec §6's container
// layout, the whole stream IS one font descriptor with no enclosing tag at
// all (unlike the embedded FONT field on TextBox/Decal, which at least
// carries a literal "FONT" tag name). NextNoLength("") consumes zero bytes
// and widens remaining to the whole buffer, reusing the same self-delimiting
// reader plumbing.
func ReadFontStream(data []byte) (FontDescriptor, error) {
	r := biff.NewReader(data)
	if err := r.NextNoLength(""); err != nil {
		return FontDescriptor{}, err
	}
	return readFontDescriptor(r)
}

// WriteFontStream encodes a FontDescriptor to the raw bytes of a
// GameStg/FontN stream.
func WriteFontStream(fd FontDescriptor) []byte {
	w := biff.NewWriter()
	w.WriteRaw([]byte{fd.Version})
	w.WriteRaw(u16le(fd.Charset))
	w.WriteRaw([]byte{stylesToFlags(fd.Styles)})
	w.WriteRaw(u16le(fd.Weight))
	w.WriteRaw(u32le(fd.Size))
	name := fd.Name
	if len(name) > 255 {
		name = name[:255]
	}
	w.WriteRaw([]byte{byte(len(name))})
	w.WriteRaw([]byte(name))
	return w.Bytes()
}
