package cfb

import (
	"encoding/binary"
	"strings"
)

// dirEntry mirrors the 128-byte MS-CFB directory entry structure.
type dirEntry struct {
	Name           string
	ObjectType     byte
	Color          byte
	LeftSibling    uint32
	RightSibling   uint32
	Child          uint32
	CLSID          [16]byte
	StateBits      uint32
	CreationTime   uint64
	ModifiedTime   uint64
	StartingSector uint32
	StreamSize     uint64
}

func parseDirEntry(buf []byte) dirEntry {
	nameLen := int(binary.LittleEndian.Uint16(buf[64:66]))
	var name string
	if nameLen >= 2 {
		if nameLen > 64 {
			nameLen = 64
		}
		u16 := make([]uint16, 0, nameLen/2)
		for i := 0; i+2 <= nameLen; i += 2 {
			u16 = append(u16, binary.LittleEndian.Uint16(buf[i:i+2]))
		}
		name = utf16ToString(u16)
	}
	d := dirEntry{
		Name:           name,
		ObjectType:     buf[66],
		Color:          buf[67],
		LeftSibling:    binary.LittleEndian.Uint32(buf[68:72]),
		RightSibling:   binary.LittleEndian.Uint32(buf[72:76]),
		Child:          binary.LittleEndian.Uint32(buf[76:80]),
		StateBits:      binary.LittleEndian.Uint32(buf[96:100]),
		CreationTime:   binary.LittleEndian.Uint64(buf[100:108]),
		ModifiedTime:   binary.LittleEndian.Uint64(buf[108:116]),
		StartingSector: binary.LittleEndian.Uint32(buf[116:120]),
		StreamSize:     binary.LittleEndian.Uint64(buf[120:128]),
	}
	copy(d.CLSID[:], buf[80:96])
	return d
}

func (d dirEntry) encode() []byte {
	buf := make([]byte, dirEntrySize)
	u16 := stringToUTF16(d.Name)
	// Names are stored with a trailing NUL code unit, per spec.
	nameLen := 0
	if len(d.Name) > 0 {
		for i, c := range u16 {
			off := i * 2
			if off+2 > 64 {
				break
			}
			binary.LittleEndian.PutUint16(buf[off:off+2], c)
		}
		nameLen = (len(u16) + 1) * 2
		if nameLen > 64 {
			nameLen = 64
		}
	}
	binary.LittleEndian.PutUint16(buf[64:66], uint16(nameLen))
	buf[66] = d.ObjectType
	buf[67] = d.Color
	binary.LittleEndian.PutUint32(buf[68:72], d.LeftSibling)
	binary.LittleEndian.PutUint32(buf[72:76], d.RightSibling)
	binary.LittleEndian.PutUint32(buf[76:80], d.Child)
	copy(buf[80:96], d.CLSID[:])
	binary.LittleEndian.PutUint32(buf[96:100], d.StateBits)
	binary.LittleEndian.PutUint64(buf[100:108], d.CreationTime)
	binary.LittleEndian.PutUint64(buf[108:116], d.ModifiedTime)
	binary.LittleEndian.PutUint32(buf[116:120], d.StartingSector)
	binary.LittleEndian.PutUint64(buf[120:128], d.StreamSize)
	return buf
}

// compareNames implements the MS-CFB directory-entry ordering rule: shorter
// names sort first, then case-insensitive codepoint comparison.
func compareNames(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	ua, ub := strings.ToUpper(a), strings.ToUpper(b)
	switch {
	case ua < ub:
		return -1
	case ua > ub:
		return 1
	default:
		return 0
	}
}

func utf16ToString(u16 []uint16) string {
	// Strip a trailing NUL code unit if present.
	for len(u16) > 0 && u16[len(u16)-1] == 0 {
		u16 = u16[:len(u16)-1]
	}
	runes := make([]rune, 0, len(u16))
	for i := 0; i < len(u16); i++ {
		r := u16[i]
		if r >= 0xD800 && r <= 0xDBFF && i+1 < len(u16) {
			r2 := u16[i+1]
			if r2 >= 0xDC00 && r2 <= 0xDFFF {
				combined := (rune(r)-0xD800)<<10 | (rune(r2) - 0xDC00)
				runes = append(runes, combined+0x10000)
				i++
				continue
			}
		}
		runes = append(runes, rune(r))
	}
	return string(runes)
}

func stringToUTF16(s string) []uint16 {
	out := make([]uint16, 0, len(s))
	for _, r := range s {
		if r <= 0xFFFF {
			out = append(out, uint16(r))
			continue
		}
		r -= 0x10000
		out = append(out, uint16(0xD800+(r>>10)), uint16(0xDC00+(r&0x3FF)))
	}
	return out
}
