package vpx

import (
	"fmt"

	"github.com/vpinball/vpxcore/biff"
	"github.com/vpinball/vpxcore/cfb"
	"github.com/vpinball/vpxcore/internal/md2"
	"github.com/vpinball/vpxcore/internal/vlog"
)

// macHeader is the literal fed to the digest before any stream content
// (original_source/src/vpx/mod.rs: hasher.update(b"Visual Pinball")).
var macHeader = []byte("Visual Pinball")

// macUnstructuredStreams lists, in hashing order, the streams fed as raw
// bytes rather than BIFF records. TableSaveDate and TableSaveRev exist but
// are deliberately excluded: a table resaved with the same content but a
// different timestamp must still verify (spec §4.7 / §9).
var macUnstructuredStreams = []string{
	"TableInfo/TableName",
	"TableInfo/AuthorName",
	"TableInfo/TableVersion",
	"TableInfo/ReleaseDate",
	"TableInfo/AuthorEmail",
	"TableInfo/AuthorWebSite",
	"TableInfo/TableBlurb",
	"TableInfo/TableDescription",
	"TableInfo/TableRules",
	"TableInfo/Screenshot",
}

// ComputeMAC recomputes the MD2-based integrity code over a container's
// streams, exactly mirroring mod.rs's hashing loop: the literal header, then
// GameStg/Version, then the unstructured TableInfo fields, then
// GameStg/CustomInfoTags (itself hashed tag-by-tag, followed by a pass that
// feeds every TableInfo/<custom name> stream it references), then
// GameStg/GameData, then each GameStg/CollectionN stream — all BIFF-mode
// streams hashed record-by-record with CODE special-cased and the outer
// length never included.
func ComputeMAC(c *cfb.Container, customInfoTagNames []string, log *vlog.Helper) ([MACSize]byte, error) {
	h := md2.New()
	h.Write(macHeader)

	if c.IsStream("GameStg/Version") {
		data, err := c.ReadStream("GameStg/Version")
		if err != nil {
			return [MACSize]byte{}, &ContainerError{Path: "GameStg/Version", Err: err}
		}
		h.Write(data)
	}

	for _, path := range macUnstructuredStreams {
		if !c.IsStream(path) {
			continue
		}
		data, err := c.ReadStream(path)
		if err != nil {
			return [MACSize]byte{}, &ContainerError{Path: path, Err: err}
		}
		h.Write(data)
	}

	if c.IsStream("GameStg/CustomInfoTags") {
		if err := hashBiffStream(c, "GameStg/CustomInfoTags", h, log); err != nil {
			return [MACSize]byte{}, err
		}
		for _, name := range customInfoTagNames {
			path := "TableInfo/" + name
			if !c.IsStream(path) {
				continue
			}
			data, err := c.ReadStream(path)
			if err != nil {
				return [MACSize]byte{}, &ContainerError{Path: path, Err: err}
			}
			h.Write(data)
		}
	}

	if c.IsStream("GameStg/GameData") {
		if err := hashBiffStream(c, "GameStg/GameData", h, log); err != nil {
			return [MACSize]byte{}, err
		}
	}

	for i := 0; c.IsStream(collectionPath(i)); i++ {
		if err := hashBiffStream(c, collectionPath(i), h, log); err != nil {
			return [MACSize]byte{}, err
		}
	}

	var mac [MACSize]byte
	copy(mac[:], h.Sum(nil))
	return mac, nil
}

func collectionPath(i int) string {
	return fmt.Sprintf("GameStg/Collection%d", i)
}

// hashBiffStream feeds path's records into h in BIFF mode: every tag's
// record data (tag included, length excluded) except CODE, whose length is
// never hashed, only the literal "CODE" plus the code bytes themselves.
func hashBiffStream(c *cfb.Container, path string, h interface{ Write([]byte) (int, error) }, log *vlog.Helper) error {
	data, err := c.ReadStream(path)
	if err != nil {
		return &ContainerError{Path: path, Err: err}
	}
	r := biff.NewReader(data)
	for {
		if err := r.Next(); err != nil {
			return &FormatError{Path: path, Err: err}
		}
		if r.IsEOF() {
			break
		}
		if r.Tag() == "CODE" {
			h.Write([]byte("CODE"))
			n, err := r.GetU32()
			if err != nil {
				return &FormatError{Path: path, Err: err}
			}
			b, err := r.GetBytes(int(n))
			if err != nil {
				return &FormatError{Path: path, Err: err}
			}
			h.Write(b)
			continue
		}
		rec, err := r.GetRecordData(true)
		if err != nil {
			return &FormatError{Path: path, Err: err}
		}
		h.Write(rec)
	}
	return nil
}
