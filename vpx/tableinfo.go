package vpx

import "golang.org/x/text/encoding/unicode"

// WellKnownTableInfoNames lists the fixed TableInfo/<name> streams in the
// canonical order used both for enumeration and, for the first nine, for
// the MAC feed order (spec §4.7 rules 2-10). TableSaveDate and TableSaveRev
// exist but are deliberately excluded from the MAC (they change every save).
var WellKnownTableInfoNames = []string{
	"TableName", "AuthorName", "TableVersion", "ReleaseDate", "AuthorEmail",
	"AuthorWebSite", "TableBlurb", "TableDescription", "TableRules",
	"TableSaveDate", "TableSaveRev", "Screenshot",
}

// TableInfo holds the table metadata scattered across TableInfo/* streams.
// Every well-known field is a pointer so presence/absence survives a
// round-trip with no tag emitted for an absent field (spec §9 "optional
// fields across versions").
type TableInfo struct {
	TableName        *string
	AuthorName       *string
	TableVersion     *string
	ReleaseDate      *string
	AuthorEmail      *string
	AuthorWebSite    *string
	TableBlurb       *string
	TableDescription *string
	TableRules       *string
	TableSaveDate    *string
	TableSaveRev     *string
	Screenshot       []byte

	// Properties holds custom user-defined properties, keyed by the name
	// recorded in CustomInfoTags; each is a stream TableInfo/<name>.
	Properties map[string]string
}

var tableInfoUTF16Decoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
var tableInfoUTF16Encoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()

func decodeTableInfoString(data []byte) (string, error) {
	out, err := tableInfoUTF16Decoder.Bytes(data)
	if err != nil {
		return "", &EncodingError{Field: "TableInfo", Err: err}
	}
	return string(out), nil
}

func encodeTableInfoString(s string) []byte {
	out, err := tableInfoUTF16Encoder.Bytes([]byte(s))
	if err != nil {
		return nil
	}
	return out
}

// ReadTableInfo builds a TableInfo from a lookup of whatever TableInfo/<name>
// streams are present. streams maps stream name (relative to TableInfo/) to
// raw bytes; customNames is the ordered CustomInfoTags list, used to know
// which additional names to attempt.
func ReadTableInfo(streams map[string][]byte, customNames []string) (*TableInfo, error) {
	ti := &TableInfo{Properties: map[string]string{}}

	assign := func(data []byte, present bool) (*string, error) {
		if !present {
			return nil, nil
		}
		s, err := decodeTableInfoString(data)
		if err != nil {
			return nil, err
		}
		return &s, nil
	}

	var err error
	if d, ok := streams["TableName"]; ok {
		ti.TableName, err = assign(d, true)
	}
	if err == nil {
		if d, ok := streams["AuthorName"]; ok {
			ti.AuthorName, err = assign(d, true)
		}
	}
	if err == nil {
		if d, ok := streams["TableVersion"]; ok {
			ti.TableVersion, err = assign(d, true)
		}
	}
	if err == nil {
		if d, ok := streams["ReleaseDate"]; ok {
			ti.ReleaseDate, err = assign(d, true)
		}
	}
	if err == nil {
		if d, ok := streams["AuthorEmail"]; ok {
			ti.AuthorEmail, err = assign(d, true)
		}
	}
	if err == nil {
		if d, ok := streams["AuthorWebSite"]; ok {
			ti.AuthorWebSite, err = assign(d, true)
		}
	}
	if err == nil {
		if d, ok := streams["TableBlurb"]; ok {
			ti.TableBlurb, err = assign(d, true)
		}
	}
	if err == nil {
		if d, ok := streams["TableDescription"]; ok {
			ti.TableDescription, err = assign(d, true)
		}
	}
	if err == nil {
		if d, ok := streams["TableRules"]; ok {
			ti.TableRules, err = assign(d, true)
		}
	}
	if err == nil {
		if d, ok := streams["TableSaveDate"]; ok {
			ti.TableSaveDate, err = assign(d, true)
		}
	}
	if err == nil {
		if d, ok := streams["TableSaveRev"]; ok {
			ti.TableSaveRev, err = assign(d, true)
		}
	}
	if err != nil {
		return nil, err
	}
	if d, ok := streams["Screenshot"]; ok {
		ti.Screenshot = d
	}

	for _, name := range customNames {
		if d, ok := streams[name]; ok {
			s, err := decodeTableInfoString(d)
			if err != nil {
				return nil, err
			}
			ti.Properties[name] = s
		}
	}
	return ti, nil
}

// WriteTableInfo returns the set of TableInfo/<name> streams to write, keyed
// by name relative to TableInfo/. Absent well-known fields produce no entry.
func WriteTableInfo(ti *TableInfo, customNames []string) map[string][]byte {
	out := map[string][]byte{}
	put := func(name string, v *string) {
		if v != nil {
			out[name] = encodeTableInfoString(*v)
		}
	}
	put("TableName", ti.TableName)
	put("AuthorName", ti.AuthorName)
	put("TableVersion", ti.TableVersion)
	put("ReleaseDate", ti.ReleaseDate)
	put("AuthorEmail", ti.AuthorEmail)
	put("AuthorWebSite", ti.AuthorWebSite)
	put("TableBlurb", ti.TableBlurb)
	put("TableDescription", ti.TableDescription)
	put("TableRules", ti.TableRules)
	put("TableSaveDate", ti.TableSaveDate)
	put("TableSaveRev", ti.TableSaveRev)
	if ti.Screenshot != nil {
		out["Screenshot"] = ti.Screenshot
	}
	for _, name := range customNames {
		if v, ok := ti.Properties[name]; ok {
			out[name] = encodeTableInfoString(v)
		}
	}
	return out
}
