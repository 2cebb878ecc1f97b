package vpx

import "github.com/vpinball/vpxcore/biff"

// CustomInfoTags decodes/encodes the GameStg/CustomInfoTags stream: an
// ordered tagged-record list of CUST records, each naming one user-defined
// TableInfo property. The write order fixes the on-disk custom-info-tag
// order and is part of the MAC input (spec §4.7 rule 12).
type CustomInfoTags struct {
	Names []string
}

// ReadCustomInfoTags decodes a GameStg/CustomInfoTags stream. A missing
// stream is represented by the caller passing nil/empty data, which yields
// an empty list per spec §8's "Missing CustomInfoTags stream" boundary case.
func ReadCustomInfoTags(data []byte) (*CustomInfoTags, error) {
	cit := &CustomInfoTags{}
	r := biff.NewReader(data)
	for {
		if err := r.Next(); err != nil {
			return nil, &FormatError{Path: "GameStg/CustomInfoTags", Err: err}
		}
		if r.IsEOF() {
			break
		}
		if r.Tag() != "CUST" {
			r.SkipRemaining()
			continue
		}
		name, err := r.GetString()
		if err != nil {
			return nil, &FormatError{Path: "GameStg/CustomInfoTags", Err: err}
		}
		cit.Names = append(cit.Names, name)
	}
	return cit, nil
}

// WriteCustomInfoTags encodes the stream in the given name order.
func WriteCustomInfoTags(cit *CustomInfoTags) []byte {
	w := biff.NewWriter()
	for _, name := range cit.Names {
		w.WriteString("CUST", name)
	}
	w.WriteMarkerTag(biff.EndTag)
	return w.Bytes()
}
