package vpx

import (
	"bytes"

	"github.com/vpinball/vpxcore/biff"
	"github.com/vpinball/vpxcore/internal/vlog"
)

// soundTrailer is the fixed 4-byte legacy sentinel every SoundData stream
// ends with. Per the Open Question decision recorded in DESIGN.md, this is
// treated as mandatory on write and verified (not merely skipped) on read.
var soundTrailer = []byte{0x00, 0x00, 0x00, 0x00}

// SoundData is one GameStg/SoundN stream. original_source/src/vpx/sound.rs
// was filtered out of the retrieval pack; the field set follows spec
// §4.4's prose directly.
type SoundData struct {
	Name         string
	Path         string
	InternalName string
	SampleRate   uint32
	Data         []byte

	// OutputTarget is a field introduced in a later table format release;
	// nil on files that predate it (spec §4.4 "version gate").
	OutputTarget *uint32
}

// ReadSound decodes a GameStg/SoundN stream, including the trailer check.
func ReadSound(data []byte, log *vlog.Helper) (*SoundData, error) {
	if len(data) < len(soundTrailer) {
		return nil, &FormatError{Path: "Sound", Err: ErrShortStream}
	}
	trailer := data[len(data)-len(soundTrailer):]
	if !bytes.Equal(trailer, soundTrailer) {
		return nil, &FormatError{Path: "Sound", Err: ErrMissingSoundTrailer}
	}
	body := data[:len(data)-len(soundTrailer)]

	s := &SoundData{}
	r := biff.NewReader(body)
	for {
		if err := r.Next(); err != nil {
			return nil, &FormatError{Path: "Sound", Err: err}
		}
		if r.IsEOF() {
			break
		}
		var err error
		switch r.Tag() {
		case "NAME":
			s.Name, err = r.GetWideString()
		case "PATH":
			s.Path, err = r.GetString()
		case "SNDN":
			s.InternalName, err = r.GetString()
		case "RATE":
			s.SampleRate, err = r.GetU32()
		case "DATA":
			s.Data, err = r.GetRecordData(false)
		case "OTGT":
			var v uint32
			v, err = r.GetU32()
			s.OutputTarget = &v
		default:
			log.Warnf("sound: unknown tag %q, skipping", r.Tag())
			r.SkipRemaining()
		}
		if err != nil {
			return nil, &FormatError{Path: "Sound", Err: err}
		}
	}
	return s, nil
}

// WriteSound encodes a SoundData to its on-disk form, including the
// mandatory trailer.
func WriteSound(s *SoundData) []byte {
	w := biff.NewWriter()
	w.WriteWideString("NAME", s.Name)
	w.WriteString("PATH", s.Path)
	w.WriteString("SNDN", s.InternalName)
	w.WriteU32("RATE", s.SampleRate)
	w.WriteTagged("DATA", s.Data)
	if s.OutputTarget != nil {
		w.WriteU32("OTGT", *s.OutputTarget)
	}
	w.WriteMarkerTag(biff.EndTag)
	out := w.Bytes()
	out = append(out, soundTrailer...)
	return out
}
