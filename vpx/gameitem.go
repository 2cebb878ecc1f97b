package vpx

import (
	"encoding/binary"
	"fmt"

	"github.com/vpinball/vpxcore/biff"
	"github.com/vpinball/vpxcore/internal/vlog"
)

// Item type ids, per spec §3's table. Ids 13-16 never appear as independent
// items; encountering one while reading is a hard failure.
const (
	ItemTypeWall           uint32 = 0
	ItemTypeFlipper        uint32 = 1
	ItemTypeTimer          uint32 = 2
	ItemTypePlunger        uint32 = 3
	ItemTypeTextBox        uint32 = 4
	ItemTypeBumper         uint32 = 5
	ItemTypeTrigger        uint32 = 6
	ItemTypeLight          uint32 = 7
	ItemTypeKicker         uint32 = 8
	ItemTypeDecal          uint32 = 9
	ItemTypeGate           uint32 = 10
	ItemTypeSpinner        uint32 = 11
	ItemTypeRamp           uint32 = 12
	ItemTypeTable          uint32 = 13 // never independent; hard failure
	ItemTypeLightCenter    uint32 = 14 // never independent; hard failure
	ItemTypeDragPoint      uint32 = 15 // never independent; hard failure
	ItemTypeCollection     uint32 = 16 // never independent; hard failure
	ItemTypeReel           uint32 = 17
	ItemTypeLightSequencer uint32 = 18
	ItemTypePrimitive      uint32 = 19
	ItemTypeFlasher        uint32 = 20
	ItemTypeRubber         uint32 = 21
	ItemTypeHitTarget      uint32 = 22
)

func isHardFailureType(t uint32) bool {
	switch t {
	case ItemTypeTable, ItemTypeLightCenter, ItemTypeDragPoint, ItemTypeCollection:
		return true
	}
	return false
}

// GameItem is the top-level, polymorphic decoded form of a GameStg/GameItemN
// stream: a leading u32 type id followed by a tagged record stream.
type GameItem struct {
	TypeID uint32
	// Data holds exactly one of: *Wall, *Flipper, *Timer, *Plunger, *TextBox,
	// *Bumper, *Trigger, *Light, *Kicker, *Decal, *Gate, *Spinner, *Ramp,
	// *Reel, *LightSequencer, *Primitive, *Flasher, *Rubber, *HitTarget, or
	// *Generic for any type id not in the known set.
	Data interface{}
}

// ReadGameItem decodes one GameStg/GameItemN stream.
func ReadGameItem(raw []byte, log *vlog.Helper) (*GameItem, error) {
	if len(raw) < 4 {
		return nil, &FormatError{Path: "GameItem", Err: fmt.Errorf("short read on item type id")}
	}
	typeID := binary.LittleEndian.Uint32(raw[:4])
	if isHardFailureType(typeID) {
		return nil, &FormatError{Path: "GameItem", Err: fmt.Errorf("%w: type id %d", ErrHardFailureType, typeID)}
	}
	r := biff.NewReader(raw[4:])

	var data interface{}
	var err error
	switch typeID {
	case ItemTypeWall:
		data, err = readWall(r, log)
	case ItemTypeFlipper:
		data, err = readFlipper(r, log)
	case ItemTypeTimer:
		data, err = readTimer(r, log)
	case ItemTypePlunger:
		data, err = readPlunger(r, log)
	case ItemTypeTextBox:
		data, err = readTextBox(r, log)
	case ItemTypeBumper:
		data, err = readBumper(r, log)
	case ItemTypeTrigger:
		data, err = readTrigger(r, log)
	case ItemTypeLight:
		data, err = readLight(r, log)
	case ItemTypeKicker:
		data, err = readKicker(r, log)
	case ItemTypeDecal:
		data, err = readDecal(r, log)
	case ItemTypeGate:
		data, err = readGate(r, log)
	case ItemTypeSpinner:
		data, err = readSpinner(r, log)
	case ItemTypeRamp:
		data, err = readRamp(r, log)
	case ItemTypeReel:
		data, err = readReel(r, log)
	case ItemTypeLightSequencer:
		data, err = readLightSequencer(r, log)
	case ItemTypePrimitive:
		data, err = readPrimitive(r, log)
	case ItemTypeFlasher:
		data, err = readFlasher(r, log)
	case ItemTypeRubber:
		data, err = readRubber(r, log)
	case ItemTypeHitTarget:
		data, err = readHitTarget(r, log)
	default:
		data, err = readGeneric(r, log)
	}
	if err != nil {
		return nil, &FormatError{Path: "GameItem", Err: err}
	}
	return &GameItem{TypeID: typeID, Data: data}, nil
}

// WriteGameItem re-encodes a GameItem to its on-disk form: leading u32 type
// id, then the variant's tagged record stream, then ENDB.
func WriteGameItem(gi *GameItem) []byte {
	var typeBuf [4]byte
	binary.LittleEndian.PutUint32(typeBuf[:], gi.TypeID)

	w := biff.NewWriter()
	switch v := gi.Data.(type) {
	case *Wall:
		writeWall(w, v)
	case *Flipper:
		writeFlipper(w, v)
	case *Timer:
		writeTimer(w, v)
	case *Plunger:
		writePlunger(w, v)
	case *TextBox:
		writeTextBox(w, v)
	case *Bumper:
		writeBumper(w, v)
	case *Trigger:
		writeTrigger(w, v)
	case *Light:
		writeLight(w, v)
	case *Kicker:
		writeKicker(w, v)
	case *Decal:
		writeDecal(w, v)
	case *Gate:
		writeGate(w, v)
	case *Spinner:
		writeSpinner(w, v)
	case *Ramp:
		writeRamp(w, v)
	case *Reel:
		writeReel(w, v)
	case *LightSequencer:
		writeLightSequencer(w, v)
	case *Primitive:
		writePrimitive(w, v)
	case *Flasher:
		writeFlasher(w, v)
	case *Rubber:
		writeRubber(w, v)
	case *HitTarget:
		writeHitTarget(w, v)
	case *Generic:
		writeGeneric(w, v)
	default:
		panic(fmt.Sprintf("vpx: unhandled game item payload type %T", gi.Data))
	}
	w.WriteMarkerTag(biff.EndTag)

	out := make([]byte, 0, 4+w.Len())
	out = append(out, typeBuf[:]...)
	out = append(out, w.Bytes()...)
	return out
}
