package vpx

import (
	"fmt"

	"github.com/vpinball/vpxcore/cfb"
	"github.com/vpinball/vpxcore/internal/vlog"
)

// Table is the fully decoded in-memory form of a .vpx file (spec §3).
type Table struct {
	CustomInfoTags []string
	Info           *TableInfo
	Version        uint32
	GameData       *GameData
	GameItems      []*GameItem
	Images         []*ImageData
	Sounds         []*SoundData
	Fonts          []FontDescriptor
	Collections    []*Collection
	MAC            [MACSize]byte
}

// Open reads a .vpx file from disk and decodes it fully, mirroring
// saferwall-pe's file.go Parse() orchestration: a single sequential pass
// over a container's directories, generalized here to stream-per-entity
// with index-ordered naming (spec §4.6).
func Open(path string, log *vlog.Helper) (*Table, error) {
	c, err := cfb.OpenFile(path)
	if err != nil {
		return nil, &ContainerError{Path: path, Err: err}
	}
	return Read(c, log)
}

// Read decodes a Table from an already-open compound container.
func Read(c *cfb.Container, log *vlog.Helper) (*Table, error) {
	t := &Table{}

	// 1. CustomInfoTags.
	if c.IsStream("GameStg/CustomInfoTags") {
		data, err := c.ReadStream("GameStg/CustomInfoTags")
		if err != nil {
			return nil, &ContainerError{Path: "GameStg/CustomInfoTags", Err: err}
		}
		cit, err := ReadCustomInfoTags(data)
		if err != nil {
			return nil, err
		}
		t.CustomInfoTags = cit.Names
	}

	// 2. TableInfo/*.
	tiStreams := map[string][]byte{}
	names := append([]string{}, WellKnownTableInfoNames...)
	names = append(names, t.CustomInfoTags...)
	for _, name := range names {
		path := "TableInfo/" + name
		if c.IsStream(path) {
			data, err := c.ReadStream(path)
			if err != nil {
				return nil, &ContainerError{Path: path, Err: err}
			}
			tiStreams[name] = data
		}
	}
	info, err := ReadTableInfo(tiStreams, t.CustomInfoTags)
	if err != nil {
		return nil, err
	}
	t.Info = info

	// 3. Version.
	if !c.IsStream("GameStg/Version") {
		return nil, &ContainerError{Path: "GameStg/Version", Err: fmt.Errorf("required stream missing")}
	}
	verData, err := c.ReadStream("GameStg/Version")
	if err != nil {
		return nil, &ContainerError{Path: "GameStg/Version", Err: err}
	}
	t.Version, err = ReadVersion(verData)
	if err != nil {
		return nil, err
	}

	// 4. GameData.
	if !c.IsStream("GameStg/GameData") {
		return nil, &ContainerError{Path: "GameStg/GameData", Err: fmt.Errorf("required stream missing")}
	}
	gdData, err := c.ReadStream("GameStg/GameData")
	if err != nil {
		return nil, &ContainerError{Path: "GameStg/GameData", Err: err}
	}
	t.GameData, err = ReadGameData(gdData, log)
	if err != nil {
		return nil, err
	}

	// 5. Game items. Each stream is independent (spec §4.6 concurrency note);
	// decoded sequentially here since the core has no concurrency requirement
	// beyond "may be parallelized", not "must be".
	for i := uint32(0); i < t.GameData.GameItemsSize; i++ {
		path := fmt.Sprintf("GameStg/GameItem%d", i)
		raw, err := c.ReadStream(path)
		if err != nil {
			return nil, &ContainerError{Path: path, Err: err}
		}
		gi, err := ReadGameItem(raw, log)
		if err != nil {
			return nil, err
		}
		t.GameItems = append(t.GameItems, gi)
	}

	// 6. Images, sounds, fonts, collections.
	for i := uint32(0); i < t.GameData.ImagesSize; i++ {
		path := fmt.Sprintf("GameStg/Image%d", i)
		raw, err := c.ReadStream(path)
		if err != nil {
			return nil, &ContainerError{Path: path, Err: err}
		}
		img, err := ReadImage(raw, log)
		if err != nil {
			return nil, err
		}
		t.Images = append(t.Images, img)
	}
	for i := uint32(0); i < t.GameData.SoundsSize; i++ {
		path := fmt.Sprintf("GameStg/Sound%d", i)
		raw, err := c.ReadStream(path)
		if err != nil {
			return nil, &ContainerError{Path: path, Err: err}
		}
		snd, err := ReadSound(raw, log)
		if err != nil {
			return nil, err
		}
		t.Sounds = append(t.Sounds, snd)
	}
	for i := uint32(0); i < t.GameData.FontsSize; i++ {
		path := fmt.Sprintf("GameStg/Font%d", i)
		raw, err := c.ReadStream(path)
		if err != nil {
			return nil, &ContainerError{Path: path, Err: err}
		}
		fd, err := ReadFontStream(raw)
		if err != nil {
			return nil, &FormatError{Path: path, Err: err}
		}
		t.Fonts = append(t.Fonts, fd)
	}
	for i := uint32(0); i < t.GameData.CollectionsSize; i++ {
		path := fmt.Sprintf("GameStg/Collection%d", i)
		raw, err := c.ReadStream(path)
		if err != nil {
			return nil, &ContainerError{Path: path, Err: err}
		}
		col, err := ReadCollection(raw, log)
		if err != nil {
			return nil, err
		}
		t.Collections = append(t.Collections, col)
	}

	if c.IsStream("GameStg/MAC") {
		macData, err := c.ReadStream("GameStg/MAC")
		if err != nil {
			return nil, &ContainerError{Path: "GameStg/MAC", Err: err}
		}
		t.MAC, err = ReadMAC(macData)
		if err != nil {
			return nil, err
		}
	}

	return t, nil
}

// syncCounts enforces the "counts equal slice lengths" invariant (spec §3)
// before writing.
func (t *Table) syncCounts() {
	t.GameData.GameItemsSize = uint32(len(t.GameItems))
	t.GameData.ImagesSize = uint32(len(t.Images))
	t.GameData.SoundsSize = uint32(len(t.Sounds))
	t.GameData.FontsSize = uint32(len(t.Fonts))
	t.GameData.CollectionsSize = uint32(len(t.Collections))
}

// Write encodes t into a fresh compound container, computing and writing
// the MAC last (spec §4.6 step 7 / §9 "MAC stream writing timing").
func Write(t *Table, log *vlog.Helper) (*cfb.Container, error) {
	t.syncCounts()

	c := cfb.New()
	if err := c.CreateStorage("GameStg"); err != nil {
		return nil, &ContainerError{Path: "GameStg", Err: err}
	}
	if err := c.CreateStorage("TableInfo"); err != nil {
		return nil, &ContainerError{Path: "TableInfo", Err: err}
	}

	if err := c.CreateStream("GameStg/Version", WriteVersion(t.Version), true); err != nil {
		return nil, &ContainerError{Path: "GameStg/Version", Err: err}
	}

	citBytes := WriteCustomInfoTags(&CustomInfoTags{Names: t.CustomInfoTags})
	if err := c.CreateStream("GameStg/CustomInfoTags", citBytes, true); err != nil {
		return nil, &ContainerError{Path: "GameStg/CustomInfoTags", Err: err}
	}

	for name, data := range WriteTableInfo(t.Info, t.CustomInfoTags) {
		path := "TableInfo/" + name
		if err := c.CreateStream(path, data, true); err != nil {
			return nil, &ContainerError{Path: path, Err: err}
		}
	}

	if err := c.CreateStream("GameStg/GameData", WriteGameData(t.GameData), true); err != nil {
		return nil, &ContainerError{Path: "GameStg/GameData", Err: err}
	}

	for i, gi := range t.GameItems {
		path := fmt.Sprintf("GameStg/GameItem%d", i)
		if err := c.CreateStream(path, WriteGameItem(gi), true); err != nil {
			return nil, &ContainerError{Path: path, Err: err}
		}
	}
	for i, img := range t.Images {
		path := fmt.Sprintf("GameStg/Image%d", i)
		data, err := WriteImage(img)
		if err != nil {
			return nil, err
		}
		if err := c.CreateStream(path, data, true); err != nil {
			return nil, &ContainerError{Path: path, Err: err}
		}
	}
	for i, snd := range t.Sounds {
		path := fmt.Sprintf("GameStg/Sound%d", i)
		if err := c.CreateStream(path, WriteSound(snd), true); err != nil {
			return nil, &ContainerError{Path: path, Err: err}
		}
	}
	for i, fd := range t.Fonts {
		path := fmt.Sprintf("GameStg/Font%d", i)
		if err := c.CreateStream(path, WriteFontStream(fd), true); err != nil {
			return nil, &ContainerError{Path: path, Err: err}
		}
	}
	for i, col := range t.Collections {
		path := fmt.Sprintf("GameStg/Collection%d", i)
		if err := c.CreateStream(path, WriteCollection(col), true); err != nil {
			return nil, &ContainerError{Path: path, Err: err}
		}
	}

	mac, err := ComputeMAC(c, t.CustomInfoTags, log)
	if err != nil {
		return nil, err
	}
	t.MAC = mac
	if err := c.CreateStream("GameStg/MAC", WriteMAC(mac), true); err != nil {
		return nil, &ContainerError{Path: "GameStg/MAC", Err: err}
	}

	return c, nil
}

// ReadVersionFrom is a streaming accessor (spec §6): it reads GameStg/Version
// directly from a container handle without materializing the rest of the
// Table, for callers that only need the version (e.g. deciding how to parse
// a sibling stream before committing to a full Read).
func ReadVersionFrom(c *cfb.Container) (uint32, error) {
	if !c.IsStream("GameStg/Version") {
		return 0, &ContainerError{Path: "GameStg/Version", Err: fmt.Errorf("required stream missing")}
	}
	data, err := c.ReadStream("GameStg/Version")
	if err != nil {
		return 0, &ContainerError{Path: "GameStg/Version", Err: err}
	}
	return ReadVersion(data)
}

// ReadTableInfoFrom is a streaming accessor (spec §6): it reads the
// TableInfo/* streams directly from a container handle, first consulting
// GameStg/CustomInfoTags (if present) to know which extra names to attempt.
func ReadTableInfoFrom(c *cfb.Container) (*TableInfo, error) {
	var customNames []string
	if c.IsStream("GameStg/CustomInfoTags") {
		data, err := c.ReadStream("GameStg/CustomInfoTags")
		if err != nil {
			return nil, &ContainerError{Path: "GameStg/CustomInfoTags", Err: err}
		}
		cit, err := ReadCustomInfoTags(data)
		if err != nil {
			return nil, err
		}
		customNames = cit.Names
	}

	streams := map[string][]byte{}
	names := append([]string{}, WellKnownTableInfoNames...)
	names = append(names, customNames...)
	for _, name := range names {
		path := "TableInfo/" + name
		if c.IsStream(path) {
			data, err := c.ReadStream(path)
			if err != nil {
				return nil, &ContainerError{Path: path, Err: err}
			}
			streams[name] = data
		}
	}
	return ReadTableInfo(streams, customNames)
}

// ReadImagesFrom is a streaming accessor (spec §6): it reads GameStg/Image0..
// directly from a container handle, using GameStg/GameData's ImagesSize count
// to know how many to read, without materializing game items/sounds/etc.
func ReadImagesFrom(c *cfb.Container, log *vlog.Helper) ([]*ImageData, error) {
	gd, err := readGameDataFrom(c, log)
	if err != nil {
		return nil, err
	}
	var images []*ImageData
	for i := uint32(0); i < gd.ImagesSize; i++ {
		path := fmt.Sprintf("GameStg/Image%d", i)
		raw, err := c.ReadStream(path)
		if err != nil {
			return nil, &ContainerError{Path: path, Err: err}
		}
		img, err := ReadImage(raw, log)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

// ReadSoundsFrom mirrors ReadImagesFrom for GameStg/Sound0.. (spec §6).
func ReadSoundsFrom(c *cfb.Container, log *vlog.Helper) ([]*SoundData, error) {
	gd, err := readGameDataFrom(c, log)
	if err != nil {
		return nil, err
	}
	var sounds []*SoundData
	for i := uint32(0); i < gd.SoundsSize; i++ {
		path := fmt.Sprintf("GameStg/Sound%d", i)
		raw, err := c.ReadStream(path)
		if err != nil {
			return nil, &ContainerError{Path: path, Err: err}
		}
		snd, err := ReadSound(raw, log)
		if err != nil {
			return nil, err
		}
		sounds = append(sounds, snd)
	}
	return sounds, nil
}

func readGameDataFrom(c *cfb.Container, log *vlog.Helper) (*GameData, error) {
	if !c.IsStream("GameStg/GameData") {
		return nil, &ContainerError{Path: "GameStg/GameData", Err: fmt.Errorf("required stream missing")}
	}
	data, err := c.ReadStream("GameStg/GameData")
	if err != nil {
		return nil, &ContainerError{Path: "GameStg/GameData", Err: err}
	}
	return ReadGameData(data, log)
}

// Compact rewrites the container at path to reclaim space, per spec §4.1.
func Compact(path string) error {
	c, err := cfb.OpenFile(path)
	if err != nil {
		return &ContainerError{Path: path, Err: err}
	}
	if err := c.Compact(path); err != nil {
		return &ContainerError{Path: path, Err: err}
	}
	return nil
}

// VerifyResult is the structured outcome of Verify (spec §7: "returns a
// structured result rather than erroring so callers can present both
// 'file unreadable' and 'MAC mismatch' uniformly").
type VerifyResult struct {
	OK    bool
	Path  string
	Cause error
}

// Verify recomputes the MAC over c's streams and compares it against the
// stored GameStg/MAC. A missing or unreadable stream is reported like a
// mismatch, as a VerifyResult with OK false and the failure in Cause; the
// returned error is always nil.
func Verify(c *cfb.Container, log *vlog.Helper) (VerifyResult, error) {
	if !c.IsStream("GameStg/MAC") {
		return VerifyResult{Path: "GameStg/MAC", Cause: &ContainerError{Path: "GameStg/MAC", Err: fmt.Errorf("required stream missing")}}, nil
	}
	storedData, err := c.ReadStream("GameStg/MAC")
	if err != nil {
		return VerifyResult{Path: "GameStg/MAC", Cause: &ContainerError{Path: "GameStg/MAC", Err: err}}, nil
	}
	stored, err := ReadMAC(storedData)
	if err != nil {
		return VerifyResult{Path: "GameStg/MAC", Cause: err}, nil
	}

	var customNames []string
	if c.IsStream("GameStg/CustomInfoTags") {
		data, err := c.ReadStream("GameStg/CustomInfoTags")
		if err != nil {
			return VerifyResult{Path: "GameStg/CustomInfoTags", Cause: &ContainerError{Path: "GameStg/CustomInfoTags", Err: err}}, nil
		}
		cit, err := ReadCustomInfoTags(data)
		if err != nil {
			return VerifyResult{Path: "GameStg/CustomInfoTags", Cause: err}, nil
		}
		customNames = cit.Names
	}

	computed, err := ComputeMAC(c, customNames, log)
	if err != nil {
		return VerifyResult{Path: "GameStg/MAC", Cause: err}, nil
	}
	if stored != computed {
		return VerifyResult{OK: false, Path: "GameStg/MAC", Cause: &MacMismatch{Stored: stored, Computed: computed}}, nil
	}
	return VerifyResult{OK: true, Path: "GameStg/MAC"}, nil
}
