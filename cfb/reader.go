package cfb

import (
	"encoding/binary"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// OpenFile memory-maps path and parses it as a compound file container. The
// mapping is released before OpenFile returns; Container never holds a
// reference to the underlying file, matching the teacher's mmap-then-copy
// pattern for bounded, bounds-checked parsing.
func OpenFile(path string) (*Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer data.Unmap()

	return Open([]byte(data))
}

// Open parses an in-memory compound file image.
func Open(data []byte) (*Container, error) {
	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	sectorSize := h.sectorSize()
	numSectors := (len(data) - headerSize) / sectorSize

	readSector := func(n uint32) ([]byte, error) {
		if n == sectorFree || n == sectorEndOfChain || n == sectorFAT || n == sectorDIFAT {
			return nil, ErrCorrupt
		}
		start := headerSize + int(n)*sectorSize
		end := start + sectorSize
		if start < 0 || end > len(data) || int(n) >= numSectors {
			return nil, ErrCorrupt
		}
		return data[start:end], nil
	}

	// Build the full FAT: header's 109 inline entries, plus any DIFAT chain.
	fat := make([]uint32, 0, difatHeaderEntries)
	for _, loc := range h.DIFAT {
		fat = append(fat, loc)
	}
	difatSector := h.FirstDIFATSectorLoc
	for i := uint32(0); i < h.NumDIFATSectors; i++ {
		sec, err := readSector(difatSector)
		if err != nil {
			return nil, err
		}
		entriesPerSector := sectorSize/4 - 1
		for j := 0; j < entriesPerSector; j++ {
			fat = append(fat, binary.LittleEndian.Uint32(sec[j*4:j*4+4]))
		}
		difatSector = binary.LittleEndian.Uint32(sec[sectorSize-4 : sectorSize])
	}

	fatEntriesPerSector := sectorSize / 4
	fatTable := make([]uint32, 0, len(fat)*fatEntriesPerSector)
	for _, loc := range fat {
		if loc == sectorFree {
			continue
		}
		sec, err := readSector(loc)
		if err != nil {
			return nil, err
		}
		for j := 0; j < fatEntriesPerSector; j++ {
			fatTable = append(fatTable, binary.LittleEndian.Uint32(sec[j*4:j*4+4]))
		}
	}

	followChain := func(start uint32) ([]byte, error) {
		var out []byte
		seen := map[uint32]bool{}
		cur := start
		for cur != sectorEndOfChain && cur != sectorFree {
			if seen[cur] {
				return nil, ErrCorrupt
			}
			seen[cur] = true
			sec, err := readSector(cur)
			if err != nil {
				return nil, err
			}
			out = append(out, sec...)
			if int(cur) >= len(fatTable) {
				return nil, ErrCorrupt
			}
			cur = fatTable[cur]
		}
		return out, nil
	}

	dirBytes, err := followChain(h.FirstDirSectorLoc)
	if err != nil {
		return nil, err
	}
	numDirEntries := len(dirBytes) / dirEntrySize
	entries := make([]dirEntry, numDirEntries)
	for i := 0; i < numDirEntries; i++ {
		entries[i] = parseDirEntry(dirBytes[i*dirEntrySize : (i+1)*dirEntrySize])
	}
	if numDirEntries == 0 {
		return nil, ErrInvalidContainer
	}

	// The root entry's own chain holds the mini stream.
	var miniStream []byte
	if entries[0].StartingSector != sectorEndOfChain && entries[0].StartingSector != sectorFree {
		miniStream, err = followChain(entries[0].StartingSector)
		if err != nil {
			return nil, err
		}
	}

	var miniFAT []uint32
	if h.NumMiniFATSectors > 0 {
		miniFATBytes, err := followChain(h.FirstMiniFATSectorLoc)
		if err != nil {
			return nil, err
		}
		miniFAT = make([]uint32, len(miniFATBytes)/4)
		for i := range miniFAT {
			miniFAT[i] = binary.LittleEndian.Uint32(miniFATBytes[i*4 : i*4+4])
		}
	}

	followMiniChain := func(start uint32, size uint64) ([]byte, error) {
		var out []byte
		seen := map[uint32]bool{}
		cur := start
		for cur != sectorEndOfChain && cur != sectorFree {
			if seen[cur] {
				return nil, ErrCorrupt
			}
			seen[cur] = true
			off := int(cur) * miniSectorSize
			if off < 0 || off+miniSectorSize > len(miniStream) {
				return nil, ErrCorrupt
			}
			out = append(out, miniStream[off:off+miniSectorSize]...)
			if int(cur) >= len(miniFAT) {
				return nil, ErrCorrupt
			}
			cur = miniFAT[cur]
		}
		if uint64(len(out)) > size {
			out = out[:size]
		}
		return out, nil
	}

	cutoff := h.MiniStreamCutoffSize
	if cutoff == 0 {
		cutoff = defaultMiniStreamCutoff
	}

	// Build Entry tree by following child/left/right links (an in-order
	// binary-search-tree walk of each storage's children).
	var buildEntry func(idx uint32) (*Entry, error)
	var collectSiblings func(idx uint32, out *[]*Entry) error
	collectSiblings = func(idx uint32, out *[]*Entry) error {
		if idx == sectorFree {
			return nil
		}
		if int(idx) >= len(entries) {
			return ErrCorrupt
		}
		de := entries[idx]
		if err := collectSiblings(de.LeftSibling, out); err != nil {
			return err
		}
		e, err := buildEntry(idx)
		if err != nil {
			return err
		}
		*out = append(*out, e)
		return collectSiblings(de.RightSibling, out)
	}
	buildEntry = func(idx uint32) (*Entry, error) {
		de := entries[idx]
		e := &Entry{Name: de.Name, CLSID: de.CLSID}
		switch de.ObjectType {
		case objectTypeStorage, objectTypeRootStorage:
			e.IsStorage = true
			if err := collectSiblings(de.Child, &e.Children); err != nil {
				return nil, err
			}
		case objectTypeStream:
			if de.StreamSize < uint64(cutoff) {
				data, err := followMiniChain(de.StartingSector, de.StreamSize)
				if err != nil {
					return nil, err
				}
				e.Data = data
			} else {
				data, err := followChain(de.StartingSector)
				if err != nil {
					return nil, err
				}
				if uint64(len(data)) > de.StreamSize {
					data = data[:de.StreamSize]
				}
				e.Data = data
			}
		default:
			return nil, ErrCorrupt
		}
		return e, nil
	}

	root, err := buildEntry(0)
	if err != nil {
		return nil, err
	}

	return &Container{
		Version: int(h.MajorVersion),
		root:    root,
	}, nil
}
