package cfb

import (
	"encoding/binary"
	"io"
	"os"
	"sort"
)

// flatEntry is one directory-entry slot in the serialized output.
type flatEntry struct {
	entry *Entry
	de    dirEntry
}

// WriteTo serializes the container as a fresh, minimal compound file at
// c.Version (3 or 4; see spec §4.1's "same version" compact contract). Every
// call produces a compacted layout: there is no incremental patching of a
// previous image, so Compact and WriteTo are the same operation (see the
// package doc comment for the rationale).
func (c *Container) WriteTo(w io.Writer) (int64, error) {
	buf, err := c.encode()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(buf)
	return int64(n), err
}

// Compact rewrites the container to path, replacing any existing file there.
// Because Container always serializes a fresh, minimal layout, Compact is
// write-then-rename so a reader never observes a partially written file.
func (c *Container) Compact(path string) error {
	tmp := path + ".compact.tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// encode serializes the container. It first assigns directory-entry sibling
// links and indices by walking the tree in the CFB sort order, flattening it
// into the sequential directory array the format requires (index 0 is always
// the root storage), then lays out the stream data and allocation tables.
func (c *Container) encode() ([]byte, error) {
	// Compact's contract (spec §4.1) is "a fresh container of the same
	// version"; a version-4 source must round-trip as version-4 rather than
	// being silently downgraded to the version-3 default sector size.
	majorVersion := uint16(3)
	sectorShift := uint16(9)
	minorVersion := uint16(0x003E)
	if c.Version == 4 {
		majorVersion = 4
		sectorShift = 12
		minorVersion = 0x0003
	}
	sectorSize := 1 << sectorShift
	cutoff := uint32(defaultMiniStreamCutoff)

	var flat []*flatEntry

	var assignChildren func(e *Entry) uint32 // returns root-of-subtree dir index, or sectorFree
	assignChildren = func(e *Entry) uint32 {
		if len(e.Children) == 0 {
			return sectorFree
		}
		children := append([]*Entry(nil), e.Children...)
		sort.SliceStable(children, func(i, j int) bool {
			return compareNames(children[i].Name, children[j].Name) < 0
		})
		// Build a simple right-leaning chain: still a valid (if unbalanced)
		// binary search tree over sibling names, which is all the format
		// requires for correct traversal.
		var prev *flatEntry
		var head uint32 = sectorFree
		for i, ch := range children {
			fe := &flatEntry{entry: ch}
			flat = append(flat, fe)
			idx := uint32(len(flat) - 1)
			if i == 0 {
				head = idx
			}
			if prev != nil {
				prev.de.RightSibling = idx
			}
			prev = fe
			fe.de.LeftSibling = sectorFree
			fe.de.RightSibling = sectorFree
			if ch.IsStorage {
				fe.de.ObjectType = objectTypeStorage
				fe.de.Child = assignChildren(ch)
			} else {
				fe.de.ObjectType = objectTypeStream
			}
			fe.de.Color = colorBlack
			fe.de.Name = ch.Name
			fe.de.CLSID = ch.CLSID
		}
		return head
	}

	rootFlat := &flatEntry{entry: c.root}
	rootFlat.de.Name = "Root Entry"
	rootFlat.de.ObjectType = objectTypeRootStorage
	rootFlat.de.Color = colorBlack
	rootFlat.de.LeftSibling = sectorFree
	rootFlat.de.RightSibling = sectorFree
	flat = []*flatEntry{rootFlat}
	rootFlat.de.Child = assignChildren(c.root)

	// Partition streams into "mini" (small) and "big" (regular FAT) groups.
	type miniAlloc struct {
		fe    *flatEntry
		start uint32
		count uint32
	}
	type bigAlloc struct {
		fe    *flatEntry
		start uint32
		count uint32
	}
	var miniStreamBuf []byte
	var miniAllocs []miniAlloc
	var bigAllocs []bigAlloc
	var bigSectorsTotal uint32

	for _, fe := range flat {
		if fe.entry.IsStorage {
			continue
		}
		size := uint32(len(fe.entry.Data))
		fe.de.StreamSize = uint64(size)
		if size == 0 {
			fe.de.StartingSector = sectorEndOfChain
			continue
		}
		if size < cutoff {
			miniCount := (size + miniSectorSize - 1) / miniSectorSize
			start := uint32(len(miniStreamBuf) / miniSectorSize)
			padded := make([]byte, miniCount*miniSectorSize)
			copy(padded, fe.entry.Data)
			miniStreamBuf = append(miniStreamBuf, padded...)
			miniAllocs = append(miniAllocs, miniAlloc{fe: fe, start: start, count: miniCount})
			fe.de.StartingSector = start
		} else {
			count := (size + uint32(sectorSize) - 1) / uint32(sectorSize)
			bigAllocs = append(bigAllocs, bigAlloc{fe: fe, start: bigSectorsTotal, count: count})
			fe.de.StartingSector = bigSectorsTotal
			bigSectorsTotal += count
		}
	}

	miniStreamSectorCount := uint32((len(miniStreamBuf) + sectorSize - 1) / sectorSize)
	if miniStreamSectorCount > 0 {
		rootFlat.de.StartingSector = bigSectorsTotal
	} else {
		rootFlat.de.StartingSector = sectorEndOfChain
	}
	rootFlat.de.StreamSize = uint64(len(miniStreamBuf))

	numDirEntries := uint32(len(flat))
	dirEntriesPerSector := uint32(sectorSize / dirEntrySize)
	dirSectorCount := (numDirEntries + dirEntriesPerSector - 1) / dirEntriesPerSector
	if dirSectorCount == 0 {
		dirSectorCount = 1
	}

	minFATEntryCount := uint32(len(miniStreamBuf) / miniSectorSize)
	minFATEntriesPerSector := uint32(sectorSize / 4)
	miniFATSectorCount := uint32(0)
	if minFATEntryCount > 0 {
		miniFATSectorCount = (minFATEntryCount + minFATEntriesPerSector - 1) / minFATEntriesPerSector
	}

	baseSectors := bigSectorsTotal + miniStreamSectorCount + dirSectorCount + miniFATSectorCount
	fatEntriesPerSector := uint32(sectorSize / 4)

	// Fixed point: number of FAT sectors depends on total sectors, which
	// depends on the number of FAT (and overflow DIFAT) sectors.
	var fatSectorCount, difatSectorCount uint32
	for i := 0; i < 16; i++ {
		total := baseSectors + fatSectorCount + difatSectorCount
		newFAT := (total + fatEntriesPerSector - 1) / fatEntriesPerSector
		var newDIFAT uint32
		if newFAT > difatHeaderEntries {
			remaining := newFAT - difatHeaderEntries
			entriesPerDIFATSector := fatEntriesPerSector - 1
			newDIFAT = (remaining + entriesPerDIFATSector - 1) / entriesPerDIFATSector
		}
		if newFAT == fatSectorCount && newDIFAT == difatSectorCount {
			break
		}
		fatSectorCount, difatSectorCount = newFAT, newDIFAT
	}

	dirSectorStart := bigSectorsTotal + miniStreamSectorCount
	miniFATSectorStart := dirSectorStart + dirSectorCount
	fatSectorStart := miniFATSectorStart + miniFATSectorCount
	difatSectorStart := fatSectorStart + fatSectorCount
	totalSectors := difatSectorStart + difatSectorCount

	fatTable := make([]uint32, totalSectors)
	for i := range fatTable {
		fatTable[i] = sectorFree
	}
	chain := func(start, count uint32) {
		for i := uint32(0); i < count; i++ {
			if i+1 < count {
				fatTable[start+i] = start + i + 1
			} else {
				fatTable[start+i] = sectorEndOfChain
			}
		}
	}
	for _, a := range bigAllocs {
		chain(a.start, a.count)
	}
	if miniStreamSectorCount > 0 {
		chain(bigSectorsTotal, miniStreamSectorCount)
	}
	chain(dirSectorStart, dirSectorCount)
	if miniFATSectorCount > 0 {
		chain(miniFATSectorStart, miniFATSectorCount)
	}
	for i := uint32(0); i < fatSectorCount; i++ {
		fatTable[fatSectorStart+i] = sectorFAT
	}
	for i := uint32(0); i < difatSectorCount; i++ {
		fatTable[difatSectorStart+i] = sectorDIFAT
	}

	// MiniFAT chains, one per small stream.
	miniFAT := make([]uint32, minFATEntryCount)
	for _, a := range miniAllocs {
		for i := uint32(0); i < a.count; i++ {
			if i+1 < a.count {
				miniFAT[a.start+i] = a.start + i + 1
			} else {
				miniFAT[a.start+i] = sectorEndOfChain
			}
		}
	}

	h := &header{
		MinorVersion:         minorVersion,
		MajorVersion:         majorVersion,
		SectorShift:          sectorShift,
		MiniSectorShift:      6,
		NumFATSectors:        fatSectorCount,
		FirstDirSectorLoc:    dirSectorStart,
		MiniStreamCutoffSize: cutoff,
		NumMiniFATSectors:    miniFATSectorCount,
		NumDIFATSectors:      difatSectorCount,
	}
	// Per the MS-CFB spec this field MUST be zero for major version 3; only
	// version 4 headers carry a real directory-sector count.
	if majorVersion == 4 {
		h.NumDirSectors = dirSectorCount
	}
	if miniFATSectorCount > 0 {
		h.FirstMiniFATSectorLoc = miniFATSectorStart
	} else {
		h.FirstMiniFATSectorLoc = sectorEndOfChain
	}
	if difatSectorCount > 0 {
		h.FirstDIFATSectorLoc = difatSectorStart
	} else {
		h.FirstDIFATSectorLoc = sectorEndOfChain
	}
	for i := range h.DIFAT {
		h.DIFAT[i] = sectorFree
	}
	fatSectorLocs := make([]uint32, fatSectorCount)
	for i := uint32(0); i < fatSectorCount; i++ {
		fatSectorLocs[i] = fatSectorStart + i
	}
	for i := 0; i < len(fatSectorLocs) && i < difatHeaderEntries; i++ {
		h.DIFAT[i] = fatSectorLocs[i]
	}

	out := make([]byte, headerSize+int(totalSectors)*sectorSize)

	writeSector := func(n uint32, data []byte) {
		off := headerSize + int(n)*sectorSize
		copy(out[off:off+sectorSize], data)
	}

	// Big stream sectors.
	for _, a := range bigAllocs {
		data := a.fe.entry.Data
		for i := uint32(0); i < a.count; i++ {
			start := i * uint32(sectorSize)
			end := start + uint32(sectorSize)
			if end > uint32(len(data)) {
				end = uint32(len(data))
			}
			buf := make([]byte, sectorSize)
			copy(buf, data[start:end])
			writeSector(a.start+i, buf)
		}
	}

	// Mini stream sectors (the mini stream itself lives in regular sectors).
	for i := uint32(0); i < miniStreamSectorCount; i++ {
		start := i * uint32(sectorSize)
		end := start + uint32(sectorSize)
		buf := make([]byte, sectorSize)
		if int(start) < len(miniStreamBuf) {
			e := end
			if int(e) > len(miniStreamBuf) {
				e = uint32(len(miniStreamBuf))
			}
			copy(buf, miniStreamBuf[start:e])
		}
		writeSector(bigSectorsTotal+i, buf)
	}

	// Directory sectors.
	dirBytes := make([]byte, dirSectorCount*uint32(sectorSize))
	for i, fe := range flat {
		copy(dirBytes[i*dirEntrySize:(i+1)*dirEntrySize], fe.de.encode())
	}
	for i := uint32(0); i < dirSectorCount; i++ {
		writeSector(dirSectorStart+i, dirBytes[i*uint32(sectorSize):(i+1)*uint32(sectorSize)])
	}

	// MiniFAT sectors.
	if miniFATSectorCount > 0 {
		miniFATBytes := make([]byte, miniFATSectorCount*fatEntriesPerSector*4)
		for i, v := range miniFAT {
			binary.LittleEndian.PutUint32(miniFATBytes[i*4:i*4+4], v)
		}
		for i := minFATEntryCount; i < miniFATSectorCount*fatEntriesPerSector; i++ {
			binary.LittleEndian.PutUint32(miniFATBytes[i*4:i*4+4], sectorFree)
		}
		for i := uint32(0); i < miniFATSectorCount; i++ {
			writeSector(miniFATSectorStart+i, miniFATBytes[i*uint32(sectorSize):(i+1)*uint32(sectorSize)])
		}
	}

	// FAT sectors.
	fatBytes := make([]byte, totalSectors*4)
	for i, v := range fatTable {
		binary.LittleEndian.PutUint32(fatBytes[i*4:i*4+4], v)
	}
	for i := uint32(0); i < fatSectorCount; i++ {
		start := i * fatEntriesPerSector * 4
		end := start + uint32(sectorSize)
		writeSector(fatSectorStart+i, fatBytes[start:end])
	}

	// DIFAT overflow sectors.
	if difatSectorCount > 0 {
		entriesPerDIFATSector := fatEntriesPerSector - 1
		for i := uint32(0); i < difatSectorCount; i++ {
			buf := make([]byte, sectorSize)
			for j := uint32(0); j < entriesPerDIFATSector; j++ {
				idx := difatHeaderEntries + int(i*entriesPerDIFATSector+j)
				val := uint32(sectorFree)
				if idx < len(fatSectorLocs) {
					val = fatSectorLocs[idx]
				}
				binary.LittleEndian.PutUint32(buf[j*4:j*4+4], val)
			}
			next := uint32(sectorEndOfChain)
			if i+1 < difatSectorCount {
				next = difatSectorStart + i + 1
			}
			binary.LittleEndian.PutUint32(buf[sectorSize-4:sectorSize], next)
			writeSector(difatSectorStart+i, buf)
		}
	}

	copy(out[0:headerSize], h.encode())
	return out, nil
}
