// Package cfb implements random-access read/write of a Microsoft Compound
// File Binary (structured storage) container: the hierarchical named-stream
// store used as the outer shell of a .vpx table file.
//
// Container keeps the full entry tree resident in memory (paths to either
// storage nodes or stream byte slices). This trades the reference COM
// IStorage's in-place incremental patching for a much simpler model: every
// write serializes a fresh, minimal container from scratch. Compact is then
// just WriteTo with no incremental history to reclaim — which satisfies the
// format's "compact" contract (rewrite to reclaim space) without needing a
// byte-exact port of the reference sector allocator.
package cfb

import (
	"bytes"
	"io"
	"sort"
)

// Entry is one node in the container's storage tree.
type Entry struct {
	Name     string
	IsStorage bool
	Data     []byte   // valid when !IsStorage
	Children []*Entry // valid when IsStorage, in insertion order (encode sorts a copy)
	CLSID    [16]byte
}

// Container is an in-memory model of a compound file. Zero value is not
// usable; use New or Open.
type Container struct {
	Version int // 3 or 4
	root     *Entry
}

// New returns an empty, writable version-3 container with an (empty) root.
func New() *Container {
	return &Container{
		Version: 3,
		root:    &Entry{Name: "Root Entry", IsStorage: true},
	}
}

func splitPath(path string) []string {
	parts := []string{}
	for _, p := range splitSlash(path) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func splitSlash(path string) []string {
	var out []string
	start := 0
	for i := 0; i < len(path); i++ {
		if path[i] == '/' {
			out = append(out, path[start:i])
			start = i + 1
		}
	}
	out = append(out, path[start:])
	return out
}

func joinPath(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "/"
		}
		out += p
	}
	return out
}

// lookup finds an entry by slash-separated path, descending from the root.
func (c *Container) lookup(path string) *Entry {
	parts := splitPath(path)
	cur := c.root
	for _, part := range parts {
		if !cur.IsStorage {
			return nil
		}
		next := findChild(cur, part)
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

func findChild(parent *Entry, name string) *Entry {
	for _, ch := range parent.Children {
		if ch.Name == name {
			return ch
		}
	}
	return nil
}

// Exists reports whether path names any entry (storage or stream).
func (c *Container) Exists(path string) bool {
	return c.lookup(path) != nil
}

// IsStream reports whether path names a stream.
func (c *Container) IsStream(path string) bool {
	e := c.lookup(path)
	return e != nil && !e.IsStorage
}

// IsStorage reports whether path names a storage.
func (c *Container) IsStorage(path string) bool {
	e := c.lookup(path)
	return e != nil && e.IsStorage
}

// OpenStream returns a reader over the named stream's bytes.
func (c *Container) OpenStream(path string) (io.Reader, error) {
	e := c.lookup(path)
	if e == nil {
		return nil, ErrNotFound
	}
	if e.IsStorage {
		return nil, ErrNotAStream
	}
	return bytes.NewReader(e.Data), nil
}

// ReadStream reads the full contents of the named stream.
func (c *Container) ReadStream(path string) ([]byte, error) {
	e := c.lookup(path)
	if e == nil {
		return nil, ErrNotFound
	}
	if e.IsStorage {
		return nil, ErrNotAStream
	}
	out := make([]byte, len(e.Data))
	copy(out, e.Data)
	return out, nil
}

// CreateStorage creates (or returns, if it already exists) the storage at path,
// creating intermediate storages as needed.
func (c *Container) CreateStorage(path string) error {
	parts := splitPath(path)
	cur := c.root
	for _, part := range parts {
		if !cur.IsStorage {
			return ErrNotAStorage
		}
		next := findChild(cur, part)
		if next == nil {
			next = &Entry{Name: part, IsStorage: true}
			cur.Children = append(cur.Children, next)
		} else if !next.IsStorage {
			return ErrNotAStorage
		}
		cur = next
	}
	return nil
}

// CreateStream creates a stream at path with the given contents, creating
// intermediate storages as needed. overwrite controls whether an existing
// stream at path may be replaced.
func (c *Container) CreateStream(path string, data []byte, overwrite bool) error {
	parts := splitPath(path)
	if len(parts) == 0 {
		return ErrNotAStream
	}
	dir, name := parts[:len(parts)-1], parts[len(parts)-1]
	if err := c.CreateStorage(joinPath(dir)); err != nil {
		return err
	}
	parent := c.lookup(joinPath(dir))
	if parent == nil {
		parent = c.root
	}
	existing := findChild(parent, name)
	if existing != nil {
		if existing.IsStorage {
			return ErrNotAStream
		}
		if !overwrite {
			return ErrAlreadyExists
		}
		existing.Data = append([]byte(nil), data...)
		return nil
	}
	parent.Children = append(parent.Children, &Entry{
		Name: name,
		Data: append([]byte(nil), data...),
	})
	return nil
}

// WalkEntry describes one entry visited by Walk.
type WalkEntry struct {
	Path      string
	IsStorage bool
	Length    int64
}

// Walk returns every entry in the container in the CFB sibling-sort
// traversal order (shorter, then case-insensitive, names first within each
// storage). This order is a format implementation detail; it is never used
// to drive the MAC computation (see the vpx package's MAC engine).
func (c *Container) Walk() []WalkEntry {
	var out []WalkEntry
	var visit func(prefix string, e *Entry)
	visit = func(prefix string, e *Entry) {
		children := append([]*Entry(nil), e.Children...)
		sort.SliceStable(children, func(i, j int) bool {
			return compareNames(children[i].Name, children[j].Name) < 0
		})
		for _, ch := range children {
			p := ch.Name
			if prefix != "" {
				p = prefix + "/" + ch.Name
			}
			if ch.IsStorage {
				out = append(out, WalkEntry{Path: p, IsStorage: true})
				visit(p, ch)
			} else {
				out = append(out, WalkEntry{Path: p, IsStorage: false, Length: int64(len(ch.Data))})
			}
		}
	}
	visit("", c.root)
	return out
}
