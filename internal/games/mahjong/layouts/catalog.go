// Package layouts provides the layout catalog: the built-in board shapes and
// any user layouts loaded from disk. This package depends on core but core
// does not depend on layouts.
package layouts

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sync"

	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/layouts/formats"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Catalog is an ordered set of layouts. It implements core.LayoutProvider;
// the first layout is the fallback for unknown ids and indexes.
type Catalog struct {
	list core.LayoutList
}

var _ core.LayoutProvider = (*Catalog)(nil)

// NewCatalog creates a catalog from layouts in the given order.
// Later layouts with an id already present are dropped.
func NewCatalog(layouts ...core.Layout) *Catalog {
	c := &Catalog{}
	seen := make(map[string]bool, len(layouts))
	for _, l := range layouts {
		if seen[l.ID] {
			continue
		}
		seen[l.ID] = true
		c.list = append(c.list, l)
	}
	return c
}

var (
	builtinOnce    sync.Once
	builtinLayouts []core.Layout
	builtinErr     error
)

// Builtin returns the catalog of layouts shipped with the game, easiest first.
func Builtin() (*Catalog, error) {
	builtinOnce.Do(func() {
		builtinLayouts, builtinErr = loadFS(builtinFS, "builtin")
	})
	if builtinErr != nil {
		return nil, builtinErr
	}
	return NewCatalog(builtinLayouts...), nil
}

// Load returns the built-in catalog merged with the layouts found under dir.
// An empty dir or a dir that does not exist yields the built-ins only.
func Load(dir string) (*Catalog, error) {
	c, err := Builtin()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return c, nil
	}
	extra, err := NewLoader(dir).LoadAll()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return nil, err
	}
	return c.Merge(extra), nil
}

func loadFS(fsys fs.FS, dir string) ([]core.Layout, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("layouts: reading %s: %w", dir, err)
	}
	var out []core.Layout
	for _, e := range entries {
		if e.IsDir() || !isSupportedExtension(path.Ext(e.Name())) {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("layouts: reading %s: %w", e.Name(), err)
		}
		l, err := formats.ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("layouts: parsing %s: %w", e.Name(), err)
		}
		out = append(out, l)
	}
	return out, nil
}

// Merge returns a new catalog with extra layouts added. A layout whose id is
// already present replaces it in place; new ids are appended.
func (c *Catalog) Merge(extra []core.Layout) *Catalog {
	merged := make([]core.Layout, len(c.list))
	copy(merged, c.list)
	for _, l := range extra {
		if i := c.find(merged, l.ID); i >= 0 {
			merged[i] = l
			continue
		}
		merged = append(merged, l)
	}
	return &Catalog{list: merged}
}

func (c *Catalog) find(list []core.Layout, id string) int {
	for i, l := range list {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// Has reports whether a layout with the given id exists.
func (c *Catalog) Has(id string) bool {
	return c.find(c.list, id) >= 0
}

// All returns the layouts in catalog order.
func (c *Catalog) All() []core.Layout { return c.list.All() }

// ByID returns the layout with the given id, or the first layout.
func (c *Catalog) ByID(id string) core.Layout { return c.list.ByID(id) }

// ByIndex returns the layout at i, or the first layout when out of range.
func (c *Catalog) ByIndex(i int) core.Layout { return c.list.ByIndex(i) }

// Count returns the number of layouts.
func (c *Catalog) Count() int { return c.list.Count() }

// IndexOf returns the index of the layout with the given id, or 0.
func (c *Catalog) IndexOf(id string) int { return c.list.IndexOf(id) }
