package layouts

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/layouts/formats"
)

// Loader loads layout files from a directory tree.
type Loader struct {
	Root string
}

// NewLoader creates a new layout loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all layout files.
// Invalid files are skipped. Layouts are ordered by difficulty, then id.
func (l *Loader) LoadAll() ([]core.Layout, error) {
	var layouts []core.Layout

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}

		layout, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}
		layouts = append(layouts, layout)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("layouts: walking directory %s: %w", l.Root, err)
	}

	sort.SliceStable(layouts, func(i, j int) bool {
		if layouts[i].Difficulty != layouts[j].Difficulty {
			return layouts[i].Difficulty < layouts[j].Difficulty
		}
		return layouts[i].ID < layouts[j].ID
	})
	return layouts, nil
}

// LoadFile loads a single layout file.
func (l *Loader) LoadFile(path string) (core.Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Layout{}, fmt.Errorf("layouts: reading file %s: %w", path, err)
	}
	layout, err := parseByExtension(data, filepath.Ext(path))
	if err != nil {
		return core.Layout{}, fmt.Errorf("layouts: parsing file %s: %w", path, err)
	}
	return layout, nil
}

// LoadByID loads a specific layout by id.
func (l *Loader) LoadByID(id string) (core.Layout, error) {
	layouts, err := l.LoadAll()
	if err != nil {
		return core.Layout{}, err
	}
	for _, layout := range layouts {
		if layout.ID == id {
			return layout, nil
		}
	}
	return core.Layout{}, fmt.Errorf("layouts: layout not found: %s", id)
}

func isSupportedExtension(ext string) bool {
	return slices.Contains(formats.FormatExtensions(), strings.ToLower(ext))
}

func parseByExtension(data []byte, ext string) (core.Layout, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return core.Layout{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
