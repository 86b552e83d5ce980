// Package formats provides layout file format parsers.
package formats

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
)

// Default and bounds for the difficulty rating of a layout.
const (
	DefaultDifficulty = 5
	MinDifficulty     = 1
	MaxDifficulty     = 10
)

var (
	ErrMissingID   = errors.New("layout has no id")
	ErrNoPositions = errors.New("layout has no positions")
)

// YAMLLayout is the YAML structure of a layout file.
// Tiles can be given as horizontal runs, as explicit [x, y, z] triples, or both.
type YAMLLayout struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Difficulty  int       `yaml:"difficulty,omitempty"`
	Rows        []YAMLRow `yaml:"rows,omitempty"`
	Positions   [][3]int  `yaml:"positions,omitempty"`
}

// YAMLRow is a horizontal run of tiles from column From to column To inclusive.
type YAMLRow struct {
	Z    int `yaml:"z"`
	Y    int `yaml:"y"`
	From int `yaml:"from"`
	To   int `yaml:"to"`
	Step int `yaml:"step,omitempty"` // default 1
}

// ParseYAML parses a YAML layout file.
// Repeated positions are kept once; the first occurrence wins.
func ParseYAML(data []byte) (core.Layout, error) {
	var yl YAMLLayout
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return core.Layout{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return yl.Layout()
}

// Layout converts the YAML form to a core.Layout.
func (yl YAMLLayout) Layout() (core.Layout, error) {
	if yl.ID == "" {
		return core.Layout{}, ErrMissingID
	}

	name := yl.Name
	if name == "" {
		name = yl.ID
	}
	difficulty := yl.Difficulty
	if difficulty == 0 {
		difficulty = DefaultDifficulty
	}
	difficulty = max(MinDifficulty, min(MaxDifficulty, difficulty))

	seen := make(map[core.Position]bool)
	var positions []core.Position
	add := func(p core.Position) {
		if !seen[p] {
			seen[p] = true
			positions = append(positions, p)
		}
	}

	for i, r := range yl.Rows {
		step := r.Step
		if step == 0 {
			step = 1
		}
		if step < 0 || r.To < r.From {
			return core.Layout{}, fmt.Errorf("layout %s: row %d: bad range %d..%d step %d", yl.ID, i, r.From, r.To, step)
		}
		for x := r.From; x <= r.To; x += step {
			add(core.P(x, r.Y, r.Z))
		}
	}
	for _, p := range yl.Positions {
		add(core.P(p[0], p[1], p[2]))
	}

	if len(positions) == 0 {
		return core.Layout{}, fmt.Errorf("layout %s: %w", yl.ID, ErrNoPositions)
	}

	return core.Layout{
		ID:          yl.ID,
		Name:        name,
		Description: yl.Description,
		Difficulty:  difficulty,
		Positions:   positions,
	}, nil
}

// MarshalYAML encodes a layout as explicit positions.
func MarshalYAML(l core.Layout) ([]byte, error) {
	yl := YAMLLayout{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		Difficulty:  l.Difficulty,
		Positions:   make([][3]int, len(l.Positions)),
	}
	for i, p := range l.Positions {
		yl.Positions[i] = [3]int{p.X, p.Y, p.Z}
	}
	return yaml.Marshal(yl)
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
