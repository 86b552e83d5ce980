package core

// Layout is a named board shape: the grid positions tiles are dealt onto.
type Layout struct {
	ID          string
	Name        string
	Description string
	Difficulty  int // 1 (easiest) to 10
	Positions   []Position
}

// TileCount returns the number of positions in the layout.
func (l Layout) TileCount() int {
	return len(l.Positions)
}

// Valid reports whether the layout can be dealt: non-empty with an even count.
func (l Layout) Valid() bool {
	return len(l.Positions) > 0 && len(l.Positions)%2 == 0
}

// LayoutProvider supplies layouts to a Session.
// Lookups never fail; unknown ids and out-of-range indexes resolve to the
// provider's default layout.
type LayoutProvider interface {
	All() []Layout
	ByID(id string) Layout
	ByIndex(i int) Layout
	Count() int
	IndexOf(id string) int
}

// LayoutList is a LayoutProvider over an ordered slice. The first entry is the
// default layout.
type LayoutList []Layout

// All returns the layouts in order.
func (l LayoutList) All() []Layout {
	return l
}

// ByID returns the layout with the given id, or the first layout.
func (l LayoutList) ByID(id string) Layout {
	for _, layout := range l {
		if layout.ID == id {
			return layout
		}
	}
	return l.ByIndex(0)
}

// ByIndex returns the layout at i, or the first layout when i is out of range.
// An empty list yields the zero Layout.
func (l LayoutList) ByIndex(i int) Layout {
	if len(l) == 0 {
		return Layout{}
	}
	if i < 0 || i >= len(l) {
		return l[0]
	}
	return l[i]
}

// Count returns the number of layouts.
func (l LayoutList) Count() int {
	return len(l)
}

// IndexOf returns the index of the layout with the given id, or 0.
func (l LayoutList) IndexOf(id string) int {
	for i, layout := range l {
		if layout.ID == id {
			return i
		}
	}
	return 0
}
