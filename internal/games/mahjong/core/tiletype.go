package core

import (
	"fmt"
	"strings"
)

// TileType is the face of a tile.
type TileType uint8

const (
	Character1 TileType = iota
	Character2
	Character3
	Character4
	Character5
	Character6
	Character7
	Character8
	Character9
	Bamboo1
	Bamboo2
	Bamboo3
	Bamboo4
	Bamboo5
	Bamboo6
	Bamboo7
	Bamboo8
	Bamboo9
	Circle1
	Circle2
	Circle3
	Circle4
	Circle5
	Circle6
	Circle7
	Circle8
	Circle9
	WindNorth
	WindEast
	WindSouth
	WindWest
	DragonRed
	DragonGreen
	DragonWhite
	FlowerPlum
	FlowerOrchid
	FlowerChrysanthemum
	FlowerBamboo
	SeasonSpring
	SeasonSummer
	SeasonAutumn
	SeasonWinter
	TileTypeCount // Sentinel value for iteration
)

// Suit groups tile types for display.
type Suit uint8

const (
	SuitCharacter Suit = iota
	SuitBamboo
	SuitCircle
	SuitWind
	SuitDragon
	SuitFlower
	SuitSeason
	SuitUnknown
)

func (s Suit) String() string {
	switch s {
	case SuitCharacter:
		return "character"
	case SuitBamboo:
		return "bamboo"
	case SuitCircle:
		return "circle"
	case SuitWind:
		return "wind"
	case SuitDragon:
		return "dragon"
	case SuitFlower:
		return "flower"
	case SuitSeason:
		return "season"
	default:
		return "unknown"
	}
}

var windNames = [...]string{"NORTH", "EAST", "SOUTH", "WEST"}
var dragonNames = [...]string{"RED", "GREEN", "WHITE"}
var flowerNames = [...]string{"PLUM", "ORCHID", "CHRYSANTHEMUM", "BAMBOO"}
var seasonNames = [...]string{"SPRING", "SUMMER", "AUTUMN", "WINTER"}

// typeNames holds the stable names used in snapshots, built once from the enum.
var typeNames = func() [TileTypeCount]string {
	var names [TileTypeCount]string
	for t := TileType(0); t < TileTypeCount; t++ {
		rank := t.Rank()
		switch t.Suit() {
		case SuitCharacter:
			names[t] = fmt.Sprintf("CHARACTER_%d", rank)
		case SuitBamboo:
			names[t] = fmt.Sprintf("BAMBOO_%d", rank)
		case SuitCircle:
			names[t] = fmt.Sprintf("CIRCLE_%d", rank)
		case SuitWind:
			names[t] = "WIND_" + windNames[rank-1]
		case SuitDragon:
			names[t] = "DRAGON_" + dragonNames[rank-1]
		case SuitFlower:
			names[t] = "FLOWER_" + flowerNames[rank-1]
		case SuitSeason:
			names[t] = "SEASON_" + seasonNames[rank-1]
		}
	}
	return names
}()

// Suit returns the suit the type belongs to.
func (t TileType) Suit() Suit {
	switch {
	case t <= Character9:
		return SuitCharacter
	case t <= Bamboo9:
		return SuitBamboo
	case t <= Circle9:
		return SuitCircle
	case t <= WindWest:
		return SuitWind
	case t <= DragonWhite:
		return SuitDragon
	case t <= FlowerBamboo:
		return SuitFlower
	case t <= SeasonWinter:
		return SuitSeason
	default:
		return SuitUnknown
	}
}

// Rank returns the 1-based position of the type inside its suit.
func (t TileType) Rank() int {
	switch t.Suit() {
	case SuitCharacter:
		return int(t-Character1) + 1
	case SuitBamboo:
		return int(t-Bamboo1) + 1
	case SuitCircle:
		return int(t-Circle1) + 1
	case SuitWind:
		return int(t-WindNorth) + 1
	case SuitDragon:
		return int(t-DragonRed) + 1
	case SuitFlower:
		return int(t-FlowerPlum) + 1
	case SuitSeason:
		return int(t-SeasonSpring) + 1
	default:
		return 0
	}
}

// Valid reports whether t is one of the defined variants.
func (t TileType) Valid() bool {
	return t < TileTypeCount
}

// IsFlower reports whether t is one of the four flowers.
func (t TileType) IsFlower() bool {
	return t.Suit() == SuitFlower
}

// IsSeason reports whether t is one of the four seasons.
func (t TileType) IsSeason() bool {
	return t.Suit() == SuitSeason
}

// String returns the stable name of the type, e.g. "CHARACTER_1".
func (t TileType) String() string {
	if !t.Valid() {
		return "UNKNOWN"
	}
	return typeNames[t]
}

// Glyph returns a two-character label for terminal rendering.
func (t TileType) Glyph() string {
	rank := t.Rank()
	switch t.Suit() {
	case SuitCharacter:
		return fmt.Sprintf("C%d", rank)
	case SuitBamboo:
		return fmt.Sprintf("B%d", rank)
	case SuitCircle:
		return fmt.Sprintf("O%d", rank)
	case SuitWind:
		return "W" + windNames[rank-1][:1]
	case SuitDragon:
		return "D" + dragonNames[rank-1][:1]
	case SuitFlower:
		return fmt.Sprintf("F%d", rank)
	case SuitSeason:
		return fmt.Sprintf("S%d", rank)
	default:
		return "??"
	}
}

// ParseTileType converts a name produced by String back to a TileType.
// Matching is case-insensitive.
func ParseTileType(s string) (TileType, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for t := TileType(0); t < TileTypeCount; t++ {
		if typeNames[t] == s {
			return t, true
		}
	}
	return 0, false
}

// AllTileTypes returns every variant in declaration order.
func AllTileTypes() []TileType {
	types := make([]TileType, 0, TileTypeCount)
	for t := TileType(0); t < TileTypeCount; t++ {
		types = append(types, t)
	}
	return types
}

// matchClass maps a type to its match class. Exact types are their own class;
// all flowers share one class and all seasons share another.
func matchClass(t TileType) TileType {
	switch {
	case t.IsFlower():
		return FlowerPlum
	case t.IsSeason():
		return SeasonSpring
	default:
		return t
	}
}

// CanMatch reports whether tiles of types a and b may be removed as a pair.
func CanMatch(a, b TileType) bool {
	return matchClass(a) == matchClass(b)
}
