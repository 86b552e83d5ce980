package mahjong

import (
	"fmt"
	"sort"

	platformcore "github.com/vovakirdan/tui-mahjong/internal/core"
	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
)

// Each tile takes tileW x tileH characters:
//
//	│C3│
//	└──┘
const (
	tileW     = 4
	tileH     = 2
	hudHeight = 3
)

var suitColors = map[core.Suit]platformcore.Color{
	core.SuitCharacter: platformcore.ColorBrightRed,
	core.SuitBamboo:    platformcore.ColorBrightGreen,
	core.SuitCircle:    platformcore.ColorBrightBlue,
	core.SuitWind:      platformcore.ColorBrightWhite,
	core.SuitDragon:    platformcore.ColorOrange,
	core.SuitFlower:    platformcore.ColorBrightMagenta,
	core.SuitSeason:    platformcore.ColorBrightCyan,
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	if g.session == nil || g.session.Board() == nil {
		dst.DrawTextCenteredColored(dst.Height()/2, "No layouts available", platformcore.ColorRed)
		return
	}

	if g.cfg.Display.ShowHUD {
		g.renderHUD(dst)
	}

	board := g.session.Board()
	ox, oy, ok := g.boardOrigin(dst, board)
	if !ok {
		dst.DrawTextCenteredColored(dst.Height()/2, "Terminal too small for this layout", platformcore.ColorYellow)
		return
	}

	if g.paused {
		g.renderOverlay(dst, platformcore.BoxLight, "PAUSED", "Press P to continue")
		return
	}

	g.renderBoard(dst, board, ox, oy)

	switch {
	case g.session.Won():
		g.renderOverlay(dst, platformcore.BoxDouble, "YOU WIN! "+g.message, "N or R for a new game")
	case g.stuck:
		g.renderOverlay(dst, platformcore.BoxHeavy, "NO MORE MOVES", "N or R for a new game")
	}
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	layout := g.session.Layout()
	board := g.session.Board()
	cfg := g.session.Config()

	line := fmt.Sprintf("%s  Tiles: %d/%d  Time: %s  Score: %d",
		layout.Name, board.RemainingCount(), board.Len(),
		formatElapsed(g.session.Elapsed()), g.State().Score)
	dst.DrawTextColored(0, 0, line, platformcore.ColorCyan)

	info := fmt.Sprintf("%s / %s  Won: %d/%d  ",
		cfg.Difficulty, cfg.LayoutMode, g.session.GamesWon(), g.session.GamesPlayed())
	dst.DrawTextColored(0, 1, info, platformcore.ColorGray)
	dst.DrawText(len(info), 1, g.message)

	controls := "Arrows: Move  Space: Pick  ?: Hint  N: New  P: Pause  Q: Quit"
	dst.DrawTextColored(0, 2, controls, platformcore.ColorGray)
}

// boardOrigin returns where grid position (0,0,0) lands on screen so that
// the board is centred below the HUD.
func (g *Game) boardOrigin(dst *platformcore.Screen, board *core.Board) (int, int, bool) {
	lo, hi := board.Bounds()
	minX, minY := project(core.P(lo.X, lo.Y, hi.Z))
	maxX, maxY := project(core.P(hi.X, hi.Y, lo.Z))
	w := maxX - minX + tileW
	h := maxY - minY + tileH

	top := 0
	if g.cfg.Display.ShowHUD {
		top = hudHeight
	}
	area := platformcore.NewRect(0, top, dst.Width(), dst.Height()-top)
	x0 := (area.W - w) / 2
	y0 := top + (area.H-h)/2
	if !area.Contains(x0, y0) || !area.Contains(x0+w-1, y0+h-1) {
		return 0, 0, false
	}
	return x0 - minX, y0 - minY, true
}

// renderBoard draws live tiles bottom layer first, so upper layers overlap.
func (g *Game) renderBoard(dst *platformcore.Screen, board *core.Board, ox, oy int) {
	tiles := make([]*core.Tile, 0, board.Len())
	for _, t := range board.Tiles() {
		if !t.Removed {
			tiles = append(tiles, t)
		}
	}
	sort.SliceStable(tiles, func(i, j int) bool {
		a, b := tiles[i].Pos, tiles[j].Pos
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	for _, t := range tiles {
		x, y := project(t.Pos)
		g.renderTile(dst, t, board.IsTileFree(t), ox+x, oy+y)
	}
}

func (g *Game) renderTile(dst *platformcore.Screen, t *core.Tile, free bool, x, y int) {
	edge := platformcore.ColorWhite
	if g.cfg.Display.HighlightFree && !free {
		edge = platformcore.ColorGray
	}
	face := suitColors[t.Type.Suit()]
	if g.cfg.Display.HighlightFree && !free {
		face = platformcore.ColorGray
	}

	side, bottom, corner := '│', '─', [2]rune{'└', '┘'}
	switch {
	case t.Selected:
		edge, face = platformcore.ColorBrightYellow, platformcore.ColorBrightYellow
	case t.ID == g.hintA || t.ID == g.hintB:
		edge = platformcore.ColorJade
	}
	if t.ID == g.cursor {
		side, bottom, corner = '┃', '━', [2]rune{'┗', '┛'}
		if !t.Selected {
			edge = platformcore.ColorBrightYellow
		}
	}

	glyph := []rune(t.Type.Glyph())
	dst.SetColored(x, y, side, edge)
	dst.SetColored(x+1, y, glyph[0], face)
	dst.SetColored(x+2, y, glyph[1], face)
	dst.SetColored(x+3, y, side, edge)

	dst.SetColored(x, y+1, corner[0], edge)
	dst.SetColored(x+1, y+1, bottom, edge)
	dst.SetColored(x+2, y+1, bottom, edge)
	dst.SetColored(x+3, y+1, corner[1], edge)
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *platformcore.Screen, style platformcore.BoxStyle, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	boxH := 5
	box := platformcore.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBoxStyled(box, style, platformcore.ColorBrightYellow)
	dst.DrawTextCenteredColored(box.Y+1, line1, platformcore.ColorBrightWhite)
	dst.DrawTextCenteredColored(box.Y+3, line2, platformcore.ColorGray)
}
