package tui

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/game"
)

const (
	cellWidth  = 7 // Width of each cell including its left border
	cellHeight = 2 // Height of each cell including its top border
	hudHeight  = 3

	boardW = board.Size*cellWidth + 1
	boardH = board.Size*cellHeight + 1

	minScreenW = boardW + 2
	minScreenH = hudHeight + boardH + 1
)

// viewState is the front end state drawn next to the game.
type viewState struct {
	paused   bool
	thinking bool
	depth    int // Search depth, 0 for human play
	best     int // Best recorded score for the mode
}

// drawGame renders a game snapshot to dst.
func drawGame(dst *core.Screen, s game.Snapshot, v viewState) {
	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		drawTooSmall(dst)
		return
	}

	area := core.NewRect(0, 0, dst.Width(), dst.Height())
	boardRect := area.Centered(boardW, boardH+hudHeight)
	boardRect.Y = core.Max(boardRect.Y, 0) + hudHeight
	boardRect.H = boardH

	drawHUD(dst, boardRect, s, v)
	drawGrid(dst, boardRect, s.Grid)
	drawOverlay(dst, boardRect, s, v)
}

func drawTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH), core.ColorGray)
}

func drawHUD(dst *core.Screen, r core.Rect, s game.Snapshot, v viewState) {
	top := r.Y - hudHeight

	title := "2048"
	dst.DrawTextColor(r.X+(r.W-len(title))/2, top, title, core.ColorBrightYellow)

	dst.DrawText(r.X, top+1, fmt.Sprintf("Score %d", s.Score))
	best := fmt.Sprintf("Best %d", max(v.best, s.Score))
	dst.DrawTextColor(r.Right()-len(best), top+1, best, core.ColorGray)

	var status string
	switch {
	case s.Mode == game.ModeAI && v.paused:
		status = fmt.Sprintf("AI depth %d  paused", v.depth)
	case s.Mode == game.ModeAI && v.thinking:
		status = fmt.Sprintf("AI depth %d  thinking", v.depth)
	case s.Mode == game.ModeAI:
		status = fmt.Sprintf("AI depth %d", v.depth)
	default:
		status = fmt.Sprintf("Moves %d", s.Moves)
	}
	if s.State == game.StateStopped {
		status += "  game over"
	}
	dst.DrawTextColor(r.X, top+2, status, core.ColorCyan)

	tile := fmt.Sprintf("Max %d", s.MaxTile)
	dst.DrawTextColor(r.Right()-len(tile), top+2, tile, core.TileColor(s.MaxTile))
}

// gridRune returns the box-drawing rune at lattice point (x, y).
func gridRune(x, y int) rune {
	last := board.Size
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == last:
		return '┐'
	case y == last && x == 0:
		return '└'
	case y == last && x == last:
		return '┘'
	case y == 0:
		return '┬'
	case y == last:
		return '┴'
	case x == 0:
		return '├'
	case x == last:
		return '┤'
	default:
		return '┼'
	}
}

func drawGrid(dst *core.Screen, r core.Rect, g board.Grid) {
	for y := range board.Size + 1 {
		for x := range board.Size + 1 {
			px := r.X + x*cellWidth
			py := r.Y + y*cellHeight
			dst.SetColor(px, py, gridRune(x, y), core.ColorGray)

			if x < board.Size {
				for i := 1; i < cellWidth; i++ {
					dst.SetColor(px+i, py, '─', core.ColorGray)
				}
			}
			if y < board.Size {
				for i := 1; i < cellHeight; i++ {
					dst.SetColor(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	for row := range board.Size {
		for col := range board.Size {
			v := g[row][col]
			if v == 0 {
				continue
			}

			text := strconv.Itoa(v)
			pad := max((cellWidth-1-len(text))/2, 0)
			x := r.X + col*cellWidth + 1 + pad
			y := r.Y + row*cellHeight + 1
			dst.DrawTextColor(x, y, text, core.TileColor(v))
		}
	}
}

func drawOverlay(dst *core.Screen, r core.Rect, s game.Snapshot, v viewState) {
	switch {
	case s.State == game.StateOver:
		drawBanner(dst, r, core.ColorBrightRed, "GAME OVER", fmt.Sprintf("Max tile %d", s.MaxTile), "Enter: dismiss", "R: new game")
	case s.State == game.StateWon && s.Mode == game.ModeHuman:
		drawBanner(dst, r, core.ColorBrightMagenta, "YOU WIN!", "Enter: keep going", "R: new game")
	case v.paused:
		drawBanner(dst, r, core.ColorCyan, "PAUSED", "P: resume")
	}
}

// drawBanner draws a centered box of lines over the board.
func drawBanner(dst *core.Screen, r core.Rect, c core.Color, lines ...string) {
	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}

	box := r.Centered(width+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, c)

	cx, _ := box.Center()
	for i, line := range lines {
		color := core.ColorDefault
		if i == 0 {
			color = c
		}
		dst.DrawTextColor(cx-len(line)/2, box.Y+1+i, line, color)
	}
}
