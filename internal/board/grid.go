package board

import (
	"strconv"
	"strings"
)

// Size is the board dimension. Only 4x4 boards are supported.
const Size = 4

// Grid is a value snapshot of the board, indexed [row][col].
// 0 means empty; any other value is a power of two >= 2.
// Assigning a Grid copies it, so a Grid handed out never aliases a live board.
type Grid [Size][Size]int

// Cell is a board coordinate.
type Cell struct {
	Row, Col int
}

// slideRow slides and merges a single row toward index 0.
// A tile produced by a merge does not merge again in the same pass.
func slideRow(row [Size]int) (result [Size]int, score int) {
	writePos := 0
	merged := false

	for i := range Size {
		if row[i] == 0 {
			continue
		}

		if writePos > 0 && !merged && result[writePos-1] == row[i] {
			result[writePos-1] *= 2
			score += result[writePos-1]
			merged = true
			continue
		}

		result[writePos] = row[i]
		writePos++
		merged = false
	}

	return result, score
}

func reverseRow(row [Size]int) [Size]int {
	var result [Size]int
	for i := range Size {
		result[i] = row[Size-1-i]
	}
	return result
}

func transpose(g Grid) Grid {
	var result Grid
	for r := range Size {
		for c := range Size {
			result[r][c] = g[c][r]
		}
	}
	return result
}

func slideLeft(g Grid) (Grid, int) {
	var out Grid
	total := 0
	for r := range Size {
		row, score := slideRow(g[r])
		out[r] = row
		total += score
	}
	return out, total
}

func slideRight(g Grid) (Grid, int) {
	var out Grid
	total := 0
	for r := range Size {
		row, score := slideRow(reverseRow(g[r]))
		out[r] = reverseRow(row)
		total += score
	}
	return out, total
}

// Slide performs a move on a grid value.
// Returns the new grid, the points earned by merges, and whether anything changed.
// An invalid direction returns the grid unchanged.
func Slide(g Grid, dir Direction) (Grid, int, bool) {
	var (
		out   Grid
		score int
	)

	switch dir {
	case Left:
		out, score = slideLeft(g)
	case Right:
		out, score = slideRight(g)
	case Up:
		out, score = slideLeft(transpose(g))
		out = transpose(out)
	case Down:
		out, score = slideRight(transpose(g))
		out = transpose(out)
	default:
		return g, 0, false
	}

	return out, score, out != g
}

// EmptyCells returns the coordinates of all empty cells in row-major order.
func EmptyCells(g Grid) []Cell {
	cells := make([]Cell, 0, Size*Size)
	for r := range Size {
		for c := range Size {
			if g[r][c] == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// CountEmpty returns the number of empty cells.
func CountEmpty(g Grid) int {
	n := 0
	for r := range Size {
		for c := range Size {
			if g[r][c] == 0 {
				n++
			}
		}
	}
	return n
}

// HasPossibleMerge returns true if any two orthogonally adjacent tiles are equal.
func HasPossibleMerge(g Grid) bool {
	for r := range Size {
		for c := range Size {
			val := g[r][c]
			if val == 0 {
				continue
			}
			if c < Size-1 && g[r][c+1] == val {
				return true
			}
			if r < Size-1 && g[r+1][c] == val {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if at least one direction would change the grid.
func CanMove(g Grid) bool {
	return CountEmpty(g) > 0 || HasPossibleMerge(g)
}

// MaxTile returns the largest tile value, or 0 for an empty grid.
func MaxTile(g Grid) int {
	maxVal := 0
	for r := range Size {
		for c := range Size {
			if g[r][c] > maxVal {
				maxVal = g[r][c]
			}
		}
	}
	return maxVal
}

// String renders the grid as right-aligned columns, one row per line.
func (g Grid) String() string {
	width := len(strconv.Itoa(MaxTile(g)))
	if width < 1 {
		width = 1
	}

	var sb strings.Builder
	for r := range Size {
		for c := range Size {
			if c > 0 {
				sb.WriteByte(' ')
			}
			cell := "."
			if g[r][c] != 0 {
				cell = strconv.Itoa(g[r][c])
			}
			sb.WriteString(strings.Repeat(" ", width-len(cell)))
			sb.WriteString(cell)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
