// Package board implements the 2048 grid: sliding and merging tiles,
// random tile spawning and terminal-state queries.
package board

import (
	"errors"
	"fmt"
)

// StartTiles is the number of tiles placed by InitRandom.
const StartTiles = 2

// DefaultChanceTwo is the probability that a spawned tile is a 2 rather than a 4.
const DefaultChanceTwo = 0.9

// ErrInvalidTile is returned when a grid holds a value that is not a power of two >= 2.
var ErrInvalidTile = errors.New("board: invalid tile value")

// Rand is the random source used for spawning. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Outcome is the result of attempting a move.
type Outcome struct {
	Changed bool // Whether any cell changed
	Points  int  // Sum of the values produced by merges
}

// Board is the mutable game board owned by a single game.
type Board struct {
	cells     Grid
	chanceTwo float64
	rng       Rand
}

// New creates an empty board.
func New(chanceTwo float64, rng Rand) *Board {
	return &Board{
		chanceTwo: chanceTwo,
		rng:       rng,
	}
}

// FromGrid creates a board holding the given cells.
func FromGrid(g Grid, chanceTwo float64, rng Rand) (*Board, error) {
	for r := range Size {
		for c := range Size {
			v := g[r][c]
			if v == 0 {
				continue
			}
			if v < 2 || v&(v-1) != 0 {
				return nil, fmt.Errorf("%w: %d at row %d col %d", ErrInvalidTile, v, r, c)
			}
		}
	}

	b := New(chanceTwo, rng)
	b.cells = g
	return b, nil
}

// Move slides the board in the given direction.
// The board is left untouched when the move changes nothing.
func (b *Board) Move(dir Direction) Outcome {
	next, points, changed := Slide(b.cells, dir)
	if !changed {
		return Outcome{}
	}
	b.cells = next
	return Outcome{Changed: true, Points: points}
}

// AddRandomPiece places a 2 or a 4 in a uniformly chosen empty cell.
// Callers must ensure the board has an empty cell; on a full board this
// does nothing and returns false.
func (b *Board) AddRandomPiece() bool {
	empty := EmptyCells(b.cells)
	if len(empty) == 0 {
		return false
	}

	cell := empty[b.rng.Intn(len(empty))]

	value := 2
	if b.rng.Float64() >= b.chanceTwo {
		value = 4
	}

	b.cells[cell.Row][cell.Col] = value
	return true
}

// InitRandom populates the board with StartTiles spawned tiles.
func (b *Board) InitRandom() {
	for range StartTiles {
		b.AddRandomPiece()
	}
}

// IsMovePossible reports whether any direction would change the board.
func (b *Board) IsMovePossible() bool {
	return CanMove(b.cells)
}

// LargestPieceValue returns the largest tile on the board (0 if empty).
func (b *Board) LargestPieceValue() int {
	return MaxTile(b.cells)
}

// EmptyCells returns the coordinates of the empty cells.
func (b *Board) EmptyCells() []Cell {
	return EmptyCells(b.cells)
}

// Get returns the value at row, col. Out-of-range coordinates return 0.
func (b *Board) Get(row, col int) int {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return 0
	}
	return b.cells[row][col]
}

// Grid returns a snapshot of the cells.
func (b *Board) Grid() Grid {
	return b.cells
}

// ChanceTwo returns the probability of spawning a 2.
func (b *Board) ChanceTwo() float64 {
	return b.chanceTwo
}

// Clone returns an independent copy sharing the spawn settings.
func (b *Board) Clone() *Board {
	return &Board{
		cells:     b.cells,
		chanceTwo: b.chanceTwo,
		rng:       b.rng,
	}
}

func (b *Board) String() string {
	return b.cells.String()
}
