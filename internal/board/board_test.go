package board

import (
	"errors"
	"math/rand"
	"testing"
)

func TestSlideRowMerge(t *testing.T) {
	tests := []struct {
		name     string
		input    [4]int
		expected [4]int
		score    int
	}{
		{
			name:     "simple merge",
			input:    [4]int{2, 2, 0, 0},
			expected: [4]int{4, 0, 0, 0},
			score:    4,
		},
		{
			name:     "triple merges nearest the edge",
			input:    [4]int{2, 2, 2, 0},
			expected: [4]int{4, 2, 0, 0},
			score:    4,
		},
		{
			name:     "double merge",
			input:    [4]int{2, 2, 2, 2},
			expected: [4]int{4, 4, 0, 0},
			score:    8,
		},
		{
			name:     "merged tile does not merge again",
			input:    [4]int{2, 2, 4, 0},
			expected: [4]int{4, 4, 0, 0},
			score:    4,
		},
		{
			name:     "no merge possible",
			input:    [4]int{2, 4, 8, 16},
			expected: [4]int{2, 4, 8, 16},
			score:    0,
		},
		{
			name:     "slide with gap",
			input:    [4]int{0, 0, 2, 2},
			expected: [4]int{4, 0, 0, 0},
			score:    4,
		},
		{
			name:     "merge across gaps",
			input:    [4]int{2, 0, 0, 2},
			expected: [4]int{4, 0, 0, 0},
			score:    4,
		},
		{
			name:     "empty row",
			input:    [4]int{0, 0, 0, 0},
			expected: [4]int{0, 0, 0, 0},
			score:    0,
		},
		{
			name:     "single tile",
			input:    [4]int{0, 4, 0, 0},
			expected: [4]int{4, 0, 0, 0},
			score:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, score := slideRow(tt.input)
			if result != tt.expected {
				t.Errorf("slideRow(%v) = %v, want %v", tt.input, result, tt.expected)
			}
			if score != tt.score {
				t.Errorf("slideRow(%v) score = %d, want %d", tt.input, score, tt.score)
			}
		})
	}
}

func TestSlideDirections(t *testing.T) {
	start := Grid{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	}

	tests := []struct {
		dir    Direction
		want   Grid
		points int
	}{
		{
			dir: Left,
			want: Grid{
				{4, 0, 0, 0},
				{8, 0, 0, 0},
				{4, 4, 0, 0},
				{2, 0, 0, 0},
			},
			points: 4 + 8 + 8,
		},
		{
			dir: Right,
			want: Grid{
				{0, 0, 0, 4},
				{0, 0, 0, 8},
				{0, 0, 4, 4},
				{0, 0, 0, 2},
			},
			points: 4 + 8 + 8,
		},
		{
			dir: Up,
			want: Grid{
				{2, 4, 4, 4},
				{4, 0, 2, 0},
				{2, 0, 0, 0},
				{0, 0, 0, 0},
			},
			points: 4 + 4,
		},
		{
			dir: Down,
			want: Grid{
				{0, 0, 0, 0},
				{2, 0, 0, 0},
				{4, 0, 4, 0},
				{2, 4, 2, 4},
			},
			points: 4 + 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			got, points, changed := Slide(start, tt.dir)
			if got != tt.want {
				t.Errorf("Slide(%s): got\n%v\nwant\n%v", tt.dir, got, tt.want)
			}
			if points != tt.points {
				t.Errorf("Slide(%s) points = %d, want %d", tt.dir, points, tt.points)
			}
			if !changed {
				t.Errorf("Slide(%s) should report a change", tt.dir)
			}
		})
	}
}

func TestMoveLeftScenario(t *testing.T) {
	b, err := FromGrid(Grid{
		{2, 2, 0, 0},
	}, DefaultChanceTwo, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("FromGrid() failed: %v", err)
	}

	out := b.Move(Left)
	if !out.Changed {
		t.Error("move left should change the board")
	}
	if out.Points != 4 {
		t.Errorf("points = %d, want 4", out.Points)
	}
	if row := b.Grid()[0]; row != [4]int{4, 0, 0, 0} {
		t.Errorf("row = %v, want [4 0 0 0]", row)
	}
}

func TestUnchangedMoveLeavesBoardIdentical(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		b := New(DefaultChanceTwo, rng)
		spawns := 1 + rng.Intn(Size*Size)
		for range spawns {
			b.AddRandomPiece()
		}

		for _, dir := range Directions {
			before := b.Grid()
			out := b.Clone().Move(dir)
			if out.Changed {
				continue
			}
			b.Move(dir)
			if b.Grid() != before {
				t.Fatalf("unchanged %s move mutated the board:\n%v->\n%v", dir, before, b.Grid())
			}
			if out.Points != 0 {
				t.Fatalf("unchanged %s move reported %d points", dir, out.Points)
			}
		}
	}
}

func TestInvalidDirectionIsUnchanged(t *testing.T) {
	g := Grid{{2, 0, 0, 0}}
	got, points, changed := Slide(g, Direction(9))
	if changed || points != 0 || got != g {
		t.Errorf("invalid direction should leave grid unchanged, got changed=%v points=%d", changed, points)
	}
}

func TestIsMovePossible(t *testing.T) {
	tests := []struct {
		name string
		grid Grid
		want bool
	}{
		{
			name: "no empty and no merges",
			grid: Grid{
				{2, 4, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 2048, 4096},
				{8192, 16384, 32768, 65536},
			},
			want: false,
		},
		{
			name: "horizontal merge",
			grid: Grid{
				{2, 2, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 2048, 4096},
				{8192, 16384, 32768, 65536},
			},
			want: true,
		},
		{
			name: "vertical merge",
			grid: Grid{
				{2, 4, 8, 16},
				{32, 64, 128, 16},
				{512, 1024, 2048, 4096},
				{8192, 16384, 32768, 65536},
			},
			want: true,
		},
		{
			name: "empty cell",
			grid: Grid{
				{2, 4, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 0, 4096},
				{8192, 16384, 32768, 65536},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := FromGrid(tt.grid, DefaultChanceTwo, rand.New(rand.NewSource(1)))
			if err != nil {
				t.Fatalf("FromGrid() failed: %v", err)
			}
			if got := b.IsMovePossible(); got != tt.want {
				t.Errorf("IsMovePossible() = %v, want %v", got, tt.want)
			}

			// Must agree with actually attempting every direction.
			anyChange := false
			for _, dir := range Directions {
				if _, _, changed := Slide(tt.grid, dir); changed {
					anyChange = true
				}
			}
			if anyChange != tt.want {
				t.Errorf("directional check = %v, want %v", anyChange, tt.want)
			}
		})
	}
}

func TestFromGridRejectsInvalidTiles(t *testing.T) {
	for _, v := range []int{1, 3, 6, -2} {
		_, err := FromGrid(Grid{{v}}, DefaultChanceTwo, nil)
		if !errors.Is(err, ErrInvalidTile) {
			t.Errorf("FromGrid with %d: err = %v, want ErrInvalidTile", v, err)
		}
	}
}

func TestInitRandom(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		b := New(DefaultChanceTwo, rand.New(rand.NewSource(seed)))
		b.InitRandom()

		if n := Size*Size - len(b.EmptyCells()); n != StartTiles {
			t.Fatalf("seed %d: %d tiles after InitRandom, want %d", seed, n, StartTiles)
		}
		if v := b.LargestPieceValue(); v != 2 && v != 4 {
			t.Fatalf("seed %d: largest piece %d, want 2 or 4", seed, v)
		}
	}
}

func TestAddRandomPieceFullBoard(t *testing.T) {
	full := Grid{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}
	b, err := FromGrid(full, DefaultChanceTwo, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("FromGrid() failed: %v", err)
	}

	if b.AddRandomPiece() {
		t.Error("AddRandomPiece on a full board should report false")
	}
	if b.Grid() != full {
		t.Error("AddRandomPiece on a full board must not change it")
	}
}

func TestSpawnProbability(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	twos, total := 0, 5000
	for range total {
		b := New(DefaultChanceTwo, rng)
		b.AddRandomPiece()
		if b.LargestPieceValue() == 2 {
			twos++
		}
	}

	ratio := float64(twos) / float64(total)
	if ratio < 0.87 || ratio > 0.93 {
		t.Errorf("ratio of 2s = %.3f, want about 0.9", ratio)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b, err := FromGrid(Grid{
		{2, 2, 0, 0},
		{0, 4, 0, 4},
	}, DefaultChanceTwo, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("FromGrid() failed: %v", err)
	}
	before := b.Grid()

	c := b.Clone()
	c.Move(Left)
	c.AddRandomPiece()

	if b.Grid() != before {
		t.Errorf("moving a clone altered the original:\n%v", b.Grid())
	}
	if c.Grid() == before {
		t.Error("clone should have changed")
	}
}

func TestGridSnapshotIsACopy(t *testing.T) {
	b, _ := FromGrid(Grid{{2}}, DefaultChanceTwo, nil)
	g := b.Grid()
	g[0][0] = 1024

	if b.Get(0, 0) != 2 {
		t.Error("mutating a snapshot must not touch the board")
	}
}

func TestMaxTileAndEmpty(t *testing.T) {
	g := Grid{
		{2, 0, 8, 0},
		{0, 64, 0, 256},
		{512, 0, 2048, 0},
		{0, 16, 0, 64},
	}

	if got := MaxTile(g); got != 2048 {
		t.Errorf("MaxTile = %d, want 2048", got)
	}
	if got := len(EmptyCells(g)); got != 8 {
		t.Errorf("EmptyCells count = %d, want 8", got)
	}
	if got := MaxTile(Grid{}); got != 0 {
		t.Errorf("MaxTile(empty) = %d, want 0", got)
	}
}
