// Package game runs a single 2048 match: the move state machine, scoring,
// the win and game-over signals, and the human or computer session that
// drives it.
package game

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/ai"
	"github.com/vovakirdan/tui-2048/internal/board"
)

var (
	// ErrInvalidMode is returned when a computer move is requested from a
	// session that cannot produce one.
	ErrInvalidMode = errors.New("game: invalid mode")

	// ErrNotOver is returned by Stop before the game has ended.
	ErrNotOver = errors.New("game: game is not over")
)

const (
	DefaultSearchDepth  = 5
	DefaultChanceTwo    = board.DefaultChanceTwo
	DefaultAiDelay      = 5 * time.Millisecond
	DefaultWinThreshold = 2048
)

// Game is one match. It is not safe for concurrent mutation; the caller
// serializes moves.
type Game struct {
	board   *board.Board
	session Session
	state   State

	score       int
	moves       int
	winSignaled bool
	discarded   bool

	winThreshold int
	sleeper      Sleeper
	logger       *log.Logger
	listeners    []Listener
}

// Snapshot is a read-only copy of the observable game state.
type Snapshot struct {
	Grid    board.Grid
	Score   int
	Moves   int
	MaxTile int
	State   State
	Mode    Mode
	Won     bool
	Over    bool
}

func newGame(b *board.Board, session Session, o options) *Game {
	return &Game{
		board:        b,
		session:      session,
		state:        StateReady,
		winThreshold: o.winThreshold,
		sleeper:      o.sleeper,
		logger:       o.logger,
		listeners:    o.listeners,
	}
}

// NewHumanGame creates an empty game driven by player input.
func NewHumanGame(opts ...Option) *Game {
	o := buildOptions(opts)
	return newGame(board.New(o.chanceTwo, o.rng), HumanSession{}, o)
}

// NewAiGame creates an empty game driven by solver, pausing delay after
// each computed move.
func NewAiGame(solver Solver, delay time.Duration, opts ...Option) *Game {
	o := buildOptions(opts)
	return newGame(board.New(o.chanceTwo, o.rng), AiSession{Solver: solver, Delay: delay}, o)
}

// CreateHumanGame creates a game with default settings.
func CreateHumanGame() *Game {
	return NewHumanGame()
}

// CreateAiGame creates a computer game searching searchDepth moves ahead
// with the default heuristic.
func CreateAiGame(searchDepth int, spawnChanceTwo, perMoveDelaySeconds float64) (*Game, error) {
	if perMoveDelaySeconds < 0 {
		return nil, fmt.Errorf("%w: negative move delay %v", ai.ErrInvalidConfig, perMoveDelaySeconds)
	}

	cfg := ai.DefaultSolverConfig()
	cfg.Depth = searchDepth
	cfg.ChanceTwo = spawnChanceTwo

	eval, err := ai.Create(ai.DefaultPreset)
	if err != nil {
		return nil, err
	}
	solver, err := ai.NewExpectimax(cfg, eval)
	if err != nil {
		return nil, err
	}

	return NewAiGame(solver, seconds(perMoveDelaySeconds), WithChanceTwo(spawnChanceTwo)), nil
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

// Restore creates a running game that already holds grid and score.
func Restore(g board.Grid, score int, session Session, opts ...Option) (*Game, error) {
	if session == nil {
		return nil, fmt.Errorf("%w: nil session", ErrInvalidMode)
	}
	if score < 0 {
		return nil, fmt.Errorf("game: negative score %d", score)
	}

	o := buildOptions(opts)
	b, err := board.FromGrid(g, o.chanceTwo, o.rng)
	if err != nil {
		return nil, err
	}

	game := newGame(b, session, o)
	game.score = score
	game.state = StateRunning
	game.winSignaled = b.LargestPieceValue() >= game.winThreshold
	if !b.IsMovePossible() {
		game.state = StateOver
	}
	return game, nil
}

// InitGame places the starting tiles. The state stays StateReady.
func (g *Game) InitGame() {
	g.board.InitRandom()
	g.logger.Debug("game initialized", "mode", g.Mode(), "grid", g.board.Grid())
}

// PerformMove applies dir. It returns false, changing nothing but the
// state, when the game is finished or no direction can move; otherwise
// it returns true, even if dir itself leaves the board unchanged.
func (g *Game) PerformMove(dir board.Direction) bool {
	if g.discarded || g.state.Finished() {
		return false
	}
	if !g.board.IsMovePossible() {
		g.finish()
		return false
	}

	if g.state == StateReady || g.state == StateWon {
		g.state = StateRunning
	}

	out := g.board.Move(dir)
	if !out.Changed {
		return true
	}

	g.score += out.Points
	g.moves++
	g.board.AddRandomPiece()

	g.logger.Debug("move", "dir", dir, "points", out.Points, "score", g.score)
	g.emit(Event{Kind: EventMoved, Direction: dir, Points: out.Points})

	if !g.winSignaled && g.board.LargestPieceValue() >= g.winThreshold {
		g.winSignaled = true
		g.state = StateWon
		g.logger.Info("win tile reached", "tile", g.board.LargestPieceValue(), "score", g.score, "moves", g.moves)
		g.emit(Event{Kind: EventWon})
	}

	if !g.board.IsMovePossible() {
		g.finish()
	}
	return true
}

func (g *Game) finish() {
	if g.state.Finished() {
		return
	}
	g.state = StateOver
	g.logger.Info("game over", "mode", g.Mode(), "score", g.score, "max_tile", g.MaxTile(), "moves", g.moves)
	g.emit(Event{Kind: EventOver})
}

func (g *Game) emit(e Event) {
	e.Score = g.score
	e.MaxTile = g.board.LargestPieceValue()
	for _, l := range g.listeners {
		l(e)
	}
}

// PlanAiMove asks the solver for a move on a snapshot of the board and
// waits the session delay. It does not change the game.
func (g *Game) PlanAiMove(ctx context.Context) (ai.Decision, error) {
	s, ok := g.session.(AiSession)
	if !ok || s.Solver == nil {
		return ai.Decision{}, fmt.Errorf("%w: %s session has no solver", ErrInvalidMode, g.Mode())
	}

	d, err := s.Solver.NextMove(ctx, g.board.Grid())
	if err != nil {
		return ai.Decision{}, fmt.Errorf("game: planning move: %w", err)
	}
	if err := g.sleeper.Sleep(ctx, s.Delay); err != nil {
		return ai.Decision{}, err
	}
	return d, nil
}

// PerformAiMove plans a move and applies it. A game discarded while the
// move was being planned is left alone and reports false.
func (g *Game) PerformAiMove(ctx context.Context) (bool, error) {
	d, err := g.PlanAiMove(ctx)
	if err != nil {
		return false, err
	}
	if g.discarded {
		return false, nil
	}
	return g.PerformMove(d.Direction), nil
}

// AcknowledgeWin returns a won game to StateRunning.
func (g *Game) AcknowledgeWin() {
	if g.state == StateWon {
		g.state = StateRunning
	}
}

// Stop closes a finished game.
func (g *Game) Stop() error {
	switch g.state {
	case StateStopped:
		return nil
	case StateOver:
		g.state = StateStopped
		return nil
	default:
		return fmt.Errorf("%w: state is %s", ErrNotOver, g.state)
	}
}

// Discard abandons the game. Later moves are ignored.
func (g *Game) Discard() {
	g.discarded = true
}

// Discarded reports whether Discard was called.
func (g *Game) Discarded() bool {
	return g.discarded
}

// IsGameWon reports whether the win tile is on the board.
func (g *Game) IsGameWon() bool {
	return g.board.LargestPieceValue() >= g.winThreshold
}

// IsGameOver reports whether no move is possible.
func (g *Game) IsGameOver() bool {
	return !g.board.IsMovePossible()
}

func (g *Game) Score() int { return g.score }

// Moves returns the number of moves that changed the board.
func (g *Game) Moves() int { return g.moves }

// Board returns a snapshot of the grid.
func (g *Game) Board() board.Grid { return g.board.Grid() }

func (g *Game) MaxTile() int { return g.board.LargestPieceValue() }

func (g *Game) State() State { return g.state }

func (g *Game) Mode() Mode { return g.session.Mode() }

func (g *Game) Session() Session { return g.session }

// WinThreshold returns the tile value that signals a win.
func (g *Game) WinThreshold() int { return g.winThreshold }

// Snapshot returns a copy of the observable state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Grid:    g.board.Grid(),
		Score:   g.score,
		Moves:   g.moves,
		MaxTile: g.MaxTile(),
		State:   g.state,
		Mode:    g.Mode(),
		Won:     g.IsGameWon(),
		Over:    g.IsGameOver(),
	}
}
