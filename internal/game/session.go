package game

import (
	"context"
	"time"

	"github.com/vovakirdan/tui-2048/internal/ai"
	"github.com/vovakirdan/tui-2048/internal/board"
)

// Solver picks the next move for a grid. *ai.Expectimax satisfies it.
type Solver interface {
	NextMove(ctx context.Context, g board.Grid) (ai.Decision, error)
}

// Session describes who drives a game. It is either HumanSession or
// AiSession.
type Session interface {
	Mode() Mode
	session()
}

// HumanSession is driven by PerformMove calls from player input.
type HumanSession struct{}

// Mode returns ModeHuman.
func (HumanSession) Mode() Mode { return ModeHuman }

func (HumanSession) session() {}

// AiSession is driven by a solver, pausing Delay after each computed move.
type AiSession struct {
	Solver Solver
	Delay  time.Duration
}

// Mode returns ModeAI.
func (AiSession) Mode() Mode { return ModeAI }

func (AiSession) session() {}
