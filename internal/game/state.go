package game

import "fmt"

// State is the lifecycle stage of a game.
type State int

const (
	StateReady   State = iota // Constructed or initialized, no move yet
	StateRunning              // At least one move accepted
	StateWon                  // The win tile was just reached; cleared by the next move or AcknowledgeWin
	StateOver                 // No move is possible
	StateStopped              // Finished and closed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateWon:
		return "won"
	case StateOver:
		return "over"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Finished reports whether the state accepts no more moves.
func (s State) Finished() bool {
	return s == StateOver || s == StateStopped
}

// Mode identifies who is playing.
type Mode string

const (
	ModeHuman Mode = "human"
	ModeAI    Mode = "ai"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeHuman, ModeAI:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidMode, s)
	}
}
