package game

import "github.com/vovakirdan/tui-2048/internal/board"

// EventKind identifies a game event.
type EventKind int

const (
	EventMoved EventKind = iota // A move changed the board
	EventWon                    // The win tile was reached, at most once per game
	EventOver                   // No move is possible
)

func (k EventKind) String() string {
	switch k {
	case EventMoved:
		return "moved"
	case EventWon:
		return "won"
	case EventOver:
		return "over"
	default:
		return "unknown"
	}
}

// Event is delivered synchronously to listeners.
type Event struct {
	Kind      EventKind
	Direction board.Direction // Set for EventMoved
	Points    int             // Points earned by the move
	Score     int
	MaxTile   int
}

// Listener receives game events.
type Listener func(Event)
