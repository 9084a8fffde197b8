package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/ai"
	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/game"
)

func newTestModel(t *testing.T, mode game.Mode) Model {
	t.Helper()
	cfg := config.Default()
	cfg.Solver.Depth = 1
	cfg.Solver.DelaySeconds = 0

	rc := core.DefaultConfig()
	rc.Seed = 7
	m, err := NewModel(cfg, mode, nil, rc)
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned %T, want Model", next)
		}
	}
	return m
}

func TestKeyMapByMode(t *testing.T) {
	human := DefaultGameKeyMap(game.ModeHuman)
	computer := DefaultGameKeyMap(game.ModeAI)

	tests := []struct {
		key   string
		human core.Action
		ai    core.Action
	}{
		{"left", core.ActionLeft, core.ActionNone},
		{"w", core.ActionUp, core.ActionNone},
		{"p", core.ActionNone, core.ActionPause},
		{"r", core.ActionRestart, core.ActionRestart},
		{"enter", core.ActionConfirm, core.ActionConfirm},
		{"tab", core.ActionSwitch, core.ActionSwitch},
		{"esc", core.ActionBack, core.ActionBack},
		{"q", core.ActionQuit, core.ActionQuit},
	}

	for _, tt := range tests {
		if got := human.Action(keyMsg(tt.key)); got != tt.human {
			t.Errorf("human %q = %v, want %v", tt.key, got, tt.human)
		}
		if got := computer.Action(keyMsg(tt.key)); got != tt.ai {
			t.Errorf("ai %q = %v, want %v", tt.key, got, tt.ai)
		}
	}
}

func TestHumanMoveAppliedOnTick(t *testing.T) {
	m := newTestModel(t, game.ModeHuman)

	m = send(t, m, keyMsg("left"))
	if m.Game().Moves() != 0 {
		t.Fatal("move applied before the tick")
	}

	// With two tiles on the board one of left and right always slides.
	m = send(t, m, TickMsg{}, keyMsg("right"), TickMsg{})
	if m.Game().Moves() == 0 {
		t.Error("no move applied after two ticks")
	}
}

func TestOneMovePerTick(t *testing.T) {
	m := newTestModel(t, game.ModeHuman)

	m = send(t, m, keyMsg("left"), keyMsg("right"), keyMsg("left"), TickMsg{})
	if got := m.Game().Moves(); got > 1 {
		t.Errorf("Moves() = %d after one tick, want at most 1", got)
	}
}

func TestRestartDiscardsGame(t *testing.T) {
	m := newTestModel(t, game.ModeAI)
	old := m.Game()
	gen := m.generation

	m = send(t, m, keyMsg("r"), TickMsg{})
	if m.Game() == old {
		t.Fatal("restart kept the old game")
	}
	if !old.Discarded() {
		t.Error("old game not discarded")
	}
	if m.generation != gen+1 {
		t.Errorf("generation = %d, want %d", m.generation, gen+1)
	}
}

func TestGameOverDismissed(t *testing.T) {
	m := newTestModel(t, game.ModeHuman)
	dead := board.Grid{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}
	g, err := game.Restore(dead, 100, game.HumanSession{}, game.WithSeed(1))
	if err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	m.game = g

	if !strings.Contains(m.View(), "GAME OVER") {
		t.Fatal("game over banner not shown")
	}

	m = send(t, m, keyMsg("enter"), TickMsg{})
	if m.Game().State() != game.StateStopped {
		t.Errorf("State() = %s, want stopped", m.Game().State())
	}
	if strings.Contains(m.View(), "GAME OVER") {
		t.Error("banner still shown after dismissal")
	}
}

func TestSwitchMode(t *testing.T) {
	m := newTestModel(t, game.ModeHuman)
	old := m.Game()

	m = send(t, m, keyMsg("tab"), TickMsg{})
	if m.Mode() != game.ModeAI || m.Game().Mode() != game.ModeAI {
		t.Fatalf("mode = %s, game mode = %s; want ai", m.Mode(), m.Game().Mode())
	}
	if !old.Discarded() {
		t.Error("old game not discarded")
	}
	if got := m.keys.Action(keyMsg("left")); got != core.ActionNone {
		t.Errorf("left in ai mode = %v, want None", got)
	}

	m = send(t, m, keyMsg("tab"), TickMsg{})
	if m.Mode() != game.ModeHuman {
		t.Errorf("mode = %s after switching back, want human", m.Mode())
	}
}

func TestBackAndQuit(t *testing.T) {
	m := newTestModel(t, game.ModeAI)
	back := send(t, m, keyMsg("esc"))
	if !back.IsGoingBack() || !back.Game().Discarded() {
		t.Error("esc should leave for the menu and discard the game")
	}

	m = newTestModel(t, game.ModeAI)
	quit := send(t, m, keyMsg("q"))
	if quit.IsGoingBack() {
		t.Error("q should quit, not go back")
	}
	if quit.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestStaleComputerMoveIgnored(t *testing.T) {
	m := newTestModel(t, game.ModeAI)
	before := m.Game().Board()

	for _, dir := range board.Directions {
		m = send(t, m, aiMoveMsg{
			generation: m.generation - 1,
			decision:   ai.Decision{Direction: dir, Viable: true},
		})
	}
	if m.Game().Board() != before {
		t.Error("stale move changed the board")
	}
}

func TestComputerMoveApplied(t *testing.T) {
	m := newTestModel(t, game.ModeAI)
	m.pending = true

	for _, dir := range board.Directions {
		m = send(t, m, aiMoveMsg{
			generation: m.generation,
			decision:   ai.Decision{Direction: dir, Viable: true},
		})
	}
	if m.pending {
		t.Error("pending not cleared")
	}
	if m.Game().Moves() == 0 {
		t.Error("no computer move applied")
	}
}

func TestViewShowsScore(t *testing.T) {
	m := newTestModel(t, game.ModeHuman)
	out := m.View()

	for _, want := range []string{"2048", "Score 0", "Moves 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestDrawGameTooSmall(t *testing.T) {
	scr := core.NewScreen(20, 5)
	drawGame(scr, game.Snapshot{}, viewState{})

	if !strings.Contains(scr.String(), "too small") {
		t.Errorf("small screen not reported:\n%s", scr.String())
	}
}
