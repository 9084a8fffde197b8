package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/ai"
	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// aiMoveMsg carries a planned computer move back to the UI loop.
type aiMoveMsg struct {
	generation int
	decision   ai.Decision
	err        error
}

var (
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Model is the Bubble Tea model of the game screen.
type Model struct {
	cfg     config.Config
	runtime core.RuntimeConfig
	mode    game.Mode
	store   *storage.Store

	game       *game.Game
	generation int // Incremented per game; stale computer moves are dropped
	ctx        context.Context
	cancel     context.CancelFunc

	screen *core.Screen
	keys   GameKeyMap
	help   help.Model
	input  core.InputFrame

	pending  bool // A computer move is being planned
	paused   bool
	aiTicks  int
	saved    bool // Result recorded for the current game
	best     int
	err       error
	quitting  bool
	goingBack bool
}

// NewModel creates the game screen for mode.
func NewModel(cfg config.Config, mode game.Mode, store *storage.Store, rc core.RuntimeConfig) (Model, error) {
	if rc.TickRate <= 0 {
		rc.TickRate = cfg.UI.TickRate
	}

	m := Model{
		cfg:     cfg,
		runtime: rc,
		mode:    mode,
		store:   store,
		screen:  core.NewScreen(rc.ScreenW, screenHeight(rc.ScreenH)),
		keys:    DefaultGameKeyMap(mode),
		help:    help.New(),
		input:   core.NewInputFrame(),
	}
	if err := m.newGame(); err != nil {
		return Model{}, err
	}
	m.loadBest()
	return m, nil
}

func (m *Model) loadBest() {
	m.best = 0
	if m.store == nil {
		return
	}
	if best, err := m.store.HighScore(string(m.mode)); err == nil {
		m.best = best
	}
}

// screenHeight leaves the last terminal row for the help line.
func screenHeight(h int) int {
	return max(h-1, 0)
}

// newGame replaces the current game, abandoning any move in flight.
func (m *Model) newGame() error {
	opts := []game.Option{}
	if m.runtime.Seed != 0 {
		opts = append(opts, game.WithSeed(m.runtime.Seed+int64(m.generation)))
	}

	g, err := game.FromConfig(m.cfg, m.mode, opts...)
	if err != nil {
		return err
	}
	g.InitGame()

	if m.game != nil {
		m.game.Discard()
	}
	if m.cancel != nil {
		m.cancel()
	}

	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.game = g
	m.generation++
	m.pending = false
	m.paused = false
	m.aiTicks = 0
	m.saved = false
	m.err = nil
	return nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, screenHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()

	case aiMoveMsg:
		return m.handleAiMove(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	if action == core.ActionQuit || action == core.ActionBack {
		m.quitting = true
		m.goingBack = action == core.ActionBack
		m.game.Discard()
		m.cancel()
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.input.Set(action)
	}
	return m, nil
}

// handleTick applies the input collected since the last frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	next := tickCmd(m.runtime.TickRate)

	switch {
	case m.input.Has(core.ActionSwitch):
		m.switchMode()
		m.input.Clear()
		return m, next
	case m.input.Has(core.ActionRestart):
		if err := m.newGame(); err != nil {
			m.err = err
		}
		m.input.Clear()
		return m, next
	}

	if m.input.Has(core.ActionConfirm) {
		m.confirm()
	}

	var cmd tea.Cmd
	switch m.mode {
	case game.ModeHuman:
		m.stepHuman()
	case game.ModeAI:
		cmd = m.stepAi()
	}
	m.input.Clear()

	m.recordResult()
	return m, tea.Batch(next, cmd)
}

// switchMode starts a new game with the other player.
func (m *Model) switchMode() {
	prev := m.mode
	m.mode = other(m.mode)
	if err := m.newGame(); err != nil {
		m.mode = prev
		m.err = err
		return
	}
	m.keys = DefaultGameKeyMap(m.mode)
	m.loadBest()
}

// confirm dismisses the win or game over banner.
func (m *Model) confirm() {
	switch m.game.State() {
	case game.StateWon:
		m.game.AcknowledgeWin()
	case game.StateOver:
		if err := m.game.Stop(); err != nil {
			m.err = err
		}
	}
}

func (m *Model) stepHuman() {
	if dir, ok := moveDirection(m.input.FirstMove()); ok {
		m.game.PerformMove(dir)
	}
}

func (m *Model) stepAi() tea.Cmd {
	if m.input.Has(core.ActionPause) {
		m.paused = !m.paused
	}
	if m.paused || m.pending || m.game.State().Finished() {
		return nil
	}

	m.aiTicks++
	if m.aiTicks < m.cfg.UI.AiTicksPerMove {
		return nil
	}
	m.aiTicks = 0
	m.pending = true
	return planMove(m.ctx, m.game, m.generation)
}

// planMove runs the search off the UI loop. The game is not mutated
// until the result comes back as an aiMoveMsg.
func planMove(ctx context.Context, g *game.Game, generation int) tea.Cmd {
	return func() tea.Msg {
		d, err := g.PlanAiMove(ctx)
		return aiMoveMsg{generation: generation, decision: d, err: err}
	}
}

func (m Model) handleAiMove(msg aiMoveMsg) (tea.Model, tea.Cmd) {
	if msg.generation != m.generation {
		return m, nil
	}
	m.pending = false

	if msg.err != nil {
		if !errors.Is(msg.err, context.Canceled) {
			m.err = msg.err
			m.paused = true
		}
		return m, nil
	}

	m.game.PerformMove(msg.decision.Direction)
	if m.game.State() == game.StateWon {
		m.game.AcknowledgeWin()
	}
	m.recordResult()
	return m, nil
}

// recordResult saves a finished game once.
func (m *Model) recordResult() {
	if m.saved || !m.game.State().Finished() {
		return
	}
	m.saved = true

	s := m.game.Snapshot()
	m.best = max(m.best, s.Score)
	if m.store == nil || s.Score == 0 {
		return
	}

	r := storage.Result{
		Mode:    string(m.mode),
		Score:   s.Score,
		MaxTile: s.MaxTile,
		Moves:   s.Moves,
		Won:     s.Won,
	}
	if m.mode == game.ModeAI {
		r.SearchDepth = m.cfg.Solver.Depth
	}
	if _, err := m.store.SaveResult(r); err != nil {
		m.err = fmt.Errorf("result not saved: %w", err)
	}
}

// IsGoingBack returns true if the user wants to go back to the menu.
func (m Model) IsGoingBack() bool {
	return m.goingBack
}

// Mode returns who is playing.
func (m Model) Mode() game.Mode {
	return m.mode
}

// Game returns the current game.
func (m Model) Game() *game.Game {
	return m.game
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	v := viewState{
		paused:   m.paused,
		thinking: m.pending,
		best:     m.best,
	}
	if m.mode == game.ModeAI {
		v.depth = m.cfg.Solver.Depth
	}
	drawGame(m.screen, m.game.Snapshot(), v)

	footer := helpStyle.Render(m.help.View(m.keys))
	if m.err != nil {
		footer = errorStyle.Render(m.err.Error())
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// Run starts the game screen and blocks until the player leaves.
// Returns true if the user wants to go back to the menu, false if quitting.
func Run(cfg config.Config, mode game.Mode, store *storage.Store, rc core.RuntimeConfig) (goBack bool, err error) {
	model, err := NewModel(cfg, mode, store, rc)
	if err != nil {
		return false, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
