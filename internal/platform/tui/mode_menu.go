package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/game"
)

type menuItem struct {
	title  string
	mode   game.Mode // Empty for the scores entry
	scores bool
}

var menuItems = []menuItem{
	{title: "Play", mode: game.ModeHuman},
	{title: "Watch the computer play", mode: game.ModeAI},
	{title: "High scores", scores: true},
}

// MenuResult holds the result of the mode selector.
type MenuResult struct {
	Mode            game.Mode
	WantsScoreboard bool
	Quit            bool
}

// ModeModel lets the user choose who plays.
type ModeModel struct {
	cursor   int
	width    int
	height   int
	keys     MenuKeyMap
	help     help.Model
	result   MenuResult
	choosing bool
}

// NewModeModel creates the mode selector.
func NewModeModel(width, height int) ModeModel {
	return ModeModel{
		width:    width,
		height:   height,
		keys:     DefaultMenuKeyMap(),
		help:     help.New(),
		choosing: true,
	}
}

// Init initializes the model.
func (m ModeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ModeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.choosing = false
			m.result = MenuResult{Quit: true}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(menuItems)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			item := menuItems[m.cursor]
			m.choosing = false
			m.result = MenuResult{Mode: item.mode, WantsScoreboard: item.scores}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

// View renders the selector.
func (m ModeModel) View() string {
	if !m.choosing {
		return ""
	}

	var b strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	selected := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	b.WriteString("\n")
	b.WriteString(centerText(title.Render("2 0 4 8"), m.width))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		line := fmt.Sprintf("  %s", item.title)
		if i == m.cursor {
			line = selected.Render("> " + item.title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Result returns the selection; Quit is set if the user left.
func (m ModeModel) Result() MenuResult {
	if m.choosing {
		return MenuResult{Quit: true}
	}
	return m.result
}

// centerText centers styled text within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunMenu runs the mode selector.
func RunMenu(width, height int) (MenuResult, error) {
	p := tea.NewProgram(
		NewModeModel(width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Quit: true}, err
	}

	m, ok := finalModel.(ModeModel)
	if !ok {
		return MenuResult{Quit: true}, nil
	}
	return m.Result(), nil
}
