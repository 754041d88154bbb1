package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

const (
	maxScores      = 10 // Top-10 per mode
	panelMinWidth  = 44 // Narrowest panel the four columns fit in
	panelChrome    = 4  // Border plus padding around a panel
	scoreboardRows = 7  // Title, help and spacing around the panels
)

var (
	sbTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sbDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sbEmptyStyle = sbDimStyle.Italic(true).Padding(1, 2)
	sbPanelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	sbFocusStyle = sbPanelStyle.BorderForeground(lipgloss.Color("14"))
)

// ScoreSource is the read side of the score store.
type ScoreSource interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Switch}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		Switch: key.NewBinding(key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"), key.WithHelp("tab", "switch mode")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// modePanel is one mode's top scores.
type modePanel struct {
	game   registry.GameInfo
	scores []storage.ScoreEntry
	table  table.Model
}

// ScoreboardModel shows the top scores of every mode. Wide terminals get
// the panels side by side; narrow ones show the focused panel only.
type ScoreboardModel struct {
	panels    []modePanel
	focus     int
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel loads the top scores for each game. A nil store shows
// empty panels.
func NewScoreboardModel(games []registry.GameInfo, store ScoreSource, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		panels: make([]modePanel, len(games)),
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width

	for i, g := range games {
		m.panels[i].game = g
		if store != nil {
			if scores, err := store.TopScores(g.ID, maxScores); err == nil {
				m.panels[i].scores = scores
			}
		}
	}
	m.layout()
	return m
}

// sideBySide reports whether every panel fits in one row.
func (m ScoreboardModel) sideBySide() bool {
	n := len(m.panels)
	return n > 1 && m.width >= n*(panelMinWidth+panelChrome)
}

// layout rebuilds the tables for the current size.
func (m *ScoreboardModel) layout() {
	panelW := m.width - panelChrome
	if m.sideBySide() {
		panelW = m.width/len(m.panels) - panelChrome
	}
	panelW = max(panelW, panelMinWidth)

	for i := range m.panels {
		m.panels[i].table = newScoreTable(m.panels[i].scores, panelW, m.height-scoreboardRows)
		if i == m.focus {
			m.panels[i].table.Focus()
		} else {
			m.panels[i].table.Blur()
		}
	}
}

// newScoreTable builds a table of ranked scores width cells wide.
func newScoreTable(scores []storage.ScoreEntry, width, height int) table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 12},
		{Title: "Score", Width: 10},
		{Title: "When", Width: 14},
	}
	// Extra room goes to the player name.
	columns[1].Width += min(max(width-panelMinWidth, 0), 12)

	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		player := s.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			player,
			humanize.Comma(int64(s.Score)),
			humanize.Time(s.CreatedAt),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(min(max(height, 3), maxScores+1)),
	)

	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(st)
	return t
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Switch):
			if len(m.panels) > 1 {
				m.focus = (m.focus + 1) % len(m.panels)
				m.layout()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			if len(m.panels) == 0 {
				return m, nil
			}
			var cmd tea.Cmd
			m.panels[m.focus].table, cmd = m.panels[m.focus].table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
	}

	return m, nil
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(sbTitleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")

	switch {
	case len(m.panels) == 0:
		b.WriteString(centerText(sbEmptyStyle.Render("No scores recorded yet."), m.width))
	case m.sideBySide():
		rendered := make([]string, len(m.panels))
		for i := range m.panels {
			rendered[i] = m.renderPanel(i)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	default:
		b.WriteString(m.renderPanel(m.focus))
	}

	b.WriteString("\n")
	b.WriteString(sbDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderPanel draws panel i with its mode name and best score.
func (m ScoreboardModel) renderPanel(i int) string {
	p := m.panels[i]
	style := sbPanelStyle
	if i == m.focus {
		style = sbFocusStyle
	}

	header := sbTitleStyle.Render(p.game.Title)
	if len(p.scores) > 0 {
		header += sbDimStyle.Render("  best " + humanize.Comma(int64(p.scores[0].Score)))
	}

	body := p.table.View()
	if len(p.scores) == 0 {
		body = sbEmptyStyle.Render("No scores recorded yet.\nFinish a game to set one!")
	}
	return style.Render(header + "\n" + body)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(games []registry.GameInfo, store ScoreSource, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(games, store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
