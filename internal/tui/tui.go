// Package tui is a Bubble Tea terminal client for playing at a local table.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/craps/craps"
	"github.com/lox/craps/internal/table"
)

// Model is the Bubble Tea model for a craps session
type Model struct {
	table  *table.Table
	logger *log.Logger

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	// State
	gameLog      []string
	lastReturned craps.Money
	lastNet      craps.Money
	lastRoll     *craps.Roll
	quitting     bool
	focusedPane  int // 0 = log, 1 = input
	unsubscribe  func()

	// Dimensions
	width       int
	height      int
	initialized bool
}

// NewModel seats a terminal player at tbl. Call Close when done to stop
// listening for table events.
func NewModel(tbl *table.Table, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "bet pass 10, odds 6 20, roll, clear, help, quit"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 100
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	m := &Model{
		table:       tbl,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		actionInput: ti,
		focusedPane: 1,
	}
	m.unsubscribe = tbl.Events().Subscribe(table.SubscriberFunc(m.onTableEvent))
	m.AddLogEntry(HeaderStyle.Render(" Welcome to the craps table ") + " Type help for the rules.")
	return m
}

// Run plays until the player quits
func Run(tbl *table.Table, logger *log.Logger, opts ...tea.ProgramOption) error {
	m := NewModel(tbl, logger)
	defer m.Close()

	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

// Close stops listening for table events
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				input := strings.TrimSpace(m.actionInput.Value())
				m.actionInput.SetValue("")
				if m.Execute(input) {
					return m, tea.Quit
				}
				return m, nil
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// Execute runs one line of player input against the table and reports
// whether the player asked to leave.
func (m *Model) Execute(input string) bool {
	command, err := ParseCommand(input)
	if err != nil {
		m.addError(err)
		return false
	}
	if input != "" {
		m.AddLogEntry(InfoStyle.Render("> " + input))
	}

	switch command.Kind {
	case CommandBet:
		if _, err := m.table.PlaceBet(command.Category, command.Amount); err != nil {
			m.addError(err)
			return false
		}
		m.AddLogEntry(fmt.Sprintf("Bet %s on %s", command.Amount, command.Category))

	case CommandOdds:
		if _, err := m.table.PlaceOddsBet(command.Number, command.Amount); err != nil {
			m.addError(err)
			return false
		}
		m.AddLogEntry(fmt.Sprintf("Odds %s behind the %d", command.Amount, command.Number))

	case CommandRoll:
		if m.table.Busted() {
			m.AddLogEntry(ErrorStyle.Render("You are out of money. Type quit to leave."))
			return false
		}
		var err error
		if command.Dice != nil {
			_, err = m.table.RollDice(command.Dice[0], command.Dice[1])
		} else {
			_, err = m.table.Roll()
		}
		if err != nil {
			m.addError(err)
		}

	case CommandClear:
		before := m.table.State().Balance
		after, err := m.table.TakeDown()
		if err != nil {
			m.addError(err)
			return false
		}
		if after.Balance == before {
			m.AddLogEntry("Nothing to take down")
		} else {
			m.AddLogEntry(fmt.Sprintf("Took down %s", after.Balance-before))
		}

	case CommandHelp:
		for _, line := range strings.Split(craps.RulesSummary+"\n"+usage, "\n") {
			m.AddLogEntry(InfoStyle.Render(line))
		}

	case CommandQuit:
		m.quitting = true
		return true
	}
	return false
}

// onTableEvent logs roll results and point changes as the table publishes them
func (m *Model) onTableEvent(e table.GameEvent) {
	switch e := e.(type) {
	case table.RollResolvedEvent:
		out := e.Round.Outcome
		roll := out.Roll
		m.lastRoll = &roll
		m.lastReturned = out.TotalReturned()
		m.lastNet = out.Net()
		for _, line := range formatRound(e.Round) {
			m.AddLogEntry(line)
		}
	case table.PointChangeEvent:
		if e.To.On() {
			m.AddLogEntry(PointStyle.Render(fmt.Sprintf("Point is ON %s", e.To)))
		} else {
			m.AddLogEntry(PointStyle.Render("Point is OFF"))
		}
	}
}

// formatRound renders a resolved roll and each bet it settled
func formatRound(round table.Round) []string {
	out := round.Outcome
	label := fmt.Sprintf("Roll #%d: %d-%d = %d", round.Number, out.Roll.Die1, out.Roll.Die2, out.Sum)
	if out.Hard && out.Sum != 2 && out.Sum != 12 {
		label += " (hard)"
	}
	lines := []string{DiceStyle.Render(label)}

	for _, r := range out.Results {
		name := r.Category.String()
		if r.Number != 0 && r.Category.Number() == 0 {
			name = fmt.Sprintf("%s %d", name, r.Number)
		}
		switch r.Kind {
		case craps.Win:
			text := fmt.Sprintf("  %s wins %s", name, r.Won)
			if r.Standing {
				text += ", stake stays up"
			}
			lines = append(lines, WinStyle.Render(text))
		case craps.Lose:
			lines = append(lines, LossStyle.Render(fmt.Sprintf("  %s loses %s", name, r.Stake)))
		case craps.Push:
			lines = append(lines, fmt.Sprintf("  %s pushes, %s returned", name, r.Returned))
		case craps.Travel:
			lines = append(lines, fmt.Sprintf("  %s %s moves to %d", r.Category, r.Stake, r.Number))
		}
	}
	return lines
}

func (m *Model) addError(err error) {
	var betErr *craps.BetError
	msg := err.Error()
	switch {
	case errors.As(err, &betErr):
		msg = betErr.Error()
	case errors.Is(err, table.ErrBelowMinimum), errors.Is(err, table.ErrAboveMaximum):
		limits := m.table.Limits()
		msg = fmt.Sprintf("%s (min %s, max %s)", err, limits.Min, limits.Max)
	}
	m.logger.Debug("Command rejected", "error", err)
	m.AddLogEntry(ErrorStyle.Render(msg))
}

// AddLogEntry appends to the game log and scrolls to it
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Log returns a copy of the game log
func (m *Model) Log() []string {
	return append([]string(nil), m.gameLog...)
}

// LastReturned is what the most recent roll credited to the balance
func (m *Model) LastReturned() craps.Money {
	return m.lastReturned
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(focusColor(m.focusedPane == 1)).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight, 1)).
		Render(actionContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 28)
	paneHeight := max(m.height-actionHeight-4, 1)
	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}
	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(focusColor(m.focusedPane == 0)).
		Width(logWidth).
		Height(paneHeight).
		Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

func focusColor(focused bool) lipgloss.Color {
	if focused {
		return lipgloss.Color("#04B575")
	}
	return lipgloss.Color("#626262")
}

// renderSidebarPane shows the balance, the puck and every live bet
func (m *Model) renderSidebarPane() string {
	s := m.table.Snapshot()
	var content strings.Builder

	fmt.Fprintf(&content, "%s\n", WarningStyle.Render("Balance: "+s.Balance.String()))
	if s.Point.On() {
		fmt.Fprintf(&content, "%s\n", PointStyle.Render("Point: ON "+s.Point.String()))
	} else {
		fmt.Fprintf(&content, "%s\n", InfoStyle.Render("Point: OFF"))
	}
	fmt.Fprintf(&content, "Rolls: %d\n", s.Rounds)
	if m.lastRoll != nil {
		fmt.Fprintf(&content, "Last roll: %d-%d\n", m.lastRoll.Die1, m.lastRoll.Die2)
		fmt.Fprintf(&content, "Last win: %s (net %+d)\n", m.lastReturned, int64(m.lastNet))
	}
	content.WriteString("\n")

	content.WriteString(InfoStyle.Render("Bets on the table:"))
	content.WriteString("\n")
	if len(s.Bets) == 0 && len(s.Come) == 0 && len(s.DontCome) == 0 {
		content.WriteString("  none\n")
	}
	for _, bet := range s.Bets {
		fmt.Fprintf(&content, "  %-14s %s\n", bet.Category, bet.Amount)
	}
	writeTravelling(&content, craps.Come, s.Come)
	writeTravelling(&content, craps.DontCome, s.DontCome)

	fmt.Fprintf(&content, "\nAt risk: %s\n", s.AtRisk)
	return content.String()
}

func writeTravelling(b *strings.Builder, category craps.BetCategory, bets []craps.TravellingBet) {
	for _, bet := range bets {
		where := "box"
		if bet.Point.On() {
			where = bet.Point.String()
		}
		fmt.Fprintf(b, "  %-14s %s", fmt.Sprintf("%s %s", category, where), bet.Amount)
		if bet.Odds > 0 {
			fmt.Fprintf(b, " +%s odds", bet.Odds)
		}
		b.WriteString("\n")
	}
}

// renderActionPane renders the input line and key help
func (m *Model) renderActionPane() string {
	var content strings.Builder
	content.WriteString(m.actionInput.View())
	content.WriteString("\n")
	if m.focusedPane == 0 {
		content.WriteString(InfoStyle.Render("Log focused: ↑↓ scroll, Home/End, Tab to input"))
	} else {
		content.WriteString(InfoStyle.Render("Enter to submit • Tab to scroll log • Ctrl+C to quit"))
	}
	return content.String()
}
