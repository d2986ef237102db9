package tui

import (
	"io"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/craps/craps"
	"github.com/lox/craps/internal/table"
)

func TestMain(m *testing.M) {
	SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func newTestModel(t *testing.T, opts ...table.Option) (*Model, *table.Table) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}) // Quiet logger for tests
	opts = append([]table.Option{table.WithBankroll(100), table.WithLogger(logger)}, opts...)
	tbl := table.New(opts...)
	m := NewModel(tbl, logger)
	t.Cleanup(m.Close)
	return m, tbl
}

func logText(m *Model) string {
	return strings.Join(m.Log(), "\n")
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{"", Command{Kind: CommandRoll}},
		{"roll", Command{Kind: CommandRoll}},
		{"roll 3 4", Command{Kind: CommandRoll, Dice: []int{3, 4}}},
		{"bet pass 10", Command{Kind: CommandBet, Category: craps.PassLine, Amount: 10}},
		{"BET Place6 $12", Command{Kind: CommandBet, Category: craps.Place6, Amount: 12}},
		{"b hard8 5", Command{Kind: CommandBet, Category: craps.Hard8, Amount: 5}},
		{"odds 6 20", Command{Kind: CommandOdds, Number: 6, Amount: 20}},
		{"clear", Command{Kind: CommandClear}},
		{"help", Command{Kind: CommandHelp}},
		{"quit", Command{Kind: CommandQuit}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCommand(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	tests := []struct {
		input string
		is    error
	}{
		{"dance", ErrUnknownCommand},
		{"bet lucky 5", craps.ErrInvalidCategory},
		{"roll 7 1", craps.ErrInvalidRoll},
		{"bet pass", nil},
		{"bet pass -5", nil},
		{"bet pass ten", nil},
		{"odds 7 10", nil},
		{"roll 3", nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseCommand(tt.input)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestExecutePlaysRounds(t *testing.T) {
	m, tbl := newTestModel(t)

	assert.False(t, m.Execute("bet pass 10"))
	assert.Equal(t, craps.Money(90), tbl.State().Balance)
	assert.Contains(t, logText(m), "Bet $10 on pass")

	m.Execute("roll 3 4")
	assert.Contains(t, logText(m), "Roll #1: 3-4 = 7")
	assert.Contains(t, logText(m), "pass wins $10, stake stays up")
	assert.Equal(t, craps.Money(10), m.LastReturned())

	m.Execute("roll 2 2")
	assert.Contains(t, logText(m), "Roll #2: 2-2 = 4 (hard)")
	assert.Contains(t, logText(m), "Point is ON 4")

	m.Execute("odds 4 20")
	assert.Equal(t, craps.Money(80), tbl.State().Balance)

	m.Execute("roll 1 3")
	assert.Contains(t, logText(m), "Point is OFF")
	assert.Contains(t, logText(m), "pass_odds wins $40")
	assert.Equal(t, craps.Money(150), tbl.State().Balance)
}

func TestExecuteReportsErrors(t *testing.T) {
	m, tbl := newTestModel(t, table.WithLimits(5, 50))

	m.Execute("bet come 5")
	assert.Contains(t, logText(m), "illegal_phase")

	m.Execute("bet field 2")
	assert.Contains(t, logText(m), "min $5")

	m.Execute("odds 6 10")
	assert.Contains(t, logText(m), "no_qualifying_bet")

	m.Execute("shoot")
	assert.Contains(t, logText(m), "unknown command")

	assert.Equal(t, craps.Money(100), tbl.State().Balance)
}

func TestExecuteClear(t *testing.T) {
	m, tbl := newTestModel(t)

	m.Execute("clear")
	assert.Contains(t, logText(m), "Nothing to take down")

	m.Execute("bet field 5")
	m.Execute("bet pass 10")
	m.Execute("clear")
	assert.Contains(t, logText(m), "Took down $5")
	assert.Equal(t, craps.Money(90), tbl.State().Balance, "pass line stays up")
}

func TestExecuteHelpAndQuit(t *testing.T) {
	m, _ := newTestModel(t)

	assert.False(t, m.Execute("help"))
	assert.Contains(t, logText(m), "Pass Line")
	assert.Contains(t, logText(m), "odds <number> <amount>")

	assert.True(t, m.Execute("quit"))
	assert.Empty(t, m.View())
}

func TestExecuteWhenBusted(t *testing.T) {
	m, tbl := newTestModel(t, table.WithBankroll(5))

	m.Execute("bet field 5")
	m.Execute("roll 3 4")
	require.True(t, tbl.Busted())

	m.Execute("roll")
	assert.Contains(t, logText(m), "out of money")
	assert.Equal(t, 1, tbl.Rounds())
}

func TestUpdateAndView(t *testing.T) {
	m, tbl := newTestModel(t)

	assert.Equal(t, "Loading...", m.View())
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	m.actionInput.SetValue("bet dont_pass 25")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, craps.Money(75), tbl.State().Balance)
	assert.Empty(t, m.actionInput.Value())

	view := m.View()
	assert.Contains(t, view, "Balance: $75")
	assert.Contains(t, view, "Point: OFF")
	assert.Contains(t, view, "dont_pass")
	assert.Contains(t, view, "At risk: $25")

	m.Execute("roll 5 5")
	view = m.View()
	assert.Contains(t, view, "Point: ON 10")
	assert.Contains(t, view, "Last roll: 5-5")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
