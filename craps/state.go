package craps

// GameState is the whole mutable state of a session. It is a value: every
// operation in this package returns a new GameState and leaves its input
// untouched.
type GameState struct {
	Balance Money
	Point   Point
	Ledger  Ledger
}

// NewGameState starts a session with bankroll and the point off.
func NewGameState(bankroll Money) GameState {
	return GameState{Balance: bankroll}
}

// Clone returns a deep copy safe to mutate independently.
func (s GameState) Clone() GameState {
	s.Ledger = s.Ledger.clone()
	return s
}

// ComeOut reports whether the next roll is a come-out roll.
func (s GameState) ComeOut() bool {
	return !s.Point.On()
}

// Equity is the balance plus everything still on the table.
func (s GameState) Equity() Money {
	return s.Balance + TotalAtRisk(s)
}
