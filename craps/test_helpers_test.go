package craps

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustRoll(t *testing.T, die1, die2 int) Roll {
	t.Helper()
	r, err := NewRoll(die1, die2)
	require.NoError(t, err)
	return r
}

func mustPlace(t *testing.T, s GameState, c BetCategory, amount Money) GameState {
	t.Helper()
	next, err := PlaceBet(s, c, amount)
	require.NoError(t, err)
	return next
}

func mustOdds(t *testing.T, s GameState, number int, amount Money) GameState {
	t.Helper()
	next, err := PlaceOddsBet(s, number, amount)
	require.NoError(t, err)
	return next
}

func mustResolve(t *testing.T, r *Resolver, s GameState, die1, die2 int) (GameState, RoundOutcome) {
	t.Helper()
	next, out, err := r.Resolve(s, mustRoll(t, die1, die2))
	require.NoError(t, err)
	require.Equal(t, s.Equity()+out.Net(), next.Equity(), "equity must change by exactly the outcome net")
	return next, out
}

// withPoint returns a state with the point already established on number.
func withPoint(balance Money, number int) GameState {
	s := NewGameState(balance)
	s.Point = Point(number)
	return s
}
