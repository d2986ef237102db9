// Package craps implements the rules engine for a single-player craps table.
//
// The main type is GameState, a plain value holding the player's balance, the
// current point and the Ledger of live wagers. Every operation takes a state
// and returns a new one, so callers can snapshot, replay or discard states
// freely.
//
// # Basic Usage
//
//	s := craps.NewGameState(1000)
//	s, err := craps.PlaceBet(s, craps.PassLine, 10)
//	if err != nil {
//	    // errors.Is(err, craps.ErrInsufficientFunds) ...
//	}
//	roll, _ := craps.NewRoll(3, 4)
//	s, outcome, _ := craps.Resolve(s, roll)
//	fmt.Println(outcome.Net(), s.Balance, s.Point)
//
// # Architecture
//
// The package is split into two components:
//   - BetLedger: PlaceBet, PlaceOddsBet, Clear, ClearTravelling and TotalAtRisk
//     validate and record wagers.
//   - Resolver: applies one roll to every live wager in a fixed order and
//     reports each change in a RoundOutcome.
//
// Payouts are exact ratios (see Ratio) rounded half-to-even to whole dollars,
// so repeated rolls never accumulate floating point drift.
//
// The package never generates dice itself; see internal/dice for a roller.
package craps
