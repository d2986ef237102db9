// Package strategy holds automated bettors used by the simulator and the
// terminal client's auto mode.
package strategy

import (
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/lox/craps/craps"
)

// Wager is one bet a strategy wants on the table before the next roll.
// Number is set for odds wagers only.
type Wager struct {
	Category  craps.BetCategory
	Number    int
	Amount    craps.Money
	Reasoning string
}

// IsOdds reports whether the wager is placed with PlaceOddsBet.
func (w Wager) IsOdds() bool {
	return w.Number != 0
}

// Strategy decides wagers from the current state. Wagers must be pure
// functions of the state so that seeded sessions replay exactly.
type Strategy interface {
	Name() string
	Wagers(s craps.GameState) []Wager
}

// Bettor is the table surface a strategy bets through.
type Bettor interface {
	State() craps.GameState
	PlaceBet(category craps.BetCategory, amount craps.Money) (craps.GameState, error)
	PlaceOddsBet(number int, amount craps.Money) (craps.GameState, error)
}

// ErrUnknownStrategy is returned by New for unregistered names.
var ErrUnknownStrategy = errors.New("unknown strategy")

type factory func(unit craps.Money) Strategy

var registry = map[string]factory{
	"pass":       func(u craps.Money) Strategy { return &PassLine{Unit: u} },
	"pass_odds":  func(u craps.Money) Strategy { return &PassLine{Unit: u, MaxOdds: true} },
	"dont_pass":  func(u craps.Money) Strategy { return &DontPass{Unit: u, MaxOdds: true} },
	"place68":    func(u craps.Money) Strategy { return &Place68{Unit: u} },
	"field":      func(u craps.Money) Strategy { return &Field{Unit: u} },
	"iron_cross": func(u craps.Money) Strategy { return &IronCross{Unit: u} },
	"come":       func(u craps.Money) Strategy { return &ComeBetting{Unit: u, MaxComeBets: 2} },
}

// Names lists the registered strategies in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns the named strategy betting in multiples of unit.
func New(name string, unit craps.Money) (Strategy, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownStrategy, name, Names())
	}
	if unit <= 0 {
		return nil, fmt.Errorf("strategy %s: unit must be positive, got %d", name, unit)
	}
	return f(unit), nil
}

// Apply places every wager st asks for. Wagers the player cannot afford are
// skipped; any other rejection is returned. It reports how many wagers were
// placed.
func Apply(b Bettor, st Strategy, logger *log.Logger) (int, error) {
	placed := 0
	for _, w := range st.Wagers(b.State()) {
		var err error
		if w.IsOdds() {
			_, err = b.PlaceOddsBet(w.Number, w.Amount)
		} else {
			_, err = b.PlaceBet(w.Category, w.Amount)
		}
		switch {
		case err == nil:
			placed++
			logger.Debug("Strategy bet", "strategy", st.Name(), "category", w.Category, "amount", w.Amount, "reason", w.Reasoning)
		case errors.Is(err, craps.ErrInsufficientFunds):
			logger.Debug("Strategy bet skipped", "strategy", st.Name(), "category", w.Category, "amount", w.Amount, "error", err)
		default:
			return placed, fmt.Errorf("%s: %w", st.Name(), err)
		}
	}
	return placed, nil
}

// maxOdds is the full odds multiple behind base on number.
func maxOdds(base craps.Money, number int) craps.Money {
	return base * craps.OddsLimit(number)
}

// sixEight rounds unit up to a multiple of six so 7:6 pays whole dollars.
func sixEight(unit craps.Money) craps.Money {
	if unit%6 == 0 {
		return unit
	}
	return (unit/6 + 1) * 6
}
