// Package dice rolls pairs of six-sided dice for a craps table.
package dice

import (
	rand "math/rand/v2"

	"github.com/lox/craps/craps"
)

// Source produces one roll per call.
type Source interface {
	Roll() craps.Roll
}

// Roller draws uniform faces from an injected RNG. It is not safe for
// concurrent use; give each session its own.
type Roller struct {
	rng *rand.Rand
}

// NewRoller creates a roller over rng. The RNG is required so that tests and
// simulations can replay a session from its seed.
func NewRoller(rng *rand.Rand) *Roller {
	if rng == nil {
		panic("rng is required for dice roller")
	}
	return &Roller{rng: rng}
}

// Roll throws both dice.
func (r *Roller) Roll() craps.Roll {
	return craps.Roll{Die1: r.rng.IntN(6) + 1, Die2: r.rng.IntN(6) + 1}
}

// Fixed replays a scripted sequence of rolls, cycling when it runs out.
// Useful for demos and tests.
type Fixed struct {
	rolls []craps.Roll
	next  int
}

// NewFixed validates rolls and returns a source that yields them in order.
func NewFixed(rolls ...craps.Roll) (*Fixed, error) {
	if len(rolls) == 0 {
		return nil, craps.ErrInvalidRoll
	}
	for _, r := range rolls {
		if err := r.Validate(); err != nil {
			return nil, err
		}
	}
	return &Fixed{rolls: append([]craps.Roll(nil), rolls...)}, nil
}

// Roll returns the next scripted roll.
func (f *Fixed) Roll() craps.Roll {
	r := f.rolls[f.next]
	f.next = (f.next + 1) % len(f.rolls)
	return r
}
