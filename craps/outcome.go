package craps

import "fmt"

// ResultKind says what happened to one wager on a roll.
type ResultKind int

const (
	Win ResultKind = iota
	Lose
	Push
	Travel // a come or don't come bet moved to a number
)

func (k ResultKind) String() string {
	return [...]string{"win", "lose", "push", "travel"}[k]
}

func (k ResultKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ResultKind) UnmarshalText(text []byte) error {
	for i, name := range [...]string{"win", "lose", "push", "travel"} {
		if string(text) == name {
			*k = ResultKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown result kind %q", text)
}

// BetResult is one wager that changed on a roll.
type BetResult struct {
	Category BetCategory `json:"category"`
	Number   int         `json:"number,omitempty"` // box number for place, hardway, big and travelling bets
	Stake    Money       `json:"stake"`
	Returned Money       `json:"returned"` // credited to balance
	Won      Money       `json:"won"`      // winnings part of Returned
	Kind     ResultKind  `json:"kind"`
	Standing bool        `json:"standing,omitempty"` // stake left on the table after a win
}

// RoundOutcome reports everything a roll changed, for a collaborator to
// render.
type RoundOutcome struct {
	Roll        Roll        `json:"roll"`
	Sum         int         `json:"sum"`
	Hard        bool        `json:"hard"`
	PointBefore Point       `json:"pointBefore"`
	PointAfter  Point       `json:"pointAfter"`
	Results     []BetResult `json:"results"`
}

// TotalReturned is everything credited to the balance.
func (o RoundOutcome) TotalReturned() Money {
	var total Money
	for _, r := range o.Results {
		total += r.Returned
	}
	return total
}

// TotalWon is the winnings part of TotalReturned.
func (o RoundOutcome) TotalWon() Money {
	var total Money
	for _, r := range o.Results {
		total += r.Won
	}
	return total
}

// Net is the change in equity (balance plus money on the table) caused by
// the roll.
func (o RoundOutcome) Net() Money {
	var net Money
	for _, r := range o.Results {
		switch r.Kind {
		case Win:
			net += r.Won
		case Lose:
			net -= r.Stake
		}
	}
	return net
}

// PointEstablished reports whether the roll set a new point.
func (o RoundOutcome) PointEstablished() bool {
	return !o.PointBefore.On() && o.PointAfter.On()
}

// SevenOut reports whether the roll was a seven with a point on.
func (o RoundOutcome) SevenOut() bool {
	return o.PointBefore.On() && o.Sum == 7
}

// Find returns the first result for category, if any.
func (o RoundOutcome) Find(category BetCategory) (BetResult, bool) {
	for _, r := range o.Results {
		if r.Category == category {
			return r, true
		}
	}
	return BetResult{}, false
}
