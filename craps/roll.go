package craps

import "fmt"

// Roll is the face values of the two dice.
type Roll struct {
	Die1 int `json:"die1"`
	Die2 int `json:"die2"`
}

// NewRoll validates both faces are in 1..6.
func NewRoll(die1, die2 int) (Roll, error) {
	r := Roll{Die1: die1, Die2: die2}
	if err := r.Validate(); err != nil {
		return Roll{}, err
	}
	return r, nil
}

// Validate returns ErrInvalidRoll if either face is outside 1..6.
func (r Roll) Validate() error {
	if r.Die1 < 1 || r.Die1 > 6 || r.Die2 < 1 || r.Die2 > 6 {
		return &BetError{Code: CodeInvalidRoll, Detail: fmt.Sprintf("dice must be 1-6, got %d and %d", r.Die1, r.Die2)}
	}
	return nil
}

// Sum is the total of both dice.
func (r Roll) Sum() int {
	return r.Die1 + r.Die2
}

// Hard reports whether both dice show the same face.
func (r Roll) Hard() bool {
	return r.Die1 == r.Die2
}

func (r Roll) String() string {
	return fmt.Sprintf("%d-%d (%d)", r.Die1, r.Die2, r.Sum())
}
