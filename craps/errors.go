package craps

import "fmt"

// ErrorCode classifies a rejected placement or roll.
type ErrorCode int

const (
	CodeInsufficientFunds ErrorCode = iota + 1
	CodeIllegalPhase
	CodeNoQualifyingBet
	CodeOddsLimitExceeded
	CodeInvalidCategory
	CodeInvalidRoll
	CodeInvalidAmount
)

func (c ErrorCode) String() string {
	switch c {
	case CodeInsufficientFunds:
		return "insufficient_funds"
	case CodeIllegalPhase:
		return "illegal_phase"
	case CodeNoQualifyingBet:
		return "no_qualifying_bet"
	case CodeOddsLimitExceeded:
		return "odds_limit_exceeded"
	case CodeInvalidCategory:
		return "invalid_category"
	case CodeInvalidRoll:
		return "invalid_roll"
	case CodeInvalidAmount:
		return "invalid_amount"
	default:
		return "unknown"
	}
}

// BetError is returned for every recoverable validation failure. Compare
// against the Err* sentinels with errors.Is.
type BetError struct {
	Code     ErrorCode
	Category BetCategory
	Amount   Money
	Limit    Money
	Detail   string
}

func (e *BetError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Detail)
	}
	return e.Code.String()
}

// Is matches any BetError with the same code.
func (e *BetError) Is(target error) bool {
	t, ok := target.(*BetError)
	return ok && t.Code == e.Code
}

var (
	ErrInsufficientFunds = &BetError{Code: CodeInsufficientFunds}
	ErrIllegalPhase      = &BetError{Code: CodeIllegalPhase}
	ErrNoQualifyingBet   = &BetError{Code: CodeNoQualifyingBet}
	ErrOddsLimitExceeded = &BetError{Code: CodeOddsLimitExceeded}
	ErrInvalidCategory   = &BetError{Code: CodeInvalidCategory}
	ErrInvalidRoll       = &BetError{Code: CodeInvalidRoll}
	ErrInvalidAmount     = &BetError{Code: CodeInvalidAmount}
)
