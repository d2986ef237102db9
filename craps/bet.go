package craps

import "fmt"

// PlaceBet records a wager of amount on category and deducts it from the
// balance. Come and Don't Come placements each start a new TravellingBet in
// the box; every other category accumulates onto its existing stake.
//
// On error the returned state is s unchanged.
func PlaceBet(s GameState, category BetCategory, amount Money) (GameState, error) {
	if !category.placeable() {
		return s, &BetError{Code: CodeInvalidCategory, Category: category, Amount: amount,
			Detail: fmt.Sprintf("cannot place %s directly", category)}
	}
	if amount <= 0 {
		return s, &BetError{Code: CodeInvalidAmount, Category: category, Amount: amount,
			Detail: fmt.Sprintf("amount must be positive, got %d", amount)}
	}
	if amount > s.Balance {
		return s, &BetError{Code: CodeInsufficientFunds, Category: category, Amount: amount, Limit: s.Balance,
			Detail: fmt.Sprintf("%s bet of %s exceeds balance %s", category, amount, s.Balance)}
	}
	switch category {
	case PassLine, DontPass:
		if s.Point.On() {
			return s, &BetError{Code: CodeIllegalPhase, Category: category, Amount: amount,
				Detail: fmt.Sprintf("%s only accepted on the come-out roll", category)}
		}
	case Come, DontCome:
		if !s.Point.On() {
			return s, &BetError{Code: CodeIllegalPhase, Category: category, Amount: amount,
				Detail: fmt.Sprintf("%s requires an established point", category)}
		}
	}

	next := s.Clone()
	if list := next.Ledger.travelling(category); list != nil {
		*list = append(*list, TravellingBet{Amount: amount})
	} else {
		next.Ledger.stakes[category] += amount
	}
	next.Balance -= amount
	return next, nil
}

// PlaceOddsBet adds odds behind the wager that qualifies on number. The
// first match wins, in this order: Pass Line with the point on number, Don't
// Pass with the point on number, the first Come bet on number, the first
// Don't Come bet on number. Only that wager is checked against OddsLimit.
func PlaceOddsBet(s GameState, number int, amount Money) (GameState, error) {
	if amount <= 0 {
		return s, &BetError{Code: CodeInvalidAmount, Amount: amount,
			Detail: fmt.Sprintf("amount must be positive, got %d", amount)}
	}
	if amount > s.Balance {
		return s, &BetError{Code: CodeInsufficientFunds, Amount: amount, Limit: s.Balance,
			Detail: fmt.Sprintf("odds of %s exceeds balance %s", amount, s.Balance)}
	}
	if !IsPointNumber(number) {
		return s, &BetError{Code: CodeNoQualifyingBet, Amount: amount,
			Detail: fmt.Sprintf("%d is not a point number", number)}
	}

	next := s.Clone()
	base, odds, category := next.oddsTarget(number)
	if odds == nil {
		return s, &BetError{Code: CodeNoQualifyingBet, Amount: amount,
			Detail: fmt.Sprintf("no pass, don't pass, come or don't come bet on %d", number)}
	}
	limit := base * OddsLimit(number)
	if *odds+amount > limit {
		return s, &BetError{Code: CodeOddsLimitExceeded, Category: category, Amount: amount, Limit: limit - *odds,
			Detail: fmt.Sprintf("odds on %d limited to %s, already %s", number, limit, *odds)}
	}
	*odds += amount
	next.Balance -= amount
	return next, nil
}

// OddsTarget reports which odds category PlaceOddsBet would add to for
// number, and whether any wager qualifies.
func OddsTarget(s GameState, number int) (BetCategory, bool) {
	_, odds, category := s.oddsTarget(number)
	return category, odds != nil
}

// oddsTarget finds the base stake and odds slot qualifying for odds on number.
// odds is nil when nothing qualifies.
func (s *GameState) oddsTarget(number int) (base Money, odds *Money, category BetCategory) {
	l := &s.Ledger
	if int(s.Point) == number {
		if l.stakes[PassLine] > 0 {
			return l.stakes[PassLine], &l.stakes[PassLineOdds], PassLineOdds
		}
		if l.stakes[DontPass] > 0 {
			return l.stakes[DontPass], &l.stakes[DontPassOdds], DontPassOdds
		}
	}
	for i := range l.come {
		if int(l.come[i].Point) == number {
			return l.come[i].Amount, &l.come[i].Odds, ComeOdds
		}
	}
	for i := range l.dontCome {
		if int(l.dontCome[i].Point) == number {
			return l.dontCome[i].Amount, &l.dontCome[i].Odds, DontComeOdds
		}
	}
	return 0, nil, 0
}

// Clear zeroes the listed flat categories without touching the balance.
// Clearing is not losing: pay out or forfeit first. Travelling categories are
// ignored; use ClearTravelling.
func Clear(s GameState, categories ...BetCategory) GameState {
	next := s.Clone()
	for _, c := range categories {
		if c.Valid() && !c.IsTravelling() {
			next.Ledger.stakes[c] = 0
		}
	}
	return next
}

// ClearTravelling removes every Come or Don't Come entry matching pred.
func ClearTravelling(s GameState, category BetCategory, pred func(TravellingBet) bool) GameState {
	next := s.Clone()
	list := next.Ledger.travelling(category)
	if list == nil {
		return next
	}
	kept := (*list)[:0]
	for _, b := range *list {
		if !pred(b) {
			kept = append(kept, b)
		}
	}
	*list = kept
	return next
}

// InBox matches travelling bets that have not moved to a number yet.
func InBox(b TravellingBet) bool {
	return b.Point == PointOff
}

// OnNumber matches travelling bets sitting on number.
func OnNumber(number int) func(TravellingBet) bool {
	return func(b TravellingBet) bool {
		return int(b.Point) == number
	}
}

// TotalAtRisk sums every flat stake plus amount and odds of every travelling
// bet.
func TotalAtRisk(s GameState) Money {
	return s.Ledger.total()
}
