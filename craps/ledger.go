package craps

// TravellingBet is a Come or Don't Come wager. Point is PointOff while the
// bet sits in the box, then the number it travelled to.
type TravellingBet struct {
	Amount Money `json:"amount"`
	Point  Point `json:"point"`
	Odds   Money `json:"odds"`
}

// Stake is a flat wager amount on one category.
type Stake struct {
	Category BetCategory `json:"category"`
	Amount   Money       `json:"amount"`
}

// Ledger holds every live wager. Flat categories hold one accumulated stake;
// Come and Don't Come hold one TravellingBet per placement, in placement
// order.
type Ledger struct {
	stakes   [numCategories]Money
	come     []TravellingBet
	dontCome []TravellingBet
}

// Stake returns the flat stake on c. Travelling categories report the sum of
// their base amounts.
func (l Ledger) Stake(c BetCategory) Money {
	switch c {
	case Come:
		return sumAmounts(l.come)
	case DontCome:
		return sumAmounts(l.dontCome)
	}
	if !c.Valid() {
		return 0
	}
	return l.stakes[c]
}

// Come returns a copy of the come bets.
func (l Ledger) Come() []TravellingBet {
	return append([]TravellingBet(nil), l.come...)
}

// DontCome returns a copy of the don't come bets.
func (l Ledger) DontCome() []TravellingBet {
	return append([]TravellingBet(nil), l.dontCome...)
}

// Bets lists the non-zero flat stakes in category order.
func (l Ledger) Bets() []Stake {
	var bets []Stake
	for c, amount := range l.stakes {
		if amount > 0 {
			bets = append(bets, Stake{Category: BetCategory(c), Amount: amount})
		}
	}
	return bets
}

// Empty reports whether no wager is live.
func (l Ledger) Empty() bool {
	return l.total() == 0
}

func (l Ledger) total() Money {
	var total Money
	for _, amount := range l.stakes {
		total += amount
	}
	for _, b := range l.come {
		total += b.Amount + b.Odds
	}
	for _, b := range l.dontCome {
		total += b.Amount + b.Odds
	}
	return total
}

func (l *Ledger) travelling(c BetCategory) *[]TravellingBet {
	switch c {
	case Come:
		return &l.come
	case DontCome:
		return &l.dontCome
	}
	return nil
}

func (l Ledger) clone() Ledger {
	l.come = append([]TravellingBet(nil), l.come...)
	l.dontCome = append([]TravellingBet(nil), l.dontCome...)
	return l
}

func sumAmounts(bets []TravellingBet) Money {
	var total Money
	for _, b := range bets {
		total += b.Amount
	}
	return total
}
