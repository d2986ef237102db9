package craps

// PassLineWin selects what happens to a winning Pass Line stake.
type PassLineWin int

const (
	// StakeStays credits only the winnings and leaves the stake working.
	StakeStays PassLineWin = iota
	// StakeReturned credits stake plus winnings and clears the bet.
	StakeReturned
)

func (p PassLineWin) String() string {
	return [...]string{"stake_stays", "stake_returned"}[p]
}

// Rules holds the table conventions a Resolver applies.
type Rules struct {
	PassLineWin PassLineWin
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Rules)

// WithPassLineWin sets the Pass Line win convention. Default StakeStays.
func WithPassLineWin(p PassLineWin) ResolverOption {
	return func(r *Rules) {
		r.PassLineWin = p
	}
}

// Resolver applies rolls to game states. It holds no mutable state and is
// safe for concurrent use.
type Resolver struct {
	rules Rules
}

// NewResolver creates a resolver with default rules and the given options.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(&r.rules)
	}
	return r
}

// Rules returns the rules in effect.
func (r *Resolver) Rules() Rules {
	return r.rules
}

var defaultResolver = NewResolver()

// Resolve applies roll to s with default rules.
func Resolve(s GameState, roll Roll) (GameState, RoundOutcome, error) {
	return defaultResolver.Resolve(s, roll)
}

// Resolve applies one roll to every live wager in s and returns the new state
// and a report of every wager that changed. s is not modified. The only error
// is ErrInvalidRoll.
//
// Wagers are processed in a fixed order:
//  1. one-roll bets (field and propositions), always cleared
//  2. Pass and Don't Pass on a come-out roll
//  3. Pass, Don't Pass and their odds with a point on, including seven-out
//  4. Come and Don't Come travelling bets
//  5. Place bets, working only when a point was on before the roll
//  6. Hardways
//  7. Big 6 and Big 8
func (r *Resolver) Resolve(s GameState, roll Roll) (GameState, RoundOutcome, error) {
	if err := roll.Validate(); err != nil {
		return s, RoundOutcome{}, err
	}

	rd := &round{
		rules: r.rules,
		s:     s.Clone(),
		sum:   roll.Sum(),
		hard:  roll.Hard(),
		point: s.Point,
	}
	rd.out = RoundOutcome{
		Roll:        roll,
		Sum:         rd.sum,
		Hard:        rd.hard,
		PointBefore: s.Point,
	}

	rd.resolveOneRoll()
	if rd.point.On() {
		rd.resolvePoint()
	} else {
		rd.resolveComeOut()
	}
	rd.resolveTravelling(Come)
	rd.resolveTravelling(DontCome)
	if rd.point.On() && rd.sum == 7 {
		rd.emptyTravelling()
	}
	rd.resolvePlace()
	rd.resolveHardways()
	rd.resolveBig()

	rd.s.Point = rd.point.Advance(rd.sum)
	rd.out.PointAfter = rd.s.Point
	return rd.s, rd.out, nil
}

// round is the working state of a single Resolve call.
type round struct {
	rules Rules
	s     GameState
	out   RoundOutcome
	sum   int
	hard  bool
	point Point // point before the roll
}

func (rd *round) stake(c BetCategory) Money {
	return rd.s.Ledger.stakes[c]
}

// win credits stake plus winnings and clears the flat bet.
func (rd *round) win(c BetCategory, ratio Ratio) {
	stake := rd.stake(c)
	won := ratio.Winnings(stake)
	rd.s.Balance += stake + won
	rd.s.Ledger.stakes[c] = 0
	rd.record(BetResult{Category: c, Number: c.Number(), Stake: stake, Returned: stake + won, Won: won, Kind: Win})
}

// lose clears the flat bet with no return.
func (rd *round) lose(c BetCategory) {
	stake := rd.stake(c)
	rd.s.Ledger.stakes[c] = 0
	rd.record(BetResult{Category: c, Number: c.Number(), Stake: stake, Kind: Lose})
}

// push returns the stake and clears the flat bet.
func (rd *round) push(c BetCategory) {
	stake := rd.stake(c)
	rd.s.Balance += stake
	rd.s.Ledger.stakes[c] = 0
	rd.record(BetResult{Category: c, Number: c.Number(), Stake: stake, Returned: stake, Kind: Push})
}

func (rd *round) record(res BetResult) {
	if res.Stake > 0 {
		rd.out.Results = append(rd.out.Results, res)
	}
}

func (rd *round) winPassLine() {
	stake := rd.stake(PassLine)
	if stake == 0 {
		return
	}
	if rd.rules.PassLineWin == StakeReturned {
		rd.win(PassLine, Even)
		return
	}
	won := Even.Winnings(stake)
	rd.s.Balance += won
	rd.record(BetResult{Category: PassLine, Stake: stake, Returned: won, Won: won, Kind: Win, Standing: true})
}

func (rd *round) resolveOneRoll() {
	for c := Field; c < numCategories; c++ {
		if !c.IsOneRoll() || rd.stake(c) == 0 {
			continue
		}
		if c == Field {
			if ratio, ok := FieldPayout(rd.sum); ok {
				rd.win(c, ratio)
			} else {
				rd.lose(c)
			}
			continue
		}
		if propositionWins(c, rd.sum) {
			rd.win(c, PropositionPayout(c))
		} else {
			rd.lose(c)
		}
	}
}

func (rd *round) resolveComeOut() {
	switch rd.sum {
	case 7, 11:
		rd.winPassLine()
		rd.lose(DontPass)
	case 2, 3:
		rd.lose(PassLine)
		rd.win(DontPass, Even)
	case 12:
		rd.lose(PassLine)
		rd.push(DontPass)
	}
}

func (rd *round) resolvePoint() {
	number := int(rd.point)
	switch rd.sum {
	case number:
		rd.winPassLine()
		rd.win(PassLineOdds, TrueOdds(number))
		rd.lose(DontPass)
		rd.lose(DontPassOdds)
	case 7:
		rd.lose(PassLine)
		rd.lose(PassLineOdds)
		rd.win(DontPass, Even)
		rd.win(DontPassOdds, LayOdds(number))
		for c := Place4; c <= Place10; c++ {
			rd.lose(c)
		}
	}
}

func (rd *round) resolveTravelling(kind BetCategory) {
	list := rd.s.Ledger.travelling(kind)
	oddsCategory := ComeOdds
	if kind == DontCome {
		oddsCategory = DontComeOdds
	}

	kept := (*list)[:0]
	for _, b := range *list {
		if b.Point == PointOff {
			if rd.resolveInBox(kind, &b) {
				kept = append(kept, b)
			}
			continue
		}

		number := int(b.Point)
		made := rd.sum == number
		seven := rd.sum == 7
		if !made && !seven {
			kept = append(kept, b)
			continue
		}
		// Come wins on its number and loses on seven; Don't Come is the reverse.
		if made == (kind == Come) {
			odds := TrueOdds(number)
			if kind == DontCome {
				odds = LayOdds(number)
			}
			rd.winTravelling(kind, number, b.Amount, Even)
			rd.winTravelling(oddsCategory, number, b.Odds, odds)
		} else {
			rd.record(BetResult{Category: kind, Number: number, Stake: b.Amount, Kind: Lose})
			rd.record(BetResult{Category: oddsCategory, Number: number, Stake: b.Odds, Kind: Lose})
		}
	}
	*list = kept
}

// resolveInBox settles a travelling bet that has not moved yet and reports
// whether it stays on the table.
func (rd *round) resolveInBox(kind BetCategory, b *TravellingBet) bool {
	switch rd.sum {
	case 7, 11:
		if kind == Come {
			rd.winTravelling(kind, 0, b.Amount, Even)
		} else {
			rd.record(BetResult{Category: kind, Stake: b.Amount, Kind: Lose})
		}
		return false
	case 2, 3:
		if kind == DontCome {
			rd.winTravelling(kind, 0, b.Amount, Even)
		} else {
			rd.record(BetResult{Category: kind, Stake: b.Amount, Kind: Lose})
		}
		return false
	case 12:
		if kind == DontCome {
			rd.s.Balance += b.Amount
			rd.record(BetResult{Category: kind, Stake: b.Amount, Returned: b.Amount, Kind: Push})
		} else {
			rd.record(BetResult{Category: kind, Stake: b.Amount, Kind: Lose})
		}
		return false
	}
	b.Point = Point(rd.sum)
	rd.record(BetResult{Category: kind, Number: rd.sum, Stake: b.Amount, Kind: Travel})
	return true
}

func (rd *round) winTravelling(c BetCategory, number int, stake Money, ratio Ratio) {
	won := ratio.Winnings(stake)
	rd.s.Balance += stake + won
	rd.record(BetResult{Category: c, Number: number, Stake: stake, Returned: stake + won, Won: won, Kind: Win})
}

// emptyTravelling forfeits anything still travelling after a seven-out.
func (rd *round) emptyTravelling() {
	for _, kind := range []BetCategory{Come, DontCome} {
		list := rd.s.Ledger.travelling(kind)
		for _, b := range *list {
			rd.record(BetResult{Category: kind, Number: int(b.Point), Stake: b.Amount + b.Odds, Kind: Lose})
		}
		*list = nil
	}
}

func (rd *round) resolvePlace() {
	if !rd.point.On() {
		return
	}
	c, ok := PlaceCategory(rd.sum)
	if ok && rd.stake(c) > 0 {
		rd.win(c, PlacePayout(rd.sum))
	}
}

func (rd *round) resolveHardways() {
	for c := Hard4; c <= Hard10; c++ {
		if rd.stake(c) == 0 {
			continue
		}
		number := c.Number()
		switch {
		case rd.sum == number && rd.hard:
			rd.win(c, HardwayPayout(number))
		case rd.sum == number || rd.sum == 7:
			rd.lose(c)
		}
	}
}

func (rd *round) resolveBig() {
	for _, c := range []BetCategory{Big6, Big8} {
		if rd.stake(c) == 0 {
			continue
		}
		switch rd.sum {
		case c.Number():
			rd.win(c, Even)
		case 7:
			rd.lose(c)
		}
	}
}
