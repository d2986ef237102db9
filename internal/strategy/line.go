package strategy

import "github.com/lox/craps/craps"

// PassLine bets the pass line on every come-out, optionally backing it with
// full odds once a point is set.
type PassLine struct {
	Unit    craps.Money
	MaxOdds bool
}

func (p *PassLine) Name() string {
	if p.MaxOdds {
		return "pass_odds"
	}
	return "pass"
}

func (p *PassLine) Wagers(s craps.GameState) []Wager {
	base := s.Ledger.Stake(craps.PassLine)
	if s.ComeOut() {
		if base == 0 {
			return []Wager{{Category: craps.PassLine, Amount: p.Unit, Reasoning: "come-out"}}
		}
		return nil
	}
	if !p.MaxOdds || base == 0 || s.Ledger.Stake(craps.PassLineOdds) > 0 {
		return nil
	}
	number := int(s.Point)
	return []Wager{{Category: craps.PassLineOdds, Number: number, Amount: maxOdds(base, number), Reasoning: "full odds"}}
}

// DontPass bets the don't pass on every come-out and lays odds on the point.
type DontPass struct {
	Unit    craps.Money
	MaxOdds bool
}

func (d *DontPass) Name() string { return "dont_pass" }

func (d *DontPass) Wagers(s craps.GameState) []Wager {
	base := s.Ledger.Stake(craps.DontPass)
	if s.ComeOut() {
		if base == 0 {
			return []Wager{{Category: craps.DontPass, Amount: d.Unit, Reasoning: "come-out"}}
		}
		return nil
	}
	if !d.MaxOdds || base == 0 || s.Ledger.Stake(craps.DontPassOdds) > 0 {
		return nil
	}
	number := int(s.Point)
	return []Wager{{Category: craps.DontPassOdds, Number: number, Amount: maxOdds(base, number), Reasoning: "lay odds"}}
}

// ComeBetting plays the pass line with full odds and adds a come bet each
// roll until MaxComeBets are working on numbers, backing each with odds.
type ComeBetting struct {
	Unit        craps.Money
	MaxComeBets int
}

func (c *ComeBetting) Name() string { return "come" }

func (c *ComeBetting) Wagers(s craps.GameState) []Wager {
	wagers := (&PassLine{Unit: c.Unit, MaxOdds: true}).Wagers(s)
	if s.ComeOut() {
		return wagers
	}

	working, inBox := 0, false
	backed := map[int]bool{int(s.Point): true}
	for _, b := range s.Ledger.Come() {
		if !b.Point.On() {
			inBox = true
			continue
		}
		working++
		number := int(b.Point)
		// Odds go to the first wager on a number, so only the first come bet
		// there can take them.
		if !backed[number] && b.Odds == 0 {
			wagers = append(wagers, Wager{Category: craps.ComeOdds, Number: number, Amount: maxOdds(b.Amount, number), Reasoning: "come odds"})
		}
		backed[number] = true
	}
	if !inBox && working < c.MaxComeBets {
		wagers = append(wagers, Wager{Category: craps.Come, Amount: c.Unit, Reasoning: "new come bet"})
	}
	return wagers
}
