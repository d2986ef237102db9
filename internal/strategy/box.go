package strategy

import "github.com/lox/craps/craps"

// Place68 keeps place bets on six and eight while a point is on.
type Place68 struct {
	Unit craps.Money
}

func (p *Place68) Name() string { return "place68" }

func (p *Place68) Wagers(s craps.GameState) []Wager {
	if s.ComeOut() {
		return nil
	}
	var wagers []Wager
	for _, c := range []craps.BetCategory{craps.Place6, craps.Place8} {
		if s.Ledger.Stake(c) == 0 {
			wagers = append(wagers, Wager{Category: c, Amount: sixEight(p.Unit), Reasoning: "keep six and eight up"})
		}
	}
	return wagers
}

// Field bets the field every roll.
type Field struct {
	Unit craps.Money
}

func (f *Field) Name() string { return "field" }

func (f *Field) Wagers(craps.GameState) []Wager {
	return []Wager{{Category: craps.Field, Amount: f.Unit, Reasoning: "every roll"}}
}

// IronCross covers every total but seven once a point is on: the field plus
// place bets on five, six and eight.
type IronCross struct {
	Unit craps.Money
}

func (i *IronCross) Name() string { return "iron_cross" }

func (i *IronCross) Wagers(s craps.GameState) []Wager {
	if s.ComeOut() {
		return nil
	}
	wagers := []Wager{{Category: craps.Field, Amount: i.Unit, Reasoning: "cross"}}
	if s.Ledger.Stake(craps.Place5) == 0 {
		wagers = append(wagers, Wager{Category: craps.Place5, Amount: i.Unit, Reasoning: "cross"})
	}
	for _, c := range []craps.BetCategory{craps.Place6, craps.Place8} {
		if s.Ledger.Stake(c) == 0 {
			wagers = append(wagers, Wager{Category: c, Amount: sixEight(i.Unit), Reasoning: "cross"})
		}
	}
	return wagers
}
