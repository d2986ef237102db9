package craps

// PointNumbers are the box numbers that can become a point.
var PointNumbers = [...]int{4, 5, 6, 8, 9, 10}

// IsPointNumber reports whether n is 4, 5, 6, 8, 9 or 10.
func IsPointNumber(n int) bool {
	switch n {
	case 4, 5, 6, 8, 9, 10:
		return true
	}
	return false
}

// OddsLimit returns the maximum odds multiple of the base stake allowed on
// number (3x/4x/5x), or 0 for a non-point number.
func OddsLimit(number int) Money {
	switch number {
	case 4, 10:
		return 3
	case 5, 9:
		return 4
	case 6, 8:
		return 5
	}
	return 0
}

// TrueOdds is the payout for pass and come odds when the number repeats.
func TrueOdds(number int) Ratio {
	switch number {
	case 4, 10:
		return Ratio{2, 1}
	case 5, 9:
		return Ratio{3, 2}
	case 6, 8:
		return Ratio{6, 5}
	}
	return Ratio{}
}

// LayOdds is the payout for don't pass and don't come odds on a seven.
func LayOdds(number int) Ratio {
	switch number {
	case 4, 10:
		return Ratio{1, 2}
	case 5, 9:
		return Ratio{2, 3}
	case 6, 8:
		return Ratio{5, 6}
	}
	return Ratio{}
}

// PlacePayout is the payout for a place bet on number.
func PlacePayout(number int) Ratio {
	switch number {
	case 4, 10:
		return Ratio{9, 5}
	case 5, 9:
		return Ratio{7, 5}
	case 6, 8:
		return Ratio{7, 6}
	}
	return Ratio{}
}

// HardwayPayout is the payout for a hardway bet on number.
func HardwayPayout(number int) Ratio {
	switch number {
	case 4, 10:
		return Ratio{7, 1}
	case 6, 8:
		return Ratio{9, 1}
	}
	return Ratio{}
}

// FieldPayout returns the field payout for sum and whether the field wins.
func FieldPayout(sum int) (Ratio, bool) {
	switch sum {
	case 2, 12:
		return Ratio{2, 1}, true
	case 3, 4, 9, 10, 11:
		return Even, true
	}
	return Ratio{}, false
}

// propositionPayouts covers the one-roll bets other than the field.
var propositionPayouts = map[BetCategory]Ratio{
	AnySeven: {4, 1},
	AnyCraps: {7, 1},
	Horn2:    {30, 1},
	Horn3:    {15, 1},
	Horn11:   {15, 1},
	Horn12:   {30, 1},
}

// PropositionPayout returns the payout for a one-roll proposition bet.
func PropositionPayout(c BetCategory) Ratio {
	return propositionPayouts[c]
}

// propositionWins reports whether a proposition bet wins on sum.
func propositionWins(c BetCategory, sum int) bool {
	switch c {
	case AnySeven:
		return sum == 7
	case AnyCraps:
		return sum == 2 || sum == 3 || sum == 12
	case Horn2, Horn3, Horn11, Horn12:
		return sum == c.Number()
	}
	return false
}
