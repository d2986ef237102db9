package craps

import (
	"testing"

	"github.com/lox/craps/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioA_ComeOutNatural(t *testing.T) {
	t.Run("stake stays", func(t *testing.T) {
		s := mustPlace(t, NewGameState(100), PassLine, 10)
		s, out := mustResolve(t, NewResolver(), s, 3, 4)

		assert.Equal(t, Money(100), s.Balance, "winnings only are credited")
		assert.Equal(t, Money(10), s.Ledger.Stake(PassLine), "stake left standing")
		assert.Equal(t, Money(110), s.Equity())
		assert.Equal(t, PointOff, s.Point)

		res, ok := out.Find(PassLine)
		require.True(t, ok)
		assert.Equal(t, BetResult{Category: PassLine, Stake: 10, Returned: 10, Won: 10, Kind: Win, Standing: true}, res)
	})

	t.Run("stake returned", func(t *testing.T) {
		s := mustPlace(t, NewGameState(100), PassLine, 10)
		s, _ = mustResolve(t, NewResolver(WithPassLineWin(StakeReturned)), s, 3, 4)

		assert.Equal(t, Money(110), s.Balance)
		assert.Zero(t, s.Ledger.Stake(PassLine))
		assert.Equal(t, PointOff, s.Point)
	})
}

func TestScenarioB_PointMade(t *testing.T) {
	r := NewResolver()
	s := mustPlace(t, NewGameState(100), PassLine, 10)

	s, out := mustResolve(t, r, s, 2, 3)
	assert.Equal(t, Point(5), s.Point)
	assert.Equal(t, Money(90), s.Balance)
	assert.True(t, out.PointEstablished())
	assert.Empty(t, out.Results)

	s, out = mustResolve(t, r, s, 2, 2)
	assert.Equal(t, Point(5), s.Point)
	assert.Equal(t, Money(90), s.Balance)
	assert.Empty(t, out.Results)

	s, out = mustResolve(t, r, s, 3, 2)
	assert.Equal(t, PointOff, s.Point)
	assert.Equal(t, Money(100), s.Balance, "90 + 10 winnings")
	assert.Equal(t, Money(10), s.Ledger.Stake(PassLine), "stake still working for the next come-out")
	assert.Equal(t, Money(10), out.Net())
}

func TestScenarioC_FieldPaysDouble(t *testing.T) {
	s := mustPlace(t, NewGameState(100), Field, 5)
	before := s.Balance

	s, out := mustResolve(t, NewResolver(), s, 1, 1)
	assert.Equal(t, before+15, s.Balance)
	assert.Zero(t, s.Ledger.Stake(Field))

	res, ok := out.Find(Field)
	require.True(t, ok)
	assert.Equal(t, Money(15), res.Returned)
	assert.Equal(t, Money(10), res.Won)
}

func TestFieldEverySum(t *testing.T) {
	for d1 := 1; d1 <= 6; d1++ {
		for d2 := 1; d2 <= 6; d2++ {
			s := mustPlace(t, NewGameState(100), Field, 10)
			s, _ = mustResolve(t, NewResolver(), s, d1, d2)

			var want Money
			switch d1 + d2 {
			case 2, 12:
				want = 120
			case 3, 4, 9, 10, 11:
				want = 110
			default:
				want = 90
			}
			assert.Equal(t, want, s.Balance, "sum %d", d1+d2)
			assert.Zero(t, s.Ledger.Stake(Field))
		}
	}
}

func TestComeOutPassAndDontPass(t *testing.T) {
	tests := []struct {
		name         string
		d1, d2       int
		wantBalance  Money
		wantPass     Money
		wantDontPass Money
		wantPoint    Point
	}{
		{"seven", 3, 4, 90, 10, 0, PointOff},
		{"yo", 5, 6, 90, 10, 0, PointOff},
		{"aces", 1, 1, 100, 0, 0, PointOff},
		{"ace deuce", 1, 2, 100, 0, 0, PointOff},
		{"boxcars pushes dont pass", 6, 6, 90, 0, 0, PointOff},
		{"point", 4, 4, 80, 10, 10, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewGameState(100)
			s = mustPlace(t, s, PassLine, 10)
			s = mustPlace(t, s, DontPass, 10)

			s, _ = mustResolve(t, NewResolver(), s, tt.d1, tt.d2)
			assert.Equal(t, tt.wantBalance, s.Balance)
			assert.Equal(t, tt.wantPass, s.Ledger.Stake(PassLine))
			assert.Equal(t, tt.wantDontPass, s.Ledger.Stake(DontPass))
			assert.Equal(t, tt.wantPoint, s.Point)
		})
	}
}

func TestComeOutNaturalPassLineWinnings(t *testing.T) {
	for _, dice := range [][2]int{{1, 6}, {2, 5}, {3, 4}, {5, 6}} {
		s := NewGameState(1000)
		s = mustPlace(t, s, PassLine, 25)
		s = mustPlace(t, s, DontPass, 15)

		_, out := mustResolve(t, NewResolver(), s, dice[0], dice[1])
		pass, ok := out.Find(PassLine)
		require.True(t, ok)
		assert.Equal(t, Money(25), pass.Won)

		dp, ok := out.Find(DontPass)
		require.True(t, ok)
		assert.Equal(t, Lose, dp.Kind)
		assert.Zero(t, dp.Returned)
	}
}

func TestPassLineOddsPayExactly(t *testing.T) {
	for _, tt := range []struct {
		number int
		odds   Money
		want   Money
	}{
		{4, 30, 60}, {10, 30, 60},
		{5, 40, 60}, {9, 40, 60},
		{6, 50, 60}, {8, 50, 60},
		{5, 15, 22}, // 22.5 rounds to even
		{6, 7, 8},   // 8.4
	} {
		s := NewGameState(1000)
		s = mustPlace(t, s, PassLine, 10)
		s.Point = Point(tt.number)
		s = mustOdds(t, s, tt.number, tt.odds)

		d1 := tt.number / 2
		next, out := mustResolve(t, NewResolver(), s, d1, tt.number-d1)

		res, ok := out.Find(PassLineOdds)
		require.True(t, ok)
		assert.Equal(t, tt.want, res.Won, "point %d odds %d", tt.number, tt.odds)
		assert.Equal(t, tt.odds+tt.want, res.Returned)
		assert.Zero(t, next.Ledger.Stake(PassLineOdds))
		assert.Equal(t, s.Balance+10+tt.odds+tt.want, next.Balance)
	}
}

func TestPointMadeDontPassLoses(t *testing.T) {
	s := NewGameState(1000)
	s = mustPlace(t, s, DontPass, 20)
	s.Point = 9
	s = mustOdds(t, s, 9, 60)

	s, out := mustResolve(t, NewResolver(), s, 4, 5)
	assert.Equal(t, Money(920), s.Balance)
	assert.Zero(t, s.Ledger.Stake(DontPass))
	assert.Zero(t, s.Ledger.Stake(DontPassOdds))
	assert.Equal(t, Money(-80), out.Net())
	assert.Equal(t, PointOff, s.Point)
}

func TestSevenOut(t *testing.T) {
	s := NewGameState(1000)
	s = mustPlace(t, s, PassLine, 10)
	s = mustPlace(t, s, DontPass, 10)
	s.Point = 4
	s = mustOdds(t, s, 4, 30) // pass odds take priority
	for _, c := range []BetCategory{Place4, Place5, Place6, Place8, Place9, Place10, Hard4, Hard6, Hard8, Hard10} {
		s = mustPlace(t, s, c, 5)
	}
	s = mustPlace(t, s, Come, 10)
	s = mustPlace(t, s, DontCome, 10)
	s.Ledger.come = append(s.Ledger.come, TravellingBet{Amount: 10, Point: 6, Odds: 50})
	s.Ledger.dontCome = append(s.Ledger.dontCome, TravellingBet{Amount: 12, Point: 10, Odds: 24})
	s.Balance -= 96

	next, out := mustResolve(t, NewResolver(), s, 6, 1)

	assert.True(t, out.SevenOut())
	assert.Equal(t, PointOff, next.Point)
	for c := Place4; c <= Hard10; c++ {
		assert.Zero(t, next.Ledger.Stake(c), c.String())
	}
	assert.Zero(t, next.Ledger.Stake(PassLine))
	assert.Zero(t, next.Ledger.Stake(PassLineOdds))
	assert.Zero(t, next.Ledger.Stake(DontPass))
	assert.Empty(t, next.Ledger.Come())
	assert.Empty(t, next.Ledger.DontCome())
	assert.True(t, next.Ledger.Empty())

	// Don't pass 10+10, new come 10+10, dont come on 10: 12+12 and odds 24+12.
	assert.Equal(t, s.Balance+20+20+24+36, next.Balance)
}

func TestDontPassOddsOnSevenOut(t *testing.T) {
	for _, tt := range []struct {
		number int
		odds   Money
		want   Money
	}{
		{4, 30, 15}, {10, 30, 15},
		{5, 30, 20}, {9, 30, 20},
		{6, 30, 25}, {8, 30, 25},
		{6, 10, 8}, // 8.33
	} {
		s := NewGameState(1000)
		s = mustPlace(t, s, DontPass, 10)
		s.Point = Point(tt.number)
		s = mustOdds(t, s, tt.number, tt.odds)

		_, out := mustResolve(t, NewResolver(), s, 3, 4)
		res, ok := out.Find(DontPassOdds)
		require.True(t, ok)
		assert.Equal(t, tt.want, res.Won, "point %d", tt.number)
		assert.Equal(t, tt.odds+tt.want, res.Returned)
	}
}

func TestComeBetRoundTrip(t *testing.T) {
	r := NewResolver()
	base := withPoint(1000, 4)
	base = mustPlace(t, base, Come, 10)

	moved, out := mustResolve(t, r, base, 5, 4)
	require.Equal(t, []TravellingBet{{Amount: 10, Point: 9}}, moved.Ledger.Come())
	res, ok := out.Find(Come)
	require.True(t, ok)
	assert.Equal(t, Travel, res.Kind)
	assert.Equal(t, 9, res.Number)

	moved = mustOdds(t, moved, 9, 40)

	t.Run("number repeats", func(t *testing.T) {
		next, out := mustResolve(t, r, moved, 6, 3)
		assert.Empty(t, next.Ledger.Come())
		odds, ok := out.Find(ComeOdds)
		require.True(t, ok)
		assert.Equal(t, Money(60), odds.Won)
		assert.Equal(t, moved.Balance+20+100, next.Balance)
		assert.Equal(t, Point(4), next.Point)
	})

	t.Run("seven", func(t *testing.T) {
		next, out := mustResolve(t, r, moved, 4, 3)
		assert.Empty(t, next.Ledger.Come())
		assert.Equal(t, moved.Balance, next.Balance)
		assert.Equal(t, Money(-50), out.Net())
	})

	t.Run("other number", func(t *testing.T) {
		next, _ := mustResolve(t, r, moved, 3, 3)
		assert.Equal(t, moved.Ledger.Come(), next.Ledger.Come())
	})
}

func TestComeBetInBox(t *testing.T) {
	for _, tt := range []struct {
		d1, d2   int
		wantBal  Money
		wantKind ResultKind
	}{
		{3, 4, 110, Win},
		{5, 6, 110, Win},
		{1, 1, 90, Lose},
		{1, 2, 90, Lose},
		{6, 6, 90, Lose},
		{2, 2, 90, Travel},
	} {
		s := withPoint(100, 10)
		s = mustPlace(t, s, Come, 10)
		next, out := mustResolve(t, NewResolver(), s, tt.d1, tt.d2)
		assert.Equal(t, tt.wantBal, next.Balance, "sum %d", tt.d1+tt.d2)
		res, ok := out.Find(Come)
		require.True(t, ok)
		assert.Equal(t, tt.wantKind, res.Kind)
	}
}

func TestDontComeBet(t *testing.T) {
	for _, tt := range []struct {
		name     string
		d1, d2   int
		wantBal  Money
		wantKind ResultKind
	}{
		{"seven loses", 3, 4, 90, Lose},
		{"yo loses", 5, 6, 90, Lose},
		{"aces wins", 1, 1, 110, Win},
		{"ace deuce wins", 1, 2, 110, Win},
		{"boxcars pushes", 6, 6, 100, Push},
		{"travels", 3, 3, 90, Travel},
	} {
		t.Run(tt.name, func(t *testing.T) {
			s := withPoint(100, 10)
			s = mustPlace(t, s, DontCome, 10)
			next, out := mustResolve(t, NewResolver(), s, tt.d1, tt.d2)
			assert.Equal(t, tt.wantBal, next.Balance)
			res, ok := out.Find(DontCome)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, res.Kind)
		})
	}

	t.Run("on number", func(t *testing.T) {
		s := withPoint(100, 10)
		s.Ledger.dontCome = []TravellingBet{{Amount: 10, Point: 6}}
		s = mustOdds(t, s, 6, 12)

		seven, _ := mustResolve(t, NewResolver(), s, 5, 2)
		assert.Equal(t, s.Balance+20+22, seven.Balance)
		assert.Empty(t, seven.Ledger.DontCome())

		made, out := mustResolve(t, NewResolver(), s, 5, 1)
		assert.Equal(t, s.Balance, made.Balance)
		assert.Empty(t, made.Ledger.DontCome())
		assert.Equal(t, Money(-22), out.Net())
	})
}

func TestPlaceBets(t *testing.T) {
	for _, tt := range []struct {
		category BetCategory
		stake    Money
		want     Money
	}{
		{Place4, 5, 9}, {Place10, 10, 18},
		{Place5, 5, 7}, {Place9, 10, 14},
		{Place6, 6, 7}, {Place8, 12, 14},
		{Place6, 5, 6}, // 5.83
	} {
		number := tt.category.Number()
		s := withPoint(1000, 4)
		if number == 4 {
			s.Point = 10
		}
		s = mustPlace(t, s, tt.category, tt.stake)

		d1 := number / 2
		next, out := mustResolve(t, NewResolver(), s, d1, number-d1)
		res, ok := out.Find(tt.category)
		require.True(t, ok)
		assert.Equal(t, tt.want, res.Won, tt.category.String())
		assert.Equal(t, s.Balance+tt.stake+tt.want, next.Balance)
		assert.Zero(t, next.Ledger.Stake(tt.category))
	}
}

func TestPlaceBetsOffOnComeOut(t *testing.T) {
	s := mustPlace(t, NewGameState(100), Place6, 6)

	next, out := mustResolve(t, NewResolver(), s, 3, 3)
	assert.Equal(t, Money(6), next.Ledger.Stake(Place6))
	assert.Equal(t, Point(6), next.Point)
	assert.Empty(t, out.Results)

	next, _ = mustResolve(t, NewResolver(), s, 3, 4)
	assert.Equal(t, Money(6), next.Ledger.Stake(Place6), "come-out seven does not take place bets")
}

func TestPlaceBetPaysWhenPointMade(t *testing.T) {
	s := withPoint(100, 6)
	s = mustPlace(t, s, Place6, 6)

	next, _ := mustResolve(t, NewResolver(), s, 4, 2)
	assert.Equal(t, Money(107), next.Balance)
	assert.Equal(t, PointOff, next.Point)
}

func TestHardways(t *testing.T) {
	tests := []struct {
		name     string
		category BetCategory
		d1, d2   int
		wantBal  Money
		wantLeft Money
	}{
		{"hard four", Hard4, 2, 2, 135, 0},
		{"easy four", Hard4, 1, 3, 95, 0},
		{"hard six", Hard6, 3, 3, 145, 0},
		{"hard eight", Hard8, 4, 4, 145, 0},
		{"hard ten", Hard10, 5, 5, 135, 0},
		{"easy ten", Hard10, 6, 4, 95, 0},
		{"seven", Hard8, 2, 5, 95, 0},
		{"other", Hard6, 4, 5, 95, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustPlace(t, NewGameState(100), tt.category, 5)
			next, _ := mustResolve(t, NewResolver(), s, tt.d1, tt.d2)
			assert.Equal(t, tt.wantBal, next.Balance)
			assert.Equal(t, tt.wantLeft, next.Ledger.Stake(tt.category))
		})
	}
}

func TestPropositions(t *testing.T) {
	tests := []struct {
		category BetCategory
		d1, d2   int
		want     Money
	}{
		{AnySeven, 3, 4, 4},
		{AnySeven, 3, 3, -1},
		{AnyCraps, 1, 1, 7},
		{AnyCraps, 1, 2, 7},
		{AnyCraps, 6, 6, 7},
		{AnyCraps, 5, 6, -1},
		{Horn2, 1, 1, 30},
		{Horn3, 2, 1, 15},
		{Horn11, 6, 5, 15},
		{Horn12, 6, 6, 30},
		{Horn12, 5, 5, -1},
	}
	for _, tt := range tests {
		s := mustPlace(t, NewGameState(100), tt.category, 1)
		next, out := mustResolve(t, NewResolver(), s, tt.d1, tt.d2)
		assert.Equal(t, tt.want, out.Net(), "%s on %d", tt.category, tt.d1+tt.d2)
		assert.Zero(t, next.Ledger.Stake(tt.category), "one-roll bets always clear")
	}
}

func TestBigSixAndEight(t *testing.T) {
	s := NewGameState(100)
	s = mustPlace(t, s, Big6, 10)
	s = mustPlace(t, s, Big8, 10)

	next, _ := mustResolve(t, NewResolver(), s, 2, 4)
	assert.Zero(t, next.Ledger.Stake(Big6))
	assert.Equal(t, Money(10), next.Ledger.Stake(Big8))
	assert.Equal(t, Money(100), next.Balance)

	next, _ = mustResolve(t, NewResolver(), next, 3, 4)
	assert.Zero(t, next.Ledger.Stake(Big8))
	assert.Equal(t, Money(100), next.Balance)
}

func TestResolveInvalidRoll(t *testing.T) {
	s := mustPlace(t, NewGameState(100), Field, 10)
	next, out, err := Resolve(s, Roll{Die1: 0, Die2: 7})
	require.ErrorIs(t, err, ErrInvalidRoll)
	assert.Equal(t, s, next)
	assert.Empty(t, out.Results)
}

func TestResolveIsPure(t *testing.T) {
	s := withPoint(1000, 6)
	s.Ledger.come = []TravellingBet{{Amount: 10}, {Amount: 10, Point: 8, Odds: 20}}
	snapshot := s.Clone()

	first, out1, err := Resolve(s, mustRoll(t, 4, 4))
	require.NoError(t, err)
	second, out2, err := Resolve(s, mustRoll(t, 4, 4))
	require.NoError(t, err)

	assert.Equal(t, snapshot, s)
	assert.Equal(t, first, second)
	assert.Equal(t, out1, out2)
}

// TestRandomSessionsConserveEquity plays random sessions with every bet type
// and checks the books balance after every roll.
func TestRandomSessionsConserveEquity(t *testing.T) {
	rng := randutil.New(42)
	r := NewResolver()
	categories := []BetCategory{PassLine, DontPass, Field, Come, DontCome, Place5, Place8, Hard6, Hard10, AnySeven, Horn3, Big6}

	s := NewGameState(100000)
	for range 5000 {
		c := categories[rng.IntN(len(categories))]
		if next, err := PlaceBet(s, c, Money(rng.IntN(20)+1)); err == nil {
			s = next
		}
		if s.Point.On() {
			if next, err := PlaceOddsBet(s, int(s.Point), 10); err == nil {
				s = next
			}
		}
		for _, b := range s.Ledger.Come() {
			if b.Point.On() {
				if next, err := PlaceOddsBet(s, int(b.Point), 5); err == nil {
					s = next
				}
			}
		}

		s, _ = mustResolve(t, r, s, rng.IntN(6)+1, rng.IntN(6)+1)
		require.GreaterOrEqual(t, s.Balance, Money(0))
		require.True(t, s.Point == PointOff || IsPointNumber(int(s.Point)))
		for _, b := range s.Ledger.Come() {
			require.LessOrEqual(t, b.Odds, b.Amount*OddsLimit(int(b.Point)))
		}
	}
}
