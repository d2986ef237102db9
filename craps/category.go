package craps

import (
	"fmt"
	"strings"
)

// BetCategory identifies a wager area on the table.
type BetCategory int

const (
	PassLine BetCategory = iota
	DontPass
	Field
	Come
	DontCome
	Place4
	Place5
	Place6
	Place8
	Place9
	Place10
	Hard4
	Hard6
	Hard8
	Hard10
	AnySeven
	AnyCraps
	Horn2
	Horn3
	Horn11
	Horn12
	PassLineOdds
	DontPassOdds
	Big6
	Big8

	// ComeOdds and DontComeOdds only appear in outcomes; odds behind a
	// travelling bet live on the TravellingBet itself.
	ComeOdds
	DontComeOdds

	numCategories
)

var categoryNames = [...]string{
	"pass", "dont_pass", "field", "come", "dont_come",
	"place4", "place5", "place6", "place8", "place9", "place10",
	"hard4", "hard6", "hard8", "hard10",
	"any_seven", "any_craps", "horn2", "horn3", "horn11", "horn12",
	"pass_odds", "dont_pass_odds", "big6", "big8",
	"come_odds", "dont_come_odds",
}

func (c BetCategory) String() string {
	if c < 0 || c >= numCategories {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Valid reports whether c is a known category.
func (c BetCategory) Valid() bool {
	return c >= 0 && c < numCategories
}

// Number returns the box number a numbered category is tied to, or 0.
func (c BetCategory) Number() int {
	switch c {
	case Place4, Hard4:
		return 4
	case Place5:
		return 5
	case Place6, Hard6, Big6:
		return 6
	case Place8, Hard8, Big8:
		return 8
	case Place9:
		return 9
	case Place10, Hard10:
		return 10
	case Horn2:
		return 2
	case Horn3:
		return 3
	case Horn11:
		return 11
	case Horn12:
		return 12
	}
	return 0
}

// IsPlace reports whether c is one of the six place bets.
func (c BetCategory) IsPlace() bool {
	return c >= Place4 && c <= Place10
}

// IsHardway reports whether c is one of the four hardway bets.
func (c BetCategory) IsHardway() bool {
	return c >= Hard4 && c <= Hard10
}

// IsOneRoll reports whether c is resolved and cleared on every roll.
func (c BetCategory) IsOneRoll() bool {
	return c == Field || (c >= AnySeven && c <= Horn12)
}

// IsTravelling reports whether c is stored as a list of TravellingBet.
func (c BetCategory) IsTravelling() bool {
	return c == Come || c == DontCome
}

// placeable reports whether PlaceBet accepts c. Odds go through PlaceOddsBet.
func (c BetCategory) placeable() bool {
	return c.Valid() && c != PassLineOdds && c != DontPassOdds && c != ComeOdds && c != DontComeOdds
}

// PlaceCategory returns the place bet for a point number.
func PlaceCategory(number int) (BetCategory, bool) {
	switch number {
	case 4:
		return Place4, true
	case 5:
		return Place5, true
	case 6:
		return Place6, true
	case 8:
		return Place8, true
	case 9:
		return Place9, true
	case 10:
		return Place10, true
	}
	return 0, false
}

// HardwayCategory returns the hardway bet for 4, 6, 8 or 10.
func HardwayCategory(number int) (BetCategory, bool) {
	switch number {
	case 4:
		return Hard4, true
	case 6:
		return Hard6, true
	case 8:
		return Hard8, true
	case 10:
		return Hard10, true
	}
	return 0, false
}

var categoryAliases = map[string]BetCategory{
	"passline":     PassLine,
	"pass_line":    PassLine,
	"dontpass":     DontPass,
	"dp":           DontPass,
	"dontcome":     DontCome,
	"dc":           DontCome,
	"seven":        AnySeven,
	"any7":         AnySeven,
	"anyseven":     AnySeven,
	"craps":        AnyCraps,
	"anycraps":     AnyCraps,
	"aces":         Horn2,
	"snake_eyes":   Horn2,
	"craps2":       Horn2,
	"ace_deuce":    Horn3,
	"craps3":       Horn3,
	"yo":           Horn11,
	"yo11":         Horn11,
	"boxcars":      Horn12,
	"midnight":     Horn12,
	"craps12":      Horn12,
	"passodds":     PassLineOdds,
	"dontpassodds": DontPassOdds,
}

// ParseCategory resolves a category name or alias. Matching ignores case and
// treats '-' and ' ' like '_'.
func ParseCategory(s string) (BetCategory, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	for i, name := range categoryNames {
		if name == key {
			return BetCategory(i), nil
		}
	}
	if c, ok := categoryAliases[key]; ok {
		return c, nil
	}
	if c, ok := categoryAliases[strings.ReplaceAll(key, "_", "")]; ok {
		return c, nil
	}
	return 0, &BetError{Code: CodeInvalidCategory, Detail: fmt.Sprintf("unknown bet %q", s)}
}

// MarshalText encodes the category by name.
func (c BetCategory) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, &BetError{Code: CodeInvalidCategory, Category: c, Detail: fmt.Sprintf("cannot encode %s", c)}
	}
	return []byte(c.String()), nil
}

// UnmarshalText accepts anything ParseCategory does.
func (c *BetCategory) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
