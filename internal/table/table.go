// Package table runs a single-player craps session on top of the craps
// rules engine: it owns the game state, enforces table limits, rolls the
// dice, keeps a bounded round history and publishes events.
package table

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/craps/craps"
	"github.com/lox/craps/internal/dice"
	"github.com/lox/craps/internal/randutil"
)

var (
	ErrBelowMinimum   = errors.New("bet below table minimum")
	ErrAboveMaximum   = errors.New("bet above table maximum")
	ErrRollInProgress = errors.New("roll in progress")
)

// Round is one resolved roll as recorded in history.
type Round struct {
	Number  int                `json:"number"`
	At      time.Time          `json:"at"`
	Outcome craps.RoundOutcome `json:"outcome"`
	Balance craps.Money        `json:"balance"`
}

// Table is a craps session. All methods are safe for concurrent use; rolls
// are serialised and bets placed while a roll is being resolved or published
// fail with ErrRollInProgress.
type Table struct {
	id       string
	mu       sync.Mutex
	rolling  atomic.Bool
	state    craps.GameState
	resolver *craps.Resolver
	roller   dice.Source
	limits   Limits
	clock    quartz.Clock
	bus      EventBus
	logger   *log.Logger

	rounds      int
	history     []Round
	historySize int
}

// New creates a table with a fresh bankroll and the point off.
func New(opts ...Option) *Table {
	cfg := &tableConfig{
		bankroll:    DefaultBankroll,
		historySize: DefaultHistorySize,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.clock == nil {
		cfg.clock = quartz.NewReal()
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.roller == nil {
		seed := randutil.Seed(0)
		cfg.logger.Debug("Seeding dice from clock", "seed", seed)
		cfg.roller = dice.NewRoller(randutil.New(seed))
	}
	if cfg.bus == nil {
		cfg.bus = NewEventBus()
	}
	logger := cfg.logger.WithPrefix("table")
	if cfg.sessionID != "" {
		logger = logger.With("session", cfg.sessionID)
	}

	return &Table{
		id:          cfg.sessionID,
		state:       craps.NewGameState(cfg.bankroll),
		resolver:    craps.NewResolver(cfg.rules...),
		roller:      cfg.roller,
		limits:      cfg.limits,
		clock:       cfg.clock,
		bus:         cfg.bus,
		logger:      logger,
		historySize: cfg.historySize,
	}
}

// SessionID is the ID set with WithSessionID, or empty.
func (t *Table) SessionID() string {
	return t.id
}

// Events returns the bus the table publishes on.
func (t *Table) Events() EventBus {
	return t.bus
}

// Limits returns the table limits.
func (t *Table) Limits() Limits {
	return t.limits
}

// Rules returns the resolver rules in effect.
func (t *Table) Rules() craps.Rules {
	return t.resolver.Rules()
}

// State returns a copy of the current game state.
func (t *Table) State() craps.GameState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone()
}

// PlaceBet places amount on category after checking table limits.
func (t *Table) PlaceBet(category craps.BetCategory, amount craps.Money) (craps.GameState, error) {
	if t.rolling.Load() {
		return t.State(), ErrRollInProgress
	}
	if err := t.checkLimits(amount); err != nil {
		return t.State(), err
	}

	t.mu.Lock()
	next, err := craps.PlaceBet(t.state, category, amount)
	if err != nil {
		t.mu.Unlock()
		t.logger.Debug("Bet rejected", "category", category, "amount", amount, "error", err)
		return next.Clone(), fmt.Errorf("place %s: %w", category, err)
	}
	t.state = next
	result := next.Clone()
	now := t.clock.Now()
	t.mu.Unlock()

	t.logger.Debug("Bet placed", "category", category, "amount", amount, "balance", result.Balance)
	t.bus.Publish(BetPlacedEvent{Category: category, Amount: amount, Balance: result.Balance, timestamp: now})
	return result, nil
}

// PlaceOddsBet adds odds behind the wager qualifying on number.
func (t *Table) PlaceOddsBet(number int, amount craps.Money) (craps.GameState, error) {
	if t.rolling.Load() {
		return t.State(), ErrRollInProgress
	}

	t.mu.Lock()
	category, _ := craps.OddsTarget(t.state, number)
	next, err := craps.PlaceOddsBet(t.state, number, amount)
	if err != nil {
		t.mu.Unlock()
		t.logger.Debug("Odds rejected", "number", number, "amount", amount, "error", err)
		return next.Clone(), fmt.Errorf("odds on %d: %w", number, err)
	}
	t.state = next
	result := next.Clone()
	now := t.clock.Now()
	t.mu.Unlock()

	t.logger.Debug("Odds placed", "number", number, "category", category, "amount", amount, "balance", result.Balance)
	t.bus.Publish(BetPlacedEvent{Category: category, Number: number, Amount: amount, Balance: result.Balance, timestamp: now})
	return result, nil
}

// removable lists the flat categories a player may take down between rolls.
// Line bets with a point on and travelling bets are contract bets and stay.
var removable = []craps.BetCategory{
	craps.Field,
	craps.Place4, craps.Place5, craps.Place6, craps.Place8, craps.Place9, craps.Place10,
	craps.Hard4, craps.Hard6, craps.Hard8, craps.Hard10,
	craps.AnySeven, craps.AnyCraps, craps.Horn2, craps.Horn3, craps.Horn11, craps.Horn12,
	craps.Big6, craps.Big8,
	craps.PassLineOdds, craps.DontPassOdds,
}

// TakeDown returns the listed bets to the balance. With no categories it
// takes down every removable bet. Non-removable categories are ignored.
func (t *Table) TakeDown(categories ...craps.BetCategory) (craps.GameState, error) {
	if t.rolling.Load() {
		return t.State(), ErrRollInProgress
	}
	if len(categories) == 0 {
		categories = removable
	}

	t.mu.Lock()
	var returned []craps.Stake
	var cleared []craps.BetCategory
	var total craps.Money
	seen := make(map[craps.BetCategory]bool)
	for _, c := range categories {
		if !isRemovable(c) || seen[c] {
			continue
		}
		seen[c] = true
		if amount := t.state.Ledger.Stake(c); amount > 0 {
			returned = append(returned, craps.Stake{Category: c, Amount: amount})
			cleared = append(cleared, c)
			total += amount
		}
	}
	next := craps.Clear(t.state, cleared...)
	next.Balance += total
	t.state = next
	result := next.Clone()
	now := t.clock.Now()
	t.mu.Unlock()

	if len(returned) > 0 {
		t.logger.Debug("Bets taken down", "returned", total, "balance", result.Balance)
		t.bus.Publish(TakeDownEvent{Returned: returned, Balance: result.Balance, timestamp: now})
	}
	return result, nil
}

func isRemovable(c craps.BetCategory) bool {
	for _, r := range removable {
		if r == c {
			return true
		}
	}
	return false
}

// Roll throws the dice and resolves every live wager.
func (t *Table) Roll() (Round, error) {
	if !t.rolling.CompareAndSwap(false, true) {
		return Round{}, ErrRollInProgress
	}
	defer t.rolling.Store(false)

	t.mu.Lock()
	roll := t.roller.Roll()
	t.mu.Unlock()
	return t.resolve(roll)
}

// RollDice resolves a roll with the given faces instead of throwing.
func (t *Table) RollDice(die1, die2 int) (Round, error) {
	roll, err := craps.NewRoll(die1, die2)
	if err != nil {
		return Round{}, err
	}
	if !t.rolling.CompareAndSwap(false, true) {
		return Round{}, ErrRollInProgress
	}
	defer t.rolling.Store(false)
	return t.resolve(roll)
}

func (t *Table) resolve(roll craps.Roll) (Round, error) {
	t.mu.Lock()
	next, out, err := t.resolver.Resolve(t.state, roll)
	if err != nil {
		t.mu.Unlock()
		return Round{}, fmt.Errorf("resolve %s: %w", roll, err)
	}
	t.state = next
	t.rounds++
	round := Round{
		Number:  t.rounds,
		At:      t.clock.Now(),
		Outcome: out,
		Balance: next.Balance,
	}
	t.history = append(t.history, round)
	if t.historySize > 0 && len(t.history) > t.historySize {
		t.history = append([]Round(nil), t.history[len(t.history)-t.historySize:]...)
	}
	t.mu.Unlock()

	t.logger.Debug("Roll resolved",
		"round", round.Number,
		"roll", roll,
		"point", out.PointAfter,
		"net", out.Net(),
		"balance", round.Balance)

	t.bus.Publish(RollResolvedEvent{Round: round, timestamp: round.At})
	if out.PointBefore != out.PointAfter {
		t.logger.Debug("Point changed", "from", out.PointBefore, "to", out.PointAfter)
		t.bus.Publish(PointChangeEvent{From: out.PointBefore, To: out.PointAfter, timestamp: round.At})
	}
	return round, nil
}

// Snapshot is a JSON view of the table between rolls.
type Snapshot struct {
	Session  string                `json:"session"`
	Balance  craps.Money           `json:"balance"`
	Point    craps.Point           `json:"point"`
	Bets     []craps.Stake         `json:"bets"`
	Come     []craps.TravellingBet `json:"come"`
	DontCome []craps.TravellingBet `json:"dontCome"`
	AtRisk   craps.Money           `json:"atRisk"`
	Rounds   int                   `json:"rounds"`
	MinBet   craps.Money           `json:"minBet"`
	MaxBet   craps.Money           `json:"maxBet,omitempty"`
}

// Snapshot captures the balance, point and every live wager. Slices are never
// nil so they encode as [].
func (t *Table) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.state
	return Snapshot{
		Session:  t.id,
		Balance:  s.Balance,
		Point:    s.Point,
		Bets:     nonNil(s.Ledger.Bets()),
		Come:     nonNil(s.Ledger.Come()),
		DontCome: nonNil(s.Ledger.DontCome()),
		AtRisk:   craps.TotalAtRisk(s),
		Rounds:   t.rounds,
		MinBet:   t.limits.Min,
		MaxBet:   t.limits.Max,
	}
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}

// History returns the recorded rounds, oldest first.
func (t *Table) History() []Round {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Round(nil), t.history...)
}

// Rounds is the number of rolls resolved so far.
func (t *Table) Rounds() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rounds
}

// Busted reports whether the player has no balance and nothing on the table.
func (t *Table) Busted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Balance == 0 && t.state.Ledger.Empty()
}

func (t *Table) checkLimits(amount craps.Money) error {
	if amount < t.limits.Min {
		return fmt.Errorf("%w: %s is below %s", ErrBelowMinimum, amount, t.limits.Min)
	}
	if t.limits.Max > 0 && amount > t.limits.Max {
		return fmt.Errorf("%w: %s is above %s", ErrAboveMaximum, amount, t.limits.Max)
	}
	return nil
}
