package table

import (
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/craps/craps"
	"github.com/lox/craps/internal/dice"
)

// Limits are the table minimum and maximum for a single wager. Odds bets are
// bounded only by the odds multiple. A zero Max means no maximum.
type Limits struct {
	Min craps.Money
	Max craps.Money
}

// Option configures a Table during creation.
type Option func(*tableConfig)

type tableConfig struct {
	bankroll    craps.Money
	limits      Limits
	clock       quartz.Clock
	roller      dice.Source
	logger      *log.Logger
	rules       []craps.ResolverOption
	bus         EventBus
	historySize int
	sessionID   string
}

const (
	DefaultBankroll    craps.Money = 1000
	DefaultHistorySize             = 100
)

// WithBankroll sets the starting balance. Default 1000.
func WithBankroll(amount craps.Money) Option {
	return func(c *tableConfig) {
		c.bankroll = amount
	}
}

// WithLimits sets the table minimum and maximum.
func WithLimits(minimum, maximum craps.Money) Option {
	return func(c *tableConfig) {
		c.limits = Limits{Min: minimum, Max: maximum}
	}
}

// WithClock sets the clock used for event timestamps and round history.
func WithClock(clock quartz.Clock) Option {
	return func(c *tableConfig) {
		c.clock = clock
	}
}

// WithRoller sets the dice source used by Roll.
func WithRoller(roller dice.Source) Option {
	return func(c *tableConfig) {
		c.roller = roller
	}
}

// WithLogger sets the logger. The table logs under the "table" prefix.
func WithLogger(logger *log.Logger) Option {
	return func(c *tableConfig) {
		c.logger = logger
	}
}

// WithRules passes resolver options through, e.g. craps.WithPassLineWin.
func WithRules(opts ...craps.ResolverOption) Option {
	return func(c *tableConfig) {
		c.rules = append(c.rules, opts...)
	}
}

// WithEventBus shares a bus between the table and its observers.
func WithEventBus(bus EventBus) Option {
	return func(c *tableConfig) {
		c.bus = bus
	}
}

// WithHistorySize bounds how many rounds History keeps.
func WithHistorySize(n int) Option {
	return func(c *tableConfig) {
		c.historySize = n
	}
}

// WithSessionID names the session in logs and snapshots.
func WithSessionID(id string) Option {
	return func(c *tableConfig) {
		c.sessionID = id
	}
}
