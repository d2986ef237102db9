// Package simulator plays many seeded craps sessions with a betting strategy
// and aggregates the results.
package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/craps/craps"
	"github.com/lox/craps/internal/dice"
	"github.com/lox/craps/internal/randutil"
	"github.com/lox/craps/internal/statistics"
	"github.com/lox/craps/internal/strategy"
	"github.com/lox/craps/internal/table"
)

// batchSize is how many sessions one worker task plays before merging.
const batchSize = 250

// Config holds configuration for running simulations
type Config struct {
	Sessions int
	Rolls    int // Roll limit per session
	Strategy string
	Unit     craps.Money
	Bankroll craps.Money
	Seed     int64
	Workers  int
	Timeout  time.Duration // Zero means no limit
	Rules    []craps.ResolverOption
	Logger   *log.Logger
}

// Simulator runs craps session simulations
type Simulator struct {
	config Config
	clock  quartz.Clock
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config, clock: quartz.NewReal()}
}

// Validate checks the configuration before a run
func (s *Simulator) Validate() error {
	c := s.config
	if c.Sessions <= 0 {
		return fmt.Errorf("sessions must be positive, got %d", c.Sessions)
	}
	if c.Rolls <= 0 {
		return fmt.Errorf("rolls must be positive, got %d", c.Rolls)
	}
	if c.Bankroll < c.Unit {
		return fmt.Errorf("bankroll %s is smaller than unit %s", c.Bankroll, c.Unit)
	}
	if _, err := strategy.New(c.Strategy, c.Unit); err != nil {
		return err
	}
	return nil
}

// Run plays every session and returns the aggregate statistics. Results are
// identical for a given seed regardless of worker count.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	logger := s.config.Logger.WithPrefix("simulator")
	start := s.clock.Now()

	batches := (s.config.Sessions + batchSize - 1) / batchSize
	results := make([]*statistics.Statistics, batches)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for b := range batches {
		first := b * batchSize
		last := min(first+batchSize, s.config.Sessions)
		g.Go(func() error {
			stats := &statistics.Statistics{}
			for i := first; i < last; i++ {
				result, err := s.playSession(ctx, randutil.Derive(s.config.Seed, i))
				if err != nil {
					return fmt.Errorf("session %d: %w", i, err)
				}
				stats.Add(result)
			}
			results[b] = stats
			logger.Debug("Batch complete", "batch", b+1, "of", batches)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Merge(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	logger.Info("Simulation complete",
		"sessions", stats.Sessions,
		"strategy", s.config.Strategy,
		"elapsed", s.clock.Since(start).Round(time.Millisecond))
	return stats, nil
}

// playSession plays one session on its own table until the roll limit or
// until the player can no longer cover a unit.
func (s *Simulator) playSession(ctx context.Context, seed int64) (statistics.SessionResult, error) {
	st, err := strategy.New(s.config.Strategy, s.config.Unit)
	if err != nil {
		return statistics.SessionResult{}, err
	}

	tbl := table.New(
		table.WithBankroll(s.config.Bankroll),
		table.WithRoller(dice.NewRoller(randutil.New(seed))),
		table.WithRules(s.config.Rules...),
		table.WithClock(s.clock),
		table.WithHistorySize(1),
		table.WithLogger(s.config.Logger),
	)

	var wagered craps.Money
	tbl.Events().Subscribe(table.SubscriberFunc(func(e table.GameEvent) {
		rolled, ok := e.(table.RollResolvedEvent)
		if !ok {
			return
		}
		for _, r := range rolled.Round.Outcome.Results {
			if r.Kind != craps.Travel {
				wagered += r.Stake
			}
		}
	}))

	result := statistics.SessionResult{Seed: seed}
	for result.Rolls < s.config.Rolls {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if _, err := strategy.Apply(tbl, st, s.config.Logger); err != nil {
			return result, err
		}
		state := tbl.State()
		if state.Ledger.Empty() && state.Balance < s.config.Unit {
			result.Busted = true
			break
		}
		if _, err := tbl.Roll(); err != nil {
			return result, err
		}
		result.Rolls++
	}

	result.Net = tbl.State().Equity() - s.config.Bankroll
	result.Wagered = wagered
	return result, nil
}

// PrintSummary writes a summary of simulation results
func PrintSummary(w io.Writer, stats *statistics.Statistics, config Config) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== %s: %d sessions, %d rolls max, %s unit, %s bankroll ===\n",
		config.Strategy, stats.Sessions, config.Rolls, config.Unit, config.Bankroll)

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "Mean: %.2f per session\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.2f\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.2f\n", stats.StdDev())
	fmt.Fprintf(w, "95%% CI: [%.2f, %.2f]\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.0f, P25=%.0f, P75=%.0f, P95=%.0f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Fprintf(w, "\n=== SESSION OUTCOMES ===\n")
	fmt.Fprintf(w, "Winning sessions: %d (%.1f%%)\n", stats.Winners, stats.WinRate()*100)
	fmt.Fprintf(w, "Busted sessions: %d (%.1f%%)\n", stats.Busts, stats.BustRate()*100)
	fmt.Fprintf(w, "Best: %+.0f  Worst: %+.0f  Longest: %d rolls\n", stats.MaxWin, stats.MaxLoss, stats.MaxRolls)

	fmt.Fprintf(w, "\n=== EDGE ===\n")
	fmt.Fprintf(w, "Total wagered: %.0f\n", stats.Wagered)
	fmt.Fprintf(w, "Return per dollar wagered: %+.4f (%.2f%% edge)\n", stats.Edge(), -stats.Edge()*100)
	fmt.Fprintf(w, "Net per roll: %+.4f\n", stats.NetPerRoll())
}
