package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lox/craps/craps"
	"github.com/lox/craps/internal/randutil"
	"github.com/lox/craps/internal/simulator"
	"github.com/lox/craps/internal/strategy"
)

// SimulateCmd plays many sessions of one strategy and reports the results
type SimulateCmd struct {
	Sessions int           `short:"n" help:"Number of sessions (overrides config)"`
	Rolls    int           `help:"Roll limit per session (overrides config)"`
	Strategy string        `short:"s" help:"Betting strategy (overrides config)"`
	Unit     int64         `short:"u" help:"Base bet size (overrides config)"`
	Seed     int64         `help:"Deterministic RNG seed (overrides config)"`
	Workers  int           `short:"w" help:"Parallel workers, 0 for one per CPU (overrides config)"`
	Timeout  time.Duration `help:"Give up after this long (overrides config)"`
	Output   string        `short:"o" help:"Also write a JSON report to this file"`
	List     bool          `help:"List available strategies and exit"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	if c.List {
		fmt.Println(strings.Join(strategy.Names(), "\n"))
		return nil
	}

	cfg, err := g.load()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	sim := cfg.Simulation
	override(&sim.Sessions, c.Sessions)
	override(&sim.Rolls, c.Rolls)
	override(&sim.Strategy, c.Strategy)
	override(&sim.Unit, c.Unit)
	override(&sim.Seed, c.Seed)
	override(&sim.Workers, c.Workers)

	timeout, err := cfg.SimulationTimeout()
	if err != nil {
		return err
	}
	override(&timeout, c.Timeout)

	passLine, err := cfg.PassLineWin()
	if err != nil {
		return err
	}

	simConfig := simulator.Config{
		Sessions: sim.Sessions,
		Rolls:    sim.Rolls,
		Strategy: sim.Strategy,
		Unit:     craps.Money(sim.Unit),
		Bankroll: craps.Money(cfg.Table.Bankroll),
		Seed:     randutil.Seed(sim.Seed),
		Workers:  sim.Workers,
		Timeout:  timeout,
		Rules:    []craps.ResolverOption{craps.WithPassLineWin(passLine)},
		Logger:   logger,
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	logger.Info("Starting simulation",
		"strategy", simConfig.Strategy,
		"sessions", simConfig.Sessions,
		"rolls", simConfig.Rolls,
		"seed", simConfig.Seed)

	stats, err := simulator.New(simConfig).Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	simulator.PrintSummary(os.Stdout, stats, simConfig)

	if c.Output != "" {
		if err := simulator.WriteReport(c.Output, stats, simConfig); err != nil {
			return err
		}
		logger.Info("Wrote report", "path", c.Output)
	}
	return nil
}

// override replaces *dst with v unless v is the zero value
func override[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}
