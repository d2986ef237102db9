package main

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"

	"github.com/lox/craps/craps"
	"github.com/lox/craps/internal/dice"
	"github.com/lox/craps/internal/randutil"
	"github.com/lox/craps/internal/table"
	"github.com/lox/craps/internal/tui"
)

// PlayCmd runs the terminal client against a local table
type PlayCmd struct {
	Bankroll int64  `help:"Starting bankroll (overrides config)"`
	Seed     int64  `help:"Deterministic dice seed (optional)"`
	LogFile  string `default:"craps-debug.log" help:"Where debug logs go while the terminal UI is running"`
	NoColor  bool   `help:"Disable colour output"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs only go to a file in debug mode.
	var out io.Writer = io.Discard
	if g.Debug {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger, err := newLogger(out, cfg.LogLevel)
	if err != nil {
		return err
	}

	opts, err := cfg.TableOptions()
	if err != nil {
		return err
	}
	seed := randutil.Seed(c.Seed)
	opts = append(opts,
		table.WithLogger(logger),
		table.WithRoller(dice.NewRoller(randutil.New(seed))),
	)
	if c.Bankroll > 0 {
		opts = append(opts, table.WithBankroll(craps.Money(c.Bankroll)))
	}
	logger.Info("Starting table", "seed", seed, "bankroll", cfg.Table.Bankroll)

	if c.NoColor {
		tui.SetColorProfile(termenv.Ascii)
	} else {
		tui.SetColorProfile(tui.DetectColorProfile())
	}

	tbl := table.New(opts...)
	if err := tui.Run(tbl, logger); err != nil {
		return err
	}

	s := tbl.State()
	fmt.Printf("Left the table after %d rolls with %s (%s on the table).\n",
		tbl.Rounds(), s.Balance, craps.TotalAtRisk(s))
	return nil
}
