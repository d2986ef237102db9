package main

import (
	"os"

	"github.com/lox/craps/internal/server"
)

// ServeCmd runs the WebSocket server. Each connection plays at its own table.
type ServeCmd struct {
	Addr string `short:"a" help:"Server address to bind to (overrides config)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	opts, err := cfg.TableOptions()
	if err != nil {
		return err
	}

	addr := cfg.ServerAddress()
	override(&addr, c.Addr)

	ctx, cancel := signalContext(logger)
	defer cancel()

	logger.Info("Starting craps server",
		"addr", addr,
		"bankroll", cfg.Table.Bankroll,
		"minBet", cfg.Table.MinBet,
		"maxBet", cfg.Table.MaxBet,
		"passLineWin", cfg.Table.PassLineWin)

	s := server.NewServer(addr, logger, server.WithTableOptions(opts...))
	return s.Start(ctx)
}
