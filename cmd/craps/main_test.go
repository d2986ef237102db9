package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("craps"), kong.Vars{"version": "test"})
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx
}

func TestCLIParsing(t *testing.T) {
	t.Run("play is the default command", func(t *testing.T) {
		cli, ctx := parse(t)
		assert.Equal(t, "play", ctx.Command())
		assert.Equal(t, "craps.hcl", cli.Config)
		assert.Equal(t, "craps-debug.log", cli.Play.LogFile)
	})

	t.Run("simulate flags", func(t *testing.T) {
		cli, ctx := parse(t, "--debug", "-c", "table.hcl", "simulate", "-n", "500", "-s", "iron_cross", "--timeout", "30s", "-o", "out.json")
		assert.Equal(t, "simulate", ctx.Command())
		assert.True(t, cli.Debug)
		assert.Equal(t, "table.hcl", cli.Config)
		assert.Equal(t, 500, cli.Simulate.Sessions)
		assert.Equal(t, "iron_cross", cli.Simulate.Strategy)
		assert.Equal(t, 30*time.Second, cli.Simulate.Timeout)
		assert.Equal(t, "out.json", cli.Simulate.Output)
	})

	t.Run("serve flags", func(t *testing.T) {
		cli, ctx := parse(t, "serve", "-a", ":9000")
		assert.Equal(t, "serve", ctx.Command())
		assert.Equal(t, ":9000", cli.Serve.Addr)
	})
}

func TestGlobalsLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file uses defaults", func(t *testing.T) {
		g := Globals{Config: filepath.Join(dir, "missing.hcl")}
		cfg, err := g.load()
		require.NoError(t, err)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("debug overrides log level", func(t *testing.T) {
		path := filepath.Join(dir, "warn.hcl")
		require.NoError(t, os.WriteFile(path, []byte(`log_level = "warn"`), 0o644))

		g := Globals{Config: path, Debug: true}
		cfg, err := g.load()
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("invalid config is rejected", func(t *testing.T) {
		path := filepath.Join(dir, "bad.hcl")
		require.NoError(t, os.WriteFile(path, []byte("table {\n  bankroll = -5\n}\n"), 0o644))

		g := Globals{Config: path}
		_, err := g.load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "warn")
	require.NoError(t, err)
	assert.Equal(t, log.WarnLevel, logger.GetLevel())

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	_, err = newLogger(&buf, "loud")
	assert.Error(t, err)
}

func TestOverride(t *testing.T) {
	n := 10
	override(&n, 0)
	assert.Equal(t, 10, n)
	override(&n, 25)
	assert.Equal(t, 25, n)

	s := "pass"
	override(&s, "")
	assert.Equal(t, "pass", s)
}
