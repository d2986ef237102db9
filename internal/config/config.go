// Package config loads the craps HCL configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/craps/craps"
	"github.com/lox/craps/internal/strategy"
	"github.com/lox/craps/internal/table"
)

// Config is the complete configuration. Every block is optional.
type Config struct {
	LogLevel   string              `hcl:"log_level,optional"`
	Table      *TableSettings      `hcl:"table,block"`
	Server     *ServerSettings     `hcl:"server,block"`
	Simulation *SimulationSettings `hcl:"simulation,block"`
}

// TableSettings configures every table the process creates
type TableSettings struct {
	Bankroll    int64  `hcl:"bankroll,optional"`
	MinBet      int64  `hcl:"min_bet,optional"`
	MaxBet      int64  `hcl:"max_bet,optional"`
	PassLineWin string `hcl:"pass_line_win,optional"` // stake_stays or stake_returned
	History     int    `hcl:"history,optional"`
}

// ServerSettings configures the WebSocket server
type ServerSettings struct {
	Address string `hcl:"address,optional"`
	Port    int    `hcl:"port,optional"`
}

// SimulationSettings are the defaults for the simulate command
type SimulationSettings struct {
	Sessions int    `hcl:"sessions,optional"`
	Rolls    int    `hcl:"rolls,optional"`
	Strategy string `hcl:"strategy,optional"`
	Unit     int64  `hcl:"unit,optional"`
	Seed     int64  `hcl:"seed,optional"`
	Workers  int    `hcl:"workers,optional"`
	Timeout  string `hcl:"timeout,optional"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.Table == nil {
		c.Table = &TableSettings{}
	}
	if c.Table.Bankroll == 0 {
		c.Table.Bankroll = int64(table.DefaultBankroll)
	}
	if c.Table.MinBet == 0 {
		c.Table.MinBet = 1
	}
	if c.Table.PassLineWin == "" {
		c.Table.PassLineWin = craps.StakeStays.String()
	}
	if c.Table.History == 0 {
		c.Table.History = table.DefaultHistorySize
	}

	if c.Server == nil {
		c.Server = &ServerSettings{}
	}
	if c.Server.Address == "" {
		c.Server.Address = "localhost"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}

	if c.Simulation == nil {
		c.Simulation = &SimulationSettings{}
	}
	if c.Simulation.Sessions == 0 {
		c.Simulation.Sessions = 10000
	}
	if c.Simulation.Rolls == 0 {
		c.Simulation.Rolls = 100
	}
	if c.Simulation.Strategy == "" {
		c.Simulation.Strategy = "pass_odds"
	}
	if c.Simulation.Unit == 0 {
		c.Simulation.Unit = 10
	}
	if c.Simulation.Timeout == "" {
		c.Simulation.Timeout = "5m"
	}
}

// Validate checks the configuration for values the engine cannot use
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	t := c.Table
	if t.Bankroll <= 0 {
		return fmt.Errorf("table: bankroll must be positive, got %d", t.Bankroll)
	}
	if t.MinBet < 0 {
		return fmt.Errorf("table: min_bet must not be negative, got %d", t.MinBet)
	}
	if t.MaxBet != 0 && t.MaxBet < t.MinBet {
		return fmt.Errorf("table: max_bet %d is below min_bet %d", t.MaxBet, t.MinBet)
	}
	if _, err := c.PassLineWin(); err != nil {
		return err
	}
	if t.History < 0 {
		return fmt.Errorf("table: history must not be negative, got %d", t.History)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server: invalid port: %d", c.Server.Port)
	}

	s := c.Simulation
	if s.Sessions <= 0 {
		return fmt.Errorf("simulation: sessions must be positive, got %d", s.Sessions)
	}
	if s.Rolls <= 0 {
		return fmt.Errorf("simulation: rolls must be positive, got %d", s.Rolls)
	}
	if _, err := strategy.New(s.Strategy, craps.Money(s.Unit)); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}
	if s.Workers < 0 {
		return fmt.Errorf("simulation: workers must not be negative, got %d", s.Workers)
	}
	if _, err := c.SimulationTimeout(); err != nil {
		return err
	}
	return nil
}

// PassLineWin parses the table's pass line convention
func (c *Config) PassLineWin() (craps.PassLineWin, error) {
	for _, p := range []craps.PassLineWin{craps.StakeStays, craps.StakeReturned} {
		if c.Table.PassLineWin == p.String() {
			return p, nil
		}
	}
	return 0, fmt.Errorf("table: pass_line_win must be %q or %q, got %q",
		craps.StakeStays, craps.StakeReturned, c.Table.PassLineWin)
}

// SimulationTimeout parses the simulation timeout
func (c *Config) SimulationTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Simulation.Timeout)
	if err != nil {
		return 0, fmt.Errorf("simulation: timeout: %w", err)
	}
	return d, nil
}

// TableOptions turns the table block into table options
func (c *Config) TableOptions() ([]table.Option, error) {
	passLine, err := c.PassLineWin()
	if err != nil {
		return nil, err
	}
	return []table.Option{
		table.WithBankroll(craps.Money(c.Table.Bankroll)),
		table.WithLimits(craps.Money(c.Table.MinBet), craps.Money(c.Table.MaxBet)),
		table.WithRules(craps.WithPassLineWin(passLine)),
		table.WithHistorySize(c.Table.History),
	}, nil
}

// ServerAddress returns the listen address
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
