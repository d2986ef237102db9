package simulator

import (
	"github.com/lox/craps/craps"
	"github.com/lox/craps/internal/fileutil"
	"github.com/lox/craps/internal/statistics"
)

// Report is the machine-readable summary of a run
type Report struct {
	Strategy string      `json:"strategy"`
	Sessions int         `json:"sessions"`
	Rolls    int         `json:"rollLimit"`
	Unit     craps.Money `json:"unit"`
	Bankroll craps.Money `json:"bankroll"`
	Seed     int64       `json:"seed"`

	Mean       float64    `json:"mean"`
	Median     float64    `json:"median"`
	StdDev     float64    `json:"stdDev"`
	CI95       [2]float64 `json:"ci95"`
	WinRate    float64    `json:"winRate"`
	BustRate   float64    `json:"bustRate"`
	Wagered    float64    `json:"wagered"`
	Edge       float64    `json:"edge"`
	NetPerRoll float64    `json:"netPerRoll"`
	MaxWin     float64    `json:"maxWin"`
	MaxLoss    float64    `json:"maxLoss"`
	TotalRolls int        `json:"totalRolls"`
}

// NewReport summarises stats for the run described by config
func NewReport(stats *statistics.Statistics, config Config) Report {
	low, high := stats.ConfidenceInterval95()
	return Report{
		Strategy:   config.Strategy,
		Sessions:   stats.Sessions,
		Rolls:      config.Rolls,
		Unit:       config.Unit,
		Bankroll:   config.Bankroll,
		Seed:       config.Seed,
		Mean:       stats.Mean(),
		Median:     stats.Median(),
		StdDev:     stats.StdDev(),
		CI95:       [2]float64{low, high},
		WinRate:    stats.WinRate(),
		BustRate:   stats.BustRate(),
		Wagered:    stats.Wagered,
		Edge:       stats.Edge(),
		NetPerRoll: stats.NetPerRoll(),
		MaxWin:     stats.MaxWin,
		MaxLoss:    stats.MaxLoss,
		TotalRolls: stats.Rolls,
	}
}

// WriteReport writes the report as JSON, replacing filename atomically
func WriteReport(filename string, stats *statistics.Statistics, config Config) error {
	return fileutil.WriteJSON(filename, NewReport(stats, config))
}
