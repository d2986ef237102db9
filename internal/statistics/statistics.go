package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/craps/craps"
)

// SessionResult is the outcome of one simulated craps session
type SessionResult struct {
	Net     craps.Money // Final equity minus starting bankroll
	Wagered craps.Money // Total action: every stake settled by a roll
	Rolls   int         // Rolls played before the session stopped
	Busted  bool        // Ran out of money before the roll limit
	Seed    int64       // RNG seed for this session (for replay)
}

// Statistics aggregates simulation results across sessions
type Statistics struct {
	Sessions int
	SumNet   float64
	SumNet2  float64   // Sum of squares for variance calculation
	Values   []float64 // Every session net, for median/percentile calculation

	// Outcome breakdown - track ALL sessions, not just winners
	Winners  int     // Sessions that finished ahead
	Losers   int     // Sessions that finished behind
	Busts    int     // Sessions that lost the whole bankroll
	WinNet   float64 // Net from winning sessions
	LossNet  float64 // Net from losing and even sessions
	AllNet   float64 // Total net for sanity check
	Wagered  float64 // Total action across all sessions
	Rolls    int     // Total rolls across all sessions
	MaxWin   float64 // Best single session
	MaxLoss  float64 // Worst single session (negative)
	MaxRolls int     // Longest session
}

// Mean returns the average net per session
func (s *Statistics) Mean() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return s.SumNet / float64(s.Sessions)
}

// Variance returns the sample variance of session nets
func (s *Statistics) Variance() float64 {
	if s.Sessions < 2 {
		return 0
	}
	mean := s.Mean()
	v := (s.SumNet2 - float64(s.Sessions)*mean*mean) / float64(s.Sessions-1)
	return max(v, 0) // rounding can push identical sessions just below zero
}

// StdDev returns the sample standard deviation of session nets
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Sessions))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a session result into the statistics
func (s *Statistics) Add(result SessionResult) {
	net := float64(result.Net)
	s.Sessions++
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)

	if net > 0 {
		s.Winners++
		s.WinNet += net
	} else {
		if net < 0 {
			s.Losers++
		}
		s.LossNet += net
	}
	s.AllNet += net

	if result.Busted {
		s.Busts++
	}
	s.Wagered += float64(result.Wagered)
	s.Rolls += result.Rolls

	if s.Sessions == 1 || net > s.MaxWin {
		s.MaxWin = net
	}
	if s.Sessions == 1 || net < s.MaxLoss {
		s.MaxLoss = net
	}
	if result.Rolls > s.MaxRolls {
		s.MaxRolls = result.Rolls
	}
}

// Merge folds other into s. Values keep other's order after s's.
func (s *Statistics) Merge(other *Statistics) {
	if other.Sessions == 0 {
		return
	}
	if s.Sessions == 0 || other.MaxWin > s.MaxWin {
		s.MaxWin = other.MaxWin
	}
	if s.Sessions == 0 || other.MaxLoss < s.MaxLoss {
		s.MaxLoss = other.MaxLoss
	}
	if other.MaxRolls > s.MaxRolls {
		s.MaxRolls = other.MaxRolls
	}
	s.Sessions += other.Sessions
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)
	s.Winners += other.Winners
	s.Losers += other.Losers
	s.Busts += other.Busts
	s.WinNet += other.WinNet
	s.LossNet += other.LossNet
	s.AllNet += other.AllNet
	s.Wagered += other.Wagered
	s.Rolls += other.Rolls
}

// Median returns the median session net
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func (s *Statistics) sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// BustRate is the fraction of sessions that lost the whole bankroll
func (s *Statistics) BustRate() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return float64(s.Busts) / float64(s.Sessions)
}

// WinRate is the fraction of sessions that finished ahead
func (s *Statistics) WinRate() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return float64(s.Winners) / float64(s.Sessions)
}

// Edge is the player's return per dollar wagered. Negative values are the
// house edge.
func (s *Statistics) Edge() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return s.AllNet / s.Wagered
}

// NetPerRoll is the average net per roll across all sessions
func (s *Statistics) NetPerRoll() float64 {
	if s.Rolls == 0 {
		return 0
	}
	return s.AllNet / float64(s.Rolls)
}

// IsLedgerBalanced checks that winning and losing buckets add up
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllNet-s.WinNet-s.LossNet) <= 1e-6
}

// Validate performs consistency checks on the aggregated data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllNet=%.2f, WinNet=%.2f, LossNet=%.2f",
			s.AllNet, s.WinNet, s.LossNet)
	}
	if s.Sessions <= 0 {
		return fmt.Errorf("invalid sessions count: %d", s.Sessions)
	}
	if len(s.Values) != s.Sessions {
		return fmt.Errorf("values array length (%d) does not match sessions count (%d)",
			len(s.Values), s.Sessions)
	}
	if s.Winners+s.Losers > s.Sessions {
		return fmt.Errorf("winners (%d) plus losers (%d) exceeds sessions (%d)", s.Winners, s.Losers, s.Sessions)
	}
	if s.Busts > s.Losers {
		return fmt.Errorf("busts (%d) exceeds losing sessions (%d)", s.Busts, s.Losers)
	}
	return nil
}
