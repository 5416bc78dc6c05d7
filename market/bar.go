package market

import (
	"fmt"
	"time"
)

// Bar is a single OHLC sample for one fixed time period.
type Bar struct {
	Time  time.Time `json:"time"`
	Open  float64   `json:"open"`
	High  float64   `json:"high"`
	Low   float64   `json:"low"`
	Close float64   `json:"close"`
}

// Series is an ordered, chronologically unique sequence of bars for one
// contract. The bar index is the authoritative time axis for everything
// downstream; the series is never mutated after loading.
type Series struct {
	Contract ContractSpec
	Bars     []Bar
	Source   string
}

func (s *Series) Len() int { return len(s.Bars) }

func (s *Series) First() Bar { return s.Bars[0] }

func (s *Series) Last() Bar { return s.Bars[len(s.Bars)-1] }

// Slice returns a sub-series over bars [i, j). The contract and source are
// shared; the backing array is not copied.
func (s *Series) Slice(i, j int) *Series {
	return &Series{
		Contract: s.Contract,
		Bars:     s.Bars[i:j],
		Source:   s.Source,
	}
}

// Validate checks that the series is non-empty and strictly chronological.
func (s *Series) Validate() error {
	if len(s.Bars) == 0 {
		return fmt.Errorf("series %s: no bars", s.Contract.Ticker)
	}
	for i := 1; i < len(s.Bars); i++ {
		prev, cur := s.Bars[i-1].Time, s.Bars[i].Time
		if !cur.After(prev) {
			return fmt.Errorf("series %s: bar %d time %s not after bar %d time %s",
				s.Contract.Ticker, i, cur.Format(time.RFC3339), i-1, prev.Format(time.RFC3339))
		}
	}
	return nil
}
