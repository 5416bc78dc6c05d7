// market/contract.go
package market

import "fmt"

// ContractSpec holds the static exchange spec for one futures contract.
// TickSize and TickValue convert price deltas to dollar P/L; PointValue is
// the dollar value of a full point move, used for buy-and-hold benchmarks.
// MarginRate sizes the account at engine construction.
type ContractSpec struct {
	Ticker     string  `json:"ticker"`
	Name       string  `json:"name"`
	TickSize   float64 `json:"tick_size"`
	TickValue  float64 `json:"tick_value"`
	PointValue float64 `json:"point_value"`
	MarginRate float64 `json:"margin_rate"`
}

var Contracts = map[string]ContractSpec{
	"ES": {
		Ticker:     "ES",
		Name:       "E-mini S&P 500",
		TickSize:   0.25,
		TickValue:  12.50,
		PointValue: 50,
		MarginRate: 2.5,
	},
	"NQ": {
		Ticker:     "NQ",
		Name:       "E-mini Nasdaq-100",
		TickSize:   0.25,
		TickValue:  5.00,
		PointValue: 20,
		MarginRate: 1.2,
	},
	"YM": {
		Ticker:     "YM",
		Name:       "E-mini Dow",
		TickSize:   1.0,
		TickValue:  5.00,
		PointValue: 5,
		MarginRate: 0.25,
	},
	"CL": {
		Ticker:     "CL",
		Name:       "Crude Oil",
		TickSize:   0.01,
		TickValue:  10.00,
		PointValue: 1000,
		MarginRate: 80,
	},
	"GC": {
		Ticker:     "GC",
		Name:       "Gold",
		TickSize:   0.10,
		TickValue:  10.00,
		PointValue: 100,
		MarginRate: 5,
	},
	"SI": {
		Ticker:     "SI",
		Name:       "Silver",
		TickSize:   0.005,
		TickValue:  25.00,
		PointValue: 5000,
		MarginRate: 450,
	},
	"ZB": {
		Ticker:     "ZB",
		Name:       "30-Year T-Bond",
		TickSize:   0.03125,
		TickValue:  31.25,
		PointValue: 1000,
		MarginRate: 35,
	},
	"6E": {
		Ticker:     "6E",
		Name:       "Euro FX",
		TickSize:   0.00005,
		TickValue:  6.25,
		PointValue: 125000,
		MarginRate: 3200,
	},
}

// Lookup returns the spec for ticker or an error naming the unknown symbol.
func Lookup(ticker string) (ContractSpec, error) {
	spec, ok := Contracts[ticker]
	if !ok {
		return ContractSpec{}, fmt.Errorf("unknown contract %q", ticker)
	}
	return spec, nil
}
