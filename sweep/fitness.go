package sweep

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/rustyeddy/futback/metrics"
)

// Fitness ranks competing parameter sets by a single number, higher is
// better.
type Fitness struct {
	Name  string
	Score func(metrics.Summary) float64
}

// FitnessByName resolves one of the built-in fitness metrics.
func FitnessByName(name string) (Fitness, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "profit":
		return Fitness{
			Name:  "profit",
			Score: func(s metrics.Summary) float64 { return s.Profit },
		}, nil

	case "profit-factor":
		return Fitness{
			Name:  "profit-factor",
			Score: func(s metrics.Summary) float64 { return s.ProfitFactor },
		}, nil

	case "expectancy":
		return Fitness{
			Name:  "expectancy",
			Score: func(s metrics.Summary) float64 { return s.Expectancy },
		}, nil

	case "drawdown-adjusted":
		// Profit penalized by the drawdown it took to earn it.
		// MaxDrawdown is <= 0, so this is profit minus the dip.
		return Fitness{
			Name:  "drawdown-adjusted",
			Score: func(s metrics.Summary) float64 { return s.Profit + s.MaxDrawdown },
		}, nil
	}

	return Fitness{}, fmt.Errorf("unknown fitness %q (supported: profit, profit-factor, expectancy, drawdown-adjusted)", name)
}

// Best selects the highest-scoring successful outcome. NaN scores lose to
// everything; +Inf wins (a sweep with no losing trades is allowed to win).
func Best(outcomes []Outcome, fit Fitness) (Outcome, error) {
	best := -1
	bestScore := math.Inf(-1)

	for i, o := range outcomes {
		if o.Err != nil {
			continue
		}
		score := fit.Score(o.Summary)
		if math.IsNaN(score) {
			continue
		}
		if best == -1 || score > bestScore {
			best = i
			bestScore = score
		}
	}

	if best == -1 {
		return Outcome{}, errors.New("sweep: no successful outcomes")
	}
	return outcomes[best], nil
}
