package strategies

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rustyeddy/futback/backtest"
)

// Factory builds a fresh strategy from a parameter bundle. Every run (and
// every sweep worker) gets its own instance; strategies are stateful and
// never shared.
type Factory func(params map[string]float64) (backtest.Strategy, error)

var registry = map[string]Factory{}

func Register(name string, f Factory) {
	registry[name] = f
}

// ByName constructs the named strategy. Unknown names list the registered
// strategies in the error so the CLI message is self-serving.
func ByName(name string, params map[string]float64) (backtest.Strategy, error) {
	f, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (supported: %s)",
			name, strings.Join(Names(), ", "))
	}
	return f(params)
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// param reads a named parameter with a default for absent keys.
func param(p map[string]float64, key string, def float64) float64 {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}
