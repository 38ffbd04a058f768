package optim

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/dragsim/internal/analysis"
	"github.com/san-kum/dragsim/internal/sim"
)

// Objective scores a landed run; higher is better.
type Objective func(analysis.Summary) float64

var Objectives = map[string]Objective{
	"range":        func(s analysis.Summary) float64 { return math.Abs(s.Range) },
	"apex":         func(s analysis.Summary) float64 { return s.ApexHeight },
	"flight_time":  func(s analysis.Summary) float64 { return s.FlightTime },
	"impact_speed": func(s analysis.Summary) float64 { return -s.ImpactSpeed },
}

func ObjectiveNames() []string {
	names := make([]string, 0, len(Objectives))
	for name := range Objectives {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GridSearch tries every combination of the given launch parameter values.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// Search returns the best launch and its score. Runs that never land are
// skipped.
func (g *GridSearch) Search(
	ctx context.Context,
	base sim.Params,
	surf sim.Surface,
	cfg sim.RunConfig,
	objective Objective,
) (sim.Params, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return sim.Params{}, 0, fmt.Errorf("%d params but %d ranges", len(g.paramNames), len(g.ranges))
	}
	for _, name := range g.paramNames {
		probe := base
		if err := probe.Set(name, 0); err != nil {
			return sim.Params{}, 0, err
		}
	}

	best := math.Inf(-1)
	var bestParams sim.Params
	found := false

	err := g.searchRecursive(ctx, 0, base, surf, cfg, objective, func(p sim.Params, score float64) {
		if score > best {
			best, bestParams, found = score, p, true
		}
	})
	if err != nil {
		return sim.Params{}, 0, err
	}
	if !found {
		return sim.Params{}, 0, fmt.Errorf("no candidate landed within %.0f s", cfg.MaxDuration)
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current sim.Params,
	surf sim.Surface,
	cfg sim.RunConfig,
	objective Objective,
	visit func(sim.Params, float64),
) error {
	if depth == len(g.paramNames) {
		result, err := sim.Run(ctx, current, surf, cfg)
		if err != nil {
			return err
		}
		if result.Completed {
			visit(current, objective(analysis.Summarize(result)))
		}
		return nil
	}

	for _, val := range g.ranges[depth] {
		next := current
		if err := next.Set(g.paramNames[depth], val); err != nil {
			return err
		}
		if err := g.searchRecursive(ctx, depth+1, next, surf, cfg, objective, visit); err != nil {
			return err
		}
	}
	return nil
}
