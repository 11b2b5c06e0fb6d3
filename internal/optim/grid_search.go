package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrEmptyGrid   = errors.New("optim: empty grid")
	ErrNoCandidate = errors.New("optim: every grid point failed")
)

// Evaluate scores one parameter assignment.
type Evaluate func(ctx context.Context, params map[string]float64) (float64, error)

// Point is one evaluated grid cell.
type Point struct {
	Params map[string]float64
	Value  float64
	Err    error
}

// GridSearch evaluates every combination of the given parameter values.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	maximize   bool
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Maximize makes Search prefer the largest value instead of the smallest.
func (g *GridSearch) Maximize() *GridSearch {
	g.maximize = true
	return g
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	if len(g.paramNames) == 0 {
		return 0
	}
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search returns the best assignment, its value and every evaluated point in
// grid order. Points whose evaluation fails are kept with their error.
func (g *GridSearch) Search(ctx context.Context, eval Evaluate) (map[string]float64, float64, []Point, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, nil, fmt.Errorf("optim: %d names for %d ranges", len(g.paramNames), len(g.ranges))
	}
	if g.Size() == 0 {
		return nil, 0, nil, ErrEmptyGrid
	}

	best := math.Inf(1)
	if g.maximize {
		best = math.Inf(-1)
	}
	var bestParams map[string]float64
	points := make([]Point, 0, g.Size())

	err := g.searchRecursive(ctx, 0, make(map[string]float64), eval, func(p Point) {
		points = append(points, p)
		if p.Err != nil || math.IsNaN(p.Value) {
			return
		}
		if (g.maximize && p.Value > best) || (!g.maximize && p.Value < best) {
			best = p.Value
			bestParams = p.Params
		}
	})
	if err != nil {
		return nil, 0, points, err
	}
	if bestParams == nil {
		return nil, 0, points, ErrNoCandidate
	}
	return bestParams, best, points, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	eval Evaluate,
	visit func(Point),
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		val, err := eval(ctx, current)
		visit(Point{Params: current, Value: val, Err: err})
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, eval, visit); err != nil {
			return err
		}
	}
	return nil
}

// ParseAxis reads "name=v1,v2,..." into a parameter name and its values.
func ParseAxis(s string) (string, []float64, error) {
	name, list, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" || strings.TrimSpace(list) == "" {
		return "", nil, fmt.Errorf("optim: axis %q is not name=v1,v2", s)
	}
	fields := strings.Split(list, ",")
	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return "", nil, fmt.Errorf("optim: axis %q: %w", name, err)
		}
		values = append(values, v)
	}
	return name, values, nil
}
