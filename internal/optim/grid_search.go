// Package optim evaluates functions over parameter grids.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

var ErrEmptyGrid = errors.New("optim: empty grid")

// GridSearch spans the cartesian product of one value list per parameter.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) == 0 || len(params) != len(ranges) {
		return nil, fmt.Errorf("%w: %d names, %d ranges", ErrEmptyGrid, len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("%w: no values for %s", ErrEmptyGrid, params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive. A single
// value is lo.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

func (g *GridSearch) Names() []string { return g.paramNames }

func (g *GridSearch) Size() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Points lists every grid point; the last parameter varies fastest.
func (g *GridSearch) Points() []map[string]float64 {
	points := make([]map[string]float64, 0, g.Size())
	g.collect(0, make(map[string]float64, len(g.paramNames)), &points)
	return points
}

func (g *GridSearch) collect(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.paramNames) {
		p := make(map[string]float64, len(current))
		for k, v := range current {
			p[k] = v
		}
		*out = append(*out, p)
		return
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[name] = val
		g.collect(depth+1, current, out)
	}
}

// Evaluate calls f on every grid point with at most workers concurrent
// calls and returns the values in Points order. The first error cancels the
// remaining calls.
func Evaluate[T any](ctx context.Context, g *GridSearch, workers int, f func(context.Context, map[string]float64) (T, error)) ([]T, error) {
	points := g.Points()
	out := make([]T, len(points))

	eg, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}
	for i, p := range points {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := f(ctx, p)
			if err != nil {
				return fmt.Errorf("at %v: %w", p, err)
			}
			out[i] = v
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Search returns the grid point with the smallest objective value. NaN
// values never win.
func (g *GridSearch) Search(
	ctx context.Context,
	objective func(context.Context, map[string]float64) (float64, error),
	workers int,
) (map[string]float64, float64, error) {
	values, err := Evaluate(ctx, g, workers, objective)
	if err != nil {
		return nil, math.NaN(), err
	}

	best := math.Inf(1)
	var bestParams map[string]float64
	for i, p := range g.Points() {
		if values[i] < best {
			best = values[i]
			bestParams = p
		}
	}
	if bestParams == nil {
		return nil, math.NaN(), fmt.Errorf("optim: no finite objective value")
	}
	return bestParams, best, nil
}
