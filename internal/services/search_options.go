package services

import (
	"fmt"
	"math"
)

// DefaultTolerance is the relative slack allowed by the consistency check.
const DefaultTolerance = 1e-9

// SearchOptions configures a single Search call.
//
// Heuristic     – nil runs Dijkstra, any other value runs A*.
// MaxExpansions – caps the number of fresh states popped; 0 means unlimited.
// Tolerance     – relative float slack for h(pred) <= h(succ) + cost.
type SearchOptions struct {
	Heuristic     Heuristic
	MaxExpansions int
	Tolerance     float64
}

// SearchOption mutates SearchOptions.
type SearchOption func(*SearchOptions)

func DefaultSearchOptions() SearchOptions {
	return SearchOptions{Tolerance: DefaultTolerance}
}

// WithHeuristic enables A* guided by NearestTaxiBound.
func WithHeuristic() SearchOption {
	return func(o *SearchOptions) { o.Heuristic = NearestTaxiBound }
}

// WithHeuristicFunc enables A* with a caller supplied heuristic.
// Passing nil falls back to Dijkstra.
func WithHeuristicFunc(h Heuristic) SearchOption {
	return func(o *SearchOptions) { o.Heuristic = h }
}

func WithMaxExpansions(n int) SearchOption {
	return func(o *SearchOptions) { o.MaxExpansions = n }
}

func WithTolerance(tol float64) SearchOption {
	return func(o *SearchOptions) { o.Tolerance = tol }
}

func (o SearchOptions) validate() error {
	if o.MaxExpansions < 0 {
		return fmt.Errorf("%w: max expansions must be >= 0, got %d", ErrInvalidSearchOptions, o.MaxExpansions)
	}
	if math.IsNaN(o.Tolerance) || o.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance must be >= 0, got %v", ErrInvalidSearchOptions, o.Tolerance)
	}
	return nil
}
