package services

import (
	"fmt"
	"math"
	"taxi-dispatch-service/internal/domain"
)

// GreedyResult is the outcome of GreedyDispatch.
type GreedyResult struct {
	Path     []domain.Edge
	Cost     float64
	Expanded int
}

// Plan a dispatch using a greedy one-step lookahead.
//
// At each state the successor minimizing edge cost plus NearestTaxiBound is
// taken and never revisited. The result is a feasible plan whose cost is an
// upper bound on the optimum; it makes no optimality claim.
func GreedyDispatch(inst *domain.Instance, start domain.State) (*GreedyResult, error) {
	if err := inst.Validate(); err != nil {
		return nil, fmt.Errorf("greedy dispatch: %w", err)
	}

	res := &GreedyResult{Path: make([]domain.Edge, 0, start.RemainingCustomers())}
	current := start

	for !current.IsGoal() {
		res.Expanded++

		var (
			best      domain.Edge
			found     bool
			bestScore = math.Inf(1)
		)

		// Select next round by minimum score (greedy step).
		for edge, err := range Successors(inst, current) {
			if err != nil {
				return nil, fmt.Errorf("greedy dispatch: generate successors: %w", err)
			}

			score := edge.Cost + NearestTaxiBound(inst, edge.State)
			// First edge wins ties; enumeration order is deterministic.
			if !found || score < bestScore {
				best, bestScore, found = edge, score, true
			}
		}

		if !found {
			return nil, fmt.Errorf(
				"greedy dispatch: %w: no successor with %d customers remaining",
				ErrUnsolvable, current.RemainingCustomers(),
			)
		}

		res.Path = append(res.Path, best)
		res.Cost += best.Cost
		current = best.State
	}

	return res, nil
}
