package services

import (
	"math"
	"taxi-dispatch-service/internal/domain"
)

// Heuristic estimates the remaining cost from a state to the nearest goal.
// Implementations must be non-negative and consistent. +Inf is allowed; Search
// drops such a successor only when it has customers left and no available
// taxi, and otherwise orders it after every finite estimate.
type Heuristic func(inst *domain.Instance, s domain.State) float64

// ZeroHeuristic turns A* into Dijkstra.
func ZeroHeuristic(*domain.Instance, domain.State) float64 { return 0 }

// NearestTaxiBound sums, over every pending customer, its trip duration plus the
// earliest time any available taxi could reach its pickup. It is +Inf when
// customers remain and every taxi is retired.
//
// The bound is admissible and consistent for speeds up to 1. Above that the
// trip leg shrinks faster than the bound assumes and the search may report
// ErrInconsistentHeuristic.
func NearestTaxiBound(inst *domain.Instance, s domain.State) float64 {
	h := 0.0
	for i := range s.NumCustomers() {
		if s.Done(i) {
			continue
		}
		c := inst.Customers[i]

		best := math.Inf(1)
		for j := range s.NumTaxis() {
			pos, free, retired := s.TaxiStatus(j)
			if retired {
				continue
			}
			best = math.Min(best, domain.Distance(pos, c.Pickup)/inst.Speed+free)
		}

		h += c.TripDuration + best
	}
	return h
}
