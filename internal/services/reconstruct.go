package services

import (
	"fmt"
	"slices"
	"taxi-dispatch-service/internal/domain"
)

// Reconstruct walks the predecessor links from goal back to the root edge and
// returns the edges taken, start first. The root edge is not included.
func Reconstruct(goal domain.State, visited map[domain.StateKey]Visit) ([]domain.Edge, error) {
	v, ok := visited[goal.Key()]
	if !ok {
		return nil, fmt.Errorf("reconstruct: %w: goal %v", ErrStateNotVisited, goal)
	}

	edges := make([]domain.Edge, 0, goal.NumCustomers())
	for !v.Edge.IsRoot() {
		if len(edges) >= len(visited) {
			return nil, fmt.Errorf("reconstruct: predecessor chain does not reach the root")
		}
		edges = append(edges, v.Edge)

		prev := v.Prev
		v, ok = visited[prev]
		if !ok {
			return nil, fmt.Errorf("reconstruct: %w: predecessor key %x", ErrStateNotVisited, prev)
		}
	}

	slices.Reverse(edges)
	return edges, nil
}
