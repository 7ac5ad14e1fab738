package domain

import (
	"fmt"
	"strings"
)

// Assignment pairs one customer with the taxi that serves it.
type Assignment struct {
	Customer int
	Taxi     int
}

// Edge is one assignment round: the pairs applied simultaneously, the
// resulting state and the cost of the round. An edge without pairs is the
// synthetic root edge that leads to the start state.
type Edge struct {
	Pairs []Assignment
	State State
	Cost  float64
}

// RootEdge wraps the start state of a search.
func RootEdge(start State) Edge {
	return Edge{State: start}
}

func (e Edge) IsRoot() bool { return len(e.Pairs) == 0 }

func (e Edge) String() string {
	if e.IsRoot() {
		return "root"
	}

	parts := make([]string, 0, len(e.Pairs))
	for _, p := range e.Pairs {
		parts = append(parts, fmt.Sprintf("c%d->t%d", p.Customer, p.Taxi))
	}
	return fmt.Sprintf("[%s] cost=%g", strings.Join(parts, " "), e.Cost)
}
