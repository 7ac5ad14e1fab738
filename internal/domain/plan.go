package domain

import "time"

// Search algorithms a dispatch plan can be computed with.
const (
	AlgorithmAStar    = "astar"
	AlgorithmDijkstra = "dijkstra"
	AlgorithmGreedy   = "greedy"
)

// Represents a computed optimal dispatch for one instance.
type DispatchPlan struct {
	ID          string
	Instance    string
	Algorithm   string
	TotalCost   float64
	Makespan    float64
	Rounds      []PlanRound
	Itineraries []TaxiItinerary
	Expanded    int
	CreatedAt   time.Time
}

// One assignment round of the plan.
type PlanRound struct {
	Index int
	Cost  float64
	Trips []Trip
}

// A single customer served by a taxi.
// PickupAt is when the taxi reaches the pickup point, DropoffAt is its new first-free time.
type Trip struct {
	Customer  int
	Taxi      int
	From      Point
	Pickup    Point
	Dropoff   Point
	PickupAt  float64
	DropoffAt float64
}

// The ordered trips of one taxi over the whole plan.
type TaxiItinerary struct {
	Taxi    int
	Start   Point
	Final   Point
	FreeAt  float64
	Retired bool
	Trips   []Trip
}

// ValidAlgorithm reports whether name is a supported search algorithm.
func ValidAlgorithm(name string) bool {
	switch name {
	case AlgorithmAStar, AlgorithmDijkstra, AlgorithmGreedy:
		return true
	}
	return false
}
