package services

import (
	"math"
	"math/rand/v2"
	"taxi-dispatch-service/internal/domain"
	"testing"
)

func mustInstance(t *testing.T, speed float64, customers []domain.CustomerInput, taxis []domain.Point) *domain.Instance {
	t.Helper()

	inst, err := domain.NewInstance(t.Name(), speed, customers, taxis)
	if err != nil {
		t.Fatalf("new instance: %v", err)
	}
	return inst
}

// One customer (0,0)->(10,0), one taxi at the origin.
func singleRide(t *testing.T) *domain.Instance {
	return mustInstance(t, 1,
		[]domain.CustomerInput{{Pickup: domain.Point{X: 0, Y: 0}, Destination: domain.Point{X: 10, Y: 0}}},
		[]domain.Point{{X: 0, Y: 0}},
	)
}

// Two taxis each sitting on a one-unit ride.
func twoParallelRides(t *testing.T) *domain.Instance {
	return mustInstance(t, 1,
		[]domain.CustomerInput{
			{Pickup: domain.Point{X: 0, Y: 0}, Destination: domain.Point{X: 1, Y: 0}},
			{Pickup: domain.Point{X: 10, Y: 0}, Destination: domain.Point{X: 11, Y: 0}},
		},
		[]domain.Point{{X: 0, Y: 0}, {X: 10, Y: 0}},
	)
}

// One taxi at the origin; c0 (1,0)->(2,0) and c1 (5,0)->(5,3).
func oneTaxiTwoRides(t *testing.T) *domain.Instance {
	return mustInstance(t, 1,
		[]domain.CustomerInput{
			{Pickup: domain.Point{X: 1, Y: 0}, Destination: domain.Point{X: 2, Y: 0}},
			{Pickup: domain.Point{X: 5, Y: 0}, Destination: domain.Point{X: 5, Y: 3}},
		},
		[]domain.Point{{X: 0, Y: 0}},
	)
}

func randomInstance(t *testing.T, rng *rand.Rand, customers, taxis int) *domain.Instance {
	t.Helper()

	coord := func() domain.Point {
		return domain.Point{X: float64(rng.IntN(21) - 10), Y: float64(rng.IntN(21) - 10)}
	}

	cs := make([]domain.CustomerInput, customers)
	for i := range cs {
		cs[i] = domain.CustomerInput{Pickup: coord(), Destination: coord()}
	}
	ts := make([]domain.Point, taxis)
	for j := range ts {
		ts[j] = coord()
	}
	return mustInstance(t, 1, cs, ts)
}

// costToGo computes the exact optimal remaining cost from every reachable
// state by exhaustive recursion. Only usable on tiny instances.
type costToGo struct {
	t    *testing.T
	inst *domain.Instance
	memo map[domain.StateKey]float64
}

func newCostToGo(t *testing.T, inst *domain.Instance) *costToGo {
	return &costToGo{t: t, inst: inst, memo: make(map[domain.StateKey]float64)}
}

func (c *costToGo) of(s domain.State) float64 {
	if v, ok := c.memo[s.Key()]; ok {
		return v
	}

	best := math.Inf(1)
	if s.IsGoal() {
		best = 0
	}
	for edge, err := range Successors(c.inst, s) {
		if err != nil {
			c.t.Fatalf("successors: %v", err)
		}
		best = math.Min(best, edge.Cost+c.of(edge.State))
	}

	c.memo[s.Key()] = best
	return best
}

// reachable lists every state reachable from start, start included.
func reachable(t *testing.T, inst *domain.Instance, start domain.State) []domain.State {
	t.Helper()

	seen := map[domain.StateKey]bool{start.Key(): true}
	out := []domain.State{start}
	for i := 0; i < len(out); i++ {
		for edge, err := range Successors(inst, out[i]) {
			if err != nil {
				t.Fatalf("successors: %v", err)
			}
			if !seen[edge.State.Key()] {
				seen[edge.State.Key()] = true
				out = append(out, edge.State)
			}
		}
	}
	return out
}

func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	r := 1
	for i := 1; i <= k; i++ {
		r = r * (n - k + i) / i
	}
	return r
}
