package services

import (
	"fmt"
	"taxi-dispatch-service/internal/domain"
)

// BuildDispatchPlan replays path from start and turns every edge into a plan
// round with timed trips. Replaying doubles as a validity check: each edge must
// reproduce exactly the state it recorded.
//
// Identity fields (ID, Instance, Algorithm, Expanded, CreatedAt) are left to the caller.
func BuildDispatchPlan(inst *domain.Instance, start domain.State, path []domain.Edge) (*domain.DispatchPlan, error) {
	plan := &domain.DispatchPlan{
		Rounds:      make([]domain.PlanRound, 0, len(path)),
		Itineraries: make([]domain.TaxiItinerary, len(inst.Taxis)),
	}
	for j, t := range inst.Taxis {
		plan.Itineraries[j] = domain.TaxiItinerary{Taxi: j, Start: t.Start, Final: t.Start}
	}

	cur := start
	for r, edge := range path {
		replayed, err := cur.Next(inst, edge.Pairs)
		if err != nil {
			return nil, fmt.Errorf("build dispatch plan: round %d: %w", r, err)
		}
		if replayed.State.Key() != edge.State.Key() {
			return nil, fmt.Errorf("build dispatch plan: round %d: replay diverges from recorded state", r)
		}

		round := domain.PlanRound{Index: r, Cost: edge.Cost, Trips: make([]domain.Trip, 0, len(edge.Pairs))}
		for _, p := range edge.Pairs {
			before := cur.Taxi(p.Taxi)
			after := edge.State.Taxi(p.Taxi)
			c := inst.Customers[p.Customer]

			trip := domain.Trip{
				Customer:  p.Customer,
				Taxi:      p.Taxi,
				From:      before.Pos,
				Pickup:    c.Pickup,
				Dropoff:   c.Destination,
				PickupAt:  before.FirstFree + domain.Distance(before.Pos, c.Pickup)/inst.Speed,
				DropoffAt: after.FirstFree,
			}
			round.Trips = append(round.Trips, trip)

			it := &plan.Itineraries[p.Taxi]
			it.Trips = append(it.Trips, trip)
		}

		plan.Rounds = append(plan.Rounds, round)
		plan.TotalCost += edge.Cost
		cur = edge.State
	}

	if !cur.IsGoal() {
		return nil, fmt.Errorf("build dispatch plan: path ends with %d customers unserved", cur.RemainingCustomers())
	}

	for j := range plan.Itineraries {
		ts := cur.Taxi(j)
		it := &plan.Itineraries[j]
		it.Final = ts.Pos
		it.FreeAt = ts.FirstFree
		it.Retired = ts.Retired
	}
	plan.Makespan = cur.MaxFirstFree()

	return plan, nil
}
