package dto

import "taxi-dispatch-service/internal/domain"

func NewPoint(p domain.Point) PointResponse {
	return PointResponse{X: p.X, Y: p.Y}
}

func NewInstanceResponse(inst *domain.Instance) InstanceResponse {
	res := InstanceResponse{
		Name:        inst.Name,
		Speed:       inst.Speed,
		Fingerprint: inst.Fingerprint(),
		Customers:   make([]CustomerResponse, 0, len(inst.Customers)),
		Taxis:       make([]TaxiResponse, 0, len(inst.Taxis)),
	}
	for _, c := range inst.Customers {
		res.Customers = append(res.Customers, CustomerResponse{
			ID:           c.ID,
			Pickup:       NewPoint(c.Pickup),
			Destination:  NewPoint(c.Destination),
			TripDistance: c.TripDistance,
			TripDuration: c.TripDuration,
		})
	}
	for _, t := range inst.Taxis {
		res.Taxis = append(res.Taxis, TaxiResponse{ID: t.ID, Start: NewPoint(t.Start)})
	}
	return res
}

func newTrips(trips []domain.Trip) []TripResponse {
	out := make([]TripResponse, 0, len(trips))
	for _, t := range trips {
		out = append(out, TripResponse{
			Customer:  t.Customer,
			Taxi:      t.Taxi,
			From:      NewPoint(t.From),
			Pickup:    NewPoint(t.Pickup),
			Dropoff:   NewPoint(t.Dropoff),
			PickupAt:  t.PickupAt,
			DropoffAt: t.DropoffAt,
		})
	}
	return out
}

func NewPlanResponse(p *domain.DispatchPlan) PlanResponse {
	res := PlanResponse{
		ID:          p.ID,
		Instance:    p.Instance,
		Algorithm:   p.Algorithm,
		TotalCost:   p.TotalCost,
		Makespan:    p.Makespan,
		Expanded:    p.Expanded,
		CreatedAt:   p.CreatedAt,
		Rounds:      make([]RoundResponse, 0, len(p.Rounds)),
		Itineraries: make([]ItineraryResponse, 0, len(p.Itineraries)),
	}
	for _, r := range p.Rounds {
		res.Rounds = append(res.Rounds, RoundResponse{Index: r.Index, Cost: r.Cost, Trips: newTrips(r.Trips)})
	}
	for _, it := range p.Itineraries {
		res.Itineraries = append(res.Itineraries, ItineraryResponse{
			Taxi:    it.Taxi,
			Start:   NewPoint(it.Start),
			Final:   NewPoint(it.Final),
			FreeAt:  it.FreeAt,
			Retired: it.Retired,
			Trips:   newTrips(it.Trips),
		})
	}
	return res
}
