package domain

// Represents a single ride request: a pickup and a destination.
// Trip distance and duration are derived once at construction and
// never change afterwards.
type Customer struct {
	ID           int
	Pickup       Point
	Destination  Point
	TripDistance float64
	TripDuration float64
}

func NewCustomer(id int, pickup, destination Point, speed float64) Customer {
	d := Distance(pickup, destination)
	return Customer{
		ID:           id,
		Pickup:       pickup,
		Destination:  destination,
		TripDistance: d,
		TripDuration: d / speed,
	}
}
