package dto

import "time"

type PlanRequest struct {
	Instance      string `json:"instance"`
	Algorithm     string `json:"algorithm"`
	MaxExpansions int    `json:"max_expansions"`
}

type TripResponse struct {
	Customer  int           `json:"customer"`
	Taxi      int           `json:"taxi"`
	From      PointResponse `json:"from"`
	Pickup    PointResponse `json:"pickup"`
	Dropoff   PointResponse `json:"dropoff"`
	PickupAt  float64       `json:"pickup_at"`
	DropoffAt float64       `json:"dropoff_at"`
}

type RoundResponse struct {
	Index int            `json:"index"`
	Cost  float64        `json:"cost"`
	Trips []TripResponse `json:"trips"`
}

type ItineraryResponse struct {
	Taxi    int            `json:"taxi"`
	Start   PointResponse  `json:"start"`
	Final   PointResponse  `json:"final"`
	FreeAt  float64        `json:"free_at"`
	Retired bool           `json:"retired"`
	Trips   []TripResponse `json:"trips"`
}

type PlanResponse struct {
	ID          string              `json:"id"`
	Instance    string              `json:"instance"`
	Algorithm   string              `json:"algorithm"`
	TotalCost   float64             `json:"total_cost"`
	Makespan    float64             `json:"makespan"`
	Expanded    int                 `json:"expanded"`
	CreatedAt   time.Time           `json:"created_at"`
	Rounds      []RoundResponse     `json:"rounds"`
	Itineraries []ItineraryResponse `json:"itineraries"`
}
