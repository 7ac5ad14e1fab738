package dto

type PointResponse struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type InstanceSummaryResponse struct {
	Name      string  `json:"name"`
	Speed     float64 `json:"speed"`
	Customers int     `json:"customers"`
	Taxis     int     `json:"taxis"`
}

type ListInstancesResponse struct {
	Instances []InstanceSummaryResponse `json:"instances"`
}

type CustomerResponse struct {
	ID           int           `json:"id"`
	Pickup       PointResponse `json:"pickup"`
	Destination  PointResponse `json:"destination"`
	TripDistance float64       `json:"trip_distance"`
	TripDuration float64       `json:"trip_duration"`
}

type TaxiResponse struct {
	ID    int           `json:"id"`
	Start PointResponse `json:"start"`
}

type InstanceResponse struct {
	Name        string             `json:"name"`
	Speed       float64            `json:"speed"`
	Fingerprint string             `json:"fingerprint"`
	Customers   []CustomerResponse `json:"customers"`
	Taxis       []TaxiResponse     `json:"taxis"`
}
