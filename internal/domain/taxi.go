package domain

// A vehicle that serves customers one after another, starting at Start.
type Taxi struct {
	ID    int
	Start Point
}
