package domain

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
)

// DefaultSpeed is the distance-to-time conversion used when none is given.
const DefaultSpeed = 1.0

// Instance is the read-only problem context shared by every state of one search.
// It is built once before planning and never mutated afterwards.
type Instance struct {
	Name      string
	Speed     float64
	Customers []Customer
	Taxis     []Taxi
}

// CustomerInput is the raw customer record produced by loaders.
type CustomerInput struct {
	Pickup      Point
	Destination Point
}

// NewInstance derives customer trip metrics and validates the result.
func NewInstance(name string, speed float64, customers []CustomerInput, taxis []Point) (*Instance, error) {
	inst := &Instance{
		Name:      name,
		Speed:     speed,
		Customers: make([]Customer, 0, len(customers)),
		Taxis:     make([]Taxi, 0, len(taxis)),
	}

	if err := validateSpeed(speed); err != nil {
		return nil, fmt.Errorf("new instance %q: %w", name, err)
	}

	for i, c := range customers {
		inst.Customers = append(inst.Customers, NewCustomer(i, c.Pickup, c.Destination, speed))
	}
	for j, p := range taxis {
		inst.Taxis = append(inst.Taxis, Taxi{ID: j, Start: p})
	}

	if err := inst.Validate(); err != nil {
		return nil, fmt.Errorf("new instance %q: %w", name, err)
	}

	return inst, nil
}

// Validate checks instance consistency.
func (inst *Instance) Validate() error {
	if inst == nil {
		return fmt.Errorf("%w: instance is nil", ErrInvalidInstance)
	}

	if err := validateSpeed(inst.Speed); err != nil {
		return err
	}

	for i, c := range inst.Customers {
		if c.ID != i {
			return fmt.Errorf("%w: customer at index %d has id %d", ErrInvalidInstance, i, c.ID)
		}
		if !c.Pickup.finite() || !c.Destination.finite() {
			return fmt.Errorf("%w: customer %d has non-finite coordinates", ErrInvalidInstance, i)
		}
	}

	for j, t := range inst.Taxis {
		if t.ID != j {
			return fmt.Errorf("%w: taxi at index %d has id %d", ErrInvalidInstance, j, t.ID)
		}
		if !t.Start.finite() {
			return fmt.Errorf("%w: taxi %d has non-finite coordinates", ErrInvalidInstance, j)
		}
	}

	return nil
}

func validateSpeed(speed float64) error {
	if math.IsNaN(speed) || math.IsInf(speed, 0) || speed <= 0 {
		return fmt.Errorf("%w: speed must be a positive finite number, got %v", ErrInvalidInstance, speed)
	}
	return nil
}

// Fingerprint identifies the instance contents. Two instances with the same
// speed, customers and taxis share a fingerprint regardless of name.
func (inst *Instance) Fingerprint() string {
	h := fnv.New64a()
	buf := make([]byte, 0, 8)
	write := func(v float64) {
		buf = binary.LittleEndian.AppendUint64(buf[:0], math.Float64bits(v))
		_, _ = h.Write(buf)
	}

	write(inst.Speed)
	write(float64(len(inst.Customers)))
	for _, c := range inst.Customers {
		write(c.Pickup.X)
		write(c.Pickup.Y)
		write(c.Destination.X)
		write(c.Destination.Y)
	}
	write(float64(len(inst.Taxis)))
	for _, t := range inst.Taxis {
		write(t.Start.X)
		write(t.Start.Y)
	}

	return fmt.Sprintf("%016x", h.Sum64())
}
