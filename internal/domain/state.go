package domain

import (
	"encoding/binary"
	"fmt"
	"math"
	"slices"
	"strings"
)

// Per-taxi snapshot inside a State.
// Customers holds the realized service order and must be treated as read-only.
type TaxiState struct {
	Pos       Point
	Customers []int
	FirstFree float64
	Retired   bool
}

func (t TaxiState) Equal(o TaxiState) bool {
	return t.Pos == o.Pos &&
		t.FirstFree == o.FirstFree &&
		t.Retired == o.Retired &&
		slices.Equal(t.Customers, o.Customers)
}

// StateKey is the canonical, comparable encoding of a State.
// Two states are equal iff their keys are equal.
type StateKey string

// State is an immutable snapshot of a partial dispatch: which customers are
// served and where every taxi stands. States are only produced by Start and
// Next and are never mutated afterwards, so they can be shared freely.
type State struct {
	done  []bool
	taxis []TaxiState
	key   StateKey
}

// Start returns the initial state: nothing served, every taxi idle at its start.
func Start(inst *Instance) State {
	s := State{
		done:  make([]bool, len(inst.Customers)),
		taxis: make([]TaxiState, len(inst.Taxis)),
	}
	for j, t := range inst.Taxis {
		s.taxis[j] = TaxiState{Pos: t.Start}
	}
	s.key = s.encode()
	return s
}

func (s State) NumCustomers() int { return len(s.done) }

func (s State) NumTaxis() int { return len(s.taxis) }

func (s State) Done(i int) bool { return s.done[i] }

// Taxi returns a copy of taxi j's snapshot.
func (s State) Taxi(j int) TaxiState {
	t := s.taxis[j]
	t.Customers = slices.Clone(t.Customers)
	return t
}

// TaxiStatus reports taxi j's position, first-free time and retirement
// without copying its service history.
func (s State) TaxiStatus(j int) (pos Point, firstFree float64, retired bool) {
	t := &s.taxis[j]
	return t.Pos, t.FirstFree, t.Retired
}

func (s State) RemainingCustomers() int {
	n := 0
	for _, d := range s.done {
		if !d {
			n++
		}
	}
	return n
}

func (s State) IsGoal() bool {
	return !slices.Contains(s.done, false)
}

// PendingCustomers returns the indices of customers not yet served, ascending.
func (s State) PendingCustomers() []int {
	out := make([]int, 0, len(s.done))
	for i, d := range s.done {
		if !d {
			out = append(out, i)
		}
	}
	return out
}

// AvailableTaxis returns the indices of non-retired taxis, ascending.
func (s State) AvailableTaxis() []int {
	out := make([]int, 0, len(s.taxis))
	for j, t := range s.taxis {
		if !t.Retired {
			out = append(out, j)
		}
	}
	return out
}

// MaxFirstFree is the latest time any taxi becomes free.
func (s State) MaxFirstFree() float64 {
	m := 0.0
	for _, t := range s.taxis {
		m = math.Max(m, t.FirstFree)
	}
	return m
}

func (s State) Key() StateKey {
	if s.key != "" {
		return s.key
	}
	return s.encode()
}

func (s State) Equal(o State) bool { return s.Key() == o.Key() }

// encode writes every field with exact float bits so that structurally equal
// states always produce identical keys.
func (s State) encode() StateKey {
	buf := make([]byte, 0, 8+len(s.done)+len(s.taxis)*32)
	buf = binary.AppendUvarint(buf, uint64(len(s.done)))
	for _, d := range s.done {
		buf = append(buf, boolByte(d))
	}

	buf = binary.AppendUvarint(buf, uint64(len(s.taxis)))
	for _, t := range s.taxis {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(t.Pos.X))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(t.Pos.Y))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(t.FirstFree))
		buf = append(buf, boolByte(t.Retired))
		buf = binary.AppendUvarint(buf, uint64(len(t.Customers)))
		for _, c := range t.Customers {
			buf = binary.AppendUvarint(buf, uint64(c))
		}
	}

	return StateKey(buf)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// Next applies one assignment round and returns the edge leading to the
// successor state.
//
// Every pair moves its taxi to the customer's destination and advances the
// taxi's first-free time. Non-retired taxis that are not part of the round
// retire permanently. The edge cost is the sum of the new first-free times of
// the assigned taxis. The result does not depend on the order of pairs.
func (s State) Next(inst *Instance, pairs []Assignment) (Edge, error) {
	if inst == nil {
		return Edge{}, fmt.Errorf("next state: %w: instance is nil", ErrInvalidInstance)
	}

	if len(s.done) != len(inst.Customers) || len(s.taxis) != len(inst.Taxis) {
		return Edge{}, fmt.Errorf(
			"next state: %w: state has %d customers and %d taxis, instance has %d and %d",
			ErrInvalidAssignment, len(s.done), len(s.taxis), len(inst.Customers), len(inst.Taxis),
		)
	}

	if len(pairs) == 0 {
		return Edge{}, fmt.Errorf("next state: %w: empty assignment set", ErrInvalidAssignment)
	}

	usedCustomer := make([]bool, len(s.done))
	usedTaxi := make([]bool, len(s.taxis))
	for _, p := range pairs {
		if p.Customer < 0 || p.Customer >= len(s.done) {
			return Edge{}, fmt.Errorf("next state: %w: customer %d out of range", ErrInvalidAssignment, p.Customer)
		}
		if p.Taxi < 0 || p.Taxi >= len(s.taxis) {
			return Edge{}, fmt.Errorf("next state: %w: taxi %d out of range", ErrInvalidAssignment, p.Taxi)
		}
		if s.done[p.Customer] {
			return Edge{}, fmt.Errorf("next state: %w: customer %d already served", ErrInvalidAssignment, p.Customer)
		}
		if usedCustomer[p.Customer] {
			return Edge{}, fmt.Errorf("next state: %w: customer %d assigned twice", ErrInvalidAssignment, p.Customer)
		}
		if s.taxis[p.Taxi].Retired {
			return Edge{}, fmt.Errorf("next state: %w: taxi %d is retired", ErrInvalidAssignment, p.Taxi)
		}
		if usedTaxi[p.Taxi] {
			return Edge{}, fmt.Errorf("next state: %w: taxi %d assigned twice", ErrInvalidAssignment, p.Taxi)
		}
		usedCustomer[p.Customer] = true
		usedTaxi[p.Taxi] = true
	}

	// Shallow copies: untouched taxis keep sharing their Customers arrays.
	done := slices.Clone(s.done)
	taxis := slices.Clone(s.taxis)

	for _, p := range pairs {
		c := inst.Customers[p.Customer]
		old := s.taxis[p.Taxi]

		served := make([]int, len(old.Customers)+1)
		copy(served, old.Customers)
		served[len(old.Customers)] = p.Customer

		taxis[p.Taxi] = TaxiState{
			Pos:       c.Destination,
			Customers: served,
			FirstFree: old.FirstFree + (Distance(old.Pos, c.Pickup)+c.TripDuration)/inst.Speed,
		}
		done[p.Customer] = true
	}

	// Summing in taxi order keeps the cost independent of the pair order.
	cost := 0.0
	for j := range taxis {
		if usedTaxi[j] {
			cost += taxis[j].FirstFree
			continue
		}
		taxis[j].Retired = true
	}

	next := State{done: done, taxis: taxis}
	next.key = next.encode()

	return Edge{
		Pairs: slices.Clone(pairs),
		State: next,
		Cost:  cost,
	}, nil
}

func (s State) String() string {
	var b strings.Builder
	b.WriteString("State{done=[")
	for i, d := range s.done {
		if i > 0 {
			b.WriteByte(' ')
		}
		if d {
			b.WriteByte('x')
		} else {
			b.WriteByte('.')
		}
	}
	b.WriteString("] taxis=[")
	for j, t := range s.taxis {
		if j > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d@(%g,%g) free=%g served=%v", j, t.Pos.X, t.Pos.Y, t.FirstFree, t.Customers)
		if t.Retired {
			b.WriteString(" retired")
		}
	}
	b.WriteString("]}")
	return b.String()
}
