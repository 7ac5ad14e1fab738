package services

import (
	"iter"
	"taxi-dispatch-service/internal/domain"
)

// Successors lazily enumerates every edge leaving s.
//
// For each round size l from 1 up to min(available taxis, pending customers),
// every l-combination of available taxis is paired positionally with every
// l-combination of pending customers, both taken in ascending index order.
// The sequence is deterministic and can be ranged over any number of times.
func Successors(inst *domain.Instance, s domain.State) iter.Seq2[domain.Edge, error] {
	return func(yield func(domain.Edge, error) bool) {
		taxis := s.AvailableTaxis()
		customers := s.PendingCustomers()
		maxRound := min(len(taxis), len(customers))

		pairs := make([]domain.Assignment, 0, maxRound)
		for l := 1; l <= maxRound; l++ {
			for tc := range combinations(taxis, l) {
				for cc := range combinations(customers, l) {
					pairs = pairs[:0]
					for i := range l {
						pairs = append(pairs, domain.Assignment{Customer: cc[i], Taxi: tc[i]})
					}

					edge, err := s.Next(inst, pairs)
					if err != nil {
						yield(domain.Edge{}, err)
						return
					}
					if !yield(edge, nil) {
						return
					}
				}
			}
		}
	}
}
