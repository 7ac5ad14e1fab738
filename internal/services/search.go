package services

import (
	"container/heap"
	"fmt"
	"math"
	"taxi-dispatch-service/internal/domain"
)

// Visit records how a state was first reached.
// Prev is the key of the predecessor; for the start state it is its own key
// and Edge is the root edge.
type Visit struct {
	State domain.State
	Prev  domain.StateKey
	Edge  domain.Edge
}

// SearchStats counts the work done by one search.
type SearchStats struct {
	Expanded     int
	Pushed       int
	StaleSkipped int
	Pruned       int
}

// SearchResult is the outcome of a successful search.
type SearchResult struct {
	Goal    domain.State
	Visited map[domain.StateKey]Visit
	Cost    float64
	Stats   SearchStats
}

// Path reconstructs the edges from the start state to Goal.
func (r *SearchResult) Path() ([]domain.Edge, error) {
	return Reconstruct(r.Goal, r.Visited)
}

// Search runs best-first search from start until the first goal state is popped.
//
// Without a heuristic the frontier is ordered by accumulated cost (Dijkstra).
// With one it is ordered by cost plus estimate (A*), and every pushed edge is
// checked for consistency. Ties are broken by insertion order so results are
// reproducible. Duplicate frontier entries are discarded on pop.
func Search(inst *domain.Instance, start domain.State, opts ...SearchOption) (*SearchResult, error) {
	cfg := DefaultSearchOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if err := inst.Validate(); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	if start.NumCustomers() != len(inst.Customers) || start.NumTaxis() != len(inst.Taxis) {
		return nil, fmt.Errorf(
			"search: %w: start state has %d customers and %d taxis, instance has %d and %d",
			domain.ErrInvalidInstance, start.NumCustomers(), start.NumTaxis(), len(inst.Customers), len(inst.Taxis),
		)
	}

	r := &searcher{
		inst:     inst,
		options:  cfg,
		visited:  make(map[domain.StateKey]Visit),
		frontier: make(frontier, 0, 64),
	}

	if err := r.init(start); err != nil {
		return nil, err
	}
	return r.process()
}

// searcher holds the mutable state of one Search call.
type searcher struct {
	inst     *domain.Instance
	options  SearchOptions
	visited  map[domain.StateKey]Visit
	frontier frontier
	seq      uint64
	stats    SearchStats
}

func (r *searcher) init(start domain.State) error {
	h, err := r.estimate(start)
	if err != nil {
		return err
	}

	heap.Init(&r.frontier)
	r.push(&frontierItem{
		estimate: h,
		edge:     domain.RootEdge(start),
		prev:     start.Key(),
		h:        h,
	})
	return nil
}

func (r *searcher) process() (*SearchResult, error) {
	for r.frontier.Len() > 0 {
		item := heap.Pop(&r.frontier).(*frontierItem)
		state := item.edge.State
		key := state.Key()

		if _, seen := r.visited[key]; seen {
			r.stats.StaleSkipped++
			continue
		}

		if r.options.MaxExpansions > 0 && r.stats.Expanded >= r.options.MaxExpansions {
			return nil, fmt.Errorf("%w: %d states expanded", ErrExpansionLimit, r.stats.Expanded)
		}
		r.stats.Expanded++

		r.visited[key] = Visit{State: state, Prev: item.prev, Edge: item.edge}

		if state.IsGoal() {
			return &SearchResult{
				Goal:    state,
				Visited: r.visited,
				Cost:    item.cost,
				Stats:   r.stats,
			}, nil
		}

		if err := r.expand(item, key); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: frontier exhausted after %d expansions", ErrUnsolvable, r.stats.Expanded)
}

func (r *searcher) expand(item *frontierItem, key domain.StateKey) error {
	for edge, err := range Successors(r.inst, item.edge.State) {
		if err != nil {
			return fmt.Errorf("search: generate successors: %w", err)
		}

		cost := item.cost + edge.Cost
		h, err := r.estimate(edge.State)
		if err != nil {
			return err
		}

		if r.options.Heuristic != nil {
			if err := r.checkConsistent(item.h, h, edge); err != nil {
				return err
			}
		}

		// Only a state with customers left and every taxi retired is dropped.
		// Any other +Inf estimate is pushed and pops last.
		if math.IsInf(h, 1) && stranded(edge.State) {
			r.stats.Pruned++
			continue
		}

		r.push(&frontierItem{
			estimate: cost + h,
			cost:     cost,
			edge:     edge,
			prev:     key,
			h:        h,
		})
	}
	return nil
}

func (r *searcher) estimate(s domain.State) (float64, error) {
	if r.options.Heuristic == nil {
		return 0, nil
	}

	h := r.options.Heuristic(r.inst, s)
	if math.IsNaN(h) || h < 0 {
		return 0, fmt.Errorf("%w: estimate %v for %v", ErrInconsistentHeuristic, h, s)
	}
	return h, nil
}

func (r *searcher) checkConsistent(hPred, hSucc float64, edge domain.Edge) error {
	// An infinite h(pred) is only consistent with an infinite h(succ).
	slack := 0.0
	if !math.IsInf(hPred, 1) {
		slack = r.options.Tolerance * math.Max(1, math.Abs(hPred))
	}
	if hPred <= hSucc+edge.Cost+slack {
		return nil
	}
	return fmt.Errorf(
		"%w: h(pred)=%v > h(succ)=%v + cost=%v on edge %v",
		ErrInconsistentHeuristic, hPred, hSucc, edge.Cost, edge,
	)
}

func stranded(s domain.State) bool {
	return !s.IsGoal() && len(s.AvailableTaxis()) == 0
}

func (r *searcher) push(item *frontierItem) {
	item.seq = r.seq
	r.seq++
	heap.Push(&r.frontier, item)
	r.stats.Pushed++
}

// frontierItem is one entry of the open set.
type frontierItem struct {
	estimate float64
	cost     float64
	seq      uint64
	edge     domain.Edge
	prev     domain.StateKey
	h        float64
}

// frontier is a min-heap ordered by (estimate, seq).
type frontier []*frontierItem

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].estimate != f[j].estimate {
		return f[i].estimate < f[j].estimate
	}
	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(*frontierItem)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return item
}
