package services

import (
	"context"
	"errors"
	"sync"
	"taxi-dispatch-service/internal/domain"
	"taxi-dispatch-service/internal/ports"
	"testing"
)

type memRepo struct {
	instances map[string]*domain.Instance
}

func (m *memRepo) ListInstances(context.Context) ([]ports.InstanceSummary, error) {
	out := make([]ports.InstanceSummary, 0, len(m.instances))
	for name, inst := range m.instances {
		out = append(out, ports.InstanceSummary{Name: name, Speed: inst.Speed, Customers: len(inst.Customers), Taxis: len(inst.Taxis)})
	}
	return out, nil
}

func (m *memRepo) GetInstance(_ context.Context, name string) (*domain.Instance, error) {
	inst, ok := m.instances[name]
	if !ok {
		return nil, ports.ErrInstanceNotFound
	}
	return inst, nil
}

type memCache struct {
	mu    sync.Mutex
	plans map[ports.PlanKey]*domain.DispatchPlan
	gets  int
	fail  bool
}

func newMemCache() *memCache {
	return &memCache{plans: make(map[ports.PlanKey]*domain.DispatchPlan)}
}

func (m *memCache) Get(_ context.Context, key ports.PlanKey) (*domain.DispatchPlan, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.fail {
		return nil, false, errors.New("cache down")
	}
	p, ok := m.plans[key]
	return p, ok, nil
}

func (m *memCache) Put(_ context.Context, key ports.PlanKey, plan *domain.DispatchPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("cache down")
	}
	m.plans[key] = plan
	return nil
}

func newTestRepo(t *testing.T) *memRepo {
	inst := twoParallelRides(t)
	inst.Name = "parallel"
	return &memRepo{instances: map[string]*domain.Instance{"parallel": inst}}
}

func TestPlanDispatchComputesAndCaches(t *testing.T) {
	repo := newTestRepo(t)
	cache := newMemCache()
	ctx := context.Background()

	first, err := PlanDispatch(ctx, PlanDispatchRequest{Instance: "parallel"}, repo, cache)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Algorithm != domain.AlgorithmAStar {
		t.Fatalf("expected default algorithm astar, got %q", first.Algorithm)
	}
	if first.TotalCost != 2 || first.Makespan != 1 || len(first.Rounds) != 1 {
		t.Fatalf("unexpected plan: %+v", first)
	}
	if first.ID == "" || first.Instance != "parallel" || first.CreatedAt.IsZero() {
		t.Fatalf("plan identity not filled: %+v", first)
	}

	second, err := PlanDispatch(ctx, PlanDispatchRequest{Instance: "parallel", Algorithm: "astar"}, repo, cache)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected cached plan %s, got %s", first.ID, second.ID)
	}

	dij, err := PlanDispatch(ctx, PlanDispatchRequest{Instance: "parallel", Algorithm: "dijkstra"}, repo, cache)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dij.ID == first.ID || dij.TotalCost != first.TotalCost {
		t.Fatalf("dijkstra plan should be computed separately with the same cost: %+v", dij)
	}
}

func TestPlanDispatchGreedy(t *testing.T) {
	plan, err := PlanDispatch(context.Background(), PlanDispatchRequest{Instance: "parallel", Algorithm: "greedy"}, newTestRepo(t), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.TotalCost != 2 || plan.Expanded != 1 {
		t.Fatalf("unexpected greedy plan: cost=%v expanded=%d", plan.TotalCost, plan.Expanded)
	}
}

func TestPlanDispatchErrors(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  PlanDispatchRequest
		want error
	}{
		{name: "missing name", req: PlanDispatchRequest{}, want: ErrInvalidPlanRequest},
		{name: "bad algorithm", req: PlanDispatchRequest{Instance: "parallel", Algorithm: "bfs"}, want: ErrInvalidPlanRequest},
		{name: "negative limit", req: PlanDispatchRequest{Instance: "parallel", MaxExpansions: -1}, want: ErrInvalidPlanRequest},
		{name: "unknown instance", req: PlanDispatchRequest{Instance: "nope"}, want: ports.ErrInstanceNotFound},
		{name: "expansion limit", req: PlanDispatchRequest{Instance: "parallel", Algorithm: "dijkstra", MaxExpansions: 1}, want: ErrExpansionLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PlanDispatch(ctx, tt.req, repo, nil)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestPlanDispatchSurvivesCacheFailure(t *testing.T) {
	cache := newMemCache()
	cache.fail = true

	plan, err := PlanDispatch(context.Background(), PlanDispatchRequest{Instance: "parallel"}, newTestRepo(t), cache)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.TotalCost != 2 {
		t.Fatalf("expected cost 2, got %v", plan.TotalCost)
	}
}

func TestPlannerSharesResults(t *testing.T) {
	cache := newMemCache()
	planner := NewPlanner(newTestRepo(t), cache, 0)

	const callers = 8
	plans := make([]*domain.DispatchPlan, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			plans[i], errs[i] = planner.Plan(context.Background(), PlanDispatchRequest{Instance: "parallel"})
		}()
	}
	wg.Wait()

	for i := range callers {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if plans[i].ID != plans[0].ID {
			t.Fatalf("caller %d got plan %s, caller 0 got %s", i, plans[i].ID, plans[0].ID)
		}
	}
}

func TestPlannerDefaultLimit(t *testing.T) {
	planner := NewPlanner(newTestRepo(t), nil, 1)

	_, err := planner.Plan(context.Background(), PlanDispatchRequest{Instance: "parallel", Algorithm: "dijkstra"})
	if !errors.Is(err, ErrExpansionLimit) {
		t.Fatalf("expected ErrExpansionLimit, got %v", err)
	}

	plan, err := planner.Plan(context.Background(), PlanDispatchRequest{Instance: "parallel", Algorithm: "dijkstra", MaxExpansions: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.TotalCost != 2 {
		t.Fatalf("expected cost 2, got %v", plan.TotalCost)
	}
}
