package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"taxi-dispatch-service/internal/domain"
	"taxi-dispatch-service/internal/platform/metrics"
	"taxi-dispatch-service/internal/platform/obs"
	"taxi-dispatch-service/internal/ports"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type PlanDispatchRequest struct {
	Instance      string
	Algorithm     string
	MaxExpansions int
}

// PlanDispatch loads an instance, serves a cached plan when one exists and
// otherwise runs the search and caches the result. cache may be nil.
func PlanDispatch(
	ctx context.Context,
	req PlanDispatchRequest,
	repo ports.InstanceRepository,
	cache ports.PlanCache,
) (plan *domain.DispatchPlan, err error) {
	defer obs.Time(ctx, "plan_dispatch")(&err)

	name := strings.TrimSpace(req.Instance)
	if name == "" {
		return nil, fmt.Errorf("plan dispatch: %w: instance name is required", ErrInvalidPlanRequest)
	}

	algorithm := req.Algorithm
	if algorithm == "" {
		algorithm = domain.AlgorithmAStar
	}
	if !domain.ValidAlgorithm(algorithm) {
		return nil, fmt.Errorf("plan dispatch: %w: unknown algorithm %q", ErrInvalidPlanRequest, algorithm)
	}
	if req.MaxExpansions < 0 {
		return nil, fmt.Errorf("plan dispatch: %w: max expansions must be >= 0", ErrInvalidPlanRequest)
	}

	inst, err := repo.GetInstance(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("plan dispatch: load instance %q: %w", name, err)
	}

	key := ports.PlanKey{Instance: inst.Name, Algorithm: algorithm, Fingerprint: inst.Fingerprint()}
	if cache != nil {
		cached, ok, err := cache.Get(ctx, key)
		switch {
		case err != nil:
			// A broken cache must not block planning.
			metrics.PlanCacheResults.WithLabelValues("error").Inc()
			log.Printf("req_id=%s plan cache get failed: key=%s err=%v", obs.RequestID(ctx), key, err)
		case ok:
			metrics.PlanCacheResults.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.PlanCacheResults.WithLabelValues("miss").Inc()
		}
	}

	plan, err = computePlan(inst, algorithm, req.MaxExpansions)
	if err != nil {
		return nil, fmt.Errorf("plan dispatch: instance %q: %w", name, err)
	}
	log.Printf(
		"req_id=%s plan_id=%s instance=%s algorithm=%s cost=%.3f makespan=%.3f rounds=%d expanded=%d",
		obs.RequestID(ctx), plan.ID, plan.Instance, plan.Algorithm, plan.TotalCost, plan.Makespan, len(plan.Rounds), plan.Expanded,
	)

	if cache != nil {
		if err := cache.Put(ctx, key, plan); err != nil {
			log.Printf("req_id=%s plan cache put failed: key=%s err=%v", obs.RequestID(ctx), key, err)
		}
	}

	return plan, nil
}

func computePlan(inst *domain.Instance, algorithm string, maxExpansions int) (*domain.DispatchPlan, error) {
	start := domain.Start(inst)

	var (
		path     []domain.Edge
		cost     float64
		expanded int
	)

	began := time.Now()
	switch algorithm {
	case domain.AlgorithmGreedy:
		res, err := GreedyDispatch(inst, start)
		metrics.SearchDuration.WithLabelValues(algorithm, searchOutcome(err)).Observe(time.Since(began).Seconds())
		if err != nil {
			return nil, err
		}
		path, cost, expanded = res.Path, res.Cost, res.Expanded

	default:
		opts := []SearchOption{WithMaxExpansions(maxExpansions)}
		if algorithm == domain.AlgorithmAStar {
			opts = append(opts, WithHeuristic())
		}

		res, err := Search(inst, start, opts...)
		metrics.SearchDuration.WithLabelValues(algorithm, searchOutcome(err)).Observe(time.Since(began).Seconds())
		if err != nil {
			return nil, err
		}

		path, err = res.Path()
		if err != nil {
			return nil, err
		}
		cost, expanded = res.Cost, res.Stats.Expanded
	}
	metrics.SearchExpanded.WithLabelValues(algorithm).Observe(float64(expanded))

	plan, err := BuildDispatchPlan(inst, start, path)
	if err != nil {
		return nil, err
	}
	plan.ID = uuid.NewString()
	plan.Instance = inst.Name
	plan.Algorithm = algorithm
	plan.TotalCost = cost
	plan.Expanded = expanded
	plan.CreatedAt = time.Now().UTC()

	return plan, nil
}

func searchOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnsolvable):
		return "unsolvable"
	case errors.Is(err, ErrExpansionLimit):
		return "limit"
	case errors.Is(err, ErrInconsistentHeuristic):
		return "inconsistent"
	default:
		return "error"
	}
}

// Planner collapses concurrent identical plan requests into a single search.
type Planner struct {
	Repo  ports.InstanceRepository
	Cache ports.PlanCache
	// Applied when a request does not set its own limit.
	MaxExpansions int

	group singleflight.Group
}

func NewPlanner(repo ports.InstanceRepository, cache ports.PlanCache, maxExpansions int) *Planner {
	return &Planner{Repo: repo, Cache: cache, MaxExpansions: maxExpansions}
}

// Plan returns the dispatch plan for req. Callers that share a request share
// the returned plan, which must be treated as read-only.
func (p *Planner) Plan(ctx context.Context, req PlanDispatchRequest) (*domain.DispatchPlan, error) {
	if req.MaxExpansions == 0 {
		req.MaxExpansions = p.MaxExpansions
	}

	key := req.Instance + "|" + req.Algorithm + "|" + strconv.Itoa(req.MaxExpansions)
	v, err, _ := p.group.Do(key, func() (any, error) {
		// One caller going away must not fail the others waiting on the same search.
		return PlanDispatch(context.WithoutCancel(ctx), req, p.Repo, p.Cache)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.DispatchPlan), nil
}
