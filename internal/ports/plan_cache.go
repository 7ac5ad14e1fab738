package ports

import (
	"context"
	"taxi-dispatch-service/internal/domain"
)

// Key under which a computed plan is cached.
// Fingerprint changes whenever the instance contents change.
type PlanKey struct {
	Instance    string
	Algorithm   string
	Fingerprint string
}

func (k PlanKey) String() string {
	return k.Instance + "|" + k.Algorithm + "|" + k.Fingerprint
}

// Contract for storing computed dispatch plans.
type PlanCache interface {
	// Return the cached plan and true, or false when nothing is stored.
	Get(ctx context.Context, key PlanKey) (*domain.DispatchPlan, bool, error)
	// Store plan under key, replacing any previous value.
	Put(ctx context.Context, key PlanKey, plan *domain.DispatchPlan) error
}
