package cache

import (
	"encoding/json"
	"fmt"
	"taxi-dispatch-service/internal/domain"
)

func encodePlan(plan *domain.DispatchPlan) ([]byte, error) {
	if plan == nil {
		return nil, fmt.Errorf("encode plan: plan is nil")
	}
	data, err := json.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}
	return data, nil
}

func decodePlan(data []byte) (*domain.DispatchPlan, error) {
	var plan domain.DispatchPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	return &plan, nil
}
