package ports

import (
	"context"
	"errors"
	"taxi-dispatch-service/internal/domain"
)

// ErrInstanceNotFound is returned when no instance with the requested name exists.
var ErrInstanceNotFound = errors.New("instance not found")

// Short description of a stored instance.
type InstanceSummary struct {
	Name      string
	Speed     float64
	Customers int
	Taxis     int
}

// Port: a boundary for retrieving dispatch instances from a data source.
type InstanceRepository interface {
	// Return a summary of every stored instance, ordered by name.
	ListInstances(ctx context.Context) ([]InstanceSummary, error)
	// Return the instance with the given name or ErrInstanceNotFound.
	GetInstance(ctx context.Context, name string) (*domain.Instance, error)
}
