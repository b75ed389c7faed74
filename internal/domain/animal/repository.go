package animal

import (
	"context"
	"time"
)

// Repository defines the operations for persisting and retrieving Animal entities.
type Repository interface {
	Create(ctx context.Context, a *Animal) error
	GetByID(ctx context.Context, id int64) (*Animal, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*Animal, error)
	Update(ctx context.Context, a *Animal) error
	// SetLastFed records the most recent feeding moment for the animal.
	SetLastFed(ctx context.Context, id int64, fedAt time.Time) error
	Delete(ctx context.Context, id int64) error
}
