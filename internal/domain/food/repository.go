package food

import "context"

// Repository defines the operations for persisting and retrieving Food stocks.
type Repository interface {
	Create(ctx context.Context, f *Food) error
	GetByID(ctx context.Context, id int64) (*Food, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*Food, error)
	Update(ctx context.Context, f *Food) error
	Delete(ctx context.Context, id int64) error
}
