package owner

import (
	"context"
)

// Repository defines the operations for persisting and retrieving Owner entities.
type Repository interface {
	Create(ctx context.Context, o *Owner) error
	GetByID(ctx context.Context, id int64) (*Owner, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*Owner, error)
	Update(ctx context.Context, o *Owner) error
	ListActive(ctx context.Context) ([]*Owner, error)
}
