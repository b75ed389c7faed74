package feedlog

import "context"

// Repository defines the operations for persisting and retrieving care-log entries.
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	ListByAnimal(ctx context.Context, animalID int64) ([]*Entry, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*Entry, error)
}
