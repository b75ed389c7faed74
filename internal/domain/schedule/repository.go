package schedule

import (
	"context"
	"time"
)

// Repository defines the operations for persisting and retrieving feeding schedules.
type Repository interface {
	Create(ctx context.Context, s *FeedingSchedule) error
	GetByID(ctx context.Context, id int64) (*FeedingSchedule, error)
	// Update persists the full record; the engine uses it to advance NextDue.
	Update(ctx context.Context, s *FeedingSchedule) error
	// ListDue returns all schedules with NextDue at or before now.
	ListDue(ctx context.Context, now time.Time) ([]*FeedingSchedule, error)
	ListByAnimal(ctx context.Context, animalID int64) ([]*FeedingSchedule, error)
	Delete(ctx context.Context, id int64) error
}
