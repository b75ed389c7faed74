package animal

import (
	"database/sql"
	"time"
)

// Animal is one animal in an owner's care. Ownership of everything the
// engine touches (schedules, notifications) is derived through this record
// rather than stored redundantly next to it.
type Animal struct {
	ID        int64
	OwnerID   int64
	Name      string
	Species   string
	Age       int
	WeightLb  int
	WeightOz  int
	LastFed   sql.NullTime // set when a feeding is recorded, not when one is due
	CreatedAt time.Time
	UpdatedAt time.Time
}
