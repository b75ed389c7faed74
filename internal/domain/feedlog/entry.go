package feedlog

import (
	"database/sql"
	"time"
)

// Type classifies a care-log entry.
type Type string

const (
	TypeFeeding      Type = "feeding"
	TypeWeightUpdate Type = "weight_update"
	TypeNote         Type = "note"
	TypeOther        Type = "other"
)

// Entry is one care-log line for an animal. Feeding entries keep the food
// reference and the amount in the stock's own unit for later reporting.
type Entry struct {
	ID          int64
	OwnerID     int64
	AnimalID    int64
	FoodID      sql.NullInt64
	Type        Type
	Description string
	AmountFed   sql.NullFloat64
	Unit        string
	CreatedAt   time.Time
}
