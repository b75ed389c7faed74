package owner

import (
	"database/sql"
	"time"
)

// Owner is a person who keeps animals in the system. Owner rows are
// written by the surrounding record-keeping application; the engine only
// reads them to address notifications and, when a Telegram chat is
// linked, to push them.
type Owner struct {
	ID         int64
	Name       string
	TelegramID sql.NullInt64 // set once the owner links a chat
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
