package notification

import "time"

// Notification is one line in an owner's inbox. The engine creates exactly
// one per fired occurrence and never mutates it afterwards; the read flag
// belongs to whatever surface presents the inbox.
type Notification struct {
	ID        int64
	OwnerID   int64
	Message   string
	IsRead    bool
	CreatedAt time.Time
}
