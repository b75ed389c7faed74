package notification

import "context"

// Repository defines the notification sink and the inbox reads built on it.
type Repository interface {
	// Create appends one notification to the owner's inbox.
	Create(ctx context.Context, n *Notification) error
	ListUnreadByOwner(ctx context.Context, ownerID int64) ([]*Notification, error)
	MarkRead(ctx context.Context, id int64) error
	CountUnreadByOwner(ctx context.Context, ownerID int64) (int, error)
}
