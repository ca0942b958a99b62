package ports

import "context"

// ActivityLog records what happened on the floor for later manager review.
// Appending is best-effort: the coordination service reports failures but
// never fails a mutation because the log could not be written.
type ActivityLog interface {
	Append(ctx context.Context, actionType, description string) error
}
