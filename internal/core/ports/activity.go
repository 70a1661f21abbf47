package ports

import (
	"context"

	"github.com/anthonycdp/autovision-project-sub001/internal/core/domain"
)

// ActivityInput is one audit-trail record handed to the logger.
type ActivityInput struct {
	ActorID      string
	Action       string
	ResourceType string
	ResourceID   string
	Detail       map[string]any
	Meta         RequestMeta
}

// ActivityLogger is the write side of the audit trail. Both methods are
// fire-and-forget by shape: they return nothing, and persistence failures
// are absorbed internally so an audit failure never blocks the primary
// operation.
type ActivityLogger interface {
	Record(ctx context.Context, in ActivityInput)
	RecordFieldChange(ctx context.Context, resourceID, actorID, action string, changes []domain.FieldChange, meta RequestMeta)
}

// ActivityReader is the read side of the audit trail. Results are ordered
// newest-first; pagination is a plain limit.
type ActivityReader interface {
	ListByUser(ctx context.Context, actorID string, limit int) ([]*domain.ActivityEntry, error)
	ListByResource(ctx context.Context, resourceID string) ([]*domain.ActivityEntry, error)
}

// ActivityRepository defines persistence for activity entries.
type ActivityRepository interface {
	Insert(ctx context.Context, entry *domain.ActivityEntry) error
	ListByUser(ctx context.Context, actorID string, limit int) ([]*domain.ActivityEntry, error)
	ListByResource(ctx context.Context, resourceID string) ([]*domain.ActivityEntry, error)
}
