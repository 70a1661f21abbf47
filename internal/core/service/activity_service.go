package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/anthonycdp/autovision-project-sub001/internal/core/domain"
	"github.com/anthonycdp/autovision-project-sub001/internal/core/ports"
)

// EntrySink is the interface the logger uses to hand entries off for
// asynchronous persistence.
type EntrySink interface {
	Enqueue(entry *domain.ActivityEntry)
}

// ActivityService is the audit trail. Writes are fire-and-forget: entries
// are enqueued onto a worker pool and any persistence failure is absorbed
// there, so an audit failure never blocks or fails the primary operation.
type ActivityService struct {
	sink EntrySink
	repo ports.ActivityRepository
	log  zerolog.Logger
}

func NewActivityService(sink EntrySink, repo ports.ActivityRepository, log zerolog.Logger) *ActivityService {
	return &ActivityService{sink: sink, repo: repo, log: log}
}

// Record appends one immutable entry to the trail.
func (s *ActivityService) Record(_ context.Context, in ports.ActivityInput) {
	s.sink.Enqueue(&domain.ActivityEntry{
		ActorID:      in.ActorID,
		Action:       in.Action,
		ResourceType: in.ResourceType,
		ResourceID:   in.ResourceID,
		Detail:       in.Detail,
		IP:           in.Meta.IP,
		UserAgent:    in.Meta.UserAgent,
		CreatedAt:    time.Now().UTC(),
	})
}

// RecordFieldChange appends an entry carrying a before/after diff.
func (s *ActivityService) RecordFieldChange(ctx context.Context, resourceID, actorID, action string, changes []domain.FieldChange, meta ports.RequestMeta) {
	if len(changes) == 0 {
		return
	}
	s.Record(ctx, ports.ActivityInput{
		ActorID:      actorID,
		Action:       action,
		ResourceType: domain.ResourceVehicle,
		ResourceID:   resourceID,
		Detail:       map[string]any{"changes": changes},
		Meta:         meta,
	})
}

func (s *ActivityService) ListByUser(ctx context.Context, actorID string, limit int) ([]*domain.ActivityEntry, error) {
	return s.repo.ListByUser(ctx, actorID, limit)
}

func (s *ActivityService) ListByResource(ctx context.Context, resourceID string) ([]*domain.ActivityEntry, error) {
	return s.repo.ListByResource(ctx, resourceID)
}
