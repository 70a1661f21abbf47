package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anthonycdp/autovision-project-sub001/internal/core/domain"
)

const activityCollection = "activity_log"

// ActivityRepository implements ports.ActivityRepository using MongoDB.
// The collection is append-only; entries are never updated or removed.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activityCollection)}
}

type mongoActivity struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ActorID      string             `bson:"actor_id"`
	Action       string             `bson:"action"`
	ResourceType string             `bson:"resource_type"`
	ResourceID   string             `bson:"resource_id,omitempty"`
	Detail       map[string]any     `bson:"detail,omitempty"`
	IP           string             `bson:"ip,omitempty"`
	UserAgent    string             `bson:"user_agent,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (ma mongoActivity) toDomain() *domain.ActivityEntry {
	return &domain.ActivityEntry{
		ID:           ma.ID.Hex(),
		ActorID:      ma.ActorID,
		Action:       ma.Action,
		ResourceType: ma.ResourceType,
		ResourceID:   ma.ResourceID,
		Detail:       ma.Detail,
		IP:           ma.IP,
		UserAgent:    ma.UserAgent,
		CreatedAt:    ma.CreatedAt.UTC(),
	}
}

func (r *ActivityRepository) Insert(ctx context.Context, entry *domain.ActivityEntry) error {
	doc := mongoActivity{
		ActorID:      entry.ActorID,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		Detail:       entry.Detail,
		IP:           entry.IP,
		UserAgent:    entry.UserAgent,
		CreatedAt:    entry.CreatedAt,
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity entry: %w", err)
	}
	return nil
}

func (r *ActivityRepository) ListByUser(ctx context.Context, actorID string, limit int) ([]*domain.ActivityEntry, error) {
	return r.list(ctx, bson.M{"actor_id": actorID}, limit)
}

func (r *ActivityRepository) ListByResource(ctx context.Context, resourceID string) ([]*domain.ActivityEntry, error) {
	return r.list(ctx, bson.M{"resource_id": resourceID}, 0)
}

func (r *ActivityRepository) list(ctx context.Context, query bson.M, limit int) ([]*domain.ActivityEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list activity entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*domain.ActivityEntry
	for cursor.Next(ctx) {
		var ma mongoActivity
		if err := cursor.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode activity entry: %w", err)
		}
		entries = append(entries, ma.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list activity entries: %w", err)
	}

	return entries, nil
}
