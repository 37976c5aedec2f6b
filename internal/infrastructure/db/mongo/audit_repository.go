package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
	"github.com/shivaccounts/accounts-api/internal/core/ports"
)

const authEventsCollection = "auth_events"

// AuditRepository appends authentication outcomes to the auth_events collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(authEventsCollection)}
}

var _ ports.AuditRepository = (*AuditRepository)(nil)

// EnsureIndexes creates the lookup indexes used when investigating a login key
// or a user.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "subject_key", Value: 1}, {Key: "occurred_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "occurred_at", Value: -1}},
			Options: options.Index().SetSparse(true)},
	})
	if err != nil {
		return fmt.Errorf("create auth_events indexes: %w", err)
	}
	return nil
}

func (r *AuditRepository) InsertAuthEvent(ctx context.Context, e domain.AuthEvent) error {
	_, err := r.coll.InsertOne(ctx, authEventDocument(e, time.Now().UTC()))
	return err
}

func authEventDocument(e domain.AuthEvent, recordedAt time.Time) bson.M {
	doc := bson.M{
		"kind":        string(e.Kind),
		"subject_key": e.SubjectKey,
		"occurred_at": e.OccurredAt.UTC(),
		"recorded_at": recordedAt,
	}
	if e.UserID != "" {
		doc["user_id"] = e.UserID
	}
	if e.RequestID != "" {
		doc["request_id"] = e.RequestID
	}
	return doc
}
