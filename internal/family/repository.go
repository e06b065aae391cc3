// Package family manages the dependents each user registers, scoped to their owner.
package family

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/famsalud/famsalud/backend/api/internal/database"
	"github.com/famsalud/famsalud/backend/api/internal/models"
)

// Repository defines persistence operations for family members.
// GetForUser returns (nil, nil) when the member is absent or belongs to someone else.
type Repository interface {
	Create(ctx context.Context, m *models.FamilyMember) error
	ListByUser(ctx context.Context, userID string) ([]models.FamilyMember, error)
	GetForUser(ctx context.Context, id, userID string) (*models.FamilyMember, error)
	Update(ctx context.Context, m *models.FamilyMember) error
	Delete(ctx context.Context, id string) error
}

// MongoRepository implements Repository using a Mongo collection.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

// EnsureIndexes indexes members by owner and name for the list query.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "fullName", Value: 1}},
	})
	return err
}

func (r *MongoRepository) Create(ctx context.Context, m *models.FamilyMember) error {
	stamp(m)
	_, err := r.col.InsertOne(ctx, m)
	return database.TranslateMongoError(err)
}

func (r *MongoRepository) ListByUser(ctx context.Context, userID string) ([]models.FamilyMember, error) {
	cur, err := r.col.Find(ctx, bson.M{"userId": userID}, options.Find().SetSort(bson.D{{Key: "fullName", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := []models.FamilyMember{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepository) GetForUser(ctx context.Context, id, userID string) (*models.FamilyMember, error) {
	var m models.FamilyMember
	if err := r.col.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *MongoRepository) Update(ctx context.Context, m *models.FamilyMember) error {
	m.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": m.ID}, m)
	if err != nil {
		return database.TranslateMongoError(err)
	}
	if res.MatchedCount == 0 {
		return database.TranslateMongoError(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func stamp(m *models.FamilyMember) {
	now := time.Now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}
