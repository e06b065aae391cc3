// Package eps serves the catalogue of health-insurance providers (EPS).
package eps

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/famsalud/famsalud/backend/api/internal/database"
	"github.com/famsalud/famsalud/backend/api/internal/models"
)

// Repository defines persistence operations for EPS providers.
// GetByID returns (nil, nil) when absent.
type Repository interface {
	ListActive(ctx context.Context) ([]models.EpsProvider, error)
	GetByID(ctx context.Context, id string) (*models.EpsProvider, error)
	GetMany(ctx context.Context, ids []string) (map[string]models.EpsProvider, error)
	// UpsertByCode inserts p or, when the code exists, updates its name and parser key.
	UpsertByCode(ctx context.Context, p *models.EpsProvider) (created bool, err error)
	Ping(ctx context.Context) error
}

// MongoRepository implements Repository using a Mongo collection.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

// EnsureIndexes creates the unique code index.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *MongoRepository) ListActive(ctx context.Context) ([]models.EpsProvider, error) {
	cur, err := r.col.Find(ctx, bson.M{"isActive": true}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := []models.EpsProvider{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*models.EpsProvider, error) {
	var p models.EpsProvider
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *MongoRepository) GetMany(ctx context.Context, ids []string) (map[string]models.EpsProvider, error) {
	out := map[string]models.EpsProvider{}
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var list []models.EpsProvider
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	for _, p := range list {
		out[p.ID] = p
	}
	return out, nil
}

func (r *MongoRepository) UpsertByCode(ctx context.Context, p *models.EpsProvider) (bool, error) {
	now := time.Now().UTC()
	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}
	update := bson.M{
		"$set": bson.M{"name": p.Name, "parserKey": p.ParserKey, "updatedAt": now},
		"$setOnInsert": bson.M{
			"_id":       id,
			"isActive":  true,
			"createdAt": now,
		},
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"code": p.Code}, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, database.TranslateMongoError(err)
	}
	return res.UpsertedCount > 0, nil
}

func (r *MongoRepository) Ping(ctx context.Context) error {
	return r.col.Database().Client().Ping(ctx, nil)
}
