package mongo

import (
	"alcyxob/adaptive-coach/internal/domain"
	"alcyxob/adaptive-coach/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const adaptationCollectionName = "adaptation_history"

// mongoAdaptationRepository implements repository.AdaptationRepository.
// Records are only ever inserted.
type mongoAdaptationRepository struct {
	collection *mongo.Collection
}

func NewMongoAdaptationRepository(db *mongo.Database) repository.AdaptationRepository {
	return &mongoAdaptationRepository{
		collection: db.Collection(adaptationCollectionName),
	}
}

func (r *mongoAdaptationRepository) Create(ctx context.Context, record *domain.AdaptationRecord) (primitive.ObjectID, error) {
	if record.UserID == primitive.NilObjectID || record.Type == "" {
		return primitive.NilObjectID, errors.New("adaptation record requires userId and type")
	}
	record.ID = primitive.NewObjectID()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedObjectID(result)
}

func (r *mongoAdaptationRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]domain.AdaptationRecord, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []domain.AdaptationRecord{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func ensureAdaptationIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index(),
	})
	return err
}
