package mongo

import (
	"alcyxob/adaptive-coach/internal/domain"
	"alcyxob/adaptive-coach/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const progressCollectionName = "user_progress"

type mongoProgressRepository struct {
	collection *mongo.Collection
}

// NewMongoProgressRepository creates the progress log repository.
func NewMongoProgressRepository(db *mongo.Database) repository.ProgressRepository {
	return &mongoProgressRepository{
		collection: db.Collection(progressCollectionName),
	}
}

func (r *mongoProgressRepository) Create(ctx context.Context, entry *domain.ProgressEntry) (primitive.ObjectID, error) {
	if entry.UserID == primitive.NilObjectID || entry.ExerciseID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("progress entry requires userId and exerciseId")
	}
	entry.ID = primitive.NewObjectID()
	entry.Date = domain.Day(entry.Date)

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedObjectID(result)
}

func (r *mongoProgressRepository) List(ctx context.Context, f repository.ProgressFilter) ([]domain.ProgressEntry, error) {
	filter := bson.M{
		"userId": f.UserID,
		"date":   bson.M{"$gte": domain.Day(f.Since)},
	}
	if f.ExerciseID != nil {
		filter["exerciseId"] = *f.ExerciseID
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []domain.ProgressEntry{}
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func ensureProgressIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "exerciseId", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index(),
	})
	return err
}
