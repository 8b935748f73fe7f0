// internal/repository/mongo/workout_repo.go
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

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a new workout. An id already set by the generator is kept.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if workout.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("workout requires userId")
	}
	if workout.ID == primitive.NilObjectID {
		workout.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	workout.Date = domain.Day(workout.Date)
	workout.CreatedAt = now
	workout.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, workout)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedObjectID(result)
}

// GetByID retrieves a single workout by its ID.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByUserAndDate returns the newest workout the user has on day.
func (r *mongoWorkoutRepository) GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, day time.Time) (*domain.Workout, error) {
	filter := bson.M{"userId": userID, "date": domain.Day(day)}
	return r.findOne(ctx, filter, options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *mongoWorkoutRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.collection.FindOne(ctx, filter, opts...).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// ListByUserSince returns the user's workouts from since onwards, oldest first.
func (r *mongoWorkoutRepository) ListByUserSince(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]domain.Workout, error) {
	filter := bson.M{
		"userId": userID,
		"date":   bson.M{"$gte": domain.Day(since)},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	workouts := []domain.Workout{}
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// Update stores the mutable parts of a workout: plan, completions and scores.
// Owner and date never change.
func (r *mongoWorkoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	if workout.ID == primitive.NilObjectID {
		return errors.New("workout ID is required for update")
	}

	workout.UpdatedAt = time.Now().UTC()
	updateDoc := bson.M{
		"$set": bson.M{
			"plannedExercises":   workout.PlannedExercises,
			"completedExercises": workout.CompletedExercises,
			"difficultyScore":    workout.DifficultyScore,
			"completionRate":     workout.CompletionRate,
			"durationMinutes":    workout.DurationMinutes,
			"updatedAt":          workout.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": workout.ID, "userId": workout.UserID}, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func ensureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Today's workout and history windows
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
