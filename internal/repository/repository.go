package repository

import (
	"alcyxob/adaptive-coach/internal/domain"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDuplicate    = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository stores accounts and their training profiles.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
}

// ExerciseRepository is the exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	ListAll(ctx context.Context) ([]domain.Exercise, error)
	// UpsertByName inserts the exercise or replaces the catalog entry with the same name.
	UpsertByName(ctx context.Context, exercise *domain.Exercise) (created bool, err error)
	SetMediaObjectKey(ctx context.Context, id primitive.ObjectID, objectKey string) error
}

// WorkoutRepository stores generated and completed workouts.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	// GetByUserAndDate returns the most recently created workout of the user on that day.
	GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, day time.Time) (*domain.Workout, error)
	// ListByUserSince returns the user's workouts dated on or after since, oldest first.
	ListByUserSince(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]domain.Workout, error)
	Update(ctx context.Context, workout *domain.Workout) error
}

// AdaptationRepository is the append-only adaptation history.
type AdaptationRepository interface {
	Create(ctx context.Context, record *domain.AdaptationRecord) (primitive.ObjectID, error)
	// ListByUser returns up to limit records, newest first.
	ListByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]domain.AdaptationRecord, error)
}

// ProgressFilter narrows ProgressRepository.List.
type ProgressFilter struct {
	UserID     primitive.ObjectID
	ExerciseID *primitive.ObjectID // nil means every exercise
	Since      time.Time
}

// ProgressRepository stores per-exercise progress entries.
type ProgressRepository interface {
	Create(ctx context.Context, entry *domain.ProgressEntry) (primitive.ObjectID, error)
	// List returns matching entries, oldest first.
	List(ctx context.Context, filter ProgressFilter) ([]domain.ProgressEntry, error)
}
