package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdaptationType names a kind of change to future workouts.
type AdaptationType string

const (
	AdaptIncreaseDifficulty AdaptationType = "increase_difficulty"
	AdaptDecreaseDifficulty AdaptationType = "decrease_difficulty"
	AdaptChangeExercise     AdaptationType = "change_exercise"
	AdaptAddRest            AdaptationType = "add_rest"
)

// Valid reports whether t is one of the four known adaptation kinds.
func (t AdaptationType) Valid() bool {
	switch t {
	case AdaptIncreaseDifficulty, AdaptDecreaseDifficulty, AdaptChangeExercise, AdaptAddRest:
		return true
	}
	return false
}

// AdaptationProposal is a suggested, not yet applied, change.
type AdaptationProposal struct {
	Type   AdaptationType `bson:"type" json:"type"`
	Reason string         `bson:"reason" json:"reason"`
	// Exercise to replace, only set for change_exercise.
	ExerciseID    primitive.ObjectID `bson:"exerciseId,omitempty" json:"exerciseId,omitempty"`
	PreviousValue map[string]any     `bson:"previousValue" json:"previousValue"`
	NewValue      map[string]any     `bson:"newValue" json:"newValue"`
}

// AdaptationRecord is an entry of the append-only adaptation history.
type AdaptationRecord struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID             primitive.ObjectID `bson:"userId" json:"userId"`
	WorkoutID          primitive.ObjectID `bson:"workoutId,omitempty" json:"workoutId,omitempty"`
	AdaptationProposal `bson:",inline"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
}
