package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultPerceivedDifficulty is stored until clients collect an RPE value.
const DefaultPerceivedDifficulty = 7

// ProgressEntry logs one completed exercise for progress charts.
type ProgressEntry struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID              primitive.ObjectID `bson:"userId" json:"userId"`
	ExerciseID          primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	WeightUsed          *float64           `bson:"weightUsed,omitempty" json:"weightUsed,omitempty"`
	RepsCompleted       *int               `bson:"repsCompleted,omitempty" json:"repsCompleted,omitempty"`
	DurationSeconds     *int               `bson:"durationSeconds,omitempty" json:"durationSeconds,omitempty"`
	PerceivedDifficulty int                `bson:"perceivedDifficulty" json:"perceivedDifficulty"` // 1 - 10
	Date                time.Time          `bson:"date" json:"date"`
}
