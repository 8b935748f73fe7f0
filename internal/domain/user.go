package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

const (
	RoleTrainer Role = "trainer" // Curates the exercise catalog
	RoleClient  Role = "client"  // Trains with generated workouts
)

// FitnessLevel drives the difficulty band used when generating workouts.
type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

// Valid reports whether l is one of the known levels.
func (l FitnessLevel) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Well-known goals. Goals are free-form strings; these are the ones the
// generator reacts to.
const (
	GoalStrength   = "strength"
	GoalMuscleGain = "muscle_gain"
	GoalCardio     = "cardio"
	GoalWeightLoss = "weight_loss"
)

// User represents an account together with the training profile used by the engine.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`

	// --- Training profile ---
	FitnessLevel FitnessLevel `bson:"fitnessLevel,omitempty" json:"fitnessLevel,omitempty"`
	Goals        []string     `bson:"goals,omitempty" json:"goals,omitempty"`
	Equipment    []string     `bson:"equipment,omitempty" json:"equipment,omitempty"` // e.g. "dumbbells", "pull_up_bar"

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}

func (u *User) IsClient() bool {
	return u.Role == RoleClient
}

// HasGoal reports whether goal is one of the user's goals.
func (u *User) HasGoal(goal string) bool {
	for _, g := range u.Goals {
		if g == goal {
			return true
		}
	}
	return false
}
