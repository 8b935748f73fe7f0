// internal/domain/exercise.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups exercises by training modality.
type Category string

const (
	CategoryStrength    Category = "strength"
	CategoryCardio      Category = "cardio"
	CategoryFlexibility Category = "flexibility"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryStrength, CategoryCardio, CategoryFlexibility:
		return true
	}
	return false
}

// Exercise is immutable catalog reference data. It is created by catalog
// seeding and only ever read by the workout engine.
type Exercise struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"` // Unique within the catalog
	Category        Category           `bson:"category" json:"category"`
	MuscleGroups    []string           `bson:"muscleGroups" json:"muscleGroups"`                           // e.g. "chest", "legs"
	EquipmentNeeded []string           `bson:"equipmentNeeded,omitempty" json:"equipmentNeeded,omitempty"` // Empty means bodyweight
	DifficultyBase  int                `bson:"difficultyBase" json:"difficultyBase"`                       // 1 (easiest) - 10
	Instructions    string             `bson:"instructions,omitempty" json:"instructions,omitempty"`

	// Key of the demonstration video in object storage, set after a trainer uploads one.
	MediaObjectKey string `bson:"mediaObjectKey,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// HasMuscleGroup reports whether the exercise trains muscle.
func (e *Exercise) HasMuscleGroup(muscle string) bool {
	for _, m := range e.MuscleGroups {
		if m == muscle {
			return true
		}
	}
	return false
}

// SharesMuscleGroup reports whether e and other have at least one muscle group in common.
func (e *Exercise) SharesMuscleGroup(other *Exercise) bool {
	for _, m := range other.MuscleGroups {
		if e.HasMuscleGroup(m) {
			return true
		}
	}
	return false
}
