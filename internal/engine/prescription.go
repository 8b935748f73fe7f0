package engine

import (
	"alcyxob/adaptive-coach/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultRestSeconds = 60

// Prescription is the per-category shape of a generated plan entry.
// It is either StrengthPrescription or TimedPrescription.
type Prescription interface {
	entry(exerciseID primitive.ObjectID) domain.WorkoutExercise
}

// StrengthPrescription is sets x reps, optionally at a weight.
type StrengthPrescription struct {
	Sets   int
	Reps   int
	Weight float64 // 0 means bodyweight
}

func (p StrengthPrescription) entry(id primitive.ObjectID) domain.WorkoutExercise {
	e := domain.WorkoutExercise{
		ExerciseID:  id,
		Sets:        intPtr(p.Sets),
		Reps:        intPtr(p.Reps),
		RestSeconds: intPtr(defaultRestSeconds),
	}
	if p.Weight > 0 {
		e.Weight = floatPtr(p.Weight)
	}
	return e
}

// TimedPrescription holds an exercise for a duration; used for cardio and flexibility.
type TimedPrescription struct {
	DurationSeconds int
}

func (p TimedPrescription) entry(id primitive.ObjectID) domain.WorkoutExercise {
	return domain.WorkoutExercise{
		ExerciseID:      id,
		DurationSeconds: intPtr(p.DurationSeconds),
		RestSeconds:     intPtr(defaultRestSeconds),
	}
}
