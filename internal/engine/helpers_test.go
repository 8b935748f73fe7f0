package engine

import (
	"time"

	"alcyxob/adaptive-coach/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// firstRand always picks the first option.
type firstRand struct{}

func (firstRand) Intn(int) int { return 0 }

var day0 = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

func exercise(name string, c domain.Category, difficulty int, muscles ...string) domain.Exercise {
	return domain.Exercise{
		ID:             primitive.NewObjectID(),
		Name:           name,
		Category:       c,
		MuscleGroups:   muscles,
		DifficultyBase: difficulty,
	}
}

// workoutWithRatio returns a workout on day0+offset days where completed of
// planned entries were performed.
func workoutWithRatio(offset, planned, completed int) domain.Workout {
	w := domain.Workout{
		ID:              primitive.NewObjectID(),
		Date:            day0.AddDate(0, 0, offset),
		DifficultyScore: 5,
	}
	for i := 0; i < planned; i++ {
		entry := domain.WorkoutExercise{ExerciseID: primitive.NewObjectID()}
		w.PlannedExercises = append(w.PlannedExercises, entry)
		if i < completed {
			w.CompletedExercises = append(w.CompletedExercises, entry)
		}
	}
	return w
}
