package engine

import (
	"fmt"
	"math"

	"alcyxob/adaptive-coach/internal/domain"
)

const (
	maxDifficulty = 10
	minDifficulty = 1
	maxSets       = 4
	minReps       = 5
	minDuration   = 15
)

// ApplyAdaptation returns a copy of w with p applied. w itself is not modified.
func (e *Engine) ApplyAdaptation(p domain.AdaptationProposal, catalog Catalog, w *domain.Workout) domain.Workout {
	adapted := w.Clone()

	switch p.Type {
	case domain.AdaptIncreaseDifficulty:
		for i := range adapted.PlannedExercises {
			increaseDifficulty(&adapted.PlannedExercises[i])
		}
		adapted.DifficultyScore = min(maxDifficulty, adapted.DifficultyScore+1)

	case domain.AdaptDecreaseDifficulty:
		for i := range adapted.PlannedExercises {
			decreaseDifficulty(&adapted.PlannedExercises[i])
		}
		adapted.DifficultyScore = max(minDifficulty, adapted.DifficultyScore-1)

	case domain.AdaptChangeExercise:
		for i := range adapted.PlannedExercises {
			if adapted.PlannedExercises[i].ExerciseID == p.ExerciseID {
				e.replaceWithAlternative(&adapted.PlannedExercises[i], catalog)
			}
		}

	case domain.AdaptAddRest:
		// Rest days belong to scheduling; until then the session loses its last exercise.
		if n := len(adapted.PlannedExercises); n > 0 {
			adapted.PlannedExercises = adapted.PlannedExercises[:n-1]
		}

	default:
		panic(fmt.Sprintf("engine: unknown adaptation type %q", p.Type))
	}

	return adapted
}

func increaseDifficulty(ex *domain.WorkoutExercise) {
	if tracked(ex.Reps) {
		*ex.Reps = *ex.Reps * 110 / 100
	}
	if trackedFloat(ex.Weight) {
		*ex.Weight = scaleFloor(*ex.Weight, 1.05)
	}
	if tracked(ex.DurationSeconds) {
		*ex.DurationSeconds = *ex.DurationSeconds * 110 / 100
	}
	if tracked(ex.Sets) && *ex.Sets < maxSets {
		*ex.Sets++
	}
}

func decreaseDifficulty(ex *domain.WorkoutExercise) {
	if tracked(ex.Reps) && *ex.Reps > minReps {
		*ex.Reps = max(minReps, *ex.Reps*90/100)
	}
	if trackedFloat(ex.Weight) {
		*ex.Weight = scaleFloor(*ex.Weight, 0.95)
	}
	if tracked(ex.DurationSeconds) && *ex.DurationSeconds > minDuration {
		*ex.DurationSeconds = max(minDuration, *ex.DurationSeconds*90/100)
	}
	if tracked(ex.Sets) && *ex.Sets > 1 {
		*ex.Sets--
	}
}

// replaceWithAlternative swaps the exercise for a random catalog entry of the
// same category that shares a muscle group and is within two difficulty points.
// The entry is left alone when the exercise is unknown or nothing qualifies.
func (e *Engine) replaceWithAlternative(ex *domain.WorkoutExercise, catalog Catalog) {
	original, ok := catalog.Lookup(ex.ExerciseID)
	if !ok {
		return
	}

	var alternatives []*domain.Exercise
	for i := range catalog.exercises {
		candidate := &catalog.exercises[i]
		if candidate.ID == original.ID ||
			candidate.Category != original.Category ||
			!candidate.SharesMuscleGroup(original) ||
			abs(candidate.DifficultyBase-original.DifficultyBase) > 2 {
			continue
		}
		alternatives = append(alternatives, candidate)
	}
	if len(alternatives) == 0 {
		return
	}

	ex.ExerciseID = alternatives[e.rnd.Intn(len(alternatives))].ID
}

// scaleFloor returns floor(v*factor), tolerating binary rounding just below an integer.
func scaleFloor(v, factor float64) float64 {
	return math.Floor(v*factor + 1e-9)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
