package engine

import (
	"math"

	"alcyxob/adaptive-coach/internal/domain"
)

// ScorePerformance rates a finished workout:
//
//	0.6*completion + 0.3*difficulty/10 + 0.1*quality
//
// Quality starts at 1 and is scaled down by the reps and duration ratios of
// every completed entry against the planned entry at the same position.
// The catalog is accepted for symmetry with the other operations and is not consulted.
func ScorePerformance(w *domain.Workout, _ Catalog) float64 {
	completionRate := w.CompletionRatio()
	difficultyFactor := float64(w.DifficultyScore) / 10

	quality := 1.0
	for i, completed := range w.CompletedExercises {
		if i >= len(w.PlannedExercises) {
			break
		}
		planned := w.PlannedExercises[i]
		if tracked(completed.Reps) && tracked(planned.Reps) {
			quality *= math.Min(1, float64(*completed.Reps)/float64(*planned.Reps))
		}
		if tracked(completed.DurationSeconds) && tracked(planned.DurationSeconds) {
			quality *= math.Min(1, float64(*completed.DurationSeconds)/float64(*planned.DurationSeconds))
		}
	}

	return completionRate*0.6 + difficultyFactor*0.3 + quality*0.1
}
