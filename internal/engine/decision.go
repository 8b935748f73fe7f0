package engine

import (
	"fmt"

	"alcyxob/adaptive-coach/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reasons attached to proposals.
const (
	ReasonIncreaseDifficulty = "3+ consecutive workouts with 90%+ completion rate"
	ReasonDecreaseDifficulty = "2+ consecutive workouts with <70% completion rate"
	ReasonAddRest            = "High consistency but low completion suggests overtraining"
	reasonChangeExercise     = "Exercise %s failed 3 times in a row"
)

const (
	highCompletion  = 0.90
	lowCompletion   = 0.70
	restCompletion  = 0.60
	restConsistency = 0.80
	// Completed reps or duration below this share of the plan count as a failure.
	failureShare = 0.7
	// Failures needed before an exercise is swapped.
	failureThreshold = 3
)

// DecideAdaptations applies the threshold rules to metrics. Every rule that
// matches contributes, in the order: increase, decrease, change exercise, add rest.
func DecideAdaptations(m PerformanceMetrics) []domain.AdaptationProposal {
	var proposals []domain.AdaptationProposal

	// Both the window average and each of the last three workouts must clear the bar.
	if m.CompletionRate >= highCompletion && len(m.RecentWorkouts) >= 3 &&
		tailAll(m.RecentWorkouts, 3, func(r float64) bool { return r >= highCompletion }) {
		proposals = append(proposals, domain.AdaptationProposal{
			Type:          domain.AdaptIncreaseDifficulty,
			Reason:        ReasonIncreaseDifficulty,
			PreviousValue: map[string]any{"currentLevel": "previous"},
			NewValue:      map[string]any{"difficultyIncrease": 1},
		})
	}

	if m.CompletionRate < lowCompletion && len(m.RecentWorkouts) >= 2 &&
		tailAll(m.RecentWorkouts, 2, func(r float64) bool { return r < lowCompletion }) {
		proposals = append(proposals, domain.AdaptationProposal{
			Type:          domain.AdaptDecreaseDifficulty,
			Reason:        ReasonDecreaseDifficulty,
			PreviousValue: map[string]any{"currentLevel": "previous"},
			NewValue:      map[string]any{"difficultyDecrease": 1},
		})
	}

	for _, id := range FindConsistentlyFailedExercises(m.RecentWorkouts) {
		proposals = append(proposals, domain.AdaptationProposal{
			Type:          domain.AdaptChangeExercise,
			Reason:        fmt.Sprintf(reasonChangeExercise, id.Hex()),
			ExerciseID:    id,
			PreviousValue: map[string]any{"originalExercise": id.Hex()},
			NewValue:      map[string]any{"replaceExercise": id.Hex()},
		})
	}

	if m.CompletionRate < restCompletion && m.ConsistencyScore > restConsistency {
		proposals = append(proposals, domain.AdaptationProposal{
			Type:          domain.AdaptAddRest,
			Reason:        ReasonAddRest,
			PreviousValue: map[string]any{"currentSchedule": "daily"},
			NewValue:      map[string]any{"addRestDay": true},
		})
	}

	return proposals
}

func tailAll(workouts []domain.Workout, n int, ok func(ratio float64) bool) bool {
	for i := len(workouts) - n; i < len(workouts); i++ {
		if !ok(workouts[i].CompletionRatio()) {
			return false
		}
	}
	return true
}

// FindConsistentlyFailedExercises returns the exercises that failed in at
// least three of the given workouts, in order of first appearance.
//
// A planned exercise fails when no completed entry has its id, or when the
// first such entry falls below 70% of the planned reps or duration.
func FindConsistentlyFailedExercises(workouts []domain.Workout) []primitive.ObjectID {
	failures := make(map[primitive.ObjectID]int)
	var order []primitive.ObjectID

	for i := range workouts {
		failedHere := make(map[primitive.ObjectID]bool)
		for _, planned := range workouts[i].PlannedExercises {
			if failedHere[planned.ExerciseID] || !failed(planned, workouts[i].CompletedExercises) {
				continue
			}
			failedHere[planned.ExerciseID] = true
			if _, seen := failures[planned.ExerciseID]; !seen {
				order = append(order, planned.ExerciseID)
			}
			failures[planned.ExerciseID]++
		}
	}

	var result []primitive.ObjectID
	for _, id := range order {
		if failures[id] >= failureThreshold {
			result = append(result, id)
		}
	}
	return result
}

func failed(planned domain.WorkoutExercise, completed []domain.WorkoutExercise) bool {
	var done *domain.WorkoutExercise
	for i := range completed {
		if completed[i].ExerciseID == planned.ExerciseID {
			done = &completed[i]
			break
		}
	}
	if done == nil {
		return true
	}
	if tracked(planned.Reps) && tracked(done.Reps) &&
		float64(*done.Reps) < float64(*planned.Reps)*failureShare {
		return true
	}
	if tracked(planned.DurationSeconds) && tracked(done.DurationSeconds) &&
		float64(*done.DurationSeconds) < float64(*planned.DurationSeconds)*failureShare {
		return true
	}
	return false
}
