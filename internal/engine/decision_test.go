package engine

import (
	"testing"

	"alcyxob/adaptive-coach/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func proposalTypes(proposals []domain.AdaptationProposal) []domain.AdaptationType {
	var types []domain.AdaptationType
	for _, p := range proposals {
		types = append(types, p.Type)
	}
	return types
}

func metricsFor(workouts ...domain.Workout) PerformanceMetrics {
	return AnalyzePattern(workouts, Catalog{}, &domain.User{})
}

func TestDecideAdaptations_NoData(t *testing.T) {
	assert.Empty(t, DecideAdaptations(metricsFor()))
}

func TestDecideAdaptations_IncreaseDifficulty(t *testing.T) {
	m := metricsFor(
		workoutWithRatio(0, 4, 4),
		workoutWithRatio(2, 4, 4),
		workoutWithRatio(5, 10, 9),
	)

	proposals := DecideAdaptations(m)
	require.Len(t, proposals, 1)
	assert.Equal(t, domain.AdaptIncreaseDifficulty, proposals[0].Type)
	assert.Equal(t, ReasonIncreaseDifficulty, proposals[0].Reason)
	assert.Equal(t, 1, proposals[0].NewValue["difficultyIncrease"])
}

func TestDecideAdaptations_IncreaseNeedsThreeWorkouts(t *testing.T) {
	m := metricsFor(workoutWithRatio(0, 2, 2), workoutWithRatio(1, 2, 2))
	assert.NotContains(t, proposalTypes(DecideAdaptations(m)), domain.AdaptIncreaseDifficulty)
}

func TestDecideAdaptations_OneWeakWorkoutInTailSuppressesIncrease(t *testing.T) {
	m := metricsFor(
		workoutWithRatio(0, 4, 4),
		workoutWithRatio(1, 4, 4),
		workoutWithRatio(2, 4, 4),
		workoutWithRatio(3, 4, 4),
		workoutWithRatio(4, 100, 89),
	)
	require.GreaterOrEqual(t, m.CompletionRate, 0.9)

	assert.NotContains(t, proposalTypes(DecideAdaptations(m)), domain.AdaptIncreaseDifficulty)
}

func TestDecideAdaptations_TailIsMostRecentByDate(t *testing.T) {
	// The weak workout is listed last but happened first.
	m := metricsFor(
		workoutWithRatio(1, 4, 4),
		workoutWithRatio(2, 4, 4),
		workoutWithRatio(3, 4, 4),
		workoutWithRatio(4, 4, 4),
		workoutWithRatio(0, 100, 89),
	)
	assert.Contains(t, proposalTypes(DecideAdaptations(m)), domain.AdaptIncreaseDifficulty)
}

func TestDecideAdaptations_DecreaseAndRest(t *testing.T) {
	// Two evenly spaced half-finished workouts: low completion, perfect consistency.
	m := metricsFor(workoutWithRatio(0, 4, 2), workoutWithRatio(1, 4, 2))

	proposals := DecideAdaptations(m)
	assert.Equal(t,
		[]domain.AdaptationType{domain.AdaptDecreaseDifficulty, domain.AdaptAddRest},
		proposalTypes(proposals),
	)
	assert.Equal(t, ReasonDecreaseDifficulty, proposals[0].Reason)
	assert.Equal(t, ReasonAddRest, proposals[1].Reason)
}

func TestDecideAdaptations_DecreaseNeedsBothTailWorkoutsLow(t *testing.T) {
	m := metricsFor(
		workoutWithRatio(0, 4, 0),
		workoutWithRatio(3, 4, 0),
		workoutWithRatio(4, 10, 8),
	)
	require.Less(t, m.CompletionRate, 0.7)

	assert.NotContains(t, proposalTypes(DecideAdaptations(m)), domain.AdaptDecreaseDifficulty)
}

func TestDecideAdaptations_NoRestWhenIrregular(t *testing.T) {
	m := metricsFor(
		workoutWithRatio(0, 4, 1),
		workoutWithRatio(1, 4, 1),
		workoutWithRatio(12, 4, 1),
	)
	require.LessOrEqual(t, m.ConsistencyScore, 0.8)

	assert.NotContains(t, proposalTypes(DecideAdaptations(m)), domain.AdaptAddRest)
}

func TestDecideAdaptations_ChangeExercise(t *testing.T) {
	burpee := primitive.NewObjectID()
	var workouts []domain.Workout
	for i := 0; i < 3; i++ {
		w := workoutWithRatio(i, 3, 3)
		w.PlannedExercises = append(w.PlannedExercises, domain.WorkoutExercise{ExerciseID: burpee})
		workouts = append(workouts, w)
	}

	var changes []domain.AdaptationProposal
	for _, p := range DecideAdaptations(metricsFor(workouts...)) {
		if p.Type == domain.AdaptChangeExercise {
			changes = append(changes, p)
		}
	}
	require.Len(t, changes, 1)
	assert.Equal(t, burpee, changes[0].ExerciseID)
	assert.Equal(t, "Exercise "+burpee.Hex()+" failed 3 times in a row", changes[0].Reason)
	assert.Equal(t, burpee.Hex(), changes[0].NewValue["replaceExercise"])
}

func TestFindConsistentlyFailedExercises(t *testing.T) {
	x := primitive.NewObjectID()
	planned := domain.WorkoutExercise{ExerciseID: x, Sets: intPtr(3), Reps: intPtr(10)}

	never := func(offset int) domain.Workout {
		return domain.Workout{
			Date:             day0.AddDate(0, 0, offset),
			PlannedExercises: []domain.WorkoutExercise{planned},
		}
	}

	t.Run("never completed", func(t *testing.T) {
		got := FindConsistentlyFailedExercises([]domain.Workout{never(0), never(1), never(2)})
		assert.Equal(t, []primitive.ObjectID{x}, got)
	})

	t.Run("completed once with enough reps", func(t *testing.T) {
		done := never(2)
		done.CompletedExercises = []domain.WorkoutExercise{{ExerciseID: x, Reps: intPtr(8)}}
		got := FindConsistentlyFailedExercises([]domain.Workout{never(0), never(1), done})
		assert.Empty(t, got)
	})

	t.Run("short reps and short duration count as failures", func(t *testing.T) {
		shortReps := never(1)
		shortReps.CompletedExercises = []domain.WorkoutExercise{{ExerciseID: x, Reps: intPtr(6)}}

		timed := domain.WorkoutExercise{ExerciseID: x, DurationSeconds: intPtr(100)}
		shortTime := domain.Workout{
			PlannedExercises:   []domain.WorkoutExercise{timed},
			CompletedExercises: []domain.WorkoutExercise{{ExerciseID: x, DurationSeconds: intPtr(69)}},
		}

		got := FindConsistentlyFailedExercises([]domain.Workout{never(0), shortReps, shortTime})
		assert.Equal(t, []primitive.ObjectID{x}, got)
	})

	t.Run("repeated in one workout counts once", func(t *testing.T) {
		twice := never(0)
		twice.PlannedExercises = append(twice.PlannedExercises, planned)
		got := FindConsistentlyFailedExercises([]domain.Workout{twice, never(1)})
		assert.Empty(t, got)
	})
}
