package engine

import (
	"testing"

	"alcyxob/adaptive-coach/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func apply(e *Engine, t domain.AdaptationType, w domain.Workout) domain.Workout {
	return e.ApplyAdaptation(domain.AdaptationProposal{Type: t}, Catalog{}, &w)
}

func TestApplyAdaptation_IncreaseThenDecrease(t *testing.T) {
	e := New(WithRand(firstRand{}))
	w := domain.Workout{
		DifficultyScore: 5,
		PlannedExercises: []domain.WorkoutExercise{
			{ExerciseID: primitive.NewObjectID(), Sets: intPtr(3), Reps: intPtr(10), Weight: floatPtr(100)},
			{ExerciseID: primitive.NewObjectID(), DurationSeconds: intPtr(45)},
		},
	}

	up := apply(e, domain.AdaptIncreaseDifficulty, w)
	assert.Equal(t, 11, *up.PlannedExercises[0].Reps)
	assert.Equal(t, 105.0, *up.PlannedExercises[0].Weight)
	assert.Equal(t, 4, *up.PlannedExercises[0].Sets)
	assert.Equal(t, 49, *up.PlannedExercises[1].DurationSeconds)
	assert.Nil(t, up.PlannedExercises[1].Reps)
	assert.Equal(t, 6, up.DifficultyScore)

	// the argument is untouched
	assert.Equal(t, 10, *w.PlannedExercises[0].Reps)
	assert.Equal(t, 5, w.DifficultyScore)

	down := apply(e, domain.AdaptDecreaseDifficulty, up)
	assert.Equal(t, 9, *down.PlannedExercises[0].Reps)
	assert.Equal(t, 99.0, *down.PlannedExercises[0].Weight)
	assert.Equal(t, 3, *down.PlannedExercises[0].Sets)
	assert.Equal(t, 44, *down.PlannedExercises[1].DurationSeconds)
	assert.Equal(t, 5, down.DifficultyScore)
}

func TestApplyAdaptation_Bounds(t *testing.T) {
	e := New(WithRand(firstRand{}))

	top := domain.Workout{
		DifficultyScore:  10,
		PlannedExercises: []domain.WorkoutExercise{{Sets: intPtr(4), Reps: intPtr(20)}},
	}
	up := apply(e, domain.AdaptIncreaseDifficulty, top)
	assert.Equal(t, 10, up.DifficultyScore)
	assert.Equal(t, 4, *up.PlannedExercises[0].Sets)

	bottom := domain.Workout{
		DifficultyScore: 1,
		PlannedExercises: []domain.WorkoutExercise{
			{Sets: intPtr(1), Reps: intPtr(5), DurationSeconds: intPtr(15)},
			{Reps: intPtr(6), DurationSeconds: intPtr(16)},
		},
	}
	down := apply(e, domain.AdaptDecreaseDifficulty, bottom)
	assert.Equal(t, 1, down.DifficultyScore)
	assert.Equal(t, 1, *down.PlannedExercises[0].Sets)
	assert.Equal(t, 5, *down.PlannedExercises[0].Reps)
	assert.Equal(t, 15, *down.PlannedExercises[0].DurationSeconds)
	assert.Equal(t, 5, *down.PlannedExercises[1].Reps)
	assert.Equal(t, 15, *down.PlannedExercises[1].DurationSeconds)
}

func TestApplyAdaptation_RepeatedCyclesDrift(t *testing.T) {
	e := New(WithRand(firstRand{}))
	w := domain.Workout{
		DifficultyScore:  5,
		PlannedExercises: []domain.WorkoutExercise{{Reps: intPtr(10), Weight: floatPtr(60)}},
	}

	reps, weight := 10, 60.0
	for i := 0; i < 5; i++ {
		w = apply(e, domain.AdaptIncreaseDifficulty, w)
		w = apply(e, domain.AdaptDecreaseDifficulty, w)

		gotReps, gotWeight := *w.PlannedExercises[0].Reps, *w.PlannedExercises[0].Weight
		// flooring can only lose, never gain
		assert.LessOrEqual(t, gotReps, reps)
		assert.GreaterOrEqual(t, gotReps, reps-2)
		assert.GreaterOrEqual(t, gotReps, minReps)
		assert.LessOrEqual(t, gotWeight, weight)
		assert.GreaterOrEqual(t, gotWeight, weight-2)
		reps, weight = gotReps, gotWeight
	}
	assert.Less(t, reps, 10)
	assert.Equal(t, 5, w.DifficultyScore)
}

func TestApplyAdaptation_ChangeExercise(t *testing.T) {
	pushUp := exercise("push-up", domain.CategoryStrength, 3, "chest", "triceps")
	exercises := []domain.Exercise{
		pushUp,
		exercise("jumping jacks", domain.CategoryCardio, 3, "chest"),
		exercise("weighted dips", domain.CategoryStrength, 6, "chest", "triceps"),
		exercise("squat", domain.CategoryStrength, 3, "legs"),
		exercise("incline push-up", domain.CategoryStrength, 2, "chest"),
		exercise("diamond push-up", domain.CategoryStrength, 5, "triceps"),
	}
	catalog := NewCatalog(exercises)
	other := primitive.NewObjectID()

	w := domain.Workout{PlannedExercises: []domain.WorkoutExercise{
		{ExerciseID: pushUp.ID, Sets: intPtr(3), Reps: intPtr(8)},
		{ExerciseID: other},
		{ExerciseID: pushUp.ID, Sets: intPtr(2), Reps: intPtr(6)},
	}}
	p := domain.AdaptationProposal{Type: domain.AdaptChangeExercise, ExerciseID: pushUp.ID}

	got := New(WithRand(firstRand{})).ApplyAdaptation(p, catalog, &w)
	require.Len(t, got.PlannedExercises, 3)
	assert.Equal(t, exercises[4].ID, got.PlannedExercises[0].ExerciseID)
	assert.Equal(t, 8, *got.PlannedExercises[0].Reps)
	assert.Equal(t, other, got.PlannedExercises[1].ExerciseID)
	assert.Equal(t, exercises[4].ID, got.PlannedExercises[2].ExerciseID)
	assert.Equal(t, pushUp.ID, w.PlannedExercises[0].ExerciseID)

	// the last qualifying alternative is reachable too
	got = New(WithRand(lastRand{})).ApplyAdaptation(p, catalog, &w)
	assert.Equal(t, exercises[5].ID, got.PlannedExercises[0].ExerciseID)
}

type lastRand struct{}

func (lastRand) Intn(n int) int { return n - 1 }

func TestApplyAdaptation_ChangeExerciseWithoutAlternative(t *testing.T) {
	lonely := exercise("pistol squat", domain.CategoryStrength, 9, "legs")
	catalog := NewCatalog([]domain.Exercise{
		lonely,
		exercise("air squat", domain.CategoryStrength, 2, "legs"),
	})
	w := domain.Workout{PlannedExercises: []domain.WorkoutExercise{{ExerciseID: lonely.ID}}}
	p := domain.AdaptationProposal{Type: domain.AdaptChangeExercise, ExerciseID: lonely.ID}

	got := New(WithRand(firstRand{})).ApplyAdaptation(p, catalog, &w)
	assert.Equal(t, lonely.ID, got.PlannedExercises[0].ExerciseID)

	unknown := domain.AdaptationProposal{Type: domain.AdaptChangeExercise, ExerciseID: primitive.NewObjectID()}
	got = New(WithRand(firstRand{})).ApplyAdaptation(unknown, catalog, &w)
	assert.Equal(t, w.PlannedExercises, got.PlannedExercises)
}

func TestApplyAdaptation_AddRestDropsLastExercise(t *testing.T) {
	e := New(WithRand(firstRand{}))
	w := workoutWithRatio(0, 3, 1)

	got := apply(e, domain.AdaptAddRest, w)
	assert.Equal(t, w.PlannedExercises[:2], got.PlannedExercises)
	assert.Len(t, w.PlannedExercises, 3)

	empty := apply(e, domain.AdaptAddRest, domain.Workout{})
	assert.Empty(t, empty.PlannedExercises)
}

func TestApplyAdaptation_UnknownTypePanics(t *testing.T) {
	e := New(WithRand(firstRand{}))
	assert.Panics(t, func() {
		apply(e, domain.AdaptationType("skip_leg_day"), domain.Workout{})
	})
}
