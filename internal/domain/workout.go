package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateLayout is the calendar-day format used for workout dates on the wire.
const DateLayout = "2006-01-02"

// WorkoutExercise is one prescribed (or performed) unit of work inside a workout.
// Every parameter is optional; a nil or zero value means "not tracked".
type WorkoutExercise struct {
	ExerciseID      primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Sets            *int               `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps            *int               `bson:"reps,omitempty" json:"reps,omitempty"`
	Weight          *float64           `bson:"weight,omitempty" json:"weight,omitempty"` // kg
	DurationSeconds *int               `bson:"durationSeconds,omitempty" json:"durationSeconds,omitempty"`
	RestSeconds     *int               `bson:"restSeconds,omitempty" json:"restSeconds,omitempty"`
}

// Clone returns a deep copy of the entry.
func (e WorkoutExercise) Clone() WorkoutExercise {
	return WorkoutExercise{
		ExerciseID:      e.ExerciseID,
		Sets:            cloneInt(e.Sets),
		Reps:            cloneInt(e.Reps),
		Weight:          cloneFloat(e.Weight),
		DurationSeconds: cloneInt(e.DurationSeconds),
		RestSeconds:     cloneInt(e.RestSeconds),
	}
}

// Workout is a single day's session for one user.
type Workout struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID             primitive.ObjectID `bson:"userId" json:"userId"`
	PlannedExercises   []WorkoutExercise  `bson:"plannedExercises" json:"plannedExercises"`
	CompletedExercises []WorkoutExercise  `bson:"completedExercises" json:"completedExercises"` // Completion order
	DifficultyScore    int                `bson:"difficultyScore" json:"difficultyScore"`       // 1 - 10
	CompletionRate     float64            `bson:"completionRate" json:"completionRate"`         // 0.0 - 1.0
	Date               time.Time          `bson:"date" json:"date"`                             // Midnight UTC of the calendar day
	DurationMinutes    int                `bson:"durationMinutes" json:"durationMinutes"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CompletionRatio is |completed| / |planned| with the denominator clamped to 1.
func (w *Workout) CompletionRatio() float64 {
	planned := len(w.PlannedExercises)
	if planned < 1 {
		planned = 1
	}
	return float64(len(w.CompletedExercises)) / float64(planned)
}

// Clone returns a deep copy of the workout.
func (w Workout) Clone() Workout {
	c := w
	c.PlannedExercises = cloneEntries(w.PlannedExercises)
	c.CompletedExercises = cloneEntries(w.CompletedExercises)
	return c
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func cloneEntries(in []WorkoutExercise) []WorkoutExercise {
	if in == nil {
		return nil
	}
	out := make([]WorkoutExercise, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
