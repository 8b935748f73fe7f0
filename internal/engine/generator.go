package engine

import (
	"math"

	"alcyxob/adaptive-coach/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// DefaultTargetMinutes is used when a request does not name a duration.
	DefaultTargetMinutes = 30
	// Roughly six minutes per exercise including rest.
	minutesPerExercise = 6
	// Recently trained exercises are only avoided once this many distinct ones exist.
	minRecentForVariety      = 3
	defaultWorkoutDifficulty = 5
)

// GenerateParams are the per-request knobs of GenerateWorkout.
type GenerateParams struct {
	TargetDurationMinutes int      // 0 means DefaultTargetMinutes
	Equipment             []string // Equipment available for this session
}

// GenerateWorkout builds a new workout for user from the catalog, adapting
// sets, reps, weight and duration to the recent workouts.
// The result has a fresh id, today's date and no completed exercises.
func (e *Engine) GenerateWorkout(user *domain.User, catalog Catalog, recent []domain.Workout, params GenerateParams) domain.Workout {
	target := params.TargetDurationMinutes
	if target <= 0 {
		target = DefaultTargetMinutes
	}

	available := filterExercises(catalog, user.FitnessLevel, params.Equipment)
	history := summarizeHistory(recent)
	selected := e.selectExercises(available, user, history, target/minutesPerExercise)

	planned := make([]domain.WorkoutExercise, 0, len(selected))
	for _, ex := range selected {
		planned = append(planned, prescribe(ex, user.FitnessLevel, history[ex.ID]).entry(ex.ID))
	}

	return domain.Workout{
		ID:                 primitive.NewObjectID(),
		UserID:             user.ID,
		PlannedExercises:   planned,
		CompletedExercises: []domain.WorkoutExercise{},
		DifficultyScore:    WorkoutDifficulty(planned, catalog),
		CompletionRate:     0,
		Date:               domain.Day(e.now()),
		DurationMinutes:    0,
	}
}

type difficultyBand struct{ min, max int }

func bandForLevel(level domain.FitnessLevel) difficultyBand {
	switch level {
	case domain.LevelBeginner:
		return difficultyBand{1, 4}
	case domain.LevelIntermediate:
		return difficultyBand{3, 7}
	case domain.LevelAdvanced:
		return difficultyBand{6, 10}
	default:
		return difficultyBand{1, 5}
	}
}

// filterExercises keeps exercises whose equipment is all available and whose
// base difficulty lies in the level's band.
func filterExercises(catalog Catalog, level domain.FitnessLevel, equipment []string) []*domain.Exercise {
	band := bandForLevel(level)
	have := make(map[string]bool, len(equipment))
	for _, eq := range equipment {
		have[eq] = true
	}

	var out []*domain.Exercise
	for i := range catalog.exercises {
		ex := &catalog.exercises[i]
		if !ex.Category.Valid() || ex.DifficultyBase < band.min || ex.DifficultyBase > band.max {
			continue
		}
		hasAll := true
		for _, eq := range ex.EquipmentNeeded {
			if !have[eq] {
				hasAll = false
				break
			}
		}
		if hasAll {
			out = append(out, ex)
		}
	}
	return out
}

// exerciseHistory is what recent workouts say about one exercise.
type exerciseHistory struct {
	completions int
	weights     []float64
	reps        []float64
	durations   []float64
}

func summarizeHistory(recent []domain.Workout) map[primitive.ObjectID]*exerciseHistory {
	history := make(map[primitive.ObjectID]*exerciseHistory)
	for i := range recent {
		for _, done := range recent[i].CompletedExercises {
			h, ok := history[done.ExerciseID]
			if !ok {
				h = &exerciseHistory{}
				history[done.ExerciseID] = h
			}
			h.completions++
			if trackedFloat(done.Weight) {
				h.weights = append(h.weights, *done.Weight)
			}
			if tracked(done.Reps) {
				h.reps = append(h.reps, float64(*done.Reps))
			}
			if tracked(done.DurationSeconds) {
				h.durations = append(h.durations, float64(*done.DurationSeconds))
			}
		}
	}
	return history
}

// mean returns the average of values, or 0 and false when there are none.
func mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

// categoryQuotas splits count across categories according to the user's goals.
// Flexibility always gets at least one slot.
func categoryQuotas(user *domain.User, count int) (strength, cardio, flexibility int) {
	major := (count*6 + 9) / 10 // ceil(60%)
	minor := count * 3 / 10     // floor(30%)

	switch {
	case user.HasGoal(domain.GoalStrength) || user.HasGoal(domain.GoalMuscleGain):
		strength, cardio = major, minor
	case user.HasGoal(domain.GoalCardio) || user.HasGoal(domain.GoalWeightLoss):
		cardio, strength = major, minor
	default:
		strength = count * 4 / 10
		cardio = count * 4 / 10
	}
	flexibility = max(1, count-strength-cardio)
	return strength, cardio, flexibility
}

func (e *Engine) selectExercises(
	available []*domain.Exercise,
	user *domain.User,
	history map[primitive.ObjectID]*exerciseHistory,
	count int,
) []*domain.Exercise {
	if count <= 0 {
		return nil
	}

	allowRepeats := len(history) < minRecentForVariety
	var fresh, stale []*domain.Exercise
	for _, ex := range available {
		if _, seen := history[ex.ID]; seen && !allowRepeats {
			stale = append(stale, ex)
			continue
		}
		fresh = append(fresh, ex)
	}

	strength, cardio, flexibility := categoryQuotas(user, count)
	var selected []*domain.Exercise
	selected = append(selected, e.selectVaried(inCategory(fresh, domain.CategoryStrength), strength)...)
	selected = append(selected, e.selectVaried(inCategory(fresh, domain.CategoryCardio), cardio)...)
	selected = append(selected, e.selectVaried(inCategory(fresh, domain.CategoryFlexibility), flexibility)...)
	if len(selected) > count {
		selected = selected[:count]
	}

	// Categories the catalog cannot serve leave gaps; top up from whatever else qualifies.
	chosen := make(map[primitive.ObjectID]bool, len(selected))
	for _, ex := range selected {
		chosen[ex.ID] = true
	}
	selected = e.fillRandom(selected, exclude(fresh, chosen), count, chosen)
	selected = e.fillRandom(selected, exclude(stale, chosen), count, chosen)
	return selected
}

// selectVaried picks up to count exercises, first one per distinct muscle
// group, then at random from what is left.
func (e *Engine) selectVaried(candidates []*domain.Exercise, count int) []*domain.Exercise {
	if len(candidates) == 0 || count <= 0 {
		return nil
	}

	var muscles []string
	byMuscle := make(map[string][]*domain.Exercise)
	for _, ex := range candidates {
		for _, m := range ex.MuscleGroups {
			if _, ok := byMuscle[m]; !ok {
				muscles = append(muscles, m)
			}
			byMuscle[m] = append(byMuscle[m], ex)
		}
	}

	var selected []*domain.Exercise
	chosen := make(map[primitive.ObjectID]bool)
	for _, m := range muscles {
		if len(selected) >= count {
			break
		}
		options := exclude(byMuscle[m], chosen)
		if len(options) == 0 {
			continue
		}
		pick := options[e.rnd.Intn(len(options))]
		selected = append(selected, pick)
		chosen[pick.ID] = true
	}

	return e.fillRandom(selected, exclude(candidates, chosen), count, chosen)
}

// fillRandom appends random picks from pool to selected until it holds count
// exercises or pool runs out. chosen is updated with every pick.
func (e *Engine) fillRandom(selected, pool []*domain.Exercise, count int, chosen map[primitive.ObjectID]bool) []*domain.Exercise {
	pool = append([]*domain.Exercise(nil), pool...)
	for len(selected) < count && len(pool) > 0 {
		i := e.rnd.Intn(len(pool))
		selected = append(selected, pool[i])
		chosen[pool[i].ID] = true
		pool = append(pool[:i], pool[i+1:]...)
	}
	return selected
}

func inCategory(exercises []*domain.Exercise, c domain.Category) []*domain.Exercise {
	var out []*domain.Exercise
	for _, ex := range exercises {
		if ex.Category == c {
			out = append(out, ex)
		}
	}
	return out
}

func exclude(exercises []*domain.Exercise, chosen map[primitive.ObjectID]bool) []*domain.Exercise {
	var out []*domain.Exercise
	for _, ex := range exercises {
		if !chosen[ex.ID] {
			out = append(out, ex)
		}
	}
	return out
}

// prescribe sets the workload for ex, nudging past performance up by 10% (5% for weight).
func prescribe(ex *domain.Exercise, level domain.FitnessLevel, h *exerciseHistory) Prescription {
	switch ex.Category {
	case domain.CategoryStrength:
		p := StrengthPrescription{Sets: 3, Reps: baseRepsForLevel(level, ex.DifficultyBase)}
		if h != nil {
			if avg, ok := mean(h.reps); ok {
				p.Reps = max(p.Reps, int(scaleFloor(avg, 1.1)))
			}
			if avg, ok := mean(h.weights); ok && avg > 0 {
				p.Weight = scaleFloor(avg, 1.05)
			}
		}
		return p

	case domain.CategoryCardio:
		p := TimedPrescription{DurationSeconds: baseDurationForLevel(level)}
		if h != nil {
			if avg, ok := mean(h.durations); ok && avg > 0 {
				p.DurationSeconds = max(p.DurationSeconds, int(scaleFloor(avg, 1.1)))
			}
		}
		return p

	default:
		hold := 30
		if level == domain.LevelAdvanced {
			hold += 15
		}
		return TimedPrescription{DurationSeconds: hold}
	}
}

func baseRepsForLevel(level domain.FitnessLevel, difficulty int) int {
	base := 10
	switch level {
	case domain.LevelBeginner:
		base = 8
	case domain.LevelIntermediate:
		base = 12
	case domain.LevelAdvanced:
		base = 15
	}
	return max(minReps, int(math.Floor(float64(base)*float64(11-difficulty)/10)))
}

func baseDurationForLevel(level domain.FitnessLevel) int {
	switch level {
	case domain.LevelIntermediate:
		return 45
	case domain.LevelAdvanced:
		return 60
	default:
		return 30
	}
}

// WorkoutDifficulty scores a plan from 1 to 10: each entry contributes its
// exercise's base difficulty plus one point per 20 total reps and per 30
// seconds, capped at 10. Entries whose exercise is not in the catalog add
// nothing but still count towards the average. An empty plan scores 5.
func WorkoutDifficulty(planned []domain.WorkoutExercise, catalog Catalog) int {
	if len(planned) == 0 {
		return defaultWorkoutDifficulty
	}

	total := 0
	for _, entry := range planned {
		ex, ok := catalog.Lookup(entry.ExerciseID)
		if !ok {
			continue
		}
		d := ex.DifficultyBase
		if tracked(entry.Sets) && tracked(entry.Reps) {
			d += *entry.Sets * *entry.Reps / 20
		}
		if tracked(entry.DurationSeconds) {
			d += *entry.DurationSeconds / 30
		}
		total += min(maxDifficulty, d)
	}
	return min(maxDifficulty, total/len(planned))
}
