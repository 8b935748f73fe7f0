package service

import (
	"alcyxob/adaptive-coach/internal/domain"
	"alcyxob/adaptive-coach/internal/engine"
	"alcyxob/adaptive-coach/internal/repository"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
)

// EngineSettings carries the history windows and defaults from config.
type EngineSettings struct {
	DefaultTargetMinutes int
	WindowDays           int
	HistoryLimit         int
	Now                  func() time.Time // nil means time.Now
}

func (s EngineSettings) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s EngineSettings) window(days int) int {
	if days <= 0 {
		return s.WindowDays
	}
	return days
}

// GenerateRequest are the per-request knobs of GenerateWorkout.
type GenerateRequest struct {
	TargetDurationMinutes int      // 0 means the configured default
	Equipment             []string // nil means the profile's equipment
}

// WorkoutScore is a performance score with its display message.
type WorkoutScore struct {
	Score          float64 `json:"score"`
	CompletionRate float64 `json:"completionRate"`
	Message        string  `json:"message"`
}

type WorkoutService interface {
	TodayWorkout(ctx context.Context, userID string) (*domain.Workout, error)
	GenerateWorkout(ctx context.Context, userID string, req GenerateRequest) (*domain.Workout, error)
	CompleteExercise(ctx context.Context, userID, workoutID string, entry domain.WorkoutExercise) (*domain.Workout, error)
	ScoreWorkout(ctx context.Context, userID, workoutID string) (*WorkoutScore, error)
	ListWorkouts(ctx context.Context, userID string, days int) ([]domain.Workout, error)
	Progress(ctx context.Context, userID, exerciseID string, days int) ([]domain.ProgressEntry, error)
}

type workoutService struct {
	userRepo     repository.UserRepository
	exerciseRepo repository.ExerciseRepository
	workoutRepo  repository.WorkoutRepository
	progressRepo repository.ProgressRepository
	engine       *engine.Engine
	settings     EngineSettings
}

func NewWorkoutService(
	userRepo repository.UserRepository,
	exerciseRepo repository.ExerciseRepository,
	workoutRepo repository.WorkoutRepository,
	progressRepo repository.ProgressRepository,
	eng *engine.Engine,
	settings EngineSettings,
) WorkoutService {
	return &workoutService{
		userRepo:     userRepo,
		exerciseRepo: exerciseRepo,
		workoutRepo:  workoutRepo,
		progressRepo: progressRepo,
		engine:       eng,
		settings:     settings,
	}
}

func (s *workoutService) TodayWorkout(ctx context.Context, userID string) (*domain.Workout, error) {
	uid, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	workout, err := s.workoutRepo.GetByUserAndDate(ctx, uid, domain.Day(s.settings.now()))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

// GenerateWorkout builds and stores a new workout from the user's profile
// and the configured window of recent workouts.
func (s *workoutService) GenerateWorkout(ctx context.Context, userID string, req GenerateRequest) (*domain.Workout, error) {
	uid, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	user, err := loadUser(ctx, s.userRepo, uid)
	if err != nil {
		return nil, err
	}
	if !user.FitnessLevel.Valid() {
		return nil, ErrProfileIncomplete
	}
	if req.TargetDurationMinutes < 0 {
		return nil, fmt.Errorf("%w: target duration cannot be negative", ErrInvalidInput)
	}

	catalog, err := loadCatalog(ctx, s.exerciseRepo)
	if err != nil {
		return nil, err
	}
	recent, err := s.workoutRepo.ListByUserSince(ctx, uid, engine.Since(s.settings.now(), s.settings.WindowDays))
	if err != nil {
		return nil, fmt.Errorf("load recent workouts: %w", err)
	}

	params := engine.GenerateParams{
		TargetDurationMinutes: req.TargetDurationMinutes,
		Equipment:             req.Equipment,
	}
	if params.TargetDurationMinutes == 0 {
		params.TargetDurationMinutes = s.settings.DefaultTargetMinutes
	}
	if params.Equipment == nil {
		params.Equipment = user.Equipment
	}

	workout := s.engine.GenerateWorkout(user, catalog, recent, params)
	now := s.settings.now().UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now

	if _, err := s.workoutRepo.Create(ctx, &workout); err != nil {
		return nil, fmt.Errorf("store workout: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user":       userID,
		"workout":    workout.ID.Hex(),
		"exercises":  len(workout.PlannedExercises),
		"difficulty": workout.DifficultyScore,
	}).Info("workout generated")
	return &workout, nil
}

// CompleteExercise appends entry to the workout's completed exercises,
// recomputes the completion rate and logs a progress entry.
func (s *workoutService) CompleteExercise(ctx context.Context, userID, workoutID string, entry domain.WorkoutExercise) (*domain.Workout, error) {
	if entry.ExerciseID.IsZero() {
		return nil, fmt.Errorf("%w: exercise id is required", ErrInvalidInput)
	}
	workout, err := s.ownedWorkout(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}

	workout.CompletedExercises = append(workout.CompletedExercises, entry.Clone())
	workout.CompletionRate = workout.CompletionRatio()
	workout.UpdatedAt = s.settings.now().UTC()

	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	progress := &domain.ProgressEntry{
		UserID:              workout.UserID,
		ExerciseID:          entry.ExerciseID,
		WeightUsed:          positiveFloat(entry.Weight),
		RepsCompleted:       positiveInt(entry.Reps),
		DurationSeconds:     positiveInt(entry.DurationSeconds),
		PerceivedDifficulty: domain.DefaultPerceivedDifficulty,
		Date:                domain.Day(s.settings.now()),
	}
	// The workout is already updated; a lost progress row only affects charts.
	if _, err := s.progressRepo.Create(ctx, progress); err != nil {
		logrus.WithError(err).WithField("workout", workoutID).Warn("failed to log progress")
	}
	return workout, nil
}

func (s *workoutService) ScoreWorkout(ctx context.Context, userID, workoutID string) (*WorkoutScore, error) {
	workout, err := s.ownedWorkout(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}
	catalog, err := loadCatalog(ctx, s.exerciseRepo)
	if err != nil {
		return nil, err
	}
	rate := workout.CompletionRatio()
	return &WorkoutScore{
		Score:          engine.ScorePerformance(workout, catalog),
		CompletionRate: rate,
		Message:        engine.PerformanceMessage(rate),
	}, nil
}

// ListWorkouts returns the user's workouts of the last days, newest first.
func (s *workoutService) ListWorkouts(ctx context.Context, userID string, days int) ([]domain.Workout, error) {
	uid, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	workouts, err := s.workoutRepo.ListByUserSince(ctx, uid, engine.Since(s.settings.now(), s.settings.window(days)))
	if err != nil {
		return nil, err
	}
	slices.Reverse(workouts)
	return workouts, nil
}

// Progress returns progress entries of the last days, oldest first,
// optionally for a single exercise.
func (s *workoutService) Progress(ctx context.Context, userID, exerciseID string, days int) ([]domain.ProgressEntry, error) {
	uid, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	filter := repository.ProgressFilter{
		UserID: uid,
		Since:  engine.Since(s.settings.now(), s.settings.window(days)),
	}
	if exerciseID != "" {
		eid, err := parseID(exerciseID, "exercise")
		if err != nil {
			return nil, err
		}
		filter.ExerciseID = &eid
	}
	return s.progressRepo.List(ctx, filter)
}

func (s *workoutService) ownedWorkout(ctx context.Context, userID, workoutID string) (*domain.Workout, error) {
	return getOwnedWorkout(ctx, s.workoutRepo, userID, workoutID)
}

func getOwnedWorkout(ctx context.Context, repo repository.WorkoutRepository, userID, workoutID string) (*domain.Workout, error) {
	uid, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	wid, err := parseID(workoutID, "workout")
	if err != nil {
		return nil, err
	}
	workout, err := repo.GetByID(ctx, wid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if workout.UserID != uid {
		return nil, ErrWorkoutAccessDenied
	}
	return workout, nil
}

func loadCatalog(ctx context.Context, repo repository.ExerciseRepository) (engine.Catalog, error) {
	exercises, err := repo.ListAll(ctx)
	if err != nil {
		return engine.Catalog{}, fmt.Errorf("load exercise catalog: %w", err)
	}
	return engine.NewCatalog(exercises), nil
}

func positiveInt(p *int) *int {
	if p == nil || *p <= 0 {
		return nil
	}
	v := *p
	return &v
}

func positiveFloat(p *float64) *float64 {
	if p == nil || *p <= 0 {
		return nil
	}
	v := *p
	return &v
}
