package service

import (
	"alcyxob/adaptive-coach/internal/domain"
	"alcyxob/adaptive-coach/internal/engine"
	"alcyxob/adaptive-coach/internal/repository"
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Insights is the adaptation overview for a window of recent workouts.
type Insights struct {
	Metrics              engine.PerformanceMetrics   `json:"metrics"`
	SuggestedAdaptations []domain.AdaptationProposal `json:"suggestedAdaptations"`
	Recommendations      []string                    `json:"recommendations"`
	WorkoutCount         int                         `json:"workoutCount"`
	WindowDays           int                         `json:"windowDays"`
}

type AdaptationService interface {
	Insights(ctx context.Context, userID string, days int) (*Insights, error)
	Apply(ctx context.Context, userID, workoutID string, proposal domain.AdaptationProposal) (*domain.Workout, *domain.AdaptationRecord, error)
	History(ctx context.Context, userID string) ([]domain.AdaptationRecord, error)
}

type adaptationService struct {
	userRepo       repository.UserRepository
	exerciseRepo   repository.ExerciseRepository
	workoutRepo    repository.WorkoutRepository
	adaptationRepo repository.AdaptationRepository
	engine         *engine.Engine
	settings       EngineSettings
}

func NewAdaptationService(
	userRepo repository.UserRepository,
	exerciseRepo repository.ExerciseRepository,
	workoutRepo repository.WorkoutRepository,
	adaptationRepo repository.AdaptationRepository,
	eng *engine.Engine,
	settings EngineSettings,
) AdaptationService {
	return &adaptationService{
		userRepo:       userRepo,
		exerciseRepo:   exerciseRepo,
		workoutRepo:    workoutRepo,
		adaptationRepo: adaptationRepo,
		engine:         eng,
		settings:       settings,
	}
}

// Insights analyses the workouts of the last days and proposes adaptations.
func (s *adaptationService) Insights(ctx context.Context, userID string, days int) (*Insights, error) {
	uid, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	user, err := loadUser(ctx, s.userRepo, uid)
	if err != nil {
		return nil, err
	}
	days = s.settings.window(days)

	workouts, err := s.workoutRepo.ListByUserSince(ctx, uid, engine.Since(s.settings.now(), days))
	if err != nil {
		return nil, fmt.Errorf("load recent workouts: %w", err)
	}
	catalog, err := loadCatalog(ctx, s.exerciseRepo)
	if err != nil {
		return nil, err
	}

	metrics := engine.AnalyzePattern(workouts, catalog, user)
	return &Insights{
		Metrics:              metrics,
		SuggestedAdaptations: engine.DecideAdaptations(metrics),
		Recommendations:      engine.Recommend(metrics),
		WorkoutCount:         len(workouts),
		WindowDays:           days,
	}, nil
}

// Apply applies proposal to one of the user's workouts, stores the result
// and appends the change to the adaptation history.
func (s *adaptationService) Apply(ctx context.Context, userID, workoutID string, proposal domain.AdaptationProposal) (*domain.Workout, *domain.AdaptationRecord, error) {
	if !proposal.Type.Valid() {
		return nil, nil, fmt.Errorf("%w: unknown type %q", ErrInvalidAdaptation, proposal.Type)
	}
	if proposal.Type == domain.AdaptChangeExercise && proposal.ExerciseID.IsZero() {
		return nil, nil, fmt.Errorf("%w: change_exercise needs an exercise id", ErrInvalidAdaptation)
	}

	workout, err := getOwnedWorkout(ctx, s.workoutRepo, userID, workoutID)
	if err != nil {
		return nil, nil, err
	}
	catalog, err := loadCatalog(ctx, s.exerciseRepo)
	if err != nil {
		return nil, nil, err
	}

	adapted := s.engine.ApplyAdaptation(proposal, catalog, workout)
	now := s.settings.now().UTC()
	adapted.UpdatedAt = now

	if err := s.workoutRepo.Update(ctx, &adapted); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrWorkoutNotFound
		}
		return nil, nil, err
	}

	record := &domain.AdaptationRecord{
		UserID:             adapted.UserID,
		WorkoutID:          adapted.ID,
		AdaptationProposal: proposal,
		CreatedAt:          now,
	}
	id, err := s.adaptationRepo.Create(ctx, record)
	if err != nil {
		return nil, nil, fmt.Errorf("record adaptation: %w", err)
	}
	record.ID = id

	logrus.WithFields(logrus.Fields{
		"user":    userID,
		"workout": workoutID,
		"type":    proposal.Type,
	}).Info("adaptation applied")
	return &adapted, record, nil
}

// History returns the most recent adaptations, newest first.
func (s *adaptationService) History(ctx context.Context, userID string) ([]domain.AdaptationRecord, error) {
	uid, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	return s.adaptationRepo.ListByUser(ctx, uid, s.settings.HistoryLimit)
}
