package service

import (
	"alcyxob/adaptive-coach/internal/domain"
	"alcyxob/adaptive-coach/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileUpdate carries the profile fields a user may change.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Name         *string
	FitnessLevel *domain.FitnessLevel
	Goals        []string
	Equipment    []string
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*domain.User, error)
}

type profileService struct {
	userRepo repository.UserRepository
}

func NewProfileService(userRepo repository.UserRepository) ProfileService {
	return &profileService{userRepo: userRepo}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	id, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	return loadUser(ctx, s.userRepo, id)
}

func (s *profileService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*domain.User, error) {
	id, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	user, err := loadUser(ctx, s.userRepo, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		user.Name = name
	}
	if update.FitnessLevel != nil {
		if !update.FitnessLevel.Valid() {
			return nil, fmt.Errorf("%w: unknown fitness level %q", ErrInvalidInput, *update.FitnessLevel)
		}
		user.FitnessLevel = *update.FitnessLevel
	}
	if update.Goals != nil {
		user.Goals = cleanTags(update.Goals)
	}
	if update.Equipment != nil {
		user.Equipment = cleanTags(update.Equipment)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func loadUser(ctx context.Context, repo repository.UserRepository, id primitive.ObjectID) (*domain.User, error) {
	user, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// cleanTags lower-cases, trims and de-duplicates free-form tags.
func cleanTags(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
