package service

import (
	"alcyxob/adaptive-coach/internal/domain"
	"alcyxob/adaptive-coach/internal/repository"
	"alcyxob/adaptive-coach/internal/storage"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const mediaURLExpiry = 15 * time.Minute

// ExerciseInput describes a catalog entry created through the api.
type ExerciseInput struct {
	Name            string
	Category        domain.Category
	MuscleGroups    []string
	EquipmentNeeded []string
	DifficultyBase  int
	Instructions    string
}

// SeedResult counts what SeedCatalog did.
type SeedResult struct {
	Created int
	Updated int
}

type ExerciseService interface {
	ListCatalog(ctx context.Context) ([]domain.Exercise, error)
	CreateExercise(ctx context.Context, input ExerciseInput) (*domain.Exercise, error)
	SeedCatalog(ctx context.Context, exercises []domain.Exercise) (SeedResult, error)
	RequestMediaUploadURL(ctx context.Context, exerciseID, contentType string) (uploadURL, objectKey string, err error)
	MediaDownloadURL(ctx context.Context, exerciseID string) (string, error)
}

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	fileStorage  storage.FileStorage // nil when no bucket is configured
}

// NewExerciseService creates the catalog service. fileStorage may be nil,
// in which case the media operations return ErrStorageUnavailable.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, fileStorage storage.FileStorage) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		fileStorage:  fileStorage,
	}
}

func (s *exerciseService) ListCatalog(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.ListAll(ctx)
}

func (s *exerciseService) CreateExercise(ctx context.Context, input ExerciseInput) (*domain.Exercise, error) {
	exercise, err := input.validate()
	if err != nil {
		return nil, err
	}

	id, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrExerciseExists
		}
		return nil, err
	}
	exercise.ID = id
	return exercise, nil
}

func (in ExerciseInput) validate() (*domain.Exercise, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: exercise name is required", ErrInvalidInput)
	}
	if !in.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, in.Category)
	}
	if in.DifficultyBase < 1 || in.DifficultyBase > 10 {
		return nil, fmt.Errorf("%w: difficulty must be between 1 and 10", ErrInvalidInput)
	}
	muscles := cleanTags(in.MuscleGroups)
	if len(muscles) == 0 {
		return nil, fmt.Errorf("%w: at least one muscle group is required", ErrInvalidInput)
	}
	return &domain.Exercise{
		Name:            name,
		Category:        in.Category,
		MuscleGroups:    muscles,
		EquipmentNeeded: cleanTags(in.EquipmentNeeded),
		DifficultyBase:  in.DifficultyBase,
		Instructions:    strings.TrimSpace(in.Instructions),
	}, nil
}

// SeedCatalog upserts every exercise by name.
func (s *exerciseService) SeedCatalog(ctx context.Context, exercises []domain.Exercise) (SeedResult, error) {
	var res SeedResult
	for i := range exercises {
		created, err := s.exerciseRepo.UpsertByName(ctx, &exercises[i])
		if err != nil {
			return res, fmt.Errorf("upsert %q: %w", exercises[i].Name, err)
		}
		if created {
			res.Created++
		} else {
			res.Updated++
		}
	}
	logrus.WithFields(logrus.Fields{"created": res.Created, "updated": res.Updated}).Info("exercise catalog seeded")
	return res, nil
}

// RequestMediaUploadURL reserves a fresh object key for the exercise's
// demonstration video and returns a presigned PUT URL for it.
func (s *exerciseService) RequestMediaUploadURL(ctx context.Context, exerciseID, contentType string) (string, string, error) {
	if s.fileStorage == nil {
		return "", "", ErrStorageUnavailable
	}
	if !strings.HasPrefix(contentType, "video/") && !strings.HasPrefix(contentType, "image/") {
		return "", "", fmt.Errorf("%w: unsupported content type %q", ErrInvalidInput, contentType)
	}
	exercise, err := s.getExercise(ctx, exerciseID)
	if err != nil {
		return "", "", err
	}

	objectKey := path.Join("exercises", exercise.ID.Hex(), uuid.NewString())
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, mediaURLExpiry)
	if err != nil {
		return "", "", err
	}

	previous := exercise.MediaObjectKey
	if err := s.exerciseRepo.SetMediaObjectKey(ctx, exercise.ID, objectKey); err != nil {
		return "", "", err
	}
	if previous != "" {
		if err := s.fileStorage.DeleteObject(ctx, previous); err != nil {
			logrus.WithError(err).WithField("key", previous).Warn("failed to delete replaced exercise media")
		}
	}
	return uploadURL, objectKey, nil
}

func (s *exerciseService) MediaDownloadURL(ctx context.Context, exerciseID string) (string, error) {
	if s.fileStorage == nil {
		return "", ErrStorageUnavailable
	}
	exercise, err := s.getExercise(ctx, exerciseID)
	if err != nil {
		return "", err
	}
	if exercise.MediaObjectKey == "" {
		return "", ErrMediaNotAvailable
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, exercise.MediaObjectKey, mediaURLExpiry)
}

func (s *exerciseService) getExercise(ctx context.Context, hexID string) (*domain.Exercise, error) {
	id, err := parseID(hexID, "exercise")
	if err != nil {
		return nil, err
	}
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}
