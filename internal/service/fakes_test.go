package service

import (
	"alcyxob/adaptive-coach/internal/domain"
	"alcyxob/adaptive-coach/internal/repository"
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	r.users[u.ID] = *u
	return u.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Name = u.Name
	existing.FitnessLevel = u.FitnessLevel
	existing.Goals = u.Goals
	existing.Equipment = u.Equipment
	existing.UpdatedAt = u.UpdatedAt
	r.users[u.ID] = existing
	return nil
}

type fakeExerciseRepo struct {
	mu        sync.Mutex
	exercises []domain.Exercise
}

func (r *fakeExerciseRepo) Create(_ context.Context, e *domain.Exercise) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.exercises {
		if existing.Name == e.Name {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	r.exercises = append(r.exercises, *e)
	return e.ID, nil
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.exercises {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeExerciseRepo) ListAll(_ context.Context) ([]domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Exercise, len(r.exercises))
	copy(out, r.exercises)
	return out, nil
}

func (r *fakeExerciseRepo) UpsertByName(_ context.Context, e *domain.Exercise) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.exercises {
		if existing.Name == e.Name {
			e.ID = existing.ID
			r.exercises[i] = *e
			return false, nil
		}
	}
	e.ID = primitive.NewObjectID()
	r.exercises = append(r.exercises, *e)
	return true, nil
}

func (r *fakeExerciseRepo) SetMediaObjectKey(_ context.Context, id primitive.ObjectID, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.exercises {
		if r.exercises[i].ID == id {
			r.exercises[i].MediaObjectKey = key
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeWorkoutRepo struct {
	mu       sync.Mutex
	workouts []domain.Workout
}

func (r *fakeWorkoutRepo) Create(_ context.Context, w *domain.Workout) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w.ID.IsZero() {
		w.ID = primitive.NewObjectID()
	}
	r.workouts = append(r.workouts, w.Clone())
	return w.ID, nil
}

func (r *fakeWorkoutRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.workouts {
		if w.ID == id {
			c := w.Clone()
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeWorkoutRepo) GetByUserAndDate(_ context.Context, userID primitive.ObjectID, day time.Time) (*domain.Workout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.workouts) - 1; i >= 0; i-- {
		w := r.workouts[i]
		if w.UserID == userID && w.Date.Equal(day) {
			c := w.Clone()
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeWorkoutRepo) ListByUserSince(_ context.Context, userID primitive.ObjectID, since time.Time) ([]domain.Workout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Workout
	for _, w := range r.workouts {
		if w.UserID == userID && !w.Date.Before(since) {
			out = append(out, w.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *fakeWorkoutRepo) Update(_ context.Context, w *domain.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.workouts {
		if r.workouts[i].ID == w.ID && r.workouts[i].UserID == w.UserID {
			r.workouts[i] = w.Clone()
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeAdaptationRepo struct {
	mu      sync.Mutex
	records []domain.AdaptationRecord
}

func (r *fakeAdaptationRepo) Create(_ context.Context, rec *domain.AdaptationRecord) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.ID = primitive.NewObjectID()
	r.records = append(r.records, *rec)
	return rec.ID, nil
}

func (r *fakeAdaptationRepo) ListByUser(_ context.Context, userID primitive.ObjectID, limit int) ([]domain.AdaptationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.AdaptationRecord
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		if r.records[i].UserID == userID {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}

type fakeProgressRepo struct {
	mu      sync.Mutex
	entries []domain.ProgressEntry
	err     error
}

func (r *fakeProgressRepo) Create(_ context.Context, e *domain.ProgressEntry) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return primitive.NilObjectID, r.err
	}
	e.ID = primitive.NewObjectID()
	r.entries = append(r.entries, *e)
	return e.ID, nil
}

func (r *fakeProgressRepo) List(_ context.Context, f repository.ProgressFilter) ([]domain.ProgressEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ProgressEntry
	for _, e := range r.entries {
		if e.UserID != f.UserID || e.Date.Before(f.Since) {
			continue
		}
		if f.ExerciseID != nil && e.ExerciseID != *f.ExerciseID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

type fakeStorage struct {
	deleted []string
	err     error
}

func (s *fakeStorage) GeneratePresignedUploadURL(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "https://media.example.com/put/" + key, nil
}

func (s *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "https://media.example.com/get/" + key, nil
}

func (s *fakeStorage) DeleteObject(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return nil
}

var errBoom = errors.New("boom")

// firstRand always picks the first candidate.
type firstRand struct{}

func (firstRand) Intn(int) int { return 0 }
