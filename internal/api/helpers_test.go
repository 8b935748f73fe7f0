package api

import (
	"alcyxob/adaptive-coach/internal/domain"
	"alcyxob/adaptive-coach/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "api-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, userID primitive.ObjectID, role domain.Role, expiresIn time.Duration) string {
	t.Helper()
	claims := &jwtClaims{
		UserID: userID.Hex(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newRouter(services Services) *gin.Engine {
	router := gin.New()
	SetupRoutes(router, testSecret, services)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

// Stub services record their inputs and return canned results.

type stubAuth struct {
	registerErr error
	loginErr    error
}

func (s *stubAuth) Register(_ context.Context, name, email, _ string, role domain.Role) (*domain.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &domain.User{ID: primitive.NewObjectID(), Name: name, Email: email, Role: role}, nil
}

func (s *stubAuth) Login(_ context.Context, email, _ string) (string, *domain.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return "token", &domain.User{ID: primitive.NewObjectID(), Email: email, Role: domain.RoleClient}, nil
}

func (s *stubAuth) GetJWTSecret() string { return testSecret }

type stubProfile struct {
	user       *domain.User
	lastUpdate service.ProfileUpdate
}

func (s *stubProfile) GetProfile(context.Context, string) (*domain.User, error) {
	return s.user, nil
}

func (s *stubProfile) UpdateProfile(_ context.Context, _ string, u service.ProfileUpdate) (*domain.User, error) {
	s.lastUpdate = u
	if u.FitnessLevel != nil {
		s.user.FitnessLevel = *u.FitnessLevel
	}
	return s.user, nil
}

type stubExercise struct {
	exercises []domain.Exercise
	created   *service.ExerciseInput
}

func (s *stubExercise) ListCatalog(context.Context) ([]domain.Exercise, error) {
	return s.exercises, nil
}

func (s *stubExercise) CreateExercise(_ context.Context, in service.ExerciseInput) (*domain.Exercise, error) {
	s.created = &in
	return &domain.Exercise{ID: primitive.NewObjectID(), Name: in.Name, Category: in.Category, MuscleGroups: in.MuscleGroups, DifficultyBase: in.DifficultyBase}, nil
}

func (s *stubExercise) SeedCatalog(context.Context, []domain.Exercise) (service.SeedResult, error) {
	return service.SeedResult{}, nil
}

func (s *stubExercise) RequestMediaUploadURL(_ context.Context, id, _ string) (string, string, error) {
	return "https://upload/" + id, "exercises/" + id + "/key", nil
}

func (s *stubExercise) MediaDownloadURL(context.Context, string) (string, error) {
	return "", service.ErrMediaNotAvailable
}

type stubWorkout struct {
	workout   *domain.Workout
	err       error
	completed *domain.WorkoutExercise
	generate  *service.GenerateRequest
	days      int
}

func (s *stubWorkout) TodayWorkout(context.Context, string) (*domain.Workout, error) {
	return s.workout, s.err
}

func (s *stubWorkout) GenerateWorkout(_ context.Context, _ string, req service.GenerateRequest) (*domain.Workout, error) {
	s.generate = &req
	return s.workout, s.err
}

func (s *stubWorkout) CompleteExercise(_ context.Context, _, _ string, e domain.WorkoutExercise) (*domain.Workout, error) {
	s.completed = &e
	return s.workout, s.err
}

func (s *stubWorkout) ScoreWorkout(context.Context, string, string) (*service.WorkoutScore, error) {
	return &service.WorkoutScore{Score: 0.75, CompletionRate: 0.5, Message: "ok"}, s.err
}

func (s *stubWorkout) ListWorkouts(_ context.Context, _ string, days int) ([]domain.Workout, error) {
	s.days = days
	if s.workout == nil {
		return nil, s.err
	}
	return []domain.Workout{*s.workout}, s.err
}

func (s *stubWorkout) Progress(_ context.Context, _, _ string, days int) ([]domain.ProgressEntry, error) {
	s.days = days
	return nil, s.err
}

type stubAdaptation struct {
	insights *service.Insights
	applied  *domain.AdaptationProposal
	err      error
}

func (s *stubAdaptation) Insights(context.Context, string, int) (*service.Insights, error) {
	return s.insights, s.err
}

func (s *stubAdaptation) Apply(_ context.Context, userID, workoutID string, p domain.AdaptationProposal) (*domain.Workout, *domain.AdaptationRecord, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	s.applied = &p
	wid, _ := primitive.ObjectIDFromHex(workoutID)
	uid, _ := primitive.ObjectIDFromHex(userID)
	return &domain.Workout{ID: wid, UserID: uid},
		&domain.AdaptationRecord{ID: primitive.NewObjectID(), UserID: uid, WorkoutID: wid, AdaptationProposal: p},
		nil
}

func (s *stubAdaptation) History(context.Context, string) ([]domain.AdaptationRecord, error) {
	return nil, s.err
}

func testServices() (Services, *stubWorkout, *stubAdaptation, *stubExercise) {
	w := &stubWorkout{}
	a := &stubAdaptation{}
	e := &stubExercise{}
	return Services{
		Auth:       &stubAuth{},
		Profile:    &stubProfile{user: &domain.User{ID: primitive.NewObjectID(), Role: domain.RoleClient}},
		Exercise:   e,
		Workout:    w,
		Adaptation: a,
	}, w, a, e
}
