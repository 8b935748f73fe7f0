package api

import (
	"alcyxob/adaptive-coach/internal/domain"
	"alcyxob/adaptive-coach/internal/service"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WorkoutHandler struct {
	workoutService service.WorkoutService
}

func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

type GenerateWorkoutRequest struct {
	TargetDurationMinutes int      `json:"targetDurationMinutes" binding:"omitempty,min=1,max=240"`
	Equipment             []string `json:"equipment"`
}

// WorkoutExerciseDTO is the wire form of a planned or completed exercise.
type WorkoutExerciseDTO struct {
	ExerciseID      string   `json:"exerciseId" binding:"required"`
	Sets            *int     `json:"sets,omitempty" binding:"omitempty,min=0"`
	Reps            *int     `json:"reps,omitempty" binding:"omitempty,min=0"`
	Weight          *float64 `json:"weight,omitempty" binding:"omitempty,min=0"`
	DurationSeconds *int     `json:"durationSeconds,omitempty" binding:"omitempty,min=0"`
	RestSeconds     *int     `json:"restSeconds,omitempty" binding:"omitempty,min=0"`
}

type WorkoutResponse struct {
	ID                 string               `json:"id"`
	UserID             string               `json:"userId"`
	Date               string               `json:"date"`
	PlannedExercises   []WorkoutExerciseDTO `json:"plannedExercises"`
	CompletedExercises []WorkoutExerciseDTO `json:"completedExercises"`
	DifficultyScore    int                  `json:"difficultyScore"`
	CompletionRate     float64              `json:"completionRate"`
	DurationMinutes    int                  `json:"durationMinutes"`
}

type ProgressEntryResponse struct {
	ID                  string   `json:"id"`
	ExerciseID          string   `json:"exerciseId"`
	WeightUsed          *float64 `json:"weightUsed,omitempty"`
	RepsCompleted       *int     `json:"repsCompleted,omitempty"`
	DurationSeconds     *int     `json:"durationSeconds,omitempty"`
	PerceivedDifficulty int      `json:"perceivedDifficulty"`
	Date                string   `json:"date"`
}

func mapEntries(entries []domain.WorkoutExercise) []WorkoutExerciseDTO {
	out := make([]WorkoutExerciseDTO, len(entries))
	for i, e := range entries {
		out[i] = WorkoutExerciseDTO{
			ExerciseID:      e.ExerciseID.Hex(),
			Sets:            e.Sets,
			Reps:            e.Reps,
			Weight:          e.Weight,
			DurationSeconds: e.DurationSeconds,
			RestSeconds:     e.RestSeconds,
		}
	}
	return out
}

func (d WorkoutExerciseDTO) toDomain() (domain.WorkoutExercise, error) {
	id, err := primitive.ObjectIDFromHex(d.ExerciseID)
	if err != nil {
		return domain.WorkoutExercise{}, fmt.Errorf("invalid exercise id %q", d.ExerciseID)
	}
	return domain.WorkoutExercise{
		ExerciseID:      id,
		Sets:            d.Sets,
		Reps:            d.Reps,
		Weight:          d.Weight,
		DurationSeconds: d.DurationSeconds,
		RestSeconds:     d.RestSeconds,
	}, nil
}

// MapWorkoutToResponse converts a domain.Workout to its DTO.
func MapWorkoutToResponse(w *domain.Workout) WorkoutResponse {
	return WorkoutResponse{
		ID:                 w.ID.Hex(),
		UserID:             w.UserID.Hex(),
		Date:               w.Date.UTC().Format(domain.DateLayout),
		PlannedExercises:   mapEntries(w.PlannedExercises),
		CompletedExercises: mapEntries(w.CompletedExercises),
		DifficultyScore:    w.DifficultyScore,
		CompletionRate:     w.CompletionRate,
		DurationMinutes:    w.DurationMinutes,
	}
}

// ListWorkouts godoc
// @Summary List my recent workouts, newest first
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param days query int false "Window in days"
// @Success 200 {array} WorkoutResponse
// @Router /workouts [get]
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	days, ok := queryDays(c)
	if !ok {
		return
	}
	workouts, err := h.workoutService.ListWorkouts(c.Request.Context(), userID, days)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp := make([]WorkoutResponse, len(workouts))
	for i := range workouts {
		resp[i] = MapWorkoutToResponse(&workouts[i])
	}
	c.JSON(http.StatusOK, resp)
}

// GetTodayWorkout godoc
// @Summary Get today's workout
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} WorkoutResponse
// @Failure 404 {object} gin.H "No workout today"
// @Router /workouts/today [get]
func (h *WorkoutHandler) GetTodayWorkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	workout, err := h.workoutService.TodayWorkout(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// GenerateWorkout godoc
// @Summary Generate a new adaptive workout for today
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GenerateWorkoutRequest false "Generation options"
// @Success 201 {object} WorkoutResponse
// @Router /workouts/generate [post]
func (h *WorkoutHandler) GenerateWorkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req GenerateWorkoutRequest
	// An empty body means defaults.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	workout, err := h.workoutService.GenerateWorkout(c.Request.Context(), userID, service.GenerateRequest{
		TargetDurationMinutes: req.TargetDurationMinutes,
		Equipment:             req.Equipment,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutToResponse(workout))
}

// CompleteExercise godoc
// @Summary Record a completed exercise
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Param exercise body WorkoutExerciseDTO true "Performed exercise"
// @Success 200 {object} WorkoutResponse
// @Router /workouts/{id}/complete [post]
func (h *WorkoutHandler) CompleteExercise(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req WorkoutExerciseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	entry, err := req.toDomain()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	workout, err := h.workoutService.CompleteExercise(c.Request.Context(), userID, c.Param("id"), entry)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// ScoreWorkout godoc
// @Summary Score a workout's performance
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Success 200 {object} service.WorkoutScore
// @Router /workouts/{id}/score [get]
func (h *WorkoutHandler) ScoreWorkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	score, err := h.workoutService.ScoreWorkout(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, score)
}

// GetProgress godoc
// @Summary Progress entries for charts, oldest first
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param exerciseId query string false "Only this exercise"
// @Param days query int false "Window in days"
// @Success 200 {array} ProgressEntryResponse
// @Router /progress [get]
func (h *WorkoutHandler) GetProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	days, ok := queryDays(c)
	if !ok {
		return
	}
	entries, err := h.workoutService.Progress(c.Request.Context(), userID, c.Query("exerciseId"), days)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp := make([]ProgressEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = ProgressEntryResponse{
			ID:                  e.ID.Hex(),
			ExerciseID:          e.ExerciseID.Hex(),
			WeightUsed:          e.WeightUsed,
			RepsCompleted:       e.RepsCompleted,
			DurationSeconds:     e.DurationSeconds,
			PerceivedDifficulty: e.PerceivedDifficulty,
			Date:                e.Date.UTC().Format(domain.DateLayout),
		}
	}
	c.JSON(http.StatusOK, resp)
}
