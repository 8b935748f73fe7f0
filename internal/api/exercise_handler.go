package api

import (
	"alcyxob/adaptive-coach/internal/domain"
	"alcyxob/adaptive-coach/internal/service"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// CreateExerciseRequest defines the expected JSON for creating an exercise.
type CreateExerciseRequest struct {
	Name            string          `json:"name" binding:"required"`
	Category        domain.Category `json:"category" binding:"required,oneof=strength cardio flexibility"`
	MuscleGroups    []string        `json:"muscleGroups" binding:"required,min=1"`
	EquipmentNeeded []string        `json:"equipmentNeeded"`
	DifficultyBase  int             `json:"difficultyBase" binding:"required,min=1,max=10"`
	Instructions    string          `json:"instructions"`
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Category        domain.Category `json:"category"`
	MuscleGroups    []string        `json:"muscleGroups"`
	EquipmentNeeded []string        `json:"equipmentNeeded"`
	DifficultyBase  int             `json:"difficultyBase"`
	Instructions    string          `json:"instructions,omitempty"`
	HasMedia        bool            `json:"hasMedia"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type MediaUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type MediaUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:              ex.ID.Hex(),
		Name:            ex.Name,
		Category:        ex.Category,
		MuscleGroups:    nonNil(ex.MuscleGroups),
		EquipmentNeeded: nonNil(ex.EquipmentNeeded),
		DifficultyBase:  ex.DifficultyBase,
		Instructions:    ex.Instructions,
		HasMedia:        ex.MediaObjectKey != "",
		CreatedAt:       ex.CreatedAt,
		UpdatedAt:       ex.UpdatedAt,
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to a slice of ExerciseResponse DTO.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	return responses
}

// ListExercises godoc
// @Summary List the exercise catalog
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ExerciseResponse
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	exercises, err := h.exerciseService.ListCatalog(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// CreateExercise godoc
// @Summary Add an exercise to the catalog
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exercise body CreateExerciseRequest true "Exercise"
// @Success 201 {object} ExerciseResponse
// @Failure 409 {object} gin.H "Name already taken"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), service.ExerciseInput{
		Name:            req.Name,
		Category:        req.Category,
		MuscleGroups:    req.MuscleGroups,
		EquipmentNeeded: req.EquipmentNeeded,
		DifficultyBase:  req.DifficultyBase,
		Instructions:    req.Instructions,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// RequestMediaUpload godoc
// @Summary Get a presigned URL to upload an exercise demonstration
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 200 {object} MediaUploadResponse
// @Router /exercises/{id}/media-upload-url [post]
func (h *ExerciseHandler) RequestMediaUpload(c *gin.Context) {
	var req MediaUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	uploadURL, objectKey, err := h.exerciseService.RequestMediaUploadURL(c.Request.Context(), c.Param("id"), req.ContentType)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MediaUploadResponse{UploadURL: uploadURL, ObjectKey: objectKey})
}

// GetMediaURL godoc
// @Summary Get a presigned URL to view an exercise demonstration
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 200 {object} gin.H
// @Router /exercises/{id}/media-url [get]
func (h *ExerciseHandler) GetMediaURL(c *gin.Context) {
	url, err := h.exerciseService.MediaDownloadURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
