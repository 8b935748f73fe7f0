package api

import (
	"alcyxob/adaptive-coach/internal/domain"
	"alcyxob/adaptive-coach/internal/service"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdaptationHandler struct {
	adaptationService service.AdaptationService
}

func NewAdaptationHandler(adaptationService service.AdaptationService) *AdaptationHandler {
	return &AdaptationHandler{adaptationService: adaptationService}
}

// AdaptationDTO is the wire form of a proposal, as returned by insights
// and accepted by apply.
type AdaptationDTO struct {
	Type          domain.AdaptationType `json:"type" binding:"required,oneof=increase_difficulty decrease_difficulty change_exercise add_rest"`
	Reason        string                `json:"reason"`
	ExerciseID    string                `json:"exerciseId,omitempty"`
	PreviousValue map[string]any        `json:"previousValue"`
	NewValue      map[string]any        `json:"newValue"`
}

type InsightsResponse struct {
	CompletionRate       float64         `json:"completionRate"`
	ConsistencyScore     float64         `json:"consistencyScore"`
	DifficultyTrend      float64         `json:"difficultyTrend"`
	WorkoutCount         int             `json:"workoutCount"`
	WindowDays           int             `json:"windowDays"`
	SuggestedAdaptations []AdaptationDTO `json:"suggestedAdaptations"`
	Recommendations      []string        `json:"recommendations"`
}

type AdaptationRecordResponse struct {
	ID        string `json:"id"`
	WorkoutID string `json:"workoutId,omitempty"`
	AdaptationDTO
	CreatedAt time.Time `json:"createdAt"`
}

type ApplyAdaptationResponse struct {
	Workout WorkoutResponse          `json:"workout"`
	Record  AdaptationRecordResponse `json:"record"`
}

func mapProposal(p domain.AdaptationProposal) AdaptationDTO {
	dto := AdaptationDTO{
		Type:          p.Type,
		Reason:        p.Reason,
		PreviousValue: p.PreviousValue,
		NewValue:      p.NewValue,
	}
	if !p.ExerciseID.IsZero() {
		dto.ExerciseID = p.ExerciseID.Hex()
	}
	return dto
}

func mapRecord(r *domain.AdaptationRecord) AdaptationRecordResponse {
	resp := AdaptationRecordResponse{
		ID:            r.ID.Hex(),
		AdaptationDTO: mapProposal(r.AdaptationProposal),
		CreatedAt:     r.CreatedAt,
	}
	if !r.WorkoutID.IsZero() {
		resp.WorkoutID = r.WorkoutID.Hex()
	}
	return resp
}

func (d AdaptationDTO) toDomain() (domain.AdaptationProposal, error) {
	p := domain.AdaptationProposal{
		Type:          d.Type,
		Reason:        d.Reason,
		PreviousValue: d.PreviousValue,
		NewValue:      d.NewValue,
	}
	if d.ExerciseID != "" {
		id, err := primitive.ObjectIDFromHex(d.ExerciseID)
		if err != nil {
			return p, fmt.Errorf("invalid exercise id %q", d.ExerciseID)
		}
		p.ExerciseID = id
	}
	return p, nil
}

// GetInsights godoc
// @Summary Analyse recent workouts and suggest adaptations
// @Tags Adaptations
// @Produce json
// @Security BearerAuth
// @Param days query int false "Window in days"
// @Success 200 {object} InsightsResponse
// @Router /adaptations/insights [get]
func (h *AdaptationHandler) GetInsights(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	days, ok := queryDays(c)
	if !ok {
		return
	}
	insights, err := h.adaptationService.Insights(c.Request.Context(), userID, days)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	suggested := make([]AdaptationDTO, len(insights.SuggestedAdaptations))
	for i, p := range insights.SuggestedAdaptations {
		suggested[i] = mapProposal(p)
	}
	c.JSON(http.StatusOK, InsightsResponse{
		CompletionRate:       insights.Metrics.CompletionRate,
		ConsistencyScore:     insights.Metrics.ConsistencyScore,
		DifficultyTrend:      insights.Metrics.DifficultyTrend,
		WorkoutCount:         insights.WorkoutCount,
		WindowDays:           insights.WindowDays,
		SuggestedAdaptations: suggested,
		Recommendations:      nonNil(insights.Recommendations),
	})
}

// ApplyAdaptation godoc
// @Summary Apply an adaptation to a workout
// @Tags Adaptations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Param adaptation body AdaptationDTO true "Adaptation to apply"
// @Success 200 {object} ApplyAdaptationResponse
// @Router /workouts/{id}/adaptations [post]
func (h *AdaptationHandler) ApplyAdaptation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req AdaptationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	proposal, err := req.toDomain()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	workout, record, err := h.adaptationService.Apply(c.Request.Context(), userID, c.Param("id"), proposal)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ApplyAdaptationResponse{
		Workout: MapWorkoutToResponse(workout),
		Record:  mapRecord(record),
	})
}

// GetHistory godoc
// @Summary Most recent applied adaptations, newest first
// @Tags Adaptations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} AdaptationRecordResponse
// @Router /adaptations/history [get]
func (h *AdaptationHandler) GetHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	records, err := h.adaptationService.History(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp := make([]AdaptationRecordResponse, len(records))
	for i := range records {
		resp[i] = mapRecord(&records[i])
	}
	c.JSON(http.StatusOK, resp)
}
