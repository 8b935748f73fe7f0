package api

import (
	"alcyxob/adaptive-coach/internal/domain"
	"alcyxob/adaptive-coach/internal/service"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// UpdateProfileRequest fields are optional; omitted fields keep their value.
type UpdateProfileRequest struct {
	Name         *string              `json:"name" binding:"omitempty,min=1"`
	FitnessLevel *domain.FitnessLevel `json:"fitnessLevel" binding:"omitempty,oneof=beginner intermediate advanced"`
	Goals        []string             `json:"goals"`
	Equipment    []string             `json:"equipment"`
}

// GetProfile godoc
// @Summary Get my training profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	user, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// UpdateProfile godoc
// @Summary Update my training profile
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} UserResponse
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.profileService.UpdateProfile(c.Request.Context(), userID, service.ProfileUpdate{
		Name:         req.Name,
		FitnessLevel: req.FitnessLevel,
		Goals:        req.Goals,
		Equipment:    req.Equipment,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}
