package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tavvy/tavvy-pros-api/internal/middleware"
	"github.com/tavvy/tavvy-pros-api/internal/models"
	"github.com/tavvy/tavvy-pros-api/internal/services"
	"github.com/tavvy/tavvy-pros-api/internal/wizard"
)

// OnboardingHandler handles the session-protected wizard endpoints
type OnboardingHandler struct {
	service services.OnboardingServiceInterface
}

// NewOnboardingHandler creates a new OnboardingHandler
func NewOnboardingHandler(service services.OnboardingServiceInterface) *OnboardingHandler {
	return &OnboardingHandler{
		service: service,
	}
}

// GetState handles GET /api/v1/pro/onboarding
// Returns the stored wizard state for the session user, or a fresh state
// for a first-time user.
func (h *OnboardingHandler) GetState(c *gin.Context) {
	session, err := middleware.GetProSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}

	resp, err := h.service.Resume(c.Request.Context(), session.UserID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Could not load onboarding state", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SaveState handles PUT /api/v1/pro/onboarding/state
// Persists field edits without moving the step cursor.
func (h *OnboardingHandler) SaveState(c *gin.Context) {
	h.withState(c, h.service.SaveState)
}

// NextStep handles POST /api/v1/pro/onboarding/next
func (h *OnboardingHandler) NextStep(c *gin.Context) {
	h.withState(c, h.service.NextStep)
}

// PrevStep handles POST /api/v1/pro/onboarding/prev
func (h *OnboardingHandler) PrevStep(c *gin.Context) {
	session, err := middleware.GetProSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}

	var req models.OnboardingStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	resp, err := h.service.PrevStep(c.Request.Context(), session.UserID, &req.State)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Could not process step", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Complete handles POST /api/v1/pro/onboarding/complete
// The terminal action. Persistence failures here are surfaced to the user
// in the response body rather than hidden behind a saved flag.
func (h *OnboardingHandler) Complete(c *gin.Context) {
	session, err := middleware.GetProSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}

	var req models.OnboardingStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	resp, err := h.service.Complete(c.Request.Context(), session.UserID, session.Email, &req.State)
	if err != nil {
		if errors.Is(err, services.ErrNotOnReviewStep) {
			respondError(c, http.StatusConflict, "Onboarding is not on the review step", err)
			return
		}
		if errors.Is(err, services.ErrInvalidCategory) {
			respondError(c, http.StatusBadRequest, "Selected category is not available for this provider type", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Could not complete onboarding", err)
		return
	}

	status := http.StatusOK
	if !resp.Success {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

// UploadPhoto handles POST /api/v1/pro/onboarding/photos
func (h *OnboardingHandler) UploadPhoto(c *gin.Context) {
	session, err := middleware.GetProSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}

	var req models.PhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	resp, err := h.service.UploadPhoto(c.Request.Context(), session.UserID, &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Could not upload photo", err)
		return
	}

	status := http.StatusOK
	if !resp.Success {
		status = http.StatusBadRequest
	}
	c.JSON(status, resp)
}

// withState is the shared bind-then-call flow for state-carrying endpoints
func (h *OnboardingHandler) withState(
	c *gin.Context,
	op func(ctx context.Context, userID, email string, state *wizard.State) (*models.OnboardingStateResponse, error),
) {
	session, err := middleware.GetProSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}

	var req models.OnboardingStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	resp, err := op(c.Request.Context(), session.UserID, session.Email, &req.State)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCategory) {
			respondError(c, http.StatusBadRequest, "Selected category is not available for this provider type", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Could not save onboarding state", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
