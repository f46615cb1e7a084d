package models

import "github.com/tavvy/tavvy-pros-api/internal/wizard"

// OnboardingStateRequest is the payload for the step transition endpoints.
// The client sends its full working copy of the wizard state; the server
// owns the step cursor and ignores the client's currentStep on transitions.
type OnboardingStateRequest struct {
	State wizard.State `json:"state" binding:"required"`
}

// OnboardingStateResponse is returned by every onboarding endpoint
type OnboardingStateResponse struct {
	State             *wizard.State `json:"state"`
	ProfileCompletion int           `json:"profileCompletion"`
	CanProceed        bool          `json:"canProceed"`
	Saved             bool          `json:"saved"`
	Completed         bool          `json:"completed,omitempty"`
}

// CompleteOnboardingResponse is returned by the terminal complete action.
// Unlike step saves, completion failures are surfaced to the user.
type CompleteOnboardingResponse struct {
	Success           bool   `json:"success"`
	ProfileCompletion int    `json:"profileCompletion"`
	ProfileURL        string `json:"profileUrl,omitempty"`
	Error             string `json:"error,omitempty"`
}

// PhotoUploadRequest is the payload for uploading a single photo.
// ImageData accepts raw base64 or a data URI.
type PhotoUploadRequest struct {
	Slot        string `json:"slot" binding:"required,oneof=profile cover work"`
	FileName    string `json:"fileName" binding:"required,max=255"`
	ContentType string `json:"contentType" binding:"required,max=100"`
	ImageData   string `json:"imageData" binding:"required"`
}

// PhotoUploadResponse returns the stored photo's public URL
type PhotoUploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
	Error   string `json:"error,omitempty"`
}

// CatalogResponse is the category tree for one provider type
type CatalogResponse struct {
	ProviderType string      `json:"providerType"`
	Categories   interface{} `json:"categories"`
}
