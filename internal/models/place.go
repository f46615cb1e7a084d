package models

import (
	"time"

	"github.com/tavvy/tavvy-pros-api/internal/wizard"
)

// Place is the normalized business-location record associated with a pro
type Place struct {
	ID               int64                      `json:"id"`
	Slug             string                     `json:"slug"`
	Name             string                     `json:"name"`
	Phone            string                     `json:"phone"`
	Email            string                     `json:"email"`
	Website          string                     `json:"website"`
	Address          string                     `json:"address"`
	City             string                     `json:"city"`
	State            string                     `json:"state"`
	ZipCode          string                     `json:"zipCode"`
	Hours            map[string]wizard.DayHours `json:"hours"`
	ProfilePhoto     string                     `json:"profilePhoto"`
	CoverPhoto       string                     `json:"coverPhoto"`
	WorkPhotos       []string                   `json:"workPhotos"`
	Description      string                     `json:"description"`
	ShortDescription string                     `json:"shortDescription"`
	CreatedAt        time.Time                  `json:"createdAt"`
	UpdatedAt        time.Time                  `json:"updatedAt"`
}
