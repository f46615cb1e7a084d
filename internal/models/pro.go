package models

import (
	"strings"
	"time"

	"github.com/tavvy/tavvy-pros-api/internal/wizard"
)

// Pro represents a service-provider account with its onboarding progress.
// The joined Place carries the business-location fields; Pro owns the
// profile, specialty and onboarding fields.
type Pro struct {
	ID                  int64               `json:"id"`
	UserID              string              `json:"userId"`
	Email               string              `json:"email"`
	PlaceID             *int64              `json:"placeId"`
	ProviderType        wizard.ProviderType `json:"providerType"`
	Specialties         []string            `json:"specialties"`
	Services            []wizard.Service    `json:"services"`
	LocationType        wizard.LocationType `json:"locationType"`
	ServiceAreas        []string            `json:"serviceAreas"`
	ServiceRadius       int                 `json:"serviceRadius"`
	Highlights          []string            `json:"highlights"`
	LicenseNumber       string              `json:"licenseNumber"`
	LicenseState        string              `json:"licenseState"`
	ShortBio            string              `json:"shortBio"`
	YearEstablished     int                 `json:"yearEstablished"`
	OnboardingStep      int                 `json:"onboardingStep"`
	ProfileCompletion   int                 `json:"profileCompletion"`
	OnboardingCompleted bool                `json:"onboardingCompleted"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

// PrimaryCategory returns the first specialty, which by construction is the
// primary category (specialties = [primaryCategory, ...subcategories]).
func (p *Pro) PrimaryCategory() string {
	if len(p.Specialties) == 0 {
		return ""
	}
	return p.Specialties[0]
}

// Subcategories returns the specialty tail after the primary category
func (p *Pro) Subcategories() []string {
	if len(p.Specialties) <= 1 {
		return []string{}
	}
	return append([]string{}, p.Specialties[1:]...)
}

// PublicProResponse is the directory listing format for a completed pro
type PublicProResponse struct {
	ID              int64    `json:"id"`
	Slug            string   `json:"slug"`
	BusinessName    string   `json:"businessName"`
	ProviderType    string   `json:"providerType"`
	PrimaryCategory string   `json:"primaryCategory"`
	Specialties     string   `json:"specialties"`
	City            string   `json:"city"`
	State           string   `json:"state"`
	ServiceAreas    string   `json:"serviceAreas"`
	Highlights      []string `json:"highlights"`
	ShortBio        string   `json:"shortBio"`
	ProfilePhoto    string   `json:"profilePhoto"`
	CoverPhoto      string   `json:"coverPhoto"`
	Link            string   `json:"link"`
}

// ToPublicResponse converts a Pro and its Place to the directory format.
// The place may be nil for fallback-path records that never got one.
func (p *Pro) ToPublicResponse(place *Place, baseURL string) PublicProResponse {
	resp := PublicProResponse{
		ID:              p.ID,
		ProviderType:    string(p.ProviderType),
		PrimaryCategory: p.PrimaryCategory(),
		Specialties:     strings.Join(p.Specialties, ","),
		ServiceAreas:    strings.Join(p.ServiceAreas, ","),
		Highlights:      p.Highlights,
		ShortBio:        p.ShortBio,
	}
	if place != nil {
		resp.Slug = place.Slug
		resp.BusinessName = place.Name
		resp.City = place.City
		resp.State = place.State
		resp.ProfilePhoto = place.ProfilePhoto
		resp.CoverPhoto = place.CoverPhoto
		resp.Link = baseURL + "/pros/" + place.Slug
	}
	return resp
}

// DirectoryFilter narrows the public pro listing
type DirectoryFilter struct {
	ProviderType string
	Category     string
	City         string
	ForceRefresh bool
}

// Matches reports whether the pro (with its place) passes the filter
func (f DirectoryFilter) Matches(pro *Pro, place *Place) bool {
	if f.ProviderType != "" && string(pro.ProviderType) != f.ProviderType {
		return false
	}
	if f.Category != "" {
		found := false
		for _, s := range pro.Specialties {
			if strings.EqualFold(s, f.Category) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.City != "" {
		if place == nil || !strings.EqualFold(place.City, f.City) {
			// Mobile pros match on service areas instead
			for _, area := range pro.ServiceAreas {
				if strings.EqualFold(area, f.City) {
					return true
				}
			}
			return false
		}
	}
	return true
}

// LegacyProviderRecord is the denormalized row written to the legacy
// pro_providers table on the fallback save path.
type LegacyProviderRecord struct {
	UserID              string `json:"userId"`
	BusinessName        string `json:"businessName"`
	Phone               string `json:"phone"`
	Email               string `json:"email"`
	ProviderType        string `json:"providerType"`
	PrimaryCategory     string `json:"primaryCategory"`
	Specialties         string `json:"specialties"`
	City                string `json:"city"`
	State               string `json:"state"`
	ZipCode             string `json:"zipCode"`
	ShortBio            string `json:"shortBio"`
	OnboardingStep      int    `json:"onboardingStep"`
	ProfileCompletion   int    `json:"profileCompletion"`
	OnboardingCompleted bool   `json:"onboardingCompleted"`
}
