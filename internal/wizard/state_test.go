package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// filledState returns a state that satisfies every step requirement
func filledState() *State {
	s := NewState()
	s.ProviderType = ProviderTypePro
	s.PrimaryCategory = "Plumbing"
	s.Subcategories = []string{"Drain Services"}
	s.BusinessName = "AB Plumbing"
	s.Phone = "5551234567"
	s.City = "Austin"
	s.Region = "TX"
	s.ZipCode = "78701"
	s.Services = []Service{{Name: "Drain cleaning", PriceType: PriceQuote}}
	s.ShortBio = "Family owned since 1998"
	return s
}

func TestNewStateDefaults(t *testing.T) {
	s := NewState()

	assert.Equal(t, 1, s.CurrentStep)
	assert.Equal(t, LocationFixed, s.LocationType)
	assert.Empty(t, s.Subcategories)
	assert.Empty(t, s.Services)

	require.Len(t, s.Hours, 7)
	assert.True(t, s.Hours["sunday"].Closed)
	assert.False(t, s.Hours["monday"].Closed)
	assert.Equal(t, "09:00", s.Hours["monday"].Open)
	assert.Equal(t, "17:00", s.Hours["monday"].Close)
}

func TestSetProviderTypeResetsCategories(t *testing.T) {
	s := NewState()
	s.SetProviderType(ProviderTypePro)
	s.SetPrimaryCategory("Plumbing")
	s.Subcategories = []string{"Drain Services", "Water Heater"}

	s.SetProviderType(ProviderTypeRealtor)

	assert.Equal(t, ProviderTypeRealtor, s.ProviderType)
	assert.Empty(t, s.PrimaryCategory)
	assert.Empty(t, s.Subcategories)

	// Re-selecting the same type is a no-op
	s.PrimaryCategory = "Residential Sales"
	s.SetProviderType(ProviderTypeRealtor)
	assert.Equal(t, "Residential Sales", s.PrimaryCategory)
}

func TestSetPrimaryCategoryResetsSubcategories(t *testing.T) {
	s := NewState()
	s.SetProviderType(ProviderTypePro)
	s.SetPrimaryCategory("Plumbing")
	s.Subcategories = []string{"Drain Services"}

	s.SetPrimaryCategory("Electrical")
	assert.Empty(t, s.Subcategories)

	s.Subcategories = []string{"Wiring & Rewiring"}
	s.SetPrimaryCategory("Electrical")
	assert.Equal(t, []string{"Wiring & Rewiring"}, s.Subcategories)
}

func TestCanProceedProScenario(t *testing.T) {
	s := NewState()
	s.SetProviderType(ProviderTypePro)
	s.SetPrimaryCategory("Plumbing")
	s.Subcategories = []string{"Drain Services", "Water Heater"}

	assert.True(t, s.CanProceed(StepSubcategories))

	s.BusinessName = "A" // fails the length >= 2 rule
	s.Phone = "5551234567"
	assert.False(t, s.CanProceed(StepContact))

	s.BusinessName = "AB Plumbing"
	assert.True(t, s.CanProceed(StepContact))
}

func TestCanProceedContactEmail(t *testing.T) {
	s := NewState()
	s.BusinessName = "AB Plumbing"
	s.Phone = "5551234567"

	// Email is optional but must be well-formed when present
	assert.True(t, s.CanProceed(StepContact))

	s.Email = "foo"
	assert.False(t, s.CanProceed(StepContact))

	s.Email = "owner@abplumbing.com"
	assert.True(t, s.CanProceed(StepContact))
}

func TestCanProceedLocationExclusivity(t *testing.T) {
	s := NewState()
	s.LocationType = LocationFixed
	s.ServiceAreas = []string{"Austin", "Round Rock"}

	// Fixed path ignores service areas entirely
	assert.False(t, s.CanProceed(StepLocation))

	s.City = "Austin"
	s.Region = "TX"
	assert.False(t, s.CanProceed(StepLocation), "zip still missing")

	s.ZipCode = "78701"
	assert.True(t, s.CanProceed(StepLocation))

	// Mobile path ignores address fields entirely
	s = NewState()
	s.LocationType = LocationMobile
	s.City = "Austin"
	s.Region = "TX"
	s.ZipCode = "78701"
	assert.False(t, s.CanProceed(StepLocation))

	s.ServiceAreas = []string{"Austin"}
	assert.True(t, s.CanProceed(StepLocation))
}

func TestCanProceedOptionalSteps(t *testing.T) {
	s := NewState()

	assert.True(t, s.CanProceed(StepHours))
	assert.True(t, s.CanProceed(StepPhotos))
	assert.True(t, s.CanProceed(StepHighlights))
	assert.True(t, s.CanProceed(StepReview))

	assert.False(t, s.CanProceed(StepServices))
	s.Services = []Service{{Name: "Inspection"}}
	assert.True(t, s.CanProceed(StepServices))

	assert.False(t, s.CanProceed(StepBio))
	s.ShortBio = "We fix things"
	assert.True(t, s.CanProceed(StepBio))

	assert.False(t, s.CanProceed(0))
	assert.False(t, s.CanProceed(12))
}

func TestAdvanceGating(t *testing.T) {
	s := NewState()

	// Step 1 requires a provider type; a blocked advance leaves state unchanged
	assert.False(t, s.Advance())
	assert.Equal(t, 1, s.CurrentStep)

	s.SetProviderType(ProviderTypePro)
	assert.True(t, s.Advance())
	assert.Equal(t, 2, s.CurrentStep)

	// Step 2 blocked until a category is picked
	assert.False(t, s.Advance())
	assert.Equal(t, 2, s.CurrentStep)
}

func TestAdvanceWalksAllSteps(t *testing.T) {
	s := filledState()

	for step := 1; step < StepCount; step++ {
		require.True(t, s.Advance(), "blocked at step %d", step)
	}
	assert.Equal(t, StepReview, s.CurrentStep)
	assert.True(t, s.Completed())

	// Review is the last step; next is a no-op there
	assert.False(t, s.Advance())
	assert.Equal(t, StepReview, s.CurrentStep)
}

func TestBack(t *testing.T) {
	s := NewState()
	s.CurrentStep = 3

	s.Back()
	assert.Equal(t, 2, s.CurrentStep)
	s.Back()
	assert.Equal(t, 1, s.CurrentStep)
	s.Back()
	assert.Equal(t, 1, s.CurrentStep)
}

func TestSpecialties(t *testing.T) {
	s := NewState()
	assert.Empty(t, s.Specialties())

	s.PrimaryCategory = "Plumbing"
	s.Subcategories = []string{"Drain Services", "Water Heater"}
	assert.Equal(t, []string{"Plumbing", "Drain Services", "Water Heater"}, s.Specialties())
}

func TestNormalize(t *testing.T) {
	s := &State{CurrentStep: 99}
	s.Normalize()

	assert.Equal(t, StepCount, s.CurrentStep)
	assert.Equal(t, LocationFixed, s.LocationType)
	assert.NotNil(t, s.Subcategories)
	assert.NotNil(t, s.ServiceAreas)
	assert.NotNil(t, s.Services)
	assert.NotNil(t, s.WorkPhotos)
	assert.NotNil(t, s.Highlights)
	assert.Len(t, s.Hours, 7)

	s = &State{CurrentStep: 0, LocationType: LocationMobile}
	s.Normalize()
	assert.Equal(t, 1, s.CurrentStep)
	assert.Equal(t, LocationMobile, s.LocationType)
}

func TestHasHelpers(t *testing.T) {
	s := NewState()
	assert.True(t, s.HasOpenHours())

	for day, h := range s.Hours {
		h.Closed = true
		s.Hours[day] = h
	}
	assert.False(t, s.HasOpenHours())

	assert.False(t, s.HasBio())
	s.FullDescription = "Long form"
	assert.True(t, s.HasBio())

	assert.False(t, s.HasHighlight(HighlightLicensed))
	s.Highlights = []string{HighlightLicensed}
	assert.True(t, s.HasHighlight(HighlightLicensed))
	assert.False(t, s.HasLicenseInfo())
	s.LicenseNumber = "TX-12345"
	s.LicenseState = "TX"
	assert.True(t, s.HasLicenseInfo())
}
