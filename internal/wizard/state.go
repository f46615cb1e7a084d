package wizard

// ProviderType identifies which branch of the catalog and which onboarding
// content a pro sees. Category sets are disjoint per provider type.
type ProviderType string

const (
	ProviderTypePro     ProviderType = "pro"
	ProviderTypeRealtor ProviderType = "realtor"
	ProviderTypeOnTheGo ProviderType = "on_the_go"
)

// Valid reports whether the provider type is one of the known values
func (p ProviderType) Valid() bool {
	switch p {
	case ProviderTypePro, ProviderTypeRealtor, ProviderTypeOnTheGo:
		return true
	}
	return false
}

// LocationType selects between a fixed storefront address and a mobile
// service-area business. The two requirement sets are mutually exclusive.
type LocationType string

const (
	LocationFixed  LocationType = "fixed"
	LocationMobile LocationType = "mobile"
)

// PriceType describes how a service is priced
type PriceType string

const (
	PriceQuote PriceType = "quote"
	PriceFixed PriceType = "fixed"
	PriceRange PriceType = "range"
)

// Service is a single offered service with optional pricing
type Service struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceType   PriceType `json:"priceType"`
	PriceMin    float64   `json:"priceMin"`
	PriceMax    float64   `json:"priceMax"`
}

// DayHours holds opening hours for a single weekday
type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

// Weekdays in display order; also the canonical key set for State.Hours
var Weekdays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// Highlight badge identifiers
const (
	HighlightLicensed          = "licensed"
	HighlightInsured           = "insured"
	HighlightBackgroundChecked = "background_checked"
	HighlightFamilyOwned       = "family_owned"
	HighlightEcoFriendly       = "eco_friendly"
	HighlightEmergencyService  = "emergency_service"
	HighlightFreeEstimates     = "free_estimates"
	HighlightVeteranOwned      = "veteran_owned"
)

// Wizard step numbers. The flow is linear: no step is skipped based on data,
// though content within a step varies by provider type and category.
const (
	StepProviderType  = 1
	StepCategory      = 2
	StepSubcategories = 3
	StepContact       = 4
	StepLocation      = 5
	StepHours         = 6
	StepServices      = 7
	StepPhotos        = 8
	StepHighlights    = 9
	StepBio           = 10
	StepReview        = 11

	StepCount = 11
)

// State is the wizard's working copy of a pro profile. It lives only for the
// duration of an editing session; the places/pros records are the durable
// state and this object is rehydrated from them on resume.
type State struct {
	ProviderType    ProviderType `json:"providerType"`
	PrimaryCategory string       `json:"primaryCategory"`
	Subcategories   []string     `json:"selectedSubcategories"`

	BusinessName    string `json:"businessName"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Website         string `json:"website"`
	YearEstablished int    `json:"yearEstablished"`

	LocationType  LocationType `json:"locationType"`
	Address       string       `json:"address"`
	City          string       `json:"city"`
	Region        string       `json:"state"`
	ZipCode       string       `json:"zipCode"`
	ServiceAreas  []string     `json:"serviceAreas"`
	ServiceRadius int          `json:"serviceRadius"`

	Hours map[string]DayHours `json:"hours"`

	Services []Service `json:"services"`

	ProfilePhoto string   `json:"profilePhoto"`
	CoverPhoto   string   `json:"coverPhoto"`
	WorkPhotos   []string `json:"workPhotos"`

	Highlights    []string `json:"highlights"`
	LicenseNumber string   `json:"licenseNumber"`
	LicenseState  string   `json:"licenseState"`

	ShortBio        string `json:"shortBio"`
	FullDescription string `json:"fullDescription"`

	CurrentStep int `json:"currentStep"`
}

// NewState returns a fresh wizard state positioned at step 1
func NewState() *State {
	return &State{
		LocationType:  LocationFixed,
		Subcategories: []string{},
		ServiceAreas:  []string{},
		Hours:         DefaultHours(),
		Services:      []Service{},
		WorkPhotos:    []string{},
		Highlights:    []string{},
		CurrentStep:   StepProviderType,
	}
}

// DefaultHours returns 9-to-5 weekday hours with Sunday closed
func DefaultHours() map[string]DayHours {
	hours := make(map[string]DayHours, len(Weekdays))
	for _, day := range Weekdays {
		hours[day] = DayHours{Open: "09:00", Close: "17:00", Closed: day == "sunday"}
	}
	return hours
}

// SetProviderType switches the provider type. Category sets are disjoint per
// provider type, so the primary category and subcategory selections are
// cleared to keep the category-consistency invariant.
func (s *State) SetProviderType(pt ProviderType) {
	if pt == s.ProviderType {
		return
	}
	s.ProviderType = pt
	s.PrimaryCategory = ""
	s.Subcategories = []string{}
}

// SetPrimaryCategory switches the primary category, clearing subcategory
// selections that belong to the previous category.
func (s *State) SetPrimaryCategory(category string) {
	if category == s.PrimaryCategory {
		return
	}
	s.PrimaryCategory = category
	s.Subcategories = []string{}
}

// CanProceed reports whether the given step's requirements are satisfied.
// Unknown steps are never proceedable.
func (s *State) CanProceed(step int) bool {
	switch step {
	case StepProviderType:
		return s.ProviderType != ""
	case StepCategory:
		return s.PrimaryCategory != ""
	case StepSubcategories:
		return len(s.Subcategories) > 0
	case StepContact:
		if !ValidBusinessName(s.BusinessName) || !ValidPhone(s.Phone) {
			return false
		}
		return s.Email == "" || ValidEmail(s.Email)
	case StepLocation:
		if s.LocationType == LocationMobile {
			return len(s.ServiceAreas) > 0
		}
		return s.City != "" && s.Region != "" && s.ZipCode != ""
	case StepHours:
		return true // hours are optional
	case StepServices:
		return len(s.Services) > 0
	case StepPhotos, StepHighlights:
		return true // optional
	case StepBio:
		return s.ShortBio != ""
	case StepReview:
		return true
	}
	return false
}

// Advance moves the cursor forward one step. It is a no-op when the current
// step's requirements are not met or the wizard is already on the review
// step; Complete is a distinct action from next.
func (s *State) Advance() bool {
	if s.CurrentStep >= StepCount {
		return false
	}
	if !s.CanProceed(s.CurrentStep) {
		return false
	}
	s.CurrentStep++
	return true
}

// Back moves the cursor back one step, floored at step 1. Going back never
// triggers validation or persistence.
func (s *State) Back() {
	if s.CurrentStep > 1 {
		s.CurrentStep--
	}
}

// Completed reports whether the wizard has reached the review step
func (s *State) Completed() bool {
	return s.CurrentStep == StepReview
}

// Specialties flattens the category selection into the tag list stored on
// the pro record: primary category first, then subcategories.
func (s *State) Specialties() []string {
	if s.PrimaryCategory == "" {
		return append([]string{}, s.Subcategories...)
	}
	specialties := make([]string, 0, len(s.Subcategories)+1)
	specialties = append(specialties, s.PrimaryCategory)
	specialties = append(specialties, s.Subcategories...)
	return specialties
}

// HasOpenHours reports whether at least one weekday is open
func (s *State) HasOpenHours() bool {
	for _, day := range s.Hours {
		if !day.Closed {
			return true
		}
	}
	return false
}

// HasLocation reports whether the active location path is filled in
func (s *State) HasLocation() bool {
	if s.LocationType == LocationMobile {
		return len(s.ServiceAreas) > 0
	}
	return s.Address != "" || (s.City != "" && s.Region != "" && s.ZipCode != "")
}

// HasBio reports whether either bio field is filled in
func (s *State) HasBio() bool {
	return s.ShortBio != "" || s.FullDescription != ""
}

// HasLicenseInfo reports whether the conditional license fields are filled.
// They are only required when the licensed highlight is selected.
func (s *State) HasLicenseInfo() bool {
	return s.LicenseNumber != "" && s.LicenseState != ""
}

// HasHighlight reports whether the given badge is selected
func (s *State) HasHighlight(badge string) bool {
	for _, h := range s.Highlights {
		if h == badge {
			return true
		}
	}
	return false
}

// Normalize coerces a state loaded from storage into well-formed shape:
// nil slices become empty, missing hours are defaulted and the step cursor
// is clamped to [1, StepCount]. Everything downstream assumes a normalized
// state, so this runs exactly once at the persistence boundary.
func (s *State) Normalize() {
	if s.Subcategories == nil {
		s.Subcategories = []string{}
	}
	if s.ServiceAreas == nil {
		s.ServiceAreas = []string{}
	}
	if s.Services == nil {
		s.Services = []Service{}
	}
	if s.WorkPhotos == nil {
		s.WorkPhotos = []string{}
	}
	if s.Highlights == nil {
		s.Highlights = []string{}
	}
	if len(s.Hours) == 0 {
		s.Hours = DefaultHours()
	}
	if s.LocationType != LocationMobile {
		s.LocationType = LocationFixed
	}
	if s.CurrentStep < 1 {
		s.CurrentStep = 1
	}
	if s.CurrentStep > StepCount {
		s.CurrentStep = StepCount
	}
}
