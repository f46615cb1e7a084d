package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreEmptyState(t *testing.T) {
	// A fresh state still has default hours with open weekdays
	assert.Equal(t, weightHours, Score(NewState()))

	// With everything closed the score bottoms out at zero
	s := NewState()
	for day, h := range s.Hours {
		h.Closed = true
		s.Hours[day] = h
	}
	assert.Equal(t, 0, Score(s))
}

// A fully filled profile lands exactly on 100 with the weight overshoot
// absorbed by the cap
func TestScoreFullProfile(t *testing.T) {
	s := filledState()
	s.Services = []Service{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	s.ProfilePhoto = "https://cdn.tavvy.com/p.jpg"
	s.CoverPhoto = "https://cdn.tavvy.com/c.jpg"
	s.WorkPhotos = []string{"1.jpg", "2.jpg", "3.jpg"}
	s.Highlights = []string{HighlightInsured}
	s.Website = "https://abplumbing.com"

	assert.Equal(t, 100, Score(s))
}

func TestScoreProportionalFields(t *testing.T) {
	s := NewState()

	s.Services = []Service{{Name: "a"}}
	assert.Equal(t, weightHours+5, Score(s)) // floor(15*1/3)

	s.Services = append(s.Services, Service{Name: "b"})
	assert.Equal(t, weightHours+10, Score(s)) // floor(15*2/3)

	s.Services = append(s.Services, Service{Name: "c"}, Service{Name: "d"})
	assert.Equal(t, weightHours+15, Score(s), "capped at full credit")

	s = NewState()
	s.WorkPhotos = []string{"1.jpg"}
	assert.Equal(t, weightHours+3, Score(s)) // floor(10*1/3)

	s.WorkPhotos = append(s.WorkPhotos, "2.jpg")
	assert.Equal(t, weightHours+6, Score(s)) // floor(10*2/3)

	s.WorkPhotos = append(s.WorkPhotos, "3.jpg", "4.jpg")
	assert.Equal(t, weightHours+10, Score(s))
}

func TestScoreLocationEitherPath(t *testing.T) {
	s := NewState()
	base := Score(s)

	s.City = "Austin"
	s.Region = "TX"
	s.ZipCode = "78701"
	assert.Equal(t, base+weightLocation, Score(s))

	s = NewState()
	s.LocationType = LocationMobile
	s.ServiceAreas = []string{"Austin"}
	assert.Equal(t, base+weightLocation, Score(s))
}

func TestScoreInvalidFieldsEarnNothing(t *testing.T) {
	s := NewState()
	base := Score(s)

	s.BusinessName = "A" // too short
	s.Phone = "555123"   // 6 digits
	assert.Equal(t, base, Score(s))

	s.BusinessName = "AB Plumbing"
	s.Phone = "5551234567"
	assert.Equal(t, base+weightBusinessName+weightPhone, Score(s))
}

// Filling any additional field never lowers the score
func TestScoreMonotonic(t *testing.T) {
	s := NewState()
	prev := Score(s)

	fill := []func(){
		func() { s.ProviderType = ProviderTypePro },
		func() { s.PrimaryCategory = "Plumbing" },
		func() { s.BusinessName = "AB Plumbing" },
		func() { s.Phone = "5551234567" },
		func() { s.City, s.Region, s.ZipCode = "Austin", "TX", "78701" },
		func() { s.Services = append(s.Services, Service{Name: "Drain cleaning"}) },
		func() { s.ProfilePhoto = "p.jpg" },
		func() { s.CoverPhoto = "c.jpg" },
		func() { s.WorkPhotos = append(s.WorkPhotos, "w.jpg") },
		func() { s.Highlights = append(s.Highlights, HighlightInsured) },
		func() { s.ShortBio = "bio" },
		func() { s.Website = "https://example.com" },
	}

	for i, f := range fill {
		f()
		got := Score(s)
		assert.GreaterOrEqual(t, got, prev, "score dropped after fill %d", i)
		assert.LessOrEqual(t, got, 100)
		prev = got
	}
	// One of three services and one of three work photos earn partial
	// credit, so this fill stays below the 100 cap.
	want := weightProviderType + weightCategory + weightBusinessName +
		weightPhone + weightLocation + weightHours +
		weightServices/servicesFullCredit + weightProfilePhoto +
		weightCoverPhoto + weightWorkPhotos/workPhotosFullCredit +
		weightHighlights + weightBio + weightWebsite
	assert.Equal(t, want, prev)
}
