package wizard

// Field weights for the profile completion score. The listed weights sum
// past 100 and Score caps the total at 100. They are load-bearing for
// parity with stored profile_completion values, so change them only
// together with a backfill.
const (
	weightProviderType = 5
	weightCategory     = 5
	weightBusinessName = 5
	weightPhone        = 5
	weightLocation     = 10
	weightHours        = 10
	weightServices     = 15
	weightProfilePhoto = 10
	weightCoverPhoto   = 5
	weightWorkPhotos   = 10
	weightHighlights   = 10
	weightBio          = 10
	weightWebsite      = 5

	// Full credit thresholds for the proportional fields
	servicesFullCredit   = 3
	workPhotosFullCredit = 3
)

// Score computes the 0-100 profile completion score from the current state.
// It is a pure projection and is recomputed on every use, never stored on
// the state itself.
func Score(s *State) int {
	score := 0

	if s.ProviderType != "" {
		score += weightProviderType
	}
	if s.PrimaryCategory != "" {
		score += weightCategory
	}
	if ValidBusinessName(s.BusinessName) {
		score += weightBusinessName
	}
	if ValidPhone(s.Phone) {
		score += weightPhone
	}
	if s.HasLocation() {
		score += weightLocation
	}
	if s.HasOpenHours() {
		score += weightHours
	}
	score += proportional(len(s.Services), servicesFullCredit, weightServices)
	if s.ProfilePhoto != "" {
		score += weightProfilePhoto
	}
	if s.CoverPhoto != "" {
		score += weightCoverPhoto
	}
	score += proportional(len(s.WorkPhotos), workPhotosFullCredit, weightWorkPhotos)
	if len(s.Highlights) > 0 {
		score += weightHighlights
	}
	if s.HasBio() {
		score += weightBio
	}
	if s.Website != "" {
		score += weightWebsite
	}

	if score > 100 {
		score = 100
	}
	return score
}

// proportional awards floor(weight * count / fullCredit), capped at weight
func proportional(count, fullCredit, weight int) int {
	if count >= fullCredit {
		return weight
	}
	return weight * count / fullCredit
}
