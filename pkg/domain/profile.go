package domain

// Profile is a registered Holidaze user. Name doubles as the API path
// segment for profile-scoped endpoints.
type Profile struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Avatar       *Media `json:"avatar,omitempty"`
	VenueManager bool   `json:"venueManager"`
}

// AvatarURL returns the avatar URL, or empty when none is set.
func (p Profile) AvatarURL() string {
	if p.Avatar == nil {
		return ""
	}
	return p.Avatar.URL
}
