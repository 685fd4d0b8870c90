package domain

import (
	"time"

	"github.com/google/uuid"
)

// Venue is a rentable property as returned by the Holidaze API.
// Bookings are present only when the venue was fetched with _bookings=true.
type Venue struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Media       []Media   `json:"media,omitempty"`
	Price       float64   `json:"price"`
	MaxGuests   int       `json:"maxGuests"`
	Rating      float64   `json:"rating"`
	Meta        VenueMeta `json:"meta"`
	Location    Location  `json:"location"`
	Owner       *Owner    `json:"owner,omitempty"`
	Bookings    []Booking `json:"bookings,omitempty"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

// Media is an image with alt text.
type Media struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// VenueMeta lists a venue's amenities.
type VenueMeta struct {
	Wifi      bool `json:"wifi"`
	Parking   bool `json:"parking"`
	Breakfast bool `json:"breakfast"`
	Pets      bool `json:"pets"`
}

// Location is where a venue sits. Lat/Lng are zero when unset.
type Location struct {
	Address string  `json:"address,omitempty"`
	City    string  `json:"city,omitempty"`
	Zip     string  `json:"zip,omitempty"`
	Country string  `json:"country,omitempty"`
	Lat     float64 `json:"lat,omitempty"`
	Lng     float64 `json:"lng,omitempty"`
}

// Owner is the venue manager shown on expanded venue fetches.
type Owner struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar *Media `json:"avatar,omitempty"`
}

// CoverURL returns the first media URL, or empty when the venue has no photos.
func (v Venue) CoverURL() string {
	if len(v.Media) == 0 {
		return ""
	}
	return v.Media[0].URL
}
