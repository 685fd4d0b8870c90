package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/solveigbr/holidaze/pkg/domain"
)

// DefaultBaseURL is the hosted Holidaze API.
const DefaultBaseURL = "https://v2.api.noroff.dev"

// fallbackErrMsg is used when a failure response carries no errors array.
const fallbackErrMsg = "Something went wrong"

// LoginRequest is the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the payload for the registration endpoint.
type RegisterRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	VenueManager bool   `json:"venueManager"`
}

// AuthResponse is the profile + bearer token returned by a successful login.
type AuthResponse struct {
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Avatar       *domain.Media `json:"avatar,omitempty"`
	VenueManager bool          `json:"venueManager"`
	AccessToken  string        `json:"accessToken"`
}

// CreateBookingRequest is the payload for creating a booking.
type CreateBookingRequest struct {
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
	Guests   int    `json:"guests"`
	VenueID  string `json:"venueId"`
}

// UpdateBookingRequest is the payload for changing a booking's dates or guest count.
type UpdateBookingRequest struct {
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
	Guests   int    `json:"guests,omitempty"`
}

// VenueRequest is the payload for creating or updating a venue.
type VenueRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Media       []domain.Media    `json:"media,omitempty"`
	Price       float64           `json:"price"`
	MaxGuests   int               `json:"maxGuests"`
	Meta        *domain.VenueMeta `json:"meta,omitempty"`
	Location    *domain.Location  `json:"location,omitempty"`
}

// Client is the Holidaze API client. Every call is fire-once: no
// retries, no backoff.
type Client struct {
	baseURL    string
	apiKey     string
	token      string
	httpClient *http.Client
}

// New creates a new API client. token may be empty for unauthenticated use.
func New(baseURL, apiKey, token string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		token:   token,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SetToken replaces the bearer credential attached to subsequent requests.
// The session store writes the token through after login and clears it on logout.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Login exchanges credentials for a profile and bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var auth AuthResponse
	if err := c.post(ctx, "/auth/login?_holidaze=true", LoginRequest{Email: email, Password: password}, &auth); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return &auth, nil
}

// Register creates a new account. It does not log the account in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*domain.Profile, error) {
	var profile domain.Profile
	if err := c.post(ctx, "/auth/register", req, &profile); err != nil {
		return nil, fmt.Errorf("client.Register: %w", err)
	}
	return &profile, nil
}

// ListVenues fetches venues, newest first.
func (c *Client) ListVenues(ctx context.Context, limit, page int) ([]domain.Venue, error) {
	params := url.Values{}
	params.Set("limit", fmt.Sprint(limit))
	params.Set("page", fmt.Sprint(page))
	params.Set("sort", "created")

	var venues []domain.Venue
	if err := c.get(ctx, "/holidaze/venues?"+params.Encode(), &venues); err != nil {
		return nil, fmt.Errorf("client.ListVenues: %w", err)
	}
	return venues, nil
}

// SearchVenues searches venues by name and description.
func (c *Client) SearchVenues(ctx context.Context, query string) ([]domain.Venue, error) {
	params := url.Values{}
	params.Set("q", query)

	var venues []domain.Venue
	if err := c.get(ctx, "/holidaze/venues/search?"+params.Encode(), &venues); err != nil {
		return nil, fmt.Errorf("client.SearchVenues: %w", err)
	}
	return venues, nil
}

// GetVenue fetches a single venue with its owner and bookings expanded.
func (c *Client) GetVenue(ctx context.Context, id string) (*domain.Venue, error) {
	var venue domain.Venue
	if err := c.get(ctx, "/holidaze/venues/"+url.PathEscape(id)+"?_owner=true&_bookings=true", &venue); err != nil {
		return nil, fmt.Errorf("client.GetVenue: %w", err)
	}
	return &venue, nil
}

// CreateVenue creates a venue owned by the authenticated manager.
func (c *Client) CreateVenue(ctx context.Context, req VenueRequest) (*domain.Venue, error) {
	var created domain.Venue
	if err := c.post(ctx, "/holidaze/venues", req, &created); err != nil {
		return nil, fmt.Errorf("client.CreateVenue: %w", err)
	}
	return &created, nil
}

// UpdateVenue updates a venue by ID.
func (c *Client) UpdateVenue(ctx context.Context, id string, req VenueRequest) (*domain.Venue, error) {
	var updated domain.Venue
	if err := c.doRequest(ctx, http.MethodPut, "/holidaze/venues/"+url.PathEscape(id), req, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateVenue: %w", err)
	}
	return &updated, nil
}

// DeleteVenue deletes a venue by ID.
func (c *Client) DeleteVenue(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/holidaze/venues/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteVenue: %w", err)
	}
	return nil
}

// CreateBooking places a booking for a venue.
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	var created domain.Booking
	if err := c.post(ctx, "/holidaze/bookings", req, &created); err != nil {
		return nil, fmt.Errorf("client.CreateBooking: %w", err)
	}
	return &created, nil
}

// UpdateBooking changes an existing booking's dates or guest count.
func (c *Client) UpdateBooking(ctx context.Context, id string, req UpdateBookingRequest) (*domain.Booking, error) {
	var updated domain.Booking
	if err := c.doRequest(ctx, http.MethodPut, "/holidaze/bookings/"+url.PathEscape(id), req, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateBooking: %w", err)
	}
	return &updated, nil
}

// DeleteBooking cancels a booking by ID.
func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/holidaze/bookings/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteBooking: %w", err)
	}
	return nil
}

// ProfileBookings returns a profile's bookings with venues expanded.
func (c *Client) ProfileBookings(ctx context.Context, name string) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := c.get(ctx, "/holidaze/profiles/"+url.PathEscape(name)+"/bookings?_venue=true", &bookings); err != nil {
		return nil, fmt.Errorf("client.ProfileBookings: %w", err)
	}
	return bookings, nil
}

// ProfileVenues returns the venues a manager owns, with bookings expanded.
func (c *Client) ProfileVenues(ctx context.Context, name string) ([]domain.Venue, error) {
	var venues []domain.Venue
	if err := c.get(ctx, "/holidaze/profiles/"+url.PathEscape(name)+"/venues?_owner=true&_bookings=true", &venues); err != nil {
		return nil, fmt.Errorf("client.ProfileVenues: %w", err)
	}
	return venues, nil
}

// UpdateProfileAvatar replaces a profile's avatar URL.
func (c *Client) UpdateProfileAvatar(ctx context.Context, name, avatarURL string) (*domain.Profile, error) {
	body := map[string]domain.Media{"avatar": {URL: avatarURL, Alt: name}}
	var updated domain.Profile
	if err := c.doRequest(ctx, http.MethodPut, "/holidaze/profiles/"+url.PathEscape(name), body, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateProfileAvatar: %w", err)
	}
	return &updated, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

// envelope is the API's uniform response shape.
type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Noroff-API-Key", c.apiKey)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{URL: c.baseURL + path, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max body
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if len(respBody) > 0 {
		// DELETE responses are empty; everything else is enveloped.
		if err := json.Unmarshal(respBody, &env); err != nil && resp.StatusCode < 400 {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	if resp.StatusCode >= 400 {
		msg := fallbackErrMsg
		if len(env.Errors) > 0 && env.Errors[0].Message != "" {
			msg = env.Errors[0].Message
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}
