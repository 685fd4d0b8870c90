package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// enveloped wraps a payload in the API's {data} response shape.
func enveloped(data any) map[string]any {
	return map[string]any{"data": data}
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			http.NotFound(w, r)
			return
		}
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.Email != "manager@stud.noroff.no" || req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
				"errors": []map[string]string{{"message": "Invalid email or password"}},
			})
			return
		}
		json.NewEncoder(w).Encode(enveloped(map[string]any{ //nolint:errcheck
			"name":         "manager",
			"email":        "manager@stud.noroff.no",
			"accessToken":  "abc123",
			"venueManager": true,
		}))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", "")
	auth, err := c.Login(context.Background(), "manager@stud.noroff.no", "secret")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if auth.Name != "manager" {
		t.Errorf("Name = %q, want %q", auth.Name, "manager")
	}
	if auth.AccessToken != "abc123" {
		t.Errorf("AccessToken = %q, want %q", auth.AccessToken, "abc123")
	}
	if !auth.VenueManager {
		t.Error("VenueManager = false, want true")
	}
}

func TestLoginRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"errors": []map[string]string{{"message": "Invalid email or password"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", "")
	_, err := c.Login(context.Background(), "x@stud.noroff.no", "wrong")
	if err == nil {
		t.Fatal("expected error for rejected login")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", apiErr.StatusCode)
	}
	if apiErr.Message != "Invalid email or password" {
		t.Errorf("Message = %q, want server message", apiErr.Message)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"errors": []map[string]string{{"message": "Email already registered"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", "")
	_, err := c.Register(context.Background(), RegisterRequest{Name: "dup", Email: "dup@stud.noroff.no", Password: "pw"})
	if err == nil {
		t.Fatal("expected error for duplicate registration")
	}
	if got := Message(err); got != "Email already registered" {
		t.Errorf("Message(err) = %q, want %q", got, "Email already registered")
	}
}

func TestGetVenueSendsHeaders(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("Authorization = %q, want bearer token", r.Header.Get("Authorization"))
		}
		if r.Header.Get("X-Noroff-API-Key") != "test-key" {
			t.Errorf("X-Noroff-API-Key = %q, want %q", r.Header.Get("X-Noroff-API-Key"), "test-key")
		}
		if got := r.URL.Query().Get("_bookings"); got != "true" {
			t.Errorf("_bookings = %q, want %q", got, "true")
		}
		json.NewEncoder(w).Encode(enveloped(map[string]any{ //nolint:errcheck
			"id":        id.String(),
			"name":      "Luxury Beach Villa",
			"price":     450,
			"maxGuests": 8,
			"bookings": []map[string]any{
				{"id": uuid.NewString(), "dateFrom": "2026-02-15T00:00:00.000Z", "dateTo": "2026-02-20T00:00:00.000Z", "guests": 2},
			},
		}))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", "tok")
	venue, err := c.GetVenue(context.Background(), id.String())
	if err != nil {
		t.Fatalf("GetVenue() error: %v", err)
	}
	if venue.Name != "Luxury Beach Villa" {
		t.Errorf("Name = %q, want %q", venue.Name, "Luxury Beach Villa")
	}
	if len(venue.Bookings) != 1 {
		t.Fatalf("got %d bookings, want 1", len(venue.Bookings))
	}
	if venue.Bookings[0].Guests != 2 {
		t.Errorf("Guests = %d, want 2", venue.Bookings[0].Guests)
	}
}

func TestCreateBooking(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/holidaze/bookings" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req CreateBookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(enveloped(map[string]any{ //nolint:errcheck
			"id":       uuid.NewString(),
			"dateFrom": req.DateFrom + "T00:00:00.000Z",
			"dateTo":   req.DateTo + "T00:00:00.000Z",
			"guests":   req.Guests,
		}))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", "tok")
	booking, err := c.CreateBooking(context.Background(), CreateBookingRequest{
		DateFrom: "2026-02-15",
		DateTo:   "2026-02-20",
		Guests:   3,
		VenueID:  uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("CreateBooking() error: %v", err)
	}
	if booking.Guests != 3 {
		t.Errorf("Guests = %d, want 3", booking.Guests)
	}
}

func TestDeleteBookingEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", "tok")
	if err := c.DeleteBooking(context.Background(), uuid.NewString()); err != nil {
		t.Fatalf("DeleteBooking() error: %v", err)
	}
}

func TestErrorWithoutEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream gone")) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", "")
	_, err := c.ListVenues(context.Background(), 50, 1)
	if err == nil {
		t.Fatal("expected error for 502 response")
	}
	if got := Message(err); got != "Something went wrong" {
		t.Errorf("Message(err) = %q, want fallback message", got)
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	srv.Close() // refuse all connections

	c := New(srv.URL, "test-key", "")
	_, err := c.ListVenues(context.Background(), 50, 1)
	if err == nil {
		t.Fatal("expected error for refused connection")
	}
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("error = %T, want *TransportError", err)
	}
	if !strings.Contains(err.Error(), "no response") {
		t.Errorf("error = %q, want it to mention no response", err.Error())
	}
}

func TestIsStatus(t *testing.T) {
	err := &APIError{StatusCode: 401, Message: "not authenticated"}
	if !IsStatus(err, 401) {
		t.Error("IsStatus(err, 401) = false, want true")
	}
	if IsStatus(err, 404) {
		t.Error("IsStatus(err, 404) = true, want false")
	}
	if IsStatus(errors.New("plain"), 401) {
		t.Error("IsStatus(plain error) = true, want false")
	}
}

func TestUpdateProfileAvatar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/holidaze/profiles/manager" {
			http.NotFound(w, r)
			return
		}
		var body map[string]map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(enveloped(map[string]any{ //nolint:errcheck
			"name":   "manager",
			"email":  "manager@stud.noroff.no",
			"avatar": map[string]string{"url": body["avatar"]["url"]},
		}))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", "tok")
	profile, err := c.UpdateProfileAvatar(context.Background(), "manager", "https://example.com/a.png")
	if err != nil {
		t.Fatalf("UpdateProfileAvatar() error: %v", err)
	}
	if profile.AvatarURL() != "https://example.com/a.png" {
		t.Errorf("AvatarURL() = %q, want the new URL", profile.AvatarURL())
	}
}
