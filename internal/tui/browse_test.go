package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/solveigbr/holidaze/pkg/domain"
)

func newTestBrowseModel() browseModel {
	m := newBrowseModel(nil)
	m.width = 100
	m.height = 40
	return m
}

func TestBrowseListRendersVenues(t *testing.T) {
	m := newTestBrowseModel()
	m, _ = m.Update(venuesLoadedMsg{venues: []domain.Venue{
		makeTestVenue("Fjord Cabin"),
		makeTestVenue("Harbour Loft"),
	}})

	view := m.View()
	if !strings.Contains(view, "Fjord Cabin") {
		t.Errorf("expected 'Fjord Cabin' in view, got:\n%s", view)
	}
	if !strings.Contains(view, "Harbour Loft") {
		t.Errorf("expected 'Harbour Loft' in view, got:\n%s", view)
	}
	if !strings.Contains(view, "$450 / night") {
		t.Errorf("expected nightly price in view, got:\n%s", view)
	}
}

func TestBrowseCursorNavigation(t *testing.T) {
	m := newTestBrowseModel()
	m, _ = m.Update(venuesLoadedMsg{venues: []domain.Venue{
		makeTestVenue("A"), makeTestVenue("B"), makeTestVenue("C"),
	}})

	m, _ = m.Update(keyRunes("j"))
	m, _ = m.Update(keyRunes("j"))
	if m.cursor != 2 {
		t.Errorf("expected cursor=2 after jj, got %d", m.cursor)
	}
	m, _ = m.Update(keyRunes("j"))
	if m.cursor != 2 {
		t.Errorf("expected cursor clamped at last venue, got %d", m.cursor)
	}
	m, _ = m.Update(keyRunes("k"))
	if m.cursor != 1 {
		t.Errorf("expected cursor=1 after k, got %d", m.cursor)
	}
}

func TestBrowseSearchSubmitsQuery(t *testing.T) {
	m := newTestBrowseModel()
	m, _ = m.Update(venuesLoadedMsg{venues: []domain.Venue{makeTestVenue("A")}})

	m, _ = m.Update(keyRunes("/"))
	if !m.editing {
		t.Fatal("expected search editing after '/'")
	}
	for _, ch := range "cabin" {
		m, _ = m.Update(keyRunes(string(ch)))
	}
	if m.search != "cabin" {
		t.Errorf("expected search=%q, got %q", "cabin", m.search)
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.editing {
		t.Error("expected editing off after enter")
	}
	if cmd == nil {
		t.Error("expected search command on enter")
	}
}

func TestBrowseSearchEscClears(t *testing.T) {
	m := newTestBrowseModel()
	m, _ = m.Update(venuesLoadedMsg{venues: []domain.Venue{makeTestVenue("A")}})

	m, _ = m.Update(keyRunes("/"))
	m, _ = m.Update(keyRunes("x"))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.search != "" {
		t.Errorf("expected search cleared on esc, got %q", m.search)
	}
	if cmd == nil {
		t.Error("expected reload command on esc")
	}
}

func TestBrowseDetailShowsBlockedDates(t *testing.T) {
	m := newTestBrowseModel()
	venue := makeTestVenue("Fjord Cabin")
	venue.Description = "A quiet cabin at the end of the fjord with a view of the water."
	venue.Bookings = []domain.Booking{makeTestBooking("Fjord Cabin", "2026-02-15", "2026-02-20")}

	m, _ = m.Update(venueLoadedMsg{venue: &venue})
	if !m.detail {
		t.Fatal("expected detail view after venueLoadedMsg")
	}

	view := m.View()
	if !strings.Contains(view, "UNAVAILABLE") {
		t.Errorf("expected UNAVAILABLE section in view, got:\n%s", view)
	}
	if !strings.Contains(view, "Feb 15") {
		t.Errorf("expected blocked range in view, got:\n%s", view)
	}
}

func TestBrowseBookingRejectsMalformedDates(t *testing.T) {
	m := newTestBrowseModel()
	venue := makeTestVenue("Fjord Cabin")
	m, _ = m.Update(venueLoadedMsg{venue: &venue})
	m, _ = m.Update(keyRunes("b"))
	if !m.booking {
		t.Fatal("expected booking form after 'b'")
	}

	m.bookFields[bfFrom] = "not-a-date"
	m.bookFields[bfTo] = "2026-02-20"
	m, cmd := m.submitBooking()
	if cmd != nil {
		t.Error("expected no command for malformed dates")
	}
	if !strings.Contains(m.bookErr, "2026-02-15") {
		t.Errorf("expected date format hint, got %q", m.bookErr)
	}
}

func TestBrowseBookingRejectsReversedDates(t *testing.T) {
	m := newTestBrowseModel()
	venue := makeTestVenue("Fjord Cabin")
	m, _ = m.Update(venueLoadedMsg{venue: &venue})
	m, _ = m.Update(keyRunes("b"))

	m.bookFields[bfFrom] = "2026-02-20"
	m.bookFields[bfTo] = "2026-02-15"
	m, cmd := m.submitBooking()
	if cmd != nil {
		t.Error("expected no command for reversed dates")
	}
	if !strings.Contains(m.bookErr, "checkout") {
		t.Errorf("expected checkout error, got %q", m.bookErr)
	}
}

func TestBrowseBookingRejectsTooManyGuests(t *testing.T) {
	m := newTestBrowseModel()
	venue := makeTestVenue("Fjord Cabin") // sleeps 4
	m, _ = m.Update(venueLoadedMsg{venue: &venue})
	m, _ = m.Update(keyRunes("b"))

	m.bookFields[bfFrom] = "2026-02-15"
	m.bookFields[bfTo] = "2026-02-20"
	m.bookFields[bfGuests] = "9"
	m, cmd := m.submitBooking()
	if cmd != nil {
		t.Error("expected no command when over guest limit")
	}
	if !strings.Contains(m.bookErr, "at most 4") {
		t.Errorf("expected guest limit error, got %q", m.bookErr)
	}
}

func TestBrowseBookingRejectsOverlap(t *testing.T) {
	m := newTestBrowseModel()
	venue := makeTestVenue("Fjord Cabin")
	venue.Bookings = []domain.Booking{makeTestBooking("Fjord Cabin", "2026-02-15", "2026-02-20")}
	m, _ = m.Update(venueLoadedMsg{venue: &venue})
	m, _ = m.Update(keyRunes("b"))

	// Starts on the checkout day of the existing stay, which still conflicts.
	m.bookFields[bfFrom] = "2026-02-20"
	m.bookFields[bfTo] = "2026-02-25"
	m.bookFields[bfGuests] = "2"
	m, cmd := m.submitBooking()
	if cmd != nil {
		t.Error("expected no command for overlapping dates")
	}
	if !strings.Contains(m.bookErr, "already booked") {
		t.Errorf("expected overlap error, got %q", m.bookErr)
	}
}

func TestBrowseBookingSubmitsWhenFree(t *testing.T) {
	m := newTestBrowseModel()
	m.client = nil // the command closure is not invoked
	venue := makeTestVenue("Fjord Cabin")
	venue.Bookings = []domain.Booking{makeTestBooking("Fjord Cabin", "2026-02-15", "2026-02-20")}
	m, _ = m.Update(venueLoadedMsg{venue: &venue})
	m, _ = m.Update(keyRunes("b"))

	m.bookFields[bfFrom] = "2026-02-21"
	m.bookFields[bfTo] = "2026-02-25"
	m.bookFields[bfGuests] = "2"
	m, cmd := m.submitBooking()
	if cmd == nil {
		t.Fatal("expected booking command for free dates")
	}
	if !m.submitted {
		t.Error("expected submitted=true while request is in flight")
	}
}

func TestBrowseBookingSuccessResetsForm(t *testing.T) {
	m := newTestBrowseModel()
	venue := makeTestVenue("Fjord Cabin")
	m, _ = m.Update(venueLoadedMsg{venue: &venue})
	m, _ = m.Update(keyRunes("b"))
	m.submitted = true

	booking := makeTestBooking("Fjord Cabin", "2026-02-21", "2026-02-25")
	m, _ = m.Update(bookingCreatedMsg{booking: &booking})
	if m.booking {
		t.Error("expected booking form closed after success")
	}
	if !strings.Contains(m.statusMsg, "4 night") {
		t.Errorf("expected night count in status, got %q", m.statusMsg)
	}
}

func TestBrowseBookingFailureShowsServerMessage(t *testing.T) {
	m := newTestBrowseModel()
	venue := makeTestVenue("Fjord Cabin")
	m, _ = m.Update(venueLoadedMsg{venue: &venue})
	m, _ = m.Update(keyRunes("b"))
	m.submitted = true

	m, _ = m.Update(bookingCreatedMsg{err: errDatesTaken})
	if !m.booking {
		t.Error("expected booking form kept open on failure")
	}
	if !strings.Contains(m.bookErr, "already booked") {
		t.Errorf("expected error message, got %q", m.bookErr)
	}
}

func TestBrowseDetailEscReturnsToList(t *testing.T) {
	m := newTestBrowseModel()
	venue := makeTestVenue("Fjord Cabin")
	m, _ = m.Update(venuesLoadedMsg{venues: []domain.Venue{venue}})
	m, _ = m.Update(venueLoadedMsg{venue: &venue})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.detail {
		t.Error("expected detail closed after esc")
	}
	if m.venue != nil {
		t.Error("expected venue cleared after esc")
	}
}
