package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/solveigbr/holidaze/internal/session"
	"github.com/solveigbr/holidaze/pkg/client"
	"github.com/solveigbr/holidaze/pkg/domain"
)

// tripState is the state machine for booking edit/cancel interactions.
type tripState int

const (
	trNormal   tripState = iota
	trEditing            // changing dates of the selected booking
	trDeleting           // cancel confirmation
)

var errDatesTaken = errors.New("those dates are already booked")

// -- messages --

type tripsLoadedMsg struct {
	bookings []domain.Booking
	err      error
}

type bookingUpdatedMsg struct {
	booking *domain.Booking
	err     error
}

type bookingDeletedMsg struct {
	id  string
	err error
}

// -- model --

// tripsModel lists the current user's bookings and lets them move or
// cancel a stay.
type tripsModel struct {
	client    *client.Client
	store     *session.Store
	bookings  []domain.Booking
	cursor    int
	state     tripState
	editFrom  string
	editTo    string
	editFocus int // 0=from, 1=to
	submitted bool
	loading   bool
	err       error
	statusMsg string
	width     int
	height    int
}

func newTripsModel(c *client.Client, store *session.Store) tripsModel {
	return tripsModel{client: c, store: store, loading: true}
}

func (m tripsModel) Init() tea.Cmd {
	return m.loadTrips()
}

func (m tripsModel) loadTrips() tea.Cmd {
	c := m.client
	user := m.store.User()
	if user == nil {
		return func() tea.Msg { return tripsLoadedMsg{} }
	}
	name := user.Name
	return func() tea.Msg {
		bookings, err := c.ProfileBookings(context.Background(), name)
		return tripsLoadedMsg{bookings: bookings, err: err}
	}
}

// updateBooking re-checks the new dates against the venue's other
// bookings before sending the change.
func (m tripsModel) updateBooking(b domain.Booking, r domain.DateRange) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		if b.Venue != nil {
			venue, err := c.GetVenue(context.Background(), b.Venue.ID.String())
			if err == nil {
				var others []domain.DateRange
				for _, ob := range venue.Bookings {
					if ob.ID != b.ID {
						others = append(others, ob.Range())
					}
				}
				if domain.IsBooked(others, r) {
					return bookingUpdatedMsg{err: errDatesTaken}
				}
			}
		}
		updated, err := c.UpdateBooking(context.Background(), b.ID.String(), client.UpdateBookingRequest{
			DateFrom: r.From.Format("2006-01-02"),
			DateTo:   r.To.Format("2006-01-02"),
			Guests:   b.Guests,
		})
		return bookingUpdatedMsg{booking: updated, err: err}
	}
}

func (m tripsModel) Update(msg tea.Msg) (tripsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tripsLoadedMsg:
		m.loading = false
		m.bookings = msg.bookings
		m.err = msg.err
		if m.cursor >= len(m.bookings) {
			m.cursor = 0
		}
		return m, nil

	case bookingUpdatedMsg:
		m.submitted = false
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("update failed: %v", client.Message(msg.err))
			return m, nil
		}
		m.state = trNormal
		m.statusMsg = "dates changed"
		m.loading = true
		return m, m.loadTrips()

	case bookingDeletedMsg:
		m.submitted = false
		m.state = trNormal
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("cancel failed: %v", client.Message(msg.err))
			return m, nil
		}
		for i, b := range m.bookings {
			if b.ID.String() == msg.id {
				m.bookings = append(m.bookings[:i], m.bookings[i+1:]...)
				break
			}
		}
		if m.cursor >= len(m.bookings) && m.cursor > 0 {
			m.cursor = len(m.bookings) - 1
		}
		m.statusMsg = "booking cancelled"
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		return m.handleKey(msg)
	}
	return m, nil
}

func (m tripsModel) handleKey(msg tea.KeyMsg) (tripsModel, tea.Cmd) {
	switch m.state {
	case trEditing:
		return m.handleKeyEditing(msg)
	case trDeleting:
		return m.handleKeyDeleting(msg)
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.bookings)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "e":
		if m.cursor < len(m.bookings) {
			b := m.bookings[m.cursor]
			m.state = trEditing
			m.editFrom = b.DateFrom.Format("2006-01-02")
			m.editTo = b.DateTo.Format("2006-01-02")
			m.editFocus = 0
		}
	case "x", "d":
		if m.cursor < len(m.bookings) {
			m.state = trDeleting
		}
	case "r":
		m.loading = true
		return m, m.loadTrips()
	}
	return m, nil
}

func (m tripsModel) handleKeyEditing(msg tea.KeyMsg) (tripsModel, tea.Cmd) {
	if m.submitted {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.state = trNormal
	case "tab", "down", "up", "shift+tab":
		m.editFocus = 1 - m.editFocus
	case "enter":
		if m.editFocus == 0 {
			m.editFocus = 1
			return m, nil
		}
		return m.submitEdit()
	case "ctrl+s":
		return m.submitEdit()
	default:
		if m.editFocus == 0 {
			m.editFrom = editRune(m.editFrom, msg.String())
		} else {
			m.editTo = editRune(m.editTo, msg.String())
		}
	}
	return m, nil
}

func (m tripsModel) submitEdit() (tripsModel, tea.Cmd) {
	if m.cursor >= len(m.bookings) {
		m.state = trNormal
		return m, nil
	}
	r, err := domain.ParseDateRange(m.editFrom, m.editTo)
	if err != nil {
		m.statusMsg = "dates must look like 2026-02-15"
		return m, nil
	}
	if r.To.Before(r.From) {
		m.statusMsg = "checkout must not be before check-in"
		return m, nil
	}
	m.submitted = true
	return m, m.updateBooking(m.bookings[m.cursor], r)
}

func (m tripsModel) handleKeyDeleting(msg tea.KeyMsg) (tripsModel, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if m.cursor < len(m.bookings) {
			c := m.client
			id := m.bookings[m.cursor].ID.String()
			m.submitted = true
			return m, func() tea.Msg {
				return bookingDeletedMsg{id: id, err: c.DeleteBooking(context.Background(), id)}
			}
		}
		m.state = trNormal
	case "n", "esc":
		m.state = trNormal
	}
	return m, nil
}

func (m tripsModel) View() string {
	var b strings.Builder

	b.WriteString(" " + sectionHeaderStyle.Render("MY TRIPS") + "\n")
	sepW := m.width - 2
	if sepW < 4 {
		sepW = 4
	}
	b.WriteString(" " + metaStyle.Render(strings.Repeat("─", sepW)) + "\n")

	if m.statusMsg != "" {
		b.WriteString(" " + warnStyle.Render(m.statusMsg) + "\n")
	}
	if m.loading {
		b.WriteString(" " + dimStyle.Render("loading..."))
		return b.String()
	}
	if m.err != nil {
		b.WriteString(" " + errStyle.Render(fmt.Sprintf("error: %v", m.err)))
		return b.String()
	}
	if len(m.bookings) == 0 {
		b.WriteString(" " + dimStyle.Render("you have no bookings yet — find a venue on the Browse tab"))
		return b.String()
	}

	for i, bk := range m.bookings {
		cursor := "  "
		nameStyle := dimStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
			nameStyle = normalStyle.Bold(true)
		}

		name := "(venue removed)"
		if bk.Venue != nil {
			name = bk.Venue.Name
		}
		name = truncStr(name, 30)

		line := cursor + nameStyle.Render(fmt.Sprintf("%-30s", name)) + " " +
			accentStyle.Render(formatRange(bk.DateFrom, bk.DateTo)) + " " +
			metaStyle.Render(fmt.Sprintf("%d guest(s)", bk.Guests))
		b.WriteString(line + "\n")

		if i == m.cursor && m.state == trEditing {
			b.WriteString("    " + renderField("check-in:", m.editFrom, "2026-02-15", m.editFocus == 0) + "\n")
			b.WriteString("    " + renderField("checkout:", m.editTo, "2026-02-20", m.editFocus == 1) + "\n")
			if m.submitted {
				b.WriteString("    " + dimStyle.Render("saving...") + "\n")
			}
		}
		if i == m.cursor && m.state == trDeleting {
			b.WriteString("    " + errStyle.Render("cancel this booking? y/n") + "\n")
		}
	}

	return b.String()
}

func (m tripsModel) helpKeys() string {
	switch m.state {
	case trEditing:
		return helpEntry("tab", "field") + "  " + helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel")
	case trDeleting:
		return helpEntry("y", "confirm") + "  " + helpEntry("n", "keep")
	default:
		return helpEntry("j/k", "nav") + "  " + helpEntry("e", "change dates") + "  " + helpEntry("x", "cancel booking") + "  " + helpEntry("r", "refresh")
	}
}
