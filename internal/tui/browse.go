package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/solveigbr/holidaze/internal/browser"
	"github.com/solveigbr/holidaze/pkg/client"
	"github.com/solveigbr/holidaze/pkg/domain"
)

type bookField int

const (
	bfFrom bookField = iota
	bfTo
	bfGuests
	numBookFields
)

// -- messages --

type venuesLoadedMsg struct {
	venues []domain.Venue
	err    error
}

type venueLoadedMsg struct {
	venue *domain.Venue
	err   error
}

type bookingCreatedMsg struct {
	booking *domain.Booking
	err     error
}

type copyResultMsg struct{ err error }

// -- model --

// browseModel is the venue list / search / detail view, hosting the
// booking form on the detail screen.
type browseModel struct {
	client    *client.Client
	venues    []domain.Venue
	cursor    int
	search    string
	editing   bool // typing in search
	loading   bool
	err       error
	statusMsg string
	width     int
	height    int

	// detail
	detail bool
	venue  *domain.Venue // fetched with bookings expanded

	// booking form
	booking    bool
	bookFields [numBookFields]string
	bookFocus  bookField
	submitted  bool
	bookErr    string
}

func newBrowseModel(c *client.Client) browseModel {
	m := browseModel{client: c, loading: true}
	m.bookFields[bfGuests] = "1"
	return m
}

func (m browseModel) Init() tea.Cmd {
	return m.loadVenues()
}

func (m browseModel) loadVenues() tea.Cmd {
	c := m.client
	search := m.search
	return func() tea.Msg {
		var venues []domain.Venue
		var err error
		if search != "" {
			venues, err = c.SearchVenues(context.Background(), search)
		} else {
			venues, err = c.ListVenues(context.Background(), pageSize, 1)
		}
		return venuesLoadedMsg{venues: venues, err: err}
	}
}

func (m browseModel) loadVenue(id string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		venue, err := c.GetVenue(context.Background(), id)
		return venueLoadedMsg{venue: venue, err: err}
	}
}

func (m browseModel) Update(msg tea.Msg) (browseModel, tea.Cmd) {
	switch msg := msg.(type) {
	case venuesLoadedMsg:
		m.loading = false
		m.venues = msg.venues
		m.err = msg.err
		if m.cursor >= len(m.venues) {
			m.cursor = 0
		}
		return m, nil

	case venueLoadedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("load failed: %v", client.Message(msg.err))
			return m, nil
		}
		m.venue = msg.venue
		m.detail = true
		return m, nil

	case bookingCreatedMsg:
		m.submitted = false
		if msg.err != nil {
			m.bookErr = client.Message(msg.err)
			return m, nil
		}
		m.booking = false
		m.bookFields = [numBookFields]string{}
		m.bookFields[bfGuests] = "1"
		m.bookFocus = bfFrom
		nights := 0
		if msg.booking != nil {
			nights = msg.booking.Range().Nights()
		}
		m.statusMsg = fmt.Sprintf("booked! %d night stay confirmed", nights)
		// Refresh so the new booking blocks the calendar immediately.
		if m.venue != nil {
			return m, m.loadVenue(m.venue.ID.String())
		}
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			m.statusMsg = "copied!"
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		if m.editing {
			return m.updateSearch(msg)
		}
		if m.booking {
			return m.updateBookingForm(msg)
		}
		if m.detail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m browseModel) updateSearch(msg tea.KeyMsg) (browseModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.editing = false
		m.loading = true
		m.cursor = 0
		return m, m.loadVenues()
	case "esc":
		m.editing = false
		m.search = ""
		m.loading = true
		return m, m.loadVenues()
	default:
		m.search = editRune(m.search, msg.String())
	}
	return m, nil
}

func (m browseModel) updateList(msg tea.KeyMsg) (browseModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.venues)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if m.cursor < len(m.venues) {
			return m, m.loadVenue(m.venues[m.cursor].ID.String())
		}
	case "/":
		m.editing = true
		m.search = ""
	case "r":
		m.loading = true
		return m, m.loadVenues()
	}
	return m, nil
}

func (m browseModel) updateDetail(msg tea.KeyMsg) (browseModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.detail = false
		m.venue = nil
		m.booking = false
	case "b":
		m.booking = true
		m.bookFocus = bfFrom
		m.bookErr = ""
	case "o":
		if m.venue != nil && m.venue.CoverURL() != "" {
			url := m.venue.CoverURL()
			return m, func() tea.Msg {
				browser.Open(url) //nolint:errcheck // best-effort browser open
				return nil
			}
		}
	case "c":
		if m.venue != nil {
			id := m.venue.ID.String()
			return m, func() tea.Msg {
				return copyResultMsg{err: clipboard.WriteAll(id)}
			}
		}
	case "r":
		if m.venue != nil {
			return m, m.loadVenue(m.venue.ID.String())
		}
	}
	return m, nil
}

func (m browseModel) updateBookingForm(msg tea.KeyMsg) (browseModel, tea.Cmd) {
	if m.submitted {
		return m, nil
	}
	m.bookErr = ""

	switch msg.String() {
	case "esc":
		m.booking = false
	case "tab", "down":
		m.bookFocus = (m.bookFocus + 1) % numBookFields
	case "shift+tab", "up":
		m.bookFocus = (m.bookFocus - 1 + numBookFields) % numBookFields
	case "enter":
		if m.bookFocus == bfGuests {
			return m.submitBooking()
		}
		m.bookFocus++
	case "ctrl+s":
		return m.submitBooking()
	default:
		m.bookFields[m.bookFocus] = editRune(m.bookFields[m.bookFocus], msg.String())
	}
	return m, nil
}

// submitBooking validates the proposed stay and checks it against the
// venue's known bookings before anything goes over the wire.
func (m browseModel) submitBooking() (browseModel, tea.Cmd) {
	if m.venue == nil {
		return m, nil
	}

	proposed, err := domain.ParseDateRange(m.bookFields[bfFrom], m.bookFields[bfTo])
	if err != nil {
		m.bookErr = "dates must look like 2026-02-15"
		return m, nil
	}
	if proposed.To.Before(proposed.From) {
		m.bookErr = "checkout must not be before check-in"
		return m, nil
	}
	guests, err := strconv.Atoi(strings.TrimSpace(m.bookFields[bfGuests]))
	if err != nil || guests < 1 {
		m.bookErr = "guests must be a number of at least 1"
		return m, nil
	}
	if guests > m.venue.MaxGuests {
		m.bookErr = fmt.Sprintf("this venue sleeps at most %d guests", m.venue.MaxGuests)
		return m, nil
	}
	if domain.IsBooked(domain.BookedRanges(m.venue.Bookings), proposed) {
		m.bookErr = "those dates are already booked"
		return m, nil
	}

	c := m.client
	req := client.CreateBookingRequest{
		DateFrom: proposed.From.Format("2006-01-02"),
		DateTo:   proposed.To.Format("2006-01-02"),
		Guests:   guests,
		VenueID:  m.venue.ID.String(),
	}
	m.submitted = true
	return m, func() tea.Msg {
		booking, err := c.CreateBooking(context.Background(), req)
		return bookingCreatedMsg{booking: booking, err: err}
	}
}

func (m browseModel) View() string {
	if m.detail && m.venue != nil {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m browseModel) viewList() string {
	var b strings.Builder

	b.WriteString(" " + sectionHeaderStyle.Render("VENUES") + "  " + dimStyle.Render("find your next stay") + "\n")

	// Search line
	if m.editing {
		b.WriteString(" " + searchStyle.Render("/ "+m.search+"█") + "\n")
	} else if m.search != "" {
		b.WriteString(" " + searchStyle.Render("/ "+m.search) + "\n")
	} else {
		b.WriteString(" " + dimStyle.Render("/ search venues...") + "\n")
	}

	sepW := m.width - 2
	if sepW < 4 {
		sepW = 4
	}
	b.WriteString(" " + metaStyle.Render(strings.Repeat("─", sepW)) + "\n")

	if m.statusMsg != "" {
		b.WriteString(" " + okStyle.Render(m.statusMsg) + "\n")
	}
	if m.loading {
		b.WriteString(" " + dimStyle.Render("loading..."))
		return b.String()
	}
	if m.err != nil {
		b.WriteString(" " + errStyle.Render(fmt.Sprintf("error: %v", m.err)))
		return b.String()
	}
	if len(m.venues) == 0 {
		b.WriteString(" " + dimStyle.Render("no venues found"))
		return b.String()
	}

	maxVisible := m.height - 6
	if maxVisible < 3 {
		maxVisible = 3
	}
	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}

	for i := start; i < len(m.venues) && i < start+maxVisible; i++ {
		v := m.venues[i]

		cursor := "  "
		nameStyle := dimStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
			nameStyle = normalStyle.Bold(true)
		}

		price := priceStyle.Render(fmt.Sprintf("%9s", formatPrice(v.Price)))
		guests := metaStyle.Render(fmt.Sprintf("%2d guests", v.MaxGuests))
		rightWidth := 9 + 1 + 9 + 1 + 11 // price + gap + guests + gap + rating

		nameWidth := m.width - 4 - rightWidth
		if nameWidth < 12 {
			nameWidth = 12
		}
		name := truncStr(v.Name, nameWidth)
		namePadded := fmt.Sprintf("%-*s", nameWidth, name)

		line := cursor + nameStyle.Render(namePadded) + " " + price + " " + guests + " " + starBar(v.Rating)
		if i == m.cursor {
			b.WriteString(selectedRowBg.Render(line) + "\n")
		} else {
			b.WriteString(line + "\n")
		}
	}

	// Location footer for the selected venue
	if m.cursor < len(m.venues) {
		if loc := formatLocation(m.venues[m.cursor].Location); loc != "" {
			b.WriteString("\n " + metaStyle.Render("📍 "+loc) + "\n")
		}
	}

	return b.String()
}

func (m browseModel) viewDetail() string {
	v := m.venue
	var b strings.Builder

	b.WriteString(" " + selectedStyle.Render(v.Name) + "\n")
	if loc := formatLocation(v.Location); loc != "" {
		b.WriteString(" " + metaStyle.Render("📍 "+loc) + "\n")
	}
	b.WriteString(" " + starBar(v.Rating) + "  " + metaStyle.Render(fmt.Sprintf("sleeps %d", v.MaxGuests)) + "  " + priceStyle.Render(formatPrice(v.Price)) + "\n")

	// Amenities
	var amenities []string
	flags := map[string]bool{
		"wifi": v.Meta.Wifi, "parking": v.Meta.Parking,
		"breakfast": v.Meta.Breakfast, "pets": v.Meta.Pets,
	}
	for _, a := range amenityLabels {
		if flags[a.name] {
			amenities = append(amenities, okStyle.Render("+"+a.icon))
		} else {
			amenities = append(amenities, inputPlaceholderStyle.Render("-"+a.icon))
		}
	}
	b.WriteString(" " + strings.Join(amenities, " ") + "\n")

	if v.Owner != nil {
		b.WriteString(" " + dimStyle.Render("hosted by ") + normalStyle.Render(v.Owner.Name) + "\n")
	}
	if len(v.Media) > 0 {
		b.WriteString(" " + dimStyle.Render(fmt.Sprintf("%d photo(s) — o to open", len(v.Media))) + "\n")
	}

	b.WriteString("\n")
	descWidth := m.width - 4
	if descWidth > 76 {
		descWidth = 76
	}
	lines := wrapText(v.Description, descWidth)
	if len(lines) > 6 {
		lines = lines[:6]
	}
	for _, line := range lines {
		b.WriteString(" " + normalStyle.Render(line) + "\n")
	}

	// Upcoming bookings block the calendar
	if len(v.Bookings) > 0 {
		b.WriteString("\n " + sectionHeaderStyle.Render("UNAVAILABLE") + "\n")
		shown := v.Bookings
		if len(shown) > 4 {
			shown = shown[:4]
		}
		for _, bk := range shown {
			b.WriteString("  " + warnStyle.Render(formatRange(bk.DateFrom, bk.DateTo)) + "\n")
		}
		if len(v.Bookings) > 4 {
			b.WriteString("  " + dimStyle.Render(fmt.Sprintf("and %d more", len(v.Bookings)-4)) + "\n")
		}
	}

	if m.booking {
		b.WriteString("\n " + sectionHeaderStyle.Render("BOOK THIS VENUE") + "\n")
		b.WriteString(" " + renderField("check-in: ", m.bookFields[bfFrom], "2026-02-15", m.bookFocus == bfFrom) + "\n")
		b.WriteString(" " + renderField("checkout: ", m.bookFields[bfTo], "2026-02-20", m.bookFocus == bfTo) + "\n")
		b.WriteString(" " + renderField("guests:   ", m.bookFields[bfGuests], "1", m.bookFocus == bfGuests) + "\n")
		switch {
		case m.submitted:
			b.WriteString(" " + dimStyle.Render("booking..."))
		case m.bookErr != "":
			b.WriteString(" " + errStyle.Render(m.bookErr))
		}
	} else if m.statusMsg != "" {
		b.WriteString("\n " + okStyle.Render(m.statusMsg))
	} else {
		b.WriteString("\n " + dimStyle.Render("b to book this venue"))
	}

	return b.String()
}
