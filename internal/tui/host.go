package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/solveigbr/holidaze/internal/session"
	"github.com/solveigbr/holidaze/pkg/client"
	"github.com/solveigbr/holidaze/pkg/domain"
)

// hostState is the state machine for the venue-manager dashboard.
type hostState int

const (
	hvNormal   hostState = iota
	hvAdding             // creating a new venue
	hvEditing            // editing the selected venue
	hvDeleting           // delete confirmation
)

// venueField indexes the venue form inputs.
type venueField int

const (
	vfName venueField = iota
	vfDescription
	vfPrice
	vfGuests
	vfCity
	vfCountry
	vfMediaURL
	vfWifi
	vfParking
	vfBreakfast
	vfPets
	numVenueFields
)

var venueFieldLabels = [numVenueFields]string{
	"name:       ",
	"description:",
	"price/night:",
	"max guests: ",
	"city:       ",
	"country:    ",
	"photo url:  ",
	"wifi",
	"parking",
	"breakfast",
	"pets",
}

// -- messages --

type ownVenuesLoadedMsg struct {
	venues []domain.Venue
	err    error
}

type venueSavedMsg struct {
	venue *domain.Venue
	err   error
}

type venueDeletedMsg struct {
	id  string
	err error
}

// -- model --

// hostModel is the dashboard for venue managers: their venues, the
// bookings on each, and a create/edit/delete form.
type hostModel struct {
	client    *client.Client
	store     *session.Store
	venues    []domain.Venue
	cursor    int
	expanded  bool // show bookings under the selected venue
	state     hostState
	fields    [numVenueFields]string
	toggles   [numVenueFields]bool // only the amenity indexes are used
	focus     venueField
	submitted bool
	loading   bool
	err       error
	statusMsg string
	width     int
	height    int
}

func newHostModel(c *client.Client, store *session.Store) hostModel {
	return hostModel{client: c, store: store, loading: true}
}

func (m hostModel) Init() tea.Cmd {
	return m.loadVenues()
}

func (m hostModel) loadVenues() tea.Cmd {
	c := m.client
	user := m.store.User()
	if user == nil {
		return func() tea.Msg { return ownVenuesLoadedMsg{} }
	}
	name := user.Name
	return func() tea.Msg {
		venues, err := c.ProfileVenues(context.Background(), name)
		return ownVenuesLoadedMsg{venues: venues, err: err}
	}
}

// isManager reports whether the logged-in user registered as a host.
func (m hostModel) isManager() bool {
	user := m.store.User()
	return user != nil && user.VenueManager
}

func (m hostModel) Update(msg tea.Msg) (hostModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ownVenuesLoadedMsg:
		m.loading = false
		m.venues = msg.venues
		m.err = msg.err
		if m.cursor >= len(m.venues) {
			m.cursor = 0
		}
		return m, nil

	case venueSavedMsg:
		m.submitted = false
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("save failed: %v", client.Message(msg.err))
			return m, nil
		}
		m.state = hvNormal
		m.statusMsg = "venue saved"
		m.loading = true
		return m, m.loadVenues()

	case venueDeletedMsg:
		m.submitted = false
		m.state = hvNormal
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("delete failed: %v", client.Message(msg.err))
			return m, nil
		}
		for i, v := range m.venues {
			if v.ID.String() == msg.id {
				m.venues = append(m.venues[:i], m.venues[i+1:]...)
				break
			}
		}
		if m.cursor >= len(m.venues) && m.cursor > 0 {
			m.cursor = len(m.venues) - 1
		}
		m.statusMsg = "venue removed"
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

func (m hostModel) handleKey(msg tea.KeyMsg) (hostModel, tea.Cmd) {
	if !m.isManager() {
		return m, nil
	}

	switch m.state {
	case hvAdding, hvEditing:
		return m.handleKeyForm(msg)
	case hvDeleting:
		return m.handleKeyDeleting(msg)
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.venues)-1 {
			m.cursor++
			m.expanded = false
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			m.expanded = false
		}
	case "enter", "l":
		if m.cursor < len(m.venues) {
			m.expanded = !m.expanded
		}
	case "a", "n":
		m.state = hvAdding
		m.fields = [numVenueFields]string{}
		m.toggles = [numVenueFields]bool{}
		m.focus = vfName
	case "e":
		if m.cursor < len(m.venues) {
			m.state = hvEditing
			m.focus = vfName
			m.fillForm(m.venues[m.cursor])
		}
	case "x", "d":
		if m.cursor < len(m.venues) {
			m.state = hvDeleting
		}
	case "r":
		m.loading = true
		return m, m.loadVenues()
	}
	return m, nil
}

func (m *hostModel) fillForm(v domain.Venue) {
	m.fields[vfName] = v.Name
	m.fields[vfDescription] = v.Description
	m.fields[vfPrice] = strconv.FormatFloat(v.Price, 'f', -1, 64)
	m.fields[vfGuests] = strconv.Itoa(v.MaxGuests)
	m.fields[vfCity] = v.Location.City
	m.fields[vfCountry] = v.Location.Country
	m.fields[vfMediaURL] = v.CoverURL()
	m.toggles[vfWifi] = v.Meta.Wifi
	m.toggles[vfParking] = v.Meta.Parking
	m.toggles[vfBreakfast] = v.Meta.Breakfast
	m.toggles[vfPets] = v.Meta.Pets
}

func isToggleField(f venueField) bool {
	return f >= vfWifi && f <= vfPets
}

func (m hostModel) handleKeyForm(msg tea.KeyMsg) (hostModel, tea.Cmd) {
	if m.submitted {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.state = hvNormal
	case "tab", "down":
		m.focus = (m.focus + 1) % numVenueFields
	case "shift+tab", "up":
		m.focus = (m.focus + numVenueFields - 1) % numVenueFields
	case "ctrl+s":
		return m.submitForm()
	case "enter":
		if m.focus == numVenueFields-1 {
			return m.submitForm()
		}
		m.focus = (m.focus + 1) % numVenueFields
	case " ":
		if isToggleField(m.focus) {
			m.toggles[m.focus] = !m.toggles[m.focus]
			return m, nil
		}
		m.fields[m.focus] = editRune(m.fields[m.focus], msg.String())
	default:
		if !isToggleField(m.focus) {
			m.fields[m.focus] = editRune(m.fields[m.focus], msg.String())
		}
	}
	return m, nil
}

func (m hostModel) submitForm() (hostModel, tea.Cmd) {
	name := strings.TrimSpace(m.fields[vfName])
	if name == "" {
		m.statusMsg = "the venue needs a name"
		return m, nil
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(m.fields[vfPrice]), 64)
	if err != nil || price < 0 {
		m.statusMsg = "price must be a number"
		return m, nil
	}
	guests, err := strconv.Atoi(strings.TrimSpace(m.fields[vfGuests]))
	if err != nil || guests < 1 {
		m.statusMsg = "max guests must be at least 1"
		return m, nil
	}

	req := client.VenueRequest{
		Name:        name,
		Description: strings.TrimSpace(m.fields[vfDescription]),
		Price:       price,
		MaxGuests:   guests,
		Meta: &domain.VenueMeta{
			Wifi:      m.toggles[vfWifi],
			Parking:   m.toggles[vfParking],
			Breakfast: m.toggles[vfBreakfast],
			Pets:      m.toggles[vfPets],
		},
	}
	city := strings.TrimSpace(m.fields[vfCity])
	country := strings.TrimSpace(m.fields[vfCountry])
	if city != "" || country != "" {
		req.Location = &domain.Location{City: city, Country: country}
	}
	if u := strings.TrimSpace(m.fields[vfMediaURL]); u != "" {
		req.Media = []domain.Media{{URL: u, Alt: name}}
	}

	c := m.client
	m.submitted = true
	if m.state == hvEditing && m.cursor < len(m.venues) {
		id := m.venues[m.cursor].ID.String()
		return m, func() tea.Msg {
			venue, err := c.UpdateVenue(context.Background(), id, req)
			return venueSavedMsg{venue: venue, err: err}
		}
	}
	return m, func() tea.Msg {
		venue, err := c.CreateVenue(context.Background(), req)
		return venueSavedMsg{venue: venue, err: err}
	}
}

func (m hostModel) handleKeyDeleting(msg tea.KeyMsg) (hostModel, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if m.cursor < len(m.venues) {
			c := m.client
			id := m.venues[m.cursor].ID.String()
			m.submitted = true
			return m, func() tea.Msg {
				return venueDeletedMsg{id: id, err: c.DeleteVenue(context.Background(), id)}
			}
		}
		m.state = hvNormal
	case "n", "esc":
		m.state = hvNormal
	}
	return m, nil
}

func (m hostModel) View() string {
	var b strings.Builder

	b.WriteString(" " + sectionHeaderStyle.Render("HOST DASHBOARD") + "\n")
	sepW := m.width - 2
	if sepW < 4 {
		sepW = 4
	}
	b.WriteString(" " + metaStyle.Render(strings.Repeat("─", sepW)) + "\n")

	if !m.isManager() {
		b.WriteString(" " + dimStyle.Render("only venue managers can list places — register with the host option to get access"))
		return b.String()
	}

	if m.state == hvAdding || m.state == hvEditing {
		return m.viewForm(&b)
	}

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
	if len(m.venues) == 0 {
		b.WriteString(" " + dimStyle.Render("no venues yet — press a to list your first place"))
		return b.String()
	}

	for i, v := range m.venues {
		cursor := "  "
		nameStyle := dimStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
			nameStyle = normalStyle.Bold(true)
		}

		line := cursor + nameStyle.Render(fmt.Sprintf("%-28s", truncStr(v.Name, 28))) + " " +
			priceStyle.Render(fmt.Sprintf("%12s", formatPrice(v.Price))) + " " +
			metaStyle.Render(fmt.Sprintf("%d booking(s)", len(v.Bookings)))
		b.WriteString(line + "\n")

		if i == m.cursor && m.state == hvDeleting {
			b.WriteString("    " + errStyle.Render("delete this venue? y/n") + "\n")
		}
		if i == m.cursor && m.expanded {
			if len(v.Bookings) == 0 {
				b.WriteString("    " + dimStyle.Render("no upcoming stays") + "\n")
				continue
			}
			for _, bk := range v.Bookings {
				guest := "someone"
				if bk.Customer != nil {
					guest = bk.Customer.Name
				}
				b.WriteString("    " + accentStyle.Render(formatRange(bk.DateFrom, bk.DateTo)) + " " +
					metaStyle.Render(fmt.Sprintf("%s, %d guest(s)", guest, bk.Guests)) + "\n")
			}
		}
	}

	return b.String()
}

func (m hostModel) viewForm(b *strings.Builder) string {
	title := "NEW VENUE"
	if m.state == hvEditing {
		title = "EDIT VENUE"
	}
	b.WriteString(" " + sectionHeaderStyle.Render(title) + "\n\n")

	for f := vfName; f < vfWifi; f++ {
		placeholder := ""
		if f == vfPrice {
			placeholder = "450"
		}
		if f == vfGuests {
			placeholder = "4"
		}
		b.WriteString(" " + renderField(venueFieldLabels[f], m.fields[f], placeholder, m.focus == f) + "\n")
	}

	b.WriteString(" " + metaStyle.Render("amenities:  "))
	for f := vfWifi; f <= vfPets; f++ {
		check := "[ ]"
		if m.toggles[f] {
			check = "[x]"
		}
		label := check + " " + venueFieldLabels[f]
		if m.focus == f {
			b.WriteString(" " + selectedStyle.Render(label))
		} else {
			b.WriteString(" " + normalStyle.Render(label))
		}
	}
	b.WriteString("\n\n")

	switch {
	case m.submitted:
		b.WriteString(" " + dimStyle.Render("saving..."))
	case m.statusMsg != "":
		b.WriteString(" " + warnStyle.Render(m.statusMsg))
	default:
		b.WriteString(" " + dimStyle.Render("ctrl+s to save, esc to discard"))
	}
	return b.String()
}

func (m hostModel) helpKeys() string {
	switch m.state {
	case hvAdding, hvEditing:
		return helpEntry("tab", "field") + "  " + helpEntry("space", "toggle") + "  " + helpEntry("ctrl+s", "save") + "  " + helpEntry("esc", "discard")
	case hvDeleting:
		return helpEntry("y", "confirm") + "  " + helpEntry("n", "keep")
	default:
		return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "bookings") + "  " + helpEntry("a", "add") + "  " + helpEntry("e", "edit") + "  " + helpEntry("x", "delete") + "  " + helpEntry("r", "refresh")
	}
}
