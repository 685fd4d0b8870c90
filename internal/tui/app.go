package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/solveigbr/holidaze/internal/session"
	"github.com/solveigbr/holidaze/pkg/client"
)

type view int

const (
	viewAuth view = iota
	viewBrowse
	viewTrips
	viewHost
	viewYou
)

// App is the root Bubbletea model.
type App struct {
	client   *client.Client
	store    *session.Store
	view     view
	auth     authModel
	browse   browseModel
	trips    tripsModel
	host     hostModel
	you      youModel
	helpOpen bool
	width    int
	height   int
	frame    int // logo shimmer animation frame
}

// NewApp creates a new TUI application. If the store holds a restored
// session the app opens on the venue list, otherwise on the login form.
func NewApp(c *client.Client, store *session.Store) App {
	a := App{
		client: c,
		store:  store,
		auth:   newAuthModel(store),
		browse: newBrowseModel(c),
		trips:  newTripsModel(c, store),
		host:   newHostModel(c, store),
		you:    newYouModel(store),
	}
	if store.LoggedIn() {
		a.view = viewBrowse
	}
	return a
}

func (a App) Init() tea.Cmd {
	if a.view == viewAuth {
		return shimmerTickCmd()
	}
	return tea.Batch(a.browse.Init(), shimmerTickCmd())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + help(1) = 4 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		a.auth, _ = a.auth.Update(bodyMsg)
		a.browse, _ = a.browse.Update(bodyMsg)
		a.trips, _ = a.trips.Update(bodyMsg)
		a.host, _ = a.host.Update(bodyMsg)
		a.you, _ = a.you.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case loggedInMsg:
		a.view = viewBrowse
		a.trips = newTripsModel(a.client, a.store)
		a.host = newHostModel(a.client, a.store)
		a.you = newYouModel(a.store)
		return a, a.browse.Init()

	case loggedOutMsg:
		a.view = viewAuth
		a.auth = newAuthModel(a.store)
		return a, nil

	case tea.KeyMsg:
		// Help overlay captures all keys when open
		if a.helpOpen {
			switch msg.String() {
			case "h", "esc", "q":
				a.helpOpen = false
			case "ctrl+c":
				return a, tea.Quit
			}
			return a, nil
		}

		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// The login form owns the keyboard until a session exists.
		if a.view == viewAuth {
			var cmd tea.Cmd
			a.auth, cmd = a.auth.Update(msg)
			return a, cmd
		}

		if !a.isEditing() {
			switch msg.String() {
			case "h":
				a.helpOpen = true
				return a, nil
			case "q":
				return a, tea.Quit
			case "1":
				if a.view != viewBrowse {
					a.view = viewBrowse
					return a, a.browse.Init()
				}
				return a, nil
			case "2":
				if a.view != viewTrips {
					a.view = viewTrips
					return a, a.trips.Init()
				}
				return a, nil
			case "3":
				if a.view != viewHost {
					a.view = viewHost
					return a, a.host.Init()
				}
				return a, nil
			case "4":
				if a.view != viewYou {
					a.view = viewYou
					return a, a.you.Init()
				}
				return a, nil
			}
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewAuth:
		a.auth, cmd = a.auth.Update(msg)
	case viewBrowse:
		a.browse, cmd = a.browse.Update(msg)
	case viewTrips:
		a.trips, cmd = a.trips.Update(msg)
	case viewHost:
		a.host, cmd = a.host.Update(msg)
	case viewYou:
		a.you, cmd = a.you.Update(msg)
	}
	return a, cmd
}

// isEditing reports whether the active view has keyboard focus in a
// text field, so digits and letters must not switch tabs.
func (a App) isEditing() bool {
	switch a.view {
	case viewBrowse:
		return a.browse.editing || a.browse.booking
	case viewTrips:
		return a.trips.state != trNormal
	case viewHost:
		return a.host.state != hvNormal
	case viewYou:
		return a.you.editing
	}
	return false
}

func (a App) View() string {
	// Header: centered shimmer logo
	logo := renderShimmerLogo(a.frame)
	logoWidth := lipgloss.Width(logo)
	logoPad := (a.width - logoWidth) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo

	// Identity line below the logo
	idLine := ""
	if user := a.store.User(); user != nil {
		idLine = user.Name
		if user.VenueManager {
			idLine += " · host"
		}
		idLine = metaStyle.Render(idLine)
	}
	if idLine != "" {
		idWidth := lipgloss.Width(idLine)
		idPad := (a.width - idWidth) / 2
		if idPad < 0 {
			idPad = 0
		}
		header += "\n" + strings.Repeat(" ", idPad) + idLine
	} else {
		header += "\n"
	}

	// Tab bar: 1 Browse  2 Trips  3 Host  4 You
	type tabEntry struct {
		key  string
		name string
		v    view
	}
	tabs := []tabEntry{
		{"1", "Browse", viewBrowse},
		{"2", "Trips", viewTrips},
		{"3", "Host", viewHost},
		{"4", "You", viewYou},
	}

	var tabBar string
	if a.view == viewAuth {
		welcome := dimStyle.Render("log in to browse, book, and host")
		wPad := (a.width - lipgloss.Width(welcome)) / 2
		if wPad < 0 {
			wPad = 0
		}
		tabBar = strings.Repeat(" ", wPad) + welcome
	} else {
		colWidth := a.width / len(tabs)
		var tb strings.Builder
		for _, t := range tabs {
			var label string
			if t.v == a.view {
				label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
			} else {
				label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
			}
			labelWidth := lipgloss.Width(label)
			leftPad := (colWidth - labelWidth) / 2
			if leftPad < 0 {
				leftPad = 0
			}
			rightPad := colWidth - labelWidth - leftPad
			if rightPad < 0 {
				rightPad = 0
			}
			tb.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
		}
		tabBar = tb.String()
	}

	// Body + per-view help line
	var body string
	var help string
	switch a.view {
	case viewAuth:
		body = a.auth.View()
		help = " " + helpEntry("tab", "field") + "  " + helpEntry("enter", "next/submit") + "  " + helpEntry("ctrl+r", "login/register") + "  " + helpEntry("ctrl+c", "quit")
	case viewBrowse:
		body = a.browse.View()
		if a.browse.detail {
			help = " " + helpEntry("1-4", "tabs") + "  " + helpEntry("b", "book") + "  " + helpEntry("o", "photos") + "  " + helpEntry("c", "copy id") + "  " + helpEntry("esc", "back")
		} else {
			help = " " + helpEntry("1-4", "tabs") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("/", "search") + "  " + helpEntry("enter", "detail") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
		}
	case viewTrips:
		body = a.trips.View()
		help = " " + helpEntry("1-4", "tabs") + "  " + a.trips.helpKeys()
	case viewHost:
		body = a.host.View()
		help = " " + helpEntry("1-4", "tabs") + "  " + a.host.helpKeys()
	case viewYou:
		body = a.you.View()
		help = " " + helpEntry("1-4", "tabs") + "  " + a.you.helpKeys()
	}

	// Help overlay
	if a.helpOpen {
		body = helpView()
		help = " " + helpEntry("esc", "close")
	}

	// Chrome budget: header(2) + tabs(1) + help(1) = 4 lines + body
	chrome := 4
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, tabBar, body, help)
}
