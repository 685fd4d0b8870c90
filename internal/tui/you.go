package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/solveigbr/holidaze/internal/session"
)

// loggedOutMsg tells the root app the session was ended.
type loggedOutMsg struct{}

type avatarResultMsg struct{ err error }

// youModel shows the signed-in profile and lets the user change their
// avatar or log out.
type youModel struct {
	store     *session.Store
	avatarURL string
	editing   bool
	submitted bool
	statusMsg string
	errMsg    string
	width     int
	height    int
}

func newYouModel(store *session.Store) youModel {
	return youModel{store: store}
}

func (m youModel) Init() tea.Cmd {
	return nil
}

func (m youModel) Update(msg tea.Msg) (youModel, tea.Cmd) {
	switch msg := msg.(type) {
	case avatarResultMsg:
		m.submitted = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.editing = false
		m.statusMsg = "avatar updated"
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m youModel) handleKey(msg tea.KeyMsg) (youModel, tea.Cmd) {
	if m.submitted {
		return m, nil
	}
	m.statusMsg = ""
	m.errMsg = ""

	if m.editing {
		switch msg.String() {
		case "esc":
			m.editing = false
		case "enter", "ctrl+s":
			url := strings.TrimSpace(m.avatarURL)
			if url == "" {
				m.errMsg = "paste an image url first"
				return m, nil
			}
			store := m.store
			m.submitted = true
			return m, func() tea.Msg {
				return avatarResultMsg{err: store.UpdateAvatar(context.Background(), url)}
			}
		default:
			m.avatarURL = editRune(m.avatarURL, msg.String())
		}
		return m, nil
	}

	switch msg.String() {
	case "a", "e":
		m.editing = true
		if user := m.store.User(); user != nil {
			m.avatarURL = user.AvatarURL()
		}
	case "ctrl+l":
		store := m.store
		return m, func() tea.Msg {
			store.Logout()
			return loggedOutMsg{}
		}
	}
	return m, nil
}

func (m youModel) View() string {
	var b strings.Builder

	b.WriteString(" " + sectionHeaderStyle.Render("YOUR PROFILE") + "\n")
	sepW := m.width - 2
	if sepW < 4 {
		sepW = 4
	}
	b.WriteString(" " + metaStyle.Render(strings.Repeat("─", sepW)) + "\n")

	user := m.store.User()
	if user == nil {
		b.WriteString(" " + dimStyle.Render("not logged in"))
		return b.String()
	}

	b.WriteString(" " + metaStyle.Render("name:  ") + " " + normalStyle.Bold(true).Render(user.Name))
	if user.VenueManager {
		b.WriteString(" " + managerBadgeStyle.Render(" HOST "))
	}
	b.WriteString("\n")
	b.WriteString(" " + metaStyle.Render("email: ") + " " + normalStyle.Render(user.Email) + "\n")

	avatar := user.AvatarURL()
	if avatar == "" {
		avatar = "(none)"
	}
	if m.editing {
		b.WriteString(" " + renderField("avatar:", m.avatarURL, "https://...", true) + "\n")
	} else {
		b.WriteString(" " + metaStyle.Render("avatar:") + " " + dimStyle.Render(truncStr(avatar, 60)) + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.submitted:
		b.WriteString(" " + dimStyle.Render("saving..."))
	case m.errMsg != "":
		b.WriteString(" " + errStyle.Render(m.errMsg))
	case m.statusMsg != "":
		b.WriteString(" " + okStyle.Render(m.statusMsg))
	}

	return b.String()
}

func (m youModel) helpKeys() string {
	if m.editing {
		return helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel")
	}
	return helpEntry("a", "change avatar") + "  " + helpEntry("ctrl+l", "log out")
}
