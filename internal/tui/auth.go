package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/solveigbr/holidaze/internal/session"
)

type authMode int

const (
	authLogin authMode = iota
	authRegister
)

type authField int

const (
	afName authField = iota // register only
	afEmail
	afPassword
	afManager // register only
	numAuthFields
)

// loggedInMsg tells the root app a session is now active.
type loggedInMsg struct{}

type loginResultMsg struct{ err error }

type registerResultMsg struct{ err error }

// authModel is the login/register form shown whenever no session is active.
type authModel struct {
	store     *session.Store
	mode      authMode
	fields    [numAuthFields]string
	manager   bool
	focus     authField
	submitted bool
	statusMsg string
	errMsg    string
	width     int
	height    int
}

func newAuthModel(store *session.Store) authModel {
	return authModel{store: store, focus: afEmail}
}

func (m authModel) Init() tea.Cmd {
	return nil
}

func (m authModel) Update(msg tea.Msg) (authModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.submitted = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return loggedInMsg{} }

	case registerResultMsg:
		m.submitted = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		// Registration does not log in; hand the user over to the login form.
		m.mode = authLogin
		m.focus = afEmail
		m.fields[afPassword] = ""
		m.statusMsg = "account created — log in to continue"
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

func (m authModel) handleKey(msg tea.KeyMsg) (authModel, tea.Cmd) {
	if m.submitted {
		return m, nil
	}
	m.statusMsg = ""
	m.errMsg = ""

	switch msg.String() {
	case "tab", "down":
		m.focus = m.nextField(m.focus, 1)
	case "shift+tab", "up":
		m.focus = m.nextField(m.focus, -1)
	case "ctrl+s":
		return m.submit()
	case "ctrl+r":
		// Toggle between login and register
		if m.mode == authLogin {
			m.mode = authRegister
			m.focus = afName
		} else {
			m.mode = authLogin
			m.focus = afEmail
		}
	case "enter":
		if m.focus == m.lastField() {
			return m.submit()
		}
		m.focus = m.nextField(m.focus, 1)
	case " ":
		if m.focus == afManager {
			m.manager = !m.manager
			return m, nil
		}
		m.fields[m.focus] = editRune(m.fields[m.focus], msg.String())
	default:
		if m.focus != afManager {
			m.fields[m.focus] = editRune(m.fields[m.focus], msg.String())
		}
	}
	return m, nil
}

func (m authModel) lastField() authField {
	if m.mode == authRegister {
		return afManager
	}
	return afPassword
}

func (m authModel) nextField(f authField, dir int) authField {
	for {
		f = authField((int(f) + dir + int(numAuthFields)) % int(numAuthFields))
		if m.mode == authLogin && (f == afName || f == afManager) {
			continue
		}
		return f
	}
}

func (m authModel) submit() (authModel, tea.Cmd) {
	email := strings.TrimSpace(m.fields[afEmail])
	password := m.fields[afPassword]
	if email == "" || password == "" {
		m.errMsg = "email and password are required"
		return m, nil
	}

	store := m.store
	if m.mode == authRegister {
		name := strings.TrimSpace(m.fields[afName])
		if name == "" {
			m.errMsg = "name is required"
			return m, nil
		}
		manager := m.manager
		m.submitted = true
		return m, func() tea.Msg {
			return registerResultMsg{err: store.Register(context.Background(), name, email, password, manager)}
		}
	}

	m.submitted = true
	return m, func() tea.Msg {
		return loginResultMsg{err: store.Login(context.Background(), email, password)}
	}
}

func (m authModel) View() string {
	var b strings.Builder

	if m.mode == authRegister {
		b.WriteString(" " + sectionHeaderStyle.Render("CREATE ACCOUNT") + "  " + dimStyle.Render("ctrl+r to log in instead") + "\n\n")
		b.WriteString(" " + renderField("name:    ", m.fields[afName], "your handle", m.focus == afName) + "\n")
	} else {
		b.WriteString(" " + sectionHeaderStyle.Render("LOG IN") + "  " + dimStyle.Render("ctrl+r to create an account") + "\n\n")
	}

	b.WriteString(" " + renderField("email:   ", m.fields[afEmail], "name@stud.noroff.no", m.focus == afEmail) + "\n")
	b.WriteString(" " + renderField("password:", maskValue(m.fields[afPassword]), "••••••••", m.focus == afPassword) + "\n")

	if m.mode == authRegister {
		check := "[ ]"
		if m.manager {
			check = "[x]"
		}
		label := metaStyle.Render("host:    ")
		if m.focus == afManager {
			label = inputPromptStyle.Render("host:    ")
		}
		b.WriteString(" " + label + " " + normalStyle.Render(check+" I want to list venues") + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.submitted:
		b.WriteString(" " + dimStyle.Render("contacting the Holidaze API..."))
	case m.errMsg != "":
		b.WriteString(" " + errStyle.Render(m.errMsg))
	case m.statusMsg != "":
		b.WriteString(" " + okStyle.Render(m.statusMsg))
	}

	return b.String()
}
