package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taleemtrack/taleemtrack-cli/internal/auth"
	"github.com/taleemtrack/taleemtrack-cli/internal/models"
)

// loginResultMsg carries the outcome of a login attempt.
type loginResultMsg struct {
	err error
}

// loginModel is the login screen: two fields, enter to submit, field-level
// error on rejected credentials.
type loginModel struct {
	authSvc *auth.Service

	inputs   []textinput.Model
	focus    int
	busy     bool
	loginErr string
}

func newLoginModel(authSvc *auth.Service) loginModel {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 64
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return loginModel{
		authSvc: authSvc,
		inputs:  []textinput.Model{username, password},
	}
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			m.loginErr = msg.err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return loginDoneMsg{} }

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.focus = (m.focus + 1) % len(m.inputs)
			for i := range m.inputs {
				if i == m.focus {
					m.inputs[i].Focus()
				} else {
					m.inputs[i].Blur()
				}
			}
			return m, nil
		case "enter":
			username := strings.TrimSpace(m.inputs[0].Value())
			password := m.inputs[1].Value()
			if username == "" || password == "" {
				m.loginErr = "username and password are required"
				return m, nil
			}
			m.busy = true
			m.loginErr = ""
			return m, m.loginCmd(username, password)
		}
	}

	var cmds []tea.Cmd
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m loginModel) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		err := m.authSvc.Login(context.Background(), models.LoginRequest{
			Username: username,
			Password: password,
		})
		return loginResultMsg{err: err}
	}
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("TaleemTrack / Sign in") + "\n\n")
	b.WriteString(labelStyle.Render("Username") + "\n" + m.inputs[0].View() + "\n\n")
	b.WriteString(labelStyle.Render("Password") + "\n" + m.inputs[1].View() + "\n\n")

	if m.busy {
		b.WriteString(hintStyle.Render("signing in...") + "\n")
	}
	if m.loginErr != "" {
		b.WriteString(errorStyle.Render(m.loginErr) + "\n")
	}
	b.WriteString("\n" + hintStyle.Render("enter submit · tab switch field · ctrl+c quit"))
	return b.String()
}
