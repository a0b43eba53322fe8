package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taleemtrack/taleemtrack-cli/internal/auth"
	"github.com/taleemtrack/taleemtrack-cli/internal/store"
)

// RunApp starts the interactive session browser, entering through the
// route guard (login screen first when unauthenticated).
func RunApp(authSvc *auth.Service, st *store.SessionStore) error {
	p := tea.NewProgram(newAppModel(authSvc, st), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RunLogin runs just the login screen, returning once the user has
// authenticated or quit.
func RunLogin(authSvc *auth.Service) error {
	p := tea.NewProgram(loginOnlyModel{login: newLoginModel(authSvc)})
	_, err := p.Run()
	return err
}

// loginOnlyModel wraps the login screen for the standalone `login` command.
type loginOnlyModel struct {
	login loginModel
}

func (m loginOnlyModel) Init() tea.Cmd {
	return m.login.Init()
}

func (m loginOnlyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "esc" {
			return m, tea.Quit
		}
	case loginDoneMsg:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.login, cmd = m.login.Update(msg)
	return m, cmd
}

func (m loginOnlyModel) View() string {
	return m.login.View()
}
