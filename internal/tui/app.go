package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taleemtrack/taleemtrack-cli/internal/auth"
	"github.com/taleemtrack/taleemtrack-cli/internal/guard"
	"github.com/taleemtrack/taleemtrack-cli/internal/models"
	"github.com/taleemtrack/taleemtrack-cli/internal/store"
)

// Screen routes within the app.
const (
	routeSessions = "sessions"
)

type screen int

const (
	screenLogin screen = iota
	screenList
	screenForm
	screenUnauthorized
)

// loginDoneMsg navigates back to the originally requested screen.
type loginDoneMsg struct{}

// openFormMsg opens the session form, editing when session is set.
type openFormMsg struct {
	session *models.AcademicSession
}

// appModel is the root model: it routes between screens, consulting the
// guard before entering protected ones, the same way the original app
// guards its routes.
type appModel struct {
	authSvc *auth.Service
	store   *store.SessionStore
	guard   *guard.Guard

	screen    screen
	returnURL string

	login loginModel
	list  listModel
	form  formModel
}

// newAppModel routes to the session list, falling back to login when the
// guard denies entry.
func newAppModel(authSvc *auth.Service, st *store.SessionStore) appModel {
	m := appModel{
		authSvc: authSvc,
		store:   st,
		guard:   guard.New(authSvc),
		login:   newLoginModel(authSvc),
		list:    newListModel(st),
	}

	decision := m.guard.Check(routeSessions)
	if decision.Allowed {
		m.screen = screenList
	} else {
		m.screen = screenLogin
		m.returnURL = decision.ReturnURL
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	if m.screen == screenList {
		return m.list.Init()
	}
	return m.login.Init()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			// Text fields swallow plain keystrokes; only the list treats
			// q as quit.
			if m.screen == screenList && m.list.confirmDelete == nil {
				return m, tea.Quit
			}
		}

	case loginDoneMsg:
		target := m.returnURL
		if target == "" {
			target = routeSessions
		}
		m.returnURL = ""
		if decision := m.guard.Check(target); !decision.Allowed {
			m.screen = screenLogin
			return m, nil
		}
		m.screen = screenList
		m.list = newListModel(m.store)
		return m, m.list.Init()

	case openFormMsg:
		m.screen = screenForm
		m.form = newFormModel(m.store, msg.session)
		return m, m.form.Init()

	case formDoneMsg:
		m.screen = screenList
		if msg.reload {
			return m, m.list.reloadCmd()
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.screen {
	case screenLogin:
		m.login, cmd = m.login.Update(msg)
	case screenList:
		m.list, cmd = m.list.Update(msg)
	case screenForm:
		m.form, cmd = m.form.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	switch m.screen {
	case screenLogin:
		return m.login.View()
	case screenForm:
		return m.form.View()
	case screenUnauthorized:
		return errorStyle.Render("You are not authorized to view this screen.")
	default:
		return m.list.View()
	}
}
