package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taleemtrack/taleemtrack-cli/internal/models"
	"github.com/taleemtrack/taleemtrack-cli/internal/store"
)

// storeUpdatedMsg signals that a store operation finished and the screen
// should re-read its snapshot.
type storeUpdatedMsg struct{}

// listModel renders the academic-session collection: spinner while loading,
// inline error banner with retry, confirm-before-delete modal.
type listModel struct {
	store   *store.SessionStore
	spinner spinner.Model

	sessions []models.AcademicSession
	cursor   int

	confirmDelete *models.AcademicSession
}

func newListModel(st *store.SessionStore) listModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	return listModel{store: st, spinner: sp}
}

func (m listModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.reloadCmd())
}

// reloadCmd fetches the collection and the current session in one pass.
func (m listModel) reloadCmd() tea.Cmd {
	st := m.store
	return func() tea.Msg {
		st.LoadSessions(context.Background())
		st.LoadCurrentSession(context.Background())
		return storeUpdatedMsg{}
	}
}

func (m listModel) deleteCmd(id int64) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		st.DeleteSession(context.Background(), id)
		return storeUpdatedMsg{}
	}
}

func (m listModel) setCurrentCmd(id int64) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		st.SetCurrentSession(context.Background(), id)
		return storeUpdatedMsg{}
	}
}

func (m listModel) Update(msg tea.Msg) (listModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case storeUpdatedMsg:
		m.sessions = m.store.Sessions()
		if m.cursor >= len(m.sessions) {
			m.cursor = len(m.sessions) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		// Mutations stay disabled while a request is in flight.
		if m.store.IsLoading() {
			return m, nil
		}

		if m.confirmDelete != nil {
			switch msg.String() {
			case "y", "Y", "enter":
				id := m.confirmDelete.ID
				m.confirmDelete = nil
				return m, m.deleteCmd(id)
			case "n", "N", "esc":
				m.confirmDelete = nil
			}
			return m, nil
		}

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			m.syncSelection()
		case "down", "j":
			if m.cursor < len(m.sessions)-1 {
				m.cursor++
			}
			m.syncSelection()
		case "r":
			return m, m.reloadCmd()
		case "n":
			return m, func() tea.Msg { return openFormMsg{} }
		case "e":
			if selected := m.selected(); selected != nil {
				session := *selected
				return m, func() tea.Msg { return openFormMsg{session: &session} }
			}
		case "c":
			if selected := m.selected(); selected != nil {
				return m, m.setCurrentCmd(selected.ID)
			}
		case "d":
			if selected := m.selected(); selected != nil {
				session := *selected
				m.confirmDelete = &session
			}
		}
	}
	return m, nil
}

func (m *listModel) syncSelection() {
	m.store.SelectSession(m.selected())
}

func (m listModel) selected() *models.AcademicSession {
	if m.cursor < 0 || m.cursor >= len(m.sessions) {
		return nil
	}
	session := m.sessions[m.cursor]
	return &session
}

func (m listModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Academic Sessions") + "\n")

	if current := m.store.CurrentSession(); current != nil {
		b.WriteString(hintStyle.Render("current: ") + successStyle.Render(current.Name) + "\n")
	} else {
		b.WriteString(hintStyle.Render("no current session set") + "\n")
	}
	b.WriteString("\n")

	if m.store.IsLoading() {
		b.WriteString(m.spinner.View() + hintStyle.Render(" loading...") + "\n\n")
	}

	if errMsg := m.store.ErrorMessage(); errMsg != "" {
		b.WriteString(errorStyle.Render("error: "+errMsg) + "\n")
		b.WriteString(hintStyle.Render("press r to retry") + "\n\n")
	}

	if len(m.sessions) == 0 && !m.store.IsLoading() {
		b.WriteString(hintStyle.Render("no academic sessions yet, press n to create one") + "\n")
	} else {
		b.WriteString(headerRowStyle.Render(fmt.Sprintf("  %-24s %-12s %-12s %s", "NAME", "START", "END", "CURRENT")) + "\n")
		for i, session := range m.sessions {
			marker := "  "
			style := labelStyle
			if i == m.cursor {
				marker = "> "
				style = selectedRowStyle
			}
			current := ""
			if session.IsCurrent {
				current = successStyle.Render("●")
			}
			row := fmt.Sprintf("%-24s %-12s %-12s %s",
				session.Name, session.StartDate.String(), session.EndDate.String(), current)
			b.WriteString(marker + style.Render(row) + "\n")
		}
	}

	if m.confirmDelete != nil {
		prompt := fmt.Sprintf("Delete %q? This cannot be undone.\n\n[y] yes   [n] no", m.confirmDelete.Name)
		b.WriteString("\n" + modalStyle.Render(prompt) + "\n")
	}

	b.WriteString("\n" + hintStyle.Render("n new · e edit · d delete · c set current · r reload · q quit"))
	return b.String()
}
