package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taleemtrack/taleemtrack-cli/internal/models"
	"github.com/taleemtrack/taleemtrack-cli/internal/store"
)

// formDoneMsg closes the form; reload tells the list to refresh.
type formDoneMsg struct {
	reload bool
}

// formSavedMsg signals the store finished the create/update call.
type formSavedMsg struct{}

const (
	fieldName = iota
	fieldStartDate
	fieldEndDate
	fieldCurrent
	fieldCount
)

// formModel is the create/edit screen. The same validation rules as the
// original form apply: all fields required, start date strictly before end
// date. The submit action stays disabled while the mutation is in flight.
type formModel struct {
	store *store.SessionStore

	editID    int64
	editing   bool
	inputs    []textinput.Model
	isCurrent bool
	focus     int

	busy          bool
	validationErr string
}

func newFormModel(st *store.SessionStore, session *models.AcademicSession) formModel {
	name := textinput.New()
	name.Placeholder = "e.g. 2024-2025"
	name.CharLimit = 64
	name.Focus()

	start := textinput.New()
	start.Placeholder = "YYYY-MM-DD"
	start.CharLimit = 10

	end := textinput.New()
	end.Placeholder = "YYYY-MM-DD"
	end.CharLimit = 10

	m := formModel{
		store:  st,
		inputs: []textinput.Model{name, start, end},
	}

	if session != nil {
		m.editing = true
		m.editID = session.ID
		m.inputs[fieldName].SetValue(session.Name)
		m.inputs[fieldStartDate].SetValue(session.StartDate.String())
		m.inputs[fieldEndDate].SetValue(session.EndDate.String())
		m.isCurrent = session.IsCurrent
	}

	return m
}

func (m formModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m formModel) Update(msg tea.Msg) (formModel, tea.Cmd) {
	switch msg := msg.(type) {
	case formSavedMsg:
		m.busy = false
		if errMsg := m.store.ErrorMessage(); errMsg != "" {
			// The store absorbed the failure; show it inline and stay on
			// the form so the user can correct and retry.
			m.validationErr = errMsg
			return m, nil
		}
		return m, func() tea.Msg { return formDoneMsg{reload: true} }

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return formDoneMsg{} }
		case "tab", "down":
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, nil
		case " ":
			if m.focus == fieldCurrent {
				m.isCurrent = !m.isCurrent
				return m, nil
			}
		case "enter":
			return m.submit()
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

func (m *formModel) setFocus(focus int) {
	m.focus = focus
	for i := range m.inputs {
		if i == focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m formModel) submit() (formModel, tea.Cmd) {
	req, err := m.buildRequest()
	if err != nil {
		m.validationErr = err.Error()
		return m, nil
	}

	m.busy = true
	m.validationErr = ""
	st := m.store
	if m.editing {
		id := m.editID
		return m, func() tea.Msg {
			st.UpdateSession(context.Background(), id, req)
			return formSavedMsg{}
		}
	}
	return m, func() tea.Msg {
		st.CreateSession(context.Background(), req)
		return formSavedMsg{}
	}
}

func (m formModel) buildRequest() (models.SessionRequest, error) {
	var req models.SessionRequest

	req.Name = strings.TrimSpace(m.inputs[fieldName].Value())

	start, err := models.ParseDate(strings.TrimSpace(m.inputs[fieldStartDate].Value()))
	if err != nil {
		return req, err
	}
	end, err := models.ParseDate(strings.TrimSpace(m.inputs[fieldEndDate].Value()))
	if err != nil {
		return req, err
	}

	req.StartDate = start
	req.EndDate = end
	req.IsCurrent = m.isCurrent

	if err := req.Validate(nil); err != nil {
		return req, err
	}
	return req, nil
}

func (m formModel) View() string {
	var b strings.Builder
	if m.editing {
		b.WriteString(titleStyle.Render("Edit Academic Session") + "\n\n")
	} else {
		b.WriteString(titleStyle.Render("New Academic Session") + "\n\n")
	}

	b.WriteString(labelStyle.Render("Name") + "\n" + m.inputs[fieldName].View() + "\n\n")
	b.WriteString(labelStyle.Render("Start date") + "\n" + m.inputs[fieldStartDate].View() + "\n\n")
	b.WriteString(labelStyle.Render("End date") + "\n" + m.inputs[fieldEndDate].View() + "\n\n")

	check := "[ ]"
	if m.isCurrent {
		check = "[x]"
	}
	currentLine := check + " set as current session"
	if m.focus == fieldCurrent {
		currentLine = selectedRowStyle.Render(currentLine)
	} else {
		currentLine = labelStyle.Render(currentLine)
	}
	b.WriteString(currentLine + "\n\n")

	if m.busy {
		b.WriteString(hintStyle.Render("saving...") + "\n")
	}
	if m.validationErr != "" {
		b.WriteString(errorStyle.Render(m.validationErr) + "\n")
	}

	b.WriteString("\n" + hintStyle.Render("enter save · space toggle current · tab next field · esc cancel"))
	return b.String()
}
