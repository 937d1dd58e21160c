package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/sendit/internal/app"
	"github.com/balkashynov/sendit/internal/models"
)

// RunSessionForm runs the log/edit wizard for s. ok is false when the user cancelled.
func RunSessionForm(a *app.App, s models.Session, editing bool) (saved models.Session, ok bool, err error) {
	model := NewSessionFormModel(a, s, editing)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return models.Session{}, false, err
	}

	m, isForm := finalModel.(SessionFormModel)
	if !isForm || !m.saved {
		return models.Session{}, false, nil
	}
	return m.session, true, nil
}

// RunDashboard starts the interactive dashboard
func RunDashboard(a *app.App, limit int) error {
	p := tea.NewProgram(NewDashboardModel(a, limit), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
