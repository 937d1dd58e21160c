package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/balkashynov/sendit/internal/app"
	"github.com/balkashynov/sendit/internal/models"
	"github.com/balkashynov/sendit/internal/parser"
	"github.com/balkashynov/sendit/internal/stats"
)

// Step represents the current step in the wizard
type Step int

const (
	StepDate Step = iota
	StepGym
	StepDuration
	StepEnergyBefore
	StepSkin
	StepPsych
	StepClimbs
	StepEnergyAfter
	StepNotes
	StepNext
	StepSave
)

var stepLabels = []string{"Date", "Gym", "Duration", "Energy before", "Skin", "Psych", "Climbs", "Energy after", "Notes", "Next focus", "Save"}

// formClosedMsg tells a host model that an embedded form finished.
type formClosedMsg struct {
	saved bool
}

// SessionFormModel is the step-by-step session wizard
type SessionFormModel struct {
	app         *app.App
	currentStep Step
	inputs      []textinput.Model
	width       int
	height      int

	// session carries the fields no input owns (id, climbs); original is the unedited copy
	session  models.Session
	original models.Session

	isEditMode bool
	standalone bool

	// State
	validationErr string
	saved         bool
	cancelled     bool

	// Save confirmation modal
	showSaveModal   bool
	saveModalChoice bool // true for Yes, false for No
}

// NewSessionFormModel creates the wizard pre-filled from s.
func NewSessionFormModel(a *app.App, s models.Session, editing bool) SessionFormModel {
	inputs := make([]textinput.Model, StepSave)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 60
		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
		inputs[i].CharLimit = 100
	}

	inputs[StepDate].Placeholder = "today, yesterday, 3 days ago, dd/mm/yyyy (Enter for today)"
	inputs[StepGym].Placeholder = "Gym name (Enter to skip)"
	inputs[StepDuration].Placeholder = "Minutes, e.g. 90"
	inputs[StepEnergyBefore].Placeholder = strings.Join(models.EnergyLevels, " / ")
	inputs[StepSkin].Placeholder = strings.Join(models.SkinConditions, " / ")
	inputs[StepPsych].Placeholder = "1-5"
	inputs[StepClimbs].Placeholder = `V5 x3 sent #red @overhang "notes" (Enter on empty to continue)`
	inputs[StepClimbs].CharLimit = 200
	inputs[StepEnergyAfter].Placeholder = strings.Join(models.EnergyLevels, " / ")
	inputs[StepNotes].Placeholder = "How did it go? (Enter to skip)"
	inputs[StepNotes].CharLimit = 500
	inputs[StepNext].Placeholder = "Focus for next session (Enter to skip)"
	inputs[StepNext].CharLimit = 300

	if !s.Date.IsZero() && s.Date != a.Today() {
		inputs[StepDate].SetValue(s.Date.String())
	}
	inputs[StepGym].SetValue(s.GymName)
	inputs[StepDuration].SetValue(strconv.Itoa(s.Duration))
	inputs[StepEnergyBefore].SetValue(s.EnergyBefore.String())
	inputs[StepSkin].SetValue(s.SkinCondition.String())
	inputs[StepPsych].SetValue(strconv.Itoa(models.ClampPsych(s.PsychLevel)))
	inputs[StepEnergyAfter].SetValue(s.EnergyAfter.String())
	inputs[StepNotes].SetValue(s.Notes)
	inputs[StepNext].SetValue(s.Goals)

	inputs[StepDate].Focus()

	s = s.Clone()
	if s.Climbs == nil {
		s.Climbs = []models.Climb{}
	}

	return SessionFormModel{
		app:        a,
		inputs:     inputs,
		session:    s,
		original:   s.Clone(),
		isEditMode: editing,
	}
}

// Init initializes the model
func (m SessionFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m SessionFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		inputWidth := (m.width * 2 / 3) - 10
		if inputWidth < 30 {
			inputWidth = 30
		}
		if inputWidth > 80 {
			inputWidth = 80
		}
		for i := range m.inputs {
			m.inputs[i].Width = inputWidth
		}
		return m, nil

	case tea.KeyMsg:
		if m.showSaveModal {
			switch msg.String() {
			case "left", "right":
				m.saveModalChoice = !m.saveModalChoice
				return m, nil
			case "y", "Y":
				m.saveModalChoice = true
				return m.handleSaveChoice()
			case "n", "N":
				m.saveModalChoice = false
				return m.handleSaveChoice()
			case "enter":
				return m.handleSaveChoice()
			case "esc":
				m.showSaveModal = false
				return m, nil
			case "ctrl+c":
				m.cancelled = true
				return m, m.close()
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			m.cancelled = true
			return m, m.close()

		case "esc":
			if m.currentStep == StepSave {
				return m.prevStep()
			}
			if !m.hasChanges() {
				m.cancelled = true
				return m, m.close()
			}
			m.showSaveModal = true
			m.saveModalChoice = true
			return m, nil

		case "enter":
			return m.handleEnter()

		case "tab", "down":
			if m.currentStep < StepSave {
				if err := m.checkStep(m.currentStep); err != nil {
					m.validationErr = err.Error()
					return m, nil
				}
			}
			return m.nextStep()

		case "shift+tab", "up":
			return m.prevStep()
		}
	}

	var cmd tea.Cmd
	if m.currentStep < StepSave {
		m.inputs[m.currentStep], cmd = m.inputs[m.currentStep].Update(msg)
	}
	return m, cmd
}

// close ends the form: quits a standalone program, or notifies the host model.
func (m SessionFormModel) close() tea.Cmd {
	if m.standalone {
		return tea.Quit
	}
	saved := m.saved
	return func() tea.Msg { return formClosedMsg{saved: saved} }
}

// handleEnter validates the current step and moves on
func (m SessionFormModel) handleEnter() (SessionFormModel, tea.Cmd) {
	m.validationErr = ""

	switch m.currentStep {
	case StepClimbs:
		spec := strings.TrimSpace(m.inputs[StepClimbs].Value())
		switch strings.ToLower(spec) {
		case "":
			return m.nextStep()
		case "undo":
			if n := len(m.session.Climbs); n > 0 {
				m.session.Climbs = m.session.Climbs[:n-1]
			}
			m.inputs[StepClimbs].SetValue("")
			return m, nil
		}

		parsed := parser.ParseClimb(spec)
		if len(parsed.Errors) > 0 {
			m.validationErr = strings.Join(parsed.Errors, "; ")
			return m, nil
		}
		c := m.app.NewClimb()
		parsed.Apply(&c)
		m.session.Climbs = append(m.session.Climbs, c)
		m.inputs[StepClimbs].SetValue("")
		m.inputs[StepClimbs].Placeholder = fmt.Sprintf("Add another climb (%d so far, 'undo' removes the last, Enter to continue)", len(m.session.Climbs))
		return m, nil

	case StepSave:
		return m.save()
	}

	if err := m.checkStep(m.currentStep); err != nil {
		m.validationErr = err.Error()
		return m, nil
	}
	return m.nextStep()
}

// checkStep validates a single input without applying it.
func (m SessionFormModel) checkStep(step Step) error {
	s := m.session.Clone()
	return m.applyStep(step, &s)
}

// applyStep parses the input for step into s.
func (m SessionFormModel) applyStep(step Step, s *models.Session) error {
	value := strings.TrimSpace(m.inputs[step].Value())

	switch step {
	case StepDate:
		d, err := parser.ParseSessionDate(value, m.app.Now())
		if err != nil {
			return err
		}
		s.Date = d
	case StepGym:
		s.GymName = value
	case StepDuration:
		s.Duration = parser.ParseMinutes(value)
	case StepEnergyBefore, StepEnergyAfter:
		if value == "" {
			return nil
		}
		e, err := models.ParseEnergyLevel(value)
		if err != nil {
			return err
		}
		if step == StepEnergyBefore {
			s.EnergyBefore = e
		} else {
			s.EnergyAfter = e
		}
	case StepSkin:
		if value == "" {
			return nil
		}
		sk, err := models.ParseSkinCondition(value)
		if err != nil {
			return err
		}
		s.SkinCondition = sk
	case StepPsych:
		s.PsychLevel = models.ClampPsych(parser.ParseCount(value, s.PsychLevel))
	case StepNotes:
		s.Notes = value
	case StepNext:
		s.Goals = value
	}
	return nil
}

// build applies every input to a copy of the session. On error it also returns the failing step.
func (m SessionFormModel) build() (models.Session, Step, error) {
	s := m.session.Clone()
	for step := StepDate; step < StepSave; step++ {
		if step == StepClimbs {
			continue
		}
		if err := m.applyStep(step, &s); err != nil {
			return s, step, err
		}
	}
	return s, StepSave, nil
}

func (m SessionFormModel) hasChanges() bool {
	s, _, err := m.build()
	if err != nil {
		return true
	}
	return !cmp.Equal(s, m.original, cmpopts.EquateEmpty())
}

// nextStep moves to the next step
func (m SessionFormModel) nextStep() (SessionFormModel, tea.Cmd) {
	if m.currentStep < StepSave {
		m.inputs[m.currentStep].Blur()
		m.currentStep++
		if m.currentStep < StepSave {
			m.inputs[m.currentStep].Focus()
		}
	}
	m.validationErr = ""
	return m, textinput.Blink
}

// prevStep moves to the previous step
func (m SessionFormModel) prevStep() (SessionFormModel, tea.Cmd) {
	if m.currentStep > StepDate {
		if m.currentStep < StepSave {
			m.inputs[m.currentStep].Blur()
		}
		m.currentStep--
		m.inputs[m.currentStep].Focus()
	}
	m.validationErr = ""
	return m, textinput.Blink
}

// goToStep focuses step directly, used to point at a failed field.
func (m SessionFormModel) goToStep(step Step) SessionFormModel {
	if m.currentStep < StepSave {
		m.inputs[m.currentStep].Blur()
	}
	m.currentStep = step
	if step < StepSave {
		m.inputs[step].Focus()
	}
	return m
}

// save writes the session through the app
func (m SessionFormModel) save() (SessionFormModel, tea.Cmd) {
	s, step, err := m.build()
	if err != nil {
		m = m.goToStep(step)
		m.validationErr = err.Error()
		return m, nil
	}

	m.session = m.app.SaveSession(s)
	m.saved = true
	return m, m.close()
}

// handleSaveChoice handles the save confirmation modal response
func (m SessionFormModel) handleSaveChoice() (SessionFormModel, tea.Cmd) {
	m.showSaveModal = false
	if m.saveModalChoice {
		return m.save()
	}
	m.cancelled = true
	return m, m.close()
}

// View renders the TUI
func (m SessionFormModel) View() string {
	if m.cancelled || m.saved {
		return ""
	}

	if m.width < 85 {
		return m.renderSmallLayout()
	}

	rightWidth := 50
	leftWidth := m.width - rightWidth - 4

	leftStyle := lipgloss.NewStyle().
		Width(leftWidth).
		Height(m.height - 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1)

	rightStyle := lipgloss.NewStyle().
		Width(rightWidth).
		Height(m.height - 2).
		Padding(1)

	mainView := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftStyle.Render(m.renderWizard()),
		" ",
		rightStyle.Render(m.renderPreview()),
	)

	if m.showSaveModal {
		return m.renderSaveModal()
	}
	return mainView
}

func (m SessionFormModel) renderSmallLayout() string {
	if m.showSaveModal {
		return m.renderSaveModal()
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(0, 1)
	return style.Render(m.renderWizard())
}

// renderWizard renders the step-by-step wizard
func (m SessionFormModel) renderWizard() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentMain))

	title := "🧗 Log Session"
	if m.isEditMode {
		title = "📝 Edit Session " + shortID(m.session.ID)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	// Step trail: done steps green, current gold, upcoming muted
	var trail []string
	for i, label := range stepLabels {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))
		switch {
		case Step(i) == m.currentStep:
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true).Underline(true)
		case Step(i) < m.currentStep:
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
		}
		trail = append(trail, style.Render(label))
	}
	b.WriteString(strings.Join(trail, lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder)).Render(" › ")))
	b.WriteString("\n\n")

	if m.currentStep == StepSave {
		saveStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorInk)).
			Background(lipgloss.Color(ColorSuccess)).
			Padding(0, 2)
		b.WriteString(saveStyle.Render("Save Session"))
		b.WriteString("\n\nPress Enter to save, ↑ to go back.")
	} else {
		labelStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorPrimaryText))
		b.WriteString(labelStyle.Render(stepLabels[m.currentStep] + ":"))
		b.WriteString("\n")
		b.WriteString(m.inputs[m.currentStep].View())
		if m.currentStep == StepClimbs && len(m.session.Climbs) > 0 {
			b.WriteString("\n\n")
			for i, c := range m.session.Climbs {
				b.WriteString(renderClimbLine(i, c))
				b.WriteString("\n")
			}
		}
	}

	if m.validationErr != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			MarginTop(1)
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("⚠ " + m.validationErr))
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		MarginTop(1)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter next · ↑/↓ move · esc finish · ctrl+c cancel"))

	return b.String()
}

// renderPreview renders the session as it will be saved
func (m SessionFormModel) renderPreview() string {
	s, _, _ := m.build()
	now := m.app.Now()

	var b strings.Builder
	logoStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain)).Bold(true)
	b.WriteString(logoStyle.Render(parser.FormatSessionDate(s.Date, now)))
	if s.GymName != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render(" · " + s.GymName))
	}
	b.WriteString("\n\n")

	value := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain))
	fmt.Fprintf(&b, "Duration: %s\n", value.Render(fmt.Sprintf("%d min", s.Duration)))
	fmt.Fprintf(&b, "Energy:   %s\n", value.Render(s.EnergyBefore.String()+" → "+s.EnergyAfter.String()))
	fmt.Fprintf(&b, "Skin:     %s\n", value.Render(s.SkinCondition.String()))
	fmt.Fprintf(&b, "Psych:    %s\n", value.Render(psychStars(s.PsychLevel)))

	st := stats.SessionSummary(s)
	fmt.Fprintf(&b, "\nClimbs (%d/%d sent)\n", st.Sends, st.Climbs)
	for i, c := range s.Climbs {
		b.WriteString(renderClimbLine(i, c))
		b.WriteString("\n")
	}

	if s.Notes != "" {
		noteStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true)
		b.WriteString("\n")
		b.WriteString(noteStyle.Render(s.Notes))
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Padding(1, 2)
	return card.Render(b.String())
}

// renderSaveModal renders the save confirmation modal overlay
func (m SessionFormModel) renderSaveModal() string {
	var content strings.Builder
	content.WriteString("Save this session?\n\n")

	yesStyle := lipgloss.NewStyle().Padding(0, 2)
	noStyle := lipgloss.NewStyle().Padding(0, 2)
	if m.saveModalChoice {
		yesStyle = yesStyle.
			Background(lipgloss.Color(ColorAccentMain)).
			Foreground(lipgloss.Color(ColorInk)).
			Bold(true)
	} else {
		noStyle = noStyle.
			Background(lipgloss.Color(ColorError)).
			Foreground(lipgloss.Color(ColorPrimaryText)).
			Bold(true)
	}

	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, yesStyle.Render("Yes"), "   ", noStyle.Render("No")))
	content.WriteString("\n\n← → or Y/N to choose, Enter to confirm\nEsc to keep editing")

	return placeModal(m.width, m.height, content.String())
}

// placeModal centres a bordered dialog on the screen.
func placeModal(width, height int, content string) string {
	modal := lipgloss.NewStyle().
		Width(50).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Background(lipgloss.Color(ColorCardBackground)).
		Padding(1).
		Align(lipgloss.Center).
		Render(content)

	if width == 0 || height == 0 {
		return modal
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}

// renderClimbLine is one climb with its grade chip and outcome colour.
func renderClimbLine(i int, c models.Climb) string {
	outcome := lipgloss.NewStyle().Foreground(statusColor(c)).Render(fmt.Sprintf("%-7s x%d", c.Status(), c.AttemptCount()))
	parts := []string{fmt.Sprintf("%2d.", i+1), GradeChip(c.Grade), outcome}
	if c.Color != "" {
		parts = append(parts, c.Color)
	}
	if c.Style != "" {
		parts = append(parts, c.Style)
	}
	line := strings.Join(parts, " ")
	if c.Notes != "" {
		line += lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true).Render(" " + c.Notes)
	}
	return line
}

func psychStars(level int) string {
	level = models.ClampPsych(level)
	return strings.Repeat("★", level) + strings.Repeat("☆", models.MaxPsych-level)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
