package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/balkashynov/sendit/internal/app"
	"github.com/balkashynov/sendit/internal/models"
	"github.com/balkashynov/sendit/internal/parser"
	"github.com/balkashynov/sendit/internal/stats"
)

// chartHeight is the tallest bar in the dashboard progression chart, in rows.
const chartHeight = 6

// DashboardModel is the main screen: stat cards, weekly bar, grade chart and recent sessions.
type DashboardModel struct {
	app    *app.App
	limit  int
	width  int
	height int

	sessions []models.Session
	summary  stats.Summary
	goals    models.Goals

	selected int
	offset   int
	expanded map[string]bool

	// Delete confirmation modal
	confirmDelete bool
	deleteChoice  bool // true for Yes

	// form is the embedded log/edit wizard while open
	form   *SessionFormModel
	status string

	shimmer *ShimmerState
}

// NewDashboardModel loads the current snapshot from a.
func NewDashboardModel(a *app.App, limit int) DashboardModel {
	m := DashboardModel{
		app:      a,
		limit:    limit,
		expanded: map[string]bool{},
		shimmer:  NewShimmerState(DefaultShimmerConfig()),
	}
	return m.refresh()
}

// refresh re-reads sessions, goals and stats after a mutation.
func (m DashboardModel) refresh() DashboardModel {
	m.sessions = m.app.Recent(m.limit)
	m.summary = m.app.Stats()
	m.goals = m.app.Goals()
	if m.selected >= len(m.sessions) {
		m.selected = len(m.sessions) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	return m.scrollToSelection()
}

// Init initializes the model
func (m DashboardModel) Init() tea.Cmd {
	return m.shimmer.Tick()
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case shimmerTickMsg:
		if s, ok := m.selectedSession(); ok && m.form == nil {
			m.shimmer.Advance(time.Time(msg), len([]rune(sessionTitle(s, m.app.Now()))))
		}
		return m, m.shimmer.Tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m.scrollToSelection(), nil

	case formClosedMsg:
		m.form = nil
		m.status = ""
		if msg.saved {
			m.status = "✓ Session saved"
		}
		m = m.refresh()
		m.shimmer.SetActive(true)
		return m, m.shimmer.Tick()
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.confirmDelete {
		return m.handleDeleteKeys(key)
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "up", "k":
		return m.moveSelection(-1), nil

	case "down", "j":
		return m.moveSelection(1), nil

	case "enter", " ":
		if s, ok := m.selectedSession(); ok {
			m.expanded[s.ID] = !m.expanded[s.ID]
		}
		return m, nil

	case "n":
		return m.openForm(m.app.NewSession(), false)

	case "e":
		if s, ok := m.selectedSession(); ok {
			return m.openForm(s, true)
		}
		return m, nil

	case "d", "x":
		if _, ok := m.selectedSession(); ok {
			m.confirmDelete = true
			m.deleteChoice = false
		}
		return m, nil
	}

	return m, nil
}

func (m DashboardModel) openForm(s models.Session, editing bool) (DashboardModel, tea.Cmd) {
	form := NewSessionFormModel(m.app, s, editing)
	updated, _ := form.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	form = updated.(SessionFormModel)
	m.form = &form
	m.status = ""
	m.shimmer.SetActive(false)
	return m, form.Init()
}

func (m DashboardModel) updateForm(msg tea.Msg) (DashboardModel, tea.Cmd) {
	updated, cmd := m.form.Update(msg)
	form := updated.(SessionFormModel)
	m.form = &form
	return m, cmd
}

// handleDeleteKeys drives the delete confirmation modal. No is the default.
func (m DashboardModel) handleDeleteKeys(key tea.KeyMsg) (DashboardModel, tea.Cmd) {
	switch key.String() {
	case "left", "right", "h", "l", "tab":
		m.deleteChoice = !m.deleteChoice
		return m, nil
	case "y", "Y":
		m.deleteChoice = true
	case "n", "N", "esc":
		m.deleteChoice = false
	case "enter":
	case "ctrl+c":
		return m, tea.Quit
	default:
		return m, nil
	}

	m.confirmDelete = false
	if !m.deleteChoice {
		return m, nil
	}

	s, ok := m.selectedSession()
	if !ok {
		return m, nil
	}
	if err := m.app.DeleteSession(s.ID); err != nil {
		m.status = "⚠ " + err.Error()
		return m, nil
	}
	delete(m.expanded, s.ID)
	m.status = "🗑  Deleted session from " + parser.FormatSessionDate(s.Date, m.app.Now())
	m.shimmer.Reset()
	return m.refresh(), nil
}

func (m DashboardModel) selectedSession() (models.Session, bool) {
	if m.selected < 0 || m.selected >= len(m.sessions) {
		return models.Session{}, false
	}
	return m.sessions[m.selected], true
}

func (m DashboardModel) moveSelection(delta int) DashboardModel {
	next := m.selected + delta
	if next < 0 || next >= len(m.sessions) {
		return m
	}
	m.selected = next
	m.shimmer.Reset()
	return m.scrollToSelection()
}

// visibleRows is how many sessions fit under the header, cards and chart.
func (m DashboardModel) visibleRows() int {
	if m.height == 0 {
		return len(m.sessions)
	}
	rows := (m.height - 28) / 2
	if rows < 3 {
		rows = 3
	}
	return rows
}

func (m DashboardModel) scrollToSelection() DashboardModel {
	rows := m.visibleRows()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if rows > 0 && m.selected >= m.offset+rows {
		m.offset = m.selected - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
	return m
}

// View renders the TUI
func (m DashboardModel) View() string {
	if m.form != nil {
		return m.form.View()
	}

	width := m.width
	if width == 0 {
		width = 100
	}

	sections := []string{
		m.renderHeader(),
		m.renderStatCards(width),
		m.renderWeekBar(width),
		m.renderChart(),
		m.renderSessions(width),
	}
	if m.status != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Render(m.status))
	}
	sections = append(sections, m.renderHelpBar(width))

	view := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.confirmDelete {
		return m.renderDeleteModal()
	}
	return view
}

func (m DashboardModel) renderHeader() string {
	logo := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorPrimaryText)).Render("Send It.")
	date := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render("  " + parser.FormatSessionDate(m.app.Today(), m.app.Now()))

	lines := []string{logo + date}
	if m.goals.CompName != "" || m.summary.CompDaysOut != nil {
		name := m.goals.CompName
		if name == "" {
			name = "your comp"
		}
		gold := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain))
		line := "Training for " + gold.Render(name)
		if m.summary.CompDaysOut != nil {
			line += " · " + parser.FormatCountdown(*m.summary.CompDaysOut)
		}
		lines = append(lines, line)
	}
	if m.goals.Notes != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true).Render(m.goals.Notes))
	}
	return strings.Join(lines, "\n") + "\n"
}

func (m DashboardModel) renderStatCards(width int) string {
	cardWidth := (width - 8) / 4
	if cardWidth < 16 {
		cardWidth = 16
	}

	weekAccent := ColorAccentMain
	if m.summary.WeekGoalMet {
		weekAccent = ColorSuccess
	}

	cards := []string{
		statCard("This Week", fmt.Sprintf("%d/%d", m.summary.WeekSessions, m.summary.WeekTarget), "sessions", weekAccent, cardWidth),
		statCard("Streak", english.Plural(m.summary.Streak, "day", "days"), "in a row", ColorAccentMain, cardWidth),
		statCard("Highest Send", m.summary.HighestSend.String(), "target "+m.goals.TargetGrade.String(), ColorHighest, cardWidth),
		statCard("Total Sends", humanize.Comma(int64(m.summary.TotalSends)), humanize.Comma(int64(m.summary.TotalAttempts))+" attempts", ColorAccentMain, cardWidth),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func statCard(label, value, sub, accent string, width int) string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true)
	subStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(0, 1).
		Render(labelStyle.Render(strings.ToUpper(label)) + "\n" + valueStyle.Render(value) + "\n" + subStyle.Render(sub))
}

// renderWeekBar draws weekly progress, green once the goal is met.
func (m DashboardModel) renderWeekBar(width int) string {
	p := m.summary.Progress()
	barWidth := width - 24
	if barWidth < 10 {
		barWidth = 10
	}
	filled := int(math.Round(p.Ratio() * float64(barWidth)))

	fill := ColorAccentMain
	if p.Met() {
		fill = ColorSuccess
	}
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(fill)).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder)).Render(strings.Repeat("░", barWidth-filled))

	label := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render("Weekly goal ")
	count := lipgloss.NewStyle().Foreground(lipgloss.Color(fill)).Render(fmt.Sprintf(" %d / %d", p.Count, p.Target))
	return "\n" + label + bar + count + "\n"
}

// chartBarHeight scales a count to rows. Non-zero counts always show at least one row.
func chartBarHeight(count, max, height int) int {
	if count <= 0 {
		return 0
	}
	h := int(math.Round(float64(count) * float64(height) / float64(max)))
	if h < 1 {
		h = 1
	}
	return h
}

// renderChart draws the sends-per-grade histogram as vertical bars.
func (m DashboardModel) renderChart() string {
	h := m.summary.Histogram
	highest := h.Max()
	grades := models.Grades()

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render("GRADE PROGRESSION"))
	b.WriteString("\n")

	for row := chartHeight; row >= 1; row-- {
		for _, g := range grades {
			cell := "   "
			if chartBarHeight(h.Count(g), highest, chartHeight) >= row {
				cell = lipgloss.NewStyle().Foreground(BarColor(g)).Render("██") + " "
			}
			b.WriteString(cell)
		}
		b.WriteString("\n")
	}

	label := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))
	for _, g := range grades {
		b.WriteString(label.Render(fmt.Sprintf("%-3s", g.Short())))
	}
	b.WriteString("\n")
	return b.String()
}

func sessionTitle(s models.Session, now time.Time) string {
	title := parser.FormatSessionDate(s.Date, now)
	if s.GymName != "" {
		title += " · " + s.GymName
	}
	return title
}

func (m DashboardModel) renderSessions(width int) string {
	var b strings.Builder
	header := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render(fmt.Sprintf("RECENT SESSIONS (%d)", len(m.sessions)))
	b.WriteString(header)
	b.WriteString("\n")

	if len(m.sessions) == 0 {
		empty := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true)
		b.WriteString(empty.Render("No sessions yet. Press n to log your first one."))
		return b.String()
	}

	now := m.app.Now()
	end := m.offset + m.visibleRows()
	if end > len(m.sessions) {
		end = len(m.sessions)
	}

	for i := m.offset; i < end; i++ {
		s := m.sessions[i]
		isSelected := i == m.selected
		st := stats.SessionSummary(s)

		title := sessionTitle(s, now)
		if isSelected {
			title = m.shimmer.Render(title)
		} else {
			title = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Render(title)
		}

		meta := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).
			Render(fmt.Sprintf("  %d/%d sent · %d min", st.Sends, st.Climbs, s.Duration))
		row := title + meta
		if st.Highest.Valid() {
			row += "  " + GradeChip(st.Highest)
		}

		if m.expanded[s.ID] {
			row += "\n" + renderSessionDetail(s)
		}

		if isSelected {
			row = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorAccentMain)).
				Padding(0, 1).
				Width(width - 4).
				Render(row)
		} else {
			row = "  " + strings.ReplaceAll(row, "\n", "\n  ")
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	if end-m.offset < len(m.sessions) {
		more := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText))
		b.WriteString(more.Render(fmt.Sprintf("%d-%d of %d", m.offset+1, end, len(m.sessions))))
		b.WriteString("\n")
	}
	return b.String()
}

// renderSessionDetail is the expanded body of a session row.
func renderSessionDetail(s models.Session) string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	gold := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain))

	lines := []string{
		dim.Render("Energy: ") + gold.Render(s.EnergyBefore.String()+" → "+s.EnergyAfter.String()) +
			dim.Render("   Skin: ") + gold.Render(s.SkinCondition.String()) +
			dim.Render("   Psych: ") + gold.Render(psychStars(s.PsychLevel)),
	}
	for i, c := range s.Climbs {
		lines = append(lines, renderClimbLine(i, c))
	}
	if s.Notes != "" {
		lines = append(lines, dim.Italic(true).Render(s.Notes))
	}
	if s.Goals != "" {
		lines = append(lines, dim.Render("Next: ")+s.Goals)
	}
	return strings.Join(lines, "\n")
}

func (m DashboardModel) renderDeleteModal() string {
	s, _ := m.selectedSession()

	var content strings.Builder
	content.WriteString("Delete this session?\n")
	content.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render(sessionTitle(s, m.app.Now())))
	content.WriteString("\n\n")

	yesStyle := lipgloss.NewStyle().Padding(0, 2)
	noStyle := lipgloss.NewStyle().Padding(0, 2)
	if m.deleteChoice {
		yesStyle = yesStyle.Background(lipgloss.Color(ColorError)).Foreground(lipgloss.Color(ColorPrimaryText)).Bold(true)
	} else {
		noStyle = noStyle.Background(lipgloss.Color(ColorAccentMain)).Foreground(lipgloss.Color(ColorInk)).Bold(true)
	}
	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, yesStyle.Render("Delete"), "   ", noStyle.Render("Keep")))
	content.WriteString("\n\n← → or Y/N to choose, Enter to confirm")

	return placeModal(m.width, m.height, content.String())
}

// renderHelpBar renders the help bar with hotkey hints
func (m DashboardModel) renderHelpBar(width int) string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(width)
	return helpStyle.Render("↑/↓ nav · enter expand · n new · e edit · d delete · q/esc quit")
}
