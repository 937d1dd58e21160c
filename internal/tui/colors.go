package tui

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/balkashynov/sendit/internal/models"
)

// Color constants for the sendit TUI theme
const (
	// Base Colors
	ColorAppBackground  = "" // Use terminal default background
	ColorCardBackground = "#1E1B17" // Warm charcoal
	ColorBorder         = "#3A342C" // Dim chalk

	// Text Colors
	ColorPrimaryText   = "#F0EBE3" // Chalk white
	ColorSecondaryText = "#9C958B" // Faded chalk
	ColorDisabledText  = "#5C564E" // Muted
	ColorPlaceholder   = "#9C958B"
	ColorHelpText      = "240" // Dark grey for help text
	ColorInk           = "#1A1714" // Text on gold and green buttons

	// Accent Colors (warm gold)
	ColorAccentMain   = "#E8C87A" // Logo, values, active borders
	ColorAccentBright = "#F5DDA0" // Highlights, current step
	ColorAccentDeep   = "#D4A84A" // Bar gradients
	ColorHighest      = "#E89A7A" // Highest send card

	// State Colors
	ColorError   = "#EF4444"
	ColorSuccess = "#7AC87A" // Weekly goal met, flashes
	ColorWarning = "#F59E0B"
)

// gradeHue buckets the scale into easy, moderate, hard and elite bands.
func gradeHue(g models.Grade) float64 {
	switch i := g.Index(); {
	case i <= 2:
		return 140
	case i <= 5:
		return 45
	case i <= 8:
		return 15
	default:
		return 0
	}
}

// GradeColor is the chip background for g. Harder grades are more saturated.
func GradeColor(g models.Grade) lipgloss.Color {
	if !g.Valid() {
		return lipgloss.Color(ColorBorder)
	}
	i := g.Index()
	sat := math.Min(70, float64(30+i*4)) / 100
	light := 0.30
	switch {
	case i <= 2:
		light = 0.35
	case i > 8:
		light = 0.22
	}
	return lipgloss.Color(colorful.Hsl(gradeHue(g), sat, light).Hex())
}

// BarColor is the progression chart colour for a grade column.
func BarColor(g models.Grade) lipgloss.Color {
	return lipgloss.Color(colorful.Hsl(gradeHue(g), 0.5, 0.4).Hex())
}

// GradeChip renders a grade label on its band colour.
func GradeChip(g models.Grade) string {
	return lipgloss.NewStyle().
		Background(GradeColor(g)).
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true).
		Padding(0, 1).
		Render(g.String())
}

// statusColor matches a climb outcome: flash green, send gold, project muted.
func statusColor(c models.Climb) lipgloss.Color {
	switch c.Status() {
	case models.StatusFlash:
		return lipgloss.Color(ColorSuccess)
	case models.StatusSent:
		return lipgloss.Color(ColorAccentMain)
	default:
		return lipgloss.Color(ColorDisabledText)
	}
}
