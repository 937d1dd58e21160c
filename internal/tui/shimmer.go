package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ShimmerConfig holds configuration for the highlight sweep on the selected row
type ShimmerConfig struct {
	Enabled        bool
	SpeedMs        int     // tick interval
	WidthRatio     float64 // highlight width relative to the text
	CycleMs        int     // time for one sweep across the text
	PauseBetweenMs int     // rest between sweeps
}

// DefaultShimmerConfig returns default shimmer configuration
func DefaultShimmerConfig() ShimmerConfig {
	return ShimmerConfig{
		Enabled:        true,
		SpeedMs:        100,
		WidthRatio:     0.25,
		CycleMs:        1800,
		PauseBetweenMs: 500,
	}
}

// ShimmerState is the position of a sweeping highlight over a line of text.
type ShimmerState struct {
	Config    ShimmerConfig
	Center    float64
	Active    bool
	TrueColor bool

	lastUpdate time.Time
	pausedAt   time.Time
	paused     bool
}

// NewShimmerState creates a new shimmer state
func NewShimmerState(config ShimmerConfig) *ShimmerState {
	return &ShimmerState{
		Config:    config,
		Active:    config.Enabled,
		TrueColor: lipgloss.ColorProfile() == termenv.TrueColor,
	}
}

// shimmerTickMsg is sent when shimmer should update
type shimmerTickMsg time.Time

// Tick schedules the next shimmer frame, or nil when the shimmer is idle.
func (s *ShimmerState) Tick() tea.Cmd {
	if !s.Active {
		return nil
	}
	return tea.Tick(s.Interval(), func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// Advance moves the highlight forward for the time elapsed since the last frame.
func (s *ShimmerState) Advance(now time.Time, visibleLen int) {
	if !s.Active || visibleLen <= 0 {
		return
	}
	if s.lastUpdate.IsZero() {
		s.lastUpdate = now
		return
	}
	if now.Sub(s.lastUpdate) < time.Duration(s.Config.SpeedMs)*time.Millisecond {
		return
	}
	s.lastUpdate = now

	width := float64(visibleLen) * s.Config.WidthRatio
	if s.paused {
		if now.Sub(s.pausedAt) >= time.Duration(s.Config.PauseBetweenMs)*time.Millisecond {
			s.paused = false
			s.Center = -width
		}
		return
	}

	ticksPerCycle := float64(s.Config.CycleMs) / float64(s.Config.SpeedMs)
	s.Center += (float64(visibleLen) + 2*width) / ticksPerCycle

	if end := float64(visibleLen) + width; s.Center >= end {
		s.Center = end
		s.paused = true
		s.pausedAt = now
	}
}

// Reset restarts the sweep, e.g. when the selection moves.
func (s *ShimmerState) Reset() {
	s.Center = 0
	s.paused = false
	s.lastUpdate = time.Time{}
}

// SetActive enables/disables shimmer
func (s *ShimmerState) SetActive(active bool) {
	s.Active = active && s.Config.Enabled
}

// Interval is the tick period while the shimmer runs.
func (s *ShimmerState) Interval() time.Duration {
	return time.Duration(s.Config.SpeedMs) * time.Millisecond
}

// Render draws text with the highlight at its current position.
func (s *ShimmerState) Render(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	if !s.Active {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain)).Render(text)
	}
	if !s.TrueColor {
		return s.renderFallback(runes)
	}

	// Faded chalk #9C958B rising to pale gold #F5DDA0 under a gaussian bell
	baseR, baseG, baseB := 156.0, 149.0, 139.0
	hiR, hiG, hiB := 245.0, 221.0, 160.0

	sigma := math.Max(1, s.Config.WidthRatio*float64(len(runes))/2)
	var b strings.Builder
	for i, r := range runes {
		dx := float64(i) - s.Center
		w := math.Exp(-(dx * dx) / (2 * sigma * sigma))
		fmt.Fprintf(&b, "\033[38;2;%d;%d;%dm%c",
			int(baseR*(1-w)+hiR*w),
			int(baseG*(1-w)+hiG*w),
			int(baseB*(1-w)+hiB*w),
			r)
	}
	b.WriteString("\033[0m")
	return b.String()
}

// renderFallback highlights a window of runes with 256-colour codes.
func (s *ShimmerState) renderFallback(runes []rune) string {
	width := int(s.Config.WidthRatio * float64(len(runes)))
	if width < 1 {
		width = 1
	}
	start := int(s.Center) - width/2
	end := start + width

	var b strings.Builder
	for i, r := range runes {
		if i >= start && i < end {
			fmt.Fprintf(&b, "\033[38;5;222m%c", r)
		} else {
			fmt.Fprintf(&b, "\033[38;5;250m%c", r)
		}
	}
	b.WriteString("\033[0m")
	return b.String()
}
