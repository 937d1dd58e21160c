package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/sendit/internal/models"
)

func TestGradeHueBands(t *testing.T) {
	assert.Equal(t, 140.0, gradeHue(models.GradeVB))
	assert.Equal(t, 140.0, gradeHue(models.GradeV1))
	assert.Equal(t, 45.0, gradeHue(models.GradeV2))
	assert.Equal(t, 45.0, gradeHue(models.GradeV4))
	assert.Equal(t, 15.0, gradeHue(models.GradeV5))
	assert.Equal(t, 15.0, gradeHue(models.GradeV7))
	assert.Equal(t, 0.0, gradeHue(models.GradeV8))
	assert.Equal(t, 0.0, gradeHue(models.GradeV12))
}

func TestGradeColorGetsMoreSaturated(t *testing.T) {
	easy, err := colorful.Hex(string(GradeColor(models.GradeV0)))
	require.NoError(t, err)
	hard, err := colorful.Hex(string(GradeColor(models.GradeV4)))
	require.NoError(t, err)

	_, easySat, _ := easy.Hsl()
	_, hardSat, _ := hard.Hsl()
	assert.Less(t, easySat, hardSat)

	assert.Equal(t, GradeColor(models.NoGrade), GradeColor(models.Grade(99)))
	assert.NotEmpty(t, GradeChip(models.GradeV6))
}

func TestStatusColor(t *testing.T) {
	flash := models.Climb{Sent: true, Flash: true}
	sent := models.Climb{Sent: true}
	project := models.Climb{}

	assert.Equal(t, ColorSuccess, string(statusColor(flash)))
	assert.Equal(t, ColorAccentMain, string(statusColor(sent)))
	assert.Equal(t, ColorDisabledText, string(statusColor(project)))
}

func TestShimmerAdvance(t *testing.T) {
	s := NewShimmerState(DefaultShimmerConfig())
	start := time.Date(2026, time.October, 17, 20, 0, 0, 0, time.UTC)

	// first frame only records the time
	s.Advance(start, 20)
	assert.Equal(t, 0.0, s.Center)

	s.Advance(start.Add(50*time.Millisecond), 20)
	assert.Equal(t, 0.0, s.Center, "faster than the tick interval")

	s.Advance(start.Add(100*time.Millisecond), 20)
	assert.Greater(t, s.Center, 0.0)

	s.Reset()
	assert.Equal(t, 0.0, s.Center)
}

func TestShimmerPausesAtEnd(t *testing.T) {
	s := NewShimmerState(DefaultShimmerConfig())
	now := time.Date(2026, time.October, 17, 20, 0, 0, 0, time.UTC)

	s.Advance(now, 10)
	for i := 0; i < 30 && !s.paused; i++ {
		now = now.Add(100 * time.Millisecond)
		s.Advance(now, 10)
	}
	require.True(t, s.paused)
	end := s.Center

	s.Advance(now.Add(100*time.Millisecond), 10)
	assert.Equal(t, end, s.Center)

	s.Advance(now.Add(600*time.Millisecond), 10)
	assert.False(t, s.paused)
	assert.Less(t, s.Center, 0.0)
}

func TestShimmerInactive(t *testing.T) {
	s := NewShimmerState(DefaultShimmerConfig())
	s.SetActive(false)

	assert.Nil(t, s.Tick())
	s.Advance(time.Now(), 10)
	assert.Equal(t, 0.0, s.Center)
	assert.Contains(t, s.Render("Sat, Oct 17"), "Sat, Oct 17")
	assert.Equal(t, "", s.Render(""))
}

func TestShimmerRenderKeepsText(t *testing.T) {
	s := NewShimmerState(DefaultShimmerConfig())
	s.Center = 3

	s.TrueColor = true
	out := s.Render("abcdef")
	assert.True(t, strings.HasSuffix(out, "\033[0m"))
	assert.Equal(t, 6, strings.Count(out, "\033[38;2;"))

	s.TrueColor = false
	out = s.Render("abcdef")
	assert.Equal(t, 6, strings.Count(out, "\033[38;5;"))
}

func TestShimmerDisabledConfig(t *testing.T) {
	cfg := DefaultShimmerConfig()
	cfg.Enabled = false
	s := NewShimmerState(cfg)

	s.SetActive(true)
	assert.False(t, s.Active)
}
