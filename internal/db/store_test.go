package db

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/balkashynov/sendit/internal/models"
)

// failingKV rejects every write, like a full disk or exceeded quota.
type failingKV struct {
	*MemoryKV
}

func (failingKV) Put(string, []byte) error {
	return errors.New("quota exceeded")
}

func sampleSessions() []models.Session {
	s1 := models.NewSession("s1", models.Date{Year: 2026, Month: time.October, Day: 12})
	s1.GymName = "The Cave"
	s1.Duration = 95
	s1.EnergyBefore = models.EnergyStrong
	s1.EnergyAfter = models.EnergyLow
	s1.SkinCondition = models.SkinTender
	s1.PsychLevel = 5
	s1.Notes = "crimps felt good"
	s1.Goals = "more slab"
	flash := models.NewClimb("c1")
	flash.Grade = models.GradeV5
	flash.Color = "Blue"
	flash.Style = "Crimpy"
	flash.SetFlash(true)
	project := models.NewClimb("c2")
	project.Grade = models.GradeV9
	project.SetAttempts(7)
	project.Notes = "heel hook at the lip"
	s1.Climbs = append(s1.Climbs, flash, project)

	s2 := models.NewSession("s2", models.Date{Year: 2026, Month: time.October, Day: 15})
	return []models.Session{s1, s2}
}

func TestSessionsRoundTrip(t *testing.T) {
	store := NewStore(NewMemoryKV(), zap.NewNop())
	want := sampleSessions()

	store.SaveSessions(want)
	got := store.LoadSessions()

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadSessions() mismatch (-want +got):\n%s", diff)
	}
}

func TestGoalsRoundTrip(t *testing.T) {
	store := NewStore(NewMemoryKV(), zap.NewNop())
	want := models.Goals{
		TargetGrade:     models.GradeV10,
		SessionsPerWeek: 4,
		CompDate:        models.Date{Year: 2026, Month: time.December, Day: 5},
		CompName:        "Winter Bouldering Cup",
		Notes:           "power endurance",
	}

	store.SaveGoals(want)
	assert.Equal(t, want, store.LoadGoals())
}

func TestLoadFromEmptyStoreReturnsDefaults(t *testing.T) {
	store := NewStore(NewMemoryKV(), nil)

	sessions := store.LoadSessions()
	require.NotNil(t, sessions)
	assert.Empty(t, sessions)
	assert.Equal(t, models.DefaultGoals(), store.LoadGoals())
}

func TestLoadCorruptBlobsReturnsDefaults(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"not json", `{{{`},
		{"legacy bare array", `[{"id":1,"date":"2026-01-01"}]`},
		{"missing version", `{"data":[]}`},
		{"future version", `{"version":2,"data":[]}`},
		{"null data", `{"version":1,"data":null}`},
		{"no data", `{"version":1}`},
		{"wrong shape", `{"version":1,"data":"hello"}`},
		{"bad grade", `{"version":1,"data":[{"id":"x","date":"2026-01-01","climbs":[{"id":"c","grade":"5.12a"}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := NewMemoryKV()
			require.NoError(t, kv.Put(SessionsKey, []byte(tt.blob)))
			require.NoError(t, kv.Put(GoalsKey, []byte(tt.blob)))
			store := NewStore(kv, zap.NewNop())

			assert.Empty(t, store.LoadSessions())
			assert.Equal(t, models.DefaultGoals(), store.LoadGoals())
		})
	}
}

func TestLoadGoalsRejectsInvalidRecord(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Put(GoalsKey, []byte(`{"version":1,"data":{"targetGrade":"V6","sessionsPerWeek":0}}`)))
	store := NewStore(kv, zap.NewNop())

	assert.Equal(t, models.DefaultGoals(), store.LoadGoals())
}

func TestMissingClimbsLoadAsEmpty(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Put(SessionsKey, []byte(`{"version":1,"data":[{"id":"old","date":"2025-05-05","duration":40}]}`)))
	store := NewStore(kv, zap.NewNop())

	sessions := store.LoadSessions()
	require.Len(t, sessions, 1)
	assert.Empty(t, sessions[0].Climbs)
	assert.Equal(t, 40, sessions[0].Duration)
}

func TestSaveFailureIsLoggedNotRaised(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	store := NewStore(failingKV{NewMemoryKV()}, zap.New(core))

	store.SaveSessions(sampleSessions())
	store.SaveGoals(models.DefaultGoals())

	failures := logs.FilterMessage("save failed").All()
	require.Len(t, failures, 2)
	assert.Equal(t, zapcore.ErrorLevel, failures[0].Level)
	assert.Equal(t, SessionsKey, failures[0].ContextMap()["key"])
	assert.Equal(t, GoalsKey, failures[1].ContextMap()["key"])
}

func TestCorruptLoadIsLoggedAsWarning(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	kv := NewMemoryKV()
	require.NoError(t, kv.Put(SessionsKey, []byte(`garbage`)))
	store := NewStore(kv, zap.New(core))

	store.LoadSessions()
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestEnvelopeShape(t *testing.T) {
	kv := NewMemoryKV()
	store := NewStore(kv, zap.NewNop())
	store.SaveGoals(models.DefaultGoals())

	raw, ok, err := kv.Get(GoalsKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{
		"version": 1,
		"data": {
			"targetGrade": "V8",
			"sessionsPerWeek": 3,
			"compDate": "",
			"compName": "",
			"notes": "Get back to projecting V8-V10. Commit to training on every day off."
		}
	}`, string(raw))
}
