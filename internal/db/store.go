package db

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/balkashynov/sendit/internal/models"
)

// Well-known keys of the two persisted blobs.
const (
	SessionsKey = "climb-sessions"
	GoalsKey    = "climb-goals"
)

// EnvelopeVersion is the only blob version this build reads or writes.
const EnvelopeVersion = 1

// envelope wraps every persisted blob. Anything that does not decode into a
// version-1 envelope with data is treated as absent.
type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

var (
	errAbsent      = errors.New("no stored value")
	errVersion     = errors.New("unsupported envelope version")
	errMissingData = errors.New("envelope has no data")
)

// Store loads and saves the session list and goals snapshot. It never returns
// an error to callers: unreadable data falls back to defaults and failed
// writes are logged, leaving in-memory state authoritative.
type Store struct {
	kv  KV
	log *zap.Logger
}

// NewStore creates a Store over kv. A nil logger discards diagnostics.
func NewStore(kv KV, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{kv: kv, log: log}
}

// LoadSessions returns the stored sessions, or an empty list if none are
// stored or the stored blob is unreadable.
func (s *Store) LoadSessions() []models.Session {
	var sessions []models.Session
	if err := s.load(SessionsKey, &sessions); err != nil {
		s.logLoadFailure(SessionsKey, err)
		return []models.Session{}
	}
	if sessions == nil {
		sessions = []models.Session{}
	}
	return sessions
}

// SaveSessions writes the whole session list.
func (s *Store) SaveSessions(sessions []models.Session) {
	s.save(SessionsKey, sessions)
}

// LoadGoals returns the stored goals, or models.DefaultGoals().
func (s *Store) LoadGoals() models.Goals {
	var goals models.Goals
	if err := s.load(GoalsKey, &goals); err != nil {
		s.logLoadFailure(GoalsKey, err)
		return models.DefaultGoals()
	}
	if !goals.Valid() {
		s.logLoadFailure(GoalsKey, fmt.Errorf("invalid goals record: target %s, %d sessions/week", goals.TargetGrade, goals.SessionsPerWeek))
		return models.DefaultGoals()
	}
	return goals
}

// SaveGoals overwrites the goals record.
func (s *Store) SaveGoals(goals models.Goals) {
	s.save(GoalsKey, goals)
}

func (s *Store) load(key string, v any) error {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		return err
	}
	if !ok {
		return errAbsent
	}
	return decodeEnvelope(raw, v)
}

func (s *Store) save(key string, v any) {
	raw, err := encodeEnvelope(v)
	if err != nil {
		s.log.Error("save failed: encoding", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.kv.Put(key, raw); err != nil {
		s.log.Error("save failed", zap.String("key", key), zap.Error(err))
		return
	}
	s.log.Debug("saved", zap.String("key", key), zap.Int("bytes", len(raw)))
}

func (s *Store) logLoadFailure(key string, err error) {
	if errors.Is(err, errAbsent) {
		s.log.Debug("nothing stored, using defaults", zap.String("key", key))
		return
	}
	s.log.Warn("stored data unreadable, using defaults", zap.String("key", key), zap.Error(err))
}

func encodeEnvelope(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Version: EnvelopeVersion, Data: data})
}

func decodeEnvelope(raw []byte, v any) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decoding envelope: %w", err)
	}
	if env.Version != EnvelopeVersion {
		return fmt.Errorf("%w: %d", errVersion, env.Version)
	}
	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return errMissingData
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("decoding data: %w", err)
	}
	return nil
}
