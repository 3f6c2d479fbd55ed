package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/meltforce/jellyfit/internal/models"
)

// Logical record keys.
const (
	KeySessions   = "sessions"
	KeyProfile    = "profile"
	KeyWeeklyPlan = "weeklyPlan"
)

// Store is the typed repository over a KV. Reads never fail: a missing,
// unreadable or corrupt record yields its empty default and a warning.
// Writes are plain read-modify-write with no locking.
type Store struct {
	kv  KV
	log *slog.Logger
}

// NewStore wraps kv.
func NewStore(kv KV, log *slog.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// Close closes the underlying KV.
func (s *Store) Close() error {
	return s.kv.Close()
}

// load decodes the record under key into dst. It reports false when the
// record is absent, unreadable or corrupt.
func (s *Store) load(ctx context.Context, key string, dst any) bool {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.log.Warn("store read failed, using default", "key", key, "error", err)
		return false
	}
	if !ok || len(raw) == 0 {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.Warn("corrupt record, using default", "key", key, "error", err)
		return false
	}
	return true
}

func (s *Store) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return s.kv.Set(ctx, key, raw)
}

// GetSessions returns the session history, newest first.
func (s *Store) GetSessions(ctx context.Context) []models.Session {
	var sessions []models.Session
	if !s.load(ctx, KeySessions, &sessions) || sessions == nil {
		return []models.Session{}
	}
	return sessions
}

// GetSession returns the session with the given ID.
func (s *Store) GetSession(ctx context.Context, id string) (models.Session, bool) {
	for _, sess := range s.GetSessions(ctx) {
		if sess.ID == id {
			return sess, true
		}
	}
	return models.Session{}, false
}

// AppendSession prepends sess to the history and returns the updated list.
func (s *Store) AppendSession(ctx context.Context, sess models.Session) ([]models.Session, error) {
	current := s.GetSessions(ctx)
	updated := make([]models.Session, 0, len(current)+1)
	updated = append(updated, sess)
	updated = append(updated, current...)
	if err := s.save(ctx, KeySessions, updated); err != nil {
		return nil, fmt.Errorf("saving sessions: %w", err)
	}
	return updated, nil
}

// GetProfile returns the stored profile or nil. A stored null is absent.
func (s *Store) GetProfile(ctx context.Context) *models.UserProfile {
	var p *models.UserProfile
	if !s.load(ctx, KeyProfile, &p) {
		return nil
	}
	return p
}

// SaveProfile overwrites the stored profile.
func (s *Store) SaveProfile(ctx context.Context, p models.UserProfile) error {
	if err := s.save(ctx, KeyProfile, p); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// GetPlan returns the stored weekly plan or nil. A stored null is absent.
func (s *Store) GetPlan(ctx context.Context) *models.WeeklyPlan {
	var p *models.WeeklyPlan
	if !s.load(ctx, KeyWeeklyPlan, &p) {
		return nil
	}
	return p
}

// SavePlan overwrites the stored weekly plan.
func (s *Store) SavePlan(ctx context.Context, p models.WeeklyPlan) error {
	if err := s.save(ctx, KeyWeeklyPlan, p); err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}
	return nil
}
