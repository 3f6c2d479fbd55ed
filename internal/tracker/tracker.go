// Package tracker owns the single active workout and runs the finish pipeline:
// finalize, append to history, then mark the matching plan day complete.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/meltforce/jellyfit/internal/models"
	"github.com/meltforce/jellyfit/internal/plan"
	"github.com/meltforce/jellyfit/internal/session"
	"github.com/meltforce/jellyfit/internal/storage"
)

var (
	ErrSessionActive   = errors.New("a session is already in progress")
	ErrNoActiveSession = errors.New("no session in progress")
)

// Result is the outcome of finishing a session.
type Result struct {
	Session  models.Session     `json:"session"`
	Sessions int                `json:"totalSessions"`
	Plan     *models.WeeklyPlan `json:"plan,omitempty"`
}

// Tracker holds at most one active session editor.
type Tracker struct {
	base  context.Context
	store *storage.Store
	plans *plan.Synchronizer
	loc   *time.Location
	log   *slog.Logger
	now   func() time.Time
	opts  []session.Option

	mu     sync.Mutex
	active *session.Editor
}

// New creates a tracker. Editor clocks run under base, so cancelling base
// stops any active session's ticker. loc selects the calendar used to name the
// weekday a session finishes on; nil means local time.
func New(base context.Context, store *storage.Store, plans *plan.Synchronizer, loc *time.Location, log *slog.Logger, opts ...session.Option) *Tracker {
	if loc == nil {
		loc = time.Local
	}
	return &Tracker{
		base:  base,
		store: store,
		plans: plans,
		loc:   loc,
		log:   log,
		now:   time.Now,
		opts:  opts,
	}
}

// Start begins a session from tmpl.
func (t *Tracker) Start(tmpl models.Template) (*session.Editor, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active != nil {
		return nil, ErrSessionActive
	}
	opts := append([]session.Option{session.WithStart(t.now())}, t.opts...)
	t.active = session.Begin(t.base, tmpl, opts...)
	t.log.Info("session started", "template", tmpl.ID, "name", tmpl.Name)
	return t.active, nil
}

// Active returns the editor of the running session.
func (t *Tracker) Active() (*session.Editor, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active == nil {
		return nil, ErrNoActiveSession
	}
	return t.active, nil
}

// Finish finalizes the active session, prepends it to the history and marks
// today's plan day complete. If the history write fails the session stays
// active, clock still running, so the caller can retry. A plan update failure is logged only.
func (t *Tracker) Finish(ctx context.Context) (Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active == nil {
		return Result{}, ErrNoActiveSession
	}

	sess := t.active.Draft()
	sessions, err := t.store.AppendSession(ctx, sess)
	if err != nil {
		return Result{}, fmt.Errorf("saving session: %w", err)
	}
	t.active.Close()
	t.active = nil

	res := Result{Session: sess, Sessions: len(sessions)}
	weekday := plan.WeekdayName(t.now(), t.loc)
	p, err := t.plans.MarkDayComplete(ctx, weekday)
	if err != nil {
		t.log.Warn("marking plan day complete failed", "weekday", weekday, "error", err)
	}
	res.Plan = p

	t.log.Info("session finished",
		"session_id", sess.ID,
		"minutes", sess.DurationMinutes,
		"exercises", len(sess.Exercises),
		"weekday", weekday,
	)
	return res, nil
}

// Cancel discards the active session.
func (t *Tracker) Cancel() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active == nil {
		return ErrNoActiveSession
	}
	t.active.Close()
	t.active = nil
	t.log.Info("session cancelled")
	return nil
}

// Close releases the active session's clock, if any, without saving it.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active != nil {
		t.active.Close()
		t.active = nil
	}
}
