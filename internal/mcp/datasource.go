package mcp

import (
	"context"
	"time"

	"github.com/meltforce/jellyfit/internal/coach"
	"github.com/meltforce/jellyfit/internal/models"
	"github.com/meltforce/jellyfit/internal/storage"
	"github.com/meltforce/jellyfit/internal/tracker"
)

// DataSource abstracts the data layer for MCP tools. Both Local (direct store
// access) and HTTPClient (remote via REST API) satisfy this interface.
// Lookups of things that do not exist return nil without an error.
type DataSource interface {
	Sessions(ctx context.Context, start, end time.Time, category string) ([]models.Session, error)
	Session(ctx context.Context, id string) (*models.Session, error)
	WeeklyPlan(ctx context.Context) (*models.WeeklyPlan, error)
	Profile(ctx context.Context) (*models.UserProfile, error)
	Stats(ctx context.Context) (*tracker.Stats, error)
	Insights(ctx context.Context) (string, error)
}

// Local serves MCP requests from the store of this process.
type Local struct {
	store *storage.Store
	coach *coach.Service
	now   func() time.Time
}

var (
	_ DataSource = (*Local)(nil)
	_ DataSource = (*HTTPClient)(nil)
)

// NewLocal creates a Local data source. coach may be nil, in which case
// insights report that no API key is configured.
func NewLocal(store *storage.Store, coachSvc *coach.Service) *Local {
	return &Local{store: store, coach: coachSvc, now: time.Now}
}

func (l *Local) Sessions(ctx context.Context, start, end time.Time, category string) ([]models.Session, error) {
	return tracker.FilterSessions(l.store.GetSessions(ctx), start, end, models.Category(category)), nil
}

func (l *Local) Session(ctx context.Context, id string) (*models.Session, error) {
	s, ok := l.store.GetSession(ctx, id)
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (l *Local) WeeklyPlan(ctx context.Context) (*models.WeeklyPlan, error) {
	return l.store.GetPlan(ctx), nil
}

func (l *Local) Profile(ctx context.Context) (*models.UserProfile, error) {
	return l.store.GetProfile(ctx), nil
}

func (l *Local) Stats(ctx context.Context) (*tracker.Stats, error) {
	st := tracker.ComputeStats(l.store.GetSessions(ctx), l.now())
	return &st, nil
}

func (l *Local) Insights(ctx context.Context) (string, error) {
	if l.coach == nil {
		return coach.InsightNoAPIKey, nil
	}
	return l.coach.GetInsights(ctx, l.store.GetSessions(ctx)), nil
}
