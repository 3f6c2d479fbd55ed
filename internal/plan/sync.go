// Package plan keeps the stored weekly plan in step with finished sessions.
package plan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/meltforce/jellyfit/internal/models"
)

// PlanStore is the subset of the store the synchronizer needs.
type PlanStore interface {
	GetPlan(ctx context.Context) *models.WeeklyPlan
	SavePlan(ctx context.Context, p models.WeeklyPlan) error
}

// Synchronizer marks plan days complete.
type Synchronizer struct {
	store PlanStore
	log   *slog.Logger
}

// NewSynchronizer returns a synchronizer writing through store.
func NewSynchronizer(store PlanStore, log *slog.Logger) *Synchronizer {
	return &Synchronizer{store: store, log: log}
}

// MarkDayComplete sets Completed on every day named weekday (exact,
// case-sensitive match) and writes the plan back in full. With no stored plan
// it does nothing and returns nil. Rest days are not special-cased and
// repeated calls leave the plan unchanged.
func (s *Synchronizer) MarkDayComplete(ctx context.Context, weekday string) (*models.WeeklyPlan, error) {
	p := s.store.GetPlan(ctx)
	if p == nil {
		return nil, nil
	}

	updated := p.Clone()
	matched := 0
	for i := range updated.Days {
		if updated.Days[i].Day == weekday {
			updated.Days[i].Completed = true
			matched++
		}
	}
	if matched == 0 {
		s.log.Debug("no plan day matches weekday", "weekday", weekday, "plan_id", p.ID)
	}

	if err := s.store.SavePlan(ctx, updated); err != nil {
		return nil, fmt.Errorf("marking %s complete: %w", weekday, err)
	}
	return &updated, nil
}

// WeekdayName returns the English long weekday name of t in loc, the naming
// the plan generator uses for DailyPlan.Day. A nil loc means t's own location.
func WeekdayName(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Weekday().String()
}
