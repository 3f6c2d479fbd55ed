package plan

import (
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/jellyfit/internal/models"
)

// Normalize prepares a freshly generated plan for storage: every day starts
// incomplete and missing metadata is filled in. It returns nil for a plan with
// no days.
func Normalize(p *models.WeeklyPlan, now time.Time) *models.WeeklyPlan {
	if p == nil || len(p.Days) == 0 {
		return nil
	}
	out := p.Clone()
	if out.ID == "" {
		out.ID = uuid.New().String()
	}
	if out.GeneratedAt.IsZero() {
		out.GeneratedAt = now
	}
	if out.WeekStartDate.IsZero() {
		out.WeekStartDate = WeekStart(now)
	}
	for i := range out.Days {
		out.Days[i].Completed = false
		if out.Days[i].Category == "" {
			out.Days[i].Category = models.CategoryCustom
		}
	}
	return &out
}

// WeekStart returns midnight of the Monday of t's week, in t's location.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// Progress counts completed and scheduled (non-rest) days.
func Progress(p *models.WeeklyPlan) (completed, scheduled int) {
	if p == nil {
		return 0, 0
	}
	for _, d := range p.Days {
		if d.IsRestDay {
			continue
		}
		scheduled++
		if d.Completed {
			completed++
		}
	}
	return completed, scheduled
}

// Day returns the plan entry for weekday.
func Day(p *models.WeeklyPlan, weekday string) (models.DailyPlan, bool) {
	if p == nil {
		return models.DailyPlan{}, false
	}
	for _, d := range p.Days {
		if d.Day == weekday {
			return d, true
		}
	}
	return models.DailyPlan{}, false
}
