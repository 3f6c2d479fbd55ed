package tracker

import (
	"time"

	"github.com/meltforce/jellyfit/internal/models"
)

// Stats summarizes a session history.
type Stats struct {
	TotalSessions    int                     `json:"totalSessions"`
	TotalMinutes     int                     `json:"totalMinutes"`
	SessionsLastWeek int                     `json:"sessionsLast7Days"`
	LastSession      *time.Time              `json:"lastSession,omitempty"`
	ByCategory       map[models.Category]int `json:"byCategory"`
}

// ComputeStats summarizes sessions (newest first). The weekly count covers the
// seven days up to and including now.
func ComputeStats(sessions []models.Session, now time.Time) Stats {
	st := Stats{
		TotalSessions: len(sessions),
		ByCategory:    make(map[models.Category]int),
	}
	weekAgo := now.Add(-7 * 24 * time.Hour)
	for _, s := range sessions {
		st.TotalMinutes += s.DurationMinutes
		st.ByCategory[s.Category]++
		if !s.Date.Before(weekAgo) {
			st.SessionsLastWeek++
		}
	}
	if len(sessions) > 0 {
		d := sessions[0].Date
		st.LastSession = &d
	}
	return st
}

// FilterSessions keeps the sessions dated within [from, to] whose category is
// cat. A zero bound or an empty category does not filter.
func FilterSessions(sessions []models.Session, from, to time.Time, cat models.Category) []models.Session {
	out := make([]models.Session, 0, len(sessions))
	for _, s := range sessions {
		if !from.IsZero() && s.Date.Before(from) {
			continue
		}
		if !to.IsZero() && s.Date.After(to) {
			continue
		}
		if cat != "" && s.Category != cat {
			continue
		}
		out = append(out, s)
	}
	return out
}
