package models

import "time"

// DailyPlan is one day of a weekly plan. Completed only ever moves from false to true.
type DailyPlan struct {
	Day       string            `json:"day"`
	Focus     string            `json:"focus"`
	Category  Category          `json:"type"`
	Exercises []ProgramExercise `json:"exercises"`
	IsRestDay bool              `json:"isRestDay"`
	Completed bool              `json:"completed"`
}

// WeeklyPlan is a seven-day prescription. Only the most recently stored plan is active.
type WeeklyPlan struct {
	ID            string      `json:"id"`
	WeekStartDate time.Time   `json:"weekStartDate"`
	GeneratedAt   time.Time   `json:"generatedAt"`
	Days          []DailyPlan `json:"days"`
}

// Clone returns a deep copy of p.
func (p WeeklyPlan) Clone() WeeklyPlan {
	out := p
	out.Days = make([]DailyPlan, len(p.Days))
	for i, d := range p.Days {
		d.Exercises = append([]ProgramExercise(nil), d.Exercises...)
		out.Days[i] = d
	}
	return out
}
