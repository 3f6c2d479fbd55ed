package catalog

import (
	"fmt"
	"time"

	"github.com/meltforce/jellyfit/internal/models"
)

// FromDailyPlan builds a one-off template for starting a scheduled plan day.
// The day's prescription is carried over as detailed exercises.
func FromDailyPlan(day models.DailyPlan, now time.Time) models.Template {
	cat := day.Category
	if cat == "" {
		cat = models.CategoryCustom
	}
	t := models.Template{
		ID:                fmt.Sprintf("plan-%d", now.UnixMilli()),
		Name:              day.Focus,
		Category:          cat,
		Description:       "Scheduled session for " + day.Day,
		DetailedExercises: append([]models.ProgramExercise(nil), day.Exercises...),
	}
	t.DefaultExercises = t.ExerciseNames()
	return t
}
