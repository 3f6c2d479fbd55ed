package session

import (
	"time"

	"github.com/meltforce/jellyfit/internal/models"
)

// DurationMinutes rounds elapsed seconds up to whole minutes. Only zero elapsed
// time yields zero minutes.
func DurationMinutes(elapsedSeconds int) int {
	if elapsedSeconds <= 0 {
		return 0
	}
	return (elapsedSeconds + 59) / 60
}

// Finalize converts editor state into an immutable session record. The
// exercise graph is deep-copied and each set keeps only the payload that
// matches its exercise's mode. Finalize never fails; an empty snapshot yields a
// session without exercises.
func Finalize(snap Snapshot, start time.Time, elapsedSeconds int, tmpl models.Template, id string) models.Session {
	exercises := make([]models.Exercise, len(snap.exercises))
	for i, ex := range snap.exercises {
		c := ex.Clone()
		for j := range c.Sets {
			if c.IsTimed {
				c.Sets[j].RepBased = nil
			} else {
				c.Sets[j].TimeBased = nil
			}
		}
		exercises[i] = c
	}

	return models.Session{
		ID:              id,
		Date:            start,
		Category:        tmpl.Category,
		DurationMinutes: DurationMinutes(elapsedSeconds),
		Exercises:       exercises,
		IsCircuit:       tmpl.Category == models.CategoryCircuit,
	}
}
