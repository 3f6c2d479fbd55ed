package session

import "github.com/meltforce/jellyfit/internal/models"

// Snapshot is an immutable view of the exercises in an active session.
// Editor mutations never modify a published snapshot; they build a new one that
// shares every exercise they did not touch.
type Snapshot struct {
	exercises []models.Exercise
	index     map[string]int
}

func newSnapshot(exercises []models.Exercise) Snapshot {
	idx := make(map[string]int, len(exercises))
	for i, ex := range exercises {
		idx[ex.ID] = i
	}
	return Snapshot{exercises: exercises, index: idx}
}

// Len returns the number of exercises.
func (s Snapshot) Len() int {
	return len(s.exercises)
}

// Exercises returns a deep copy of the exercises in performance order.
func (s Snapshot) Exercises() []models.Exercise {
	out := make([]models.Exercise, len(s.exercises))
	for i, ex := range s.exercises {
		out[i] = ex.Clone()
	}
	return out
}

// Exercise returns a deep copy of the exercise with the given ID.
func (s Snapshot) Exercise(id string) (models.Exercise, bool) {
	i, ok := s.index[id]
	if !ok {
		return models.Exercise{}, false
	}
	return s.exercises[i].Clone(), true
}

func (s Snapshot) lookup(id string) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// replace returns a snapshot with exercise i swapped for ex. The index is shared
// because positions and IDs do not change.
func (s Snapshot) replace(i int, ex models.Exercise) Snapshot {
	next := make([]models.Exercise, len(s.exercises))
	copy(next, s.exercises)
	next[i] = ex
	return Snapshot{exercises: next, index: s.index}
}

func (s Snapshot) append(ex models.Exercise) Snapshot {
	next := make([]models.Exercise, len(s.exercises), len(s.exercises)+1)
	copy(next, s.exercises)
	return newSnapshot(append(next, ex))
}

func (s Snapshot) remove(i int) Snapshot {
	next := make([]models.Exercise, 0, len(s.exercises)-1)
	next = append(next, s.exercises[:i]...)
	next = append(next, s.exercises[i+1:]...)
	return newSnapshot(next)
}

// findSet returns the position of setID within ex.
func findSet(ex models.Exercise, setID string) (int, bool) {
	for i, s := range ex.Sets {
		if s.ID == setID {
			return i, true
		}
	}
	return 0, false
}

// withSets returns ex with a private copy of its set slice, ready for mutation.
func withSets(ex models.Exercise) models.Exercise {
	ex.Sets = append([]models.Set(nil), ex.Sets...)
	return ex
}
