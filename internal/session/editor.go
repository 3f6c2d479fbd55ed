package session

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/jellyfit/internal/models"
)

// DefaultReps is the rep count of a freshly created set.
const DefaultReps = 10

// Field names a numeric set value that can be edited.
type Field string

const (
	FieldReps   Field = "reps"
	FieldWeight Field = "weight"
	FieldTime   Field = "time"
	FieldRest   Field = "rest"
)

// Editor is the mutable staging area for one workout in progress.
// All methods are safe for concurrent use. Unknown exercise or set IDs are
// ignored so the editor always stays renderable.
type Editor struct {
	mu       sync.Mutex
	tmpl     models.Template
	snap     Snapshot
	notes    string
	start    time.Time
	newID    func() string
	interval time.Duration

	elapsed atomic.Int64

	cancel    context.CancelFunc
	done      chan struct{}
	closed    bool
	closeOnce sync.Once
}

// Option configures an Editor.
type Option func(*Editor)

// WithStart overrides the session start timestamp (defaults to time.Now).
func WithStart(t time.Time) Option {
	return func(e *Editor) { e.start = t }
}

// WithIDs overrides the ID generator (defaults to random UUIDs).
func WithIDs(gen func() string) Option {
	return func(e *Editor) { e.newID = gen }
}

// WithTickInterval overrides the elapsed-time tick period. One tick is always
// counted as one second of training time.
func WithTickInterval(d time.Duration) Option {
	return func(e *Editor) { e.interval = d }
}

// New creates an editor seeded from tmpl: one exercise per template exercise,
// each holding a single default set. The clock is not running until Start.
func New(tmpl models.Template, opts ...Option) *Editor {
	e := &Editor{
		tmpl:     tmpl,
		start:    time.Now(),
		newID:    func() string { return uuid.New().String() },
		interval: time.Second,
	}
	for _, o := range opts {
		o(e)
	}

	names := tmpl.ExerciseNames()
	exercises := make([]models.Exercise, 0, len(names))
	for i, name := range names {
		ex := e.newExercise(name)
		if i < len(tmpl.DetailedExercises) {
			d := tmpl.DetailedExercises[i]
			ex.TargetSets = d.Sets
			ex.TargetReps = d.Reps
			ex.Notes = d.Notes
		}
		exercises = append(exercises, ex)
	}
	e.snap = newSnapshot(exercises)
	return e
}

// Begin creates an editor and starts its clock. The clock stops when ctx is
// cancelled or the editor is closed, whichever happens first.
func Begin(ctx context.Context, tmpl models.Template, opts ...Option) *Editor {
	e := New(tmpl, opts...)
	e.Start(ctx)
	return e
}

// Start launches the elapsed-time ticker. Calling Start twice, or after Close,
// has no effect.
func (e *Editor) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.done = make(chan struct{})
	go e.run(ctx, e.done)
}

func (e *Editor) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	t := time.NewTicker(e.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			e.tick()
		}
	}
}

func (e *Editor) tick() {
	e.elapsed.Add(1)
}

// Close stops the clock and waits for the ticker goroutine to exit. It is
// idempotent and must be called on every exit path.
func (e *Editor) Close() {
	e.closeOnce.Do(func() {
		e.mu.Lock()
		e.closed = true
		cancel, done := e.cancel, e.done
		e.mu.Unlock()
		if cancel != nil {
			cancel()
			<-done
		}
	})
}

// Elapsed returns the number of seconds counted so far.
func (e *Editor) Elapsed() int {
	return int(e.elapsed.Load())
}

// StartedAt returns the session start timestamp.
func (e *Editor) StartedAt() time.Time {
	return e.start
}

// Template returns the template the editor was seeded from.
func (e *Editor) Template() models.Template {
	return e.tmpl
}

// Snapshot returns the current immutable exercise state.
func (e *Editor) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snap
}

// Notes returns the session-level notes.
func (e *Editor) Notes() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.notes
}

// Draft returns the finalized session for the current state without stopping
// the clock.
func (e *Editor) Draft() models.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := Finalize(e.snap, e.start, e.Elapsed(), e.tmpl, e.newID())
	s.Notes = e.notes
	return s
}

// Finish closes the editor and returns the finalized session.
func (e *Editor) Finish() models.Session {
	e.Close()
	return e.Draft()
}

func (e *Editor) newSet() models.Set {
	reps := DefaultReps
	return models.Set{ID: e.newID(), RepBased: &models.RepMeasure{Reps: &reps}}
}

func (e *Editor) newExercise(name string) models.Exercise {
	return models.Exercise{ID: e.newID(), Name: name, Sets: []models.Set{e.newSet()}}
}

// AddExercise appends a new exercise with one default set and returns its ID.
// Names that are empty after trimming are rejected and "" is returned.
func (e *Editor) AddExercise(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	ex := e.newExercise(name)
	e.snap = e.snap.append(ex)
	return ex.ID
}

// RemoveExercise deletes an exercise and all of its sets.
func (e *Editor) RemoveExercise(exerciseID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i, ok := e.snap.lookup(exerciseID); ok {
		e.snap = e.snap.remove(i)
	}
}

// AddSet appends a set that carries over the previous set's values with
// completed reset. It returns the new set ID, or "" for an unknown exercise.
func (e *Editor) AddSet(exerciseID string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	i, ok := e.snap.lookup(exerciseID)
	if !ok {
		return ""
	}
	ex := withSets(e.snap.exercises[i])
	next := e.newSet()
	if n := len(ex.Sets); n > 0 {
		prev := ex.Sets[n-1].Clone()
		next.RepBased = prev.RepBased
		next.TimeBased = prev.TimeBased
	}
	ex.Sets = append(ex.Sets, next)
	e.snap = e.snap.replace(i, ex)
	return next.ID
}

// RemoveSet deletes a set. Exercises may end up with no sets.
func (e *Editor) RemoveSet(exerciseID, setID string) {
	e.updateSet(exerciseID, setID, func(ex *models.Exercise, j int) {
		ex.Sets = append(ex.Sets[:j], ex.Sets[j+1:]...)
	})
}

// UpdateSetField sets one numeric field of a set. A nil value clears it.
// Values are stored as given; there is no range validation.
func (e *Editor) UpdateSetField(exerciseID, setID string, field Field, value *float64) {
	e.updateSet(exerciseID, setID, func(ex *models.Exercise, j int) {
		s := ex.Sets[j]
		switch field {
		case FieldReps, FieldWeight:
			m := models.RepMeasure{}
			if s.RepBased != nil {
				m = *s.RepBased
			}
			if field == FieldReps {
				m.Reps = intPtr(value)
			} else {
				m.Weight = floatPtr(value)
			}
			s.RepBased = &m
		case FieldTime, FieldRest:
			m := models.TimeMeasure{}
			if s.TimeBased != nil {
				m = *s.TimeBased
			}
			if field == FieldTime {
				m.Seconds = intPtr(value)
			} else {
				m.Rest = intPtr(value)
			}
			s.TimeBased = &m
		default:
			return
		}
		ex.Sets[j] = s
	})
}

// ToggleSetCompleted flips the completed flag of a set.
func (e *Editor) ToggleSetCompleted(exerciseID, setID string) {
	e.updateSet(exerciseID, setID, func(ex *models.Exercise, j int) {
		ex.Sets[j].Completed = !ex.Sets[j].Completed
	})
}

// ToggleTimedMode switches an exercise between rep and duration mode. Values
// entered for the other mode are kept.
func (e *Editor) ToggleTimedMode(exerciseID string) {
	e.updateExercise(exerciseID, func(ex *models.Exercise) {
		ex.IsTimed = !ex.IsTimed
	})
}

// AttachMedia sets the form-check attachment. Refs of unknown kind are ignored.
func (e *Editor) AttachMedia(exerciseID string, ref models.MediaRef) {
	if !ref.Kind.Valid() {
		return
	}
	e.updateExercise(exerciseID, func(ex *models.Exercise) {
		ex.Media = &ref
	})
}

// DetachMedia clears the form-check attachment.
func (e *Editor) DetachMedia(exerciseID string) {
	e.updateExercise(exerciseID, func(ex *models.Exercise) {
		ex.Media = nil
	})
}

// SetExerciseNotes replaces the free-text notes of an exercise.
func (e *Editor) SetExerciseNotes(exerciseID, notes string) {
	e.updateExercise(exerciseID, func(ex *models.Exercise) {
		ex.Notes = notes
	})
}

// SetNotes replaces the session-level notes.
func (e *Editor) SetNotes(notes string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notes = notes
}

func (e *Editor) updateExercise(exerciseID string, fn func(ex *models.Exercise)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i, ok := e.snap.lookup(exerciseID)
	if !ok {
		return
	}
	ex := e.snap.exercises[i]
	fn(&ex)
	e.snap = e.snap.replace(i, ex)
}

func (e *Editor) updateSet(exerciseID, setID string, fn func(ex *models.Exercise, j int)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i, ok := e.snap.lookup(exerciseID)
	if !ok {
		return
	}
	j, ok := findSet(e.snap.exercises[i], setID)
	if !ok {
		return
	}
	ex := withSets(e.snap.exercises[i])
	fn(&ex, j)
	e.snap = e.snap.replace(i, ex)
}

func intPtr(v *float64) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

func floatPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	f := *v
	return &f
}
