package models

import "time"

// MediaKind classifies a form-check attachment.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Valid reports whether k is image or video.
func (k MediaKind) Valid() bool {
	return k == MediaImage || k == MediaVideo
}

// MediaRef is an opaque reference to an attached image or video.
type MediaRef struct {
	Ref  string    `json:"ref"`
	Kind MediaKind `json:"kind"`
}

// RepMeasure is the payload of a repetition-based set. Weight is in kilograms.
type RepMeasure struct {
	Reps   *int     `json:"reps,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
}

// TimeMeasure is the payload of a duration-based set, both values in seconds.
type TimeMeasure struct {
	Seconds *int `json:"time,omitempty"`
	Rest    *int `json:"rest,omitempty"`
}

// Set is one performed unit within an exercise. RepBased and TimeBased are the
// two variants; the owning exercise's IsTimed flag selects which one is live.
// While a session is being edited both may be present.
type Set struct {
	ID        string       `json:"id"`
	RepBased  *RepMeasure  `json:"repBased,omitempty"`
	TimeBased *TimeMeasure `json:"timeBased,omitempty"`
	Completed bool         `json:"completed"`
}

// Reps returns the rep count or nil.
func (s Set) Reps() *int {
	if s.RepBased == nil {
		return nil
	}
	return s.RepBased.Reps
}

// Weight returns the weight in kilograms or nil.
func (s Set) Weight() *float64 {
	if s.RepBased == nil {
		return nil
	}
	return s.RepBased.Weight
}

// Seconds returns the duration or nil.
func (s Set) Seconds() *int {
	if s.TimeBased == nil {
		return nil
	}
	return s.TimeBased.Seconds
}

// Clone returns a deep copy of s.
func (s Set) Clone() Set {
	out := Set{ID: s.ID, Completed: s.Completed}
	if s.RepBased != nil {
		out.RepBased = &RepMeasure{Reps: cloneInt(s.RepBased.Reps), Weight: cloneFloat(s.RepBased.Weight)}
	}
	if s.TimeBased != nil {
		out.TimeBased = &TimeMeasure{Seconds: cloneInt(s.TimeBased.Seconds), Rest: cloneInt(s.TimeBased.Rest)}
	}
	return out
}

// Exercise is a named movement and its ordered sets.
type Exercise struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Sets       []Set     `json:"sets"`
	IsTimed    bool      `json:"isTimed"`
	Media      *MediaRef `json:"media,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	TargetSets int       `json:"targetSets,omitempty"`
	TargetReps string    `json:"targetReps,omitempty"`
}

// Clone returns a deep copy of e.
func (e Exercise) Clone() Exercise {
	out := e
	out.Sets = make([]Set, len(e.Sets))
	for i, s := range e.Sets {
		out.Sets[i] = s.Clone()
	}
	if e.Media != nil {
		m := *e.Media
		out.Media = &m
	}
	return out
}

// Session is the immutable record of one finished workout.
type Session struct {
	ID              string     `json:"id"`
	Date            time.Time  `json:"date"`
	Category        Category   `json:"type"`
	DurationMinutes int        `json:"durationMinutes"`
	Exercises       []Exercise `json:"exercises"`
	Notes           string     `json:"notes,omitempty"`
	IsCircuit       bool       `json:"isCircuit,omitempty"`
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
