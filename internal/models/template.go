package models

// Category classifies a template, a session or a plan day. The five constants
// below are the built-in categories; generated content may carry any other string.
type Category string

const (
	CategoryStrength    Category = "Strength"
	CategoryMobility    Category = "Mobility"
	CategoryPerformance Category = "Performance"
	CategoryCircuit     Category = "Circuit"
	CategoryCustom      Category = "Custom"
)

// Known reports whether c is one of the built-in categories.
func (c Category) Known() bool {
	switch c {
	case CategoryStrength, CategoryMobility, CategoryPerformance, CategoryCircuit, CategoryCustom:
		return true
	}
	return false
}

// ProgramExercise is a prescribed exercise inside a template or a plan day.
type ProgramExercise struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Sets  int    `json:"sets" yaml:"sets" toml:"sets"`
	Reps  string `json:"reps" yaml:"reps" toml:"reps"`
	Rest  string `json:"rest,omitempty" yaml:"rest,omitempty" toml:"rest,omitempty"`
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty" toml:"notes,omitempty"`
}

// Template is a reusable session blueprint. Templates are never mutated after creation.
type Template struct {
	ID                string            `json:"id" yaml:"id" toml:"id"`
	Name              string            `json:"name" yaml:"name" toml:"name"`
	Category          Category          `json:"type" yaml:"type" toml:"type"`
	Description       string            `json:"description" yaml:"description" toml:"description"`
	DefaultExercises  []string          `json:"defaultExercises" yaml:"default_exercises" toml:"default_exercises"`
	DetailedExercises []ProgramExercise `json:"detailedExercises,omitempty" yaml:"detailed_exercises,omitempty" toml:"detailed_exercise,omitempty"`
}

// ExerciseNames returns the names the template seeds a session with. A detailed
// prescription wins over the flat name list.
func (t Template) ExerciseNames() []string {
	if len(t.DetailedExercises) > 0 {
		names := make([]string, len(t.DetailedExercises))
		for i, e := range t.DetailedExercises {
			names[i] = e.Name
		}
		return names
	}
	return t.DefaultExercises
}
