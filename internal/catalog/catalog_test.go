package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/meltforce/jellyfit/internal/models"
)

func TestDefaultTemplates(t *testing.T) {
	got := Default()
	want := []struct {
		id       string
		name     string
		category models.Category
		first    string
	}{
		{"strength-1", "Padel Power", models.CategoryStrength, "Squat Jumps"},
		{"mobility-1", "Court Flow", models.CategoryMobility, "90/90 Hip Switch"},
		{"perf-1", "Match Ready", models.CategoryPerformance, "Shuttle Runs"},
		{"circuit-1", "Full Body Circuit", models.CategoryCircuit, "Burpees"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d templates, want %d", len(got), len(want))
	}
	for i, w := range want {
		g := got[i]
		if g.ID != w.id || g.Name != w.name || g.Category != w.category {
			t.Errorf("template %d = %s/%s/%s, want %s/%s/%s", i, g.ID, g.Name, g.Category, w.id, w.name, w.category)
		}
		if len(g.DefaultExercises) != 4 || g.DefaultExercises[0] != w.first {
			t.Errorf("%s exercises = %v", g.ID, g.DefaultExercises)
		}
		if g.Description == "" {
			t.Errorf("%s has no description", g.ID)
		}
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "extra.yaml", `
templates:
  - name: Leg Day
    type: Strength
    detailed_exercises:
      - name: Back Squat
        sets: 5
        reps: "5"
        rest: 3m
  - id: core-1
    name: Core
    default_exercises: [Plank, Dead Bug]
`)
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d templates, want 2", len(got))
	}
	if got[0].ID != "leg-day" {
		t.Errorf("generated id = %q, want leg-day", got[0].ID)
	}
	if got[0].DetailedExercises[0].Sets != 5 || got[0].DetailedExercises[0].Rest != "3m" {
		t.Errorf("detailed = %+v", got[0].DetailedExercises)
	}
	if got[1].Category != models.CategoryCustom {
		t.Errorf("missing category = %q, want Custom", got[1].Category)
	}
	if !reflect.DeepEqual(got[1].ExerciseNames(), []string{"Plank", "Dead Bug"}) {
		t.Errorf("names = %v", got[1].ExerciseNames())
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "extra.toml", `
[[template]]
name = "Hang Board"
type = "Strength"
default_exercises = ["Dead Hang"]

[[template.detailed_exercise]]
name = "Max Hang"
sets = 6
reps = "10s"
`)
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0].ID != "hang-board" {
		t.Fatalf("got %+v", got)
	}
	if names := got[0].ExerciseNames(); len(names) != 1 || names[0] != "Max Hang" {
		t.Errorf("names = %v, want detailed prescription", names)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"missing name", "a.yaml", "templates:\n  - id: x\n"},
		{"unsluggable name", "d.yaml", "templates:\n  - name: \"!!!\"\n"},
		{"bad yaml", "b.yaml", "templates: [\n"},
		{"bad extension", "c.json", "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, tt.file, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCatalogOverridesByID(t *testing.T) {
	c := New(models.Template{ID: "perf-1", Name: "My Match Ready", Category: models.CategoryPerformance})
	c.Add(models.Template{ID: "new-1", Name: "New", Category: models.CategoryCircuit})

	got, ok := c.Get("perf-1")
	if !ok || got.Name != "My Match Ready" {
		t.Errorf("Get(perf-1) = %+v, %v", got, ok)
	}
	list := c.List()
	if len(list) != 5 {
		t.Fatalf("List len = %d, want 5", len(list))
	}
	if list[2].ID != "perf-1" || list[4].ID != "new-1" {
		t.Errorf("order = %s ... %s", list[2].ID, list[4].ID)
	}
	if circuits := c.ByCategory(models.CategoryCircuit); len(circuits) != 2 {
		t.Errorf("ByCategory(Circuit) = %d, want 2", len(circuits))
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should fail")
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Padel":              "padel",
		"Beach Volleyball":   "beach-volleyball",
		"  90/90 Hip--Flow ": "90-90-hip-flow",
		"Ski!":               "ski",
		"":                   "",
	}
	for in, want := range tests {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

// TestFromDailyPlan verifies starting a plan day produces a template named after
// the day's focus that carries the prescription.
func TestFromDailyPlan(t *testing.T) {
	now := time.UnixMilli(1767600000000)
	day := models.DailyPlan{
		Day:      "Monday",
		Focus:    "Lower Body Power",
		Category: models.CategoryStrength,
		Exercises: []models.ProgramExercise{
			{Name: "Box Jumps", Sets: 4, Reps: "6"},
			{Name: "Split Squat", Sets: 3, Reps: "8/side", Notes: "slow eccentric"},
		},
	}

	got := FromDailyPlan(day, now)
	if got.ID != "plan-1767600000000" {
		t.Errorf("ID = %q", got.ID)
	}
	if got.Name != "Lower Body Power" || got.Category != models.CategoryStrength {
		t.Errorf("name/category = %q/%q", got.Name, got.Category)
	}
	if got.Description != "Scheduled session for Monday" {
		t.Errorf("description = %q", got.Description)
	}
	if !reflect.DeepEqual(got.DefaultExercises, []string{"Box Jumps", "Split Squat"}) {
		t.Errorf("default exercises = %v", got.DefaultExercises)
	}
	if len(got.DetailedExercises) != 2 || got.DetailedExercises[1].Notes != "slow eccentric" {
		t.Errorf("detailed = %+v", got.DetailedExercises)
	}

	day.Exercises[0].Name = "changed"
	if got.DetailedExercises[0].Name != "Box Jumps" {
		t.Error("template aliases the plan day's exercises")
	}
}
