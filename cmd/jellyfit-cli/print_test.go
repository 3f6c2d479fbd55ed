package main

import (
	"testing"

	"github.com/meltforce/jellyfit/internal/models"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func TestFormatSet(t *testing.T) {
	tests := []struct {
		name  string
		set   models.Set
		timed bool
		want  string
	}{
		{"reps and weight", models.Set{RepBased: &models.RepMeasure{Reps: intp(8), Weight: floatp(42.5)}}, false, "8 × 42.5 kg"},
		{"bodyweight", models.Set{RepBased: &models.RepMeasure{Reps: intp(12)}}, false, "12 reps"},
		{"empty rep set", models.Set{}, false, "- reps"},
		{"timed with rest", models.Set{TimeBased: &models.TimeMeasure{Seconds: intp(45), Rest: intp(15)}}, true, "45s, rest 15s"},
		{"timed only", models.Set{TimeBased: &models.TimeMeasure{Seconds: intp(30)}}, true, "30s"},
		{"timed ignores rep payload", models.Set{RepBased: &models.RepMeasure{Reps: intp(10)}}, true, "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatSet(tt.set, tt.timed); got != tt.want {
				t.Errorf("formatSet = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("AB", 6); got != "  AB  " {
		t.Errorf("centerText = %q", got)
	}
	if got := centerText("TOO LONG", 4); got != "TOO LONG" {
		t.Errorf("centerText = %q", got)
	}
}
