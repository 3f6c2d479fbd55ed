package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/meltforce/jellyfit/internal/models"
)

var (
	cyanBold    = color.New(color.FgCyan, color.Bold).SprintFunc()
	yellowBold  = color.New(color.FgYellow, color.Bold).SprintFunc()
	greenBold   = color.New(color.FgGreen, color.Bold).SprintFunc()
	magentaBold = color.New(color.FgMagenta, color.Bold).SprintFunc()
	faint       = color.New(color.Faint).SprintFunc()
)

// printBoxedHeader prints the title in a Unicode box with a fixed width.
func printBoxedHeader(title string) {
	width := 40
	border := strings.Repeat("═", width)
	fmt.Println(cyanBold("╔" + border + "╗"))
	fmt.Println(cyanBold("║" + centerText(title, width) + "║"))
	fmt.Println(cyanBold("╚" + border + "╝"))
}

func centerText(s string, width int) string {
	if len(s) >= width {
		return s
	}
	padding := (width - len(s)) / 2
	return strings.Repeat(" ", padding) + s + strings.Repeat(" ", width-len(s)-padding)
}

// printMetric prints a label and value using bold yellow for the label.
func printMetric(label string, value any) {
	fmt.Printf("  %s: %v\n", yellowBold(label), value)
}

// formatSet renders the live payload of a set, e.g. "10 × 40 kg" or "45s, rest 15s".
func formatSet(s models.Set, timed bool) string {
	if timed {
		secs := "-"
		if v := s.Seconds(); v != nil {
			secs = fmt.Sprintf("%ds", *v)
		}
		if s.TimeBased != nil && s.TimeBased.Rest != nil {
			return fmt.Sprintf("%s, rest %ds", secs, *s.TimeBased.Rest)
		}
		return secs
	}

	reps := "-"
	if v := s.Reps(); v != nil {
		reps = fmt.Sprint(*v)
	}
	if w := s.Weight(); w != nil {
		return fmt.Sprintf("%s × %g kg", reps, *w)
	}
	return reps + " reps"
}

func formatExercise(ex models.Exercise) string {
	sets := make([]string, len(ex.Sets))
	for i, s := range ex.Sets {
		mark := ""
		if s.Completed {
			mark = "✓"
		}
		sets[i] = formatSet(s, ex.IsTimed) + mark
	}
	return fmt.Sprintf("%s  %s", magentaBold(ex.Name), strings.Join(sets, " | "))
}
