package main

import (
	"fmt"
	"time"

	"github.com/meltforce/jellyfit/internal/plan"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the weekly plan and its progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		ds, closeFn, err := openSource(ctx, logger())
		if err != nil {
			return err
		}
		defer closeFn()

		p, err := ds.WeeklyPlan(ctx)
		if err != nil {
			return fmt.Errorf("failed to retrieve plan: %w", err)
		}
		if p == nil {
			fmt.Println("No weekly plan yet.")
			return nil
		}

		done, scheduled := plan.Progress(p)
		today := plan.WeekdayName(time.Now(), time.Local)
		printBoxedHeader("WEEK OF " + p.WeekStartDate.Format("02 Jan 2006"))
		printMetric("Progress", fmt.Sprintf("%d/%d sessions", done, scheduled))
		fmt.Println()

		for _, d := range p.Days {
			day := fmt.Sprintf("%-9s", d.Day)
			if d.Day == today {
				day = cyanBold(day)
			}
			switch {
			case d.IsRestDay:
				fmt.Printf("  %s %s\n", day, faint("rest"))
				continue
			case d.Completed:
				fmt.Printf("  %s %s %s\n", day, greenBold("✓"), d.Focus)
			default:
				fmt.Printf("  %s   %s\n", day, d.Focus)
			}
			for _, ex := range d.Exercises {
				fmt.Printf("              • %s %s\n", magentaBold(ex.Name), faint(fmt.Sprintf("%d × %s", ex.Sets, ex.Reps)))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}
