package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	historyType  string
	historyDays  int
	historyLimit int
	historyFull  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List finished sessions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		ds, closeFn, err := openSource(ctx, logger())
		if err != nil {
			return err
		}
		defer closeFn()

		var start time.Time
		if historyDays > 0 {
			start = time.Now().AddDate(0, 0, -historyDays)
		}
		sessions, err := ds.Sessions(ctx, start, time.Time{}, historyType)
		if err != nil {
			return fmt.Errorf("failed to retrieve sessions: %w", err)
		}
		if historyLimit > 0 && len(sessions) > historyLimit {
			sessions = sessions[:historyLimit]
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions yet.")
			return nil
		}
		for _, s := range sessions {
			header := fmt.Sprintf("%s  %s  %d min  %d exercises",
				s.Date.Local().Format("Mon 02 Jan 2006 15:04"), s.Category, s.DurationMinutes, len(s.Exercises))
			fmt.Println(greenBold(header) + faint("  "+s.ID))
			if s.Notes != "" {
				fmt.Printf("  %s\n", faint(s.Notes))
			}
			if historyFull {
				for _, ex := range s.Exercises {
					fmt.Printf("  • %s\n", formatExercise(ex))
				}
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVarP(&historyType, "type", "t", "", "only sessions of this type (Strength, Mobility, ...)")
	historyCmd.Flags().IntVarP(&historyDays, "days", "d", 0, "only sessions from the last N days")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of sessions")
	historyCmd.Flags().BoolVarP(&historyFull, "full", "f", false, "show exercises and sets")
}
