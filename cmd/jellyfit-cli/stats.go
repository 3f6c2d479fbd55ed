package main

import (
	"fmt"
	"slices"

	"github.com/meltforce/jellyfit/internal/models"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show session count, total training time and sessions per type",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		ds, closeFn, err := openSource(ctx, logger())
		if err != nil {
			return err
		}
		defer closeFn()

		st, err := ds.Stats(ctx)
		if err != nil {
			return fmt.Errorf("failed to compute stats: %w", err)
		}

		printBoxedHeader("STATS")
		printMetric("Total sessions", st.TotalSessions)
		printMetric("Total minutes", st.TotalMinutes)
		printMetric("Sessions in the last 7 days", st.SessionsLastWeek)
		if st.LastSession != nil {
			printMetric("Last session", st.LastSession.Local().Format("Mon 02 Jan 2006"))
		}
		fmt.Println()

		if len(st.ByCategory) == 0 {
			return nil
		}
		fmt.Println(greenBold("Sessions per type:"))
		cats := make([]models.Category, 0, len(st.ByCategory))
		for c := range st.ByCategory {
			cats = append(cats, c)
		}
		slices.Sort(cats)
		for _, c := range cats {
			fmt.Printf("  • %s: %d\n", magentaBold(string(c)), st.ByCategory[c])
		}
		return nil
	},
}

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Ask the coach for feedback on the most recent sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		ds, closeFn, err := openSource(ctx, logger())
		if err != nil {
			return err
		}
		defer closeFn()

		text, err := ds.Insights(ctx)
		if err != nil {
			return fmt.Errorf("failed to get insights: %w", err)
		}
		fmt.Println(text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(insightsCmd)
}
