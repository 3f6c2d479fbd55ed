package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the athlete profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		ds, closeFn, err := openSource(ctx, logger())
		if err != nil {
			return err
		}
		defer closeFn()

		p, err := ds.Profile(ctx)
		if err != nil {
			return fmt.Errorf("failed to retrieve profile: %w", err)
		}
		if p == nil {
			fmt.Println("No profile yet.")
			return nil
		}

		printBoxedHeader(p.Name)
		printMetric("Sport", p.Sport)
		printMetric("Age", p.Age)
		printMetric("Experience", p.ExperienceLevel)
		printMetric("Sessions per week", p.Frequency)
		if p.Goals != "" {
			printMetric("Goals", p.Goals)
		}
		if p.Injuries != "" {
			printMetric("Injuries", p.Injuries)
		}
		printMetric("AI coaching", p.AICoaching)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
}
