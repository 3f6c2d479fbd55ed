package main

import (
	"fmt"
	"strings"

	"github.com/meltforce/jellyfit/internal/models"
	"github.com/spf13/cobra"
)

var templatesType string

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the built-in and configured session templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return fmt.Errorf("failed to load templates: %w", err)
		}

		templates := cat.List()
		if templatesType != "" {
			templates = cat.ByCategory(models.Category(templatesType))
		}
		for _, t := range templates {
			fmt.Printf("%s %s %s\n", greenBold(t.Name), faint("("+t.ID+")"), yellowBold(string(t.Category)))
			if t.Description != "" {
				fmt.Printf("  %s\n", t.Description)
			}
			fmt.Printf("  %s\n", strings.Join(t.ExerciseNames(), ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.Flags().StringVarP(&templatesType, "type", "t", "", "only templates of this type")
}
