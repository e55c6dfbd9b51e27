// Package cli implements the planit command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/planit-app/planit/internal/app"
)

var planit *app.App

var rootCmd = &cobra.Command{
	Use:   "planit",
	Short: "PlanIT: plan a day out from a single search",
	Long: `PlanIT turns a free-text search plus a few filters into an itinerary:
locations, timing, food stops and transit hints, with your trip history
kept locally and synced with the planning backend when reachable.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.New(cmd.Context())
		if err != nil {
			return err
		}
		planit = a
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if planit != nil {
			return planit.Close()
		}
		return nil
	},
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(mapItCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(themeCmd)
}
