package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List your trips, merged from the backend and the local cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		trips, offline, err := planit.History.List(cmd.Context())
		if err != nil {
			return err
		}
		if offline {
			color.Yellow("Backend unreachable, showing local trips only.")
		}
		if len(trips) == 0 {
			fmt.Println("No trips yet. Try `planit plan \"an evening out in your city\"`.")
			return nil
		}

		for _, t := range trips {
			cardColor.Printf("%s", t.Title)
			if t.Location != "" {
				faintColor.Printf("  (%s)", t.Location)
			}
			fmt.Println()
			faintColor.Printf("  id %s · updated %s\n", t.ID, t.UpdatedAt.Local().Format("Jan 2 15:04"))
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Reopen a trip from the local cache",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := planit.Sessions.Open(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		renderSession(sess)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a trip (local removal is immediate and authoritative)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := planit.Sessions.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil
	},
}
