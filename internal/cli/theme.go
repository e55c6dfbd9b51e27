package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planit-app/planit/internal/models"
)

var themeCmd = &cobra.Command{
	Use:   "theme [light|dark|system]",
	Short: "Show or set the appearance preference",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if len(args) == 0 {
			theme, err := planit.Store.Theme(ctx)
			if err != nil {
				return err
			}
			fmt.Println(theme)
			return nil
		}

		theme := models.Theme(args[0])
		if err := planit.Store.SetTheme(ctx, theme); err != nil {
			return err
		}
		fmt.Printf("Theme set to %s.\n", theme)
		return nil
	},
}
