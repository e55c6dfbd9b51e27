package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planit-app/planit/internal/models"
)

var mapItTravelMode string

var mapItCmd = &cobra.Command{
	Use:   "mapit <session-id>",
	Short: "Export a trip's locations as a single routable map URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := planit.Sessions.Open(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		var locations []models.Location
		for _, m := range sess.Messages {
			if m.Type == models.MessageAI && len(m.Locations) > 0 {
				locations = m.Locations
				break
			}
		}
		if len(locations) == 0 {
			return fmt.Errorf("session %s has no locations to map", sess.ID)
		}

		mode := mapItTravelMode
		if mode == "" {
			mode = "walking"
			if sess.SearchData.Filters.PlanTransit {
				mode = "transit"
			}
		}

		url, err := planit.Client.MapIt(cmd.Context(), locations, mode)
		if err != nil {
			return err
		}

		fmt.Println(url)
		return nil
	},
}

func init() {
	mapItCmd.Flags().StringVar(&mapItTravelMode, "mode", "", "travel mode (walking|driving|transit|bicycling)")
}
