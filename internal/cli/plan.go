package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/planit-app/planit/internal/models"
	"github.com/planit-app/planit/internal/session"
)

var planFlags struct {
	times       []string
	environment string
	groupSize   string
	transit     bool
	food        bool
	price       string
	special     string
}

var planCmd = &cobra.Command{
	Use:   "plan <query>",
	Short: "Submit a search and get an itinerary",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		filters := models.Filters{
			Environment:   models.Environment(planFlags.environment),
			GroupSize:     models.GroupSize(planFlags.groupSize),
			PlanTransit:   planFlags.transit,
			PlanFood:      planFlags.food,
			PriceRange:    models.PriceRange(planFlags.price),
			SpecialOption: models.SpecialOption(planFlags.special),
		}
		for _, t := range planFlags.times {
			filters.TimesOfDay = append(filters.TimesOfDay, models.TimeOfDay(t))
		}

		draft := session.NewDraft(models.SearchData{Query: query, Filters: filters})

		// The user's message is shown the instant they hit enter; the
		// draft's labels are placeholders until the backend answers.
		renderUserMessage(draft.UserMessage())
		fmt.Printf("  (%s)\n", draft.Location)

		for {
			fmt.Println()
			color.New(color.Faint).Println("  PlanIT is thinking...")

			sess, err := planit.Sessions.Submit(cmd.Context(), draft)
			if err == nil {
				renderSession(sess)
				return nil
			}

			// Failures end up as a decision point, never a crash: retry
			// re-enters the same draft, abandoning persists nothing.
			color.Red("Plan request failed: %v", err)
			if !confirm("Retry?") {
				fmt.Println("Nothing was saved.")
				return nil
			}
		}
	},
}

func init() {
	planCmd.Flags().StringSliceVar(&planFlags.times, "time", nil, "time of day (morning|afternoon|evening|night), repeatable")
	planCmd.Flags().StringVar(&planFlags.environment, "environment", "mixed", "environment (indoor|outdoor|mixed)")
	planCmd.Flags().StringVar(&planFlags.groupSize, "group", "solo", "group size (solo|duo|small|large)")
	planCmd.Flags().BoolVar(&planFlags.transit, "transit", false, "include transit planning")
	planCmd.Flags().BoolVar(&planFlags.food, "food", false, "include food stops")
	planCmd.Flags().StringVar(&planFlags.price, "price", "", "food price tier (budget|moderate|upscale), requires --food")
	planCmd.Flags().StringVar(&planFlags.special, "mode", "none", "special mode (none|date|family|tourist|accessible)")
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
