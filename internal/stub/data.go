package stub

import (
	"fmt"
	"strings"

	"github.com/planit-app/planit/internal/models"
)

// Canned itinerary material. The real backend plans with an LLM; the stub
// just needs plausible shapes for the client to render.

var foodSpots = []models.Location{
	{Name: "The Corner Bistro", Address: "12 King St", Category: "food", Time: "6:00 PM", Price: "$$", Rating: 4.5, Hours: "11am-11pm"},
	{Name: "Night Market Eats", Address: "88 Spadina Ave", Category: "food", Time: "8:00 PM", Price: "$", Rating: 4.2, Hours: "5pm-1am"},
}

var outdoorSpots = []models.Location{
	{Name: "Riverside Park", Address: "1 Riverside Dr", Category: "outdoors", Time: "2:00 PM", Rating: 4.7, Hours: "6am-10pm"},
	{Name: "Harbourfront Walk", Address: "235 Queens Quay", Category: "outdoors", Time: "4:00 PM", Rating: 4.6, Hours: "always open"},
}

var indoorSpots = []models.Location{
	{Name: "City Art Gallery", Address: "317 Dundas St", Category: "culture", Time: "1:00 PM", Price: "$$", Rating: 4.6, Hours: "10am-5pm"},
	{Name: "Arcade Underground", Address: "44 College St", Category: "entertainment", Time: "7:00 PM", Price: "$$", Rating: 4.3, Hours: "12pm-2am"},
}

var nightSpots = []models.Location{
	{Name: "Skyline Lounge", Address: "290 Bremner Blvd", Category: "nightlife", Time: "10:00 PM", Price: "$$$", Rating: 4.4, Hours: "8pm-2am"},
}

func cannedLocations(f models.Filters) []models.Location {
	var out []models.Location

	switch f.Environment {
	case models.EnvOutdoor:
		out = append(out, outdoorSpots...)
	case models.EnvIndoor:
		out = append(out, indoorSpots...)
	default:
		out = append(out, outdoorSpots[0], indoorSpots[0])
	}

	if f.PlanFood {
		food := foodSpots[0]
		if f.PriceRange == models.PriceBudget {
			food = foodSpots[1]
		}
		out = append(out, food)
	}

	for _, t := range f.TimesOfDay {
		if t == models.TimeNight {
			out = append(out, nightSpots...)
			break
		}
	}

	return out
}

func cannedTips(f models.Filters) []string {
	tips := []string{"Check opening hours before you go."}
	if f.PlanTransit {
		tips = append(tips, "All stops are reachable by public transit; grab a day pass.")
	}
	if f.GroupSize == models.GroupLarge {
		tips = append(tips, "Call ahead for groups of six or more.")
	}
	if f.SpecialOption == models.SpecialAccessible {
		tips = append(tips, "Every listed venue has step-free access.")
	}
	return tips
}

func cannedResponse(city string, locations []models.Location) string {
	names := make([]string, 0, len(locations))
	for _, l := range locations {
		names = append(names, l.Name)
	}
	return fmt.Sprintf("Here's a plan for %s: %s. Enjoy!", city, strings.Join(names, ", "))
}
