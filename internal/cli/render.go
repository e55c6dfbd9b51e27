package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/planit-app/planit/internal/models"
)

var (
	userColor  = color.New(color.FgCyan, color.Bold)
	aiColor    = color.New(color.FgGreen)
	cardColor  = color.New(color.FgWhite, color.Bold)
	faintColor = color.New(color.Faint)
	tipColor   = color.New(color.FgYellow)
)

func renderUserMessage(m models.Message) {
	userColor.Printf("You: ")
	fmt.Println(m.Content)
}

func renderSession(s *models.TripSession) {
	fmt.Println()
	cardColor.Printf("%s", s.Title)
	if s.Location != "" {
		faintColor.Printf("  · %s", s.Location)
	}
	fmt.Println()
	fmt.Println(strings.Repeat("-", 40))

	for _, m := range s.Messages {
		switch m.Type {
		case models.MessageUser:
			renderUserMessage(m)
		case models.MessageAI:
			renderAIMessage(m)
		}
	}
}

func renderAIMessage(m models.Message) {
	aiColor.Printf("PlanIT: ")
	fmt.Println(m.Content)

	for i, l := range m.Locations {
		fmt.Println()
		cardColor.Printf("  %d. %s\n", i+1, l.Name)
		if l.Category != "" || l.Time != "" {
			faintColor.Printf("     %s\n", joinNonEmpty(" · ", l.Category, l.Time, l.Price))
		}
		if l.Address != "" {
			faintColor.Printf("     %s\n", l.Address)
		}
		if l.Rating > 0 {
			faintColor.Printf("     rated %.1f", l.Rating)
			if l.Hours != "" {
				faintColor.Printf(" · %s", l.Hours)
			}
			fmt.Println()
		} else if l.Hours != "" {
			faintColor.Printf("     %s\n", l.Hours)
		}
	}

	if len(m.PracticalTips) > 0 {
		fmt.Println()
		tipColor.Println("  Tips:")
		for _, tip := range m.PracticalTips {
			tipColor.Printf("   - %s\n", tip)
		}
	}

	if len(m.Locations) > 0 {
		fmt.Println()
		faintColor.Println("  Run `planit mapit <session-id>` to open the full route in your maps app.")
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
