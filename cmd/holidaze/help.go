package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/solveigbr/holidaze/pkg/domain"
)

func printHelp() {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f59e0b")).
		Bold(true).
		Render("H O L I D A Z E")

	tagline := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("Find a place. Book a stay. Host your own.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"holidaze", "Browse and book venues (interactive TUI)"},
		{"holidaze whoami", "Show the logged-in profile"},
		{"holidaze logout", "Clear your session"},
		{"holidaze --version", "Show version"},
		{"holidaze help", "You are here"},
	}

	fmt.Printf("\n  %s\n\n  %s\n\n  Commands:\n", title, tagline)
	for _, c := range commands {
		fmt.Printf("    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}

	env := descStyle.Render("HOLIDAZE_API_URL, HOLIDAZE_API_KEY")
	fmt.Printf("\n  Environment: %s\n\n", env)
}

func printWhoami(user *domain.Profile) {
	if user == nil {
		fmt.Println("Not logged in. Run holidaze and sign in.")
		return
	}
	nameStyle := lipgloss.NewStyle().Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	fmt.Printf("%s %s\n", nameStyle.Render(user.Name), dimStyle.Render("<"+user.Email+">"))
	if user.VenueManager {
		fmt.Println(lipgloss.NewStyle().Foreground(lipgloss.Color("#fbbf24")).Render("venue manager"))
	}
	if url := user.AvatarURL(); url != "" {
		fmt.Println(dimStyle.Render("avatar: " + url))
	}
}
