// cmd/waypoint/main.go
//
// Entry point for the waypoint TUI. Initializes the .waypoint folder in the
// current directory and hands control to bubbletea.

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"waypoint/internal/config"
	"waypoint/internal/tui"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}

	if err := config.InitWaypointDir(cwd); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing .waypoint directory: %v\n", err)
		os.Exit(1)
	}

	app, err := tui.NewApp(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting waypoint: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
