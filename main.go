package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"cutui/backend"
	"cutui/config"
	"cutui/ui"
)

const (
	Version = "v0.01.00"
	License = "Apache-2.0"
)

func main() {
	// The demo ships its backend settings in a .env file; pick it up when
	// present so both halves read the same values.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: could not read .env: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize debug logging after config is loaded
	config.InitDebugLog(cfg.DataDir())

	client, err := backend.NewClient(cfg.Backend.URL)
	if err != nil {
		fmt.Printf("Invalid backend URL %q: %v\n", cfg.Backend.URL, err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		ui.NewAppView(cfg, client, Version, License),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running cutui: %v\n", err)
		os.Exit(1)
	}
}
