package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"vetchat/internal/api"
	"vetchat/internal/chat"
	"vetchat/internal/config"
	"vetchat/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	serverURL := flag.String("server", cfg.Server.URL, "vetchatd base URL")
	flag.Parse()

	client := api.NewClient(*serverURL)
	session := chat.NewSession(client)

	p := tea.NewProgram(ui.New(client, session), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
