package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"aida-console/internal/config"
	"aida-console/internal/gateway"
	"aida-console/internal/logger"
	"aida-console/internal/trigger"
	"aida-console/internal/ui"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogFile, cfg.LogLevel)

	triggers, err := trigger.LoadMatcher(cfg.TriggersFile)
	if err != nil {
		log.Fatalf("failed to load trigger keywords: %v", err)
	}

	client := gateway.NewClient(cfg.GatewayURL, cfg.RequestTimeout)
	app := ui.New(client, ui.Options{
		Triggers:       triggers,
		RequestTimeout: cfg.RequestTimeout,
		RefreshDelay:   cfg.RefreshDelay,
	})

	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "aida-console: %v\n", err)
		os.Exit(1)
	}
}
