package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yegors/wxwidget/internal/config"
	"github.com/yegors/wxwidget/internal/tui"
	"github.com/yegors/wxwidget/internal/visualcrossing"
	"github.com/yegors/wxwidget/pkg/logger"
)

// Version is injected at build time
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "Path to configuration file (optional - will search in configs/ and root directory)")
	city := flag.String("city", "", "City to show instead of widget.default_city")
	flag.Parse()

	cfg, err := config.LoadWithFallback(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if *city != "" {
		cfg.Widget.DefaultCity = *city
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// stdout belongs to the terminal renderer
	logFile := cfg.Logging.File
	if logFile == "" {
		logFile = "wxwidget-tui.log"
	}
	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   logFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting weather widget TUI",
		logger.String("version", Version),
		logger.String("city", cfg.Widget.DefaultCity))

	client := visualcrossing.NewClient(visualcrossing.Config{
		BaseURL:        cfg.VisualCrossing.APIBaseURL,
		APIKey:         cfg.VisualCrossing.APIKey,
		UnitGroup:      cfg.VisualCrossing.UnitGroup,
		Include:        cfg.VisualCrossing.Include,
		RequestTimeout: time.Duration(cfg.VisualCrossing.RequestTimeoutSeconds) * time.Second,
	}, log)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := tui.NewModel(ctx, tui.Config{
		DefaultCity:  cfg.Widget.DefaultCity,
		FetchOnStart: cfg.ShouldFetchOnStart(),
	}, client, nil, log)

	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		log.Error("TUI exited with error", logger.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log.Info("TUI stopped")
}
