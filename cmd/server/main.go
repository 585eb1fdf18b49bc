package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/yegors/wxwidget/internal/api"
	"github.com/yegors/wxwidget/internal/config"
	"github.com/yegors/wxwidget/internal/metrics"
	"github.com/yegors/wxwidget/internal/templating"
	"github.com/yegors/wxwidget/internal/visualcrossing"
	"github.com/yegors/wxwidget/internal/websocket"
	"github.com/yegors/wxwidget/pkg/logger"
)

var (
	// Version is injected at build time
	Version = "dev"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (optional - will search in configs/ and root directory)")
	flag.Parse()

	cfg, err := config.LoadWithFallback(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateServer(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting weather widget server",
		logger.String("version", Version),
		logger.String("config_path", *configPath),
		logger.String("default_city", cfg.Widget.DefaultCity),
	)

	client := visualcrossing.NewClient(visualcrossing.Config{
		BaseURL:        cfg.VisualCrossing.APIBaseURL,
		APIKey:         cfg.VisualCrossing.APIKey,
		UnitGroup:      cfg.VisualCrossing.UnitGroup,
		Include:        cfg.VisualCrossing.Include,
		RequestTimeout: time.Duration(cfg.VisualCrossing.RequestTimeoutSeconds) * time.Second,
	}, log)
	defer client.Close()

	m := metrics.New()

	engine, err := templating.NewEngine(log)
	if err != nil {
		log.Error("Failed to create template engine", logger.Error(err))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wsServer := websocket.NewServer(cfg.Server.CORSAllowedOrigins, log)
	sessions := websocket.NewSessionManager(websocket.SessionConfig{
		DefaultCity:  cfg.Widget.DefaultCity,
		FetchOnStart: cfg.ShouldFetchOnStart(),
	}, client, m, m, engine, log)
	wsServer.SetMessageHandler(sessions)

	wsDone := make(chan struct{})
	go func() {
		defer close(wsDone)
		wsServer.Run(ctx)
	}()

	handler := api.NewHandler(client, m, sessions, cfg, log)
	router := api.NewRouter(handler, wsServer.HandleConnection, m.Handler(), cfg, log)
	routes := router.Routes()

	var servers []*http.Server
	allPorts := []int{cfg.Server.Port}
	if len(cfg.Server.AdditionalPorts) > 0 {
		allPorts = append(allPorts, cfg.Server.AdditionalPorts...)
	}

	log.Info("Configured listener ports", logger.Any("ports", allPorts))

	for _, port := range allPorts {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, port)
		server := &http.Server{
			Addr:         addr,
			Handler:      routes,
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSecs) * time.Second,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSecs) * time.Second,
			IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSecs) * time.Second,
		}
		servers = append(servers, server)

		go func(s *http.Server) {
			log.Info("Starting HTTP server", logger.String("addr", s.Addr))
			if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("HTTP server error on startup", logger.String("addr", s.Addr), logger.Error(err))
			}
		}(server)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutting down server...")

	// Closing the hub ends every widget session and cancels in-flight fetches
	cancel()
	<-wsDone
	log.Info("WebSocket sessions closed.")

	log.Info("Shutting down HTTP servers...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)
		go func(srv *http.Server) {
			defer wg.Done()
			log.Info("Attempting to shutdown HTTP server", logger.String("addr", srv.Addr))
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error("HTTP server shutdown error", logger.String("addr", srv.Addr), logger.Error(err))
			} else {
				log.Info("HTTP server shutdown complete", logger.String("addr", srv.Addr))
			}
		}(s)
	}
	wg.Wait()

	log.Info("Server fully stopped")
}
