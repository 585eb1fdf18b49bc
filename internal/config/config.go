package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// APIKeyEnv overrides visual_crossing.api_key when set
const APIKeyEnv = "WXWIDGET_API_KEY"

// Config represents the main application configuration structure
// containing all configuration sections
type Config struct {
	Server         ServerConfig         `toml:"server"`          // HTTP server settings (page shell only)
	Logging        LoggingConfig        `toml:"logging"`         // Application logging settings
	VisualCrossing VisualCrossingConfig `toml:"visual_crossing"` // Weather API settings
	Widget         WidgetConfig         `toml:"widget"`          // Widget behaviour
	Metrics        MetricsConfig        `toml:"metrics"`         // Prometheus exposition
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port               int      `toml:"port"`                  // Primary HTTP port for the server
	Host               string   `toml:"host"`                  // Host address to bind to (e.g., 127.0.0.1 for localhost only, 0.0.0.0 for all interfaces)
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`  // List of origins allowed for CORS requests (use ["*"] for all origins)
	ReadTimeoutSecs    int      `toml:"read_timeout_seconds"`  // Maximum duration for reading the entire request (0 = no timeout)
	WriteTimeoutSecs   int      `toml:"write_timeout_seconds"` // Maximum duration for writing the response (0 = no timeout)
	IdleTimeoutSecs    int      `toml:"idle_timeout_seconds"`  // Maximum duration to wait for the next request when keep-alives are enabled
	AdditionalPorts    []int    `toml:"additional_ports"`      // Additional HTTP ports to listen on
	StaticFilesDir     string   `toml:"static_files_dir"`      // Directory holding the page shell (e.g., "www")
}

// LoggingConfig contains application logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`  // Log level: "debug", "info", "warn", or "error"
	Format string `toml:"format"` // Log format: "json" (structured) or "console" (human-readable)
	File   string `toml:"file"`   // Log file; required by the terminal shell, optional for the server
}

// VisualCrossingConfig contains timeline API settings
type VisualCrossingConfig struct {
	APIBaseURL            string `toml:"api_base_url"`            // Timeline endpoint; the city is appended as a path segment
	APIKey                string `toml:"api_key"`                 // API key; WXWIDGET_API_KEY takes precedence
	UnitGroup             string `toml:"unit_group"`              // Unit group sent with every request (display assumes "metric")
	Include               string `toml:"include"`                 // Sections to include in the response
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"` // HTTP client timeout for one request
}

// WidgetConfig controls widget behaviour
type WidgetConfig struct {
	DefaultCity  string `toml:"default_city"`   // City pre-filled in the input
	FetchOnStart *bool  `toml:"fetch_on_start"` // Search for the default city when a widget opens (default true)
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `toml:"enabled"` // Expose metrics
	Path    string `toml:"path"`    // Route for the exposition handler
}

// Default returns a configuration with every default applied
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads a configuration file and applies defaults and env overrides
func Load(path string) (*Config, error) {
	var config Config

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

// LoadWithFallback tries the preferred path first, then the usual locations.
// When no file exists anywhere, defaults are used.
func LoadWithFallback(preferredPath string) (*Config, error) {
	searchPaths := []string{
		preferredPath,         // User-specified path (if provided)
		"configs/config.toml", // configs/ folder
		"config.toml",         // Root directory
	}

	uniquePaths := make([]string, 0, len(searchPaths))
	seen := make(map[string]bool)
	for _, path := range searchPaths {
		if path != "" && !seen[path] {
			uniquePaths = append(uniquePaths, path)
			seen[path] = true
		}
	}

	for _, path := range uniquePaths {
		if _, err := os.Stat(path); err == nil {
			config, err := Load(path)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
			}
			return config, nil
		}
	}

	if preferredPath != "" {
		return nil, fmt.Errorf("config file not found: %s", preferredPath)
	}

	return Default(), nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if len(c.Server.CORSAllowedOrigins) == 0 {
		c.Server.CORSAllowedOrigins = []string{"*"}
	}
	if c.Server.ReadTimeoutSecs == 0 {
		c.Server.ReadTimeoutSecs = 15
	}
	if c.Server.IdleTimeoutSecs == 0 {
		c.Server.IdleTimeoutSecs = 60
	}
	if c.Server.StaticFilesDir == "" {
		c.Server.StaticFilesDir = "www"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}

	if c.VisualCrossing.APIBaseURL == "" {
		c.VisualCrossing.APIBaseURL = "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline"
	}
	if c.VisualCrossing.UnitGroup == "" {
		c.VisualCrossing.UnitGroup = "metric"
	}
	if c.VisualCrossing.Include == "" {
		c.VisualCrossing.Include = "current"
	}
	if c.VisualCrossing.RequestTimeoutSeconds == 0 {
		c.VisualCrossing.RequestTimeoutSeconds = 10
	}
	if key := strings.TrimSpace(os.Getenv(APIKeyEnv)); key != "" {
		c.VisualCrossing.APIKey = key
	}

	if c.Widget.DefaultCity == "" {
		c.Widget.DefaultCity = "London"
	}
	if c.Widget.FetchOnStart == nil {
		fetch := true
		c.Widget.FetchOnStart = &fetch
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

// ShouldFetchOnStart reports whether a new widget searches for the default city immediately
func (c *Config) ShouldFetchOnStart() bool {
	return c.Widget.FetchOnStart == nil || *c.Widget.FetchOnStart
}

// Validate checks the sections shared by every shell
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	return c.ValidateVisualCrossing()
}

// ValidateVisualCrossing checks the weather API section
func (c *Config) ValidateVisualCrossing() error {
	if c.VisualCrossing.APIKey == "" {
		return fmt.Errorf("visual_crossing.api_key is required (or set %s)", APIKeyEnv)
	}

	if !strings.HasPrefix(c.VisualCrossing.APIBaseURL, "http://") && !strings.HasPrefix(c.VisualCrossing.APIBaseURL, "https://") {
		return fmt.Errorf("invalid visual_crossing.api_base_url: %s", c.VisualCrossing.APIBaseURL)
	}

	if c.VisualCrossing.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("visual_crossing.request_timeout_seconds must be 0 or greater: %d", c.VisualCrossing.RequestTimeoutSeconds)
	}

	return nil
}

// ValidateServer checks the page shell's HTTP settings
func (c *Config) ValidateServer() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	portsSeen := make(map[int]bool)
	portsSeen[c.Server.Port] = true
	for _, p := range c.Server.AdditionalPorts {
		if p <= 0 || p > 65535 {
			return fmt.Errorf("invalid additional server port: %d", p)
		}
		if portsSeen[p] {
			return fmt.Errorf("duplicate port configured: %d (primary or additional)", p)
		}
		portsSeen[p] = true
	}

	if _, err := os.Stat(c.Server.StaticFilesDir); os.IsNotExist(err) {
		return fmt.Errorf("static files directory does not exist: %s", c.Server.StaticFilesDir)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with '/': %s", c.Metrics.Path)
	}

	return nil
}
