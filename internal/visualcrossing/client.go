package visualcrossing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yegors/wxwidget/pkg/logger"
	"resty.dev/v3"
)

const DefaultBaseURL = "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline"

// Config holds the timeline client settings
type Config struct {
	BaseURL        string
	APIKey         string
	UnitGroup      string // "metric" unless overridden
	Include        string // "current" unless overridden
	RequestTimeout time.Duration
}

// Client fetches timeline data from Visual Crossing
type Client struct {
	config Config
	http   *resty.Client
	logger *logger.Logger
}

// NewClient creates a new timeline client
func NewClient(config Config, log *logger.Logger) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.UnitGroup == "" {
		config.UnitGroup = "metric"
	}
	if config.Include == "" {
		config.Include = "current"
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(config.BaseURL, "/")).
		SetHeader("Accept", "application/json")
	if config.RequestTimeout > 0 {
		httpClient.SetTimeout(config.RequestTimeout)
	}

	return &Client{
		config: config,
		http:   httpClient,
		logger: log.Named("visualcrossing"),
	}
}

// Close releases idle connections held by the client
func (c *Client) Close() error {
	return c.http.Close()
}

// Timeline fetches current conditions and the daily forecast for a city.
// Exactly one request is made; there is no retry.
func (c *Client) Timeline(ctx context.Context, city string) (*Snapshot, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, &FetchError{Kind: KindShape, Err: errors.New("empty city")}
	}

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("city", city).
		SetQueryParams(map[string]string{
			"key":       c.config.APIKey,
			"unitGroup": c.config.UnitGroup,
			"include":   c.config.Include,
		}).
		Get("/{city}")
	if err != nil {
		if ctx.Err() != nil {
			c.logger.Debug("Timeline request canceled", logger.String("city", city))
			return nil, &FetchError{Kind: KindCanceled, Err: ctx.Err()}
		}
		c.logger.Warn("Timeline request failed",
			logger.String("city", city),
			logger.Error(err))
		return nil, &FetchError{Kind: KindNetwork, Err: err}
	}

	if !resp.IsSuccess() {
		c.logger.Warn("Timeline API returned non-OK status",
			logger.String("city", city),
			logger.Int("status_code", resp.StatusCode()),
			logger.String("body", truncate(resp.String(), 200)))
		return nil, &FetchError{Kind: KindStatus, StatusCode: resp.StatusCode()}
	}

	snapshot, err := decode(resp.Bytes())
	if err != nil {
		c.logger.Warn("Failed to decode timeline response",
			logger.String("city", city),
			logger.Error(err))
		return nil, err
	}

	c.logger.Debug("Timeline fetched",
		logger.String("city", city),
		logger.String("address", snapshot.Address),
		logger.Int("days", len(snapshot.Days)),
		logger.Duration("duration", time.Since(start)))

	return snapshot, nil
}

func decode(body []byte) (*Snapshot, error) {
	var snapshot Snapshot
	if err := json.Unmarshal(body, &snapshot); err != nil {
		return nil, &FetchError{Kind: KindDecode, Err: err}
	}
	if snapshot.CurrentConditions == nil {
		return nil, &FetchError{Kind: KindShape, Err: fmt.Errorf("response has no currentConditions")}
	}
	return &snapshot, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
