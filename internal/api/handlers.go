package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/yegors/wxwidget/internal/config"
	"github.com/yegors/wxwidget/internal/view"
	"github.com/yegors/wxwidget/internal/widget"
	"github.com/yegors/wxwidget/pkg/logger"
)

// SessionCounter reports the number of open widget sessions
type SessionCounter interface {
	SessionCount() int
}

// Handler contains the API handlers
type Handler struct {
	fetcher  widget.Fetcher
	recorder widget.Recorder
	sessions SessionCounter
	config   *config.Config
	logger   *logger.Logger
	started  time.Time
}

// NewHandler creates a new API handler. recorder and sessions may be nil.
func NewHandler(fetcher widget.Fetcher, recorder widget.Recorder, sessions SessionCounter, config *config.Config, logger *logger.Logger) *Handler {
	return &Handler{
		fetcher:  fetcher,
		recorder: recorder,
		sessions: sessions,
		config:   config,
		logger:   logger.Named("api-handler"),
		started:  time.Now(),
	}
}

// GetHealth returns the health status of the API
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":         "ok",
		"uptime_seconds": int(time.Since(h.started).Seconds()),
	}
	if h.sessions != nil {
		response["sessions"] = h.sessions.SessionCount()
	}

	WriteJSON(w, http.StatusOK, response)
}

// GetConfig returns the public configuration. The API key is never included.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	publicConfig := map[string]any{
		"widget": map[string]any{
			"default_city":   h.config.Widget.DefaultCity,
			"fetch_on_start": h.config.ShouldFetchOnStart(),
			"tabs":           widget.Tabs,
		},
		"visual_crossing": map[string]any{
			"unit_group": h.config.VisualCrossing.UnitGroup,
			"include":    h.config.VisualCrossing.Include,
		},
		"metrics": map[string]any{
			"enabled": h.config.Metrics.Enabled,
		},
	}

	WriteJSON(w, http.StatusOK, publicConfig)
}

// weatherResponse is the one-shot lookup result
type weatherResponse struct {
	City         string     `json:"city"`
	RequestState string     `json:"request_state"`
	Theme        string     `json:"theme"`
	View         view.Model `json:"view"`
}

// GetWeather runs one search outside any widget session and returns the
// derived presentation. An optional tab parameter selects the active tab.
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "city is required"})
		return
	}

	state := widget.NewState(city)
	if name := r.URL.Query().Get("tab"); name != "" {
		tab, ok := widget.ParseTab(name)
		if !ok {
			WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown tab"})
			return
		}
		state, _ = widget.Reduce(state, widget.SelectTab{Tab: tab})
	}

	state, eff := widget.Reduce(state, widget.Submit{})
	start, ok := eff.(widget.StartFetch)
	if !ok {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "city is required"})
		return
	}

	coord := widget.NewCoordinator(h.fetcher, h.recorder, h.logger)
	state, _ = widget.Reduce(state, coord.Command(r.Context(), start)())

	response := weatherResponse{
		City:         city,
		RequestState: state.Request.Name(),
		Theme:        state.Theme.Class,
		View:         view.Build(state),
	}

	if _, failed := state.Request.(widget.Failed); failed {
		WriteJSON(w, http.StatusBadGateway, response)
		return
	}

	WriteJSON(w, http.StatusOK, response)
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
