// Package widget holds the weather widget's state and the reducer that drives it.
//
// All user input and fetch completions are expressed as Actions. Reduce is pure:
// it returns the next State plus at most one Effect for the caller to run.
package widget

import (
	"strings"
	"time"

	"github.com/yegors/wxwidget/internal/condition"
	"github.com/yegors/wxwidget/internal/visualcrossing"
)

// FetchErrorMessage is the only error text users ever see
const FetchErrorMessage = "City not found or API error. Please try again."

// Tab is one of the three mutually exclusive data views
type Tab string

const (
	TabCurrent  Tab = "current"
	TabForecast Tab = "forecast"
	TabDetails  Tab = "details"
)

// Tabs lists the tabs in display order
var Tabs = []Tab{TabCurrent, TabForecast, TabDetails}

// ParseTab validates a tab name
func ParseTab(s string) (Tab, bool) {
	for _, t := range Tabs {
		if string(t) == strings.ToLower(strings.TrimSpace(s)) {
			return t, true
		}
	}
	return "", false
}

// RequestState is a closed set: Idle, Loading, Success or Failed
type RequestState interface {
	Name() string
	requestState()
}

// Idle is the state before the first search
type Idle struct{}

// Loading means a fetch with sequence Seq is outstanding
type Loading struct {
	Seq  uint64
	City string
}

// Success holds the only snapshot the widget keeps
type Success struct {
	Snapshot  *visualcrossing.Snapshot
	UpdatedAt time.Time
	Category  condition.Category
}

// Failed means the latest fetch failed; no snapshot is kept
type Failed struct {
	Message string
}

func (Idle) Name() string    { return "idle" }
func (Loading) Name() string { return "loading" }
func (Success) Name() string { return "success" }
func (Failed) Name() string  { return "error" }

func (Idle) requestState()    {}
func (Loading) requestState() {}
func (Success) requestState() {}
func (Failed) requestState()  {}

// State is everything one widget instance knows
type State struct {
	City    string
	Request RequestState
	Tab     Tab
	Theme   condition.Theme
	Seq     uint64 // Sequence of the most recently issued fetch
	Notice  string // Transient status line, e.g. clipboard feedback
}

// NewState returns an idle widget with the given initial city
func NewState(city string) State {
	return State{
		City:    city,
		Request: Idle{},
		Tab:     TabCurrent,
		Theme:   condition.DefaultTheme,
	}
}

// Snapshot returns the held snapshot, or nil unless the last fetch succeeded
func (s State) Snapshot() *visualcrossing.Snapshot {
	if success, ok := s.Request.(Success); ok {
		return success.Snapshot
	}
	return nil
}

// IsLoading reports whether a fetch is outstanding
func (s State) IsLoading() bool {
	_, loading := s.Request.(Loading)
	return loading
}
