// Package view turns widget state into display-ready values shared by the page
// and terminal shells. Source numbers are never modified; rounding happens here.
package view

import (
	"fmt"
	"math"
	"time"

	"github.com/yegors/wxwidget/internal/condition"
	"github.com/yegors/wxwidget/internal/visualcrossing"
	"github.com/yegors/wxwidget/internal/widget"
)

// Panel is the one body section visible at a time
type Panel string

const (
	PanelEmpty   Panel = "empty"
	PanelLoading Panel = "loading"
	PanelError   Panel = "error"
	PanelData    Panel = "data"
)

// ForecastDays is the number of days shown after today
const ForecastDays = 5

const (
	EmptyMessage   = "Search for a city to get the weather"
	LoadingMessage = "Loading..."
	placeholder    = "--"
)

var tabLabels = map[widget.Tab]string{
	widget.TabCurrent:  "Current",
	widget.TabForecast: "5-Day Forecast",
	widget.TabDetails:  "Details",
}

// Model is the complete render input for one widget
type Model struct {
	Panel     Panel           `json:"panel"`
	City      string          `json:"city"`
	Loading   bool            `json:"loading"`
	Theme     condition.Theme `json:"theme"`
	Tab       widget.Tab      `json:"tab"`
	Tabs      []TabView       `json:"tabs"`
	UpdatedAt string          `json:"updated_at,omitempty"`
	Message   string          `json:"message,omitempty"`
	Notice    string          `json:"notice,omitempty"`
	Current   *CurrentView    `json:"current,omitempty"`
	Forecast  []DayView       `json:"forecast,omitempty"`
	Details   *DetailsView    `json:"details,omitempty"`
}

// TabView is one entry in the tab bar
type TabView struct {
	Tab    widget.Tab `json:"tab"`
	Label  string     `json:"label"`
	Active bool       `json:"active"`
}

// CurrentView is the "current" tab
type CurrentView struct {
	Location   string         `json:"location"`
	Icon       condition.Icon `json:"icon"`
	Conditions string         `json:"conditions"`
	Temp       string         `json:"temp"`
	FeelsLike  string         `json:"feels_like"`
	High       string         `json:"high"`
	Low        string         `json:"low"`
	Humidity   string         `json:"humidity"`
	Wind       string         `json:"wind"`
	Precip     string         `json:"precip"`
}

// DayView is one forecast entry
type DayView struct {
	Date       string         `json:"date"`
	Weekday    string         `json:"weekday"`
	Icon       condition.Icon `json:"icon"`
	Conditions string         `json:"conditions"`
	High       string         `json:"high"`
	Low        string         `json:"low"`
}

// DetailsView is the "details" tab
type DetailsView struct {
	Sunrise    string `json:"sunrise"`
	Sunset     string `json:"sunset"`
	Visibility string `json:"visibility"`
	Pressure   string `json:"pressure"`
}

// Build derives the render model from widget state
func Build(s widget.State) Model {
	m := Model{
		City:   s.City,
		Theme:  s.Theme,
		Tab:    s.Tab,
		Notice: s.Notice,
	}
	for _, t := range widget.Tabs {
		m.Tabs = append(m.Tabs, TabView{Tab: t, Label: tabLabels[t], Active: t == s.Tab})
	}

	switch r := s.Request.(type) {
	case widget.Loading:
		m.Panel = PanelLoading
		m.Loading = true
		m.Message = LoadingMessage
	case widget.Failed:
		m.Panel = PanelError
		m.Message = r.Message
	case widget.Success:
		m.Panel = PanelData
		if !r.UpdatedAt.IsZero() {
			m.UpdatedAt = r.UpdatedAt.Format("15:04:05")
		}
		m.Current = BuildCurrent(r.Snapshot)
		m.Forecast = BuildForecast(r.Snapshot)
		m.Details = BuildDetails(r.Snapshot)
	default:
		m.Panel = PanelEmpty
		m.Message = EmptyMessage
	}

	return m
}

// BuildCurrent derives the current tab; a missing days[0] renders placeholders
func BuildCurrent(s *visualcrossing.Snapshot) *CurrentView {
	if s == nil {
		return nil
	}
	cc := currentOf(s)

	v := &CurrentView{
		Location:   s.Label(),
		Icon:       condition.IconForText(cc.Conditions),
		Conditions: cc.Conditions,
		Temp:       Celsius(cc.Temp),
		FeelsLike:  Celsius(cc.FeelsLike),
		Humidity:   Percent(cc.Humidity),
		Wind:       fmt.Sprintf("%d km/h", Round(cc.WindSpeed)),
		High:       placeholder,
		Low:        placeholder,
		Precip:     placeholder,
	}
	if today, ok := s.Today(); ok {
		v.High = Degrees(today.TempMax)
		v.Low = Degrees(today.TempMin)
		v.Precip = Percent(today.PrecipProb)
	}
	return v
}

// BuildForecast returns days[1..5], skipping today. Short or empty inputs yield fewer entries.
func BuildForecast(s *visualcrossing.Snapshot) []DayView {
	if s == nil || len(s.Days) < 2 {
		return []DayView{}
	}
	end := min(len(s.Days), ForecastDays+1)

	days := make([]DayView, 0, end-1)
	for _, d := range s.Days[1:end] {
		days = append(days, DayView{
			Date:       d.Datetime,
			Weekday:    Weekday(d.Datetime),
			Icon:       condition.IconForText(d.Conditions),
			Conditions: d.Conditions,
			High:       Degrees(d.TempMax),
			Low:        Degrees(d.TempMin),
		})
	}
	return days
}

// BuildDetails derives the details tab; sunrise and sunset are shown as provided
func BuildDetails(s *visualcrossing.Snapshot) *DetailsView {
	if s == nil {
		return nil
	}
	cc := currentOf(s)
	return &DetailsView{
		Sunrise:    orPlaceholder(cc.Sunrise),
		Sunset:     orPlaceholder(cc.Sunset),
		Visibility: fmt.Sprintf("%d km", Round(cc.Visibility)),
		Pressure:   fmt.Sprintf("%d hPa", Round(cc.Pressure)),
	}
}

func currentOf(s *visualcrossing.Snapshot) visualcrossing.CurrentConditions {
	if s.CurrentConditions == nil {
		return visualcrossing.CurrentConditions{}
	}
	return *s.CurrentConditions
}

// Round rounds half-up: 15.5 -> 16, -2.5 -> -2
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// Celsius formats a temperature as "16°C"
func Celsius(x float64) string {
	return fmt.Sprintf("%d°C", Round(x))
}

// Degrees formats a temperature as "16°"
func Degrees(x float64) string {
	return fmt.Sprintf("%d°", Round(x))
}

// Percent formats a percentage as "65%"
func Percent(x float64) string {
	return fmt.Sprintf("%d%%", Round(x))
}

// Weekday returns the short weekday of a YYYY-MM-DD date, or the input unchanged
func Weekday(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return t.Format("Mon")
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}
