package view

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yegors/wxwidget/internal/visualcrossing"
	"github.com/yegors/wxwidget/internal/widget"
)

func londonSnapshot(days int) *visualcrossing.Snapshot {
	s := &visualcrossing.Snapshot{
		Address: "London",
		CurrentConditions: &visualcrossing.CurrentConditions{
			Conditions: "Partially cloudy",
			Temp:       15.6,
			FeelsLike:  14.5,
			Humidity:   71.3,
			WindSpeed:  13.2,
			Sunrise:    "06:12:45",
			Sunset:     "19:45:10",
			Visibility: 9.7,
			Pressure:   1015.2,
		},
	}
	start := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC) // Monday
	for i := 0; i < days; i++ {
		s.Days = append(s.Days, visualcrossing.Day{
			Datetime:   start.AddDate(0, 0, i).Format(time.DateOnly),
			TempMax:    17.5 + float64(i),
			TempMin:    9.4,
			Conditions: "Rain",
			PrecipProb: 64.5,
		})
	}
	return s
}

func successState(s *visualcrossing.Snapshot) widget.State {
	st := widget.NewState("London")
	st, eff := widget.Reduce(st, widget.Submit{})
	fetch := eff.(widget.StartFetch)
	st, _ = widget.Reduce(st, widget.FetchSucceeded{
		Seq:      fetch.Seq,
		Snapshot: s,
		At:       time.Date(2024, 5, 6, 9, 30, 15, 0, time.Local),
	})
	return st
}

func TestRound(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{15.6, 16},
		{15.5, 16},
		{15.49, 15},
		{-2.5, -2},
		{-2.6, -3},
		{0, 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, Round(tt.in))
		})
	}
}

func TestLondonScenario(t *testing.T) {
	m := Build(successState(londonSnapshot(7)))

	require.Equal(t, PanelData, m.Panel)
	require.NotNil(t, m.Current)
	assert.Equal(t, "16°C", m.Current.Temp)
	assert.Equal(t, "15°C", m.Current.FeelsLike)
	assert.Equal(t, "London", m.Current.Location)
	assert.Equal(t, "cloud", m.Current.Icon.Name)
	assert.Equal(t, "bg-cloudy", m.Theme.Class)
	assert.Equal(t, "18°", m.Current.High)
	assert.Equal(t, "9°", m.Current.Low)
	assert.Equal(t, "71%", m.Current.Humidity)
	assert.Equal(t, "13 km/h", m.Current.Wind)
	assert.Equal(t, "65%", m.Current.Precip)
	assert.Equal(t, "09:30:15", m.UpdatedAt)
}

func TestSourceValuesAreNotRounded(t *testing.T) {
	s := londonSnapshot(1)
	Build(successState(s))
	assert.InDelta(t, 15.6, s.CurrentConditions.Temp, 1e-9)
}

func TestForecastSkipsTodayAndCapsAtFive(t *testing.T) {
	m := Build(successState(londonSnapshot(15)))
	require.Len(t, m.Forecast, ForecastDays)

	assert.Equal(t, "2024-05-07", m.Forecast[0].Date)
	assert.Equal(t, "Tue", m.Forecast[0].Weekday)
	assert.Equal(t, "Sat", m.Forecast[4].Weekday)
	assert.Equal(t, "19°", m.Forecast[0].High)
	assert.Equal(t, "9°", m.Forecast[0].Low)
	assert.Equal(t, "cloud-rain", m.Forecast[0].Icon.Name)
}

func TestForecastShortInputs(t *testing.T) {
	for days, want := range map[int]int{0: 0, 1: 0, 2: 1, 4: 3, 6: 5} {
		t.Run(fmt.Sprintf("%d days", days), func(t *testing.T) {
			m := Build(successState(londonSnapshot(days)))
			assert.Len(t, m.Forecast, want)
		})
	}
}

func TestCurrentWithoutDays(t *testing.T) {
	m := Build(successState(londonSnapshot(0)))
	require.NotNil(t, m.Current)
	assert.Equal(t, "--", m.Current.High)
	assert.Equal(t, "--", m.Current.Low)
	assert.Equal(t, "--", m.Current.Precip)
}

func TestDetails(t *testing.T) {
	m := Build(successState(londonSnapshot(1)))
	require.NotNil(t, m.Details)
	assert.Equal(t, "06:12:45", m.Details.Sunrise)
	assert.Equal(t, "19:45:10", m.Details.Sunset)
	assert.Equal(t, "10 km", m.Details.Visibility)
	assert.Equal(t, "1015 hPa", m.Details.Pressure)
}

func TestExactlyOnePanel(t *testing.T) {
	idle := widget.NewState("London")
	assert.Equal(t, PanelEmpty, Build(idle).Panel)
	assert.Equal(t, EmptyMessage, Build(idle).Message)

	loading, _ := widget.Reduce(idle, widget.Submit{})
	m := Build(loading)
	assert.Equal(t, PanelLoading, m.Panel)
	assert.True(t, m.Loading)
	assert.Nil(t, m.Current)

	failed, _ := widget.Reduce(loading, widget.FetchFailed{Seq: loading.Seq})
	m = Build(failed)
	assert.Equal(t, PanelError, m.Panel)
	assert.Equal(t, widget.FetchErrorMessage, m.Message)
	assert.Nil(t, m.Current)
	assert.Nil(t, m.Details)
	assert.Empty(t, m.Forecast)
	assert.Equal(t, "bg-default", m.Theme.Class)
}

func TestTabsMarkActive(t *testing.T) {
	st, _ := widget.Reduce(successState(londonSnapshot(3)), widget.SelectTab{Tab: widget.TabDetails})
	m := Build(st)

	require.Len(t, m.Tabs, 3)
	assert.Equal(t, "5-Day Forecast", m.Tabs[1].Label)
	for _, tab := range m.Tabs {
		assert.Equal(t, tab.Tab == widget.TabDetails, tab.Active)
	}
}

func TestWeekdayFallsBackToInput(t *testing.T) {
	assert.Equal(t, "tomorrow", Weekday("tomorrow"))
	assert.Equal(t, "Mon", Weekday("2024-05-06"))
}
