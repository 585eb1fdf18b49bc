package tui

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yegors/wxwidget/internal/visualcrossing"
	"github.com/yegors/wxwidget/internal/widget"
	"github.com/yegors/wxwidget/pkg/logger"
)

type stubFetcher struct {
	mu    sync.Mutex
	calls []string
}

func (f *stubFetcher) Timeline(_ context.Context, city string) (*visualcrossing.Snapshot, error) {
	f.mu.Lock()
	f.calls = append(f.calls, city)
	f.mu.Unlock()

	if city != "London" {
		return nil, &visualcrossing.FetchError{Kind: visualcrossing.KindStatus, StatusCode: http.StatusNotFound}
	}
	return &visualcrossing.Snapshot{
		Address: "London",
		CurrentConditions: &visualcrossing.CurrentConditions{
			Conditions: "Clear",
			Temp:       15.6,
			Sunrise:    "05:12:00",
		},
		Days: []visualcrossing.Day{
			{Datetime: "2024-05-06", TempMax: 18, TempMin: 9},
			{Datetime: "2024-05-07", TempMax: 19, TempMin: 10},
		},
	}, nil
}

func newModel(t *testing.T, clip func(string) error) (Model, *stubFetcher) {
	t.Helper()
	fetcher := &stubFetcher{}
	m := NewModel(context.Background(), Config{DefaultCity: "London", Clipboard: clip}, fetcher, nil, logger.NewNop())
	return m, fetcher
}

// send runs msg through Update and then drains the resulting commands
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	for cmd != nil {
		out := cmd()
		if _, quit := out.(tea.QuitMsg); quit {
			return m
		}
		next, cmd = m.Update(out)
		m = next.(Model)
	}
	return m
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestInitWithoutFetchOnStart(t *testing.T) {
	m, _ := newModel(t, nil)
	assert.Nil(t, m.Init())
	assert.Equal(t, "idle", m.State().Request.Name())
	assert.Contains(t, m.View(), "Search for a city")
}

func TestInitFetchOnStart(t *testing.T) {
	fetcher := &stubFetcher{}
	m := NewModel(context.Background(), Config{DefaultCity: "London", FetchOnStart: true}, fetcher, nil, logger.NewNop())

	cmd := m.Init()
	require.NotNil(t, cmd)
	m = send(t, m, cmd())

	assert.Equal(t, "success", m.State().Request.Name())
	assert.Equal(t, []string{"London"}, fetcher.calls)
}

func TestEnterFetchesAndRenders(t *testing.T) {
	m, fetcher := newModel(t, nil)

	m = send(t, m, key(tea.KeyEnter))

	require.Equal(t, "success", m.State().Request.Name())
	assert.Equal(t, "bg-sunny", m.State().Theme.Class)
	assert.Contains(t, m.View(), "16°C")
	assert.Len(t, fetcher.calls, 1)
}

func TestTypingEditsCity(t *testing.T) {
	m, fetcher := newModel(t, nil)

	for i := 0; i < len("London"); i++ {
		m = send(t, m, key(tea.KeyBackspace))
	}
	assert.Equal(t, "", m.State().City)

	m = send(t, m, runes("Nowhere"))
	m = send(t, m, runes("12345"))
	assert.Equal(t, "Nowhere12345", m.State().City)
	assert.Empty(t, fetcher.calls, "typing never fetches")

	m = send(t, m, key(tea.KeyEnter))
	assert.Equal(t, "error", m.State().Request.Name())
	assert.Equal(t, "bg-default", m.State().Theme.Class)
	assert.Contains(t, m.View(), widget.FetchErrorMessage)
}

func TestEmptyCityEnterIsNoop(t *testing.T) {
	m, fetcher := newModel(t, nil)
	m = send(t, m, key(tea.KeyCtrlU))
	m = send(t, m, key(tea.KeySpace))

	m = send(t, m, key(tea.KeyEnter))
	assert.Equal(t, "idle", m.State().Request.Name())
	assert.Empty(t, fetcher.calls)
}

func TestTabSwitchingDoesNotFetch(t *testing.T) {
	m, fetcher := newModel(t, nil)
	m = send(t, m, key(tea.KeyEnter))

	m = send(t, m, key(tea.KeyTab))
	assert.Equal(t, widget.TabForecast, m.State().Tab)
	assert.Contains(t, m.View(), "Tue")

	m = send(t, m, key(tea.KeyShiftTab))
	m = send(t, m, key(tea.KeyShiftTab))
	assert.Equal(t, widget.TabDetails, m.State().Tab)
	assert.Contains(t, m.View(), "05:12:00")

	m = send(t, m, key(tea.KeyEsc))
	m = send(t, m, runes("1"))
	assert.Equal(t, widget.TabCurrent, m.State().Tab)
	assert.Equal(t, "London", m.State().City, "digits go to tabs when the input is unfocused")

	assert.Len(t, fetcher.calls, 1)
}

func TestCopyLocation(t *testing.T) {
	var copied string
	m, _ := newModel(t, func(text string) error {
		copied = text
		return nil
	})
	m = send(t, m, key(tea.KeyEnter))
	m = send(t, m, key(tea.KeyEsc))

	m = send(t, m, runes("c"))
	assert.Equal(t, "London", copied)
	assert.Equal(t, "Location copied", m.State().Notice)
}

func TestCopyLocationFailure(t *testing.T) {
	m, _ := newModel(t, func(string) error { return errors.New("no clipboard") })
	m = send(t, m, key(tea.KeyEnter))
	m = send(t, m, key(tea.KeyEsc))

	m = send(t, m, runes("c"))
	assert.Equal(t, "Could not copy location", m.State().Notice)
	assert.Equal(t, "success", m.State().Request.Name(), "clipboard errors never become fetch errors")
}

func TestShiftTabWraps(t *testing.T) {
	assert.Equal(t, widget.TabDetails, shiftTab(widget.TabCurrent, -1))
	assert.Equal(t, widget.TabCurrent, shiftTab(widget.TabDetails, 1))
	assert.Equal(t, widget.TabCurrent, shiftTab(widget.Tab("bogus"), 1))
}
