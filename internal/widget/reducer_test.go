package widget

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yegors/wxwidget/internal/condition"
	"github.com/yegors/wxwidget/internal/visualcrossing"
)

func snapshotWith(conditions string, temp float64) *visualcrossing.Snapshot {
	return &visualcrossing.Snapshot{
		Address: "London",
		CurrentConditions: &visualcrossing.CurrentConditions{
			Conditions: conditions,
			Temp:       temp,
		},
	}
}

func submit(t *testing.T, s State) (State, StartFetch) {
	t.Helper()
	next, eff := Reduce(s, Submit{})
	fetch, ok := eff.(StartFetch)
	require.True(t, ok, "expected StartFetch, got %T", eff)
	return next, fetch
}

func TestNewStateIsIdle(t *testing.T) {
	s := NewState("London")
	assert.Equal(t, "idle", s.Request.Name())
	assert.Equal(t, TabCurrent, s.Tab)
	assert.Equal(t, condition.DefaultTheme, s.Theme)
	assert.Nil(t, s.Snapshot())
}

func TestSubmitStartsFetch(t *testing.T) {
	s, fetch := submit(t, NewState("  London "))
	assert.Equal(t, StartFetch{Seq: 1, City: "London"}, fetch)
	assert.True(t, s.IsLoading())
}

func TestSubmitEmptyCityIsNoop(t *testing.T) {
	s := NewState("")
	next, eff := Reduce(s, SetCity{City: "   "})
	assert.Nil(t, eff)

	next, eff = Reduce(next, Submit{})
	assert.Nil(t, eff)
	assert.Equal(t, "idle", next.Request.Name())
	assert.Zero(t, next.Seq)
}

func TestFetchSuccessStoresSnapshotAndTheme(t *testing.T) {
	s, fetch := submit(t, NewState("London"))
	at := time.Date(2024, 5, 6, 12, 0, 0, 0, time.UTC)

	s, eff := Reduce(s, FetchSucceeded{Seq: fetch.Seq, Snapshot: snapshotWith("Partially cloudy", 15.6), At: at})
	assert.Nil(t, eff)

	success, ok := s.Request.(Success)
	require.True(t, ok)
	assert.Equal(t, condition.CategoryCloud, success.Category)
	assert.Equal(t, at, success.UpdatedAt)
	assert.Equal(t, "bg-cloudy", s.Theme.Class)
	assert.InDelta(t, 15.6, s.Snapshot().CurrentConditions.Temp, 1e-9)
}

func TestFetchFailureClearsSnapshotAndResetsTheme(t *testing.T) {
	s, fetch := submit(t, NewState("London"))
	s, _ = Reduce(s, FetchSucceeded{Seq: fetch.Seq, Snapshot: snapshotWith("Rain", 10)})
	require.Equal(t, "bg-rain", s.Theme.Class)

	s, _ = Reduce(s, SetCity{City: "Nowhere12345"})
	s, fetch = submit(t, s)
	s, _ = Reduce(s, FetchFailed{Seq: fetch.Seq, Err: &visualcrossing.FetchError{Kind: visualcrossing.KindStatus, StatusCode: 404}})

	failed, ok := s.Request.(Failed)
	require.True(t, ok)
	assert.Equal(t, FetchErrorMessage, failed.Message)
	assert.Nil(t, s.Snapshot())
	assert.Equal(t, condition.DefaultTheme, s.Theme)
}

func TestStaleCompletionIsDropped(t *testing.T) {
	s, first := submit(t, NewState("Paris"))
	s, _ = Reduce(s, SetCity{City: "Oslo"})
	s, second := submit(t, s)
	require.Equal(t, uint64(2), second.Seq)

	// The later request resolves first.
	s, _ = Reduce(s, FetchSucceeded{Seq: second.Seq, Snapshot: snapshotWith("Snow", -3)})
	require.Equal(t, "bg-snow", s.Theme.Class)

	// The earlier one must not overwrite it, whether it succeeds or fails.
	after, _ := Reduce(s, FetchSucceeded{Seq: first.Seq, Snapshot: snapshotWith("Clear", 25)})
	assert.Equal(t, s, after)
	after, _ = Reduce(s, FetchFailed{Seq: first.Seq, Err: errors.New("boom")})
	assert.Equal(t, s, after)
}

func TestSupersededCompletionWhileLoadingIsDropped(t *testing.T) {
	s, first := submit(t, NewState("Paris"))
	s, _ = submit(t, s)

	after, _ := Reduce(s, FetchSucceeded{Seq: first.Seq, Snapshot: snapshotWith("Clear", 25)})
	assert.True(t, after.IsLoading())
}

func TestSelectTabHasNoEffect(t *testing.T) {
	s, fetch := submit(t, NewState("London"))
	s, _ = Reduce(s, FetchSucceeded{Seq: fetch.Seq, Snapshot: snapshotWith("Clear", 20)})

	for _, tab := range []Tab{TabForecast, TabDetails, TabCurrent} {
		var eff Effect
		s, eff = Reduce(s, SelectTab{Tab: tab})
		assert.Nil(t, eff)
		assert.Equal(t, tab, s.Tab)
		assert.Equal(t, "success", s.Request.Name())
	}

	s, _ = Reduce(s, SelectTab{Tab: Tab("radar")})
	assert.Equal(t, TabCurrent, s.Tab)
}

func TestCopyLocation(t *testing.T) {
	s := NewState("London")
	_, eff := Reduce(s, CopyLocation{})
	assert.Nil(t, eff, "nothing to copy before a successful fetch")

	s, fetch := submit(t, s)
	s, _ = Reduce(s, FetchSucceeded{Seq: fetch.Seq, Snapshot: snapshotWith("Clear", 20)})
	_, eff = Reduce(s, CopyLocation{})
	assert.Equal(t, WriteClipboard{Text: "London"}, eff)

	s, _ = Reduce(s, ClipboardWritten{})
	assert.Equal(t, "Location copied", s.Notice)
	s, _ = Reduce(s, ClipboardWritten{Err: errors.New("no clipboard")})
	assert.Equal(t, "Could not copy location", s.Notice)
}

func TestParseTab(t *testing.T) {
	tab, ok := ParseTab(" Forecast ")
	assert.True(t, ok)
	assert.Equal(t, TabForecast, tab)

	_, ok = ParseTab("radar")
	assert.False(t, ok)
}
