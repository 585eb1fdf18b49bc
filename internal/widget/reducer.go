package widget

import (
	"strings"

	"github.com/yegors/wxwidget/internal/condition"
	"github.com/yegors/wxwidget/internal/visualcrossing"
)

// Reduce applies one action to the state. The returned effect may be nil.
func Reduce(s State, a Action) (State, Effect) {
	switch a := a.(type) {
	case SetCity:
		s.City = a.City
		return s, nil

	case Submit:
		city := strings.TrimSpace(s.City)
		if city == "" {
			return s, nil
		}
		s.Seq++
		s.Notice = ""
		s.Request = Loading{Seq: s.Seq, City: city}
		return s, StartFetch{Seq: s.Seq, City: city}

	case SelectTab:
		if _, ok := ParseTab(string(a.Tab)); ok {
			s.Tab = a.Tab
		}
		return s, nil

	case FetchSucceeded:
		if !s.isCurrent(a.Seq) {
			return s, nil
		}
		if a.Snapshot == nil {
			return s.fail(), nil
		}
		category := conditionCategory(a.Snapshot)
		s.Request = Success{Snapshot: a.Snapshot, UpdatedAt: a.At, Category: category}
		s.Theme = condition.ThemeFor(category)
		return s, nil

	case FetchFailed:
		if !s.isCurrent(a.Seq) {
			return s, nil
		}
		return s.fail(), nil

	case CopyLocation:
		label := s.Snapshot().Label()
		if label == "" {
			return s, nil
		}
		return s, WriteClipboard{Text: label}

	case ClipboardWritten:
		if a.Err != nil {
			s.Notice = "Could not copy location"
		} else {
			s.Notice = "Location copied"
		}
		return s, nil
	}

	return s, nil
}

// isCurrent reports whether a completion belongs to the outstanding fetch.
// Completions of superseded fetches are dropped.
func (s State) isCurrent(seq uint64) bool {
	loading, ok := s.Request.(Loading)
	return ok && loading.Seq == seq && seq == s.Seq
}

func (s State) fail() State {
	s.Request = Failed{Message: FetchErrorMessage}
	s.Theme = condition.DefaultTheme
	return s
}

func conditionCategory(s *visualcrossing.Snapshot) condition.Category {
	if s == nil || s.CurrentConditions == nil {
		return condition.CategoryDefault
	}
	return condition.Classify(s.CurrentConditions.Conditions)
}
