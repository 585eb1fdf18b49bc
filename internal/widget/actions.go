package widget

import (
	"time"

	"github.com/yegors/wxwidget/internal/visualcrossing"
)

// Action is an input to Reduce
type Action interface {
	action()
}

// SetCity replaces the query text
type SetCity struct {
	City string
}

// Submit starts a search for the current query (button press or Enter)
type Submit struct{}

// SelectTab switches the visible data view
type SelectTab struct {
	Tab Tab
}

// CopyLocation asks for the location label to be written to the clipboard
type CopyLocation struct{}

// ClipboardWritten reports the outcome of a clipboard write
type ClipboardWritten struct {
	Err error
}

// FetchSucceeded completes fetch Seq with a snapshot
type FetchSucceeded struct {
	Seq      uint64
	Snapshot *visualcrossing.Snapshot
	At       time.Time
}

// FetchFailed completes fetch Seq with an error
type FetchFailed struct {
	Seq uint64
	Err error
}

func (SetCity) action()          {}
func (Submit) action()           {}
func (SelectTab) action()        {}
func (CopyLocation) action()     {}
func (ClipboardWritten) action() {}
func (FetchSucceeded) action()   {}
func (FetchFailed) action()      {}

// Effect is work Reduce asks the caller to perform
type Effect interface {
	effect()
}

// StartFetch asks for one timeline request; its completion must carry Seq
type StartFetch struct {
	Seq  uint64
	City string
}

// WriteClipboard asks for text to be written to the clipboard
type WriteClipboard struct {
	Text string
}

func (StartFetch) effect()     {}
func (WriteClipboard) effect() {}
