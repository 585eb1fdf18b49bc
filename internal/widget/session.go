package widget

import (
	"context"
	"sync"

	"github.com/yegors/wxwidget/pkg/logger"
)

// PublishFunc is called from the session loop after every action, with the
// new state and the effect the page shell has to carry out (nil or WriteClipboard).
type PublishFunc func(state State, eff Effect)

// Session owns one widget state. A single goroutine (Run) applies actions in
// order, so state is never shared.
type Session struct {
	ID string

	state   State
	actions chan Action
	coord   *Coordinator
	publish PublishFunc
	logger  *logger.Logger

	done     chan struct{}
	doneOnce sync.Once
}

// NewSession creates a session. Run must be called to start processing.
func NewSession(id string, initial State, coord *Coordinator, publish PublishFunc, log *logger.Logger) *Session {
	return &Session{
		ID:      id,
		state:   initial,
		actions: make(chan Action, 32),
		coord:   coord,
		publish: publish,
		logger:  log.Named("widget-session").With(logger.String("session_id", id)),
		done:    make(chan struct{}),
	}
}

// Dispatch queues an action. It returns false once the session has stopped.
func (s *Session) Dispatch(a Action) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.actions <- a:
		return true
	case <-s.done:
		return false
	}
}

// Run processes actions until ctx is canceled. The initial state is published first.
func (s *Session) Run(ctx context.Context) {
	defer s.stop()

	s.publish(s.state, nil)

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Widget session stopped")
			return
		case a := <-s.actions:
			s.apply(ctx, a)
		}
	}
}

func (s *Session) apply(ctx context.Context, a Action) {
	next, eff := Reduce(s.state, a)
	s.state = next

	switch e := eff.(type) {
	case StartFetch:
		s.logger.Debug("Starting fetch",
			logger.Uint64("seq", e.Seq),
			logger.String("city", e.City))
		s.coord.Start(ctx, e, func(done Action) { s.Dispatch(done) })
		s.publish(s.state, nil)
	default:
		s.publish(s.state, eff)
	}
}

func (s *Session) stop() {
	s.doneOnce.Do(func() {
		close(s.done)
		s.coord.Stop()
	})
}
