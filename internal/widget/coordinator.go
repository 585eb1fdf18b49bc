package widget

import (
	"context"
	"sync"
	"time"

	"github.com/yegors/wxwidget/internal/visualcrossing"
	"github.com/yegors/wxwidget/pkg/logger"
)

// Fetcher performs a single timeline request
type Fetcher interface {
	Timeline(ctx context.Context, city string) (*visualcrossing.Snapshot, error)
}

// Recorder receives fetch outcomes; the metrics package implements it
type Recorder interface {
	ObserveFetch(outcome string, duration time.Duration)
	ObserveCategory(category string)
}

// Coordinator runs StartFetch effects for one widget. Starting a fetch cancels
// the one it supersedes, so at most one request per widget is in flight.
type Coordinator struct {
	fetcher  Fetcher
	recorder Recorder
	logger   *logger.Logger
	now      func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewCoordinator creates a fetch coordinator. recorder may be nil.
func NewCoordinator(fetcher Fetcher, recorder Recorder, log *logger.Logger) *Coordinator {
	return &Coordinator{
		fetcher:  fetcher,
		recorder: recorder,
		logger:   log.Named("fetch-coordinator"),
		now:      time.Now,
	}
}

// Command prepares a fetch and returns a function that performs it and
// yields the completion action. Preparing cancels any earlier fetch.
func (c *Coordinator) Command(parent context.Context, eff StartFetch) func() Action {
	ctx, cancel := context.WithCancel(parent)

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = cancel
	c.mu.Unlock()

	return func() Action {
		defer cancel()
		return c.fetch(ctx, eff)
	}
}

// Start runs the fetch on its own goroutine and hands the completion to deliver
func (c *Coordinator) Start(parent context.Context, eff StartFetch, deliver func(Action)) {
	run := c.Command(parent, eff)
	go func() {
		deliver(run())
	}()
}

// Stop cancels the in-flight fetch, if any
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Coordinator) fetch(ctx context.Context, eff StartFetch) Action {
	start := time.Now()
	snapshot, err := c.fetcher.Timeline(ctx, eff.City)
	duration := time.Since(start)

	if err != nil {
		kind := visualcrossing.KindOf(err)
		c.observeFetch(string(kind), duration)
		if kind == visualcrossing.KindCanceled {
			c.logger.Debug("Superseded fetch dropped",
				logger.Uint64("seq", eff.Seq),
				logger.String("city", eff.City))
		} else {
			c.logger.Info("Weather fetch failed",
				logger.Uint64("seq", eff.Seq),
				logger.String("city", eff.City),
				logger.String("kind", string(kind)),
				logger.Error(err))
		}
		return FetchFailed{Seq: eff.Seq, Err: err}
	}

	c.observeFetch("success", duration)
	if c.recorder != nil && snapshot.CurrentConditions != nil {
		c.recorder.ObserveCategory(string(conditionCategory(snapshot)))
	}
	c.logger.Info("Weather fetched",
		logger.Uint64("seq", eff.Seq),
		logger.String("city", eff.City),
		logger.String("address", snapshot.Label()),
		logger.Duration("duration", duration))

	return FetchSucceeded{Seq: eff.Seq, Snapshot: snapshot, At: c.now()}
}

func (c *Coordinator) observeFetch(outcome string, d time.Duration) {
	if c.recorder != nil {
		c.recorder.ObserveFetch(outcome, d)
	}
}
