// Package enrich runs grammar corrections for an editor while the user types.
// A correction is requested only after a quiet interval, and an answer is
// shown only if the text it was computed for is still the current text.
package enrich

import (
	"context"
	"strings"
	"sync"
	"time"

	"tagebuch/internal/logger"
	"tagebuch/internal/service/ai"
)

const (
	DefaultDelay   = 1500 * time.Millisecond
	DefaultTimeout = 60 * time.Second
)

// Corrector produces a corrected version of a text.
type Corrector interface {
	Correct(ctx context.Context, text string) (string, error)
}

// CorrectorFunc adapts a function to Corrector.
type CorrectorFunc func(ctx context.Context, text string) (string, error)

func (f CorrectorFunc) Correct(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// Options configure a Controller. Zero values select the defaults.
type Options struct {
	Delay   time.Duration
	Timeout time.Duration
	Clock   Clock
}

// Snapshot is a copy of the controller state.
type Snapshot struct {
	Text           string `json:"text"`
	Correction     string `json:"correction"`
	Status         Status `json:"status"`
	Message        string `json:"message"`
	LastDispatched string `json:"lastDispatched,omitempty"`
	Pending        bool   `json:"pending"`
	InFlight       int    `json:"inFlight"`
}

// Controller debounces edits into correction requests for one editor.
type Controller struct {
	corrector Corrector
	delay     time.Duration
	timeout   time.Duration
	clock     Clock

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu             sync.Mutex
	text           string
	correction     string
	lastDispatched string
	status         Status
	timer          Timer
	gen            uint64
	inFlight       int
	closed         bool
}

// NewController creates a controller that sends requests to c.
func NewController(c Corrector, opts Options) *Controller {
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Clock == nil {
		opts.Clock = RealClock()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		corrector: c,
		delay:     opts.Delay,
		timeout:   opts.Timeout,
		clock:     opts.Clock,
		ctx:       ctx,
		cancel:    cancel,
		status:    StatusIdle,
	}
}

// Reset replaces text and correction without dispatching, e.g. when an
// existing entry is loaded into the editor.
func (c *Controller) Reset(text, correction string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.stopTimerLocked()
	c.text = text
	c.correction = strings.TrimSpace(correction)
	c.lastDispatched = ""
	c.status = StatusIdle
}

// Edit records a text change. Empty text clears the correction at once;
// text that is already being corrected waits for that answer; anything else
// restarts the quiet interval.
func (c *Controller) Edit(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.stopTimerLocked()
	c.text = text

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		c.correction = ""
		c.status = StatusIdle
		return
	}
	if c.inFlight > 0 && trimmed == c.lastDispatched {
		c.status = StatusThinking
		return
	}

	gen := c.gen
	c.timer = c.clock.AfterFunc(c.delay, func() { c.fire(gen) })
	c.status = StatusPending
}

// CorrectNow skips the quiet interval and dispatches the current text.
// It reports whether a request was started.
func (c *Controller) CorrectNow() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.stopTimerLocked()
	return c.dispatchLocked()
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Text:           c.text,
		Correction:     c.correction,
		Status:         c.status,
		Message:        c.status.Message(),
		LastDispatched: c.lastDispatched,
		Pending:        c.timer != nil,
		InFlight:       c.inFlight,
	}
}

// Wait blocks until requests dispatched so far have finished.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close stops the timer, cancels in-flight requests and waits for them.
// Results arriving after Close are dropped.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.stopTimerLocked()
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
}

// stopTimerLocked cancels the pending timer. Bumping gen also neutralizes a
// callback that already fired and is waiting for the lock.
func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
}

func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.gen {
		return
	}
	c.timer = nil
	c.dispatchLocked()
}

func (c *Controller) dispatchLocked() bool {
	text := strings.TrimSpace(c.text)
	if text == "" {
		return false
	}
	c.lastDispatched = text
	c.status = StatusThinking
	c.inFlight++
	c.wg.Add(1)
	go c.run(text)
	return true
}

func (c *Controller) run(text string) {
	defer c.wg.Done()

	ctx, cancel := context.WithTimeout(c.ctx, c.timeout)
	answer, err := c.corrector.Correct(ctx, text)
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight--
	if c.closed {
		return
	}

	current := strings.TrimSpace(c.text)
	if current != c.lastDispatched || current != text {
		logger.Debug("stale correction discarded", "module", "enrich", "action", "correct", "resource", "editor", "result", "skipped", "chars", len(text))
		return
	}

	if err != nil {
		if ai.IsUnavailable(err) {
			c.status = StatusNotReady
		} else {
			c.status = StatusFailed
		}
		logger.Warn("correction failed", "module", "enrich", "action", "correct", "resource", "editor", "result", "failed", "status", string(c.status), "error", err)
		return
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		c.status = StatusEmpty
		return
	}
	c.correction = answer
	c.status = StatusCorrected
	logger.Debug("correction applied", "module", "enrich", "action", "correct", "resource", "editor", "result", "ok", "chars", len(answer))
}
