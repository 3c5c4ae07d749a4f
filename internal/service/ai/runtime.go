package ai

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"tagebuch/internal/logger"
)

// RuntimeState is the readiness of a provider that must load before use.
type RuntimeState string

const (
	StateUninitialized RuntimeState = "uninitialized"
	StateInitializing  RuntimeState = "initializing"
	StateReady         RuntimeState = "ready"
	StateFailed        RuntimeState = "failed"
)

// DefaultInitTimeout bounds model loading and warmup.
const DefaultInitTimeout = 5 * time.Minute

// RuntimeStatus is a point-in-time view of a Runtime.
type RuntimeStatus struct {
	Provider string       `json:"provider"`
	State    RuntimeState `json:"state"`
	Progress float64      `json:"progress"`
	Message  string       `json:"message"`
	Error    string       `json:"error,omitempty"`
}

// Runtime wraps a provider with a one-shot initialization phase. A failed
// initialization is terminal for the lifetime of the Runtime.
type Runtime struct {
	provider    Provider
	init        Initializer
	initTimeout time.Duration

	group singleflight.Group
	wg    sync.WaitGroup

	mu       sync.Mutex
	state    RuntimeState
	progress float64
	err      error
}

// RuntimeOption customizes a Runtime.
type RuntimeOption func(*Runtime)

// WithInitTimeout sets the deadline for one initialization run. An
// initialization that exceeds it fails.
func WithInitTimeout(d time.Duration) RuntimeOption {
	return func(r *Runtime) {
		if d > 0 {
			r.initTimeout = d
		}
	}
}

// NewRuntime wraps p. Providers without an Initializer start out ready.
func NewRuntime(p Provider, opts ...RuntimeOption) *Runtime {
	r := &Runtime{provider: p, state: StateUninitialized, initTimeout: DefaultInitTimeout}
	for _, opt := range opts {
		opt(r)
	}
	if in, ok := p.(Initializer); ok {
		r.init = in
	} else {
		r.state = StateReady
		r.progress = 1
	}
	return r
}

// Name returns the wrapped provider name.
func (r *Runtime) Name() string {
	return r.provider.Name()
}

// Init runs the initialization if it has not run yet. Concurrent callers share
// one in-flight initialization. The caller's cancellation does not abort it;
// the init timeout does.
func (r *Runtime) Init(ctx context.Context) error {
	_, err, _ := r.group.Do("init", func() (interface{}, error) {
		initCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.initTimeout)
		defer cancel()
		return nil, r.initialize(initCtx)
	})
	return err
}

func (r *Runtime) initialize(ctx context.Context) error {
	r.mu.Lock()
	switch r.state {
	case StateReady:
		r.mu.Unlock()
		return nil
	case StateFailed:
		err := r.err
		r.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrProviderFailed, err)
	}
	r.state = StateInitializing
	r.progress = 0
	r.mu.Unlock()

	logger.Info("provider init started", "module", "ai", "action", "init", "resource", "provider", "result", "ok", "provider", r.provider.Name())
	err := r.init.Init(ctx, r.setProgress)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.state = StateFailed
		r.err = err
		logger.Error("provider init failed", "module", "ai", "action", "init", "resource", "provider", "result", "failed", "provider", r.provider.Name(), "error", err)
		return fmt.Errorf("%w: %v", ErrProviderFailed, err)
	}
	r.state = StateReady
	r.progress = 1
	logger.Info("provider ready", "module", "ai", "action", "init", "resource", "provider", "result", "ok", "provider", r.provider.Name())
	return nil
}

func (r *Runtime) setProgress(p float64) {
	r.mu.Lock()
	if r.state == StateInitializing {
		r.progress = math.Max(0, math.Min(1, p))
	}
	r.mu.Unlock()
}

// Correct delegates to the provider once ready. Before that it starts the
// initialization in the background and returns ErrNotReady.
func (r *Runtime) Correct(ctx context.Context, text string) (string, error) {
	r.mu.Lock()
	state := r.state
	r.mu.Unlock()

	switch state {
	case StateReady:
		return r.provider.Correct(ctx, text)
	case StateUninitialized:
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			_ = r.Init(context.Background())
		}()
		return "", ErrNotReady
	case StateInitializing:
		return "", ErrNotReady
	default:
		return "", ErrProviderFailed
	}
}

// Test initializes synchronously if needed, then runs the provider test.
func (r *Runtime) Test(ctx context.Context) (string, error) {
	if err := r.Init(ctx); err != nil {
		return "", err
	}
	return r.provider.Test(ctx)
}

// Wait blocks until background initializations started by Correct return.
func (r *Runtime) Wait() {
	r.wg.Wait()
}

// State returns the current state.
func (r *Runtime) State() RuntimeState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Status returns the current state with a display message.
func (r *Runtime) Status() RuntimeStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := RuntimeStatus{
		Provider: r.provider.Name(),
		State:    r.state,
		Progress: r.progress,
	}
	switch r.state {
	case StateUninitialized:
		st.Message = "Lokales Modell wird bei Bedarf automatisch geladen."
	case StateInitializing:
		st.Message = fmt.Sprintf("Modell wird geladen … %d%%", int(math.Round(r.progress*100)))
	case StateReady:
		st.Message = "KI bereit (läuft lokal)"
	case StateFailed:
		st.Message = "Fehler beim Laden der KI"
		if r.err != nil {
			st.Error = r.err.Error()
		}
	}
	return st
}
