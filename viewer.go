package nimsforestkiosk

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Viewer fans kiosk views out to multiple targets.
type Viewer struct {
	mu       sync.RWMutex
	pushMu   sync.Mutex // serializes reading and pushing a state
	provider StateProvider
	targets  []Target
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

// Option configures the Viewer.
type Option func(*Viewer)

// WithInterval enables periodic refreshes on top of event-driven updates.
func WithInterval(d time.Duration) Option {
	return func(v *Viewer) {
		v.interval = d
	}
}

// New creates a new Viewer with the given options. Without WithInterval it only
// updates when Update is called.
func New(opts ...Option) *Viewer {
	v := &Viewer{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// SetStateProvider sets the source of ViewState.
func (v *Viewer) SetStateProvider(p StateProvider) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.provider = p
}

// AddTarget adds an output target.
func (v *Viewer) AddTarget(t Target) error {
	if t == nil {
		return fmt.Errorf("nil target")
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.targets = append(v.targets, t)
	return nil
}

// RemoveTarget removes a target by reference.
func (v *Viewer) RemoveTarget(t Target) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, target := range v.targets {
		if target == t {
			v.targets = append(v.targets[:i], v.targets[i+1:]...)
			return
		}
	}
}

// Targets returns a copy of the current targets.
func (v *Viewer) Targets() []Target {
	v.mu.RLock()
	defer v.mu.RUnlock()
	targets := make([]Target, len(v.targets))
	copy(targets, v.targets)
	return targets
}

// Start performs an initial update and, if an interval is set, refreshes periodically.
func (v *Viewer) Start(ctx context.Context) error {
	v.mu.Lock()
	if v.cancel != nil {
		v.mu.Unlock()
		return fmt.Errorf("viewer already started")
	}

	ctx, v.cancel = context.WithCancel(ctx)
	v.done = make(chan struct{})
	done := v.done
	v.mu.Unlock()

	if err := v.Update(); err != nil {
		Logger.WithError(err).Warn("initial view update failed")
	}

	if v.interval <= 0 {
		close(done)
		return nil
	}
	go v.run(ctx, done)
	return nil
}

func (v *Viewer) run(ctx context.Context, done chan struct{}) {
	ticker := time.NewTicker(v.interval)
	defer ticker.Stop()
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := v.Update(); err != nil {
				Logger.WithError(err).Warn("periodic view update failed")
			}
		}
	}
}

// Stop stops periodic updates.
func (v *Viewer) Stop() {
	v.mu.Lock()
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	done := v.done
	v.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Update pushes the provider's current state to all targets.
func (v *Viewer) Update() error {
	return v.UpdateContext(context.Background())
}

// UpdateContext is Update with a caller-supplied context. A state published
// concurrently is never overtaken by the one read here.
func (v *Viewer) UpdateContext(ctx context.Context) error {
	v.pushMu.Lock()
	defer v.pushMu.Unlock()

	v.mu.RLock()
	provider := v.provider
	v.mu.RUnlock()

	if provider == nil {
		return fmt.Errorf("no state provider set")
	}

	state, err := provider.GetViewState()
	if err != nil {
		return fmt.Errorf("failed to get view state: %w", err)
	}
	return v.push(ctx, state)
}

// Publish pushes state to all targets without consulting the provider.
func (v *Viewer) Publish(ctx context.Context, state *ViewState) error {
	v.pushMu.Lock()
	defer v.pushMu.Unlock()
	return v.push(ctx, state)
}

func (v *Viewer) push(ctx context.Context, state *ViewState) error {
	var lastErr error
	for _, target := range v.Targets() {
		if err := target.Update(ctx, state); err != nil {
			lastErr = fmt.Errorf("target %s: %w", target.Name(), err)
		}
	}
	return lastErr
}

// Close stops the viewer and closes all targets.
func (v *Viewer) Close() error {
	v.Stop()

	v.mu.Lock()
	targets := v.targets
	v.targets = nil
	v.mu.Unlock()

	var lastErr error
	for _, target := range targets {
		if err := target.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
