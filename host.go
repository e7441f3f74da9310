package nimsforestkiosk

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Host owns the kiosk of the current page load. A new load retires the previous kiosk.
// All kiosk work runs on the host's EventQueue; Host itself is safe for concurrent use.
type Host struct {
	queue     EventQueue
	viewer    *Viewer
	kioskOpts []KioskOption
	scenarios bool
	log       *logrus.Entry

	current *Kiosk // only touched on the queue
	latest  atomic.Pointer[ViewState]
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithKioskOptions sets the options every loaded kiosk is created with.
func WithKioskOptions(opts ...KioskOption) HostOption {
	return func(h *Host) {
		h.kioskOpts = append(h.kioskOpts, opts...)
	}
}

// WithScenarios enables the manual test scenarios.
func WithScenarios(enabled bool) HostOption {
	return func(h *Host) {
		h.scenarios = enabled
	}
}

// WithHostLogger sets the log entry of the host and its kiosks.
func WithHostLogger(log *logrus.Entry) HostOption {
	return func(h *Host) {
		h.log = log
	}
}

// NewHost creates a host running kiosks on queue and publishing their views through v.
// v may be nil when only ViewState is needed.
func NewHost(queue EventQueue, v *Viewer, opts ...HostOption) *Host {
	h := &Host{
		queue:  queue,
		viewer: v,
		log:    Logger.WithField("component", "host"),
	}
	for _, opt := range opts {
		opt(h)
	}
	if v != nil {
		v.SetStateProvider(h)
	}
	return h
}

// GetViewState implements StateProvider with the view of the current kiosk.
func (h *Host) GetViewState() (*ViewState, error) {
	state := h.latest.Load()
	if state == nil {
		return nil, ErrNoKiosk
	}
	return state, nil
}

// Load implements Controller. It starts a kiosk for the unit in query.
func (h *Host) Load(query url.Values) (*ViewState, error) {
	identity := ParseIdentity(query)

	err := h.queue.Do(func() {
		if h.current != nil {
			h.current.Close()
		}

		opts := append([]KioskOption{WithLogger(h.log)}, h.kioskOpts...)
		opts = append(opts, WithChangeHook(h.publish))
		k := NewKiosk(identity, h.queue, opts...)
		h.current = k

		h.log.WithFields(logrus.Fields{
			"unit": identity.ID,
			"kind": identity.Kind.String(),
			"name": identity.DisplayName(k.printer),
		}).Info("kiosk loaded")
		k.Start()
	})
	if err != nil {
		return nil, fmt.Errorf("load kiosk: %w", err)
	}
	return h.GetViewState()
}

// Press implements Controller.
func (h *Host) Press() error {
	return h.withKiosk(func(k *Kiosk) error {
		return k.Press()
	})
}

// Dismiss implements Controller.
func (h *Host) Dismiss(reason DismissReason) error {
	return h.withKiosk(func(k *Kiosk) error {
		k.Dismiss(reason)
		return nil
	})
}

// Simulate implements Controller. It fails with ErrScenariosDisabled unless enabled.
func (h *Host) Simulate(scenario string) error {
	if !h.scenarios {
		return ErrScenariosDisabled
	}
	return h.withKiosk(func(k *Kiosk) error {
		return k.Simulate(scenario)
	})
}

func (h *Host) withKiosk(fn func(*Kiosk) error) error {
	var err error
	if qerr := h.queue.Do(func() {
		if h.current == nil {
			err = ErrNoKiosk
			return
		}
		err = fn(h.current)
	}); qerr != nil {
		return qerr
	}
	return err
}

// publish stores state before pushing it, so a concurrent viewer refresh either reads
// it or finishes before it is pushed.
func (h *Host) publish(state *ViewState) {
	h.latest.Store(state)
	if h.viewer == nil {
		return
	}
	if err := h.viewer.Publish(context.Background(), state); err != nil {
		h.log.WithError(err).Warn("publish view")
	}
}
