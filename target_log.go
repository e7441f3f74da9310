package nimsforestkiosk

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// LogTarget writes a trace line whenever the visible kiosk changes.
type LogTarget struct {
	log  *logrus.Entry
	mu   sync.Mutex
	last *ViewState
}

// NewLogTarget creates a target writing to log, or to Logger when log is nil.
func NewLogTarget(log *logrus.Entry) *LogTarget {
	if log == nil {
		log = Logger.WithField("component", "trace")
	}
	return &LogTarget{log: log}
}

// Name implements Target.
func (t *LogTarget) Name() string {
	return "LogTarget"
}

// Update implements Target.
func (t *LogTarget) Update(ctx context.Context, state *ViewState) error {
	if state == nil {
		return nil
	}

	t.mu.Lock()
	last := t.last
	t.last = state
	t.mu.Unlock()

	if last != nil && sameTrace(last, state) {
		return nil
	}

	entry := t.log.WithFields(logrus.Fields{
		"unit":    state.Unit.ID,
		"kind":    state.Unit.Kind,
		"title":   state.Title,
		"button":  state.Button.State.String(),
		"label":   state.Button.Label,
		"enabled": state.Button.Enabled,
	})
	if state.Modal.Visible {
		entry = entry.WithField("modal", state.Modal.Message)
	}
	entry.Info("view changed")
	return nil
}

func sameTrace(a, b *ViewState) bool {
	return a.Unit == b.Unit &&
		a.Title == b.Title &&
		a.Button == b.Button &&
		a.Modal.Visible == b.Modal.Visible &&
		a.Modal.Message == b.Modal.Message
}

// Close implements Target.
func (t *LogTarget) Close() error {
	return nil
}
