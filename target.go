package nimsforestkiosk

import "context"

// Target is a kiosk output destination: a browser page, a log, a TV.
type Target interface {
	// Update sends a new view to the target.
	Update(ctx context.Context, state *ViewState) error

	// Close releases whatever the target holds open.
	Close() error

	// Name identifies the target in errors and logs.
	Name() string
}

// StateProvider supplies the view a Viewer pushes to its targets.
type StateProvider interface {
	GetViewState() (*ViewState, error)
}

// StateFunc adapts a function to StateProvider.
type StateFunc func() (*ViewState, error)

// GetViewState implements StateProvider.
func (f StateFunc) GetViewState() (*ViewState, error) {
	return f()
}

// StaticState returns a provider that always yields state.
func StaticState(state *ViewState) StateProvider {
	return StateFunc(func() (*ViewState, error) {
		return state, nil
	})
}
