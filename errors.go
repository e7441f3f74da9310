package nimsforestkiosk

import "errors"

var (
	// ErrControlDisabled is returned when the call button cannot be activated in its current state.
	ErrControlDisabled = errors.New("call control is disabled")

	ErrUnknownScenario      = errors.New("unknown test scenario")
	ErrScenariosDisabled    = errors.New("test scenarios are disabled")
	ErrUnknownDismissReason = errors.New("unknown dismiss reason")

	// ErrNoKiosk is returned by Host before the first page load.
	ErrNoKiosk = errors.New("no kiosk loaded")

	// ErrLoopStopped is returned by Loop.Do once the loop is no longer running.
	ErrLoopStopped = errors.New("event loop stopped")
)
