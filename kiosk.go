package nimsforestkiosk

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Timings are the fixed delays of the simulation.
type Timings struct {
	LoadStep    time.Duration // one of LoadSteps progress increments
	CallDelay   time.Duration // Loading -> Success
	SuccessHold time.Duration // Success -> Idle
	ErrorHold   time.Duration // Error -> Idle
}

// DefaultTimings returns the stock kiosk delays.
func DefaultTimings() Timings {
	return Timings{
		LoadStep:    200 * time.Millisecond,
		CallDelay:   1500 * time.Millisecond,
		SuccessHold: 3000 * time.Millisecond,
		ErrorHold:   3000 * time.Millisecond,
	}
}

// LoadDuration is the total length of the load simulation.
func (t Timings) LoadDuration() time.Duration {
	return LoadSteps * t.LoadStep
}

// Kiosk simulates calling the resident of one unit. It is not safe for concurrent use:
// every method and every timer it schedules must run on the same Scheduler queue.
type Kiosk struct {
	identity UnitIdentity
	sched    Scheduler
	timings  Timings
	printer  *message.Printer
	location *time.Location
	log      *logrus.Entry
	onChange func(*ViewState)

	snap   Snapshot
	callID string
	closed bool
}

// KioskOption configures a Kiosk.
type KioskOption func(*Kiosk)

// WithTimings overrides the simulation delays.
func WithTimings(t Timings) KioskOption {
	return func(k *Kiosk) {
		k.timings = t
	}
}

// WithLocale selects the language of rendered strings.
func WithLocale(tag language.Tag) KioskOption {
	return func(k *Kiosk) {
		k.printer = NewPrinter(tag)
	}
}

// WithLocation sets the time zone the modal shows call times in.
func WithLocation(loc *time.Location) KioskOption {
	return func(k *Kiosk) {
		k.location = loc
	}
}

// WithLogger sets the entry diagnostic lines are written to.
func WithLogger(log *logrus.Entry) KioskOption {
	return func(k *Kiosk) {
		k.log = log
	}
}

// WithChangeHook registers fn to receive the new view after every transition.
func WithChangeHook(fn func(*ViewState)) KioskOption {
	return func(k *Kiosk) {
		k.onChange = fn
	}
}

// NewKiosk creates a kiosk for a unit. Call Start to begin the load simulation.
func NewKiosk(identity UnitIdentity, sched Scheduler, opts ...KioskOption) *Kiosk {
	k := &Kiosk{
		identity: identity,
		sched:    sched,
		timings:  DefaultTimings(),
		printer:  NewPrinter(language.English),
		location: time.Local,
		snap:     Snapshot{Button: ButtonDisabled, Palette: PaletteDefault},
	}
	for _, opt := range opts {
		opt(k)
	}
	if k.log == nil {
		k.log = Logger.WithField("component", "kiosk")
	}
	k.log = k.log.WithField("unit", identity.ID)
	return k
}

// Identity returns the unit this kiosk calls.
func (k *Kiosk) Identity() UnitIdentity {
	return k.identity
}

// Snapshot returns the current mutable state.
func (k *Kiosk) Snapshot() Snapshot {
	return k.snap
}

// ViewState renders the current state.
func (k *Kiosk) ViewState() *ViewState {
	return Render(k.identity, k.snap, k.printer, k.location)
}

// Start publishes the initial view and schedules the load simulation.
func (k *Kiosk) Start() {
	k.changed()
	k.scheduleLoadStep()
}

// Close retires the kiosk. Timers already scheduled still fire but do nothing.
func (k *Kiosk) Close() {
	k.closed = true
}

func (k *Kiosk) scheduleLoadStep() {
	k.after(k.timings.LoadStep, func() {
		k.snap.LoadStep++
		if k.snap.LoadStep >= LoadSteps {
			k.finishLoad()
			return
		}
		k.changed()
		k.scheduleLoadStep()
	})
}

func (k *Kiosk) finishLoad() {
	k.snap.LoadStep = LoadSteps
	k.enable(LabelCallResident)
	k.log.WithFields(logrus.Fields{
		"kind": k.identity.Kind.String(),
		"name": k.identity.DisplayName(k.printer),
	}).Info("kiosk ready")
}

// Press activates the call control. It returns ErrControlDisabled unless the control is idle.
func (k *Kiosk) Press() error {
	if k.closed || k.snap.Button != ButtonIdle {
		return ErrControlDisabled
	}

	k.callID = uuid.NewString()
	k.snap.Button = ButtonLoading
	k.changed()

	// A real integration would POST {"unitId": k.identity.ID} to /api/call here.
	k.after(k.timings.CallDelay, k.callSent)
	return nil
}

func (k *Kiosk) callSent() {
	sentAt := k.sched.Now()
	name := k.identity.DisplayName(k.printer)

	k.snap.Modal.Open(name, sentAt)
	restore := k.snap.Palette
	k.snap.Palette = PaletteSuccess
	k.snap.Button = ButtonSuccess
	k.changed()

	k.log.WithFields(logrus.Fields{
		"call_id": k.callID,
		"name":    name,
		"sent_at": sentAt.In(k.location).Format(TimeLayout),
	}).Info("call sent")

	k.after(k.timings.SuccessHold, func() {
		k.snap.Palette = restore
		k.snap.Button = ButtonIdle
		k.snap.IdleLabel = LabelCallAgain
		k.changed()
	})
}

// SimulateError shows the connection error state until ErrorHold has passed.
// Like Press, it is only accepted while the control is idle: during the load or a
// call it returns ErrControlDisabled rather than forcing the error look, so a pending
// timer never overwrites it.
func (k *Kiosk) SimulateError() error {
	if k.closed || k.snap.Button != ButtonIdle {
		return ErrControlDisabled
	}

	k.snap.Button = ButtonError
	k.snap.Palette = PaletteError
	k.changed()
	k.log.Warn("simulated connection error")

	k.after(k.timings.ErrorHold, func() {
		k.enable(LabelTryAgain)
	})
	return nil
}

// Simulate runs a named test scenario: "success" or "error".
func (k *Kiosk) Simulate(scenario string) error {
	switch scenario {
	case "success":
		return k.Press()
	case "error":
		return k.SimulateError()
	}
	return fmt.Errorf("%w: %q", ErrUnknownScenario, scenario)
}

// Dismiss hides the confirmation modal, whatever the state of the call control.
func (k *Kiosk) Dismiss(reason DismissReason) {
	if k.closed {
		return
	}
	wasVisible := k.snap.Modal.Visible
	k.snap.Modal.Dismiss(reason)
	if wasVisible {
		k.log.WithField("reason", reason.String()).Debug("modal dismissed")
		k.changed()
	}
}

// enable restores the control to its enabled default appearance.
func (k *Kiosk) enable(label IdleLabel) {
	k.snap.Button = ButtonIdle
	k.snap.IdleLabel = label
	k.snap.Palette = PaletteDefault
	k.changed()
}

func (k *Kiosk) after(d time.Duration, fn func()) {
	k.sched.AfterFunc(d, func() {
		if k.closed {
			return
		}
		fn()
	})
}

func (k *Kiosk) changed() {
	if k.onChange != nil {
		k.onChange(k.ViewState())
	}
}
