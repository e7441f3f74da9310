// Package nimsforestkiosk provides the visitor side of an intercom kiosk: it identifies the
// unit being called from the page address, simulates calling the resident and renders the
// result to web browsers, logs and Smart TVs.
package nimsforestkiosk

import (
	"strconv"
	"time"

	"golang.org/x/text/message"
)

// ViewState is the complete render description of a kiosk at one instant.
type ViewState struct {
	Title    string
	Subtitle string
	Icon     string
	Badge    BadgeView
	Button   ButtonView
	Modal    ModalView
	Unit     UnitView
}

// BadgeView is the unit status indicator.
type BadgeView struct {
	Text       string
	Color      string
	Background string // Color with a fixed low alpha
}

// ButtonView is the call control.
type ButtonView struct {
	State      ButtonState
	Enabled    bool
	Icon       string
	Label      string
	Background string // CSS background
	Color      string // dominant solid color of Background
}

// ModalView is the confirmation surface.
type ModalView struct {
	Visible bool
	Message string
	Details []string
}

// UnitView is the identity shown on the page.
type UnitView struct {
	ID          string
	Kind        string
	DisplayName string
}

// Snapshot is the mutable part of a kiosk that rendering depends on.
type Snapshot struct {
	LoadStep  int // 0..LoadSteps
	Button    ButtonState
	IdleLabel IdleLabel
	Palette   Palette
	Modal     Modal
}

// LoadSteps is the number of progress increments of the load simulation.
const LoadSteps = 5

// TimeLayout is how the modal shows the time a call was sent.
const TimeLayout = "15:04:05"

// Render builds the view of a unit in the given kiosk snapshot. It has no side effects.
func Render(id UnitIdentity, snap Snapshot, p *message.Printer, loc *time.Location) *ViewState {
	if loc == nil {
		loc = time.Local
	}
	theme := ThemeFor(id.Kind)
	name := id.DisplayName(p)

	state := &ViewState{
		Title:    p.Sprintf("Calling: %s", name),
		Subtitle: p.Sprintf("ID: %s", id.ID),
		Icon:     theme.Icon,
		Badge: BadgeView{
			Text:       p.Sprintf("%s - Available", theme.Label(p)),
			Color:      theme.Color,
			Background: theme.Color + badgeAlpha,
		},
		Button: renderButton(snap, p),
		Unit: UnitView{
			ID:          id.ID,
			Kind:        id.Kind.String(),
			DisplayName: name,
		},
	}

	if snap.LoadStep > 0 && snap.LoadStep < LoadSteps {
		percent := strconv.Itoa(snap.LoadStep * 100 / LoadSteps)
		state.Title = p.Sprintf("Loading %s%%...", percent)
	}

	state.Modal = ModalView{Visible: snap.Modal.Visible}
	if snap.Modal.UnitName != "" {
		state.Modal.Message = p.Sprintf("Call to %s sent successfully!", snap.Modal.UnitName)
		state.Modal.Details = []string{
			p.Sprintf("✅ Notification sent to the resident"),
			p.Sprintf("🕒 Time: %s", snap.Modal.SentAt.In(loc).Format(TimeLayout)),
			p.Sprintf("📱 They will receive an alert in the app"),
		}
	}

	return state
}

func renderButton(snap Snapshot, p *message.Printer) ButtonView {
	b := ButtonView{
		State:      snap.Button,
		Background: snap.Palette.CSS(),
		Color:      snap.Palette.Color(),
	}

	switch snap.Button {
	case ButtonIdle:
		b.Enabled = true
		b.Icon = "fa-phone"
		b.Label = p.Sprintf(snap.IdleLabel.key())
	case ButtonLoading:
		b.Icon = "fa-spinner fa-spin"
		b.Label = p.Sprintf("SENDING...")
	case ButtonSuccess:
		b.Icon = "fa-check"
		b.Label = p.Sprintf("CALL SENT!")
	case ButtonError:
		b.Icon = "fa-exclamation-triangle"
		b.Label = p.Sprintf("CONNECTION ERROR")
	default:
		b.Icon = "fa-spinner fa-spin"
		b.Label = p.Sprintf("LOADING...")
	}
	return b
}
