package nimsforestkiosk

import (
	"fmt"
	"time"
)

// DismissReason is how the visitor closed the confirmation modal.
type DismissReason int

const (
	DismissClose   DismissReason = iota // close button
	DismissOutside                      // click outside the content area
	DismissEscape                       // cancel key
)

// String implements fmt.Stringer.
func (r DismissReason) String() string {
	switch r {
	case DismissOutside:
		return "outside"
	case DismissEscape:
		return "escape"
	default:
		return "close"
	}
}

// ParseDismissReason maps "close", "outside" and "escape" to a DismissReason.
func ParseDismissReason(s string) (DismissReason, error) {
	switch s {
	case "close", "":
		return DismissClose, nil
	case "outside":
		return DismissOutside, nil
	case "escape":
		return DismissEscape, nil
	}
	return DismissClose, fmt.Errorf("%w: %q", ErrUnknownDismissReason, s)
}

// Modal is the confirmation surface shown after a call is sent.
// Its only state is visibility; the content is what it was last opened with.
type Modal struct {
	Visible  bool
	UnitName string
	SentAt   time.Time
}

// Open shows the modal for a call to name sent at the given time.
func (m *Modal) Open(name string, at time.Time) {
	m.Visible = true
	m.UnitName = name
	m.SentAt = at
}

// Dismiss hides the modal. It is always permitted.
func (m *Modal) Dismiss(DismissReason) {
	m.Visible = false
}
