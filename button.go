package nimsforestkiosk

// ButtonState is the visual state of the call control. Exactly one is active at a time.
type ButtonState int

const (
	ButtonDisabled ButtonState = iota // initial, while the page loads
	ButtonIdle
	ButtonLoading
	ButtonSuccess
	ButtonError
)

// String implements fmt.Stringer.
func (s ButtonState) String() string {
	switch s {
	case ButtonIdle:
		return "idle"
	case ButtonLoading:
		return "loading"
	case ButtonSuccess:
		return "success"
	case ButtonError:
		return "error"
	default:
		return "disabled"
	}
}

// IdleLabel selects the label of an enabled control.
type IdleLabel int

const (
	LabelCallResident IdleLabel = iota
	LabelCallAgain
	LabelTryAgain
)

func (l IdleLabel) key() string {
	switch l {
	case LabelCallAgain:
		return "CALL AGAIN"
	case LabelTryAgain:
		return "TRY AGAIN"
	default:
		return "CALL RESIDENT"
	}
}
