package nimsforestkiosk

import "encoding/json"

// ViewJSON is the JSON representation of ViewState for the web page.
type ViewJSON struct {
	Title    string     `json:"title"`
	Subtitle string     `json:"subtitle"`
	Icon     string     `json:"icon"`
	Badge    BadgeJSON  `json:"badge"`
	Button   ButtonJSON `json:"button"`
	Modal    ModalJSON  `json:"modal"`
	Unit     UnitJSON   `json:"unit"`
}

// BadgeJSON is the JSON representation of the status badge.
type BadgeJSON struct {
	Text       string `json:"text"`
	Color      string `json:"color"`
	Background string `json:"background"`
}

// ButtonJSON is the JSON representation of the call control.
type ButtonJSON struct {
	State      string `json:"state"`
	Enabled    bool   `json:"enabled"`
	Icon       string `json:"icon"`
	Label      string `json:"label"`
	Background string `json:"background"`
}

// ModalJSON is the JSON representation of the confirmation modal.
type ModalJSON struct {
	Visible bool     `json:"visible"`
	Message string   `json:"message,omitempty"`
	Details []string `json:"details,omitempty"`
}

// UnitJSON is the JSON representation of the called unit.
type UnitJSON struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	DisplayName string `json:"display_name"`
}

// ViewStateToJSON converts a ViewState for the web page. A nil state yields the zero value.
func ViewStateToJSON(state *ViewState) ViewJSON {
	if state == nil {
		return ViewJSON{}
	}

	var details []string
	if len(state.Modal.Details) > 0 {
		details = append(details, state.Modal.Details...)
	}

	return ViewJSON{
		Title:    state.Title,
		Subtitle: state.Subtitle,
		Icon:     state.Icon,
		Badge: BadgeJSON{
			Text:       state.Badge.Text,
			Color:      state.Badge.Color,
			Background: state.Badge.Background,
		},
		Button: ButtonJSON{
			State:      state.Button.State.String(),
			Enabled:    state.Button.Enabled,
			Icon:       state.Button.Icon,
			Label:      state.Button.Label,
			Background: state.Button.Background,
		},
		Modal: ModalJSON{
			Visible: state.Modal.Visible,
			Message: state.Modal.Message,
			Details: details,
		},
		Unit: UnitJSON{
			ID:          state.Unit.ID,
			Kind:        state.Unit.Kind,
			DisplayName: state.Unit.DisplayName,
		},
	}
}

// ViewStateToJSONBytes converts a ViewState to JSON bytes.
func ViewStateToJSONBytes(state *ViewState) ([]byte, error) {
	return json.Marshal(ViewStateToJSON(state))
}
