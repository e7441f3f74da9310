package nimsforestkiosk

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestRenderButtonStates(t *testing.T) {
	p := NewPrinter(language.English)
	id := ParseIdentityURL("?casa=CASA_123")

	tests := []struct {
		name    string
		snap    Snapshot
		enabled bool
		icon    string
		label   string
	}{
		{"disabled", Snapshot{Button: ButtonDisabled}, false, "fa-spinner fa-spin", "LOADING..."},
		{"idle resident", Snapshot{Button: ButtonIdle, IdleLabel: LabelCallResident}, true, "fa-phone", "CALL RESIDENT"},
		{"idle again", Snapshot{Button: ButtonIdle, IdleLabel: LabelCallAgain}, true, "fa-phone", "CALL AGAIN"},
		{"idle retry", Snapshot{Button: ButtonIdle, IdleLabel: LabelTryAgain}, true, "fa-phone", "TRY AGAIN"},
		{"loading", Snapshot{Button: ButtonLoading}, false, "fa-spinner fa-spin", "SENDING..."},
		{"success", Snapshot{Button: ButtonSuccess, Palette: PaletteSuccess}, false, "fa-check", "CALL SENT!"},
		{"error", Snapshot{Button: ButtonError, Palette: PaletteError}, false, "fa-exclamation-triangle", "CONNECTION ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Render(id, tt.snap, p, time.UTC).Button
			assert.Equal(t, tt.snap.Button, b.State)
			assert.Equal(t, tt.enabled, b.Enabled)
			assert.Equal(t, tt.icon, b.Icon)
			assert.Equal(t, tt.label, b.Label)
			assert.Equal(t, tt.snap.Palette.CSS(), b.Background)
			assert.Equal(t, tt.snap.Palette.Color(), b.Color)
		})
	}
}

func TestRenderUnitPresentation(t *testing.T) {
	p := NewPrinter(language.English)

	house := Render(ParseIdentityURL("?casa=CASA_123"), Snapshot{}, p, time.UTC)
	assert.Equal(t, "Calling: House 123", house.Title)
	assert.Equal(t, "ID: CASA_123", house.Subtitle)
	assert.Equal(t, "fa-home", house.Icon)
	assert.Equal(t, BadgeView{Text: "House - Available", Color: "#4361ee", Background: "#4361ee15"}, house.Badge)
	assert.Equal(t, UnitView{ID: "CASA_123", Kind: "house", DisplayName: "House 123"}, house.Unit)

	building := Render(ParseIdentityURL("?casa=PREDIO_7"), Snapshot{}, p, time.UTC)
	assert.Equal(t, "Calling: Building 7", building.Title)
	assert.Equal(t, "fa-building", building.Icon)
	assert.Equal(t, BadgeView{Text: "Building - Available", Color: "#8b5cf6", Background: "#8b5cf615"}, building.Badge)
}

func TestRenderLoadProgress(t *testing.T) {
	p := NewPrinter(language.English)
	id := ParseIdentityURL("?casa=CASA_1")

	assert.Equal(t, "Calling: House 1", Render(id, Snapshot{LoadStep: 0}, p, time.UTC).Title)
	assert.Equal(t, "Loading 20%...", Render(id, Snapshot{LoadStep: 1}, p, time.UTC).Title)
	assert.Equal(t, "Loading 80%...", Render(id, Snapshot{LoadStep: 4}, p, time.UTC).Title)
	assert.Equal(t, "Calling: House 1", Render(id, Snapshot{LoadStep: LoadSteps}, p, time.UTC).Title)
}

func TestRenderModal(t *testing.T) {
	p := NewPrinter(language.English)
	id := ParseIdentityURL("?casa=PREDIO_7")

	hidden := Render(id, Snapshot{}, p, time.UTC)
	assert.Equal(t, ModalView{}, hidden.Modal)

	var m Modal
	m.Open(id.DisplayName(p), testStart)
	shown := Render(id, Snapshot{Modal: m}, p, time.UTC)
	assert.True(t, shown.Modal.Visible)
	assert.Equal(t, "Call to Building 7 sent successfully!", shown.Modal.Message)
	assert.Equal(t, []string{
		"✅ Notification sent to the resident",
		"🕒 Time: 15:09:26",
		"📱 They will receive an alert in the app",
	}, shown.Modal.Details)

	sp := time.FixedZone("BRT", -3*60*60)
	assert.Equal(t, "🕒 Time: 12:09:26", Render(id, Snapshot{Modal: m}, p, sp).Modal.Details[1])

	// Dismissed modals keep their content but are not visible.
	m.Dismiss(DismissEscape)
	dismissed := Render(id, Snapshot{Modal: m}, p, time.UTC)
	assert.False(t, dismissed.Modal.Visible)
	assert.Equal(t, shown.Modal.Message, dismissed.Modal.Message)
}

func TestRenderIsPure(t *testing.T) {
	p := NewPrinter(language.English)
	id := ParseIdentityURL("?casa=CASA_5")
	snap := Snapshot{LoadStep: LoadSteps, Button: ButtonIdle, IdleLabel: LabelCallAgain}

	assert.Equal(t, Render(id, snap, p, time.UTC), Render(id, snap, p, time.UTC))
}

func TestViewStateToJSON(t *testing.T) {
	p := NewPrinter(language.English)
	id := ParseIdentityURL("?casa=CASA_123")
	var m Modal
	m.Open(id.DisplayName(p), testStart)
	state := Render(id, Snapshot{Button: ButtonSuccess, Palette: PaletteSuccess, Modal: m}, p, time.UTC)

	data, err := ViewStateToJSONBytes(state)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "Calling: House 123", got["title"])

	button := got["button"].(map[string]any)
	assert.Equal(t, "success", button["state"])
	assert.Equal(t, false, button["enabled"])
	assert.Equal(t, "linear-gradient(135deg, #4ade80, #22c55e)", button["background"])

	unit := got["unit"].(map[string]any)
	assert.Equal(t, "House 123", unit["display_name"])

	modal := got["modal"].(map[string]any)
	assert.Equal(t, true, modal["visible"])
	assert.Len(t, modal["details"], 3)

	j := ViewStateToJSON(state)
	j.Modal.Details[0] = "changed"
	assert.Equal(t, "✅ Notification sent to the resident", state.Modal.Details[0])
}

func TestViewStateToJSONHiddenModal(t *testing.T) {
	data, err := ViewStateToJSONBytes(Render(DefaultIdentity(), Snapshot{}, NewPrinter(language.English), time.UTC))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"modal":{"visible":false}`)

	assert.Equal(t, ViewJSON{}, ViewStateToJSON(nil))
}

func TestPalette(t *testing.T) {
	assert.Equal(t, "linear-gradient(135deg, #4361ee, #3a0ca3)", PaletteDefault.CSS())
	assert.Equal(t, "linear-gradient(135deg, #ef4444, #dc2626)", PaletteError.CSS())
	assert.Equal(t, "#4ade80", PaletteSuccess.Color())
	assert.Equal(t, PaletteDefault.CSS(), Palette(42).CSS())
	assert.Equal(t, "error", PaletteError.String())
}

func TestThemeForUnknownKind(t *testing.T) {
	assert.Equal(t, ThemeFor(KindHouse), ThemeFor(UnitKind(9)))
}
