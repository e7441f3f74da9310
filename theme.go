package nimsforestkiosk

import (
	"fmt"

	"golang.org/x/text/message"
)

// KindTheme is the fixed presentation of a unit kind.
type KindTheme struct {
	Color string
	label string // message key
	Icon  string
}

// Label returns the localized kind label.
func (t KindTheme) Label(p *message.Printer) string {
	return p.Sprintf(t.label)
}

var kindThemes = map[UnitKind]KindTheme{
	KindHouse:    {Color: "#4361ee", label: "House", Icon: "fa-home"},
	KindBuilding: {Color: "#8b5cf6", label: "Building", Icon: "fa-building"},
}

// ThemeFor returns the theme of a kind, falling back to the house theme.
func ThemeFor(k UnitKind) KindTheme {
	if t, ok := kindThemes[k]; ok {
		return t
	}
	return kindThemes[KindHouse]
}

// badgeAlpha is appended to the kind color to tint the status badge (0x15 ≈ 9% opacity).
const badgeAlpha = "15"

// Palette is the background scheme of the call button.
type Palette int

const (
	PaletteDefault Palette = iota
	PaletteSuccess
	PaletteError
)

type gradient struct {
	from, to string
}

var palettes = map[Palette]gradient{
	PaletteDefault: {"#4361ee", "#3a0ca3"},
	PaletteSuccess: {"#4ade80", "#22c55e"},
	PaletteError:   {"#ef4444", "#dc2626"},
}

// CSS returns the palette as a CSS background value.
func (p Palette) CSS() string {
	g := p.gradient()
	return fmt.Sprintf("linear-gradient(135deg, %s, %s)", g.from, g.to)
}

// Color returns the dominant solid color of the palette.
func (p Palette) Color() string {
	return p.gradient().from
}

func (p Palette) gradient() gradient {
	if g, ok := palettes[p]; ok {
		return g
	}
	return palettes[PaletteDefault]
}

// String implements fmt.Stringer.
func (p Palette) String() string {
	switch p {
	case PaletteSuccess:
		return "success"
	case PaletteError:
		return "error"
	default:
		return "default"
	}
}
