package nimsforestkiosk

import (
	"image"
	"image/color"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// The card is laid out on a small canvas and scaled up, since basicfont has a single size.
const (
	cardWidth  = 480
	cardHeight = 270
)

var (
	cardBackground = color.RGBA{0xf1, 0xf5, 0xf9, 0xff}
	cardSurface    = color.RGBA{0xff, 0xff, 0xff, 0xff}
	cardText       = color.RGBA{0x1e, 0x29, 0x3b, 0xff}
	cardMuted      = color.RGBA{0x64, 0x74, 0x8b, 0xff}
	cardOverlay    = color.NRGBA{0x0f, 0x17, 0x2a, 0x8c}
	cardFace       = basicfont.Face7x13
)

// RenderCard draws the kiosk card of state as an image of the given size.
func RenderCard(state *ViewState, width, height int) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, cardWidth, cardHeight))
	fill(canvas, canvas.Bounds(), cardBackground)

	if state != nil {
		drawCard(canvas, state)
	}

	if width == cardWidth && height == cardHeight {
		return canvas
	}
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(out, out.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)
	return out
}

func drawCard(img *image.RGBA, state *ViewState) {
	kindColor := parseHexColor(state.Badge.Color, cardText)

	fill(img, image.Rect(0, 0, cardWidth, 8), kindColor)
	fill(img, image.Rect(40, 20, cardWidth-40, cardHeight-20), cardSurface)

	// Kind marker in place of the icon glyph.
	fill(img, image.Rect(cardWidth/2-12, 30, cardWidth/2+12, 54), kindColor)
	if initial := strings.ToUpper(firstRune(state.Unit.Kind)); initial != "" {
		drawCentered(img, cardWidth/2, 47, initial, cardSurface)
	}

	drawCentered(img, cardWidth/2, 80, state.Title, cardText)
	drawCentered(img, cardWidth/2, 98, state.Subtitle, cardMuted)

	badge := image.Rect(140, 108, cardWidth-140, 128)
	fill(img, badge, parseHexColor(state.Badge.Background, cardSurface))
	outline(img, badge, kindColor)
	drawCentered(img, cardWidth/2, 122, state.Badge.Text, cardText)

	button := image.Rect(80, 150, cardWidth-80, 190)
	buttonColor := parseHexColor(state.Button.Color, kindColor)
	if !state.Button.Enabled {
		buttonColor = fade(buttonColor)
	}
	fill(img, button, buttonColor)
	drawCentered(img, cardWidth/2, 174, state.Button.Label, cardSurface)

	if state.Modal.Visible {
		fill(img, img.Bounds(), cardOverlay)
		box := image.Rect(60, 60, cardWidth-60, 210)
		fill(img, box, cardSurface)
		drawCentered(img, cardWidth/2, 95, state.Modal.Message, cardText)
		for i, line := range state.Modal.Details {
			drawCentered(img, cardWidth/2, 120+18*i, line, cardMuted)
		}
	}
}

func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	op := draw.Src
	if _, _, _, a := c.RGBA(); a < 0xffff {
		op = draw.Over
	}
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, op)
}

func outline(img *image.RGBA, r image.Rectangle, c color.Color) {
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	fill(img, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	fill(img, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// drawCentered draws s horizontally centered on cx with its baseline at y.
func drawCentered(img *image.RGBA, cx, y int, s string, c color.Color) {
	s = fitWidth(asciiText(s), cardWidth-100)
	width := font.MeasureString(cardFace, s).Ceil()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: cardFace,
		Dot:  fixed.P(cx-width/2, y),
	}
	d.DrawString(s)
}

// fitWidth truncates s so it fits in limit pixels.
func fitWidth(s string, limit int) string {
	for font.MeasureString(cardFace, s).Ceil() > limit && len(s) > 0 {
		s = s[:len(s)-1]
	}
	return s
}

// asciiText reduces s to the ASCII repertoire of basicfont: accents are dropped and
// symbols outside ASCII removed.
func asciiText(s string) string {
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if plain, _, err := transform.String(stripMarks, s); err == nil {
		s = plain
	}
	var b strings.Builder
	for _, r := range s {
		if r >= 0x20 && r < 0x7f {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

// parseHexColor parses #rrggbb or #rrggbbaa, returning fallback for anything else.
func parseHexColor(s string, fallback color.Color) color.Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 && len(s) != 8 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	if len(s) == 6 {
		return color.NRGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}
	}
	return color.NRGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}
}

func fade(c color.Color) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 0xb4
	return n
}
