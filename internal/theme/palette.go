package theme

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/javiermolinar/habitcal/internal/render"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Checked     lipgloss.Color
	Border      lipgloss.Color
	Error       lipgloss.Color
	Today       lipgloss.Color // background of today's cell
	CheckedText lipgloss.Color // content under a checked day
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	ratio := 0.35
	if t.IsLight() {
		ratio = 0.20
	}

	return &Palette{
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Checked:     lipgloss.Color(t.Checked),
		Border:      lipgloss.Color(t.Border),
		Error:       lipgloss.Color(t.Error),
		Today:       lipgloss.Color(blendColors(t.BgHighlight, t.Accent, ratio)),
		CheckedText: lipgloss.Color(blendColors(t.Checked, chooseTextColor(t.Bg, t.Fg, t.FgMuted), 0.5)),
	}
}

// TermStyles returns the grid styles of the palette.
func (p *Palette) TermStyles() render.TermStyles {
	return render.TermStyles{
		Border:   lipgloss.NewStyle().Foreground(p.Border),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Weekday:  lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Day:      lipgloss.NewStyle().Foreground(p.Fg),
		Checked:  lipgloss.NewStyle().Bold(true).Foreground(p.Checked),
		Today:    p.TodayStyle(),
		Disabled: lipgloss.NewStyle().Foreground(p.FgMuted),
		Content:  lipgloss.NewStyle().Foreground(p.CheckedText),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(p.Error),
	}
}

// TodayStyle highlights the current day.
func (p *Palette) TodayStyle() lipgloss.Style {
	return lipgloss.NewStyle().Background(p.Today).Bold(true)
}

// chooseTextColor returns whichever of the two text colors reads better on bg.
func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	r, g, b, ok := parseHexColor(hex)
	if !ok {
		return 0
	}
	return 0.2126*srgbToLinear(r) + 0.7152*srgbToLinear(g) + 0.0722*srgbToLinear(b)
}

func srgbToLinear(c int) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// blendColors mixes b into a by ratio (0 keeps a, 1 gives b).
func blendColors(a, b string, ratio float64) string {
	ar, ag, ab, okA := parseHexColor(a)
	br, bg, bb, okB := parseHexColor(b)
	if !okA || !okB {
		return a
	}
	ratio = math.Max(0, math.Min(1, ratio))

	mix := func(x, y int) int {
		return int(float64(x)*(1-ratio) + float64(y)*ratio)
	}
	return formatHexColor(mix(ar, br), mix(ag, bg), mix(ab, bb))
}

// parseHexColor parses "#rrggbb" (or "#rgb") into 8-bit channels.
func parseHexColor(hex string) (r, g, b int, ok bool) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, 0, 0, false
	}
	r8, g8, b8 := c.RGB255()
	return int(r8), int(g8), int(b8), true
}

// formatHexColor formats RGB values as a hex color string.
func formatHexColor(r, g, b int) string {
	const hex = "0123456789abcdef"
	result := make([]byte, 7)
	result[0] = '#'
	result[1] = hex[r>>4]
	result[2] = hex[r&0xf]
	result[3] = hex[g>>4]
	result[4] = hex[g&0xf]
	result[5] = hex[b>>4]
	result[6] = hex[b&0xf]
	return string(result)
}
