package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	popupMinWidth = 24
	popupMaxWidth = 56
)

// popup draws a bordered box centered over the rest of the view.
type popup struct {
	bg     lipgloss.Color
	border lipgloss.Color
}

// Render splices content, boxed, into the middle of base. base is padded or
// cut to width x height first.
func (p popup) Render(base string, width, height int, content string) string {
	if width <= 0 || height <= 0 || content == "" {
		return base
	}

	box := p.box(content, width)
	boxLines := strings.Split(box, "\n")
	boxW := lipgloss.Width(box)

	top := max(0, (height-len(boxLines))/2)
	left := max(0, (width-boxW)/2)

	lines := fitLines(base, width, height)
	for i, bl := range boxLines {
		row := top + i
		if row >= height {
			break
		}
		lines[row] = ansi.Cut(lines[row], 0, left) + bl + ansi.Cut(lines[row], left+boxW, width)
	}
	return strings.Join(lines, "\n")
}

func (p popup) box(content string, width int) string {
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	inner := 0
	for _, l := range lines {
		inner = max(inner, lipgloss.Width(l))
	}
	// Two columns of padding, two of border.
	inner = min(max(inner+2, popupMinWidth), popupMaxWidth, width-2)

	bgSeq := ""
	if c, err := colorful.Hex(string(p.bg)); err == nil {
		bgSeq = ansi.Style{}.BackgroundColor(c).String()
	}
	for i, l := range lines {
		lines[i] = keepBackground(ansi.Truncate(l, inner-2, "…"), bgSeq)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.border).
		BorderBackground(p.bg).
		Background(p.bg).
		Padding(0, 1).
		Width(inner).
		Render(strings.Join(lines, "\n"))
}

// keepBackground re-applies bgSeq after every reset inside line, so styled
// text such as the prompt cursor does not punch holes in the box.
func keepBackground(line, bgSeq string) string {
	if bgSeq == "" || line == "" {
		return line
	}
	line = strings.ReplaceAll(line, ansi.ResetStyle, ansi.ResetStyle+bgSeq)
	return strings.ReplaceAll(line, "\x1b[49m", "\x1b[49m"+bgSeq)
}

// fitLines returns exactly height lines of exactly width cells.
func fitLines(s string, width, height int) []string {
	lines := strings.Split(s, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]

	for i, l := range lines {
		switch w := lipgloss.Width(l); {
		case w > width:
			lines[i] = ansi.Cut(l, 0, width)
		case w < width:
			lines[i] = l + strings.Repeat(" ", width-w)
		}
	}
	return lines
}
