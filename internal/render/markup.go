package render

import (
	"html"
	"strings"
)

// MarkupRenderer renders entry content written in markdown. sourcePath is the
// note the calendar is embedded in; relative links resolve against it.
type MarkupRenderer interface {
	RenderMarkup(content, sourcePath string) (string, error)
}

// PlainText is a MarkupRenderer that escapes content and keeps line breaks.
type PlainText struct{}

// RenderMarkup implements MarkupRenderer.
func (PlainText) RenderMarkup(content, _ string) (string, error) {
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	for i, l := range lines {
		lines[i] = html.EscapeString(l)
	}
	return strings.Join(lines, "<br>"), nil
}
