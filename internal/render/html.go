package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLOptions controls the HTML writer.
type HTMLOptions struct {
	// Sanitize runs raw html and rendered markdown through a UGC policy.
	Sanitize bool
}

// WriteHTML writes g as an HTML table, or as an error block when g carries
// an error.
func WriteHTML(w io.Writer, g *Grid, opts HTMLOptions) error {
	var policy *bluemonday.Policy
	if opts.Sanitize {
		policy = bluemonday.UGCPolicy()
	}

	root, err := htmlTree(g, policy)
	if err != nil {
		return err
	}
	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("writing html: %w", err)
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// RenderHTML returns g as an HTML string.
func RenderHTML(g *Grid, opts HTMLOptions) (string, error) {
	var b strings.Builder
	if err := WriteHTML(&b, g, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func htmlTree(g *Grid, policy *bluemonday.Policy) (*html.Node, error) {
	if g.Err != nil {
		div := element(atom.Div, "class", "habit-calendar-error")
		div.AppendChild(textNode("Error: " + g.Err.Error()))
		return div, nil
	}

	width := g.Width
	if width == "" {
		width = "100%"
	}
	table := element(atom.Table, "class", "habit-calendar", "style", "width: "+width)

	thead := element(atom.Thead)
	for _, row := range g.Head {
		tr := element(atom.Tr)
		if row.Kind == RowTitle {
			tr.Attr = append(tr.Attr, html.Attribute{Key: "class", Val: "habit-calendar-month"})
		}
		for _, c := range row.Cells {
			th := element(atom.Th)
			if c.Span > 1 {
				th.Attr = append(th.Attr, html.Attribute{Key: "colspan", Val: strconv.Itoa(c.Span)})
			}
			th.AppendChild(textNode(c.Text))
			tr.AppendChild(th)
		}
		thead.AppendChild(tr)
	}
	table.AppendChild(thead)

	tbody := element(atom.Tbody)
	for _, row := range g.Body {
		tr := element(atom.Tr)
		for _, c := range row.Cells {
			td, err := dayNode(c, policy)
			if err != nil {
				return nil, err
			}
			tr.AppendChild(td)
		}
		tbody.AppendChild(tr)
	}
	table.AppendChild(tbody)
	return table, nil
}

func dayNode(c Cell, policy *bluemonday.Policy) (*html.Node, error) {
	if c.Disabled {
		return element(atom.Td, "class", "disabled"), nil
	}

	td := element(atom.Td, "data-day", c.Text)
	if !c.Checked {
		td.AppendChild(textNode(c.Text))
		return td, nil
	}
	td.Attr = append(td.Attr, html.Attribute{Key: "class", Val: "checked"})

	label := element(atom.Div, "class", "habit-calendar-day")
	if c.Href != "" {
		a := element(atom.A, "href", c.Href)
		a.AppendChild(textNode(c.Text))
		label.AppendChild(a)
	} else {
		label.AppendChild(textNode(c.Text))
	}
	td.AppendChild(label)

	content := element(atom.Div, "class", "habit-calendar-content")
	switch c.Content.Mode {
	case ModeHTML, ModeMarkdown:
		markup := c.Content.Text
		if c.Content.Mode == ModeMarkdown {
			markup = c.Content.Markup
		}
		if policy != nil {
			markup = policy.Sanitize(markup)
		}
		nodes, err := html.ParseFragment(strings.NewReader(markup), element(atom.Div))
		if err != nil {
			return nil, fmt.Errorf("parsing content of day %d: %w", c.Day, err)
		}
		for _, n := range nodes {
			content.AppendChild(n)
		}
	default:
		lines := strings.Split(strings.TrimRight(c.Content.Text, "\n"), "\n")
		for i, l := range lines {
			if i > 0 {
				content.AppendChild(element(atom.Br))
			}
			content.AppendChild(textNode(l))
		}
	}
	td.AppendChild(content)
	return td, nil
}

// PlainTextFromHTML returns the text content of an HTML fragment.
func PlainTextFromHTML(markup string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case atom.Br, atom.P, atom.Li, atom.Div:
				b.WriteByte('\n')
			}
		}
	}
}
