package render

import (
	"bytes"
	"net/url"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var sourcePathKey = parser.NewContextKey()

// Markdown renders entry content to HTML with goldmark.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown returns a MarkupRenderer producing HTML fragments.
func NewMarkdown() *Markdown {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithASTTransformers(
			util.Prioritized(&relativeLinkTransformer{}, 100),
		)),
	)
	return &Markdown{md: md}
}

// RenderMarkup implements MarkupRenderer.
func (m *Markdown) RenderMarkup(content, sourcePath string) (string, error) {
	pc := parser.NewContext()
	pc.Set(sourcePathKey, sourcePath)

	var buf bytes.Buffer
	if err := m.md.Convert([]byte(content), &buf, parser.WithContext(pc)); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

// relativeLinkTransformer rewrites relative link and image destinations so
// they are relative to the directory of the source note.
type relativeLinkTransformer struct{}

func (t *relativeLinkTransformer) Transform(doc *ast.Document, _ text.Reader, pc parser.Context) {
	source, _ := pc.Get(sourcePathKey).(string)
	dir := path.Dir(strings.ReplaceAll(source, `\`, "/"))
	if source == "" || dir == "." {
		return
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			node.Destination = resolveRelative(dir, node.Destination)
		case *ast.Image:
			node.Destination = resolveRelative(dir, node.Destination)
		}
		return ast.WalkContinue, nil
	})
}

func resolveRelative(dir string, dest []byte) []byte {
	d := string(dest)
	if d == "" || strings.HasPrefix(d, "/") || strings.HasPrefix(d, "#") {
		return dest
	}
	if u, err := url.Parse(d); err != nil || u.Scheme != "" || u.Host != "" {
		return dest
	}
	return []byte(path.Join(dir, d))
}
