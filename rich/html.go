package rich

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	gmext "github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

type htmlConverter struct {
	md goldmark.Markdown
}

// newHTMLConverter configures goldmark with tables, footnotes, definition
// lists and heading ids. Raw HTML passes through so verbatim blocks keep
// their styling.
func newHTMLConverter() htmlConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			gmext.Table,
			gmext.Strikethrough,
			gmext.Footnote,
			gmext.DefinitionList,
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return htmlConverter{md: md}
}

func (c htmlConverter) convert(s string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(s), &buf); err != nil {
		return "", errors.Wrap(err, "could not convert markdown to html")
	}
	return buf.String(), nil
}
