// Package rich renders document trees into a rich markup dialect (textile or
// HTML) and extracts image payloads as attachments.
package rich

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/DiscordGophers/docmaker/logging"
	"github.com/DiscordGophers/docmaker/node"
	"github.com/DiscordGophers/docmaker/render"
)

// DocumentFile is the key under which the generic attachment shape carries
// the JSON serialisation of the rendered document.
const DocumentFile = "doc.json"

const preStyle = "margin: 15px; margin-left: 25px; padding: 10px; border: 1px solid gray; border-radius: 3px;"

type Dialect string

const (
	Textile Dialect = "textile"
	HTML    Dialect = "html"
)

// ParseDialect accepts "textile" or "html"; the empty string means Textile.
func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(strings.TrimSpace(s))); d {
	case "", Textile:
		return Textile, nil
	case HTML:
		return d, nil
	}
	return "", errors.Errorf("unknown dialect %q", s)
}

type Options struct {
	IncludeAttachments bool
	// Native returns attachments as upload descriptors rather than as a
	// filename to content map.
	Native  bool
	Dialect Dialect
	Logger  logging.Logger
	// Source is the generic value the document was decoded from, see
	// node.ReadJSON. When set, doc.json carries it as read; otherwise the
	// decoded tree is encoded back.
	Source any
}

// Output is the result of Convert. At most one of Attachments and Files is
// set, depending on Options.
type Output struct {
	Text        string
	Attachments []Attachment
	Files       map[string][]byte
}

// Convert renders doc. Rendering never fails; broken nodes show up as
// diagnostics in Text.
func Convert(doc node.Node, opts Options) Output {
	f := NewFormatter(opts)
	frags, attachments := f.Render(doc)

	out := Output{Text: render.Join(frags)}
	switch {
	case !opts.IncludeAttachments:
	case opts.Native:
		out.Attachments = attachments
	default:
		out.Files = f.files(doc, opts.Source, attachments)
	}
	return out
}

// Formatter renders nodes into the configured dialect. It is safe for
// concurrent use; attachments are returned per call.
type Formatter struct {
	dialect Dialect
	log     logging.Logger
}

func NewFormatter(opts Options) *Formatter {
	dialect := opts.Dialect
	if dialect == "" {
		dialect = Textile
	}
	return &Formatter{dialect: dialect, log: logging.OrNoOp(opts.Logger)}
}

// Render digests n, applies the dialect pass and returns the fragments with
// the attachments extracted on the way, in document order.
func (f *Formatter) Render(n node.Node) ([]render.Fragment, []Attachment) {
	h := &handlers{log: f.log}
	engine := render.New(h, f.log)

	frags := engine.Digest(n)
	switch f.dialect {
	case HTML:
		frags = engine.Rewrite(frags, newHTMLConverter().convert)
	default:
		frags = engine.Rewrite(frags, func(s string) (string, error) {
			return RewriteDialect(s), nil
		})
	}
	return frags, h.attachments
}

func (f *Formatter) files(doc node.Node, source any, attachments []Attachment) map[string][]byte {
	files := make(map[string][]byte, len(attachments)+1)

	var data []byte
	var err error
	if source != nil {
		data, err = node.MarshalSource(source)
	} else {
		data, err = node.MarshalIndent(doc)
	}
	if err != nil {
		f.log.Error("could not serialise document", "error", err.Error())
	} else {
		files[DocumentFile] = data
	}
	for _, a := range attachments {
		files[a.Filename] = a.Content
	}
	return files
}

type handlers struct {
	log         logging.Logger
	attachments []Attachment
}

func (*handlers) Text(n node.Text) ([]string, error) {
	return []string{string(n)}, nil
}

func (*handlers) Markdown(n node.Markdown) ([]string, error) {
	return []string{string(n)}, nil
}

func (*handlers) Verbatim(body string) ([]string, error) {
	return []string{fmt.Sprintf(`<pre style="%s">%s</pre>`, preStyle, body)}, nil
}

func (h *handlers) Image(img node.Image) ([]string, error) {
	a, err := extract(img)
	if err != nil {
		return nil, err
	}
	h.attachments = append(h.attachments, a)
	h.log.Debug("extracted attachment", "filename", a.Filename, "size", a.Size())

	return []string{fmt.Sprintf("!%s(%s)!\n**IMAGE:** attachment:\"%s\" %s\n",
		a.Filename, a.Description, a.Filename, a.Description)}, nil
}

func (*handlers) Diagnostic(repr, report string) []string {
	txt := fmt.Sprintf("%s:\n%s\n\n%s\n", render.DiagnosticHead, repr, report)
	return []string{fmt.Sprintf("<pre style=\"%s color: red;\">\n%s\n</pre>", preStyle, txt)}
}
