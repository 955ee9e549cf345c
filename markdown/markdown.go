// Package markdown renders document trees as Markdown.
package markdown

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/DiscordGophers/docmaker/logging"
	"github.com/DiscordGophers/docmaker/node"
	"github.com/DiscordGophers/docmaker/render"
)

// elideLimit is how much of an image payload is kept when images are not
// embedded.
const elideLimit = 20

type Options struct {
	// EmbedImages inlines image payloads as data URIs. When false the payload
	// is elided to a short placeholder.
	EmbedImages bool
	Logger      logging.Logger
	// Now names images that have neither filename nor caption. Defaults to
	// time.Now.
	Now func() time.Time
}

// Convert renders doc as a Markdown document.
func Convert(doc node.Node, opts Options) string {
	return render.Join(NewFormatter(opts).Digest(doc))
}

// Formatter renders nodes as Markdown fragments.
type Formatter struct {
	engine *render.Engine
}

func NewFormatter(opts Options) *Formatter {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	h := handlers{embed: opts.EmbedImages, now: opts.Now}
	return &Formatter{engine: render.New(h, opts.Logger)}
}

// Digest renders n into fragments.
func (f *Formatter) Digest(n node.Node) []render.Fragment {
	return f.engine.Digest(n)
}

type handlers struct {
	embed bool
	now   func() time.Time
}

func (handlers) Text(n node.Text) ([]string, error) {
	return []string{string(n)}, nil
}

func (handlers) Markdown(n node.Markdown) ([]string, error) {
	return []string{string(n)}, nil
}

func (handlers) Verbatim(body string) ([]string, error) {
	return []string{fence(body)}, nil
}

func (h handlers) Image(img node.Image) ([]string, error) {
	if img.Blob == "" {
		return nil, errors.New("image has no payload")
	}

	var parts []string
	if img.Filename != "" {
		parts = append(parts, img.Filename)
	}
	if img.Caption != "" {
		parts = append(parts, img.Caption)
	}
	description := strings.Join(parts, " ")
	if description == "" {
		description = fmt.Sprintf("%d_embedded_image", h.now().UnixNano())
	}

	lines := []string{""}
	if img.Filename != "" {
		lines = append(lines, "*filename:* "+img.Filename, "")
	}
	lines = append(lines, "")

	// The payload is always labelled as PNG, whatever its actual type.
	if h.embed {
		lines = append(lines, fmt.Sprintf("![%s](data:image/png;base64,%s)", description, img.Blob))
	} else {
		lines = append(lines, fmt.Sprintf("#[%s](data:image/png;base64,%s)", description, render.Truncate(img.Blob, elideLimit)))
	}
	lines = append(lines, "")

	if img.Caption != "" {
		lines = append(lines, "*caption:* "+img.Caption, "")
	}
	return lines, nil
}

func (handlers) Diagnostic(repr, report string) []string {
	head := fmt.Sprintf("%s:\n\"e=%s\"\n\n", render.DiagnosticHead, repr)
	return []string{head, fence(strings.Trim(report, "\n"))}
}

func fence(body string) string {
	return "```\n" + body + "\n```"
}
