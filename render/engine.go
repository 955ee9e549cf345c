// Package render walks a document tree and dispatches each node to the
// handlers of a target dialect.
//
// Rendering is total: a node whose handler fails is replaced, in place, by a
// diagnostic produced by the same handlers. No failure escapes Digest.
package render

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/DiscordGophers/docmaker/logging"
	"github.com/DiscordGophers/docmaker/node"
)

// Separator is appended after every child of an iter node.
const Separator = "\n\n"

// Fragment is one unit of rendered output.
type Fragment struct {
	Text string
	// Diagnostic marks fragments that report a failed node, or wrap such a
	// report in a verbatim block. Dialect post passes leave them untouched.
	Diagnostic bool
}

// Handlers renders the leaf kinds of one dialect. A returned error replaces
// the node's output with the result of Diagnostic.
type Handlers interface {
	Text(n node.Text) ([]string, error)
	Markdown(n node.Markdown) ([]string, error)
	// Verbatim receives the block body: a string content with leading and
	// trailing newlines trimmed, or the concatenated rendering of nested
	// content.
	Verbatim(body string) ([]string, error)
	Image(n node.Image) ([]string, error)
	Diagnostic(repr, report string) []string
}

// Engine is the recursive dispatcher. It holds no per-document state.
type Engine struct {
	h   Handlers
	log logging.Logger
}

// New returns an engine for h. A nil logger disables logging.
func New(h Handlers, log logging.Logger) *Engine {
	return &Engine{h: h, log: logging.OrNoOp(log)}
}

// Digest renders n depth-first into an ordered list of fragments.
func (e *Engine) Digest(n node.Node) []Fragment {
	if node.Empty(n) {
		return nil
	}

	frags, err := e.digest(n)
	if err != nil {
		return e.diagnose(n, err)
	}
	return frags
}

func (e *Engine) digest(n node.Node) (frags []Fragment, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic while rendering %s node: %v", node.KindOf(n), r)
		}
	}()

	switch n := n.(type) {
	case node.Str:
		return []Fragment{{Text: string(n)}}, nil
	case node.Iter:
		for _, child := range n {
			frags = append(frags, e.Digest(child)...)
			frags = append(frags, Fragment{Text: Separator})
		}
		return frags, nil
	case node.Text:
		return content(e.h.Text(n))
	case node.Markdown:
		return content(e.h.Markdown(n))
	case node.Verbatim:
		body, failed := e.verbatimBody(n.Content)
		frags, err = content(e.h.Verbatim(body))
		if failed {
			for i := range frags {
				frags[i].Diagnostic = true
			}
		}
		return frags, err
	case node.Image:
		return content(e.h.Image(n))
	}
	return nil, Notice(fmt.Sprintf("the element of type %s %s, could not be parsed.",
		node.KindOf(n), Truncate(node.Repr(n), ReprLimit)))
}

// verbatimBody also reports whether the nested content carries a diagnostic.
func (e *Engine) verbatimBody(n node.Node) (string, bool) {
	if s, ok := n.(node.Str); ok {
		return strings.Trim(string(s), "\n"), false
	}

	frags := e.Digest(n)
	for _, f := range frags {
		if f.Diagnostic {
			return Concat(frags), true
		}
	}
	return Concat(frags), false
}

func (e *Engine) diagnose(n node.Node, err error) []Fragment {
	e.log.Warn("node rendering failed", "kind", node.KindOf(n), "error", err.Error())
	return diagnostics(e.h.Diagnostic(Truncate(node.Repr(n), ReprLimit), Report(err)))
}

// Rewrite applies fn to every non-diagnostic fragment. A fragment fn fails
// on is replaced by a diagnostic.
func (e *Engine) Rewrite(frags []Fragment, fn func(string) (string, error)) []Fragment {
	out := make([]Fragment, 0, len(frags))
	for _, f := range frags {
		if f.Diagnostic {
			out = append(out, f)
			continue
		}
		text, err := fn(f.Text)
		if err != nil {
			e.log.Warn("fragment rewrite failed", "error", err.Error())
			out = append(out, diagnostics(e.h.Diagnostic(Truncate(f.Text, ReprLimit), Report(err)))...)
			continue
		}
		out = append(out, Fragment{Text: text})
	}
	return out
}

func content(lines []string, err error) ([]Fragment, error) {
	if err != nil {
		return nil, err
	}
	frags := make([]Fragment, len(lines))
	for i, l := range lines {
		frags[i] = Fragment{Text: l}
	}
	return frags, nil
}

func diagnostics(lines []string) []Fragment {
	frags := make([]Fragment, len(lines))
	for i, l := range lines {
		frags[i] = Fragment{Text: l, Diagnostic: true}
	}
	return frags
}

// Texts returns the text of every fragment.
func Texts(frags []Fragment) []string {
	out := make([]string, len(frags))
	for i, f := range frags {
		out[i] = f.Text
	}
	return out
}

// Join assembles a document from its fragments, one per line.
func Join(frags []Fragment) string {
	return strings.Join(Texts(frags), "\n")
}

// Concat assembles fragments without a separator.
func Concat(frags []Fragment) string {
	return strings.Join(Texts(frags), "")
}
