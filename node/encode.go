package node

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Encode converts n back into the generic wire form. Iter nodes are encoded
// as bare sequences.
func Encode(n Node) any {
	switch n := n.(type) {
	case nil:
		return nil
	case Str:
		return string(n)
	case Text:
		return map[string]any{keyKind: string(KindText), keyChildren: string(n)}
	case Markdown:
		return map[string]any{keyKind: string(KindMarkdown), keyChildren: string(n)}
	case Verbatim:
		return map[string]any{keyKind: string(KindVerbatim), keyChildren: Encode(n.Content)}
	case Image:
		m := map[string]any{keyKind: string(KindImage), keyBlob: n.Blob}
		if n.Filename != "" {
			m[keyFilename] = n.Filename
		}
		if n.Caption != "" {
			m[keyCaption] = n.Caption
		}
		return m
	case Iter:
		children := make([]any, 0, len(n))
		for _, c := range n {
			children = append(children, Encode(c))
		}
		return children
	case Unknown:
		return n.Value
	}
	return nil
}

// MarshalIndent renders n as pretty-printed JSON.
func MarshalIndent(n Node) ([]byte, error) {
	return MarshalSource(Encode(n))
}

// MarshalSource renders a generic document value, as returned by ReadJSON
// or ReadYAML, as pretty-printed JSON. Unlike MarshalIndent it keeps record
// shapes, key aliases and unused fields as they were read.
func MarshalSource(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plain(v)); err != nil {
		return nil, errors.Wrap(err, "could not encode document")
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Repr is the single line representation of n used in diagnostics.
func Repr(n Node) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Encode(n)); err != nil {
		return fmt.Sprintf("%#v", n)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
