// Package node models the document tree consumed by the formatters.
//
// A document is a tree of nodes. Leaves carry literal text, Markdown source,
// verbatim blocks or images; Iter nodes hold ordered children. Anything that
// does not match a recognised shape is kept as Unknown so a formatter can
// report it in place instead of failing the whole document.
package node

// Kind is the discriminator carried by structured records.
type Kind string

const (
	KindText     Kind = "text"
	KindMarkdown Kind = "markdown"
	KindVerbatim Kind = "verbatim"
	KindImage    Kind = "image"
	KindIter     Kind = "iter"
)

// Node is one element of a document tree. The set of implementations is
// closed: Str, Text, Markdown, Verbatim, Image, Iter and Unknown.
type Node interface {
	node()
}

type (
	// Str is a bare string, rendered as-is.
	Str string
	// Text is a text record.
	Text string
	// Markdown is a record holding Markdown source.
	Markdown string
	// Iter is an ordered list of children, either an iter record or a bare
	// sequence.
	Iter []Node
)

// Verbatim is rendered as a preformatted block. Content is usually a Str, but
// may be any node; nested content is rendered first and the result wrapped.
type Verbatim struct {
	Content Node
}

// Image holds a base64 payload, optionally prefixed with a data URI header
// such as "data:image/png;base64,".
type Image struct {
	Filename string
	Caption  string
	Blob     string
}

// Unknown holds a decoded value that is not a recognised node.
type Unknown struct {
	Value any
}

func (Str) node()      {}
func (Text) node()     {}
func (Markdown) node() {}
func (Verbatim) node() {}
func (Image) node()    {}
func (Iter) node()     {}
func (Unknown) node()  {}

// KindOf names the variant of n, for diagnostics and statistics.
func KindOf(n Node) string {
	switch n.(type) {
	case nil:
		return "nil"
	case Str:
		return "string"
	case Text:
		return string(KindText)
	case Markdown:
		return string(KindMarkdown)
	case Verbatim:
		return string(KindVerbatim)
	case Image:
		return string(KindImage)
	case Iter:
		return string(KindIter)
	}
	return "unknown"
}

// Empty reports whether n renders to nothing at all: nil, the empty string,
// an empty sequence, or an empty record.
func Empty(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case Str:
		return v == ""
	case Iter:
		return len(v) == 0
	case Unknown:
		return falsy(v.Value)
	}
	return false
}

func falsy(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case int:
		return v == 0
	case float64:
		return v == 0
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}
	return false
}
