package node

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	input := []byte(`
[
	"plain",
	{"typ": "text", "children": "hello"},
	{"typ": "markdown", "children": "# Title"},
	{"typ": "verbatim", "children": "\ncode\n"},
	{"typ": "verbatim", "children": [{"typ": "text", "children": "nested"}]},
	{"typ": "image", "imageblob": "iVBOR", "filename": "a.png", "caption": "A"},
	{"typ": "iter", "children": ["x", "y"]},
	{"kind": "text", "content": "alias"},
	{"typ": "bogus"},
	{"typ": "text", "children": 42}
]
`)

	doc, err := ParseJSON(input)
	require.NoError(t, err)

	expected := Iter{
		Str("plain"),
		Text("hello"),
		Markdown("# Title"),
		Verbatim{Content: Str("\ncode\n")},
		Verbatim{Content: Iter{Text("nested")}},
		Image{Filename: "a.png", Caption: "A", Blob: "iVBOR"},
		Iter{Str("x"), Str("y")},
		Text("alias"),
		Unknown{Value: map[string]any{"typ": "bogus"}},
		Unknown{Value: map[string]any{"typ": "text", "children": float64(42)}},
	}
	assert.Equal(t, expected, doc)
}

func TestParseJSON_Invalid(t *testing.T) {
	_, err := ParseJSON([]byte(`[{"typ":`))
	assert.Error(t, err)
}

func TestParseYAML(t *testing.T) {
	input := []byte(`
- typ: text
  children: hello
- typ: image
  imageblob: R0lGOD
- typ: iter
  children:
    - typ: markdown
      children: "- item"
`)

	doc, err := ParseYAML(input)
	require.NoError(t, err)

	expected := Iter{
		Text("hello"),
		Image{Blob: "R0lGOD"},
		Iter{Markdown("- item")},
	}
	assert.Equal(t, expected, doc)
}

func TestEmpty(t *testing.T) {
	cases := []struct {
		name  string
		node  Node
		empty bool
	}{
		{name: "nil", node: nil, empty: true},
		{name: "empty string", node: Str(""), empty: true},
		{name: "empty sequence", node: Iter{}, empty: true},
		{name: "empty record", node: Unknown{Value: map[string]any{}}, empty: true},
		{name: "string", node: Str("x"), empty: false},
		{name: "empty text record", node: Text(""), empty: false},
		{name: "unknown record", node: Unknown{Value: map[string]any{"typ": "bogus"}}, empty: false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.empty, Empty(c.node))
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	doc := Iter{
		Str("plain"),
		Text("hello"),
		Verbatim{Content: Iter{Markdown("**b**")}},
		Image{Caption: "cap", Blob: "iVBOR"},
	}

	data, err := MarshalIndent(doc)
	require.NoError(t, err)

	var v any
	require.NoError(t, json.Unmarshal(data, &v))
	assert.Equal(t, doc, Decode(v))
	assert.Contains(t, string(data), "\n  ")
}

func TestRepr(t *testing.T) {
	assert.Equal(t, `{"children":"<b>","typ":"text"}`, Repr(Text("<b>")))
	assert.Equal(t, `"plain"`, Repr(Str("plain")))
	assert.Equal(t, `null`, Repr(nil))
}

func TestCount(t *testing.T) {
	doc := Iter{
		Text("a"),
		Iter{Image{Blob: "data:image/png;base64,AAAA"}, Str("b")},
		Verbatim{Content: Str("c")},
	}

	s := Count(doc)
	assert.Equal(t, 7, s.Nodes)
	assert.Equal(t, 3, s.Depth)
	assert.Equal(t, 2, s.Kinds["iter"])
	assert.Equal(t, 1, s.Images)
	assert.EqualValues(t, 3, s.ImageBytes)
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		node Node
		kind string
	}{
		{node: nil, kind: "nil"},
		{node: Str("x"), kind: "string"},
		{node: Text("x"), kind: "text"},
		{node: Markdown("x"), kind: "markdown"},
		{node: Verbatim{}, kind: "verbatim"},
		{node: Image{}, kind: "image"},
		{node: Iter{}, kind: "iter"},
		{node: Unknown{Value: 3}, kind: "unknown"},
	}

	for _, c := range cases {
		t.Run(c.kind, func(t *testing.T) {
			assert.Equal(t, c.kind, KindOf(c.node))
		})
	}
}

func TestMarshalSource(t *testing.T) {
	source, err := ReadJSON([]byte(`{"kind": "iter", "content": [{"typ": "text", "children": "a", "author": "kim"}]}`))
	require.NoError(t, err)

	data, err := MarshalSource(source)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind": "iter", "content": [{"typ": "text", "children": "a", "author": "kim"}]}`, string(data))
	assert.Equal(t, Iter{Text("a")}, Decode(source))

	data, err = MarshalSource([]any{map[any]any{1: "x", "nested": map[any]any{true: "<b>"}}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"1": "x", "nested": {"true": "<b>"}}]`, string(data))
	assert.Contains(t, string(data), "<b>")
}
