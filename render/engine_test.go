package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DiscordGophers/docmaker/node"
)

type stubHandlers struct{}

func (stubHandlers) Text(n node.Text) ([]string, error) {
	switch n {
	case "boom":
		return nil, errors.New("text exploded")
	case "panic":
		panic("kaboom")
	}
	return []string{string(n)}, nil
}

func (stubHandlers) Markdown(n node.Markdown) ([]string, error) {
	return []string{"md:" + string(n)}, nil
}

func (stubHandlers) Verbatim(body string) ([]string, error) {
	return []string{"<" + body + ">"}, nil
}

func (stubHandlers) Image(n node.Image) ([]string, error) {
	if n.Blob == "" {
		return nil, errors.New("image has no payload")
	}
	return []string{"img:" + n.Filename}, nil
}

func (stubHandlers) Diagnostic(repr, report string) []string {
	return []string{"ERROR WHILE HANDLING ELEMENT:\n" + repr, report}
}

type warning struct {
	msg  string
	args []any
}

type recorder struct {
	warnings []warning
}

func (r *recorder) Trace(string, ...any) {}
func (r *recorder) Debug(string, ...any) {}
func (r *recorder) Info(string, ...any)  {}
func (r *recorder) Warn(msg string, args ...any) {
	r.warnings = append(r.warnings, warning{msg, args})
}
func (r *recorder) Error(string, ...any) {}
func (r *recorder) Fatal(string, ...any) {}

func TestDigest_Empty(t *testing.T) {
	e := New(stubHandlers{}, nil)

	cases := []struct {
		name string
		node node.Node
	}{
		{"nil", nil},
		{"empty string", node.Str("")},
		{"empty sequence", node.Iter{}},
		{"empty record", node.Unknown{Value: map[string]any{}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Empty(t, e.Digest(c.node))
		})
	}
}

func TestDigest_Leaves(t *testing.T) {
	e := New(stubHandlers{}, nil)

	assert.Equal(t, []string{"hi"}, Texts(e.Digest(node.Text("hi"))))
	assert.Equal(t, []string{"raw <b>"}, Texts(e.Digest(node.Str("raw <b>"))))
	assert.Equal(t, []string{"md:# T"}, Texts(e.Digest(node.Markdown("# T"))))
	assert.Equal(t, []string{"<code>"}, Texts(e.Digest(node.Verbatim{Content: node.Str("\n\ncode\n")})))
}

func TestDigest_IterOrder(t *testing.T) {
	e := New(stubHandlers{}, nil)

	doc := node.Iter{
		node.Text("A"),
		node.Image{Filename: "x.png", Blob: "iVBOR"},
		node.Iter{node.Str("B")},
	}
	expected := []string{"A", Separator, "img:x.png", Separator, "B", Separator, Separator}
	assert.Equal(t, expected, Texts(e.Digest(doc)))
}

func TestDigest_NestedVerbatim(t *testing.T) {
	e := New(stubHandlers{}, nil)

	doc := node.Verbatim{Content: node.Iter{node.Text("a"), node.Markdown("b")}}
	assert.Equal(t, []string{"<a\n\nmd:b\n\n>"}, Texts(e.Digest(doc)))
}

func TestDigest_VerbatimWrapsDiagnostic(t *testing.T) {
	e := New(stubHandlers{}, nil)

	frags := e.Digest(node.Verbatim{Content: node.Iter{node.Text("a"), node.Text("boom")}})
	require.Len(t, frags, 1)
	assert.True(t, frags[0].Diagnostic)
	assert.Contains(t, frags[0].Text, DiagnosticHead)

	frags = e.Digest(node.Verbatim{Content: node.Iter{node.Text("a")}})
	require.Len(t, frags, 1)
	assert.False(t, frags[0].Diagnostic)
}

func TestDigest_HandlerError(t *testing.T) {
	log := &recorder{}
	e := New(stubHandlers{}, log)

	frags := e.Digest(node.Iter{node.Text("ok"), node.Text("boom"), node.Text("after")})
	require.Len(t, frags, 7)

	assert.Equal(t, "ok", frags[0].Text)
	assert.False(t, frags[0].Diagnostic)

	assert.True(t, frags[2].Diagnostic)
	assert.Contains(t, frags[2].Text, "ERROR WHILE HANDLING ELEMENT")
	assert.Contains(t, frags[2].Text, `"children":"boom"`)
	assert.True(t, frags[3].Diagnostic)
	assert.Contains(t, frags[3].Text, "text exploded")
	// %+v on a github.com/pkg/errors value includes the call stack
	assert.Contains(t, frags[3].Text, "render.stubHandlers.Text")

	assert.Equal(t, "after", frags[5].Text)

	require.Len(t, log.warnings, 1)
	assert.Equal(t, "node rendering failed", log.warnings[0].msg)
	assert.Equal(t, []any{"kind", "text", "error", "text exploded"}, log.warnings[0].args)
}

func TestDigest_Panic(t *testing.T) {
	e := New(stubHandlers{}, nil)

	frags := e.Digest(node.Text("panic"))
	require.Len(t, frags, 2)
	assert.Contains(t, frags[1].Text, "panic while rendering text node: kaboom")
}

func TestDigest_Unknown(t *testing.T) {
	e := New(stubHandlers{}, nil)

	frags := e.Digest(node.Unknown{Value: map[string]any{"kind": "bogus"}})
	require.Len(t, frags, 2)
	assert.True(t, frags[0].Diagnostic)
	assert.Equal(t, "ERROR WHILE HANDLING ELEMENT:\n"+`{"kind":"bogus"}`, frags[0].Text)
	assert.Equal(t, `the element of type unknown {"kind":"bogus"}, could not be parsed.`, frags[1].Text)
}

func TestDigest_TruncatesRepr(t *testing.T) {
	e := New(stubHandlers{}, nil)

	long := strings.Repeat("x", 500)
	frags := e.Digest(node.Unknown{Value: long})
	require.NotEmpty(t, frags)

	repr := strings.TrimPrefix(frags[0].Text, "ERROR WHILE HANDLING ELEMENT:\n")
	// the quoted representation is 502 runes long
	assert.True(t, strings.HasSuffix(repr, "... (n=202 more chars hidden)"), repr)
	assert.Equal(t, `"`+strings.Repeat("x", 299)+"... (n=202 more chars hidden)", repr)
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		limit int
		out   string
	}{
		{"short", "abc", 5, "abc"},
		{"exact", "abcde", 5, "abcde"},
		{"long", "abcdefg", 5, "abcde... (n=2 more chars hidden)"},
		{"runes", "ééééé", 2, "éé... (n=3 more chars hidden)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.out, Truncate(c.in, c.limit))
		})
	}
}

func TestTruncate_Bound(t *testing.T) {
	for _, n := range []int{301, 350, 1000, 5000} {
		s := strings.Repeat("y", n)
		got := Truncate(s, ReprLimit)
		suffix := fmt.Sprintf("... (n=%d more chars hidden)", n-ReprLimit)
		assert.Equal(t, ReprLimit+len(suffix), len(got))
		assert.True(t, strings.HasSuffix(got, suffix))
	}
}

func TestReport(t *testing.T) {
	assert.Equal(t, "pre-formatted", Report(Notice("pre-formatted")))

	wrapped := Report(errors.Wrap(Notice("pre-formatted"), "wrapped"))
	assert.True(t, strings.HasPrefix(wrapped, "pre-formatted\n"), wrapped)
	assert.Contains(t, wrapped, "wrapped")
}

func TestRewrite(t *testing.T) {
	e := New(stubHandlers{}, nil)

	frags := []Fragment{
		{Text: "keep"},
		{Text: "# diag", Diagnostic: true},
		{Text: "fail"},
	}
	out := e.Rewrite(frags, func(s string) (string, error) {
		if s == "fail" {
			return "", errors.New("cannot rewrite")
		}
		return strings.ToUpper(s), nil
	})

	require.Len(t, out, 4)
	assert.Equal(t, Fragment{Text: "KEEP"}, out[0])
	assert.Equal(t, frags[1], out[1])
	assert.True(t, out[2].Diagnostic)
	assert.Contains(t, out[3].Text, "cannot rewrite")
}

func TestJoin(t *testing.T) {
	frags := []Fragment{{Text: "a"}, {Text: Separator}, {Text: "b"}}
	assert.Equal(t, "a\n\n\n\nb", Join(frags))
	assert.Equal(t, "a\n\nb", Concat(frags))
}
