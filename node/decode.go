package node

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Wire keys used by the authoring library. The aliases are accepted on input.
const (
	keyKind     = "typ"
	keyChildren = "children"
	keyBlob     = "imageblob"
	keyFilename = "filename"
	keyCaption  = "caption"

	aliasKind     = "kind"
	aliasChildren = "content"
	aliasBlob     = "imageBlob"
)

// ReadJSON unmarshals data into the generic form Decode accepts. The value
// keeps every field of the input, including the ones no node uses.
func ReadJSON(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(err, "could not parse json document")
	}
	return v, nil
}

// ReadYAML is ReadJSON for YAML input.
func ReadYAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(err, "could not parse yaml document")
	}
	return v, nil
}

// ParseJSON decodes a JSON document. It only fails when data is not valid
// JSON; unrecognised shapes become Unknown nodes.
func ParseJSON(data []byte) (Node, error) {
	v, err := ReadJSON(data)
	if err != nil {
		return nil, err
	}
	return Decode(v), nil
}

// ParseYAML decodes a YAML document the same way ParseJSON does.
func ParseYAML(data []byte) (Node, error) {
	v, err := ReadYAML(data)
	if err != nil {
		return nil, err
	}
	return Decode(v), nil
}

// Decode converts a generic value, as produced by encoding/json or yaml, into
// a Node. It never fails.
func Decode(v any) Node {
	switch v := v.(type) {
	case nil:
		return nil
	case Node:
		return v
	case string:
		return Str(v)
	case []any:
		children := make(Iter, 0, len(v))
		for _, c := range v {
			children = append(children, Decode(c))
		}
		return children
	case map[string]any:
		return decodeRecord(v)
	case map[any]any:
		return decodeRecord(stringKeys(v))
	}
	return Unknown{Value: v}
}

func decodeRecord(m map[string]any) Node {
	kind, ok := lookup(m, keyKind, aliasKind).(string)
	if !ok {
		return Unknown{Value: m}
	}
	children := lookup(m, keyChildren, aliasChildren)

	switch Kind(kind) {
	case KindText:
		if s, ok := optString(children); ok {
			return Text(s)
		}
	case KindMarkdown:
		if s, ok := optString(children); ok {
			return Markdown(s)
		}
	case KindVerbatim:
		if children == nil {
			return Verbatim{Content: Str("")}
		}
		return Verbatim{Content: Decode(children)}
	case KindIter:
		switch c := children.(type) {
		case nil:
			return Iter{}
		case []any:
			return Decode(c)
		}
	case KindImage:
		blob, ok1 := optString(lookup(m, keyBlob, aliasBlob))
		filename, ok2 := optString(m[keyFilename])
		caption, ok3 := optString(m[keyCaption])
		if ok1 && ok2 && ok3 {
			return Image{Filename: filename, Caption: caption, Blob: blob}
		}
	}
	return Unknown{Value: m}
}

func lookup(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}

// optString accepts a missing value as the empty string.
func optString(v any) (string, bool) {
	switch v := v.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	}
	return "", false
}

func stringKeys(m map[any]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[fmt.Sprint(k)] = plain(v)
	}
	return out
}

// plain rewrites YAML mappings with non-string keys, at any depth, into
// maps encoding/json can marshal.
func plain(v any) any {
	switch v := v.(type) {
	case map[any]any:
		return stringKeys(v)
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, c := range v {
			out[k] = plain(c)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, c := range v {
			out[i] = plain(c)
		}
		return out
	}
	return v
}
