package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/DiscordGophers/docmaker/node"
)

// readDocument loads the document at path, "-" meaning stdin, and decodes it
// according to documentFormat. The generic value it was decoded from is
// returned alongside the tree.
func readDocument(path string) (node.Node, any, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, nil, errors.Wrapf(err, "could not read %s", path)
	}

	var source any
	switch documentFormat(path) {
	case "yaml":
		source, err = node.ReadYAML(data)
	default:
		source, err = node.ReadJSON(data)
	}
	if err != nil {
		return nil, nil, err
	}
	return node.Decode(source), source, nil
}

// documentFormat is "yaml" for .yaml and .yml files and "json" otherwise.
func documentFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "json"
}

func writeOutput(path, text string) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(os.Stdout, text+"\n")
		return err
	}
	return errors.Wrapf(os.WriteFile(path, []byte(text), 0o644), "could not write %s", path)
}
