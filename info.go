package main

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/k0kubun/pp"

	"github.com/DiscordGophers/docmaker/markdown"
	"github.com/DiscordGophers/docmaker/node"
	"github.com/DiscordGophers/docmaker/render"
	"github.com/DiscordGophers/docmaker/rich"
)

type inspectCmd struct {
	Document string `arg:"" help:"Document file (JSON or YAML), - for stdin."`
	Dump     bool   `help:"Pretty-print the decoded tree."`
	NoColor  bool   `name:"no-color" help:"Disable colors in the dump."`
	Preview  int    `help:"Print the first N bytes of the Markdown rendering." default:"0"`
}

func (c *inspectCmd) Run(a *app) error {
	doc, _, err := readDocument(c.Document)
	if err != nil {
		return err
	}

	if _, err := os.Stdout.Write(summary(doc).Bytes()); err != nil {
		return err
	}

	if c.Preview > 0 {
		text, omitted := preview(markdown.Convert(doc, markdown.Options{}), c.Preview)
		if omitted {
			a.log.Debug("preview truncated", "limit", c.Preview)
		}
		if _, err := fmt.Fprintf(os.Stdout, "\n%s\n\n", text); err != nil {
			return err
		}
	}

	if c.Dump {
		if c.NoColor {
			pp.ColoringEnabled = false
		}
		_, err = pp.Fprintln(os.Stdout, doc)
	}
	return err
}

func summary(doc node.Node) *bytes.Buffer {
	stats := node.Count(doc)

	kinds := make([]string, 0, len(stats.Kinds))
	for k := range stats.Kinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	// a verbatim fragment may wrap several reports
	var failing int
	frags, _ := rich.NewFormatter(rich.Options{}).Render(doc)
	for _, f := range frags {
		if f.Diagnostic {
			failing += strings.Count(f.Text, render.DiagnosticHead)
		}
	}

	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, "Nodes: %s\n", humanize.Comma(int64(stats.Nodes)))
	fmt.Fprintf(buf, "Depth: %d\n", stats.Depth)
	for _, k := range kinds {
		fmt.Fprintf(buf, "  %s: %s\n", k, humanize.Comma(int64(stats.Kinds[k])))
	}
	fmt.Fprintf(buf, "Images: %d (%s)\n", stats.Images, humanize.Bytes(stats.ImageBytes))
	fmt.Fprintf(buf, "Failing nodes: %d\n", failing)
	return buf
}
