package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/DiscordGophers/docmaker/logging"
	"github.com/DiscordGophers/docmaker/markdown"
	"github.com/DiscordGophers/docmaker/rich"
)

const manifestFile = "attachments.json"

type markdownCmd struct {
	Document    string `arg:"" help:"Document file (JSON or YAML), - for stdin."`
	Out         string `short:"o" help:"Output file, stdout when empty." type:"path"`
	ElideImages bool   `name:"elide-images" help:"Elide image payloads instead of inlining them."`
}

func (c *markdownCmd) Run(a *app) error {
	doc, _, err := readDocument(c.Document)
	if err != nil {
		return err
	}

	text := markdown.Convert(doc, markdown.Options{
		EmbedImages: a.cfg.Markdown.EmbedImages && !c.ElideImages,
		Logger:      logging.WithFields(a.log, map[string]any{"renderer": "markdown"}),
	})
	a.log.Info("rendered document", "renderer", "markdown", "size", humanize.Bytes(uint64(len(text))))
	return writeOutput(c.Out, text)
}

type richCmd struct {
	Document       string `arg:"" help:"Document file (JSON or YAML), - for stdin."`
	Out            string `short:"o" help:"Output file, stdout when empty." type:"path"`
	Dialect        string `help:"Output dialect (textile, html). Defaults to the configured dialect."`
	Native         bool   `help:"Write attachments with an upload manifest instead of doc.json."`
	NoAttachments  bool   `name:"no-attachments" help:"Do not collect attachments."`
	AttachmentsDir string `name:"attachments-dir" short:"a" help:"Directory attachments are written to." type:"path"`
}

func (c *richCmd) Run(a *app) error {
	dialect := c.Dialect
	if dialect == "" {
		dialect = a.cfg.Rich.Dialect
	}
	d, err := rich.ParseDialect(dialect)
	if err != nil {
		return err
	}

	doc, source, err := readDocument(c.Document)
	if err != nil {
		return err
	}

	out := rich.Convert(doc, rich.Options{
		Source:             source,
		IncludeAttachments: a.cfg.Rich.Attachments && !c.NoAttachments,
		Native:             a.cfg.Rich.Native || c.Native,
		Dialect:            d,
		Logger:             logging.WithFields(a.log, map[string]any{"renderer": string(d)}),
	})
	a.log.Info("rendered document", "renderer", string(d), "size", humanize.Bytes(uint64(len(out.Text))))

	if err := writeOutput(c.Out, out.Text); err != nil {
		return err
	}
	return a.saveAttachments(c.AttachmentsDir, out)
}

// saveAttachments writes the attachments of out into dir. Native attachments
// are accompanied by a manifest of their descriptors.
func (a *app) saveAttachments(dir string, out rich.Output) error {
	files := out.Files
	if len(out.Attachments) > 0 {
		files = make(map[string][]byte, len(out.Attachments)+1)
		for _, att := range out.Attachments {
			files[att.Filename] = att.Content
		}
		manifest, err := json.MarshalIndent(out.Attachments, "", "  ")
		if err != nil {
			return errors.Wrap(err, "could not encode attachment manifest")
		}
		files[manifestFile] = manifest
	}
	if len(files) == 0 {
		return nil
	}

	if dir == "" {
		a.log.Warn("attachments were extracted but no directory was given", "count", len(files))
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "could not create %s", dir)
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		content := files[name]
		path := filepath.Join(dir, filepath.Base(name))
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return errors.Wrapf(err, "could not write attachment %s", name)
		}
		a.log.Info("wrote attachment", "path", path, "size", humanize.Bytes(uint64(len(content))))
	}
	return nil
}
