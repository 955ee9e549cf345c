package main

import (
	"github.com/alecthomas/kong"

	"github.com/DiscordGophers/docmaker/logging"
	"github.com/DiscordGophers/docmaker/logging/gologger"
)

type app struct {
	cfg configuration
	log logging.Logger
}

var cli struct {
	Config    string `help:"Configuration file." default:"config.json" type:"path"`
	LogLevel  string `name:"log-level" help:"Log level (trace, debug, info, warn, error)."`
	LogFormat string `name:"log-format" help:"Log format (console, json, pretty)."`

	Markdown markdownCmd `cmd:"" help:"Render a document as Markdown"`
	Rich     richCmd     `cmd:"" help:"Render a document as textile or HTML and extract attachments"`
	Inspect  inspectCmd  `cmd:"" help:"Summarise a document tree"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("docmaker"),
		kong.Description("Render document trees to Markdown, textile and HTML"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	cfg, err := loadConfig(cli.Config)
	ctx.FatalIfErrorf(err)
	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}
	if cli.LogFormat != "" {
		cfg.Log.Format = cli.LogFormat
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	ctx.FatalIfErrorf(err)

	a := &app{cfg: cfg, log: logging.Module(provider, "docmaker")}
	ctx.FatalIfErrorf(ctx.Run(a))
}
