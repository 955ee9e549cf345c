package main

import (
	"encoding/json"
	"io/fs"
	"os"

	"github.com/pkg/errors"
)

type configuration struct {
	Log      logConfig      `json:"log"`
	Markdown markdownConfig `json:"markdown"`
	Rich     richConfig     `json:"rich"`
}

type logConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

type markdownConfig struct {
	EmbedImages bool `json:"embed_images"`
}

type richConfig struct {
	Dialect     string `json:"dialect"`
	Native      bool   `json:"native"`
	Attachments bool   `json:"attachments"`
}

func defaultConfig() configuration {
	return configuration{
		Log: logConfig{Level: "info", Format: "console"},
		Markdown: markdownConfig{
			EmbedImages: true,
		},
		Rich: richConfig{
			Dialect:     "textile",
			Attachments: true,
		},
	}
}

// loadConfig reads the configuration file at path. A missing file yields the
// defaults.
func loadConfig(path string) (configuration, error) {
	fileBytes, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return defaultConfig(), nil
	}
	if err != nil {
		return configuration{}, errors.Wrap(err, "could not open config")
	}
	return configFromBytes(fileBytes)
}

// configFromBytes parses fileBytes over the defaults, so omitted keys keep
// their default value.
func configFromBytes(fileBytes []byte) (configuration, error) {
	config := defaultConfig()
	if err := json.Unmarshal(fileBytes, &config); err != nil {
		return configuration{}, errors.Wrap(err, "could not parse config")
	}
	return config, nil
}
