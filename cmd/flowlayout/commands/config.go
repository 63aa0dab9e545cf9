package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/vine-io/flowlayout/bpmn"
	"github.com/vine-io/flowlayout/exporter"
	"github.com/vine-io/flowlayout/importer"
	"github.com/vine-io/flowlayout/report"
	"github.com/vine-io/flowlayout/schema"
	"gopkg.in/yaml.v2"
)

// fileConfig is the content of the settings file, e.g.
//
//	format: yaml
//	settings:
//	  spacing: 180
//	capabilities:
//	  dataObjects: false
type fileConfig struct {
	Format       string             `yaml:"format,omitempty"`
	Settings     schema.Settings    `yaml:"settings,omitempty"`
	Capabilities *bpmn.Capabilities `yaml:"capabilities,omitempty"`
	// Workers bounds the batch export pool.
	Workers int `yaml:"workers,omitempty"`
}

func loadConfig(path string, optional bool) (*fileConfig, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expand %s: %w", path, err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return &fileConfig{}, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := &fileConfig{}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", expanded, err)
	}
	if err = cfg.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("settings %s: %w", expanded, err)
	}
	return cfg, nil
}

func (c *fileConfig) formatName() string {
	if c == nil {
		return ""
	}
	return c.Format
}

func (c *fileConfig) workers() int {
	if c == nil || c.Workers <= 0 {
		return 4
	}
	return c.Workers
}

func loggerOptions() []report.LoggerOption {
	if quiet {
		return []report.LoggerOption{report.WithQuiet()}
	}
	return nil
}

func exporterOptions() []exporter.Option {
	opts := []exporter.Option{exporter.WithLoggerOptions(loggerOptions()...)}
	if settings != nil {
		opts = append(opts, exporter.WithSettings(settings.Settings))
		if settings.Capabilities != nil {
			opts = append(opts, exporter.WithCapabilities(*settings.Capabilities))
		}
	}
	return opts
}

func importerOptions() []importer.Option {
	opts := []importer.Option{importer.WithLoggerOptions(loggerOptions()...)}
	if settings != nil {
		opts = append(opts, importer.WithSettings(settings.Settings))
		if settings.Capabilities != nil {
			opts = append(opts, importer.WithCapabilities(*settings.Capabilities))
		}
	}
	return opts
}
