package exporter

import (
	"github.com/vine-io/flowlayout/bpmn"
	"github.com/vine-io/flowlayout/report"
	"github.com/vine-io/flowlayout/schema"
)

type Option func(*Options)

type Options struct {
	Settings schema.Settings
	// Capabilities overrides the ones reported by the modeler.
	Capabilities *bpmn.Capabilities
	// LoggerOptions are applied to the logger of every run.
	LoggerOptions []report.LoggerOption
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Settings:      schema.DefaultSettings(),
		LoggerOptions: make([]report.LoggerOption, 0),
	}
	for _, o := range opts {
		o(&options)
	}
	return options
}

// WithSettings overrides the non-zero fields of the default settings.
func WithSettings(s schema.Settings) Option {
	return func(o *Options) {
		o.Settings = o.Settings.Merge(s)
	}
}

func WithCapabilities(caps bpmn.Capabilities) Option {
	return func(o *Options) {
		o.Capabilities = &caps
	}
}

func WithLoggerOptions(opts ...report.LoggerOption) Option {
	return func(o *Options) {
		o.LoggerOptions = append(o.LoggerOptions, opts...)
	}
}
