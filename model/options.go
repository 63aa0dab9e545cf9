package model

import (
	"github.com/vine-io/flowlayout/bpmn"
)

const (
	DefaultLaneHeight = 200
	DefaultLaneWidth  = 1200
	// space kept between lane content and the lane bottom
	DefaultLanePadding = 20
)

type Option func(*Options)

type Options struct {
	Capabilities bpmn.Capabilities
	// UnmaskLatency is the number of Graphics queries a new element
	// stays hidden for.
	UnmaskLatency int
	// Masked elements, by name, only appear through Unmask.
	Masked      map[string]struct{}
	LaneHeight  int
	LaneWidth   int
	LanePadding int
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Capabilities: bpmn.FullCapabilities(),
		Masked:       make(map[string]struct{}),
		LaneHeight:   DefaultLaneHeight,
		LaneWidth:    DefaultLaneWidth,
		LanePadding:  DefaultLanePadding,
	}
	for _, o := range opts {
		o(&options)
	}
	return options
}

func WithCapabilities(caps bpmn.Capabilities) Option {
	return func(o *Options) {
		o.Capabilities = caps
	}
}

func WithUnmaskLatency(n int) Option {
	return func(o *Options) {
		o.UnmaskLatency = n
	}
}

func WithMaskedElements(names ...string) Option {
	return func(o *Options) {
		for _, name := range names {
			o.Masked[name] = struct{}{}
		}
	}
}

func WithLaneHeight(h int) Option {
	return func(o *Options) {
		o.LaneHeight = h
	}
}

func WithLaneWidth(w int) Option {
	return func(o *Options) {
		o.LaneWidth = w
	}
}

func WithLanePadding(p int) Option {
	return func(o *Options) {
		o.LanePadding = p
	}
}
