package schema

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Settings are the layout constants of one import or export. Zero fields
// take the defaults.
type Settings struct {
	Spacing        int `json:"spacing,omitempty" yaml:"spacing,omitempty" msgpack:"spacing,omitempty"`
	StartX         int `json:"start_x,omitempty" yaml:"start_x,omitempty" msgpack:"start_x,omitempty"`
	TaskWidth      int `json:"task_width,omitempty" yaml:"task_width,omitempty" msgpack:"task_width,omitempty"`
	TaskHeight     int `json:"task_height,omitempty" yaml:"task_height,omitempty" msgpack:"task_height,omitempty"`
	DataWidth      int `json:"data_width,omitempty" yaml:"data_width,omitempty" msgpack:"data_width,omitempty"`
	DataHeight     int `json:"data_height,omitempty" yaml:"data_height,omitempty" msgpack:"data_height,omitempty"`
	DataOffsetX    int `json:"data_offset_x,omitempty" yaml:"data_offset_x,omitempty" msgpack:"data_offset_x,omitempty"`
	DataOffsetY    int `json:"data_offset_y,omitempty" yaml:"data_offset_y,omitempty" msgpack:"data_offset_y,omitempty"`
	WaitTimeMs     int `json:"wait_time_ms,omitempty" yaml:"wait_time_ms,omitempty" msgpack:"wait_time_ms,omitempty"`
	MaxAttempts    int `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty" msgpack:"max_attempts,omitempty"`
	Margin         int `json:"margin,omitempty" yaml:"margin,omitempty" msgpack:"margin,omitempty"`
	TaskTopOffset  int `json:"task_top_offset,omitempty" yaml:"task_top_offset,omitempty" msgpack:"task_top_offset,omitempty"`
	StackOffset    int `json:"stack_offset,omitempty" yaml:"stack_offset,omitempty" msgpack:"stack_offset,omitempty"`
	LaneCenterBias int `json:"lane_center_bias,omitempty" yaml:"lane_center_bias,omitempty" msgpack:"lane_center_bias,omitempty"`
	LanePadding    int `json:"lane_padding,omitempty" yaml:"lane_padding,omitempty" msgpack:"lane_padding,omitempty"`
	UnmaskX        int `json:"unmask_x,omitempty" yaml:"unmask_x,omitempty" msgpack:"unmask_x,omitempty"`
	UnmaskY        int `json:"unmask_y,omitempty" yaml:"unmask_y,omitempty" msgpack:"unmask_y,omitempty"`
}

const (
	DefaultSpacing        = 150
	DefaultStartX         = 80
	DefaultTaskWidth      = 120
	DefaultTaskHeight     = 60
	DefaultDataWidth      = 40
	DefaultDataHeight     = 50
	DefaultDataOffsetX    = 90
	DefaultDataOffsetY    = 10
	DefaultWaitTimeMs     = 50
	DefaultMaxAttempts    = 3
	DefaultMargin         = 50
	DefaultTaskTopOffset  = 20
	DefaultStackOffset    = 90
	DefaultLaneCenterBias = 23
	DefaultLanePadding    = 5
	DefaultUnmaskX        = 100
	DefaultUnmaskY        = 100
)

func DefaultSettings() Settings {
	return Settings{
		Spacing:        DefaultSpacing,
		StartX:         DefaultStartX,
		TaskWidth:      DefaultTaskWidth,
		TaskHeight:     DefaultTaskHeight,
		DataWidth:      DefaultDataWidth,
		DataHeight:     DefaultDataHeight,
		DataOffsetX:    DefaultDataOffsetX,
		DataOffsetY:    DefaultDataOffsetY,
		WaitTimeMs:     DefaultWaitTimeMs,
		MaxAttempts:    DefaultMaxAttempts,
		Margin:         DefaultMargin,
		TaskTopOffset:  DefaultTaskTopOffset,
		StackOffset:    DefaultStackOffset,
		LaneCenterBias: DefaultLaneCenterBias,
		LanePadding:    DefaultLanePadding,
		UnmaskX:        DefaultUnmaskX,
		UnmaskY:        DefaultUnmaskY,
	}
}

// fields lists the pointers to every setting in declaration order.
func (s *Settings) fields() []*int {
	return []*int{
		&s.Spacing, &s.StartX, &s.TaskWidth, &s.TaskHeight,
		&s.DataWidth, &s.DataHeight, &s.DataOffsetX, &s.DataOffsetY,
		&s.WaitTimeMs, &s.MaxAttempts, &s.Margin, &s.TaskTopOffset,
		&s.StackOffset, &s.LaneCenterBias, &s.LanePadding, &s.UnmaskX, &s.UnmaskY,
	}
}

// Merge returns s with every non-zero field of other applied on top.
func (s Settings) Merge(other Settings) Settings {
	src := other.fields()
	for i, dst := range s.fields() {
		if *src[i] != 0 {
			*dst = *src[i]
		}
	}
	return s
}

// WithDefaults fills the zero fields of s from DefaultSettings.
func (s Settings) WithDefaults() Settings {
	return DefaultSettings().Merge(s)
}

// Overrides returns the fields of s that differ from the defaults, the
// rest zeroed. Used to keep written literals short.
func (s Settings) Overrides() Settings {
	d := DefaultSettings()
	def := d.fields()
	for i, v := range s.fields() {
		if *v == *def[i] {
			*v = 0
		}
	}
	return s
}

// Masked keeps the fields of s that are non-zero in mask.
func (s Settings) Masked(mask Settings) Settings {
	m := mask.fields()
	for i, v := range s.fields() {
		if *m[i] == 0 {
			*v = 0
		}
	}
	return s
}

func (s Settings) IsZero() bool {
	return s == Settings{}
}

func (s Settings) WaitTime() time.Duration {
	return time.Duration(s.WaitTimeMs) * time.Millisecond
}

func (s Settings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Spacing, validation.Min(0)),
		validation.Field(&s.TaskWidth, validation.Min(0)),
		validation.Field(&s.TaskHeight, validation.Min(0)),
		validation.Field(&s.DataWidth, validation.Min(0)),
		validation.Field(&s.DataHeight, validation.Min(0)),
		validation.Field(&s.WaitTimeMs, validation.Min(0)),
		validation.Field(&s.MaxAttempts, validation.Min(0)),
		validation.Field(&s.StackOffset, validation.Min(0)),
		validation.Field(&s.LanePadding, validation.Min(0)),
	)
}
