package schema

import (
	"sort"

	"github.com/vine-io/flowlayout/bpmn"
)

// Mode is the positioning mode of a layout config.
type Mode int32

const (
	// ModeColumn places elements on a column grid derived from Layout.
	ModeColumn Mode = iota + 1
	// ModeLaneRelative reproduces exported geometry relative to lane tops.
	ModeLaneRelative
)

func (m Mode) String() string {
	switch m {
	case ModeColumn:
		return "column"
	case ModeLaneRelative:
		return "lane-relative"
	}
	return "unknown"
}

// LaneDescriptor describes one lane. Order is the canonical top to bottom
// position; TopY and Height are kept for reference only.
type LaneDescriptor struct {
	Name   string `json:"name"`
	Order  int    `json:"order"`
	TopY   int    `json:"y,omitempty"`
	Height int    `json:"h,omitempty"`
}

// ElementRecord is one diagram node. Name is the only cross reference key
// for lanes, flows and data associations.
type ElementRecord struct {
	Name string           `json:"name"`
	Type bpmn.ElementType `json:"type"`
	// Lane is empty when the element belongs to no lane.
	Lane         string `json:"lane,omitempty"`
	X            int    `json:"x"`
	YOffset      int    `json:"yOffset"`
	W            int    `json:"w"`
	H            int    `json:"h"`
	IsDataObject bool   `json:"isDataObject,omitempty"`
	// Exact records carry geometry, the others are placed through Layout.
	Exact bool `json:"exact,omitempty"`
}

type FlowRecord struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Guard  string `json:"guard,omitempty"`
}

// Direction of a data association relative to the task.
type Direction string

const (
	// DirectionOutput is a task writing a data object.
	DirectionOutput Direction = "output"
	// DirectionInput is a task reading a data object.
	DirectionInput Direction = "input"
)

func (d Direction) Valid() bool {
	return d == DirectionOutput || d == DirectionInput
}

// DataAssociationRecord links a task and a data object. Source and Target
// follow the data direction: output is (task, object), input is
// (object, task).
type DataAssociationRecord struct {
	Source    string    `json:"source"`
	Target    string    `json:"target"`
	Direction Direction `json:"direction"`
}

// Task returns the name of the task side.
func (r DataAssociationRecord) Task() string {
	if r.Direction == DirectionInput {
		return r.Target
	}
	return r.Source
}

// DataObject returns the name of the data object side.
func (r DataAssociationRecord) DataObject() string {
	if r.Direction == DirectionInput {
		return r.Source
	}
	return r.Target
}

// ColumnSlot is the column mode position of an element.
type ColumnSlot struct {
	Column int `json:"column"`
	// Nudge is an explicit vertical offset from the lane center.
	Nudge    int  `json:"nudge,omitempty"`
	HasNudge bool `json:"hasNudge,omitempty"`
}

// LayoutConfig is the record exchanged between the exporter and the
// importer.
type LayoutConfig struct {
	Name             string                  `json:"name"`
	Lanes            []LaneDescriptor        `json:"lanes"`
	Elements         []ElementRecord         `json:"elements"`
	Flows            []FlowRecord            `json:"flows"`
	DataAssociations []DataAssociationRecord `json:"dataAssociations,omitempty"`
	Layout           map[string]ColumnSlot   `json:"layout,omitempty"`
	Settings         Settings                `json:"settings"`
	// Explicit marks the settings written in the config itself, even those
	// equal to a default. Only its non-zero fields are meaningful.
	Explicit         Settings                `json:"-"`
}

func New(name string) *LayoutConfig {
	return &LayoutConfig{
		Name:             name,
		Lanes:            make([]LaneDescriptor, 0),
		Elements:         make([]ElementRecord, 0),
		Flows:            make([]FlowRecord, 0),
		DataAssociations: make([]DataAssociationRecord, 0),
		Layout:           make(map[string]ColumnSlot),
		Settings:         DefaultSettings(),
	}
}

// Override applies the non-zero fields of s and marks them explicit.
func (c *LayoutConfig) Override(s Settings) {
	c.Settings = c.Settings.Merge(s)
	c.Explicit = c.Explicit.Merge(s)
}

// Overrides returns the settings that take precedence over caller options:
// the explicit ones and those that differ from the defaults.
func (c *LayoutConfig) Overrides() Settings {
	return c.Settings.Overrides().Merge(c.Settings.Masked(c.Explicit))
}

// Mode detects the positioning mode from the element records.
func (c *LayoutConfig) Mode() Mode {
	for _, elem := range c.Elements {
		if elem.Exact {
			return ModeLaneRelative
		}
	}
	if len(c.Elements) > 0 || len(c.Layout) > 0 {
		return ModeColumn
	}
	return ModeLaneRelative
}

func (c *LayoutConfig) Element(name string) (ElementRecord, bool) {
	for _, elem := range c.Elements {
		if elem.Name == name {
			return elem, true
		}
	}
	return ElementRecord{}, false
}

func (c *LayoutConfig) Lane(name string) (LaneDescriptor, bool) {
	for _, lane := range c.Lanes {
		if lane.Name == name {
			return lane, true
		}
	}
	return LaneDescriptor{}, false
}

// LaneNames returns the lane names in canonical order.
func (c *LayoutConfig) LaneNames() []string {
	lanes := c.OrderedLanes()
	names := make([]string, 0, len(lanes))
	for _, lane := range lanes {
		names = append(names, lane.Name)
	}
	return names
}

// OrderedLanes returns a copy of the lanes sorted by Order, stable.
func (c *LayoutConfig) OrderedLanes() []LaneDescriptor {
	out := make([]LaneDescriptor, len(c.Lanes))
	copy(out, c.Lanes)
	sortLanes(out)
	return out
}

// ElementsInLane returns the records of one lane in record order. An empty
// lane name selects the unassigned elements.
func (c *LayoutConfig) ElementsInLane(lane string) []ElementRecord {
	out := make([]ElementRecord, 0)
	for _, elem := range c.Elements {
		if elem.Lane == lane {
			out = append(out, elem)
		}
	}
	return out
}

// Tags maps element names to their types.
func (c *LayoutConfig) Tags() map[string]bpmn.ElementType {
	tags := make(map[string]bpmn.ElementType, len(c.Elements))
	for _, elem := range c.Elements {
		tags[elem.Name] = elem.Type
	}
	return tags
}

func sortLanes(lanes []LaneDescriptor) {
	sort.SliceStable(lanes, func(i, j int) bool {
		return lanes[i].Order < lanes[j].Order
	})
}
