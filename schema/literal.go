package schema

import (
	"fmt"
	"math"
	"strconv"

	json "github.com/json-iterator/go"
	"github.com/vine-io/flowlayout/api"
	"github.com/vine-io/flowlayout/bpmn"
)

type laneBound struct {
	Name string `json:"name" yaml:"name" msgpack:"name"`
	Y    int    `json:"y,omitempty" yaml:"y,omitempty" msgpack:"y,omitempty"`
	H    int    `json:"h" yaml:"h" msgpack:"h"`
}

// literal is the written form of a LayoutConfig. Element lists hold
// positional tuples and the mode of each list follows from the tuple arity.
type literal struct {
	Name             string                 `json:"name" yaml:"name" msgpack:"name"`
	Lanes            []string               `json:"lanes" yaml:"lanes" msgpack:"lanes"`
	LaneBounds       []laneBound            `json:"lane_bounds,omitempty" yaml:"lane_bounds,omitempty" msgpack:"lane_bounds,omitempty"`
	Elements         [][]interface{}        `json:"elements" yaml:"elements" msgpack:"elements"`
	DataObjects      [][]interface{}        `json:"data_objects,omitempty" yaml:"data_objects,omitempty" msgpack:"data_objects,omitempty"`
	Layout           map[string]interface{} `json:"layout,omitempty" yaml:"layout,omitempty" msgpack:"layout,omitempty"`
	DataAssociations [][]string             `json:"data_associations,omitempty" yaml:"data_associations,omitempty" msgpack:"data_associations,omitempty"`
	Flows            [][]string             `json:"flows" yaml:"flows" msgpack:"flows"`
	Settings         *Settings              `json:"settings,omitempty" yaml:"settings,omitempty" msgpack:"settings,omitempty"`
}

const (
	exactElementArity  = 7
	columnElementArity = 3
	exactDataArity     = 6
	columnDataArity    = 3
)

func laneValue(lane string) interface{} {
	if lane == "" {
		return nil
	}
	return lane
}

func toLiteral(c *LayoutConfig) *literal {
	lit := &literal{
		Name:        c.Name,
		Lanes:       make([]string, 0, len(c.Lanes)),
		Elements:    make([][]interface{}, 0, len(c.Elements)),
		DataObjects: make([][]interface{}, 0),
		Layout:      make(map[string]interface{}),
		Flows:       make([][]string, 0, len(c.Flows)),
	}

	for _, lane := range c.OrderedLanes() {
		lit.Lanes = append(lit.Lanes, lane.Name)
		if lane.Height != 0 || lane.TopY != 0 {
			lit.LaneBounds = append(lit.LaneBounds, laneBound{Name: lane.Name, Y: lane.TopY, H: lane.Height})
		}
	}

	for _, elem := range c.Elements {
		slot, hasSlot := c.Layout[elem.Name]
		switch {
		case elem.IsDataObject && elem.Exact:
			lit.DataObjects = append(lit.DataObjects, []interface{}{elem.Name, laneValue(elem.Lane), elem.X, elem.YOffset, elem.W, elem.H})
		case elem.IsDataObject:
			lit.DataObjects = append(lit.DataObjects, []interface{}{elem.Name, laneValue(elem.Lane), slot.Column})
			if hasSlot && slot.HasNudge {
				lit.Layout[elem.Name] = []interface{}{slot.Column, slot.Nudge}
			}
		case elem.Exact:
			lit.Elements = append(lit.Elements, []interface{}{elem.Name, string(elem.Type), laneValue(elem.Lane), elem.X, elem.YOffset, elem.W, elem.H})
		default:
			lit.Elements = append(lit.Elements, []interface{}{elem.Name, string(elem.Type), laneValue(elem.Lane)})
			if hasSlot {
				if slot.HasNudge {
					lit.Layout[elem.Name] = []interface{}{slot.Column, slot.Nudge}
				} else {
					lit.Layout[elem.Name] = slot.Column
				}
			}
		}
	}

	for _, assoc := range c.DataAssociations {
		lit.DataAssociations = append(lit.DataAssociations, []string{assoc.Source, assoc.Target, string(assoc.Direction)})
	}
	for _, flow := range c.Flows {
		lit.Flows = append(lit.Flows, []string{flow.Source, flow.Target, flow.Guard})
	}

	if overrides := c.Overrides(); !overrides.IsZero() {
		lit.Settings = &overrides
	}

	return lit
}

func fromLiteral(lit *literal) (*LayoutConfig, error) {
	c := New(lit.Name)

	for i, name := range lit.Lanes {
		c.Lanes = append(c.Lanes, LaneDescriptor{Name: name, Order: i})
	}
	for _, lb := range lit.LaneBounds {
		for i := range c.Lanes {
			if c.Lanes[i].Name == lb.Name {
				c.Lanes[i].TopY = lb.Y
				c.Lanes[i].Height = lb.H
			}
		}
	}

	for i, tuple := range lit.Elements {
		elem, err := elementFromTuple(tuple)
		if err != nil {
			return nil, api.BadRequest("elements[%d]: %s", i, api.FromErr(err).Detail)
		}
		c.Elements = append(c.Elements, elem)
	}

	for i, tuple := range lit.DataObjects {
		elem, column, err := dataObjectFromTuple(tuple)
		if err != nil {
			return nil, api.BadRequest("data_objects[%d]: %s", i, api.FromErr(err).Detail)
		}
		c.Elements = append(c.Elements, elem)
		if !elem.Exact {
			c.Layout[elem.Name] = ColumnSlot{Column: column}
		}
	}

	for name, value := range lit.Layout {
		slot, err := slotFromValue(value)
		if err != nil {
			return nil, api.BadRequest("layout[%q]: %s", name, api.FromErr(err).Detail)
		}
		if prev, ok := c.Layout[name]; ok && !slot.HasNudge {
			slot = prev
		}
		c.Layout[name] = slot
	}

	tags := c.Tags()
	for i, tuple := range lit.DataAssociations {
		var assoc DataAssociationRecord
		switch len(tuple) {
		case 2:
			assoc = DataAssociationRecord{Source: tuple[0], Target: tuple[1]}
			dir, ok := InferDirection(tagOf(tags, tuple[0]), tagOf(tags, tuple[1]))
			if !ok {
				dir = DirectionOutput
			}
			assoc.Direction = dir
		case 3:
			assoc = DataAssociationRecord{Source: tuple[0], Target: tuple[1], Direction: Direction(tuple[2])}
			if !assoc.Direction.Valid() {
				return nil, api.BadRequest("data_associations[%d]: invalid direction %q", i, tuple[2])
			}
		default:
			return nil, api.BadRequest("data_associations[%d]: expected 2 or 3 fields, got %d", i, len(tuple))
		}
		c.DataAssociations = append(c.DataAssociations, assoc)
	}

	for i, tuple := range lit.Flows {
		switch len(tuple) {
		case 2:
			c.Flows = append(c.Flows, FlowRecord{Source: tuple[0], Target: tuple[1]})
		case 3:
			c.Flows = append(c.Flows, FlowRecord{Source: tuple[0], Target: tuple[1], Guard: tuple[2]})
		default:
			return nil, api.BadRequest("flows[%d]: expected 2 or 3 fields, got %d", i, len(tuple))
		}
	}

	if lit.Settings != nil {
		c.Override(*lit.Settings)
	}

	return c, nil
}

func tagOf(tags map[string]bpmn.ElementType, name string) bpmn.ElementType {
	if t, ok := tags[name]; ok {
		return t
	}
	return bpmn.Unknown
}

func elementFromTuple(tuple []interface{}) (ElementRecord, error) {
	if len(tuple) != exactElementArity && len(tuple) != columnElementArity {
		return ElementRecord{}, fmt.Errorf("expected %d or %d fields, got %d", columnElementArity, exactElementArity, len(tuple))
	}

	var elem ElementRecord
	var err error
	if elem.Name, err = toName(tuple[0]); err != nil {
		return elem, err
	}
	text, err := toName(tuple[1])
	if err != nil {
		return elem, err
	}
	// unknown tags are kept and reported by Check
	elem.Type = bpmn.ElementType(text)
	if elem.Lane, err = toLane(tuple[2]); err != nil {
		return elem, err
	}
	elem.IsDataObject = elem.Type.IsDataObject()

	if len(tuple) == exactElementArity {
		elem.Exact = true
		if err = toInts(tuple[3:], &elem.X, &elem.YOffset, &elem.W, &elem.H); err != nil {
			return elem, err
		}
	}
	return elem, nil
}

func dataObjectFromTuple(tuple []interface{}) (ElementRecord, int, error) {
	if len(tuple) != exactDataArity && len(tuple) != columnDataArity {
		return ElementRecord{}, 0, fmt.Errorf("expected %d or %d fields, got %d", columnDataArity, exactDataArity, len(tuple))
	}

	elem := ElementRecord{Type: bpmn.DataObject, IsDataObject: true}
	var err error
	if elem.Name, err = toName(tuple[0]); err != nil {
		return elem, 0, err
	}
	if elem.Lane, err = toLane(tuple[1]); err != nil {
		return elem, 0, err
	}

	if len(tuple) == exactDataArity {
		elem.Exact = true
		err = toInts(tuple[2:], &elem.X, &elem.YOffset, &elem.W, &elem.H)
		return elem, 0, err
	}

	column, err := toInt(tuple[2])
	return elem, column, err
}

func slotFromValue(value interface{}) (ColumnSlot, error) {
	if list, ok := value.([]interface{}); ok {
		switch len(list) {
		case 1:
			column, err := toInt(list[0])
			return ColumnSlot{Column: column}, err
		case 2:
			column, err := toInt(list[0])
			if err != nil {
				return ColumnSlot{}, err
			}
			nudge, err := toInt(list[1])
			return ColumnSlot{Column: column, Nudge: nudge, HasNudge: true}, err
		}
		return ColumnSlot{}, fmt.Errorf("expected column or [column, offset], got %d fields", len(list))
	}

	column, err := toInt(value)
	return ColumnSlot{Column: column}, err
}

func toName(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("expected a non empty string, got %v", v)
	}
	return s, nil
}

func toLane(v interface{}) (string, error) {
	if v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected a lane name or null, got %v", v)
	}
	return s, nil
}

func toInts(values []interface{}, dst ...*int) error {
	for i := range dst {
		n, err := toInt(values[i])
		if err != nil {
			return err
		}
		*dst[i] = n
	}
	return nil
}

// toInt accepts every numeric type the codecs produce and truncates
// fractions toward zero.
func toInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint:
		return int(n), nil
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float32:
		return int(math.Trunc(float64(n))), nil
	case float64:
		return int(math.Trunc(n)), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, err
		}
		return int(math.Trunc(f)), nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("expected a number, got %q", n)
		}
		return int(math.Trunc(f)), nil
	}
	return 0, fmt.Errorf("expected a number, got %v", v)
}
