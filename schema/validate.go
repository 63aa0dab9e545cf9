package schema

import (
	"errors"
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/vine-io/flowlayout/api"
	"github.com/vine-io/flowlayout/bpmn"
)

func (r LaneDescriptor) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Order, validation.Min(0)),
		validation.Field(&r.Height, validation.Min(0)),
	)
}

func (r ElementRecord) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Type, validation.Required),
		validation.Field(&r.W, validation.Min(0)),
		validation.Field(&r.H, validation.Min(0)),
		validation.Field(&r.IsDataObject, validation.By(func(value interface{}) error {
			if value.(bool) != r.Type.IsDataObject() {
				return errors.New("does not match the element type")
			}
			return nil
		})),
	)
}

func (r FlowRecord) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Source, validation.Required),
		validation.Field(&r.Target, validation.Required),
	)
}

func (r DataAssociationRecord) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Source, validation.Required),
		validation.Field(&r.Target, validation.Required),
		validation.Field(&r.Direction, validation.Required, validation.In(DirectionOutput, DirectionInput)),
	)
}

// Validate checks the structural rules of a config. Referential problems
// are reported by Check instead, the importer skips those items.
func (c *LayoutConfig) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Lanes, validation.By(uniqueLanes)),
		validation.Field(&c.Elements, validation.By(uniqueElements), validation.By(singleMode)),
		validation.Field(&c.Flows),
		validation.Field(&c.DataAssociations),
		validation.Field(&c.Settings),
	)
	if err != nil {
		return api.BadRequest("invalid layout config: %v", err)
	}
	return nil
}

func uniqueLanes(value interface{}) error {
	lanes, _ := value.([]LaneDescriptor)
	seen := make(map[string]struct{}, len(lanes))
	for _, lane := range lanes {
		if _, ok := seen[lane.Name]; ok {
			return fmt.Errorf("duplicate lane %q", lane.Name)
		}
		seen[lane.Name] = struct{}{}
	}
	return nil
}

func uniqueElements(value interface{}) error {
	elements, _ := value.([]ElementRecord)
	seen := make(map[string]struct{}, len(elements))
	for _, elem := range elements {
		if _, ok := seen[elem.Name]; ok {
			return fmt.Errorf("duplicate element %q", elem.Name)
		}
		seen[elem.Name] = struct{}{}
	}
	return nil
}

func singleMode(value interface{}) error {
	elements, _ := value.([]ElementRecord)
	var exact, column int
	for _, elem := range elements {
		if elem.Exact {
			exact++
		} else {
			column++
		}
	}
	if exact > 0 && column > 0 {
		return errors.New("exact and column records can not be mixed")
	}
	return nil
}

// Issue is a non fatal problem found by Check.
type Issue struct {
	Field   string `json:"field"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return i.Field + " " + i.Subject + ": " + i.Message
}

// Check reports unknown element types and references that do not resolve.
// Every issue leads to a skipped item at import time, never to an aborted
// run.
func (c *LayoutConfig) Check() []Issue {
	issues := make([]Issue, 0)
	tags := c.Tags()

	lanes := make(map[string]struct{}, len(c.Lanes))
	for _, lane := range c.Lanes {
		lanes[lane.Name] = struct{}{}
	}

	column := c.Mode() == ModeColumn
	for _, elem := range c.Elements {
		if _, err := bpmn.ParseElementType(string(elem.Type)); err != nil {
			issues = append(issues, Issue{Field: "elements", Subject: elem.Name, Message: api.FromErr(err).Detail})
		}
		if elem.Lane != "" {
			if _, ok := lanes[elem.Lane]; !ok {
				issues = append(issues, Issue{Field: "elements", Subject: elem.Name, Message: fmt.Sprintf("lane %q is not declared", elem.Lane)})
			}
		}
		if column {
			if _, ok := c.Layout[elem.Name]; !ok {
				issues = append(issues, Issue{Field: "layout", Subject: elem.Name, Message: "no column slot"})
			}
		}
	}

	slots := make([]string, 0, len(c.Layout))
	for name := range c.Layout {
		slots = append(slots, name)
	}
	sort.Strings(slots)
	for _, name := range slots {
		if _, ok := tags[name]; !ok {
			issues = append(issues, Issue{Field: "layout", Subject: name, Message: "no such element"})
		}
	}

	for _, flow := range c.Flows {
		subject := flow.Source + " -> " + flow.Target
		for _, end := range []string{flow.Source, flow.Target} {
			if _, ok := tags[end]; !ok {
				issues = append(issues, Issue{Field: "flows", Subject: subject, Message: fmt.Sprintf("endpoint %q not found", end)})
			}
		}
	}

	for _, assoc := range c.DataAssociations {
		subject := assoc.Source + " -> " + assoc.Target
		missing := false
		for _, end := range []string{assoc.Source, assoc.Target} {
			if _, ok := tags[end]; !ok {
				missing = true
				issues = append(issues, Issue{Field: "data_associations", Subject: subject, Message: fmt.Sprintf("endpoint %q not found", end)})
			}
		}
		if missing {
			continue
		}
		if !tags[assoc.DataObject()].IsDataObject() || tags[assoc.Task()].IsDataObject() {
			issues = append(issues, Issue{Field: "data_associations", Subject: subject, Message: fmt.Sprintf("direction %s contradicts the element types", assoc.Direction)})
		}
	}

	return issues
}

// InferDirection derives the direction of an association from the element
// tags. ok is false when both or neither endpoint is a data object.
func InferDirection(source, target bpmn.ElementType) (Direction, bool) {
	switch {
	case target.IsDataObject() && !source.IsDataObject():
		return DirectionOutput, true
	case source.IsDataObject() && !target.IsDataObject():
		return DirectionInput, true
	}
	return "", false
}
