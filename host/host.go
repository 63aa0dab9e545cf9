// Package host describes the object model of a BPMN modeling tool as a set
// of capability interfaces. The exporter reads through them and the importer
// drives them; neither ever touches a global session.
package host

import (
	"github.com/vine-io/flowlayout/bounds"
	"github.com/vine-io/flowlayout/bpmn"
)

//go:generate mockgen -destination=mock/host_mock.go -package=mock github.com/vine-io/flowlayout/host Modeler,DiagramHandle,Graphic

// Element is any model object with an identity.
type Element interface {
	// ID is stable for the lifetime of the host session.
	ID() string
	Name() string
	IsA(class bpmn.Class) bool
	EventDefinitions() []string
}

type SequenceFlow interface {
	Element
	Source() Element
	Target() Element
	Label() string
	ConditionExpression() string
}

type DataAssociation interface {
	Element
	// StartingActivity is set on output associations (task writes object).
	StartingActivity() Element
	// EndingActivity is set on input associations (task reads object).
	EndingActivity() Element
	SourceRefs() []Element
	TargetRef() Element
}

type Lane interface {
	Element
	FlowElementRefs() []Element
}

type LaneSet interface {
	Element
	Lanes() []Lane
}

type Process interface {
	Element
	LaneSets() []LaneSet
	FlowElements() []Element
	DataAssociations() []DataAssociation
}

// Container owns created processes, usually a package of the host model.
type Container interface {
	Element
}

type Diagram interface {
	Element
	Origin() Process
}

// Graphic is the on-diagram representation of an element.
type Graphic interface {
	// Bounds returns the host text form "Rectangle(x, y, w, h)".
	Bounds() string
	SetBounds(r bounds.Rectangle) error
}

// DiagramHandle is an opened diagram. Graphics of freshly created elements
// may appear asynchronously.
type DiagramHandle interface {
	Graphics(elem Element) (Graphic, bool)
	// Unmask forces the graphic of elem to appear near (x, y).
	Unmask(elem Element, x, y int) (Graphic, error)
	Save() error
	Close() error
}

// Modeler is the session capability of the host.
type Modeler interface {
	Capabilities() bpmn.Capabilities
	CreateProcess(owner Container, name string) (Process, error)
	CreateLaneSet(p Process) (LaneSet, error)
	CreateLane(set LaneSet, name string) (Lane, error)
	AddToLane(lane Lane, elem Element) error
	CreateElement(p Process, name string, spec bpmn.Spec) (Element, error)
	CreateSequenceFlow(p Process, source, target Element, guard string) (SequenceFlow, error)
	CreateDataAssociation(p Process, source, target Element) (DataAssociation, error)
	CreateDiagram(p Process, name string) (Diagram, error)
	OpenDiagram(d Diagram) (DiagramHandle, error)
}
