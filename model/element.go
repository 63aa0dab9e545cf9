package model

import (
	"github.com/google/uuid"
	"github.com/tidwall/btree"
	"github.com/vine-io/flowlayout/bpmn"
	"github.com/vine-io/flowlayout/host"
)

var (
	_ host.Element         = (*Element)(nil)
	_ host.SequenceFlow    = (*SequenceFlow)(nil)
	_ host.DataAssociation = (*DataAssociation)(nil)
	_ host.Lane            = (*Lane)(nil)
	_ host.LaneSet         = (*LaneSet)(nil)
	_ host.Process         = (*Process)(nil)
	_ host.Container       = (*Package)(nil)
	_ host.Diagram         = (*Diagram)(nil)
)

// meta is shared by every model object. uid is the host identity, xmlID
// the id written to BPMN files.
type meta struct {
	uid   string
	xmlID string
	name  string
	class bpmn.Class
}

func newMeta(class bpmn.Class, name string) meta {
	return meta{
		uid:   uuid.New().String(),
		xmlID: randShapeName(class),
		name:  name,
		class: class,
	}
}

func (m *meta) ID() string { return m.uid }

func (m *meta) XMLID() string { return m.xmlID }

func (m *meta) Name() string { return m.name }

func (m *meta) SetName(name string) { m.name = name }

func (m *meta) Class() bpmn.Class { return m.class }

func (m *meta) IsA(class bpmn.Class) bool { return m.class.Is(class) }

func (m *meta) EventDefinitions() []string { return nil }

// Element is a flow node: event, task, gateway or data object.
type Element struct {
	meta
	definitions []string
	process     *Process
}

func (e *Element) EventDefinitions() []string {
	out := make([]string, len(e.definitions))
	copy(out, e.definitions)
	return out
}

func (e *Element) Process() *Process { return e.process }

type SequenceFlow struct {
	meta
	source    host.Element
	target    host.Element
	label     string
	condition string
}

func (f *SequenceFlow) Source() host.Element { return f.source }

func (f *SequenceFlow) Target() host.Element { return f.target }

func (f *SequenceFlow) Label() string { return f.label }

func (f *SequenceFlow) ConditionExpression() string { return f.condition }

func (f *SequenceFlow) SetConditionExpression(text string) { f.condition = text }

// DataAssociation links an activity and a data object. Output associations
// set the starting activity and the target; input associations set the
// sources and the ending activity.
type DataAssociation struct {
	meta
	starting host.Element
	ending   host.Element
	sources  []host.Element
	target   host.Element
}

func (a *DataAssociation) StartingActivity() host.Element { return a.starting }

func (a *DataAssociation) EndingActivity() host.Element { return a.ending }

func (a *DataAssociation) SourceRefs() []host.Element {
	out := make([]host.Element, len(a.sources))
	copy(out, a.sources)
	return out
}

func (a *DataAssociation) TargetRef() host.Element { return a.target }

// ends returns the pair connected by the association in data direction.
func (a *DataAssociation) ends() (host.Element, host.Element) {
	if a.starting != nil {
		return a.starting, a.target
	}
	var source host.Element
	if len(a.sources) > 0 {
		source = a.sources[0]
	}
	return source, a.ending
}

type Lane struct {
	meta
	set  *LaneSet
	refs []host.Element
}

func (l *Lane) FlowElementRefs() []host.Element {
	out := make([]host.Element, len(l.refs))
	copy(out, l.refs)
	return out
}

func (l *Lane) contains(elem host.Element) bool {
	for _, ref := range l.refs {
		if ref.ID() == elem.ID() {
			return true
		}
	}
	return false
}

type LaneSet struct {
	meta
	process *Process
	lanes   []*Lane
}

func (s *LaneSet) Lanes() []host.Lane {
	out := make([]host.Lane, 0, len(s.lanes))
	for _, lane := range s.lanes {
		out = append(out, lane)
	}
	return out
}

// Process keeps its flow elements in creation order.
type Process struct {
	meta
	owner    *Package
	laneSets []*LaneSet
	seq      int64
	elements *btree.Map[int64, host.Element]
	index    map[string]int64
	assocs   []*DataAssociation
}

func newProcess(owner *Package, name string) *Process {
	return &Process{
		meta:     newMeta(bpmn.ProcessClass, name),
		owner:    owner,
		elements: &btree.Map[int64, host.Element]{},
		index:    make(map[string]int64),
		assocs:   make([]*DataAssociation, 0),
	}
}

func (p *Process) Owner() host.Container {
	if p.owner == nil {
		return nil
	}
	return p.owner
}

func (p *Process) LaneSets() []host.LaneSet {
	out := make([]host.LaneSet, 0, len(p.laneSets))
	for _, set := range p.laneSets {
		out = append(out, set)
	}
	return out
}

func (p *Process) FlowElements() []host.Element {
	out := make([]host.Element, 0, p.elements.Len())
	p.elements.Scan(func(_ int64, elem host.Element) bool {
		out = append(out, elem)
		return true
	})
	return out
}

func (p *Process) DataAssociations() []host.DataAssociation {
	out := make([]host.DataAssociation, 0, len(p.assocs))
	for _, assoc := range p.assocs {
		out = append(out, assoc)
	}
	return out
}

// Lookup finds a flow element by host identity.
func (p *Process) Lookup(id string) (host.Element, bool) {
	seq, ok := p.index[id]
	if !ok {
		return nil, false
	}
	return p.elements.Get(seq)
}

// Nodes returns the flow nodes without sequence flows, in creation order.
func (p *Process) Nodes() []*Element {
	out := make([]*Element, 0)
	p.elements.Scan(func(_ int64, elem host.Element) bool {
		if node, ok := elem.(*Element); ok {
			out = append(out, node)
		}
		return true
	})
	return out
}

func (p *Process) SequenceFlows() []*SequenceFlow {
	out := make([]*SequenceFlow, 0)
	p.elements.Scan(func(_ int64, elem host.Element) bool {
		if flow, ok := elem.(*SequenceFlow); ok {
			out = append(out, flow)
		}
		return true
	})
	return out
}

func (p *Process) add(elem host.Element) {
	p.seq++
	p.elements.Set(p.seq, elem)
	p.index[elem.ID()] = p.seq
}

// laneOf returns the lane whose references contain elem.
func (p *Process) laneOf(elem host.Element) *Lane {
	for _, set := range p.laneSets {
		for _, lane := range set.lanes {
			if lane.contains(elem) {
				return lane
			}
		}
	}
	return nil
}

func (p *Process) lanes() []*Lane {
	out := make([]*Lane, 0)
	for _, set := range p.laneSets {
		out = append(out, set.lanes...)
	}
	return out
}

// Package owns processes, it is the container of imports.
type Package struct {
	meta
	processes []*Process
}

func (p *Package) Processes() []*Process {
	out := make([]*Process, len(p.processes))
	copy(out, p.processes)
	return out
}

type Diagram struct {
	meta
	origin *Process
	shapes map[string]*Shape
	// creation order of shapes, lanes first
	order []string
}

func newDiagram(p *Process, name string) *Diagram {
	return &Diagram{
		meta:   newMeta("Diagram", name),
		origin: p,
		shapes: make(map[string]*Shape),
		order:  make([]string, 0),
	}
}

func (d *Diagram) Origin() host.Process { return d.origin }

// Shape returns the graphic of elem whether it is visible or not.
func (d *Diagram) Shape(elem host.Element) (*Shape, bool) {
	shape, ok := d.shapes[elem.ID()]
	return shape, ok
}

func (d *Diagram) addShape(shape *Shape) {
	if _, ok := d.shapes[shape.elem.ID()]; ok {
		return
	}
	d.shapes[shape.elem.ID()] = shape
	d.order = append(d.order, shape.elem.ID())
}
