package model

import (
	"sync"

	"github.com/vine-io/flowlayout/api"
	"github.com/vine-io/flowlayout/bpmn"
	"github.com/vine-io/flowlayout/host"
)

var _ host.Modeler = (*Repository)(nil)

// Repository is an in-memory BPMN host. It keeps processes, lanes and
// diagrams, delays the appearance of new graphics like a modeling tool
// does and re-settles lane geometry on save.
type Repository struct {
	mu       sync.Mutex
	opts     Options
	packages []*Package
	diagrams map[string]*Diagram
	// creation order of diagrams
	order []string
}

func NewRepository(opts ...Option) *Repository {
	return &Repository{
		opts:     NewOptions(opts...),
		packages: make([]*Package, 0),
		diagrams: make(map[string]*Diagram),
	}
}

// NewPackage creates a container for processes.
func (r *Repository) NewPackage(name string) *Package {
	r.mu.Lock()
	defer r.mu.Unlock()

	pkg := &Package{meta: newMeta("Package", name), processes: make([]*Process, 0)}
	r.packages = append(r.packages, pkg)
	return pkg
}

func (r *Repository) Packages() []*Package {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Package, len(r.packages))
	copy(out, r.packages)
	return out
}

// Diagrams returns the diagrams showing p.
func (r *Repository) Diagrams(p *Process) []*Diagram {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Diagram, 0)
	for _, id := range r.order {
		if d := r.diagrams[id]; d.origin == p {
			out = append(out, d)
		}
	}
	return out
}

func (r *Repository) Capabilities() bpmn.Capabilities {
	return r.opts.Capabilities
}

func (r *Repository) CreateProcess(owner host.Container, name string) (host.Process, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pkg *Package
	if owner != nil {
		v, ok := owner.(*Package)
		if !ok {
			return nil, api.BadRequest("container %s is not a package of this repository", owner.Name())
		}
		pkg = v
	}

	p := newProcess(pkg, name)
	if pkg != nil {
		pkg.processes = append(pkg.processes, p)
	}
	return p, nil
}

func (r *Repository) CreateLaneSet(p host.Process) (host.LaneSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	process, err := asProcess(p)
	if err != nil {
		return nil, err
	}
	set := &LaneSet{meta: newMeta(bpmn.LaneSetClass, ""), process: process}
	process.laneSets = append(process.laneSets, set)
	return set, nil
}

func (r *Repository) CreateLane(s host.LaneSet, name string) (host.Lane, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := s.(*LaneSet)
	if !ok {
		return nil, api.BadRequest("lane set %s is not part of this repository", s.Name())
	}
	lane := &Lane{meta: newMeta(bpmn.LaneClass, name), set: set, refs: make([]host.Element, 0)}
	set.lanes = append(set.lanes, lane)

	for _, d := range r.diagrams {
		if d.origin == set.process {
			r.attachLaneShape(d, lane)
			r.settle(d)
		}
	}
	return lane, nil
}

func (r *Repository) AddToLane(l host.Lane, elem host.Element) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lane, ok := l.(*Lane)
	if !ok {
		return api.BadRequest("lane %s is not part of this repository", l.Name())
	}
	if elem == nil {
		return api.BadRequest("missing element")
	}
	if prev := lane.set.process.laneOf(elem); prev != nil {
		if prev == lane {
			return nil
		}
		prev.refs = removeRef(prev.refs, elem)
	}
	lane.refs = append(lane.refs, elem)
	return nil
}

func (r *Repository) CreateElement(p host.Process, name string, spec bpmn.Spec) (host.Element, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	process, err := asProcess(p)
	if err != nil {
		return nil, err
	}
	if err = r.checkSpec(spec); err != nil {
		return nil, err
	}

	elem := &Element{meta: newMeta(spec.Class, name), process: process}
	if def := spec.Trigger.Definition(); def != "" {
		elem.definitions = []string{def}
	}
	process.add(elem)

	for _, d := range r.diagrams {
		if d.origin == process {
			r.attachShape(d, elem)
		}
	}
	return elem, nil
}

// checkSpec rejects what the configured capabilities rule out, like a
// host missing the optional classes.
func (r *Repository) checkSpec(spec bpmn.Spec) error {
	caps := r.opts.Capabilities
	supported := true
	switch spec.Class {
	case bpmn.ScriptTaskClass:
		supported = caps.ScriptTask
	case bpmn.BusinessRuleTaskClass:
		supported = caps.BusinessRuleTask
	case bpmn.SendTaskClass, bpmn.ReceiveTaskClass:
		supported = caps.SendReceiveTask
	case bpmn.IntermediateCatchEventClass, bpmn.IntermediateThrowEventClass:
		supported = caps.IntermediateEvents
	case bpmn.InclusiveGatewayClass, bpmn.ComplexGatewayClass, bpmn.EventBasedGatewayClass:
		supported = caps.AdditionalGateways
	case bpmn.DataObjectClass:
		supported = caps.DataObjects
	}
	if spec.Trigger != bpmn.NoTrigger && !caps.EventDefinitions {
		supported = false
	}
	if !supported || !spec.Class.Is(bpmn.FlowElementClass) {
		return api.NotImplemented("class %s is not available", spec.Class)
	}
	return nil
}

func (r *Repository) CreateSequenceFlow(p host.Process, source, target host.Element, guard string) (host.SequenceFlow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	process, err := asProcess(p)
	if err != nil {
		return nil, err
	}
	if err = r.checkMember(process, source); err != nil {
		return nil, err
	}
	if err = r.checkMember(process, target); err != nil {
		return nil, err
	}

	flow := &SequenceFlow{meta: newMeta(bpmn.SequenceFlowClass, ""), source: source, target: target, label: guard}
	flow.name = guard
	process.add(flow)
	return flow, nil
}

// CreateDataAssociation links source to target in data direction. A data
// object target makes an output association of the source activity, a
// data object source an input association of the target activity.
func (r *Repository) CreateDataAssociation(p host.Process, source, target host.Element) (host.DataAssociation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	process, err := asProcess(p)
	if err != nil {
		return nil, err
	}
	if err = r.checkMember(process, source); err != nil {
		return nil, err
	}
	if err = r.checkMember(process, target); err != nil {
		return nil, err
	}

	srcData := source.IsA(bpmn.DataObjectClass)
	tgtData := target.IsA(bpmn.DataObjectClass)
	var assoc *DataAssociation
	switch {
	case tgtData && !srcData:
		assoc = &DataAssociation{meta: newMeta(bpmn.DataOutputAssociation, ""), starting: source, target: target}
	case srcData && !tgtData:
		assoc = &DataAssociation{meta: newMeta(bpmn.DataInputAssociation, ""), sources: []host.Element{source}, ending: target}
	default:
		return nil, api.BadRequest("association %s -> %s needs exactly one data object", source.Name(), target.Name())
	}
	process.assocs = append(process.assocs, assoc)
	return assoc, nil
}

func (r *Repository) CreateDiagram(p host.Process, name string) (host.Diagram, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	process, err := asProcess(p)
	if err != nil {
		return nil, err
	}

	d := newDiagram(process, name)
	for _, lane := range process.lanes() {
		r.attachLaneShape(d, lane)
	}
	for _, elem := range process.Nodes() {
		r.attachShape(d, elem)
	}
	r.settle(d)
	r.register(d)
	return d, nil
}

func (r *Repository) OpenDiagram(d host.Diagram) (host.DiagramHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d == nil {
		return nil, api.BadRequest("missing diagram")
	}
	diagram, ok := r.diagrams[d.ID()]
	if !ok {
		return nil, api.NotFound("diagram %s", d.Name())
	}
	return &Handle{repo: r, diagram: diagram}, nil
}

func (r *Repository) register(d *Diagram) {
	r.diagrams[d.ID()] = d
	r.order = append(r.order, d.ID())
}

func (r *Repository) checkMember(p *Process, elem host.Element) error {
	if elem == nil {
		return api.BadRequest("missing element")
	}
	if _, ok := p.Lookup(elem.ID()); !ok {
		return api.NotFound("element %s in process %s", elem.Name(), p.Name())
	}
	return nil
}

// attachLaneShape adds a lane graphic below the lowest existing lane.
func (r *Repository) attachLaneShape(d *Diagram, lane *Lane) {
	top := 0.0
	for _, other := range d.origin.lanes() {
		if shape, ok := d.shapes[other.ID()]; ok && shape.bottom() > top {
			top = shape.bottom()
		}
	}
	d.addShape(&Shape{
		elem:    lane,
		x:       0,
		y:       top,
		w:       float64(r.opts.LaneWidth),
		h:       float64(r.opts.LaneHeight),
		visible: true,
	})
}

// attachShape adds a hidden graphic for elem at the top left of its lane.
func (r *Repository) attachShape(d *Diagram, elem *Element) {
	w, h := defaultSize(elem.class)
	x, y := 10.0, 10.0
	if lane := d.origin.laneOf(elem); lane != nil {
		if ls, ok := d.shapes[lane.ID()]; ok {
			x, y = ls.x+10, ls.y+10
		}
	}
	d.addShape(&Shape{elem: elem, x: x, y: y, w: w, h: h})
}

// settle stacks the lanes top to bottom and grows every lane to hold its
// elements. Elements move with their lane.
func (r *Repository) settle(d *Diagram) {
	top := 0.0
	first := true
	for _, lane := range d.origin.lanes() {
		ls, ok := d.shapes[lane.ID()]
		if !ok {
			continue
		}
		if first {
			top = ls.y
			first = false
		}

		if delta := top - ls.y; delta != 0 {
			ls.y = top
			for _, ref := range lane.refs {
				if s, ok := d.shapes[ref.ID()]; ok {
					s.y += delta
				}
			}
		}

		bottom := ls.bottom()
		right := ls.right()
		for _, ref := range lane.refs {
			s, ok := d.shapes[ref.ID()]
			if !ok || !s.visible {
				continue
			}
			if b := s.bottom() + float64(r.opts.LanePadding); b > bottom {
				bottom = b
			}
			if rt := s.right() + float64(r.opts.LanePadding); rt > right {
				right = rt
			}
		}
		ls.h = bottom - ls.y
		ls.w = right - ls.x
		top = ls.bottom()
	}
}

func asProcess(p host.Process) (*Process, error) {
	if p == nil {
		return nil, api.BadRequest("missing process")
	}
	process, ok := p.(*Process)
	if !ok {
		return nil, api.BadRequest("process %s is not part of this repository", p.Name())
	}
	return process, nil
}

func removeRef(refs []host.Element, elem host.Element) []host.Element {
	out := refs[:0]
	for _, ref := range refs {
		if ref.ID() != elem.ID() {
			out = append(out, ref)
		}
	}
	return out
}
