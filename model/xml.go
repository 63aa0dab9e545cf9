package model

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/beevik/etree"
	"github.com/vine-io/flowlayout/api"
	"github.com/vine-io/flowlayout/bpmn"
	"github.com/vine-io/flowlayout/host"
)

const (
	bpmnNamespace   = "http://www.omg.org/spec/BPMN/20100524/MODEL"
	bpmnDINamespace = "http://www.omg.org/spec/BPMN/20100524/DI"
	dcNamespace     = "http://www.omg.org/spec/DD/20100524/DC"
	diNamespace     = "http://www.omg.org/spec/DD/20100524/DI"
	xsiNamespace    = "http://www.w3.org/2001/XMLSchema-instance"
	targetNamespace = "http://bpmn.io/schema/bpmn"
)

var nodeTags = map[string]bpmn.Class{
	"startEvent":             bpmn.StartEventClass,
	"endEvent":               bpmn.EndEventClass,
	"intermediateCatchEvent": bpmn.IntermediateCatchEventClass,
	"intermediateThrowEvent": bpmn.IntermediateThrowEventClass,
	"task":                   bpmn.TaskClass,
	"userTask":               bpmn.UserTaskClass,
	"serviceTask":            bpmn.ServiceTaskClass,
	"manualTask":             bpmn.ManualTaskClass,
	"scriptTask":             bpmn.ScriptTaskClass,
	"businessRuleTask":       bpmn.BusinessRuleTaskClass,
	"sendTask":               bpmn.SendTaskClass,
	"receiveTask":            bpmn.ReceiveTaskClass,
	"exclusiveGateway":       bpmn.ExclusiveGatewayClass,
	"parallelGateway":        bpmn.ParallelGatewayClass,
	"inclusiveGateway":       bpmn.InclusiveGatewayClass,
	"complexGateway":         bpmn.ComplexGatewayClass,
	"eventBasedGateway":      bpmn.EventBasedGatewayClass,
	"dataObjectReference":    bpmn.DataObjectClass,
}

// children of a process that are not flow elements
var ignoredTags = map[string]struct{}{
	"documentation":     {},
	"extensionElements": {},
	"dataObject":        {},
	"laneSet":           {},
	"sequenceFlow":      {},
	"association":       {},
}

func tagOf(class bpmn.Class) string {
	for tag, c := range nodeTags {
		if c == class {
			return tag
		}
	}
	return lowerFirst(string(class))
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Definitions is the content of one BPMN file.
type Definitions struct {
	Package   *Package
	Processes []*Process
	Diagrams  []*Diagram
}

type pendingFlow struct {
	id, name, source, target, condition string
}

type pendingAssoc struct {
	id       string
	owner    string
	output   bool
	refs     []string
	ownerTag string
}

// ReadXML loads BPMN 2.0 XML. Graphics found in the file are visible right
// away and keep their geometry.
func (r *Repository) ReadXML(data []byte) (*Definitions, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, api.BadRequest("read bpmn: %v", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "definitions" {
		return nil, api.BadRequest("read bpmn: missing definitions")
	}

	name, _ := getAttr(root.Attr, "name")
	if name == "" {
		name, _ = getAttr(root.Attr, "id")
	}
	pkg := r.NewPackage(name)
	defs := &Definitions{Package: pkg, Processes: make([]*Process, 0), Diagrams: make([]*Diagram, 0)}

	r.mu.Lock()
	defer r.mu.Unlock()

	byXMLID := make(map[string]host.Element)
	processes := make(map[string]*Process)
	for _, child := range root.ChildElements() {
		if child.Tag != "process" {
			continue
		}
		p, err := readProcess(pkg, child, byXMLID)
		if err != nil {
			return nil, err
		}
		pkg.processes = append(pkg.processes, p)
		processes[p.xmlID] = p
		defs.Processes = append(defs.Processes, p)
	}

	for _, child := range root.ChildElements() {
		if child.Tag != "BPMNDiagram" {
			continue
		}
		diagramName, _ := getAttr(child.Attr, "name")
		for _, plane := range child.ChildElements() {
			if plane.Tag != "BPMNPlane" {
				continue
			}
			ref, _ := getAttr(plane.Attr, "bpmnElement")
			p, ok := processes[ref]
			if !ok {
				continue
			}
			d := newDiagram(p, diagramName)
			if id, _ := getAttr(child.Attr, "id"); id != "" {
				d.xmlID = id
			}
			readPlane(d, plane, byXMLID)
			r.register(d)
			defs.Diagrams = append(defs.Diagrams, d)
		}
	}

	return defs, nil
}

func readMeta(class bpmn.Class, start *etree.Element) meta {
	name, _ := getAttr(start.Attr, "name")
	m := newMeta(class, name)
	if id, _ := getAttr(start.Attr, "id"); id != "" {
		m.xmlID = id
	}
	return m
}

func readProcess(pkg *Package, start *etree.Element, byXMLID map[string]host.Element) (*Process, error) {
	name, _ := getAttr(start.Attr, "name")
	p := newProcess(pkg, name)
	if id, _ := getAttr(start.Attr, "id"); id != "" {
		p.xmlID = id
	}

	flows := make([]pendingFlow, 0)
	assocs := make([]pendingAssoc, 0)
	laneRefs := make(map[*Lane][]string)

	for _, child := range start.ChildElements() {
		switch child.Tag {
		case "laneSet":
			set := &LaneSet{meta: readMeta(bpmn.LaneSetClass, child), process: p}
			for _, lc := range child.ChildElements() {
				if lc.Tag != "lane" {
					continue
				}
				lane := &Lane{meta: readMeta(bpmn.LaneClass, lc), set: set, refs: make([]host.Element, 0)}
				for _, ref := range lc.ChildElements() {
					if ref.Tag == "flowNodeRef" {
						laneRefs[lane] = append(laneRefs[lane], strings.TrimSpace(ref.Text()))
					}
				}
				set.lanes = append(set.lanes, lane)
				byXMLID[lane.xmlID] = lane
			}
			p.laneSets = append(p.laneSets, set)
		case "sequenceFlow":
			flow := pendingFlow{}
			flow.id, _ = getAttr(child.Attr, "id")
			flow.name, _ = getAttr(child.Attr, "name")
			flow.source, _ = getAttr(child.Attr, "sourceRef")
			flow.target, _ = getAttr(child.Attr, "targetRef")
			if cond := child.SelectElement("conditionExpression"); cond != nil {
				flow.condition = cond.Text()
			}
			flows = append(flows, flow)
		default:
			if _, ok := ignoredTags[child.Tag]; ok {
				continue
			}
			class, ok := nodeTags[child.Tag]
			if !ok {
				class = bpmn.Class(upperFirst(child.Tag))
			}
			elem := &Element{meta: readMeta(class, child), process: p}
			for _, sub := range child.ChildElements() {
				switch {
				case strings.HasSuffix(sub.Tag, "EventDefinition"):
					elem.definitions = append(elem.definitions, upperFirst(sub.Tag))
				case sub.Tag == "dataOutputAssociation" || sub.Tag == "dataInputAssociation":
					pa := pendingAssoc{owner: elem.xmlID, output: sub.Tag == "dataOutputAssociation", ownerTag: child.Tag}
					pa.id, _ = getAttr(sub.Attr, "id")
					refTag := "sourceRef"
					if pa.output {
						refTag = "targetRef"
					}
					for _, ref := range sub.SelectElements(refTag) {
						pa.refs = append(pa.refs, strings.TrimSpace(ref.Text()))
					}
					assocs = append(assocs, pa)
				}
			}
			p.add(elem)
			byXMLID[elem.xmlID] = elem
		}
	}

	for lane, refs := range laneRefs {
		for _, ref := range refs {
			if elem, ok := byXMLID[ref]; ok {
				lane.refs = append(lane.refs, elem)
			}
		}
	}

	for _, pf := range flows {
		source, ok1 := byXMLID[pf.source]
		target, ok2 := byXMLID[pf.target]
		if !ok1 || !ok2 {
			return nil, api.BadRequest("read bpmn: sequence flow %s has unresolved endpoints", pf.id)
		}
		flow := &SequenceFlow{meta: newMeta(bpmn.SequenceFlowClass, pf.name), source: source, target: target, label: pf.name, condition: pf.condition}
		if pf.id != "" {
			flow.xmlID = pf.id
		}
		p.add(flow)
		byXMLID[flow.xmlID] = flow
	}

	for _, pa := range assocs {
		owner := byXMLID[pa.owner]
		assoc := &DataAssociation{}
		if pa.output {
			assoc.meta = newMeta(bpmn.DataOutputAssociation, "")
			assoc.starting = owner
			if len(pa.refs) > 0 {
				assoc.target = byXMLID[pa.refs[0]]
			}
		} else {
			assoc.meta = newMeta(bpmn.DataInputAssociation, "")
			assoc.ending = owner
			for _, ref := range pa.refs {
				if elem, ok := byXMLID[ref]; ok {
					assoc.sources = append(assoc.sources, elem)
				}
			}
		}
		if pa.id != "" {
			assoc.xmlID = pa.id
		}
		p.assocs = append(p.assocs, assoc)
	}

	return p, nil
}

func readPlane(d *Diagram, plane *etree.Element, byXMLID map[string]host.Element) {
	for _, child := range plane.ChildElements() {
		if child.Tag != "BPMNShape" {
			continue
		}
		ref, _ := getAttr(child.Attr, "bpmnElement")
		elem, ok := byXMLID[ref]
		if !ok {
			continue
		}
		b := child.SelectElement("Bounds")
		if b == nil {
			continue
		}
		shape := &Shape{elem: elem, visible: true}
		for _, attr := range b.Attr {
			v, err := strconv.ParseFloat(attr.Value, 64)
			if err != nil {
				continue
			}
			switch attr.Key {
			case "x":
				shape.x = v
			case "y":
				shape.y = v
			case "width":
				shape.w = v
			case "height":
				shape.h = v
			}
		}
		d.addShape(shape)
	}
}

// WriteXML renders p and its first diagram as BPMN 2.0 XML.
func (r *Repository) WriteXML(p *Process) ([]byte, error) {
	if p == nil {
		return nil, api.BadRequest("missing process")
	}
	var diagram *Diagram
	if diagrams := r.Diagrams(p); len(diagrams) > 0 {
		diagram = diagrams[0]
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("bpmn:definitions")
	root.CreateAttr("xmlns:bpmn", bpmnNamespace)
	root.CreateAttr("xmlns:bpmndi", bpmnDINamespace)
	root.CreateAttr("xmlns:dc", dcNamespace)
	root.CreateAttr("xmlns:di", diNamespace)
	root.CreateAttr("xmlns:xsi", xsiNamespace)
	root.CreateAttr("id", "Definitions_"+randName())
	root.CreateAttr("targetNamespace", targetNamespace)

	if err := writeProcess(root.CreateElement("bpmn:process"), p); err != nil {
		return nil, err
	}
	if diagram != nil {
		writeDiagram(root.CreateElement("bpmndi:BPMNDiagram"), diagram)
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

func writeProcess(start *etree.Element, p *Process) error {
	start.CreateAttr("id", p.xmlID)
	if p.name != "" {
		start.CreateAttr("name", p.name)
	}
	start.CreateAttr("isExecutable", "false")

	for _, set := range p.laneSets {
		se := start.CreateElement("bpmn:laneSet")
		se.CreateAttr("id", set.xmlID)
		for _, lane := range set.lanes {
			le := se.CreateElement("bpmn:lane")
			le.CreateAttr("id", lane.xmlID)
			le.CreateAttr("name", lane.name)
			for _, ref := range lane.refs {
				if x, ok := ref.(interface{ XMLID() string }); ok {
					le.CreateElement("bpmn:flowNodeRef").SetText(x.XMLID())
				}
			}
		}
	}

	var err error
	p.elements.Scan(func(_ int64, item host.Element) bool {
		switch elem := item.(type) {
		case *Element:
			err = writeNode(start, p, elem)
		case *SequenceFlow:
			err = writeSequenceFlow(start, elem)
		}
		return err == nil
	})
	return err
}

func writeNode(parent *etree.Element, p *Process, elem *Element) error {
	if elem.class == bpmn.DataObjectClass {
		objectID := "DataObject_" + randName()
		parent.CreateElement("bpmn:dataObject").CreateAttr("id", objectID)
		start := parent.CreateElement("bpmn:dataObjectReference")
		start.CreateAttr("id", elem.xmlID)
		start.CreateAttr("name", elem.name)
		start.CreateAttr("dataObjectRef", objectID)
		return nil
	}

	start := parent.CreateElement("bpmn:" + tagOf(elem.class))
	start.CreateAttr("id", elem.xmlID)
	if elem.name != "" {
		start.CreateAttr("name", elem.name)
	}

	for _, assoc := range p.assocs {
		switch {
		case assoc.starting != nil && assoc.starting.ID() == elem.ID():
			ae := start.CreateElement("bpmn:dataOutputAssociation")
			ae.CreateAttr("id", assoc.xmlID)
			target, err := xmlIDOf(assoc.target)
			if err != nil {
				return err
			}
			ae.CreateElement("bpmn:targetRef").SetText(target)
		case assoc.ending != nil && assoc.ending.ID() == elem.ID():
			ae := start.CreateElement("bpmn:dataInputAssociation")
			ae.CreateAttr("id", assoc.xmlID)
			for _, source := range assoc.sources {
				ref, err := xmlIDOf(source)
				if err != nil {
					return err
				}
				ae.CreateElement("bpmn:sourceRef").SetText(ref)
			}
		}
	}

	for _, def := range elem.definitions {
		de := start.CreateElement("bpmn:" + lowerFirst(def))
		de.CreateAttr("id", strings.TrimSuffix(def, "EventDefinition")+"EventDefinition_"+randName())
	}
	return nil
}

func writeSequenceFlow(parent *etree.Element, flow *SequenceFlow) error {
	source, err := xmlIDOf(flow.source)
	if err != nil {
		return err
	}
	target, err := xmlIDOf(flow.target)
	if err != nil {
		return err
	}

	start := parent.CreateElement("bpmn:sequenceFlow")
	start.CreateAttr("id", flow.xmlID)
	if flow.label != "" {
		start.CreateAttr("name", flow.label)
	}
	start.CreateAttr("sourceRef", source)
	start.CreateAttr("targetRef", target)
	if flow.condition != "" {
		ce := start.CreateElement("bpmn:conditionExpression")
		ce.CreateAttr("xsi:type", "bpmn:tFormalExpression")
		ce.SetText(flow.condition)
	}
	return nil
}

func writeDiagram(start *etree.Element, d *Diagram) {
	start.CreateAttr("id", d.xmlID)
	if d.name != "" {
		start.CreateAttr("name", d.name)
	}
	plane := start.CreateElement("bpmndi:BPMNPlane")
	plane.CreateAttr("id", "BPMNPlane_"+randName())
	plane.CreateAttr("bpmnElement", d.origin.xmlID)

	for _, id := range d.order {
		shape := d.shapes[id]
		if !shape.visible {
			continue
		}
		ref, err := xmlIDOf(shape.elem)
		if err != nil {
			continue
		}
		se := plane.CreateElement("bpmndi:BPMNShape")
		se.CreateAttr("id", ref+"_di")
		se.CreateAttr("bpmnElement", ref)
		if _, ok := shape.elem.(*Lane); ok {
			se.CreateAttr("isHorizontal", "true")
		}
		b := se.CreateElement("dc:Bounds")
		b.CreateAttr("x", formatFloat(shape.x))
		b.CreateAttr("y", formatFloat(shape.y))
		b.CreateAttr("width", formatFloat(shape.w))
		b.CreateAttr("height", formatFloat(shape.h))
	}

	edge := func(id string, source, target host.Element) {
		s1, ok1 := d.shapes[source.ID()]
		s2, ok2 := d.shapes[target.ID()]
		if !ok1 || !ok2 || !s1.visible || !s2.visible {
			return
		}
		ee := plane.CreateElement("bpmndi:BPMNEdge")
		ee.CreateAttr("id", id+"_di")
		ee.CreateAttr("bpmnElement", id)
		for _, s := range []*Shape{s1, s2} {
			x, y := s.center()
			wp := ee.CreateElement("di:waypoint")
			wp.CreateAttr("x", formatFloat(x))
			wp.CreateAttr("y", formatFloat(y))
		}
	}

	for _, flow := range d.origin.SequenceFlows() {
		edge(flow.xmlID, flow.source, flow.target)
	}
	for _, assoc := range d.origin.assocs {
		source, target := assoc.ends()
		if source != nil && target != nil {
			edge(assoc.xmlID, source, target)
		}
	}
}

func xmlIDOf(elem host.Element) (string, error) {
	if elem == nil {
		return "", api.BadRequest("missing element reference")
	}
	x, ok := elem.(interface{ XMLID() string })
	if !ok {
		return "", api.BadRequest("element %s is not part of this repository", elem.Name())
	}
	return x.XMLID(), nil
}

// FindProcess returns the first process of defs named name, or the first
// process when name is empty.
func (d *Definitions) FindProcess(name string) (*Process, error) {
	for _, p := range d.Processes {
		if name == "" || p.name == name || p.xmlID == name {
			return p, nil
		}
	}
	if name == "" {
		return nil, api.NotFound("no process in definitions")
	}
	return nil, api.NotFound("process %s", name)
}

// DiagramOf returns the first diagram showing p.
func (d *Definitions) DiagramOf(p *Process) (*Diagram, error) {
	for _, diagram := range d.Diagrams {
		if diagram.origin == p {
			return diagram, nil
		}
	}
	return nil, api.NotFound("no diagram for process %s", p.name)
}

func (d *Definitions) String() string {
	return fmt.Sprintf("definitions(%d processes, %d diagrams)", len(d.Processes), len(d.Diagrams))
}
