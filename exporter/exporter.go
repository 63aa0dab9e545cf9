// Package exporter reads a process and its diagram from a host and turns
// them into a layout config.
package exporter

import (
	"context"
	"fmt"
	"sort"

	"github.com/vine-io/flowlayout/api"
	"github.com/vine-io/flowlayout/bounds"
	"github.com/vine-io/flowlayout/bpmn"
	"github.com/vine-io/flowlayout/host"
	"github.com/vine-io/flowlayout/report"
	"github.com/vine-io/flowlayout/schema"
)

type Exporter struct {
	opts Options
}

func New(opts ...Option) *Exporter {
	return &Exporter{opts: NewOptions(opts...)}
}

func (e *Exporter) Options() Options {
	return e.opts
}

type lane struct {
	lane  host.Lane
	name  string
	rect  bounds.Rectangle
	bound bool
}

// run is the state of one export.
type run struct {
	ctx     context.Context
	opts    Options
	caps    bpmn.Capabilities
	lg      *report.Logger
	handle  host.DiagramHandle
	process host.Process
	names   *names
	lanes   []*lane
	laneOf  map[string]*lane
	cfg     *schema.LayoutConfig
}

// Export builds the layout config of p as drawn on d. Elements that cannot
// be classified or positioned, and flows or associations that cannot be
// resolved, are left out and reported.
func (e *Exporter) Export(ctx context.Context, m host.Modeler, p host.Process, d host.Diagram) (*schema.LayoutConfig, *report.Report, error) {
	lg := report.NewLogger(e.opts.LoggerOptions...)
	if m == nil || p == nil || d == nil {
		return nil, lg.Report(), api.BadRequest("export needs a modeler, a process and a diagram")
	}

	caps := m.Capabilities()
	if e.opts.Capabilities != nil {
		caps = *e.opts.Capabilities
	}

	handle, err := m.OpenDiagram(d)
	if err != nil {
		return nil, lg.Report(), api.FromErr(err)
	}

	r := &run{
		ctx:     ctx,
		opts:    e.opts,
		caps:    caps,
		lg:      lg,
		handle:  handle,
		process: p,
		names:   newNames(),
		laneOf:  make(map[string]*lane),
		cfg:     schema.New(p.Name()),
	}
	r.cfg.Settings = e.opts.Settings

	steps := []struct {
		phase string
		fn    func() error
	}{
		{"lanes", r.collectLanes},
		{"elements", r.collectElements},
		{"flows", r.collectFlows},
		{"data_associations", r.collectDataAssociations},
		{"normalize", r.normalize},
	}
	for _, step := range steps {
		if err = ctx.Err(); err != nil {
			break
		}
		r.lg = lg.Phase(step.phase)
		if err = step.fn(); err != nil {
			break
		}
	}

	if cerr := handle.Close(); cerr != nil {
		lg.Phase("close").Warnf("close diagram %s: %v", d.Name(), cerr)
	}
	if err != nil {
		return nil, lg.Report(), api.FromErr(err)
	}

	lg.Infof("exported %s: %d lanes, %d elements, %d flows, %d data associations",
		r.cfg.Name, len(r.cfg.Lanes), len(r.cfg.Elements), len(r.cfg.Flows), len(r.cfg.DataAssociations))
	return r.cfg, lg.Report(), nil
}

// rect reads the current rectangle of elem from the diagram.
func (r *run) rect(elem host.Element) (bounds.Rectangle, bool) {
	g, ok := r.handle.Graphics(elem)
	if !ok || g == nil {
		return bounds.Rectangle{}, false
	}
	return bounds.Parse(g.Bounds())
}

func (r *run) collectLanes() error {
	laneNames := newNames()
	for _, set := range r.process.LaneSets() {
		for _, hl := range set.Lanes() {
			name := hl.Name()
			if name == "" {
				name = fmt.Sprintf("Lane_%d", len(r.lanes)+1)
			}
			item := &lane{lane: hl, name: laneNames.add(hl.ID(), name)}
			item.rect, item.bound = r.rect(hl)
			if !item.bound {
				r.lg.Warnw(item.name, "lane has no bounds, ordered last")
			}
			r.lanes = append(r.lanes, item)
		}
	}

	sort.SliceStable(r.lanes, func(i, j int) bool {
		a, b := r.lanes[i], r.lanes[j]
		if a.bound != b.bound {
			return a.bound
		}
		return a.bound && a.rect.Y < b.rect.Y
	})

	for i, item := range r.lanes {
		desc := schema.LaneDescriptor{Name: item.name, Order: i}
		if item.bound {
			desc.TopY = item.rect.Y
			desc.Height = item.rect.H
		}
		r.cfg.Lanes = append(r.cfg.Lanes, desc)
		for _, ref := range item.lane.FlowElementRefs() {
			if _, ok := r.laneOf[ref.ID()]; !ok {
				r.laneOf[ref.ID()] = item
			}
		}
	}

	if len(r.lanes) == 0 {
		r.lg.Debug("process has no lanes")
	}
	return nil
}

func (r *run) collectElements() error {
	classifier := bpmn.NewClassifier(r.caps)
	for _, elem := range r.process.FlowElements() {
		if elem.IsA(bpmn.SequenceFlowClass) || elem.IsA(bpmn.DataAssociationClass) {
			continue
		}

		tag := classifier.Classify(elem)
		if tag == bpmn.Unknown {
			r.lg.Warnw(elem.Name(), "unclassifiable element skipped")
			continue
		}

		name := elem.Name()
		if name == "" {
			name = string(tag)
		}
		final := r.names.add(elem.ID(), name)
		if final != name {
			r.lg.Debugf("renamed %s to %s", name, final)
		}

		rec := schema.ElementRecord{
			Name:         final,
			Type:         tag,
			IsDataObject: tag.IsDataObject(),
			Exact:        true,
		}
		item, inLane := r.laneOf[elem.ID()]
		if inLane {
			rec.Lane = item.name
		}

		rect, ok := r.rect(elem)
		if !ok {
			r.lg.Warnw(final, "element has no bounds, position not exported")
			continue
		}
		rec.X, rec.W, rec.H = rect.X, rect.W, rect.H
		rec.YOffset = rect.Y
		if inLane && item.bound {
			rec.YOffset = rect.Y - item.rect.Y
		}
		r.cfg.Elements = append(r.cfg.Elements, rec)
	}

	sort.SliceStable(r.cfg.Elements, func(i, j int) bool {
		a, b := r.cfg.Elements[i], r.cfg.Elements[j]
		if a.X != b.X {
			return a.X < b.X
		}
		return a.YOffset < b.YOffset
	})
	return nil
}

// nameOf resolves elem through the rename map, falling back to its host
// name.
func (r *run) nameOf(elem host.Element) (string, bool) {
	if elem == nil {
		return "", false
	}
	if name, ok := r.names.lookup(elem.ID()); ok {
		return name, true
	}
	return elem.Name(), elem.Name() != ""
}

func (r *run) collectFlows() error {
	for _, elem := range r.process.FlowElements() {
		flow, ok := elem.(host.SequenceFlow)
		if !ok || !elem.IsA(bpmn.SequenceFlowClass) {
			continue
		}

		source, ok1 := r.nameOf(flow.Source())
		target, ok2 := r.nameOf(flow.Target())
		if !ok1 || !ok2 {
			r.lg.Warnw(source+"->"+target, "sequence flow with a missing endpoint dropped")
			continue
		}

		guard := flow.Label()
		if guard == "" {
			guard = flow.ConditionExpression()
		}
		r.cfg.Flows = append(r.cfg.Flows, schema.FlowRecord{Source: source, Target: target, Guard: guard})
	}
	return nil
}

func (r *run) collectDataAssociations() error {
	for _, assoc := range r.process.DataAssociations() {
		var rec schema.DataAssociationRecord
		var ok1, ok2 bool
		switch {
		case assoc.StartingActivity() != nil:
			rec.Direction = schema.DirectionOutput
			rec.Source, ok1 = r.nameOf(assoc.StartingActivity())
			rec.Target, ok2 = r.nameOf(assoc.TargetRef())
		case assoc.EndingActivity() != nil:
			rec.Direction = schema.DirectionInput
			if refs := assoc.SourceRefs(); len(refs) > 0 {
				rec.Source, ok1 = r.nameOf(refs[0])
			}
			rec.Target, ok2 = r.nameOf(assoc.EndingActivity())
		}
		if !ok1 || !ok2 {
			r.lg.Warnw(rec.Source+"->"+rec.Target, "incomplete data association dropped")
			continue
		}
		r.cfg.DataAssociations = append(r.cfg.DataAssociations, rec)
	}
	return nil
}

// normalize shifts X so that the leftmost element sits at the margin.
func (r *run) normalize() error {
	if len(r.cfg.Elements) == 0 {
		return nil
	}
	minX := r.cfg.Elements[0].X
	for _, elem := range r.cfg.Elements {
		if elem.X < minX {
			minX = elem.X
		}
	}
	shift := r.opts.Settings.Margin - minX
	for i := range r.cfg.Elements {
		r.cfg.Elements[i].X += shift
	}
	return nil
}
