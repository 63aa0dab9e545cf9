// Package importer drives a host to rebuild a process and its diagram from
// a layout config.
package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/vine-io/flowlayout/api"
	"github.com/vine-io/flowlayout/bounds"
	"github.com/vine-io/flowlayout/bpmn"
	"github.com/vine-io/flowlayout/host"
	"github.com/vine-io/flowlayout/report"
	"github.com/vine-io/flowlayout/schema"
	"github.com/vine-io/pkg/xname"
)

const (
	PhaseCreateProcessAndLanes  = "CreateProcessAndLanes"
	PhaseCreateElements         = "CreateElements"
	PhaseCreateDiagram          = "CreateDiagram"
	PhaseUnmaskAndPosition      = "UnmaskAndPosition"
	PhaseCreateFlows            = "CreateFlows"
	PhaseCreateDataAssociations = "CreateDataAssociations"
	PhaseClose                  = "Close"
)

type Builder struct {
	m    host.Modeler
	opts Options
}

func NewBuilder(m host.Modeler, opts ...Option) *Builder {
	return &Builder{m: m, opts: NewOptions(opts...)}
}

func (b *Builder) Options() Options {
	return b.opts
}

// build is the state of one run.
type build struct {
	ctx      context.Context
	m        host.Modeler
	cfg      *schema.LayoutConfig
	settings schema.Settings
	caps     bpmn.Capabilities
	lg       *report.Logger

	container host.Container
	name      string
	process   host.Process
	diagram   host.Diagram
	handle    host.DiagramHandle

	tags     map[string]bpmn.ElementType
	resolved map[string]bpmn.ElementType
	// element names in creation order
	order    []string
	graphics map[string]host.Graphic

	result *Result
}

// Build creates a process named after cfg in container, then its lanes,
// elements, diagram, flows and data associations. Items that fail are
// skipped and reported, only a failure to create the process or the
// diagram, or to open the diagram, aborts the run.
func (b *Builder) Build(ctx context.Context, container host.Container, cfg *schema.LayoutConfig) (*Result, error) {
	lg := report.NewLogger(b.opts.LoggerOptions...)
	result := newResult(lg.Report())
	if b.m == nil {
		return result, api.BadRequest("missing modeler")
	}
	if cfg == nil {
		return result, api.BadRequest("missing layout config")
	}
	if err := cfg.Validate(); err != nil {
		return result, err
	}

	caps := b.m.Capabilities()
	if b.opts.Capabilities != nil {
		caps = *b.opts.Capabilities
	}

	bd := &build{
		ctx:       ctx,
		m:         b.m,
		cfg:       cfg,
		settings:  b.opts.Settings.Merge(cfg.Overrides()),
		caps:      caps,
		lg:        lg,
		container: container,
		name:      cfg.Name,
		tags:      cfg.Tags(),
		resolved:  make(map[string]bpmn.ElementType),
		order:     make([]string, 0),
		graphics:  make(map[string]host.Graphic),
		result:    result,
	}
	if b.opts.ExecutionSuffix {
		bd.name = cfg.Name + "_" + xname.Gen(xname.C(6), xname.Lowercase(), xname.Digit())
	}

	phases := []struct {
		name string
		fn   func() error
	}{
		{PhaseCreateProcessAndLanes, bd.createProcessAndLanes},
		{PhaseCreateElements, bd.createElements},
		{PhaseCreateDiagram, bd.createDiagram},
		{PhaseUnmaskAndPosition, bd.unmaskAndPosition},
		{PhaseCreateFlows, bd.createFlows},
		{PhaseCreateDataAssociations, bd.createDataAssociations},
	}
	for _, phase := range phases {
		if err := ctx.Err(); err != nil {
			bd.abort()
			return result, api.FromErr(err)
		}
		bd.lg = lg.Phase(phase.name)
		bd.lg.Debugf("start %s", bd.name)
		if err := phase.fn(); err != nil {
			bd.abort()
			return result, api.FromErr(err)
		}
	}

	bd.lg = lg.Phase(PhaseClose)
	bd.close()
	lg.Infof("built %s: %d lanes, %d elements (%d positioned), %d flows, %d data associations",
		bd.name, len(result.Lanes), len(result.Elements), result.Positioned, len(result.Flows), len(result.DataAssociations))
	return result, nil
}

func (bd *build) createProcessAndLanes() error {
	process, err := bd.m.CreateProcess(bd.container, bd.name)
	if err != nil {
		return api.FromErr(err)
	}
	bd.process = process
	bd.result.Process = process

	if len(bd.cfg.Lanes) == 0 {
		return nil
	}
	set, err := bd.m.CreateLaneSet(process)
	if err != nil {
		bd.lg.Warnf("create lane set: %v, building without lanes", err)
		return nil
	}
	for _, desc := range bd.cfg.OrderedLanes() {
		lane, err := bd.m.CreateLane(set, desc.Name)
		if err != nil {
			bd.lg.Warnw(desc.Name, "create lane: %v", err)
			continue
		}
		bd.result.Lanes[desc.Name] = lane
	}
	return nil
}

func (bd *build) createElements() error {
	for _, rec := range bd.cfg.Elements {
		tag, err := bd.caps.Resolve(rec.Type)
		if err != nil {
			bd.lg.Errorw(rec.Name, "%v", api.FromErr(err).Detail)
			continue
		}
		if tag != rec.Type {
			bd.lg.Warnw(rec.Name, "%s is not available, created as %s", rec.Type, tag)
		}
		spec, err := bpmn.ConstructorFor(tag)
		if err != nil {
			bd.lg.Errorw(rec.Name, "%v", api.FromErr(err).Detail)
			continue
		}

		elem, err := bd.m.CreateElement(bd.process, rec.Name, spec)
		if err != nil {
			bd.lg.Errorw(rec.Name, "create element: %v", err)
			continue
		}
		bd.result.Elements[rec.Name] = elem
		bd.resolved[rec.Name] = tag
		bd.order = append(bd.order, rec.Name)

		if rec.Lane == "" {
			continue
		}
		lane, ok := bd.result.Lanes[rec.Lane]
		if !ok {
			bd.lg.Warnw(rec.Name, "lane %s not found, element left unassigned", rec.Lane)
			continue
		}
		if err = bd.m.AddToLane(lane, elem); err != nil {
			bd.lg.Warnw(rec.Name, "add to lane %s: %v", rec.Lane, err)
		}
	}
	return nil
}

func (bd *build) createDiagram() error {
	diagram, err := bd.m.CreateDiagram(bd.process, bd.name)
	if err != nil {
		return api.FromErr(err)
	}
	bd.diagram = diagram
	bd.result.Diagram = diagram

	handle, err := bd.m.OpenDiagram(diagram)
	if err != nil {
		return api.FromErr(err)
	}
	bd.handle = handle
	return nil
}

func (bd *build) unmaskAndPosition() error {
	if err := bd.await(); err != nil {
		return err
	}
	bd.unmask()
	bd.lg.Info(bd.laneSummary())

	if bd.cfg.Mode() == schema.ModeColumn {
		bd.placeColumns()
	} else {
		bd.placeExact()
	}
	return nil
}

func (bd *build) createFlows() error {
	for _, rec := range bd.cfg.Flows {
		subject := rec.Source + "->" + rec.Target
		source, ok1 := bd.result.Elements[rec.Source]
		target, ok2 := bd.result.Elements[rec.Target]
		if !ok1 || !ok2 {
			bd.lg.Warnw(subject, "endpoint not found, flow dropped")
			continue
		}
		flow, err := bd.m.CreateSequenceFlow(bd.process, source, target, rec.Guard)
		if err != nil {
			bd.lg.Warnw(subject, "create flow: %v", err)
			continue
		}
		bd.result.Flows = append(bd.result.Flows, flow)
	}
	return nil
}

func (bd *build) createDataAssociations() error {
	for _, rec := range bd.cfg.DataAssociations {
		subject := rec.Source + "->" + rec.Target
		source, ok1 := bd.result.Elements[rec.Source]
		target, ok2 := bd.result.Elements[rec.Target]
		if !ok1 || !ok2 {
			bd.lg.Warnw(subject, "endpoint not found, data association dropped")
			continue
		}

		inferred, ok := schema.InferDirection(bd.tags[rec.Source], bd.tags[rec.Target])
		if !ok {
			bd.lg.Warnw(subject, "needs exactly one data object, data association dropped")
			continue
		}
		if rec.Direction != inferred {
			bd.lg.Warnw(subject, "direction %q contradicts the element types, using %s", rec.Direction, inferred)
		}

		assoc, err := bd.m.CreateDataAssociation(bd.process, source, target)
		if err != nil {
			bd.lg.Warnw(subject, "create data association: %v", err)
			continue
		}
		bd.result.DataAssociations = append(bd.result.DataAssociations, assoc)
	}
	return nil
}

func (bd *build) close() {
	if bd.handle == nil {
		return
	}
	if err := bd.handle.Save(); err != nil {
		bd.lg.Warnf("save diagram: %v", err)
	}
	if err := bd.handle.Close(); err != nil {
		bd.lg.Warnf("close diagram: %v", err)
	}
	bd.handle = nil
}

// abort closes the handle without saving.
func (bd *build) abort() {
	if bd.handle == nil {
		return
	}
	if err := bd.handle.Close(); err != nil {
		bd.lg.Warnf("close diagram: %v", err)
	}
	bd.handle = nil
}

// laneRect reads the current rectangle of a lane.
func (bd *build) laneRect(name string) (bounds.Rectangle, bool) {
	lane, ok := bd.result.Lanes[name]
	if !ok || bd.handle == nil {
		return bounds.Rectangle{}, false
	}
	g, ok := bd.handle.Graphics(lane)
	if !ok || g == nil {
		return bounds.Rectangle{}, false
	}
	return bounds.Parse(g.Bounds())
}

// laneSummary renders the lane geometry like "Lanes: A(0-200); B(200-400)".
func (bd *build) laneSummary() string {
	parts := make([]string, 0, len(bd.cfg.Lanes))
	for _, desc := range bd.cfg.OrderedLanes() {
		rect, ok := bd.laneRect(desc.Name)
		if !ok {
			parts = append(parts, desc.Name+"(?)")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s(%d-%d)", desc.Name, rect.Y, rect.Bottom()))
	}
	if len(parts) == 0 {
		return "Lanes: none"
	}
	return "Lanes: " + strings.Join(parts, "; ")
}
