package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vine-io/flowlayout/api"
	"github.com/vine-io/flowlayout/bounds"
	"github.com/vine-io/flowlayout/bpmn"
	"github.com/vine-io/flowlayout/host"
	"github.com/vine-io/flowlayout/host/mock"
	"github.com/vine-io/flowlayout/model"
	"github.com/vine-io/flowlayout/report"
	"github.com/vine-io/flowlayout/schema"
)

func quiet() Option {
	return WithLoggerOptions(report.WithQuiet())
}

func column(name string, tag bpmn.ElementType, lane string) schema.ElementRecord {
	return schema.ElementRecord{Name: name, Type: tag, Lane: lane, IsDataObject: tag.IsDataObject()}
}

func exact(name string, tag bpmn.ElementType, lane string, x, y, w, h int) schema.ElementRecord {
	return schema.ElementRecord{Name: name, Type: tag, Lane: lane, X: x, YOffset: y, W: w, H: h, IsDataObject: tag.IsDataObject(), Exact: true}
}

func rectOf(t *testing.T, res *Result, name string) bounds.Rectangle {
	elem, ok := res.Elements[name]
	require.True(t, ok, name)
	shape, ok := res.Diagram.(*model.Diagram).Shape(elem)
	require.True(t, ok, name)
	return shape.Rect()
}

func subjectsOf(items []report.Diagnostic) []string {
	out := make([]string, 0, len(items))
	for _, d := range items {
		out = append(out, d.Subject)
	}
	return out
}

func linearConfig() *schema.LayoutConfig {
	cfg := schema.New("linear")
	cfg.Lanes = []schema.LaneDescriptor{{Name: "L"}}
	cfg.Elements = []schema.ElementRecord{
		column("Start", bpmn.Start, "L"),
		column("A", bpmn.UserTask, "L"),
		column("End", bpmn.End, "L"),
	}
	cfg.Layout = map[string]schema.ColumnSlot{
		"Start": {Column: 0},
		"A":     {Column: 1},
		"End":   {Column: 2},
	}
	cfg.Flows = []schema.FlowRecord{{Source: "Start", Target: "A"}, {Source: "A", Target: "End"}}
	return cfg
}

func TestBuildLinear(t *testing.T) {
	repo := model.NewRepository()
	pkg := repo.NewPackage("pkg")

	res, err := NewBuilder(repo, quiet()).Build(context.TODO(), pkg, linearConfig())
	require.NoError(t, err)

	assert.Len(t, pkg.Processes(), 1)
	assert.Equal(t, "linear", res.Process.Name())
	assert.Len(t, res.Lanes, 1)
	assert.Len(t, res.Elements, 3)
	assert.Len(t, res.Lanes["L"].FlowElementRefs(), 3)
	assert.Len(t, res.Flows, 2)
	assert.Len(t, res.DataAssociations, 0)
	assert.Equal(t, 3, res.Positioned)
	assert.Empty(t, res.Missing)
	assert.Empty(t, res.Report.Warnings())

	// lane center 100, bias 23
	assert.Equal(t, bounds.New(80, 77, 36, 36), rectOf(t, res, "Start"))
	assert.Equal(t, bounds.New(230, 77, 120, 60), rectOf(t, res, "A"))
	assert.Equal(t, bounds.New(380, 77, 36, 36), rectOf(t, res, "End"))

	infos := res.Report.Filter(report.LevelInfo)
	texts := make([]string, 0, len(infos))
	for _, d := range infos {
		texts = append(texts, d.Message)
	}
	assert.Contains(t, texts, "Lanes: L(0-200)")
}

func TestBuildExactSettlesLanes(t *testing.T) {
	repo := model.NewRepository()
	cfg := schema.New("exact")
	cfg.Lanes = []schema.LaneDescriptor{{Name: "Low", Order: 1}, {Name: "High", Order: 0}}
	cfg.Elements = []schema.ElementRecord{
		exact("Deep", bpmn.ServiceTask, "High", 50, 150, 100, 40),
		exact("Next", bpmn.UserTask, "Low", 200, 30, 140, 70),
		exact("Gate", bpmn.ParallelGateway, "Low", 400, 40, 50, 50),
		exact("Loose", bpmn.End, "", 600, 10, 36, 36),
	}

	res, err := NewBuilder(repo, quiet()).Build(context.TODO(), nil, cfg)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Positioned)

	// tasks are at least 120x60
	assert.Equal(t, bounds.New(50, 150, 120, 60), rectOf(t, res, "Deep"))

	// High grew to 150+60+20, Low starts below it
	lowShape, ok := res.Diagram.(*model.Diagram).Shape(res.Lanes["Low"])
	require.True(t, ok)
	assert.Equal(t, 230, lowShape.Rect().Y)
	assert.Equal(t, bounds.New(200, 260, 140, 70), rectOf(t, res, "Next"))
	assert.Equal(t, bounds.New(400, 270, 50, 50), rectOf(t, res, "Gate"))
	assert.Equal(t, bounds.New(600, 10, 36, 36), rectOf(t, res, "Loose"))
}

func TestBuildColumnStacking(t *testing.T) {
	repo := model.NewRepository(model.WithLaneHeight(400))
	cfg := schema.New("stack")
	cfg.Lanes = []schema.LaneDescriptor{{Name: "L"}}
	cfg.Elements = []schema.ElementRecord{
		column("B", bpmn.UserTask, "L"),
		column("A", bpmn.UserTask, "L"),
		column("Up", bpmn.UserTask, "L"),
		column("C", bpmn.UserTask, "L"),
	}
	cfg.Layout = map[string]schema.ColumnSlot{
		"B":  {Column: 1},
		"A":  {Column: 1},
		"Up": {Column: 1, Nudge: -100, HasNudge: true},
		"C":  {Column: 2},
	}

	res, err := NewBuilder(repo, quiet()).Build(context.TODO(), nil, cfg)
	require.NoError(t, err)

	// center 200, bias 23
	assert.Equal(t, bounds.New(230, 77, 120, 60), rectOf(t, res, "Up"))
	assert.Equal(t, bounds.New(230, 177, 120, 60), rectOf(t, res, "A"))
	assert.Equal(t, bounds.New(230, 267, 120, 60), rectOf(t, res, "B"))
	assert.Equal(t, bounds.New(380, 177, 120, 60), rectOf(t, res, "C"))
}

func TestBuildDataObjects(t *testing.T) {
	repo := model.NewRepository(model.WithLaneHeight(300))
	cfg := schema.New("data")
	cfg.Lanes = []schema.LaneDescriptor{{Name: "Work", Order: 0}, {Name: "Archive", Order: 1}}
	cfg.Elements = []schema.ElementRecord{
		column("Write", bpmn.UserTask, "Work"),
		column("Far", bpmn.UserTask, "Work"),
		column("Near", bpmn.UserTask, "Work"),
		column("Draft", bpmn.DataObject, "Work"),
		column("Notes", bpmn.DataObject, "Work"),
		column("Box", bpmn.DataObject, "Archive"),
	}
	cfg.Layout = map[string]schema.ColumnSlot{
		"Write": {Column: 0},
		"Far":   {Column: 4},
		"Near":  {Column: 2, Nudge: 80, HasNudge: true},
		"Draft": {Column: 0},
		"Notes": {Column: 2},
		"Box":   {Column: 1},
	}
	cfg.DataAssociations = []schema.DataAssociationRecord{
		{Source: "Write", Target: "Draft", Direction: schema.DirectionOutput},
		{Source: "Box", Target: "Far", Direction: schema.DirectionInput},
	}

	res, err := NewBuilder(repo, quiet()).Build(context.TODO(), nil, cfg)
	require.NoError(t, err)
	assert.Len(t, res.DataAssociations, 2)
	assert.Empty(t, res.Report.Warnings())

	// center 150, bias 23
	assert.Equal(t, bounds.New(80, 127, 120, 60), rectOf(t, res, "Write"))
	assert.Equal(t, bounds.New(380, 207, 120, 60), rectOf(t, res, "Near"))
	assert.Equal(t, bounds.New(680, 127, 120, 60), rectOf(t, res, "Far"))

	// under the producer
	assert.Equal(t, bounds.New(170, 197, 40, 50), rectOf(t, res, "Draft"))
	// under the closest node by column, clamped to 300-50-5
	assert.Equal(t, bounds.New(470, 245, 40, 50), rectOf(t, res, "Notes"))
	// lane default below the first task row
	box := rectOf(t, res, "Box")
	assert.Equal(t, 320, box.X)
	archive, ok := res.Diagram.(*model.Diagram).Shape(res.Lanes["Archive"])
	require.True(t, ok)
	assert.Equal(t, archive.Rect().Y+20+60+10, box.Y)
}

func TestBuildCapabilityDowngrade(t *testing.T) {
	caps := bpmn.FullCapabilities()
	caps.ScriptTask = false
	caps.DataObjects = false
	repo := model.NewRepository(model.WithCapabilities(caps))

	cfg := linearConfig()
	cfg.Elements = append(cfg.Elements, column("Run", bpmn.ScriptTask, "L"), column("Doc", bpmn.DataObject, "L"))
	cfg.Layout["Run"] = schema.ColumnSlot{Column: 3}
	cfg.Layout["Doc"] = schema.ColumnSlot{Column: 3}
	cfg.Flows = append(cfg.Flows, schema.FlowRecord{Source: "End", Target: "Run"})
	cfg.DataAssociations = []schema.DataAssociationRecord{{Source: "Run", Target: "Doc", Direction: schema.DirectionOutput}}

	res, err := NewBuilder(repo, quiet()).Build(context.TODO(), nil, cfg)
	require.NoError(t, err)

	run, ok := res.Elements["Run"]
	require.True(t, ok)
	assert.True(t, run.IsA(bpmn.ServiceTaskClass))
	_, ok = res.Elements["Doc"]
	assert.False(t, ok)

	assert.Len(t, res.Flows, 3)
	assert.Len(t, res.DataAssociations, 0)
	assert.True(t, res.Report.HasErrors())

	assert.Equal(t, []string{"Run", "Run->Doc"}, subjectsOf(res.Report.Warnings()))
	if errs := res.Report.Errors(); assert.Len(t, errs, 1) {
		assert.Equal(t, "Doc", errs[0].Subject)
	}
}

func TestBuildUnknownTagSkipped(t *testing.T) {
	repo := model.NewRepository()
	cfg := linearConfig()
	cfg.Elements = append(cfg.Elements, column("Mystery", "SUBPROCESS", "L"))
	cfg.Layout["Mystery"] = schema.ColumnSlot{Column: 3}
	cfg.Flows = append(cfg.Flows, schema.FlowRecord{Source: "End", Target: "Mystery"})

	res, err := NewBuilder(repo, quiet()).Build(context.TODO(), nil, cfg)
	require.NoError(t, err)
	require.NotNil(t, res.Process)
	assert.Len(t, res.Elements, 3)
	assert.Len(t, res.Flows, 2)
	assert.Equal(t, 3, res.Positioned)

	errs := res.Report.Errors()
	if assert.Len(t, errs, 1) {
		assert.Equal(t, "Mystery", errs[0].Subject)
		assert.Equal(t, PhaseCreateElements, errs[0].Phase)
		assert.Contains(t, errs[0].Message, `"SUBPROCESS"`)
	}
	assert.Equal(t, []string{"End->Mystery"}, subjectsOf(res.Report.Warnings()))
}

func TestBuildUnresolvedFlow(t *testing.T) {
	repo := model.NewRepository()
	cfg := linearConfig()
	cfg.Flows = append(cfg.Flows, schema.FlowRecord{Source: "A", Target: "Nowhere", Guard: "never"})

	res, err := NewBuilder(repo, quiet()).Build(context.TODO(), nil, cfg)
	require.NoError(t, err)
	assert.Len(t, res.Flows, 2)
	assert.Len(t, res.Elements, 3)
	warnings := res.Report.Warnings()
	if assert.Len(t, warnings, 1) {
		assert.Equal(t, "A->Nowhere", warnings[0].Subject)
		assert.Equal(t, PhaseCreateFlows, warnings[0].Phase)
	}
}

func TestBuildDirectionRepaired(t *testing.T) {
	repo := model.NewRepository()
	cfg := linearConfig()
	cfg.Elements = append(cfg.Elements, column("Out", bpmn.DataObject, "L"))
	cfg.Layout["Out"] = schema.ColumnSlot{Column: 1}
	cfg.DataAssociations = []schema.DataAssociationRecord{
		{Source: "A", Target: "Out", Direction: schema.DirectionInput},
		{Source: "A", Target: "End", Direction: schema.DirectionOutput},
	}

	res, err := NewBuilder(repo, quiet()).Build(context.TODO(), nil, cfg)
	require.NoError(t, err)
	if assert.Len(t, res.DataAssociations, 1) {
		assert.Equal(t, "A", res.DataAssociations[0].StartingActivity().Name())
	}
	assert.Len(t, res.Report.Warnings(), 2)
}

func TestBuildExecutionSuffix(t *testing.T) {
	repo := model.NewRepository()
	res, err := NewBuilder(repo, quiet(), WithExecutionSuffix()).Build(context.TODO(), nil, linearConfig())
	require.NoError(t, err)
	name := res.Process.Name()
	assert.True(t, strings.HasPrefix(name, "linear_"))
	assert.Len(t, name, len("linear_")+6)
}

func TestBuildSettings(t *testing.T) {
	repo := model.NewRepository()
	cfg := linearConfig()
	cfg.Settings = cfg.Settings.Merge(schema.Settings{Spacing: 200})

	res, err := NewBuilder(repo, quiet(), WithSettings(schema.Settings{Spacing: 100, StartX: 20})).Build(context.TODO(), nil, cfg)
	require.NoError(t, err)
	// the config wins over the builder
	assert.Equal(t, 220, rectOf(t, res, "A").X)
}

func TestBuildExplicitDefaultSetting(t *testing.T) {
	repo := model.NewRepository()
	cfg := linearConfig()
	cfg.Override(schema.Settings{Spacing: schema.DefaultSpacing})

	res, err := NewBuilder(repo, quiet(), WithSettings(schema.Settings{Spacing: 180})).Build(context.TODO(), nil, cfg)
	require.NoError(t, err)
	assert.Equal(t, 230, rectOf(t, res, "A").X)

	res, err = NewBuilder(model.NewRepository(), quiet(), WithSettings(schema.Settings{Spacing: 180})).Build(context.TODO(), nil, linearConfig())
	require.NoError(t, err)
	assert.Equal(t, 260, rectOf(t, res, "A").X)
}

func TestBuildInvalid(t *testing.T) {
	repo := model.NewRepository()
	_, err := NewBuilder(repo, quiet()).Build(context.TODO(), nil, schema.New(""))
	assert.True(t, api.IsCode(err, api.StatusBadRequest))

	_, err = NewBuilder(repo, quiet()).Build(context.TODO(), nil, nil)
	assert.True(t, api.IsCode(err, api.StatusBadRequest))
}

func TestBuildCanceled(t *testing.T) {
	repo := model.NewRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewBuilder(repo, quiet()).Build(ctx, nil, linearConfig())
	assert.True(t, api.IsCode(err, api.StatusCancel))
	assert.Empty(t, repo.Packages())
}

func TestBuildProcessFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mock.NewMockModeler(ctrl)
	m.EXPECT().Capabilities().Return(bpmn.FullCapabilities())
	m.EXPECT().CreateProcess(nil, "linear").Return(nil, api.Conflict("process linear exists"))

	res, err := NewBuilder(m, quiet()).Build(context.TODO(), nil, linearConfig())
	assert.True(t, api.IsCode(err, api.StatusConflict))
	assert.Nil(t, res.Process)
}

// handleModeler serves a scripted diagram handle over a real repository.
type handleModeler struct {
	*model.Repository
	handle host.DiagramHandle
}

func (m *handleModeler) OpenDiagram(host.Diagram) (host.DiagramHandle, error) {
	return m.handle, nil
}

func TestBuildLatencyAndUnmask(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	laneGraphic := mock.NewMockGraphic(ctrl)
	laneGraphic.EXPECT().Bounds().Return("Rectangle(0, 100, 1000, 200)").AnyTimes()
	found := mock.NewMockGraphic(ctrl)
	found.EXPECT().Bounds().Return("Rectangle(10, 110, 100, 80)").AnyTimes()
	found.EXPECT().SetBounds(bounds.New(80, 177, 120, 60)).Return(nil)

	polls := make(map[string]int)
	handle := mock.NewMockDiagramHandle(ctrl)
	handle.EXPECT().Graphics(gomock.Any()).DoAndReturn(func(elem host.Element) (host.Graphic, bool) {
		polls[elem.Name()]++
		switch elem.Name() {
		case "L":
			return laneGraphic, true
		case "Found":
			if polls["Found"] >= 3 {
				return found, true
			}
		}
		return nil, false
	}).AnyTimes()
	handle.EXPECT().Unmask(gomock.Any(), 100, 200).DoAndReturn(func(elem host.Element, x, y int) (host.Graphic, error) {
		assert.Equal(t, "Lost", elem.Name())
		return nil, api.NotFound("no graphic")
	})
	handle.EXPECT().Save().Return(nil).AnyTimes()
	handle.EXPECT().Close().Return(nil)

	m := &handleModeler{Repository: model.NewRepository(), handle: handle}
	cfg := schema.New("latency")
	cfg.Lanes = []schema.LaneDescriptor{{Name: "L"}}
	cfg.Elements = []schema.ElementRecord{
		column("Found", bpmn.UserTask, "L"),
		column("Lost", bpmn.UserTask, "L"),
	}
	cfg.Layout = map[string]schema.ColumnSlot{"Found": {Column: 0}, "Lost": {Column: 1}}

	res, err := NewBuilder(m, quiet(), WithSettings(schema.Settings{WaitTimeMs: 1})).Build(context.TODO(), nil, cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, polls["Found"])
	assert.Equal(t, 3, polls["Lost"])
	assert.Equal(t, []string{"Lost"}, res.Missing)
	assert.Equal(t, 1, res.Positioned)
}

func TestBuildUnmaskMasked(t *testing.T) {
	repo := model.NewRepository(model.WithMaskedElements("Hidden"), model.WithUnmaskLatency(1))
	cfg := schema.New("masked")
	cfg.Lanes = []schema.LaneDescriptor{{Name: "L"}}
	cfg.Elements = []schema.ElementRecord{
		exact("Hidden", bpmn.UserTask, "L", 300, 40, 120, 60),
		exact("Slow", bpmn.UserTask, "L", 50, 40, 120, 60),
	}

	res, err := NewBuilder(repo, quiet(), WithSettings(schema.Settings{WaitTimeMs: 1})).Build(context.TODO(), nil, cfg)
	require.NoError(t, err)
	assert.Empty(t, res.Missing)
	assert.Equal(t, 2, res.Positioned)
	assert.Equal(t, bounds.New(300, 40, 120, 60), rectOf(t, res, "Hidden"))
	assert.Equal(t, bounds.New(50, 40, 120, 60), rectOf(t, res, "Slow"))
}
