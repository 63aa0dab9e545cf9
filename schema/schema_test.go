package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vine-io/flowlayout/api"
	"github.com/vine-io/flowlayout/bpmn"
)

func exactConfig() *LayoutConfig {
	c := New("Order Handling")
	c.Lanes = []LaneDescriptor{
		{Name: "Sales", Order: 0, TopY: 0, Height: 200},
		{Name: "Warehouse", Order: 1, TopY: 200, Height: 250},
	}
	c.Elements = []ElementRecord{
		{Name: "Start", Type: bpmn.Start, Lane: "Sales", X: 50, YOffset: 82, W: 36, H: 36, Exact: true},
		{Name: "Review Order", Type: bpmn.UserTask, Lane: "Sales", X: 150, YOffset: 70, W: 120, H: 60, Exact: true},
		{Name: "Order Data", Type: bpmn.DataObject, Lane: "Sales", X: 240, YOffset: 140, W: 40, H: 50, IsDataObject: true, Exact: true},
		{Name: "Ok?", Type: bpmn.ExclusiveGateway, Lane: "Warehouse", X: 320, YOffset: 75, W: 50, H: 50, Exact: true},
		{Name: "Note", Type: bpmn.GenericTask, X: 400, YOffset: -30, W: 100, H: 40, Exact: true},
		{Name: "End", Type: bpmn.End, Lane: "Warehouse", X: 480, YOffset: 82, W: 36, H: 36, Exact: true},
	}
	c.Flows = []FlowRecord{
		{Source: "Start", Target: "Review Order"},
		{Source: "Review Order", Target: "Ok?"},
		{Source: "Ok?", Target: "End", Guard: "amount > 100 "},
		{Source: "Ok?", Target: "Note", Guard: "Else"},
	}
	c.DataAssociations = []DataAssociationRecord{
		{Source: "Review Order", Target: "Order Data", Direction: DirectionOutput},
	}
	return c
}

func columnConfig() *LayoutConfig {
	c := New("Columns")
	c.Lanes = []LaneDescriptor{{Name: "L", Order: 0}}
	c.Elements = []ElementRecord{
		{Name: "Start", Type: bpmn.Start, Lane: "L"},
		{Name: "A", Type: bpmn.UserTask, Lane: "L"},
		{Name: "B", Type: bpmn.ServiceTask, Lane: "L"},
		{Name: "Doc", Type: bpmn.DataObject, Lane: "L", IsDataObject: true},
		{Name: "End", Type: bpmn.End, Lane: "L"},
	}
	c.Layout = map[string]ColumnSlot{
		"Start": {Column: 0},
		"A":     {Column: 1},
		"B":     {Column: 1, Nudge: 60, HasNudge: true},
		"Doc":   {Column: 1},
		"End":   {Column: 2},
	}
	c.Flows = []FlowRecord{{Source: "Start", Target: "A"}, {Source: "A", Target: "End"}}
	c.DataAssociations = []DataAssociationRecord{{Source: "Doc", Target: "B", Direction: DirectionInput}}
	c.Override(Settings{Spacing: 200})
	return c
}

func TestCodecRoundTrip(t *testing.T) {
	for _, f := range Formats() {
		for _, c := range []*LayoutConfig{exactConfig(), columnConfig()} {
			data, err := Marshal(c, f)
			require.NoError(t, err, f)

			got, err := Unmarshal(data, f)
			require.NoError(t, err, "%s: %s", f, data)

			want := *c
			// data objects are written after the other elements
			want.Elements = reorderDataObjects(c.Elements)
			if diff := cmp.Diff(&want, got); diff != "" {
				t.Errorf("%s round trip mismatch (-want +got):\n%s", f, diff)
			}
		}
	}
}

func reorderDataObjects(elements []ElementRecord) []ElementRecord {
	out := make([]ElementRecord, 0, len(elements))
	for _, elem := range elements {
		if !elem.IsDataObject {
			out = append(out, elem)
		}
	}
	for _, elem := range elements {
		if elem.IsDataObject {
			out = append(out, elem)
		}
	}
	return out
}

func TestUnmarshalTuples(t *testing.T) {
	doc := `{
  "name": "Tuples",
  "lanes": ["A", "B"],
  "lane_bounds": [{"name": "A", "h": 180}, {"name": "B", "h": 220}],
  "elements": [
    ["Start", "START", "A"],
    ["Work", "USER_TASK", "A"],
    ["Loose", "TASK", null]
  ],
  "data_objects": [["Doc", "B", 2]],
  "layout": {"Start": 0, "Work": [1, 40], "Loose": 3},
  "data_associations": [["Work", "Doc"], ["Doc", "Loose"]],
  "flows": [["Start", "Work"], ["Work", "Loose", "yes"]],
  "settings": {"spacing": 175, "max_attempts": 5}
}`
	c, err := Unmarshal([]byte(doc), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, ModeColumn, c.Mode())
	assert.Equal(t, []string{"A", "B"}, c.LaneNames())
	lane, ok := c.Lane("B")
	assert.True(t, ok)
	assert.Equal(t, LaneDescriptor{Name: "B", Order: 1, Height: 220}, lane)

	assert.Len(t, c.Elements, 4)
	doc1, ok := c.Element("Doc")
	assert.True(t, ok)
	assert.True(t, doc1.IsDataObject)
	assert.Equal(t, "B", doc1.Lane)
	loose, _ := c.Element("Loose")
	assert.Equal(t, "", loose.Lane)

	assert.Equal(t, ColumnSlot{Column: 2}, c.Layout["Doc"])
	assert.Equal(t, ColumnSlot{Column: 1, Nudge: 40, HasNudge: true}, c.Layout["Work"])

	assert.Equal(t, []DataAssociationRecord{
		{Source: "Work", Target: "Doc", Direction: DirectionOutput},
		{Source: "Doc", Target: "Loose", Direction: DirectionInput},
	}, c.DataAssociations)
	assert.Equal(t, FlowRecord{Source: "Start", Target: "Work"}, c.Flows[0])
	assert.Equal(t, "yes", c.Flows[1].Guard)

	assert.Equal(t, 175, c.Settings.Spacing)
	assert.Equal(t, 5, c.Settings.MaxAttempts)
	assert.Equal(t, DefaultTaskWidth, c.Settings.TaskWidth)
	assert.Empty(t, c.Check())
}

func TestUnmarshalRejects(t *testing.T) {
	docs := []string{
		`{"name": "x", "elements": [["A", "TASK"]]}`,
		`{"name": "x", "elements": [["A", "", null]]}`,
		`{"name": "x", "elements": [["A", "TASK", null], ["A", "END", null]]}`,
		`{"name": "x", "elements": [["A", "TASK", null], ["B", "END", null, 1, 2, 3, 4]]}`,
		`{"name": "", "elements": []}`,
		`{"name": "x", "elements": [], "flows": [["A"]]}`,
		`{"name": "x", "elements": [], "data_associations": [["A", "B", "sideways"]]}`,
		`{"name": "x", "elements": [["A", "TASK", null, 1, 2, -3, 4]]}`,
		`{"name": "x", "lanes": ["L", "L"], "elements": []}`,
		`not json`,
	}
	for _, doc := range docs {
		_, err := Unmarshal([]byte(doc), FormatJSON)
		if assert.Error(t, err, doc) {
			assert.True(t, api.IsCode(err, api.StatusBadRequest), doc)
		}
	}
}

func TestUnmarshalErrorDetail(t *testing.T) {
	_, err := Unmarshal([]byte(`{"name": "x", "elements": [["A", "TASK", null, 1, "y", 3, 4]]}`), FormatJSON)
	require.Error(t, err)
	assert.Equal(t, `elements[0]: expected a number, got "y"`, api.FromErr(err).Detail)
}

func TestUnmarshalKeepsUnknownTags(t *testing.T) {
	doc := []byte(`{"name": "x", "lanes": ["L"],
		"elements": [["A", "TASK", "L"], ["Mystery", "SUBPROCESS", "L"]],
		"layout": {"A": 0, "Mystery": 1},
		"flows": [["A", "Mystery"]]}`)
	require.NoError(t, ValidateDocument(doc, FormatJSON))

	c, err := Unmarshal(doc, FormatJSON)
	require.NoError(t, err)
	elem, ok := c.Element("Mystery")
	require.True(t, ok)
	assert.Equal(t, bpmn.ElementType("SUBPROCESS"), elem.Type)
	assert.Equal(t, []Issue{
		{Field: "elements", Subject: "Mystery", Message: `unknown element type "SUBPROCESS"`},
	}, c.Check())
}

func TestCheck(t *testing.T) {
	c := columnConfig()
	c.Elements = append(c.Elements, ElementRecord{Name: "Stray", Type: bpmn.GenericTask, Lane: "Ghost"})
	c.Elements = append(c.Elements, ElementRecord{Name: "Mystery", Type: "SUBPROCESS", Lane: "L"})
	c.Layout["Mystery"] = ColumnSlot{Column: 3}
	c.Flows = append(c.Flows, FlowRecord{Source: "A", Target: "Missing"})
	c.DataAssociations = append(c.DataAssociations, DataAssociationRecord{Source: "A", Target: "B", Direction: DirectionOutput})
	c.Layout["Phantom"] = ColumnSlot{Column: 4}

	issues := c.Check()
	want := []Issue{
		{Field: "elements", Subject: "Stray", Message: `lane "Ghost" is not declared`},
		{Field: "layout", Subject: "Stray", Message: "no column slot"},
		{Field: "elements", Subject: "Mystery", Message: `unknown element type "SUBPROCESS"`},
		{Field: "layout", Subject: "Phantom", Message: "no such element"},
		{Field: "flows", Subject: "A -> Missing", Message: `endpoint "Missing" not found`},
		{Field: "data_associations", Subject: "A -> B", Message: "direction output contradicts the element types"},
	}
	assert.Equal(t, want, issues)
}

func TestOrderedLanesStable(t *testing.T) {
	c := New("ties")
	c.Lanes = []LaneDescriptor{
		{Name: "Back", Order: 1},
		{Name: "Front", Order: 1},
		{Name: "Top", Order: 0},
	}
	once := c.OrderedLanes()
	assert.Equal(t, []string{"Top", "Back", "Front"}, c.LaneNames())

	c.Lanes = once
	assert.Equal(t, once, c.OrderedLanes())
}

func TestMode(t *testing.T) {
	assert.Equal(t, ModeLaneRelative, exactConfig().Mode())
	assert.Equal(t, ModeColumn, columnConfig().Mode())
	assert.Equal(t, ModeLaneRelative, New("empty").Mode())
}

func TestInferDirection(t *testing.T) {
	d, ok := InferDirection(bpmn.UserTask, bpmn.DataObject)
	assert.True(t, ok)
	assert.Equal(t, DirectionOutput, d)

	d, ok = InferDirection(bpmn.DataObject, bpmn.ServiceTask)
	assert.True(t, ok)
	assert.Equal(t, DirectionInput, d)

	_, ok = InferDirection(bpmn.DataObject, bpmn.DataObject)
	assert.False(t, ok)
	_, ok = InferDirection(bpmn.UserTask, bpmn.ServiceTask)
	assert.False(t, ok)
}

func TestSettings(t *testing.T) {
	s := Settings{Spacing: 200, WaitTimeMs: 10}.WithDefaults()
	assert.Equal(t, 200, s.Spacing)
	assert.Equal(t, DefaultTaskWidth, s.TaskWidth)
	assert.Equal(t, int64(10), s.WaitTime().Milliseconds())

	assert.Equal(t, Settings{Spacing: 200, WaitTimeMs: 10}, s.Overrides())
	assert.True(t, DefaultSettings().Overrides().IsZero())
	assert.Error(t, Settings{MaxAttempts: -1}.Validate())
}

func TestExplicitSettings(t *testing.T) {
	doc := []byte(`{"name": "x", "elements": [], "settings": {"spacing": 150, "margin": 30}}`)
	c, err := Unmarshal(doc, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, Settings{Spacing: DefaultSpacing, Margin: 30}, c.Explicit)
	assert.Equal(t, Settings{Spacing: DefaultSpacing, Margin: 30}, c.Overrides())
	assert.Equal(t, Settings{Margin: 30}, c.Settings.Overrides())

	for _, f := range Formats() {
		data, err := Marshal(c, f)
		require.NoError(t, err, f)
		got, err := Unmarshal(data, f)
		require.NoError(t, err, f)
		assert.Equal(t, c.Explicit, got.Explicit, f)
	}

	plain := New("plain")
	plain.Settings.Spacing = 200
	assert.Equal(t, Settings{Spacing: 200}, plain.Overrides())
}

func TestParseFormat(t *testing.T) {
	f, err := FormatOf("diagram.YML")
	assert.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ParseFormat("mp")
	assert.NoError(t, err)
	assert.Equal(t, FormatMsgpack, f)

	_, err = FormatOf("diagram.xml")
	assert.Error(t, err)
}

func TestValidateDocument(t *testing.T) {
	for _, f := range Formats() {
		data, err := Marshal(exactConfig(), f)
		require.NoError(t, err)
		assert.NoError(t, ValidateDocument(data, f), f)
	}

	err := ValidateDocument([]byte(`{"name": "x", "elements": [["A", "", null]]}`), FormatJSON)
	assert.True(t, api.IsCode(err, api.StatusUnprocessable))
	assert.NoError(t, ValidateDocument([]byte(`{"name": "x", "elements": [["A", "WHAT", null]]}`), FormatJSON))

	err = ValidateDocument([]byte(`{"name": "x", "elements": [], "layout": {"A": "one"}}`), FormatJSON)
	assert.Error(t, err)

	assert.Contains(t, LiteralSchema(), `"BUSINESS_RULE_TASK"`)
}
