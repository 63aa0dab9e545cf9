package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vine-io/flowlayout/api"
	"github.com/vine-io/flowlayout/bounds"
	"github.com/vine-io/flowlayout/bpmn"
	"github.com/vine-io/flowlayout/host"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL" xmlns:bpmndi="http://www.omg.org/spec/BPMN/20100524/DI" xmlns:dc="http://www.omg.org/spec/DD/20100524/DC" xmlns:di="http://www.omg.org/spec/DD/20100524/DI" id="Definitions_1" targetNamespace="http://bpmn.io/schema/bpmn">
  <bpmn:process id="Process_1" name="order" isExecutable="false">
    <bpmn:laneSet id="LaneSet_1">
      <bpmn:lane id="Lane_1" name="Sales">
        <bpmn:flowNodeRef>Start_1</bpmn:flowNodeRef>
        <bpmn:flowNodeRef>Task_1</bpmn:flowNodeRef>
      </bpmn:lane>
      <bpmn:lane id="Lane_2" name="Stock">
        <bpmn:flowNodeRef>Gateway_1</bpmn:flowNodeRef>
      </bpmn:lane>
    </bpmn:laneSet>
    <bpmn:startEvent id="Start_1" name="Start">
      <bpmn:messageEventDefinition id="Message_1" />
    </bpmn:startEvent>
    <bpmn:userTask id="Task_1" name="Approve">
      <bpmn:dataOutputAssociation id="Assoc_1">
        <bpmn:targetRef>Data_1</bpmn:targetRef>
      </bpmn:dataOutputAssociation>
    </bpmn:userTask>
    <bpmn:exclusiveGateway id="Gateway_1" name="Check" />
    <bpmn:dataObject id="DataObject_1" />
    <bpmn:dataObjectReference id="Data_1" name="Invoice" dataObjectRef="DataObject_1" />
    <bpmn:textAnnotation id="Note_1" />
    <bpmn:sequenceFlow id="Flow_1" sourceRef="Start_1" targetRef="Task_1" />
    <bpmn:sequenceFlow id="Flow_2" name="ok" sourceRef="Task_1" targetRef="Gateway_1">
      <bpmn:conditionExpression>amount &gt; 10</bpmn:conditionExpression>
    </bpmn:sequenceFlow>
  </bpmn:process>
  <bpmndi:BPMNDiagram id="Diagram_1" name="main">
    <bpmndi:BPMNPlane id="Plane_1" bpmnElement="Process_1">
      <bpmndi:BPMNShape id="Lane_1_di" bpmnElement="Lane_1" isHorizontal="true">
        <dc:Bounds x="0" y="0" width="800" height="200" />
      </bpmndi:BPMNShape>
      <bpmndi:BPMNShape id="Lane_2_di" bpmnElement="Lane_2" isHorizontal="true">
        <dc:Bounds x="0" y="200" width="800" height="150" />
      </bpmndi:BPMNShape>
      <bpmndi:BPMNShape id="Start_1_di" bpmnElement="Start_1">
        <dc:Bounds x="60" y="80" width="36" height="36" />
      </bpmndi:BPMNShape>
      <bpmndi:BPMNShape id="Task_1_di" bpmnElement="Task_1">
        <dc:Bounds x="150.5" y="60" width="120" height="60" />
      </bpmndi:BPMNShape>
    </bpmndi:BPMNPlane>
  </bpmndi:BPMNDiagram>
</bpmn:definitions>`

func TestReadXML(t *testing.T) {
	repo := NewRepository()
	defs, err := repo.ReadXML([]byte(sampleXML))
	require.NoError(t, err)

	p, err := defs.FindProcess("order")
	require.NoError(t, err)
	assert.Equal(t, "Process_1", p.XMLID())

	nodes := p.Nodes()
	names := make([]string, 0, len(nodes))
	for _, node := range nodes {
		names = append(names, node.Name())
	}
	assert.Equal(t, []string{"Start", "Approve", "Check", "Invoice", ""}, names)
	assert.True(t, nodes[0].IsA(bpmn.StartEventClass))
	assert.Equal(t, []string{"MessageEventDefinition"}, nodes[0].EventDefinitions())
	assert.True(t, nodes[3].IsA(bpmn.DataObjectClass))
	assert.Equal(t, bpmn.Class("TextAnnotation"), nodes[4].Class())

	flows := p.SequenceFlows()
	require.Len(t, flows, 2)
	assert.Equal(t, "ok", flows[1].Label())
	assert.Equal(t, "amount > 10", flows[1].ConditionExpression())

	assocs := p.DataAssociations()
	require.Len(t, assocs, 1)
	assert.Equal(t, "Approve", assocs[0].StartingActivity().Name())
	assert.Equal(t, "Invoice", assocs[0].TargetRef().Name())

	lanes := p.lanes()
	require.Len(t, lanes, 2)
	assert.Len(t, lanes[0].FlowElementRefs(), 2)
	assert.Equal(t, "Check", lanes[1].FlowElementRefs()[0].Name())

	d, err := defs.DiagramOf(p)
	require.NoError(t, err)
	h, err := repo.OpenDiagram(d)
	require.NoError(t, err)

	g, ok := h.Graphics(nodes[1])
	require.True(t, ok)
	r, ok := bounds.Parse(g.Bounds())
	require.True(t, ok)
	assert.Equal(t, bounds.New(150, 60, 120, 60), r)

	g, ok = h.Graphics(lanes[1])
	require.True(t, ok)
	assert.Equal(t, "Rectangle(0.0, 200.0, 800.0, 150.0)", g.Bounds())

	// no shape in the file
	_, ok = h.Graphics(nodes[2])
	assert.False(t, ok)
}

func TestReadXMLInvalid(t *testing.T) {
	repo := NewRepository()
	_, err := repo.ReadXML([]byte("<nope"))
	assert.True(t, api.IsCode(err, api.StatusBadRequest))

	_, err = repo.ReadXML([]byte("<process/>"))
	assert.True(t, api.IsCode(err, api.StatusBadRequest))

	defs, err := repo.ReadXML([]byte(`<definitions/>`))
	require.NoError(t, err)
	_, err = defs.FindProcess("")
	assert.True(t, api.IsCode(err, api.StatusNotFound))
}

func TestWriteXMLRoundTrip(t *testing.T) {
	f := newFixture(t)
	start := f.element(t, "Start", bpmn.TimerStart, 0)
	task := f.element(t, "Approve", bpmn.UserTask, 0)
	data := f.element(t, "Invoice", bpmn.DataObject, 0)
	reader := f.element(t, "Ship", bpmn.ServiceTask, 1)
	_, err := f.repo.CreateSequenceFlow(f.process, start, task, "")
	require.NoError(t, err)
	_, err = f.repo.CreateSequenceFlow(f.process, task, reader, "Yes")
	require.NoError(t, err)
	_, err = f.repo.CreateDataAssociation(f.process, task, data)
	require.NoError(t, err)
	_, err = f.repo.CreateDataAssociation(f.process, data, reader)
	require.NoError(t, err)

	d, err := f.repo.CreateDiagram(f.process, "main")
	require.NoError(t, err)
	h, err := f.repo.OpenDiagram(d)
	require.NoError(t, err)
	for _, elem := range []host.Element{start, data, reader} {
		_, ok := h.Graphics(elem)
		require.True(t, ok)
	}
	g, ok := h.Graphics(task)
	require.True(t, ok)
	require.NoError(t, g.SetBounds(bounds.New(200, 40, 120, 60)))
	require.NoError(t, h.Save())

	data1, err := f.repo.WriteXML(f.process.(*Process))
	require.NoError(t, err)
	text := string(data1)
	assert.True(t, strings.Contains(text, "<bpmn:userTask"))
	assert.True(t, strings.Contains(text, "<bpmn:timerEventDefinition"))
	assert.True(t, strings.Contains(text, "<bpmn:dataOutputAssociation"))
	assert.True(t, strings.Contains(text, "<bpmn:dataInputAssociation"))
	assert.True(t, strings.Contains(text, `isHorizontal="true"`))
	assert.True(t, strings.Contains(text, "<bpmndi:BPMNEdge"))

	other := NewRepository()
	defs, err := other.ReadXML(data1)
	require.NoError(t, err)
	p, err := defs.FindProcess("")
	require.NoError(t, err)
	assert.Equal(t, "order", p.Name())
	assert.Len(t, p.Nodes(), 4)
	assert.Len(t, p.SequenceFlows(), 2)
	assert.Len(t, p.DataAssociations(), 2)
	assert.Equal(t, "Yes", p.SequenceFlows()[1].Label())

	d2, err := defs.DiagramOf(p)
	require.NoError(t, err)
	shape, ok := d2.Shape(p.Nodes()[1])
	require.True(t, ok)
	assert.Equal(t, bounds.New(200, 40, 120, 60), shape.Rect())
	assert.Equal(t, "Approve", shape.Element().Name())

	// a second write keeps the ids of the first
	data2, err := other.WriteXML(p)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data2), `id="`+task.(*Element).XMLID()+`"`))
}

func TestWriteXMLMissingProcess(t *testing.T) {
	_, err := NewRepository().WriteXML(nil)
	assert.True(t, api.IsCode(err, api.StatusBadRequest))
}
