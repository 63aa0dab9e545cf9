package bpmn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vine-io/flowlayout/api"
)

type fakeElement struct {
	class Class
	defs  []string
}

func (e fakeElement) IsA(class Class) bool { return e.class.Is(class) }

func (e fakeElement) EventDefinitions() []string { return e.defs }

func TestClassIs(t *testing.T) {
	assert.True(t, UserTaskClass.Is(TaskClass))
	assert.True(t, UserTaskClass.Is(FlowNodeClass))
	assert.True(t, StartEventClass.Is(CatchEventClass))
	assert.False(t, TaskClass.Is(UserTaskClass))
	assert.False(t, SequenceFlowClass.Is(FlowNodeClass))
}

func TestClassify(t *testing.T) {
	c := NewClassifier(FullCapabilities())

	tests := []struct {
		elem fakeElement
		want ElementType
	}{
		{fakeElement{class: StartEventClass}, Start},
		{fakeElement{class: StartEventClass, defs: []string{"MessageEventDefinition"}}, MessageStart},
		{fakeElement{class: StartEventClass, defs: []string{"TimerEventDefinition", "SignalEventDefinition"}}, TimerStart},
		{fakeElement{class: StartEventClass, defs: []string{"ConditionalEventDefinition"}}, ConditionalStart},
		{fakeElement{class: StartEventClass, defs: []string{"ErrorEventDefinition"}}, Start},
		{fakeElement{class: EndEventClass, defs: []string{"TerminateEventDefinition"}}, TerminateEnd},
		{fakeElement{class: EndEventClass, defs: []string{"ErrorEventDefinition"}}, ErrorEnd},
		{fakeElement{class: EndEventClass, defs: []string{"TimerEventDefinition"}}, End},
		{fakeElement{class: IntermediateCatchEventClass, defs: []string{"TimerEventDefinition"}}, TimerCatch},
		{fakeElement{class: IntermediateThrowEventClass, defs: []string{"SignalEventDefinition"}}, SignalThrow},
		{fakeElement{class: IntermediateThrowEventClass}, IntermediateThrow},
		{fakeElement{class: UserTaskClass}, UserTask},
		{fakeElement{class: TaskClass}, GenericTask},
		{fakeElement{class: BusinessRuleTaskClass}, BusinessRuleTask},
		{fakeElement{class: ReceiveTaskClass}, ReceiveTask},
		{fakeElement{class: ExclusiveGatewayClass}, ExclusiveGateway},
		{fakeElement{class: EventBasedGatewayClass}, EventBasedGateway},
		{fakeElement{class: DataObjectClass}, DataObject},
		{fakeElement{class: SequenceFlowClass}, Unknown},
		{fakeElement{class: LaneClass}, Unknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Classify(tt.elem), "%v %v", tt.elem.class, tt.elem.defs)
	}

	assert.Equal(t, Unknown, c.Classify(nil))
}

func TestClassifyRespectsCapabilities(t *testing.T) {
	c := NewClassifier(Capabilities{})

	assert.Equal(t, GenericTask, c.Classify(fakeElement{class: ScriptTaskClass}))
	assert.Equal(t, Unknown, c.Classify(fakeElement{class: InclusiveGatewayClass}))
	assert.Equal(t, Unknown, c.Classify(fakeElement{class: IntermediateCatchEventClass}))
	assert.Equal(t, Unknown, c.Classify(fakeElement{class: DataObjectClass}))
	assert.Equal(t, UserTask, c.Classify(fakeElement{class: UserTaskClass}))
}

func TestParseElementType(t *testing.T) {
	tag, err := ParseElementType("USER_TASK")
	assert.NoError(t, err)
	assert.Equal(t, UserTask, tag)

	_, err = ParseElementType("UNKNOWN")
	assert.Error(t, err)
	assert.Equal(t, int32(api.StatusBadRequest), api.FromErr(err).Code)

	_, err = ParseElementType("user_task")
	assert.Error(t, err)
}

func TestPredicates(t *testing.T) {
	for _, tag := range ElementTypes() {
		n := 0
		for _, p := range []bool{tag.IsStart(), tag.IsEnd(), tag.IsIntermediate(), tag.IsTask(), tag.IsGateway(), tag.IsDataObject()} {
			if p {
				n++
			}
		}
		assert.Equal(t, 1, n, tag)
		assert.Equal(t, tag.IsStart() || tag.IsEnd() || tag.IsIntermediate(), tag.IsEvent(), tag)
	}
	assert.False(t, Unknown.Valid())
}

func TestConstructorForIsTotal(t *testing.T) {
	c := NewClassifier(FullCapabilities())
	for _, tag := range ElementTypes() {
		spec, err := ConstructorFor(tag)
		if !assert.NoError(t, err, tag) {
			continue
		}

		var defs []string
		if spec.Trigger != NoTrigger {
			defs = []string{spec.Trigger.Definition()}
		}
		assert.Equal(t, tag, c.Classify(fakeElement{class: spec.Class, defs: defs}), tag)
	}

	_, err := ConstructorFor(Unknown)
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	full := FullCapabilities()
	for _, tag := range ElementTypes() {
		got, err := full.Resolve(tag)
		assert.NoError(t, err)
		assert.Equal(t, tag, got)
	}

	none := Capabilities{}
	tests := map[ElementType]ElementType{
		ScriptTask:        ServiceTask,
		BusinessRuleTask:  ServiceTask,
		SendTask:          ServiceTask,
		ReceiveTask:       ServiceTask,
		InclusiveGateway:  ExclusiveGateway,
		ComplexGateway:    ExclusiveGateway,
		EventBasedGateway: ExclusiveGateway,
		TimerCatch:        Start,
		IntermediateCatch: Start,
		MessageThrow:      End,
		MessageStart:      Start,
		ErrorEnd:          End,
		UserTask:          UserTask,
		ParallelGateway:   ParallelGateway,
	}
	for in, want := range tests {
		got, err := none.Resolve(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	got, err := Capabilities{IntermediateEvents: true}.Resolve(SignalCatch)
	assert.NoError(t, err)
	assert.Equal(t, IntermediateCatch, got)

	_, err = none.Resolve(DataObject)
	assert.Equal(t, int32(api.StatusNotImplemented), api.FromErr(err).Code)

	_, err = full.Resolve(Unknown)
	assert.Equal(t, int32(api.StatusBadRequest), api.FromErr(err).Code)
}

func TestTriggerOf(t *testing.T) {
	assert.Equal(t, MessageTrigger, TriggerOf("bpmn:MessageEventDefinition"))
	assert.Equal(t, NoTrigger, TriggerOf("LinkEventDefinition"))
	assert.Equal(t, "TimerEventDefinition", TimerTrigger.Definition())
	assert.Equal(t, "", NoTrigger.Definition())
}
