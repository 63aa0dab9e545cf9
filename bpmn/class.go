package bpmn

import "strings"

// Class names a structural class of the host object model.
type Class string

const (
	BaseElementClass Class = "BaseElement"
	FlowElementClass Class = "FlowElement"
	FlowNodeClass    Class = "FlowNode"

	EventClass                  Class = "Event"
	CatchEventClass             Class = "CatchEvent"
	ThrowEventClass             Class = "ThrowEvent"
	StartEventClass             Class = "StartEvent"
	EndEventClass               Class = "EndEvent"
	IntermediateCatchEventClass Class = "IntermediateCatchEvent"
	IntermediateThrowEventClass Class = "IntermediateThrowEvent"

	ActivityClass         Class = "Activity"
	TaskClass             Class = "Task"
	UserTaskClass         Class = "UserTask"
	ServiceTaskClass      Class = "ServiceTask"
	ManualTaskClass       Class = "ManualTask"
	ScriptTaskClass       Class = "ScriptTask"
	BusinessRuleTaskClass Class = "BusinessRuleTask"
	SendTaskClass         Class = "SendTask"
	ReceiveTaskClass      Class = "ReceiveTask"

	GatewayClass           Class = "Gateway"
	ExclusiveGatewayClass  Class = "ExclusiveGateway"
	ParallelGatewayClass   Class = "ParallelGateway"
	InclusiveGatewayClass  Class = "InclusiveGateway"
	ComplexGatewayClass    Class = "ComplexGateway"
	EventBasedGatewayClass Class = "EventBasedGateway"

	DataObjectClass       Class = "DataObject"
	SequenceFlowClass     Class = "SequenceFlow"
	DataAssociationClass  Class = "DataAssociation"
	DataInputAssociation  Class = "DataInputAssociation"
	DataOutputAssociation Class = "DataOutputAssociation"

	LaneClass    Class = "Lane"
	LaneSetClass Class = "LaneSet"
	ProcessClass Class = "Process"
)

var superclasses = map[Class]Class{
	FlowElementClass: BaseElementClass,
	FlowNodeClass:    FlowElementClass,

	EventClass:                  FlowNodeClass,
	CatchEventClass:             EventClass,
	ThrowEventClass:             EventClass,
	StartEventClass:             CatchEventClass,
	IntermediateCatchEventClass: CatchEventClass,
	EndEventClass:               ThrowEventClass,
	IntermediateThrowEventClass: ThrowEventClass,

	ActivityClass:         FlowNodeClass,
	TaskClass:             ActivityClass,
	UserTaskClass:         TaskClass,
	ServiceTaskClass:      TaskClass,
	ManualTaskClass:       TaskClass,
	ScriptTaskClass:       TaskClass,
	BusinessRuleTaskClass: TaskClass,
	SendTaskClass:         TaskClass,
	ReceiveTaskClass:      TaskClass,

	GatewayClass:           FlowNodeClass,
	ExclusiveGatewayClass:  GatewayClass,
	ParallelGatewayClass:   GatewayClass,
	InclusiveGatewayClass:  GatewayClass,
	ComplexGatewayClass:    GatewayClass,
	EventBasedGatewayClass: GatewayClass,

	DataObjectClass:       FlowElementClass,
	SequenceFlowClass:     FlowElementClass,
	DataAssociationClass:  BaseElementClass,
	DataInputAssociation:  DataAssociationClass,
	DataOutputAssociation: DataAssociationClass,

	LaneClass:    BaseElementClass,
	LaneSetClass: BaseElementClass,
	ProcessClass: BaseElementClass,
}

// Is reports whether c equals other or inherits from it.
func (c Class) Is(other Class) bool {
	for cur := c; cur != ""; cur = superclasses[cur] {
		if cur == other {
			return true
		}
	}
	return false
}

func (c Class) String() string {
	return string(c)
}

// Trigger is the kind of event definition attached to an event.
type Trigger string

const (
	NoTrigger          Trigger = ""
	MessageTrigger     Trigger = "Message"
	TimerTrigger       Trigger = "Timer"
	SignalTrigger      Trigger = "Signal"
	ConditionalTrigger Trigger = "Conditional"
	TerminateTrigger   Trigger = "Terminate"
	ErrorTrigger       Trigger = "Error"
)

// Definition returns the class name of the event definition, e.g.
// "MessageEventDefinition".
func (t Trigger) Definition() string {
	if t == NoTrigger {
		return ""
	}
	return string(t) + "EventDefinition"
}

// TriggerOf extracts the trigger from an event definition class name.
func TriggerOf(definition string) Trigger {
	for _, t := range []Trigger{MessageTrigger, TimerTrigger, SignalTrigger, ConditionalTrigger, TerminateTrigger, ErrorTrigger} {
		if strings.Contains(definition, string(t)) {
			return t
		}
	}
	return NoTrigger
}
