package bpmn

import (
	"github.com/vine-io/flowlayout/api"
)

// ElementType is the flat tag of a diagram node. The string values are the
// tags written into layout configs.
type ElementType string

const (
	Unknown ElementType = "UNKNOWN"

	Start            ElementType = "START"
	MessageStart     ElementType = "MESSAGE_START"
	TimerStart       ElementType = "TIMER_START"
	SignalStart      ElementType = "SIGNAL_START"
	ConditionalStart ElementType = "CONDITIONAL_START"

	End          ElementType = "END"
	MessageEnd   ElementType = "MESSAGE_END"
	SignalEnd    ElementType = "SIGNAL_END"
	TerminateEnd ElementType = "TERMINATE_END"
	ErrorEnd     ElementType = "ERROR_END"

	IntermediateCatch ElementType = "INTERMEDIATE_CATCH"
	IntermediateThrow ElementType = "INTERMEDIATE_THROW"
	MessageCatch      ElementType = "MESSAGE_CATCH"
	MessageThrow      ElementType = "MESSAGE_THROW"
	TimerCatch        ElementType = "TIMER_CATCH"
	SignalCatch       ElementType = "SIGNAL_CATCH"
	SignalThrow       ElementType = "SIGNAL_THROW"

	GenericTask      ElementType = "TASK"
	UserTask         ElementType = "USER_TASK"
	ServiceTask      ElementType = "SERVICE_TASK"
	ManualTask       ElementType = "MANUAL_TASK"
	ScriptTask       ElementType = "SCRIPT_TASK"
	BusinessRuleTask ElementType = "BUSINESS_RULE_TASK"
	SendTask         ElementType = "SEND_TASK"
	ReceiveTask      ElementType = "RECEIVE_TASK"

	ExclusiveGateway  ElementType = "EXCLUSIVE_GW"
	ParallelGateway   ElementType = "PARALLEL_GW"
	InclusiveGateway  ElementType = "INCLUSIVE_GW"
	ComplexGateway    ElementType = "COMPLEX_GW"
	EventBasedGateway ElementType = "EVENT_BASED_GW"

	DataObject ElementType = "DATA_OBJECT"
)

var elementTypes = []ElementType{
	Start, MessageStart, TimerStart, SignalStart, ConditionalStart,
	End, MessageEnd, SignalEnd, TerminateEnd, ErrorEnd,
	IntermediateCatch, IntermediateThrow, MessageCatch, MessageThrow, TimerCatch, SignalCatch, SignalThrow,
	GenericTask, UserTask, ServiceTask, ManualTask, ScriptTask, BusinessRuleTask, SendTask, ReceiveTask,
	ExclusiveGateway, ParallelGateway, InclusiveGateway, ComplexGateway, EventBasedGateway,
	DataObject,
}

// ElementTypes returns every valid tag, UNKNOWN excluded.
func ElementTypes() []ElementType {
	out := make([]ElementType, len(elementTypes))
	copy(out, elementTypes)
	return out
}

// ParseElementType checks a config tag.
func ParseElementType(text string) (ElementType, error) {
	t := ElementType(text)
	if !t.Valid() {
		return Unknown, api.BadRequest("unknown element type %q", text)
	}
	return t, nil
}

func (t ElementType) String() string {
	return string(t)
}

// Valid reports whether t is one of the known tags other than UNKNOWN.
func (t ElementType) Valid() bool {
	_, ok := constructors[t]
	return ok
}

func (t ElementType) IsStart() bool {
	switch t {
	case Start, MessageStart, TimerStart, SignalStart, ConditionalStart:
		return true
	}
	return false
}

func (t ElementType) IsEnd() bool {
	switch t {
	case End, MessageEnd, SignalEnd, TerminateEnd, ErrorEnd:
		return true
	}
	return false
}

func (t ElementType) IsIntermediate() bool {
	return t.IsCatch() || t.IsThrow()
}

func (t ElementType) IsCatch() bool {
	switch t {
	case IntermediateCatch, MessageCatch, TimerCatch, SignalCatch:
		return true
	}
	return false
}

func (t ElementType) IsThrow() bool {
	switch t {
	case IntermediateThrow, MessageThrow, SignalThrow:
		return true
	}
	return false
}

func (t ElementType) IsEvent() bool {
	return t.IsStart() || t.IsEnd() || t.IsIntermediate()
}

func (t ElementType) IsTask() bool {
	switch t {
	case GenericTask, UserTask, ServiceTask, ManualTask, ScriptTask, BusinessRuleTask, SendTask, ReceiveTask:
		return true
	}
	return false
}

func (t ElementType) IsGateway() bool {
	switch t {
	case ExclusiveGateway, ParallelGateway, InclusiveGateway, ComplexGateway, EventBasedGateway:
		return true
	}
	return false
}

func (t ElementType) IsDataObject() bool {
	return t == DataObject
}
