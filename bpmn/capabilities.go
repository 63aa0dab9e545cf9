package bpmn

import (
	"github.com/vine-io/flowlayout/api"
)

// Capabilities enumerates which optional BPMN variants a host can create.
// Every "is this available" decision of the exporter and the importer is a
// lookup against it.
type Capabilities struct {
	ScriptTask         bool `json:"scriptTask" yaml:"scriptTask"`
	BusinessRuleTask   bool `json:"businessRuleTask" yaml:"businessRuleTask"`
	SendReceiveTask    bool `json:"sendReceiveTask" yaml:"sendReceiveTask"`
	IntermediateEvents bool `json:"intermediateEvents" yaml:"intermediateEvents"`
	EventDefinitions   bool `json:"eventDefinitions" yaml:"eventDefinitions"`
	AdditionalGateways bool `json:"additionalGateways" yaml:"additionalGateways"`
	DataObjects        bool `json:"dataObjects" yaml:"dataObjects"`
}

// FullCapabilities describes a host supporting every variant.
func FullCapabilities() Capabilities {
	return Capabilities{
		ScriptTask:         true,
		BusinessRuleTask:   true,
		SendReceiveTask:    true,
		IntermediateEvents: true,
		EventDefinitions:   true,
		AdditionalGateways: true,
		DataObjects:        true,
	}
}

var fallbacks = map[ElementType]ElementType{
	MessageStart:     Start,
	TimerStart:       Start,
	SignalStart:      Start,
	ConditionalStart: Start,

	MessageEnd:   End,
	SignalEnd:    End,
	TerminateEnd: End,
	ErrorEnd:     End,

	MessageCatch:      IntermediateCatch,
	TimerCatch:        IntermediateCatch,
	SignalCatch:       IntermediateCatch,
	IntermediateCatch: Start,
	MessageThrow:      IntermediateThrow,
	SignalThrow:       IntermediateThrow,
	IntermediateThrow: End,

	ScriptTask:       ServiceTask,
	BusinessRuleTask: ServiceTask,
	SendTask:         ServiceTask,
	ReceiveTask:      ServiceTask,

	InclusiveGateway:  ExclusiveGateway,
	ComplexGateway:    ExclusiveGateway,
	EventBasedGateway: ExclusiveGateway,
}

// Supports reports whether the host can create t as is.
func (c Capabilities) Supports(t ElementType) bool {
	switch t {
	case Unknown:
		return false
	case ScriptTask:
		return c.ScriptTask
	case BusinessRuleTask:
		return c.BusinessRuleTask
	case SendTask, ReceiveTask:
		return c.SendReceiveTask
	case IntermediateCatch, IntermediateThrow:
		return c.IntermediateEvents
	case MessageCatch, TimerCatch, SignalCatch, MessageThrow, SignalThrow:
		return c.IntermediateEvents && c.EventDefinitions
	case MessageStart, TimerStart, SignalStart, ConditionalStart,
		MessageEnd, SignalEnd, TerminateEnd, ErrorEnd:
		return c.EventDefinitions
	case InclusiveGateway, ComplexGateway, EventBasedGateway:
		return c.AdditionalGateways
	case DataObject:
		return c.DataObjects
	}
	return t.Valid()
}

// Resolve returns t when the host supports it, or the closest supported
// supertype. Data objects on a host without data support and UNKNOWN tags
// have no substitute.
func (c Capabilities) Resolve(t ElementType) (ElementType, error) {
	if !t.Valid() {
		return Unknown, api.BadRequest("unknown element type %q", string(t))
	}

	cur := t
	for !c.Supports(cur) {
		next, ok := fallbacks[cur]
		if !ok {
			return Unknown, api.NotImplemented("element type %s is not supported by the host", t)
		}
		cur = next
	}
	return cur, nil
}
