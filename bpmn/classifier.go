package bpmn

// Classifiable is the view of a host element the classifier needs.
type Classifiable interface {
	IsA(class Class) bool
	// EventDefinitions returns the class names of the nested event
	// definitions, in host order.
	EventDefinitions() []string
}

type eventRule struct {
	class    Class
	bare     ElementType
	triggers map[Trigger]ElementType
	enabled  func(Capabilities) bool
}

var eventRules = []eventRule{
	{
		class: StartEventClass,
		bare:  Start,
		triggers: map[Trigger]ElementType{
			MessageTrigger:     MessageStart,
			TimerTrigger:       TimerStart,
			SignalTrigger:      SignalStart,
			ConditionalTrigger: ConditionalStart,
		},
	},
	{
		class: EndEventClass,
		bare:  End,
		triggers: map[Trigger]ElementType{
			MessageTrigger:   MessageEnd,
			SignalTrigger:    SignalEnd,
			TerminateTrigger: TerminateEnd,
			ErrorTrigger:     ErrorEnd,
		},
	},
	{
		class: IntermediateCatchEventClass,
		bare:  IntermediateCatch,
		triggers: map[Trigger]ElementType{
			MessageTrigger: MessageCatch,
			TimerTrigger:   TimerCatch,
			SignalTrigger:  SignalCatch,
		},
		enabled: func(c Capabilities) bool { return c.IntermediateEvents },
	},
	{
		class: IntermediateThrowEventClass,
		bare:  IntermediateThrow,
		triggers: map[Trigger]ElementType{
			MessageTrigger: MessageThrow,
			SignalTrigger:  SignalThrow,
		},
		enabled: func(c Capabilities) bool { return c.IntermediateEvents },
	},
}

type nodeRule struct {
	class   Class
	tag     ElementType
	enabled func(Capabilities) bool
}

// specific variants come before the generic ones
var nodeRules = []nodeRule{
	{class: UserTaskClass, tag: UserTask},
	{class: ServiceTaskClass, tag: ServiceTask},
	{class: ManualTaskClass, tag: ManualTask},
	{class: ScriptTaskClass, tag: ScriptTask, enabled: func(c Capabilities) bool { return c.ScriptTask }},
	{class: BusinessRuleTaskClass, tag: BusinessRuleTask, enabled: func(c Capabilities) bool { return c.BusinessRuleTask }},
	{class: SendTaskClass, tag: SendTask, enabled: func(c Capabilities) bool { return c.SendReceiveTask }},
	{class: ReceiveTaskClass, tag: ReceiveTask, enabled: func(c Capabilities) bool { return c.SendReceiveTask }},
	{class: TaskClass, tag: GenericTask},

	{class: ExclusiveGatewayClass, tag: ExclusiveGateway},
	{class: ParallelGatewayClass, tag: ParallelGateway},
	{class: InclusiveGatewayClass, tag: InclusiveGateway, enabled: func(c Capabilities) bool { return c.AdditionalGateways }},
	{class: ComplexGatewayClass, tag: ComplexGateway, enabled: func(c Capabilities) bool { return c.AdditionalGateways }},
	{class: EventBasedGatewayClass, tag: EventBasedGateway, enabled: func(c Capabilities) bool { return c.AdditionalGateways }},

	{class: DataObjectClass, tag: DataObject, enabled: func(c Capabilities) bool { return c.DataObjects }},
}

// Classifier maps host elements to exactly one ElementType.
type Classifier struct {
	caps Capabilities
}

func NewClassifier(caps Capabilities) *Classifier {
	return &Classifier{caps: caps}
}

// Classify checks events first, then tasks, gateways and data objects.
// Anything else is Unknown.
func (c *Classifier) Classify(elem Classifiable) ElementType {
	if elem == nil {
		return Unknown
	}

	for _, rule := range eventRules {
		if rule.enabled != nil && !rule.enabled(c.caps) {
			continue
		}
		if !elem.IsA(rule.class) {
			continue
		}
		if defs := elem.EventDefinitions(); len(defs) > 0 {
			if tag, ok := rule.triggers[TriggerOf(defs[0])]; ok {
				return tag
			}
		}
		return rule.bare
	}

	for _, rule := range nodeRules {
		if rule.enabled != nil && !rule.enabled(c.caps) {
			continue
		}
		if elem.IsA(rule.class) {
			return rule.tag
		}
	}

	return Unknown
}
