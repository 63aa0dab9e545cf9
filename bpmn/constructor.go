package bpmn

import (
	"github.com/vine-io/flowlayout/api"
)

// Spec tells a host what to construct for a tag: the structural class and
// the optional event definition to attach.
type Spec struct {
	Class   Class
	Trigger Trigger
}

var constructors = map[ElementType]Spec{
	Start:            {Class: StartEventClass},
	MessageStart:     {Class: StartEventClass, Trigger: MessageTrigger},
	TimerStart:       {Class: StartEventClass, Trigger: TimerTrigger},
	SignalStart:      {Class: StartEventClass, Trigger: SignalTrigger},
	ConditionalStart: {Class: StartEventClass, Trigger: ConditionalTrigger},

	End:          {Class: EndEventClass},
	MessageEnd:   {Class: EndEventClass, Trigger: MessageTrigger},
	SignalEnd:    {Class: EndEventClass, Trigger: SignalTrigger},
	TerminateEnd: {Class: EndEventClass, Trigger: TerminateTrigger},
	ErrorEnd:     {Class: EndEventClass, Trigger: ErrorTrigger},

	IntermediateCatch: {Class: IntermediateCatchEventClass},
	MessageCatch:      {Class: IntermediateCatchEventClass, Trigger: MessageTrigger},
	TimerCatch:        {Class: IntermediateCatchEventClass, Trigger: TimerTrigger},
	SignalCatch:       {Class: IntermediateCatchEventClass, Trigger: SignalTrigger},
	IntermediateThrow: {Class: IntermediateThrowEventClass},
	MessageThrow:      {Class: IntermediateThrowEventClass, Trigger: MessageTrigger},
	SignalThrow:       {Class: IntermediateThrowEventClass, Trigger: SignalTrigger},

	GenericTask:      {Class: TaskClass},
	UserTask:         {Class: UserTaskClass},
	ServiceTask:      {Class: ServiceTaskClass},
	ManualTask:       {Class: ManualTaskClass},
	ScriptTask:       {Class: ScriptTaskClass},
	BusinessRuleTask: {Class: BusinessRuleTaskClass},
	SendTask:         {Class: SendTaskClass},
	ReceiveTask:      {Class: ReceiveTaskClass},

	ExclusiveGateway:  {Class: ExclusiveGatewayClass},
	ParallelGateway:   {Class: ParallelGatewayClass},
	InclusiveGateway:  {Class: InclusiveGatewayClass},
	ComplexGateway:    {Class: ComplexGatewayClass},
	EventBasedGateway: {Class: EventBasedGatewayClass},

	DataObject: {Class: DataObjectClass},
}

// ConstructorFor maps a tag to what the host has to build.
func ConstructorFor(t ElementType) (Spec, error) {
	spec, ok := constructors[t]
	if !ok {
		return Spec{}, api.BadRequest("no constructor for element type %q", string(t))
	}
	return spec, nil
}
