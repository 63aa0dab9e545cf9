package model

import (
	"github.com/beevik/etree"
	"github.com/vine-io/flowlayout/bpmn"
	"github.com/vine-io/pkg/xname"
)

func getAttr(attrs []etree.Attr, name string) (string, bool) {
	for _, attr := range attrs {
		if attr.Key == name || attr.FullKey() == name {
			return attr.Value, true
		}
	}
	return "", false
}

func randName() string {
	return xname.Gen(xname.C(7), xname.Lowercase(), xname.Digit())
}

func randShapeName(class bpmn.Class) string {
	prefix := ""
	switch {
	case class.Is(bpmn.EventClass):
		prefix = "Event"
	case class.Is(bpmn.GatewayClass):
		prefix = "Gateway"
	case class.Is(bpmn.ActivityClass):
		prefix = "Activity"
	case class == bpmn.DataObjectClass:
		prefix = "DataObjectReference"
	case class == bpmn.SequenceFlowClass:
		prefix = "Flow"
	case class.Is(bpmn.DataAssociationClass):
		prefix = "DataAssociation"
	case class == bpmn.ProcessClass:
		prefix = "Process"
	case class == "":
		prefix = "Element"
	default:
		prefix = string(class)
	}

	return prefix + "_" + randName()
}

// defaultSize is the size a host gives to a new graphic.
func defaultSize(class bpmn.Class) (float64, float64) {
	switch {
	case class.Is(bpmn.EventClass):
		return 36, 36
	case class.Is(bpmn.GatewayClass):
		return 50, 50
	case class.Is(bpmn.ActivityClass):
		return 100, 80
	case class == bpmn.DataObjectClass:
		return 36, 50
	}
	return 100, 80
}
