package importer

import (
	"github.com/vine-io/flowlayout/host"
	"github.com/vine-io/flowlayout/report"
)

// Result holds what one Build created. Maps are keyed by config names.
type Result struct {
	Process          host.Process
	Diagram          host.Diagram
	Lanes            map[string]host.Lane
	Elements         map[string]host.Element
	Flows            []host.SequenceFlow
	DataAssociations []host.DataAssociation
	// Positioned counts the elements whose bounds were set.
	Positioned int
	// Missing lists the elements without a graphic after unmasking.
	Missing []string
	Report  *report.Report
}

func newResult(r *report.Report) *Result {
	return &Result{
		Lanes:            make(map[string]host.Lane),
		Elements:         make(map[string]host.Element),
		Flows:            make([]host.SequenceFlow, 0),
		DataAssociations: make([]host.DataAssociation, 0),
		Missing:          make([]string, 0),
		Report:           r,
	}
}
