package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputFor(t *testing.T) {
	cases := []struct {
		input, output, ext string
		want               string
	}{
		{"order.bpmn", "", "json", "order.json"},
		{"dir/order.bpmn", "", "yaml", "dir/order.yaml"},
		{"order.bpmn", "out.hcl", "json", "out.hcl"},
		{"order.bpmn", "-", "json", "-"},
		{"-", "", "json", "-"},
		{"-", "", "bpmn", "-"},
		{"-", "saved.json", "json", "saved.json"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, outputFor(c.input, c.output, c.ext), "%s %q", c.input, c.output)
	}
}
