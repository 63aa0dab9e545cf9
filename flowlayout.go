// MIT License
//
// Copyright (c) 2023 Lack
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.


// Package flowlayout moves BPMN diagram layouts between a modeling host and
// a declarative layout config.
//
// Export reads a live process and its diagram into a schema.LayoutConfig,
// Build drives a host to recreate them. ExportXML and BuildXML do the same
// against BPMN 2.0 XML through the in-memory model host.
package flowlayout

import (
	"context"

	"github.com/vine-io/flowlayout/api"
	"github.com/vine-io/flowlayout/exporter"
	"github.com/vine-io/flowlayout/host"
	"github.com/vine-io/flowlayout/importer"
	"github.com/vine-io/flowlayout/model"
	"github.com/vine-io/flowlayout/report"
	"github.com/vine-io/flowlayout/schema"
)

// Export builds the layout config of p as drawn on d.
func Export(ctx context.Context, m host.Modeler, p host.Process, d host.Diagram, opts ...exporter.Option) (*schema.LayoutConfig, *report.Report, error) {
	return exporter.New(opts...).Export(ctx, m, p, d)
}

// Build recreates cfg in container.
func Build(ctx context.Context, m host.Modeler, container host.Container, cfg *schema.LayoutConfig, opts ...importer.Option) (*importer.Result, error) {
	return importer.NewBuilder(m, opts...).Build(ctx, container, cfg)
}

// ExportXML reads BPMN XML and exports the process named process, the
// first one when process is empty.
func ExportXML(ctx context.Context, data []byte, process string, opts ...exporter.Option) (*schema.LayoutConfig, *report.Report, error) {
	repo := model.NewRepository()
	defs, err := repo.ReadXML(data)
	if err != nil {
		return nil, nil, err
	}
	p, err := defs.FindProcess(process)
	if err != nil {
		return nil, nil, err
	}
	d, err := defs.DiagramOf(p)
	if err != nil {
		return nil, nil, err
	}

	return Export(ctx, repo, p, d, opts...)
}

// BuildXML builds cfg in a fresh model repository and renders it as BPMN
// XML.
func BuildXML(ctx context.Context, cfg *schema.LayoutConfig, opts ...importer.Option) ([]byte, *importer.Result, error) {
	repo := model.NewRepository()
	pkg := repo.NewPackage(cfgName(cfg))

	result, err := Build(ctx, repo, pkg, cfg, opts...)
	if err != nil {
		return nil, result, err
	}

	process, ok := result.Process.(*model.Process)
	if !ok {
		return nil, result, api.InternalServerError("unexpected process %T", result.Process)
	}
	data, err := repo.WriteXML(process)
	if err != nil {
		return nil, result, err
	}
	return data, result, nil
}

func cfgName(cfg *schema.LayoutConfig) string {
	if cfg == nil {
		return ""
	}
	return cfg.Name
}
