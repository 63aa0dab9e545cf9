package model

import (
	"github.com/vine-io/flowlayout/api"
	"github.com/vine-io/flowlayout/host"
)

var _ host.DiagramHandle = (*Handle)(nil)

// Handle is an opened diagram.
type Handle struct {
	repo    *Repository
	diagram *Diagram
	closed  bool
	saves   int
}

func (h *Handle) Diagram() *Diagram { return h.diagram }

// Saves returns how many times the handle was saved.
func (h *Handle) Saves() int { return h.saves }

// Graphics returns the visible graphic of elem. Hidden graphics count the
// query and appear once the configured latency is over.
func (h *Handle) Graphics(elem host.Element) (host.Graphic, bool) {
	h.repo.mu.Lock()
	defer h.repo.mu.Unlock()

	if h.closed || elem == nil {
		return nil, false
	}
	shape, ok := h.diagram.shapes[elem.ID()]
	if !ok {
		return nil, false
	}
	if !shape.visible {
		shape.polls++
		if h.repo.masked(elem) || shape.polls <= h.repo.opts.UnmaskLatency {
			return nil, false
		}
		shape.visible = true
	}
	return shape, true
}

// Unmask shows the graphic of elem with its top left corner at (x, y).
func (h *Handle) Unmask(elem host.Element, x, y int) (host.Graphic, error) {
	h.repo.mu.Lock()
	defer h.repo.mu.Unlock()

	if h.closed {
		return nil, api.PreconditionFailed("diagram %s is closed", h.diagram.Name())
	}
	node, ok := elem.(*Element)
	if !ok || node.process != h.diagram.origin {
		return nil, api.NotFound("element %s is not part of diagram %s", elem.Name(), h.diagram.Name())
	}

	shape, ok := h.diagram.shapes[elem.ID()]
	if !ok {
		h.repo.attachShape(h.diagram, node)
		shape = h.diagram.shapes[elem.ID()]
	}
	if !shape.visible {
		shape.x, shape.y = float64(x), float64(y)
		shape.visible = true
	}
	return shape, nil
}

// Save flushes pending graphics and re-settles the lanes.
func (h *Handle) Save() error {
	h.repo.mu.Lock()
	defer h.repo.mu.Unlock()

	if h.closed {
		return api.PreconditionFailed("diagram %s is closed", h.diagram.Name())
	}
	for _, shape := range h.diagram.shapes {
		if !shape.visible && !h.repo.masked(shape.elem) && shape.polls > 0 {
			shape.visible = true
		}
	}
	h.repo.settle(h.diagram)
	h.saves++
	return nil
}

func (h *Handle) Close() error {
	h.repo.mu.Lock()
	defer h.repo.mu.Unlock()

	if h.closed {
		return api.PreconditionFailed("diagram %s is already closed", h.diagram.Name())
	}
	h.closed = true
	return nil
}

func (r *Repository) masked(elem host.Element) bool {
	_, ok := r.opts.Masked[elem.Name()]
	return ok
}
