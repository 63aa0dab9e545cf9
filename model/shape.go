package model

import (
	"github.com/vine-io/flowlayout/api"
	"github.com/vine-io/flowlayout/bounds"
	"github.com/vine-io/flowlayout/host"
)

var _ host.Graphic = (*Shape)(nil)

// Shape is the graphic of one element on one diagram.
type Shape struct {
	elem    host.Element
	x, y    float64
	w, h    float64
	visible bool
	polls   int
}

func (s *Shape) Element() host.Element { return s.elem }

func (s *Shape) Visible() bool { return s.visible }

func (s *Shape) Rect() bounds.Rectangle {
	return bounds.New(int(s.x), int(s.y), int(s.w), int(s.h))
}

func (s *Shape) Bounds() string {
	return bounds.Format(s.x, s.y, s.w, s.h)
}

func (s *Shape) SetBounds(r bounds.Rectangle) error {
	if r.W < 0 || r.H < 0 {
		return api.BadRequest("negative size %s for %s", r, s.elem.Name())
	}
	s.x, s.y = float64(r.X), float64(r.Y)
	s.w, s.h = float64(r.W), float64(r.H)
	return nil
}

func (s *Shape) bottom() float64 { return s.y + s.h }

func (s *Shape) right() float64 { return s.x + s.w }

func (s *Shape) center() (float64, float64) {
	return s.x + s.w/2, s.y + s.h/2
}
