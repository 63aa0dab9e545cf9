package importer

import (
	"github.com/tidwall/btree"
	"github.com/vine-io/flowlayout/bounds"
	"github.com/vine-io/flowlayout/schema"
)

// lanesInOrder returns the created lanes in canonical order followed by
// the unassigned group "".
func (bd *build) lanesInOrder() []string {
	out := make([]string, 0, len(bd.cfg.Lanes)+1)
	for _, desc := range bd.cfg.OrderedLanes() {
		if _, ok := bd.result.Lanes[desc.Name]; ok {
			out = append(out, desc.Name)
		}
	}
	return append(out, "")
}

// groupOf returns the lane an element was assigned to, "" when none.
func (bd *build) groupOf(rec schema.ElementRecord) string {
	if _, ok := bd.result.Lanes[rec.Lane]; ok {
		return rec.Lane
	}
	return ""
}

func (bd *build) membersOf(lane string) []schema.ElementRecord {
	out := make([]schema.ElementRecord, 0)
	for _, rec := range bd.cfg.Elements {
		if _, ok := bd.graphics[rec.Name]; !ok {
			continue
		}
		if bd.groupOf(rec) == lane {
			out = append(out, rec)
		}
	}
	return out
}

// placeExact reproduces the recorded geometry relative to the lane tops.
// The diagram is saved after every lane so that lanes below pick up the
// growth of the lanes above.
func (bd *build) placeExact() {
	s := bd.settings
	for _, lane := range bd.lanesInOrder() {
		members := bd.membersOf(lane)
		if len(members) == 0 {
			continue
		}

		top := 0
		if lane != "" {
			rect, ok := bd.laneRect(lane)
			if !ok {
				bd.lg.Warnw(lane, "lane has no bounds, offsets taken as absolute")
			}
			top = rect.Y
		}

		for _, rec := range members {
			w, h := rec.W, rec.H
			if w <= 0 || h <= 0 {
				if cur, ok := bd.current(rec.Name); ok {
					w, h = cur.W, cur.H
				}
			}
			if bd.resolved[rec.Name].IsTask() {
				w = max(w, s.TaskWidth)
				h = max(h, s.TaskHeight)
			}
			bd.place(rec.Name, bounds.New(rec.X, top+rec.YOffset, w, h))
		}
		bd.save()
	}
}

type slotItem struct {
	name   string
	column int
	nudge  int
}

func slotLess(a, b slotItem) bool {
	if a.column != b.column {
		return a.column < b.column
	}
	if a.nudge != b.nudge {
		return a.nudge < b.nudge
	}
	return a.name < b.name
}

// slots orders the members of a lane by (column, nudge, name).
func (bd *build) slots(members []schema.ElementRecord, data bool) []slotItem {
	tree := btree.NewBTreeG[slotItem](slotLess)
	for _, rec := range members {
		if rec.Type.IsDataObject() != data {
			continue
		}
		slot, ok := bd.cfg.Layout[rec.Name]
		if !ok {
			bd.lg.Warnw(rec.Name, "no column slot, element not positioned")
			continue
		}
		tree.Set(slotItem{name: rec.Name, column: slot.Column, nudge: slot.Nudge})
	}

	out := make([]slotItem, 0, tree.Len())
	tree.Scan(func(item slotItem) bool {
		out = append(out, item)
		return true
	})
	return out
}

// placeColumns puts the flow nodes of every lane on the column grid, then
// the data objects under their producers.
func (bd *build) placeColumns() {
	for _, lane := range bd.lanesInOrder() {
		members := bd.membersOf(lane)
		if len(members) == 0 {
			continue
		}
		bd.placeNodes(lane, members)
		bd.save()
	}

	for _, lane := range bd.lanesInOrder() {
		members := bd.membersOf(lane)
		if len(members) == 0 {
			continue
		}
		bd.placeDataObjects(lane, members)
		bd.save()
	}
}

func (bd *build) placeNodes(lane string, members []schema.ElementRecord) {
	s := bd.settings
	center := s.UnmaskY
	if rect, ok := bd.laneRect(lane); ok {
		center = rect.Y + rect.H/2
	}
	base := center - s.LaneCenterBias

	// auto stacked elements per column
	stacked := make(map[int]int)
	for _, item := range bd.slots(members, false) {
		slot := bd.cfg.Layout[item.name]
		x := s.StartX + slot.Column*s.Spacing
		y := base + slot.Nudge
		if !slot.HasNudge {
			y = base + stacked[slot.Column]*s.StackOffset
			stacked[slot.Column]++
		}

		w, h := 0, 0
		if cur, ok := bd.current(item.name); ok {
			w, h = cur.W, cur.H
		}
		if bd.resolved[item.name].IsTask() {
			w, h = s.TaskWidth, s.TaskHeight
		}
		bd.place(item.name, bounds.New(x, y, w, h))
	}
}

func (bd *build) placeDataObjects(lane string, members []schema.ElementRecord) {
	s := bd.settings
	rect, bound := bd.laneRect(lane)

	for _, item := range bd.slots(members, true) {
		slot := bd.cfg.Layout[item.name]
		x := s.StartX + slot.Column*s.Spacing + s.DataOffsetX

		var y int
		if anchor, ok := bd.anchorOf(item.name, lane, slot.Column); ok {
			y = anchor.Bottom() + s.DataOffsetY
		} else {
			y = rect.Y + s.TaskTopOffset + s.TaskHeight + s.DataOffsetY
			if !bound {
				y = s.UnmaskY + s.TaskTopOffset + s.TaskHeight + s.DataOffsetY
			}
		}

		if bound {
			if limit := rect.Bottom() - s.DataHeight - s.LanePadding; y > limit {
				y = limit
			}
			if y < rect.Y+s.LanePadding {
				y = rect.Y + s.LanePadding
			}
		}
		bd.place(item.name, bounds.New(x, y, s.DataWidth, s.DataHeight))
	}
}

// anchorOf finds the element a data object goes under: the task writing
// it, else the same-lane node closest by column.
func (bd *build) anchorOf(name, lane string, column int) (bounds.Rectangle, bool) {
	for _, assoc := range bd.cfg.DataAssociations {
		if assoc.Direction != schema.DirectionOutput || assoc.Target != name {
			continue
		}
		if rect, ok := bd.current(assoc.Source); ok {
			return rect, true
		}
	}

	best, found := slotItem{}, false
	for _, rec := range bd.membersOf(lane) {
		if rec.Type.IsDataObject() {
			continue
		}
		slot, ok := bd.cfg.Layout[rec.Name]
		if !ok {
			continue
		}
		item := slotItem{name: rec.Name, column: abs(slot.Column - column), nudge: slot.Nudge}
		if !found || slotLess(item, best) {
			best, found = item, true
		}
	}
	if !found {
		return bounds.Rectangle{}, false
	}
	return bd.current(best.name)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
