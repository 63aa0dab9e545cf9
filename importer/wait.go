package importer

import (
	"github.com/cenkalti/backoff/v4"
	"github.com/vine-io/flowlayout/api"
	"github.com/vine-io/flowlayout/bounds"
)

// await polls the handle until every element has a graphic or the attempt
// budget is spent.
func (bd *build) await() error {
	pending := make([]string, len(bd.order))
	copy(pending, bd.order)
	if len(pending) == 0 {
		return nil
	}

	attempts := bd.settings.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	round := 0
	op := func() error {
		round++
		pending = bd.collect(pending)
		if len(pending) == 0 {
			return nil
		}
		bd.lg.Debugf("attempt %d/%d: %d graphics pending", round, attempts, len(pending))
		return api.ServiceUnavailable("%d graphics pending", len(pending))
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(bd.settings.WaitTime()), uint64(attempts-1)),
		bd.ctx,
	)
	if err := backoff.Retry(op, policy); err != nil {
		if cerr := bd.ctx.Err(); cerr != nil {
			return api.FromErr(cerr)
		}
		bd.lg.Infof("%d graphics still pending after %d attempts", len(pending), attempts)
	}
	return nil
}

// collect stores the graphics available now and returns the names still
// pending.
func (bd *build) collect(names []string) []string {
	out := names[:0]
	for _, name := range names {
		g, ok := bd.handle.Graphics(bd.result.Elements[name])
		if ok && g != nil {
			bd.graphics[name] = g
			continue
		}
		out = append(out, name)
	}
	return out
}

// unmask forces the graphics that never appeared, at the lane center when
// the lane is known. Whatever is left is reported missing.
func (bd *build) unmask() {
	for _, name := range bd.order {
		if _, ok := bd.graphics[name]; ok {
			continue
		}

		x, y := bd.settings.UnmaskX, bd.settings.UnmaskY
		rec, _ := bd.cfg.Element(name)
		if rect, ok := bd.laneRect(rec.Lane); ok {
			y = rect.Y + rect.H/2
		}

		g, err := bd.handle.Unmask(bd.result.Elements[name], x, y)
		if err != nil || g == nil {
			bd.lg.Warnw(name, "graphic unavailable, element skipped")
			bd.result.Missing = append(bd.result.Missing, name)
			continue
		}
		bd.lg.Debugf("unmasked %s at (%d, %d)", name, x, y)
		bd.graphics[name] = g
	}
}

// place sets the bounds of one element.
func (bd *build) place(name string, r bounds.Rectangle) bool {
	g, ok := bd.graphics[name]
	if !ok {
		return false
	}
	if err := g.SetBounds(r); err != nil {
		bd.lg.Warnw(name, "set bounds %s: %v", r, err)
		return false
	}
	bd.result.Positioned++
	return true
}

// current reads the bounds of a placed or freshly shown element.
func (bd *build) current(name string) (bounds.Rectangle, bool) {
	g, ok := bd.graphics[name]
	if !ok {
		return bounds.Rectangle{}, false
	}
	return bounds.Parse(g.Bounds())
}

func (bd *build) save() {
	if err := bd.handle.Save(); err != nil {
		bd.lg.Warnf("save diagram: %v", err)
	}
}
