package exporter

import (
	"fmt"
)

// names hands out unique names in encounter order and remembers the final
// name of every host identity.
type names struct {
	taken map[string]struct{}
	byID  map[string]string
}

func newNames() *names {
	return &names{
		taken: make(map[string]struct{}),
		byID:  make(map[string]string),
	}
}

func (n *names) add(id, name string) string {
	if final, ok := n.byID[id]; ok {
		return final
	}

	final := name
	if _, ok := n.taken[final]; ok {
		for i := 2; ; i++ {
			final = fmt.Sprintf("%s_%d", name, i)
			if _, ok = n.taken[final]; !ok {
				break
			}
		}
	}
	n.taken[final] = struct{}{}
	n.byID[id] = final
	return final
}

func (n *names) lookup(id string) (string, bool) {
	name, ok := n.byID[id]
	return name, ok
}
