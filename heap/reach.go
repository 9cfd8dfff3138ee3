package heap

import "sort"

// Reachable computes the set of ids transitively referenced from any
// variable of any frame. The scan is run lazily, on demand, after
// mutations that can remove references; nothing is maintained
// incrementally, which keeps shared and cyclic references (pool entries
// referenced by many variables, list nodes) trivially correct.
func (m *Model) Reachable() map[ObjID]bool {
	reached := make(map[ObjID]bool)

	var queue []ObjID
	push := func(id ObjID) {
		if id == NilRef || reached[id] {
			return
		}
		reached[id] = true
		queue = append(queue, id)
	}

	for _, f := range m.frames {
		for _, v := range f.Vars {
			if v.Value.IsRef() {
				push(v.Value.Ref)
			}
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		o, ok := m.objects[id]
		if !ok {
			// Pool entries have no outgoing references.
			continue
		}
		for _, child := range o.refs() {
			push(child)
		}
	}

	return reached
}

// IsReachable reports whether id is reachable from any root.
func (m *Model) IsReachable(id ObjID) bool {
	return m.Reachable()[id]
}

// NewlyUnreachable returns the ids of objects and pool entries that are
// still Live but no longer reachable from any root, in ascending id order
// for deterministic sweep scheduling.
func (m *Model) NewlyUnreachable() []ObjID {
	reached := m.Reachable()

	var ids []ObjID
	for id, o := range m.objects {
		if o.State == StateLive && !reached[id] {
			ids = append(ids, id)
		}
	}
	for id, e := range m.pool {
		if e.State == StateLive && !reached[id] {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
