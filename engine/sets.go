package engine

import (
	"sort"

	"github.com/Neeraj281998/JavaMem-Java-Memory-Visualizer/heap"
	"github.com/Neeraj281998/JavaMem-Java-Memory-Visualizer/stmt"
)

// setHandler covers HashSet and TreeSet. Elements are unique; duplicates
// are rejected with a semantic error, leaving the set unchanged.
type setHandler struct {
	kind heap.ObjKind
}

func (h *setHandler) Add(obj *heap.Object, args []stmt.Literal) error {
	v := valueOf(args[0])
	for _, c := range obj.Cells {
		if c.Equal(v) {
			return semanticf("duplicate element %s in %s", v, h.kind)
		}
	}
	obj.Cells = append(obj.Cells, v)
	return nil
}

// Remove deletes the value if present; absent values are a no-op.
func (h *setHandler) Remove(obj *heap.Object, args []stmt.Literal) error {
	if len(args) == 0 {
		return semanticf("%s remove requires a value", h.kind)
	}
	v := valueOf(args[0])
	for i, c := range obj.Cells {
		if c.Equal(v) {
			obj.Cells = append(obj.Cells[:i], obj.Cells[i+1:]...)
			return nil
		}
	}
	return nil
}

func (h *setHandler) Describe(obj *heap.Object) Snapshot {
	s := Snapshot{Kind: obj.Kind.String(), Size: len(obj.Cells)}

	cells := make([]heap.Value, len(obj.Cells))
	copy(cells, obj.Cells)

	switch h.kind {
	case heap.KindTreeSet:
		sort.SliceStable(cells, func(i, j int) bool {
			return cells[i].Less(cells[j])
		})
	case heap.KindHashSet:
		sort.SliceStable(cells, func(i, j int) bool {
			return bucketIndex(cells[i]) < bucketIndex(cells[j])
		})
	}

	for _, c := range cells {
		it := itemOf(c)
		if h.kind == heap.KindHashSet {
			it.Bucket = bucketIndex(c)
		}
		s.Items = append(s.Items, it)
	}
	return s
}
