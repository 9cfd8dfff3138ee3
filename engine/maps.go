package engine

import (
	"sort"

	"github.com/Neeraj281998/JavaMem-Java-Memory-Visualizer/heap"
	"github.com/Neeraj281998/JavaMem-Java-Memory-Visualizer/stmt"
)

// mapHandler covers HashMap, TreeMap, and LinkedHashMap. Entries are kept
// in insertion order regardless of display order; Describe applies the
// kind's ordering (sorted keys for TreeMap, pseudo-buckets for HashMap).
type mapHandler struct {
	kind heap.ObjKind
}

// Add is put: insert or overwrite by key.
func (h *mapHandler) Add(obj *heap.Object, args []stmt.Literal) error {
	key := valueOf(args[0])
	val := valueOf(args[1])
	for i := range obj.Entries {
		if obj.Entries[i].Key.Equal(key) {
			obj.Entries[i].Val = val
			return nil
		}
	}
	obj.Entries = append(obj.Entries, heap.MapEntry{Key: key, Val: val})
	return nil
}

// Remove deletes by key; absent keys are a no-op.
func (h *mapHandler) Remove(obj *heap.Object, args []stmt.Literal) error {
	if len(args) == 0 {
		return semanticf("%s remove requires a key", h.kind)
	}
	key := valueOf(args[0])
	for i := range obj.Entries {
		if obj.Entries[i].Key.Equal(key) {
			obj.Entries = append(obj.Entries[:i], obj.Entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (h *mapHandler) Describe(obj *heap.Object) Snapshot {
	s := Snapshot{Kind: obj.Kind.String(), Size: len(obj.Entries)}

	entries := make([]heap.MapEntry, len(obj.Entries))
	copy(entries, obj.Entries)

	switch h.kind {
	case heap.KindTreeMap:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Key.Less(entries[j].Key)
		})
	case heap.KindHashMap:
		sort.SliceStable(entries, func(i, j int) bool {
			return bucketIndex(entries[i].Key) < bucketIndex(entries[j].Key)
		})
	}

	for _, e := range entries {
		bucket := -1
		if h.kind == heap.KindHashMap {
			bucket = bucketIndex(e.Key)
		}
		s.Items = append(s.Items, Item{
			Key:    e.Key.String(),
			Value:  e.Val.String(),
			Bucket: bucket,
		})
	}
	return s
}
