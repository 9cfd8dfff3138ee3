package engine

import (
	"strconv"

	"github.com/Neeraj281998/JavaMem-Java-Memory-Visualizer/heap"
	"github.com/Neeraj281998/JavaMem-Java-Memory-Visualizer/stmt"
)

// Handler implements the per-kind structural semantics. Dispatch goes
// through the engine's kind-keyed table, never through type switches at
// call sites. Add covers add/push/put/set; Remove covers
// remove/pop/reset.
type Handler interface {
	Add(obj *heap.Object, args []stmt.Literal) error
	Remove(obj *heap.Object, args []stmt.Literal) error
	Describe(obj *heap.Object) Snapshot
}

// Item is one renderable element of a structure snapshot.
type Item struct {
	// Key is the map key, array index, or node id, depending on kind.
	Key string
	// Value is the rendered element value.
	Value string
	// Bucket is the display-only bucket index for hash-ordered kinds,
	// or -1 when the kind has no buckets.
	Bucket int
}

// Snapshot is a renderable view of one structure, in display order.
// It is consumed by the external renderer and by tests; the engine keeps
// no state in it.
type Snapshot struct {
	Kind  string
	Size  int
	Items []Item
}

// valueOf converts a parsed literal to a model value. Structure elements
// store raw values; pooling applies to String/Integer declarations and
// String array cells.
func valueOf(lit stmt.Literal) heap.Value {
	switch lit.Kind {
	case stmt.LitInt:
		return heap.IntValue(lit.Int)
	case stmt.LitFloat:
		return heap.FloatValue(lit.Float)
	case stmt.LitBool:
		return heap.BoolValue(lit.Bool)
	case stmt.LitChar:
		return heap.CharValue(lit.Char)
	case stmt.LitString:
		return heap.StrValue(lit.Str)
	}
	return heap.Null()
}

// bucketIndex computes the display-only bucket for hash-ordered kinds:
// (31 * sum of the rendered key's bytes) mod 8. Any stable deterministic
// function works here; the only requirement is that display order is
// visibly not insertion order.
func bucketIndex(v heap.Value) int {
	sum := 0
	for _, b := range []byte(v.String()) {
		sum += int(b)
	}
	return (31 * sum) % 8
}

func itemOf(v heap.Value) Item {
	return Item{Value: v.String(), Bucket: -1}
}

func indexKey(i int) string {
	return strconv.Itoa(i)
}
