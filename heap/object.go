// Package heap provides the authoritative memory model for the simulator:
// the call stack of frames, the heap object arena, the string/integer pool,
// lazy root reachability, and the model-change event stream.
package heap

// ObjID is a unique identifier for a heap object or pool entry.
// Ids are assigned monotonically from one shared counter; 0 is the null
// reference.
type ObjID uint64

// NilRef is the engine-level null reference.
const NilRef ObjID = 0

// ObjKind identifies the kind of a heap object.
type ObjKind uint8

// Heap object kinds.
const (
	KindUnknown ObjKind = iota
	KindArrayList
	KindLinkedList
	KindListNode
	KindStack
	KindHashMap
	KindTreeMap
	KindLinkedHashMap
	KindHashSet
	KindTreeSet
	KindBST
	KindBSTNode
	KindArray
	KindBoxedInteger
	KindNewString
)

var objKindNames = map[ObjKind]string{
	KindArrayList:     "ArrayList",
	KindLinkedList:    "LinkedList",
	KindListNode:      "LinkedListNode",
	KindStack:         "Stack",
	KindHashMap:       "HashMap",
	KindTreeMap:       "TreeMap",
	KindLinkedHashMap: "LinkedHashMap",
	KindHashSet:       "HashSet",
	KindTreeSet:       "TreeSet",
	KindBST:           "BST",
	KindBSTNode:       "BSTNode",
	KindArray:         "Array",
	KindBoxedInteger:  "Integer",
	KindNewString:     "String",
}

func (k ObjKind) String() string {
	if s, ok := objKindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// GCState is the garbage-collection state of an object or pool entry.
// Transitions are monotonic: Live -> Eligible -> Collected.
type GCState uint8

// GC states.
const (
	StateLive GCState = iota
	StateEligible
	StateCollected
)

func (s GCState) String() string {
	switch s {
	case StateLive:
		return "live"
	case StateEligible:
		return "eligible"
	case StateCollected:
		return "collected"
	}
	return "unknown"
}

// MapEntry is one key/value pair of a map object, in insertion order.
type MapEntry struct {
	Key Value
	Val Value
}

// Object is a heap object. Kind-specific payload fields share one struct;
// only the fields for the object's kind are meaningful.
type Object struct {
	ID    ObjID
	Kind  ObjKind
	State GCState

	// Cells holds ordered elements for ArrayList, Stack, Array, and the
	// element set for HashSet/TreeSet (insertion order).
	Cells []Value

	// Entries holds map pairs in insertion order.
	Entries []MapEntry

	// Zero is the reset value for Array cells (element type's zero).
	Zero Value

	// Head is the first node of a LinkedList.
	Head ObjID
	// Elem and Next belong to a LinkedListNode.
	Elem Value
	Next ObjID

	// Root is the root node of a BST; Key/Left/Right belong to a BSTNode.
	Root  ObjID
	Key   Value
	Left  ObjID
	Right ObjID

	// IntVal is the payload of a BoxedInteger.
	IntVal int64
	// StrVal is the payload of a NewString.
	StrVal string
}

// refs returns the ids this object references, for the reachability scan.
func (o *Object) refs() []ObjID {
	var out []ObjID
	add := func(id ObjID) {
		if id != NilRef {
			out = append(out, id)
		}
	}
	for _, c := range o.Cells {
		if c.IsRef() {
			add(c.Ref)
		}
	}
	for _, e := range o.Entries {
		if e.Key.IsRef() {
			add(e.Key.Ref)
		}
		if e.Val.IsRef() {
			add(e.Val.Ref)
		}
	}
	if o.Elem.IsRef() {
		add(o.Elem.Ref)
	}
	if o.Key.IsRef() {
		add(o.Key.Ref)
	}
	add(o.Head)
	add(o.Next)
	add(o.Root)
	add(o.Left)
	add(o.Right)
	return out
}

// PoolKind identifies the kind of a pool entry.
type PoolKind uint8

// Pool entry kinds.
const (
	PoolInternedString PoolKind = iota
	PoolCachedInteger
)

func (k PoolKind) String() string {
	if k == PoolInternedString {
		return "InternedString"
	}
	return "CachedInteger"
}

// PoolEntry is a deduplicated shared value (interned string literal or
// cached boxed integer). Pool entries follow the same GC protocol as heap
// objects, scoped to the pool region.
type PoolEntry struct {
	ID    ObjID
	Kind  PoolKind
	State GCState
	Str   string
	Int   int64
}

// Canonical renders the entry's canonical value.
func (p *PoolEntry) Canonical() Value {
	if p.Kind == PoolInternedString {
		return StrValue(p.Str)
	}
	return IntValue(p.Int)
}

// Variable is one named slot in a stack frame. For primitives, Value holds
// the literal itself; for reference types it holds a ValRef into the arena.
type Variable struct {
	Name  string
	Type  string
	Value Value
}

// Frame is one call-stack frame: an ordered sequence of variables.
type Frame struct {
	Name string
	Vars []*Variable
}

// Lookup returns the variable with the given name, or nil.
func (f *Frame) Lookup(name string) *Variable {
	for _, v := range f.Vars {
		if v.Name == name {
			return v
		}
	}
	return nil
}
