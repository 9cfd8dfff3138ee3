package engine

import (
	"strconv"

	"github.com/Neeraj281998/JavaMem-Java-Memory-Visualizer/heap"
	"github.com/Neeraj281998/JavaMem-Java-Memory-Visualizer/stmt"
)

// arrayListHandler: ordered cells, append at end, remove drops the last
// element.
type arrayListHandler struct{}

func (h *arrayListHandler) Add(obj *heap.Object, args []stmt.Literal) error {
	obj.Cells = append(obj.Cells, valueOf(args[0]))
	return nil
}

func (h *arrayListHandler) Remove(obj *heap.Object, args []stmt.Literal) error {
	if len(args) > 0 {
		return semanticf("ArrayList remove takes no argument; the last element is removed")
	}
	if len(obj.Cells) == 0 {
		return &EmptyStructureError{Structure: "ArrayList"}
	}
	obj.Cells = obj.Cells[:len(obj.Cells)-1]
	return nil
}

func (h *arrayListHandler) Describe(obj *heap.Object) Snapshot {
	s := Snapshot{Kind: obj.Kind.String(), Size: len(obj.Cells)}
	for i, c := range obj.Cells {
		it := itemOf(c)
		it.Key = indexKey(i)
		s.Items = append(s.Items, it)
	}
	return s
}

// stackHandler: logical top is the last cell. Pop on empty is a reported
// no-op, leaving the size at 0.
type stackHandler struct{}

func (h *stackHandler) Add(obj *heap.Object, args []stmt.Literal) error {
	obj.Cells = append(obj.Cells, valueOf(args[0]))
	return nil
}

func (h *stackHandler) Remove(obj *heap.Object, args []stmt.Literal) error {
	if len(obj.Cells) == 0 {
		return &EmptyStructureError{Structure: "Stack"}
	}
	obj.Cells = obj.Cells[:len(obj.Cells)-1]
	return nil
}

func (h *stackHandler) Describe(obj *heap.Object) Snapshot {
	s := Snapshot{Kind: obj.Kind.String(), Size: len(obj.Cells)}
	// Top first.
	for i := len(obj.Cells) - 1; i >= 0; i-- {
		it := itemOf(obj.Cells[i])
		it.Key = indexKey(i)
		s.Items = append(s.Items, it)
	}
	return s
}

// linkedListHandler: the list object holds only the head reference; every
// node is its own heap object. Unlinked nodes become unreachable and are
// handed to the GC by the engine's reachability pass.
type linkedListHandler struct {
	model *heap.Model
}

func (h *linkedListHandler) Add(obj *heap.Object, args []stmt.Literal) error {
	node := h.model.CreateObject(heap.KindListNode)
	node.Elem = valueOf(args[0])

	if obj.Head == heap.NilRef {
		obj.Head = node.ID
		return nil
	}
	tail, err := h.tail(obj)
	if err != nil {
		return err
	}
	tail.Next = node.ID
	return nil
}

func (h *linkedListHandler) Remove(obj *heap.Object, args []stmt.Literal) error {
	if obj.Head == heap.NilRef {
		return &EmptyStructureError{Structure: "LinkedList"}
	}
	if len(args) == 0 {
		return h.removeTail(obj)
	}
	return h.removeValue(obj, valueOf(args[0]))
}

// removeValue unlinks the first node whose value equals want.
func (h *linkedListHandler) removeValue(obj *heap.Object, want heap.Value) error {
	var prev *heap.Object
	cur := obj.Head
	for cur != heap.NilRef {
		node, err := h.model.Object(cur)
		if err != nil {
			return err
		}
		if node.Elem.Equal(want) {
			if prev == nil {
				obj.Head = node.Next
			} else {
				prev.Next = node.Next
			}
			node.Next = heap.NilRef
			return nil
		}
		prev = node
		cur = node.Next
	}
	return semanticf("no element %s in LinkedList", want)
}

// removeTail unlinks the last node.
func (h *linkedListHandler) removeTail(obj *heap.Object) error {
	var prev *heap.Object
	cur := obj.Head
	for {
		node, err := h.model.Object(cur)
		if err != nil {
			return err
		}
		if node.Next == heap.NilRef {
			if prev == nil {
				obj.Head = heap.NilRef
			} else {
				prev.Next = heap.NilRef
			}
			return nil
		}
		prev = node
		cur = node.Next
	}
}

func (h *linkedListHandler) tail(obj *heap.Object) (*heap.Object, error) {
	cur := obj.Head
	for {
		node, err := h.model.Object(cur)
		if err != nil {
			return nil, err
		}
		if node.Next == heap.NilRef {
			return node, nil
		}
		cur = node.Next
	}
}

func (h *linkedListHandler) Describe(obj *heap.Object) Snapshot {
	s := Snapshot{Kind: obj.Kind.String()}
	cur := obj.Head
	for cur != heap.NilRef {
		node, err := h.model.Object(cur)
		if err != nil {
			break
		}
		it := itemOf(node.Elem)
		it.Key = strconv.FormatUint(uint64(node.ID), 10)
		s.Items = append(s.Items, it)
		s.Size++
		cur = node.Next
	}
	return s
}
