package engine

import (
	"strconv"

	"github.com/Neeraj281998/JavaMem-Java-Memory-Visualizer/heap"
	"github.com/Neeraj281998/JavaMem-Java-Memory-Visualizer/stmt"
)

// bstHandler: the tree object holds only the root reference; every node
// is its own heap object. Keys are numeric and unique. Detached nodes
// become unreachable and are handed to the GC by the engine's
// reachability pass.
type bstHandler struct {
	model *heap.Model
}

func (h *bstHandler) Add(obj *heap.Object, args []stmt.Literal) error {
	lit := args[0]
	if !lit.IsNumeric() {
		return semanticf("BST keys must be numeric, got %s", lit)
	}
	key := valueOf(lit)

	if obj.Root == heap.NilRef {
		obj.Root = h.newNode(key)
		return nil
	}

	cur := obj.Root
	for {
		node, err := h.model.Object(cur)
		if err != nil {
			return err
		}
		if key.Equal(node.Key) {
			return semanticf("duplicate key %s", key)
		}
		if key.Less(node.Key) {
			if node.Left == heap.NilRef {
				node.Left = h.newNode(key)
				return nil
			}
			cur = node.Left
		} else {
			if node.Right == heap.NilRef {
				node.Right = h.newNode(key)
				return nil
			}
			cur = node.Right
		}
	}
}

func (h *bstHandler) newNode(key heap.Value) heap.ObjID {
	node := h.model.CreateObject(heap.KindBSTNode)
	node.Key = key
	return node.ID
}

// Remove performs the standard BST delete: a leaf is removed directly, a
// one-child node is replaced by its child, and a two-child node takes its
// in-order successor's key, after which the successor node is removed.
func (h *bstHandler) Remove(obj *heap.Object, args []stmt.Literal) error {
	if len(args) == 0 {
		return semanticf("BST remove requires a key")
	}
	lit := args[0]
	if !lit.IsNumeric() {
		return semanticf("BST keys must be numeric, got %s", lit)
	}
	if obj.Root == heap.NilRef {
		return &EmptyStructureError{Structure: "BST"}
	}

	key := valueOf(lit)
	var parent *heap.Object
	cur := obj.Root
	for cur != heap.NilRef {
		node, err := h.model.Object(cur)
		if err != nil {
			return err
		}
		if key.Equal(node.Key) {
			return h.removeNode(obj, parent, node)
		}
		parent = node
		if key.Less(node.Key) {
			cur = node.Left
		} else {
			cur = node.Right
		}
	}
	return semanticf("key %s not found in BST", key)
}

func (h *bstHandler) removeNode(obj, parent, node *heap.Object) error {
	// Two children: swap in the in-order successor's key, then remove the
	// successor node (which has no left child).
	if node.Left != heap.NilRef && node.Right != heap.NilRef {
		succParent := node
		succ, err := h.model.Object(node.Right)
		if err != nil {
			return err
		}
		for succ.Left != heap.NilRef {
			succParent = succ
			if succ, err = h.model.Object(succ.Left); err != nil {
				return err
			}
		}
		node.Key = succ.Key
		return h.removeNode(obj, succParent, succ)
	}

	// Leaf or one child: splice the node out.
	child := node.Left
	if child == heap.NilRef {
		child = node.Right
	}
	switch {
	case parent == nil:
		obj.Root = child
	case parent.Left == node.ID:
		parent.Left = child
	default:
		parent.Right = child
	}
	node.Left = heap.NilRef
	node.Right = heap.NilRef
	return nil
}

// Describe returns the in-order traversal, which is sorted by key for a
// valid tree.
func (h *bstHandler) Describe(obj *heap.Object) Snapshot {
	s := Snapshot{Kind: obj.Kind.String()}
	h.inorder(obj.Root, &s)
	return s
}

func (h *bstHandler) inorder(id heap.ObjID, s *Snapshot) {
	if id == heap.NilRef {
		return
	}
	node, err := h.model.Object(id)
	if err != nil {
		return
	}
	h.inorder(node.Left, s)
	it := itemOf(node.Key)
	it.Key = strconv.FormatUint(uint64(node.ID), 10)
	s.Items = append(s.Items, it)
	s.Size++
	h.inorder(node.Right, s)
}
