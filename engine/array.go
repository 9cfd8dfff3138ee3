package engine

import (
	"github.com/Neeraj281998/JavaMem-Java-Memory-Visualizer/heap"
	"github.com/Neeraj281998/JavaMem-Java-Memory-Visualizer/stmt"
)

// arrayHandler: fixed-size cells, size set at construction. Add is
// set(index, value), Remove is reset(index) back to the element type's
// zero value. String cells are interned through the pool.
type arrayHandler struct {
	model *heap.Model
}

func (h *arrayHandler) Add(obj *heap.Object, args []stmt.Literal) error {
	idx, err := h.index(obj, args[0])
	if err != nil {
		return err
	}
	cell, err := h.cell(obj.Zero, args[1])
	if err != nil {
		return err
	}
	obj.Cells[idx] = cell
	return nil
}

func (h *arrayHandler) Remove(obj *heap.Object, args []stmt.Literal) error {
	idx, err := h.index(obj, args[0])
	if err != nil {
		return err
	}
	obj.Cells[idx] = obj.Zero
	return nil
}

// index validates the index argument against the declared bounds.
func (h *arrayHandler) index(obj *heap.Object, lit stmt.Literal) (int, error) {
	if lit.Kind != stmt.LitInt {
		return 0, semanticf("array index must be an integer, got %s", lit)
	}
	idx := int(lit.Int)
	if idx < 0 || idx >= len(obj.Cells) {
		return 0, semanticf("index %d out of bounds for length %d", idx, len(obj.Cells))
	}
	return idx, nil
}

// cell converts a literal to a cell value for the element type named by
// its zero value. Null marks a String array, whose cells intern through
// the pool.
func (h *arrayHandler) cell(zero heap.Value, lit stmt.Literal) (heap.Value, error) {
	if zero.Kind == heap.ValNull {
		if lit.Kind != stmt.LitString {
			return heap.Null(), semanticf("value %s is not assignable to String[]", lit)
		}
		return heap.RefValue(h.model.InternString(lit.Str)), nil
	}

	v := valueOf(lit)
	ok := true
	switch zero.Kind {
	case heap.ValInt:
		ok = lit.Kind == stmt.LitInt
	case heap.ValFloat:
		ok = lit.IsNumeric()
		if lit.Kind == stmt.LitInt {
			v = heap.FloatValue(float64(lit.Int))
		}
	case heap.ValBool:
		ok = lit.Kind == stmt.LitBool
	case heap.ValChar:
		ok = lit.Kind == stmt.LitChar
	}
	if !ok {
		return heap.Null(), semanticf("value %s is not assignable to this array", lit)
	}
	return v, nil
}

func (h *arrayHandler) Describe(obj *heap.Object) Snapshot {
	s := Snapshot{Kind: obj.Kind.String(), Size: len(obj.Cells)}
	for i, c := range obj.Cells {
		it := itemOf(c)
		it.Key = indexKey(i)
		s.Items = append(s.Items, it)
	}
	return s
}
