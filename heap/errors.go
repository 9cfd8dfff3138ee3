package heap

import "fmt"

// DanglingReferenceError reports that a collected (or never-allocated) id
// was resolved. The engine is designed to make this unreachable; it is a
// programming-contract violation, not an expected runtime path.
type DanglingReferenceError struct {
	ID ObjID
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("dangling reference: id %d is not live", e.ID)
}
