package heap

import (
	"fmt"

	"github.com/google/uuid"
)

// EventKind classifies a model-change event.
type EventKind uint8

// Model-change event kinds.
const (
	FrameCreated EventKind = iota
	FrameDestroyed
	VariableBound
	VariableUnbound
	ObjectCreated
	ObjectMutated
	ObjectEligible
	ObjectCollected
	PoolEntryCreated
)

var eventKindNames = map[EventKind]string{
	FrameCreated:     "FrameCreated",
	FrameDestroyed:   "FrameDestroyed",
	VariableBound:    "VariableBound",
	VariableUnbound:  "VariableUnbound",
	ObjectCreated:    "ObjectCreated",
	ObjectMutated:    "ObjectMutated",
	ObjectEligible:   "ObjectEligible",
	ObjectCollected:  "ObjectCollected",
	PoolEntryCreated: "PoolEntryCreated",
}

func (k EventKind) String() string {
	if s, ok := eventKindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Event is one model-change notification for the external renderer. The
// renderer owns no simulation state; it is a projection of the last-known
// model plus this stream. The ID is a UUID so replayed streams can be
// de-duplicated.
type Event struct {
	ID     string
	Kind   EventKind
	Time   float64
	Object ObjID
	Frame  string
	Name   string
	Detail string
}

func (e Event) String() string {
	s := fmt.Sprintf("[%6.2f] %s", e.Time, e.Kind)
	if e.Frame != "" {
		s += " frame=" + e.Frame
	}
	if e.Name != "" {
		s += " name=" + e.Name
	}
	if e.Object != NilRef {
		s += fmt.Sprintf(" obj=%d", e.Object)
	}
	if e.Detail != "" {
		s += " " + e.Detail
	}
	return s
}

// emit delivers an event to the listener, if any.
func (m *Model) emit(kind EventKind, obj ObjID, frame, name, detail string) {
	if m.listener == nil {
		return
	}
	var t float64
	if m.clock != nil {
		t = m.clock()
	}
	m.listener(Event{
		ID:     uuid.NewString(),
		Kind:   kind,
		Time:   t,
		Object: obj,
		Frame:  frame,
		Name:   name,
		Detail: detail,
	})
}
