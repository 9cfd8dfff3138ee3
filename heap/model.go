package heap

import "sort"

// IntegerCacheMin and IntegerCacheMax bound the boxed-integer cache.
// Boxed values inside [min, max] share one pool entry per distinct value;
// values outside always allocate a fresh heap object.
const (
	IntegerCacheMin = -128
	IntegerCacheMax = 127
)

// Model is the single authoritative aggregate of all simulation state:
// the call stack, the heap object arena, and the pool. All handlers and
// operations receive it explicitly; nothing reads it through globals.
type Model struct {
	frames  []*Frame
	objects map[ObjID]*Object
	pool    map[ObjID]*PoolEntry

	// Dedup tables for the pool regions.
	internedStrings map[string]ObjID
	cachedInts      map[int64]ObjID

	nextID   ObjID
	rootName string

	listener func(Event)
	clock    func() float64
}

// NewModel creates a model with a single empty root frame.
func NewModel(rootName string) *Model {
	m := &Model{rootName: rootName}
	m.reset()
	return m
}

// reset reinitializes all state to one empty root frame.
func (m *Model) reset() {
	m.frames = []*Frame{{Name: m.rootName}}
	m.objects = make(map[ObjID]*Object)
	m.pool = make(map[ObjID]*PoolEntry)
	m.internedStrings = make(map[string]ObjID)
	m.cachedInts = make(map[int64]ObjID)
	m.nextID = 0
}

// Reset discards the entire model and re-creates the root frame.
// Pending sweep cancellation is the collector's job, not the model's.
func (m *Model) Reset() {
	m.reset()
	m.emit(FrameCreated, NilRef, m.rootName, "", "")
}

// SetListener installs the model-change event consumer.
func (m *Model) SetListener(fn func(Event)) {
	m.listener = fn
}

// SetClock installs the timestamp source for emitted events.
func (m *Model) SetClock(fn func() float64) {
	m.clock = fn
}

// Frames returns the call stack, bottom first.
func (m *Model) Frames() []*Frame {
	return m.frames
}

// ActiveFrame returns the frame declarations currently target.
func (m *Model) ActiveFrame() *Frame {
	return m.frames[len(m.frames)-1]
}

// PushFrame creates a new active frame.
func (m *Model) PushFrame(name string) *Frame {
	f := &Frame{Name: name}
	m.frames = append(m.frames, f)
	m.emit(FrameCreated, NilRef, name, "", "")
	return f
}

// PopFrame destroys the active frame, unbinding all its variables. The
// root frame is never destroyed; popping it is a no-op. Returns whether a
// frame was removed.
func (m *Model) PopFrame() bool {
	if len(m.frames) == 1 {
		return false
	}
	f := m.frames[len(m.frames)-1]
	for _, v := range f.Vars {
		m.emit(VariableUnbound, refOf(v.Value), f.Name, v.Name, "")
	}
	m.frames = m.frames[:len(m.frames)-1]
	m.emit(FrameDestroyed, NilRef, f.Name, "", "")
	return true
}

// Bind declares or rebinds a variable in the active frame. Rebinding
// mutates the slot in place.
func (m *Model) Bind(name, declaredType string, v Value) *Variable {
	f := m.ActiveFrame()
	if existing := f.Lookup(name); existing != nil {
		existing.Value = v
		m.emit(VariableBound, refOf(v), f.Name, name, "rebound")
		return existing
	}
	nv := &Variable{Name: name, Type: declaredType, Value: v}
	f.Vars = append(f.Vars, nv)
	m.emit(VariableBound, refOf(v), f.Name, name, "")
	return nv
}

// UnbindVars removes the named variables from the active frame. Unknown
// names are ignored. Reachability is the caller's follow-up.
func (m *Model) UnbindVars(names []string) {
	f := m.ActiveFrame()
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	kept := f.Vars[:0]
	for _, v := range f.Vars {
		if drop[v.Name] {
			m.emit(VariableUnbound, refOf(v.Value), f.Name, v.Name, "")
			continue
		}
		kept = append(kept, v)
	}
	f.Vars = kept
}

// CreateObject allocates a heap object of the given kind.
func (m *Model) CreateObject(kind ObjKind) *Object {
	m.nextID++
	o := &Object{ID: m.nextID, Kind: kind, State: StateLive}
	m.objects[o.ID] = o
	m.emit(ObjectCreated, o.ID, "", "", kind.String())
	return o
}

// InternString returns the pool entry id for the literal, creating it on
// first use. Two byte-identical literals share one entry while it is
// live; an entry that has gone Eligible is never handed out again.
func (m *Model) InternString(s string) ObjID {
	if id, ok := m.internedStrings[s]; ok {
		return id
	}
	m.nextID++
	e := &PoolEntry{ID: m.nextID, Kind: PoolInternedString, State: StateLive, Str: s}
	m.pool[e.ID] = e
	m.internedStrings[s] = e.ID
	m.emit(PoolEntryCreated, e.ID, "", "", "\""+s+"\"")
	return e.ID
}

// CacheInteger returns the shared pool entry id for a boxed integer inside
// the cache range, creating it on first use. Callers are responsible for
// the range check; out-of-range values get fresh heap objects instead.
func (m *Model) CacheInteger(v int64) ObjID {
	if id, ok := m.cachedInts[v]; ok {
		return id
	}
	m.nextID++
	e := &PoolEntry{ID: m.nextID, Kind: PoolCachedInteger, State: StateLive, Int: v}
	m.pool[e.ID] = e
	m.cachedInts[v] = e.ID
	m.emit(PoolEntryCreated, e.ID, "", "", e.Canonical().String())
	return e.ID
}

// Object returns the live or eligible heap object for id, or a
// DanglingReferenceError if the id is unknown or collected.
func (m *Model) Object(id ObjID) (*Object, error) {
	o, ok := m.objects[id]
	if !ok {
		return nil, &DanglingReferenceError{ID: id}
	}
	return o, nil
}

// PoolEntry returns the pool entry for id, or a DanglingReferenceError.
func (m *Model) PoolEntry(id ObjID) (*PoolEntry, error) {
	e, ok := m.pool[id]
	if !ok {
		return nil, &DanglingReferenceError{ID: id}
	}
	return e, nil
}

// IsPoolEntry reports whether id resolves into the pool region.
func (m *Model) IsPoolEntry(id ObjID) bool {
	_, ok := m.pool[id]
	return ok
}

// Touch emits an ObjectMutated event for id.
func (m *Model) Touch(id ObjID, detail string) {
	m.emit(ObjectMutated, id, "", "", detail)
}

// MarkEligible transitions id Live -> Eligible. The transition is
// monotonic; ids already past Live are left alone. An Eligible pool
// entry leaves the dedup tables immediately, so a later identical
// literal gets a fresh entry instead of a reference that a pending
// sweep would invalidate. Reports whether the transition happened.
func (m *Model) MarkEligible(id ObjID) bool {
	if o, ok := m.objects[id]; ok && o.State == StateLive {
		o.State = StateEligible
		m.emit(ObjectEligible, id, "", "", o.Kind.String())
		return true
	}
	if e, ok := m.pool[id]; ok && e.State == StateLive {
		e.State = StateEligible
		if e.Kind == PoolInternedString {
			delete(m.internedStrings, e.Str)
		} else {
			delete(m.cachedInts, e.Int)
		}
		m.emit(ObjectEligible, id, "", "", e.Kind.String())
		return true
	}
	return false
}

// Collect transitions id Eligible -> Collected and removes it from the
// arena so the id can never be re-resolved. A pool entry left the dedup
// tables when it went Eligible, so an identical literal may already map
// to a fresh entry by now.
func (m *Model) Collect(id ObjID) {
	if o, ok := m.objects[id]; ok && o.State == StateEligible {
		o.State = StateCollected
		delete(m.objects, id)
		m.emit(ObjectCollected, id, "", "", o.Kind.String())
		return
	}
	if e, ok := m.pool[id]; ok && e.State == StateEligible {
		e.State = StateCollected
		delete(m.pool, id)
		m.emit(ObjectCollected, id, "", "", e.Kind.String())
	}
}

// NumObjects returns the number of heap objects not yet collected.
func (m *Model) NumObjects() int {
	return len(m.objects)
}

// NumPoolEntries returns the number of pool entries not yet collected.
func (m *Model) NumPoolEntries() int {
	return len(m.pool)
}

// ObjectIDs returns all heap object ids in ascending order.
func (m *Model) ObjectIDs() []ObjID {
	ids := make([]ObjID, 0, len(m.objects))
	for id := range m.objects {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// PoolIDs returns all pool entry ids in ascending order.
func (m *Model) PoolIDs() []ObjID {
	ids := make([]ObjID, 0, len(m.pool))
	for id := range m.pool {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// PoolRefCount counts the variables and heap object fields currently
// referencing the pool entry. Derived on demand, never stored.
func (m *Model) PoolRefCount(id ObjID) int {
	n := 0
	for _, f := range m.frames {
		for _, v := range f.Vars {
			if v.Value.IsRef() && v.Value.Ref == id {
				n++
			}
		}
	}
	for _, o := range m.objects {
		for _, r := range o.refs() {
			if r == id {
				n++
			}
		}
	}
	return n
}

func refOf(v Value) ObjID {
	if v.IsRef() {
		return v.Ref
	}
	return NilRef
}
