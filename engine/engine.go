// Package engine applies parsed statements against the memory model
// through per-kind type handlers, and drives the GC protocol on a
// discrete-event simulation timeline.
package engine

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/Neeraj281998/JavaMem-Java-Memory-Visualizer/gc"
	"github.com/Neeraj281998/JavaMem-Java-Memory-Visualizer/heap"
	"github.com/Neeraj281998/JavaMem-Java-Memory-Visualizer/stmt"
)

// Engine executes statements one at a time, in source order, against a
// single authoritative model. Statements and GC sweeps are both events
// on one serial simulation engine: statements fire one interval apart,
// sweeps fire at their own randomized times in between. The engine is
// not re-entrant; a Run only returns once the timeline has drained.
type Engine struct {
	model     *heap.Model
	collector *gc.Collector
	simEngine sim.Engine
	config    *gc.Config
	seed      int64
	frameName string

	handlers map[heap.ObjKind]Handler

	errs   []ExecError
	events []heap.Event
	sink   func(heap.Event)
}

// Option is a functional option for configuring the Engine.
type Option func(*Engine)

// WithGCConfig sets the sweep timing configuration.
func WithGCConfig(config *gc.Config) Option {
	return func(e *Engine) {
		e.config = config
	}
}

// WithSeed sets the seed for randomized sweep delays.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithEventSink forwards every model-change event to the given consumer
// (the renderer) as it is emitted.
func WithEventSink(sink func(heap.Event)) Option {
	return func(e *Engine) {
		e.sink = sink
	}
}

// WithFrameName sets the root frame's name. Default "main".
func WithFrameName(name string) Option {
	return func(e *Engine) {
		e.frameName = name
	}
}

// New creates an engine with an empty root frame.
func New(opts ...Option) *Engine {
	e := &Engine{
		config:    gc.DefaultConfig(),
		seed:      1,
		frameName: "main",
	}
	for _, opt := range opts {
		opt(e)
	}

	e.simEngine = sim.NewSerialEngine()
	e.model = heap.NewModel(e.frameName)
	e.model.SetClock(func() float64 {
		return float64(e.simEngine.CurrentTime())
	})
	e.model.SetListener(e.onEvent)
	e.collector = gc.NewCollector(e.simEngine, e.model, e.config, e.seed)

	e.handlers = map[heap.ObjKind]Handler{
		heap.KindArrayList:     &arrayListHandler{},
		heap.KindStack:         &stackHandler{},
		heap.KindLinkedList:    &linkedListHandler{model: e.model},
		heap.KindHashMap:       &mapHandler{kind: heap.KindHashMap},
		heap.KindTreeMap:       &mapHandler{kind: heap.KindTreeMap},
		heap.KindLinkedHashMap: &mapHandler{kind: heap.KindLinkedHashMap},
		heap.KindHashSet:       &setHandler{kind: heap.KindHashSet},
		heap.KindTreeSet:       &setHandler{kind: heap.KindTreeSet},
		heap.KindBST:           &bstHandler{model: e.model},
		heap.KindArray:         &arrayHandler{model: e.model},
	}

	return e
}

// Model returns the authoritative memory model.
func (e *Engine) Model() *heap.Model {
	return e.model
}

// Events returns all model-change events emitted so far, in order.
func (e *Engine) Events() []heap.Event {
	return e.events
}

// Errors returns all execution errors recorded so far, in order.
func (e *Engine) Errors() []ExecError {
	return e.errs
}

// PendingSweeps returns the number of objects awaiting collection.
func (e *Engine) PendingSweeps() int {
	return e.collector.PendingSweeps()
}

// CurrentTime returns the virtual time of the simulation.
func (e *Engine) CurrentTime() float64 {
	return float64(e.simEngine.CurrentTime())
}

func (e *Engine) onEvent(ev heap.Event) {
	e.events = append(e.events, ev)
	if e.sink != nil {
		e.sink(ev)
	}
}

// stmtEvent is the scheduled application of one statement.
type stmtEvent struct {
	*sim.EventBase
	index int
	stmt  stmt.Statement
}

// Handle applies one scheduled statement. A statement's failure is
// isolated: the error is recorded and the timeline continues.
func (e *Engine) Handle(evt sim.Event) error {
	se, ok := evt.(*stmtEvent)
	if !ok {
		return nil
	}
	if err := e.apply(se.stmt); err != nil {
		e.errs = append(e.errs, ExecError{Index: se.index, Line: se.stmt.Line, Err: err})
	}
	return nil
}

// Run schedules the statements one interval apart and drives the timeline
// until it drains, which includes every GC sweep that falls due. Returns
// the errors recorded for this batch.
func (e *Engine) Run(stmts []stmt.Statement) []ExecError {
	start := len(e.errs)
	now := e.simEngine.CurrentTime()
	for i, s := range stmts {
		t := now + sim.VTimeInSec(e.config.StatementInterval*float64(i+1))
		e.simEngine.Schedule(&stmtEvent{
			EventBase: sim.NewEventBase(t, e),
			index:     i,
			stmt:      s,
		})
	}
	if err := e.simEngine.Run(); err != nil {
		e.errs = append(e.errs, ExecError{Index: -1, Err: err})
	}
	return e.errs[start:]
}

// Drain runs the timeline until every pending sweep has fired.
func (e *Engine) Drain() {
	_ = e.simEngine.Run()
}

// Clear cancels all pending sweeps and resets the model to one empty
// root frame.
func (e *Engine) Clear() {
	e.collector.CancelAll()
	e.model.Reset()
}

// PushFrame creates a new active frame, for embedding UIs that walk
// through method calls.
func (e *Engine) PushFrame(name string) {
	e.model.PushFrame(name)
}

// PopFrame destroys the active frame and reactivates the enclosing one.
// Popping the root frame is a no-op.
func (e *Engine) PopFrame() {
	if e.model.PopFrame() {
		e.reclaim()
	}
}

// PopVariables unbinds the named variables from the active frame and
// marks objects that lost their last referrer as GC-eligible. The
// eligibility transition is synchronous; collection happens later, on
// the sweep timeline (advance it with Run or Drain).
func (e *Engine) PopVariables(names ...string) {
	e.model.UnbindVars(names)
	e.reclaim()
}

// Describe returns the renderable snapshot of a structure object.
func (e *Engine) Describe(id heap.ObjID) (Snapshot, error) {
	obj, err := e.model.Object(id)
	if err != nil {
		return Snapshot{}, err
	}
	h, ok := e.handlers[obj.Kind]
	if !ok {
		return Snapshot{}, semanticf("%s has no structure view", obj.Kind)
	}
	return h.Describe(obj), nil
}

// reclaim recomputes reachability and hands newly-unreachable ids to the
// collector. Called after every mutation that can remove a reference.
func (e *Engine) reclaim() {
	if ids := e.model.NewlyUnreachable(); len(ids) > 0 {
		e.collector.MarkEligible(ids)
	}
}

// apply executes one statement.
func (e *Engine) apply(s stmt.Statement) error {
	var err error
	switch s.Op {
	case stmt.OpDeclare:
		err = e.applyDeclare(s)
	case stmt.OpDeclareArray:
		err = e.applyDeclareArray(s)
	case stmt.OpCall:
		err = e.applyCall(s)
	default:
		err = semanticf("unsupported operation")
	}
	if err == nil {
		// Rebinds and structural removes may have orphaned objects.
		e.reclaim()
	}
	return err
}

// kindForType maps structure type tags to heap object kinds.
var kindForType = map[stmt.TypeTag]heap.ObjKind{
	stmt.TypeArrayList:     heap.KindArrayList,
	stmt.TypeLinkedList:    heap.KindLinkedList,
	stmt.TypeStack:         heap.KindStack,
	stmt.TypeHashMap:       heap.KindHashMap,
	stmt.TypeTreeMap:       heap.KindTreeMap,
	stmt.TypeLinkedHashMap: heap.KindLinkedHashMap,
	stmt.TypeHashSet:       heap.KindHashSet,
	stmt.TypeTreeSet:       heap.KindTreeSet,
	stmt.TypeBST:           heap.KindBST,
}

func (e *Engine) applyDeclare(s stmt.Statement) error {
	typeName := s.Type.String()

	switch {
	case s.Type.IsPrimitive():
		e.model.Bind(s.Name, typeName, valueOf(*s.CtorArg))

	case s.Type == stmt.TypeString:
		if s.NewObject {
			// Explicit new String always allocates, bypassing the pool.
			obj := e.model.CreateObject(heap.KindNewString)
			obj.StrVal = s.CtorArg.Str
			e.model.Bind(s.Name, typeName, heap.RefValue(obj.ID))
		} else {
			id := e.model.InternString(s.CtorArg.Str)
			e.model.Bind(s.Name, typeName, heap.RefValue(id))
		}

	case s.Type == stmt.TypeInteger:
		v := s.CtorArg.Int
		if !s.NewObject && v >= heap.IntegerCacheMin && v <= heap.IntegerCacheMax {
			id := e.model.CacheInteger(v)
			e.model.Bind(s.Name, typeName, heap.RefValue(id))
		} else {
			obj := e.model.CreateObject(heap.KindBoxedInteger)
			obj.IntVal = v
			e.model.Bind(s.Name, typeName, heap.RefValue(obj.ID))
		}

	default:
		kind, ok := kindForType[s.Type]
		if !ok {
			return semanticf("cannot construct %s", typeName)
		}
		obj := e.model.CreateObject(kind)
		e.model.Bind(s.Name, typeName, heap.RefValue(obj.ID))
	}

	return nil
}

func (e *Engine) applyDeclareArray(s stmt.Statement) error {
	zero := zeroValue(s.Type)
	cells := make([]heap.Value, s.ArrayLen)
	for i := range cells {
		cells[i] = zero
	}

	// Initializer cells are validated before the object is allocated;
	// a bad literal must not leave an unbound half-built object behind.
	handler := e.handlers[heap.KindArray].(*arrayHandler)
	for i, lit := range s.ArrayInit {
		cell, err := handler.cell(zero, lit)
		if err != nil {
			return err
		}
		cells[i] = cell
	}

	obj := e.model.CreateObject(heap.KindArray)
	obj.Zero = zero
	obj.Cells = cells
	e.model.Bind(s.Name, s.Type.String()+"[]", heap.RefValue(obj.ID))
	return nil
}

// zeroValue returns the reset value for an array element type:
// 0 for numeric, false for boolean, '\0' for char, null for String.
func zeroValue(t stmt.TypeTag) heap.Value {
	switch t {
	case stmt.TypeInt, stmt.TypeInteger:
		return heap.IntValue(0)
	case stmt.TypeDouble:
		return heap.FloatValue(0)
	case stmt.TypeBoolean:
		return heap.BoolValue(false)
	case stmt.TypeChar:
		return heap.CharValue(0)
	default:
		return heap.Null()
	}
}

func (e *Engine) applyCall(s stmt.Statement) error {
	v := e.model.ActiveFrame().Lookup(s.Recv)
	if v == nil {
		return semanticf("undeclared variable %q", s.Recv)
	}
	if !v.Value.IsRef() {
		return semanticf("type %s does not support method calls", v.Type)
	}
	if e.model.IsPoolEntry(v.Value.Ref) {
		return semanticf("type %s does not support %s", v.Type, s.Method)
	}

	obj, err := e.model.Object(v.Value.Ref)
	if err != nil {
		return err
	}
	handler, ok := e.handlers[obj.Kind]
	if !ok {
		return semanticf("type %s does not support %s", v.Type, s.Method)
	}
	if err := checkMethodKind(s.Method, obj.Kind); err != nil {
		return err
	}

	switch s.Method {
	case stmt.MethodAdd, stmt.MethodPush, stmt.MethodPut, stmt.MethodSet:
		err = handler.Add(obj, s.Args)
	default:
		err = handler.Remove(obj, s.Args)
	}
	if err != nil {
		return err
	}

	e.model.Touch(obj.ID, s.Method.String())
	return nil
}

// checkMethodKind enforces which spelling applies to which kind: push/pop
// for Stack, put for maps, set/reset for arrays, add/remove elsewhere.
func checkMethodKind(m stmt.Method, kind heap.ObjKind) error {
	isMap := kind == heap.KindHashMap || kind == heap.KindTreeMap ||
		kind == heap.KindLinkedHashMap

	ok := false
	switch m {
	case stmt.MethodPush, stmt.MethodPop:
		ok = kind == heap.KindStack
	case stmt.MethodPut:
		ok = isMap
	case stmt.MethodSet, stmt.MethodReset:
		ok = kind == heap.KindArray
	case stmt.MethodAdd:
		ok = kind == heap.KindArrayList || kind == heap.KindLinkedList ||
			kind == heap.KindHashSet || kind == heap.KindTreeSet ||
			kind == heap.KindBST
	case stmt.MethodRemove:
		ok = kind != heap.KindStack && kind != heap.KindArray
	}
	if !ok {
		return semanticf("%s does not support %s", kind, m)
	}
	return nil
}
