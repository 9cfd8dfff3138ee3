package gc

import (
	"math/rand"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/Neeraj281998/JavaMem-Java-Memory-Visualizer/heap"
)

// Collector owns the Eligible -> Collected transition. Each eligible
// object gets its own sweep event on the simulation engine, delayed by a
// randomized amount inside the configured range, so objects are collected
// independently and out of order. An object has at most one outstanding
// sweep at a time.
type Collector struct {
	engine sim.Engine
	model  *heap.Model
	config *Config
	rng    *rand.Rand

	pending map[heap.ObjID]bool

	// epoch guards against sweeps that were scheduled before a Clear.
	// The serial engine cannot deschedule, so CancelAll bumps the epoch
	// and stale events are ignored when they fire.
	epoch uint64
}

// NewCollector creates a collector sweeping the given model on the given
// engine. The seed makes sweep delays reproducible.
func NewCollector(engine sim.Engine, model *heap.Model, config *Config, seed int64) *Collector {
	return &Collector{
		engine:  engine,
		model:   model,
		config:  config,
		rng:     rand.New(rand.NewSource(seed)),
		pending: make(map[heap.ObjID]bool),
	}
}

// sweepEvent is the scheduled collection of one object.
type sweepEvent struct {
	*sim.EventBase
	obj   heap.ObjID
	epoch uint64
}

// MarkEligible flips each id Live -> Eligible immediately and schedules
// its sweep. Ids already past Live, and ids with a sweep outstanding,
// keep their existing timer.
func (c *Collector) MarkEligible(ids []heap.ObjID) {
	now := c.engine.CurrentTime()
	for _, id := range ids {
		c.model.MarkEligible(id)
		if c.pending[id] {
			continue
		}
		c.pending[id] = true

		delay := c.config.MinSweepDelay +
			c.rng.Float64()*(c.config.MaxSweepDelay-c.config.MinSweepDelay)
		c.engine.Schedule(&sweepEvent{
			EventBase: sim.NewEventBase(now+sim.VTimeInSec(delay), c),
			obj:       id,
			epoch:     c.epoch,
		})
	}
}

// Handle fires one sweep: the object transitions Eligible -> Collected
// and leaves the arena. Sweeps from a cancelled epoch are no-ops.
func (c *Collector) Handle(e sim.Event) error {
	sw, ok := e.(*sweepEvent)
	if !ok || sw.epoch != c.epoch {
		return nil
	}
	delete(c.pending, sw.obj)
	c.model.Collect(sw.obj)
	return nil
}

// CancelAll discards every pending sweep. Used by Clear.
func (c *Collector) CancelAll() {
	c.epoch++
	c.pending = make(map[heap.ObjID]bool)
}

// PendingSweeps returns the number of objects with an outstanding sweep.
func (c *Collector) PendingSweeps() int {
	return len(c.pending)
}
