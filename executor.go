package cotask

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

// An Executor accepts opaque units of work and runs them later, in FIFO
// order per instance. Execute must be callable from within a work item on
// the same executor; the submitted item runs after the current one.
//
// [InlineExecutor] is the documented exception: it runs work at the call
// site, turning every task parameterised with it into an eagerly chaining
// computation.
type Executor interface {
	Execute(fn func())
}

// InlineExecutor runs each work item synchronously at the call site.
// It is the default executor of [Handle.Run] and [Detach].
type InlineExecutor struct{}

// Execute calls fn.
func (InlineExecutor) Execute(fn func()) {
	fn()
}

// A LoopExecutor is a manually driven dispatcher.
//
// Work items are added into an internal FIFO queue. The Run method pops and
// runs each of them until the queue is emptied, in a single-threaded manner.
// If one item blocks, no other items can run. The best practice is not to
// block.
//
// Manually calling the Run method is usually not desired. One would instead
// use the Autorun method to set up an autorun function to call the Run
// method automatically whenever a work item is submitted. The LoopExecutor
// never calls the autorun function twice at the same time.
type LoopExecutor struct {
	mu      sync.Mutex
	queue   []func()
	running bool
	autorun func()
}

// Autorun sets up an autorun function to call the Run method automatically
// whenever a work item is submitted.
//
// One must pass a function that calls the Run method.
//
// If f blocks, the Execute method may block too. The best practice is not
// to block.
func (e *LoopExecutor) Autorun(f func()) {
	e.autorun = f
}

// Execute adds fn into the queue. It is safe for concurrent use.
func (e *LoopExecutor) Execute(fn func()) {
	var autorun func()

	e.mu.Lock()
	e.queue = append(e.queue, fn)
	if !e.running && e.autorun != nil {
		e.running = true
		autorun = e.autorun
	}
	e.mu.Unlock()

	if autorun != nil {
		autorun()
	}
}

// RunOne pops and runs the first work item in the queue. It reports false
// when the queue is empty.
func (e *LoopExecutor) RunOne() bool {
	e.mu.Lock()
	if len(e.queue) == 0 {
		e.running = false
		e.mu.Unlock()
		return false
	}
	fn := e.queue[0]
	e.queue = e.queue[1:]
	e.running = true
	e.mu.Unlock()

	fn()
	return true
}

// Run pops and runs every work item in the queue until the queue is
// emptied, including items submitted by the items it runs.
//
// Run must not be called twice at the same time.
func (e *LoopExecutor) Run() {
	for e.RunOne() {
	}
}

// Len returns the number of queued work items.
func (e *LoopExecutor) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

// A GoroutineExecutor serialises work onto a single background goroutine.
// It bridges code running on arbitrary goroutines, such as [Producer.Send]
// callers, into a single-threaded task world.
type GoroutineExecutor struct {
	ch        chan func()
	g         errgroup.Group
	closeOnce sync.Once
}

// NewGoroutineExecutor starts the dispatch goroutine.
func NewGoroutineExecutor() *GoroutineExecutor {
	e := &GoroutineExecutor{ch: make(chan func(), 256)}
	e.g.Go(func() error {
		for fn := range e.ch {
			fn()
		}
		return nil
	})
	return e
}

// Execute submits fn to the dispatch goroutine. It blocks while the
// internal queue is full; there is no other back pressure.
func (e *GoroutineExecutor) Execute(fn func()) {
	e.ch <- fn
}

// Close stops accepting work and waits until every submitted item has run.
// Execute must not be called after Close.
func (e *GoroutineExecutor) Close() error {
	e.closeOnce.Do(func() { close(e.ch) })
	return e.g.Wait()
}

var defaultExec Executor = InlineExecutor{}

// SetDefaultExecutor replaces the process-wide executor used by [Detach]
// for bodies with no explicit executor. It is meant to be called once at
// process start, before any task runs, and never mutated thereafter.
func SetDefaultExecutor(e Executor) {
	if e != nil {
		defaultExec = e
	}
}

// DefaultExecutor returns the process-wide default executor. Unless
// configured, it is an [InlineExecutor].
func DefaultExecutor() Executor {
	return defaultExec
}
