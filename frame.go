package cotask

import "iter"

// cancelState is the cancellation flag shared by every frame in one
// ownership tree: the root task, tasks reached by nested awaits, fan-out
// children of AnyOf/AllOf, and group children of an [Owner].
// Once set it is never cleared.
type cancelState struct {
	requested bool
}

// A frame is the per-invocation record backing one suspended computation.
// The body itself lives in a pull iterator: next advances it to its next
// suspension point, stop unwinds it through its deferred cleanups.
type frame struct {
	exec     Executor
	canceled *cancelState
	next     func() (struct{}, bool)
	stop     func()
	cont     *Token // resumption token of the awaiting parent, nil for roots
	started  bool
	done     bool
	unwound  bool
	fault    error // detached frames only: rethrown at the terminal point
}

// A Token is a resumption token: an opaque reference to a suspended frame.
// Resume advances the frame synchronously at the call site.
// Awaiters receive one on suspension and must invoke it exactly once;
// resuming an already finished frame is harmless.
type Token struct {
	fr *frame
}

// Resume advances the suspended frame at the call site.
// If the frame's cancellation flag has been set in the meantime, the frame
// unwinds instead of producing a value.
func (t *Token) Resume() {
	t.fr.resume()
}

// Done reports whether the frame behind t has finished, normally or by
// unwinding.
func (t *Token) Done() bool {
	return t.fr.done
}

// Executor returns the executor instance the frame was started with.
func (t *Token) Executor() Executor {
	return t.fr.exec
}

func (t *Token) flag() *cancelState {
	return t.fr.canceled
}

func newFrame(run func(co *Coro)) (*frame, *Coro) {
	fr := &frame{canceled: new(cancelState)}
	co := &Coro{fr: fr}
	co.tok = &Token{fr: fr}
	fr.next, fr.stop = iter.Pull(func(yield func(struct{}) bool) {
		co.yield = yield
		run(co)
	})
	return fr, co
}

func (fr *frame) resume() {
	if fr.done {
		return
	}
	if fr.canceled.requested {
		fr.unwind()
		return
	}
	if _, ok := fr.next(); ok {
		return // suspended again; the new awaiter holds the token
	}
	fr.complete()
}

// unwind runs the body's deferred cleanups and retires the frame.
// If the body never started, this only releases the iterator.
func (fr *frame) unwind() {
	if fr.done {
		return
	}
	fr.unwound = true
	fr.stop()
	fr.complete()
}

func (fr *frame) complete() {
	fr.done = true
	if obs := observer; obs != nil && fr.started {
		obs.FrameFinished(fr.unwound || fr.canceled.requested)
	}
	if c := fr.cont; c != nil {
		fr.cont = nil
		fr.exec.Execute(c.Resume)
	}
	if err := fr.fault; err != nil {
		fr.fault = nil
		panic(err)
	}
}
