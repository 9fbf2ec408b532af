package cotask

// A Handle is the owning handle to a lazily started, single-result
// asynchronous computation. The frame behind it is created suspended;
// nothing runs until [Handle.Run] schedules the initial resume, or until
// the handle is awaited from inside another task.
//
// A handle is single-owner. Releasing it with [Handle.Cancel] sets the
// cancellation flag of its ownership tree before anything else: descendants
// observe the flag at their next resume and unwind through their deferred
// cleanups.
type Handle[T any] struct {
	fr      *frame
	res     *result[T]
	dropped bool
}

type result[T any] struct {
	value T
	err   error
	taken bool
}

// Task is the type-erased view of a [Handle], accepted by [AnyOf], [AllOf]
// and [Owner]. Only handles implement it.
type Task interface {
	// Alive reports whether the frame exists and has neither finished nor
	// been released.
	Alive() bool
	// Cancel releases the handle, canceling the computation (see
	// [Handle.Cancel]).
	Cancel()

	start(exec Executor, flag *cancelState)
	awaitAny(co *Coro) (any, error)
}

// New creates a task from body. The body does not run until the returned
// handle is started.
//
// The body must treat a non-nil error from any suspension point as final:
// return it without suspending again. Returning [ErrCanceled] is the
// cancellation unwind; any other error propagates to the awaiting parent.
func New[T any](body func(co *Coro) (T, error)) *Handle[T] {
	res := new(result[T])
	fr, _ := newFrame(func(co *Coro) {
		defer func() {
			if v := recover(); v != nil {
				res.err = newPanicError(v)
			}
		}()
		res.value, res.err = body(co)
	})
	return &Handle[T]{fr: fr, res: res}
}

// Run starts the task: the initial resume is submitted to exec and the body
// first executes when exec dispatches it. A nil exec means [InlineExecutor],
// which resumes the body directly at the call site.
//
// Run panics if the handle is empty or the task has already been started.
func (h *Handle[T]) Run(exec Executor) {
	h.start(exec, nil)
}

func (h *Handle[T]) start(exec Executor, flag *cancelState) {
	fr := h.fr
	if fr == nil || h.dropped {
		panic("cotask: Run on an empty task handle")
	}
	if fr.started || fr.done {
		panic("cotask: task already started")
	}
	if exec == nil {
		exec = InlineExecutor{}
	}
	fr.exec = exec
	if flag != nil {
		fr.canceled = flag
	}
	fr.started = true
	if obs := observer; obs != nil {
		obs.FrameStarted()
	}
	exec.Execute(fr.resume)
}

// Alive reports whether the handle still refers to a frame that has neither
// finished nor been released. A freshly constructed task is alive; a
// completed, unwound or canceled one is not.
func (h *Handle[T]) Alive() bool {
	return h != nil && h.fr != nil && !h.dropped && !h.fr.done
}

// Cancel releases the handle. The tree's cancellation flag is set first.
// A never-started frame is reclaimed immediately, a completed one already
// was; a suspended frame unwinds when its pending resume arrives.
// Cancel is idempotent.
func (h *Handle[T]) Cancel() {
	fr := h.fr
	if fr == nil || h.dropped {
		return
	}
	h.dropped = true
	fr.canceled.requested = true
	if !fr.started {
		fr.unwind()
	}
}

// Await is the nested-task handshake, used from inside another task's body:
// the inner task inherits the enclosing frame's executor and cancellation
// flag, the enclosing frame's token is installed as the inner task's
// continuation, and the body suspends until the inner task completes unless
// it already completed synchronously. The result is delivered by move;
// a canceled tree yields [ErrCanceled] instead.
//
// Await panics if h is empty or already started, matching [Handle.Run].
func (h *Handle[T]) Await(co *Coro) (T, error) {
	if h == nil || h.fr == nil || h.dropped {
		panic("cotask: awaiting an empty task handle")
	}
	h.start(co.fr.exec, co.fr.canceled)
	return Await[T](co, handleAwaiter[T]{h})
}

func (h *Handle[T]) awaitAny(co *Coro) (any, error) {
	v, err := h.Await(co)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (h *Handle[T]) take() (T, error) {
	r := h.res
	if r.taken {
		panic("cotask: task result consumed twice")
	}
	r.taken = true
	return r.value, r.err
}

type handleAwaiter[T any] struct {
	h *Handle[T]
}

func (a handleAwaiter[T]) Ready() bool {
	return a.h.fr.done
}

func (a handleAwaiter[T]) Suspend(t *Token) bool {
	a.h.fr.cont = t
	return true
}

func (a handleAwaiter[T]) Resume() (T, error) {
	return a.h.take()
}
