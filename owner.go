package cotask

// An Owner is a group handle: it keeps the handles of the tasks started
// through it and cancels all of them when closed. Root tasks run on the
// owner's executor, each in its own ownership tree; nested tasks join the
// tree of the task that awaited them.
type Owner struct {
	exec   Executor
	tasks  []Task
	closed bool
}

// NewOwner creates a group bound to exec. A nil exec means
// [InlineExecutor].
func NewOwner(exec Executor) *Owner {
	if exec == nil {
		exec = InlineExecutor{}
	}
	return &Owner{exec: exec}
}

// StartRoot adopts t and starts it on the owner's executor. The handle is
// retained until the owner is closed.
//
// StartRoot panics on a closed owner; t is canceled before the panic.
func (o *Owner) StartRoot(t Task) {
	if o.closed {
		t.Cancel()
		panic("cotask: StartRoot on a closed Owner")
	}
	o.tasks = append(o.tasks, t)
	t.start(o.exec, nil)
}

// StartNested returns an awaiter. Awaited inside a task belonging to this
// group, it starts t with the awaiting frame's executor and cancellation
// flag and resumes immediately with a unit result; t keeps running
// concurrently and shares the cancellation fate of its parent. If the
// owner dies first, t is canceled before its parent resumes.
func (o *Owner) StartNested(t Task) Awaiter[Unit] {
	return &nestedStart{o: o, t: t}
}

type nestedStart struct {
	o *Owner
	t Task
}

func (a *nestedStart) Ready() bool {
	return false
}

func (a *nestedStart) Suspend(tok *Token) bool {
	if a.o.closed {
		panic("cotask: StartNested on a closed Owner")
	}
	a.o.tasks = append(a.o.tasks, a.t)
	a.t.start(tok.Executor(), tok.flag())
	return false
}

func (a *nestedStart) Resume() (Unit, error) {
	return Unit{}, nil
}

// AwaitNested is the value-forwarding variant of [Owner.StartNested]: it
// starts h in o's group with the enclosing frame's executor and
// cancellation flag, suspends until h completes and forwards its result.
func AwaitNested[T any](co *Coro, o *Owner, h *Handle[T]) (T, error) {
	if o.closed {
		panic("cotask: AwaitNested on a closed Owner")
	}
	o.tasks = append(o.tasks, h)
	return h.Await(co)
}

// Close cancels every task the owner holds, newest first. Tasks suspended
// on external awaiters unwind on their next resume. Close is idempotent.
func (o *Owner) Close() {
	if o.closed {
		return
	}
	o.closed = true
	tasks := o.tasks
	o.tasks = nil
	for i := len(tasks) - 1; i >= 0; i-- {
		tasks[i].Cancel()
	}
}
