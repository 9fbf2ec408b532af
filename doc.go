// Package cotask is a small structured concurrency runtime for event-loop
// code: lazily started, owner-cancelable tasks with deterministic lifetime
// guarantees, built without spawning a goroutine per unit of concurrency.
//
// Since Go has already done a great job in bringing green threads into
// life, this library is not about forking work out; it is about owning it.
// A [Handle] is created suspended, runs only when told to, and destroying
// the handle synchronously condemns the whole tree of computations started
// under it: every descendant unwinds through its deferred cleanups at its
// next resume, and no result is delivered.
//
// # Tasks and suspension points
//
// A task body is an ordinary sequential function taking a [Coro]:
//
//	greet := cotask.New(func(co *cotask.Coro) (string, error) {
//		v, err := inner(co).Await(co)
//		if err != nil {
//			return "", err
//		}
//		return "Hello " + v, nil
//	})
//	greet.Run(nil)
//
// Every call to [Await] or [Handle.Await] is a suspension point. On
// suspension the frame hands out a single resumption [Token]; resuming the
// token advances the frame at the call site. On resume the suspension
// point first consults the tree's cancellation flag: once an owning handle
// has been released, every suspension point in the tree reports
// [ErrCanceled] instead of a value, and the body is expected to return
// early, which runs its defers. That early return is the unwind; there is
// no other error machinery in the core.
//
// # Executors
//
// Tasks do not know how to schedule themselves. An [Executor] is anything
// with an Execute(func()) method that runs work later in FIFO order; the
// executor instance is captured when a task starts and every continuation
// of that task is dispatched through it. Nested tasks inherit the
// executor of the task that awaits them, so one tree stays on one
// dispatcher. [InlineExecutor] chains everything eagerly at the call
// site; [LoopExecutor] is a hand-cranked queue, which makes scheduling in
// tests fully deterministic; [GoroutineExecutor] funnels work from many
// goroutines onto one.
//
// # Composition
//
// [AnyOf] races tasks and yields the first result, [AllOf] joins them and
// yields all results, [Owner] holds a group of tasks and cancels the
// stragglers when closed, and [Unichannel] moves values from producer
// goroutines into waiting tasks in subscription order. All of them follow
// the same rule: children share the executor and the cancellation flag of
// the frame that awaits them.
//
// [Detach] bridges synchronous code into the task world: a detached body
// runs eagerly to its first suspension and owns its own lifetime.
//
// # Single-threaded by design
//
// One frame is never advanced from two places at once, and the core takes
// no locks around frame state. Everything belonging to one executor must
// stay on that executor; [Producer.Send] is the one door designed to be
// knocked on from other goroutines, and it goes through the channel's
// executor for exactly that reason.
package cotask
