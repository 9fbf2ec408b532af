package cotask

import "errors"

// Detach starts an ownerless, eagerly running computation on the
// process-wide default executor. See [DetachOn].
func Detach(body func(co *Coro) error) {
	DetachOn(nil, body)
}

// DetachOn starts an ownerless computation: the body executes synchronously
// at the call site up to its first suspension point, owns its own lifetime
// and cannot be canceled from outside. It bridges synchronous code into the
// task world; tasks awaited inside it run on exec (nil means the
// process-wide default executor, see [SetDefaultExecutor]).
//
// A detached body that finishes with an error other than [ErrCanceled] has
// no awaiting parent to deliver it to; that is a programmer error and the
// terminal point panics with it. [ErrCanceled] unwinds silently.
func DetachOn(exec Executor, body func(co *Coro) error) {
	if exec == nil {
		exec = defaultExec
	}
	fr, _ := newFrame(func(co *Coro) {
		defer func() {
			if v := recover(); v != nil {
				fr := co.fr
				fr.fault = newPanicError(v)
			}
		}()
		if err := body(co); err != nil && !errors.Is(err, ErrCanceled) {
			co.fr.fault = err
		}
	})
	fr.exec = exec
	fr.started = true
	if obs := observer; obs != nil {
		obs.FrameStarted()
	}
	fr.resume()
}
