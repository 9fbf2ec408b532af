package cotask

// A WaitGroup is a counter with an asynchronous Wait. Calling Add or Done
// updates the counter and, when it becomes zero, resumes every task
// waiting on the group.
//
// A WaitGroup must not be shared by more than one executor.
type WaitGroup struct {
	n       int
	waiters []*Token
}

// Add adds delta, which may be negative, to the counter. If the counter
// becomes zero, Add resumes every waiting task. If the counter goes
// negative, Add panics.
func (wg *WaitGroup) Add(delta int) {
	wg.n += delta
	if wg.n < 0 {
		panic("cotask: negative WaitGroup counter")
	}
	if wg.n == 0 && delta != 0 {
		waiters := wg.waiters
		wg.waiters = nil
		for _, t := range waiters {
			t.Resume()
		}
	}
}

// Done decrements the counter by one.
func (wg *WaitGroup) Done() {
	wg.Add(-1)
}

// Wait returns a task that suspends until the counter becomes zero, and
// then ends. A zero counter completes it without suspending.
func (wg *WaitGroup) Wait() *Handle[Unit] {
	return New(func(co *Coro) (Unit, error) {
		return Await[Unit](co, wgAwaiter{wg})
	})
}

type wgAwaiter struct {
	wg *WaitGroup
}

func (a wgAwaiter) Ready() bool {
	return a.wg.n == 0
}

func (a wgAwaiter) Suspend(t *Token) bool {
	a.wg.waiters = append(a.wg.waiters, t)
	return true
}

func (a wgAwaiter) Resume() (Unit, error) {
	return Unit{}, nil
}
