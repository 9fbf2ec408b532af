package cotask

import "slices"

// Semaphore bounds asynchronous access to a resource. Callers request
// access with a given weight; waiters are served in FIFO order.
//
// Note that a Semaphore does not provide back pressure for starting a lot
// of tasks; it only orders the ones already running.
//
// A Semaphore must not be shared by more than one executor.
type Semaphore struct {
	size    int64
	cur     int64
	waiters []*semWaiter
}

// NewSemaphore creates a weighted semaphore with the given maximum
// combined weight.
func NewSemaphore(n int64) *Semaphore {
	return &Semaphore{size: n}
}

// Acquire returns a task that suspends until a weight of n is acquired
// from the semaphore, and then ends. Acquiring more than the semaphore's
// size suspends forever. A canceled waiter gives up its place in the queue;
// weight granted to it on the way out is returned.
func (s *Semaphore) Acquire(n int64) *Handle[Unit] {
	if n < 0 {
		panic("cotask: negative semaphore weight")
	}
	return New(func(co *Coro) (Unit, error) {
		w := &semWaiter{s: s, n: n}
		_, err := Await[Unit](co, w)
		if err != nil {
			if w.granted {
				s.Release(n)
			} else {
				s.removeWaiter(w)
			}
			return Unit{}, err
		}
		return Unit{}, nil
	})
}

// Release returns a weight of n to the semaphore and hands it to the
// longest waiting acquirers it satisfies.
//
// One should only call this method from a task body or from the
// semaphore's executor context.
func (s *Semaphore) Release(n int64) {
	if n < 0 {
		panic("cotask: negative semaphore weight")
	}
	s.cur -= n
	if s.cur < 0 {
		panic("cotask: semaphore released more than held")
	}
	s.notifyWaiters()
}

func (s *Semaphore) notifyWaiters() {
	for len(s.waiters) != 0 {
		w := s.waiters[0]
		if w.tok.Done() {
			// The waiting frame already unwound; its queue entry is stale.
			s.waiters = s.waiters[1:]
			continue
		}
		if s.size-s.cur < w.n {
			break
		}
		s.cur += w.n
		w.granted = true
		s.waiters = s.waiters[1:]
		w.tok.Resume()
	}
}

func (s *Semaphore) removeWaiter(w *semWaiter) {
	if i := slices.Index(s.waiters, w); i != -1 {
		s.waiters = slices.Delete(s.waiters, i, i+1)
	}
}

type semWaiter struct {
	s       *Semaphore
	n       int64
	tok     *Token
	granted bool
}

func (w *semWaiter) Ready() bool {
	if len(w.s.waiters) != 0 || w.s.size-w.s.cur < w.n {
		return false
	}
	w.s.cur += w.n
	w.granted = true
	return true
}

func (w *semWaiter) Suspend(t *Token) bool {
	w.tok = t
	w.s.waiters = append(w.s.waiters, w)
	return true
}

func (w *semWaiter) Resume() (Unit, error) {
	return Unit{}, nil
}
