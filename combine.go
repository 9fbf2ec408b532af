package cotask

import "errors"

// Unit is the placeholder result of tasks that produce no value.
type Unit struct{}

// Picked is the result of [AnyOf]: the position of the first child task to
// complete and the value it produced. Children of type Handle[Unit]
// contribute a [Unit] value.
type Picked struct {
	Index int
	Value any
}

// AnyOf races the given tasks: each child is started with the enclosing
// frame's executor and cancellation flag, and the first one to complete
// determines the result. Later completions are ignored; their frames still
// run to completion. A child failing with an error other than [ErrCanceled]
// completes the race with that error.
//
// Canceling the ownership tree unwinds every in-flight child at its next
// resume; no winner is reported and the combinator frame is reclaimed once
// the last child has unwound.
//
// When passed no tasks, AnyOf returns a task that never completes.
func AnyOf(tasks ...Task) *Handle[Picked] {
	return New(func(co *Coro) (Picked, error) {
		var (
			ret     *Picked
			fail    error
			cont    *Token
			pending = len(tasks)
		)

		wake := func() {
			if cont != nil {
				cont.Resume()
			}
		}

		children := make([]*Handle[Unit], len(tasks))
		for i, t := range tasks {
			children[i] = New(func(wco *Coro) (Unit, error) {
				v, err := t.awaitAny(wco)
				pending--
				if err != nil {
					if !errors.Is(err, ErrCanceled) && ret == nil && fail == nil {
						fail = err
						wake()
					} else if pending == 0 && ret == nil && fail == nil {
						// Last child unwound with no winner: release
						// the combinator so it can unwind too.
						wake()
					}
					return Unit{}, err
				}
				if ret == nil && fail == nil {
					ret = &Picked{Index: i, Value: v}
					wake()
				}
				return Unit{}, nil
			})
		}

		tok, err := Await[*Token](co, &currentToken{})
		if err != nil {
			return Picked{}, err
		}
		for _, child := range children {
			child.start(tok.Executor(), tok.flag())
		}

		if ret == nil && fail == nil {
			cont = tok
			if _, err := Await[Unit](co, park{}); err != nil {
				return Picked{}, err
			}
		}
		if fail != nil {
			return Picked{}, fail
		}
		if ret == nil {
			return Picked{}, ErrCanceled
		}
		return *ret, nil
	})
}

// AllOf joins the given tasks: each child is started with the enclosing
// frame's executor and cancellation flag, every child writes its own slot,
// and the last one to complete resumes the combinator. The result holds one
// value per child, in argument order, with [Unit] standing in for valueless
// children. A child failing with an error other than [ErrCanceled]
// completes the join early with that error.
//
// Canceling the ownership tree unwinds every in-flight child at its next
// resume; no result is produced.
//
// When passed no tasks, AllOf completes immediately with an empty result.
func AllOf(tasks ...Task) *Handle[[]any] {
	return New(func(co *Coro) ([]any, error) {
		var (
			fail    error
			cont    *Token
			filled  int
			pending = len(tasks)
			results = make([]any, len(tasks))
		)

		wake := func() {
			if cont != nil {
				cont.Resume()
			}
		}

		children := make([]*Handle[Unit], len(tasks))
		for i, t := range tasks {
			children[i] = New(func(wco *Coro) (Unit, error) {
				v, err := t.awaitAny(wco)
				pending--
				if err != nil {
					if !errors.Is(err, ErrCanceled) && fail == nil {
						fail = err
						wake()
					} else if pending == 0 && filled < len(tasks) && fail == nil {
						wake()
					}
					return Unit{}, err
				}
				results[i] = v
				filled++
				if filled == len(tasks) {
					wake()
				}
				return Unit{}, nil
			})
		}

		tok, err := Await[*Token](co, &currentToken{})
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			child.start(tok.Executor(), tok.flag())
		}

		if filled < len(tasks) && fail == nil {
			cont = tok
			if _, err := Await[Unit](co, park{}); err != nil {
				return nil, err
			}
		}
		if fail != nil {
			return nil, fail
		}
		if filled < len(tasks) {
			return nil, ErrCanceled
		}
		return results, nil
	})
}
