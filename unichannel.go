package cotask

import (
	"sync/atomic"
	"weak"
)

// A Unichannel is a single-producer-side, multi-consumer asynchronous FIFO.
// The receiver side owns the channel; producers hold weak references and
// find out through [Producer.Send] when it is gone.
//
// Items are delivered in subscription order: the i-th consumer to reach its
// suspension point receives the i-th item. The internal item and consumer
// queues are never both non-empty.
//
// All queue mutations happen on the channel's executor, so delivery is
// serialised per channel even when producers run on other goroutines
// (subject to the executor's own thread safety).
type Unichannel[T any] struct {
	exec      Executor
	items     []T
	consumers []*Token
	closed    atomic.Bool
}

// NewUnichannel creates a channel bound to exec. A nil exec means
// [InlineExecutor], in which case submission happens at the Send call site.
func NewUnichannel[T any](exec Executor) *Unichannel[T] {
	if exec == nil {
		exec = InlineExecutor{}
	}
	return &Unichannel[T]{exec: exec}
}

// Next produces a task that resolves to the next item. The consumer takes
// its place in the queue when the task reaches its suspension point, not
// when Next is called.
func (ch *Unichannel[T]) Next() *Handle[T] {
	return New(func(co *Coro) (T, error) {
		return Await[T](co, consumerAwaiter[T]{ch})
	})
}

// Close kills the channel: every waiting consumer is resumed, observes the
// empty item queue and reports [ErrCanceled], unwinding its task. Buffered
// unclaimed items are discarded. Subsequent sends return false.
// Close is idempotent.
func (ch *Unichannel[T]) Close() {
	if ch.closed.Swap(true) {
		return
	}
	consumers := ch.consumers
	ch.consumers = nil
	clear(ch.items)
	ch.items = nil
	for _, t := range consumers {
		t.Resume()
	}
}

func (ch *Unichannel[T]) submit(item T) {
	if ch.closed.Load() {
		return
	}
	ch.items = append(ch.items, item)
	if obs := observer; obs != nil {
		obs.ItemSent()
	}
	// Pop and resume consumers until one of them takes the item or the
	// queue is exhausted. A canceled consumer resumes harmlessly without
	// consuming, so the item falls through to the next subscriber.
	for len(ch.consumers) != 0 && len(ch.items) != 0 {
		t := ch.consumers[0]
		ch.consumers = ch.consumers[1:]
		t.Resume()
	}
}

type consumerAwaiter[T any] struct {
	ch *Unichannel[T]
}

func (a consumerAwaiter[T]) Ready() bool {
	return len(a.ch.items) != 0 || a.ch.closed.Load()
}

func (a consumerAwaiter[T]) Suspend(t *Token) bool {
	a.ch.consumers = append(a.ch.consumers, t)
	return true
}

func (a consumerAwaiter[T]) Resume() (T, error) {
	ch := a.ch
	if len(ch.items) == 0 {
		var zero T
		return zero, ErrCanceled
	}
	item := ch.items[0]
	ch.items = ch.items[1:]
	if obs := observer; obs != nil {
		obs.ItemDelivered()
	}
	return item, nil
}

// A Producer is the sending port of a [Unichannel]. It holds a weak
// reference: producers never keep a channel alive.
type Producer[T any] struct {
	ch   weak.Pointer[Unichannel[T]]
	exec Executor
}

// NewProducer creates a producer for ch.
func NewProducer[T any](ch *Unichannel[T]) *Producer[T] {
	return &Producer[T]{ch: weak.Make(ch), exec: ch.exec}
}

// Send submits item for delivery. It reports false when the channel has
// been closed or collected; the item is then dropped. Submission goes
// through the channel's executor: the item is appended and, if a consumer
// is waiting, the head consumer is resumed.
func (p *Producer[T]) Send(item T) bool {
	ch := p.ch.Value()
	if ch == nil || ch.closed.Load() {
		return false
	}
	p.exec.Execute(func() {
		ch.submit(item)
	})
	return true
}
