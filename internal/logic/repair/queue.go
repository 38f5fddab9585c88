package repair

import (
	"context"
	"sync"
)

// OfferResult is the outcome of a non-blocking enqueue.
type OfferResult int

const (
	OfferAccepted OfferResult = iota
	OfferFull
	OfferClosed
)

func (r OfferResult) String() string {
	switch r {
	case OfferAccepted:
		return "accepted"
	case OfferFull:
		return "full"
	case OfferClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Queue is a bounded single-producer single-consumer FIFO of remediation targets.
// Offer never blocks: a full queue rejects the target.
type Queue struct {
	mu           sync.Mutex
	items        chan RemediationTarget
	senderClosed bool
	receiverGone chan struct{}
	closeOnce    sync.Once
}

// NewQueue creates a queue holding at most capacity targets.
func NewQueue(capacity int) *Queue {
	return &Queue{
		items:        make(chan RemediationTarget, capacity),
		receiverGone: make(chan struct{}),
	}
}

// Offer enqueues the target without blocking.
func (q *Queue) Offer(target RemediationTarget) OfferResult {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.senderClosed {
		return OfferClosed
	}

	select {
	case <-q.receiverGone:
		return OfferClosed
	default:
	}

	select {
	case q.items <- target:
		return OfferAccepted
	default:
		return OfferFull
	}
}

// Receive blocks until a target is available. It returns false once the sender
// closed the queue and every target was drained, or when ctx is done.
func (q *Queue) Receive(ctx context.Context) (RemediationTarget, bool) {
	select {
	case <-ctx.Done():
		return RemediationTarget{}, false
	case target, ok := <-q.items:
		return target, ok
	}
}

// CloseSender is called by the producer when it stops. Queued targets can still be received.
func (q *Queue) CloseSender() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.senderClosed {
		return
	}

	q.senderClosed = true
	close(q.items)
}

// CloseReceiver is called by the consumer when it stops. Subsequent offers report OfferClosed.
func (q *Queue) CloseReceiver() {
	q.closeOnce.Do(func() {
		close(q.receiverGone)
	})
}

// Len returns the number of queued targets.
func (q *Queue) Len() int {
	return len(q.items)
}

// Cap returns the queue capacity.
func (q *Queue) Cap() int {
	return cap(q.items)
}
