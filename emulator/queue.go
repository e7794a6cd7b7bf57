package emulator

import (
	"errors"
	"sync"

	"github.com/creachadair/mds/queue"
	"github.com/halverson/nodewire"
)

const maxQueueDepth = 20

// ErrQueueClosed is reported by Deliver when an update arrives on a
// queue that has been closed.
var ErrQueueClosed = errors.New("subscription queue closed")

// NewQueue creates a buffered subscription endpoint. Pass it to
// [Emulator.Subscribe] and read updates from [Queue.Chan].
func NewQueue() *Queue {
	q := &Queue{
		updates:     make(chan *Update),
		wakePump:    make(chan struct{}, 1),
		stopPump:    make(chan struct{}),
		pumpStopped: make(chan struct{}),
	}
	go q.pump()
	return q
}

// A Queue is a [Handle] that buffers delivered updates and hands them
// to a consumer over a channel.
//
// The buffer is bounded. If the consumer falls behind, new updates
// are discarded and the most recent buffered update is flagged so the
// consumer can tell that a gap follows it.
type Queue struct {
	updates  chan *Update
	wakePump chan struct{}

	stopPump    chan struct{}
	pumpStopped chan struct{}

	mu    sync.Mutex
	queue queue.Queue[*Update]
}

// An Update is one subscribed value change.
type Update struct {
	nodewire.AnnotatedValue
	// Overflow reports that the queue discarded some updates that
	// followed this one, due to the consumer not draining delivered
	// updates fast enough.
	Overflow bool
}

// Deliver implements [Handle]. It buffers the update for the consumer
// and reports ErrQueueClosed after Close. A full buffer is not an
// error; the update is dropped and the gap is flagged on the last
// buffered update.
func (q *Queue) Deliver(av nodewire.AnnotatedValue) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	select {
	case <-q.pumpStopped:
		return ErrQueueClosed
	default:
	}

	if q.queue.Len() >= maxQueueDepth {
		last, _ := q.queue.Peek(-1)
		last.Overflow = true
		return nil
	}

	q.queue.Add(&Update{AnnotatedValue: av})
	if q.queue.Len() == 1 {
		select {
		case q.wakePump <- struct{}{}:
		default:
		}
	}
	return nil
}

// Chan returns the channel on which updates are delivered.
//
// The caller must drain this channel promptly, to avoid overflowing
// the Queue's buffer and losing updates. Updates lost to an overflow
// are indicated by the Overflow field of the [Update] that
// immediately precedes the discarded one(s).
func (q *Queue) Chan() <-chan *Update {
	return q.updates
}

// Close shuts down the queue. Buffered updates are discarded, the
// update channel is closed, and subsequent deliveries fail.
func (q *Queue) Close() {
	select {
	case <-q.pumpStopped:
		return
	default:
	}

	// wakePump stays open: a Deliver racing this Close may still try
	// to signal it, and the pump exits via stopPump regardless.
	close(q.stopPump)
	<-q.pumpStopped

	q.mu.Lock()
	defer q.mu.Unlock()
	q.queue.Clear()
}

func (q *Queue) pump() {
	defer close(q.pumpStopped)
	defer close(q.updates)
	for {
		up := func() *Update {
			q.mu.Lock()
			defer q.mu.Unlock()
			ret, _ := q.queue.Pop()
			return ret
		}()
		if up == nil {
			select {
			case <-q.stopPump:
				return
			case <-q.wakePump:
				continue
			}
		}
		select {
		case q.updates <- up:
		case <-q.stopPump:
			return
		}
	}
}
