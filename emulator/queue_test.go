package emulator

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/halverson/nodewire"
)

func TestQueueDeliver(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	want := nodewire.AnnotatedValue{
		Value: nodewire.Int64(7),
		Path:  "/dev1234/demods/0/enable",
	}
	if err := q.Deliver(want); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	up := <-q.Chan()
	if diff := cmp.Diff(up.Value, want.Value); diff != "" {
		t.Errorf("wrong update value (-got+want):\n%s", diff)
	}
	if got := up.Path; got != want.Path {
		t.Errorf("wrong update path: got %q, want %q", got, want.Path)
	}
	if up.Overflow {
		t.Error("got Overflow on a lone update, want none")
	}
}

func TestQueueOverflow(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	// Flood the queue without draining it. The consumer-side buffer is
	// bounded, so most of these must be discarded, with the gap marked
	// on the last update that survived.
	const total = 3 * maxQueueDepth
	for i := 0; i < total; i++ {
		if err := q.Deliver(nodewire.AnnotatedValue{
			Value: nodewire.Int64(int64(i)),
			Path:  "/dev1234/demods/0/rate",
		}); err != nil {
			t.Fatalf("Deliver %d: %v", i, err)
		}
	}

	var got int
	sawOverflow := false
	for up := range q.Chan() {
		got++
		if up.Overflow {
			sawOverflow = true
			break
		}
	}
	if !sawOverflow {
		t.Error("drained the queue without an Overflow mark")
	}
	// At most the buffer plus the one update in flight survive.
	if got > maxQueueDepth+1 {
		t.Errorf("received %d updates, want at most %d", got, maxQueueDepth+1)
	}
}

func TestQueueClose(t *testing.T) {
	q := NewQueue()
	q.Close()
	q.Close() // idempotent

	if err := q.Deliver(nodewire.AnnotatedValue{
		Value: nodewire.Int64(1),
		Path:  "/dev1234/demods/0/rate",
	}); !errors.Is(err, ErrQueueClosed) {
		t.Errorf("Deliver after Close: got %v, want ErrQueueClosed", err)
	}

	if _, ok := <-q.Chan(); ok {
		t.Error("update channel still open after Close")
	}
}

func TestQueueCloseDuringDeliver(t *testing.T) {
	// Closing the queue while producers are mid-Deliver must never
	// panic; late deliveries either land in the buffer or report
	// ErrQueueClosed.
	for i := 0; i < 50; i++ {
		q := NewQueue()
		var wg sync.WaitGroup
		for p := 0; p < 4; p++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					err := q.Deliver(nodewire.AnnotatedValue{
						Value: nodewire.Int64(int64(j)),
						Path:  "/dev1234/demods/0/rate",
					})
					if err != nil && !errors.Is(err, ErrQueueClosed) {
						t.Errorf("Deliver: %v", err)
						return
					}
				}
			}()
		}
		q.Close()
		wg.Wait()
	}
}

func TestQueueCloseUnblocksConsumer(t *testing.T) {
	q := NewQueue()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range q.Chan() {
		}
	}()
	q.Close()
	<-done
}
