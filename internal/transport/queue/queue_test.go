package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kerolus77/reminder-app/internal/domain"
	"github.com/kerolus77/reminder-app/internal/testutil"
)

func TestQueue_PushPopFIFO(t *testing.T) {
	q := New()
	ctx := testutil.TestContext(t)

	for i := 0; i < 5; i++ {
		q.Push(domain.NotificationEvent{Title: fmt.Sprintf("event-%d", i)})
	}

	for i := 0; i < 5; i++ {
		event, ok := q.Pop(ctx, time.Second)
		if !ok {
			t.Fatalf("Pop %d returned no event", i)
		}
		want := fmt.Sprintf("event-%d", i)
		if event.Title != want {
			t.Errorf("Pop %d = %q, want %q (FIFO order violated)", i, event.Title, want)
		}
	}
}

func TestQueue_PopTimeout(t *testing.T) {
	q := New()

	start := time.Now()
	_, ok := q.Pop(context.Background(), 50*time.Millisecond)
	elapsed := time.Since(start)

	if ok {
		t.Error("Pop on empty queue should time out")
	}
	if elapsed < 40*time.Millisecond {
		t.Errorf("Pop returned after %s, expected to wait for the timeout", elapsed)
	}
}

func TestQueue_PopContextCancelled(t *testing.T) {
	q := New()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan bool, 1)
	go func() {
		_, ok := q.Pop(ctx, time.Minute)
		done <- ok
	}()

	cancel()

	select {
	case ok := <-done:
		if ok {
			t.Error("Pop should report no event after cancellation")
		}
	case <-time.After(time.Second):
		t.Fatal("Pop did not observe context cancellation")
	}
}

func TestQueue_PopUnblocksOnPush(t *testing.T) {
	q := New()

	done := make(chan domain.NotificationEvent, 1)
	go func() {
		event, ok := q.Pop(context.Background(), 5*time.Second)
		if ok {
			done <- event
		}
	}()

	time.Sleep(20 * time.Millisecond)
	q.Push(domain.NotificationEvent{Title: "wakeup"})

	select {
	case event := <-done:
		if event.Title != "wakeup" {
			t.Errorf("got %q, want %q", event.Title, "wakeup")
		}
	case <-time.After(time.Second):
		t.Fatal("blocked Pop was not woken by Push")
	}
}

func TestQueue_ManyProducersSingleConsumer(t *testing.T) {
	q := New()
	ctx := testutil.TestContext(t)

	const producers = 10
	const perProducer = 100

	var wg sync.WaitGroup
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				q.Push(domain.NotificationEvent{Title: "concurrent"})
			}
		}()
	}
	wg.Wait()

	received := 0
	for {
		if _, ok := q.Pop(ctx, 100*time.Millisecond); !ok {
			break
		}
		received++
	}

	if received != producers*perProducer {
		t.Errorf("received %d events, want %d", received, producers*perProducer)
	}
	if q.Len() != 0 {
		t.Errorf("queue should be empty, has %d", q.Len())
	}
}

func TestQueue_TryPopEmpty(t *testing.T) {
	q := New()
	if _, ok := q.TryPop(); ok {
		t.Error("TryPop on empty queue should report no event")
	}
}

// mockMetrics tracks queue metrics calls.
type mockMetrics struct {
	mu       sync.Mutex
	enqueued int
	depths   []int
}

func (m *mockMetrics) QueueDepthUpdate(depth int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.depths = append(m.depths, depth)
}

func (m *mockMetrics) NotificationEnqueued() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enqueued++
}

func TestQueue_Metrics(t *testing.T) {
	sink := &mockMetrics{}
	q := New(WithMetrics(sink))

	q.Push(domain.NotificationEvent{Title: "a"})
	q.Push(domain.NotificationEvent{Title: "b"})
	q.TryPop()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if sink.enqueued != 2 {
		t.Errorf("enqueued = %d, want 2", sink.enqueued)
	}
	if len(sink.depths) != 3 {
		t.Errorf("expected 3 depth updates, got %d", len(sink.depths))
	}
}
