package wttp

import (
	"context"
	"sync"
	"sync/atomic"
)

// eventDispatcher delivers change events to a sink from one worker goroutine.
// Emitters hold mu for reading while they enqueue, so Close cannot close the
// queue under an in-flight send.
type eventDispatcher struct {
	sink       EventSink
	dropIfFull bool

	mu     sync.RWMutex
	queue  chan ChangeEvent
	closed bool

	stopped chan struct{}
	dropped atomic.Uint64
}

func newEventDispatcher(cfg EventsConfig, sink EventSink) *eventDispatcher {
	if !cfg.Enabled {
		return nil
	}
	if sink == nil {
		sink = NoOpSink{}
	}

	d := &eventDispatcher{
		sink:       sink,
		dropIfFull: cfg.DropIfFull,
		queue:      make(chan ChangeEvent, max(cfg.BufferSize, 1)),
		stopped:    make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *eventDispatcher) run() {
	defer close(d.stopped)
	for event := range d.queue {
		d.sink.Emit(context.Background(), event)
	}
}

// Emit queues event. With DropIfFull a full queue counts the event as
// dropped; otherwise Emit blocks until there is room or ctx ends.
func (d *eventDispatcher) Emit(ctx context.Context, event ChangeEvent) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.dropped.Add(1)
		return
	}

	if d.dropIfFull {
		select {
		case d.queue <- event:
		default:
			d.dropped.Add(1)
		}
		return
	}

	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case d.queue <- event:
	case <-ctx.Done():
		d.dropped.Add(1)
	}
}

// Close stops accepting events, waits for the worker to hand every queued
// event to the sink and then returns. It is safe to call more than once.
func (d *eventDispatcher) Close() {
	if d == nil {
		return
	}

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.stopped
}

func (d *eventDispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
