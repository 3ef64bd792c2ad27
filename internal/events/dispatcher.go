package events

import (
	"sync"

	"go.uber.org/zap"
)

// Dispatcher fans events out to subscribers on a background worker. It is
// constructor-injected, never a package-level singleton, so several
// instances can run side by side and be shut down independently.
type Dispatcher struct {
	log         *zap.Logger
	subscribers []Subscriber
	queue       chan Event

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(log *zap.Logger, subscribers ...Subscriber) *Dispatcher {
	d := &Dispatcher{
		log:         log,
		subscribers: subscribers,
		queue:       make(chan Event, 100),
		done:        make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		for _, sub := range d.subscribers {
			if err := sub.Handle(ev); err != nil {
				d.log.Warn("event subscriber failed",
					zap.String("type", ev.Type),
					zap.Uint("provider_id", ev.ProviderID),
					zap.Error(err),
				)
			}
		}
	}
}

// Dispatch enqueues fire-and-forget. A full queue drops the event rather
// than block the request that emitted it.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("event queue full, dropping event", zap.String("type", ev.Type))
	}
}

// Close stops the worker after draining queued events.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	<-d.done
}
