package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"resource-booking/internal/domain/event"
)

// Handler consumes one lifecycle event. A returned error is logged and
// swallowed; it never reaches the publisher.
type Handler func(ctx context.Context, ev event.LifecycleEvent) error

// Bus is an in-process publish/subscribe registry keyed by event kind.
// Delivery is fire-and-forget and at-most-once per subscriber per publish:
// each subscriber runs in its own goroutine with panic isolation, so a
// failing subscriber cannot block or fail the publisher or its peers.
// Events do not survive a process restart; durability would require an
// outbox row written in the same transaction as the booking.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[event.Kind][]Handler
	wg          sync.WaitGroup
	logger      *slog.Logger
}

func New(logger *slog.Logger) *Bus {
	return &Bus{
		subscribers: make(map[event.Kind][]Handler),
		logger:      logger,
	}
}

func (b *Bus) Subscribe(kind event.Kind, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[kind] = append(b.subscribers[kind], h)
}

// Publish dispatches ev to every subscriber of its kind and returns
// immediately. The context carries request-scoped values only; delivery has
// no cancellation or timeout semantics.
func (b *Bus) Publish(ctx context.Context, ev event.LifecycleEvent) {
	b.mu.RLock()
	handlers := b.subscribers[ev.Kind()]
	b.mu.RUnlock()

	for _, h := range handlers {
		b.wg.Add(1)
		go b.deliver(ctx, h, ev)
	}
}

func (b *Bus) deliver(ctx context.Context, h Handler, ev event.LifecycleEvent) {
	defer b.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event subscriber panicked",
				"kind", string(ev.Kind()),
				"booking_id", ev.BookingID().String(),
				"panic", r)
		}
	}()

	if err := h(ctx, ev); err != nil {
		b.logger.Warn("event subscriber failed",
			"kind", string(ev.Kind()),
			"booking_id", ev.BookingID().String(),
			"error", err.Error())
	}
}

// Drain waits for in-flight deliveries, used by shutdown hooks and tests.
func (b *Bus) Drain() {
	b.wg.Wait()
}
