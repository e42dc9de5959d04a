package eventbus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event is anything published on the bus.
type Event interface {
	Name() string
}

// ChangeEvent reports a write to one table.
type ChangeEvent interface {
	Event
	Table() string
}

type Listener func(ctx context.Context, event Event) error

type Bus struct {
	listeners map[string][]Listener
	mu        sync.RWMutex
	logger    *zap.Logger
	timeout   time.Duration
}

func New(logger *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
		logger:    logger,
		timeout:   time.Minute,
	}
}

func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// Publish runs every listener of the event in its own goroutine with a bounded context.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	listeners := append([]Listener(nil), b.listeners[event.Name()]...)
	b.mu.RUnlock()

	for _, listener := range listeners {
		go func(l Listener) {
			ctxWithTimeout, cancel := context.WithTimeout(context.Background(), b.timeout)
			defer cancel()

			if err := l(ctxWithTimeout, event); err != nil {
				b.logger.Error("erro no listener de evento",
					zap.String("event", event.Name()),
					zap.Error(err),
				)
			}
		}(listener)
	}
}

// ChangeTopic is the event name used for writes to table.
func ChangeTopic(table string) string {
	return "table.changed:" + table
}

// OnChange subscribes callback to every change event of table.
func OnChange(b *Bus, table string, callback func(ctx context.Context, ev ChangeEvent) error) {
	b.Subscribe(ChangeTopic(table), func(ctx context.Context, event Event) error {
		ev, ok := event.(ChangeEvent)
		if !ok {
			return nil
		}
		return callback(ctx, ev)
	})
}
