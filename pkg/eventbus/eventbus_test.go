package eventbus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type tableEvent struct{ table string }

func (e tableEvent) Name() string  { return ChangeTopic(e.table) }
func (e tableEvent) Table() string { return e.table }

type plainEvent struct{}

func (plainEvent) Name() string { return ChangeTopic("appointments") }

func TestOnChange_DeliversOnlyMatchingTable(t *testing.T) {
	bus := New(zap.NewNop())
	got := make(chan string, 4)

	OnChange(bus, "appointments", func(ctx context.Context, ev ChangeEvent) error {
		got <- ev.Table()
		return nil
	})

	bus.Publish(context.Background(), tableEvent{table: "activity_logs"})
	bus.Publish(context.Background(), tableEvent{table: "appointments"})
	bus.Publish(context.Background(), plainEvent{})

	select {
	case table := <-got:
		assert.Equal(t, "appointments", table)
	case <-time.After(time.Second):
		require.Fail(t, "listener not called")
	}

	select {
	case table := <-got:
		assert.Failf(t, "unexpected delivery", "table %s", table)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPublish_ListenerErrorDoesNotBlockOthers(t *testing.T) {
	bus := New(zap.NewNop())
	done := make(chan struct{}, 1)

	bus.Subscribe("x", func(ctx context.Context, event Event) error { return errors.New("boom") })
	bus.Subscribe("x", func(ctx context.Context, event Event) error {
		done <- struct{}{}
		return nil
	})

	bus.Publish(context.Background(), namedEvent("x"))

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "second listener not called")
	}
}

type namedEvent string

func (n namedEvent) Name() string { return string(n) }
