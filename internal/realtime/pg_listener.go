package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"sales-dashboard/internal/events"
	"sales-dashboard/pkg/eventbus"
)

const (
	Channel        = "crm_changes"
	reconnectDelay = 5 * time.Second
)

// PGListener republishes Postgres change notifications onto the event bus, so
// writes made outside this process refresh the dashboard too.
type PGListener struct {
	pool   *pgxpool.Pool
	bus    *eventbus.Bus
	logger *zap.Logger
}

func NewPGListener(pool *pgxpool.Pool, bus *eventbus.Bus, logger *zap.Logger) *PGListener {
	return &PGListener{pool: pool, bus: bus, logger: logger}
}

// Run listens until ctx is cancelled, reconnecting after connection failures.
func (l *PGListener) Run(ctx context.Context) {
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			l.logger.Info("listener do Postgres encerrado")
			return
		}
		l.logger.Warn("listener do Postgres caiu, reconectando", zap.Error(err), zap.Duration("delay", reconnectDelay))

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (l *PGListener) listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{Channel}.Sanitize()); err != nil {
		return fmt.Errorf("falha ao executar LISTEN: %w", err)
	}
	l.logger.Info("escutando notificações do Postgres", zap.String("channel", Channel))

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		ev, err := ParseNotification(notification.Payload)
		if err != nil {
			l.logger.Warn("notificação ignorada", zap.String("payload", notification.Payload), zap.Error(err))
			continue
		}
		l.bus.Publish(ctx, ev)
	}
}

// ParseNotification decodes a trigger payload into an external TableChanged event.
func ParseNotification(payload string) (events.TableChanged, error) {
	var ev events.TableChanged
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return events.TableChanged{}, fmt.Errorf("payload inválido: %w", err)
	}
	known := false
	for _, t := range events.DashboardTables {
		if t == ev.TableName {
			known = true
			break
		}
	}
	if !known {
		return events.TableChanged{}, fmt.Errorf("tabela desconhecida: %q", ev.TableName)
	}
	ev.External = true
	return ev, nil
}
