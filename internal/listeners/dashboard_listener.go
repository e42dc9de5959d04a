package listeners

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sales-dashboard/internal/analytics"
	"sales-dashboard/internal/events"
	"sales-dashboard/internal/services"
	"sales-dashboard/pkg/eventbus"
	"sales-dashboard/pkg/websocket"
)

// Notifier is the part of the websocket hub the listener pushes through.
type Notifier interface {
	Broadcast(payload interface{}, messageType string) error
	SendMessageToUser(userID uuid.UUID, payload interface{}, messageType string) error
}

// DashboardListener groups bursts of table changes into one refresh.
type DashboardListener struct {
	dashboard services.DashboardServiceInterface
	notifier  Notifier
	tracker   *analytics.CelebrationTracker
	debounce  time.Duration
	logger    *zap.Logger

	mu      sync.Mutex
	pending map[string]bool
	timer   *time.Timer

	now      func() time.Time
	location *time.Location
	day      string
}

func NewDashboardListener(
	dashboard services.DashboardServiceInterface,
	notifier Notifier,
	tracker *analytics.CelebrationTracker,
	debounce time.Duration,
	logger *zap.Logger,
) *DashboardListener {
	return &DashboardListener{
		dashboard: dashboard,
		notifier:  notifier,
		tracker:   tracker,
		debounce:  debounce,
		logger:    logger,
		pending:   make(map[string]bool),
		now:       time.Now,
		location:  time.Local,
	}
}

// InLocation sets the zone in which the celebration day rolls over.
func (l *DashboardListener) InLocation(loc *time.Location) *DashboardListener {
	if loc != nil {
		l.location = loc
	}
	return l
}

func (l *DashboardListener) Register(bus *eventbus.Bus) {
	for _, table := range events.DashboardTables {
		eventbus.OnChange(bus, table, l.handleChange)
	}
	l.logger.Info("DashboardListener inscrito nas mudanças de tabela", zap.Strings("tables", events.DashboardTables))
}

func (l *DashboardListener) handleChange(ctx context.Context, ev eventbus.ChangeEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pending[ev.Table()] = true
	if l.timer == nil {
		l.timer = time.AfterFunc(l.debounce, func() {
			l.flush(context.Background())
		})
	}
	return nil
}

// flush runs once per debounce window with every table touched during it.
func (l *DashboardListener) flush(ctx context.Context) {
	l.mu.Lock()
	tables := make([]string, 0, len(l.pending))
	for t := range l.pending {
		tables = append(tables, t)
	}
	l.pending = make(map[string]bool)
	l.timer = nil
	l.mu.Unlock()

	if len(tables) == 0 {
		return
	}
	sort.Strings(tables)

	gen, err := l.dashboard.Invalidate(ctx)
	if err != nil {
		l.logger.Error("falha ao invalidar o dashboard", zap.Error(err))
	}

	if err := l.notifier.Broadcast(websocket.RefreshPayload{Tables: tables, Generation: gen}, websocket.TypeDashboardRefresh); err != nil {
		l.logger.Error("falha ao enviar atualização do dashboard", zap.Error(err))
	}
	l.logger.Info("dashboard atualizado", zap.Strings("tables", tables), zap.Int64("generation", gen))

	l.celebrate(ctx)
}

// celebrate notifies each user whose headline progress for today just reached 100%.
func (l *DashboardListener) celebrate(ctx context.Context) {
	if l.tracker == nil {
		return
	}
	l.mu.Lock()
	if day := l.now().In(l.location).Format("2006-01-02"); day != l.day {
		if l.day != "" {
			l.tracker.Forget()
		}
		l.day = day
	}
	l.mu.Unlock()

	perf, err := l.dashboard.TodayProgress(ctx)
	if err != nil {
		l.logger.Error("falha ao avaliar metas do dia", zap.Error(err))
		return
	}
	for _, p := range perf {
		if !l.tracker.Observe(p.UserID.String(), p.Headline.Pct) {
			continue
		}
		payload := websocket.GoalReachedPayload{
			UserID:   p.UserID.String(),
			FullName: p.FullName,
			Label:    p.Headline.Label,
			Current:  p.Headline.Current,
			Goal:     p.Headline.Goal,
			Pct:      p.Headline.Pct,
			Message:  p.Headline.Message,
		}
		if err := l.notifier.SendMessageToUser(p.UserID, payload, websocket.TypeGoalReached); err != nil {
			l.logger.Warn("falha ao enviar celebração", zap.String("userID", p.UserID.String()), zap.Error(err))
		}
	}
}
