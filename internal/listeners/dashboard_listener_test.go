package listeners

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sales-dashboard/internal/analytics"
	"sales-dashboard/internal/authz"
	"sales-dashboard/internal/dto"
	"sales-dashboard/internal/events"
	"sales-dashboard/pkg/eventbus"
	"sales-dashboard/pkg/websocket"
)

type stubDashboard struct {
	mu          sync.Mutex
	invalidated int64
	perf        []analytics.UserPerformance
}

func (s *stubDashboard) GetDashboard(ctx context.Context, q dto.DashboardQuery) (*dto.DashboardDTO, error) {
	return nil, nil
}

func (s *stubDashboard) GetMyGoals(ctx context.Context, session *authz.AuthSession, q dto.DashboardQuery) (*dto.MyGoalsDTO, error) {
	return nil, nil
}

func (s *stubDashboard) TodayProgress(ctx context.Context) ([]analytics.UserPerformance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.perf, nil
}

func (s *stubDashboard) Invalidate(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidated++
	return s.invalidated, nil
}

func (s *stubDashboard) setPct(userID uuid.UUID, pct int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.perf = []analytics.UserPerformance{{
		UserID:   userID,
		FullName: "Ana",
		Headline: analytics.Evaluate("Meta do período", pct, 100),
	}}
}

type sent struct {
	userID      uuid.UUID
	messageType string
	payload     interface{}
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []sent
}

func (n *recordingNotifier) Broadcast(payload interface{}, messageType string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, sent{messageType: messageType, payload: payload})
	return nil
}

func (n *recordingNotifier) SendMessageToUser(userID uuid.UUID, payload interface{}, messageType string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, sent{userID: userID, messageType: messageType, payload: payload})
	return nil
}

func (n *recordingNotifier) snapshot() []sent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sent(nil), n.messages...)
}

func TestDashboardListener_DebouncesBursts(t *testing.T) {
	logger := zap.NewNop()
	bus := eventbus.New(logger)
	dash := &stubDashboard{}
	notifier := &recordingNotifier{}
	listener := NewDashboardListener(dash, notifier, analytics.NewCelebrationTracker(), 50*time.Millisecond, logger)
	listener.Register(bus)

	ctx := context.Background()
	bus.Publish(ctx, events.TableChanged{TableName: events.TableActivityLogs, Operation: events.OpInsert})
	bus.Publish(ctx, events.TableChanged{TableName: events.TableActivityLogs, Operation: events.OpInsert})
	bus.Publish(ctx, events.TableChanged{TableName: events.TableAppointments, Operation: events.OpUpdate})

	require.Eventually(t, func() bool { return len(notifier.snapshot()) == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	msgs := notifier.snapshot()
	require.Len(t, msgs, 1)
	assert.Equal(t, websocket.TypeDashboardRefresh, msgs[0].messageType)
	payload := msgs[0].payload.(websocket.RefreshPayload)
	assert.Equal(t, []string{events.TableActivityLogs, events.TableAppointments}, payload.Tables)
	assert.Equal(t, int64(1), payload.Generation)
}

func TestDashboardListener_CelebratesOnce(t *testing.T) {
	logger := zap.NewNop()
	dash := &stubDashboard{}
	notifier := &recordingNotifier{}
	listener := NewDashboardListener(dash, notifier, analytics.NewCelebrationTracker(), time.Millisecond, logger)
	userID := uuid.New()
	ctx := context.Background()

	dash.setPct(userID, 100)
	listener.pending[events.TableActivityLogs] = true
	listener.flush(ctx)
	listener.pending[events.TableActivityLogs] = true
	listener.flush(ctx)

	var goals []sent
	for _, m := range notifier.snapshot() {
		if m.messageType == websocket.TypeGoalReached {
			goals = append(goals, m)
		}
	}
	require.Len(t, goals, 1)
	assert.Equal(t, userID, goals[0].userID)
	assert.Equal(t, 100, goals[0].payload.(websocket.GoalReachedPayload).Pct)
}

func TestDashboardListener_EmptyFlushIsNoop(t *testing.T) {
	dash := &stubDashboard{}
	notifier := &recordingNotifier{}
	listener := NewDashboardListener(dash, notifier, nil, time.Millisecond, zap.NewNop())

	listener.flush(context.Background())
	assert.Empty(t, notifier.snapshot())
	assert.Equal(t, int64(0), dash.invalidated)
}

func TestDashboardListener_RearmsOnNewDay(t *testing.T) {
	dash := &stubDashboard{}
	notifier := &recordingNotifier{}
	clock := time.Date(2025, time.March, 13, 23, 50, 0, 0, time.UTC)
	listener := NewDashboardListener(dash, notifier, analytics.NewCelebrationTracker(), time.Millisecond, zap.NewNop()).
		InLocation(time.UTC)
	listener.now = func() time.Time { return clock }
	userID := uuid.New()
	ctx := context.Background()

	dash.setPct(userID, 120)
	listener.pending[events.TableActivityLogs] = true
	listener.flush(ctx)

	clock = clock.Add(20 * time.Minute)
	listener.pending[events.TableActivityLogs] = true
	listener.flush(ctx)

	var goals int
	for _, m := range notifier.snapshot() {
		if m.messageType == websocket.TypeGoalReached {
			goals++
		}
	}
	assert.Equal(t, 2, goals)
}
