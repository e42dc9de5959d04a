package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sales-dashboard/internal/dto"
	"sales-dashboard/internal/entities"
	"sales-dashboard/internal/events"
	"sales-dashboard/pkg/eventbus"
	apperrors "sales-dashboard/pkg/errors"
)

type webhookFixture struct {
	activities   *fakeActivities
	appointments *fakeAppointments
	logs         *fakeWebhookLogs
	changes      chan string
	service      *WebhookService
}

func newWebhookFixture(t *testing.T) *webhookFixture {
	t.Helper()
	logger := zap.NewNop()
	bus := eventbus.New(logger)
	changes := make(chan string, 16)
	for _, table := range events.DashboardTables {
		eventbus.OnChange(bus, table, func(ctx context.Context, ev eventbus.ChangeEvent) error {
			changes <- ev.Table()
			return nil
		})
	}

	f := &webhookFixture{
		activities:   &fakeActivities{},
		appointments: &fakeAppointments{},
		logs:         &fakeWebhookLogs{},
		changes:      changes,
	}
	f.service = NewWebhookService(&fakeTx{}, f.activities, f.appointments, f.logs, NewBaseService(nil, bus, logger), logger)
	return f
}

func (f *webhookFixture) nextChange(t *testing.T) string {
	t.Helper()
	select {
	case table := <-f.changes:
		return table
	case <-time.After(time.Second):
		t.Fatal("nenhum evento de mudança publicado")
		return ""
	}
}

func TestWebhookService_RecordActivity(t *testing.T) {
	f := newWebhookFixture(t)
	userID := uuid.New()
	raw := json.RawMessage(`{"user_id":"` + userID.String() + `","tipo_acao":"abordagem","lead_id":"lead-9"}`)

	result, err := f.service.RecordActivity(context.Background(), dto.ActivityWebhookDTO{
		UserID:   userID.String(),
		TipoAcao: "abordagem",
		LeadID:   "lead-9",
	}, raw)
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.Len(t, f.activities.events, 1)
	assert.Equal(t, entities.ActionApproach, f.activities.events[0].ActionType)
	assert.False(t, f.activities.events[0].Timestamp.IsZero())
	assert.Equal(t, []int{http.StatusCreated}, f.logs.statuses())
	assert.Equal(t, events.TableActivityLogs, f.nextChange(t))
}

func TestWebhookService_RecordActivity_UnknownAction(t *testing.T) {
	f := newWebhookFixture(t)

	_, err := f.service.RecordActivity(context.Background(), dto.ActivityWebhookDTO{
		UserID:   uuid.NewString(),
		TipoAcao: "ligacao",
		LeadID:   "lead-1",
	}, json.RawMessage(`{}`))

	var invalid *apperrors.InvalidInputError
	require.True(t, errors.As(err, &invalid))
	assert.Empty(t, f.activities.events)
	assert.Equal(t, []int{http.StatusBadRequest}, f.logs.statuses())
}

func TestWebhookService_ScheduleAppointment_Upserts(t *testing.T) {
	f := newWebhookFixture(t)
	ctx := context.Background()
	owner := uuid.New()
	when := time.Date(2026, time.October, 20, 14, 0, 0, 0, time.UTC)

	first, err := f.service.ScheduleAppointment(ctx, dto.AgendamentoWebhookDTO{
		LeadID: "lead-1", Nome: "Maria", DataAgendada: when, UserResponsavel: owner.String(),
	}, json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.True(t, first.Created)

	second, err := f.service.ScheduleAppointment(ctx, dto.AgendamentoWebhookDTO{
		LeadID: "lead-1", Nome: "Maria Silva", DataAgendada: when.Add(time.Hour), UserResponsavel: owner.String(),
	}, json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.ID, second.ID)

	require.Len(t, f.appointments.items, 1)
	assert.Equal(t, "Maria Silva", f.appointments.items[0].LeadName)
	assert.Equal(t, []int{http.StatusCreated, http.StatusOK}, f.logs.statuses())
}

func TestWebhookService_UpdateCallStatus(t *testing.T) {
	f := newWebhookFixture(t)
	ctx := context.Background()
	f.appointments.items = []entities.Appointment{
		{ID: uuid.New(), LeadID: "lead-1", Status: entities.StatusPending},
		{ID: uuid.New(), LeadID: "lead-2", Status: entities.StatusPending},
	}
	revenue := 4200.0

	_, err := f.service.UpdateCallStatus(ctx, dto.CallStatusWebhookDTO{
		LeadID: "lead-1", Status: string(entities.StatusSaleMade), RevenueReceived: &revenue,
	}, json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Equal(t, entities.StatusSaleMade, f.appointments.items[0].Status)
	assert.Equal(t, 4200.0, f.appointments.items[0].Revenue())

	_, err = f.service.UpdateCallStatus(ctx, dto.CallStatusWebhookDTO{
		LeadID: "lead-2", Status: string(entities.StatusNoShow), RevenueReceived: &revenue,
	}, json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.False(t, f.appointments.items[1].RevenueReceived.Valid, "revenue is only kept for a sale")
}

func TestWebhookService_UpdateCallStatus_RepeatedCall(t *testing.T) {
	f := newWebhookFixture(t)
	ctx := context.Background()
	f.appointments.items = []entities.Appointment{{ID: uuid.New(), LeadID: "lead-1", Status: entities.StatusPending}}
	revenue := 1500.0
	payload := dto.CallStatusWebhookDTO{LeadID: "lead-1", Status: string(entities.StatusSaleMade), RevenueReceived: &revenue}

	first, err := f.service.UpdateCallStatus(ctx, payload, json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Equal(t, events.TableAppointments, f.nextChange(t))

	second, err := f.service.UpdateCallStatus(ctx, payload, json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, f.appointments.callStatusWrites)
	assert.Equal(t, []int{http.StatusOK, http.StatusOK}, f.logs.statuses())

	select {
	case table := <-f.changes:
		t.Fatalf("mudança inesperada publicada para %s", table)
	case <-time.After(50 * time.Millisecond):
	}

	other := 900.0
	payload.RevenueReceived = &other
	_, err = f.service.UpdateCallStatus(ctx, payload, json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Equal(t, 2, f.appointments.callStatusWrites)
	assert.Equal(t, 900.0, f.appointments.items[0].Revenue())
	assert.Equal(t, events.TableAppointments, f.nextChange(t))
}

func TestWebhookService_UpdateCallStatus_Rejections(t *testing.T) {
	f := newWebhookFixture(t)
	ctx := context.Background()

	_, err := f.service.UpdateCallStatus(ctx, dto.CallStatusWebhookDTO{
		LeadID: "lead-x", Status: string(entities.StatusDone),
	}, json.RawMessage(`{}`))
	var httpErr *apperrors.HttpError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Code)

	_, err = f.service.UpdateCallStatus(ctx, dto.CallStatusWebhookDTO{
		LeadID: "lead-x", Status: string(entities.StatusPending),
	}, json.RawMessage(`{}`))
	var invalid *apperrors.InvalidInputError
	require.True(t, errors.As(err, &invalid))

	assert.Equal(t, []int{http.StatusNotFound, http.StatusBadRequest}, f.logs.statuses())
}

func TestWebhookService_PersistenceFailure(t *testing.T) {
	f := newWebhookFixture(t)
	f.activities.err = errors.New("disk full")

	_, err := f.service.RecordActivity(context.Background(), dto.ActivityWebhookDTO{
		UserID: uuid.NewString(), TipoAcao: "respostas", LeadID: "lead-1",
	}, json.RawMessage(`not json`))

	var httpErr *apperrors.HttpError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
	require.Len(t, f.logs.items, 1)
	assert.True(t, json.Valid(f.logs.items[0].Payload))
}

func TestWebhookService_RecentLogs_ClampsLimit(t *testing.T) {
	f := newWebhookFixture(t)
	ctx := context.Background()
	f.service.LogFailure(ctx, EndpointActivity, json.RawMessage(`{nope`), http.StatusBadRequest)

	logs, err := f.service.RecentLogs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, uint64(defaultLogLimit), f.logs.lastLimit)
	assert.JSONEq(t, `{"raw":"{nope"}`, string(logs[0].Payload))

	_, err = f.service.RecentLogs(ctx, 10_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(maxLogLimit), f.logs.lastLimit)
}
