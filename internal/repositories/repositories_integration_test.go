package repositories

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sales-dashboard/internal/entities"
	"sales-dashboard/pkg/database/postgresql"
	apperrors "sales-dashboard/pkg/errors"
)

var testPool *pgxpool.Pool

// TestMain connects to TEST_DATABASE_URL and applies migrations; without it the
// integration tests skip.
func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn != "" {
		var err error
		testPool, err = pgxpool.New(context.Background(), dsn)
		if err != nil {
			log.Fatalf("não foi possível conectar ao banco de testes: %v", err)
		}
		if err := postgresql.Migrate(testPool); err != nil {
			log.Fatalf("não foi possível aplicar as migrações: %v", err)
		}
	}

	code := m.Run()
	if testPool != nil {
		testPool.Close()
	}
	os.Exit(code)
}

func requireDB(t *testing.T) {
	t.Helper()
	if testPool == nil {
		t.Skip("TEST_DATABASE_URL não definido")
	}
	_, err := testPool.Exec(context.Background(),
		`TRUNCATE TABLE webhook_logs, appointments, activity_logs, user_goals, company_goals, task_types, profiles RESTART IDENTITY CASCADE`)
	require.NoError(t, err, "não foi possível limpar as tabelas")
}

func seedProfile(t *testing.T, email string, active bool) *entities.Profile {
	t.Helper()
	p, err := NewProfileRepository(testPool, zap.NewNop()).Create(context.Background(), nil, entities.Profile{
		Email: email, PasswordHash: "x", FullName: email, Role: entities.RoleSDR, Active: active,
	})
	require.NoError(t, err)
	return p
}

func TestActivityRepository_Integration_ListBetween(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := NewActivityRepository(testPool, zap.NewNop())
	user := uuid.New()
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	for i, action := range []entities.ActionType{entities.ActionLeadCreated, entities.ActionFollowUp, entities.ActionLeadCreated} {
		_, err := repo.Create(ctx, nil, entities.ActivityEvent{
			UserID: user, ActionType: action, LeadID: "lead-1", Timestamp: base.Add(time.Duration(i) * 24 * time.Hour),
		})
		require.NoError(t, err)
	}

	events, err := repo.ListBetween(ctx, base, base.Add(48*time.Hour))
	require.NoError(t, err)
	assert.Len(t, events, 2, "end is exclusive")
	assert.JSONEq(t, `{}`, string(events[0].Metadata))

	leads, err := repo.ListByActionBetween(ctx, entities.ActionLeadCreated, base, base.Add(72*time.Hour))
	require.NoError(t, err)
	assert.Len(t, leads, 2)
}

func TestAppointmentRepository_Integration_UpsertAndStatus(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := NewAppointmentRepository(testPool, zap.NewNop())
	tx := NewTxManager(testPool)
	user := uuid.New()
	when := time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)

	var created *entities.Appointment
	err := tx.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var inserted bool
		var err error
		created, inserted, err = repo.Upsert(ctx, tx, entities.Appointment{LeadID: "L1", LeadName: "Lead", UserID: user, ScheduledDate: when})
		assert.True(t, inserted)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, entities.StatusPending, created.Status)

	moved, inserted, err := repo.Upsert(ctx, nil, entities.Appointment{LeadID: "L1", LeadName: "Lead Renomeado", UserID: user, ScheduledDate: when.Add(time.Hour)})
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, created.ID, moved.ID)
	assert.Equal(t, "Lead Renomeado", moved.LeadName)

	sold, err := repo.UpdateCallStatus(ctx, nil, "L1", entities.StatusSaleMade, null.Float64From(1234.5), json.RawMessage(`{"origem":"crm"}`))
	require.NoError(t, err)
	assert.Equal(t, entities.StatusSaleMade, sold.Status)
	assert.InDelta(t, 1234.5, sold.Revenue(), 0.001)
	assert.True(t, sold.UpdatedAt.Valid)

	_, err = repo.UpdateCallStatus(ctx, nil, "desconhecido", entities.StatusNoShow, null.Float64{}, nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	list, err := repo.ListBetween(ctx, when, when.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestGoalsRepositories_Integration(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	profile := seedProfile(t, "ana@example.com", true)
	seedProfile(t, "inativo@example.com", false)

	active, err := NewProfileRepository(testPool, zap.NewNop()).ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	_, err = NewProfileRepository(testPool, zap.NewNop()).Create(ctx, nil, entities.Profile{Email: "ANA@example.com", PasswordHash: "x", FullName: "dup", Role: entities.RoleSDR})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)

	tt, err := NewTaskTypeRepository(testPool).Create(ctx, nil, entities.TaskType{Name: "follow_up", Label: "Follow-up"})
	require.NoError(t, err)

	goals := NewUserGoalRepository(testPool)
	_, err = goals.Upsert(ctx, nil, profile.ID, tt.ID, 5)
	require.NoError(t, err)
	updated, err := goals.Upsert(ctx, nil, profile.ID, tt.ID, 8)
	require.NoError(t, err)
	assert.Equal(t, 8, updated.DailyGoal)

	all, err := goals.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	company := NewCompanyGoalsRepository(testPool)
	row, err := company.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, row)
	assert.Equal(t, entities.DefaultCompanyGoals(), row.Resolve())

	_, err = company.Upsert(ctx, nil, entities.CompanyGoalsRow{RevenueGoal: null.Float64From(80000), SalesGoal: null.IntFrom(0)})
	require.NoError(t, err)
	row, err = company.Get(ctx)
	require.NoError(t, err)
	resolved := row.Resolve()
	assert.InDelta(t, 80000, resolved.RevenueGoal, 0.001)
	assert.Equal(t, entities.DefaultSalesGoal, resolved.SalesGoal)
	assert.Equal(t, entities.DefaultDailyAppointmentsGoal, resolved.DailyAppointmentsGoal)
}

func TestWebhookLogRepository_Integration(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := NewWebhookLogRepository(testPool)

	id, err := repo.Create(ctx, nil, entities.WebhookLog{Endpoint: "/api/activity", Payload: json.RawMessage(`{"a":1}`), StatusCode: 200})
	require.NoError(t, err)
	assert.Positive(t, id)

	logs, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "/api/activity", logs[0].Endpoint)
}
