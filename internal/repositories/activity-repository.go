package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"sales-dashboard/internal/entities"
)

const (
	activityTable  = "activity_logs"
	activityFields = `id, user_id, action_type, lead_id, metadata, "timestamp"`
)

type ActivityRepositoryInterface interface {
	ListBetween(ctx context.Context, start, end time.Time) ([]entities.ActivityEvent, error)
	ListByActionBetween(ctx context.Context, action entities.ActionType, start, end time.Time) ([]entities.ActivityEvent, error)
	Create(ctx context.Context, tx pgx.Tx, ev entities.ActivityEvent) (uuid.UUID, error)
}

type activityRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewActivityRepository(storage *pgxpool.Pool, logger *zap.Logger) ActivityRepositoryInterface {
	return &activityRepository{storage: storage, logger: logger}
}

func (r *activityRepository) ListBetween(ctx context.Context, start, end time.Time) ([]entities.ActivityEvent, error) {
	return r.list(ctx, `"timestamp" >= ? AND "timestamp" < ?`, start, end)
}

func (r *activityRepository) ListByActionBetween(ctx context.Context, action entities.ActionType, start, end time.Time) ([]entities.ActivityEvent, error) {
	return r.list(ctx, `action_type = ? AND "timestamp" >= ? AND "timestamp" < ?`, string(action), start, end)
}

func (r *activityRepository) list(ctx context.Context, where string, args ...interface{}) ([]entities.ActivityEvent, error) {
	query, qargs, err := psql.Select(activityFields).
		From(activityTable).
		Where(where, args...).
		OrderBy(`"timestamp"`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar SQL de activity_logs: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, qargs...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar activity_logs: %w", err)
	}
	defer rows.Close()

	events := make([]entities.ActivityEvent, 0)
	for rows.Next() {
		var ev entities.ActivityEvent
		var action string
		if err := rows.Scan(&ev.ID, &ev.UserID, &action, &ev.LeadID, &ev.Metadata, &ev.Timestamp); err != nil {
			return nil, fmt.Errorf("erro ao ler activity_logs: %w", err)
		}
		ev.ActionType = entities.ActionType(action)
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (r *activityRepository) Create(ctx context.Context, tx pgx.Tx, ev entities.ActivityEvent) (uuid.UUID, error) {
	metadata := ev.Metadata
	if len(metadata) == 0 {
		metadata = json.RawMessage(`{}`)
	}
	ts := ev.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query, args, err := psql.Insert(activityTable).
		Columns("user_id", "action_type", "lead_id", "metadata", `"timestamp"`).
		Values(ev.UserID, string(ev.ActionType), ev.LeadID, metadata, ts).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("erro ao montar INSERT de activity_logs: %w", err)
	}

	var id uuid.UUID
	if err := pick(r.storage, tx).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("erro ao inserir activity_logs: %w", err)
	}
	return id, nil
}
