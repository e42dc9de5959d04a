package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sales-dashboard/internal/entities"
)

const (
	webhookLogTable  = "webhook_logs"
	webhookLogFields = "id, endpoint, payload, status_code, created_at"
)

type WebhookLogRepositoryInterface interface {
	Create(ctx context.Context, tx pgx.Tx, log entities.WebhookLog) (int64, error)
	ListRecent(ctx context.Context, limit uint64) ([]entities.WebhookLog, error)
}

type webhookLogRepository struct {
	storage *pgxpool.Pool
}

func NewWebhookLogRepository(storage *pgxpool.Pool) WebhookLogRepositoryInterface {
	return &webhookLogRepository{storage: storage}
}

func (r *webhookLogRepository) Create(ctx context.Context, tx pgx.Tx, log entities.WebhookLog) (int64, error) {
	payload := log.Payload
	if len(payload) == 0 {
		payload = json.RawMessage(`{}`)
	}
	query, args, err := psql.Insert(webhookLogTable).
		Columns("endpoint", "payload", "status_code").
		Values(log.Endpoint, payload, log.StatusCode).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao montar INSERT de webhook_logs: %w", err)
	}
	var id int64
	if err := pick(r.storage, tx).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("erro ao inserir webhook_logs: %w", err)
	}
	return id, nil
}

func (r *webhookLogRepository) ListRecent(ctx context.Context, limit uint64) ([]entities.WebhookLog, error) {
	query, args, err := psql.Select(webhookLogFields).From(webhookLogTable).OrderBy("id DESC").Limit(limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar SQL de webhook_logs: %w", err)
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar webhook_logs: %w", err)
	}
	defer rows.Close()

	out := make([]entities.WebhookLog, 0)
	for rows.Next() {
		var l entities.WebhookLog
		if err := rows.Scan(&l.ID, &l.Endpoint, &l.Payload, &l.StatusCode, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler webhook_logs: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
