package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"sales-dashboard/internal/entities"
	apperrors "sales-dashboard/pkg/errors"
)

const (
	appointmentTable  = "appointments"
	appointmentFields = "id, lead_id, lead_name, user_id, scheduled_date, status, revenue_received::float8, created_at, updated_at"
)

type AppointmentRepositoryInterface interface {
	ListBetween(ctx context.Context, start, end time.Time) ([]entities.Appointment, error)
	FindByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Appointment, error)
	FindByLeadID(ctx context.Context, tx pgx.Tx, leadID string) (*entities.Appointment, error)
	Upsert(ctx context.Context, tx pgx.Tx, a entities.Appointment) (*entities.Appointment, bool, error)
	UpdateCallStatus(ctx context.Context, tx pgx.Tx, leadID string, status entities.AppointmentStatus, revenue null.Float64, metadata json.RawMessage) (*entities.Appointment, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status entities.AppointmentStatus, revenue null.Float64) (*entities.Appointment, error)
}

type appointmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewAppointmentRepository(storage *pgxpool.Pool, logger *zap.Logger) AppointmentRepositoryInterface {
	return &appointmentRepository{storage: storage, logger: logger}
}

func scanAppointment(row pgx.Row) (*entities.Appointment, error) {
	var a entities.Appointment
	var status string
	err := row.Scan(&a.ID, &a.LeadID, &a.LeadName, &a.UserID, &a.ScheduledDate, &status, &a.RevenueReceived, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao ler appointments: %w", err)
	}
	a.Status = entities.AppointmentStatus(status)
	return &a, nil
}

func (r *appointmentRepository) ListBetween(ctx context.Context, start, end time.Time) ([]entities.Appointment, error) {
	query, args, err := psql.Select(appointmentFields).
		From(appointmentTable).
		Where(sq.GtOrEq{"scheduled_date": start}).
		Where(sq.Lt{"scheduled_date": end}).
		OrderBy("scheduled_date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar SQL de appointments: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar appointments: %w", err)
	}
	defer rows.Close()

	out := make([]entities.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *appointmentRepository) findOne(ctx context.Context, tx pgx.Tx, where sq.Eq) (*entities.Appointment, error) {
	query, args, err := psql.Select(appointmentFields).From(appointmentTable).Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar SQL de appointments: %w", err)
	}
	return scanAppointment(pick(r.storage, tx).QueryRow(ctx, query, args...))
}

func (r *appointmentRepository) FindByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Appointment, error) {
	return r.findOne(ctx, tx, sq.Eq{"id": id})
}

func (r *appointmentRepository) FindByLeadID(ctx context.Context, tx pgx.Tx, leadID string) (*entities.Appointment, error) {
	return r.findOne(ctx, tx, sq.Eq{"lead_id": leadID})
}

// Upsert creates the appointment of a lead or reschedules the existing one.
// The returned bool is true when a new row was inserted.
func (r *appointmentRepository) Upsert(ctx context.Context, tx pgx.Tx, a entities.Appointment) (*entities.Appointment, bool, error) {
	query, args, err := psql.Insert(appointmentTable).
		Columns("lead_id", "lead_name", "user_id", "scheduled_date").
		Values(a.LeadID, a.LeadName, a.UserID, a.ScheduledDate).
		Suffix(`ON CONFLICT (lead_id) DO UPDATE SET
			lead_name = EXCLUDED.lead_name,
			user_id = EXCLUDED.user_id,
			scheduled_date = EXCLUDED.scheduled_date,
			updated_at = NOW()
			RETURNING ` + appointmentFields + `, (xmax = 0)`).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("erro ao montar UPSERT de appointments: %w", err)
	}

	var out entities.Appointment
	var status string
	var inserted bool
	err = pick(r.storage, tx).QueryRow(ctx, query, args...).Scan(
		&out.ID, &out.LeadID, &out.LeadName, &out.UserID, &out.ScheduledDate, &status,
		&out.RevenueReceived, &out.CreatedAt, &out.UpdatedAt, &inserted,
	)
	if err != nil {
		return nil, false, fmt.Errorf("erro ao gravar appointments: %w", err)
	}
	out.Status = entities.AppointmentStatus(status)
	return &out, inserted, nil
}

func (r *appointmentRepository) UpdateCallStatus(ctx context.Context, tx pgx.Tx, leadID string, status entities.AppointmentStatus, revenue null.Float64, metadata json.RawMessage) (*entities.Appointment, error) {
	if len(metadata) == 0 {
		metadata = json.RawMessage(`{}`)
	}
	return r.update(ctx, tx, sq.Eq{"lead_id": leadID}, map[string]interface{}{
		"status":               string(status),
		"revenue_received":     revenue,
		"call_status_metadata": metadata,
	})
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status entities.AppointmentStatus, revenue null.Float64) (*entities.Appointment, error) {
	return r.update(ctx, tx, sq.Eq{"id": id}, map[string]interface{}{
		"status":           string(status),
		"revenue_received": revenue,
	})
}

func (r *appointmentRepository) update(ctx context.Context, tx pgx.Tx, where sq.Eq, set map[string]interface{}) (*entities.Appointment, error) {
	set["updated_at"] = sq.Expr("NOW()")
	query, args, err := psql.Update(appointmentTable).
		SetMap(set).
		Where(where).
		Suffix("RETURNING " + appointmentFields).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar UPDATE de appointments: %w", err)
	}
	return scanAppointment(pick(r.storage, tx).QueryRow(ctx, query, args...))
}
