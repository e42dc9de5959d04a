package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sales-dashboard/internal/entities"
	apperrors "sales-dashboard/pkg/errors"
)

const (
	taskTypeTable  = "task_types"
	taskTypeFields = "id, name, label, created_at"
)

type TaskTypeRepositoryInterface interface {
	List(ctx context.Context) ([]entities.TaskType, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.TaskType, error)
	FindByName(ctx context.Context, tx pgx.Tx, name string) (*entities.TaskType, error)
	Create(ctx context.Context, tx pgx.Tx, t entities.TaskType) (*entities.TaskType, error)
	UpdateLabel(ctx context.Context, tx pgx.Tx, id uuid.UUID, label string) (*entities.TaskType, error)
	Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}

type taskTypeRepository struct {
	storage *pgxpool.Pool
}

func NewTaskTypeRepository(storage *pgxpool.Pool) TaskTypeRepositoryInterface {
	return &taskTypeRepository{storage: storage}
}

func scanTaskType(row pgx.Row) (*entities.TaskType, error) {
	var t entities.TaskType
	if err := row.Scan(&t.ID, &t.Name, &t.Label, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao ler task_types: %w", err)
	}
	return &t, nil
}

// List returns the catalog in creation order, which is the display order.
func (r *taskTypeRepository) List(ctx context.Context) ([]entities.TaskType, error) {
	query, args, err := psql.Select(taskTypeFields).From(taskTypeTable).OrderBy("created_at", "name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar SQL de task_types: %w", err)
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar task_types: %w", err)
	}
	defer rows.Close()

	out := make([]entities.TaskType, 0)
	for rows.Next() {
		t, err := scanTaskType(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *taskTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.TaskType, error) {
	query, args, err := psql.Select(taskTypeFields).From(taskTypeTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar SQL de task_types: %w", err)
	}
	return scanTaskType(r.storage.QueryRow(ctx, query, args...))
}

func (r *taskTypeRepository) FindByName(ctx context.Context, tx pgx.Tx, name string) (*entities.TaskType, error) {
	query, args, err := psql.Select(taskTypeFields).From(taskTypeTable).Where(sq.Eq{"name": name}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar SQL de task_types: %w", err)
	}
	return scanTaskType(pick(r.storage, tx).QueryRow(ctx, query, args...))
}

func (r *taskTypeRepository) Create(ctx context.Context, tx pgx.Tx, t entities.TaskType) (*entities.TaskType, error) {
	query, args, err := psql.Insert(taskTypeTable).
		Columns("name", "label").
		Values(t.Name, t.Label).
		Suffix("RETURNING " + taskTypeFields).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar INSERT de task_types: %w", err)
	}
	created, err := scanTaskType(pick(r.storage, tx).QueryRow(ctx, query, args...))
	return created, translateUnique(err)
}

func (r *taskTypeRepository) UpdateLabel(ctx context.Context, tx pgx.Tx, id uuid.UUID, label string) (*entities.TaskType, error) {
	query, args, err := psql.Update(taskTypeTable).
		Set("label", label).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + taskTypeFields).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar UPDATE de task_types: %w", err)
	}
	return scanTaskType(pick(r.storage, tx).QueryRow(ctx, query, args...))
}

func (r *taskTypeRepository) Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	query, args, err := psql.Delete(taskTypeTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao montar DELETE de task_types: %w", err)
	}
	tag, err := pick(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao remover task_types: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
