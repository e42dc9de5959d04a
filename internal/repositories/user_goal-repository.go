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
	userGoalTable  = "user_goals"
	userGoalFields = "id, user_id, task_type_id, daily_goal, created_at, updated_at"
)

type UserGoalRepositoryInterface interface {
	List(ctx context.Context) ([]entities.UserGoal, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.UserGoal, error)
	Upsert(ctx context.Context, tx pgx.Tx, userID, taskTypeID uuid.UUID, dailyGoal int) (*entities.UserGoal, error)
	Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}

type userGoalRepository struct {
	storage *pgxpool.Pool
}

func NewUserGoalRepository(storage *pgxpool.Pool) UserGoalRepositoryInterface {
	return &userGoalRepository{storage: storage}
}

func scanUserGoal(row pgx.Row) (*entities.UserGoal, error) {
	var g entities.UserGoal
	if err := row.Scan(&g.ID, &g.UserID, &g.TaskTypeID, &g.DailyGoal, &g.CreatedAt, &g.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao ler user_goals: %w", err)
	}
	return &g, nil
}

func (r *userGoalRepository) List(ctx context.Context) ([]entities.UserGoal, error) {
	return r.list(ctx, nil)
}

func (r *userGoalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.UserGoal, error) {
	return r.list(ctx, sq.Eq{"user_id": userID})
}

func (r *userGoalRepository) list(ctx context.Context, where sq.Sqlizer) ([]entities.UserGoal, error) {
	builder := psql.Select(userGoalFields).From(userGoalTable).OrderBy("user_id", "created_at")
	if where != nil {
		builder = builder.Where(where)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar SQL de user_goals: %w", err)
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar user_goals: %w", err)
	}
	defer rows.Close()

	out := make([]entities.UserGoal, 0)
	for rows.Next() {
		g, err := scanUserGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

// Upsert sets the daily goal of a (user, task type) pair.
func (r *userGoalRepository) Upsert(ctx context.Context, tx pgx.Tx, userID, taskTypeID uuid.UUID, dailyGoal int) (*entities.UserGoal, error) {
	query, args, err := psql.Insert(userGoalTable).
		Columns("user_id", "task_type_id", "daily_goal").
		Values(userID, taskTypeID, dailyGoal).
		Suffix("ON CONFLICT (user_id, task_type_id) DO UPDATE SET daily_goal = EXCLUDED.daily_goal, updated_at = NOW() RETURNING " + userGoalFields).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar UPSERT de user_goals: %w", err)
	}
	return scanUserGoal(pick(r.storage, tx).QueryRow(ctx, query, args...))
}

func (r *userGoalRepository) Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	query, args, err := psql.Delete(userGoalTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao montar DELETE de user_goals: %w", err)
	}
	tag, err := pick(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao remover user_goals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
