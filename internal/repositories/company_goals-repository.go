package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sales-dashboard/internal/entities"
)

const (
	companyGoalsTable  = "company_goals"
	companyGoalsFields = "revenue_goal::float8, sales_goal, daily_appointments_goal, daily_conversations_goal"
	companyGoalsRowID  = 1
)

type CompanyGoalsRepositoryInterface interface {
	// Get returns nil, nil when the singleton row was never written.
	Get(ctx context.Context) (*entities.CompanyGoalsRow, error)
	Upsert(ctx context.Context, tx pgx.Tx, row entities.CompanyGoalsRow) (*entities.CompanyGoalsRow, error)
}

type companyGoalsRepository struct {
	storage *pgxpool.Pool
}

func NewCompanyGoalsRepository(storage *pgxpool.Pool) CompanyGoalsRepositoryInterface {
	return &companyGoalsRepository{storage: storage}
}

func scanCompanyGoals(row pgx.Row) (*entities.CompanyGoalsRow, error) {
	var g entities.CompanyGoalsRow
	if err := row.Scan(&g.RevenueGoal, &g.SalesGoal, &g.DailyAppointmentsGoal, &g.DailyConversationsGoal); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *companyGoalsRepository) Get(ctx context.Context) (*entities.CompanyGoalsRow, error) {
	query, args, err := psql.Select(companyGoalsFields).From(companyGoalsTable).Where(sq.Eq{"id": companyGoalsRowID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar SQL de company_goals: %w", err)
	}
	row, err := scanCompanyGoals(r.storage.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao ler company_goals: %w", err)
	}
	return row, nil
}

func (r *companyGoalsRepository) Upsert(ctx context.Context, tx pgx.Tx, row entities.CompanyGoalsRow) (*entities.CompanyGoalsRow, error) {
	query, args, err := psql.Insert(companyGoalsTable).
		Columns("id", "revenue_goal", "sales_goal", "daily_appointments_goal", "daily_conversations_goal").
		Values(companyGoalsRowID, row.RevenueGoal, row.SalesGoal, row.DailyAppointmentsGoal, row.DailyConversationsGoal).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			revenue_goal = EXCLUDED.revenue_goal,
			sales_goal = EXCLUDED.sales_goal,
			daily_appointments_goal = EXCLUDED.daily_appointments_goal,
			daily_conversations_goal = EXCLUDED.daily_conversations_goal,
			updated_at = NOW()
			RETURNING ` + companyGoalsFields).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar UPSERT de company_goals: %w", err)
	}
	saved, err := scanCompanyGoals(pick(r.storage, tx).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("erro ao gravar company_goals: %w", err)
	}
	return saved, nil
}
