package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"sales-dashboard/internal/entities"
)

func seedCompanyGoals(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Garantindo a linha de 'company_goals'...")
	defaults := entities.DefaultCompanyGoals()
	query := `INSERT INTO company_goals (id, revenue_goal, sales_goal, daily_appointments_goal, daily_conversations_goal)
			  VALUES (1, $1, $2, $3, $4) ON CONFLICT (id) DO NOTHING;`
	_, err := db.Exec(ctx, query, defaults.RevenueGoal, defaults.SalesGoal, defaults.DailyAppointmentsGoal, defaults.DailyConversationsGoal)
	return err
}
