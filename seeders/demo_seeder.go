package seeders

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sales-dashboard/internal/entities"
	"sales-dashboard/pkg/utils"
)

const demoPassword = "Senha123!"

var demoTeam = []struct {
	Email    string
	FullName string
	Role     entities.Role
	Goals    map[entities.ActionType]int
	Today    map[entities.ActionType]int
}{
	{
		Email: "ana.sdr@example.com", FullName: "Ana Souza", Role: entities.RoleSDR,
		Goals: map[entities.ActionType]int{entities.ActionFirstContact: 30, entities.ActionApproach: 40, entities.ActionFollowUp: 20},
		Today: map[entities.ActionType]int{entities.ActionFirstContact: 18, entities.ActionApproach: 25, entities.ActionResponse: 6, entities.ActionEngaged: 3},
	},
	{
		Email: "bruno.closer@example.com", FullName: "Bruno Lima", Role: entities.RoleCloser,
		Goals: map[entities.ActionType]int{entities.ActionQualification: 8, entities.ActionFollowUp: 15},
		Today: map[entities.ActionType]int{entities.ActionQualification: 5, entities.ActionFollowUp: 9},
	},
	{
		Email: "carla.social@example.com", FullName: "Carla Mendes", Role: entities.RoleSocialSeller,
		Goals: map[entities.ActionType]int{entities.ActionLeadCreated: 25, entities.ActionFirstContact: 20},
		Today: map[entities.ActionType]int{entities.ActionLeadCreated: 27, entities.ActionFirstContact: 12},
	},
}

func seedDemoTeam(ctx context.Context, db *pgxpool.Pool) error {
	hashedPassword, err := utils.HashPassword(demoPassword)
	if err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	for _, member := range demoTeam {
		var userID uuid.UUID
		err := tx.QueryRow(ctx, `
			INSERT INTO profiles (email, password_hash, full_name, role, active)
			VALUES ($1, $2, $3, $4, TRUE)
			ON CONFLICT (email) DO UPDATE SET full_name = EXCLUDED.full_name
			RETURNING id`,
			member.Email, hashedPassword, member.FullName, string(member.Role),
		).Scan(&userID)
		if err != nil {
			return fmt.Errorf("perfil %s: %w", member.Email, err)
		}
		log.Printf("  - Perfil de demonstração %s (%s)", member.FullName, member.Role)

		for action, goal := range member.Goals {
			if err := upsertDemoGoal(ctx, tx, userID, action, goal); err != nil {
				return err
			}
		}

		for action, count := range member.Today {
			for i := 0; i < count; i++ {
				leadID := fmt.Sprintf("demo-%s-%s-%d", member.Role, action, i)
				ts := now.Add(-time.Duration(i) * time.Minute)
				if _, err := tx.Exec(ctx,
					`INSERT INTO activity_logs (user_id, action_type, lead_id, "timestamp") VALUES ($1, $2, $3, $4)`,
					userID, string(action), leadID, ts,
				); err != nil {
					return fmt.Errorf("atividade %s: %w", action, err)
				}
			}
		}

		if member.Role == entities.RoleCloser {
			if err := seedDemoAppointments(ctx, tx, userID, now); err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

func upsertDemoGoal(ctx context.Context, tx pgx.Tx, userID uuid.UUID, action entities.ActionType, goal int) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO user_goals (user_id, task_type_id, daily_goal)
		SELECT $1, id, $3 FROM task_types WHERE name = $2
		ON CONFLICT (user_id, task_type_id) DO UPDATE SET daily_goal = EXCLUDED.daily_goal, updated_at = NOW()`,
		userID, string(action), goal,
	)
	if err != nil {
		return fmt.Errorf("meta %s: %w", action, err)
	}
	return nil
}

func seedDemoAppointments(ctx context.Context, tx pgx.Tx, closerID uuid.UUID, now time.Time) error {
	appointments := []struct {
		LeadID  string
		Name    string
		Offset  time.Duration
		Status  entities.AppointmentStatus
		Revenue *float64
	}{
		{"demo-call-1", "Cliente Alfa", -2 * time.Hour, entities.StatusSaleMade, floatPtr(4800)},
		{"demo-call-2", "Cliente Beta", -time.Hour, entities.StatusNoShow, nil},
		{"demo-call-3", "Cliente Gama", 3 * time.Hour, entities.StatusPending, nil},
	}
	for _, a := range appointments {
		if _, err := tx.Exec(ctx, `
			INSERT INTO appointments (lead_id, lead_name, user_id, scheduled_date, status, revenue_received)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (lead_id) DO NOTHING`,
			a.LeadID, a.Name, closerID, now.Add(a.Offset), string(a.Status), a.Revenue,
		); err != nil {
			return fmt.Errorf("agendamento %s: %w", a.LeadID, err)
		}
	}
	return nil
}

func floatPtr(v float64) *float64 { return &v }
