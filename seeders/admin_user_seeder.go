package seeders

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"sales-dashboard/internal/entities"
	"sales-dashboard/pkg/config"
	"sales-dashboard/pkg/utils"
)

func seedAdminUser(ctx context.Context, db *pgxpool.Pool, admin config.AdminConfig) error {
	email := strings.ToLower(strings.TrimSpace(admin.Email))
	log.Printf("  - Criando o usuário administrador '%s'...", email)
	if admin.Password == "" {
		return fmt.Errorf("ADMIN_PASSWORD não definido")
	}

	var exists bool
	if err := db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM profiles WHERE email = $1)", email).Scan(&exists); err != nil {
		return err
	}
	if exists {
		log.Println("    - Administrador já existe. Pulando.")
		return nil
	}

	hashedPassword, err := utils.HashPassword(admin.Password)
	if err != nil {
		return err
	}

	query := `INSERT INTO profiles (email, password_hash, full_name, role, active) VALUES ($1, $2, $3, $4, TRUE)`
	_, err = db.Exec(ctx, query, email, hashedPassword, admin.FullName, string(entities.RoleAdmin))
	return err
}
