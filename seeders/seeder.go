package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"sales-dashboard/pkg/config"
)

// SeedCoreDictionaries fills the task type catalog and the company goals row.
func SeedCoreDictionaries(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Populando catálogos básicos...")

	if err := seedTaskTypes(ctx, db); err != nil {
		log.Fatalf("❌ Erro ao popular tipos de tarefa: %v", err)
	}
	if err := seedCompanyGoals(ctx, db); err != nil {
		log.Fatalf("❌ Erro ao popular metas da empresa: %v", err)
	}
	log.Println("✅ Catálogos básicos concluídos!")
}

// SeedAdmin creates the first admin profile from ADMIN_* settings.
func SeedAdmin(db *pgxpool.Pool, cfg *config.Config) {
	log.Println("▶️  Criando administrador...")
	if err := seedAdminUser(context.Background(), db, cfg.Admin); err != nil {
		log.Fatalf("❌ Erro ao criar administrador: %v", err)
	}
	log.Println("✅ Administrador pronto!")
}

// SeedDemo adds a small sales team with goals and today's activity, for local dashboards.
func SeedDemo(db *pgxpool.Pool) {
	log.Println("▶️  Populando dados de demonstração...")
	if err := seedDemoTeam(context.Background(), db); err != nil {
		log.Fatalf("❌ Erro ao popular dados de demonstração: %v", err)
	}
	log.Println("✅ Dados de demonstração concluídos!")
}
