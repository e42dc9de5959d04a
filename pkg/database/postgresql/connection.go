package postgresql

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"sales-dashboard/pkg/database/migrations"
)

func ConnectDB(dsn string) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbpool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("Erro ao criar o pool de conexões: %v", err)
	}

	if err := dbpool.Ping(ctx); err != nil {
		log.Fatalf("Não foi possível pingar o banco: %v", err)
	}

	log.Println("✅ Conectado ao PostgreSQL")
	return dbpool
}

// Migrate applies the embedded goose migrations over a database/sql handle borrowed from the pool.
func Migrate(pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose: dialeto: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("goose: up: %w", err)
	}
	return nil
}
