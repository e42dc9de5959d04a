package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"sales-dashboard/internal/entities"
)

// true: refresh the label of an existing task type. false: leave existing rows untouched.
const updateIfExists_TaskTypes = false

func seedTaskTypes(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Populando a tabela 'task_types'...")

	var query string
	if updateIfExists_TaskTypes {
		query = `INSERT INTO task_types (name, label) VALUES ($1, $2)
				 ON CONFLICT (name) DO UPDATE SET label = EXCLUDED.label;`
		log.Println("    - Estratégia: atualizar tipos existentes (UPSERT)")
	} else {
		query = `INSERT INTO task_types (name, label) VALUES ($1, $2)
				 ON CONFLICT (name) DO NOTHING;`
		log.Println("    - Estratégia: ignorar tipos existentes")
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, a := range entities.ActionTypes {
		if _, err := tx.Exec(ctx, query, string(a), a.Label()); err != nil {
			log.Printf("Erro ao inserir tipo de tarefa '%s': %v", a, err)
			return err
		}
	}

	return tx.Commit(ctx)
}
