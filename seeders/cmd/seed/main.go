package main

import (
	"flag"
	"log"

	"sales-dashboard/pkg/config"
	"sales-dashboard/pkg/database/postgresql"
	"sales-dashboard/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 SEEDERS (população do banco)                ")
	log.Println("======================================================")

	runCore := flag.Bool("core", false, "Popular catálogos básicos (tipos de tarefa, metas da empresa)")
	runAdmin := flag.Bool("admin", false, "Criar o administrador a partir de ADMIN_EMAIL/ADMIN_PASSWORD")
	runDemo := flag.Bool("demo", false, "Popular uma equipe de demonstração com metas e atividades de hoje")
	runAll := flag.Bool("all", false, "Executar -core e -admin")

	flag.Parse()

	if !*runCore && !*runAdmin && !*runDemo && !*runAll {
		log.Println("❌ Nenhum seeder selecionado.")
		log.Println("")
		log.Println("Flags disponíveis:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Exemplos:")
		log.Println("  go run ./seeders/cmd/seed -core")
		log.Println("  go run ./seeders/cmd/seed -all")
		log.Println("  go run ./seeders/cmd/seed -core -demo")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	if err := postgresql.Migrate(dbPool); err != nil {
		log.Fatalf("❌ Erro ao aplicar migrações: %v", err)
	}

	log.Println("======================================================")

	if *runAll || *runCore || *runDemo {
		seeders.SeedCoreDictionaries(dbPool)
		log.Println("======================================================")
	}

	if *runAll || *runAdmin {
		seeders.SeedAdmin(dbPool, cfg)
		log.Println("======================================================")
	}

	if *runDemo {
		seeders.SeedDemo(dbPool)
		log.Println("======================================================")
	}

	log.Println("✅ Seeders concluídos.")
	log.Println("======================================================")
}
