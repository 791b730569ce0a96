package main

import (
	"flag"
	"log"

	"github.com/filmroom/media-backend/internal/config"
	"github.com/filmroom/media-backend/internal/migration"
	"github.com/filmroom/media-backend/pkg/db/postgres"
)

func main() {
	down := flag.Bool("down", false, "roll back all migrations instead of applying them")
	flag.Parse()

	configFile := "config.yml"
	cfgFile, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("loadConfig: %v", err)
	}
	cfg, err := config.ParseConfig(cfgFile)
	if err != nil {
		log.Fatalf("parseConfig: %v", err)
	}

	psqlDB, err := postgres.NewPsqlDB(cfg)
	if err != nil {
		log.Fatalf("could not connect to db: %v", err)
	}
	defer psqlDB.Close()

	if *down {
		if err := migration.MigrateDown(psqlDB.DB); err != nil {
			log.Fatalf("migration down failed: %v", err)
		}
		log.Println("migrations rolled back")
		return
	}
	if err := migration.MigrateUp(psqlDB.DB); err != nil {
		log.Fatalf("migration up failed: %v", err)
	}
	log.Println("migrations applied")
}
