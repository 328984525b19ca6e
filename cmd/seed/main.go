// Command seed resets the stored services list to the seed file, or to the
// built-in defaults when no seed file is configured.
package main

import (
	"context"
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/matheustorresii/vitrine-sorocabana/internal/config"
	"github.com/matheustorresii/vitrine-sorocabana/internal/db"
	"github.com/matheustorresii/vitrine-sorocabana/internal/services"
)

func main() {
	envFile := flag.String("env", ".env", "path to .env file")
	seedFile := flag.String("file", "", "YAML seed file (overrides SERVICES_SEED_FILE)")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log, err := cfg.Logger()
	if err != nil {
		logrus.Fatalf("logger: %v", err)
	}
	if *seedFile != "" {
		cfg.SeedFile = *seedFile
	}

	ctx := context.Background()
	storage, err := db.Open(ctx, cfg.StorageOptions())
	if err != nil {
		log.Fatalf("storage init error: %v", err)
	}
	defer storage.Close()

	seed, err := services.LoadSeedOrDefault(cfg.SeedFile)
	if err != nil {
		log.Fatalf("seed file: %v", err)
	}
	if err := services.NewJSONStorage(storage, services.StorageKey).Save(ctx, seed); err != nil {
		log.Fatalf("save services: %v", err)
	}
	log.WithFields(logrus.Fields{"count": len(seed), "storage": cfg.StorageDriver}).Info("services reset")
}
