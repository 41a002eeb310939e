// Seeds the database with the music catalog and synthetic social data so
// recommendations have something to chew on. Requires persistence: the
// server rehydrates its in-memory stores from the same database at boot.
package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/tunegraph/backend/internal/database"
	"github.com/tunegraph/backend/internal/logger"
	"github.com/tunegraph/backend/internal/seed"
	"github.com/tunegraph/backend/internal/store"
	"go.uber.org/zap"
)

func main() {
	musicsPath := flag.String("musics", "musics.json", "path to the musics JSON file")
	userCount := flag.Int("users", 200, "number of synthetic users")
	followsPerUser := flag.Int("follows", 5, "follow edges per user")
	listensPerUser := flag.Int("listens", 25, "listen events per user")
	reset := flag.Bool("reset", false, "clear existing users before seeding")
	flag.Parse()

	_ = godotenv.Load()

	if err := logger.Initialize(os.Getenv("LOG_LEVEL"), "seed.log"); err != nil {
		os.Exit(1)
	}
	defer logger.Close()

	if err := database.Initialize(); err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.Migrate(); err != nil {
		logger.Log.Fatal("Failed to run migrations", zap.Error(err))
	}
	defer database.Close()

	users := store.NewUserStore()
	catalog := store.NewCatalogStore()
	users.AttachDB(database.DB)
	catalog.AttachDB(database.DB)

	if *reset {
		if err := users.Clear(); err != nil {
			logger.Log.Fatal("Failed to clear users", zap.Error(err))
		}
		logger.Log.Info("Cleared existing users")
	} else {
		if err := users.Hydrate(); err != nil {
			logger.Log.Fatal("Failed to hydrate users", zap.Error(err))
		}
	}

	if _, err := seed.LoadCatalogFile(catalog, *musicsPath); err != nil {
		logger.Log.Fatal("Failed to load musics file", zap.Error(err))
	}

	seeder := seed.NewSeeder(users, catalog)
	if err := seeder.SeedDev(*userCount, *followsPerUser, *listensPerUser); err != nil {
		logger.Log.Fatal("Seeding failed", zap.Error(err))
	}
}
