package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"restaurant-quiz/cmd/seed_initial_data/internal/seedmodels"
	"restaurant-quiz/internal/config"
	"restaurant-quiz/internal/database"
	"restaurant-quiz/internal/logger"
	"restaurant-quiz/internal/repository"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const defaultSeedFilePath = "configs/seed_data/sample_restaurants.json"

func main() {
	seedFilePath := pflag.StringP("file", "f", defaultSeedFilePath, "path to the restaurant catalog seed file")
	migrate := pflag.Bool("migrate", true, "apply schema migrations before seeding")
	pflag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting catalog seeding")
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	if *migrate {
		if err := database.RunMigrations(ctx, db); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	log.Info("Loading seed data from file", zap.String("path", *seedFilePath))
	byteValue, err := os.ReadFile(*seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", *seedFilePath), zap.Error(err))
	}

	var seeds []seedmodels.SeedRestaurant
	if err := json.Unmarshal(byteValue, &seeds); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}
	log.Info("Seed data loaded", zap.Int("restaurants", len(seeds)))

	writer := repository.NewCatalogWriter(db)
	failed := 0
	for _, seed := range seeds {
		for _, ref := range seed.DanglingReferences() {
			log.Warn("Dangling catalog reference", zap.String("restaurant_id", seed.RestaurantID), zap.String("reference", ref))
		}
		if err := writer.ReplaceCatalog(ctx, seed.RestaurantID, &seed.RestaurantData); err != nil {
			failed++
			log.Error("Failed to seed restaurant, transaction rolled back",
				zap.String("restaurant_id", seed.RestaurantID), zap.Error(err))
			continue
		}
		log.Info("Seeded restaurant catalog",
			zap.String("restaurant_id", seed.RestaurantID),
			zap.Int("allergies", len(seed.Allergies)),
			zap.Int("ingredients", len(seed.Ingredients)),
			zap.Int("menu_items", len(seed.MenuItems)))
	}

	if failed > 0 {
		log.Fatal("Catalog seeding finished with failures", zap.Int("failed", failed), zap.Int("total", len(seeds)))
	}
	log.Info("Catalog seeding completed")
}
