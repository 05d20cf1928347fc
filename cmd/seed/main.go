package main

import (
	"context"
	"log"
	"os"

	"tg-miniapp-be/internal/config"
	"tg-miniapp-be/internal/pkg/logger"
	"tg-miniapp-be/internal/repository/unitofwork"
	"tg-miniapp-be/internal/service"
	"tg-miniapp-be/pkg/database"

	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding AI Model Catalog...")

	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, false)
	modelService := service.NewAIModelService(uowFactory, sysLogger)

	if err := modelService.SeedDefaults(context.Background()); err != nil {
		color.Red("Catalog seeding failed: %v", err)
		os.Exit(1)
	}

	models, err := modelService.ListAll(context.Background())
	if err != nil {
		color.Red("Failed to read back catalog: %v", err)
		os.Exit(1)
	}

	for _, m := range models {
		state := color.GreenString("enabled")
		if !m.IsEnabled {
			state = color.YellowString("disabled")
		}
		log.Printf("  %-28s %-12s %6d tokens  [%s]", m.Code, m.Provider, m.PriceTokens, state)
	}

	color.Green("Catalog seeding completed! %d models in catalog.", len(models))
}
