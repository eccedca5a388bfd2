package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/nutriplan/engine/config"
	httpDelivery "github.com/nutriplan/engine/internal/delivery/http"
	"github.com/nutriplan/engine/internal/domain"
	"github.com/nutriplan/engine/internal/infrastructure/cache"
	"github.com/nutriplan/engine/internal/infrastructure/catalog"
	"github.com/nutriplan/engine/internal/infrastructure/foodtable"
	"github.com/nutriplan/engine/internal/infrastructure/generative"
	"github.com/nutriplan/engine/internal/infrastructure/recipes"
	"github.com/nutriplan/engine/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Meal Engine v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	adapters := []domain.SourceAdapter{
		foodtable.NewAdapter(),
		recipes.NewAdapter(),
	}

	if cfg.Catalog.Enabled {
		memoryCache := cache.NewMemoryCache()
		adapters = append(adapters, catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout, memoryCache))
		log.Printf("Catalog configured: %s (timeout: %s)", cfg.Catalog.BaseURL, cfg.Catalog.Timeout)
	} else {
		log.Printf("Catalog disabled")
	}

	if cfg.Generative.APIKey != "" {
		generator, err := generative.NewGeminiGenerator(context.Background(), cfg.Generative.APIKey, cfg.Generative.Model)
		if err != nil {
			log.Fatalf("Failed to create generative client: %v", err)
		}
		defer generator.Close()
		adapters = append(adapters, generative.NewAdapter(generator))
		log.Printf("Generative source configured: %s", cfg.Generative.Model)
	} else {
		log.Printf("Generative source disabled (no API key)")
	}

	engineCfg := usecase.DefaultEngineConfig()
	engineCfg.TopKRecipes = cfg.Engine.TopKRecipes
	engineCfg.TopKCatalog = cfg.Engine.TopKCatalog
	engineCfg.CalorieCeilingSlack = cfg.Engine.CalorieCeilingSlack

	engine := usecase.NewEngine(adapters, usecase.WithConfig(engineCfg))

	handler := httpDelivery.NewHandler(engine)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
