package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/lensvault/backend/config"
	"github.com/lensvault/backend/internal/infrastructure/store"
	"github.com/lensvault/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("LensVault enrichment batch")
	log.Printf("Raw dataset: %s", cfg.Data.RawPath)
	log.Printf("Enriched dataset: %s", cfg.Data.EnrichedPath)

	fileStore := store.NewFileStore(cfg.Data.RawPath, cfg.Data.EnrichedPath)
	enrichService := usecase.NewEnrichService(fileStore, fileStore, nil)

	dataset, err := enrichService.Run(context.Background())
	if err != nil {
		log.Fatalf("Enrichment failed: %v", err)
	}

	stats := dataset.Statistics
	fmt.Printf("Enriched %d products\n", dataset.TotalProducts)
	fmt.Printf("  with megapixels:  %d\n", stats.MegapixelProducts)
	fmt.Printf("  with sensor info: %d\n", stats.SensorProducts)
	fmt.Printf("  with lens specs:  %d\n", stats.LensProducts)
	fmt.Printf("  categories:       %d\n", len(stats.Categories))
	fmt.Printf("  eras:             %d\n", len(stats.Eras))
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime)
	log.SetOutput(os.Stdout)
}
