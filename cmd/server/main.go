package main

import (
	"fmt"
	"log"
	"os"

	"github.com/lensvault/backend/config"
	httpDelivery "github.com/lensvault/backend/internal/delivery/http"
	"github.com/lensvault/backend/internal/infrastructure/corpus"
	"github.com/lensvault/backend/internal/infrastructure/store"
	"github.com/lensvault/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting LensVault Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Enriched dataset: %s", cfg.Data.EnrichedPath)

	// Initialize infrastructure dependencies
	fileStore := store.NewFileStore(cfg.Data.RawPath, cfg.Data.EnrichedPath)

	productCorpus := corpus.New(fileStore, cfg.Corpus.TTL)
	log.Printf("Corpus TTL: %s", cfg.Corpus.TTL)

	// Initialize usecase layer
	searchService := usecase.NewSearchService(productCorpus, usecase.SearchConfig{
		EnableDebugLogging: cfg.Search.EnableDebugLogging || cfg.Server.Environment == "development",
	})
	enrichService := usecase.NewEnrichService(fileStore, fileStore, productCorpus)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(searchService, enrichService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
