package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/lensvault/backend/config"
	"github.com/lensvault/backend/internal/infrastructure/scraper"
	"github.com/lensvault/backend/internal/infrastructure/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("LensVault catalog scrape")
	log.Printf("Index: %s", cfg.Scraper.IndexURL)
	log.Printf("Request delay: %s, retries: %d", cfg.Scraper.Delay, cfg.Scraper.MaxRetries)

	client := scraper.NewClient(cfg.Scraper.Delay, cfg.Scraper.MaxRetries, cfg.Scraper.UserAgent)
	if cfg.Server.Environment == "development" {
		client.SetDebug(true)
	}

	service := scraper.NewService(client, cfg.Scraper.BaseURL, cfg.Scraper.IndexURL, cfg.Scraper.Category)

	dataset, job, err := service.ScrapeCatalog(context.Background())
	if err != nil {
		log.Fatalf("Scrape failed (job %s): %v", job.ID, err)
	}

	fileStore := store.NewFileStore(cfg.Data.RawPath, cfg.Data.EnrichedPath)
	if err := fileStore.SaveRaw(context.Background(), dataset); err != nil {
		log.Fatalf("Failed to save raw dataset: %v", err)
	}

	fmt.Printf("Scraped %d products (job %s)\n", job.ProductCount, job.ID)
	fmt.Printf("  started:  %s\n", job.StartTime)
	fmt.Printf("  finished: %s\n", job.EndTime)
	fmt.Printf("  failures: %d\n", len(job.Errors))
	fmt.Printf("  saved to: %s\n", cfg.Data.RawPath)
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime)
	log.SetOutput(os.Stdout)
}
