package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lensvault/backend/internal/domain"
	"github.com/lensvault/backend/internal/enrichment"
)

// EnrichService runs the batch enrichment pipeline: load the raw dataset,
// build enriched records, persist them, and invalidate the corpus so the
// next query picks up the new snapshot.
type EnrichService struct {
	rawStore      domain.RawProductStore
	enrichedStore domain.EnrichedProductStore
	corpus        domain.Corpus
}

// NewEnrichService creates the batch enrichment service. corpus may be
// nil when running outside the server (the enrich CLI).
func NewEnrichService(rawStore domain.RawProductStore, enrichedStore domain.EnrichedProductStore, corpus domain.Corpus) *EnrichService {
	return &EnrichService{
		rawStore:      rawStore,
		enrichedStore: enrichedStore,
		corpus:        corpus,
	}
}

// Run executes one enrichment batch and returns the persisted dataset.
func (s *EnrichService) Run(ctx context.Context) (*domain.EnrichedDataset, error) {
	rawDataset, err := s.rawStore.LoadRaw(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load raw dataset: %w", err)
	}

	log.Printf("[ENRICH] Enriching %d products", len(rawDataset.Products))
	records := enrichment.EnrichAll(rawDataset.Products)

	dataset := &domain.EnrichedDataset{
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		TotalProducts: len(records),
		Statistics:    enrichment.BuildDatasetStatistics(records),
		Products:      records,
	}

	if err := s.enrichedStore.SaveEnriched(ctx, dataset); err != nil {
		return nil, fmt.Errorf("failed to save enriched dataset: %w", err)
	}

	if s.corpus != nil {
		s.corpus.Invalidate()
	}

	log.Printf("[ENRICH] Completed: %d products, %d with megapixels, %d with sensor info, %d with lens specs",
		dataset.TotalProducts,
		dataset.Statistics.MegapixelProducts,
		dataset.Statistics.SensorProducts,
		dataset.Statistics.LensProducts)

	return dataset, nil
}
