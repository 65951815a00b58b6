package domain

import "context"

// RawProductStore persists the output of scrape runs.
type RawProductStore interface {
	LoadRaw(ctx context.Context) (*RawDataset, error)
	SaveRaw(ctx context.Context, dataset *RawDataset) error
}

// EnrichedProductStore persists the output of enrichment runs. SaveEnriched
// is called once per batch run, not per record.
type EnrichedProductStore interface {
	LoadEnriched(ctx context.Context) (*EnrichedDataset, error)
	SaveEnriched(ctx context.Context, dataset *EnrichedDataset) error
}

// CatalogFetcher fetches catalog pages for the scraper.
type CatalogFetcher interface {
	FetchPage(ctx context.Context, url string) ([]byte, error)
}

// Corpus exposes the in-memory enriched record collection to the query
// engine. Snapshot returns an immutable view that callers must not mutate.
type Corpus interface {
	Snapshot(ctx context.Context) ([]EnrichedRecord, error)
	Get(ctx context.Context, id string) (*EnrichedRecord, error)
	Invalidate()
}
